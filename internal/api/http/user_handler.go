package http

import (
	"net/http"

	"staybook-backend/internal/domain"
	"staybook-backend/internal/service"

	"github.com/gorilla/mux"
)

type registerRequest struct {
	PhoneNumber string `json:"phone_number" validate:"required"`
	Name        string `json:"name" validate:"required"`
	Password    string `json:"password" validate:"required"`
	Email       string `json:"email" validate:"omitempty,email"`
}

type loginRequest struct {
	PhoneNumber string `json:"phone_number" validate:"required"`
	Password    string `json:"password" validate:"required"`
}

type updateMeRequest struct {
	Name      *string `json:"name"`
	Email     *string `json:"email"`
	Bio       *string `json:"bio"`
	AvatarURL *string `json:"avatar_url" validate:"omitempty,max=2048"`
	BirthDate *string `json:"birth_date"`
}

type setRoleRequest struct {
	Active *bool `json:"active" validate:"required"`
}

func (h *Handler) Register(w http.ResponseWriter, r *http.Request) {
	var req registerRequest
	if err := decode(r, &req); err != nil {
		writeError(w, r, err)
		return
	}
	user, token, err := h.svc.Auth.Register(r.Context(), service.RegisterInput{
		PhoneNumber: req.PhoneNumber,
		Name:        req.Name,
		Password:    req.Password,
		Email:       req.Email,
	})
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusCreated, map[string]any{"message": "user registered", "user": user, "token": token})
}

func (h *Handler) Login(w http.ResponseWriter, r *http.Request) {
	var req loginRequest
	if err := decode(r, &req); err != nil {
		writeError(w, r, err)
		return
	}
	user, token, err := h.svc.Auth.Login(r.Context(), req.PhoneNumber, req.Password)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"message": "login successful", "user": user, "token": token})
}

func (h *Handler) GetMe(w http.ResponseWriter, r *http.Request) {
	user, err := h.svc.Users.Me(r.Context(), authFrom(r))
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, user)
}

func (h *Handler) UpdateMe(w http.ResponseWriter, r *http.Request) {
	var req updateMeRequest
	if err := decode(r, &req); err != nil {
		writeError(w, r, err)
		return
	}
	user, err := h.svc.Users.UpdateProfile(r.Context(), authFrom(r), service.ProfilePatch{
		Name:      req.Name,
		Email:     req.Email,
		Bio:       req.Bio,
		AvatarURL: req.AvatarURL,
		BirthDate: req.BirthDate,
	})
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeMessage(w, http.StatusOK, "profile updated", "user", user)
}

func (h *Handler) SetRole(w http.ResponseWriter, r *http.Request) {
	userID, err := pathID(r, "id")
	if err != nil {
		writeError(w, r, err)
		return
	}
	var req setRoleRequest
	if err := decode(r, &req); err != nil {
		writeError(w, r, err)
		return
	}
	role := domain.Role(mux.Vars(r)["role"])
	if err := h.svc.Users.SetRole(r.Context(), authFrom(r), userID, role, *req.Active); err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"message": "role updated", "user_id": userID, "role": role, "active": *req.Active})
}
