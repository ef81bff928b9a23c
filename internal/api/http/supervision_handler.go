package http

import (
	"net/http"
)

type assignSupervisorRequest struct {
	PropertyID      int32  `json:"property_id" validate:"required,gt=0"`
	SupervisorPhone string `json:"supervisor_phone" validate:"required"`
}

func (h *Handler) AssignSupervisor(w http.ResponseWriter, r *http.Request) {
	var req assignSupervisorRequest
	if err := decode(r, &req); err != nil {
		writeError(w, r, err)
		return
	}
	link, created, err := h.svc.Supervision.Assign(r.Context(), authFrom(r), req.PropertyID, req.SupervisorPhone)
	if err != nil {
		writeError(w, r, err)
		return
	}
	if !created {
		writeMessage(w, http.StatusOK, "supervisor already assigned", "supervision", link)
		return
	}
	writeMessage(w, http.StatusCreated, "supervisor assigned", "supervision", link)
}

func (h *Handler) ListSupervisions(w http.ResponseWriter, r *http.Request) {
	links, err := h.svc.Supervision.List(r.Context(), authFrom(r))
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, links)
}

func (h *Handler) RevokeSupervisor(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		writeError(w, r, err)
		return
	}
	if err := h.svc.Supervision.Revoke(r.Context(), authFrom(r), id); err != nil {
		writeError(w, r, err)
		return
	}
	writeMessage(w, http.StatusOK, "supervisor revoked", "", nil)
}
