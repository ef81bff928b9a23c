package http

import (
	"context"
	"net/http"

	"staybook-backend/internal/domain"
	"staybook-backend/internal/service"
)

type bookingRequest struct {
	PropertyID      int32  `json:"property_id" validate:"required,gt=0"`
	CheckIn         string `json:"check_in" validate:"required"`
	CheckOut        string `json:"check_out" validate:"required"`
	GuestsCount     int32  `json:"guests_count" validate:"required,gte=1"`
	SpecialRequests string `json:"special_requests" validate:"max=2000"`
}

type bookingPatchRequest struct {
	CheckIn         *string `json:"check_in"`
	CheckOut        *string `json:"check_out"`
	GuestsCount     *int32  `json:"guests_count" validate:"omitempty,gte=1"`
	SpecialRequests *string `json:"special_requests" validate:"omitempty,max=2000"`
}

type bookingStatusRequest struct {
	Status string `json:"status" validate:"required"`
}

func (h *Handler) CreateBooking(w http.ResponseWriter, r *http.Request) {
	var req bookingRequest
	if err := decode(r, &req); err != nil {
		writeError(w, r, err)
		return
	}
	b, err := h.svc.Bookings.Create(r.Context(), authFrom(r), service.BookingInput{
		PropertyID:      req.PropertyID,
		CheckIn:         req.CheckIn,
		CheckOut:        req.CheckOut,
		GuestsCount:     req.GuestsCount,
		SpecialRequests: req.SpecialRequests,
	})
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeMessage(w, http.StatusCreated, "booking created", "booking", b)
}

func (h *Handler) ListMyBookings(w http.ResponseWriter, r *http.Request) {
	h.listBookings(w, r, h.svc.Bookings.ListMine)
}

func (h *Handler) ListReceivedBookings(w http.ResponseWriter, r *http.Request) {
	h.listBookings(w, r, h.svc.Bookings.ListReceived)
}

func (h *Handler) ListAllBookings(w http.ResponseWriter, r *http.Request) {
	h.listBookings(w, r, h.svc.Bookings.ListAll)
}

func (h *Handler) listBookings(w http.ResponseWriter, r *http.Request, list func(ctx context.Context, auth domain.AuthContext) ([]domain.Booking, error)) {
	bookings, err := list(r.Context(), authFrom(r))
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, bookings)
}

func (h *Handler) GetBooking(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		writeError(w, r, err)
		return
	}
	b, err := h.svc.Bookings.Get(r.Context(), authFrom(r), id)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, b)
}

func (h *Handler) ModifyBooking(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		writeError(w, r, err)
		return
	}
	var req bookingPatchRequest
	if err := decode(r, &req); err != nil {
		writeError(w, r, err)
		return
	}
	b, err := h.svc.Bookings.Modify(r.Context(), authFrom(r), id, service.BookingPatch{
		CheckIn:         req.CheckIn,
		CheckOut:        req.CheckOut,
		GuestsCount:     req.GuestsCount,
		SpecialRequests: req.SpecialRequests,
	})
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeMessage(w, http.StatusOK, "booking updated", "booking", b)
}

func (h *Handler) ChangeBookingStatus(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		writeError(w, r, err)
		return
	}
	var req bookingStatusRequest
	if err := decode(r, &req); err != nil {
		writeError(w, r, err)
		return
	}
	b, err := h.svc.Bookings.ChangeStatus(r.Context(), authFrom(r), id, req.Status)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeMessage(w, http.StatusOK, "booking status updated", "booking", b)
}

func (h *Handler) CancelBooking(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		writeError(w, r, err)
		return
	}
	if err := h.svc.Bookings.Cancel(r.Context(), authFrom(r), id); err != nil {
		writeError(w, r, err)
		return
	}
	writeMessage(w, http.StatusOK, "booking cancelled", "", nil)
}
