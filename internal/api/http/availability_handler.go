package http

import (
	"net/http"

	"staybook-backend/internal/service"
)

// bulkOverrideRequest sets overrides for [from, to). Clear drops them instead.
type bulkOverrideRequest struct {
	From          string   `json:"from" validate:"required"`
	To            string   `json:"to" validate:"required"`
	Available     *bool    `json:"available" validate:"required_without=Clear"`
	PriceOverride *float64 `json:"price_override" validate:"omitempty,gte=0"`
	Clear         bool     `json:"clear"`
}

func (h *Handler) GetAvailability(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		writeError(w, r, err)
		return
	}
	q := r.URL.Query()
	days, err := h.svc.Availability.Calendar(r.Context(), id, q.Get("from"), q.Get("to"))
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, days)
}

func (h *Handler) ListOverrides(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		writeError(w, r, err)
		return
	}
	overrides, err := h.svc.Availability.ListOverrides(r.Context(), authFrom(r), id)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, overrides)
}

func (h *Handler) BulkSetOverrides(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		writeError(w, r, err)
		return
	}
	var req bulkOverrideRequest
	if err := decode(r, &req); err != nil {
		writeError(w, r, err)
		return
	}

	if req.Clear {
		n, err := h.svc.Availability.BulkClear(r.Context(), authFrom(r), id, req.From, req.To)
		if err != nil {
			writeError(w, r, err)
			return
		}
		writeMessage(w, http.StatusOK, "overrides cleared", "deleted", n)
		return
	}

	n, err := h.svc.Availability.BulkSet(r.Context(), authFrom(r), service.BulkOverrideInput{
		PropertyID:    id,
		From:          req.From,
		To:            req.To,
		Available:     *req.Available,
		PriceOverride: req.PriceOverride,
	})
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeMessage(w, http.StatusOK, "availability updated", "days", n)
}

func (h *Handler) BulkClearOverrides(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		writeError(w, r, err)
		return
	}
	q := r.URL.Query()
	n, err := h.svc.Availability.BulkClear(r.Context(), authFrom(r), id, q.Get("from"), q.Get("to"))
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeMessage(w, http.StatusOK, "overrides cleared", "deleted", n)
}
