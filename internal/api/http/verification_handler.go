package http

import (
	"net/http"
)

type submitVerificationRequest struct {
	DocumentRefs []string `json:"document_refs" validate:"required,min=1,dive,required"`
	Note         string   `json:"note" validate:"max=2000"`
}

type reviewRequest struct {
	Note string `json:"note" validate:"max=2000"`
}

func (h *Handler) SubmitVerification(w http.ResponseWriter, r *http.Request) {
	var req submitVerificationRequest
	if err := decode(r, &req); err != nil {
		writeError(w, r, err)
		return
	}
	vr, err := h.svc.Verification.Submit(r.Context(), authFrom(r), req.DocumentRefs, req.Note)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeMessage(w, http.StatusCreated, "verification submitted", "request", vr)
}

func (h *Handler) MyVerification(w http.ResponseWriter, r *http.Request) {
	vr, err := h.svc.Verification.Mine(r.Context(), authFrom(r))
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, vr)
}

func (h *Handler) PendingVerifications(w http.ResponseWriter, r *http.Request) {
	pending, err := h.svc.Verification.ListPending(r.Context(), authFrom(r))
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, pending)
}

func (h *Handler) GetVerification(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		writeError(w, r, err)
		return
	}
	vr, err := h.svc.Verification.Get(r.Context(), authFrom(r), id)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, vr)
}

func (h *Handler) ApproveVerification(w http.ResponseWriter, r *http.Request) {
	h.review(w, r, true)
}

func (h *Handler) RejectVerification(w http.ResponseWriter, r *http.Request) {
	h.review(w, r, false)
}

func (h *Handler) review(w http.ResponseWriter, r *http.Request, approve bool) {
	id, err := pathID(r, "id")
	if err != nil {
		writeError(w, r, err)
		return
	}
	// The note is optional, so an empty body is accepted.
	var req reviewRequest
	if r.ContentLength != 0 {
		if err := decode(r, &req); err != nil {
			writeError(w, r, err)
			return
		}
	}

	review, message := h.svc.Verification.Reject, "verification rejected"
	if approve {
		review, message = h.svc.Verification.Approve, "verification approved"
	}
	vr, err := review(r.Context(), authFrom(r), id, req.Note)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeMessage(w, http.StatusOK, message, "request", vr)
}

func (h *Handler) WithdrawVerification(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		writeError(w, r, err)
		return
	}
	if err := h.svc.Verification.Withdraw(r.Context(), authFrom(r), id); err != nil {
		writeError(w, r, err)
		return
	}
	writeMessage(w, http.StatusOK, "verification withdrawn", "", nil)
}
