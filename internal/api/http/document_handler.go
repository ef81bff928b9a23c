package http

import (
	"errors"
	"fmt"
	"io"
	"mime"
	"net/http"
	"path/filepath"

	"staybook-backend/internal/domain"
	"staybook-backend/internal/logger"

	"github.com/gorilla/mux"
)

const (
	uploadFormField = "file"

	defaultMaxUploadBytes = 10 << 20
	// multipartOverhead leaves room for boundaries and part headers.
	multipartOverhead = 64 << 10
)

// UploadDocument stores one KYC document sent as multipart form data and
// returns the key to reference it from a verification request.
func (h *Handler) UploadDocument(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, h.maxUploadBytes+multipartOverhead)
	file, header, err := r.FormFile(uploadFormField)
	var tooLarge *http.MaxBytesError
	if errors.As(err, &tooLarge) {
		writeJSON(w, http.StatusRequestEntityTooLarge, errorResponse{Error: fmt.Sprintf("document exceeds %d bytes", h.maxUploadBytes)})
		return
	}
	if err != nil {
		writeError(w, r, domain.NewValidationError("", "multipart field %q is required", uploadFormField))
		return
	}
	defer file.Close()

	contentType := header.Header.Get("Content-Type")
	key, err := h.svc.Verification.UploadDocument(r.Context(), authFrom(r), header.Filename, contentType, file)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeMessage(w, http.StatusCreated, "document uploaded", "key", key)
}

// DownloadDocument streams a stored KYC document back to its owner or an admin.
func (h *Handler) DownloadDocument(w http.ResponseWriter, r *http.Request) {
	key := mux.Vars(r)["key"]
	body, err := h.svc.Verification.OpenDocument(r.Context(), authFrom(r), key)
	if err != nil {
		writeError(w, r, err)
		return
	}
	defer body.Close()

	contentType := mime.TypeByExtension(filepath.Ext(key))
	if contentType == "" {
		contentType = "application/octet-stream"
	}
	w.Header().Set("Content-Type", contentType)
	w.Header().Set("Cache-Control", "private, no-store")
	w.WriteHeader(http.StatusOK)
	if _, err := io.Copy(w, body); err != nil {
		logger.WarnContext(r.Context(), "Failed to stream document", "key", key, "error", err)
	}
}
