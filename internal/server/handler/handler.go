// Package handler exposes the notebook session over JSON HTTP endpoints.
package handler

import (
	"encoding/json"
	"errors"
	"log"
	"net/http"

	"tabnote/internal/dataset"
	"tabnote/internal/notebook"
	"tabnote/internal/session"
	"tabnote/internal/template"
)

type Handler struct {
	sessions *session.Manager
}

func New(sessions *session.Manager) *Handler {
	return &Handler{sessions: sessions}
}

func (h *Handler) session(w http.ResponseWriter, r *http.Request) (*session.Session, bool) {
	s, err := h.sessions.Get(r.PathValue("id"))
	if err != nil {
		writeError(w, err)
		return nil, false
	}
	return s, true
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		log.Printf("handler: encode response failed: %v", err)
	}
}

func writeError(w http.ResponseWriter, err error) {
	status := http.StatusInternalServerError
	var ingestErr *dataset.IngestError
	switch {
	case errors.As(err, &ingestErr):
		status = http.StatusBadRequest
	case errors.Is(err, session.ErrSessionNotFound),
		errors.Is(err, notebook.ErrCellNotFound),
		errors.Is(err, template.ErrTemplateNotFound):
		status = http.StatusNotFound
	case errors.Is(err, session.ErrNoDataset),
		errors.Is(err, session.ErrNoCredential):
		status = http.StatusConflict
	}
	writeJSON(w, status, map[string]string{"error": err.Error()})
}

func decodeBody(w http.ResponseWriter, r *http.Request, v any) bool {
	if err := json.NewDecoder(r.Body).Decode(v); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid json body"})
		return false
	}
	return true
}
