package handler

import (
	"io"
	"net/http"
	"strings"
)

// HandleCreateSession starts a fresh empty session.
func (h *Handler) HandleCreateSession(w http.ResponseWriter, r *http.Request) {
	s := h.sessions.Create()
	writeJSON(w, http.StatusCreated, map[string]string{"sessionId": s.ID()})
}

// HandleSetCredential stores the opaque provider credential. Presence of a
// credential gates analysis runs; no validation happens here.
func (h *Handler) HandleSetCredential(w http.ResponseWriter, r *http.Request) {
	s, ok := h.session(w, r)
	if !ok {
		return
	}
	var in struct {
		Credential string `json:"credential"`
	}
	if !decodeBody(w, r, &in) {
		return
	}
	s.SetCredential(in.Credential)
	w.WriteHeader(http.StatusNoContent)
}

// uploadLimit bounds dataset uploads to 32 MiB.
const uploadLimit = 32 << 20

// HandleUploadDataset ingests an uploaded file as the session dataset.
// Accepts multipart form data (field "file") or a raw body with the file
// name in ?name= or the X-Filename header.
func (h *Handler) HandleUploadDataset(w http.ResponseWriter, r *http.Request) {
	s, ok := h.session(w, r)
	if !ok {
		return
	}
	name, raw, err := readUpload(r)
	if err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": err.Error()})
		return
	}
	ds, err := s.LoadDataset(r.Context(), name, raw)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{
		"headers":     ds.Headers(),
		"rows":        ds.RowCount(),
		"fingerprint": ds.Fingerprint(),
	})
}

func readUpload(r *http.Request) (name string, raw []byte, err error) {
	r.Body = http.MaxBytesReader(nil, r.Body, uploadLimit)
	if strings.HasPrefix(r.Header.Get("Content-Type"), "multipart/form-data") {
		file, header, err := r.FormFile("file")
		if err != nil {
			return "", nil, err
		}
		defer file.Close()
		raw, err = io.ReadAll(file)
		if err != nil {
			return "", nil, err
		}
		return header.Filename, raw, nil
	}
	raw, err = io.ReadAll(r.Body)
	if err != nil {
		return "", nil, err
	}
	name = strings.TrimSpace(r.URL.Query().Get("name"))
	if name == "" {
		name = strings.TrimSpace(r.Header.Get("X-Filename"))
	}
	if name == "" {
		name = "upload.csv"
	}
	return name, raw, nil
}

// HandleExport encodes the session snapshot as json or msgpack.
func (h *Handler) HandleExport(w http.ResponseWriter, r *http.Request) {
	s, ok := h.session(w, r)
	if !ok {
		return
	}
	raw, contentType, err := s.Export(r.URL.Query().Get("format"))
	if err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": err.Error()})
		return
	}
	w.Header().Set("Content-Type", contentType)
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(raw)
}

// HandleRunHistory lists the session's analysis-run audit records.
func (h *Handler) HandleRunHistory(w http.ResponseWriter, r *http.Request) {
	s, ok := h.session(w, r)
	if !ok {
		return
	}
	recs, err := s.RunHistory(r.Context())
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"runs": recs})
}
