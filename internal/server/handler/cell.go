package handler

import (
	"net/http"

	"tabnote/internal/chart"
	"tabnote/internal/notebook"
)

// HandleNotebook returns the session snapshot (dataset shape + cells).
func (h *Handler) HandleNotebook(w http.ResponseWriter, r *http.Request) {
	s, ok := h.session(w, r)
	if !ok {
		return
	}
	writeJSON(w, http.StatusOK, s.Snapshot())
}

// HandleCreateCell appends a new cell.
func (h *Handler) HandleCreateCell(w http.ResponseWriter, r *http.Request) {
	s, ok := h.session(w, r)
	if !ok {
		return
	}
	var in struct {
		Kind    string `json:"kind"`
		Content string `json:"content"`
	}
	if !decodeBody(w, r, &in) {
		return
	}
	kind := notebook.CellKind(in.Kind)
	if !notebook.ValidKind(kind) {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "kind must be code, info or analysis"})
		return
	}
	c := s.CreateCell(kind, in.Content)
	writeJSON(w, http.StatusCreated, c)
}

// HandleEditCell replaces a cell's content.
func (h *Handler) HandleEditCell(w http.ResponseWriter, r *http.Request) {
	s, ok := h.session(w, r)
	if !ok {
		return
	}
	var in struct {
		Content string `json:"content"`
	}
	if !decodeBody(w, r, &in) {
		return
	}
	if err := s.EditCell(r.PathValue("cellID"), in.Content); err != nil {
		writeError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// HandleCellChart renders a cell's chart spec as SVG. Cells without a chart
// answer 204.
func (h *Handler) HandleCellChart(w http.ResponseWriter, r *http.Request) {
	s, ok := h.session(w, r)
	if !ok {
		return
	}
	c, found := s.Cell(r.PathValue("cellID"))
	if !found {
		writeError(w, notebook.ErrCellNotFound)
		return
	}
	if c.Output == nil || c.Output.Chart == nil {
		w.WriteHeader(http.StatusNoContent)
		return
	}
	svg := chart.Render(c.Output.Chart)
	if svg == "" {
		w.WriteHeader(http.StatusNoContent)
		return
	}
	w.Header().Set("Content-Type", "image/svg+xml")
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte(svg))
}
