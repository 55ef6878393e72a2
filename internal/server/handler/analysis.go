package handler

import (
	"net/http"

	"tabnote/internal/template"
)

// HandleRunAnalysis dispatches an analysis kind against an existing cell.
// The run resolves asynchronously; the response only names it.
func (h *Handler) HandleRunAnalysis(w http.ResponseWriter, r *http.Request) {
	s, ok := h.session(w, r)
	if !ok {
		return
	}
	var in struct {
		Kind string `json:"kind"`
	}
	if !decodeBody(w, r, &in) {
		return
	}
	run, err := s.RunAnalysis(r.PathValue("cellID"), in.Kind)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusAccepted, map[string]string{
		"runId":  run.ID,
		"cellId": run.CellID,
		"kind":   string(run.Kind),
	})
}

// HandleTemplates lists the static analysis shortcuts.
func (h *Handler) HandleTemplates(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]any{"templates": template.Catalog()})
}

// HandleApplyTemplate runs the template composite: create an analysis cell,
// then dispatch its kind for that cell. A failed precondition gate creates
// nothing.
func (h *Handler) HandleApplyTemplate(w http.ResponseWriter, r *http.Request) {
	s, ok := h.session(w, r)
	if !ok {
		return
	}
	cell, run, err := s.ApplyTemplate(r.PathValue("templateID"))
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusAccepted, map[string]any{
		"cell":  cell,
		"runId": run.ID,
		"kind":  string(run.Kind),
	})
}
