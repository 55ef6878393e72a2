package handler

import (
	"encoding/json"
	"fmt"
	"net/http"
)

// HandleWatchRun streams one run's lifecycle over Server-Sent Events: a
// "started" event immediately, then "complete" with the attached output once
// the dispatch resolves.
func (h *Handler) HandleWatchRun(w http.ResponseWriter, r *http.Request) {
	s, ok := h.session(w, r)
	if !ok {
		return
	}
	run, found := s.Run(r.PathValue("runID"))
	if !found {
		writeJSON(w, http.StatusNotFound, map[string]string{"error": "run not found"})
		return
	}

	w.Header().Set("Content-Type", "text/event-stream")
	w.Header().Set("Cache-Control", "no-cache")
	w.Header().Set("Connection", "keep-alive")

	flusher, canFlush := w.(http.Flusher)
	if !canFlush {
		http.Error(w, "streaming unsupported", http.StatusInternalServerError)
		return
	}

	sendEvent(w, "started", map[string]string{
		"runId":  run.ID,
		"cellId": run.CellID,
		"kind":   string(run.Kind),
	})
	flusher.Flush()

	select {
	case <-r.Context().Done():
		return
	case <-run.Done:
	}

	cell, _ := s.Cell(run.CellID)
	sendEvent(w, "complete", map[string]any{
		"runId":  run.ID,
		"cellId": run.CellID,
		"output": cell.Output,
	})
	flusher.Flush()
}

func sendEvent(w http.ResponseWriter, event string, payload any) {
	raw, err := json.Marshal(payload)
	if err != nil {
		raw = []byte(`{}`)
	}
	fmt.Fprintf(w, "event: %s\ndata: %s\n\n", event, raw)
}
