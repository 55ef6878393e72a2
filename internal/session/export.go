package session

import (
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/vmihailenco/msgpack/v5"

	"tabnote/internal/notebook"
)

// Snapshot is the exportable view of a session: dataset shape plus every
// cell with its current output. The credential itself is never exported.
type Snapshot struct {
	SessionID     string          `json:"sessionId" msgpack:"session_id"`
	DatasetName   string          `json:"datasetName,omitempty" msgpack:"dataset_name"`
	Headers       []string        `json:"headers,omitempty" msgpack:"headers"`
	RowCount      int             `json:"rowCount" msgpack:"row_count"`
	HasCredential bool            `json:"hasCredential" msgpack:"has_credential"`
	Cells         []notebook.Cell `json:"cells" msgpack:"cells"`
	ExportedAt    time.Time       `json:"exportedAt" msgpack:"exported_at"`
}

func (s *Session) Snapshot() Snapshot {
	s.mu.RLock()
	snap := Snapshot{
		SessionID:     s.id,
		DatasetName:   s.datasetName,
		HasCredential: s.credential != "",
		ExportedAt:    time.Now(),
	}
	if s.dataset != nil {
		snap.Headers = s.dataset.Headers()
		snap.RowCount = s.dataset.RowCount()
	}
	s.mu.RUnlock()
	snap.Cells = s.notebook.Cells()
	return snap
}

// Export encodes the snapshot. Supported formats: "json" (default) and
// "msgpack". The returned content type matches the encoding.
func (s *Session) Export(format string) ([]byte, string, error) {
	snap := s.Snapshot()
	switch strings.ToLower(strings.TrimSpace(format)) {
	case "", "json":
		raw, err := json.MarshalIndent(snap, "", "  ")
		if err != nil {
			return nil, "", fmt.Errorf("export json: %w", err)
		}
		return raw, "application/json", nil
	case "msgpack":
		raw, err := msgpack.Marshal(snap)
		if err != nil {
			return nil, "", fmt.Errorf("export msgpack: %w", err)
		}
		return raw, "application/x-msgpack", nil
	default:
		return nil, "", fmt.Errorf("unsupported export format %q", format)
	}
}

// DecodeSnapshot reads an exported snapshot back, picking the decoder from
// the content type it was exported with.
func DecodeSnapshot(raw []byte, contentType string) (Snapshot, error) {
	var snap Snapshot
	if strings.Contains(contentType, "msgpack") {
		if err := msgpack.Unmarshal(raw, &snap); err != nil {
			return Snapshot{}, fmt.Errorf("decode msgpack snapshot: %w", err)
		}
		return snap, nil
	}
	if err := json.Unmarshal(raw, &snap); err != nil {
		return Snapshot{}, fmt.Errorf("decode json snapshot: %w", err)
	}
	return snap, nil
}
