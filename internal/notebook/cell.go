package notebook

import (
	"time"

	"tabnote/internal/analysis"
)

// CellKind classifies what a cell holds.
type CellKind string

const (
	// CellCode is editable free text.
	CellCode CellKind = "code"
	// CellInfo is static descriptive text.
	CellInfo CellKind = "info"
	// CellAnalysis is an analysis request; its Output carries the result.
	CellAnalysis CellKind = "analysis"
)

// Cell is one ordered unit of the notebook. Cells are handed out as values;
// the state keeps the canonical copy and all mutation goes through it.
type Cell struct {
	ID        string           `json:"id"`
	Kind      CellKind         `json:"kind"`
	Content   string           `json:"content"`
	Output    *analysis.Result `json:"output,omitempty"`
	CreatedAt time.Time        `json:"createdAt"`
}

// ValidKind reports whether k is one of the three cell kinds.
func ValidKind(k CellKind) bool {
	switch k {
	case CellCode, CellInfo, CellAnalysis:
		return true
	}
	return false
}
