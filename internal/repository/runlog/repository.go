// Package runlog records analysis runs for operational audit. The ledger is
// append-only; it is not notebook persistence and nothing is restored from it.
package runlog

import (
	"context"
	"time"
)

// Status values for a Record.
const (
	StatusStarted  = "started"
	StatusResolved = "resolved"
	StatusFailed   = "failed"
)

// Record is one analysis run, written once at start and once at resolution.
type Record struct {
	RunID      string    `json:"runId"`
	SessionID  string    `json:"sessionId"`
	CellID     string    `json:"cellId"`
	Kind       string    `json:"kind"`
	Status     string    `json:"status"`
	Error      string    `json:"error,omitempty"`
	StartedAt  time.Time `json:"startedAt"`
	FinishedAt time.Time `json:"finishedAt,omitzero"`
}

type Store interface {
	Append(ctx context.Context, rec Record) error
	// ListBySession returns records ordered by start time, oldest first.
	// A resolution record replaces the started record for the same run id.
	ListBySession(ctx context.Context, sessionID string) ([]Record, error)
}
