package analysis

import (
	"context"
	"log"
	"time"

	"tabnote/internal/dataset"
)

// OutputSink receives the resolved result for a cell. The notebook state is
// the real sink; the session wraps it to log runs and publish events.
type OutputSink interface {
	AttachOutput(cellID string, res *Result) error
}

// Dispatcher turns an analysis request into an asynchronous provider call
// that eventually attaches a result to the requesting cell. Every dispatch is
// independent: two in-flight runs never share state beyond the provider, and
// each one only ever writes to its own cell id.
//
// Overlapping runs on the same cell are allowed; the last to resolve wins.
type Dispatcher struct {
	provider Provider
	timeout  time.Duration
}

// Run is a handle to one in-flight dispatch. Done closes after the result
// (success or failure) has been attached.
type Run struct {
	ID     string
	CellID string
	Kind   Kind
	Done   <-chan struct{}
}

func NewDispatcher(provider Provider, timeout time.Duration) *Dispatcher {
	if timeout <= 0 {
		timeout = 30 * time.Second
	}
	return &Dispatcher{provider: provider, timeout: timeout}
}

// Dispatch resolves rawKind (unknown kinds degrade to descriptive) and runs
// the provider in a goroutine. runID is caller-assigned so the caller can
// ledger the run before it resolves. The provider call is bounded by the
// dispatcher's timeout on a detached context: cancelling the caller's request
// does not abandon the cell, which always ends up with either the provider's
// result or a failure result.
func (d *Dispatcher) Dispatch(ds *dataset.Dataset, rawKind, cellID, runID string, sink OutputSink) *Run {
	kind, known := ParseKind(rawKind)
	if !known {
		log.Printf("analysis: unknown kind %q, running descriptive", rawKind)
	}

	done := make(chan struct{})
	go func() {
		defer close(done)
		ctx, cancel := context.WithTimeout(context.Background(), d.timeout)
		defer cancel()

		res, err := d.provider.Analyze(ctx, ds, kind)
		if err != nil {
			log.Printf("analysis: run %s (%s) on cell %s failed: %v", runID, kind, cellID, err)
			res = FailureResult(kind, err)
		}
		if err := sink.AttachOutput(cellID, res); err != nil {
			log.Printf("analysis: run %s attach to cell %s failed: %v", runID, cellID, err)
		}
	}()

	return &Run{ID: runID, CellID: cellID, Kind: kind, Done: done}
}

// Timeout reports the per-run provider bound.
func (d *Dispatcher) Timeout() time.Duration { return d.timeout }

// FailureResult is the displayable form of a provider error: an error stat
// and no chart, so the cell renders a message instead of sticking.
func FailureResult(kind Kind, err error) *Result {
	msg := "analysis failed"
	if err != nil {
		msg = err.Error()
	}
	return &Result{
		Title: string(kind) + " (failed)",
		Stats: Stats{{Name: "error", Value: msg}},
	}
}
