package analysis

import (
	"context"
	"errors"

	"tabnote/internal/dataset"
)

// Provider is the seam between the notebook core and the statistics backend.
// Implementations must honor ctx cancellation; the dispatcher bounds every
// call with a timeout.
type Provider interface {
	Name() string
	Analyze(ctx context.Context, ds *dataset.Dataset, kind Kind) (*Result, error)
}

// ErrProvider wraps backend failures so callers can distinguish them from
// local programming errors.
var ErrProvider = errors.New("analysis provider failed")
