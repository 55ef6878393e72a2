package analysis

import (
	"context"
	"strconv"
	"sync/atomic"
	"time"

	"tabnote/internal/dataset"
)

// Fake returns canned results for offline use and tests. Delay simulates a
// slow backend; Fail makes every call error.
type Fake struct {
	Delay time.Duration
	Fail  error

	calls atomic.Int64
}

func NewFake() *Fake { return &Fake{} }

func (f *Fake) Name() string { return "fake" }

// Calls reports how many Analyze invocations reached this provider.
func (f *Fake) Calls() int64 { return f.calls.Load() }

func (f *Fake) Analyze(ctx context.Context, ds *dataset.Dataset, kind Kind) (*Result, error) {
	f.calls.Add(1)
	if f.Delay > 0 {
		select {
		case <-time.After(f.Delay):
		case <-ctx.Done():
			return nil, ctx.Err()
		}
	}
	if f.Fail != nil {
		return nil, f.Fail
	}
	res := &Result{
		Title: "Fake " + string(kind),
		Stats: Stats{
			{Name: "kind", Value: string(kind)},
			{Name: "rows", Value: strconv.Itoa(ds.RowCount())},
		},
	}
	switch kind {
	case KindChiSquare, KindDemographic:
		res.Chart = &ChartSpec{Kind: ChartPie, Points: []Point{{Name: "a", Value: 1}, {Name: "b", Value: 2}}}
	case KindCorrelation:
		res.Chart = &ChartSpec{Kind: ChartScatter, Points: []Point{{X: 1, Y: 1}, {X: 2, Y: 4}}}
	default:
		res.Chart = &ChartSpec{Kind: ChartBar, Points: []Point{{Name: "a", Value: 1}, {Name: "b", Value: 2}}}
	}
	return res, nil
}
