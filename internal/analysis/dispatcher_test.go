package analysis

import (
	"errors"
	"sync"
	"testing"
	"time"

	"tabnote/internal/dataset"
)

// recordingSink remembers every attachment keyed by cell id.
type recordingSink struct {
	mu      sync.Mutex
	results map[string]*Result
}

func newRecordingSink() *recordingSink {
	return &recordingSink{results: make(map[string]*Result)}
}

func (r *recordingSink) AttachOutput(cellID string, res *Result) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.results[cellID] = res
	return nil
}

func (r *recordingSink) get(cellID string) *Result {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.results[cellID]
}

func waitDone(t *testing.T, run *Run) {
	t.Helper()
	select {
	case <-run.Done:
	case <-time.After(5 * time.Second):
		t.Fatalf("run %s did not resolve", run.ID)
	}
}

func testDataset(t *testing.T) *dataset.Dataset {
	t.Helper()
	ds, err := dataset.New([]string{"a", "b"}, [][]string{{"1", "2"}, {"3", "4"}})
	if err != nil {
		t.Fatalf("build dataset: %v", err)
	}
	return ds
}

func TestDispatchAttachesResult(t *testing.T) {
	sink := newRecordingSink()
	d := NewDispatcher(NewFake(), time.Second)
	run := d.Dispatch(testDataset(t), "descriptive", "cell-1", "run-1", sink)
	waitDone(t, run)

	res := sink.get("cell-1")
	if res == nil {
		t.Fatal("nothing attached")
	}
	if res.Title != "Fake descriptive" {
		t.Fatalf("title = %q", res.Title)
	}
	if run.ID != "run-1" || run.CellID != "cell-1" || run.Kind != KindDescriptive {
		t.Fatalf("run handle = %+v", run)
	}
}

func TestDispatchUnknownKindFallsBackToDescriptive(t *testing.T) {
	sink := newRecordingSink()
	d := NewDispatcher(NewFake(), time.Second)
	run := d.Dispatch(testDataset(t), "definitely-not-a-kind", "cell-1", "run-1", sink)
	waitDone(t, run)

	if run.Kind != KindDescriptive {
		t.Fatalf("kind = %q, want descriptive", run.Kind)
	}
	res := sink.get("cell-1")
	if res == nil || res.Title != "Fake descriptive" {
		t.Fatalf("attached %+v", res)
	}
}

func TestDispatchProviderFailureAttachesErrorResult(t *testing.T) {
	sink := newRecordingSink()
	fake := NewFake()
	fake.Fail = errors.New("backend unavailable")
	d := NewDispatcher(fake, time.Second)
	run := d.Dispatch(testDataset(t), "descriptive", "cell-1", "run-1", sink)
	waitDone(t, run)

	res := sink.get("cell-1")
	if res == nil {
		t.Fatal("failure did not attach a result")
	}
	msg, ok := res.Stats.Get("error")
	if !ok || msg != "backend unavailable" {
		t.Fatalf("error stat = %q, %v", msg, ok)
	}
	if res.Chart != nil {
		t.Fatal("failure result should not carry a chart")
	}
}

func TestDispatchTimeout(t *testing.T) {
	sink := newRecordingSink()
	fake := NewFake()
	fake.Delay = 500 * time.Millisecond
	d := NewDispatcher(fake, 20*time.Millisecond)
	run := d.Dispatch(testDataset(t), "descriptive", "cell-1", "run-1", sink)
	waitDone(t, run)

	res := sink.get("cell-1")
	if res == nil {
		t.Fatal("timeout did not attach a result")
	}
	if _, ok := res.Stats.Get("error"); !ok {
		t.Fatalf("expected error stat after timeout, got %+v", res.Stats)
	}
}

func TestDispatchConcurrentRunsResolveToOwnCells(t *testing.T) {
	sink := newRecordingSink()
	fake := NewFake()
	fake.Delay = 10 * time.Millisecond
	d := NewDispatcher(fake, time.Second)
	ds := testDataset(t)

	r1 := d.Dispatch(ds, "descriptive", "cell-1", "run-1", sink)
	r2 := d.Dispatch(ds, "chi-square", "cell-2", "run-2", sink)
	waitDone(t, r1)
	waitDone(t, r2)

	res1 := sink.get("cell-1")
	res2 := sink.get("cell-2")
	if res1 == nil || res1.Title != "Fake descriptive" {
		t.Fatalf("cell-1 got %+v", res1)
	}
	if res2 == nil || res2.Title != "Fake chi-square" {
		t.Fatalf("cell-2 got %+v", res2)
	}
}

func TestFailureResult(t *testing.T) {
	res := FailureResult(KindCorrelation, errors.New("boom"))
	if res.Title != "correlation (failed)" {
		t.Fatalf("title = %q", res.Title)
	}
	if msg, ok := res.Stats.Get("error"); !ok || msg != "boom" {
		t.Fatalf("error stat = %q", msg)
	}
}
