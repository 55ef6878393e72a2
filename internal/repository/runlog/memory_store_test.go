package runlog

import (
	"context"
	"testing"
	"time"
)

func TestAppendAndList(t *testing.T) {
	s := NewMemoryStore()
	ctx := context.Background()
	base := time.Now()

	recs := []Record{
		{RunID: "run-2", SessionID: "sess", CellID: "cell-2", Kind: "chi-square", Status: StatusStarted, StartedAt: base.Add(time.Second)},
		{RunID: "run-1", SessionID: "sess", CellID: "cell-1", Kind: "descriptive", Status: StatusStarted, StartedAt: base},
	}
	for _, r := range recs {
		if err := s.Append(ctx, r); err != nil {
			t.Fatalf("append %s: %v", r.RunID, err)
		}
	}

	got, err := s.ListBySession(ctx, "sess")
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(got) != 2 {
		t.Fatalf("got %d records, want 2", len(got))
	}
	// Ordered by start time, not insertion.
	if got[0].RunID != "run-1" || got[1].RunID != "run-2" {
		t.Fatalf("order = %s, %s", got[0].RunID, got[1].RunID)
	}
}

func TestResolutionReplacesStartRecord(t *testing.T) {
	s := NewMemoryStore()
	ctx := context.Background()
	started := time.Now()

	if err := s.Append(ctx, Record{
		RunID: "run-1", SessionID: "sess", CellID: "cell-1",
		Kind: "descriptive", Status: StatusStarted, StartedAt: started,
	}); err != nil {
		t.Fatalf("append start: %v", err)
	}
	if err := s.Append(ctx, Record{
		RunID: "run-1", SessionID: "sess", CellID: "cell-1",
		Kind: "descriptive", Status: StatusResolved, FinishedAt: started.Add(time.Second),
	}); err != nil {
		t.Fatalf("append resolution: %v", err)
	}

	got, _ := s.ListBySession(ctx, "sess")
	if len(got) != 1 {
		t.Fatalf("got %d records, want 1", len(got))
	}
	if got[0].Status != StatusResolved {
		t.Fatalf("status = %q", got[0].Status)
	}
	// The resolution record carried no start time; the original survives.
	if !got[0].StartedAt.Equal(started) {
		t.Fatalf("started at = %v, want %v", got[0].StartedAt, started)
	}
}

func TestAppendValidates(t *testing.T) {
	s := NewMemoryStore()
	ctx := context.Background()
	if err := s.Append(ctx, Record{SessionID: "sess"}); err == nil {
		t.Fatal("expected error for missing run id")
	}
	if err := s.Append(ctx, Record{RunID: "run-1"}); err == nil {
		t.Fatal("expected error for missing session id")
	}
	if _, err := s.ListBySession(ctx, "  "); err == nil {
		t.Fatal("expected error for blank session id")
	}
}

func TestListIsolatesSessions(t *testing.T) {
	s := NewMemoryStore()
	ctx := context.Background()
	_ = s.Append(ctx, Record{RunID: "run-1", SessionID: "a", Status: StatusStarted, StartedAt: time.Now()})
	_ = s.Append(ctx, Record{RunID: "run-1", SessionID: "b", Status: StatusStarted, StartedAt: time.Now()})

	got, _ := s.ListBySession(ctx, "a")
	if len(got) != 1 || got[0].SessionID != "a" {
		t.Fatalf("records = %+v", got)
	}
}
