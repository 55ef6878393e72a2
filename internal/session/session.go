// Package session owns all mutable notebook state: the loaded dataset, the
// opaque provider credential, the cell store, and the in-flight analysis
// runs. Every mutation goes through a Session method; there are no ad hoc
// field writes anywhere else.
package session

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"log"
	"strings"
	"sync"
	"sync/atomic"
	"time"

	"github.com/google/uuid"

	"tabnote/internal/analysis"
	"tabnote/internal/dataset"
	"tabnote/internal/notebook"
	"tabnote/internal/repository/runlog"
	"tabnote/internal/repository/upload"
	"tabnote/internal/template"
)

var (
	ErrNoDataset    = errors.New("no dataset loaded")
	ErrNoCredential = errors.New("no credential set")
)

// Deps are the collaborators a session needs. Uploads and Runs may be nil;
// the session then skips artifact storage / audit records.
type Deps struct {
	Dispatcher *analysis.Dispatcher
	Uploads    upload.Store
	Runs       runlog.Store
}

type Session struct {
	id     string
	deps   Deps
	events *Publisher

	mu          sync.RWMutex
	dataset     *dataset.Dataset
	datasetName string
	credential  string
	runs        map[string]*analysis.Run
	runSeq      atomic.Int64

	notebook *notebook.State
}

func New(deps Deps) *Session {
	return &Session{
		id:       uuid.NewString(),
		deps:     deps,
		events:   NewPublisher(),
		runs:     make(map[string]*analysis.Run),
		notebook: notebook.NewState(),
	}
}

func (s *Session) ID() string         { return s.id }
func (s *Session) Events() *Publisher { return s.events }

// LoadDataset ingests raw file bytes (CSV or XLSX by name) and replaces the
// session's dataset. Existing cells and their outputs are untouched. The raw
// upload is stored best-effort; a storage failure never fails the load.
func (s *Session) LoadDataset(ctx context.Context, name string, raw []byte) (*dataset.Dataset, error) {
	ds, err := dataset.Ingest(name, bytes.NewReader(raw))
	if err != nil {
		return nil, err
	}
	if s.deps.Uploads != nil {
		if err := s.deps.Uploads.Put(ctx, s.id, strings.TrimSpace(name), raw); err != nil {
			log.Printf("session %s: store upload %q failed: %v", s.id, name, err)
		}
	}
	s.mu.Lock()
	s.dataset = ds
	s.datasetName = strings.TrimSpace(name)
	s.mu.Unlock()

	s.events.Publish(Event{Type: EventDatasetLoaded, SessionID: s.id})
	return ds, nil
}

func (s *Session) SetCredential(credential string) {
	s.mu.Lock()
	s.credential = strings.TrimSpace(credential)
	s.mu.Unlock()
}

// Dataset returns the current dataset, which may be nil.
func (s *Session) Dataset() *dataset.Dataset {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.dataset
}

func (s *Session) CreateCell(kind notebook.CellKind, content string) notebook.Cell {
	c := s.notebook.CreateCell(kind, content)
	s.events.Publish(Event{Type: EventCellCreated, SessionID: s.id, CellID: c.ID})
	return c
}

func (s *Session) EditCell(id, content string) error {
	if err := s.notebook.EditContent(id, content); err != nil {
		return err
	}
	s.events.Publish(Event{Type: EventCellUpdated, SessionID: s.id, CellID: id})
	return nil
}

func (s *Session) Cell(id string) (notebook.Cell, bool) { return s.notebook.Get(id) }
func (s *Session) Cells() []notebook.Cell               { return s.notebook.Cells() }

// RunAnalysis dispatches rawKind against the current dataset for an existing
// cell. Preconditions (dataset, credential) are checked first; on failure
// nothing is created or mutated and a typed error is returned.
func (s *Session) RunAnalysis(cellID, rawKind string) (*analysis.Run, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.notebook.Get(cellID); !ok {
		return nil, notebook.ErrCellNotFound
	}
	return s.dispatchLocked(cellID, rawKind)
}

// ApplyTemplate creates an analysis cell from the template and immediately
// dispatches its kind for that cell. The whole composite runs under the
// session lock, so the created cell is exactly the one the async result will
// attach to. When the precondition gate fails no cell is created.
func (s *Session) ApplyTemplate(templateID string) (notebook.Cell, *analysis.Run, error) {
	tpl, err := template.Lookup(templateID)
	if err != nil {
		return notebook.Cell{}, nil, err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.gateLocked(); err != nil {
		return notebook.Cell{}, nil, err
	}
	c := s.notebook.CreateCell(notebook.CellAnalysis, tpl.Description)
	s.events.Publish(Event{Type: EventCellCreated, SessionID: s.id, CellID: c.ID})
	run, err := s.dispatchLocked(c.ID, tpl.Kind)
	if err != nil {
		return notebook.Cell{}, nil, err
	}
	return c, run, nil
}

func (s *Session) gateLocked() error {
	if s.dataset == nil {
		return ErrNoDataset
	}
	if s.credential == "" {
		return ErrNoCredential
	}
	return nil
}

func (s *Session) dispatchLocked(cellID, rawKind string) (*analysis.Run, error) {
	if err := s.gateLocked(); err != nil {
		return nil, err
	}
	kind, _ := analysis.ParseKind(rawKind)
	runID := fmt.Sprintf("run-%d", s.runSeq.Add(1))
	sink := &attachSink{s: s, runID: runID, kind: kind, startedAt: time.Now()}

	s.appendRunlog(runlog.Record{
		RunID:     runID,
		SessionID: s.id,
		CellID:    cellID,
		Kind:      string(kind),
		Status:    runlog.StatusStarted,
		StartedAt: sink.startedAt,
	})
	run := s.deps.Dispatcher.Dispatch(s.dataset, rawKind, cellID, runID, sink)
	s.runs[run.ID] = run
	s.events.Publish(Event{Type: EventRunStarted, SessionID: s.id, CellID: cellID, RunID: run.ID, Kind: string(run.Kind)})
	return run, nil
}

// Run looks up an in-flight or completed run handle.
func (s *Session) Run(runID string) (*analysis.Run, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	run, ok := s.runs[runID]
	return run, ok
}

// RunHistory returns the audit ledger for this session.
func (s *Session) RunHistory(ctx context.Context) ([]runlog.Record, error) {
	if s.deps.Runs == nil {
		return nil, nil
	}
	return s.deps.Runs.ListBySession(ctx, s.id)
}

func (s *Session) appendRunlog(rec runlog.Record) {
	if s.deps.Runs == nil {
		return
	}
	if err := s.deps.Runs.Append(context.Background(), rec); err != nil {
		log.Printf("session %s: runlog append %s failed: %v", s.id, rec.RunID, err)
	}
}

// attachSink routes a resolved result into the notebook, then records and
// announces it. It deliberately takes no session lock: the notebook has its
// own, and a dispatch resolving must never contend with session operations.
type attachSink struct {
	s         *Session
	runID     string
	kind      analysis.Kind
	startedAt time.Time
}

func (a *attachSink) AttachOutput(cellID string, res *analysis.Result) error {
	if err := a.s.notebook.AttachOutput(cellID, res); err != nil {
		return err
	}
	status := runlog.StatusResolved
	errText := ""
	if res != nil {
		if msg, ok := res.Stats.Get("error"); ok {
			status = runlog.StatusFailed
			errText = msg
		}
	}
	a.s.appendRunlog(runlog.Record{
		RunID:      a.runID,
		SessionID:  a.s.id,
		CellID:     cellID,
		Kind:       string(a.kind),
		Status:     status,
		Error:      errText,
		StartedAt:  a.startedAt,
		FinishedAt: time.Now(),
	})
	a.s.events.Publish(Event{Type: EventOutputAttached, SessionID: a.s.id, CellID: cellID, RunID: a.runID, Kind: string(a.kind)})
	return nil
}
