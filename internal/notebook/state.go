package notebook

import (
	"errors"
	"fmt"
	"sync"
	"time"

	"tabnote/internal/analysis"
)

var ErrCellNotFound = errors.New("cell not found")

// State owns the ordered cell collection. Ids come from a monotonic counter
// owned by the state, so rapid creation can never collide the way wall-clock
// ids can. Cell order always equals creation order; attaching an output never
// reorders anything.
type State struct {
	mu    sync.RWMutex
	order []string
	cells map[string]*Cell
	seq   int64
}

func NewState() *State {
	return &State{cells: make(map[string]*Cell)}
}

// CreateCell appends a new cell with a fresh unique id and no output.
func (s *State) CreateCell(kind CellKind, content string) Cell {
	if !ValidKind(kind) {
		kind = CellInfo
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.seq++
	c := &Cell{
		ID:        fmt.Sprintf("cell-%d", s.seq),
		Kind:      kind,
		Content:   content,
		CreatedAt: time.Now(),
	}
	s.order = append(s.order, c.ID)
	s.cells[c.ID] = c
	return *c
}

// EditContent replaces the content of the matching cell.
func (s *State) EditContent(id, content string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	c, ok := s.cells[id]
	if !ok {
		return fmt.Errorf("edit %q: %w", id, ErrCellNotFound)
	}
	c.Content = content
	return nil
}

// AttachOutput sets the output of the matching cell, overwriting any prior
// result. This is the only mutation the dispatcher can reach; it touches
// nothing but the addressed cell, so concurrent attachments to different ids
// cannot interfere.
func (s *State) AttachOutput(id string, res *analysis.Result) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	c, ok := s.cells[id]
	if !ok {
		return fmt.Errorf("attach %q: %w", id, ErrCellNotFound)
	}
	c.Output = res
	return nil
}

// Get returns a snapshot of one cell.
func (s *State) Get(id string) (Cell, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	c, ok := s.cells[id]
	if !ok {
		return Cell{}, false
	}
	return *c, true
}

// Cells returns a snapshot of all cells in creation order.
func (s *State) Cells() []Cell {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]Cell, 0, len(s.order))
	for _, id := range s.order {
		out = append(out, *s.cells[id])
	}
	return out
}

func (s *State) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.order)
}
