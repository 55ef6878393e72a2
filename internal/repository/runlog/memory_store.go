package runlog

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"sync"
)

type MemoryStore struct {
	mu   sync.RWMutex
	recs map[string]map[string]Record
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{recs: make(map[string]map[string]Record)}
}

func (s *MemoryStore) Append(_ context.Context, rec Record) error {
	if err := validate(rec); err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	bySession := s.recs[rec.SessionID]
	if bySession == nil {
		bySession = make(map[string]Record)
		s.recs[rec.SessionID] = bySession
	}
	if prev, ok := bySession[rec.RunID]; ok && rec.StartedAt.IsZero() {
		rec.StartedAt = prev.StartedAt
	}
	bySession[rec.RunID] = rec
	return nil
}

func (s *MemoryStore) ListBySession(_ context.Context, sessionID string) ([]Record, error) {
	sessionID = strings.TrimSpace(sessionID)
	if sessionID == "" {
		return nil, fmt.Errorf("session_id is required")
	}
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]Record, 0, len(s.recs[sessionID]))
	for _, rec := range s.recs[sessionID] {
		out = append(out, rec)
	}
	sort.Slice(out, func(i, j int) bool {
		if !out[i].StartedAt.Equal(out[j].StartedAt) {
			return out[i].StartedAt.Before(out[j].StartedAt)
		}
		return out[i].RunID < out[j].RunID
	})
	return out, nil
}

func validate(rec Record) error {
	if strings.TrimSpace(rec.SessionID) == "" {
		return fmt.Errorf("session_id is required")
	}
	if strings.TrimSpace(rec.RunID) == "" {
		return fmt.Errorf("run_id is required")
	}
	return nil
}
