package session

import (
	"sync"
	"time"
)

type EventType string

const (
	EventDatasetLoaded  EventType = "dataset_loaded"
	EventCellCreated    EventType = "cell_created"
	EventCellUpdated    EventType = "cell_updated"
	EventRunStarted     EventType = "run_started"
	EventOutputAttached EventType = "output_attached"
)

// Event is one notebook change, fanned out to websocket/SSE subscribers.
type Event struct {
	Type      EventType `json:"type"`
	SessionID string    `json:"sessionId"`
	CellID    string    `json:"cellId,omitempty"`
	RunID     string    `json:"runId,omitempty"`
	Kind      string    `json:"kind,omitempty"`
	At        time.Time `json:"at"`
}

// Publisher fans events out to subscriber channels. Sends never block: a
// subscriber that falls behind loses events rather than stalling a dispatch.
type Publisher struct {
	mu     sync.Mutex
	nextID int
	subs   map[int]chan Event
}

func NewPublisher() *Publisher {
	return &Publisher{subs: make(map[int]chan Event)}
}

// Subscribe registers a buffered event channel. The returned cancel func
// unregisters and closes it.
func (p *Publisher) Subscribe(buffer int) (<-chan Event, func()) {
	if buffer <= 0 {
		buffer = 16
	}
	ch := make(chan Event, buffer)
	p.mu.Lock()
	id := p.nextID
	p.nextID++
	p.subs[id] = ch
	p.mu.Unlock()

	var once sync.Once
	cancel := func() {
		once.Do(func() {
			p.mu.Lock()
			delete(p.subs, id)
			p.mu.Unlock()
			close(ch)
		})
	}
	return ch, cancel
}

func (p *Publisher) Publish(ev Event) {
	if ev.At.IsZero() {
		ev.At = time.Now()
	}
	p.mu.Lock()
	defer p.mu.Unlock()
	for _, ch := range p.subs {
		select {
		case ch <- ev:
		default:
		}
	}
}
