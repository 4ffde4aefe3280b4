package eventlog

import (
	"context"
	"sync"
)

type MemoryLog struct {
	mu         sync.Mutex
	events     []Event
	maxEntries int
}

// NewMemoryLog keeps at most maxEntries events; 0 means unbounded.
func NewMemoryLog(maxEntries int) *MemoryLog {
	return &MemoryLog{maxEntries: maxEntries}
}

func (l *MemoryLog) Append(_ context.Context, e Event) error {
	l.mu.Lock()
	defer l.mu.Unlock()

	l.events = append(l.events, e)
	if l.maxEntries > 0 && len(l.events) > l.maxEntries {
		l.events = l.events[len(l.events)-l.maxEntries:]
	}
	return nil
}

func (l *MemoryLog) List(_ context.Context, limit int) ([]Event, error) {
	l.mu.Lock()
	defer l.mu.Unlock()

	n := len(l.events)
	if limit > 0 && limit < n {
		n = limit
	}
	out := make([]Event, n)
	for i := range n {
		out[i] = l.events[len(l.events)-1-i]
	}
	return out, nil
}
