// Package reporting keeps a bounded in-memory view of recently evaluated
// events for the read-only reporting surface.
package reporting

import (
	"sync"
	"time"

	"changegate/internal/entities"
)

type Entry struct {
	EvaluatedAt time.Time
	Result      *entities.EvaluationResult
}

// Log is a fixed-capacity ring of evaluation results, oldest entries dropped
// first. Safe for concurrent use by evaluation workers and HTTP readers.
type Log struct {
	mu       sync.Mutex
	capacity int
	entries  []Entry
}

func NewLog(capacity int) *Log {
	if capacity <= 0 {
		capacity = 128
	}
	return &Log{capacity: capacity}
}

func (l *Log) Append(result *entities.EvaluationResult) {
	l.mu.Lock()
	defer l.mu.Unlock()

	l.entries = append(l.entries, Entry{
		EvaluatedAt: time.Now(),
		Result:      result,
	})
	if len(l.entries) > l.capacity {
		l.entries = l.entries[len(l.entries)-l.capacity:]
	}
}

// List returns a copy of the retained entries, oldest first.
func (l *Log) List() []Entry {
	l.mu.Lock()
	defer l.mu.Unlock()

	out := make([]Entry, len(l.entries))
	copy(out, l.entries)
	return out
}
