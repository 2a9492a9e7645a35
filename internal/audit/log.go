// Package audit keeps the console's recent activity.
package audit

import (
	"context"
	"errors"
	"maps"
	"sync"
	"time"

	"github.com/google/uuid"
)

// DefaultCapacity bounds the log when no capacity is configured.
const DefaultCapacity = 100

// Entry is one recorded mutation.
type Entry struct {
	ID       string         `json:"id"`
	Action   string         `json:"action"`
	Entity   string         `json:"entity"`
	EntityID string         `json:"entityId"`
	Meta     map[string]any `json:"meta,omitempty"`
	At       time.Time      `json:"at"`
}

// Log is a bounded in-memory activity log. The oldest entries are dropped
// once capacity is reached.
type Log struct {
	mu      sync.RWMutex
	entries []Entry
	next    int
	full    bool
	now     func() time.Time
}

// NewLog returns a log holding at most capacity entries.
func NewLog(capacity int) *Log {
	if capacity <= 0 {
		capacity = DefaultCapacity
	}
	return &Log{entries: make([]Entry, capacity), now: time.Now}
}

// Record stores the entry, assigning ID and At when unset.
func (l *Log) Record(ctx context.Context, entry Entry) error {
	if l == nil {
		return errors.New("audit log not initialised")
	}
	if entry.Action == "" || entry.Entity == "" || entry.EntityID == "" {
		return errors.New("audit entry requires action/entity/entity_id")
	}
	if entry.ID == "" {
		entry.ID = uuid.NewString()
	}
	if entry.At.IsZero() {
		entry.At = l.now().UTC()
	}
	entry.Meta = maps.Clone(entry.Meta)

	l.mu.Lock()
	defer l.mu.Unlock()
	l.entries[l.next] = entry
	l.next = (l.next + 1) % len(l.entries)
	if l.next == 0 {
		l.full = true
	}
	return nil
}

// Recent returns up to limit entries, newest first. A non-positive limit
// returns everything held.
func (l *Log) Recent(limit int) []Entry {
	if l == nil {
		return []Entry{}
	}
	l.mu.RLock()
	defer l.mu.RUnlock()

	size := l.next
	if l.full {
		size = len(l.entries)
	}
	if limit <= 0 || limit > size {
		limit = size
	}
	out := make([]Entry, 0, limit)
	for i := 1; i <= limit; i++ {
		idx := (l.next - i + len(l.entries)) % len(l.entries)
		out = append(out, l.entries[idx])
	}
	return out
}
