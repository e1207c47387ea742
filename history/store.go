// Package history keeps a bounded, in-memory record of completed and
// failed alignment jobs, keyed by job ID, for the API's /api/history
// endpoints and the /ws progress stream.
package history

import (
	"sync"
	"time"

	"phoneticwalk/align"
)

// Entry is one recorded alignment job.
type Entry struct {
	ID          string       `json:"id"`
	SubmittedAt time.Time    `json:"submittedAt"`
	FinishedAt  time.Time    `json:"finishedAt"`
	Result      align.Result `json:"result"`
	Err         string       `json:"error,omitempty"`
}

// Store is a mutex-protected in-memory job history, grounded on the
// same map-plus-RWMutex shape session.Manager uses to track recording
// sessions, scaled down to the fields an alignment job actually needs.
type Store struct {
	mu      sync.RWMutex
	entries map[string]*Entry
	order   []string // insertion order, oldest first
	cap     int
}

// NewStore creates a Store that retains at most maxEntries jobs,
// evicting the oldest once full. maxEntries <= 0 means unbounded.
func NewStore(maxEntries int) *Store {
	return &Store{
		entries: make(map[string]*Entry),
		cap:     maxEntries,
	}
}

// Put records or replaces the entry for id.
func (s *Store) Put(e *Entry) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, exists := s.entries[e.ID]; !exists {
		s.order = append(s.order, e.ID)
	}
	s.entries[e.ID] = e

	if s.cap > 0 {
		for len(s.order) > s.cap {
			oldest := s.order[0]
			s.order = s.order[1:]
			delete(s.entries, oldest)
		}
	}
}

// Get returns the entry for id, or (nil, false) if it isn't known.
func (s *Store) Get(id string) (*Entry, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	e, ok := s.entries[id]
	return e, ok
}

// List returns all recorded entries, most recently added first (by the
// first Put of each ID).
func (s *Store) List() []*Entry {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]*Entry, len(s.order))
	for i, id := range s.order {
		out[len(out)-1-i] = s.entries[id]
	}
	return out
}
