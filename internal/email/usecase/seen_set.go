package usecase

import (
	"log"
	"sync"
)

// SeenSet is a bounded set of message ids handled by this process. When it
// would exceed its capacity it is cleared entirely rather than evicting the
// oldest entries; the durable ledger keeps reprocessing idempotent.
type SeenSet struct {
	mu       sync.Mutex
	ids      map[string]struct{}
	capacity int
}

// NewSeenSet creates an empty set holding at most capacity ids.
func NewSeenSet(capacity int) *SeenSet {
	if capacity < 1 {
		capacity = 1000
	}
	return &SeenSet{ids: make(map[string]struct{}), capacity: capacity}
}

// Add claims id and reports whether it was newly added.
func (s *SeenSet) Add(id string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.ids[id]; ok {
		return false
	}
	if len(s.ids) >= s.capacity {
		log.Printf("[Poller] Seen-set reached %d ids, clearing", len(s.ids))
		s.ids = make(map[string]struct{}, s.capacity)
	}
	s.ids[id] = struct{}{}
	return true
}

// Contains reports whether id has been claimed.
func (s *SeenSet) Contains(id string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	_, ok := s.ids[id]
	return ok
}

// Remove releases a claim so a later cycle can retry the message.
func (s *SeenSet) Remove(id string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.ids, id)
}

// Len returns the number of ids currently held.
func (s *SeenSet) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.ids)
}
