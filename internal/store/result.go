package store

import (
	"sync"

	"github.com/dhruvywuvy/advocare-demo-day/internal/domain"
)

// ResultStore holds the most recent analysis outcome for the session.
// Single slot: absent until the first successful submission, then
// replaced wholesale by each later success. Never merged, never cleared.
//
// The store is an injected dependency of whatever reads or writes it, so
// its lifetime is exactly the process lifetime (a restart starts absent).
type ResultStore struct {
	mu       sync.RWMutex
	result   *domain.AnalysisResult
	watchers []chan struct{}
}

func NewResultStore() *ResultStore {
	return &ResultStore{}
}

// Read returns the current result and whether one is present.
// Callers must treat the value as read-only.
func (s *ResultStore) Read() (*domain.AnalysisResult, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.result, s.result != nil
}

// Write replaces the slot and notifies watchers. Notification is
// whole-value: watchers re-read, there is no diffing.
func (s *ResultStore) Write(result *domain.AnalysisResult) {
	s.mu.Lock()
	s.result = result
	watchers := s.watchers
	s.mu.Unlock()

	for _, ch := range watchers {
		select {
		case ch <- struct{}{}:
		default: // watcher is behind; it will re-read on its next receive
		}
	}
}

// Watch returns a channel that receives after each Write. The channel
// has capacity 1 so a slow watcher coalesces bursts instead of blocking
// the writer.
func (s *ResultStore) Watch() <-chan struct{} {
	ch := make(chan struct{}, 1)
	s.mu.Lock()
	s.watchers = append(s.watchers, ch)
	s.mu.Unlock()
	return ch
}
