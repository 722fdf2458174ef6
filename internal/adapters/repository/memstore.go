package repository

import (
	"context"
	"sync"
)

// MemoryStore is an in-memory Store guarded by a RWMutex. Snapshots are
// built off-lock by the caller; Replace only swaps the pointer, so readers
// never observe a half-built snapshot.
type MemoryStore struct {
	mu   sync.RWMutex
	snap *Snapshot
}

// NewMemoryStore creates an empty MemoryStore.
func NewMemoryStore(_ context.Context) *MemoryStore {
	return &MemoryStore{}
}

// Replace swaps in a new snapshot atomically.
func (s *MemoryStore) Replace(_ context.Context, snap Snapshot) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.snap = &snap
}

// Current returns the latest snapshot, or ErrNotLoaded before the first
// successful load.
func (s *MemoryStore) Current(_ context.Context) (Snapshot, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.snap == nil {
		return Snapshot{}, ErrNotLoaded
	}
	return *s.snap, nil
}

// Count returns the number of games in the current snapshot.
func (s *MemoryStore) Count(_ context.Context) int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.snap == nil {
		return 0
	}
	return len(s.snap.Games)
}
