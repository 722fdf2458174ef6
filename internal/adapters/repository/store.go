// Package repository holds the loaded schedule snapshot and its derived
// indices. A snapshot is immutable once stored; a new load replaces it
// wholesale so readers always see games, vocabulary and last-game index
// from the same load attempt.
package repository

import (
	"context"
	"time"

	"github.com/sidelinehq/matchday/internal/domain/model"
	"github.com/sidelinehq/matchday/internal/domain/schedule"
)

// Snapshot is the result of one successful load attempt.
type Snapshot struct {
	Games      []model.Game
	Vocabulary schedule.Vocabulary
	LastGames  map[int]struct{}
	LoadedAt   time.Time
	AttemptID  string
}

// Store provides access to the current schedule snapshot.
type Store interface {
	// Replace swaps in a new snapshot atomically.
	Replace(ctx context.Context, snap Snapshot)

	// Current returns the latest snapshot.
	// Returns ErrNotLoaded until the first successful load.
	Current(ctx context.Context) (Snapshot, error)

	// Count returns the number of games in the current snapshot.
	Count(ctx context.Context) int
}
