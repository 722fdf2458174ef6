// Package service provides the core schedule service that implements the
// dependencies required by the HTTP API.
package service

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/sidelinehq/matchday/internal/adapters/repository"
	"github.com/sidelinehq/matchday/internal/adapters/source"
	"github.com/sidelinehq/matchday/internal/domain/model"
	"github.com/sidelinehq/matchday/internal/domain/render"
	"github.com/sidelinehq/matchday/internal/domain/schedule"
	"github.com/sidelinehq/matchday/pkg/logger"
	"github.com/sidelinehq/matchday/pkg/metrics"
)

// Service owns the schedule snapshot lifecycle: it runs load attempts,
// derives the filter vocabulary and last-game index, and answers the
// filter/render queries the HTTP layer exposes.
type Service struct {
	mu sync.RWMutex

	// Core components
	store      repository.Store
	loader     *source.Loader
	normalizer *schedule.Normalizer
	renderer   *render.Renderer

	// Configuration
	sourcePath      string
	sourceFormat    source.Format
	cacheBust       bool
	defaultDivision string

	// State
	started bool
	lastErr error

	// Logging
	logger logger.Logger
}

// Option applies a configuration option to the Service.
type Option func(*Service)

// WithSource sets the schedule source path or URL.
func WithSource(src string) Option {
	return func(s *Service) {
		if src != "" {
			s.sourcePath = src
		}
	}
}

// WithSourceFormat forces a decode format instead of auto-detection.
func WithSourceFormat(format source.Format) Option {
	return func(s *Service) {
		if format != "" {
			s.sourceFormat = format
		}
	}
}

// WithCacheBust toggles the cache-busting query parameter on HTTP fetches.
func WithCacheBust(enabled bool) Option {
	return func(s *Service) {
		s.cacheBust = enabled
	}
}

// WithDefaultDivision sets the label for games without a division.
func WithDefaultDivision(label string) Option {
	return func(s *Service) {
		if label != "" {
			s.defaultDivision = label
		}
	}
}

// WithLogger sets a custom logger for the service.
func WithLogger(l logger.Logger) Option {
	return func(s *Service) {
		if l != nil {
			s.logger = l
		}
	}
}

// WithLoader overrides the schedule loader; mainly for tests.
func WithLoader(l *source.Loader) Option {
	return func(s *Service) {
		if l != nil {
			s.loader = l
		}
	}
}

// WithRenderer overrides the renderer; mainly for pinning the clock in tests.
func WithRenderer(r *render.Renderer) Option {
	return func(s *Service) {
		if r != nil {
			s.renderer = r
		}
	}
}

// New constructs a new Service with default configuration.
func New(opts ...Option) *Service {
	s := &Service{
		sourcePath:      "assets/data/schedule.json",
		sourceFormat:    source.FormatAuto,
		cacheBust:       true,
		defaultDivision: "Unknown",
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Start initializes components and runs the initial load attempt. A failed
// initial load does not fail startup: the site still serves, showing the
// load error in place of the schedule until an attempt succeeds.
func (s *Service) Start(ctx context.Context) error {
	s.mu.Lock()
	if s.started {
		s.mu.Unlock()
		return nil
	}

	if s.logger == nil {
		s.logger = logger.Get()
	}
	if s.store == nil {
		s.store = repository.NewMemoryStore(ctx)
	}
	if s.loader == nil {
		s.loader = source.NewLoader(s.sourcePath,
			source.WithFormat(s.sourceFormat),
			source.WithCacheBust(s.cacheBust),
		)
	}
	s.normalizer = schedule.NewNormalizer(schedule.WithDefaultDivision(s.defaultDivision))
	if s.renderer == nil {
		s.renderer = render.NewRenderer()
	}
	s.started = true
	s.mu.Unlock()

	s.logger.Info(ctx, "starting schedule service", logger.String("source", s.sourcePath))

	if err := s.Reload(ctx); err != nil {
		s.logger.Warn(ctx, "initial schedule load failed", logger.Error(err))
	}
	return nil
}

// Stop shuts the service down.
func (s *Service) Stop() {
	s.mu.Lock()
	defer s.mu.Unlock()
	if !s.started {
		return
	}
	s.started = false
	s.logger.Info(context.Background(), "schedule service stopped")
}

// Reload runs exactly one load attempt: fetch, normalize, derive the
// vocabulary and last-game index, and swap the snapshot in atomically.
// There is no retry; on failure the previous snapshot, if any, stays.
func (s *Service) Reload(ctx context.Context) error {
	attemptID := uuid.NewString()
	start := time.Now()

	records, err := s.loader.Load(ctx)
	if err != nil {
		metrics.RecordScheduleLoadFailure(source.FailureKind(err))
		s.setLastErr(err)
		s.logger.Error(ctx, "schedule load attempt failed",
			logger.String("attempt", attemptID),
			logger.String("kind", source.FailureKind(err)),
			logger.Error(err),
		)
		return err
	}

	games := s.normalizer.Normalize(records)
	vocab := schedule.BuildVocabulary(games)
	lastGames := schedule.BuildLastGameIndex(games)

	if dupes := schedule.DuplicateIDs(games); len(dupes) > 0 {
		s.logger.Warn(ctx, "source contains duplicate game ids",
			logger.String("attempt", attemptID),
			logger.Int("count", len(dupes)),
			logger.Any("ids", dupes),
		)
	}

	s.store.Replace(ctx, repository.Snapshot{
		Games:      games,
		Vocabulary: vocab,
		LastGames:  lastGames,
		LoadedAt:   time.Now(),
		AttemptID:  attemptID,
	})
	s.setLastErr(nil)

	metrics.RecordScheduleLoad()
	metrics.RecordLoadDuration(float64(time.Since(start).Milliseconds()))
	metrics.UpdateGamesLoaded(len(games))
	metrics.UpdateTeamsLoaded(len(vocab.Teams))
	metrics.UpdateDivisionsLoaded(len(vocab.Divisions))
	metrics.UpdateLastGameCount(len(lastGames))

	s.logger.Info(ctx, "schedule loaded",
		logger.String("attempt", attemptID),
		logger.Int("games", len(games)),
		logger.Int("teams", len(vocab.Teams)),
		logger.Int("divisions", len(vocab.Divisions)),
	)
	return nil
}

func (s *Service) setLastErr(err error) {
	s.mu.Lock()
	s.lastErr = err
	s.mu.Unlock()
}

// LoadError returns the error from the most recent failed load attempt,
// or nil after a success.
func (s *Service) LoadError() error {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.lastErr
}

// snapshot fetches the current snapshot, treating a not-yet-started
// service the same as one whose first load has not succeeded.
func (s *Service) snapshot(ctx context.Context) (repository.Snapshot, error) {
	s.mu.RLock()
	store := s.store
	s.mu.RUnlock()
	if store == nil {
		return repository.Snapshot{}, repository.ErrNotLoaded
	}
	return store.Current(ctx)
}

// Schedule returns the games visible under the selection, in schedule order.
// Returns repository.ErrNotLoaded until a load attempt has succeeded.
func (s *Service) Schedule(ctx context.Context, sel model.FilterSelection) ([]model.Game, error) {
	snap, err := s.snapshot(ctx)
	if err != nil {
		return nil, err
	}
	metrics.RecordFilterRequest()
	games := schedule.Apply(sel, snap.Games)
	if len(games) == 0 {
		metrics.RecordEmptyResult()
	}
	return games, nil
}

// Vocabulary returns the current filter vocabulary.
func (s *Service) Vocabulary(ctx context.Context) (schedule.Vocabulary, error) {
	snap, err := s.snapshot(ctx)
	if err != nil {
		return schedule.Vocabulary{}, err
	}
	return snap.Vocabulary, nil
}

// View builds the grouped display structure for the selection. The
// last-game index always comes from the unfiltered snapshot.
func (s *Service) View(ctx context.Context, sel model.FilterSelection) (render.View, error) {
	snap, err := s.snapshot(ctx)
	if err != nil {
		return render.View{}, err
	}
	metrics.RecordFilterRequest()
	games := schedule.Apply(sel, snap.Games)
	if len(games) == 0 {
		metrics.RecordEmptyResult()
	}
	return s.renderer.Build(games, snap.LastGames), nil
}

// RenderHTML renders the selection's view as the table fragment the site
// injects into its schedule container.
func (s *Service) RenderHTML(ctx context.Context, sel model.FilterSelection) (string, error) {
	start := time.Now()
	view, err := s.View(ctx, sel)
	if err != nil {
		return "", err
	}
	html, err := s.renderer.HTML(view)
	if err != nil {
		return "", err
	}
	metrics.RecordRenderDuration(float64(time.Since(start).Milliseconds()))
	return html, nil
}

// GetStats returns service statistics for monitoring.
func (s *Service) GetStats() map[string]interface{} {
	s.mu.RLock()
	started := s.started
	lastErr := s.lastErr
	s.mu.RUnlock()

	ctx := context.Background()
	stats := map[string]interface{}{
		"started": started,
		"source":  s.sourcePath,
	}
	if lastErr != nil {
		stats["lastLoadError"] = lastErr.Error()
	}
	if snap, err := s.snapshot(ctx); err == nil {
		stats["games"] = len(snap.Games)
		stats["teams"] = len(snap.Vocabulary.Teams)
		stats["divisions"] = len(snap.Vocabulary.Divisions)
		stats["lastGames"] = len(snap.LastGames)
		stats["loadedAt"] = snap.LoadedAt
		stats["attemptID"] = snap.AttemptID
	}
	return stats
}
