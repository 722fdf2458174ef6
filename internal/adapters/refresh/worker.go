// Package refresh runs periodic background reloads of the schedule source.
package refresh

import (
	"context"
	"fmt"
	"time"

	"github.com/sidelinehq/matchday/pkg/logger"
)

// Default worker configuration constants.
const (
	defaultInterval       = 15 * time.Minute
	workerShutdownTimeout = 5 * time.Second
)

// Reloader runs one schedule load attempt.
type Reloader interface {
	Reload(ctx context.Context) error
}

// Worker reloads the schedule on a fixed interval. A failed attempt is
// logged and the previous snapshot keeps serving; the ticker carries on.
type Worker struct {
	reloader Reloader
	interval time.Duration

	// Shutdown control
	shutdown chan struct{}
	done     chan struct{}

	// Logging
	logger logger.Logger
}

// NewWorker creates a refresh worker with configuration options.
func NewWorker(reloader Reloader, opts ...Option) *Worker {
	w := &Worker{
		reloader: reloader,
		interval: defaultInterval,
		shutdown: make(chan struct{}),
		done:     make(chan struct{}),
		logger:   logger.Get().Named("refresh"),
	}
	for _, opt := range opts {
		opt(w)
	}
	return w
}

// Run starts the refresh loop until ctx is canceled or Shutdown is called.
// An interval of zero disables refreshing; Run returns immediately.
func (w *Worker) Run(ctx context.Context) {
	defer close(w.done)

	if w.interval <= 0 {
		w.logger.Info(ctx, "periodic refresh disabled")
		return
	}

	ticker := time.NewTicker(w.interval)
	defer ticker.Stop()

	w.logger.Info(ctx, "periodic refresh started", logger.String("interval", w.interval.String()))

	for {
		select {
		case <-ctx.Done():
			return
		case <-w.shutdown:
			return
		case <-ticker.C:
			if err := w.reloader.Reload(ctx); err != nil {
				w.logger.Warn(ctx, "scheduled reload failed", logger.Error(err))
			}
		}
	}
}

// Shutdown gracefully stops the worker.
func (w *Worker) Shutdown(ctx context.Context) error {
	close(w.shutdown)

	shutdownCtx, cancel := context.WithTimeout(ctx, workerShutdownTimeout)
	defer cancel()

	select {
	case <-w.done:
		return nil
	case <-shutdownCtx.Done():
		w.logger.Warn(ctx, "shutdown timed out")
		return fmt.Errorf("shutdown timed out: %w", shutdownCtx.Err())
	}
}
