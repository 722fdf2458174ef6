package refresh

import (
	"time"

	"github.com/sidelinehq/matchday/pkg/logger"
)

// Option applies a configuration option to the Worker.
type Option func(*Worker)

// WithInterval sets the refresh interval. Zero or negative disables the
// worker.
func WithInterval(d time.Duration) Option {
	return func(w *Worker) {
		w.interval = d
	}
}

// WithLogger sets a custom logger for the worker.
func WithLogger(l logger.Logger) Option {
	return func(w *Worker) {
		if l != nil {
			w.logger = l
		}
	}
}
