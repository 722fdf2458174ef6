package source

import (
	"net/http"
	"time"
)

// LoaderOption applies a configuration option to the Loader.
type LoaderOption func(*Loader)

// WithFormat forces a decode format instead of auto-detection.
func WithFormat(f Format) LoaderOption {
	return func(l *Loader) {
		switch f {
		case FormatAuto, FormatJSON, FormatCSV, FormatHTML:
			l.format = f
		}
	}
}

// WithCacheBust appends a timestamp query parameter to HTTP fetches so
// intermediary caches never serve a stale schedule.
func WithCacheBust(enabled bool) LoaderOption {
	return func(l *Loader) {
		l.cacheBust = enabled
	}
}

// WithHTTPClient sets a custom HTTP client.
func WithHTTPClient(client *http.Client) LoaderOption {
	return func(l *Loader) {
		if client != nil {
			l.client = client
		}
	}
}

// WithClock overrides the clock used for cache-bust parameters.
func WithClock(now func() time.Time) LoaderOption {
	return func(l *Loader) {
		if now != nil {
			l.now = now
		}
	}
}
