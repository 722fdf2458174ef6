// Package source fetches the raw season schedule and decodes it into loose
// records for the schedule engine. Publishing pipelines vary, so three
// formats are accepted: the canonical JSON export, a spreadsheet CSV export,
// and a published HTML table.
package source

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/sidelinehq/matchday/internal/domain/schedule"
)

// Format selects how fetched bytes are decoded.
type Format string

// Supported source formats.
const (
	FormatAuto Format = "auto"
	FormatJSON Format = "json"
	FormatCSV  Format = "csv"
	FormatHTML Format = "html"
)

const defaultFetchTimeout = 30 * time.Second

// Loader fetches and decodes a schedule source.
type Loader struct {
	source    string
	format    Format
	cacheBust bool
	client    *http.Client
	now       func() time.Time
}

// NewLoader creates a Loader for the given path or URL.
func NewLoader(src string, opts ...LoaderOption) *Loader {
	l := &Loader{
		source: src,
		format: FormatAuto,
		client: &http.Client{Timeout: defaultFetchTimeout},
		now:    time.Now,
	}
	for _, opt := range opts {
		opt(l)
	}
	return l
}

// Load performs exactly one fetch attempt and decodes the result. There is
// no retry: a failure is terminal for this attempt and carries one of the
// taxonomy kinds (ErrNetwork, schedule.ErrParse, schedule.ErrFormat).
func (l *Loader) Load(ctx context.Context) ([]schedule.Record, error) {
	payload, err := l.fetch(ctx)
	if err != nil {
		return nil, err
	}
	return l.decode(payload)
}

func (l *Loader) fetch(ctx context.Context) ([]byte, error) {
	if isHTTP(l.source) {
		return l.fetchHTTP(ctx)
	}
	data, err := os.ReadFile(l.source)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrNetwork, err)
	}
	return data, nil
}

func (l *Loader) fetchHTTP(ctx context.Context) ([]byte, error) {
	target := l.source
	if l.cacheBust {
		u, err := url.Parse(target)
		if err == nil {
			q := u.Query()
			q.Set("v", strconv.FormatInt(l.now().UnixMilli(), 10))
			u.RawQuery = q.Encode()
			target = u.String()
		}
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, target, nil)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrNetwork, err)
	}
	resp, err := l.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrNetwork, err)
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, fmt.Errorf("%w: unexpected status %d", ErrNetwork, resp.StatusCode)
	}
	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrNetwork, err)
	}
	return data, nil
}

func (l *Loader) decode(payload []byte) ([]schedule.Record, error) {
	switch l.effectiveFormat(payload) {
	case FormatCSV:
		return ParseCSV(payload)
	case FormatHTML:
		return ParseHTML(payload)
	default:
		return schedule.Decode(payload)
	}
}

// effectiveFormat resolves FormatAuto from the source extension, falling
// back to sniffing the first non-whitespace byte.
func (l *Loader) effectiveFormat(payload []byte) Format {
	if l.format != FormatAuto {
		return l.format
	}
	path := l.source
	if isHTTP(path) {
		if u, err := url.Parse(path); err == nil {
			path = u.Path
		}
	}
	switch {
	case strings.HasSuffix(path, ".csv"):
		return FormatCSV
	case strings.HasSuffix(path, ".html"), strings.HasSuffix(path, ".htm"):
		return FormatHTML
	case strings.HasSuffix(path, ".json"):
		return FormatJSON
	}

	trimmed := strings.TrimLeft(string(payload), " \t\r\n")
	switch {
	case strings.HasPrefix(trimmed, "<"):
		return FormatHTML
	case strings.HasPrefix(trimmed, "[") || strings.HasPrefix(trimmed, "{"):
		return FormatJSON
	default:
		return FormatCSV
	}
}

func isHTTP(src string) bool {
	return strings.HasPrefix(src, "http://") || strings.HasPrefix(src, "https://")
}
