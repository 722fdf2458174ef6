package source

import (
	"errors"

	"github.com/sidelinehq/matchday/internal/domain/schedule"
)

// ErrNetwork means the schedule bytes could not be fetched at all: transport
// failure, non-success HTTP status, or an unreadable file.
var ErrNetwork = errors.New("schedule fetch failed")

// User-facing messages, one per failure kind, shown in place of the table.
const (
	msgNetwork = "Unable to load schedule data. Please check your connection and try again."
	msgParse   = "Failed to parse schedule data. The file may be corrupted."
	msgFormat  = "Data format error: Expected an array of games."
	msgUnknown = "Unable to load schedule data."
)

// UserMessage maps a load error to the human-readable string the site
// displays, distinguishing network, parse and format failures.
func UserMessage(err error) string {
	switch {
	case err == nil:
		return ""
	case errors.Is(err, ErrNetwork):
		return msgNetwork
	case errors.Is(err, schedule.ErrParse):
		return msgParse
	case errors.Is(err, schedule.ErrFormat):
		return msgFormat
	default:
		return msgUnknown
	}
}

// FailureKind labels a load error for metrics.
func FailureKind(err error) string {
	switch {
	case errors.Is(err, ErrNetwork):
		return "network"
	case errors.Is(err, schedule.ErrParse):
		return "parse"
	case errors.Is(err, schedule.ErrFormat):
		return "format"
	default:
		return "unknown"
	}
}
