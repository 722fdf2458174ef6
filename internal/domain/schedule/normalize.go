// Package schedule implements the schedule engine: payload normalization,
// filter vocabularies, the last-game index and filter combination.
package schedule

import (
	"encoding/json"
	"fmt"
	"strconv"
	"strings"

	"github.com/sidelinehq/matchday/internal/domain/model"
)

// Record is one loosely-typed source row before normalization. Keys may
// follow either the canonical naming or the human-authored spreadsheet
// convention ("Home Team", "Start Time").
type Record map[string]any

// Field aliases accepted by the normalizer, canonical key first.
var (
	aliasID       = []string{"GameID", "id", "Order"}
	aliasDivision = []string{"Division", "division"}
	aliasWeek     = []string{"Week", "week"}
	aliasDate     = []string{"Date", "date"}
	aliasStart    = []string{"Start Time", "time", "startTime"}
	aliasEnd      = []string{"End Time", "endTime"}
	aliasHome     = []string{"Home Team", "homeTeam"}
	aliasAway     = []string{"Away Team", "awayTeam"}
	aliasLocation = []string{"Location", "location"}
	aliasField    = []string{"Field", "field"}
)

// Decode parses a raw JSON payload into records. It returns ErrParse when
// the payload is not valid JSON and ErrFormat when the top level is not an
// array. Elements that are not objects become empty records so that
// normalization still succeeds for any array input.
func Decode(payload []byte) ([]Record, error) {
	var v any
	if err := json.Unmarshal(payload, &v); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrParse, err)
	}
	arr, ok := v.([]any)
	if !ok {
		return nil, ErrFormat
	}
	records := make([]Record, len(arr))
	for i, el := range arr {
		if obj, ok := el.(map[string]any); ok {
			records[i] = Record(obj)
		} else {
			records[i] = Record{}
		}
	}
	return records, nil
}

// Normalizer turns loose records into canonical games.
type Normalizer struct {
	defaultDivision string
}

// NewNormalizer creates a Normalizer with configuration options.
func NewNormalizer(opts ...Option) *Normalizer {
	n := &Normalizer{
		defaultDivision: "Unknown",
	}
	for _, opt := range opts {
		opt(n)
	}
	return n
}

// Normalize produces an ordered sequence of canonical games from records.
// It never fails: missing optional fields default, team names are coerced
// to strings, and a record with no usable id gets the 1-based position in
// the input. The input is not mutated.
func (n *Normalizer) Normalize(records []Record) []model.Game {
	games := make([]model.Game, len(records))
	for i, rec := range records {
		division := stringField(rec, aliasDivision)
		if division == "" {
			division = n.defaultDivision
		}
		games[i] = model.Game{
			ID:        intField(rec, aliasID, i+1),
			Division:  division,
			Week:      stringField(rec, aliasWeek),
			Date:      stringField(rec, aliasDate),
			StartTime: stringField(rec, aliasStart),
			EndTime:   stringField(rec, aliasEnd),
			HomeTeam:  stringField(rec, aliasHome),
			AwayTeam:  stringField(rec, aliasAway),
			Location:  stringField(rec, aliasLocation),
			Field:     stringField(rec, aliasField),
		}
	}
	return games
}

// stringField returns the first alias present, coerced to a string.
func stringField(rec Record, aliases []string) string {
	for _, key := range aliases {
		if v, ok := rec[key]; ok {
			if s := stringify(v); s != "" {
				return s
			}
		}
	}
	return ""
}

// intField returns the first alias holding a usable integer, else fallback.
func intField(rec Record, aliases []string, fallback int) int {
	for _, key := range aliases {
		v, ok := rec[key]
		if !ok {
			continue
		}
		switch t := v.(type) {
		case float64:
			if t != 0 {
				return int(t)
			}
		case string:
			if id, err := strconv.Atoi(strings.TrimSpace(t)); err == nil && id != 0 {
				return id
			}
		}
	}
	return fallback
}

// stringify coerces a JSON value to its string form. Numeric team names in
// spreadsheets arrive as float64 and must not grow a decimal point.
func stringify(v any) string {
	switch t := v.(type) {
	case nil:
		return ""
	case string:
		return strings.TrimSpace(t)
	case float64:
		return strconv.FormatFloat(t, 'f', -1, 64)
	case bool:
		return strconv.FormatBool(t)
	default:
		return fmt.Sprintf("%v", t)
	}
}
