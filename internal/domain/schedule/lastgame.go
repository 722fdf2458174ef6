package schedule

import (
	"strconv"
	"strings"

	"github.com/sidelinehq/matchday/internal/domain/model"
)

// unparseable start times sort as midnight, i.e. earliest on the field.
const zeroMinutes = 0

// StartMinutes parses an HH:MM 24-hour string into minutes since midnight.
// Missing or unparseable values return zero.
func StartMinutes(t string) int {
	parts := strings.SplitN(t, ":", 2)
	if len(parts) != 2 {
		return zeroMinutes
	}
	h, err := strconv.Atoi(strings.TrimSpace(parts[0]))
	if err != nil {
		return zeroMinutes
	}
	m, err := strconv.Atoi(strings.TrimSpace(parts[1]))
	if err != nil {
		return zeroMinutes
	}
	return h*60 + m
}

// BuildLastGameIndex returns the ids of games that are the chronologically
// last game, by start time, on their (location, field) for their date.
// It must be computed from the full dataset, never a filtered view, so the
// teardown annotation survives filtering. Ties keep the first-seen game.
func BuildLastGameIndex(games []model.Game) map[int]struct{} {
	type fieldKey struct {
		date     string
		location string
		field    string
	}

	last := make(map[fieldKey]model.Game)
	order := make([]fieldKey, 0)

	for _, g := range games {
		key := fieldKey{date: g.Date, location: g.Location, field: g.Field}
		cur, seen := last[key]
		if !seen {
			last[key] = g
			order = append(order, key)
			continue
		}
		if StartMinutes(g.StartTime) > StartMinutes(cur.StartTime) {
			last[key] = g
		}
	}

	index := make(map[int]struct{}, len(order))
	for _, key := range order {
		index[last[key].ID] = struct{}{}
	}
	return index
}
