// Package fixture generates synthetic season schedules for local
// development and demos. The output uses the spreadsheet-style field
// naming real exports carry, so it exercises the same normalization path
// as production data.
package fixture

import (
	"encoding/json"
	"fmt"
	"math/rand"
	"os"
	"time"

	"github.com/sidelinehq/matchday/internal/domain/schedule"
)

// Scheduling constants.
const (
	firstSlot    = 9 * 60        // 09:00
	slotSpacing  = 75            // minutes between games on a field
	gameDuration = 75            // minutes per game
	weekSpacing  = 7 * 24 * time.Hour
)

// Venue is a location with one or more fields.
type Venue struct {
	Name   string
	Fields []string
}

// Config holds configuration for schedule generation.
type Config struct {
	Divisions        []string
	TeamsPerDivision int
	Weeks            int
	Start            time.Time // date of the first game day
	Venues           []Venue
	Seed             int64
}

// Default returns a config resembling a small spring season.
func Default() Config {
	return Config{
		Divisions:        []string{"8U", "10U", "12U", "14U"},
		TeamsPerDivision: 6,
		Weeks:            8,
		Start:            nextSaturday(time.Now()),
		Venues: []Venue{
			{Name: "Riverside Park", Fields: []string{"Field 1", "Field 2"}},
			{Name: "Lincoln Fields", Fields: []string{"A", "B"}},
		},
		Seed: 1,
	}
}

var nicknames = []string{
	"Thunder", "Sharks", "Comets", "Hawks", "Rays", "Wolves",
	"Dragons", "Stars", "Cyclones", "Raptors", "Bolts", "Tigers",
}

// Generate builds the season's records. Every division plays a randomized
// pairing each week; fields fill in rotation through the day.
func Generate(cfg Config) ([]schedule.Record, error) {
	if cfg.TeamsPerDivision < 2 || cfg.TeamsPerDivision%2 != 0 {
		return nil, fmt.Errorf("teams per division must be even and at least 2, got %d", cfg.TeamsPerDivision)
	}
	if len(cfg.Divisions) == 0 || cfg.Weeks < 1 || len(cfg.Venues) == 0 {
		return nil, fmt.Errorf("divisions, weeks and venues must all be non-empty")
	}
	if cfg.TeamsPerDivision > len(nicknames) {
		return nil, fmt.Errorf("at most %d teams per division", len(nicknames))
	}

	rng := rand.New(rand.NewSource(cfg.Seed))

	teams := make(map[string][]string, len(cfg.Divisions))
	for _, div := range cfg.Divisions {
		names := make([]string, cfg.TeamsPerDivision)
		for i := range names {
			names[i] = div + " " + nicknames[i]
		}
		teams[div] = names
	}

	type slot struct {
		venue string
		field string
	}
	var slots []slot
	for _, v := range cfg.Venues {
		for _, f := range v.Fields {
			slots = append(slots, slot{venue: v.Name, field: f})
		}
	}

	var records []schedule.Record
	id := 0
	for week := 1; week <= cfg.Weeks; week++ {
		date := cfg.Start.Add(time.Duration(week-1) * weekSpacing).Format("2006-01-02")

		// Round-robin by shuffled pairing keeps matchups varied without
		// tracking full season history.
		slotRound := make(map[slot]int, len(slots))
		slotIdx := 0
		for _, div := range cfg.Divisions {
			names := append([]string(nil), teams[div]...)
			rng.Shuffle(len(names), func(i, j int) { names[i], names[j] = names[j], names[i] })

			for i := 0; i+1 < len(names); i += 2 {
				s := slots[slotIdx%len(slots)]
				round := slotRound[s]
				slotRound[s]++
				slotIdx++

				start := firstSlot + round*slotSpacing
				id++
				records = append(records, schedule.Record{
					"GameID":     id,
					"Division":   div,
					"Week":       fmt.Sprintf("%d", week),
					"Date":       date,
					"Start Time": clock(start),
					"End Time":   clock(start + gameDuration),
					"Home Team":  names[i],
					"Away Team":  names[i+1],
					"Location":   s.venue,
					"Field":      s.field,
				})
			}
		}
	}
	return records, nil
}

// WriteFile writes records as an indented JSON array.
func WriteFile(path string, records []schedule.Record) error {
	data, err := json.MarshalIndent(records, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal schedule: %w", err)
	}
	if err := os.WriteFile(path, append(data, '\n'), 0o644); err != nil {
		return fmt.Errorf("write schedule: %w", err)
	}
	return nil
}

func clock(minutes int) string {
	return fmt.Sprintf("%02d:%02d", minutes/60, minutes%60)
}

func nextSaturday(t time.Time) time.Time {
	t = time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.Local)
	for t.Weekday() != time.Saturday {
		t = t.AddDate(0, 0, 1)
	}
	return t
}
