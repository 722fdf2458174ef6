// Package render turns a filtered game sequence into the grouped display
// structure the site shows: weeks, dates within weeks, and time-sorted rows.
package render

import (
	"sort"
	"strconv"
	"time"

	"github.com/sidelinehq/matchday/internal/domain/model"
	"github.com/sidelinehq/matchday/internal/domain/schedule"
)

// Weeks without a numeric label sort after every numbered week; games with
// no week at all form a single trailing unlabeled group.
const unnumberedWeekRank = 1 << 20

// Row is one rendered game line.
type Row struct {
	GameID       int    `json:"game_id"`
	TimeLabel    string `json:"time_label"`
	Division     string `json:"division"`
	DivisionCode string `json:"division_code"`
	HomeTeam     string `json:"home_team"`
	AwayTeam     string `json:"away_team"`
	Location     string `json:"location"`
	LastGame     bool   `json:"last_game"`
}

// DateGroup holds one date's rows in start-time order.
type DateGroup struct {
	Date  string `json:"date"`
	Label string `json:"label"`
	Rows  []Row  `json:"rows"`
}

// WeekGroup holds one week's dates. Completed is a presentational hint for
// collapsing past weeks, never a filtering criterion.
type WeekGroup struct {
	Week      string      `json:"week"`
	Label     string      `json:"label"`
	Completed bool        `json:"completed"`
	Dates     []DateGroup `json:"dates"`
}

// View is the full display structure for a filtered schedule. Empty marks
// the legitimate "no games match current filters" case, distinct from a
// load failure.
type View struct {
	Weeks []WeekGroup `json:"weeks"`
	Empty bool        `json:"empty"`
}

// Renderer builds display structures. The clock is injectable so week
// completion is testable.
type Renderer struct {
	now func() time.Time
}

// ROption applies a configuration option to the Renderer.
type ROption func(*Renderer)

// WithNow overrides the clock used for the week-completed flag.
func WithNow(now func() time.Time) ROption {
	return func(r *Renderer) {
		if now != nil {
			r.now = now
		}
	}
}

// NewRenderer creates a Renderer with configuration options.
func NewRenderer(opts ...ROption) *Renderer {
	r := &Renderer{now: time.Now}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Build groups games by week, then date, then ascending start time.
// lastGames must come from the unfiltered dataset so the teardown
// annotation survives any filter.
func (r *Renderer) Build(games []model.Game, lastGames map[int]struct{}) View {
	if len(games) == 0 {
		return View{Empty: true}
	}

	weekOrder := make([]string, 0)
	byWeek := make(map[string][]model.Game)
	for _, g := range games {
		if _, ok := byWeek[g.Week]; !ok {
			weekOrder = append(weekOrder, g.Week)
		}
		byWeek[g.Week] = append(byWeek[g.Week], g)
	}

	sort.SliceStable(weekOrder, func(i, j int) bool {
		return weekRank(weekOrder[i]) < weekRank(weekOrder[j])
	})

	today := dateOnly(r.now())

	weeks := make([]WeekGroup, 0, len(weekOrder))
	for _, week := range weekOrder {
		weeks = append(weeks, r.buildWeek(week, byWeek[week], today, lastGames))
	}
	return View{Weeks: weeks}
}

func (r *Renderer) buildWeek(week string, games []model.Game, today time.Time, lastGames map[int]struct{}) WeekGroup {
	dateOrder := make([]string, 0)
	byDate := make(map[string][]model.Game)
	for _, g := range games {
		if _, ok := byDate[g.Date]; !ok {
			dateOrder = append(dateOrder, g.Date)
		}
		byDate[g.Date] = append(byDate[g.Date], g)
	}
	// Lexical order is chronological for YYYY-MM-DD.
	sort.Strings(dateOrder)

	completed := false
	if latest, ok := latestDate(dateOrder); ok {
		completed = latest.Before(today)
	}

	dates := make([]DateGroup, 0, len(dateOrder))
	for _, date := range dateOrder {
		rows := byDate[date]
		sort.SliceStable(rows, func(i, j int) bool {
			return schedule.StartMinutes(rows[i].StartTime) < schedule.StartMinutes(rows[j].StartTime)
		})
		group := DateGroup{Date: date, Label: dateLabel(date)}
		for _, g := range rows {
			_, isLast := lastGames[g.ID]
			group.Rows = append(group.Rows, Row{
				GameID:       g.ID,
				TimeLabel:    timeLabel(g.StartTime, g.EndTime),
				Division:     g.Division,
				DivisionCode: divisionCode(g.Division),
				HomeTeam:     g.HomeTeam,
				AwayTeam:     g.AwayTeam,
				Location:     locationLabel(g.Location, g.Field),
				LastGame:     isLast,
			})
		}
		dates = append(dates, group)
	}

	return WeekGroup{
		Week:      week,
		Label:     weekLabel(week),
		Completed: completed,
		Dates:     dates,
	}
}

// weekRank orders week labels numerically ascending; non-numeric and empty
// labels trail the numbered ones.
func weekRank(week string) int {
	if week == "" {
		return unnumberedWeekRank + 1
	}
	if n, err := strconv.Atoi(week); err == nil {
		return n
	}
	return unnumberedWeekRank
}

func weekLabel(week string) string {
	if week == "" {
		return ""
	}
	return "Week " + week
}

// latestDate returns the maximum parseable date in the group.
func latestDate(dates []string) (time.Time, bool) {
	var latest time.Time
	found := false
	for _, d := range dates {
		t, err := time.ParseInLocation("2006-01-02", d, time.Local)
		if err != nil {
			continue
		}
		if !found || t.After(latest) {
			latest = t
			found = true
		}
	}
	return latest, found
}

func dateOnly(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.Local)
}
