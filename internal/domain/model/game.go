// Package model contains domain models passed between layers.
package model

// Game represents one scheduled match in canonical form.
// Normalization assigns IDs and defaults; see the schedule package.
type Game struct {
	ID        int    `json:"id"`
	Division  string `json:"division"`
	Week      string `json:"week,omitempty"`
	Date      string `json:"date"`       // YYYY-MM-DD
	StartTime string `json:"start_time"` // HH:MM, 24-hour
	EndTime   string `json:"end_time,omitempty"`
	HomeTeam  string `json:"home_team"`
	AwayTeam  string `json:"away_team"`
	Location  string `json:"location"`
	Field     string `json:"field"`
}

// Team pairs a team name with the division it was last observed in.
// If the source data associates a name with several divisions, the last
// occurrence wins silently.
type Team struct {
	Name     string `json:"name"`
	Division string `json:"division"`
}

// StringSet is a membership-only set of strings.
type StringSet map[string]struct{}

// NewStringSet builds a set from values, ignoring empty strings.
func NewStringSet(values ...string) StringSet {
	s := make(StringSet, len(values))
	for _, v := range values {
		if v != "" {
			s[v] = struct{}{}
		}
	}
	return s
}

// Has reports membership.
func (s StringSet) Has(v string) bool {
	_, ok := s[v]
	return ok
}

// FilterSelection is the visitor's current filter state: chosen divisions,
// team names and dates. Empty sets mean "no restriction".
type FilterSelection struct {
	Divisions StringSet
	Teams     StringSet
	Dates     StringSet
}

// NewFilterSelection returns an empty selection.
func NewFilterSelection() FilterSelection {
	return FilterSelection{
		Divisions: make(StringSet),
		Teams:     make(StringSet),
		Dates:     make(StringSet),
	}
}

// Empty reports whether no filter is active at all.
func (f FilterSelection) Empty() bool {
	return len(f.Divisions) == 0 && len(f.Teams) == 0 && len(f.Dates) == 0
}
