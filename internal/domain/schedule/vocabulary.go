package schedule

import (
	"sort"
	"strconv"

	"golang.org/x/text/collate"
	"golang.org/x/text/language"

	"github.com/sidelinehq/matchday/internal/domain/model"
)

// Divisions without a numeric prefix sort after every numeric one.
const nonNumericDivisionRank = 999

// Vocabulary holds the filter options derived from a schedule: divisions in
// display order, distinct dates ascending, and teams tagged with the
// division they were last observed in.
type Vocabulary struct {
	Divisions []string     `json:"divisions"`
	Dates     []string     `json:"dates"`
	Teams     []model.Team `json:"teams"`
}

// divisionRank extracts the numeric prefix of a division label ("10U" -> 10).
func divisionRank(label string) int {
	end := 0
	for end < len(label) && label[end] >= '0' && label[end] <= '9' {
		end++
	}
	if end == 0 {
		return nonNumericDivisionRank
	}
	n, err := strconv.Atoi(label[:end])
	if err != nil || n == 0 {
		// A zero prefix ("0U") ranks with the non-numeric labels.
		return nonNumericDivisionRank
	}
	return n
}

// BuildVocabulary derives filter vocabularies from the full game sequence.
// Rebuilt from scratch on every data load; read-only thereafter.
//
// Divisions are ordered by numeric prefix ascending with ties broken by
// first-encounter order. Teams are ordered by their division's position and
// then by name using numeric-aware collation, so "Team 2" sorts before
// "Team 10".
func BuildVocabulary(games []model.Game) Vocabulary {
	divisionSeen := make(map[string]int) // label -> encounter index
	divisions := make([]string, 0)
	dateSeen := make(map[string]struct{})
	dates := make([]string, 0)
	teamDivision := make(map[string]string)
	teamOrder := make([]string, 0)

	for _, g := range games {
		if g.Division != "" {
			if _, ok := divisionSeen[g.Division]; !ok {
				divisionSeen[g.Division] = len(divisions)
				divisions = append(divisions, g.Division)
			}
		}
		if g.Date != "" {
			if _, ok := dateSeen[g.Date]; !ok {
				dateSeen[g.Date] = struct{}{}
				dates = append(dates, g.Date)
			}
		}
		for _, name := range []string{g.HomeTeam, g.AwayTeam} {
			if name == "" {
				continue
			}
			if _, ok := teamDivision[name]; !ok {
				teamOrder = append(teamOrder, name)
			}
			// Last occurrence wins when the data is inconsistent.
			teamDivision[name] = g.Division
		}
	}

	sort.SliceStable(divisions, func(i, j int) bool {
		return divisionRank(divisions[i]) < divisionRank(divisions[j])
	})
	sort.Strings(dates)

	divisionPos := make(map[string]int, len(divisions))
	for i, d := range divisions {
		divisionPos[d] = i
	}

	teams := make([]model.Team, 0, len(teamOrder))
	for _, name := range teamOrder {
		teams = append(teams, model.Team{Name: name, Division: teamDivision[name]})
	}

	coll := collate.New(language.English, collate.Numeric, collate.Loose)
	sort.SliceStable(teams, func(i, j int) bool {
		pi, iOK := divisionPos[teams[i].Division]
		pj, jOK := divisionPos[teams[j].Division]
		if !iOK {
			pi = len(divisions)
		}
		if !jOK {
			pj = len(divisions)
		}
		if pi != pj {
			return pi < pj
		}
		return coll.CompareString(teams[i].Name, teams[j].Name) < 0
	})

	return Vocabulary{Divisions: divisions, Dates: dates, Teams: teams}
}
