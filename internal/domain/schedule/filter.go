package schedule

import "github.com/sidelinehq/matchday/internal/domain/model"

// Apply produces the games visible under the current selection. It is a
// pure function of (dataset, selection).
//
// Combination policy:
//  1. An active date filter is a hard pre-filter: games on unselected
//     dates are excluded before anything else.
//  2. Any selected team overrides division selection entirely; a game is
//     included iff its home or away team is selected.
//  3. Otherwise selected divisions restrict by division.
//  4. An empty selection includes every game.
func Apply(sel model.FilterSelection, games []model.Game) []model.Game {
	out := make([]model.Game, 0, len(games))
	for _, g := range games {
		if len(sel.Dates) > 0 && !sel.Dates.Has(g.Date) {
			continue
		}
		if len(sel.Teams) > 0 {
			if sel.Teams.Has(g.HomeTeam) || sel.Teams.Has(g.AwayTeam) {
				out = append(out, g)
			}
			continue
		}
		if len(sel.Divisions) > 0 {
			if sel.Divisions.Has(g.Division) {
				out = append(out, g)
			}
			continue
		}
		out = append(out, g)
	}
	return out
}

// VisibleTeams narrows the displayed team filter controls to teams in the
// selected divisions, or all teams when no division is selected. It affects
// only what the visitor can toggle next, never Apply's matching.
func VisibleTeams(vocab Vocabulary, selectedDivisions model.StringSet) []model.Team {
	if len(selectedDivisions) == 0 {
		return vocab.Teams
	}
	out := make([]model.Team, 0, len(vocab.Teams))
	for _, t := range vocab.Teams {
		if selectedDivisions.Has(t.Division) {
			out = append(out, t)
		}
	}
	return out
}
