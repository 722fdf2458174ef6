package schedule

import (
	"sort"

	"github.com/sidelinehq/matchday/internal/domain/model"
)

// DuplicateIDs reports game ids that occur more than once in the loaded
// data, ascending. Spreadsheet exports occasionally repeat rows after a
// copy-paste; duplicates are kept (normalization never drops rows) but
// worth surfacing to the league admin.
func DuplicateIDs(games []model.Game) []int {
	counts := make(map[int]int, len(games))
	for _, g := range games {
		counts[g.ID]++
	}
	var dupes []int
	for id, n := range counts {
		if n > 1 {
			dupes = append(dupes, id)
		}
	}
	sort.Ints(dupes)
	return dupes
}
