// Package standings turns teams and completed matches into ordered rankings.
// The ordering defined here is the only one used for global tables, group tables
// and qualifier selection.
package standings

import (
	"sort"

	"github.com/Dosada05/championship-manager/models"
)

// Less reports whether a ranks strictly ahead of b: more points first, then the
// better goal difference, then more goals scored.
//
// Rows equal on all three keys keep their input order. No further tiebreak
// (head-to-head, cards, drawing of lots) is applied; this is a known limitation.
func Less(a, b models.TeamStats) bool {
	if a.Points != b.Points {
		return a.Points > b.Points
	}
	if gdA, gdB := a.GoalDifference(), b.GoalDifference(); gdA != gdB {
		return gdA > gdB
	}
	return a.GoalsFor > b.GoalsFor
}

// Rank sorts rows in place with a stable sort and assigns positional ranks starting at 1.
func Rank(rows []models.Standing) []models.Standing {
	sort.SliceStable(rows, func(i, j int) bool {
		return Less(rows[i].Stats, rows[j].Stats)
	})
	for i := range rows {
		rows[i].Rank = i + 1
		rows[i].GoalDifference = rows[i].Stats.GoalDifference()
	}
	return rows
}

// FromTeams ranks teams on their cumulative registry statistics.
func FromTeams(teams []models.Team) []models.Standing {
	rows := make([]models.Standing, 0, len(teams))
	for _, t := range teams {
		rows = append(rows, models.Standing{
			TeamID:   t.ID,
			TeamName: t.Name,
			Stats:    t.Stats,
		})
	}
	return Rank(rows)
}

// Compute ranks the teams in scope on the completed matches played between them.
// Matches with a team outside the scope are ignored, as are scheduled matches.
func Compute(teams []models.Team, matches []models.Match) []models.Standing {
	rows := make([]models.Standing, len(teams))
	index := make(map[string]int, len(teams))
	for i, t := range teams {
		rows[i] = models.Standing{TeamID: t.ID, TeamName: t.Name}
		index[t.ID] = i
	}

	for i := range matches {
		m := &matches[i]
		if !m.IsCompleted() {
			continue
		}
		i1, ok1 := index[m.Team1ID]
		i2, ok2 := index[m.Team2ID]
		if !ok1 || !ok2 {
			continue
		}
		rows[i1].Stats.Add(m.Result.Score1, m.Result.Score2)
		rows[i2].Stats.Add(m.Result.Score2, m.Result.Score1)
	}

	return Rank(rows)
}
