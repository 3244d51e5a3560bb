package standings

import (
	"testing"
	"time"

	"github.com/Dosada05/championship-manager/models"
)

func completed(team1, team2 string, score1, score2 int) models.Match {
	return models.Match{
		Team1ID:     team1,
		Team2ID:     team2,
		Status:      models.MatchStatusCompleted,
		Result:      &models.MatchResult{Score1: score1, Score2: score2},
		ScheduledAt: time.Date(2024, 5, 1, 18, 0, 0, 0, time.UTC),
	}
}

func ids(rows []models.Standing) []string {
	out := make([]string, len(rows))
	for i, r := range rows {
		out[i] = r.TeamID
	}
	return out
}

func TestLess(t *testing.T) {
	tests := []struct {
		name string
		a, b models.TeamStats
		want bool
	}{
		{"more points first", models.TeamStats{Points: 4}, models.TeamStats{Points: 3, GoalsFor: 9}, true},
		{"goal difference breaks points tie", models.TeamStats{Points: 3, GoalsFor: 2, GoalsAgainst: 0}, models.TeamStats{Points: 3, GoalsFor: 5, GoalsAgainst: 4}, true},
		{"goals for breaks difference tie", models.TeamStats{Points: 3, GoalsFor: 4, GoalsAgainst: 2}, models.TeamStats{Points: 3, GoalsFor: 3, GoalsAgainst: 1}, true},
		{"equal is not less", models.TeamStats{Points: 1, GoalsFor: 1, GoalsAgainst: 1}, models.TeamStats{Points: 1, GoalsFor: 1, GoalsAgainst: 1}, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Less(tt.a, tt.b); got != tt.want {
				t.Errorf("Less() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestComputeOrdersByPointsGoalDifferenceGoalsFor(t *testing.T) {
	teams := []models.Team{{ID: "a", Name: "A"}, {ID: "b", Name: "B"}, {ID: "c", Name: "C"}}
	matches := []models.Match{
		completed("a", "b", 2, 1),
		completed("b", "c", 3, 0),
		completed("c", "a", 1, 1),
	}

	rows := Compute(teams, matches)
	got := ids(rows)
	// a: 4 pts, b: 3 pts with GD +2, c: 1 pt.
	want := []string{"a", "b", "c"}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("expected order %v, got %v", want, got)
		}
	}
	for i, r := range rows {
		if r.Rank != i+1 {
			t.Errorf("row %d has rank %d", i, r.Rank)
		}
	}
	if rows[1].GoalDifference != 2 {
		t.Errorf("expected b to have goal difference 2, got %d", rows[1].GoalDifference)
	}
}

func TestComputeKeepsInputOrderOnFullTie(t *testing.T) {
	teams := []models.Team{{ID: "x"}, {ID: "y"}, {ID: "z"}}
	matches := []models.Match{completed("x", "y", 1, 1)}

	got := ids(Compute(teams, matches))
	want := []string{"x", "y", "z"}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("tied teams must keep input order: expected %v, got %v", want, got)
		}
	}
}

func TestComputeIgnoresScheduledAndOutOfScopeMatches(t *testing.T) {
	teams := []models.Team{{ID: "a"}, {ID: "b"}}
	matches := []models.Match{
		{Team1ID: "a", Team2ID: "b", Status: models.MatchStatusScheduled},
		completed("a", "outsider", 5, 0),
		completed("b", "a", 1, 0),
	}

	rows := Compute(teams, matches)
	if rows[0].TeamID != "b" {
		t.Fatalf("expected b on top, got %s", rows[0].TeamID)
	}
	if rows[1].Stats.MatchesPlayed != 1 || rows[1].Stats.GoalsFor != 0 {
		t.Errorf("out-of-scope match leaked into a's stats: %+v", rows[1].Stats)
	}
}

func TestFromTeamsUsesCumulativeStats(t *testing.T) {
	teams := []models.Team{
		{ID: "a", Stats: models.TeamStats{MatchesPlayed: 2, Wins: 1, Losses: 1, Points: 3, GoalsFor: 2, GoalsAgainst: 2}},
		{ID: "b", Stats: models.TeamStats{MatchesPlayed: 2, Wins: 2, Points: 6, GoalsFor: 4}},
	}
	rows := FromTeams(teams)
	if rows[0].TeamID != "b" || rows[0].Rank != 1 || rows[1].Rank != 2 {
		t.Errorf("unexpected global ranking: %+v", rows)
	}
}
