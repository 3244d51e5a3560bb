package models

import "time"

// TeamStats holds the cumulative statistics of a team over all of its completed matches.
type TeamStats struct {
	MatchesPlayed int `json:"matches_played" yaml:"matches_played"`
	Wins          int `json:"wins" yaml:"wins"`
	Draws         int `json:"draws" yaml:"draws"`
	Losses        int `json:"losses" yaml:"losses"`
	GoalsFor      int `json:"goals_for" yaml:"goals_for"`
	GoalsAgainst  int `json:"goals_against" yaml:"goals_against"`
	Points        int `json:"points" yaml:"points"`
}

const (
	PointsForWin  = 3
	PointsForDraw = 1
)

func (s TeamStats) GoalDifference() int {
	return s.GoalsFor - s.GoalsAgainst
}

// Add folds one completed match, seen from this team's side, into the stats.
func (s *TeamStats) Add(goalsFor, goalsAgainst int) {
	s.MatchesPlayed++
	s.GoalsFor += goalsFor
	s.GoalsAgainst += goalsAgainst
	switch {
	case goalsFor > goalsAgainst:
		s.Wins++
		s.Points += PointsForWin
	case goalsFor < goalsAgainst:
		s.Losses++
	default:
		s.Draws++
		s.Points += PointsForDraw
	}
}

// Subtract is the exact inverse of Add.
func (s *TeamStats) Subtract(goalsFor, goalsAgainst int) {
	s.MatchesPlayed--
	s.GoalsFor -= goalsFor
	s.GoalsAgainst -= goalsAgainst
	switch {
	case goalsFor > goalsAgainst:
		s.Wins--
		s.Points -= PointsForWin
	case goalsFor < goalsAgainst:
		s.Losses--
	default:
		s.Draws--
		s.Points -= PointsForDraw
	}
}

type Team struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	Stats     TeamStats `json:"stats"`
	CreatedAt time.Time `json:"created_at"`
}

// ApplyResult updates both teams for a completed match between them.
// Callers resolve both teams before calling, so either both are updated or neither.
func ApplyResult(team1, team2 *Team, score1, score2 int) {
	team1.Stats.Add(score1, score2)
	team2.Stats.Add(score2, score1)
}

// RevertResult removes a previously applied result from both teams.
func RevertResult(team1, team2 *Team, score1, score2 int) {
	team1.Stats.Subtract(score1, score2)
	team2.Stats.Subtract(score2, score1)
}
