package models

import "time"

type MatchStatus string

const (
	MatchStatusScheduled MatchStatus = "scheduled"
	MatchStatusCompleted MatchStatus = "completed"
)

// Leg tags one fixture of a home-and-away pair.
type Leg string

const (
	LegNone   Leg = ""
	LegFirst  Leg = "first_leg"
	LegSecond Leg = "second_leg"
)

type MatchResult struct {
	Score1 int `json:"score1"`
	Score2 int `json:"score2"`
}

// Match is a fixture between two distinct teams. Result is set iff Status is completed.
type Match struct {
	ID          string       `json:"id"`
	Team1ID     string       `json:"team1_id"`
	Team2ID     string       `json:"team2_id"`
	PhaseIndex  int          `json:"phase_index"`
	ScheduledAt time.Time    `json:"scheduled_at"`
	Location    *string      `json:"location,omitempty"`
	Status      MatchStatus  `json:"status"`
	Result      *MatchResult `json:"result,omitempty"`
	Leg         Leg          `json:"leg,omitempty"`
	CreatedAt   time.Time    `json:"created_at"`
}

func (m *Match) IsCompleted() bool {
	return m.Status == MatchStatusCompleted && m.Result != nil
}

// Involves reports whether the team plays in this match.
func (m *Match) Involves(teamID string) bool {
	return m.Team1ID == teamID || m.Team2ID == teamID
}
