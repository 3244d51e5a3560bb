package models

type Qualification string

const (
	QualificationQualified  Qualification = "qualified"
	QualificationEliminated Qualification = "eliminated"
	QualificationPending    Qualification = "pending"
)

// Standing is a derived row of a ranking; it is never persisted on its own.
type Standing struct {
	Rank           int           `json:"rank"`
	TeamID         string        `json:"team_id"`
	TeamName       string        `json:"team_name"`
	Stats          TeamStats     `json:"stats"`
	GoalDifference int           `json:"goal_difference"`
	Qualification  Qualification `json:"qualification,omitempty"`
}

// GroupStandings is the ranking of one group within a phase.
type GroupStandings struct {
	GroupIndex int        `json:"group_index"`
	GroupName  string     `json:"group_name"`
	Standings  []Standing `json:"standings"`
}

type PhaseStandings struct {
	PhaseIndex int              `json:"phase_index"`
	Phase      Phase            `json:"phase"`
	Status     PhaseStatus      `json:"status"`
	Groups     []GroupStandings `json:"groups,omitempty"`
	// Overall is filled for elimination phases, ranking the phase's team set on its matches.
	Overall []Standing `json:"overall,omitempty"`
}
