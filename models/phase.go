package models

import "time"

type PhaseKind string

const (
	PhaseKindGroup       PhaseKind = "group"
	PhaseKindElimination PhaseKind = "elimination"
)

type EliminationType string

const (
	EliminationSingle EliminationType = "single"
	EliminationDouble EliminationType = "double"
)

// PhaseStatus replaces inferring progress from which data happens to be present.
type PhaseStatus string

const (
	PhaseStatusPending    PhaseStatus = "pending"
	PhaseStatusInProgress PhaseStatus = "in_progress"
	PhaseStatusComplete   PhaseStatus = "complete"
)

// Phase is one stage of the tournament schema.
type Phase struct {
	Number          int             `json:"number" yaml:"number"`
	Name            string          `json:"name" yaml:"name"`
	Kind            PhaseKind       `json:"kind" yaml:"kind"`
	NumGroups       int             `json:"num_groups,omitempty" yaml:"num_groups"`
	EliminationType EliminationType `json:"elimination_type,omitempty" yaml:"elimination_type"`
	// Advancement is the number of teams moving on to the next phase; nil on the final phase.
	Advancement *int `json:"advancement,omitempty" yaml:"advancement"`
}

func (p Phase) IsGroup() bool {
	return p.Kind == PhaseKindGroup
}

// PhaseSetup is the materialized team set of a phase plus its progress.
type PhaseSetup struct {
	Status           PhaseStatus `json:"status"`
	Groups           []Group     `json:"groups,omitempty"`
	EliminationTeams []string    `json:"elimination_teams,omitempty"`
	// Stale is set when a result in an earlier, already advanced phase changed
	// after this phase's team set was computed.
	Stale      bool       `json:"stale,omitempty"`
	AdvancedAt *time.Time `json:"advanced_at,omitempty"`
}
