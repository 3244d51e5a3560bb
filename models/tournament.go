package models

import "time"

// TournamentStructure distinguishes a single-stage tournament from a multi-phase schema.
type TournamentStructure string

const (
	StructureSimple   TournamentStructure = "simple"
	StructureAdvanced TournamentStructure = "advanced"
)

// TournamentConfig holds the phase schema and the per-phase allocations.
// Setups always has one entry per phase.
type TournamentConfig struct {
	Name        string              `json:"name"`
	Structure   TournamentStructure `json:"structure"`
	RoundTrip   bool                `json:"round_trip"`
	Phases      []Phase             `json:"phases"`
	Setups      []PhaseSetup        `json:"setups"`
	ActivePhase int                 `json:"active_phase"`
	UpdatedAt   time.Time           `json:"updated_at"`
}

func (c *TournamentConfig) IsConfigured() bool {
	return len(c.Phases) > 0 && len(c.Setups) == len(c.Phases)
}

// Active returns the active phase and its setup. ok is false when no schema exists.
func (c *TournamentConfig) Active() (phase *Phase, setup *PhaseSetup, ok bool) {
	if !c.IsConfigured() || c.ActivePhase < 0 || c.ActivePhase >= len(c.Phases) {
		return nil, nil, false
	}
	return &c.Phases[c.ActivePhase], &c.Setups[c.ActivePhase], true
}

// TournamentState is the aggregate loaded and saved wholesale by the persistence layer.
type TournamentState struct {
	ID      string           `json:"id"`
	Teams   []Team           `json:"teams"`
	Matches []Match          `json:"matches"`
	Config  TournamentConfig `json:"config"`
	Version int64            `json:"version"`
}

func (s *TournamentState) TeamByID(id string) (*Team, bool) {
	for i := range s.Teams {
		if s.Teams[i].ID == id {
			return &s.Teams[i], true
		}
	}
	return nil, false
}

func (s *TournamentState) MatchByID(id string) (*Match, bool) {
	for i := range s.Matches {
		if s.Matches[i].ID == id {
			return &s.Matches[i], true
		}
	}
	return nil, false
}

// PhaseSummary is the read model returned for tournament overviews.
type PhaseSummary struct {
	Index      int         `json:"index"`
	Phase      Phase       `json:"phase"`
	Status     PhaseStatus `json:"status"`
	TeamsCount int         `json:"teams_count"`
	Stale      bool        `json:"stale,omitempty"`
}

type TournamentOverview struct {
	ID          string              `json:"id"`
	Name        string              `json:"name"`
	Structure   TournamentStructure `json:"structure"`
	RoundTrip   bool                `json:"round_trip"`
	ActivePhase int                 `json:"active_phase"`
	Phases      []PhaseSummary      `json:"phases"`
	TeamsTotal  int                 `json:"teams_total"`
	Matches     int                 `json:"matches_total"`
	Completed   int                 `json:"matches_completed"`
	Version     int64               `json:"version"`
}
