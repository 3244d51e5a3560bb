package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"github.com/Dosada05/championship-manager/groups"
	"github.com/Dosada05/championship-manager/models"
	"github.com/Dosada05/championship-manager/phases"
	"github.com/Dosada05/championship-manager/standings"
)

const (
	defaultTournamentName = "Championship"
	defaultNumGroups      = 2
)

func buildPhases(input ConfigureTournamentInput) ([]models.Phase, error) {
	switch input.Structure {
	case models.StructureSimple, "":
		kind := input.Kind
		if kind == "" {
			kind = models.PhaseKindGroup
		}
		phase := models.Phase{Kind: kind, EliminationType: input.EliminationType}
		if kind == models.PhaseKindGroup {
			phase.NumGroups = input.NumGroups
			if phase.NumGroups == 0 {
				phase.NumGroups = defaultNumGroups
			}
		}
		return []models.Phase{phase}, nil
	case models.StructureAdvanced:
		if len(input.Phases) == 0 {
			return nil, fmt.Errorf("%w: advanced structure needs at least one phase", ErrInvalidPhaseSchema)
		}
		return input.Phases, nil
	default:
		return nil, fmt.Errorf("%w: got %q", ErrInvalidStructure, input.Structure)
	}
}

// ConfigureTournament replaces the phase schema. It is allowed until any phase
// after the first has started. The first phase keeps its allocation when its
// shape is unchanged; its shape is locked once it has matches.
func (s *tournamentService) ConfigureTournament(ctx context.Context, tournamentID string, input ConfigureTournamentInput) (*models.TournamentConfig, error) {
	raw, err := buildPhases(input)
	if err != nil {
		return nil, err
	}
	normalized := phases.Normalize(raw)
	if _, err := phases.NewSchema(normalized); err != nil {
		return nil, err
	}

	structure := input.Structure
	if structure == "" {
		structure = models.StructureSimple
	}
	name := strings.TrimSpace(input.Name)
	if name == "" {
		name = defaultTournamentName
	}

	return mutate(ctx, s, tournamentID, EventTournamentConfigured, func(state *models.TournamentState) (*models.TournamentConfig, error) {
		old := state.Config
		for i := 1; i < len(old.Setups); i++ {
			if old.Setups[i].Status != models.PhaseStatusPending {
				return nil, fmt.Errorf("%w: %s is %s", ErrSchemaLocked, old.Phases[i].Name, old.Setups[i].Status)
			}
		}
		for _, m := range state.Matches {
			if m.PhaseIndex >= len(normalized) {
				return nil, fmt.Errorf("%w: matches exist in phase %d", ErrSchemaLocked, m.PhaseIndex+1)
			}
		}

		keepAllocation := old.IsConfigured() && sameShape(old.Phases[0], normalized[0])
		if !keepAllocation && hasMatches(state.Matches, 0) {
			return nil, fmt.Errorf("%w: %s already has matches; delete them before changing its kind or group count", ErrSchemaLocked, normalized[0].Name)
		}

		setups := make([]models.PhaseSetup, len(normalized))
		for i := range setups {
			setups[i].Status = models.PhaseStatusPending
		}
		setups[0].Status = models.PhaseStatusInProgress
		if keepAllocation {
			setups[0].Groups = old.Setups[0].Groups
			setups[0].EliminationTeams = old.Setups[0].EliminationTeams
		}

		state.Config = models.TournamentConfig{
			Name:        name,
			Structure:   structure,
			RoundTrip:   input.RoundTrip,
			Phases:      normalized,
			Setups:      setups,
			ActivePhase: 0,
			UpdatedAt:   s.now(),
		}

		s.logger.InfoContext(ctx, "tournament configured",
			slog.String("tournament_id", tournamentID),
			slog.String("structure", string(structure)),
			slog.Int("phases", len(normalized)),
			slog.Bool("round_trip", input.RoundTrip))
		cfg := state.Config
		return &cfg, nil
	})
}

func sameShape(a, b models.Phase) bool {
	return a.Kind == b.Kind && a.NumGroups == b.NumGroups
}

// activeGroupPhase resolves the active phase for allocation commands.
func activeGroupPhase(cfg *models.TournamentConfig) (*models.Phase, *models.PhaseSetup, error) {
	phase, setup, ok := cfg.Active()
	if !ok {
		return nil, nil, ErrTournamentNotConfigured
	}
	if !phase.IsGroup() {
		return nil, nil, fmt.Errorf("%w: %s is an elimination phase", ErrNotGroupPhase, phase.Name)
	}
	return phase, setup, nil
}

// InitializeGroups replaces the active phase's allocation with n empty groups.
// The allocation may differ from the schema's group count; the schema count
// only shapes the groups materialized when a phase is advanced into.
func (s *tournamentService) InitializeGroups(ctx context.Context, tournamentID string, numGroups int) ([]models.Group, error) {
	return mutate(ctx, s, tournamentID, EventGroupsUpdated, func(state *models.TournamentState) ([]models.Group, error) {
		phase, setup, err := activeGroupPhase(&state.Config)
		if err != nil {
			return nil, err
		}
		if hasMatches(state.Matches, state.Config.ActivePhase) {
			return nil, fmt.Errorf("%w: %s already has matches", ErrPhaseLocked, phase.Name)
		}

		alloc := groups.New(nil)
		if err := alloc.Initialize(numGroups); err != nil {
			return nil, err
		}
		setup.Groups = alloc.Groups()

		s.logger.InfoContext(ctx, "groups initialized",
			slog.String("tournament_id", tournamentID),
			slog.Int("phase_index", state.Config.ActivePhase),
			slog.Int("groups", numGroups))
		return setup.Groups, nil
	})
}

func (s *tournamentService) AssignTeam(ctx context.Context, tournamentID, teamID string, groupIndex int) ([]models.Group, error) {
	return mutate(ctx, s, tournamentID, EventGroupsUpdated, func(state *models.TournamentState) ([]models.Group, error) {
		_, setup, err := activeGroupPhase(&state.Config)
		if err != nil {
			return nil, err
		}
		if _, ok := state.TeamByID(teamID); !ok {
			return nil, fmt.Errorf("%w: %s", ErrTeamNotFound, teamID)
		}
		alloc := groups.New(setup.Groups)
		if err := alloc.Assign(teamID, groupIndex); err != nil {
			return nil, err
		}
		setup.Groups = alloc.Groups()
		return setup.Groups, nil
	})
}

func (s *tournamentService) UnassignTeam(ctx context.Context, tournamentID, teamID string, groupIndex int) ([]models.Group, error) {
	return mutate(ctx, s, tournamentID, EventGroupsUpdated, func(state *models.TournamentState) ([]models.Group, error) {
		_, setup, err := activeGroupPhase(&state.Config)
		if err != nil {
			return nil, err
		}
		alloc := groups.New(setup.Groups)
		if err := alloc.Unassign(teamID, groupIndex); err != nil {
			return nil, err
		}
		setup.Groups = alloc.Groups()
		return setup.Groups, nil
	})
}

func hasMatches(matches []models.Match, phaseIndex int) bool {
	for _, m := range matches {
		if m.PhaseIndex == phaseIndex {
			return true
		}
	}
	return false
}

// groupRankings ranks every group of a phase on that group's completed matches
// within the phase, in group order.
func groupRankings(state *models.TournamentState, phaseIndex int) [][]models.Standing {
	setup := state.Config.Setups[phaseIndex]
	phaseMatches := matchesOfPhase(state.Matches, phaseIndex)
	out := make([][]models.Standing, 0, len(setup.Groups))
	for _, g := range setup.Groups {
		out = append(out, standings.Compute(resolveTeams(state, g.TeamIDs), phaseMatches))
	}
	return out
}

// checkAdvanceable validates the phase lifecycle for an advancement of phaseIndex.
func checkAdvanceable(state *models.TournamentState, schema *phases.Schema, phaseIndex int) error {
	phase, err := schema.Phase(phaseIndex)
	if err != nil {
		return err
	}
	setup := state.Config.Setups[phaseIndex]
	switch setup.Status {
	case models.PhaseStatusPending:
		return fmt.Errorf("%w: %s has not started", ErrPhaseLocked, phase.Name)
	case models.PhaseStatusComplete:
		next, ok := schema.Next(phaseIndex)
		if !ok {
			return nil
		}
		if state.Config.Setups[next].Status == models.PhaseStatusComplete || hasMatches(state.Matches, next) {
			return fmt.Errorf("%w: %s is already under way", ErrPhaseLocked, state.Config.Phases[next].Name)
		}
	}
	return nil
}

// AdvancePhase moves the qualifiers of phaseIndex into the next phase. Calling it
// again on an advanced phase recomputes from the current results as long as the
// next phase has not started playing.
func (s *tournamentService) AdvancePhase(ctx context.Context, tournamentID string, phaseIndex int) (*phases.Advancement, error) {
	return mutate(ctx, s, tournamentID, EventPhaseAdvanced, func(state *models.TournamentState) (*phases.Advancement, error) {
		cfg := &state.Config
		if !cfg.IsConfigured() {
			return nil, ErrTournamentNotConfigured
		}
		schema, err := phases.NewSchema(cfg.Phases)
		if err != nil {
			return nil, s.inconsistent(ctx, tournamentID, "stored phase schema is invalid: %v", err)
		}
		if err := checkAdvanceable(state, schema, phaseIndex); err != nil {
			return nil, err
		}

		adv, err := phases.Plan(schema, phaseIndex, groupRankings(state, phaseIndex))
		if err != nil {
			var insufficient *phases.InsufficientQualifiersError
			if errors.As(err, &insufficient) {
				s.logger.InfoContext(ctx, "advancement rejected",
					slog.String("tournament_id", tournamentID),
					slog.Int("phase_index", phaseIndex),
					slog.Int("required", insufficient.Required),
					slog.Int("available", insufficient.Actual))
			}
			return nil, err
		}

		now := s.now()
		next := &cfg.Setups[adv.To]
		next.Groups = adv.Groups
		next.EliminationTeams = adv.EliminationTeams
		next.Status = models.PhaseStatusInProgress
		next.Stale = false

		current := &cfg.Setups[adv.From]
		current.Status = models.PhaseStatusComplete
		current.AdvancedAt = &now
		cfg.ActivePhase = adv.To
		cfg.UpdatedAt = now

		s.logger.InfoContext(ctx, "phase advanced",
			slog.String("tournament_id", tournamentID),
			slog.Int("from", adv.From),
			slog.Int("to", adv.To),
			slog.Int("qualifiers", len(adv.Qualifiers)))
		return adv, nil
	})
}

func (s *tournamentService) CanAdvance(ctx context.Context, tournamentID string, phaseIndex int) (*AdvanceCheck, error) {
	state, err := s.read(ctx, tournamentID)
	if err != nil {
		return nil, err
	}
	if !state.Config.IsConfigured() {
		return nil, ErrTournamentNotConfigured
	}
	schema, err := phases.NewSchema(state.Config.Phases)
	if err != nil {
		return nil, s.inconsistent(ctx, tournamentID, "stored phase schema is invalid: %v", err)
	}
	if _, err := schema.Phase(phaseIndex); err != nil {
		return nil, err
	}

	check := &AdvanceCheck{PhaseIndex: phaseIndex}
	if err := checkAdvanceable(state, schema, phaseIndex); err != nil {
		check.Reason = err.Error()
		return check, nil
	}
	adv, err := phases.Plan(schema, phaseIndex, groupRankings(state, phaseIndex))
	if err != nil {
		check.Reason = err.Error()
		var insufficient *phases.InsufficientQualifiersError
		if errors.As(err, &insufficient) {
			check.Required = insufficient.Required
			check.Available = insufficient.Actual
		}
		return check, nil
	}
	check.Ready = true
	check.Required = len(adv.Qualifiers)
	check.Available = len(adv.Qualifiers)
	check.Qualifiers = adv.Qualifiers
	return check, nil
}
