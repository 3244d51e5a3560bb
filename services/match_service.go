package services

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/Dosada05/championship-manager/groups"
	"github.com/Dosada05/championship-manager/models"
	"github.com/Dosada05/championship-manager/phases"
	"github.com/google/uuid"
)

// ScheduleMatch checks the pairing against the active phase's allocation and
// creates one match, or both legs when the tournament is round trip.
func (s *tournamentService) ScheduleMatch(ctx context.Context, tournamentID string, input ScheduleMatchInput) ([]models.Match, error) {
	if input.Team1ID == "" || input.Team2ID == "" {
		return nil, fmt.Errorf("%w: both teams must be selected", ErrValidationFailed)
	}
	if input.Team1ID == input.Team2ID {
		return nil, ErrSelfMatch
	}
	scheduledAt, err := parseSchedule(input.Date, input.Time)
	if err != nil {
		return nil, err
	}
	var location *string
	if input.Location != nil {
		if trimmed := strings.TrimSpace(*input.Location); trimmed != "" {
			location = &trimmed
		}
	}

	return mutate(ctx, s, tournamentID, EventMatchScheduled, func(state *models.TournamentState) ([]models.Match, error) {
		team1, ok := state.TeamByID(input.Team1ID)
		if !ok {
			return nil, fmt.Errorf("%w: %s", ErrTeamNotFound, input.Team1ID)
		}
		team2, ok := state.TeamByID(input.Team2ID)
		if !ok {
			return nil, fmt.Errorf("%w: %s", ErrTeamNotFound, input.Team2ID)
		}

		alloc, groupStructured := activeAllocation(&state.Config)
		if _, err := groups.CheckMatchup(teamRef(team1), teamRef(team2), alloc, groupStructured); err != nil {
			return nil, err
		}

		now := s.now()
		first := models.Match{
			ID:          uuid.NewString(),
			Team1ID:     team1.ID,
			Team2ID:     team2.ID,
			PhaseIndex:  state.Config.ActivePhase,
			ScheduledAt: scheduledAt,
			Location:    location,
			Status:      models.MatchStatusScheduled,
			CreatedAt:   now,
		}
		created := []models.Match{first}
		if state.Config.RoundTrip {
			created[0].Leg = models.LegFirst
			second := first
			second.ID = uuid.NewString()
			second.Team1ID, second.Team2ID = first.Team2ID, first.Team1ID
			second.ScheduledAt = scheduledAt.Add(secondLegDelay)
			second.Leg = models.LegSecond
			created = append(created, second)
		}
		state.Matches = append(state.Matches, created...)

		s.logger.InfoContext(ctx, "match scheduled",
			slog.String("tournament_id", tournamentID),
			slog.String("team1_id", team1.ID),
			slog.String("team2_id", team2.ID),
			slog.Int("phase_index", first.PhaseIndex),
			slog.Int("matches_created", len(created)))
		return created, nil
	})
}

// RecordResult completes a match. Entering a result for an already completed
// match overwrites it: the old result is reverted before the new one is applied.
func (s *tournamentService) RecordResult(ctx context.Context, tournamentID, matchID string, input RecordResultInput) (*models.Match, error) {
	if input.Score1 == nil || input.Score2 == nil {
		return nil, fmt.Errorf("%w: both scores are required", ErrInvalidScore)
	}
	score1, score2 := *input.Score1, *input.Score2
	if score1 < 0 || score2 < 0 {
		return nil, fmt.Errorf("%w: got %d and %d", ErrInvalidScore, score1, score2)
	}

	return mutate(ctx, s, tournamentID, EventResultRecorded, func(state *models.TournamentState) (*models.Match, error) {
		match, ok := state.MatchByID(matchID)
		if !ok {
			return nil, fmt.Errorf("%w: %s", ErrMatchNotFound, matchID)
		}
		team1, ok := state.TeamByID(match.Team1ID)
		if !ok {
			return nil, s.inconsistent(ctx, tournamentID, "match %s references missing team %s", match.ID, match.Team1ID)
		}
		team2, ok := state.TeamByID(match.Team2ID)
		if !ok {
			return nil, s.inconsistent(ctx, tournamentID, "match %s references missing team %s", match.ID, match.Team2ID)
		}

		if match.IsCompleted() {
			models.RevertResult(team1, team2, match.Result.Score1, match.Result.Score2)
		}
		models.ApplyResult(team1, team2, score1, score2)
		match.Status = models.MatchStatusCompleted
		match.Result = &models.MatchResult{Score1: score1, Score2: score2}

		s.markDownstreamStale(ctx, state, match.PhaseIndex)

		s.logger.InfoContext(ctx, "result recorded",
			slog.String("tournament_id", tournamentID),
			slog.String("match_id", match.ID),
			slog.Int("score1", score1),
			slog.Int("score2", score2))
		updated := *match
		return &updated, nil
	})
}

func (s *tournamentService) DeleteMatch(ctx context.Context, tournamentID, matchID string) error {
	_, err := mutate(ctx, s, tournamentID, EventMatchDeleted, func(state *models.TournamentState) (*models.Match, error) {
		match, ok := state.MatchByID(matchID)
		if !ok {
			return nil, fmt.Errorf("%w: %s", ErrMatchNotFound, matchID)
		}
		deleted := *match

		if deleted.IsCompleted() {
			team1, ok1 := state.TeamByID(deleted.Team1ID)
			team2, ok2 := state.TeamByID(deleted.Team2ID)
			if !ok1 || !ok2 {
				return nil, s.inconsistent(ctx, tournamentID, "match %s references a missing team", deleted.ID)
			}
			models.RevertResult(team1, team2, deleted.Result.Score1, deleted.Result.Score2)
			s.markDownstreamStale(ctx, state, deleted.PhaseIndex)
		}

		kept := make([]models.Match, 0, len(state.Matches)-1)
		for _, m := range state.Matches {
			if m.ID != matchID {
				kept = append(kept, m)
			}
		}
		state.Matches = kept

		s.logger.InfoContext(ctx, "match deleted",
			slog.String("tournament_id", tournamentID),
			slog.String("match_id", matchID))
		return &deleted, nil
	})
	return err
}

// markDownstreamStale flags the phases fed by phaseIndex when phaseIndex has
// already advanced, since their team sets were computed from older results.
func (s *tournamentService) markDownstreamStale(ctx context.Context, state *models.TournamentState, phaseIndex int) {
	cfg := &state.Config
	if !cfg.IsConfigured() || phaseIndex < 0 || phaseIndex >= len(cfg.Setups) {
		return
	}
	if cfg.Setups[phaseIndex].Status != models.PhaseStatusComplete {
		return
	}
	schema, err := phases.NewSchema(cfg.Phases)
	if err != nil {
		s.logger.WarnContext(ctx, "stored phase schema is invalid", slog.String("tournament_id", state.ID), slog.Any("error", err))
		return
	}
	for _, idx := range schema.Downstream(phaseIndex) {
		if cfg.Setups[idx].Status != models.PhaseStatusPending {
			cfg.Setups[idx].Stale = true
		}
	}
}

func (s *tournamentService) ListMatches(ctx context.Context, tournamentID string, filter MatchFilter) ([]models.Match, error) {
	state, err := s.read(ctx, tournamentID)
	if err != nil {
		return nil, err
	}
	out := make([]models.Match, 0, len(state.Matches))
	for _, m := range state.Matches {
		if filter.PhaseIndex != nil && m.PhaseIndex != *filter.PhaseIndex {
			continue
		}
		if filter.Status != nil && m.Status != *filter.Status {
			continue
		}
		if filter.TeamID != "" && !m.Involves(filter.TeamID) {
			continue
		}
		out = append(out, m)
	}
	return out, nil
}
