package services

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/Dosada05/championship-manager/groups"
	"github.com/Dosada05/championship-manager/models"
	"github.com/google/uuid"
)

func (s *tournamentService) AddTeam(ctx context.Context, tournamentID string, input AddTeamInput) (*models.Team, error) {
	name := strings.TrimSpace(input.Name)
	if name == "" {
		return nil, ErrTeamNameRequired
	}

	return mutate(ctx, s, tournamentID, EventTeamAdded, func(state *models.TournamentState) (*models.Team, error) {
		if existing, ok := findTeamByName(state.Teams, name); ok {
			return nil, fmt.Errorf("%w: %q", ErrTeamNameConflict, existing.Name)
		}
		team := models.Team{
			ID:        uuid.NewString(),
			Name:      name,
			CreatedAt: s.now(),
		}
		state.Teams = append(state.Teams, team)

		s.logger.InfoContext(ctx, "team added",
			slog.String("tournament_id", tournamentID),
			slog.String("team_id", team.ID),
			slog.String("team_name", team.Name))
		return &team, nil
	})
}

// RemoveTeam deletes the team, its matches and every allocation that references it.
// Completed matches are reverted from the opponents' stats first.
func (s *tournamentService) RemoveTeam(ctx context.Context, tournamentID, teamID string) error {
	_, err := mutate(ctx, s, tournamentID, EventTeamRemoved, func(state *models.TournamentState) (*models.Team, error) {
		team, ok := state.TeamByID(teamID)
		if !ok {
			return nil, fmt.Errorf("%w: %s", ErrTeamNotFound, teamID)
		}
		removed := *team

		// Resolve every opponent before touching any stats.
		for i := range state.Matches {
			m := &state.Matches[i]
			if !m.Involves(teamID) || !m.IsCompleted() {
				continue
			}
			if _, ok := state.TeamByID(m.Team1ID); !ok {
				return nil, s.inconsistent(ctx, tournamentID, "match %s references missing team %s", m.ID, m.Team1ID)
			}
			if _, ok := state.TeamByID(m.Team2ID); !ok {
				return nil, s.inconsistent(ctx, tournamentID, "match %s references missing team %s", m.ID, m.Team2ID)
			}
		}

		kept := make([]models.Match, 0, len(state.Matches))
		for i := range state.Matches {
			m := state.Matches[i]
			if !m.Involves(teamID) {
				kept = append(kept, m)
				continue
			}
			if m.IsCompleted() {
				t1, _ := state.TeamByID(m.Team1ID)
				t2, _ := state.TeamByID(m.Team2ID)
				models.RevertResult(t1, t2, m.Result.Score1, m.Result.Score2)
				s.markDownstreamStale(ctx, state, m.PhaseIndex)
			}
		}
		state.Matches = kept

		for i := range state.Config.Setups {
			setup := &state.Config.Setups[i]
			alloc := groups.New(setup.Groups)
			alloc.Remove(teamID)
			setup.Groups = alloc.Groups()
			setup.EliminationTeams = removeString(setup.EliminationTeams, teamID)
		}

		teams := make([]models.Team, 0, len(state.Teams)-1)
		for _, t := range state.Teams {
			if t.ID != teamID {
				teams = append(teams, t)
			}
		}
		state.Teams = teams

		s.logger.InfoContext(ctx, "team removed",
			slog.String("tournament_id", tournamentID),
			slog.String("team_id", teamID))
		return &removed, nil
	})
	return err
}

func (s *tournamentService) ListTeams(ctx context.Context, tournamentID string) ([]models.Team, error) {
	state, err := s.read(ctx, tournamentID)
	if err != nil {
		return nil, err
	}
	return state.Teams, nil
}
