package services

import (
	"context"
	"errors"
	"fmt"

	"github.com/Dosada05/championship-manager/groups"
	"github.com/Dosada05/championship-manager/models"
	"github.com/Dosada05/championship-manager/phases"
	"github.com/Dosada05/championship-manager/standings"
)

// GlobalStandings ranks the whole registry on cumulative statistics.
func (s *tournamentService) GlobalStandings(ctx context.Context, tournamentID string) ([]models.Standing, error) {
	state, err := s.read(ctx, tournamentID)
	if err != nil {
		return nil, err
	}
	return standings.FromTeams(state.Teams), nil
}

// PhaseStandings ranks each group of a group phase on its own matches and tags
// rows with their qualification status. Elimination phases get one overall table.
func (s *tournamentService) PhaseStandings(ctx context.Context, tournamentID string, phaseIndex int) (*models.PhaseStandings, error) {
	state, err := s.read(ctx, tournamentID)
	if err != nil {
		return nil, err
	}
	cfg := &state.Config
	if !cfg.IsConfigured() {
		return nil, ErrTournamentNotConfigured
	}
	if phaseIndex < 0 || phaseIndex >= len(cfg.Phases) {
		return nil, fmt.Errorf("%w: %d (phases configured: %d)", ErrPhaseNotFound, phaseIndex, len(cfg.Phases))
	}

	phase := cfg.Phases[phaseIndex]
	setup := cfg.Setups[phaseIndex]
	out := &models.PhaseStandings{
		PhaseIndex: phaseIndex,
		Phase:      phase,
		Status:     setup.Status,
	}

	if !phase.IsGroup() {
		out.Overall = standings.Compute(resolveTeams(state, setup.EliminationTeams), matchesOfPhase(state.Matches, phaseIndex))
		return out, nil
	}

	rankings := groupRankings(state, phaseIndex)
	advanced := advancedTeams(cfg, phaseIndex)
	quota := 0
	if phase.Advancement != nil {
		quota = phases.Quota(*phase.Advancement, len(rankings))
	}

	out.Groups = make([]models.GroupStandings, 0, len(rankings))
	for i, ranked := range rankings {
		switch {
		case phase.Advancement == nil:
		case setup.Status == models.PhaseStatusComplete:
			phases.MarkFinal(ranked, advanced)
		default:
			phases.MarkProjected(ranked, quota)
		}
		out.Groups = append(out.Groups, models.GroupStandings{
			GroupIndex: i,
			GroupName:  setup.Groups[i].Name,
			Standings:  ranked,
		})
	}
	return out, nil
}

// advancedTeams is the team set of the phase after phaseIndex, if there is one.
func advancedTeams(cfg *models.TournamentConfig, phaseIndex int) map[string]bool {
	out := make(map[string]bool)
	next := phaseIndex + 1
	if next >= len(cfg.Phases) {
		return out
	}
	for _, id := range phaseTeamIDs(cfg.Phases[next], cfg.Setups[next]) {
		out[id] = true
	}
	return out
}

func (s *tournamentService) GroupOfTeam(ctx context.Context, tournamentID, teamID string) (*TeamGroup, error) {
	state, err := s.read(ctx, tournamentID)
	if err != nil {
		return nil, err
	}
	if _, ok := state.TeamByID(teamID); !ok {
		return nil, fmt.Errorf("%w: %s", ErrTeamNotFound, teamID)
	}

	result := &TeamGroup{TeamID: teamID, PhaseIndex: state.Config.ActivePhase, GroupIndex: -1}
	alloc, _ := activeAllocation(&state.Config)
	if alloc == nil {
		return result, nil
	}
	if idx, ok := alloc.GroupOf(teamID); ok {
		result.Allocated = true
		result.GroupIndex = idx
		result.GroupName = alloc.Groups()[idx].Name
	}
	return result, nil
}

func (s *tournamentService) GroupAllocation(ctx context.Context, tournamentID string) (*GroupAllocation, error) {
	state, err := s.read(ctx, tournamentID)
	if err != nil {
		return nil, err
	}
	result := &GroupAllocation{
		PhaseIndex: state.Config.ActivePhase,
		Groups:     []models.Group{},
	}
	alloc, _ := activeAllocation(&state.Config)
	if alloc == nil {
		alloc = groups.New(nil)
	}
	if alloc.Len() > 0 {
		result.Groups = alloc.Groups()
	}
	result.Unallocated = alloc.Unallocated(state.Teams)
	return result, nil
}

// PreviewMatchup runs the scheduling legality check without scheduling anything.
// An illegal pairing is a verdict, not an error.
func (s *tournamentService) PreviewMatchup(ctx context.Context, tournamentID, team1ID, team2ID string) (*MatchupPreview, error) {
	state, err := s.read(ctx, tournamentID)
	if err != nil {
		return nil, err
	}
	team1, ok := state.TeamByID(team1ID)
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrTeamNotFound, team1ID)
	}
	team2, ok := state.TeamByID(team2ID)
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrTeamNotFound, team2ID)
	}

	alloc, groupStructured := activeAllocation(&state.Config)
	preview := &MatchupPreview{Team1ID: team1ID, Team2ID: team2ID, GroupStructured: groupStructured}
	matchup, err := groups.CheckMatchup(teamRef(team1), teamRef(team2), alloc, groupStructured)
	if err != nil {
		if !isLegalityError(err) {
			return nil, err
		}
		preview.Reason = err.Error()
		return preview, nil
	}
	preview.Legal = true
	preview.GroupLabel = matchup.GroupLabel
	return preview, nil
}

func isLegalityError(err error) bool {
	return errors.Is(err, groups.ErrSelfMatch) ||
		errors.Is(err, groups.ErrTeamUnallocated) ||
		errors.Is(err, groups.ErrDifferentGroups)
}

// EligibleOpponents lists the teams that may be scheduled against teamID in the
// active phase: its own group when group-structured, everyone else otherwise.
func (s *tournamentService) EligibleOpponents(ctx context.Context, tournamentID, teamID string) ([]models.Team, error) {
	state, err := s.read(ctx, tournamentID)
	if err != nil {
		return nil, err
	}
	team, ok := state.TeamByID(teamID)
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrTeamNotFound, teamID)
	}

	alloc, groupStructured := activeAllocation(&state.Config)
	out := make([]models.Team, 0)
	for i := range state.Teams {
		other := &state.Teams[i]
		if _, err := groups.CheckMatchup(teamRef(team), teamRef(other), alloc, groupStructured); err == nil {
			out = append(out, *other)
		}
	}
	return out, nil
}
