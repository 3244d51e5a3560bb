package services

import (
	"strings"
	"time"

	"github.com/Dosada05/championship-manager/groups"
	"github.com/Dosada05/championship-manager/models"
)

const (
	matchDateLayout = "2006-01-02"
	matchTimeLayout = "15:04"
	secondLegDelay  = 7 * 24 * time.Hour
)

func parseSchedule(date, clock string) (time.Time, error) {
	date, clock = strings.TrimSpace(date), strings.TrimSpace(clock)
	if date == "" || clock == "" {
		return time.Time{}, ErrMatchDateRequired
	}
	at, err := time.Parse(matchDateLayout+" "+matchTimeLayout, date+" "+clock)
	if err != nil {
		return time.Time{}, ErrInvalidMatchDate
	}
	return at, nil
}

func teamRef(t *models.Team) groups.TeamRef {
	return groups.TeamRef{ID: t.ID, Name: t.Name}
}

func findTeamByName(teams []models.Team, name string) (*models.Team, bool) {
	for i := range teams {
		if strings.EqualFold(teams[i].Name, name) {
			return &teams[i], true
		}
	}
	return nil, false
}

// activeAllocation returns the allocator over the active phase's groups and whether
// the active phase is group-structured: a group phase with at least one group.
// Without a schema there is no allocation and any distinct pair may meet.
func activeAllocation(cfg *models.TournamentConfig) (*groups.Allocator, bool) {
	phase, setup, ok := cfg.Active()
	if !ok {
		return nil, false
	}
	alloc := groups.New(setup.Groups)
	return alloc, phase.IsGroup() && alloc.Len() > 0
}

// phaseTeamIDs lists the team set of a phase: group members in group order, or
// the elimination list.
func phaseTeamIDs(phase models.Phase, setup models.PhaseSetup) []string {
	if !phase.IsGroup() {
		return setup.EliminationTeams
	}
	ids := make([]string, 0)
	for _, g := range setup.Groups {
		ids = append(ids, g.TeamIDs...)
	}
	return ids
}

func matchesOfPhase(matches []models.Match, phaseIndex int) []models.Match {
	out := make([]models.Match, 0)
	for _, m := range matches {
		if m.PhaseIndex == phaseIndex {
			out = append(out, m)
		}
	}
	return out
}

// resolveTeams maps IDs to registry teams, skipping any that are gone.
func resolveTeams(state *models.TournamentState, ids []string) []models.Team {
	out := make([]models.Team, 0, len(ids))
	for _, id := range ids {
		if t, ok := state.TeamByID(id); ok {
			out = append(out, *t)
		}
	}
	return out
}

func removeString(ids []string, target string) []string {
	out := make([]string, 0, len(ids))
	for _, id := range ids {
		if id != target {
			out = append(out, id)
		}
	}
	return out
}
