package groups

import (
	"errors"
	"fmt"
)

var (
	ErrSelfMatch       = errors.New("a team cannot play against itself")
	ErrTeamUnallocated = errors.New("team is not allocated to any group")
	ErrDifferentGroups = errors.New("teams from different groups cannot play each other")
)

// TeamRef identifies a team in legality verdicts and error messages.
type TeamRef struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

// UnallocatedTeamError names the team that has no group.
type UnallocatedTeamError struct {
	Team TeamRef
}

func (e *UnallocatedTeamError) Error() string {
	return fmt.Sprintf("team %q is not allocated to any group; allocate all teams before scheduling", e.Team.Name)
}

func (e *UnallocatedTeamError) Unwrap() error { return ErrTeamUnallocated }

// CrossGroupError names both teams and both of their groups.
type CrossGroupError struct {
	Team1, Team2   TeamRef
	Group1, Group2 string
}

func (e *CrossGroupError) Error() string {
	return fmt.Sprintf("teams from different groups cannot play each other: %q is in group %s and %q is in group %s",
		e.Team1.Name, e.Group1, e.Team2.Name, e.Group2)
}

func (e *CrossGroupError) Unwrap() error { return ErrDifferentGroups }

// Matchup is the verdict for a legal pairing.
type Matchup struct {
	GroupStructured bool   `json:"group_structured"`
	GroupIndex      int    `json:"group_index"`
	GroupLabel      string `json:"group_label,omitempty"`
}

// CheckMatchup decides whether team1 may play team2 under the allocation.
// When groupStructured is false any two distinct teams may meet; when it is
// true a nil allocation leaves team1 unallocated.
// Scheduling and the advisory preview both go through this function.
func CheckMatchup(team1, team2 TeamRef, alloc *Allocator, groupStructured bool) (Matchup, error) {
	if team1.ID == team2.ID {
		return Matchup{}, ErrSelfMatch
	}
	if !groupStructured {
		return Matchup{GroupIndex: -1}, nil
	}
	if alloc == nil {
		return Matchup{}, &UnallocatedTeamError{Team: team1}
	}

	g1, ok1 := alloc.GroupOf(team1.ID)
	g2, ok2 := alloc.GroupOf(team2.ID)
	if !ok1 {
		return Matchup{}, &UnallocatedTeamError{Team: team1}
	}
	if !ok2 {
		return Matchup{}, &UnallocatedTeamError{Team: team2}
	}
	if g1 != g2 {
		return Matchup{}, &CrossGroupError{
			Team1:  team1,
			Team2:  team2,
			Group1: Label(g1),
			Group2: Label(g2),
		}
	}

	return Matchup{GroupStructured: true, GroupIndex: g1, GroupLabel: Label(g1)}, nil
}
