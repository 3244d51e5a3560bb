// Package groups maintains the team-to-group allocation of a phase and decides
// which pairings that allocation permits.
package groups

import (
	"errors"
	"fmt"

	"github.com/Dosada05/championship-manager/models"
)

const MaxGroups = 8

var (
	ErrInvalidGroupCount    = errors.New("group count must be between 1 and 8")
	ErrGroupIndexOutOfRange = errors.New("group index out of range")
)

// Label returns the sequential letter of a group: 0 -> "A", 1 -> "B", 26 -> "AA".
func Label(index int) string {
	label := ""
	for n := index; n >= 0; n = n/26 - 1 {
		label = string(rune('A'+n%26)) + label
	}
	return label
}

// Name is the display name of the group at index.
func Name(index int) string {
	return "Group " + Label(index)
}

// Allocator owns an ordered list of groups and guarantees that a team is
// a member of at most one of them.
type Allocator struct {
	groups []models.Group
}

// New wraps an existing allocation. The slice is owned by the allocator afterwards.
func New(groups []models.Group) *Allocator {
	return &Allocator{groups: groups}
}

// Groups returns the current allocation.
func (a *Allocator) Groups() []models.Group {
	return a.groups
}

func (a *Allocator) Len() int {
	return len(a.groups)
}

// Initialize replaces the allocation with n empty groups labelled A, B, C...
func (a *Allocator) Initialize(n int) error {
	if n < 1 || n > MaxGroups {
		return fmt.Errorf("%w: got %d", ErrInvalidGroupCount, n)
	}
	a.groups = make([]models.Group, n)
	for i := range a.groups {
		a.groups[i] = models.Group{Name: Name(i), TeamIDs: []string{}}
	}
	return nil
}

func (a *Allocator) checkIndex(groupIndex int) error {
	if groupIndex < 0 || groupIndex >= len(a.groups) {
		return fmt.Errorf("%w: %d (groups configured: %d)", ErrGroupIndexOutOfRange, groupIndex, len(a.groups))
	}
	return nil
}

// Assign moves the team into the target group, removing it from any other group first.
func (a *Allocator) Assign(teamID string, groupIndex int) error {
	if err := a.checkIndex(groupIndex); err != nil {
		return err
	}
	a.remove(teamID)
	a.groups[groupIndex].TeamIDs = append(a.groups[groupIndex].TeamIDs, teamID)
	return nil
}

// Unassign removes the team from the group if it is there.
func (a *Allocator) Unassign(teamID string, groupIndex int) error {
	if err := a.checkIndex(groupIndex); err != nil {
		return err
	}
	a.groups[groupIndex].TeamIDs = without(a.groups[groupIndex].TeamIDs, teamID)
	return nil
}

// Remove drops the team from every group. Used when a team leaves the registry.
func (a *Allocator) Remove(teamID string) {
	a.remove(teamID)
}

func (a *Allocator) remove(teamID string) {
	for i := range a.groups {
		a.groups[i].TeamIDs = without(a.groups[i].TeamIDs, teamID)
	}
}

// GroupOf returns the index of the group holding the team.
func (a *Allocator) GroupOf(teamID string) (int, bool) {
	for i, g := range a.groups {
		if g.Contains(teamID) {
			return i, true
		}
	}
	return -1, false
}

// Unallocated lists the registry teams that are in no group, in registry order.
func (a *Allocator) Unallocated(allTeams []models.Team) []models.Team {
	out := make([]models.Team, 0)
	for _, t := range allTeams {
		if _, ok := a.GroupOf(t.ID); !ok {
			out = append(out, t)
		}
	}
	return out
}

func without(ids []string, teamID string) []string {
	out := make([]string, 0, len(ids))
	for _, id := range ids {
		if id != teamID {
			out = append(out, id)
		}
	}
	return out
}
