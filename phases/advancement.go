package phases

import (
	"errors"
	"fmt"

	"github.com/Dosada05/championship-manager/groups"
	"github.com/Dosada05/championship-manager/models"
)

var (
	ErrNoNextPhase              = errors.New("there is no next phase to advance to")
	ErrAdvancementNotConfigured = errors.New("number of advancing teams is not configured for this phase")
	ErrUnsupportedPhaseKind     = errors.New("qualifier selection is not supported for elimination phases")
	ErrInsufficientQualifiers   = errors.New("not enough qualified teams")
)

// InsufficientQualifiersError reports the required and the available qualifier counts.
type InsufficientQualifiersError struct {
	Required int
	Actual   int
}

func (e *InsufficientQualifiersError) Error() string {
	return fmt.Sprintf("not enough qualified teams yet: required %d, available %d", e.Required, e.Actual)
}

func (e *InsufficientQualifiersError) Unwrap() error { return ErrInsufficientQualifiers }

// Quota is how many teams each group sends through: ceil(advancement / numGroups).
func Quota(advancement, numGroups int) int {
	if numGroups <= 0 {
		return 0
	}
	return (advancement + numGroups - 1) / numGroups
}

// Qualifiable returns the top quota teams of one ranked group that have played at least once.
func Qualifiable(ranked []models.Standing, quota int) []models.Standing {
	out := make([]models.Standing, 0, quota)
	for _, row := range ranked {
		if len(out) == quota {
			break
		}
		if row.Stats.MatchesPlayed > 0 {
			out = append(out, row)
		}
	}
	return out
}

// SelectQualifiers concatenates the per-group qualifiers in group order and returns
// exactly advancement team IDs, or an InsufficientQualifiersError.
func SelectQualifiers(groupRankings [][]models.Standing, advancement int) ([]string, error) {
	quota := Quota(advancement, len(groupRankings))
	qualifiers := make([]string, 0, quota*len(groupRankings))
	for _, ranked := range groupRankings {
		for _, row := range Qualifiable(ranked, quota) {
			qualifiers = append(qualifiers, row.TeamID)
		}
	}
	if len(qualifiers) < advancement {
		return nil, &InsufficientQualifiersError{Required: advancement, Actual: len(qualifiers)}
	}
	return qualifiers[:advancement], nil
}

// Distribute slices the ranked qualifiers into numGroups contiguous blocks:
// group A gets the first ceil(n/numGroups), group B the next block, and so on.
func Distribute(qualifiers []string, numGroups int) []models.Group {
	if numGroups < 1 {
		numGroups = 1
	}
	per := (len(qualifiers) + numGroups - 1) / numGroups
	out := make([]models.Group, numGroups)
	for i := range out {
		lo := min(i*per, len(qualifiers))
		hi := min((i+1)*per, len(qualifiers))
		ids := make([]string, hi-lo)
		copy(ids, qualifiers[lo:hi])
		out[i] = models.Group{Name: groups.Name(i), TeamIDs: ids}
	}
	return out
}

// Advancement is the computed outcome of advancing one phase, before it is stored.
type Advancement struct {
	From             int            `json:"from"`
	To               int            `json:"to"`
	Qualifiers       []string       `json:"qualifiers"`
	Groups           []models.Group `json:"groups,omitempty"`
	EliminationTeams []string       `json:"elimination_teams,omitempty"`
}

// Plan computes the qualifiers of phaseIndex and the next phase's team set.
// groupRankings holds one ranked table per group of the phase, in group order.
// Nothing is stored; a nil error is exactly the "can advance" condition.
func Plan(schema *Schema, phaseIndex int, groupRankings [][]models.Standing) (*Advancement, error) {
	current, err := schema.Phase(phaseIndex)
	if err != nil {
		return nil, err
	}
	nextIndex, ok := schema.Next(phaseIndex)
	if !ok {
		return nil, fmt.Errorf("%w: %s is the final phase", ErrNoNextPhase, current.Name)
	}
	if current.Advancement == nil {
		return nil, fmt.Errorf("%w: %s", ErrAdvancementNotConfigured, current.Name)
	}
	if !current.IsGroup() {
		return nil, fmt.Errorf("%w: %s", ErrUnsupportedPhaseKind, current.Name)
	}

	qualifiers, err := SelectQualifiers(groupRankings, *current.Advancement)
	if err != nil {
		return nil, err
	}

	next, _ := schema.Phase(nextIndex)
	adv := &Advancement{From: phaseIndex, To: nextIndex, Qualifiers: qualifiers}
	if next.IsGroup() {
		adv.Groups = Distribute(qualifiers, next.NumGroups)
	} else {
		adv.EliminationTeams = append([]string(nil), qualifiers...)
	}
	return adv, nil
}

// Check reports whether phaseIndex can advance with the given rankings.
func Check(schema *Schema, phaseIndex int, groupRankings [][]models.Standing) error {
	_, err := Plan(schema, phaseIndex, groupRankings)
	return err
}

// MarkProjected tags one ranked group of a phase that has not advanced yet:
// the rows Qualifiable would select are qualified, other rows that have
// played are eliminated, and rows that have not played are still pending.
func MarkProjected(ranked []models.Standing, quota int) {
	selected := make(map[string]bool, quota)
	for _, row := range Qualifiable(ranked, quota) {
		selected[row.TeamID] = true
	}
	for i := range ranked {
		switch {
		case selected[ranked[i].TeamID]:
			ranked[i].Qualification = models.QualificationQualified
		case ranked[i].Stats.MatchesPlayed > 0:
			ranked[i].Qualification = models.QualificationEliminated
		default:
			ranked[i].Qualification = models.QualificationPending
		}
	}
}

// MarkFinal tags the rows of an advanced phase against the next phase's team set.
func MarkFinal(ranked []models.Standing, advanced map[string]bool) {
	for i := range ranked {
		if advanced[ranked[i].TeamID] {
			ranked[i].Qualification = models.QualificationQualified
		} else {
			ranked[i].Qualification = models.QualificationEliminated
		}
	}
}
