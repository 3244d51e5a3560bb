// Package phases holds the tournament schema and decides which teams move from
// one phase to the next.
package phases

import (
	"errors"
	"fmt"
	"sort"

	"github.com/Dosada05/championship-manager/groups"
	"github.com/Dosada05/championship-manager/models"
	"github.com/dominikbraun/graph"
)

var (
	ErrInvalidPhaseSchema = errors.New("invalid phase schema")
	ErrPhaseOutOfRange    = errors.New("phase index out of range")
)

// Normalize fills numbering, default names and default elimination type.
// The final phase never carries an advancement count.
func Normalize(phases []models.Phase) []models.Phase {
	out := make([]models.Phase, len(phases))
	for i, p := range phases {
		p.Number = i + 1
		if p.Name == "" {
			p.Name = fmt.Sprintf("Phase %d", i+1)
		}
		if p.Kind == models.PhaseKindElimination {
			p.NumGroups = 0
			if p.EliminationType == "" {
				p.EliminationType = models.EliminationSingle
			}
		} else {
			p.EliminationType = ""
		}
		if i == len(phases)-1 {
			p.Advancement = nil
		}
		out[i] = p
	}
	return out
}

// Validate checks a normalized schema.
func Validate(phases []models.Phase) error {
	if len(phases) == 0 {
		return fmt.Errorf("%w: at least one phase is required", ErrInvalidPhaseSchema)
	}
	for i, p := range phases {
		switch p.Kind {
		case models.PhaseKindGroup:
			if p.NumGroups < 1 || p.NumGroups > groups.MaxGroups {
				return fmt.Errorf("%w: phase %d must have between 1 and %d groups, got %d", ErrInvalidPhaseSchema, i+1, groups.MaxGroups, p.NumGroups)
			}
		case models.PhaseKindElimination:
			if p.EliminationType != models.EliminationSingle && p.EliminationType != models.EliminationDouble {
				return fmt.Errorf("%w: phase %d has unknown elimination type %q", ErrInvalidPhaseSchema, i+1, p.EliminationType)
			}
		default:
			return fmt.Errorf("%w: phase %d has unknown kind %q", ErrInvalidPhaseSchema, i+1, p.Kind)
		}
		if p.Advancement != nil && *p.Advancement < 1 {
			return fmt.Errorf("%w: phase %d advancement must be positive, got %d", ErrInvalidPhaseSchema, i+1, *p.Advancement)
		}
	}
	return nil
}

// Schema is the phase sequence as a directed graph. Vertices are phase indexes,
// an edge i -> j means the teams of phase j are the qualifiers of phase i.
type Schema struct {
	phases    []models.Phase
	g         graph.Graph[int, int]
	adjacency map[int]map[int]graph.Edge[int]
}

// NewSchema validates the phases and builds the progression graph.
func NewSchema(phases []models.Phase) (*Schema, error) {
	if err := Validate(phases); err != nil {
		return nil, err
	}

	g := graph.New(graph.IntHash, graph.Directed(), graph.PreventCycles())
	for i := range phases {
		if err := g.AddVertex(i); err != nil {
			return nil, fmt.Errorf("failed to add phase %d to schema: %w", i, err)
		}
	}
	for i := 0; i < len(phases)-1; i++ {
		if err := g.AddEdge(i, i+1); err != nil {
			return nil, fmt.Errorf("failed to link phase %d to phase %d: %w", i, i+1, err)
		}
	}

	adjacency, err := g.AdjacencyMap()
	if err != nil {
		return nil, fmt.Errorf("failed to read schema adjacency: %w", err)
	}

	return &Schema{phases: phases, g: g, adjacency: adjacency}, nil
}

func (s *Schema) Len() int {
	return len(s.phases)
}

func (s *Schema) Phase(index int) (models.Phase, error) {
	if index < 0 || index >= len(s.phases) {
		return models.Phase{}, fmt.Errorf("%w: %d (phases configured: %d)", ErrPhaseOutOfRange, index, len(s.phases))
	}
	return s.phases[index], nil
}

// Next returns the phase fed by the qualifiers of index.
func (s *Schema) Next(index int) (int, bool) {
	for target := range s.adjacency[index] {
		return target, true
	}
	return 0, false
}

// Downstream lists every phase whose team set depends, directly or not, on index.
func (s *Schema) Downstream(index int) []int {
	if _, ok := s.adjacency[index]; !ok {
		return nil
	}
	var out []int
	_ = graph.DFS(s.g, index, func(v int) bool {
		if v != index {
			out = append(out, v)
		}
		return false
	})
	sort.Ints(out)
	return out
}
