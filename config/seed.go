package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/Dosada05/championship-manager/models"
	yaml "gopkg.in/yaml.v2"
)

// Seed describes a tournament created on startup when it does not exist yet.
type Seed struct {
	TournamentID    string                     `json:"tournament_id" yaml:"tournament_id"`
	Name            string                     `json:"name" yaml:"name"`
	Structure       models.TournamentStructure `json:"structure" yaml:"structure"`
	RoundTrip       bool                       `json:"round_trip" yaml:"round_trip"`
	Kind            models.PhaseKind           `json:"kind" yaml:"kind"`
	NumGroups       int                        `json:"num_groups" yaml:"num_groups"`
	EliminationType models.EliminationType     `json:"elimination_type" yaml:"elimination_type"`
	Phases          []models.Phase             `json:"phases" yaml:"phases"`
	Teams           []string                   `json:"teams" yaml:"teams"`
	// Groups lists team names per group of the first phase, in group order.
	Groups [][]string `json:"groups" yaml:"groups"`
}

// LoadSeed reads a seed from a .json, .yaml or .yml file.
func LoadSeed(path string) (*Seed, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("can't read seed file %s: %w", path, err)
	}

	var s Seed
	switch ext := filepath.Ext(path); ext {
	case ".json":
		if err := json.Unmarshal(raw, &s); err != nil {
			return nil, fmt.Errorf("bad JSON in seed file %s: %w", path, err)
		}
	case ".yaml", ".yml":
		if err := yaml.Unmarshal(raw, &s); err != nil {
			return nil, fmt.Errorf("bad YAML in seed file %s: %w", path, err)
		}
	default:
		return nil, fmt.Errorf("unsupported seed file format: %s", ext)
	}

	if s.TournamentID == "" {
		return nil, fmt.Errorf("seed error: 'tournament_id' cannot be empty")
	}
	if len(s.Groups) > 0 && len(s.Phases) > 0 && !s.Phases[0].IsGroup() {
		return nil, fmt.Errorf("seed error: 'groups' given but the first phase is not a group phase")
	}
	return &s, nil
}
