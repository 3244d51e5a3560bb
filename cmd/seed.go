package main

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/Dosada05/championship-manager/config"
	"github.com/Dosada05/championship-manager/services"
)

// applySeed creates the seeded tournament through the regular commands.
// It does nothing when the tournament already has stored state.
func applySeed(ctx context.Context, svc services.TournamentService, seed *config.Seed, logger *slog.Logger) error {
	overview, err := svc.GetTournament(ctx, seed.TournamentID)
	if err != nil {
		return err
	}
	if overview.Version > 0 {
		logger.InfoContext(ctx, "seed skipped, tournament already exists", slog.String("tournament_id", seed.TournamentID))
		return nil
	}

	_, err = svc.ConfigureTournament(ctx, seed.TournamentID, services.ConfigureTournamentInput{
		Name:            seed.Name,
		Structure:       seed.Structure,
		RoundTrip:       seed.RoundTrip,
		Kind:            seed.Kind,
		NumGroups:       seed.NumGroups,
		EliminationType: seed.EliminationType,
		Phases:          seed.Phases,
	})
	if err != nil {
		return fmt.Errorf("seed: failed to configure tournament: %w", err)
	}

	ids := make(map[string]string, len(seed.Teams))
	for _, name := range seed.Teams {
		team, err := svc.AddTeam(ctx, seed.TournamentID, services.AddTeamInput{Name: name})
		if err != nil {
			return fmt.Errorf("seed: failed to add team %q: %w", name, err)
		}
		ids[name] = team.ID
	}

	if len(seed.Groups) > 0 {
		if _, err := svc.InitializeGroups(ctx, seed.TournamentID, len(seed.Groups)); err != nil {
			return fmt.Errorf("seed: failed to initialize groups: %w", err)
		}
		for g, names := range seed.Groups {
			for _, name := range names {
				id, ok := ids[name]
				if !ok {
					return fmt.Errorf("seed: group %d lists unknown team %q", g+1, name)
				}
				if _, err := svc.AssignTeam(ctx, seed.TournamentID, id, g); err != nil {
					return fmt.Errorf("seed: failed to assign %q: %w", name, err)
				}
			}
		}
	}

	logger.InfoContext(ctx, "seed applied",
		slog.String("tournament_id", seed.TournamentID),
		slog.Int("teams", len(seed.Teams)),
		slog.Int("groups", len(seed.Groups)))
	return nil
}
