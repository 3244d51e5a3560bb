package repositories

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/Dosada05/championship-manager/models"
	"golang.org/x/sync/errgroup"
)

// StateRepository loads and saves the three aggregates of a tournament wholesale.
type StateRepository interface {
	// Load returns the stored state. A tournament with no stored keys loads as
	// an empty state with the given ID.
	Load(ctx context.Context, tournamentID string) (*models.TournamentState, error)
	Save(ctx context.Context, state *models.TournamentState) error
	Exists(ctx context.Context, tournamentID string) (bool, error)
	List(ctx context.Context) ([]string, error)
}

type kvStateRepository struct {
	store KeyValueStore
}

func NewStateRepository(store KeyValueStore) StateRepository {
	return &kvStateRepository{store: store}
}

type storedConfig struct {
	models.TournamentConfig
	Version int64 `json:"version"`
}

func (r *kvStateRepository) Load(ctx context.Context, tournamentID string) (*models.TournamentState, error) {
	state := &models.TournamentState{
		ID:      tournamentID,
		Teams:   []models.Team{},
		Matches: []models.Match{},
	}
	var cfg storedConfig

	g, gCtx := errgroup.WithContext(ctx)
	g.Go(func() error {
		return r.loadAggregate(gCtx, tournamentID, AggregateTeams, &state.Teams)
	})
	g.Go(func() error {
		return r.loadAggregate(gCtx, tournamentID, AggregateMatches, &state.Matches)
	})
	g.Go(func() error {
		return r.loadAggregate(gCtx, tournamentID, AggregateConfig, &cfg)
	})
	if err := g.Wait(); err != nil {
		return nil, err
	}

	state.Config = cfg.TournamentConfig
	state.Version = cfg.Version
	if state.Teams == nil {
		state.Teams = []models.Team{}
	}
	if state.Matches == nil {
		state.Matches = []models.Match{}
	}
	return state, nil
}

func (r *kvStateRepository) loadAggregate(ctx context.Context, tournamentID, aggregate string, dst interface{}) error {
	raw, err := r.store.Get(ctx, stateKey(tournamentID, aggregate))
	if err != nil {
		if errors.Is(err, ErrKeyNotFound) {
			return nil
		}
		return fmt.Errorf("failed to load %s of tournament %s: %w", aggregate, tournamentID, err)
	}
	if err := json.Unmarshal(raw, dst); err != nil {
		return fmt.Errorf("failed to decode %s of tournament %s: %w", aggregate, tournamentID, err)
	}
	return nil
}

func (r *kvStateRepository) Save(ctx context.Context, state *models.TournamentState) error {
	teams, err := json.Marshal(state.Teams)
	if err != nil {
		return fmt.Errorf("failed to encode teams: %w", err)
	}
	matches, err := json.Marshal(state.Matches)
	if err != nil {
		return fmt.Errorf("failed to encode matches: %w", err)
	}
	cfg, err := json.Marshal(storedConfig{TournamentConfig: state.Config, Version: state.Version})
	if err != nil {
		return fmt.Errorf("failed to encode config: %w", err)
	}

	values := map[string][]byte{
		stateKey(state.ID, AggregateTeams):   teams,
		stateKey(state.ID, AggregateMatches): matches,
		stateKey(state.ID, AggregateConfig):  cfg,
	}

	if batch, ok := r.store.(BatchPutter); ok {
		if err := batch.PutMany(ctx, values); err != nil {
			return fmt.Errorf("failed to save tournament %s: %w", state.ID, err)
		}
		return nil
	}

	g, gCtx := errgroup.WithContext(ctx)
	for key, value := range values {
		g.Go(func() error {
			if err := r.store.Put(gCtx, key, value); err != nil {
				return fmt.Errorf("failed to save %s: %w", key, err)
			}
			return nil
		})
	}
	return g.Wait()
}

func (r *kvStateRepository) Exists(ctx context.Context, tournamentID string) (bool, error) {
	_, err := r.store.Get(ctx, stateKey(tournamentID, AggregateConfig))
	if err != nil {
		if errors.Is(err, ErrKeyNotFound) {
			return false, nil
		}
		return false, err
	}
	return true, nil
}

func (r *kvStateRepository) List(ctx context.Context) ([]string, error) {
	ids, err := r.store.ListTournaments(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list tournaments: %w", err)
	}
	return ids, nil
}
