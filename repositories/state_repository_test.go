package repositories

import (
	"context"
	"errors"
	"path/filepath"
	"testing"
	"time"

	"github.com/Dosada05/championship-manager/db"
	"github.com/Dosada05/championship-manager/models"
	"github.com/Dosada05/championship-manager/standings"
)

func sampleState(id string) *models.TournamentState {
	adv := 2
	played := time.Date(2024, 6, 1, 18, 0, 0, 0, time.UTC)
	teams := []models.Team{{ID: "a", Name: "Alpha"}, {ID: "b", Name: "Bravo"}, {ID: "c", Name: "Charlie"}}
	models.ApplyResult(&teams[0], &teams[1], 2, 1)
	return &models.TournamentState{
		ID:    id,
		Teams: teams,
		Matches: []models.Match{{
			ID: "m1", Team1ID: "a", Team2ID: "b", ScheduledAt: played,
			Status: models.MatchStatusCompleted, Result: &models.MatchResult{Score1: 2, Score2: 1},
		}},
		Config: models.TournamentConfig{
			Name:      "Spring Cup",
			Structure: models.StructureAdvanced,
			Phases: []models.Phase{
				{Number: 1, Name: "Groups", Kind: models.PhaseKindGroup, NumGroups: 1, Advancement: &adv},
				{Number: 2, Name: "Final", Kind: models.PhaseKindElimination, EliminationType: models.EliminationSingle},
			},
			Setups: []models.PhaseSetup{
				{Status: models.PhaseStatusInProgress, Groups: []models.Group{{Name: "Group A", TeamIDs: []string{"a", "b", "c"}}}},
				{Status: models.PhaseStatusPending},
			},
		},
		Version: 7,
	}
}

func assertRoundTrip(t *testing.T, repo StateRepository) {
	t.Helper()
	ctx := context.Background()
	want := sampleState("cup")

	if err := repo.Save(ctx, want); err != nil {
		t.Fatalf("Save failed: %v", err)
	}
	got, err := repo.Load(ctx, "cup")
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}

	if got.Version != 7 || got.Config.Name != "Spring Cup" || len(got.Config.Phases) != 2 {
		t.Errorf("config did not survive the round trip: %+v", got.Config)
	}
	if got.Config.Phases[0].Advancement == nil || *got.Config.Phases[0].Advancement != 2 {
		t.Error("advancement lost")
	}
	if len(got.Matches) != 1 || !got.Matches[0].IsCompleted() {
		t.Errorf("matches did not survive the round trip: %+v", got.Matches)
	}

	before := standings.FromTeams(want.Teams)
	after := standings.FromTeams(got.Teams)
	for i := range before {
		if before[i].TeamID != after[i].TeamID || before[i].Stats != after[i].Stats {
			t.Fatalf("standings differ after reload: %+v vs %+v", before[i], after[i])
		}
	}

	exists, err := repo.Exists(ctx, "cup")
	if err != nil || !exists {
		t.Errorf("Exists(cup) = %v, %v", exists, err)
	}
	ids, err := repo.List(ctx)
	if err != nil || len(ids) != 1 || ids[0] != "cup" {
		t.Errorf("List() = %v, %v", ids, err)
	}
}

func TestStateRepositoryMemoryRoundTrip(t *testing.T) {
	assertRoundTrip(t, NewStateRepository(NewMemoryKeyValueStore()))
}

func TestStateRepositorySQLiteRoundTrip(t *testing.T) {
	conn, err := db.OpenSQLite(filepath.Join(t.TempDir(), "state.db"), 2*time.Second)
	if err != nil {
		t.Skipf("sqlite unavailable: %v", err)
	}
	defer conn.Close()

	store := NewSQLiteKeyValueStore(conn)
	if err := store.(SchemaEnsurer).EnsureSchema(context.Background()); err != nil {
		t.Fatal(err)
	}
	if _, ok := store.(BatchPutter); !ok {
		t.Fatal("sqlite store should save all aggregates in one transaction")
	}
	assertRoundTrip(t, NewStateRepository(store))
}

func TestLoadUnknownTournamentIsEmpty(t *testing.T) {
	repo := NewStateRepository(NewMemoryKeyValueStore())
	state, err := repo.Load(context.Background(), "nowhere")
	if err != nil {
		t.Fatal(err)
	}
	if state.ID != "nowhere" || len(state.Teams) != 0 || len(state.Matches) != 0 || state.Config.IsConfigured() {
		t.Errorf("expected an empty state, got %+v", state)
	}
	if state.Teams == nil || state.Matches == nil {
		t.Error("empty state should carry non-nil slices")
	}
	exists, err := repo.Exists(context.Background(), "nowhere")
	if err != nil || exists {
		t.Errorf("Exists(nowhere) = %v, %v", exists, err)
	}
}

type failingStore struct {
	KeyValueStore
}

func (failingStore) Get(context.Context, string) ([]byte, error) {
	return nil, errors.New("disk on fire")
}

func TestLoadPropagatesStoreErrors(t *testing.T) {
	repo := NewStateRepository(failingStore{NewMemoryKeyValueStore()})
	if _, err := repo.Load(context.Background(), "cup"); err == nil {
		t.Fatal("expected the store error to surface")
	}
}

func TestLoadRejectsCorruptAggregate(t *testing.T) {
	store := NewMemoryKeyValueStore()
	_ = store.Put(context.Background(), stateKey("cup", AggregateTeams), []byte("{not json"))
	if _, err := NewStateRepository(store).Load(context.Background(), "cup"); err == nil {
		t.Fatal("expected a decode error")
	}
}

func TestMemoryStore(t *testing.T) {
	ctx := context.Background()
	store := NewMemoryKeyValueStore()

	if _, err := store.Get(ctx, "x/teams"); !errors.Is(err, ErrKeyNotFound) {
		t.Errorf("expected ErrKeyNotFound, got %v", err)
	}
	value := []byte("[]")
	_ = store.Put(ctx, "x/teams", value)
	value[0] = '{'
	got, _ := store.Get(ctx, "x/teams")
	if string(got) != "[]" {
		t.Error("store must copy values on Put")
	}

	_ = store.Put(ctx, "x/config", []byte("{}"))
	_ = store.Put(ctx, "a/config", []byte("{}"))
	ids, _ := store.ListTournaments(ctx)
	if len(ids) != 2 || ids[0] != "a" || ids[1] != "x" {
		t.Errorf("unexpected tournament ids: %v", ids)
	}

	if err := store.Delete(ctx, "x/teams"); err != nil {
		t.Fatal(err)
	}
	if err := store.Delete(ctx, "x/teams"); !errors.Is(err, ErrKeyNotFound) {
		t.Errorf("expected ErrKeyNotFound on second delete, got %v", err)
	}
}
