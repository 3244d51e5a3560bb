package services

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"sync"
	"testing"
	"time"

	"github.com/Dosada05/championship-manager/models"
	"github.com/Dosada05/championship-manager/repositories"
)

type captureNotifier struct {
	mu     sync.Mutex
	events []Event
}

func (c *captureNotifier) Notify(ctx context.Context, event Event) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.events = append(c.events, event)
	return nil
}

func (c *captureNotifier) types() []EventType {
	c.mu.Lock()
	defer c.mu.Unlock()
	out := make([]EventType, len(c.events))
	for i, e := range c.events {
		out[i] = e.Type
	}
	return out
}

type failingNotifier struct{}

func (failingNotifier) Notify(context.Context, Event) error { return errors.New("broker down") }

func quietLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func newTestService(t *testing.T) (TournamentService, *captureNotifier) {
	t.Helper()
	notifier := &captureNotifier{}
	repo := repositories.NewStateRepository(repositories.NewMemoryKeyValueStore())
	return NewTournamentService(repo, notifier, quietLogger()), notifier
}

const cup = "cup"

func addTeams(t *testing.T, svc TournamentService, names ...string) []string {
	t.Helper()
	ids := make([]string, len(names))
	for i, name := range names {
		team, err := svc.AddTeam(context.Background(), cup, AddTeamInput{Name: name})
		if err != nil {
			t.Fatalf("AddTeam(%s): %v", name, err)
		}
		ids[i] = team.ID
	}
	return ids
}

func schedule(t *testing.T, svc TournamentService, team1, team2 string) []models.Match {
	t.Helper()
	matches, err := svc.ScheduleMatch(context.Background(), cup, ScheduleMatchInput{
		Team1ID: team1, Team2ID: team2, Date: "2024-06-01", Time: "18:00",
	})
	if err != nil {
		t.Fatalf("ScheduleMatch(%s, %s): %v", team1, team2, err)
	}
	return matches
}

func record(t *testing.T, svc TournamentService, matchID string, score1, score2 int) {
	t.Helper()
	if _, err := svc.RecordResult(context.Background(), cup, matchID, RecordResultInput{Score1: &score1, Score2: &score2}); err != nil {
		t.Fatalf("RecordResult(%s): %v", matchID, err)
	}
}

func team(t *testing.T, svc TournamentService, id string) models.Team {
	t.Helper()
	teams, err := svc.ListTeams(context.Background(), cup)
	if err != nil {
		t.Fatal(err)
	}
	for _, tm := range teams {
		if tm.ID == id {
			return tm
		}
	}
	t.Fatalf("team %s not found", id)
	return models.Team{}
}

func TestAddTeam(t *testing.T) {
	ctx := context.Background()
	svc, notifier := newTestService(t)

	created, err := svc.AddTeam(ctx, cup, AddTeamInput{Name: "  Lions "})
	if err != nil {
		t.Fatal(err)
	}
	if created.Name != "Lions" || created.ID == "" {
		t.Errorf("unexpected team: %+v", created)
	}
	if created.Stats != (models.TeamStats{}) {
		t.Errorf("new team should have zero stats: %+v", created.Stats)
	}

	if _, err := svc.AddTeam(ctx, cup, AddTeamInput{Name: "LIONS"}); !errors.Is(err, ErrTeamNameConflict) {
		t.Errorf("expected ErrTeamNameConflict, got %v", err)
	}
	if _, err := svc.AddTeam(ctx, cup, AddTeamInput{Name: "   "}); !errors.Is(err, ErrTeamNameRequired) {
		t.Errorf("expected ErrTeamNameRequired, got %v", err)
	}

	overview, err := svc.GetTournament(ctx, cup)
	if err != nil {
		t.Fatal(err)
	}
	if overview.TeamsTotal != 1 || overview.Version != 1 {
		t.Errorf("failed commands must not change state: %+v", overview)
	}
	if got := notifier.types(); len(got) != 1 || got[0] != EventTeamAdded {
		t.Errorf("unexpected events: %v", got)
	}
}

func TestConcurrentCommandsAreSerialized(t *testing.T) {
	ctx := context.Background()
	svc, _ := newTestService(t)

	var wg sync.WaitGroup
	for i := 0; i < 20; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			if _, err := svc.AddTeam(ctx, cup, AddTeamInput{Name: fmt.Sprintf("Team %d", i)}); err != nil {
				t.Error(err)
			}
		}(i)
	}
	wg.Wait()

	overview, err := svc.GetTournament(ctx, cup)
	if err != nil {
		t.Fatal(err)
	}
	if overview.TeamsTotal != 20 || overview.Version != 20 {
		t.Errorf("expected 20 teams at version 20, got %d at %d", overview.TeamsTotal, overview.Version)
	}
}

func TestScheduleMatchValidation(t *testing.T) {
	ctx := context.Background()
	svc, _ := newTestService(t)
	ids := addTeams(t, svc, "Lions", "Tigers")

	cases := []struct {
		name  string
		input ScheduleMatchInput
		want  error
	}{
		{"missing team", ScheduleMatchInput{Team1ID: ids[0], Date: "2024-06-01", Time: "18:00"}, ErrValidationFailed},
		{"self match", ScheduleMatchInput{Team1ID: ids[0], Team2ID: ids[0], Date: "2024-06-01", Time: "18:00"}, ErrSelfMatch},
		{"missing date", ScheduleMatchInput{Team1ID: ids[0], Team2ID: ids[1], Time: "18:00"}, ErrMatchDateRequired},
		{"missing time", ScheduleMatchInput{Team1ID: ids[0], Team2ID: ids[1], Date: "2024-06-01"}, ErrMatchDateRequired},
		{"bad date", ScheduleMatchInput{Team1ID: ids[0], Team2ID: ids[1], Date: "01/06/2024", Time: "18:00"}, ErrInvalidMatchDate},
		{"unknown team", ScheduleMatchInput{Team1ID: ids[0], Team2ID: "ghost", Date: "2024-06-01", Time: "18:00"}, ErrTeamNotFound},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if _, err := svc.ScheduleMatch(ctx, cup, tc.input); !errors.Is(err, tc.want) {
				t.Errorf("expected %v, got %v", tc.want, err)
			}
		})
	}

	location := "  Main Arena "
	matches, err := svc.ScheduleMatch(ctx, cup, ScheduleMatchInput{
		Team1ID: ids[0], Team2ID: ids[1], Date: "2024-06-01", Time: "18:30", Location: &location,
	})
	if err != nil {
		t.Fatalf("without a schema any distinct pair may meet: %v", err)
	}
	m := matches[0]
	if len(matches) != 1 || m.Status != models.MatchStatusScheduled || m.Leg != models.LegNone {
		t.Errorf("unexpected match: %+v", m)
	}
	if !m.ScheduledAt.Equal(time.Date(2024, 6, 1, 18, 30, 0, 0, time.UTC)) {
		t.Errorf("unexpected schedule %v", m.ScheduledAt)
	}
	if m.Location == nil || *m.Location != "Main Arena" {
		t.Errorf("location not trimmed: %v", m.Location)
	}
}

func TestScheduleRoundTrip(t *testing.T) {
	ctx := context.Background()
	svc, _ := newTestService(t)
	ids := addTeams(t, svc, "Lions", "Tigers")
	if _, err := svc.ConfigureTournament(ctx, cup, ConfigureTournamentInput{Structure: models.StructureSimple, RoundTrip: true, NumGroups: 1}); err != nil {
		t.Fatal(err)
	}

	matches := schedule(t, svc, ids[0], ids[1])
	if len(matches) != 2 {
		t.Fatalf("round trip should create two legs, got %d", len(matches))
	}
	first, second := matches[0], matches[1]
	if first.Leg != models.LegFirst || second.Leg != models.LegSecond {
		t.Errorf("unexpected legs %q %q", first.Leg, second.Leg)
	}
	if second.Team1ID != first.Team2ID || second.Team2ID != first.Team1ID {
		t.Error("second leg should swap home and away")
	}
	if second.ScheduledAt.Sub(first.ScheduledAt) != 7*24*time.Hour {
		t.Errorf("second leg should be a week later, got %v", second.ScheduledAt.Sub(first.ScheduledAt))
	}
}

func TestRecordResultOverwritesPreviousResult(t *testing.T) {
	ctx := context.Background()
	svc, _ := newTestService(t)
	ids := addTeams(t, svc, "Lions", "Tigers")
	m := schedule(t, svc, ids[0], ids[1])[0]

	record(t, svc, m.ID, 2, 1)
	lions := team(t, svc, ids[0])
	if lions.Stats.Wins != 1 || lions.Stats.Points != 3 {
		t.Fatalf("unexpected stats after win: %+v", lions.Stats)
	}

	record(t, svc, m.ID, 0, 0)
	lions = team(t, svc, ids[0])
	tigers := team(t, svc, ids[1])
	want := models.TeamStats{MatchesPlayed: 1, Draws: 1, Points: 1}
	if lions.Stats != want || tigers.Stats != want {
		t.Errorf("overwrite must revert the old result: %+v %+v", lions.Stats, tigers.Stats)
	}

	completed := models.MatchStatusCompleted
	list, err := svc.ListMatches(ctx, cup, MatchFilter{Status: &completed, TeamID: ids[1]})
	if err != nil || len(list) != 1 || list[0].Result.Score1 != 0 {
		t.Errorf("ListMatches() = %+v, %v", list, err)
	}
}

func TestRecordResultValidation(t *testing.T) {
	ctx := context.Background()
	svc, _ := newTestService(t)
	ids := addTeams(t, svc, "Lions", "Tigers")
	m := schedule(t, svc, ids[0], ids[1])[0]

	one, negative := 1, -1
	cases := []RecordResultInput{
		{Score1: &one},
		{Score2: &one},
		{Score1: &negative, Score2: &one},
	}
	for _, input := range cases {
		if _, err := svc.RecordResult(ctx, cup, m.ID, input); !errors.Is(err, ErrInvalidScore) {
			t.Errorf("expected ErrInvalidScore, got %v", err)
		}
	}
	if _, err := svc.RecordResult(ctx, cup, "missing", RecordResultInput{Score1: &one, Score2: &one}); !errors.Is(err, ErrMatchNotFound) {
		t.Errorf("expected ErrMatchNotFound, got %v", err)
	}
	if team(t, svc, ids[0]).Stats.MatchesPlayed != 0 {
		t.Error("rejected results must not touch stats")
	}
}

func TestDeleteMatchRevertsResult(t *testing.T) {
	ctx := context.Background()
	svc, _ := newTestService(t)
	ids := addTeams(t, svc, "Lions", "Tigers")
	m := schedule(t, svc, ids[0], ids[1])[0]
	record(t, svc, m.ID, 3, 0)

	if err := svc.DeleteMatch(ctx, cup, m.ID); err != nil {
		t.Fatal(err)
	}
	if team(t, svc, ids[0]).Stats != (models.TeamStats{}) || team(t, svc, ids[1]).Stats != (models.TeamStats{}) {
		t.Error("deleting a completed match must revert its result")
	}
	if err := svc.DeleteMatch(ctx, cup, m.ID); !errors.Is(err, ErrMatchNotFound) {
		t.Errorf("expected ErrMatchNotFound, got %v", err)
	}
}

func TestRemoveTeamCascades(t *testing.T) {
	ctx := context.Background()
	svc, _ := newTestService(t)
	ids := addTeams(t, svc, "Lions", "Tigers", "Bears")
	if _, err := svc.ConfigureTournament(ctx, cup, ConfigureTournamentInput{NumGroups: 1}); err != nil {
		t.Fatal(err)
	}
	if _, err := svc.InitializeGroups(ctx, cup, 1); err != nil {
		t.Fatal(err)
	}
	for _, id := range ids {
		if _, err := svc.AssignTeam(ctx, cup, id, 0); err != nil {
			t.Fatal(err)
		}
	}
	m1 := schedule(t, svc, ids[0], ids[1])[0]
	record(t, svc, m1.ID, 2, 0)
	schedule(t, svc, ids[1], ids[2])

	if err := svc.RemoveTeam(ctx, cup, ids[0]); err != nil {
		t.Fatal(err)
	}

	if team(t, svc, ids[1]).Stats != (models.TeamStats{}) {
		t.Error("opponent stats should be reverted")
	}
	matches, _ := svc.ListMatches(ctx, cup, MatchFilter{})
	if len(matches) != 1 || matches[0].Involves(ids[0]) {
		t.Errorf("matches of the removed team should be gone: %+v", matches)
	}
	alloc, _ := svc.GroupAllocation(ctx, cup)
	if alloc.Groups[0].Contains(ids[0]) || len(alloc.Groups[0].TeamIDs) != 2 {
		t.Errorf("removed team still allocated: %+v", alloc.Groups)
	}
	if err := svc.RemoveTeam(ctx, cup, ids[0]); !errors.Is(err, ErrTeamNotFound) {
		t.Errorf("expected ErrTeamNotFound, got %v", err)
	}
}

func TestNotifierFailureDoesNotFailCommand(t *testing.T) {
	repo := repositories.NewStateRepository(repositories.NewMemoryKeyValueStore())
	svc := NewTournamentService(repo, MultiNotifier{failingNotifier{}}, quietLogger())
	if _, err := svc.AddTeam(context.Background(), cup, AddTeamInput{Name: "Lions"}); err != nil {
		t.Fatalf("delivery failures must only be logged, got %v", err)
	}
}

func TestMultiNotifierJoinsErrors(t *testing.T) {
	capture := &captureNotifier{}
	err := MultiNotifier{failingNotifier{}, nil, capture}.Notify(context.Background(), Event{Type: EventTeamAdded})
	if err == nil {
		t.Fatal("expected the failing notifier's error")
	}
	if len(capture.events) != 1 {
		t.Error("a failing notifier must not stop the others")
	}
}

func TestListTournaments(t *testing.T) {
	ctx := context.Background()
	svc, _ := newTestService(t)
	addTeams(t, svc, "Lions")
	if _, err := svc.AddTeam(ctx, "other", AddTeamInput{Name: "Lions"}); err != nil {
		t.Fatalf("team names are unique per tournament only: %v", err)
	}
	ids, err := svc.ListTournaments(ctx)
	if err != nil || len(ids) != 2 {
		t.Errorf("ListTournaments() = %v, %v", ids, err)
	}
}
