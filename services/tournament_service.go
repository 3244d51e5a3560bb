package services

import (
	"context"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/Dosada05/championship-manager/models"
	"github.com/Dosada05/championship-manager/phases"
	"github.com/Dosada05/championship-manager/repositories"
)

type AddTeamInput struct {
	Name string `json:"name"`
}

// ScheduleMatchInput carries the date as YYYY-MM-DD and the time as HH:MM.
type ScheduleMatchInput struct {
	Team1ID  string  `json:"team1_id"`
	Team2ID  string  `json:"team2_id"`
	Date     string  `json:"date"`
	Time     string  `json:"time"`
	Location *string `json:"location,omitempty"`
}

type RecordResultInput struct {
	Score1 *int `json:"score1"`
	Score2 *int `json:"score2"`
}

// ConfigureTournamentInput describes either a simple tournament (one phase built
// from Kind, NumGroups and EliminationType) or an advanced one (Phases).
type ConfigureTournamentInput struct {
	Name            string                     `json:"name"`
	Structure       models.TournamentStructure `json:"structure"`
	RoundTrip       bool                       `json:"round_trip"`
	Kind            models.PhaseKind           `json:"kind,omitempty"`
	NumGroups       int                        `json:"num_groups,omitempty"`
	EliminationType models.EliminationType     `json:"elimination_type,omitempty"`
	Phases          []models.Phase             `json:"phases,omitempty"`
}

type MatchFilter struct {
	PhaseIndex *int
	Status     *models.MatchStatus
	TeamID     string
}

// TeamGroup answers "which group is this team in" for the active phase.
type TeamGroup struct {
	TeamID     string `json:"team_id"`
	PhaseIndex int    `json:"phase_index"`
	Allocated  bool   `json:"allocated"`
	GroupIndex int    `json:"group_index"`
	GroupName  string `json:"group_name,omitempty"`
}

type GroupAllocation struct {
	PhaseIndex  int            `json:"phase_index"`
	Groups      []models.Group `json:"groups"`
	Unallocated []models.Team  `json:"unallocated"`
}

// MatchupPreview is the advisory verdict for a candidate pairing.
type MatchupPreview struct {
	Team1ID         string `json:"team1_id"`
	Team2ID         string `json:"team2_id"`
	Legal           bool   `json:"legal"`
	Reason          string `json:"reason,omitempty"`
	GroupStructured bool   `json:"group_structured"`
	GroupLabel      string `json:"group_label,omitempty"`
}

type AdvanceCheck struct {
	PhaseIndex int      `json:"phase_index"`
	Ready      bool     `json:"ready"`
	Reason     string   `json:"reason,omitempty"`
	Required   int      `json:"required,omitempty"`
	Available  int      `json:"available,omitempty"`
	Qualifiers []string `json:"qualifiers,omitempty"`
}

type TournamentService interface {
	AddTeam(ctx context.Context, tournamentID string, input AddTeamInput) (*models.Team, error)
	RemoveTeam(ctx context.Context, tournamentID, teamID string) error
	ScheduleMatch(ctx context.Context, tournamentID string, input ScheduleMatchInput) ([]models.Match, error)
	RecordResult(ctx context.Context, tournamentID, matchID string, input RecordResultInput) (*models.Match, error)
	DeleteMatch(ctx context.Context, tournamentID, matchID string) error
	ConfigureTournament(ctx context.Context, tournamentID string, input ConfigureTournamentInput) (*models.TournamentConfig, error)
	InitializeGroups(ctx context.Context, tournamentID string, numGroups int) ([]models.Group, error)
	AssignTeam(ctx context.Context, tournamentID, teamID string, groupIndex int) ([]models.Group, error)
	UnassignTeam(ctx context.Context, tournamentID, teamID string, groupIndex int) ([]models.Group, error)
	AdvancePhase(ctx context.Context, tournamentID string, phaseIndex int) (*phases.Advancement, error)

	ListTournaments(ctx context.Context) ([]string, error)
	GetTournament(ctx context.Context, tournamentID string) (*models.TournamentOverview, error)
	GetConfig(ctx context.Context, tournamentID string) (*models.TournamentConfig, error)
	ListTeams(ctx context.Context, tournamentID string) ([]models.Team, error)
	ListMatches(ctx context.Context, tournamentID string, filter MatchFilter) ([]models.Match, error)
	GlobalStandings(ctx context.Context, tournamentID string) ([]models.Standing, error)
	PhaseStandings(ctx context.Context, tournamentID string, phaseIndex int) (*models.PhaseStandings, error)
	GroupOfTeam(ctx context.Context, tournamentID, teamID string) (*TeamGroup, error)
	GroupAllocation(ctx context.Context, tournamentID string) (*GroupAllocation, error)
	PreviewMatchup(ctx context.Context, tournamentID, team1ID, team2ID string) (*MatchupPreview, error)
	EligibleOpponents(ctx context.Context, tournamentID, teamID string) ([]models.Team, error)
	CanAdvance(ctx context.Context, tournamentID string, phaseIndex int) (*AdvanceCheck, error)
}

type tournamentService struct {
	stateRepo repositories.StateRepository
	notifier  Notifier
	logger    *slog.Logger
	now       func() time.Time

	mu    sync.Mutex
	locks map[string]*sync.Mutex
}

func NewTournamentService(stateRepo repositories.StateRepository, notifier Notifier, logger *slog.Logger) TournamentService {
	if notifier == nil {
		notifier = nopNotifier{}
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &tournamentService{
		stateRepo: stateRepo,
		notifier:  notifier,
		logger:    logger,
		now:       func() time.Time { return time.Now().UTC() },
		locks:     make(map[string]*sync.Mutex),
	}
}

// lock serializes every command and query of one tournament.
func (s *tournamentService) lock(tournamentID string) func() {
	s.mu.Lock()
	l, ok := s.locks[tournamentID]
	if !ok {
		l = &sync.Mutex{}
		s.locks[tournamentID] = l
	}
	s.mu.Unlock()

	l.Lock()
	return l.Unlock
}

func (s *tournamentService) read(ctx context.Context, tournamentID string) (*models.TournamentState, error) {
	unlock := s.lock(tournamentID)
	defer unlock()
	state, err := s.stateRepo.Load(ctx, tournamentID)
	if err != nil {
		return nil, fmt.Errorf("failed to load tournament %s: %w", tournamentID, err)
	}
	return state, nil
}

// mutate loads the state, runs fn and saves the result. fn must validate every
// precondition before it touches the state; on error nothing is saved.
func mutate[T any](ctx context.Context, s *tournamentService, tournamentID string, eventType EventType, fn func(state *models.TournamentState) (T, error)) (T, error) {
	var zero T

	unlock := s.lock(tournamentID)
	defer unlock()

	state, err := s.stateRepo.Load(ctx, tournamentID)
	if err != nil {
		return zero, fmt.Errorf("failed to load tournament %s: %w", tournamentID, err)
	}

	result, err := fn(state)
	if err != nil {
		return zero, err
	}

	state.Version++
	if err := s.stateRepo.Save(ctx, state); err != nil {
		s.logger.ErrorContext(ctx, "failed to save tournament state",
			slog.String("tournament_id", tournamentID),
			slog.String("event", string(eventType)),
			slog.Any("error", err))
		return zero, fmt.Errorf("failed to save tournament %s: %w", tournamentID, err)
	}

	event := Event{
		Type:         eventType,
		TournamentID: tournamentID,
		Version:      state.Version,
		Payload:      result,
		OccurredAt:   s.now(),
	}
	if err := s.notifier.Notify(ctx, event); err != nil {
		s.logger.WarnContext(ctx, "failed to deliver tournament event",
			slog.String("tournament_id", tournamentID),
			slog.String("event", string(eventType)),
			slog.Any("error", err))
	}
	return result, nil
}

// inconsistent logs a consistency fault loudly and returns it wrapped.
func (s *tournamentService) inconsistent(ctx context.Context, tournamentID, format string, args ...interface{}) error {
	err := fmt.Errorf("%w: "+format, append([]interface{}{ErrInconsistentState}, args...)...)
	s.logger.ErrorContext(ctx, "tournament state consistency fault",
		slog.String("tournament_id", tournamentID),
		slog.Any("error", err))
	return err
}

func (s *tournamentService) ListTournaments(ctx context.Context) ([]string, error) {
	return s.stateRepo.List(ctx)
}

func (s *tournamentService) GetTournament(ctx context.Context, tournamentID string) (*models.TournamentOverview, error) {
	state, err := s.read(ctx, tournamentID)
	if err != nil {
		return nil, err
	}

	overview := &models.TournamentOverview{
		ID:          state.ID,
		Name:        state.Config.Name,
		Structure:   state.Config.Structure,
		RoundTrip:   state.Config.RoundTrip,
		ActivePhase: state.Config.ActivePhase,
		Phases:      make([]models.PhaseSummary, 0, len(state.Config.Phases)),
		TeamsTotal:  len(state.Teams),
		Matches:     len(state.Matches),
		Version:     state.Version,
	}
	for i := range state.Matches {
		if state.Matches[i].IsCompleted() {
			overview.Completed++
		}
	}
	if state.Config.IsConfigured() {
		for i, p := range state.Config.Phases {
			setup := state.Config.Setups[i]
			overview.Phases = append(overview.Phases, models.PhaseSummary{
				Index:      i,
				Phase:      p,
				Status:     setup.Status,
				TeamsCount: len(phaseTeamIDs(p, setup)),
				Stale:      setup.Stale,
			})
		}
	}
	return overview, nil
}

func (s *tournamentService) GetConfig(ctx context.Context, tournamentID string) (*models.TournamentConfig, error) {
	state, err := s.read(ctx, tournamentID)
	if err != nil {
		return nil, err
	}
	return &state.Config, nil
}
