package services

import (
	"context"
	"errors"
	"time"
)

type EventType string

const (
	EventTeamAdded            EventType = "TEAM_ADDED"
	EventTeamRemoved          EventType = "TEAM_REMOVED"
	EventMatchScheduled       EventType = "MATCH_SCHEDULED"
	EventResultRecorded       EventType = "RESULT_RECORDED"
	EventMatchDeleted         EventType = "MATCH_DELETED"
	EventTournamentConfigured EventType = "TOURNAMENT_CONFIGURED"
	EventGroupsUpdated        EventType = "GROUPS_UPDATED"
	EventPhaseAdvanced        EventType = "PHASE_ADVANCED"
)

// Event is emitted after every successful command, once the new state is saved.
type Event struct {
	Type         EventType   `json:"type"`
	TournamentID string      `json:"tournament_id"`
	Version      int64       `json:"version"`
	Payload      interface{} `json:"payload,omitempty"`
	OccurredAt   time.Time   `json:"occurred_at"`
}

// Notifier delivers events to live clients or a message broker.
type Notifier interface {
	Notify(ctx context.Context, event Event) error
}

// MultiNotifier fans an event out to every notifier and joins their errors.
type MultiNotifier []Notifier

func (m MultiNotifier) Notify(ctx context.Context, event Event) error {
	var errs []error
	for _, n := range m {
		if n == nil {
			continue
		}
		if err := n.Notify(ctx, event); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}

type nopNotifier struct{}

func (nopNotifier) Notify(context.Context, Event) error { return nil }
