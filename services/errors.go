package services

import (
	"errors"

	"github.com/Dosada05/championship-manager/groups"
	"github.com/Dosada05/championship-manager/phases"
)

var (
	// Validation and business-rule errors.
	ErrValidationFailed        = errors.New("validation failed")
	ErrTeamNameRequired        = errors.New("team name is required")
	ErrMatchDateRequired       = errors.New("match date and time are required")
	ErrInvalidMatchDate        = errors.New("match date or time has an invalid format")
	ErrInvalidScore            = errors.New("scores must be non-negative integers")
	ErrInvalidStructure        = errors.New("tournament structure must be simple or advanced")
	ErrTournamentNotConfigured = errors.New("tournament has no phase schema; configure it first")
	ErrPhaseLocked             = errors.New("phase cannot be changed in its current state")
	ErrSchemaLocked            = errors.New("phase schema cannot be changed after a later phase has started")
	ErrNotGroupPhase           = errors.New("active phase is not a group phase")

	// Conflicts.
	ErrTeamNameConflict = errors.New("team name is already in use")

	// Not found.
	ErrTeamNotFound  = errors.New("team not found")
	ErrMatchNotFound = errors.New("match not found")

	// Stored state references something that does not exist. Never a user error.
	ErrInconsistentState = errors.New("tournament state is inconsistent")
)

// Errors raised by the engine packages, re-exported so callers only need this package.
var (
	ErrSelfMatch                = groups.ErrSelfMatch
	ErrTeamUnallocated          = groups.ErrTeamUnallocated
	ErrDifferentGroups          = groups.ErrDifferentGroups
	ErrGroupIndexOutOfRange     = groups.ErrGroupIndexOutOfRange
	ErrInvalidGroupCount        = groups.ErrInvalidGroupCount
	ErrInsufficientQualifiers   = phases.ErrInsufficientQualifiers
	ErrAdvancementNotConfigured = phases.ErrAdvancementNotConfigured
	ErrNoNextPhase              = phases.ErrNoNextPhase
	ErrInvalidPhaseSchema       = phases.ErrInvalidPhaseSchema
	ErrUnsupportedPhaseKind     = phases.ErrUnsupportedPhaseKind
	ErrPhaseNotFound            = phases.ErrPhaseOutOfRange
)
