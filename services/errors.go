package services

import "errors"

// Shared errors used across services and the HTTP mapping layer.
var (
	// Not found
	ErrNotFound           = errors.New("requested resource not found")
	ErrUserNotFound       = errors.New("user not found")
	ErrTeamNotFound       = errors.New("team not found")
	ErrGameNotFound       = errors.New("game not found")
	ErrTournamentNotFound = errors.New("tournament not found")
	ErrMatchNotFound      = errors.New("match not found")

	// Validation and business rules
	ErrValidationFailed           = errors.New("validation failed")
	ErrPasswordTooShort           = errors.New("password is too short")
	ErrTeamNameRequired           = errors.New("team name is required")
	ErrTournamentNameRequired     = errors.New("tournament name is required")
	ErrTournamentInvalidDateRange = errors.New("tournament end date must not be before start date")
	ErrTournamentInvalidPrizePool = errors.New("tournament prize pool must not be negative")
	ErrMatchSameTeam              = errors.New("a team cannot play against itself")
	ErrMatchNegativeScore         = errors.New("match scores must be non-negative")
	ErrMatchTimeRequired          = errors.New("match time is required")
	ErrTeamNotRegistered          = errors.New("team is not registered for this tournament")

	// Conflicts
	ErrUserEmailConflict    = errors.New("email address is already in use")
	ErrTeamNameConflict     = errors.New("team name is already in use")
	ErrGameTitleConflict    = errors.New("game title already exists")
	ErrPlayerAlreadyOnTeam  = errors.New("user is already on this team")
	ErrRegistrationConflict = errors.New("team is already registered for this tournament")

	// Authentication
	ErrAuthInvalidCredentials = errors.New("invalid email or password")
)
