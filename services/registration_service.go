package services

import (
	"context"
	"errors"
	"fmt"

	"github.com/esportshub/arena/models"
	"github.com/esportshub/arena/repositories"
)

// RegistrationService enters teams into tournaments. Uniqueness of the
// (team, tournament) pair is not checked here: the insert itself races on the
// database unique constraint, so two concurrent registrations of the same pair
// resolve to exactly one success regardless of how many processes are running.
type RegistrationService interface {
	RegisterTeam(ctx context.Context, teamID, tournamentID int) (*models.Registration, error)
	ListByTournament(ctx context.Context, tournamentID int) ([]models.Registration, error)
}

type registrationService struct {
	registrationRepo repositories.RegistrationRepository
	teamRepo         repositories.TeamRepository
	tournamentRepo   repositories.TournamentRepository
}

func NewRegistrationService(
	registrationRepo repositories.RegistrationRepository,
	teamRepo repositories.TeamRepository,
	tournamentRepo repositories.TournamentRepository,
) RegistrationService {
	return &registrationService{
		registrationRepo: registrationRepo,
		teamRepo:         teamRepo,
		tournamentRepo:   tournamentRepo,
	}
}

func (s *registrationService) RegisterTeam(ctx context.Context, teamID, tournamentID int) (*models.Registration, error) {
	if _, err := s.teamRepo.GetByID(ctx, teamID); err != nil {
		if errors.Is(err, repositories.ErrTeamNotFound) {
			return nil, ErrTeamNotFound
		}
		return nil, fmt.Errorf("failed to check team: %w", err)
	}
	if _, err := s.tournamentRepo.GetByID(ctx, tournamentID); err != nil {
		if errors.Is(err, repositories.ErrTournamentNotFound) {
			return nil, ErrTournamentNotFound
		}
		return nil, fmt.Errorf("failed to check tournament: %w", err)
	}

	reg := &models.Registration{TeamID: teamID, TournamentID: tournamentID}
	if err := s.registrationRepo.Create(ctx, reg); err != nil {
		switch {
		case errors.Is(err, repositories.ErrRegistrationDuplicate):
			return nil, ErrRegistrationConflict
		// The existence checks above are advisory; the row may have been
		// deleted in between. The foreign keys are authoritative.
		case errors.Is(err, repositories.ErrRegistrationTeamInvalid):
			return nil, ErrTeamNotFound
		case errors.Is(err, repositories.ErrRegistrationTournamentInvalid):
			return nil, ErrTournamentNotFound
		}
		return nil, fmt.Errorf("failed to register team: %w", err)
	}
	return reg, nil
}

func (s *registrationService) ListByTournament(ctx context.Context, tournamentID int) ([]models.Registration, error) {
	if _, err := s.tournamentRepo.GetByID(ctx, tournamentID); err != nil {
		if errors.Is(err, repositories.ErrTournamentNotFound) {
			return nil, ErrTournamentNotFound
		}
		return nil, fmt.Errorf("failed to check tournament: %w", err)
	}
	return s.registrationRepo.ListByTournament(ctx, tournamentID)
}
