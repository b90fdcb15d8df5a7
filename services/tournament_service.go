package services

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/esportshub/arena/models"
	"github.com/esportshub/arena/repositories"
)

type TournamentService interface {
	CreateTournament(ctx context.Context, tournament *models.Tournament) error
	GetTournamentByID(ctx context.Context, id int) (*models.Tournament, error)
	ListTournaments(ctx context.Context, filter repositories.ListTournamentsFilter) ([]models.Tournament, error)
	AutoUpdateStatusesByDates(ctx context.Context) (int64, error)
}

type tournamentService struct {
	tournamentRepo repositories.TournamentRepository
	gameRepo       repositories.GameRepository
}

func NewTournamentService(
	tournamentRepo repositories.TournamentRepository,
	gameRepo repositories.GameRepository,
) TournamentService {
	return &tournamentService{
		tournamentRepo: tournamentRepo,
		gameRepo:       gameRepo,
	}
}

func (s *tournamentService) CreateTournament(ctx context.Context, t *models.Tournament) error {
	t.Name = strings.TrimSpace(t.Name)
	if t.Name == "" {
		return ErrTournamentNameRequired
	}
	if err := validateTournamentDates(t.StartDate, t.EndDate); err != nil {
		return err
	}
	if t.PrizePool < 0 {
		return ErrTournamentInvalidPrizePool
	}

	game, err := s.gameRepo.GetByID(ctx, t.GameID)
	if err != nil {
		if errors.Is(err, repositories.ErrGameNotFound) {
			return ErrGameNotFound
		}
		return fmt.Errorf("failed to check game: %w", err)
	}

	if t.Status == "" {
		t.Status = models.StatusUpcoming
	}

	if err := s.tournamentRepo.Create(ctx, t); err != nil {
		if errors.Is(err, repositories.ErrTournamentGameInvalid) {
			return ErrGameNotFound
		}
		return fmt.Errorf("failed to create tournament: %w", err)
	}
	t.Game = game
	return nil
}

func (s *tournamentService) GetTournamentByID(ctx context.Context, id int) (*models.Tournament, error) {
	tournament, err := s.tournamentRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, repositories.ErrTournamentNotFound) {
			return nil, ErrTournamentNotFound
		}
		return nil, fmt.Errorf("failed to get tournament: %w", err)
	}
	return tournament, nil
}

func (s *tournamentService) ListTournaments(ctx context.Context, filter repositories.ListTournamentsFilter) ([]models.Tournament, error) {
	return s.tournamentRepo.List(ctx, filter)
}

// AutoUpdateStatusesByDates advances tournament statuses along
// upcoming -> ongoing -> completed based on the current time. Called
// periodically by the scheduler in main.
func (s *tournamentService) AutoUpdateStatusesByDates(ctx context.Context) (int64, error) {
	return s.tournamentRepo.ShiftStatusesByDate(ctx, time.Now().UTC())
}
