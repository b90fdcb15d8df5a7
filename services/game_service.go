package services

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/esportshub/arena/models"
	"github.com/esportshub/arena/repositories"
)

type GameService interface {
	CreateGame(ctx context.Context, game *models.Game) error
	GetGameByID(ctx context.Context, id int) (*models.Game, error)
	ListGames(ctx context.Context) ([]models.Game, error)
}

type gameService struct {
	gameRepo repositories.GameRepository
}

func NewGameService(gameRepo repositories.GameRepository) GameService {
	return &gameService{gameRepo: gameRepo}
}

func (s *gameService) CreateGame(ctx context.Context, game *models.Game) error {
	game.Title = strings.TrimSpace(game.Title)
	if game.Title == "" {
		return fmt.Errorf("%w: game title is required", ErrValidationFailed)
	}

	if err := s.gameRepo.Create(ctx, game); err != nil {
		if errors.Is(err, repositories.ErrGameTitleConflict) {
			return ErrGameTitleConflict
		}
		return fmt.Errorf("failed to create game: %w", err)
	}
	return nil
}

func (s *gameService) GetGameByID(ctx context.Context, id int) (*models.Game, error) {
	game, err := s.gameRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, repositories.ErrGameNotFound) {
			return nil, ErrGameNotFound
		}
		return nil, fmt.Errorf("failed to get game: %w", err)
	}
	return game, nil
}

func (s *gameService) ListGames(ctx context.Context) ([]models.Game, error) {
	return s.gameRepo.List(ctx)
}
