package services

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/esportshub/arena/models"
	"github.com/esportshub/arena/repositories"
)

// StandingsBroadcaster pushes standings updates to live subscribers.
// Satisfied by *live.Hub; nil disables broadcasting.
type StandingsBroadcaster interface {
	BroadcastToRoom(roomID string, message interface{})
}

type RecordResultInput struct {
	TournamentID int       `json:"tournament_id"`
	Team1ID      int       `json:"team1_id"`
	Team2ID      int       `json:"team2_id"`
	Score1       int       `json:"team1_score"`
	Score2       int       `json:"team2_score"`
	MatchTime    time.Time `json:"match_time"`
	Round        int       `json:"round"`
}

type MatchService interface {
	// RecordResult commits a completed match together with both team scores and
	// the computed winner as one unit of work. It is deliberately not
	// idempotent: submitting the same result twice records two matches.
	RecordResult(ctx context.Context, input RecordResultInput) (*models.Match, error)
	GetMatchByID(ctx context.Context, id int) (*models.Match, error)
	ListTournamentMatches(ctx context.Context, tournamentID int, limit int) ([]models.MatchSummary, error)
	ListRecentMatches(ctx context.Context, limit int) ([]models.MatchSummary, error)
}

type matchService struct {
	db               *sql.DB
	matchRepo        repositories.MatchRepository
	registrationRepo repositories.RegistrationRepository
	tournamentRepo   repositories.TournamentRepository
	standings        StandingsService
	hub              StandingsBroadcaster
	logger           *slog.Logger
}

func NewMatchService(
	db *sql.DB,
	matchRepo repositories.MatchRepository,
	registrationRepo repositories.RegistrationRepository,
	tournamentRepo repositories.TournamentRepository,
	standings StandingsService,
	hub StandingsBroadcaster,
	logger *slog.Logger,
) MatchService {
	return &matchService{
		db:               db,
		matchRepo:        matchRepo,
		registrationRepo: registrationRepo,
		tournamentRepo:   tournamentRepo,
		standings:        standings,
		hub:              hub,
		logger:           logger,
	}
}

// determineWinner picks the winner by score alone. Equal scores mean a draw,
// reported as a nil winner. There is no external tie-break.
func determineWinner(team1ID, team2ID, score1, score2 int) *int {
	switch {
	case score1 > score2:
		return &team1ID
	case score2 > score1:
		return &team2ID
	default:
		return nil
	}
}

func (s *matchService) RecordResult(ctx context.Context, input RecordResultInput) (*models.Match, error) {
	if input.Team1ID == input.Team2ID {
		return nil, ErrMatchSameTeam
	}
	if _, err := s.tournamentRepo.GetByID(ctx, input.TournamentID); err != nil {
		if errors.Is(err, repositories.ErrTournamentNotFound) {
			return nil, ErrTournamentNotFound
		}
		return nil, fmt.Errorf("failed to check tournament: %w", err)
	}
	if input.MatchTime.IsZero() {
		return nil, ErrMatchTimeRequired
	}
	round := input.Round
	if round == 0 {
		round = 1
	}
	if round < 1 {
		return nil, fmt.Errorf("%w: round must be positive", ErrValidationFailed)
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to begin transaction: %w", err)
	}
	// Rollback is a no-op once the transaction committed.
	defer tx.Rollback()

	registered, err := s.registrationRepo.CountRegistered(ctx, tx, input.TournamentID, input.Team1ID, input.Team2ID)
	if err != nil {
		return nil, fmt.Errorf("failed to check registrations: %w", err)
	}
	if registered != 2 {
		return nil, ErrTeamNotRegistered
	}

	if input.Score1 < 0 || input.Score2 < 0 {
		return nil, ErrMatchNegativeScore
	}

	match := &models.Match{
		TournamentID: input.TournamentID,
		Team1ID:      input.Team1ID,
		Team2ID:      input.Team2ID,
		MatchTime:    input.MatchTime,
		Round:        round,
		Status:       models.MatchStatusCompleted,
		WinnerID:     determineWinner(input.Team1ID, input.Team2ID, input.Score1, input.Score2),
	}

	// Match and both scores commit or fail together. A partially written match
	// must never become observable.
	if err := s.matchRepo.Create(ctx, tx, match); err != nil {
		return nil, fmt.Errorf("failed to record match: %w", err)
	}

	scores := []models.Score{
		{MatchID: match.ID, TeamID: input.Team1ID, Score: input.Score1},
		{MatchID: match.ID, TeamID: input.Team2ID, Score: input.Score2},
	}
	for i := range scores {
		if err := s.matchRepo.InsertScore(ctx, tx, &scores[i]); err != nil {
			return nil, fmt.Errorf("failed to record score for team %d: %w", scores[i].TeamID, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return nil, fmt.Errorf("failed to commit match result: %w", err)
	}
	match.Scores = scores

	if s.hub != nil {
		go s.broadcastStandings(match.TournamentID)
	}
	return match, nil
}

// broadcastStandings pushes the refreshed leaderboard to websocket subscribers
// of the tournament room. Failures are logged, never surfaced: the result is
// already committed.
func (s *matchService) broadcastStandings(tournamentID int) {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	rows, err := s.standings.Leaderboard(ctx, tournamentID)
	if err != nil {
		if s.logger != nil {
			s.logger.Error("failed to recompute leaderboard for broadcast",
				slog.Int("tournament_id", tournamentID), slog.Any("error", err))
		}
		return
	}
	s.hub.BroadcastToRoom(fmt.Sprintf("tournament_%d", tournamentID), map[string]interface{}{
		"type":          "LEADERBOARD_UPDATED",
		"tournament_id": tournamentID,
		"leaderboard":   rows,
	})
}

func (s *matchService) GetMatchByID(ctx context.Context, id int) (*models.Match, error) {
	match, err := s.matchRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, repositories.ErrMatchNotFound) {
			return nil, ErrMatchNotFound
		}
		return nil, fmt.Errorf("failed to get match: %w", err)
	}
	return match, nil
}

func (s *matchService) ListTournamentMatches(ctx context.Context, tournamentID int, limit int) ([]models.MatchSummary, error) {
	if _, err := s.tournamentRepo.GetByID(ctx, tournamentID); err != nil {
		if errors.Is(err, repositories.ErrTournamentNotFound) {
			return nil, ErrTournamentNotFound
		}
		return nil, fmt.Errorf("failed to check tournament: %w", err)
	}
	return s.matchRepo.ListSummaries(ctx, &tournamentID, limit)
}

func (s *matchService) ListRecentMatches(ctx context.Context, limit int) ([]models.MatchSummary, error) {
	return s.matchRepo.ListSummaries(ctx, nil, limit)
}
