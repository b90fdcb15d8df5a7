package services

import (
	"context"
	"errors"
	"fmt"
	"sort"

	"github.com/esportshub/arena/models"
	"github.com/esportshub/arena/repositories"
	"golang.org/x/sync/errgroup"
)

// TournamentStandings is the full leaderboard view for one tournament.
type TournamentStandings struct {
	Tournament    *models.Tournament      `json:"tournament"`
	Leaderboard   []models.LeaderboardRow `json:"leaderboard"`
	RecentMatches []models.MatchSummary   `json:"recent_matches"`
}

// StandingsService derives standings from the recorded match and score facts.
// It never writes and keeps no state of its own: every call recomputes, so the
// numbers cannot drift from the facts.
type StandingsService interface {
	Leaderboard(ctx context.Context, tournamentID int) ([]models.LeaderboardRow, error)
	TournamentStandings(ctx context.Context, tournamentID int) (*TournamentStandings, error)
	TeamSummary(ctx context.Context, teamID int) (*models.TeamSummary, error)
	TopTeams(ctx context.Context, limit int) ([]models.TeamSummary, error)
}

type standingsService struct {
	standingsRepo  repositories.StandingsRepository
	tournamentRepo repositories.TournamentRepository
	matchRepo      repositories.MatchRepository
}

func NewStandingsService(
	standingsRepo repositories.StandingsRepository,
	tournamentRepo repositories.TournamentRepository,
	matchRepo repositories.MatchRepository,
) StandingsService {
	return &standingsService{
		standingsRepo:  standingsRepo,
		tournamentRepo: tournamentRepo,
		matchRepo:      matchRepo,
	}
}

// buildRow derives the display metrics from a raw tally. A team with no
// completed matches reports zero averages instead of dividing by zero.
func buildRow(tally models.TeamTally) models.LeaderboardRow {
	row := models.LeaderboardRow{TeamTally: tally}
	if tally.MatchesPlayed > 0 {
		row.AvgScore = float64(tally.TotalScore) / float64(tally.MatchesPlayed)
		row.WinRatePercentage = float64(tally.Wins) / float64(tally.MatchesPlayed) * 100
	}
	return row
}

// sortRows orders standings: wins, then average score, then total score, all
// descending. Remaining ties break on team id ascending so repeated calls over
// unchanged data return the same order.
func sortRows(rows []models.LeaderboardRow) {
	sort.Slice(rows, func(i, j int) bool {
		a, b := rows[i], rows[j]
		if a.Wins != b.Wins {
			return a.Wins > b.Wins
		}
		if a.AvgScore != b.AvgScore {
			return a.AvgScore > b.AvgScore
		}
		if a.TotalScore != b.TotalScore {
			return a.TotalScore > b.TotalScore
		}
		return a.TeamID < b.TeamID
	})
}

func summarize(tally *repositories.AllTimeTally) *models.TeamSummary {
	summary := &models.TeamSummary{
		TeamTally:               tally.TeamTally,
		CaptainName:             tally.CaptainName,
		TournamentsParticipated: tally.TournamentsParticipated,
	}
	if tally.MatchesPlayed > 0 {
		summary.AvgScoreAllTime = round2(float64(tally.TotalScore) / float64(tally.MatchesPlayed))
		summary.OverallWinRate = round2(float64(tally.Wins) / float64(tally.MatchesPlayed) * 100)
	}
	return summary
}

func (s *standingsService) Leaderboard(ctx context.Context, tournamentID int) ([]models.LeaderboardRow, error) {
	if _, err := s.tournamentRepo.GetByID(ctx, tournamentID); err != nil {
		if errors.Is(err, repositories.ErrTournamentNotFound) {
			return nil, ErrTournamentNotFound
		}
		return nil, fmt.Errorf("failed to check tournament: %w", err)
	}

	tallies, err := s.standingsRepo.TournamentTallies(ctx, tournamentID)
	if err != nil {
		return nil, fmt.Errorf("failed to compute leaderboard: %w", err)
	}

	rows := make([]models.LeaderboardRow, 0, len(tallies))
	for _, tally := range tallies {
		rows = append(rows, buildRow(tally))
	}
	sortRows(rows)

	// Round after sorting so near-ties order on the exact values.
	for i := range rows {
		rows[i].AvgScore = round2(rows[i].AvgScore)
		rows[i].WinRatePercentage = round2(rows[i].WinRatePercentage)
	}
	return rows, nil
}

// TournamentStandings assembles the leaderboard page: standings plus the most
// recent completed matches, fetched concurrently.
func (s *standingsService) TournamentStandings(ctx context.Context, tournamentID int) (*TournamentStandings, error) {
	tournament, err := s.tournamentRepo.GetByID(ctx, tournamentID)
	if err != nil {
		if errors.Is(err, repositories.ErrTournamentNotFound) {
			return nil, ErrTournamentNotFound
		}
		return nil, fmt.Errorf("failed to get tournament: %w", err)
	}

	view := &TournamentStandings{Tournament: tournament}

	g, gCtx := errgroup.WithContext(ctx)

	g.Go(func() error {
		rows, err := s.Leaderboard(gCtx, tournamentID)
		if err != nil {
			return err
		}
		view.Leaderboard = rows
		return nil
	})

	g.Go(func() error {
		recent, err := s.matchRepo.ListSummaries(gCtx, &tournamentID, 10)
		if err != nil {
			return fmt.Errorf("failed to load recent matches: %w", err)
		}
		view.RecentMatches = recent
		return nil
	})

	if err := g.Wait(); err != nil {
		return nil, err
	}
	return view, nil
}

func (s *standingsService) TeamSummary(ctx context.Context, teamID int) (*models.TeamSummary, error) {
	tally, err := s.standingsRepo.TeamAllTimeTally(ctx, teamID)
	if err != nil {
		if errors.Is(err, repositories.ErrTeamNotFound) {
			return nil, ErrTeamNotFound
		}
		return nil, fmt.Errorf("failed to compute team summary: %w", err)
	}
	return summarize(tally), nil
}

func (s *standingsService) TopTeams(ctx context.Context, limit int) ([]models.TeamSummary, error) {
	tallies, err := s.standingsRepo.AllTeamTallies(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to compute top teams: %w", err)
	}

	summaries := make([]models.TeamSummary, 0, len(tallies))
	for i := range tallies {
		summaries = append(summaries, *summarize(&tallies[i]))
	}
	sort.Slice(summaries, func(i, j int) bool {
		a, b := summaries[i], summaries[j]
		if a.Wins != b.Wins {
			return a.Wins > b.Wins
		}
		if a.AvgScoreAllTime != b.AvgScoreAllTime {
			return a.AvgScoreAllTime > b.AvgScoreAllTime
		}
		return a.TeamID < b.TeamID
	})

	if limit > 0 && len(summaries) > limit {
		summaries = summaries[:limit]
	}
	return summaries, nil
}
