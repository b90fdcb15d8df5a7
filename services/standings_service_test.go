package services

import (
	"context"
	"testing"

	"github.com/esportshub/arena/models"
	"github.com/esportshub/arena/repositories"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newStandingsTestService(standingsRepo *fakeStandingsRepo, tournamentRepo *fakeTournamentRepo) StandingsService {
	return NewStandingsService(standingsRepo, tournamentRepo, newFakeMatchRepo())
}

func tally(teamID, played, wins, losses, draws, total int) models.TeamTally {
	return models.TeamTally{
		TeamID:        teamID,
		MatchesPlayed: played,
		Wins:          wins,
		Losses:        losses,
		Draws:         draws,
		TotalScore:    total,
	}
}

func TestLeaderboard_OrdersByWinsThenAvgThenTotalThenID(t *testing.T) {
	standingsRepo := newFakeStandingsRepo()
	standingsRepo.tallies[1] = []models.TeamTally{
		tally(4, 2, 1, 1, 0, 20), // same wins and avg as team 3, lower id wins the tie
		tally(1, 2, 2, 0, 0, 30),
		tally(2, 2, 2, 0, 0, 40), // same wins as team 1, higher avg ranks above
		tally(3, 2, 1, 1, 0, 20),
	}

	svc := newStandingsTestService(standingsRepo, newFakeTournamentRepo(1))
	rows, err := svc.Leaderboard(context.Background(), 1)
	require.NoError(t, err)

	require.Len(t, rows, 4)
	assert.Equal(t, 2, rows[0].TeamID)
	assert.Equal(t, 1, rows[1].TeamID)
	assert.Equal(t, 3, rows[2].TeamID)
	assert.Equal(t, 4, rows[3].TeamID)
}

func TestLeaderboard_DerivedMetrics(t *testing.T) {
	standingsRepo := newFakeStandingsRepo()
	standingsRepo.tallies[1] = []models.TeamTally{
		tally(1, 3, 2, 1, 0, 50),
	}

	svc := newStandingsTestService(standingsRepo, newFakeTournamentRepo(1))
	rows, err := svc.Leaderboard(context.Background(), 1)
	require.NoError(t, err)

	require.Len(t, rows, 1)
	assert.InDelta(t, 16.67, rows[0].AvgScore, 0.001)
	assert.InDelta(t, 66.67, rows[0].WinRatePercentage, 0.001)
}

func TestLeaderboard_TeamWithNoMatchesReportsZeros(t *testing.T) {
	standingsRepo := newFakeStandingsRepo()
	standingsRepo.tallies[1] = []models.TeamTally{
		tally(1, 0, 0, 0, 0, 0),
	}

	svc := newStandingsTestService(standingsRepo, newFakeTournamentRepo(1))
	rows, err := svc.Leaderboard(context.Background(), 1)
	require.NoError(t, err)

	require.Len(t, rows, 1)
	assert.Zero(t, rows[0].AvgScore)
	assert.Zero(t, rows[0].WinRatePercentage)
}

func TestLeaderboard_UnknownTournament(t *testing.T) {
	svc := newStandingsTestService(newFakeStandingsRepo(), newFakeTournamentRepo())

	_, err := svc.Leaderboard(context.Background(), 99)
	assert.ErrorIs(t, err, ErrTournamentNotFound)
}

func TestLeaderboard_EmptyTournament(t *testing.T) {
	svc := newStandingsTestService(newFakeStandingsRepo(), newFakeTournamentRepo(1))

	rows, err := svc.Leaderboard(context.Background(), 1)
	require.NoError(t, err)
	assert.Empty(t, rows)
}

// A single 16-12 result must place the winner above the loser with one win
// and the exact average.
func TestLeaderboard_SingleResultScenario(t *testing.T) {
	standingsRepo := newFakeStandingsRepo()
	standingsRepo.tallies[1] = []models.TeamTally{
		tally(10, 1, 1, 0, 0, 16),
		tally(20, 1, 0, 1, 0, 12),
	}

	svc := newStandingsTestService(standingsRepo, newFakeTournamentRepo(1))
	rows, err := svc.Leaderboard(context.Background(), 1)
	require.NoError(t, err)

	require.Len(t, rows, 2)
	assert.Equal(t, 10, rows[0].TeamID)
	assert.Equal(t, 1, rows[0].Wins)
	assert.Equal(t, 16.0, rows[0].AvgScore)
	assert.Equal(t, 100.0, rows[0].WinRatePercentage)
	assert.Equal(t, 20, rows[1].TeamID)
	assert.Equal(t, 0, rows[1].Wins)
	assert.Equal(t, 12.0, rows[1].AvgScore)
}

func TestTeamSummary_RoundsDerivedMetrics(t *testing.T) {
	standingsRepo := newFakeStandingsRepo()
	standingsRepo.allTime[10] = repositories.AllTimeTally{
		TeamTally:               tally(10, 3, 1, 2, 0, 10),
		CaptainName:             "Alex",
		TournamentsParticipated: 2,
	}

	svc := newStandingsTestService(standingsRepo, newFakeTournamentRepo())
	summary, err := svc.TeamSummary(context.Background(), 10)
	require.NoError(t, err)

	assert.Equal(t, "Alex", summary.CaptainName)
	assert.Equal(t, 2, summary.TournamentsParticipated)
	assert.Equal(t, 3.33, summary.AvgScoreAllTime)
	assert.Equal(t, 33.33, summary.OverallWinRate)
}

func TestTeamSummary_UnknownTeam(t *testing.T) {
	svc := newStandingsTestService(newFakeStandingsRepo(), newFakeTournamentRepo())

	_, err := svc.TeamSummary(context.Background(), 99)
	assert.ErrorIs(t, err, ErrTeamNotFound)
}

func TestTeamSummary_NoMatchesReportsZeros(t *testing.T) {
	standingsRepo := newFakeStandingsRepo()
	standingsRepo.allTime[10] = repositories.AllTimeTally{
		TeamTally:   tally(10, 0, 0, 0, 0, 0),
		CaptainName: "Alex",
	}

	svc := newStandingsTestService(standingsRepo, newFakeTournamentRepo())
	summary, err := svc.TeamSummary(context.Background(), 10)
	require.NoError(t, err)

	assert.Zero(t, summary.AvgScoreAllTime)
	assert.Zero(t, summary.OverallWinRate)
}

func TestTopTeams_SortsAndLimits(t *testing.T) {
	standingsRepo := newFakeStandingsRepo()
	standingsRepo.allTime[1] = repositories.AllTimeTally{TeamTally: tally(1, 4, 2, 2, 0, 40)}
	standingsRepo.allTime[2] = repositories.AllTimeTally{TeamTally: tally(2, 4, 3, 1, 0, 30)}
	standingsRepo.allTime[3] = repositories.AllTimeTally{TeamTally: tally(3, 4, 2, 2, 0, 60)}

	svc := newStandingsTestService(standingsRepo, newFakeTournamentRepo())
	teams, err := svc.TopTeams(context.Background(), 2)
	require.NoError(t, err)

	require.Len(t, teams, 2)
	assert.Equal(t, 2, teams[0].TeamID) // most wins
	assert.Equal(t, 3, teams[1].TeamID) // tied wins, higher average
}

func TestTopTeams_ZeroLimitReturnsAll(t *testing.T) {
	standingsRepo := newFakeStandingsRepo()
	standingsRepo.allTime[1] = repositories.AllTimeTally{TeamTally: tally(1, 1, 1, 0, 0, 10)}
	standingsRepo.allTime[2] = repositories.AllTimeTally{TeamTally: tally(2, 1, 0, 1, 0, 5)}

	svc := newStandingsTestService(standingsRepo, newFakeTournamentRepo())
	teams, err := svc.TopTeams(context.Background(), 0)
	require.NoError(t, err)
	assert.Len(t, teams, 2)
}

// Tallies over the same facts must agree: per-team wins plus losses plus draws
// equal matches played, and total wins equal total losses across a tournament
// where every match has two sides.
func TestLeaderboard_TalliesAreConsistent(t *testing.T) {
	standingsRepo := newFakeStandingsRepo()
	standingsRepo.tallies[1] = []models.TeamTally{
		tally(1, 3, 2, 1, 0, 45),
		tally(2, 3, 1, 1, 1, 38),
		tally(3, 2, 0, 1, 1, 21),
	}

	svc := newStandingsTestService(standingsRepo, newFakeTournamentRepo(1))
	rows, err := svc.Leaderboard(context.Background(), 1)
	require.NoError(t, err)

	for _, row := range rows {
		assert.Equal(t, row.MatchesPlayed, row.Wins+row.Losses+row.Draws,
			"team %d outcome counts must sum to matches played", row.TeamID)
	}
}

// A team's wins per tournament must sum to its all-time win count over the
// same facts; derivation must not distort the raw counts.
func TestStandings_PerTournamentWinsSumToAllTime(t *testing.T) {
	standingsRepo := newFakeStandingsRepo()
	standingsRepo.tallies[1] = []models.TeamTally{tally(10, 2, 2, 0, 0, 30)}
	standingsRepo.tallies[2] = []models.TeamTally{tally(10, 3, 1, 1, 1, 25)}
	standingsRepo.allTime[10] = repositories.AllTimeTally{
		TeamTally:               tally(10, 5, 3, 1, 1, 55),
		TournamentsParticipated: 2,
	}

	svc := newStandingsTestService(standingsRepo, newFakeTournamentRepo(1, 2))

	winsAcross := 0
	for _, tournamentID := range []int{1, 2} {
		rows, err := svc.Leaderboard(context.Background(), tournamentID)
		require.NoError(t, err)
		require.Len(t, rows, 1)
		winsAcross += rows[0].Wins
	}

	summary, err := svc.TeamSummary(context.Background(), 10)
	require.NoError(t, err)
	assert.Equal(t, winsAcross, summary.Wins)
	assert.Equal(t, 2, summary.TournamentsParticipated)
}
