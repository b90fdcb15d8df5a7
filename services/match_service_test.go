package services

import (
	"context"
	"database/sql"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newMatchTestDB(t *testing.T) (*sql.DB, sqlmock.Sqlmock) {
	t.Helper()
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })
	return db, mock
}

func newMatchTestService(db *sql.DB, matchRepo *fakeMatchRepo, regRepo *fakeRegistrationRepo, tournamentRepo *fakeTournamentRepo) MatchService {
	return NewMatchService(db, matchRepo, regRepo, tournamentRepo, nil, nil, nil)
}

func validResultInput() RecordResultInput {
	return RecordResultInput{
		TournamentID: 1,
		Team1ID:      10,
		Team2ID:      20,
		Score1:       16,
		Score2:       12,
		MatchTime:    time.Date(2026, 3, 14, 18, 0, 0, 0, time.UTC),
	}
}

func TestDetermineWinner(t *testing.T) {
	tests := []struct {
		name           string
		score1, score2 int
		want           *int
	}{
		{name: "team1 wins", score1: 10, score2: 7, want: intPtr(10)},
		{name: "team2 wins", score1: 3, score2: 9, want: intPtr(20)},
		{name: "draw", score1: 5, score2: 5, want: nil},
		{name: "zero zero draw", score1: 0, score2: 0, want: nil},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := determineWinner(10, 20, tt.score1, tt.score2)
			if tt.want == nil {
				assert.Nil(t, got)
			} else {
				require.NotNil(t, got)
				assert.Equal(t, *tt.want, *got)
			}
		})
	}
}

func intPtr(v int) *int { return &v }

func TestRecordResult_CommitsMatchWithScoresAndWinner(t *testing.T) {
	db, mock := newMatchTestDB(t)
	mock.ExpectBegin()
	mock.ExpectCommit()

	matchRepo := newFakeMatchRepo()
	regRepo := newFakeRegistrationRepo()
	regRepo.register(10, 1)
	regRepo.register(20, 1)

	svc := newMatchTestService(db, matchRepo, regRepo, newFakeTournamentRepo(1))

	match, err := svc.RecordResult(context.Background(), validResultInput())
	require.NoError(t, err)

	require.NotNil(t, match.WinnerID)
	assert.Equal(t, 10, *match.WinnerID)
	assert.Equal(t, 1, match.Round)
	require.Len(t, match.Scores, 2)
	assert.Equal(t, 16, match.Scores[0].Score)
	assert.Equal(t, 12, match.Scores[1].Score)
	assert.Equal(t, match.ID, match.Scores[0].MatchID)

	require.Len(t, matchRepo.scores, 2)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestRecordResult_DrawHasNoWinner(t *testing.T) {
	db, mock := newMatchTestDB(t)
	mock.ExpectBegin()
	mock.ExpectCommit()

	regRepo := newFakeRegistrationRepo()
	regRepo.register(10, 1)
	regRepo.register(20, 1)

	svc := newMatchTestService(db, newFakeMatchRepo(), regRepo, newFakeTournamentRepo(1))

	input := validResultInput()
	input.Score1, input.Score2 = 5, 5
	match, err := svc.RecordResult(context.Background(), input)
	require.NoError(t, err)
	assert.Nil(t, match.WinnerID)
}

func TestRecordResult_RejectsSameTeam(t *testing.T) {
	db, _ := newMatchTestDB(t)
	svc := newMatchTestService(db, newFakeMatchRepo(), newFakeRegistrationRepo(), newFakeTournamentRepo(1))

	input := validResultInput()
	input.Team2ID = input.Team1ID
	_, err := svc.RecordResult(context.Background(), input)
	assert.ErrorIs(t, err, ErrMatchSameTeam)
}

func TestRecordResult_RejectsUnknownTournament(t *testing.T) {
	db, _ := newMatchTestDB(t)
	svc := newMatchTestService(db, newFakeMatchRepo(), newFakeRegistrationRepo(), newFakeTournamentRepo())

	_, err := svc.RecordResult(context.Background(), validResultInput())
	assert.ErrorIs(t, err, ErrTournamentNotFound)
}

func TestRecordResult_RejectsZeroMatchTime(t *testing.T) {
	db, _ := newMatchTestDB(t)
	svc := newMatchTestService(db, newFakeMatchRepo(), newFakeRegistrationRepo(), newFakeTournamentRepo(1))

	input := validResultInput()
	input.MatchTime = time.Time{}
	_, err := svc.RecordResult(context.Background(), input)
	assert.ErrorIs(t, err, ErrMatchTimeRequired)
}

func TestRecordResult_RejectsUnregisteredTeam(t *testing.T) {
	db, mock := newMatchTestDB(t)
	mock.ExpectBegin()
	mock.ExpectRollback()

	regRepo := newFakeRegistrationRepo()
	regRepo.register(10, 1) // team 20 never registered

	svc := newMatchTestService(db, newFakeMatchRepo(), regRepo, newFakeTournamentRepo(1))

	_, err := svc.RecordResult(context.Background(), validResultInput())
	assert.ErrorIs(t, err, ErrTeamNotRegistered)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestRecordResult_RejectsNegativeScore(t *testing.T) {
	db, mock := newMatchTestDB(t)
	mock.ExpectBegin()
	mock.ExpectRollback()

	regRepo := newFakeRegistrationRepo()
	regRepo.register(10, 1)
	regRepo.register(20, 1)

	svc := newMatchTestService(db, newFakeMatchRepo(), regRepo, newFakeTournamentRepo(1))

	input := validResultInput()
	input.Score2 = -1
	_, err := svc.RecordResult(context.Background(), input)
	assert.ErrorIs(t, err, ErrMatchNegativeScore)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestRecordResult_RollsBackWhenScoreInsertFails(t *testing.T) {
	db, mock := newMatchTestDB(t)
	mock.ExpectBegin()
	mock.ExpectRollback()

	matchRepo := newFakeMatchRepo()
	matchRepo.failScoreAfter = 1 // second score insert fails

	regRepo := newFakeRegistrationRepo()
	regRepo.register(10, 1)
	regRepo.register(20, 1)

	svc := newMatchTestService(db, matchRepo, regRepo, newFakeTournamentRepo(1))

	_, err := svc.RecordResult(context.Background(), validResultInput())
	require.Error(t, err)
	assert.ErrorIs(t, err, errScoreInsertFailed)

	// Commit must never have been reached.
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestRecordResult_NotIdempotent(t *testing.T) {
	db, mock := newMatchTestDB(t)
	mock.ExpectBegin()
	mock.ExpectCommit()
	mock.ExpectBegin()
	mock.ExpectCommit()

	matchRepo := newFakeMatchRepo()
	regRepo := newFakeRegistrationRepo()
	regRepo.register(10, 1)
	regRepo.register(20, 1)

	svc := newMatchTestService(db, matchRepo, regRepo, newFakeTournamentRepo(1))

	input := validResultInput()
	first, err := svc.RecordResult(context.Background(), input)
	require.NoError(t, err)
	second, err := svc.RecordResult(context.Background(), input)
	require.NoError(t, err)

	// The same result submitted twice is two distinct matches.
	assert.NotEqual(t, first.ID, second.ID)
	assert.Len(t, matchRepo.matches, 2)
	assert.Len(t, matchRepo.scores, 4)
}

func TestRecordResult_DefaultsRoundToOne(t *testing.T) {
	db, mock := newMatchTestDB(t)
	mock.ExpectBegin()
	mock.ExpectCommit()

	regRepo := newFakeRegistrationRepo()
	regRepo.register(10, 1)
	regRepo.register(20, 1)

	svc := newMatchTestService(db, newFakeMatchRepo(), regRepo, newFakeTournamentRepo(1))

	input := validResultInput()
	input.Round = 0
	match, err := svc.RecordResult(context.Background(), input)
	require.NoError(t, err)
	assert.Equal(t, 1, match.Round)
}
