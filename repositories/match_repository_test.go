package repositories

import (
	"context"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/esportshub/arena/models"
	"github.com/lib/pq"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newMatchMockDB(t *testing.T) (*postgresMatchRepository, sqlmock.Sqlmock) {
	t.Helper()
	db, mock, err := sqlmock.New(sqlmock.QueryMatcherOption(sqlmock.QueryMatcherRegexp))
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })
	return &postgresMatchRepository{db: db}, mock
}

func TestMatchCreate_ScansGeneratedFields(t *testing.T) {
	repo, mock := newMatchMockDB(t)

	winnerID := 10
	mock.ExpectQuery(`INSERT INTO matches`).
		WillReturnRows(sqlmock.NewRows([]string{"id", "created_at"}).AddRow(3, time.Now()))

	m := &models.Match{
		TournamentID: 1,
		Team1ID:      10,
		Team2ID:      20,
		MatchTime:    time.Now(),
		Round:        1,
		Status:       models.MatchStatusCompleted,
		WinnerID:     &winnerID,
	}
	err := repo.Create(context.Background(), nil, m)
	require.NoError(t, err)
	assert.Equal(t, 3, m.ID)
}

func TestMatchCreate_DistinctTeamsCheckViolation(t *testing.T) {
	repo, mock := newMatchMockDB(t)

	mock.ExpectQuery(`INSERT INTO matches`).
		WillReturnError(&pq.Error{
			Code:       "23514",
			Constraint: "chk_match_distinct_teams",
		})

	m := &models.Match{TournamentID: 1, Team1ID: 10, Team2ID: 10, MatchTime: time.Now(), Round: 1}
	err := repo.Create(context.Background(), nil, m)
	assert.ErrorIs(t, err, ErrMatchConstraintFailed)
}

func TestMatchCreate_MissingTournamentForeignKey(t *testing.T) {
	repo, mock := newMatchMockDB(t)

	mock.ExpectQuery(`INSERT INTO matches`).
		WillReturnError(&pq.Error{
			Code:       "23503",
			Constraint: "matches_tournament_id_fkey",
		})

	m := &models.Match{TournamentID: 99, Team1ID: 10, Team2ID: 20, MatchTime: time.Now(), Round: 1}
	err := repo.Create(context.Background(), nil, m)
	assert.ErrorIs(t, err, ErrMatchTournamentInvalid)
}

func TestInsertScore_NegativeScoreCheckViolation(t *testing.T) {
	repo, mock := newMatchMockDB(t)

	mock.ExpectExec(`INSERT INTO scores`).
		WithArgs(3, 10, -1).
		WillReturnError(&pq.Error{
			Code:       "23514",
			Constraint: "chk_score_non_negative",
		})

	err := repo.InsertScore(context.Background(), nil, &models.Score{MatchID: 3, TeamID: 10, Score: -1})
	assert.ErrorIs(t, err, ErrScoreConstraintFailed)
}

func TestMatchGetByID_NotFound(t *testing.T) {
	repo, mock := newMatchMockDB(t)

	mock.ExpectQuery(`SELECT id, tournament_id`).
		WithArgs(99).
		WillReturnRows(sqlmock.NewRows([]string{"id"}))

	_, err := repo.GetByID(context.Background(), 99)
	assert.ErrorIs(t, err, ErrMatchNotFound)
}
