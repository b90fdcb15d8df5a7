package services

import (
	"context"
	"testing"
	"time"

	"github.com/esportshub/arena/models"
	"github.com/esportshub/arena/repositories"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeGameRepo struct {
	games map[int]*models.Game
}

func newFakeGameRepo(ids ...int) *fakeGameRepo {
	f := &fakeGameRepo{games: make(map[int]*models.Game)}
	for _, id := range ids {
		f.games[id] = &models.Game{ID: id, Title: "Game"}
	}
	return f
}

func (f *fakeGameRepo) Create(_ context.Context, g *models.Game) error {
	g.ID = len(f.games) + 1
	f.games[g.ID] = g
	return nil
}

func (f *fakeGameRepo) GetByID(_ context.Context, id int) (*models.Game, error) {
	g, ok := f.games[id]
	if !ok {
		return nil, repositories.ErrGameNotFound
	}
	return g, nil
}

func (f *fakeGameRepo) List(_ context.Context) ([]models.Game, error) { return nil, nil }

func validTournament() *models.Tournament {
	return &models.Tournament{
		Name:      "Spring Invitational",
		GameID:    1,
		StartDate: time.Date(2026, 4, 1, 0, 0, 0, 0, time.UTC),
		EndDate:   time.Date(2026, 4, 10, 0, 0, 0, 0, time.UTC),
		PrizePool: 10000,
	}
}

func TestCreateTournament_DefaultsStatusToUpcoming(t *testing.T) {
	svc := NewTournamentService(newFakeTournamentRepo(), newFakeGameRepo(1))

	tournament := validTournament()
	err := svc.CreateTournament(context.Background(), tournament)
	require.NoError(t, err)
	assert.Equal(t, models.StatusUpcoming, tournament.Status)
	require.NotNil(t, tournament.Game)
	assert.NotZero(t, tournament.ID)
}

func TestCreateTournament_RequiresName(t *testing.T) {
	svc := NewTournamentService(newFakeTournamentRepo(), newFakeGameRepo(1))

	tournament := validTournament()
	tournament.Name = "   "
	err := svc.CreateTournament(context.Background(), tournament)
	assert.ErrorIs(t, err, ErrTournamentNameRequired)
}

func TestCreateTournament_RejectsEndBeforeStart(t *testing.T) {
	svc := NewTournamentService(newFakeTournamentRepo(), newFakeGameRepo(1))

	tournament := validTournament()
	tournament.StartDate, tournament.EndDate = tournament.EndDate, tournament.StartDate
	err := svc.CreateTournament(context.Background(), tournament)
	assert.ErrorIs(t, err, ErrTournamentInvalidDateRange)
}

func TestCreateTournament_RejectsMissingDates(t *testing.T) {
	svc := NewTournamentService(newFakeTournamentRepo(), newFakeGameRepo(1))

	tournament := validTournament()
	tournament.EndDate = time.Time{}
	err := svc.CreateTournament(context.Background(), tournament)
	assert.ErrorIs(t, err, ErrValidationFailed)
}

func TestCreateTournament_RejectsNegativePrizePool(t *testing.T) {
	svc := NewTournamentService(newFakeTournamentRepo(), newFakeGameRepo(1))

	tournament := validTournament()
	tournament.PrizePool = -1
	err := svc.CreateTournament(context.Background(), tournament)
	assert.ErrorIs(t, err, ErrTournamentInvalidPrizePool)
}

func TestCreateTournament_UnknownGame(t *testing.T) {
	svc := NewTournamentService(newFakeTournamentRepo(), newFakeGameRepo())

	err := svc.CreateTournament(context.Background(), validTournament())
	assert.ErrorIs(t, err, ErrGameNotFound)
}

func TestGetTournamentByID_Unknown(t *testing.T) {
	svc := NewTournamentService(newFakeTournamentRepo(), newFakeGameRepo())

	_, err := svc.GetTournamentByID(context.Background(), 99)
	assert.ErrorIs(t, err, ErrTournamentNotFound)
}
