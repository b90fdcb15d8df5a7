package services

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/esportshub/arena/models"
	"github.com/esportshub/arena/repositories"
)

type fakeTournamentRepo struct {
	tournaments map[int]*models.Tournament
}

func newFakeTournamentRepo(ids ...int) *fakeTournamentRepo {
	f := &fakeTournamentRepo{tournaments: make(map[int]*models.Tournament)}
	for _, id := range ids {
		f.tournaments[id] = &models.Tournament{ID: id, Name: "Tournament", Status: models.StatusOngoing}
	}
	return f
}

func (f *fakeTournamentRepo) Create(_ context.Context, t *models.Tournament) error {
	t.ID = len(f.tournaments) + 1
	f.tournaments[t.ID] = t
	return nil
}

func (f *fakeTournamentRepo) GetByID(_ context.Context, id int) (*models.Tournament, error) {
	t, ok := f.tournaments[id]
	if !ok {
		return nil, repositories.ErrTournamentNotFound
	}
	return t, nil
}

func (f *fakeTournamentRepo) List(_ context.Context, _ repositories.ListTournamentsFilter) ([]models.Tournament, error) {
	return nil, nil
}

func (f *fakeTournamentRepo) ShiftStatusesByDate(_ context.Context, _ time.Time) (int64, error) {
	return 0, nil
}

type fakeTeamRepo struct {
	teams map[int]*models.Team
}

func newFakeTeamRepo(ids ...int) *fakeTeamRepo {
	f := &fakeTeamRepo{teams: make(map[int]*models.Team)}
	for _, id := range ids {
		f.teams[id] = &models.Team{ID: id, Name: "Team"}
	}
	return f
}

func (f *fakeTeamRepo) Create(_ context.Context, t *models.Team) error {
	t.ID = len(f.teams) + 1
	f.teams[t.ID] = t
	return nil
}

func (f *fakeTeamRepo) GetByID(_ context.Context, id int) (*models.Team, error) {
	t, ok := f.teams[id]
	if !ok {
		return nil, repositories.ErrTeamNotFound
	}
	return t, nil
}

func (f *fakeTeamRepo) List(_ context.Context) ([]models.Team, error) { return nil, nil }

func (f *fakeTeamRepo) UpdateLogoKey(_ context.Context, _ int, _ *string) error { return nil }

type registrationKey struct {
	teamID       int
	tournamentID int
}

// fakeRegistrationRepo mirrors the unique constraint semantics of the real
// table: the mutex makes check-and-insert a single step, so of N concurrent
// Create calls for the same pair exactly one succeeds.
type fakeRegistrationRepo struct {
	mu     sync.Mutex
	pairs  map[registrationKey]models.Registration
	nextID int
}

func newFakeRegistrationRepo() *fakeRegistrationRepo {
	return &fakeRegistrationRepo{pairs: make(map[registrationKey]models.Registration)}
}

func (f *fakeRegistrationRepo) Create(_ context.Context, reg *models.Registration) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	key := registrationKey{teamID: reg.TeamID, tournamentID: reg.TournamentID}
	if _, exists := f.pairs[key]; exists {
		return repositories.ErrRegistrationDuplicate
	}
	f.nextID++
	reg.ID = f.nextID
	reg.RegisteredAt = time.Now()
	f.pairs[key] = *reg
	return nil
}

func (f *fakeRegistrationRepo) CountRegistered(_ context.Context, _ repositories.SQLExecutor, tournamentID int, teamIDs ...int) (int, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	count := 0
	for _, teamID := range teamIDs {
		if _, ok := f.pairs[registrationKey{teamID: teamID, tournamentID: tournamentID}]; ok {
			count++
		}
	}
	return count, nil
}

func (f *fakeRegistrationRepo) ListByTournament(_ context.Context, tournamentID int) ([]models.Registration, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	regs := make([]models.Registration, 0)
	for key, reg := range f.pairs {
		if key.tournamentID == tournamentID {
			regs = append(regs, reg)
		}
	}
	return regs, nil
}

func (f *fakeRegistrationRepo) register(teamID, tournamentID int) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.nextID++
	f.pairs[registrationKey{teamID: teamID, tournamentID: tournamentID}] = models.Registration{
		ID: f.nextID, TeamID: teamID, TournamentID: tournamentID, RegisteredAt: time.Now(),
	}
}

var errScoreInsertFailed = errors.New("score insert failed")

type fakeMatchRepo struct {
	mu      sync.Mutex
	nextID  int
	matches []models.Match
	scores  []models.Score

	// failScoreAfter fails InsertScore once n inserts have succeeded.
	// Negative disables the failure.
	failScoreAfter int
}

func newFakeMatchRepo() *fakeMatchRepo {
	return &fakeMatchRepo{failScoreAfter: -1}
}

func (f *fakeMatchRepo) Create(_ context.Context, _ repositories.SQLExecutor, m *models.Match) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.nextID++
	m.ID = f.nextID
	m.CreatedAt = time.Now()
	f.matches = append(f.matches, *m)
	return nil
}

func (f *fakeMatchRepo) InsertScore(_ context.Context, _ repositories.SQLExecutor, s *models.Score) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.failScoreAfter >= 0 && len(f.scores) >= f.failScoreAfter {
		return errScoreInsertFailed
	}
	f.scores = append(f.scores, *s)
	return nil
}

func (f *fakeMatchRepo) GetByID(_ context.Context, id int) (*models.Match, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	for i := range f.matches {
		if f.matches[i].ID == id {
			m := f.matches[i]
			return &m, nil
		}
	}
	return nil, repositories.ErrMatchNotFound
}

func (f *fakeMatchRepo) ListSummaries(_ context.Context, _ *int, _ int) ([]models.MatchSummary, error) {
	return nil, nil
}

type fakeStandingsRepo struct {
	tallies map[int][]models.TeamTally
	allTime map[int]repositories.AllTimeTally
}

func newFakeStandingsRepo() *fakeStandingsRepo {
	return &fakeStandingsRepo{
		tallies: make(map[int][]models.TeamTally),
		allTime: make(map[int]repositories.AllTimeTally),
	}
}

func (f *fakeStandingsRepo) TournamentTallies(_ context.Context, tournamentID int) ([]models.TeamTally, error) {
	return f.tallies[tournamentID], nil
}

func (f *fakeStandingsRepo) TeamAllTimeTally(_ context.Context, teamID int) (*repositories.AllTimeTally, error) {
	tally, ok := f.allTime[teamID]
	if !ok {
		return nil, repositories.ErrTeamNotFound
	}
	return &tally, nil
}

func (f *fakeStandingsRepo) AllTeamTallies(_ context.Context) ([]repositories.AllTimeTally, error) {
	all := make([]repositories.AllTimeTally, 0, len(f.allTime))
	for _, tally := range f.allTime {
		all = append(all, tally)
	}
	return all, nil
}

func (f *fakeStandingsRepo) TeamTournamentHistory(_ context.Context, _ int) ([]models.TournamentStint, error) {
	return nil, nil
}
