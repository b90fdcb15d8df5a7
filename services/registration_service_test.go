package services

import (
	"context"
	"errors"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRegisterTeam_Success(t *testing.T) {
	svc := NewRegistrationService(newFakeRegistrationRepo(), newFakeTeamRepo(10), newFakeTournamentRepo(1))

	reg, err := svc.RegisterTeam(context.Background(), 10, 1)
	require.NoError(t, err)
	assert.Equal(t, 10, reg.TeamID)
	assert.Equal(t, 1, reg.TournamentID)
	assert.False(t, reg.RegisteredAt.IsZero())
}

func TestRegisterTeam_DuplicateConflicts(t *testing.T) {
	svc := NewRegistrationService(newFakeRegistrationRepo(), newFakeTeamRepo(10), newFakeTournamentRepo(1))

	_, err := svc.RegisterTeam(context.Background(), 10, 1)
	require.NoError(t, err)

	_, err = svc.RegisterTeam(context.Background(), 10, 1)
	assert.ErrorIs(t, err, ErrRegistrationConflict)
}

func TestRegisterTeam_UnknownTeam(t *testing.T) {
	svc := NewRegistrationService(newFakeRegistrationRepo(), newFakeTeamRepo(), newFakeTournamentRepo(1))

	_, err := svc.RegisterTeam(context.Background(), 99, 1)
	assert.ErrorIs(t, err, ErrTeamNotFound)
}

func TestRegisterTeam_UnknownTournament(t *testing.T) {
	svc := NewRegistrationService(newFakeRegistrationRepo(), newFakeTeamRepo(10), newFakeTournamentRepo())

	_, err := svc.RegisterTeam(context.Background(), 10, 99)
	assert.ErrorIs(t, err, ErrTournamentNotFound)
}

func TestRegisterTeam_SameTeamDifferentTournaments(t *testing.T) {
	svc := NewRegistrationService(newFakeRegistrationRepo(), newFakeTeamRepo(10), newFakeTournamentRepo(1, 2))

	_, err := svc.RegisterTeam(context.Background(), 10, 1)
	require.NoError(t, err)
	_, err = svc.RegisterTeam(context.Background(), 10, 2)
	assert.NoError(t, err)
}

// Concurrent registrations of the same pair must resolve to exactly one
// success, with every loser seeing the conflict error.
func TestRegisterTeam_ConcurrentSamePair(t *testing.T) {
	const attempts = 50

	svc := NewRegistrationService(newFakeRegistrationRepo(), newFakeTeamRepo(10), newFakeTournamentRepo(1))

	var wg sync.WaitGroup
	results := make([]error, attempts)
	for i := 0; i < attempts; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			_, results[i] = svc.RegisterTeam(context.Background(), 10, 1)
		}(i)
	}
	wg.Wait()

	successes, conflicts := 0, 0
	for _, err := range results {
		switch {
		case err == nil:
			successes++
		case errors.Is(err, ErrRegistrationConflict):
			conflicts++
		default:
			t.Fatalf("unexpected error: %v", err)
		}
	}
	assert.Equal(t, 1, successes)
	assert.Equal(t, attempts-1, conflicts)
}
