package services

import (
	"context"
	"fmt"

	"github.com/esportshub/arena/models"
	"github.com/esportshub/arena/repositories"
	"golang.org/x/sync/errgroup"
)

const dashboardLimit = 5

type DashboardService interface {
	Home(ctx context.Context) (*models.HomeDashboard, error)
}

type dashboardService struct {
	tournamentRepo repositories.TournamentRepository
	standings      StandingsService
}

func NewDashboardService(tournamentRepo repositories.TournamentRepository, standings StandingsService) DashboardService {
	return &dashboardService{
		tournamentRepo: tournamentRepo,
		standings:      standings,
	}
}

func (s *dashboardService) Home(ctx context.Context) (*models.HomeDashboard, error) {
	dashboard := &models.HomeDashboard{}

	g, gCtx := errgroup.WithContext(ctx)

	g.Go(func() error {
		status := models.StatusUpcoming
		upcoming, err := s.tournamentRepo.List(gCtx, repositories.ListTournamentsFilter{Status: &status, Limit: dashboardLimit})
		if err != nil {
			return fmt.Errorf("failed to load upcoming tournaments: %w", err)
		}
		dashboard.Upcoming = upcoming
		return nil
	})

	g.Go(func() error {
		status := models.StatusOngoing
		ongoing, err := s.tournamentRepo.List(gCtx, repositories.ListTournamentsFilter{Status: &status})
		if err != nil {
			return fmt.Errorf("failed to load ongoing tournaments: %w", err)
		}
		dashboard.Ongoing = ongoing
		return nil
	})

	g.Go(func() error {
		top, err := s.standings.TopTeams(gCtx, dashboardLimit)
		if err != nil {
			return err
		}
		dashboard.TopTeams = top
		return nil
	})

	if err := g.Wait(); err != nil {
		return nil, err
	}
	return dashboard, nil
}
