package services

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/esportshub/arena/models"
	"github.com/esportshub/arena/repositories"
	"github.com/esportshub/arena/storage"
	"golang.org/x/sync/errgroup"
)

// TeamDetails is the full team profile view: roster, all-time performance and
// per-tournament history.
type TeamDetails struct {
	Team    *models.Team             `json:"team"`
	Summary *models.TeamSummary      `json:"summary"`
	History []models.TournamentStint `json:"history"`
}

type TeamService interface {
	CreateTeam(ctx context.Context, team *models.Team) error
	GetTeamByID(ctx context.Context, id int) (*models.Team, error)
	GetTeamDetails(ctx context.Context, id int) (*TeamDetails, error)
	ListTeams(ctx context.Context) ([]models.Team, error)
	AddPlayer(ctx context.Context, teamID, userID int, gameTag string) (*models.Player, error)
	UploadLogo(ctx context.Context, teamID int, contentType string, file io.Reader) (*models.Team, error)
}

type teamService struct {
	teamRepo      repositories.TeamRepository
	userRepo      repositories.UserRepository
	playerRepo    repositories.PlayerRepository
	standingsRepo repositories.StandingsRepository
	uploader      storage.FileUploader
}

func NewTeamService(
	teamRepo repositories.TeamRepository,
	userRepo repositories.UserRepository,
	playerRepo repositories.PlayerRepository,
	standingsRepo repositories.StandingsRepository,
	uploader storage.FileUploader,
) TeamService {
	return &teamService{
		teamRepo:      teamRepo,
		userRepo:      userRepo,
		playerRepo:    playerRepo,
		standingsRepo: standingsRepo,
		uploader:      uploader,
	}
}

func (s *teamService) CreateTeam(ctx context.Context, team *models.Team) error {
	team.Name = strings.TrimSpace(team.Name)
	if team.Name == "" {
		return ErrTeamNameRequired
	}

	// The captain must be a known user.
	captain, err := s.userRepo.GetByID(ctx, team.CaptainID)
	if err != nil {
		if errors.Is(err, repositories.ErrUserNotFound) {
			return ErrUserNotFound
		}
		return fmt.Errorf("failed to check captain: %w", err)
	}

	if err := s.teamRepo.Create(ctx, team); err != nil {
		switch {
		case errors.Is(err, repositories.ErrTeamNameConflict):
			return ErrTeamNameConflict
		case errors.Is(err, repositories.ErrTeamCaptainInvalid):
			return ErrUserNotFound
		}
		return fmt.Errorf("failed to create team: %w", err)
	}

	// The captain joins the roster automatically, tagged with their own name.
	player := &models.Player{UserID: captain.ID, TeamID: team.ID, GameTag: captain.Name}
	if err := s.playerRepo.Create(ctx, player); err != nil {
		return fmt.Errorf("failed to add captain to roster: %w", err)
	}

	populateTeamLogoURL(team, s.uploader)
	return nil
}

func (s *teamService) GetTeamByID(ctx context.Context, id int) (*models.Team, error) {
	team, err := s.teamRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, repositories.ErrTeamNotFound) {
			return nil, ErrTeamNotFound
		}
		return nil, fmt.Errorf("failed to get team: %w", err)
	}

	roster, err := s.playerRepo.ListByTeam(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("failed to load roster: %w", err)
	}
	team.Roster = roster

	captain, err := s.userRepo.GetByID(ctx, team.CaptainID)
	if err == nil {
		captain.PasswordHash = ""
		team.Captain = captain
	}

	populateTeamLogoURL(team, s.uploader)
	return team, nil
}

// GetTeamDetails assembles the profile view. The three reads are independent,
// so they run concurrently; each observes some committed snapshot of the facts.
func (s *teamService) GetTeamDetails(ctx context.Context, id int) (*TeamDetails, error) {
	details := &TeamDetails{}

	g, gCtx := errgroup.WithContext(ctx)

	g.Go(func() error {
		team, err := s.GetTeamByID(gCtx, id)
		if err != nil {
			return err
		}
		details.Team = team
		return nil
	})

	g.Go(func() error {
		tally, err := s.standingsRepo.TeamAllTimeTally(gCtx, id)
		if err != nil {
			if errors.Is(err, repositories.ErrTeamNotFound) {
				return ErrTeamNotFound
			}
			return fmt.Errorf("failed to load team tally: %w", err)
		}
		details.Summary = summarize(tally)
		return nil
	})

	g.Go(func() error {
		history, err := s.standingsRepo.TeamTournamentHistory(gCtx, id)
		if err != nil {
			return fmt.Errorf("failed to load tournament history: %w", err)
		}
		details.History = history
		return nil
	})

	if err := g.Wait(); err != nil {
		return nil, err
	}
	return details, nil
}

func (s *teamService) ListTeams(ctx context.Context) ([]models.Team, error) {
	teams, err := s.teamRepo.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list teams: %w", err)
	}
	for i := range teams {
		populateTeamLogoURL(&teams[i], s.uploader)
	}
	return teams, nil
}

func (s *teamService) AddPlayer(ctx context.Context, teamID, userID int, gameTag string) (*models.Player, error) {
	gameTag = strings.TrimSpace(gameTag)
	if gameTag == "" {
		return nil, fmt.Errorf("%w: game tag is required", ErrValidationFailed)
	}

	player := &models.Player{UserID: userID, TeamID: teamID, GameTag: gameTag}
	if err := s.playerRepo.Create(ctx, player); err != nil {
		switch {
		case errors.Is(err, repositories.ErrPlayerConflict):
			return nil, ErrPlayerAlreadyOnTeam
		case errors.Is(err, repositories.ErrPlayerUserInvalid):
			return nil, ErrUserNotFound
		case errors.Is(err, repositories.ErrPlayerTeamInvalid):
			return nil, ErrTeamNotFound
		}
		return nil, fmt.Errorf("failed to add player: %w", err)
	}
	return player, nil
}

func (s *teamService) UploadLogo(ctx context.Context, teamID int, contentType string, file io.Reader) (*models.Team, error) {
	if s.uploader == nil {
		return nil, fmt.Errorf("%w: logo uploads are not configured", ErrValidationFailed)
	}

	team, err := s.teamRepo.GetByID(ctx, teamID)
	if err != nil {
		if errors.Is(err, repositories.ErrTeamNotFound) {
			return nil, ErrTeamNotFound
		}
		return nil, fmt.Errorf("failed to get team: %w", err)
	}

	ext, err := GetExtensionFromContentType(contentType)
	if err != nil {
		return nil, err
	}

	key := fmt.Sprintf("teams/%d/logo%s", teamID, ext)
	result, err := s.uploader.Upload(ctx, key, contentType, file)
	if err != nil {
		return nil, fmt.Errorf("failed to upload logo: %w", err)
	}

	oldKey := team.LogoKey
	if err := s.teamRepo.UpdateLogoKey(ctx, teamID, &result.Key); err != nil {
		return nil, fmt.Errorf("failed to store logo key: %w", err)
	}
	if oldKey != nil && *oldKey != result.Key {
		// Best effort: the new logo is already live.
		_ = s.uploader.Delete(ctx, *oldKey)
	}

	team.LogoKey = &result.Key
	populateTeamLogoURL(team, s.uploader)
	return team, nil
}
