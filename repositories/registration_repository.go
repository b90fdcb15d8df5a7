package repositories

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/esportshub/arena/models"
	"github.com/lib/pq"
)

var (
	ErrRegistrationNotFound          = errors.New("registration not found")
	ErrRegistrationDuplicate         = errors.New("team already registered for this tournament")
	ErrRegistrationTeamInvalid       = errors.New("registration team conflict or invalid")
	ErrRegistrationTournamentInvalid = errors.New("registration tournament conflict or invalid")
)

type RegistrationRepository interface {
	// Create inserts the registration row. The unique constraint on
	// (team_id, tournament_id) makes the existence check and the insert a single
	// indivisible step: of two concurrent inserts for the same pair, exactly one
	// succeeds and the other gets ErrRegistrationDuplicate.
	Create(ctx context.Context, reg *models.Registration) error
	CountRegistered(ctx context.Context, exec SQLExecutor, tournamentID int, teamIDs ...int) (int, error)
	ListByTournament(ctx context.Context, tournamentID int) ([]models.Registration, error)
}

type postgresRegistrationRepository struct {
	db *sql.DB
}

func NewPostgresRegistrationRepository(db *sql.DB) RegistrationRepository {
	return &postgresRegistrationRepository{db: db}
}

func (r *postgresRegistrationRepository) Create(ctx context.Context, reg *models.Registration) error {
	query := `
		INSERT INTO registrations (team_id, tournament_id)
		VALUES ($1, $2)
		RETURNING id, registered_at`

	err := r.db.QueryRowContext(ctx, query, reg.TeamID, reg.TournamentID).Scan(&reg.ID, &reg.RegisteredAt)
	if err != nil {
		var pqErr *pq.Error
		if errors.As(err, &pqErr) {
			switch pqErr.Code {
			case "23505": // unique_violation
				if pqErr.Constraint == "registrations_team_id_tournament_id_key" {
					return ErrRegistrationDuplicate
				}
			case "23503": // foreign_key_violation
				switch pqErr.Constraint {
				case "registrations_team_id_fkey":
					return ErrRegistrationTeamInvalid
				case "registrations_tournament_id_fkey":
					return ErrRegistrationTournamentInvalid
				}
			}
		}
		return fmt.Errorf("failed to create registration: %w", err)
	}
	return nil
}

func (r *postgresRegistrationRepository) CountRegistered(ctx context.Context, exec SQLExecutor, tournamentID int, teamIDs ...int) (int, error) {
	if exec == nil {
		exec = r.db
	}
	query := `SELECT COUNT(*) FROM registrations WHERE tournament_id = $1 AND team_id = ANY($2)`

	var count int
	err := exec.QueryRowContext(ctx, query, tournamentID, pq.Array(teamIDs)).Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("failed to count registrations: %w", err)
	}
	return count, nil
}

func (r *postgresRegistrationRepository) ListByTournament(ctx context.Context, tournamentID int) ([]models.Registration, error) {
	query := `
		SELECT r.id, r.team_id, r.tournament_id, r.registered_at,
		       t.id, t.name, t.captain_id, t.logo_key, t.created_at
		FROM registrations r
		JOIN teams t ON t.id = r.team_id
		WHERE r.tournament_id = $1
		ORDER BY r.registered_at ASC`

	rows, err := r.db.QueryContext(ctx, query, tournamentID)
	if err != nil {
		return nil, fmt.Errorf("failed to list registrations: %w", err)
	}
	defer rows.Close()

	regs := make([]models.Registration, 0)
	for rows.Next() {
		var reg models.Registration
		var t models.Team
		if err := rows.Scan(
			&reg.ID, &reg.TeamID, &reg.TournamentID, &reg.RegisteredAt,
			&t.ID, &t.Name, &t.CaptainID, &t.LogoKey, &t.CreatedAt,
		); err != nil {
			return nil, fmt.Errorf("failed to scan registration row: %w", err)
		}
		reg.Team = &t
		regs = append(regs, reg)
	}
	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating registration rows: %w", err)
	}
	return regs, nil
}
