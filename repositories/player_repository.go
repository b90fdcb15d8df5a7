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
	ErrPlayerNotFound    = errors.New("player not found")
	ErrPlayerConflict    = errors.New("player conflict: user is already on this team")
	ErrPlayerUserInvalid = errors.New("player user conflict or invalid")
	ErrPlayerTeamInvalid = errors.New("player team conflict or invalid")
)

type PlayerRepository interface {
	Create(ctx context.Context, player *models.Player) error
	ListByTeam(ctx context.Context, teamID int) ([]models.Player, error)
	Delete(ctx context.Context, id int) error
}

type postgresPlayerRepository struct {
	db *sql.DB
}

func NewPostgresPlayerRepository(db *sql.DB) PlayerRepository {
	return &postgresPlayerRepository{db: db}
}

func (r *postgresPlayerRepository) Create(ctx context.Context, p *models.Player) error {
	query := `
		INSERT INTO players (user_id, team_id, game_tag)
		VALUES ($1, $2, $3)
		RETURNING id, joined_at`

	err := r.db.QueryRowContext(ctx, query, p.UserID, p.TeamID, p.GameTag).Scan(&p.ID, &p.JoinedAt)
	if err != nil {
		var pqErr *pq.Error
		if errors.As(err, &pqErr) {
			switch pqErr.Code {
			case "23505": // unique_violation
				if pqErr.Constraint == "players_user_id_team_id_key" {
					return ErrPlayerConflict
				}
			case "23503": // foreign_key_violation
				switch pqErr.Constraint {
				case "players_user_id_fkey":
					return ErrPlayerUserInvalid
				case "players_team_id_fkey":
					return ErrPlayerTeamInvalid
				}
			}
		}
		return fmt.Errorf("failed to create player: %w", err)
	}
	return nil
}

func (r *postgresPlayerRepository) ListByTeam(ctx context.Context, teamID int) ([]models.Player, error) {
	query := `
		SELECT p.id, p.user_id, p.team_id, p.game_tag, p.joined_at,
		       u.id, u.name, u.email, u.role, u.created_at
		FROM players p
		JOIN users u ON u.id = p.user_id
		WHERE p.team_id = $1
		ORDER BY p.joined_at ASC`

	rows, err := r.db.QueryContext(ctx, query, teamID)
	if err != nil {
		return nil, fmt.Errorf("failed to list players by team: %w", err)
	}
	defer rows.Close()

	players := make([]models.Player, 0)
	for rows.Next() {
		var p models.Player
		var u models.User
		if err := rows.Scan(
			&p.ID, &p.UserID, &p.TeamID, &p.GameTag, &p.JoinedAt,
			&u.ID, &u.Name, &u.Email, &u.Role, &u.CreatedAt,
		); err != nil {
			return nil, fmt.Errorf("failed to scan player row: %w", err)
		}
		p.User = &u
		players = append(players, p)
	}
	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating player rows: %w", err)
	}
	return players, nil
}

func (r *postgresPlayerRepository) Delete(ctx context.Context, id int) error {
	query := `DELETE FROM players WHERE id = $1`

	result, err := r.db.ExecContext(ctx, query, id)
	if err != nil {
		return fmt.Errorf("failed to delete player: %w", err)
	}
	return checkAffectedRows(result, ErrPlayerNotFound)
}
