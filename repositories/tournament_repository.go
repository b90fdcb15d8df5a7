package repositories

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/esportshub/arena/models"
	"github.com/lib/pq"
)

var (
	ErrTournamentNotFound    = errors.New("tournament not found")
	ErrTournamentGameInvalid = errors.New("tournament game conflict or invalid")
)

type ListTournamentsFilter struct {
	Status *models.TournamentStatus
	GameID *int
	Limit  int
	Offset int
}

type TournamentRepository interface {
	Create(ctx context.Context, tournament *models.Tournament) error
	GetByID(ctx context.Context, id int) (*models.Tournament, error)
	List(ctx context.Context, filter ListTournamentsFilter) ([]models.Tournament, error)
	// ShiftStatusesByDate moves upcoming tournaments whose start date has passed
	// to ongoing, and ongoing tournaments whose end date has passed to completed.
	// Returns the number of rows updated.
	ShiftStatusesByDate(ctx context.Context, now time.Time) (int64, error)
}

type postgresTournamentRepository struct {
	db *sql.DB
}

func NewPostgresTournamentRepository(db *sql.DB) TournamentRepository {
	return &postgresTournamentRepository{db: db}
}

func (r *postgresTournamentRepository) Create(ctx context.Context, t *models.Tournament) error {
	query := `
		INSERT INTO tournaments (name, game_id, start_date, end_date, prize_pool, status)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING id, created_at`

	err := r.db.QueryRowContext(ctx, query,
		t.Name, t.GameID, t.StartDate, t.EndDate, t.PrizePool, t.Status,
	).Scan(&t.ID, &t.CreatedAt)

	if err != nil {
		var pqErr *pq.Error
		if errors.As(err, &pqErr) && pqErr.Code == "23503" { // foreign_key_violation
			return ErrTournamentGameInvalid
		}
		return fmt.Errorf("failed to create tournament: %w", err)
	}
	return nil
}

func (r *postgresTournamentRepository) GetByID(ctx context.Context, id int) (*models.Tournament, error) {
	query := `
		SELECT t.id, t.name, t.game_id, t.start_date, t.end_date, t.prize_pool, t.status, t.created_at,
		       g.id, g.title, g.genre
		FROM tournaments t
		JOIN games g ON g.id = t.game_id
		WHERE t.id = $1`

	t := &models.Tournament{}
	g := &models.Game{}
	err := r.db.QueryRowContext(ctx, query, id).Scan(
		&t.ID, &t.Name, &t.GameID, &t.StartDate, &t.EndDate, &t.PrizePool, &t.Status, &t.CreatedAt,
		&g.ID, &g.Title, &g.Genre,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrTournamentNotFound
		}
		return nil, fmt.Errorf("failed to find tournament: %w", err)
	}
	t.Game = g
	return t, nil
}

func (r *postgresTournamentRepository) List(ctx context.Context, filter ListTournamentsFilter) ([]models.Tournament, error) {
	var queryBuilder strings.Builder
	queryBuilder.WriteString(`
		SELECT t.id, t.name, t.game_id, t.start_date, t.end_date, t.prize_pool, t.status, t.created_at,
		       g.id, g.title, g.genre
		FROM tournaments t
		JOIN games g ON g.id = t.game_id
		WHERE 1=1`)

	args := []interface{}{}
	argID := 1

	if filter.Status != nil {
		queryBuilder.WriteString(fmt.Sprintf(" AND t.status = $%d", argID))
		args = append(args, *filter.Status)
		argID++
	}
	if filter.GameID != nil {
		queryBuilder.WriteString(fmt.Sprintf(" AND t.game_id = $%d", argID))
		args = append(args, *filter.GameID)
		argID++
	}

	queryBuilder.WriteString(" ORDER BY t.start_date ASC")

	if filter.Limit > 0 {
		queryBuilder.WriteString(fmt.Sprintf(" LIMIT $%d", argID))
		args = append(args, filter.Limit)
		argID++
	}
	if filter.Offset > 0 {
		queryBuilder.WriteString(fmt.Sprintf(" OFFSET $%d", argID))
		args = append(args, filter.Offset)
	}

	rows, err := r.db.QueryContext(ctx, queryBuilder.String(), args...)
	if err != nil {
		return nil, fmt.Errorf("failed to list tournaments: %w", err)
	}
	defer rows.Close()

	tournaments := make([]models.Tournament, 0)
	for rows.Next() {
		var t models.Tournament
		var g models.Game
		if err := rows.Scan(
			&t.ID, &t.Name, &t.GameID, &t.StartDate, &t.EndDate, &t.PrizePool, &t.Status, &t.CreatedAt,
			&g.ID, &g.Title, &g.Genre,
		); err != nil {
			return nil, fmt.Errorf("failed to scan tournament row: %w", err)
		}
		t.Game = &g
		tournaments = append(tournaments, t)
	}
	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating tournament rows: %w", err)
	}
	return tournaments, nil
}

func (r *postgresTournamentRepository) ShiftStatusesByDate(ctx context.Context, now time.Time) (int64, error) {
	query := `
		UPDATE tournaments SET status = CASE
			WHEN status = 'upcoming' AND start_date <= $1 AND end_date > $1 THEN 'ongoing'
			WHEN status IN ('upcoming', 'ongoing') AND end_date <= $1 THEN 'completed'
			ELSE status
		END
		WHERE (status = 'upcoming' AND start_date <= $1)
		   OR (status = 'ongoing' AND end_date <= $1)`

	result, err := r.db.ExecContext(ctx, query, now)
	if err != nil {
		return 0, fmt.Errorf("failed to shift tournament statuses: %w", err)
	}
	affected, err := result.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("failed to check affected rows: %w", err)
	}
	return affected, nil
}
