package repositories

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/esportshub/arena/models"
	"github.com/lib/pq"
)

var (
	ErrMatchNotFound          = errors.New("match not found")
	ErrMatchTournamentInvalid = errors.New("match tournament conflict or invalid")
	ErrMatchTeamInvalid       = errors.New("match team conflict or invalid")
	ErrMatchConstraintFailed  = errors.New("match violates a table constraint")
	ErrScoreConstraintFailed  = errors.New("score violates a table constraint")
)

type MatchRepository interface {
	// Create and InsertScore take an SQLExecutor so the recorder can run both
	// inside one transaction. A match row and its two score rows are a single
	// unit of work and must never be committed separately.
	Create(ctx context.Context, exec SQLExecutor, match *models.Match) error
	InsertScore(ctx context.Context, exec SQLExecutor, score *models.Score) error
	GetByID(ctx context.Context, id int) (*models.Match, error)
	ListSummaries(ctx context.Context, tournamentID *int, limit int) ([]models.MatchSummary, error)
}

type postgresMatchRepository struct {
	db *sql.DB
}

func NewPostgresMatchRepository(db *sql.DB) MatchRepository {
	return &postgresMatchRepository{db: db}
}

func (r *postgresMatchRepository) Create(ctx context.Context, exec SQLExecutor, m *models.Match) error {
	if exec == nil {
		exec = r.db
	}
	query := `
		INSERT INTO matches (tournament_id, team1_id, team2_id, match_time, round, status, winner_id)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		RETURNING id, created_at`

	err := exec.QueryRowContext(ctx, query,
		m.TournamentID,
		m.Team1ID,
		m.Team2ID,
		m.MatchTime,
		m.Round,
		m.Status,
		m.WinnerID,
	).Scan(&m.ID, &m.CreatedAt)

	return r.handleMatchError(err)
}

func (r *postgresMatchRepository) InsertScore(ctx context.Context, exec SQLExecutor, s *models.Score) error {
	if exec == nil {
		exec = r.db
	}
	query := `INSERT INTO scores (match_id, team_id, score) VALUES ($1, $2, $3)`

	_, err := exec.ExecContext(ctx, query, s.MatchID, s.TeamID, s.Score)
	if err != nil {
		var pqErr *pq.Error
		if errors.As(err, &pqErr) && (pqErr.Code == "23514" || pqErr.Code == "23503") {
			return ErrScoreConstraintFailed
		}
		return fmt.Errorf("failed to insert score: %w", err)
	}
	return nil
}

func (r *postgresMatchRepository) GetByID(ctx context.Context, id int) (*models.Match, error) {
	query := `
		SELECT id, tournament_id, team1_id, team2_id, match_time, round, status, winner_id, created_at
		FROM matches
		WHERE id = $1`

	m := &models.Match{}
	err := r.db.QueryRowContext(ctx, query, id).Scan(
		&m.ID, &m.TournamentID, &m.Team1ID, &m.Team2ID,
		&m.MatchTime, &m.Round, &m.Status, &m.WinnerID, &m.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrMatchNotFound
		}
		return nil, fmt.Errorf("failed to find match: %w", err)
	}

	scoresQuery := `SELECT match_id, team_id, score FROM scores WHERE match_id = $1 ORDER BY team_id ASC`
	rows, err := r.db.QueryContext(ctx, scoresQuery, id)
	if err != nil {
		return nil, fmt.Errorf("failed to load match scores: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var s models.Score
		if err := rows.Scan(&s.MatchID, &s.TeamID, &s.Score); err != nil {
			return nil, fmt.Errorf("failed to scan score row: %w", err)
		}
		m.Scores = append(m.Scores, s)
	}
	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating score rows: %w", err)
	}
	return m, nil
}

// ListSummaries returns completed matches joined with team and winner names,
// newest first. A nil tournamentID lists matches across all tournaments.
func (r *postgresMatchRepository) ListSummaries(ctx context.Context, tournamentID *int, limit int) ([]models.MatchSummary, error) {
	var queryBuilder strings.Builder
	queryBuilder.WriteString(`
		SELECT m.id, m.tournament_id, tn.name, t1.name, t2.name, s1.score, s2.score, tw.name, m.match_time, m.round
		FROM matches m
		JOIN tournaments tn ON tn.id = m.tournament_id
		JOIN teams t1 ON t1.id = m.team1_id
		JOIN teams t2 ON t2.id = m.team2_id
		JOIN scores s1 ON s1.match_id = m.id AND s1.team_id = m.team1_id
		JOIN scores s2 ON s2.match_id = m.id AND s2.team_id = m.team2_id
		LEFT JOIN teams tw ON tw.id = m.winner_id
		WHERE m.status = 'completed'`)

	args := []interface{}{}
	placeholderIndex := 1

	if tournamentID != nil {
		queryBuilder.WriteString(" AND m.tournament_id = $")
		queryBuilder.WriteString(strconv.Itoa(placeholderIndex))
		args = append(args, *tournamentID)
		placeholderIndex++
	}

	queryBuilder.WriteString(" ORDER BY m.match_time DESC")

	if limit > 0 {
		queryBuilder.WriteString(" LIMIT $")
		queryBuilder.WriteString(strconv.Itoa(placeholderIndex))
		args = append(args, limit)
	}

	rows, err := r.db.QueryContext(ctx, queryBuilder.String(), args...)
	if err != nil {
		return nil, fmt.Errorf("failed to list match summaries: %w", err)
	}
	defer rows.Close()

	summaries := make([]models.MatchSummary, 0)
	for rows.Next() {
		var ms models.MatchSummary
		if err := rows.Scan(
			&ms.MatchID, &ms.TournamentID, &ms.Tournament, &ms.Team1, &ms.Team2,
			&ms.Team1Score, &ms.Team2Score, &ms.Winner, &ms.MatchTime, &ms.Round,
		); err != nil {
			return nil, fmt.Errorf("failed to scan match summary row: %w", err)
		}
		summaries = append(summaries, ms)
	}
	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating match summary rows: %w", err)
	}
	return summaries, nil
}

func (r *postgresMatchRepository) handleMatchError(err error) error {
	if err == nil {
		return nil
	}
	var pqErr *pq.Error
	if errors.As(err, &pqErr) {
		switch pqErr.Code {
		case "23503": // foreign_key_violation
			switch pqErr.Constraint {
			case "matches_tournament_id_fkey":
				return ErrMatchTournamentInvalid
			case "matches_team1_id_fkey", "matches_team2_id_fkey", "matches_winner_id_fkey":
				return ErrMatchTeamInvalid
			}
		case "23514": // check_violation
			return ErrMatchConstraintFailed
		}
	}
	return fmt.Errorf("failed to create match: %w", err)
}
