package repositories

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/esportshub/arena/models"
)

// AllTimeTally is a team's raw aggregate across every tournament it entered,
// plus the profile fields the team summary view needs.
type AllTimeTally struct {
	models.TeamTally
	CaptainName             string
	TournamentsParticipated int
}

// StandingsRepository reads derived statistics straight from the match and
// score facts. Nothing here is stored: every call recomputes from the live
// tables, so standings can never drift from the recorded results.
type StandingsRepository interface {
	TournamentTallies(ctx context.Context, tournamentID int) ([]models.TeamTally, error)
	TeamAllTimeTally(ctx context.Context, teamID int) (*AllTimeTally, error)
	AllTeamTallies(ctx context.Context) ([]AllTimeTally, error)
	TeamTournamentHistory(ctx context.Context, teamID int) ([]models.TournamentStint, error)
}

type postgresStandingsRepository struct {
	db *sql.DB
}

func NewPostgresStandingsRepository(db *sql.DB) StandingsRepository {
	return &postgresStandingsRepository{db: db}
}

// tallySelectSQL aggregates completed matches for one team per output row.
// COUNT(m.id) ignores NULLs, so a team with no completed matches yields zeros
// from the LEFT JOIN rather than disappearing.
const tallySelectSQL = `
	COUNT(m.id) AS matches_played,
	COUNT(m.id) FILTER (WHERE m.winner_id = t.id) AS wins,
	COUNT(m.id) FILTER (WHERE m.winner_id IS NOT NULL AND m.winner_id <> t.id) AS losses,
	COUNT(m.id) FILTER (WHERE m.winner_id IS NULL) AS draws,
	COALESCE(SUM(s.score), 0) AS total_score`

func (r *postgresStandingsRepository) TournamentTallies(ctx context.Context, tournamentID int) ([]models.TeamTally, error) {
	query := fmt.Sprintf(`
		SELECT t.id, t.name, %s
		FROM registrations r
		JOIN teams t ON t.id = r.team_id
		LEFT JOIN matches m ON m.tournament_id = r.tournament_id
			AND m.status = 'completed'
			AND t.id IN (m.team1_id, m.team2_id)
		LEFT JOIN scores s ON s.match_id = m.id AND s.team_id = t.id
		WHERE r.tournament_id = $1
		GROUP BY t.id, t.name`, tallySelectSQL)

	rows, err := r.db.QueryContext(ctx, query, tournamentID)
	if err != nil {
		return nil, fmt.Errorf("failed to query tournament tallies: %w", err)
	}
	defer rows.Close()

	tallies := make([]models.TeamTally, 0)
	for rows.Next() {
		var tt models.TeamTally
		if err := rows.Scan(&tt.TeamID, &tt.TeamName, &tt.MatchesPlayed, &tt.Wins, &tt.Losses, &tt.Draws, &tt.TotalScore); err != nil {
			return nil, fmt.Errorf("failed to scan tally row: %w", err)
		}
		tallies = append(tallies, tt)
	}
	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating tally rows: %w", err)
	}
	return tallies, nil
}

func (r *postgresStandingsRepository) TeamAllTimeTally(ctx context.Context, teamID int) (*AllTimeTally, error) {
	query := fmt.Sprintf(`
		SELECT t.id, t.name, u.name,
		       (SELECT COUNT(*) FROM registrations r WHERE r.team_id = t.id) AS tournaments_participated,
		       %s
		FROM teams t
		JOIN users u ON u.id = t.captain_id
		LEFT JOIN matches m ON m.status = 'completed' AND t.id IN (m.team1_id, m.team2_id)
		LEFT JOIN scores s ON s.match_id = m.id AND s.team_id = t.id
		WHERE t.id = $1
		GROUP BY t.id, t.name, u.name`, tallySelectSQL)

	var at AllTimeTally
	err := r.db.QueryRowContext(ctx, query, teamID).Scan(
		&at.TeamID, &at.TeamName, &at.CaptainName, &at.TournamentsParticipated,
		&at.MatchesPlayed, &at.Wins, &at.Losses, &at.Draws, &at.TotalScore,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrTeamNotFound
		}
		return nil, fmt.Errorf("failed to query all-time tally: %w", err)
	}
	return &at, nil
}

func (r *postgresStandingsRepository) AllTeamTallies(ctx context.Context) ([]AllTimeTally, error) {
	query := fmt.Sprintf(`
		SELECT t.id, t.name, u.name,
		       (SELECT COUNT(*) FROM registrations r WHERE r.team_id = t.id) AS tournaments_participated,
		       %s
		FROM teams t
		JOIN users u ON u.id = t.captain_id
		LEFT JOIN matches m ON m.status = 'completed' AND t.id IN (m.team1_id, m.team2_id)
		LEFT JOIN scores s ON s.match_id = m.id AND s.team_id = t.id
		GROUP BY t.id, t.name, u.name`, tallySelectSQL)

	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to query team tallies: %w", err)
	}
	defer rows.Close()

	tallies := make([]AllTimeTally, 0)
	for rows.Next() {
		var at AllTimeTally
		if err := rows.Scan(
			&at.TeamID, &at.TeamName, &at.CaptainName, &at.TournamentsParticipated,
			&at.MatchesPlayed, &at.Wins, &at.Losses, &at.Draws, &at.TotalScore,
		); err != nil {
			return nil, fmt.Errorf("failed to scan team tally row: %w", err)
		}
		tallies = append(tallies, at)
	}
	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating team tally rows: %w", err)
	}
	return tallies, nil
}

func (r *postgresStandingsRepository) TeamTournamentHistory(ctx context.Context, teamID int) ([]models.TournamentStint, error) {
	query := `
		SELECT tn.id, tn.name, g.title, tn.start_date, tn.end_date,
		       COUNT(m.id) AS matches_played,
		       COUNT(m.id) FILTER (WHERE m.winner_id = $1) AS wins
		FROM registrations r
		JOIN tournaments tn ON tn.id = r.tournament_id
		JOIN games g ON g.id = tn.game_id
		LEFT JOIN matches m ON m.tournament_id = tn.id
			AND m.status = 'completed'
			AND $1 IN (m.team1_id, m.team2_id)
		WHERE r.team_id = $1
		GROUP BY tn.id, tn.name, g.title, tn.start_date, tn.end_date
		ORDER BY tn.start_date DESC`

	rows, err := r.db.QueryContext(ctx, query, teamID)
	if err != nil {
		return nil, fmt.Errorf("failed to query tournament history: %w", err)
	}
	defer rows.Close()

	stints := make([]models.TournamentStint, 0)
	for rows.Next() {
		var st models.TournamentStint
		if err := rows.Scan(&st.TournamentID, &st.Name, &st.Game, &st.StartDate, &st.EndDate, &st.MatchesPlayed, &st.Wins); err != nil {
			return nil, fmt.Errorf("failed to scan tournament history row: %w", err)
		}
		stints = append(stints, st)
	}
	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating tournament history rows: %w", err)
	}
	return stints, nil
}
