package models

import "time"

// Registration is a team's entry into a tournament. At most one row exists per
// (team_id, tournament_id) pair, enforced by a unique constraint in the database.
// Rows are immutable once created.
type Registration struct {
	ID           int       `json:"id" db:"id"`
	TeamID       int       `json:"team_id" db:"team_id"`
	TournamentID int       `json:"tournament_id" db:"tournament_id"`
	RegisteredAt time.Time `json:"registered_at" db:"registered_at"`

	Team       *Team       `json:"team,omitempty" db:"-"`
	Tournament *Tournament `json:"tournament,omitempty" db:"-"`
}
