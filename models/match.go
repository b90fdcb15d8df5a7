package models

import "time"

type MatchStatus string

const (
	MatchStatusScheduled MatchStatus = "scheduled"
	MatchStatusCompleted MatchStatus = "completed"
)

// Match is a single contest between two teams in a tournament round. A completed
// match always carries exactly two Score rows; WinnerID is nil for a draw or
// while the match is still scheduled.
type Match struct {
	ID           int         `json:"id" db:"id"`
	TournamentID int         `json:"tournament_id" db:"tournament_id"`
	Team1ID      int         `json:"team1_id" db:"team1_id"`
	Team2ID      int         `json:"team2_id" db:"team2_id"`
	MatchTime    time.Time   `json:"match_time" db:"match_time"`
	Round        int         `json:"round" db:"round"`
	Status       MatchStatus `json:"status" db:"status"`
	WinnerID     *int        `json:"winner_id,omitempty" db:"winner_id"`
	CreatedAt    time.Time   `json:"created_at" db:"created_at"`

	Scores []Score `json:"scores,omitempty" db:"-"`
}

// Score is one team's numeric result in a match.
type Score struct {
	MatchID int `json:"match_id" db:"match_id"`
	TeamID  int `json:"team_id" db:"team_id"`
	Score   int `json:"score" db:"score"`
}

// MatchSummary is the read model for match listings: a completed match joined
// with team and winner names and both scores.
type MatchSummary struct {
	MatchID      int       `json:"match_id"`
	TournamentID int       `json:"tournament_id"`
	Tournament   string    `json:"tournament"`
	Team1        string    `json:"team1"`
	Team2        string    `json:"team2"`
	Team1Score   int       `json:"team1_score"`
	Team2Score   int       `json:"team2_score"`
	Winner       *string   `json:"winner,omitempty"`
	MatchTime    time.Time `json:"match_time"`
	Round        int       `json:"round"`
}
