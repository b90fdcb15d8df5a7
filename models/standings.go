package models

import "time"

// TeamTally is the raw per-team aggregate over completed matches, as grouped by
// the database. Derived metrics (average score, win rate) are computed on top of
// it so they are always recomputed from facts and never stored.
type TeamTally struct {
	TeamID        int    `json:"team_id" db:"team_id"`
	TeamName      string `json:"team_name" db:"team_name"`
	MatchesPlayed int    `json:"matches_played" db:"matches_played"`
	Wins          int    `json:"wins" db:"wins"`
	Losses        int    `json:"losses" db:"losses"`
	Draws         int    `json:"draws" db:"draws"`
	TotalScore    int    `json:"total_score" db:"total_score"`
}

// LeaderboardRow is one team's standing within a single tournament.
type LeaderboardRow struct {
	TeamTally
	AvgScore          float64 `json:"avg_score"`
	WinRatePercentage float64 `json:"win_rate_percentage"`
}

// TeamSummary is a team's all-time performance across every tournament it
// entered, plus profile fields.
type TeamSummary struct {
	TeamTally
	CaptainName             string  `json:"captain_name"`
	TournamentsParticipated int     `json:"tournaments_participated"`
	AvgScoreAllTime         float64 `json:"avg_score_all_time"`
	OverallWinRate          float64 `json:"overall_win_rate"`
}

// TournamentStint is one entry in a team's tournament history.
type TournamentStint struct {
	TournamentID  int       `json:"tournament_id"`
	Name          string    `json:"name"`
	Game          string    `json:"game"`
	StartDate     time.Time `json:"start_date"`
	EndDate       time.Time `json:"end_date"`
	MatchesPlayed int       `json:"matches_played"`
	Wins          int       `json:"wins"`
}
