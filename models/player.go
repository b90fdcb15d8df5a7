package models

import "time"

// Player is a user's membership on a team roster.
type Player struct {
	ID       int       `json:"id" db:"id"`
	UserID   int       `json:"user_id" db:"user_id"`
	TeamID   int       `json:"team_id" db:"team_id"`
	GameTag  string    `json:"game_tag" db:"game_tag"`
	JoinedAt time.Time `json:"joined_at" db:"joined_at"`

	User *User `json:"user,omitempty" db:"-"`
}
