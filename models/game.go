package models

// Game is a title tournaments are played in (CS2, Dota 2, ...).
type Game struct {
	ID    int     `json:"id" db:"id"`
	Title string  `json:"title" db:"title"`
	Genre *string `json:"genre,omitempty" db:"genre"`
}
