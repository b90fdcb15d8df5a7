package models

// HomeDashboard backs the landing view: what is coming up, what is live, and
// who is winning overall.
type HomeDashboard struct {
	Upcoming []Tournament  `json:"upcoming"`
	Ongoing  []Tournament  `json:"ongoing"`
	TopTeams []TeamSummary `json:"top_teams"`
}
