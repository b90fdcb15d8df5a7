package handlers

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/esportshub/arena/services"
)

type StandingsHandler struct {
	standingsService services.StandingsService
	dashboardService services.DashboardService
}

func NewStandingsHandler(standingsService services.StandingsService, dashboardService services.DashboardService) *StandingsHandler {
	return &StandingsHandler{
		standingsService: standingsService,
		dashboardService: dashboardService,
	}
}

// Leaderboard returns ranked standings for one tournament.
func (h *StandingsHandler) Leaderboard(w http.ResponseWriter, r *http.Request) {
	tournamentID, err := getIDFromURL(r, "tournamentID")
	if err != nil {
		badRequestResponse(w, r, err)
		return
	}

	rows, err := h.standingsService.Leaderboard(r.Context(), tournamentID)
	if err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}

	if err := writeJSON(w, http.StatusOK, jsonResponse{"leaderboard": rows}, nil); err != nil {
		serverErrorResponse(w, r, err)
	}
}

// TeamSummary returns the cross-tournament performance card for one team.
func (h *StandingsHandler) TeamSummary(w http.ResponseWriter, r *http.Request) {
	teamID, err := getIDFromURL(r, "teamID")
	if err != nil {
		badRequestResponse(w, r, err)
		return
	}

	summary, err := h.standingsService.TeamSummary(r.Context(), teamID)
	if err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}

	if err := writeJSON(w, http.StatusOK, jsonResponse{"team": summary}, nil); err != nil {
		serverErrorResponse(w, r, err)
	}
}

// TopTeams returns the globally best performing teams, most wins first.
func (h *StandingsHandler) TopTeams(w http.ResponseWriter, r *http.Request) {
	limit := 0
	if raw := r.URL.Query().Get("limit"); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil || parsed < 0 {
			badRequestResponse(w, r, errors.New("invalid limit parameter"))
			return
		}
		limit = parsed
	}

	teams, err := h.standingsService.TopTeams(r.Context(), limit)
	if err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}

	if err := writeJSON(w, http.StatusOK, jsonResponse{"teams": teams}, nil); err != nil {
		serverErrorResponse(w, r, err)
	}
}

// Home serves the landing page payload: upcoming and ongoing tournaments
// alongside the current top teams.
func (h *StandingsHandler) Home(w http.ResponseWriter, r *http.Request) {
	dashboard, err := h.dashboardService.Home(r.Context())
	if err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}

	if err := writeJSON(w, http.StatusOK, dashboard, nil); err != nil {
		serverErrorResponse(w, r, err)
	}
}
