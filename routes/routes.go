package routes

import (
	"github.com/esportshub/arena/handlers"
	"github.com/esportshub/arena/middleware"
	"github.com/go-chi/chi/v5"
	chiMiddleware "github.com/go-chi/chi/v5/middleware" // Alias to avoid conflict
	"github.com/go-chi/cors"
	httpSwagger "github.com/swaggo/http-swagger"
)

func SetupRoutes(
	router *chi.Mux,
	jwtSecret string,
	authHandler *handlers.AuthHandler,
	gameHandler *handlers.GameHandler,
	teamHandler *handlers.TeamHandler,
	tournamentHandler *handlers.TournamentHandler,
	matchHandler *handlers.MatchHandler,
	standingsHandler *handlers.StandingsHandler,
	webSocketHandler *handlers.WebSocketHandler,
) {
	router.Use(chiMiddleware.RequestID)
	router.Use(chiMiddleware.Logger)
	router.Use(chiMiddleware.Recoverer)
	router.Use(cors.Handler(cors.Options{
		AllowedOrigins:   []string{"*"},
		AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type"},
		AllowCredentials: false,
		MaxAge:           300,
	}))

	router.Get("/swagger/*", httpSwagger.Handler())

	router.Post("/auth/register", authHandler.Register)
	router.Post("/auth/login", authHandler.Login)

	// Landing page payload: upcoming and ongoing tournaments plus top teams.
	router.Get("/", standingsHandler.Home)

	router.Route("/games", func(r chi.Router) {
		r.Get("/", gameHandler.List)

		r.Group(func(r chi.Router) {
			r.Use(middleware.Authenticate([]byte(jwtSecret)))
			r.Use(middleware.Authorize("admin", "organizer"))

			r.Post("/", gameHandler.Create)
		})
	})

	router.Route("/teams", func(r chi.Router) {
		r.Get("/", teamHandler.List)
		r.Get("/{teamID}", teamHandler.Details)

		r.Group(func(r chi.Router) {
			r.Use(middleware.Authenticate([]byte(jwtSecret)))

			r.Post("/", teamHandler.Create)
			r.Post("/{teamID}/players", teamHandler.AddPlayer)
			r.Post("/{teamID}/logo", teamHandler.UploadLogo)
		})
	})

	router.Route("/tournaments", func(r chi.Router) {
		r.Get("/", tournamentHandler.List)
		r.Get("/{tournamentID}", tournamentHandler.Get)
		r.Get("/{tournamentID}/registrations", tournamentHandler.ListRegistrations)
		r.Get("/{tournamentID}/matches", matchHandler.ListByTournament)
		r.Get("/{tournamentID}/standings", tournamentHandler.Standings)

		r.Group(func(r chi.Router) {
			r.Use(middleware.Authenticate([]byte(jwtSecret)))

			r.Post("/{tournamentID}/registrations", tournamentHandler.RegisterTeam)
		})

		r.Group(func(r chi.Router) {
			r.Use(middleware.Authenticate([]byte(jwtSecret)))
			r.Use(middleware.Authorize("admin", "organizer"))

			r.Post("/", tournamentHandler.Create)
			r.Post("/{tournamentID}/matches", matchHandler.Record)
		})
	})

	router.Route("/matches", func(r chi.Router) {
		r.Get("/{matchID}", matchHandler.Get)
	})

	// Read-only JSON endpoints consumed by the dashboard widgets.
	router.Route("/api", func(r chi.Router) {
		r.Get("/tournaments/{tournamentID}/leaderboard", standingsHandler.Leaderboard)
		r.Get("/teams/top", standingsHandler.TopTeams)
		r.Get("/teams/{teamID}/summary", standingsHandler.TeamSummary)
		r.Get("/matches/recent", matchHandler.ListRecent)
	})

	router.Get("/ws/tournaments/{tournamentID}", webSocketHandler.ServeTournament)
}
