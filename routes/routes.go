package routes

import (
	"net/http"

	_ "github.com/Dosada05/championship-manager/docs"
	"github.com/Dosada05/championship-manager/handlers"
	"github.com/Dosada05/championship-manager/middleware"
	"github.com/go-chi/chi/v5"
	chiMiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	httpSwagger "github.com/swaggo/http-swagger"
)

type Handlers struct {
	Auth       *handlers.AuthHandler
	Tournament *handlers.TournamentHandler
	Team       *handlers.TeamHandler
	Match      *handlers.MatchHandler
	Group      *handlers.GroupHandler
	WebSocket  *handlers.WebSocketHandler
}

// SetupRoutes mounts the API. Reads are public; every command requires an organizer token.
func SetupRoutes(router chi.Router, h Handlers, jwtSecret []byte, allowedOrigins []string) {
	router.Use(chiMiddleware.RequestID)
	router.Use(chiMiddleware.RealIP)
	router.Use(chiMiddleware.Logger)
	router.Use(chiMiddleware.Recoverer)
	router.Use(cors.Handler(cors.Options{
		AllowedOrigins:   allowedOrigins,
		AllowedMethods:   []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type"},
		ExposedHeaders:   []string{"Link"},
		AllowCredentials: true,
		MaxAge:           300,
	}))

	router.Get("/healthz", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("ok"))
	})
	router.Get("/swagger/*", httpSwagger.Handler(httpSwagger.URL("/swagger/doc.json")))
	router.Get("/ws/tournaments/{tournamentID}", h.WebSocket.ServeWs)

	router.Post("/auth/token", h.Auth.Login)

	authenticated := func(r chi.Router) {
		r.Use(middleware.Authenticate(jwtSecret))
		r.Use(middleware.Authorize(middleware.RoleOrganizer))
	}

	router.Route("/tournaments", func(r chi.Router) {
		r.Get("/", h.Tournament.ListTournaments)

		r.Route("/{tournamentID}", func(r chi.Router) {
			r.Get("/", h.Tournament.GetTournament)
			r.Get("/config", h.Tournament.GetConfig)
			r.Get("/standings", h.Tournament.GlobalStandings)
			r.Get("/phases/{phaseIndex}/standings", h.Tournament.PhaseStandings)
			r.Get("/phases/{phaseIndex}/advance", h.Tournament.CanAdvance)

			r.Get("/teams", h.Team.ListTeams)
			r.Get("/teams/{teamID}/group", h.Team.GetTeamGroup)
			r.Get("/teams/{teamID}/opponents", h.Team.ListEligibleOpponents)

			r.Get("/matches", h.Match.ListMatches)
			r.Get("/matchups/preview", h.Match.PreviewMatchup)

			r.Get("/groups", h.Group.GetAllocation)

			r.Group(func(r chi.Router) {
				authenticated(r)

				r.Put("/config", h.Tournament.Configure)
				r.Post("/phases/{phaseIndex}/advance", h.Tournament.AdvancePhase)

				r.Post("/teams", h.Team.AddTeam)
				r.Delete("/teams/{teamID}", h.Team.RemoveTeam)

				r.Post("/matches", h.Match.ScheduleMatch)
				r.Put("/matches/{matchID}/result", h.Match.RecordResult)
				r.Delete("/matches/{matchID}", h.Match.DeleteMatch)

				r.Put("/groups", h.Group.Initialize)
				r.Post("/groups/{groupIndex}/teams", h.Group.AssignTeam)
				r.Delete("/groups/{groupIndex}/teams/{teamID}", h.Group.UnassignTeam)
			})
		})
	})
}
