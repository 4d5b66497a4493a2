package routes

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	chiMiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	httpSwagger "github.com/swaggo/http-swagger"

	_ "github.com/Dosada05/zone-cup/docs"
	"github.com/Dosada05/zone-cup/handlers"
	"github.com/Dosada05/zone-cup/middleware"
)

type Handlers struct {
	Auth       *handlers.AuthHandler
	Rules      *handlers.RulesHandler
	Teams      *handlers.TeamHandler
	Zones      *handlers.ZoneHandler
	Fixtures   *handlers.FixtureHandler
	Tournament *handlers.TournamentHandler
	WebSocket  *handlers.WebSocketHandler
}

// SetupRoutes вешает API на router. Все изменяющие запросы требуют токен администратора.
func SetupRoutes(router chi.Router, h Handlers, tokens middleware.TokenParser, corsOrigins []string) {
	router.Use(chiMiddleware.RequestID)
	router.Use(chiMiddleware.RealIP)
	router.Use(chiMiddleware.Logger)
	router.Use(chiMiddleware.Recoverer)

	router.Use(cors.Handler(cors.Options{
		AllowedOrigins:   corsOrigins,
		AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type"},
		ExposedHeaders:   []string{"Link"},
		AllowCredentials: true,
		MaxAge:           300,
	}))

	router.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("ok"))
	})
	router.Get("/swagger/*", httpSwagger.Handler(httpSwagger.URL("/swagger/doc.json")))

	// websocket не должен попадать под Timeout
	router.Get("/ws", h.WebSocket.ServeWs)

	router.Route("/api/v1", func(r chi.Router) {
		r.Use(chiMiddleware.Timeout(30 * time.Second))

		r.Post("/auth/token", h.Auth.IssueToken)

		r.Get("/overview", h.Tournament.GetOverview)
		r.Get("/rules", h.Rules.GetRules)
		r.Get("/teams", h.Teams.ListTeams)
		r.Get("/teams/{teamID}", h.Teams.GetTeamByID)
		r.Get("/zones", h.Zones.ListZones)
		r.Get("/zones/{zoneID}/standings", h.Zones.ZoneStandings)
		r.Get("/standings", h.Zones.AllStandings)
		r.Get("/fixtures", h.Fixtures.ListFixtures)
		r.Get("/playoffs", h.Fixtures.ListBracket)

		r.Group(func(r chi.Router) {
			r.Use(middleware.RequireAdmin(tokens))

			r.Put("/rules", h.Rules.UpdateRules)

			r.Post("/teams", h.Teams.CreateTeam)
			r.Post("/teams/{teamID}/logo", h.Teams.UploadTeamLogo)

			r.Post("/zones/auto-assign", h.Zones.AutoAssign)
			r.Post("/zones/move", h.Zones.MoveTeam)
			r.Post("/zones/reset", h.Zones.Reset)
			r.Post("/zones/seed", h.Zones.Seed)

			r.Put("/fixtures/{fixtureID}/result", h.Fixtures.RecordResult)
			r.Put("/fixtures/{fixtureID}/status", h.Fixtures.UpdateStatus)

			r.Post("/playoffs/generate", h.Fixtures.GenerateBracket)
		})
	})
}
