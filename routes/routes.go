package routes

import (
	"github.com/fitpulse/athlete-tracker/handlers"
	"github.com/fitpulse/athlete-tracker/middleware"
	"github.com/fitpulse/athlete-tracker/models"
	"github.com/go-chi/chi/v5"
	chiMiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
)

// SetupRoutes wires the full REST surface. Reads require any
// authenticated role; mutations are coach-only.
func SetupRoutes(
	router *chi.Mux,
	auth *middleware.Authenticator,
	allowedOrigins []string,
	authHandler *handlers.AuthHandler,
	athleteHandler *handlers.AthleteHandler,
	scoreHandler *handlers.ScoreHandler,
	leaderboardHandler *handlers.LeaderboardHandler,
	webSocketHandler *handlers.WebSocketHandler,
) {
	router.Use(chiMiddleware.RequestID)
	router.Use(chiMiddleware.Logger)
	router.Use(chiMiddleware.Recoverer)
	router.Use(cors.Handler(cors.Options{
		AllowedOrigins:   allowedOrigins,
		AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type"},
		AllowCredentials: false,
		MaxAge:           300,
	}))

	router.Post("/auth/login", authHandler.Login)
	router.Post("/auth/register", authHandler.Register)

	// Live leaderboard stream; websocket clients cannot set headers, so
	// this stays outside the bearer-token group.
	router.Get("/ws/leaderboard", webSocketHandler.ServeLeaderboard)

	coachOnly := middleware.RequireRole(models.RoleCoach)

	router.Group(func(r chi.Router) {
		r.Use(auth.Authenticate)

		r.Route("/athletes", func(r chi.Router) {
			r.Get("/", athleteHandler.List)
			r.Get("/{id}", athleteHandler.Get)

			r.Group(func(r chi.Router) {
				r.Use(coachOnly)
				r.Post("/", athleteHandler.Create)
				r.Put("/{id}", athleteHandler.Update)
				r.Delete("/{id}", athleteHandler.Delete)
				r.Post("/{id}/photo", athleteHandler.UploadPhoto)
			})
		})

		r.Get("/tests/{athleteID}", scoreHandler.ListByAthlete)
		r.Get("/leaderboard", leaderboardHandler.Get)

		r.Group(func(r chi.Router) {
			r.Use(coachOnly)
			r.Post("/tests", scoreHandler.Submit)
			// Legacy alias kept for older dashboard builds.
			r.Post("/scores", scoreHandler.Submit)
			r.Put("/scores/{id}", scoreHandler.Update)
		})
	})
}
