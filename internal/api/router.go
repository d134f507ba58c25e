package api

import (
	"net/http"

	"github.com/dom/league-matchmaker/internal/api/handlers"
	"github.com/dom/league-matchmaker/internal/api/middleware"
	"github.com/dom/league-matchmaker/internal/metrics"
	"github.com/dom/league-matchmaker/internal/service"
	"github.com/dom/league-matchmaker/internal/websocket"
	"github.com/go-chi/chi/v5"
	chiMiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/rs/cors"
	"github.com/rs/zerolog"
)

func NewRouter(services *service.Services, hub *websocket.Hub, m *metrics.Metrics, log zerolog.Logger) http.Handler {
	r := chi.NewRouter()

	// Global middleware
	r.Use(chiMiddleware.RequestID)
	r.Use(middleware.Logger(log))
	r.Use(chiMiddleware.Recoverer)
	r.Use(cors.New(cors.Options{
		AllowedOrigins: []string{"*"},
		AllowedMethods: []string{http.MethodGet, http.MethodPost, http.MethodOptions},
		AllowedHeaders: []string{"Authorization", "Content-Type"},
	}).Handler)

	// Health check
	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("OK"))
	})
	r.Handle("/metrics", m.Handler())

	matchmakingHandler := handlers.NewMatchmakingHandler(services.Matchmaking)
	wsHandler := handlers.NewWebSocketHandler(hub)

	r.Get("/ping", matchmakingHandler.Ping)

	r.Route("/matchmaking", func(r chi.Router) {
		r.Get("/users", matchmakingHandler.GetWaitingUsers)

		// Protected routes
		r.Group(func(r chi.Router) {
			r.Use(middleware.Auth(services.Auth))
			r.Post("/create_match", matchmakingHandler.CreateMatch)
			r.Post("/match", matchmakingHandler.ReportMatch)
			r.Get("/ws", wsHandler.Handle)
		})
	})

	return r
}
