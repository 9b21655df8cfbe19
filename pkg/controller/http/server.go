package http

import (
	"context"
	"crypto/ed25519"
	"encoding/json"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/m-mizutani/ctxlog"
	"github.com/razataiab/aftermath-ai/pkg/cli/config"
	"github.com/razataiab/aftermath-ai/pkg/controller/webhook"
	"github.com/razataiab/aftermath-ai/pkg/usecase"
	"github.com/rs/cors"
)

// Server represents the HTTP server
type Server struct {
	*http.Server
	router         chi.Router
	webhookHandler *webhook.Handler
}

// NewServer creates a new HTTP server
func NewServer(
	ctx context.Context,
	addr string,
	corsOrigins []string,
	slackConfig *config.Slack,
	discordPublicKey ed25519.PublicKey,
	reportUC usecase.PostmortemUseCase,
) (*Server, error) {
	router := chi.NewRouter()

	// Apply global middleware
	router.Use(middleware.RequestID)
	router.Use(middleware.RealIP)
	router.Use(LoggingMiddleware(ctx))
	router.Use(middleware.Recoverer)
	router.Use(cors.New(cors.Options{
		AllowedOrigins: corsOrigins,
		AllowedMethods: []string{http.MethodGet, http.MethodPost, http.MethodOptions},
		AllowedHeaders: []string{"Content-Type", "Authorization"},
	}).Handler)

	webhookHandler := webhook.NewHandler(ctx, slackConfig, discordPublicKey, reportUC)

	// Health checks
	router.Get("/", handleHealth)
	router.Get("/health", handleHealth)

	// Platform webhook routes
	router.Route("/hooks", func(r chi.Router) {
		r.Post("/slack/command", webhookHandler.HandleSlackCommand)
		r.Post("/discord/interaction", webhookHandler.HandleDiscordInteraction)
		r.Post("/teams/messages", webhookHandler.HandleTeamsWebhook)
	})

	server := &Server{
		Server: &http.Server{
			Addr:              addr,
			Handler:           router,
			ReadHeaderTimeout: 15 * time.Second,
		},
		router:         router,
		webhookHandler: webhookHandler,
	}

	return server, nil
}

// handleHealth handles health check requests
func handleHealth(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	if err := json.NewEncoder(w).Encode(map[string]string{
		"status": "ok",
	}); err != nil {
		ctxlog.From(r.Context()).Error("Failed to encode health response", "error", err)
	}
}
