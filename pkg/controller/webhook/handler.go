package webhook

import (
	"context"
	"crypto/ed25519"
	"encoding/json"
	"net/http"

	"github.com/m-mizutani/ctxlog"
	"github.com/m-mizutani/goerr/v2"
	"github.com/razataiab/aftermath-ai/pkg/cli/config"
	"github.com/razataiab/aftermath-ai/pkg/usecase"
)

// Handler handles inbound trigger webhooks from all chat platforms.
// Verification and normalization happen synchronously; the pipeline
// itself runs as a background unit of work after the acknowledgment.
type Handler struct {
	slackConfig      *config.Slack
	discordPublicKey ed25519.PublicKey
	reportUC         usecase.PostmortemUseCase
}

// NewHandler creates a new webhook handler. discordPublicKey may be nil
// when Discord is not configured; its endpoint then rejects everything.
func NewHandler(ctx context.Context, slackConfig *config.Slack, discordPublicKey ed25519.PublicKey, reportUC usecase.PostmortemUseCase) *Handler {
	return &Handler{
		slackConfig:      slackConfig,
		discordPublicKey: discordPublicKey,
		reportUC:         reportUC,
	}
}

// writeJSON writes a JSON response with the given status
func (h *Handler) writeJSON(w http.ResponseWriter, r *http.Request, status int, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(body); err != nil {
		ctxlog.From(r.Context()).Error("Failed to encode response", "error", err)
	}
}

// writeError writes an error response
func (h *Handler) writeError(w http.ResponseWriter, r *http.Request, err error, status int) {
	var message string
	if goErr := goerr.Unwrap(err); goErr != nil {
		message = goErr.Error()
	} else {
		message = err.Error()
	}

	h.writeJSON(w, r, status, map[string]string{"error": message})
}
