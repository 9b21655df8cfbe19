package webhook

import (
	"crypto/ed25519"
	"encoding/hex"
	"io"
	"net/http"

	"github.com/m-mizutani/ctxlog"
	"github.com/m-mizutani/goerr/v2"
	"github.com/razataiab/aftermath-ai/pkg/domain/types"
	"github.com/razataiab/aftermath-ai/pkg/usecase"
)

const discordAckMessage = "⏳ Generating postmortem report... I'll post it here soon."

// HandleDiscordInteraction handles the Discord interaction webhook endpoint
func (h *Handler) HandleDiscordInteraction(w http.ResponseWriter, r *http.Request) {
	body, err := io.ReadAll(r.Body)
	if err != nil {
		ctxlog.From(r.Context()).Error("Failed to read request body", "error", err)
		h.writeError(w, r, goerr.Wrap(err, "failed to read request body"), http.StatusBadRequest)
		return
	}

	if len(h.discordPublicKey) == 0 {
		h.writeError(w, r, goerr.New("Discord not configured"), http.StatusServiceUnavailable)
		return
	}

	if err := h.verifyDiscordSignature(r, body); err != nil {
		ctxlog.From(r.Context()).Warn("Invalid Discord signature", "error", err)
		h.writeError(w, r, goerr.Wrap(err, "invalid signature"), http.StatusUnauthorized)
		return
	}

	trigger, err := usecase.Normalize(types.PlatformDiscord, body)
	if err != nil {
		ctxlog.From(r.Context()).Warn("Failed to normalize Discord interaction", "error", err)
		h.writeError(w, r, goerr.Wrap(err, "failed to normalize interaction"), http.StatusBadRequest)
		return
	}

	h.writeJSON(w, r, http.StatusOK, map[string]any{
		"type":    200,
		"message": discordAckMessage,
	})

	h.dispatchGeneration(r.Context(), trigger)
}

// verifyDiscordSignature verifies the Ed25519 interaction signature.
// Discord signs the timestamp header concatenated with the raw body.
func (h *Handler) verifyDiscordSignature(r *http.Request, body []byte) error {
	signature := r.Header.Get("X-Signature-Ed25519")
	if signature == "" {
		return goerr.New("missing signature header")
	}

	timestamp := r.Header.Get("X-Signature-Timestamp")
	if timestamp == "" {
		return goerr.New("missing timestamp header")
	}

	sig, err := hex.DecodeString(signature)
	if err != nil {
		return goerr.Wrap(err, "invalid signature encoding")
	}
	if len(sig) != ed25519.SignatureSize {
		return goerr.New("invalid signature length", goerr.V("length", len(sig)))
	}

	msg := make([]byte, 0, len(timestamp)+len(body))
	msg = append(msg, timestamp...)
	msg = append(msg, body...)

	if !ed25519.Verify(h.discordPublicKey, msg, sig) {
		return goerr.New("signature mismatch")
	}

	return nil
}
