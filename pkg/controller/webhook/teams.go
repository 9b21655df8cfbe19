package webhook

import (
	"io"
	"net/http"

	"github.com/m-mizutani/ctxlog"
	"github.com/m-mizutani/goerr/v2"
	"github.com/razataiab/aftermath-ai/pkg/domain/types"
	"github.com/razataiab/aftermath-ai/pkg/usecase"
)

const teamsAckMessage = "⏳ Generating postmortem report... I'll post it here soon."

// HandleTeamsWebhook handles the Teams change notification endpoint
func (h *Handler) HandleTeamsWebhook(w http.ResponseWriter, r *http.Request) {
	// Graph subscription validation handshake: echo the token back as
	// plain text before any other processing.
	if token := r.URL.Query().Get("validationToken"); token != "" {
		ctxlog.From(r.Context()).Info("Responding to Teams subscription validation")
		w.Header().Set("Content-Type", "text/plain")
		w.WriteHeader(http.StatusOK)
		if _, err := w.Write([]byte(token)); err != nil {
			ctxlog.From(r.Context()).Error("Failed to write validation response", "error", err)
		}
		return
	}

	body, err := io.ReadAll(r.Body)
	if err != nil {
		ctxlog.From(r.Context()).Error("Failed to read request body", "error", err)
		h.writeError(w, r, goerr.Wrap(err, "failed to read request body"), http.StatusBadRequest)
		return
	}

	trigger, err := usecase.Normalize(types.PlatformTeams, body)
	if err != nil {
		ctxlog.From(r.Context()).Warn("Failed to normalize Teams notification", "error", err)
		h.writeError(w, r, goerr.Wrap(err, "failed to normalize notification"), http.StatusBadRequest)
		return
	}

	w.Header().Set("Content-Type", "text/plain")
	w.WriteHeader(http.StatusOK)
	if _, err := w.Write([]byte(teamsAckMessage)); err != nil {
		ctxlog.From(r.Context()).Error("Failed to write acknowledgment", "error", err)
	}

	h.dispatchGeneration(r.Context(), trigger)
}
