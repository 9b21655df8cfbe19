package webhook

import (
	"context"
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/m-mizutani/ctxlog"
	"github.com/m-mizutani/goerr/v2"
	"github.com/razataiab/aftermath-ai/pkg/domain/model"
	"github.com/razataiab/aftermath-ai/pkg/domain/types"
	"github.com/razataiab/aftermath-ai/pkg/usecase"
	"github.com/razataiab/aftermath-ai/pkg/utils/async"
)

const (
	generateCommand = "generate-postmortem"

	slackUsageHint  = "Usage: `/aftermath generate-postmortem` - run this in the incident channel to generate a postmortem report."
	slackAckMessage = "⏳ Generating postmortem report... I'll post it here soon."
)

// HandleSlackCommand handles the Slack slash command endpoint
func (h *Handler) HandleSlackCommand(w http.ResponseWriter, r *http.Request) {
	body, err := io.ReadAll(r.Body)
	if err != nil {
		ctxlog.From(r.Context()).Error("Failed to read request body", "error", err)
		h.writeError(w, r, goerr.Wrap(err, "failed to read request body"), http.StatusBadRequest)
		return
	}

	if !h.slackConfig.IsConfigured() {
		h.writeError(w, r, goerr.New("Slack not configured"), http.StatusServiceUnavailable)
		return
	}

	if err := h.verifySlackSignature(r, body); err != nil {
		ctxlog.From(r.Context()).Warn("Invalid Slack signature", "error", err)
		h.writeError(w, r, goerr.Wrap(err, "invalid signature"), http.StatusUnauthorized)
		return
	}

	form, err := url.ParseQuery(string(body))
	if err != nil {
		h.writeError(w, r, goerr.Wrap(err, "failed to parse form"), http.StatusBadRequest)
		return
	}

	// Slash commands must always be acknowledged with 200, otherwise
	// Slack shows the user a generic failure. Unrecognized input gets a
	// usage hint instead of an error status.
	text := strings.TrimSpace(lastFormValue(form, "text"))
	if text != generateCommand {
		h.writeJSON(w, r, http.StatusOK, map[string]string{"text": slackUsageHint})
		return
	}

	trigger, err := usecase.Normalize(types.PlatformSlack, body)
	if err != nil {
		ctxlog.From(r.Context()).Warn("Failed to normalize Slack command", "error", err)
		h.writeJSON(w, r, http.StatusOK, map[string]string{
			"text": "Could not determine the channel for this command. Please try again from the incident channel.",
		})
		return
	}

	h.writeJSON(w, r, http.StatusOK, map[string]string{"text": slackAckMessage})

	h.dispatchGeneration(r.Context(), trigger)
}

// dispatchGeneration runs the postmortem pipeline in the background
// after the webhook has been acknowledged.
func (h *Handler) dispatchGeneration(ctx context.Context, trigger model.TriggerContext) {
	async.Dispatch(ctx, func(ctx context.Context) error {
		return h.reportUC.Generate(ctx, trigger)
	})
}

// lastFormValue returns the last value of a form key. Slack sends
// repeated keys on some clients and the final value wins.
func lastFormValue(form url.Values, key string) string {
	values := form[key]
	if len(values) == 0 {
		return ""
	}
	return values[len(values)-1]
}

// verifySlackSignature verifies the Slack request signature
func (h *Handler) verifySlackSignature(r *http.Request, body []byte) error {
	timestamp := r.Header.Get("X-Slack-Request-Timestamp")
	if timestamp == "" {
		return goerr.New("missing timestamp header")
	}

	// Check timestamp to prevent replay attacks (5 minute window)
	ts, err := strconv.ParseInt(timestamp, 10, 64)
	if err != nil {
		return goerr.Wrap(err, "invalid timestamp")
	}

	if abs(time.Now().Unix()-ts) > 60*5 {
		return goerr.New("timestamp too old")
	}

	signature := r.Header.Get("X-Slack-Signature")
	if signature == "" {
		return goerr.New("missing signature header")
	}

	// Compute expected signature
	baseString := fmt.Sprintf("v0:%s:%s", timestamp, string(body))
	mac := hmac.New(sha256.New, []byte(h.slackConfig.SigningSecret))
	mac.Write([]byte(baseString))
	expectedSignature := "v0=" + hex.EncodeToString(mac.Sum(nil))

	// Compare signatures
	if !hmac.Equal([]byte(signature), []byte(expectedSignature)) {
		return goerr.New("signature mismatch")
	}

	return nil
}

func abs(n int64) int64 {
	if n < 0 {
		return -n
	}
	return n
}
