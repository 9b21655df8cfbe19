package usecase

import (
	"context"
	"fmt"
	"strings"
	"unicode/utf8"

	"github.com/m-mizutani/ctxlog"
	"github.com/razataiab/aftermath-ai/pkg/domain/model"
	"github.com/razataiab/aftermath-ai/pkg/domain/types"
)

const (
	// maxLogChars bounds the raw deployment log text handed to the
	// generation step. Oversized logs are summarized first, truncated
	// to this budget if summarization fails.
	maxLogChars = 10000

	deploymentLogHeader = "--- Deployment Logs ---"
	deploymentLogFooter = "--- End Deployment Logs ---"
)

// formatContext renders an incident into the single ordered text block
// consumed by the generation step: one line per message tagged with its
// source platform, followed by a delimited deployment-log block when
// logs are present.
func (r *Report) formatContext(ctx context.Context, incident *model.Incident) string {
	var b strings.Builder

	for _, msg := range incident.Conversation {
		source := msg.Source
		if source == "" || source == types.PlatformUnknown {
			// Messages assembled before per-message tagging carry no
			// source of their own.
			source = incident.Source
		}
		fmt.Fprintf(&b, "[%s] %s: %s\n", source, msg.UserID, msg.Text)
	}

	if incident.DeploymentLogs != "" {
		logText := incident.DeploymentLogs
		if len(logText) > maxLogChars {
			logText = r.condenseLogs(ctx, logText)
		}
		b.WriteString("\n")
		b.WriteString(deploymentLogHeader)
		b.WriteString("\n")
		b.WriteString(logText)
		b.WriteString("\n")
		b.WriteString(deploymentLogFooter)
		b.WriteString("\n")
	}

	return b.String()
}

// condenseLogs shrinks an oversized deployment log below the budget.
// Summarization is an optimization, not a correctness requirement: if
// the summarization call fails, fall back to hard truncation. The
// budget applies to the summary as well, since the summarizer is not
// trusted to respect a length limit.
func (r *Report) condenseLogs(ctx context.Context, logText string) string {
	summary, err := r.llm.SummarizeLogs(ctx, logText)
	if err != nil || summary == "" {
		ctxlog.From(ctx).Warn("Log summarization failed, truncating",
			"error", err,
			"rawBytes", len(logText),
		)
		return truncateLogs(logText)
	}
	return truncateLogs(summary)
}

// truncateLogs hard-caps log text at the budget, backing off to a rune
// boundary so the cut never produces invalid UTF-8.
func truncateLogs(s string) string {
	if len(s) <= maxLogChars {
		return s
	}
	cut := maxLogChars
	for cut > 0 && !utf8.RuneStart(s[cut]) {
		cut--
	}
	return s[:cut]
}
