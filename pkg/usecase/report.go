package usecase

import (
	"context"
	"time"

	"github.com/m-mizutani/ctxlog"
	"github.com/m-mizutani/goerr/v2"
	"github.com/razataiab/aftermath-ai/pkg/domain/interfaces"
	"github.com/razataiab/aftermath-ai/pkg/domain/model"
	"github.com/razataiab/aftermath-ai/pkg/domain/types"
	llmSvc "github.com/razataiab/aftermath-ai/pkg/service/llm"
	"golang.org/x/sync/errgroup"
)

const (
	// defaultRunTimeout bounds one full pipeline run including all
	// network calls, so a hung external dependency cannot leak an
	// unbounded background task.
	defaultRunTimeout = 5 * time.Minute

	// nameResolveWorkers bounds the concurrent per-message username
	// lookups during conversation assembly.
	nameResolveWorkers = 8
)

// Report orchestrates the postmortem pipeline: trigger normalization
// happens at the webhook boundary; Generate covers conversation
// assembly, log enrichment, incident building, context formatting,
// synthesis and dispatch.
type Report struct {
	chats      map[types.Platform]interfaces.ChatClient
	logSources []interfaces.LogSource
	llm        *llmSvc.Service
	runTimeout time.Duration
}

var _ PostmortemUseCase = (*Report)(nil)

// ReportOption is a functional option for configuring Report
type ReportOption func(*Report)

// WithRunTimeout overrides the per-run deadline
func WithRunTimeout(d time.Duration) ReportOption {
	return func(r *Report) {
		if d > 0 {
			r.runTimeout = d
		}
	}
}

// NewReport creates the postmortem pipeline use case. chats maps each
// configured platform to its chat collaborator; logSources holds the
// configured CI integrations in priority order (may be empty).
func NewReport(chats map[types.Platform]interfaces.ChatClient, logSources []interfaces.LogSource, llm *llmSvc.Service, opts ...ReportOption) *Report {
	r := &Report{
		chats:      chats,
		logSources: logSources,
		llm:        llm,
		runTimeout: defaultRunTimeout,
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Generate runs one pipeline pass. It is called from a background
// dispatch after the trigger has been acknowledged, so every failure
// here is surfaced to the origin channel or the operational log, never
// to the original HTTP response.
func (r *Report) Generate(ctx context.Context, trigger model.TriggerContext) error {
	ctx, cancel := context.WithTimeout(ctx, r.runTimeout)
	defer cancel()

	logger := ctxlog.From(ctx)

	chat, ok := r.chats[trigger.Platform]
	if !ok {
		return goerr.New("no chat client configured for platform",
			goerr.V("platform", trigger.Platform),
			goerr.T(model.ErrTagDispatch),
		)
	}

	conversation, err := r.assembleConversation(ctx, chat, trigger)
	if err != nil {
		return goerr.Wrap(err, "failed to assemble conversation",
			goerr.V("channelID", trigger.ChannelID),
		)
	}

	deploymentLogs := r.fetchDeploymentLogs(ctx)

	incident, err := model.NewIncident(trigger, conversation, deploymentLogs)
	if err != nil {
		return goerr.Wrap(err, "failed to build incident")
	}

	logger.Info("Incident assembled",
		"incidentID", incident.ID,
		"source", incident.Source,
		"triggerPlatform", incident.TriggerPlatform,
		"messages", len(incident.Conversation),
		"hasDeploymentLogs", incident.DeploymentLogs != "",
	)

	contextText := r.formatContext(ctx, incident)

	state := &model.ReportState{Incident: incident}

	draft, err := r.llm.GeneratePostmortem(ctx, contextText)
	if err != nil {
		r.notifyFailure(ctx, chat, incident)
		return goerr.Wrap(err, "postmortem drafting failed",
			goerr.V("incidentID", incident.ID),
			goerr.T(model.ErrTagGeneration),
		)
	}
	state.Postmortem = draft

	valid, err := r.llm.ValidateDraft(ctx, draft)
	if err != nil {
		r.notifyFailure(ctx, chat, incident)
		return goerr.Wrap(err, "postmortem validation call failed",
			goerr.V("incidentID", incident.ID),
			goerr.T(model.ErrTagGeneration),
		)
	}
	state.Valid = valid

	// The validity verdict does not gate dispatch; it is recorded for
	// observability only.
	logger.Info("Postmortem synthesized",
		"incidentID", incident.ID,
		"valid", state.Valid,
		"length", len(state.Postmortem),
	)

	return r.Dispatch(ctx, incident, state.Postmortem)
}

// assembleConversation retrieves raw channel history and resolves each
// message's author name. A failed name lookup degrades that message's
// username to "Unknown" and never drops the message; lookups run with a
// bounded fan-out and results are written by index so output order
// equals retrieval order.
func (r *Report) assembleConversation(ctx context.Context, chat interfaces.ChatClient, trigger model.TriggerContext) ([]model.Message, error) {
	entries, err := chat.ChannelHistory(ctx, trigger.ChannelID)
	if err != nil {
		return nil, err
	}

	messages := make([]model.Message, len(entries))
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(nameResolveWorkers)

	for i, entry := range entries {
		g.Go(func() error {
			name, err := chat.UserName(gctx, entry.UserID)
			if err != nil || name == "" {
				if err != nil {
					ctxlog.From(ctx).Debug("Username resolution failed",
						"userID", entry.UserID,
						"error", err,
					)
				}
				name = model.UnknownUserName
			}
			messages[i] = model.Message{
				UserID:    entry.UserID,
				UserName:  name,
				Text:      entry.Text,
				Timestamp: entry.Timestamp,
				Source:    trigger.Platform,
			}
			return nil
		})
	}

	// Workers never return errors; degradation is per message.
	_ = g.Wait()

	return messages, nil
}

// fetchDeploymentLogs asks the configured CI integrations, in order,
// for the most recent completed run's log. Enrichment is strictly
// best-effort: every error is downgraded to "no logs available".
func (r *Report) fetchDeploymentLogs(ctx context.Context) string {
	logger := ctxlog.From(ctx)

	for _, source := range r.logSources {
		logText, err := source.LatestLog(ctx)
		if err != nil {
			logger.Warn("Deployment log fetch failed",
				"source", source.Name(),
				"error", err,
			)
			continue
		}
		if logText == "" {
			logger.Debug("No completed run found", "source", source.Name())
			continue
		}
		logger.Info("Deployment logs attached",
			"source", source.Name(),
			"bytes", len(logText),
		)
		return logText
	}
	return ""
}

// notifyFailure posts a best-effort failure notice to the origin
// channel so a fatal pipeline error is never silently swallowed.
func (r *Report) notifyFailure(ctx context.Context, chat interfaces.ChatClient, incident *model.Incident) {
	notice := "⚠️ Postmortem generation failed for this channel. Please try again later."
	if err := chat.PostMessage(ctx, incident.ChannelID, notice); err != nil {
		ctxlog.From(ctx).Error("Failed to post failure notice",
			"incidentID", incident.ID,
			"channelID", incident.ChannelID,
			"error", err,
		)
	}
}
