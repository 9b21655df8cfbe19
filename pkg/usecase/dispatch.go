package usecase

import (
	"context"
	"fmt"

	"github.com/m-mizutani/ctxlog"
	"github.com/m-mizutani/goerr/v2"
	"github.com/razataiab/aftermath-ai/pkg/domain/model"
	"github.com/razataiab/aftermath-ai/pkg/domain/types"
)

// Dispatch routes the finished postmortem to the outbound collaborator
// matching the incident's origin platform, wrapped in that platform's
// emphasis markup. An unrecognized source is a hard error: silently
// dropping a completed postmortem would be data loss.
func (r *Report) Dispatch(ctx context.Context, incident *model.Incident, postmortem string) error {
	var text string
	switch incident.Source {
	case types.PlatformSlack:
		text = fmt.Sprintf("*Postmortem for incident `%s`:*\n\n%s", incident.ID, postmortem)
	case types.PlatformDiscord, types.PlatformTeams:
		text = fmt.Sprintf("**Postmortem for incident `%s`:**\n\n%s", incident.ID, postmortem)
	default:
		return goerr.New("cannot dispatch postmortem for unrecognized source",
			goerr.V("source", incident.Source),
			goerr.V("incidentID", incident.ID),
			goerr.T(model.ErrTagDispatch),
		)
	}

	chat, ok := r.chats[incident.Source]
	if !ok {
		return goerr.New("no outbound client configured for source",
			goerr.V("source", incident.Source),
			goerr.V("incidentID", incident.ID),
			goerr.T(model.ErrTagDispatch),
		)
	}

	if err := chat.PostMessage(ctx, incident.ChannelID, text); err != nil {
		return goerr.Wrap(err, "failed to dispatch postmortem",
			goerr.V("incidentID", incident.ID),
			goerr.V("channelID", incident.ChannelID),
			goerr.T(model.ErrTagDispatch),
		)
	}

	ctxlog.From(ctx).Info("Postmortem dispatched",
		"incidentID", incident.ID,
		"source", incident.Source,
		"channelID", incident.ChannelID,
	)
	return nil
}
