package usecase

import (
	"encoding/json"
	"net/url"
	"strings"

	"github.com/m-mizutani/goerr/v2"
	"github.com/razataiab/aftermath-ai/pkg/domain/model"
	"github.com/razataiab/aftermath-ai/pkg/domain/types"
)

// Normalize converts a raw trigger payload into the canonical
// TriggerContext. Each platform has its own wire shape; the layered
// fallbacks below exist because several platforms deliver the same
// trigger through multiple historical payload formats.
func Normalize(platform types.Platform, raw []byte) (model.TriggerContext, error) {
	switch platform {
	case types.PlatformSlack:
		return normalizeSlackSlash(raw)
	case types.PlatformDiscord:
		return normalizeDiscordInteraction(raw)
	case types.PlatformTeams:
		return normalizeTeamsTrigger(raw)
	}
	return model.TriggerContext{}, goerr.New("cannot normalize payload for platform",
		goerr.V("platform", platform),
		goerr.T(model.ErrTagNormalization),
	)
}

// normalizeSlackSlash parses a URL-form-encoded slash command body.
// Repeated keys decode to their last value; absent keys map to the
// empty string so the command-usage UX never turns into a parse error.
func normalizeSlackSlash(raw []byte) (model.TriggerContext, error) {
	form, err := url.ParseQuery(string(raw))
	if err != nil {
		return model.TriggerContext{}, goerr.Wrap(err, "failed to parse slash command body",
			goerr.T(model.ErrTagNormalization))
	}

	trigger := model.TriggerContext{
		Platform:        types.PlatformSlack,
		ChannelID:       types.ChannelID(lastValue(form, "channel_id")),
		ChannelName:     lastValue(form, "channel_name"),
		UserID:          types.UserID(lastValue(form, "user_id")),
		UserName:        lastValue(form, "user_name"),
		TriggerPlatform: "slack_slash",
	}
	if trigger.ChannelID == "" {
		return model.TriggerContext{}, goerr.Wrap(model.ErrMissingChannel, "slack slash command")
	}
	return trigger, nil
}

type discordInteraction struct {
	ChannelID string `json:"channel_id"`
	Channel   struct {
		ID   string `json:"id"`
		Name string `json:"name"`
	} `json:"channel"`
	Member struct {
		User struct {
			ID string `json:"id"`
		} `json:"user"`
	} `json:"member"`
	User struct {
		ID string `json:"id"`
	} `json:"user"`
	Author struct {
		ID string `json:"id"`
	} `json:"author"`
	TriggerPlatform string `json:"trigger_platform"`
}

// normalizeDiscordInteraction parses a Discord interaction object.
// User resolution precedence: member.user.id, user.id, author.id.
func normalizeDiscordInteraction(raw []byte) (model.TriggerContext, error) {
	var payload discordInteraction
	if err := json.Unmarshal(raw, &payload); err != nil {
		return model.TriggerContext{}, goerr.Wrap(err, "failed to parse Discord interaction",
			goerr.T(model.ErrTagNormalization))
	}

	channelID := payload.ChannelID
	if channelID == "" {
		channelID = payload.Channel.ID
	}

	userID := payload.Member.User.ID
	if userID == "" {
		userID = payload.User.ID
	}
	if userID == "" {
		userID = payload.Author.ID
	}

	triggerPlatform := payload.TriggerPlatform
	if triggerPlatform == "" {
		triggerPlatform = "discord_interaction"
	}

	trigger := model.TriggerContext{
		Platform:        types.PlatformDiscord,
		ChannelID:       types.ChannelID(channelID),
		ChannelName:     payload.Channel.Name,
		UserID:          types.UserID(userID),
		TriggerPlatform: triggerPlatform,
	}
	if trigger.ChannelID == "" {
		return model.TriggerContext{}, goerr.Wrap(model.ErrMissingChannel, "discord interaction")
	}
	return trigger, nil
}

type teamsTrigger struct {
	Value []struct {
		Resource string `json:"resource"`
	} `json:"value"`
	ChannelID      string `json:"channelId"`
	ConversationID string `json:"conversationId"`
	ResourceData   struct {
		ChannelID string `json:"channelId"`
		Channel   struct {
			DisplayName string `json:"displayName"`
		} `json:"channel"`
	} `json:"resourceData"`
	From struct {
		User struct {
			ID string `json:"id"`
		} `json:"user"`
		ID string `json:"id"`
	} `json:"from"`
	User struct {
		ID string `json:"id"`
	} `json:"user"`
	ChannelName     string `json:"channelName"`
	TriggerPlatform string `json:"trigger_platform"`
	Type            string `json:"type"`
}

// normalizeTeamsTrigger parses a Teams webhook/event payload. Teams
// trigger payloads vary by integration surface (Graph webhook, incoming
// webhook, adaptive-card action, Power Automate), so no single field is
// guaranteed present; channel resolution tries each known shape in
// order.
func normalizeTeamsTrigger(raw []byte) (model.TriggerContext, error) {
	var payload teamsTrigger
	if err := json.Unmarshal(raw, &payload); err != nil {
		return model.TriggerContext{}, goerr.Wrap(err, "failed to parse Teams trigger",
			goerr.T(model.ErrTagNormalization))
	}

	channelID := ""
	if len(payload.Value) > 0 {
		channelID = channelFromResource(payload.Value[0].Resource)
	}
	if channelID == "" {
		channelID = payload.ChannelID
	}
	if channelID == "" {
		channelID = payload.ConversationID
	}
	if channelID == "" {
		channelID = payload.ResourceData.ChannelID
	}

	userID := payload.From.User.ID
	if userID == "" {
		userID = payload.User.ID
	}
	if userID == "" {
		userID = payload.From.ID
	}

	channelName := payload.ChannelName
	if channelName == "" {
		channelName = payload.ResourceData.Channel.DisplayName
	}

	triggerPlatform := payload.TriggerPlatform
	if triggerPlatform == "" {
		triggerPlatform = payload.Type
	}
	if triggerPlatform == "" {
		triggerPlatform = "teams_webhook"
	}

	trigger := model.TriggerContext{
		Platform:        types.PlatformTeams,
		ChannelID:       types.ChannelID(channelID),
		ChannelName:     channelName,
		UserID:          types.UserID(userID),
		TriggerPlatform: triggerPlatform,
	}
	if trigger.ChannelID == "" {
		return model.TriggerContext{}, goerr.Wrap(model.ErrMissingChannel, "teams trigger")
	}
	return trigger, nil
}

// channelFromResource extracts the channel ID from a Graph resource
// path like "teams('t')/channels('c')/messages('m')" or
// ".../teams/t/channels/c/messages/m": the segment following the
// literal "channels" token.
func channelFromResource(resource string) string {
	parts := strings.Split(resource, "/")
	for i, part := range parts {
		if part == "channels" && i+1 < len(parts) {
			return parts[i+1]
		}
		if inner, ok := strings.CutPrefix(part, "channels('"); ok {
			return strings.TrimSuffix(inner, "')")
		}
	}
	return ""
}

func lastValue(form url.Values, key string) string {
	values := form[key]
	if len(values) == 0 {
		return ""
	}
	return values[len(values)-1]
}
