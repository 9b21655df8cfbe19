package model

import "github.com/razataiab/aftermath-ai/pkg/domain/types"

// TriggerContext is the canonical, platform-independent shape that all
// inbound trigger payloads normalize into.
type TriggerContext struct {
	Platform    types.Platform // platform family, determines collaborators
	ChannelID   types.ChannelID
	ChannelName string
	UserID      types.UserID
	UserName    string
	// TriggerPlatform is a finer-grained trigger descriptor
	// (e.g. "slack_slash", "discord_interaction", "power_automate")
	// kept for audit and diagnostics only.
	TriggerPlatform string
}
