package model

import (
	"time"

	"github.com/razataiab/aftermath-ai/pkg/domain/types"
)

// UnknownUserName is the sentinel display name used when per-message
// username resolution fails. Identity loss for a single message never
// drops the message itself.
const UnknownUserName = "Unknown"

// Message represents one chat utterance in an incident conversation.
// Messages are created once during conversation assembly and never
// mutated afterwards.
type Message struct {
	UserID    types.UserID
	UserName  string
	Text      string
	Timestamp time.Time
	Source    types.Platform
}

// ChatEntry is a raw history record returned by a chat collaborator,
// before username resolution. Order of a ChatEntry slice is the order
// the platform API returned it in.
type ChatEntry struct {
	UserID    types.UserID
	Text      string
	Timestamp time.Time
}
