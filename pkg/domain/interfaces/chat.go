package interfaces

//go:generate moq -out mocks/chat_mock.go -pkg mocks . ChatClient

import (
	"context"

	"github.com/razataiab/aftermath-ai/pkg/domain/model"
	"github.com/razataiab/aftermath-ai/pkg/domain/types"
)

// ChatClient is the per-platform chat collaborator: raw history
// retrieval, display-name resolution and outbound posting. One
// implementation exists per platform (Slack, Discord, Teams).
type ChatClient interface {
	// ChannelHistory returns the most recent messages of a channel in
	// the order the platform API returned them. Implementations apply
	// their own page limit and do not paginate beyond the first page.
	ChannelHistory(ctx context.Context, channelID types.ChannelID) ([]model.ChatEntry, error)

	// UserName resolves a user ID to a display name.
	UserName(ctx context.Context, userID types.UserID) (string, error)

	// PostMessage posts a message to a channel. A non-success response
	// from the platform API is returned as an error.
	PostMessage(ctx context.Context, channelID types.ChannelID, text string) error
}
