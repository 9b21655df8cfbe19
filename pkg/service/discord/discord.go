package discord

import (
	"context"

	"github.com/bwmarrin/discordgo"
	"github.com/m-mizutani/goerr/v2"
	"github.com/razataiab/aftermath-ai/pkg/domain/interfaces"
	"github.com/razataiab/aftermath-ai/pkg/domain/model"
	"github.com/razataiab/aftermath-ai/pkg/domain/types"
)

// maxHistoryMessages is the Discord API page limit for channel messages.
const maxHistoryMessages = 100

// Service provides Discord chat operations for the postmortem pipeline.
// It uses discordgo in REST-only mode; no gateway connection is opened.
type Service struct {
	session *discordgo.Session
}

var _ interfaces.ChatClient = (*Service)(nil)

// New creates a new Discord service with a bot token
func New(botToken string) (*Service, error) {
	session, err := discordgo.New("Bot " + botToken)
	if err != nil {
		return nil, goerr.Wrap(err, "failed to create Discord session")
	}
	return &Service{session: session}, nil
}

// ChannelHistory retrieves the most recent channel messages in the
// order the Discord API returned them (newest first).
func (s *Service) ChannelHistory(ctx context.Context, channelID types.ChannelID) ([]model.ChatEntry, error) {
	messages, err := s.session.ChannelMessages(channelID.String(), maxHistoryMessages, "", "", "", discordgo.WithContext(ctx))
	if err != nil {
		return nil, goerr.Wrap(err, "failed to get Discord channel messages",
			goerr.V("channelID", channelID),
		)
	}

	entries := make([]model.ChatEntry, 0, len(messages))
	for _, msg := range messages {
		entry := model.ChatEntry{
			Text:      msg.Content,
			Timestamp: msg.Timestamp,
		}
		if msg.Author != nil {
			entry.UserID = types.UserID(msg.Author.ID)
		}
		entries = append(entries, entry)
	}

	return entries, nil
}

// UserName resolves a Discord user ID to a username
func (s *Service) UserName(ctx context.Context, userID types.UserID) (string, error) {
	user, err := s.session.User(userID.String(), discordgo.WithContext(ctx))
	if err != nil {
		return "", goerr.Wrap(err, "failed to get Discord user",
			goerr.V("userID", userID),
		)
	}
	return user.Username, nil
}

// PostMessage sends a message to a Discord channel
func (s *Service) PostMessage(ctx context.Context, channelID types.ChannelID, text string) error {
	if _, err := s.session.ChannelMessageSend(channelID.String(), text, discordgo.WithContext(ctx)); err != nil {
		return goerr.Wrap(err, "failed to post message to Discord",
			goerr.V("channelID", channelID),
		)
	}
	return nil
}
