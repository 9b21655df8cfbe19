package slack

import (
	"context"
	"strconv"
	"time"

	"github.com/m-mizutani/goerr/v2"
	"github.com/razataiab/aftermath-ai/pkg/domain/interfaces"
	"github.com/razataiab/aftermath-ai/pkg/domain/model"
	"github.com/razataiab/aftermath-ai/pkg/domain/types"
	"github.com/slack-go/slack"
)

const (
	// maxHistoryMessages bounds a single history fetch. The service does
	// not paginate beyond the first page so context size and latency
	// stay deterministic.
	maxHistoryMessages = 200
)

// Service provides Slack chat operations for the postmortem pipeline
type Service struct {
	client *slack.Client
}

var _ interfaces.ChatClient = (*Service)(nil)

// New creates a new Slack service
func New(token string, opts ...slack.Option) *Service {
	return &Service{
		client: slack.New(token, opts...),
	}
}

// ChannelHistory retrieves the most recent channel messages in the
// order the Slack API returned them (newest first). Thread replies are
// excluded; thread parent messages are kept.
func (s *Service) ChannelHistory(ctx context.Context, channelID types.ChannelID) ([]model.ChatEntry, error) {
	history, err := s.client.GetConversationHistoryContext(ctx, &slack.GetConversationHistoryParameters{
		ChannelID: channelID.String(),
		Limit:     maxHistoryMessages,
	})
	if err != nil {
		return nil, goerr.Wrap(err, "failed to get Slack channel history",
			goerr.V("channelID", channelID),
		)
	}

	entries := make([]model.ChatEntry, 0, len(history.Messages))
	for _, msg := range history.Messages {
		if msg.ThreadTimestamp != "" && msg.ThreadTimestamp != msg.Timestamp {
			continue
		}
		ts, err := parseSlackTimestamp(msg.Timestamp)
		if err != nil {
			ts = time.Time{}
		}
		entries = append(entries, model.ChatEntry{
			UserID:    types.UserID(msg.User),
			Text:      msg.Text,
			Timestamp: ts,
		})
	}

	return entries, nil
}

// UserName resolves a Slack user ID to a display name, preferring the
// profile real name over the account name.
func (s *Service) UserName(ctx context.Context, userID types.UserID) (string, error) {
	user, err := s.client.GetUserInfoContext(ctx, userID.String())
	if err != nil {
		return "", goerr.Wrap(err, "failed to get Slack user info",
			goerr.V("userID", userID),
		)
	}

	if user.Profile.RealName != "" {
		return user.Profile.RealName, nil
	}
	return user.Name, nil
}

// PostMessage sends a message to a Slack channel
func (s *Service) PostMessage(ctx context.Context, channelID types.ChannelID, text string) error {
	_, _, err := s.client.PostMessageContext(ctx, channelID.String(), slack.MsgOptionText(text, false))
	if err != nil {
		return goerr.Wrap(err, "failed to post message to Slack",
			goerr.V("channelID", channelID),
		)
	}
	return nil
}

// parseSlackTimestamp parses Slack timestamp format (Unix timestamp with microseconds)
func parseSlackTimestamp(timestamp string) (time.Time, error) {
	ts, err := strconv.ParseFloat(timestamp, 64)
	if err != nil {
		return time.Time{}, goerr.Wrap(err, "failed to parse timestamp",
			goerr.V("timestamp", timestamp),
		)
	}
	sec := int64(ts)
	nsec := int64((ts - float64(sec)) * 1e9)
	return time.Unix(sec, nsec), nil
}
