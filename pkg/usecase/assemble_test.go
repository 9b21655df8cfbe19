package usecase

import (
	"context"
	"testing"

	"github.com/m-mizutani/goerr/v2"
	"github.com/m-mizutani/gt"
	"github.com/razataiab/aftermath-ai/pkg/domain/interfaces"
	"github.com/razataiab/aftermath-ai/pkg/domain/interfaces/mocks"
	"github.com/razataiab/aftermath-ai/pkg/domain/model"
	"github.com/razataiab/aftermath-ai/pkg/domain/types"
	llmSvc "github.com/razataiab/aftermath-ai/pkg/service/llm"
)

func TestAssembleConversationDegradesFailedLookups(t *testing.T) {
	ctx := context.Background()

	entries := []model.ChatEntry{
		{UserID: "U1", Text: "db is down"},
		{UserID: "U2", Text: "looking into it"},
		{UserID: "U3", Text: "rolled back"},
	}
	chat := &mocks.ChatClientMock{
		ChannelHistoryFunc: func(ctx context.Context, channelID types.ChannelID) ([]model.ChatEntry, error) {
			return entries, nil
		},
		UserNameFunc: func(ctx context.Context, userID types.UserID) (string, error) {
			switch userID {
			case "U1":
				return "Alice", nil
			case "U2":
				return "", goerr.New("user_not_found")
			default:
				// Resolved but empty is degraded the same way
				return "", nil
			}
		},
	}

	r := NewReport(
		map[types.Platform]interfaces.ChatClient{types.PlatformSlack: chat},
		nil,
		llmSvc.New(nil),
	)

	trigger := model.TriggerContext{Platform: types.PlatformSlack, ChannelID: "C1"}
	messages, err := r.assembleConversation(ctx, chat, trigger)
	gt.NoError(t, err)

	// Every entry survives in retrieval order; only the failed lookups
	// lose their display name
	gt.Equal(t, len(messages), 3)
	gt.Equal(t, messages[0].UserID, types.UserID("U1"))
	gt.Equal(t, messages[0].UserName, "Alice")
	gt.Equal(t, messages[0].Text, "db is down")
	gt.Equal(t, messages[1].UserID, types.UserID("U2"))
	gt.Equal(t, messages[1].UserName, model.UnknownUserName)
	gt.Equal(t, messages[1].Text, "looking into it")
	gt.Equal(t, messages[2].UserID, types.UserID("U3"))
	gt.Equal(t, messages[2].UserName, model.UnknownUserName)
	gt.Equal(t, messages[2].Text, "rolled back")
}
