package usecase_test

import (
	"context"
	"strings"
	"testing"
	"time"
	"unicode/utf8"

	"github.com/m-mizutani/goerr/v2"
	"github.com/m-mizutani/gollem"
	"github.com/m-mizutani/gollem/mock"
	"github.com/m-mizutani/gt"
	"github.com/razataiab/aftermath-ai/pkg/domain/interfaces"
	"github.com/razataiab/aftermath-ai/pkg/domain/interfaces/mocks"
	"github.com/razataiab/aftermath-ai/pkg/domain/model"
	"github.com/razataiab/aftermath-ai/pkg/domain/types"
	llmSvc "github.com/razataiab/aftermath-ai/pkg/service/llm"
	"github.com/razataiab/aftermath-ai/pkg/usecase"
)

// scriptedLLM returns a gollem mock that answers each generation call
// in order from responses and records the prompts it received. A nil
// entry in errs means the call succeeds.
func scriptedLLM(prompts *[]string, responses []string, errs []error) *mock.LLMClientMock {
	call := 0
	return &mock.LLMClientMock{
		NewSessionFunc: func(ctx context.Context, options ...gollem.SessionOption) (gollem.Session, error) {
			return &mock.SessionMock{
				GenerateContentFunc: func(ctx context.Context, input ...gollem.Input) (*gollem.Response, error) {
					idx := call
					call++
					for _, in := range input {
						if text, ok := in.(gollem.Text); ok {
							*prompts = append(*prompts, string(text))
						}
					}
					if idx < len(errs) && errs[idx] != nil {
						return nil, errs[idx]
					}
					if idx >= len(responses) {
						return nil, goerr.New("unexpected LLM call")
					}
					return &gollem.Response{Texts: []string{responses[idx]}}, nil
				},
			}, nil
		},
	}
}

func slackChatMock(entries []model.ChatEntry, posted *[]string) *mocks.ChatClientMock {
	return &mocks.ChatClientMock{
		ChannelHistoryFunc: func(ctx context.Context, channelID types.ChannelID) ([]model.ChatEntry, error) {
			return entries, nil
		},
		UserNameFunc: func(ctx context.Context, userID types.UserID) (string, error) {
			return "user-" + userID.String(), nil
		},
		PostMessageFunc: func(ctx context.Context, channelID types.ChannelID, text string) error {
			*posted = append(*posted, text)
			return nil
		},
	}
}

func slackTrigger() model.TriggerContext {
	return model.TriggerContext{
		Platform:        types.PlatformSlack,
		ChannelID:       "C123",
		ChannelName:     "incident-db",
		UserID:          "U1",
		UserName:        "alice",
		TriggerPlatform: "slack_slash",
	}
}

func TestGeneratePipeline(t *testing.T) {
	ctx := context.Background()

	entries := []model.ChatEntry{
		{UserID: "U1", Text: "db is down", Timestamp: time.Unix(100, 0)},
		{UserID: "U2", Text: "looking into it", Timestamp: time.Unix(110, 0)},
		{UserID: "U1", Text: "rolled back the deploy", Timestamp: time.Unix(120, 0)},
	}

	var posted []string
	var prompts []string
	chat := slackChatMock(entries, &posted)
	llmClient := scriptedLLM(&prompts, []string{
		"## Summary\nThe database failed.", "YES",
		"## Summary\nThe database failed.", "YES",
	}, nil)

	report := usecase.NewReport(
		map[types.Platform]interfaces.ChatClient{types.PlatformSlack: chat},
		nil,
		llmSvc.New(llmClient),
	)

	gt.NoError(t, report.Generate(ctx, slackTrigger()))

	// Drafting call then validation call
	gt.Equal(t, len(prompts), 2)

	// Context lines keep retrieval order
	draftPrompt := prompts[0]
	first := strings.Index(draftPrompt, "[slack] U1: db is down")
	second := strings.Index(draftPrompt, "[slack] U2: looking into it")
	third := strings.Index(draftPrompt, "[slack] U1: rolled back the deploy")
	gt.True(t, first >= 0)
	gt.True(t, second > first)
	gt.True(t, third > second)

	// No CI configured means no log block in the context
	gt.False(t, strings.Contains(draftPrompt, "--- Deployment Logs ---"))

	gt.Equal(t, len(posted), 1)
	gt.True(t, strings.HasPrefix(posted[0], "*Postmortem for incident `"))
	gt.True(t, strings.Contains(posted[0], "The database failed."))

	// A second run over the same history formats the same context byte
	// for byte
	gt.NoError(t, report.Generate(ctx, slackTrigger()))
	gt.Equal(t, len(prompts), 4)
	gt.Equal(t, prompts[2], prompts[0])
}

func TestGenerateNoChatClientForPlatform(t *testing.T) {
	ctx := context.Background()

	var prompts []string
	report := usecase.NewReport(
		map[types.Platform]interfaces.ChatClient{},
		nil,
		llmSvc.New(scriptedLLM(&prompts, nil, nil)),
	)

	err := report.Generate(ctx, slackTrigger())
	gt.Error(t, err)
	gt.Equal(t, len(prompts), 0)
}

func TestGenerateHistoryFailureIsFatal(t *testing.T) {
	ctx := context.Background()

	var posted []string
	chat := &mocks.ChatClientMock{
		ChannelHistoryFunc: func(ctx context.Context, channelID types.ChannelID) ([]model.ChatEntry, error) {
			return nil, goerr.New("channel_not_found")
		},
		PostMessageFunc: func(ctx context.Context, channelID types.ChannelID, text string) error {
			posted = append(posted, text)
			return nil
		},
	}

	var prompts []string
	report := usecase.NewReport(
		map[types.Platform]interfaces.ChatClient{types.PlatformSlack: chat},
		nil,
		llmSvc.New(scriptedLLM(&prompts, nil, nil)),
	)

	err := report.Generate(ctx, slackTrigger())
	gt.Error(t, err)
	gt.Equal(t, len(prompts), 0)
	gt.Equal(t, len(posted), 0)
}

func TestGenerateWithDeploymentLogs(t *testing.T) {
	ctx := context.Background()

	entries := []model.ChatEntry{{UserID: "U1", Text: "deploy failed?"}}
	var posted []string
	var prompts []string
	chat := slackChatMock(entries, &posted)

	logSource := &mocks.LogSourceMock{
		NameFunc: func() string { return "github_actions" },
		LatestLogFunc: func(ctx context.Context) (string, error) {
			return "2026-09-01 ERROR migration step failed", nil
		},
	}

	report := usecase.NewReport(
		map[types.Platform]interfaces.ChatClient{types.PlatformSlack: chat},
		[]interfaces.LogSource{logSource},
		llmSvc.New(scriptedLLM(&prompts, []string{"draft", "YES"}, nil)),
	)

	gt.NoError(t, report.Generate(ctx, slackTrigger()))

	draftPrompt := prompts[0]
	gt.True(t, strings.Contains(draftPrompt, "--- Deployment Logs ---"))
	gt.True(t, strings.Contains(draftPrompt, "ERROR migration step failed"))
	gt.True(t, strings.Contains(draftPrompt, "--- End Deployment Logs ---"))
}

func TestGenerateLogSourceFailureIsBestEffort(t *testing.T) {
	ctx := context.Background()

	entries := []model.ChatEntry{{UserID: "U1", Text: "anything in CI?"}}
	var posted []string
	var prompts []string
	chat := slackChatMock(entries, &posted)

	failing := &mocks.LogSourceMock{
		NameFunc: func() string { return "jenkins" },
		LatestLogFunc: func(ctx context.Context) (string, error) {
			return "", goerr.New("jenkins unreachable")
		},
	}

	report := usecase.NewReport(
		map[types.Platform]interfaces.ChatClient{types.PlatformSlack: chat},
		[]interfaces.LogSource{failing},
		llmSvc.New(scriptedLLM(&prompts, []string{"draft", "YES"}, nil)),
	)

	gt.NoError(t, report.Generate(ctx, slackTrigger()))
	gt.False(t, strings.Contains(prompts[0], "--- Deployment Logs ---"))
	gt.Equal(t, len(posted), 1)
}

func TestGenerateLogSourceFallbackOrder(t *testing.T) {
	ctx := context.Background()

	entries := []model.ChatEntry{{UserID: "U1", Text: "checking"}}
	var posted []string
	var prompts []string
	chat := slackChatMock(entries, &posted)

	empty := &mocks.LogSourceMock{
		NameFunc:      func() string { return "github_actions" },
		LatestLogFunc: func(ctx context.Context) (string, error) { return "", nil },
	}
	backup := &mocks.LogSourceMock{
		NameFunc:      func() string { return "jenkins" },
		LatestLogFunc: func(ctx context.Context) (string, error) { return "BUILD FAILURE in step 3", nil },
	}

	report := usecase.NewReport(
		map[types.Platform]interfaces.ChatClient{types.PlatformSlack: chat},
		[]interfaces.LogSource{empty, backup},
		llmSvc.New(scriptedLLM(&prompts, []string{"draft", "YES"}, nil)),
	)

	gt.NoError(t, report.Generate(ctx, slackTrigger()))
	gt.True(t, strings.Contains(prompts[0], "BUILD FAILURE in step 3"))
}

func TestGenerateOversizedLogsSummarized(t *testing.T) {
	ctx := context.Background()

	bigLog := strings.Repeat("line of deployment output\n", 600)
	gt.True(t, len(bigLog) > 10000)

	entries := []model.ChatEntry{{UserID: "U1", Text: "deploy logs are huge"}}
	var posted []string
	var prompts []string
	chat := slackChatMock(entries, &posted)

	logSource := &mocks.LogSourceMock{
		NameFunc:      func() string { return "github_actions" },
		LatestLogFunc: func(ctx context.Context) (string, error) { return bigLog, nil },
	}

	// First call summarizes the log, then draft, then validation
	report := usecase.NewReport(
		map[types.Platform]interfaces.ChatClient{types.PlatformSlack: chat},
		[]interfaces.LogSource{logSource},
		llmSvc.New(scriptedLLM(&prompts, []string{"- deploy output repeated", "draft", "YES"}, nil)),
	)

	gt.NoError(t, report.Generate(ctx, slackTrigger()))
	gt.Equal(t, len(prompts), 3)
	gt.True(t, strings.Contains(prompts[1], "- deploy output repeated"))
	gt.False(t, strings.Contains(prompts[1], bigLog))
}

func TestGenerateOversizedSummaryBounded(t *testing.T) {
	ctx := context.Background()

	bigLog := strings.Repeat("x", 20000)

	entries := []model.ChatEntry{{UserID: "U1", Text: "deploy logs are huge"}}
	var posted []string
	var prompts []string
	chat := slackChatMock(entries, &posted)

	logSource := &mocks.LogSourceMock{
		NameFunc:      func() string { return "github_actions" },
		LatestLogFunc: func(ctx context.Context) (string, error) { return bigLog, nil },
	}

	// The summarizer itself overruns the budget; the budget still holds
	report := usecase.NewReport(
		map[types.Platform]interfaces.ChatClient{types.PlatformSlack: chat},
		[]interfaces.LogSource{logSource},
		llmSvc.New(scriptedLLM(&prompts, []string{strings.Repeat("y", 12000), "draft", "YES"}, nil)),
	)

	gt.NoError(t, report.Generate(ctx, slackTrigger()))
	gt.Equal(t, len(prompts), 3)
	gt.True(t, strings.Contains(prompts[1], strings.Repeat("y", 10000)))
	gt.False(t, strings.Contains(prompts[1], strings.Repeat("y", 10001)))
}

func TestGenerateTruncationKeepsRunesIntact(t *testing.T) {
	ctx := context.Background()

	// 3-byte runes that do not divide the budget evenly, so a naive
	// byte cut would split one
	bigLog := strings.Repeat("ログ出力あり", 700)
	gt.True(t, len(bigLog) > 10000)

	entries := []model.ChatEntry{{UserID: "U1", Text: "deploy logs are huge"}}
	var posted []string
	var prompts []string
	chat := slackChatMock(entries, &posted)

	logSource := &mocks.LogSourceMock{
		NameFunc:      func() string { return "github_actions" },
		LatestLogFunc: func(ctx context.Context) (string, error) { return bigLog, nil },
	}

	report := usecase.NewReport(
		map[types.Platform]interfaces.ChatClient{types.PlatformSlack: chat},
		[]interfaces.LogSource{logSource},
		llmSvc.New(scriptedLLM(&prompts,
			[]string{"", "draft", "YES"},
			[]error{goerr.New("summarization unavailable"), nil, nil},
		)),
	)

	gt.NoError(t, report.Generate(ctx, slackTrigger()))
	gt.Equal(t, len(prompts), 3)
	gt.True(t, utf8.ValidString(prompts[1]))
}

func TestGenerateSummarizationFailureTruncates(t *testing.T) {
	ctx := context.Background()

	bigLog := strings.Repeat("x", 20000)

	entries := []model.ChatEntry{{UserID: "U1", Text: "deploy logs are huge"}}
	var posted []string
	var prompts []string
	chat := slackChatMock(entries, &posted)

	logSource := &mocks.LogSourceMock{
		NameFunc:      func() string { return "github_actions" },
		LatestLogFunc: func(ctx context.Context) (string, error) { return bigLog, nil },
	}

	report := usecase.NewReport(
		map[types.Platform]interfaces.ChatClient{types.PlatformSlack: chat},
		[]interfaces.LogSource{logSource},
		llmSvc.New(scriptedLLM(&prompts,
			[]string{"", "draft", "YES"},
			[]error{goerr.New("summarization unavailable"), nil, nil},
		)),
	)

	gt.NoError(t, report.Generate(ctx, slackTrigger()))
	gt.Equal(t, len(prompts), 3)
	// Truncated to the budget, not the full 20000 chars
	gt.True(t, strings.Contains(prompts[1], strings.Repeat("x", 10000)))
	gt.False(t, strings.Contains(prompts[1], strings.Repeat("x", 10001)))
}

func TestGenerateDraftFailurePostsNotice(t *testing.T) {
	ctx := context.Background()

	entries := []model.ChatEntry{{UserID: "U1", Text: "help"}}
	var posted []string
	var prompts []string
	chat := slackChatMock(entries, &posted)

	report := usecase.NewReport(
		map[types.Platform]interfaces.ChatClient{types.PlatformSlack: chat},
		nil,
		llmSvc.New(scriptedLLM(&prompts, []string{""}, []error{goerr.New("model overloaded")})),
	)

	err := report.Generate(ctx, slackTrigger())
	gt.Error(t, err)
	gt.Equal(t, len(posted), 1)
	gt.True(t, strings.Contains(posted[0], "Postmortem generation failed"))
}

func TestGenerateValidationCallFailurePostsNotice(t *testing.T) {
	ctx := context.Background()

	entries := []model.ChatEntry{{UserID: "U1", Text: "help"}}
	var posted []string
	var prompts []string
	chat := slackChatMock(entries, &posted)

	report := usecase.NewReport(
		map[types.Platform]interfaces.ChatClient{types.PlatformSlack: chat},
		nil,
		llmSvc.New(scriptedLLM(&prompts,
			[]string{"draft", ""},
			[]error{nil, goerr.New("model overloaded")},
		)),
	)

	err := report.Generate(ctx, slackTrigger())
	gt.Error(t, err)
	gt.Equal(t, len(posted), 1)
	gt.True(t, strings.Contains(posted[0], "Postmortem generation failed"))
}

func TestGenerateNegativeVerdictStillDispatches(t *testing.T) {
	ctx := context.Background()

	entries := []model.ChatEntry{{UserID: "U1", Text: "minor blip"}}
	var posted []string
	var prompts []string
	chat := slackChatMock(entries, &posted)

	report := usecase.NewReport(
		map[types.Platform]interfaces.ChatClient{types.PlatformSlack: chat},
		nil,
		llmSvc.New(scriptedLLM(&prompts, []string{"draft", "NO"}, nil)),
	)

	gt.NoError(t, report.Generate(ctx, slackTrigger()))
	gt.Equal(t, len(posted), 1)
	gt.True(t, strings.Contains(posted[0], "draft"))
}

func TestDispatchMarkupPerPlatform(t *testing.T) {
	ctx := context.Background()

	cases := []struct {
		platform types.Platform
		prefix   string
	}{
		{types.PlatformSlack, "*Postmortem for incident `"},
		{types.PlatformDiscord, "**Postmortem for incident `"},
		{types.PlatformTeams, "**Postmortem for incident `"},
	}

	for _, tc := range cases {
		t.Run(tc.platform.String(), func(t *testing.T) {
			var posted []string
			chat := slackChatMock(nil, &posted)

			var prompts []string
			report := usecase.NewReport(
				map[types.Platform]interfaces.ChatClient{tc.platform: chat},
				nil,
				llmSvc.New(scriptedLLM(&prompts, nil, nil)),
			)

			incident := &model.Incident{
				ID:        types.NewIncidentID(),
				ChannelID: "CH1",
				Source:    tc.platform,
			}
			gt.NoError(t, report.Dispatch(ctx, incident, "report body"))
			gt.Equal(t, len(posted), 1)
			gt.True(t, strings.HasPrefix(posted[0], tc.prefix))
		})
	}
}

func TestDispatchUnrecognizedSource(t *testing.T) {
	ctx := context.Background()

	var posted []string
	chat := slackChatMock(nil, &posted)

	var prompts []string
	report := usecase.NewReport(
		map[types.Platform]interfaces.ChatClient{types.PlatformSlack: chat},
		nil,
		llmSvc.New(scriptedLLM(&prompts, nil, nil)),
	)

	incident := &model.Incident{
		ID:        types.NewIncidentID(),
		ChannelID: "CH1",
		Source:    types.PlatformUnknown,
	}
	err := report.Dispatch(ctx, incident, "report body")
	gt.Error(t, err)
	gt.Equal(t, len(posted), 0)
}

func TestDispatchMissingOutboundClient(t *testing.T) {
	ctx := context.Background()

	var prompts []string
	report := usecase.NewReport(
		map[types.Platform]interfaces.ChatClient{},
		nil,
		llmSvc.New(scriptedLLM(&prompts, nil, nil)),
	)

	incident := &model.Incident{
		ID:        types.NewIncidentID(),
		ChannelID: "CH1",
		Source:    types.PlatformTeams,
	}
	gt.Error(t, report.Dispatch(ctx, incident, "report body"))
}
