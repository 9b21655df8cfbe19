package slack_test

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/m-mizutani/gt"
	"github.com/razataiab/aftermath-ai/pkg/domain/types"
	slackSvc "github.com/razataiab/aftermath-ai/pkg/service/slack"
	"github.com/slack-go/slack"
)

func newTestService(t *testing.T, handler http.HandlerFunc) (*slackSvc.Service, func()) {
	t.Helper()
	server := httptest.NewServer(handler)
	service := slackSvc.New("xoxb-test", slack.OptionAPIURL(server.URL+"/"))
	return service, server.Close
}

func TestChannelHistoryFiltersThreadReplies(t *testing.T) {
	ctx := context.Background()

	service, closeFn := newTestService(t, func(w http.ResponseWriter, r *http.Request) {
		gt.Equal(t, r.URL.Path, "/conversations.history")
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{
			"ok": true,
			"messages": [
				{"type": "message", "user": "U3", "text": "resolved", "ts": "1700000300.000100"},
				{"type": "message", "user": "U2", "text": "reply in thread", "ts": "1700000200.000100", "thread_ts": "1700000100.000100"},
				{"type": "message", "user": "U1", "text": "db is down", "ts": "1700000100.000100", "thread_ts": "1700000100.000100"}
			]
		}`))
	})
	defer closeFn()

	entries, err := service.ChannelHistory(ctx, "C123")
	gt.NoError(t, err)

	// The reply is dropped, the thread parent survives
	gt.Equal(t, len(entries), 2)
	gt.Equal(t, entries[0].UserID, types.UserID("U3"))
	gt.Equal(t, entries[0].Text, "resolved")
	gt.Equal(t, entries[1].UserID, types.UserID("U1"))
	gt.Equal(t, entries[1].Text, "db is down")
	gt.Equal(t, entries[1].Timestamp.Unix(), int64(1700000100))
}

func TestUserNamePrefersRealName(t *testing.T) {
	ctx := context.Background()

	service, closeFn := newTestService(t, func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{
			"ok": true,
			"user": {"id": "U1", "name": "alice.w", "profile": {"real_name": "Alice Wong"}}
		}`))
	})
	defer closeFn()

	name, err := service.UserName(ctx, "U1")
	gt.NoError(t, err)
	gt.Equal(t, name, "Alice Wong")
}

func TestUserNameFallsBackToAccountName(t *testing.T) {
	ctx := context.Background()

	service, closeFn := newTestService(t, func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"ok": true, "user": {"id": "U1", "name": "alice.w", "profile": {}}}`))
	})
	defer closeFn()

	name, err := service.UserName(ctx, "U1")
	gt.NoError(t, err)
	gt.Equal(t, name, "alice.w")
}

func TestChannelHistoryError(t *testing.T) {
	ctx := context.Background()

	service, closeFn := newTestService(t, func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"ok": false, "error": "channel_not_found"}`))
	})
	defer closeFn()

	_, err := service.ChannelHistory(ctx, "C404")
	gt.Error(t, err)
}

func TestPostMessage(t *testing.T) {
	ctx := context.Background()

	var gotChannel string
	service, closeFn := newTestService(t, func(w http.ResponseWriter, r *http.Request) {
		gt.Equal(t, r.URL.Path, "/chat.postMessage")
		gt.NoError(t, r.ParseForm())
		gotChannel = r.Form.Get("channel")
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"ok": true, "channel": "C123", "ts": "1700000400.000100"}`))
	})
	defer closeFn()

	gt.NoError(t, service.PostMessage(ctx, "C123", "*Postmortem* ready"))
	gt.Equal(t, gotChannel, "C123")
}
