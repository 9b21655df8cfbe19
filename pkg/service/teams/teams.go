package teams

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/m-mizutani/goerr/v2"
	"github.com/razataiab/aftermath-ai/pkg/domain/interfaces"
	"github.com/razataiab/aftermath-ai/pkg/domain/model"
	"github.com/razataiab/aftermath-ai/pkg/domain/types"
)

const graphBase = "https://graph.microsoft.com/v1.0"

// Service provides Microsoft Teams chat operations via the Graph API.
// There is no maintained Graph SDK for this surface, so it speaks REST
// directly with a bearer token.
type Service struct {
	httpClient *http.Client
	token      string
	baseURL    string
}

var _ interfaces.ChatClient = (*Service)(nil)

// Option is a functional option for configuring Service
type Option func(*Service)

// WithHTTPClient replaces the default HTTP client
func WithHTTPClient(client *http.Client) Option {
	return func(s *Service) {
		s.httpClient = client
	}
}

// WithBaseURL overrides the Graph API base URL (used in tests)
func WithBaseURL(baseURL string) Option {
	return func(s *Service) {
		s.baseURL = baseURL
	}
}

// New creates a new Teams service with a Graph API token
func New(token string, opts ...Option) *Service {
	s := &Service{
		httpClient: &http.Client{Timeout: 30 * time.Second},
		token:      token,
		baseURL:    graphBase,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

type channelMessagesResponse struct {
	Value []struct {
		CreatedDateTime time.Time `json:"createdDateTime"`
		From            struct {
			User struct {
				ID          string `json:"id"`
				DisplayName string `json:"displayName"`
			} `json:"user"`
		} `json:"from"`
		Body struct {
			Content string `json:"content"`
		} `json:"body"`
	} `json:"value"`
}

// ChannelHistory retrieves the channel messages in the order the Graph
// API returned them.
func (s *Service) ChannelHistory(ctx context.Context, channelID types.ChannelID) ([]model.ChatEntry, error) {
	url := fmt.Sprintf("%s/teams/%s/channels/%s/messages", s.baseURL, channelID, channelID)
	body, err := s.get(ctx, url)
	if err != nil {
		return nil, goerr.Wrap(err, "failed to get Teams channel messages",
			goerr.V("channelID", channelID),
		)
	}

	var resp channelMessagesResponse
	if err := json.Unmarshal(body, &resp); err != nil {
		return nil, goerr.Wrap(err, "failed to decode Teams channel messages")
	}

	entries := make([]model.ChatEntry, 0, len(resp.Value))
	for _, msg := range resp.Value {
		entries = append(entries, model.ChatEntry{
			UserID:    types.UserID(msg.From.User.ID),
			Text:      msg.Body.Content,
			Timestamp: msg.CreatedDateTime,
		})
	}

	return entries, nil
}

// UserName resolves a Teams user ID to a display name
func (s *Service) UserName(ctx context.Context, userID types.UserID) (string, error) {
	body, err := s.get(ctx, fmt.Sprintf("%s/users/%s", s.baseURL, userID))
	if err != nil {
		return "", goerr.Wrap(err, "failed to get Teams user",
			goerr.V("userID", userID),
		)
	}

	var user struct {
		DisplayName string `json:"displayName"`
	}
	if err := json.Unmarshal(body, &user); err != nil {
		return "", goerr.Wrap(err, "failed to decode Teams user")
	}
	return user.DisplayName, nil
}

// PostMessage posts a message to a Teams channel
func (s *Service) PostMessage(ctx context.Context, channelID types.ChannelID, text string) error {
	payload, err := json.Marshal(map[string]any{
		"body": map[string]string{"content": text},
	})
	if err != nil {
		return goerr.Wrap(err, "failed to encode Teams message")
	}

	url := fmt.Sprintf("%s/teams/%s/channels/%s/messages", s.baseURL, channelID, channelID)
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(payload))
	if err != nil {
		return goerr.Wrap(err, "failed to create Teams request")
	}
	req.Header.Set("Authorization", "Bearer "+s.token)
	req.Header.Set("Content-Type", "application/json")

	resp, err := s.httpClient.Do(req)
	if err != nil {
		return goerr.Wrap(err, "failed to post message to Teams",
			goerr.V("channelID", channelID),
		)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		respBody, _ := io.ReadAll(resp.Body)
		return goerr.New("Teams message post rejected",
			goerr.V("status", resp.StatusCode),
			goerr.V("body", string(respBody)),
			goerr.V("channelID", channelID),
		)
	}
	return nil
}

func (s *Service) get(ctx context.Context, url string) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, goerr.Wrap(err, "failed to create request")
	}
	req.Header.Set("Authorization", "Bearer "+s.token)

	resp, err := s.httpClient.Do(req)
	if err != nil {
		return nil, goerr.Wrap(err, "request failed")
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, goerr.Wrap(err, "failed to read response body")
	}
	if resp.StatusCode != http.StatusOK {
		return nil, goerr.New("unexpected response status",
			goerr.V("status", resp.StatusCode),
			goerr.V("body", string(body)),
		)
	}
	return body, nil
}
