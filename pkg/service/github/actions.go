package github

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/m-mizutani/goerr/v2"
	"github.com/razataiab/aftermath-ai/pkg/domain/interfaces"
)

const apiBase = "https://api.github.com"

// ActionsLogSource fetches the log of the most recently completed
// GitHub Actions workflow run of a repository.
type ActionsLogSource struct {
	httpClient *http.Client
	token      string
	repo       string // "owner/name"
	baseURL    string
}

var _ interfaces.LogSource = (*ActionsLogSource)(nil)

// Option is a functional option for configuring ActionsLogSource
type Option func(*ActionsLogSource)

// WithHTTPClient replaces the default HTTP client
func WithHTTPClient(client *http.Client) Option {
	return func(s *ActionsLogSource) {
		s.httpClient = client
	}
}

// WithBaseURL overrides the API base URL (used in tests)
func WithBaseURL(baseURL string) Option {
	return func(s *ActionsLogSource) {
		s.baseURL = baseURL
	}
}

// NewActionsLogSource creates a GitHub Actions log source
func NewActionsLogSource(token, repo string, opts ...Option) *ActionsLogSource {
	s := &ActionsLogSource{
		httpClient: &http.Client{Timeout: 30 * time.Second},
		token:      token,
		repo:       repo,
		baseURL:    apiBase,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Name implements interfaces.LogSource
func (s *ActionsLogSource) Name() string {
	return "github_actions"
}

// LatestLog returns the log text of the first job of the most recently
// completed workflow run. An empty string with no error means no
// completed run exists.
func (s *ActionsLogSource) LatestLog(ctx context.Context) (string, error) {
	runsURL := fmt.Sprintf("%s/repos/%s/actions/runs?per_page=1&status=completed", s.baseURL, s.repo)
	var runs struct {
		WorkflowRuns []struct {
			ID int64 `json:"id"`
		} `json:"workflow_runs"`
	}
	if err := s.getJSON(ctx, runsURL, &runs); err != nil {
		return "", goerr.Wrap(err, "failed to list workflow runs", goerr.V("repo", s.repo))
	}
	if len(runs.WorkflowRuns) == 0 {
		return "", nil
	}

	jobsURL := fmt.Sprintf("%s/repos/%s/actions/runs/%d/jobs", s.baseURL, s.repo, runs.WorkflowRuns[0].ID)
	var jobs struct {
		Jobs []struct {
			ID int64 `json:"id"`
		} `json:"jobs"`
	}
	if err := s.getJSON(ctx, jobsURL, &jobs); err != nil {
		return "", goerr.Wrap(err, "failed to list workflow jobs", goerr.V("runID", runs.WorkflowRuns[0].ID))
	}
	if len(jobs.Jobs) == 0 {
		return "", nil
	}

	logsURL := fmt.Sprintf("%s/repos/%s/actions/jobs/%d/logs", s.baseURL, s.repo, jobs.Jobs[0].ID)
	return s.fetchLogText(ctx, logsURL)
}

// fetchLogText downloads job log text. The logs endpoint answers with a
// 302 to short-lived blob storage; the redirect target must be fetched
// without the Authorization header.
func (s *ActionsLogSource) fetchLogText(ctx context.Context, url string) (string, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return "", goerr.Wrap(err, "failed to create logs request")
	}
	s.setHeaders(req)

	noRedirect := &http.Client{
		Transport: s.httpClient.Transport,
		Timeout:   s.httpClient.Timeout,
		CheckRedirect: func(req *http.Request, via []*http.Request) error {
			return http.ErrUseLastResponse
		},
	}
	resp, err := noRedirect.Do(req)
	if err != nil {
		return "", goerr.Wrap(err, "failed to fetch job logs")
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusFound {
		location := resp.Header.Get("Location")
		blobReq, err := http.NewRequestWithContext(ctx, http.MethodGet, location, nil)
		if err != nil {
			return "", goerr.Wrap(err, "failed to create log download request")
		}
		blobResp, err := s.httpClient.Do(blobReq)
		if err != nil {
			return "", goerr.Wrap(err, "failed to download job logs")
		}
		defer blobResp.Body.Close()
		return readLogBody(blobResp)
	}

	return readLogBody(resp)
}

func readLogBody(resp *http.Response) (string, error) {
	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", goerr.Wrap(err, "failed to read log body")
	}
	if resp.StatusCode != http.StatusOK {
		return "", goerr.New("unexpected log response status",
			goerr.V("status", resp.StatusCode),
		)
	}
	return string(body), nil
}

func (s *ActionsLogSource) getJSON(ctx context.Context, url string, out any) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return goerr.Wrap(err, "failed to create request")
	}
	s.setHeaders(req)

	resp, err := s.httpClient.Do(req)
	if err != nil {
		return goerr.Wrap(err, "request failed")
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return goerr.Wrap(err, "failed to read response body")
	}
	if resp.StatusCode != http.StatusOK {
		return goerr.New("unexpected response status",
			goerr.V("status", resp.StatusCode),
			goerr.V("body", string(body)),
		)
	}
	return json.Unmarshal(body, out)
}

func (s *ActionsLogSource) setHeaders(req *http.Request) {
	req.Header.Set("Authorization", "Bearer "+s.token)
	req.Header.Set("Accept", "application/vnd.github.v3+json")
	req.Header.Set("X-GitHub-Api-Version", "2022-11-28")
}
