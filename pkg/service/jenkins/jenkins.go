package jenkins

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

// BuildLogSource fetches the console log of the most recent build of a
// Jenkins job.
type BuildLogSource struct {
	httpClient *http.Client
	baseURL    string
	username   string
	apiToken   string
	jobName    string
}

var _ interfaces.LogSource = (*BuildLogSource)(nil)

// Option is a functional option for configuring BuildLogSource
type Option func(*BuildLogSource)

// WithHTTPClient replaces the default HTTP client
func WithHTTPClient(client *http.Client) Option {
	return func(s *BuildLogSource) {
		s.httpClient = client
	}
}

// NewBuildLogSource creates a Jenkins build log source
func NewBuildLogSource(baseURL, username, apiToken, jobName string, opts ...Option) *BuildLogSource {
	s := &BuildLogSource{
		httpClient: &http.Client{Timeout: 30 * time.Second},
		baseURL:    baseURL,
		username:   username,
		apiToken:   apiToken,
		jobName:    jobName,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Name implements interfaces.LogSource
func (s *BuildLogSource) Name() string {
	return "jenkins"
}

// LatestLog returns the console text of the job's last build. An empty
// string with no error means the job has no builds yet.
func (s *BuildLogSource) LatestLog(ctx context.Context) (string, error) {
	jobURL := fmt.Sprintf("%s/job/%s/api/json", s.baseURL, s.jobName)
	body, err := s.get(ctx, jobURL)
	if err != nil {
		return "", goerr.Wrap(err, "failed to get Jenkins job", goerr.V("job", s.jobName))
	}

	var job struct {
		LastBuild struct {
			Number int `json:"number"`
		} `json:"lastBuild"`
	}
	if err := json.Unmarshal(body, &job); err != nil {
		return "", goerr.Wrap(err, "failed to decode Jenkins job")
	}
	if job.LastBuild.Number == 0 {
		return "", nil
	}

	logURL := fmt.Sprintf("%s/job/%s/%d/consoleText", s.baseURL, s.jobName, job.LastBuild.Number)
	log, err := s.get(ctx, logURL)
	if err != nil {
		return "", goerr.Wrap(err, "failed to get Jenkins build log",
			goerr.V("job", s.jobName),
			goerr.V("build", job.LastBuild.Number),
		)
	}
	return string(log), nil
}

func (s *BuildLogSource) get(ctx context.Context, url string) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, goerr.Wrap(err, "failed to create request")
	}
	req.SetBasicAuth(s.username, s.apiToken)

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
		)
	}
	return body, nil
}
