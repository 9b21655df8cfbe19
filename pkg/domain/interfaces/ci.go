package interfaces

//go:generate moq -out mocks/ci_mock.go -pkg mocks . LogSource

import "context"

// LogSource is a CI/CD log collaborator (GitHub Actions, Jenkins).
// Implementations are only constructed when their integration is
// configured; an unconfigured integration is represented by the source
// being absent entirely.
type LogSource interface {
	// Name identifies the source for diagnostics (e.g. "github_actions").
	Name() string

	// LatestLog fetches the log text of the most recently completed
	// run. It returns an empty string with no error when no completed
	// run exists.
	LatestLog(ctx context.Context) (string, error)
}
