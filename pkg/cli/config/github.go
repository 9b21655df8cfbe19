package config

import (
	"log/slog"

	"github.com/urfave/cli/v3"
)

// GitHub holds GitHub Actions log integration configuration
type GitHub struct {
	Token string
	Repo  string // "owner/name"
}

// Flags returns CLI flags for GitHub configuration
func (g *GitHub) Flags() []cli.Flag {
	return []cli.Flag{
		&cli.StringFlag{
			Name:        "github-token",
			Usage:       "GitHub token for Actions log access",
			Category:    "GitHub",
			Sources:     cli.EnvVars("AFTERMATH_GITHUB_TOKEN"),
			Destination: &g.Token,
		},
		&cli.StringFlag{
			Name:        "github-repo",
			Usage:       "GitHub repository to fetch workflow logs from (owner/name)",
			Category:    "GitHub",
			Sources:     cli.EnvVars("AFTERMATH_GITHUB_REPO"),
			Destination: &g.Repo,
		},
	}
}

// IsConfigured checks if the GitHub Actions integration is configured
func (g *GitHub) IsConfigured() bool {
	return g.Token != "" && g.Repo != ""
}

// LogValue returns structured log value
func (g GitHub) LogValue() slog.Value {
	return slog.GroupValue(
		slog.Bool("has_token", g.Token != ""),
		slog.String("repo", g.Repo),
	)
}
