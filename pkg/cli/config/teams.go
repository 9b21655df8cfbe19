package config

import (
	"log/slog"

	"github.com/urfave/cli/v3"
)

// Teams holds Microsoft Teams configuration
type Teams struct {
	GraphToken string
}

// Flags returns CLI flags for Teams configuration
func (t *Teams) Flags() []cli.Flag {
	return []cli.Flag{
		&cli.StringFlag{
			Name:        "teams-graph-token",
			Usage:       "Microsoft Graph API token for Teams access",
			Category:    "Teams",
			Sources:     cli.EnvVars("AFTERMATH_TEAMS_GRAPH_TOKEN"),
			Destination: &t.GraphToken,
		},
	}
}

// IsConfigured checks if Teams is configured
func (t *Teams) IsConfigured() bool {
	return t.GraphToken != ""
}

// LogValue returns structured log value
func (t Teams) LogValue() slog.Value {
	return slog.GroupValue(
		slog.Bool("has_graph_token", t.GraphToken != ""),
	)
}
