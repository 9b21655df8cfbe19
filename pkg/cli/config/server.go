package config

import (
	"log/slog"
	"time"

	"github.com/urfave/cli/v3"
)

// Server holds HTTP server configuration
type Server struct {
	Addr            string
	CORSOrigins     []string
	PipelineTimeout time.Duration
}

// Flags returns CLI flags for Server configuration
func (s *Server) Flags() []cli.Flag {
	return []cli.Flag{
		&cli.StringFlag{
			Name:        "addr",
			Usage:       "Server address",
			Value:       "localhost:8080",
			Sources:     cli.EnvVars("AFTERMATH_ADDR"),
			Destination: &s.Addr,
		},
		&cli.StringSliceFlag{
			Name:        "cors-origin",
			Usage:       "Allowed CORS origin (repeatable)",
			Value:       []string{"*"},
			Sources:     cli.EnvVars("AFTERMATH_CORS_ORIGINS"),
			Destination: &s.CORSOrigins,
		},
		&cli.DurationFlag{
			Name:        "pipeline-timeout",
			Usage:       "Deadline for one postmortem pipeline run",
			Value:       5 * time.Minute,
			Sources:     cli.EnvVars("AFTERMATH_PIPELINE_TIMEOUT"),
			Destination: &s.PipelineTimeout,
		},
	}
}

// LogValue returns structured log value
func (s Server) LogValue() slog.Value {
	return slog.GroupValue(
		slog.String("addr", s.Addr),
		slog.Any("cors_origins", s.CORSOrigins),
		slog.Duration("pipeline_timeout", s.PipelineTimeout),
	)
}
