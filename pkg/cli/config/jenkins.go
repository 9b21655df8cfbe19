package config

import (
	"log/slog"

	"github.com/urfave/cli/v3"
)

// Jenkins holds Jenkins log integration configuration
type Jenkins struct {
	URL      string
	Username string
	APIToken string
	JobName  string
}

// Flags returns CLI flags for Jenkins configuration
func (j *Jenkins) Flags() []cli.Flag {
	return []cli.Flag{
		&cli.StringFlag{
			Name:        "jenkins-url",
			Usage:       "Jenkins base URL",
			Category:    "Jenkins",
			Sources:     cli.EnvVars("AFTERMATH_JENKINS_URL"),
			Destination: &j.URL,
		},
		&cli.StringFlag{
			Name:        "jenkins-username",
			Usage:       "Jenkins username",
			Category:    "Jenkins",
			Sources:     cli.EnvVars("AFTERMATH_JENKINS_USERNAME"),
			Destination: &j.Username,
		},
		&cli.StringFlag{
			Name:        "jenkins-api-token",
			Usage:       "Jenkins API token",
			Category:    "Jenkins",
			Sources:     cli.EnvVars("AFTERMATH_JENKINS_API_TOKEN"),
			Destination: &j.APIToken,
		},
		&cli.StringFlag{
			Name:        "jenkins-job-name",
			Usage:       "Jenkins job to fetch build logs from",
			Category:    "Jenkins",
			Sources:     cli.EnvVars("AFTERMATH_JENKINS_JOB_NAME"),
			Destination: &j.JobName,
		},
	}
}

// IsConfigured checks if the Jenkins integration is configured
func (j *Jenkins) IsConfigured() bool {
	return j.URL != "" && j.Username != "" && j.APIToken != "" && j.JobName != ""
}

// LogValue returns structured log value
func (j Jenkins) LogValue() slog.Value {
	return slog.GroupValue(
		slog.String("url", j.URL),
		slog.String("username", j.Username),
		slog.Bool("has_api_token", j.APIToken != ""),
		slog.String("job_name", j.JobName),
	)
}
