package cli

import (
	"context"
	"crypto/ed25519"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/m-mizutani/ctxlog"
	"github.com/m-mizutani/goerr/v2"
	"github.com/razataiab/aftermath-ai/pkg/cli/config"
	controller "github.com/razataiab/aftermath-ai/pkg/controller/http"
	"github.com/razataiab/aftermath-ai/pkg/domain/interfaces"
	"github.com/razataiab/aftermath-ai/pkg/domain/types"
	discordSvc "github.com/razataiab/aftermath-ai/pkg/service/discord"
	githubSvc "github.com/razataiab/aftermath-ai/pkg/service/github"
	jenkinsSvc "github.com/razataiab/aftermath-ai/pkg/service/jenkins"
	llmSvc "github.com/razataiab/aftermath-ai/pkg/service/llm"
	slackSvc "github.com/razataiab/aftermath-ai/pkg/service/slack"
	teamsSvc "github.com/razataiab/aftermath-ai/pkg/service/teams"
	"github.com/razataiab/aftermath-ai/pkg/usecase"
	"github.com/urfave/cli/v3"
)

func cmdServe() *cli.Command {
	var (
		serverCfg  config.Server
		slackCfg   config.Slack
		discordCfg config.Discord
		teamsCfg   config.Teams
		githubCfg  config.GitHub
		jenkinsCfg config.Jenkins
		geminiCfg  config.Gemini
	)

	flags := joinFlags(
		serverCfg.Flags(),
		slackCfg.Flags(),
		discordCfg.Flags(),
		teamsCfg.Flags(),
		githubCfg.Flags(),
		jenkinsCfg.Flags(),
		geminiCfg.Flags(),
	)

	return &cli.Command{
		Name:  "serve",
		Usage: "Start HTTP server",
		Flags: flags,
		Action: func(ctx context.Context, c *cli.Command) error {
			logger := ctxlog.From(ctx)

			logger.Info("Starting aftermath server",
				slog.String("addr", serverCfg.Addr),
				slog.Any("server", serverCfg),
				slog.Any("slack", slackCfg),
				slog.Any("discord", discordCfg),
				slog.Any("teams", teamsCfg),
				slog.Any("github", githubCfg),
				slog.Any("jenkins", jenkinsCfg),
				slog.Any("gemini", geminiCfg),
			)

			// Create gollem LLM client using Gemini configuration
			if !geminiCfg.IsConfigured() {
				return goerr.New("LLM client configuration is required. Please configure Gemini settings")
			}
			gollemClient, err := geminiCfg.Configure(ctx)
			if err != nil {
				return goerr.Wrap(err, "failed to configure Gemini client")
			}
			if closer, ok := gollemClient.(interface{ Close() error }); ok && closer != nil {
				defer closer.Close()
			}

			// Build chat clients for each configured platform
			chats := map[types.Platform]interfaces.ChatClient{}

			if slackCfg.IsConfigured() {
				chats[types.PlatformSlack] = slackSvc.New(slackCfg.OAuthToken)
			}

			var discordPublicKey ed25519.PublicKey
			if discordCfg.IsConfigured() {
				discordClient, err := discordSvc.New(discordCfg.BotToken)
				if err != nil {
					return goerr.Wrap(err, "failed to create Discord client")
				}
				chats[types.PlatformDiscord] = discordClient

				discordPublicKey, err = discordCfg.DecodePublicKey()
				if err != nil {
					return err
				}
			}

			if teamsCfg.IsConfigured() {
				chats[types.PlatformTeams] = teamsSvc.New(teamsCfg.GraphToken)
			}

			if len(chats) == 0 {
				return goerr.New("at least one chat platform must be configured (Slack, Discord, or Teams)")
			}

			// Deployment log sources are optional
			var logSources []interfaces.LogSource
			if githubCfg.IsConfigured() {
				logSources = append(logSources, githubSvc.NewActionsLogSource(githubCfg.Token, githubCfg.Repo))
			}
			if jenkinsCfg.IsConfigured() {
				logSources = append(logSources, jenkinsSvc.NewBuildLogSource(jenkinsCfg.URL, jenkinsCfg.Username, jenkinsCfg.APIToken, jenkinsCfg.JobName))
			}

			reportUC := usecase.NewReport(
				chats,
				logSources,
				llmSvc.New(gollemClient),
				usecase.WithRunTimeout(serverCfg.PipelineTimeout),
			)

			// Create HTTP server
			server, err := controller.NewServer(
				ctx,
				serverCfg.Addr,
				serverCfg.CORSOrigins,
				&slackCfg,
				discordPublicKey,
				reportUC,
			)
			if err != nil {
				return goerr.Wrap(err, "failed to create HTTP server")
			}

			// Start server in goroutine
			go func() {
				logger.Info("HTTP server starting", slog.String("addr", serverCfg.Addr))
				if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
					logger.Error("HTTP server error", slog.Any("error", err))
				}
			}()

			// Wait for interrupt signal
			sigChan := make(chan os.Signal, 1)
			signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)

			select {
			case <-ctx.Done():
				logger.Info("Context cancelled, shutting down...")
			case sig := <-sigChan:
				logger.Info("Signal received, shutting down...", slog.Any("signal", sig))
			}

			// Graceful shutdown
			shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
			defer cancel()

			if err := server.Shutdown(shutdownCtx); err != nil {
				return goerr.Wrap(err, "failed to shutdown server gracefully")
			}

			logger.Info("Server shutdown complete")
			return nil
		},
	}
}
