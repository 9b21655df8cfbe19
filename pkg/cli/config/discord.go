package config

import (
	"crypto/ed25519"
	"encoding/hex"
	"log/slog"

	"github.com/m-mizutani/goerr/v2"
	"github.com/urfave/cli/v3"
)

// Discord holds Discord configuration
type Discord struct {
	BotToken  string
	PublicKey string // hex-encoded Ed25519 application public key
}

// Flags returns CLI flags for Discord configuration
func (d *Discord) Flags() []cli.Flag {
	return []cli.Flag{
		&cli.StringFlag{
			Name:        "discord-bot-token",
			Usage:       "Discord bot token for API access",
			Category:    "Discord",
			Sources:     cli.EnvVars("AFTERMATH_DISCORD_BOT_TOKEN"),
			Destination: &d.BotToken,
		},
		&cli.StringFlag{
			Name:        "discord-public-key",
			Usage:       "Discord application public key for interaction verification (hex)",
			Category:    "Discord",
			Sources:     cli.EnvVars("AFTERMATH_DISCORD_PUBLIC_KEY"),
			Destination: &d.PublicKey,
		},
	}
}

// IsConfigured checks if Discord is configured for inbound triggers and
// outbound posting
func (d *Discord) IsConfigured() bool {
	return d.BotToken != "" && d.PublicKey != ""
}

// DecodePublicKey decodes the configured Ed25519 public key
func (d *Discord) DecodePublicKey() (ed25519.PublicKey, error) {
	decoded, err := hex.DecodeString(d.PublicKey)
	if err != nil {
		return nil, goerr.Wrap(err, "invalid Discord public key encoding")
	}
	if len(decoded) != ed25519.PublicKeySize {
		return nil, goerr.New("invalid Discord public key length",
			goerr.V("length", len(decoded)),
		)
	}
	return ed25519.PublicKey(decoded), nil
}

// LogValue returns structured log value
func (d Discord) LogValue() slog.Value {
	return slog.GroupValue(
		slog.Bool("has_bot_token", d.BotToken != ""),
		slog.Bool("has_public_key", d.PublicKey != ""),
	)
}
