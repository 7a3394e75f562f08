package main

import (
	"context"
	"fmt"
	"os"

	"github.com/desertthunder/tempo/internal/shared"
	"github.com/urfave/cli/v3"
)

// SetupConfig writes a config.toml template for the user to fill in with
// their Spotify application credentials.
func (r *Runner) SetupConfig(ctx context.Context, cmd *cli.Command) error {
	configPath := cmd.String("config")

	if _, err := os.Stat(configPath); err == nil && !cmd.Bool("force") {
		return fmt.Errorf("%w: %s already exists, pass --force to overwrite", shared.ErrInvalidArgument, configPath)
	}

	if err := shared.CreateConfigFile(configPath); err != nil {
		return fmt.Errorf("failed to create config file: %w", err)
	}

	r.writePlain("✓ Config template written to %s\n\n", configPath)
	r.writePlain("Next steps:\n")
	r.writePlain("1. Create an app at https://developer.spotify.com/dashboard\n")
	r.writePlain("2. Add %s as a redirect URI\n", r.config.Spotify.RedirectURI)
	r.writePlain("3. Fill in client_id and client_secret in %s\n", configPath)
	r.writePlain("4. Run: tempo auth login\n")
	return nil
}
