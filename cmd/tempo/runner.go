package main

import (
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/charmbracelet/log"
	"github.com/desertthunder/tempo/auth"
	"github.com/desertthunder/tempo/internal/shared"
	"github.com/desertthunder/tempo/internal/tokencache"
	"github.com/desertthunder/tempo/spotify"
	"github.com/urfave/cli/v3"
)

// Runner holds all dependencies for CLI commands and provides methods for
// each command action.
type Runner struct {
	config *shared.Config
	store  *auth.Store
	client *spotify.Client
	cache  *tokencache.Cache
	logger *log.Logger
	output io.Writer
}

// RunnerOpts contains configuration options for creating a Runner.
type RunnerOpts struct {
	Config *shared.Config
	Store  *auth.Store
	Client *spotify.Client
	Cache  *tokencache.Cache
	Logger *log.Logger
	Output io.Writer
}

// NewRunner creates a new Runner with the provided configuration.
func NewRunner(opts RunnerOpts) *Runner {
	if opts.Config == nil {
		opts.Config = shared.DefaultConfig()
	}
	if opts.Logger == nil {
		opts.Logger = shared.NewLogger(nil)
	}
	if opts.Output == nil {
		opts.Output = os.Stdout
	}
	if opts.Store == nil {
		opts.Store = auth.NewStore(0)
	}

	r := &Runner{
		config: opts.Config,
		store:  opts.Store,
		client: opts.Client,
		cache:  opts.Cache,
		logger: opts.Logger,
		output: opts.Output,
	}

	if r.cache == nil && opts.Config.Cache.Path != "" {
		cache, err := tokencache.Open(opts.Config.Cache.Path)
		if err != nil {
			r.logger.Warnf("failed to open token cache: %v", err)
		} else {
			r.cache = cache
		}
	}

	if r.cache != nil {
		if ts, err := r.cache.Load(); err == nil {
			r.store.Install(ts)
		} else if !errors.Is(err, tokencache.ErrNoToken) {
			r.logger.Warnf("failed to load cached token: %v", err)
		}
	}

	return r
}

// Close releases the runner's resources.
func (r *Runner) Close() {
	if r.cache != nil {
		r.cache.Close()
	}
}

func (r *Runner) register() []*cli.Command {
	commands := []*cli.Command{}
	for _, fn := range [](func(*Runner) *cli.Command){
		setupCommand, authCommand, profileCommand, trackCommand, playlistCommand, playerCommand, rawCommand,
	} {
		commands = append(commands, fn(r))
	}
	return commands
}

// spotifyClient lazily builds the API client from the configured
// credentials.
func (r *Runner) spotifyClient() (*spotify.Client, error) {
	if r.client != nil {
		return r.client, nil
	}

	if r.config.Spotify.ClientID == "" || r.config.Spotify.ClientSecret == "" {
		return nil, fmt.Errorf("%w: spotify client_id and client_secret must be set in config.toml", shared.ErrMissingCredentials)
	}

	client, err := spotify.New(r.config.Spotify.AuthConfig(), r.store,
		spotify.WithLogger(r.logger))
	if err != nil {
		return nil, err
	}
	r.client = client
	return client, nil
}

// persistTokens writes the current token set back to the cache. The
// refresher rotates tokens in memory; without this, a refreshed session
// would be lost on exit.
func (r *Runner) persistTokens() {
	if r.cache == nil {
		return
	}
	ts := r.store.Current()
	if ts == nil {
		return
	}
	if err := r.cache.Save(ts); err != nil {
		r.logger.Warnf("failed to persist tokens: %v", err)
	}
}

func (r *Runner) writeJSON(data any, pretty bool) error {
	output, err := shared.MarshalJSON(data, pretty)
	if err != nil {
		return err
	}

	if _, err := r.output.Write(output); err != nil {
		return fmt.Errorf("failed to write output: %w", err)
	}
	if _, err := r.output.Write([]byte("\n")); err != nil {
		return fmt.Errorf("failed to write newline: %w", err)
	}
	return nil
}

func (r *Runner) writePlain(format string, args ...any) error {
	text := fmt.Sprintf(format, args...)
	if _, err := r.output.Write([]byte(text)); err != nil {
		return fmt.Errorf("failed to write output: %w", err)
	}
	return nil
}

func (r *Runner) writePlainln(format string, args ...any) error {
	text := "\n" + fmt.Sprintf(format, args...) + "\n"
	if _, err := r.output.Write([]byte(text)); err != nil {
		return fmt.Errorf("failed to write output: %w", err)
	}
	return nil
}
