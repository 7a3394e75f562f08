// submodule cmd contains command definitions
package main

import (
	"time"

	"github.com/urfave/cli/v3"
)

func outputFlags() []cli.Flag {
	return []cli.Flag{
		&cli.BoolFlag{
			Name:  "json",
			Usage: "Output raw JSON",
		},
		&cli.BoolFlag{
			Name:  "pretty",
			Usage: "Pretty-print output",
			Value: true,
		},
	}
}

func pagingFlags() []cli.Flag {
	return []cli.Flag{
		&cli.IntFlag{
			Name:  "limit",
			Usage: "Maximum number of items to return",
			Value: 20,
		},
		&cli.IntFlag{
			Name:  "offset",
			Usage: "Index of the first item to return",
		},
	}
}

// setupCommand writes the config template.
func setupCommand(r *Runner) *cli.Command {
	return &cli.Command{
		Name:  "setup",
		Usage: "Create a config.toml template",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "config",
				Aliases: []string{"c"},
				Usage:   "Path to configuration file",
				Value:   "config.toml",
			},
			&cli.BoolFlag{
				Name:  "force",
				Usage: "Overwrite an existing config file",
			},
		},
		Action: r.SetupConfig,
	}
}

// authCommand handles the OAuth2 authorization lifecycle.
func authCommand(r *Runner) *cli.Command {
	return &cli.Command{
		Name:  "auth",
		Usage: "Authenticate with Spotify using OAuth2",
		Commands: []*cli.Command{
			{
				Name:  "login",
				Usage: "Run the authorization code flow in the browser",
				Flags: []cli.Flag{
					&cli.DurationFlag{
						Name:  "timeout",
						Usage: "How long to wait for the browser redirect",
						Value: 2 * time.Minute,
					},
				},
				Action: r.AuthLogin,
			},
			{
				Name:   "status",
				Usage:  "Show the current authentication state",
				Action: r.AuthStatus,
			},
			{
				Name:   "logout",
				Usage:  "Discard cached tokens",
				Action: r.AuthLogout,
			},
		},
	}
}

// profileCommand shows the authenticated user's profile.
func profileCommand(r *Runner) *cli.Command {
	return &cli.Command{
		Name:   "profile",
		Usage:  "Show the current user's profile",
		Flags:  outputFlags(),
		Action: r.Profile,
	}
}

// trackCommand handles track lookups and the user's library.
func trackCommand(r *Runner) *cli.Command {
	return &cli.Command{
		Name:  "track",
		Usage: "Track operations",
		Commands: []*cli.Command{
			{
				Name:  "get",
				Usage: "Fetch a single track by ID",
				Arguments: []cli.Argument{
					&cli.StringArg{
						Name: "id",
					},
				},
				Flags:  outputFlags(),
				Action: r.TrackGet,
			},
			{
				Name:   "saved",
				Usage:  "List tracks saved in your library",
				Flags:  append(pagingFlags(), outputFlags()...),
				Action: r.TrackSaved,
			},
		},
	}
}

// playlistCommand handles playlist listing and export.
func playlistCommand(r *Runner) *cli.Command {
	return &cli.Command{
		Name:    "playlist",
		Aliases: []string{"pl"},
		Usage:   "Playlist operations",
		Commands: []*cli.Command{
			{
				Name:   "list",
				Usage:  "List your playlists",
				Flags:  append(pagingFlags(), outputFlags()...),
				Action: r.PlaylistList,
			},
			{
				Name:  "show",
				Usage: "Show a playlist and its first page of items",
				Arguments: []cli.Argument{
					&cli.StringArg{
						Name: "id",
					},
				},
				Flags:  outputFlags(),
				Action: r.PlaylistShow,
			},
			{
				Name:  "export",
				Usage: "Export a full playlist to a JSON file",
				Flags: []cli.Flag{
					&cli.StringFlag{
						Name:     "id",
						Usage:    "Playlist ID to export",
						Required: true,
					},
					&cli.StringFlag{
						Name:    "output",
						Aliases: []string{"o"},
						Usage:   "Output file path",
					},
					&cli.FloatFlag{
						Name:  "rate",
						Usage: "Page fetches per second",
						Value: 4,
					},
				},
				Action: r.PlaylistExport,
			},
		},
	}
}

// playerCommand controls playback on the user's active device.
func playerCommand(r *Runner) *cli.Command {
	return &cli.Command{
		Name:  "player",
		Usage: "Playback control",
		Commands: []*cli.Command{
			{
				Name:   "status",
				Usage:  "Show the current playback state",
				Flags:  outputFlags(),
				Action: r.PlayerStatus,
			},
			{
				Name:  "play",
				Usage: "Resume playback",
				Flags: []cli.Flag{
					&cli.StringFlag{
						Name:  "context",
						Usage: "Context URI to start playing (album, playlist, artist)",
					},
				},
				Action: r.PlayerPlay,
			},
			{
				Name:   "pause",
				Usage:  "Pause playback",
				Action: r.PlayerPause,
			},
			{
				Name:   "next",
				Usage:  "Skip to the next track",
				Action: r.PlayerNext,
			},
		},
	}
}

// rawCommand exposes the authenticated pipeline for arbitrary paths.
func rawCommand(r *Runner) *cli.Command {
	return &cli.Command{
		Name:  "raw",
		Usage: "Direct API calls, prints raw JSON",
		Commands: []*cli.Command{
			{
				Name:  "get",
				Usage: "GET an arbitrary Web API path",
				Arguments: []cli.Argument{
					&cli.StringArg{
						Name: "path",
					},
				},
				Action: r.RawGet,
			},
		},
	}
}
