// submodule cmd contains command definitions
package main

import "github.com/urfave/cli/v3"

func jsonFlags() []cli.Flag {
	return []cli.Flag{
		&cli.BoolFlag{
			Name:  "json",
			Usage: "Output raw JSON",
		},
		&cli.BoolFlag{
			Name:  "pretty",
			Usage: "Pretty-print JSON output",
			Value: true,
		},
	}
}

func filterFlags() []cli.Flag {
	return []cli.Flag{
		&cli.StringFlag{
			Name:    "genre",
			Aliases: []string{"g"},
			Usage:   "Keep tracks whose genre contains this text (case-insensitive)",
		},
		&cli.StringFlag{
			Name:    "year",
			Aliases: []string{"y"},
			Usage:   "Keep tracks whose year contains this text",
		},
	}
}

// setupCommand creates the configuration file and initializes both stores.
func setupCommand(r *Runner) *cli.Command {
	return &cli.Command{
		Name:  "setup",
		Usage: "Create config.toml and initialize the database",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "config",
				Aliases: []string{"c"},
				Usage:   "Path to configuration file",
				Value:   "config.toml",
			},
			&cli.BoolFlag{
				Name:  "rollback",
				Usage: "Roll back the latest schema migration of both databases",
			},
			&cli.BoolFlag{
				Name:  "clear-session",
				Usage: "Remove the stored session and UI state",
			},
		},
		Action: r.Setup,
	}
}

// loginCommand starts a session
func loginCommand(r *Runner) *cli.Command {
	return &cli.Command{
		Name:  "login",
		Usage: "Log in with an email and password (no account required)",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:     "email",
				Aliases:  []string{"e"},
				Usage:    "Email address",
				Required: true,
			},
			&cli.StringFlag{
				Name:     "password",
				Aliases:  []string{"p"},
				Usage:    "Password (at least 6 characters)",
				Required: true,
			},
		},
		Action: r.Login,
	}
}

func logoutCommand(r *Runner) *cli.Command {
	return &cli.Command{
		Name:   "logout",
		Usage:  "End the current session",
		Action: r.Logout,
	}
}

func whoamiCommand(r *Runner) *cli.Command {
	return &cli.Command{
		Name:   "whoami",
		Usage:  "Show the current session",
		Flags:  jsonFlags(),
		Action: r.Whoami,
	}
}

// playlistsCommand handles playlist management for the logged-in user
func playlistsCommand(r *Runner) *cli.Command {
	return &cli.Command{
		Name:    "playlists",
		Aliases: []string{"pl"},
		Usage:   "Manage your playlists",
		Commands: []*cli.Command{
			{
				Name:    "list",
				Aliases: []string{"ls"},
				Usage:   "List your playlists, newest first",
				Flags: append([]cli.Flag{
					&cli.StringFlag{
						Name:    "query",
						Aliases: []string{"q"},
						Usage:   "Only show playlists whose name contains this text",
					},
					&cli.IntFlag{
						Name:  "recent",
						Usage: "Only show the N most recently created playlists",
					},
				}, jsonFlags()...),
				Action: r.PlaylistsList,
			},
			{
				Name:      "create",
				Usage:     "Create an empty playlist",
				Arguments: []cli.Argument{&cli.StringArg{Name: "name"}},
				Action:    r.PlaylistsCreate,
			},
			{
				Name:  "rename",
				Usage: "Rename a playlist",
				Arguments: []cli.Argument{
					&cli.StringArg{Name: "ref"},
					&cli.StringArg{Name: "name"},
				},
				Action: r.PlaylistsRename,
			},
			{
				Name:      "delete",
				Aliases:   []string{"rm"},
				Usage:     "Delete a playlist",
				Arguments: []cli.Argument{&cli.StringArg{Name: "ref"}},
				Action:    r.PlaylistsDelete,
			},
			{
				Name:  "clear",
				Usage: "Delete all of your playlists",
				Flags: []cli.Flag{
					&cli.BoolFlag{
						Name:    "yes",
						Aliases: []string{"y"},
						Usage:   "Confirm the deletion",
					},
				},
				Action: r.PlaylistsClear,
			},
			{
				Name:      "show",
				Usage:     "Show a playlist and its tracks (marks it as the last viewed playlist)",
				Arguments: []cli.Argument{&cli.StringArg{Name: "ref"}},
				Flags:     jsonFlags(),
				Action:    r.PlaylistsShow,
			},
			{
				Name:      "add",
				Usage:     "Look up a track by id and add it to a playlist",
				Arguments: []cli.Argument{&cli.StringArg{Name: "ref"}},
				Flags: []cli.Flag{
					&cli.StringFlag{
						Name:     "track-id",
						Aliases:  []string{"t"},
						Usage:    "Track id from 'songs' output",
						Required: true,
					},
				},
				Action: r.PlaylistsAdd,
			},
			{
				Name:  "remove",
				Usage: "Remove a track from a playlist",
				Arguments: []cli.Argument{
					&cli.StringArg{Name: "ref"},
					&cli.StringArg{Name: "track-id"},
				},
				Action: r.PlaylistsRemove,
			},
			{
				Name:  "move",
				Usage: "Move the track at position FROM to position TO (1-based)",
				Arguments: []cli.Argument{
					&cli.StringArg{Name: "ref"},
					&cli.StringArg{Name: "from"},
					&cli.StringArg{Name: "to"},
				},
				Action: r.PlaylistsMove,
			},
			{
				Name:      "export",
				Usage:     "Export one playlist, or all of them, to files",
				Arguments: []cli.Argument{&cli.StringArg{Name: "ref"}},
				Flags: []cli.Flag{
					&cli.StringFlag{
						Name:    "format",
						Aliases: []string{"f"},
						Usage:   "Export format: json, csv, markdown, txt",
						Value:   "json",
					},
					&cli.StringFlag{
						Name:    "dir",
						Aliases: []string{"o"},
						Usage:   "Output directory (default: fakefy_export_{epoch})",
					},
					&cli.IntFlag{
						Name:  "workers",
						Usage: "Concurrent export workers",
						Value: 5,
					},
					&cli.BoolFlag{
						Name:  "covers",
						Usage: "Download a cover image (markdown only)",
					},
				},
				Action: r.PlaylistsExport,
			},
			{
				Name:  "open",
				Usage: "Open a track's video in the browser",
				Arguments: []cli.Argument{
					&cli.StringArg{Name: "ref"},
					&cli.StringArg{Name: "track-id"},
				},
				Action: r.PlaylistsOpen,
			},
		},
	}
}

// songsCommand handles catalog browsing
func songsCommand(r *Runner) *cli.Command {
	return &cli.Command{
		Name:    "songs",
		Aliases: []string{"catalog"},
		Usage:   "Browse the music catalog",
		Commands: []*cli.Command{
			{
				Name:  "popular",
				Usage: "Rank the top tracks of well-known artists by views",
				Flags: append(append([]cli.Flag{
					&cli.IntFlag{
						Name:    "limit",
						Aliases: []string{"n"},
						Usage:   "Maximum number of tracks to print (0 prints all)",
					},
				}, filterFlags()...), jsonFlags()...),
				Action: r.SongsPopular,
			},
			{
				Name:      "top10",
				Usage:     "Show an artist's top tracks",
				Arguments: []cli.Argument{&cli.StringArg{Name: "artist"}},
				Flags:     append(filterFlags(), jsonFlags()...),
				Action:    r.SongsTop10,
			},
			{
				Name:  "search",
				Usage: "Search tracks by title (and artist) and albums by name",
				Flags: append(append([]cli.Flag{
					&cli.StringFlag{Name: "artist", Aliases: []string{"a"}, Usage: "Artist name"},
					&cli.StringFlag{Name: "title", Aliases: []string{"t"}, Usage: "Track title"},
					&cli.StringFlag{Name: "album", Usage: "Album name"},
				}, filterFlags()...), jsonFlags()...),
				Action: r.SongsSearch,
			},
			{
				Name:  "albums",
				Usage: "Search an artist's albums by name",
				Flags: append([]cli.Flag{
					&cli.StringFlag{Name: "artist", Aliases: []string{"a"}, Usage: "Artist name", Required: true},
					&cli.StringFlag{Name: "album", Usage: "Album name", Required: true},
				}, jsonFlags()...),
				Action: r.SongsAlbums,
			},
			{
				Name:      "show",
				Usage:     "Show a track's details",
				Arguments: []cli.Argument{&cli.StringArg{Name: "track-id"}},
				Flags:     jsonFlags(),
				Action:    r.SongsShow,
			},
		},
	}
}

// apiCommand handles direct metadata API calls
func apiCommand(r *Runner) *cli.Command {
	return &cli.Command{
		Name:  "api",
		Usage: "Direct calls to the metadata API",
		Commands: []*cli.Command{
			{
				Name:  "get",
				Usage: "Direct GET relative to the keyed API root, prints raw JSON",
				Arguments: []cli.Argument{
					&cli.StringArg{
						Name: "path",
					},
				},
				Flags: []cli.Flag{
					&cli.BoolFlag{
						Name:  "json",
						Usage: "Output compact JSON",
					},
				},
				Action: r.APIGet,
			},
		},
	}
}

// tuiCommand returns the top-level TUI command for interactive playlist management.
func tuiCommand(r *Runner) *cli.Command {
	return &cli.Command{
		Name:    "tui",
		Aliases: []string{"interactive", "ui"},
		Usage:   "Launch the interactive playlist manager",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:  "export-format",
				Usage: "Format used by the export key",
				Value: "markdown",
			},
			&cli.StringFlag{
				Name:  "export-dir",
				Usage: "Directory used by the export key (default: fakefy_export_{epoch})",
			},
		},
		Action: r.TUI,
	}
}
