package main

import (
	"context"

	"github.com/charmbracelet/log"
	"github.com/nkoval/genremap/config"
	"github.com/nkoval/genremap/data"
	"github.com/nkoval/genremap/harvest"
	"github.com/nkoval/genremap/request"
	"github.com/nkoval/genremap/spotify"
	"github.com/urfave/cli/v3"
)

func playlistsCommand() *cli.Command {
	return &cli.Command{
		Name:  "playlists",
		Usage: "harvest each genre's \"sound of\" playlist through the API",
		Flags: []cli.Flag{
			configFlag(),
			genresFlag(),
			verboseFlag(),
			&cli.IntFlag{
				Name:  "limit",
				Usage: "process only the first N genres",
			},
			&cli.IntFlag{
				Name:  "workers",
				Usage: "parallel workers, 1 runs sequentially (overrides the config)",
			},
			&cli.BoolFlag{
				Name:  "debug",
				Usage: "persist raw API pages to the debug directory",
			},
		},
		Action: func(ctx context.Context, cmd *cli.Command) error {
			logger := newLogger(cmd)

			cfg, err := config.Load(cmd.String("config"))
			if err != nil {
				return err
			}
			// Credentials are checked up front; an unauthenticated run
			// would fail on every single genre.
			creds, err := config.LoadCredentials()
			if err != nil {
				return err
			}
			catalog, err := loadCatalog(cmd, cfg)
			if err != nil {
				return err
			}

			workers := int(cmd.Int("workers"))
			if workers == 0 {
				workers = cfg.Harvest.Workers
			}
			debugDir := ""
			if cmd.Bool("debug") {
				debugDir = cfg.Output.DebugDir
			}

			sched := harvest.NewScheduler(harvest.Config{
				BaseURL:  cfg.BaseURL,
				OutDir:   cfg.Output.PlaylistDir,
				DebugDir: debugDir,
				Workers:  workers,
				Limit:    int(cmd.Int("limit")),
				Mode:     harvest.ModePlaylist,
				Fetch:    fetchOptions(cfg, logger),
				Spotify: spotify.Config{
					ClientID:     creds.ClientID,
					ClientSecret: creds.ClientSecret,
					RateLimit:    cfg.Harvest.RateLimit,
					Logger:       logger,
				},
				Logger: logger,
			})
			return sched.Run(ctx, catalog)
		},
	}
}

func songsCommand() *cli.Command {
	return &cli.Command{
		Name:  "songs",
		Usage: "scrape each genre's page for embedded preview songs",
		Flags: []cli.Flag{
			configFlag(),
			genresFlag(),
			verboseFlag(),
			&cli.IntFlag{
				Name:  "limit",
				Usage: "process only the first N genres",
			},
		},
		Action: func(ctx context.Context, cmd *cli.Command) error {
			logger := newLogger(cmd)

			cfg, err := config.Load(cmd.String("config"))
			if err != nil {
				return err
			}
			catalog, err := loadCatalog(cmd, cfg)
			if err != nil {
				return err
			}

			sched := harvest.NewScheduler(harvest.Config{
				BaseURL: cfg.BaseURL,
				OutDir:  cfg.Output.SongsDir,
				Workers: 1,
				Limit:   int(cmd.Int("limit")),
				Mode:    harvest.ModeSongPage,
				Fetch:   fetchOptions(cfg, logger),
				Logger:  logger,
			})
			return sched.Run(ctx, catalog)
		},
	}
}

func loadCatalog(cmd *cli.Command, cfg *config.Config) (*data.Catalog, error) {
	path := cmd.String("genres")
	if path == "" {
		path = cfg.GenresFile
	}
	return data.LoadCatalog(path)
}

func fetchOptions(cfg *config.Config, logger *log.Logger) request.Options {
	return request.Options{
		Retries: cfg.Fetch.Retries,
		Backoff: cfg.Fetch.Backoff(),
		Timeout: cfg.Fetch.Timeout(),
		Logger:  logger,
	}
}
