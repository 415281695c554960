package main

import (
	"context"

	"github.com/nkoval/genremap/config"
	"github.com/nkoval/genremap/harvest"
	"github.com/urfave/cli/v3"
)

func renameCommand() *cli.Command {
	return &cli.Command{
		Name:  "rename",
		Usage: "move page-scrape artifacts from name-derived to href-derived slugs",
		Flags: []cli.Flag{
			configFlag(),
			genresFlag(),
			verboseFlag(),
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

			renamed, skipped, err := harvest.Rename(catalog, cfg.Output.SongsDir, logger)
			if err != nil {
				return err
			}
			logger.Info("rename complete", "renamed", renamed, "skipped", skipped)
			return nil
		},
	}
}
