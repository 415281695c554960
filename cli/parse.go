package main

import (
	"context"

	"github.com/nkoval/genremap/config"
	"github.com/nkoval/genremap/enao"
	"github.com/urfave/cli/v3"
)

const defaultSnapshot = "view-source_https___everynoise.com.html"

func parseCommand() *cli.Command {
	return &cli.Command{
		Name:  "parse",
		Usage: "parse a genre-map HTML snapshot into a genre catalog",
		Arguments: []cli.Argument{
			&cli.StringArg{Name: "snapshot"},
		},
		Flags: []cli.Flag{
			configFlag(),
			verboseFlag(),
			&cli.StringFlag{
				Name:    "output",
				Aliases: []string{"o"},
				Usage:   "path to write the catalog to (overrides the config)",
			},
		},
		Action: func(ctx context.Context, cmd *cli.Command) error {
			logger := newLogger(cmd)

			cfg, err := config.Load(cmd.String("config"))
			if err != nil {
				return err
			}

			snapshot := cmd.StringArg("snapshot")
			if snapshot == "" {
				snapshot = defaultSnapshot
			}
			out := cmd.String("output")
			if out == "" {
				out = cfg.GenresFile
			}

			doc, err := enao.ReadSnapshot(snapshot)
			if err != nil {
				return err
			}
			catalog := enao.ParseCatalog(doc, logger)
			if err := catalog.Write(out); err != nil {
				return err
			}

			logger.Info("wrote genre catalog", "genres", catalog.Len(), "path", out)
			return nil
		},
	}
}
