// Command genremap harvests genre metadata and songs from the everynoise
// genre map: parse a saved snapshot into a genre catalog, then walk the
// catalog collecting each genre's songs from its "sound of" playlist or from
// the genre's own page.
//
// Runs are resumable: one JSON artifact is written per genre, and a genre
// with an artifact on disk is never fetched again.
package main

import (
	"context"
	"errors"
	"os"
	"os/signal"

	"github.com/charmbracelet/log"
	"github.com/urfave/cli/v3"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	if err := app().Run(ctx, os.Args); err != nil && !errors.Is(err, context.Canceled) {
		log.Fatal(err)
	}
}

func app() *cli.Command {
	return &cli.Command{
		Name:  "genremap",
		Usage: "harvest genres and songs from the everynoise genre map",
		Commands: []*cli.Command{
			parseCommand(),
			playlistsCommand(),
			songsCommand(),
			renameCommand(),
		},
	}
}

func configFlag() *cli.StringFlag {
	return &cli.StringFlag{
		Name:    "config",
		Aliases: []string{"c"},
		Usage:   "path to the configuration file",
		Value:   "config.toml",
	}
}

func genresFlag() *cli.StringFlag {
	return &cli.StringFlag{
		Name:  "genres",
		Usage: "path to the genre catalog (overrides the config)",
	}
}

func verboseFlag() *cli.BoolFlag {
	return &cli.BoolFlag{
		Name:    "verbose",
		Aliases: []string{"v"},
		Usage:   "enable debug logging",
	}
}

func newLogger(cmd *cli.Command) *log.Logger {
	logger := log.NewWithOptions(os.Stderr, log.Options{ReportTimestamp: true})
	if cmd.Bool("verbose") {
		logger.SetLevel(log.DebugLevel)
	}
	return logger
}
