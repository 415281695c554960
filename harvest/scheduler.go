package harvest

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/charmbracelet/log"
	"github.com/nkoval/genremap/data"
	"github.com/nkoval/genremap/enao"
	"github.com/nkoval/genremap/request"
	"github.com/nkoval/genremap/spotify"
	"golang.org/x/sync/errgroup"
)

// Mode selects which source a run harvests songs from.
type Mode int

const (
	// ModePlaylist resolves each genre's "sound of" playlist and harvests
	// it through the playlist API.
	ModePlaylist Mode = iota

	// ModeSongPage scrapes the embedded previews off each genre's own
	// page, no API credentials needed.
	ModeSongPage
)

// Config is the explicit run configuration for a Scheduler; there is no
// ambient state. Spotify is a per-task client template: each worker task
// constructs its own clients from it.
type Config struct {
	BaseURL  string // genre-map site root, like "https://everynoise.com/"
	OutDir   string
	DebugDir string // "" disables debug page dumps
	Workers  int    // ≤1 runs sequentially
	Limit    int    // 0 means no limit
	Mode     Mode
	Fetch    request.Options
	Spotify  spotify.Config
	Logger   *log.Logger
}

// A Scheduler drives the catalog through a bounded pool of harvest tasks.
type Scheduler struct {
	cfg    Config
	logger *log.Logger
}

func NewScheduler(cfg Config) *Scheduler {
	logger := cfg.Logger
	if logger == nil {
		logger = log.Default()
	}
	return &Scheduler{cfg: cfg, logger: logger}
}

type task struct {
	name string
	href string
	slug string
}

// Run executes the pipeline over the catalog. Task failures are isolated:
// a failing genre is logged and its siblings keep going. The returned error
// covers only setup problems and cancellation.
func (s *Scheduler) Run(ctx context.Context, catalog *data.Catalog) error {
	if err := os.MkdirAll(s.cfg.OutDir, 0o755); err != nil {
		return fmt.Errorf("error creating output dir '%s': %w", s.cfg.OutDir, err)
	}
	if s.cfg.DebugDir != "" {
		if err := os.MkdirAll(s.cfg.DebugDir, 0o755); err != nil {
			return fmt.Errorf("error creating debug dir '%s': %w", s.cfg.DebugDir, err)
		}
	}

	tasks := s.buildTasks(catalog)
	if len(tasks) == 0 {
		s.logger.Info("nothing to harvest")
		return nil
	}
	s.logger.Info("starting harvest", "genres", len(tasks), "workers", max(s.cfg.Workers, 1))

	if s.cfg.Workers <= 1 {
		for _, t := range tasks {
			if err := ctx.Err(); err != nil {
				return err
			}
			s.runTask(ctx, t)
		}
		return nil
	}

	g := new(errgroup.Group)
	g.SetLimit(s.cfg.Workers)
	for _, t := range tasks {
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			s.runTask(ctx, t)
			return nil
		})
	}
	return g.Wait()
}

// buildTasks walks the catalog in its stored order and queues every genre
// that can and should be harvested: it must have an href, must not already
// have an artifact on disk, and must not collide with an earlier genre's
// slug. Collisions are skipped loudly; overwriting would silently drop one of
// the genres.
func (s *Scheduler) buildTasks(catalog *data.Catalog) []task {
	var tasks []task
	claimed := map[string]string{}
	for _, name := range catalog.Names() {
		if s.cfg.Limit > 0 && len(tasks) >= s.cfg.Limit {
			break
		}
		entry, _ := catalog.Get(name)
		if entry.Href == "" {
			s.logger.Debug("skipping genre without href", "genre", name)
			continue
		}
		slug := enao.SlugFromHref(entry.Href, name)
		if prev, ok := claimed[slug]; ok {
			s.logger.Warn("slug collision, skipping genre",
				"slug", slug, "genre", name, "claimed_by", prev)
			continue
		}
		if _, err := os.Stat(s.artifactPath(slug)); err == nil {
			s.logger.Debug("artifact exists, skipping genre", "genre", name, "slug", slug)
			continue
		}
		claimed[slug] = name
		tasks = append(tasks, task{name: name, href: entry.Href, slug: slug})
	}
	return tasks
}

// runTask harvests one genre end to end. Every failure path logs and
// returns; nothing escapes to the pool.
func (s *Scheduler) runTask(ctx context.Context, t task) {
	logger := s.logger.With("genre", t.name, "slug", t.slug)

	// Each task owns its own clients so workers share no transport state.
	fetcher := request.New(s.cfg.Fetch)

	pageURL := s.resolveURL(t.href)
	doc, err := fetcher.FetchHTML(ctx, pageURL)
	if err != nil {
		logger.Error("failed to download genre page", "url", pageURL, "err", err)
		return
	}

	switch s.cfg.Mode {
	case ModeSongPage:
		songs := enao.ExtractPreviewSongs(doc)
		if len(songs) == 0 {
			logger.Info("no preview songs on genre page")
			return
		}
		if err := writeArtifact(s.artifactPath(t.slug), songs); err != nil {
			logger.Error("failed to write artifact", "err", err)
			return
		}
		logger.Info("saved songs", "count", len(songs))

	default:
		playlistID, ok := enao.PlaylistID(doc)
		if !ok {
			logger.Info("no playlist link on genre page")
			return
		}
		harvester := NewHarvester(spotify.New(s.cfg.Spotify), s.cfg.DebugDir, logger)
		songs, err := harvester.HarvestPlaylist(ctx, t.slug, playlistID)
		if err != nil {
			// A partial harvest is still worth keeping.
			logger.Error("playlist harvest failed", "playlist", playlistID, "collected", len(songs), "err", err)
		}
		if len(songs) == 0 {
			logger.Info("no songs collected")
			return
		}
		if err := writeArtifact(s.artifactPath(t.slug), songs); err != nil {
			logger.Error("failed to write artifact", "err", err)
			return
		}
		logger.Info("saved songs", "count", len(songs))
	}
}

func (s *Scheduler) artifactPath(slug string) string {
	return filepath.Join(s.cfg.OutDir, slug+".json")
}

func (s *Scheduler) resolveURL(href string) string {
	if strings.HasPrefix(href, "http://") || strings.HasPrefix(href, "https://") {
		return href
	}
	return strings.TrimSuffix(s.cfg.BaseURL, "/") + "/" + strings.TrimPrefix(href, "/")
}
