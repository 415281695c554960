// Package harvest drives the ingestion pipeline: it walks the genre catalog,
// collects songs per genre from either the playlist API or the genre's own
// page, and materializes one JSON artifact per genre. Artifact existence is
// the resume signal; a genre with an artifact on disk is never re-fetched.
package harvest

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/charmbracelet/log"
	"github.com/nkoval/genremap/data"
	"github.com/nkoval/genremap/spotify"
)

// A Harvester collects the songs of one genre's playlist. Each scheduler task
// owns its own Harvester and API client.
type Harvester struct {
	spo      *spotify.Client
	debugDir string // "" disables page dumps
	logger   *log.Logger
}

func NewHarvester(spo *spotify.Client, debugDir string, logger *log.Logger) *Harvester {
	return &Harvester{spo: spo, debugDir: debugDir, logger: logger}
}

// HarvestPlaylist pages through the playlist and returns song records in
// encounter order. Items without a playable track are skipped quietly; tracks
// without an ISRC are skipped with a warning, since the ISRC is the key
// downstream matching depends on.
//
// A failed initial fetch returns no songs. A failure mid-pagination returns
// the songs collected so far along with the error, so the caller can still
// persist a partial harvest.
func (h *Harvester) HarvestPlaylist(ctx context.Context, slug, playlistID string) ([]data.SongRecord, error) {
	page, err := h.spo.PlaylistTracks(ctx, playlistID)
	if err != nil {
		return nil, fmt.Errorf("error fetching playlist '%s': %w", playlistID, err)
	}

	var songs []data.SongRecord
	for pageNum := 1; ; pageNum++ {
		for _, item := range page.Items {
			track := item.Track
			if track == nil {
				h.logger.Debug("skipping playlist item without a track", "playlist", playlistID)
				continue
			}
			artist := joinArtists(track)
			if track.ExternalIDs.ISRC == "" {
				h.logger.Warn("skipping track without isrc", "artist", artist, "title", track.Name)
				continue
			}
			songs = append(songs, data.SongRecord{
				Title:  track.Name,
				Artist: artist,
				ISRC:   track.ExternalIDs.ISRC,
			})
		}

		// Every consumed page is persisted in debug mode, the terminal
		// page included, so the last response stays observable.
		h.dumpPage(slug, pageNum, page)

		next, ok, err := h.spo.NextPage(ctx, page)
		if err != nil {
			return songs, fmt.Errorf("error fetching page %d of playlist '%s': %w", pageNum+1, playlistID, err)
		}
		if !ok {
			return songs, nil
		}
		page = next
	}
}

func joinArtists(track *spotify.Track) string {
	names := make([]string, len(track.Artists))
	for i, artist := range track.Artists {
		names[i] = artist.Name
	}
	return strings.Join(names, ", ")
}

func (h *Harvester) dumpPage(slug string, pageNum int, page *spotify.TracksPage) {
	if h.debugDir == "" {
		return
	}
	path := filepath.Join(h.debugDir, fmt.Sprintf("%s_page%d.json", slug, pageNum))
	if err := os.WriteFile(path, page.Raw(), 0o644); err != nil {
		h.logger.Error("error writing debug page", "path", path, "err", err)
	}
}

// writeArtifact persists one genre's songs as indented JSON.
func writeArtifact(path string, songs any) error {
	bs, err := json.MarshalIndent(songs, "", "  ")
	if err != nil {
		return fmt.Errorf("error encoding songs: %w", err)
	}
	if err := os.WriteFile(path, bs, 0o644); err != nil {
		return fmt.Errorf("error writing '%s': %w", path, err)
	}
	return nil
}
