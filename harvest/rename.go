package harvest

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/charmbracelet/log"
	"github.com/nkoval/genremap/data"
	"github.com/nkoval/genremap/enao"
)

// Rename migrates artifacts written under name-derived slugs to their
// href-derived slugs, so old output directories line up with the keys the
// pipeline uses now. When both names exist the name-derived duplicate is
// removed. Genres whose href carries no slug are counted as skipped.
func Rename(catalog *data.Catalog, dir string, logger *log.Logger) (renamed, skipped int, err error) {
	if _, err := os.Stat(dir); err != nil {
		return 0, 0, fmt.Errorf("error statting songs dir '%s': %w", dir, err)
	}

	for _, name := range catalog.Names() {
		entry, _ := catalog.Get(name)
		slug, ok := enao.HrefSlug(entry.Href)
		if !ok {
			skipped++
			continue
		}

		oldPath := filepath.Join(dir, enao.SanitizeName(name)+".json")
		newPath := filepath.Join(dir, slug+".json")
		if oldPath == newPath {
			continue
		}
		if _, err := os.Stat(oldPath); err != nil {
			continue
		}

		if _, err := os.Stat(newPath); err == nil {
			if err := os.Remove(oldPath); err != nil {
				logger.Error("error removing duplicate artifact", "path", oldPath, "err", err)
			}
			continue
		}
		if err := os.Rename(oldPath, newPath); err != nil {
			logger.Error("error renaming artifact", "from", oldPath, "to", newPath, "err", err)
			continue
		}
		renamed++
	}
	return renamed, skipped, nil
}
