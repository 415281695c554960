package harvest

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/nkoval/genremap/data"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRename(t *testing.T) {
	dir := t.TempDir()
	write := func(name, content string) {
		require.NoError(t, os.WriteFile(filepath.Join(dir, name), []byte(content), 0o644))
	}
	// Artifact under the name-derived slug, waiting to be moved.
	write("deep_house.json", `["old"]`)
	// Both forms exist: the name-derived one is the duplicate to drop.
	write("pop_rocks.json", `["dupe"]`)
	write("poprocks.json", `["canonical"]`)

	catalog := data.NewCatalog()
	catalog.Add("deep house", data.GenreEntry{Href: "engenremap-deephouse.html"})
	catalog.Add("pop rocks", data.GenreEntry{Href: "engenremap-poprocks.html"})
	catalog.Add("sluggless", data.GenreEntry{Href: "elsewhere.html"})
	catalog.Add("absent", data.GenreEntry{Href: "engenremap-absent.html"})

	renamed, skipped, err := Rename(catalog, dir, discard())
	require.NoError(t, err)
	assert.Equal(t, 1, renamed)
	assert.Equal(t, 1, skipped)

	assert.NoFileExists(t, filepath.Join(dir, "deep_house.json"))
	bs, err := os.ReadFile(filepath.Join(dir, "deephouse.json"))
	require.NoError(t, err)
	assert.Equal(t, `["old"]`, string(bs))

	assert.NoFileExists(t, filepath.Join(dir, "pop_rocks.json"))
	bs, err = os.ReadFile(filepath.Join(dir, "poprocks.json"))
	require.NoError(t, err)
	assert.Equal(t, `["canonical"]`, string(bs))
}

func TestRenameMissingDir(t *testing.T) {
	_, _, err := Rename(data.NewCatalog(), filepath.Join(t.TempDir(), "nope"), discard())
	assert.Error(t, err)
}
