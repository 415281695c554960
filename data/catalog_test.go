package data_test

import (
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/nkoval/genremap/data"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func intp(v int) *int { return &v }

func TestCatalogPreservesOrder(t *testing.T) {
	catalog := data.NewCatalog()
	catalog.Add("zydeco", data.GenreEntry{Href: "engenremap-zydeco.html"})
	catalog.Add("ambient", data.GenreEntry{Color: "#101010", Top: intp(3), Left: intp(4)})
	catalog.Add("pop", data.GenreEntry{Href: "engenremap-pop.html"})

	bs, err := json.Marshal(catalog)
	require.NoError(t, err)

	decoded := data.NewCatalog()
	require.NoError(t, json.Unmarshal(bs, decoded))

	// Document order survives the round trip; a plain map would shuffle it.
	assert.Equal(t, []string{"zydeco", "ambient", "pop"}, decoded.Names())

	entry, ok := decoded.Get("ambient")
	require.True(t, ok)
	assert.Equal(t, "#101010", entry.Color)
	require.NotNil(t, entry.Top)
	assert.Equal(t, 3, *entry.Top)
	assert.Empty(t, entry.Href)
}

func TestCatalogAddReplacesInPlace(t *testing.T) {
	catalog := data.NewCatalog()
	catalog.Add("a", data.GenreEntry{Href: "one.html"})
	catalog.Add("b", data.GenreEntry{})
	catalog.Add("a", data.GenreEntry{Href: "two.html"})

	assert.Equal(t, []string{"a", "b"}, catalog.Names())
	entry, _ := catalog.Get("a")
	assert.Equal(t, "two.html", entry.Href)
}

func TestCatalogOmitsAbsentFields(t *testing.T) {
	catalog := data.NewCatalog()
	catalog.Add("bare", data.GenreEntry{})

	bs, err := json.Marshal(catalog)
	require.NoError(t, err)
	assert.JSONEq(t, `{"bare": {}}`, string(bs))
}

func TestCatalogFileRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "genres.json")

	catalog := data.NewCatalog()
	catalog.Add("pop", data.GenreEntry{Href: "engenremap-pop.html", Color: "#abcdef"})
	require.NoError(t, catalog.Write(path))

	loaded, err := data.LoadCatalog(path)
	require.NoError(t, err)
	assert.Equal(t, catalog.Names(), loaded.Names())
	entry, ok := loaded.Get("pop")
	require.True(t, ok)
	assert.Equal(t, "#abcdef", entry.Color)
}

func TestLoadCatalogMissingFile(t *testing.T) {
	_, err := data.LoadCatalog(filepath.Join(t.TempDir(), "missing.json"))
	assert.Error(t, err)
	assert.ErrorIs(t, err, os.ErrNotExist)
}

func TestCatalogRejectsNonObject(t *testing.T) {
	catalog := data.NewCatalog()
	assert.Error(t, json.Unmarshal([]byte(`[1, 2]`), catalog))
}
