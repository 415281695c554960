package spotify_test

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"

	"github.com/charmbracelet/log"
	"github.com/nkoval/genremap/spotify"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testClient(srv *httptest.Server) *spotify.Client {
	return spotify.New(spotify.Config{
		BaseURL:    srv.URL,
		RateLimit:  1000,
		HTTPClient: srv.Client(),
		Logger:     log.New(io.Discard),
	})
}

func TestPlaylistTracksPagination(t *testing.T) {
	var fetches atomic.Int32
	var srv *httptest.Server
	srv = httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		fetches.Add(1)
		switch r.URL.Path {
		case "/playlists/abc123/tracks":
			fmt.Fprintf(w, `{
				"items": [{"track": {"name": "First", "artists": [{"name": "A"}], "external_ids": {"isrc": "ISRC1"}}}],
				"next": %q
			}`, srv.URL+"/page2")
		case "/page2":
			io.WriteString(w, `{
				"items": [{"track": {"name": "Second", "artists": [{"name": "B"}], "external_ids": {"isrc": "ISRC2"}}}],
				"next": null
			}`)
		default:
			http.NotFound(w, r)
		}
	}))
	defer srv.Close()

	spo := testClient(srv)
	ctx := context.Background()

	page, err := spo.PlaylistTracks(ctx, "abc123")
	require.NoError(t, err)
	require.Len(t, page.Items, 1)
	assert.Equal(t, "First", page.Items[0].Track.Name)
	assert.Equal(t, "ISRC1", page.Items[0].Track.ExternalIDs.ISRC)
	assert.NotEmpty(t, page.Next)
	assert.NotEmpty(t, page.Raw())

	page2, ok, err := spo.NextPage(ctx, page)
	require.NoError(t, err)
	require.True(t, ok)
	require.Len(t, page2.Items, 1)
	assert.Equal(t, "Second", page2.Items[0].Track.Name)

	// The chain terminates: no third fetch happens.
	_, ok, err = spo.NextPage(ctx, page2)
	require.NoError(t, err)
	assert.False(t, ok)
	assert.Equal(t, int32(2), fetches.Load())
}

func TestNonTrackItemsDecodeAsNil(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		io.WriteString(w, `{
			"items": [
				{"track": null},
				{"track": {"name": "Real", "artists": [{"name": "A"}], "external_ids": {"isrc": "X"}}}
			],
			"next": null
		}`)
	}))
	defer srv.Close()

	page, err := testClient(srv).PlaylistTracks(context.Background(), "abc")
	require.NoError(t, err)
	require.Len(t, page.Items, 2)
	assert.Nil(t, page.Items[0].Track)
	require.NotNil(t, page.Items[1].Track)
	assert.Equal(t, "Real", page.Items[1].Track.Name)
}

func TestRetryAfterOn429(t *testing.T) {
	var calls atomic.Int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if calls.Add(1) == 1 {
			w.Header().Set("Retry-After", "0")
			w.WriteHeader(http.StatusTooManyRequests)
			return
		}
		io.WriteString(w, `{"items": [], "next": null}`)
	}))
	defer srv.Close()

	page, err := testClient(srv).PlaylistTracks(context.Background(), "abc")
	require.NoError(t, err)
	assert.Empty(t, page.Items)
	assert.Equal(t, int32(2), calls.Load())
}

func TestErrorStatusSurfaces(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
	}))
	defer srv.Close()

	_, err := testClient(srv).PlaylistTracks(context.Background(), "missing")
	assert.ErrorContains(t, err, "404")
}
