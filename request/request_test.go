package request_test

import (
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/charmbracelet/log"
	"github.com/nkoval/genremap/request"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testOptions() request.Options {
	return request.Options{
		Retries: 3,
		Backoff: time.Millisecond,
		Timeout: time.Second,
		Logger:  log.New(io.Discard),
	}
}

func TestFetchRetriesUntilSuccess(t *testing.T) {
	var attempts atomic.Int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if attempts.Add(1) < 3 {
			w.WriteHeader(http.StatusInternalServerError)
			return
		}
		io.WriteString(w, "ok")
	}))
	defer srv.Close()

	body, err := request.New(testOptions()).Fetch(context.Background(), srv.URL)
	require.NoError(t, err)
	assert.Equal(t, "ok", body)
	assert.Equal(t, int32(3), attempts.Load())
}

func TestFetchGivesUpAfterRetries(t *testing.T) {
	var attempts atomic.Int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		attempts.Add(1)
		w.WriteHeader(http.StatusBadGateway)
	}))
	defer srv.Close()

	_, err := request.New(testOptions()).Fetch(context.Background(), srv.URL)
	assert.Error(t, err)
	assert.Equal(t, int32(3), attempts.Load())
}

func TestFetchHTMLRejectsNonHTML(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		io.WriteString(w, `{}`)
	}))
	defer srv.Close()

	_, err := request.New(testOptions()).FetchHTML(context.Background(), srv.URL)
	assert.Error(t, err)
}

func TestFetchHTMLParsesDocument(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "text/html; charset=utf-8")
		io.WriteString(w, `<html><body><div class="genre">pop</div></body></html>`)
	}))
	defer srv.Close()

	doc, err := request.New(testOptions()).FetchHTML(context.Background(), srv.URL)
	require.NoError(t, err)
	assert.Equal(t, "pop", doc.Find("div.genre").Text())
}
