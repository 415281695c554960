// Package spotify is a minimal client for the playlist API: client-credentials
// auth, request pacing, and paginated playlist track listings.
package spotify

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"github.com/charmbracelet/log"
	"golang.org/x/oauth2/clientcredentials"
	"golang.org/x/time/rate"
)

const (
	tokenURL   = "https://accounts.spotify.com/api/token"
	apiBaseURL = "https://api.spotify.com/v1"

	// Roughly the pace the API tolerates without pushing back.
	defaultRateLimit = 10

	pageLimit = 100
)

// Config configures one Client. ClientID and ClientSecret are required unless
// HTTPClient is set, which replaces the whole auth transport (tests use this).
type Config struct {
	ClientID     string
	ClientSecret string

	// BaseURL overrides the API root.
	BaseURL string

	// RateLimit is the request budget in requests per second.
	RateLimit float64

	// HTTPClient overrides the token-refreshing client built from the
	// credentials.
	HTTPClient *http.Client

	Logger *log.Logger
}

// A Client talks to the playlist API. Scheduler tasks each construct their
// own so no request state is shared across workers.
type Client struct {
	http    *http.Client
	baseURL string
	limiter *rate.Limiter
	logger  *log.Logger
}

func New(cfg Config) *Client {
	httpClient := cfg.HTTPClient
	if httpClient == nil {
		cc := clientcredentials.Config{
			ClientID:     cfg.ClientID,
			ClientSecret: cfg.ClientSecret,
			TokenURL:     tokenURL,
		}
		httpClient = cc.Client(context.Background())
	}
	baseURL := cfg.BaseURL
	if baseURL == "" {
		baseURL = apiBaseURL
	}
	limit := cfg.RateLimit
	if limit <= 0 {
		limit = defaultRateLimit
	}
	logger := cfg.Logger
	if logger == nil {
		logger = log.Default()
	}
	return &Client{
		http:    httpClient,
		baseURL: baseURL,
		limiter: rate.NewLimiter(rate.Limit(limit), 1),
		logger:  logger,
	}
}

// A TracksPage is one cursor-bearing page of playlist items. Next is the
// continuation URL; empty means the page is terminal. The verbatim response
// body is kept around for debug artifacts.
type TracksPage struct {
	Items []PlaylistItem
	Next  string

	raw []byte
}

// A PlaylistItem wraps one playlist entry. Track is nil for entries that
// don't carry a playable track, like removed tracks or episodes.
type PlaylistItem struct {
	Track *Track
}

type Track struct {
	Name    string
	Artists []struct {
		Name string
	}
	ExternalIDs struct {
		ISRC string
	} `json:"external_ids"`
}

// Raw returns the verbatim response body the page was decoded from.
func (p *TracksPage) Raw() []byte { return p.raw }

// PlaylistTracks fetches the first page of a playlist's tracks.
func (c *Client) PlaylistTracks(ctx context.Context, playlistID string) (*TracksPage, error) {
	query := url.Values{}
	query.Set("additional_types", "track")
	query.Set("limit", strconv.Itoa(pageLimit))
	return c.fetchPage(ctx, fmt.Sprintf("%s/playlists/%s/tracks?%s", c.baseURL, playlistID, query.Encode()))
}

// NextPage follows the page's continuation URL. ok reports whether there was
// another page to fetch.
func (c *Client) NextPage(ctx context.Context, page *TracksPage) (next *TracksPage, ok bool, err error) {
	if page.Next == "" {
		return nil, false, nil
	}
	next, err = c.fetchPage(ctx, page.Next)
	if err != nil {
		return nil, true, err
	}
	return next, true, nil
}

func (c *Client) fetchPage(ctx context.Context, pageURL string) (*TracksPage, error) {
	body, err := c.get(ctx, pageURL)
	if err != nil {
		return nil, err
	}
	var page TracksPage
	if err := json.Unmarshal(body, &page); err != nil {
		return nil, fmt.Errorf("playlist page decode error: %w", err)
	}
	page.raw = body
	return &page, nil
}

// get performs one paced GET. A 429 is waited out per the Retry-After header
// and retried; the API documents this as the expected client behavior.
func (c *Client) get(ctx context.Context, fullURL string) ([]byte, error) {
	for {
		if err := c.limiter.Wait(ctx); err != nil {
			return nil, err
		}

		req, err := http.NewRequestWithContext(ctx, http.MethodGet, fullURL, nil)
		if err != nil {
			return nil, fmt.Errorf("request error: %w", err)
		}
		resp, err := c.http.Do(req)
		if err != nil {
			return nil, fmt.Errorf("request error: %w", err)
		}

		if resp.StatusCode == http.StatusTooManyRequests {
			resp.Body.Close()
			wait := retryAfter(resp)
			c.logger.Warn("rate limited by api", "retry_in", wait, "url", fullURL)
			select {
			case <-ctx.Done():
				return nil, ctx.Err()
			case <-time.After(wait):
			}
			continue
		}

		body, err := io.ReadAll(resp.Body)
		resp.Body.Close()
		if err != nil {
			return nil, fmt.Errorf("error reading response from '%s': %w", fullURL, err)
		}
		if resp.StatusCode < 200 || resp.StatusCode >= 300 {
			return nil, fmt.Errorf("http status code %d from '%s'", resp.StatusCode, fullURL)
		}
		return body, nil
	}
}

func retryAfter(resp *http.Response) time.Duration {
	header := resp.Header.Get("Retry-After")
	if header == "" {
		return time.Minute
	}
	seconds, err := strconv.ParseInt(header, 10, 64)
	if err != nil {
		return time.Minute
	}
	return time.Duration(seconds)*time.Second + time.Second
}
