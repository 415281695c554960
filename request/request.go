// Package request does retried, backed-off HTTP GETs against the genre-map
// site. Exhausted retries come back as ordinary errors so callers can log and
// skip a single page rather than abort the whole run.
package request

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/PuerkitoBio/goquery"
	"github.com/charmbracelet/log"
	"github.com/go-resty/resty/v2"
)

const (
	defaultRetries = 3
	defaultBackoff = time.Second
	defaultTimeout = 15 * time.Second
)

// Options configures one Client. The zero value gets the defaults: 3 attempts
// per URL, 1s base backoff doubling per attempt, 15s per-attempt timeout.
type Options struct {
	Retries int
	Backoff time.Duration
	Timeout time.Duration
	Logger  *log.Logger
}

// A Client is a retrying HTTP fetcher. Clients are cheap; the scheduler
// builds one per worker task so tasks never share transport state.
type Client struct {
	http *resty.Client
}

func New(opts Options) *Client {
	if opts.Retries <= 0 {
		opts.Retries = defaultRetries
	}
	if opts.Backoff <= 0 {
		opts.Backoff = defaultBackoff
	}
	if opts.Timeout <= 0 {
		opts.Timeout = defaultTimeout
	}
	logger := opts.Logger
	if logger == nil {
		logger = log.Default()
	}

	client := resty.New().
		SetTimeout(opts.Timeout).
		SetRetryCount(opts.Retries - 1).
		SetRetryWaitTime(opts.Backoff).
		SetRetryMaxWaitTime(opts.Backoff << uint(opts.Retries)).
		AddRetryCondition(func(resp *resty.Response, err error) bool {
			return err != nil || resp.IsError()
		}).
		AddRetryHook(func(resp *resty.Response, err error) {
			if err != nil {
				logger.Warn("error fetching url", "url", resp.Request.URL, "err", err)
			} else {
				logger.Warn("unexpected status fetching url", "url", resp.Request.URL, "status", resp.Status())
			}
		})

	return &Client{http: client}
}

// Fetch GETs the URL and returns the response body as text.
func (c *Client) Fetch(ctx context.Context, url string) (string, error) {
	resp, err := c.http.R().SetContext(ctx).Get(url)
	if err != nil {
		return "", fmt.Errorf("error fetching '%s': %w", url, err)
	}
	if resp.IsError() {
		return "", fmt.Errorf("unexpected status from '%s': %s", url, resp.Status())
	}
	return resp.String(), nil
}

// FetchHTML GETs the URL and parses the response as an HTML document.
func (c *Client) FetchHTML(ctx context.Context, url string) (*goquery.Document, error) {
	resp, err := c.http.R().SetContext(ctx).Get(url)
	if err != nil {
		return nil, fmt.Errorf("error fetching '%s': %w", url, err)
	}
	if resp.IsError() {
		return nil, fmt.Errorf("unexpected status from '%s': %s", url, resp.Status())
	}
	if contentType := resp.Header().Get("Content-Type"); contentType != "" &&
		!strings.HasPrefix(contentType, "text/html") {
		return nil, fmt.Errorf("expected an html response at '%s', but got '%s'", url, contentType)
	}

	doc, err := goquery.NewDocumentFromReader(strings.NewReader(resp.String()))
	if err != nil {
		return nil, fmt.Errorf("error parsing html from '%s': %w", url, err)
	}
	return doc, nil
}
