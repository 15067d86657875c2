// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package httputil

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"

	"github.com/charmbracelet/log"

	"github.com/pdiddy/liblink-harvest/pkg/types"
)

// maxBodySize caps how much of a page is read.
const maxBodySize = 16 << 20

// FetchError reports a failed page fetch. Transient failures (transport
// errors, 5xx, throttling that outlasted the retries) may succeed later;
// permanent ones (other non-2xx statuses) will not.
type FetchError struct {
	URL        string
	StatusCode int
	Transient  bool
	Err        error
}

func (e *FetchError) Error() string {
	if e.StatusCode != 0 {
		return fmt.Sprintf("fetching %s: HTTP %d", e.URL, e.StatusCode)
	}
	return fmt.Sprintf("fetching %s: %v", e.URL, e.Err)
}

func (e *FetchError) Unwrap() error { return e.Err }

// IsTransient reports whether err is a FetchError worth retrying later.
func IsTransient(err error) bool {
	var fe *FetchError
	return errors.As(err, &fe) && fe.Transient
}

// Client fetches page bodies, consulting an optional Cache first.
type Client struct {
	http       *http.Client
	userAgent  string
	maxRetries int
	cache      *Cache
	logger     *log.Logger
}

// NewClient builds a Client. cache may be nil to always hit the network.
// Cache failures never fail a fetch; they are reported to logger, or to
// log.Default() when logger is nil.
func NewClient(hc *http.Client, cfg types.HTTPConfig, cache *Cache, logger *log.Logger) *Client {
	if hc == nil {
		hc = &http.Client{Timeout: cfg.Timeout}
	}
	if logger == nil {
		logger = log.Default()
	}
	return &Client{
		http:       hc,
		userAgent:  cfg.UserAgent,
		maxRetries: cfg.MaxRetries,
		cache:      cache,
		logger:     logger,
	}
}

// Fetch returns the body of url. A fresh cache entry is returned without a
// request; a stale one is revalidated with If-None-Match when it has an
// ETag. Any failure is a *FetchError.
func (c *Client) Fetch(ctx context.Context, url string) ([]byte, error) {
	var cached *CacheEntry
	if c.cache != nil {
		entry, fresh, err := c.cache.Get(ctx, url)
		switch {
		case err != nil:
			c.logger.Warn("cache read failed, fetching", "url", url, "err", err)
		case entry != nil && fresh:
			return entry.Body, nil
		case entry != nil:
			cached = entry
		}
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, &FetchError{URL: url, Err: fmt.Errorf("creating request: %w", err)}
	}
	if c.userAgent != "" {
		req.Header.Set("User-Agent", c.userAgent)
	}
	req.Header.Set("Accept", "text/html,application/xhtml+xml,application/xml;q=0.9,*/*;q=0.8")
	if cached != nil && cached.ETag != "" {
		req.Header.Set("If-None-Match", cached.ETag)
	}

	resp, err := DoWithRetry(ctx, c.http, req, c.maxRetries)
	if err != nil {
		return nil, &FetchError{URL: url, Transient: true, Err: err}
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusNotModified && cached != nil {
		if c.cache != nil {
			if err := c.cache.Touch(ctx, url); err != nil {
				c.logger.Warn("cache touch failed", "url", url, "err", err)
			}
		}
		return cached.Body, nil
	}

	if resp.StatusCode != http.StatusOK {
		return nil, &FetchError{
			URL:        url,
			StatusCode: resp.StatusCode,
			Transient:  resp.StatusCode >= 500 || resp.StatusCode == http.StatusTooManyRequests,
			Err:        fmt.Errorf("HTTP %d", resp.StatusCode),
		}
	}

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxBodySize))
	if err != nil {
		return nil, &FetchError{URL: url, Transient: true, Err: fmt.Errorf("reading body: %w", err)}
	}

	// A failed cache write leaves the fetch itself successful.
	if c.cache != nil {
		if err := c.cache.Put(ctx, url, body, resp.Header.Get("ETag")); err != nil {
			c.logger.Warn("cache write failed", "url", url, "err", err)
		}
	}
	return body, nil
}
