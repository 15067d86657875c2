package types

import "time"

// HTTPConfig holds shared HTTP settings used by every stage that fetches pages.
type HTTPConfig struct {
	// Timeout is the HTTP request timeout.
	Timeout time.Duration `json:"timeout" yaml:"timeout"`

	// UserAgent is the User-Agent header sent with HTTP requests
	// (e.g. "liblink-harvest/0.1").
	UserAgent string `json:"user_agent" yaml:"user_agent"`

	// MaxRetries bounds retries on 429 and 503 responses (default 5).
	MaxRetries int `json:"max_retries" yaml:"max_retries"`
}

// CacheConfig holds settings for the HTTP response cache.
type CacheConfig struct {
	// Dir is the directory holding cache.db.
	Dir string `json:"dir" yaml:"dir"`

	// TTL is how long a cached response is served without revalidation.
	// Zero means cached responses never go stale.
	TTL time.Duration `json:"ttl" yaml:"ttl"`

	// Disabled bypasses the cache entirely.
	Disabled bool `json:"disabled" yaml:"disabled"`
}

// HarvestConfig holds settings for discovery and site harvesting.
type HarvestConfig struct {
	HTTPConfig `yaml:",inline"`

	Cache CacheConfig `json:"cache" yaml:"cache"`

	// SitemapURL is the network sitemap index.
	SitemapURL string `json:"sitemap_url" yaml:"sitemap_url"`

	// Concurrency is the number of sites fetched in parallel (default 4).
	Concurrency int `json:"concurrency" yaml:"concurrency"`

	// Delay is the pause each worker takes before fetching a site.
	Delay time.Duration `json:"delay" yaml:"delay"`
}
