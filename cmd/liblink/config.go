// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/spf13/viper"
	"go.yaml.in/yaml/v3"

	"github.com/pdiddy/liblink-harvest/internal/httputil"
	"github.com/pdiddy/liblink-harvest/internal/secrets"
	"github.com/pdiddy/liblink-harvest/pkg/types"
)

const (
	defaultTimeout     = 60 * time.Second
	defaultCacheTTL    = 24 * time.Hour
	defaultMaxRetries  = 5
	defaultConcurrency = 4
)

// loadConfig assembles the harvest configuration from flags, environment
// and config file, in viper's precedence order.
func loadConfig() (types.HarvestConfig, error) {
	cfg := types.HarvestConfig{
		HTTPConfig: types.HTTPConfig{
			Timeout:    viper.GetDuration("timeout"),
			UserAgent:  secrets.UserAgent(viper.GetString("user_agent"), loadedSecrets),
			MaxRetries: viper.GetInt("max_retries"),
		},
		Cache: types.CacheConfig{
			Dir:      viper.GetString("cache.dir"),
			TTL:      viper.GetDuration("cache.ttl"),
			Disabled: viper.GetBool("cache.disabled"),
		},
		SitemapURL:  viper.GetString("sitemap_url"),
		Concurrency: viper.GetInt("concurrency"),
		Delay:       viper.GetDuration("delay"),
	}
	if cfg.Timeout <= 0 {
		cfg.Timeout = defaultTimeout
	}
	if cfg.Cache.Dir == "" {
		dir, err := os.UserCacheDir()
		if err != nil {
			return cfg, fmt.Errorf("locating cache directory: %w", err)
		}
		cfg.Cache.Dir = filepath.Join(dir, "liblink")
	}
	return cfg, nil
}

// openCache opens the response cache unless it is disabled, in which case
// it returns nil.
func openCache(cfg types.HarvestConfig) (*httputil.Cache, error) {
	if cfg.Cache.Disabled {
		return nil, nil
	}
	return httputil.NewCache(cfg.Cache.Dir, cfg.Cache.TTL)
}

// newFetcher builds the page client for cfg. The returned func releases
// the cache and is safe to call when the cache is disabled.
func newFetcher(ctx context.Context, cfg types.HarvestConfig) (*httputil.Client, func(), error) {
	cache, err := openCache(cfg)
	if err != nil {
		return nil, nil, err
	}
	logger := loggerFromContext(ctx)
	if cache != nil {
		logger.Debug("response cache", "dir", cache.Dir(), "ttl", cfg.Cache.TTL)
	}
	closeFn := func() {
		if cache == nil {
			return
		}
		if err := cache.Close(); err != nil {
			logger.Warn("closing cache", "err", err)
		}
	}
	return httputil.NewClient(nil, cfg.HTTPConfig, cache, logger), closeFn, nil
}

// writeOutput renders v to w in the configured format.
func writeOutput(w io.Writer, format string, v any) error {
	switch strings.ToLower(format) {
	case "json":
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(v)
	case "yaml", "":
		enc := yaml.NewEncoder(w)
		enc.SetIndent(2)
		if err := enc.Encode(v); err != nil {
			return err
		}
		return enc.Close()
	default:
		return fmt.Errorf("unknown output format %q (want yaml or json)", format)
	}
}
