// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package main is the entry point for the liblink CLI. It discovers
// Library.Link member sites from the network sitemap, extracts their
// organization records and branch listings, and resolves and deduplicates
// Library.Link URLs.
package main

import (
	"context"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/pdiddy/liblink-harvest/internal/secrets"
	"github.com/pdiddy/liblink-harvest/internal/sitemap"
)

// version is set at build time via ldflags.
var version = "dev"

// loadedSecrets holds credentials loaded from .secrets/ at startup.
var loadedSecrets map[string]string

// rootCmd is the base command for the liblink CLI.
var rootCmd = &cobra.Command{
	Use:   "liblink",
	Short: "Harvest metadata from Library.Link member sites",
	Long: `liblink walks the Library.Link network sitemap, fetches each member
site's homepage and reads the RDFa it publishes: the organization record
(name, consortium, software network, versions, features, aliases, logo)
and the list of physical branches.

It also resolves Library.Link resource and portal URLs to their canonical
identity, so that equivalent URLs can be deduplicated.

Page fetches go through a local SQLite response cache.`,
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		level := log.InfoLevel
		if verbose, _ := cmd.Flags().GetBool("verbose"); verbose {
			level = log.DebugLevel
		}
		logger := newLogger(os.Stderr, level)
		cmd.SetContext(withLogger(cmd.Context(), logger))

		s, err := secrets.Load(".secrets/", logger)
		if err != nil {
			return err
		}
		loadedSecrets = s
		if len(s) > 0 {
			keys := make([]string, 0, len(s))
			for k := range s {
				keys = append(keys, k)
			}
			sort.Strings(keys)
			logger.Debug("loaded secrets", "keys", keys)
		}
		if f := viper.ConfigFileUsed(); f != "" {
			logger.Debug("using config file", "path", f)
		}
		return nil
	},
}

func init() {
	cobra.OnInitialize(initConfig)

	pf := rootCmd.PersistentFlags()
	pf.String("config", "", "config file (default: ./liblink.yaml or ~/.config/liblink/liblink.yaml)")
	pf.BoolP("verbose", "v", false, "enable debug logging")
	pf.String("format", "yaml", "output format: yaml or json")
	pf.String("sitemap", sitemap.DefaultURL, "network sitemap index URL")
	pf.String("cache-dir", "", "response cache directory (default: user cache dir)")
	pf.Duration("cache-ttl", defaultCacheTTL, "serve cached pages without revalidation for this long")
	pf.Bool("no-cache", false, "bypass the response cache")
	pf.Duration("timeout", defaultTimeout, "HTTP request timeout")

	for key, flag := range map[string]string{
		"format":         "format",
		"sitemap_url":    "sitemap",
		"cache.dir":      "cache-dir",
		"cache.ttl":      "cache-ttl",
		"cache.disabled": "no-cache",
		"timeout":        "timeout",
	} {
		_ = viper.BindPFlag(key, pf.Lookup(flag))
	}
}

func initConfig() {
	cfgFile, _ := rootCmd.PersistentFlags().GetString("config")
	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else {
		viper.SetConfigName("liblink")
		viper.SetConfigType("yaml")
		viper.AddConfigPath(".")

		home, err := os.UserHomeDir()
		if err == nil {
			viper.AddConfigPath(filepath.Join(home, ".config", "liblink"))
		}
	}

	viper.SetEnvPrefix("LIBLINK")
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	viper.AutomaticEnv()

	viper.SetDefault("max_retries", defaultMaxRetries)
	viper.SetDefault("concurrency", defaultConcurrency)
	viper.SetDefault("delay", time.Duration(0))
	viper.SetDefault("user_agent", "liblink-harvest/"+version)

	_ = viper.ReadInConfig()
}

func main() {
	if err := rootCmd.ExecuteContext(context.Background()); err != nil {
		os.Exit(1)
	}
}
