// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/pdiddy/liblink-harvest/internal/sitemap"
)

var sitesCmd = &cobra.Command{
	Use:   "sites",
	Short: "List member sites from the network sitemap",
	Long: `Sites fetches the network sitemap index and lists every member site it
names. Entries whose loc does not end in harvest/sitemap.xml are reported
and skipped.`,
	Args: cobra.NoArgs,
	RunE: runSites,
}

func init() {
	sitesCmd.Flags().String("filter", "", "only list sites whose host contains this text")

	rootCmd.AddCommand(sitesCmd)
}

func runSites(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()
	logger := loggerFromContext(ctx)

	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	client, closeFn, err := newFetcher(ctx, cfg)
	if err != nil {
		return err
	}
	defer closeFn()

	sites, err := sitemap.AllSites(ctx, client, cfg.SitemapURL)
	if err != nil {
		if !errors.Is(err, sitemap.ErrShape) {
			return fmt.Errorf("discovering sites: %w", err)
		}
		logger.Warn("skipped malformed sitemap entries", "err", err)
	}

	filter, _ := cmd.Flags().GetString("filter")
	sites = sitemap.FilterHost(sites, filter)
	logger.Debug("discovered sites", "count", len(sites))
	return writeOutput(cmd.OutOrStdout(), viper.GetString("format"), sites)
}
