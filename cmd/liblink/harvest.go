// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/pdiddy/liblink-harvest/internal/harvest"
	"github.com/pdiddy/liblink-harvest/internal/sitemap"
)

var harvestCmd = &cobra.Command{
	Use:   "harvest",
	Short: "Harvest records and branches from every member site",
	Long: `Harvest discovers member sites from the network sitemap, then fetches
each homepage and extracts its organization record and branches. Sites
are fetched in parallel; a failing site does not stop the run.

A status line per site and a summary go to stdout. With --out the full
results are written as JSON (.json) or YAML (any other extension).`,
	Args: cobra.NoArgs,
	RunE: runHarvest,
}

func init() {
	harvestCmd.Flags().String("out", "", "write the batch report to this file")
	harvestCmd.Flags().Int("concurrency", defaultConcurrency, "number of sites fetched in parallel")
	harvestCmd.Flags().Duration("delay", 0, "pause before each site fetch")
	harvestCmd.Flags().String("filter", "", "only harvest sites whose host contains this text")

	_ = viper.BindPFlag("concurrency", harvestCmd.Flags().Lookup("concurrency"))
	_ = viper.BindPFlag("delay", harvestCmd.Flags().Lookup("delay"))

	rootCmd.AddCommand(harvestCmd)
}

func runHarvest(cmd *cobra.Command, args []string) error {
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

	result := harvest.HarvestBatch(ctx, client, sites, cfg, cmd.OutOrStdout(), logger)

	if out, _ := cmd.Flags().GetString("out"); out != "" {
		if err := harvest.WriteReport(out, result); err != nil {
			return fmt.Errorf("writing report: %w", err)
		}
		logger.Info("wrote report", "path", out, "run", result.RunID)
	}
	if result.HasFailures() {
		return fmt.Errorf("%d site(s) failed harvest", result.Failed)
	}
	return nil
}
