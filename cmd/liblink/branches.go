// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/pdiddy/liblink-harvest/internal/harvest"
)

var branchesCmd = &cobra.Command{
	Use:   "branches URL...",
	Short: "List the physical branches published on member homepages",
	Args:  cobra.MinimumNArgs(1),
	RunE:  runBranches,
}

func init() {
	rootCmd.AddCommand(branchesCmd)
}

func runBranches(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	client, closeFn, err := newFetcher(ctx, cfg)
	if err != nil {
		return err
	}
	defer closeFn()

	out := make([]siteOutput, 0, len(args))
	for _, url := range args {
		m, err := harvest.PrepSiteModel(ctx, client, url)
		if err != nil {
			return err
		}
		out = append(out, siteOutput{URL: url, Record: m.Details(), Branches: m.Branches()})
	}
	return writeOutput(cmd.OutOrStdout(), viper.GetString("format"), out)
}
