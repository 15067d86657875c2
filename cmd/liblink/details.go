// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/pdiddy/liblink-harvest/internal/harvest"
	"github.com/pdiddy/liblink-harvest/pkg/types"
)

var detailsCmd = &cobra.Command{
	Use:   "details URL...",
	Short: "Extract organization records from member homepages",
	Long: `Details fetches each homepage and prints its organization record: name,
consortium, software network, pipeline and template versions, features,
aliases and logo. Pages that are not Library.Link member sites print a
null record.`,
	Args: cobra.MinimumNArgs(1),
	RunE: runDetails,
}

func init() {
	rootCmd.AddCommand(detailsCmd)
}

// siteOutput pairs a URL with what was extracted from it.
type siteOutput struct {
	URL      string            `json:"url" yaml:"url"`
	Record   *types.SiteRecord `json:"record" yaml:"record"`
	Branches []types.Branch    `json:"branches,omitempty" yaml:"branches,omitempty"`
}

func runDetails(cmd *cobra.Command, args []string) error {
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
		rec, err := harvest.GetDetails(ctx, client, url)
		if err != nil {
			return err
		}
		if rec == nil {
			loggerFromContext(ctx).Warn("not a member site", "url", url)
		}
		out = append(out, siteOutput{URL: url, Record: rec})
	}
	return writeOutput(cmd.OutOrStdout(), viper.GetString("format"), out)
}
