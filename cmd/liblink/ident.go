// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/pdiddy/liblink-harvest/internal/llnurl"
)

var identCmd = &cobra.Command{
	Use:   "ident URL...",
	Short: "Resolve Library.Link URLs to host and resource hash",
	Long: `Ident prints "host hash" for each resource or portal URL, together with
its canonical form. URLs of any other shape print the identity error.`,
	Args: cobra.MinimumNArgs(1),
	RunE: runIdent,
}

func init() {
	rootCmd.AddCommand(identCmd)
}

func runIdent(cmd *cobra.Command, args []string) error {
	w := cmd.OutOrStdout()
	var failed int
	for _, raw := range args {
		id, err := llnurl.Ident(raw)
		if err != nil {
			fmt.Fprintf(w, "invalid: %s\n", err)
			failed++
			continue
		}
		canonical, _ := llnurl.Simplify(raw)
		fmt.Fprintf(w, "%s %s\t%s\n", id.Host, id.Hash, canonical)
	}
	if failed > 0 {
		return fmt.Errorf("%d URL(s) are not Library.Link resources", failed)
	}
	return nil
}
