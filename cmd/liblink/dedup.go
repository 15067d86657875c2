// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/pdiddy/liblink-harvest/internal/llnurl"
)

var dedupCmd = &cobra.Command{
	Use:   "dedup [file]",
	Short: "Deduplicate Library.Link URLs",
	Long: `Dedup reads one URL per line from file, or stdin when no file is given,
and prints the distinct entries sorted. Resource and portal URLs that name
the same item collapse to one line, printed in the canonical form of the
first one read. Anything else is kept verbatim.`,
	Args: cobra.MaximumNArgs(1),
	RunE: runDedup,
}

func init() {
	rootCmd.AddCommand(dedupCmd)
}

func runDedup(cmd *cobra.Command, args []string) error {
	in := cmd.InOrStdin()
	if len(args) == 1 {
		f, err := os.Open(args[0])
		if err != nil {
			return fmt.Errorf("opening %s: %w", args[0], err)
		}
		defer f.Close()
		in = f
	}

	set, read, err := readURLSet(in)
	if err != nil {
		return err
	}
	w := cmd.OutOrStdout()
	for _, key := range set.Sorted() {
		fmt.Fprintln(w, key)
	}
	loggerFromContext(cmd.Context()).Debug("deduplicated", "read", read, "distinct", set.Len())
	return nil
}

// readURLSet adds every non-blank, non-comment line of r to a new set and
// returns it with the number of URLs read.
func readURLSet(r io.Reader) (*llnurl.Set, int, error) {
	set := llnurl.NewSet()
	var read int
	sc := bufio.NewScanner(r)
	for sc.Scan() {
		line := strings.TrimSpace(sc.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		set.Add(line)
		read++
	}
	if err := sc.Err(); err != nil {
		return nil, 0, fmt.Errorf("reading URLs: %w", err)
	}
	return set, read, nil
}
