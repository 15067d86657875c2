// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/magefile/mage/mg"
	"github.com/magefile/mage/sh"
)

// cacheDir keeps the response cache inside the project for mage runs.
const cacheDir = "data/cache"

func liblink(args ...string) error {
	mg.Deps(Build)
	return sh.RunWithV(map[string]string{"LIBLINK_CACHE_DIR": cacheDir}, binPath, args...)
}

// Sites lists member sites from the network sitemap. Set FILTER to restrict
// the listing to hosts containing that text.
func Sites() error {
	args := []string{"sites"}
	if f := os.Getenv("FILTER"); f != "" {
		args = append(args, "--filter", f)
	}
	return liblink(args...)
}

// Harvest runs a full harvest and writes a timestamped YAML report to
// data/reports/.
func Harvest() error {
	mg.Deps(Init)
	out := filepath.Join("data", "reports", fmt.Sprintf("harvest-%s.yaml", time.Now().UTC().Format("20060102T150405Z")))
	return liblink("harvest", "--out", out)
}

// Dedup prints the distinct Library.Link URLs in the file named by FILE.
func Dedup() error {
	file := os.Getenv("FILE")
	if file == "" {
		return fmt.Errorf("set FILE to a file with one URL per line")
	}
	return liblink("dedup", file)
}
