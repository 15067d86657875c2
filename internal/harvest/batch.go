// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package harvest

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/charmbracelet/log"
	"github.com/google/uuid"
	"go.yaml.in/yaml/v3"
	"golang.org/x/sync/errgroup"

	"github.com/pdiddy/liblink-harvest/internal/httputil"
	"github.com/pdiddy/liblink-harvest/pkg/types"
)

const defaultConcurrency = 4

// SiteResult is the outcome of harvesting one site.
type SiteResult struct {
	Site     types.Site        `json:"site" yaml:"site"`
	Record   *types.SiteRecord `json:"record,omitempty" yaml:"record,omitempty"`
	Branches []types.Branch    `json:"branches,omitempty" yaml:"branches,omitempty"`

	// Error records a fetch or parse failure. Empty on success.
	Error string `json:"error,omitempty" yaml:"error,omitempty"`

	// Transient marks failures that may succeed on a later run.
	Transient bool `json:"transient,omitempty" yaml:"transient,omitempty"`
}

// Recognized reports whether the site yielded a member record.
func (r SiteResult) Recognized() bool {
	return r.Error == "" && r.Record != nil
}

// BatchResult holds the outcome of a batch harvest run.
type BatchResult struct {
	RunID        string       `json:"run_id" yaml:"run_id"`
	StartedAt    time.Time    `json:"started_at" yaml:"started_at"`
	Harvested    int          `json:"harvested" yaml:"harvested"`
	Unrecognized int          `json:"unrecognized" yaml:"unrecognized"`
	Failed       int          `json:"failed" yaml:"failed"`
	Sites        []SiteResult `json:"sites" yaml:"sites"`
}

// Total returns the number of sites processed.
func (r BatchResult) Total() int {
	return r.Harvested + r.Unrecognized + r.Failed
}

// HasFailures reports whether any site failed.
func (r BatchResult) HasFailures() bool {
	return r.Failed > 0
}

// HarvestSite fetches one site's homepage and extracts its record and
// branches. A page without a LibrarySystem gives a result with a nil Record.
func HarvestSite(ctx context.Context, f Fetcher, site types.Site) SiteResult {
	result := SiteResult{Site: site}
	m, err := PrepSiteModel(ctx, f, site.BaseURL)
	if err != nil {
		result.Error = err.Error()
		result.Transient = httputil.IsTransient(err)
		return result
	}
	result.Record = m.Details()
	if result.Record != nil {
		result.Branches = m.Branches()
	}
	return result
}

// HarvestBatch harvests sites with up to cfg.Concurrency workers, printing
// a status line per site to w and returning the results in input order.
// Individual failures do not stop the batch. Each worker waits cfg.Delay
// before its fetch.
func HarvestBatch(ctx context.Context, f Fetcher, sites []types.Site, cfg types.HarvestConfig, w io.Writer, logger *log.Logger) BatchResult {
	if logger == nil {
		logger = log.Default()
	}
	limit := cfg.Concurrency
	if limit <= 0 {
		limit = defaultConcurrency
	}

	result := BatchResult{
		RunID:     uuid.NewString(),
		StartedAt: time.Now().UTC(),
		Sites:     make([]SiteResult, len(sites)),
	}
	logger.Debug("starting harvest", "run", result.RunID, "sites", len(sites), "concurrency", limit)

	var (
		g  errgroup.Group
		mu sync.Mutex
	)
	g.SetLimit(limit)
	for i, site := range sites {
		g.Go(func() error {
			var r SiteResult
			if err := wait(ctx, cfg.Delay); err != nil {
				r = SiteResult{Site: site, Error: err.Error()}
			} else {
				r = HarvestSite(ctx, f, site)
			}
			result.Sites[i] = r

			mu.Lock()
			defer mu.Unlock()
			switch {
			case r.Error != "":
				fmt.Fprintf(w, "failed:       %s (%s)\n", site.Host, r.Error)
				logger.Warn("harvest failed", "host", site.Host, "transient", r.Transient, "err", r.Error)
			case r.Record == nil:
				fmt.Fprintf(w, "unrecognized: %s\n", site.Host)
				logger.Debug("no LibrarySystem on page", "host", site.Host)
			default:
				fmt.Fprintf(w, "harvested:    %s (%s, %d branches)\n", site.Host, r.Record.Name, len(r.Branches))
				if r.Record.Name == "" {
					logger.Warn("member page has no organization name", "host", site.Host)
				}
			}
			return nil
		})
	}
	_ = g.Wait()

	for _, r := range result.Sites {
		switch {
		case r.Error != "":
			result.Failed++
		case r.Record == nil:
			result.Unrecognized++
		default:
			result.Harvested++
		}
	}

	fmt.Fprintf(w, "\nBatch summary: %d harvested, %d unrecognized, %d failed (total: %d)\n",
		result.Harvested, result.Unrecognized, result.Failed, result.Total())
	return result
}

func wait(ctx context.Context, d time.Duration) error {
	if d <= 0 {
		return ctx.Err()
	}
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-time.After(d):
		return nil
	}
}

// WriteReport writes result to path as JSON when the extension is .json
// and as YAML otherwise.
func WriteReport(path string, result BatchResult) error {
	var (
		data []byte
		err  error
	)
	if strings.EqualFold(filepath.Ext(path), ".json") {
		data, err = json.MarshalIndent(result, "", "  ")
	} else {
		data, err = yaml.Marshal(result)
	}
	if err != nil {
		return fmt.Errorf("marshaling report: %w", err)
	}
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("creating directory %s: %w", dir, err)
		}
	}
	return os.WriteFile(path, data, 0o644)
}
