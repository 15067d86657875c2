// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package sitemap enumerates Library.Link member sites from the network's
// sitemap index. Each <sitemap> entry points at a member's
// harvest/sitemap.xml; the member's base URL is the loc with that suffix
// removed.
package sitemap

import (
	"bytes"
	"context"
	"encoding/xml"
	"errors"
	"fmt"
	"io"
	"net/url"
	"strings"

	"github.com/pdiddy/liblink-harvest/pkg/types"
)

// DefaultURL is the network-wide sitemap index.
const DefaultURL = "http://library.link/harvest/sitemap.xml"

// Suffix ends every member loc.
const Suffix = "harvest/sitemap.xml"

// ErrShape is matched by every ShapeError via errors.Is.
var ErrShape = errors.New("unexpected sitemap loc shape")

// ShapeError reports a loc that does not end in Suffix.
type ShapeError struct {
	Loc string
}

func (e *ShapeError) Error() string {
	return fmt.Sprintf("sitemap loc %q does not end in %s", e.Loc, Suffix)
}

func (e *ShapeError) Is(target error) bool { return target == ErrShape }

// Fetcher returns the body of a URL.
type Fetcher interface {
	Fetch(ctx context.Context, url string) ([]byte, error)
}

type sitemapIndex struct {
	Sitemaps []sitemapEntry `xml:"sitemap"`
}

type sitemapEntry struct {
	Loc     string `xml:"loc"`
	LastMod string `xml:"lastmod"`
}

// Parse reads a sitemap index. Entries whose loc has the wrong shape are
// left out of the result and reported together in the returned error;
// the well-formed entries are returned regardless. A document that is not
// XML returns no sites.
func Parse(r io.Reader) ([]types.Site, error) {
	var idx sitemapIndex
	if err := xml.NewDecoder(r).Decode(&idx); err != nil {
		return nil, fmt.Errorf("parsing sitemap index: %w", err)
	}

	sites := make([]types.Site, 0, len(idx.Sitemaps))
	var errs []error
	for _, e := range idx.Sitemaps {
		site, err := SiteFromLoc(strings.TrimSpace(e.Loc), strings.TrimSpace(e.LastMod))
		if err != nil {
			errs = append(errs, err)
			continue
		}
		sites = append(sites, site)
	}
	return sites, errors.Join(errs...)
}

// SiteFromLoc derives a Site from one sitemap entry.
func SiteFromLoc(loc, lastmod string) (types.Site, error) {
	base, tail, found := strings.Cut(loc, Suffix)
	if !found || tail != "" {
		return types.Site{}, &ShapeError{Loc: loc}
	}
	u, err := url.Parse(loc)
	if err != nil {
		return types.Site{}, fmt.Errorf("parsing sitemap loc %q: %w", loc, err)
	}
	return types.Site{
		Sitemap: loc,
		BaseURL: base,
		Host:    u.Host,
		LastMod: lastmod,
	}, nil
}

// AllSites fetches the sitemap index at indexURL and parses it. Shape
// errors come back alongside the sites that did parse.
func AllSites(ctx context.Context, f Fetcher, indexURL string) ([]types.Site, error) {
	if indexURL == "" {
		indexURL = DefaultURL
	}
	body, err := f.Fetch(ctx, indexURL)
	if err != nil {
		return nil, fmt.Errorf("fetching sitemap index: %w", err)
	}
	return Parse(bytes.NewReader(body))
}

// FilterHost keeps the sites whose host contains substr.
func FilterHost(sites []types.Site, substr string) []types.Site {
	if substr == "" {
		return sites
	}
	var out []types.Site
	for _, s := range sites {
		if strings.Contains(s.Host, substr) {
			out = append(out, s)
		}
	}
	return out
}
