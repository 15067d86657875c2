// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package harvest

import (
	"context"
	"fmt"

	"github.com/pdiddy/liblink-harvest/internal/graph"
	"github.com/pdiddy/liblink-harvest/internal/rdfa"
	"github.com/pdiddy/liblink-harvest/pkg/types"
)

// Fetcher returns the body of a URL. Failures come back unchanged to the
// caller of PrepSiteModel; nothing here retries.
type Fetcher interface {
	Fetch(ctx context.Context, url string) ([]byte, error)
}

// SiteModel is one fetched homepage: its fact graph and the raw bytes the
// graph was read from. One model serves Details, Branches and OrgName.
type SiteModel struct {
	URL   string
	Graph *graph.Store
	Text  []byte
}

// NewSiteModel reads the RDFa in text, resolving references against url.
func NewSiteModel(url string, text []byte) (*SiteModel, error) {
	g := graph.NewStore()
	if err := rdfa.Read(text, url, g); err != nil {
		return nil, fmt.Errorf("reading RDFa from %s: %w", url, err)
	}
	return &SiteModel{URL: url, Graph: g, Text: text}, nil
}

// PrepSiteModel fetches url and builds its model. A fetch failure returns
// a nil model and the fetcher's error.
func PrepSiteModel(ctx context.Context, f Fetcher, url string) (*SiteModel, error) {
	text, err := f.Fetch(ctx, url)
	if err != nil {
		return nil, err
	}
	return NewSiteModel(url, text)
}

// Details returns the organization record, or nil for a non-member page.
func (m *SiteModel) Details() *types.SiteRecord {
	return Details(m.Graph, m.Text)
}

// Branches returns the branch listing.
func (m *SiteModel) Branches() []types.Branch {
	return Branches(m.Graph)
}

// OrgName returns the first named Organization.
func (m *SiteModel) OrgName() string {
	return OrgName(m.Graph)
}

// GetDetails fetches url and extracts its organization record.
func GetDetails(ctx context.Context, f Fetcher, url string) (*types.SiteRecord, error) {
	m, err := PrepSiteModel(ctx, f, url)
	if err != nil {
		return nil, err
	}
	return m.Details(), nil
}

// GetBranches fetches url and extracts its branches.
func GetBranches(ctx context.Context, f Fetcher, url string) ([]types.Branch, error) {
	m, err := PrepSiteModel(ctx, f, url)
	if err != nil {
		return nil, err
	}
	return m.Branches(), nil
}

// GetOrgName fetches url and returns its organization name.
func GetOrgName(ctx context.Context, f Fetcher, url string) (string, error) {
	m, err := PrepSiteModel(ctx, f, url)
	if err != nil {
		return "", err
	}
	return m.OrgName(), nil
}
