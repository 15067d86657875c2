// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package harvest

import (
	"context"
	"errors"
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pdiddy/liblink-harvest/pkg/types"
)

const memberURL = "http://denver.example/"

// stubFetcher serves pages from a map and counts fetches.
type stubFetcher struct {
	pages map[string][]byte
	errs  map[string]error
	calls int
}

func (s *stubFetcher) Fetch(_ context.Context, url string) ([]byte, error) {
	s.calls++
	if err, ok := s.errs[url]; ok {
		return nil, err
	}
	if body, ok := s.pages[url]; ok {
		return body, nil
	}
	return nil, errors.New("not found: " + url)
}

func loadMember(t *testing.T) []byte {
	t.Helper()
	data, err := os.ReadFile("testdata/member.html")
	require.NoError(t, err)
	return data
}

func TestSiteModelDetails(t *testing.T) {
	m, err := NewSiteModel(memberURL, loadMember(t))
	require.NoError(t, err)

	rec := m.Details()
	require.NotNil(t, rec)
	assert.Equal(t, types.SiteRecord{
		ID:              "http://denver.example/#_default",
		Name:            "Denver Public Library",
		Group:           "http://consortium.example/",
		GroupName:       "Colorado Libraries",
		Network:         "iii",
		PipelineVersion: "bf-pipeline 2.3.1",
		TemplateVersion: "3.0.7",
		Features: []string{
			"http://library.link/ext/feature/events",
			FeatureNovelistMerge,
		},
		SameAs: []string{
			"http://www.wikidata.org/entity/Q5259513",
			"http://viaf.org/viaf/138563936",
		},
		Logo: "http://denver.example/static/img/logo.png",
	}, *rec)
	assert.Equal(t, "Denver Public Library", m.OrgName())
}

func TestSiteModelBranches(t *testing.T) {
	m, err := NewSiteModel(memberURL, loadMember(t))
	require.NoError(t, err)

	branches := m.Branches()
	require.Len(t, branches, 2)

	central := branches[0]
	assert.Equal(t, "http://denver.example/branch/central", central.ID)
	assert.Equal(t, "http://denver.example/branch/central", central.URL)
	assert.Equal(t, "Central Library", central.Name)
	require.NotNil(t, central.Coordinates)
	assert.Equal(t, "39.7372", central.Coordinates.Latitude)
	lat, long, err := central.Coordinates.Decimal()
	require.NoError(t, err)
	assert.InDelta(t, 39.7372, lat, 1e-9)
	assert.InDelta(t, -104.9877, long, 1e-9)
	require.NotNil(t, central.Address)
	assert.Equal(t, "Denver", central.Address.Locality)
	assert.Equal(t, "80204", central.Address.PostalCode)

	athmar := branches[1]
	assert.Equal(t, "Athmar Park", athmar.Name)
	assert.Empty(t, athmar.URL)
	assert.Nil(t, athmar.Coordinates)
	assert.Nil(t, athmar.Address)
}

func TestSiteModelNonMember(t *testing.T) {
	m, err := NewSiteModel("http://other.example/", []byte(`<html><body><p>Hello</p></body></html>`))
	require.NoError(t, err)
	assert.Nil(t, m.Details())
	assert.Empty(t, m.Branches())
	assert.Empty(t, m.OrgName())
}

func TestPrepSiteModelFetchError(t *testing.T) {
	boom := errors.New("connection refused")
	f := &stubFetcher{errs: map[string]error{memberURL: boom}}

	m, err := PrepSiteModel(context.Background(), f, memberURL)
	assert.Nil(t, m)
	assert.ErrorIs(t, err, boom)

	_, err = GetDetails(context.Background(), f, memberURL)
	assert.ErrorIs(t, err, boom)
	_, err = GetBranches(context.Background(), f, memberURL)
	assert.ErrorIs(t, err, boom)
	_, err = GetOrgName(context.Background(), f, memberURL)
	assert.ErrorIs(t, err, boom)
}

func TestGetHelpers(t *testing.T) {
	f := &stubFetcher{pages: map[string][]byte{memberURL: loadMember(t)}}
	ctx := context.Background()

	rec, err := GetDetails(ctx, f, memberURL)
	require.NoError(t, err)
	require.NotNil(t, rec)
	assert.Equal(t, "iii", rec.Network)

	branches, err := GetBranches(ctx, f, memberURL)
	require.NoError(t, err)
	assert.Len(t, branches, 2)

	name, err := GetOrgName(ctx, f, memberURL)
	require.NoError(t, err)
	assert.Equal(t, "Denver Public Library", name)
	assert.Equal(t, 3, f.calls)
}
