// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package rdfa

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pdiddy/liblink-harvest/internal/graph"
)

const samplePage = `<!DOCTYPE html>
<html vocab="http://schema.org/" prefix="lf: http://library.link/vocab/" lang="en">
<head><title>Test</title></head>
<body>
  <div typeof="LibrarySystem" resource="#_default">
    <h1 property="name">  Test Library  </h1>
    <a property="sameAs" href="http://www.wikidata.org/entity/Q1"></a>
    <img property="logo" src="/static/logo.png"/>
    <link property="lf:feature" href="http://library.link/ext/feature/one"/>
    <div property="member" typeof="Consortium">
      <a property="url" href="http://consortium.example/">home</a>
      <span property="name">Test Consortium</span>
    </div>
  </div>
  <div typeof="Library" resource="/branch/main">
    <span property="name">Main Branch</span>
    <div property="location" typeof="Place">
      <div property="geo" typeof="GeoCoordinates">
        <meta property="latitude" content="39.73"/>
        <meta property="longitude" content="-104.99"/>
      </div>
    </div>
    <time property="openingDate" datetime="1889-01-01">long ago</time>
  </div>
  <span property="9bad:thing">ignored</span>
  <span property="_:thing">ignored</span>
</body>
</html>`

func readSample(t *testing.T) *graph.Store {
	t.Helper()
	store := graph.NewStore()
	require.NoError(t, Read([]byte(samplePage), "http://link.example.org/", store))
	return store
}

func TestReadTypes(t *testing.T) {
	store := readSample(t)

	org, ok := graph.FirstOfType(store, graph.TypeLibrarySystem)
	require.True(t, ok)
	assert.Equal(t, "http://link.example.org/#_default", org)

	branch, ok := graph.FirstOfType(store, graph.TypeLibrary)
	require.True(t, ok)
	assert.Equal(t, "http://link.example.org/branch/main", branch)

	consortium, ok := graph.FirstOfType(store, graph.TypeConsortium)
	require.True(t, ok)
	assert.Equal(t, "_:b0", consortium)
}

func TestReadLiteralsAndLinks(t *testing.T) {
	store := readSample(t)
	org := "http://link.example.org/#_default"

	name, ok := graph.SimpleLookup(store, org, graph.SchemaName)
	require.True(t, ok)
	assert.Equal(t, "  Test Library  ", name)

	quads := store.Match(org, graph.SchemaName, "")
	require.Len(t, quads, 1)
	assert.Equal(t, "en", quads[0].Attributes[graph.AttrLang])

	assert.Equal(t, []string{"http://www.wikidata.org/entity/Q1"}, graph.Lookup(store, org, graph.SchemaSameAs))

	logo, ok := graph.SimpleLookup(store, org, graph.SchemaLogo)
	require.True(t, ok)
	assert.Equal(t, "http://link.example.org/static/logo.png", logo)

	assert.Equal(t, []string{"http://library.link/ext/feature/one"}, graph.Lookup(store, org, graph.LLFeature))

	url, ok := graph.SimpleLookup(store, "_:b0", graph.SchemaURL)
	require.True(t, ok)
	assert.Equal(t, "http://consortium.example/", url)

	member, ok := graph.SimpleLookup(store, org, graph.SchemaOrg+"member")
	require.True(t, ok)
	assert.Equal(t, "_:b0", member)
}

func TestReadNestedTraversal(t *testing.T) {
	store := readSample(t)
	branch := "http://link.example.org/branch/main"

	place, ok := graph.SimpleLookup(store, branch, graph.SchemaLocation)
	require.True(t, ok)
	geo, ok := graph.SimpleLookup(store, place, graph.SchemaGeo)
	require.True(t, ok)
	lat, ok := graph.SimpleLookup(store, geo, graph.SchemaLatitude)
	require.True(t, ok)
	assert.Equal(t, "39.73", lat)

	opened, ok := graph.SimpleLookup(store, branch, graph.SchemaOrg+"openingDate")
	require.True(t, ok)
	assert.Equal(t, "1889-01-01", opened)
}

func TestReadSkipsUnexpandableTerms(t *testing.T) {
	store := readSample(t)
	for _, q := range store.Quads() {
		assert.NotContains(t, q.Relationship, "thing")
	}
}

func TestReadAbsoluteIRIsInOtherSchemes(t *testing.T) {
	page := `<html vocab="http://schema.org/"><body>
<div typeof="urn:example:Kind" resource="http://h/x">
  <span property="urn:example:code">A1</span>
  <a property="tag:example.org,2026:contact" href="mailto:ops@example.org">mail</a>
  <span property="name">X</span>
</div></body></html>`
	store := graph.NewStore()
	require.NoError(t, Read([]byte(page), "http://h/", store))

	id, ok := graph.FirstOfType(store, "urn:example:Kind")
	require.True(t, ok)
	assert.Equal(t, "http://h/x", id)

	code, ok := graph.SimpleLookup(store, id, "urn:example:code")
	require.True(t, ok)
	assert.Equal(t, "A1", code)

	contact, ok := graph.SimpleLookup(store, id, "tag:example.org,2026:contact")
	require.True(t, ok)
	assert.Equal(t, "mailto:ops@example.org", contact)

	_, ok = graph.SimpleLookup(store, id, graph.SchemaName)
	assert.True(t, ok)
}

func TestIsScheme(t *testing.T) {
	for _, s := range []string{"urn", "mailto", "tag", "svn+ssh", "x-y.z", "H2"} {
		assert.True(t, isScheme(s), s)
	}
	for _, s := range []string{"", "_", "9bad", "a b", "é"} {
		assert.False(t, isScheme(s), s)
	}
}

func TestReadBaseHref(t *testing.T) {
	page := `<html vocab="http://schema.org/"><head><base href="http://other.example/root/"></head>
<body><div typeof="Library" resource="b1"><span property="name">X</span></div></body></html>`
	store := graph.NewStore()
	require.NoError(t, Read([]byte(page), "http://link.example.org/", store))

	id, ok := graph.FirstOfType(store, graph.TypeLibrary)
	require.True(t, ok)
	assert.Equal(t, "http://other.example/root/b1", id)
}

func TestReadNoVocab(t *testing.T) {
	page := `<html><body><div typeof="Library"><span property="name">X</span></div></body></html>`
	store := graph.NewStore()
	require.NoError(t, Read([]byte(page), "http://link.example.org/", store))
	assert.Equal(t, 0, store.Len())
}

func TestReadBadBase(t *testing.T) {
	err := Read([]byte("<html></html>"), "http://[::1", graph.NewStore())
	assert.Error(t, err)
}
