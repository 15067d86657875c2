// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package harvest turns a member site's homepage into normalized records:
// the organization details (name, consortium, software network, versions,
// features, aliases, logo) and its list of physical branches.
//
// Extraction runs over a graph.Matcher built from the page's RDFa plus the
// raw page bytes, which carry fingerprints the graph does not.
package harvest

import (
	"bytes"
	"regexp"
	"slices"
	"strings"

	"github.com/pdiddy/liblink-harvest/internal/graph"
	"github.com/pdiddy/liblink-harvest/pkg/types"
)

// DefaultNetwork is reported when no network fingerprint matches.
const DefaultNetwork = "zviz"

// networkHint maps a byte fingerprint in the page to a software network.
type networkHint struct {
	fingerprint []byte
	network     string
}

// networkHints is scanned in order and the last match wins.
var networkHints = []networkHint{
	// <link href="/static/liblink_ebsco/css/network.css" rel="stylesheet">
	{[]byte("liblink_ebsco/css/network.css"), "ebsco"},
	// <link href="/static/liblink_iii/css/network.css" rel="stylesheet"/>
	{[]byte("liblink_iii/css/network.css"), "iii"},
	// <link href="/static/liblink_bcv/css/network.css" rel="stylesheet"/>
	{[]byte("liblink_bcv/css/network.css"), "bcv"},
	// <link href="/static/liblink_atlas/css/network.css" rel="stylesheet"/>
	{[]byte("liblink_atlas/css/network.css"), "atlas"},
}

var (
	pipelineVersionPat = regexp.MustCompile(`<dt>Transformation Pipeline</dt>\s*<dd>([^<]*)</dd>`)
	templateVersionPat = regexp.MustCompile(`<dt>Template Version</dt>\s*<dd>([^<]*)</dd>`)
)

// FeatureNovelistMerge is implied by the legacy NoveList logo on sites
// that do not publish their features in the graph.
const FeatureNovelistMerge = "http://library.link/ext/feature/novelist/merge"

var legacyNovelistImg = []byte(`<img class="img-responsive" src="/static/liblink_ea/img/nlogo.png"`)

// Network returns the software network fingerprinted in text, or
// DefaultNetwork.
func Network(text []byte) string {
	network := DefaultNetwork
	for _, h := range networkHints {
		if bytes.Contains(text, h.fingerprint) {
			network = h.network
		}
	}
	return network
}

// Versions returns the transformation pipeline and template version
// markers from text. Either is empty when its marker is missing.
func Versions(text []byte) (pipeline, template string) {
	if m := pipelineVersionPat.FindSubmatch(text); m != nil {
		pipeline = string(m[1])
	}
	if m := templateVersionPat.FindSubmatch(text); m != nil {
		template = string(m[1])
	}
	return pipeline, template
}

// Features collects every feature asserted anywhere in the graph, plus the
// legacy NoveList feature when its logo appears in text. The result is
// sorted and free of duplicates.
func Features(g graph.Matcher, text []byte) []string {
	set := make(map[string]struct{})
	for _, q := range g.Match("", graph.LLFeature, "") {
		set[q.Target] = struct{}{}
	}
	if bytes.Contains(text, legacyNovelistImg) {
		set[FeatureNovelistMerge] = struct{}{}
	}

	features := make([]string, 0, len(set))
	for f := range set {
		features = append(features, f)
	}
	slices.Sort(features)
	return features
}

// Details builds the organization record. It returns nil when the graph
// has no LibrarySystem entity: the page is not a member site.
//
// Only the LibrarySystem is required. A LibrarySystem without a name still
// yields a record, with an empty Name.
func Details(g graph.Matcher, text []byte) *types.SiteRecord {
	id, ok := graph.FirstOfType(g, graph.TypeLibrarySystem)
	if !ok {
		return nil
	}

	rec := &types.SiteRecord{
		ID:       id,
		Network:  Network(text),
		Features: Features(g, text),
		SameAs:   graph.Lookup(g, id, graph.SchemaSameAs),
	}
	if name, ok := graph.SimpleLookup(g, id, graph.SchemaName); ok {
		rec.Name = strings.TrimSpace(name)
	}

	if group, ok := graph.FirstOfType(g, graph.TypeConsortium); ok {
		rec.Group, _ = graph.SimpleLookup(g, group, graph.SchemaURL)
		if name, ok := graph.SimpleLookup(g, group, graph.SchemaName); ok {
			rec.GroupName = strings.TrimSpace(name)
		}
	}

	rec.PipelineVersion, rec.TemplateVersion = Versions(text)

	if logo, ok := graph.SimpleLookup(g, id, graph.SchemaLogo); ok {
		rec.Logo = strings.TrimSpace(logo)
	}
	return rec
}

// OrgName returns the name of the first Organization entity that has one.
func OrgName(g graph.Matcher) string {
	for _, org := range graph.SubjectsOfType(g, graph.TypeOrganization) {
		if name, ok := graph.SimpleLookup(g, org, graph.SchemaName); ok {
			return strings.TrimSpace(name)
		}
	}
	return ""
}
