// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package harvest

import (
	"strings"

	"github.com/pdiddy/liblink-harvest/internal/graph"
	"github.com/pdiddy/liblink-harvest/pkg/types"
)

// Branches lists every Library entity in graph order. Entities without a
// name are skipped. An empty graph yields an empty, non-nil slice.
func Branches(g graph.Matcher) []types.Branch {
	branches := []types.Branch{}
	for _, id := range graph.SubjectsOfType(g, graph.TypeLibrary) {
		name, ok := graph.SimpleLookup(g, id, graph.SchemaName)
		if !ok {
			continue
		}
		url, _ := graph.SimpleLookup(g, id, graph.SchemaURL)
		branches = append(branches, types.Branch{
			ID:          id,
			URL:         url,
			Name:        strings.TrimSpace(name),
			Coordinates: coordinates(g, id),
			Address:     address(g, id),
		})
	}
	return branches
}

// coordinates follows Library -location-> Place -geo-> GeoCoordinates.
// Both latitude and longitude must be present, otherwise the branch has no
// coordinates. The published text is kept as is, numeric or not.
func coordinates(g graph.Matcher, library string) *types.Coordinates {
	place, ok := graph.SimpleLookup(g, library, graph.SchemaLocation)
	if !ok {
		return nil
	}
	geo, ok := graph.SimpleLookup(g, place, graph.SchemaGeo)
	if !ok {
		return nil
	}
	lat := lookupTrimmed(g, geo, graph.SchemaLatitude)
	long := lookupTrimmed(g, geo, graph.SchemaLongitude)
	if lat == "" || long == "" {
		return nil
	}
	return &types.Coordinates{Latitude: lat, Longitude: long}
}

func lookupTrimmed(g graph.Matcher, subject, relationship string) string {
	v, _ := graph.SimpleLookup(g, subject, relationship)
	return strings.TrimSpace(v)
}

// address follows Library -address-> PostalAddress. Missing fields stay
// empty; an address node with none of the five fields counts as absent.
func address(g graph.Matcher, library string) *types.PostalAddress {
	node, ok := graph.SimpleLookup(g, library, graph.SchemaAddress)
	if !ok {
		return nil
	}
	field := func(rel string) string {
		return lookupTrimmed(g, node, rel)
	}
	addr := types.PostalAddress{
		Street:     field(graph.SchemaStreetAddress),
		Locality:   field(graph.SchemaAddressLocality),
		Region:     field(graph.SchemaAddressRegion),
		PostalCode: field(graph.SchemaPostalCode),
		Country:    field(graph.SchemaAddressCountry),
	}
	if addr == (types.PostalAddress{}) {
		return nil
	}
	return &addr
}
