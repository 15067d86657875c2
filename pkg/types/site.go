// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package types defines shared data structures for the Library.Link harvester:
// sites discovered from the network sitemap, the records extracted from each
// site's homepage, and stage configuration.
package types

import (
	"fmt"
	"strconv"
)

// Site is one member site listed in the network sitemap index.
type Site struct {
	// Sitemap is the loc entry, e.g. "http://link.denverlibrary.org/harvest/sitemap.xml".
	Sitemap string `json:"sitemap" yaml:"sitemap"`

	// BaseURL is Sitemap with the "harvest/sitemap.xml" suffix removed.
	BaseURL string `json:"base_url" yaml:"base_url"`

	// Host is the authority part of Sitemap.
	Host string `json:"host" yaml:"host"`

	// LastMod is the lastmod value exactly as published.
	LastMod string `json:"lastmod,omitempty" yaml:"lastmod,omitempty"`
}

// SiteRecord holds the normalized facts about one member organization.
// Empty strings mean the fact was not published.
type SiteRecord struct {
	// ID is the graph node of the LibrarySystem entity.
	ID string `json:"id" yaml:"id"`

	// Name is the organization display name, whitespace-trimmed. Empty on a
	// malformed member page.
	Name string `json:"name" yaml:"name"`

	// Group is the URL of the enclosing consortium.
	Group string `json:"group,omitempty" yaml:"group,omitempty"`

	// GroupName is the consortium display name.
	GroupName string `json:"groupname,omitempty" yaml:"groupname,omitempty"`

	// Network is the software network inferred from page fingerprints
	// (ebsco, iii, bcv, atlas, or the zviz default).
	Network string `json:"network" yaml:"network"`

	// PipelineVersion is the "Transformation Pipeline" marker value.
	PipelineVersion string `json:"pipeline_ver,omitempty" yaml:"pipeline_ver,omitempty"`

	// TemplateVersion is the "Template Version" marker value.
	TemplateVersion string `json:"template_ver,omitempty" yaml:"template_ver,omitempty"`

	// Features lists feature IRIs, sorted and without duplicates.
	Features []string `json:"features" yaml:"features"`

	// SameAs lists alias IRIs of the organization in graph order.
	SameAs []string `json:"same-as" yaml:"same-as"`

	// Logo is the logo URL, whitespace-trimmed.
	Logo string `json:"logo,omitempty" yaml:"logo,omitempty"`
}

// HasFeature reports whether iri is among the record's features.
func (r *SiteRecord) HasFeature(iri string) bool {
	for _, f := range r.Features {
		if f == iri {
			return true
		}
	}
	return false
}

// Coordinates is a branch's latitude and longitude as published on the
// page, whitespace-trimmed. Use Decimal for numeric values.
type Coordinates struct {
	Latitude  string `json:"latitude" yaml:"latitude"`
	Longitude string `json:"longitude" yaml:"longitude"`
}

// Decimal parses the coordinates as decimal degrees.
func (c Coordinates) Decimal() (lat, long float64, err error) {
	if lat, err = strconv.ParseFloat(c.Latitude, 64); err != nil {
		return 0, 0, fmt.Errorf("parsing latitude %q: %w", c.Latitude, err)
	}
	if long, err = strconv.ParseFloat(c.Longitude, 64); err != nil {
		return 0, 0, fmt.Errorf("parsing longitude %q: %w", c.Longitude, err)
	}
	return lat, long, nil
}

// PostalAddress is a branch's street address. Fields the page does not
// publish are empty.
type PostalAddress struct {
	Street     string `json:"street,omitempty" yaml:"street,omitempty"`
	Locality   string `json:"locality,omitempty" yaml:"locality,omitempty"`
	Region     string `json:"region,omitempty" yaml:"region,omitempty"`
	PostalCode string `json:"postal_code,omitempty" yaml:"postal_code,omitempty"`
	Country    string `json:"country,omitempty" yaml:"country,omitempty"`
}

// Branch is one physical library location of a member organization.
type Branch struct {
	ID          string         `json:"id" yaml:"id"`
	URL         string         `json:"url,omitempty" yaml:"url,omitempty"`
	Name        string         `json:"name" yaml:"name"`
	Coordinates *Coordinates   `json:"coordinates,omitempty" yaml:"coordinates,omitempty"`
	Address     *PostalAddress `json:"address,omitempty" yaml:"address,omitempty"`
}
