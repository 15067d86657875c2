// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package graph

// Namespaces.
const (
	RDFNamespace     = "http://www.w3.org/1999/02/22-rdf-syntax-ns#"
	SchemaOrg        = "http://schema.org/"
	LibraryLinkVocab = "http://library.link/vocab/"
)

// RDFType is the rdf:type relationship.
const RDFType = RDFNamespace + "type"

// Entity types used to locate organization, consortium and branch facts.
const (
	TypeOrganization  = SchemaOrg + "Organization"
	TypeLibrarySystem = SchemaOrg + "LibrarySystem"
	TypeConsortium    = SchemaOrg + "Consortium"
	TypeLibrary       = SchemaOrg + "Library"
)

// schema.org relationships.
const (
	SchemaName            = SchemaOrg + "name"
	SchemaURL             = SchemaOrg + "url"
	SchemaSameAs          = SchemaOrg + "sameAs"
	SchemaLogo            = SchemaOrg + "logo"
	SchemaLocation        = SchemaOrg + "location"
	SchemaGeo             = SchemaOrg + "geo"
	SchemaLatitude        = SchemaOrg + "latitude"
	SchemaLongitude       = SchemaOrg + "longitude"
	SchemaAddress         = SchemaOrg + "address"
	SchemaStreetAddress   = SchemaOrg + "streetAddress"
	SchemaAddressLocality = SchemaOrg + "addressLocality"
	SchemaAddressRegion   = SchemaOrg + "addressRegion"
	SchemaPostalCode      = SchemaOrg + "postalCode"
	SchemaAddressCountry  = SchemaOrg + "addressCountry"
)

// LLFeature asserts a Library.Link feature flag on a site.
const LLFeature = LibraryLinkVocab + "feature"
