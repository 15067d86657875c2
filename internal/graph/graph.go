// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package graph holds the fact graph extracted from one fetched page: an
// in-memory list of (subject, relationship, target, attributes) quads with
// a wildcard Match query, plus lookup helpers layered on Match.
package graph

// Attributes annotates a quad, e.g. the language of a literal target.
type Attributes map[string]string

// AttrLang is the attribute key carrying a literal's language tag.
const AttrLang = "@lang"

// Quad is one statement in the fact graph.
type Quad struct {
	Subject      string     `json:"subject" yaml:"subject"`
	Relationship string     `json:"relationship" yaml:"relationship"`
	Target       string     `json:"target" yaml:"target"`
	Attributes   Attributes `json:"attributes,omitempty" yaml:"attributes,omitempty"`
}

// Matcher is the query capability the extraction code depends on. An empty
// subject, relationship or target matches anything. Results come back in
// insertion order.
type Matcher interface {
	Match(subject, relationship, target string) []Quad
}

// Store is an in-memory Matcher. The zero value is an empty graph.
type Store struct {
	quads []Quad
}

// NewStore returns an empty Store.
func NewStore() *Store {
	return &Store{}
}

// Add appends a statement.
func (s *Store) Add(subject, relationship, target string, attrs Attributes) {
	s.quads = append(s.quads, Quad{
		Subject:      subject,
		Relationship: relationship,
		Target:       target,
		Attributes:   attrs,
	})
}

// AddQuad appends q.
func (s *Store) AddQuad(q Quad) {
	s.quads = append(s.quads, q)
}

// Len returns the number of statements.
func (s *Store) Len() int {
	return len(s.quads)
}

// Quads returns a copy of every statement in insertion order.
func (s *Store) Quads() []Quad {
	out := make([]Quad, len(s.quads))
	copy(out, s.quads)
	return out
}

// Match returns the statements matching the non-empty arguments.
func (s *Store) Match(subject, relationship, target string) []Quad {
	var out []Quad
	for _, q := range s.quads {
		if subject != "" && q.Subject != subject {
			continue
		}
		if relationship != "" && q.Relationship != relationship {
			continue
		}
		if target != "" && q.Target != target {
			continue
		}
		out = append(out, q)
	}
	return out
}
