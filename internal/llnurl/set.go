// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package llnurl

import (
	"iter"
	"maps"
	"slices"
)

// setKey decides membership: the (host, hash) identity for catalog URLs,
// or the raw string for anything Ident rejects. The two never collide
// since exactly one side is set.
type setKey struct {
	id  Identity
	raw string
}

func keyOf(rawURL string) setKey {
	if id, err := Ident(rawURL); err == nil {
		return setKey{id: id}
	}
	return setKey{raw: rawURL}
}

// Set is a collection of URLs whose membership is decided by identity
// rather than by raw string equality: the resource and portal forms of one
// item, portal URLs that differ only in title, and http/https variants all
// count as one element. URLs that Ident rejects are kept verbatim, so
// unknown shapes still dedup by exact match.
//
// Each element is reported as the canonical form of the first URL added
// for its identity.
//
// Set is not safe for concurrent use. Give each worker its own Set and
// merge them with Union.
type Set struct {
	raw map[setKey]string
}

// NewSet returns a Set holding the given URLs.
func NewSet(urls ...string) *Set {
	s := &Set{raw: make(map[setKey]string, len(urls))}
	for _, u := range urls {
		s.Add(u)
	}
	return s
}

// Key returns the string a Set reports for rawURL when it is the first URL
// added for its identity: its canonical form, or rawURL itself when it is
// not a recognized catalog URL.
func Key(rawURL string) string {
	if simplified, err := Simplify(rawURL); err == nil {
		return simplified
	}
	return rawURL
}

func (s *Set) init() {
	if s.raw == nil {
		s.raw = make(map[setKey]string)
	}
}

// Add inserts rawURL. Adding a URL identity-equivalent to one already
// present leaves the Set unchanged.
func (s *Set) Add(rawURL string) {
	s.init()
	k := keyOf(rawURL)
	if _, ok := s.raw[k]; ok {
		return
	}
	s.raw[k] = Key(rawURL)
}

// Contains reports whether rawURL, or a URL identity-equivalent to it, is
// in the Set.
func (s *Set) Contains(rawURL string) bool {
	_, ok := s.raw[keyOf(rawURL)]
	return ok
}

// Discard removes the element identity-equivalent to rawURL, if any.
// Removing an absent URL is a no-op.
func (s *Set) Discard(rawURL string) {
	delete(s.raw, keyOf(rawURL))
}

// Len returns the number of distinct entries.
func (s *Set) Len() int {
	return len(s.raw)
}

// All iterates the stored URLs in no particular order. These are canonical
// forms, not the URLs originally passed to Add.
func (s *Set) All() iter.Seq[string] {
	return maps.Values(s.raw)
}

// Sorted returns the stored URLs in lexical order.
func (s *Set) Sorted() []string {
	return slices.Sorted(maps.Values(s.raw))
}

// Union adds every entry of other to s. Where both hold the same identity,
// s keeps its own URL.
func (s *Set) Union(other *Set) {
	s.init()
	for k, v := range other.raw {
		if _, ok := s.raw[k]; !ok {
			s.raw[k] = v
		}
	}
}

// Equal reports whether s and other hold the same identities.
func (s *Set) Equal(other *Set) bool {
	if s.Len() != other.Len() {
		return false
	}
	for k := range s.raw {
		if _, ok := other.raw[k]; !ok {
			return false
		}
	}
	return true
}
