// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package graph

// SimpleLookup returns the target of the first statement with the given
// subject and relationship.
func SimpleLookup(m Matcher, subject, relationship string) (string, bool) {
	quads := m.Match(subject, relationship, "")
	if len(quads) == 0 {
		return "", false
	}
	return quads[0].Target, true
}

// Lookup returns every target of subject's relationship, in graph order.
func Lookup(m Matcher, subject, relationship string) []string {
	quads := m.Match(subject, relationship, "")
	out := make([]string, 0, len(quads))
	for _, q := range quads {
		out = append(out, q.Target)
	}
	return out
}

// SimpleLookupByValue returns the subject of the first statement with the
// given relationship and target.
func SimpleLookupByValue(m Matcher, relationship, target string) (string, bool) {
	quads := m.Match("", relationship, target)
	if len(quads) == 0 {
		return "", false
	}
	return quads[0].Subject, true
}

// SubjectsOfType returns the distinct subjects typed typeIRI, in graph order.
func SubjectsOfType(m Matcher, typeIRI string) []string {
	var out []string
	seen := make(map[string]bool)
	for _, q := range m.Match("", RDFType, typeIRI) {
		if seen[q.Subject] {
			continue
		}
		seen[q.Subject] = true
		out = append(out, q.Subject)
	}
	return out
}

// FirstOfType returns the first subject typed typeIRI.
func FirstOfType(m Matcher, typeIRI string) (string, bool) {
	return SimpleLookupByValue(m, RDFType, typeIRI)
}
