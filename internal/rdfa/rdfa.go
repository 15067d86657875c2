// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package rdfa reads RDFa Lite 1.1 markup (vocab, prefix, typeof, property,
// resource) from an HTML page into a graph.Store.
//
// Only the Lite attribute set is interpreted. Library.Link pages publish
// their organization, branch and feature facts with it.
package rdfa

import (
	"bytes"
	"fmt"
	"net/url"
	"strconv"
	"strings"

	"golang.org/x/net/html"

	"github.com/pdiddy/liblink-harvest/internal/graph"
)

// defaultPrefixes is the RDFa initial context subset recognized without a
// prefix declaration.
var defaultPrefixes = map[string]string{
	"schema": graph.SchemaOrg,
	"rdf":    graph.RDFNamespace,
	"rdfs":   "http://www.w3.org/2000/01/rdf-schema#",
	"owl":    "http://www.w3.org/2002/07/owl#",
	"xsd":    "http://www.w3.org/2001/XMLSchema#",
	"lf":     graph.LibraryLinkVocab,
}

// Elements whose href or src names the property value.
var (
	hrefElements = map[string]bool{"a": true, "area": true, "link": true}
	srcElements  = map[string]bool{"img": true, "audio": true, "video": true, "iframe": true, "embed": true, "source": true, "track": true}
)

// evalContext is the state inherited from ancestor elements.
type evalContext struct {
	subject  string
	vocab    string
	lang     string
	prefixes map[string]string
}

type reader struct {
	store  *graph.Store
	base   *url.URL
	blanks int
}

// Read parses body as HTML and adds every RDFa statement it finds to store.
// base is the page URL; relative references resolve against it, or against
// the page's <base href> when present.
func Read(body []byte, base string, store *graph.Store) error {
	doc, err := html.Parse(bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("parsing HTML: %w", err)
	}

	baseURL, err := url.Parse(base)
	if err != nil {
		return fmt.Errorf("parsing base URL %q: %w", base, err)
	}
	if href := findBaseHref(doc); href != "" {
		if ref, err := baseURL.Parse(href); err == nil {
			baseURL = ref
		}
	}

	r := &reader{store: store, base: baseURL}
	r.walk(doc, evalContext{subject: baseURL.String(), prefixes: defaultPrefixes})
	return nil
}

func findBaseHref(n *html.Node) string {
	if n.Type == html.ElementNode && n.Data == "base" {
		if href, ok := attr(n, "href"); ok {
			return href
		}
	}
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		if href := findBaseHref(c); href != "" {
			return href
		}
	}
	return ""
}

func (r *reader) walk(n *html.Node, ctx evalContext) {
	if n.Type == html.ElementNode {
		ctx = r.element(n, ctx)
	}
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		r.walk(c, ctx)
	}
}

// element emits the statements carried by n and returns the context for
// its children.
func (r *reader) element(n *html.Node, parent evalContext) evalContext {
	ctx := parent

	if v, ok := attr(n, "vocab"); ok {
		ctx.vocab = strings.TrimSpace(v)
	}
	if v, ok := attr(n, "prefix"); ok {
		ctx.prefixes = parsePrefixes(v, ctx.prefixes)
	}
	if v, ok := attr(n, "lang"); ok {
		ctx.lang = v
	} else if v, ok := attr(n, "xml:lang"); ok {
		ctx.lang = v
	}

	typeofs := strings.Fields(attrValue(n, "typeof"))
	props := strings.Fields(attrValue(n, "property"))
	_, hasTypeof := attr(n, "typeof")
	resource, hasResource := attr(n, "resource")
	if !hasResource {
		resource, hasResource = attr(n, "about")
	}

	var newSubject string
	switch {
	case hasTypeof:
		if hasResource {
			newSubject = r.resolve(resource)
		} else {
			newSubject = r.blank()
		}
		for _, t := range typeofs {
			if iri := ctx.expand(t); iri != "" {
				r.store.Add(newSubject, graph.RDFType, iri, nil)
			}
		}
	case hasResource && len(props) == 0:
		newSubject = r.resolve(resource)
	}

	if len(props) > 0 {
		value, attrs := r.propertyValue(n, ctx, newSubject, hasResource, resource)
		for _, p := range props {
			if iri := ctx.expand(p); iri != "" {
				r.store.Add(parent.subject, iri, value, attrs)
			}
		}
	}

	if newSubject != "" {
		ctx.subject = newSubject
	}
	return ctx
}

// propertyValue picks the value of a property attribute following RDFa Lite
// precedence: a new typed item, resource, href, src, content, datetime, then
// the element's text.
func (r *reader) propertyValue(n *html.Node, ctx evalContext, newSubject string, hasResource bool, resource string) (string, graph.Attributes) {
	switch {
	case newSubject != "":
		return newSubject, nil
	case hasResource:
		return r.resolve(resource), nil
	}
	if href, ok := attr(n, "href"); ok && hrefElements[n.Data] {
		return r.resolve(href), nil
	}
	if src, ok := attr(n, "src"); ok && srcElements[n.Data] {
		return r.resolve(src), nil
	}

	var value string
	if content, ok := attr(n, "content"); ok {
		value = content
	} else if dt, ok := attr(n, "datetime"); ok && n.Data == "time" {
		value = dt
	} else {
		value = textContent(n)
	}

	if ctx.lang == "" {
		return value, nil
	}
	return value, graph.Attributes{graph.AttrLang: ctx.lang}
}

func (r *reader) resolve(ref string) string {
	ref = strings.TrimSpace(ref)
	if strings.HasPrefix(ref, "_:") {
		return ref
	}
	u, err := r.base.Parse(ref)
	if err != nil {
		return ref
	}
	return u.String()
}

func (r *reader) blank() string {
	id := "_:b" + strconv.Itoa(r.blanks)
	r.blanks++
	return id
}

// expand turns a term, CURIE or absolute IRI into an absolute IRI. A
// prefix that is not declared but has the form of a URI scheme (urn:,
// mailto:, tag:) marks an absolute IRI. It returns "" for terms that
// cannot be expanded.
func (c evalContext) expand(term string) string {
	if strings.HasPrefix(term, "http://") || strings.HasPrefix(term, "https://") {
		return term
	}
	if prefix, local, ok := strings.Cut(term, ":"); ok {
		if ns, known := c.prefixes[prefix]; known {
			return ns + local
		}
		if isScheme(prefix) {
			return term
		}
		return ""
	}
	if c.vocab == "" {
		return ""
	}
	return c.vocab + term
}

// isScheme reports whether s matches ALPHA *( ALPHA / DIGIT / "+" / "-" / "." ).
func isScheme(s string) bool {
	if s == "" {
		return false
	}
	for i, r := range s {
		switch {
		case 'a' <= r && r <= 'z', 'A' <= r && r <= 'Z':
		case i > 0 && ('0' <= r && r <= '9' || r == '+' || r == '-' || r == '.'):
		default:
			return false
		}
	}
	return true
}

// parsePrefixes reads "p1: iri1 p2: iri2" on top of inherited mappings.
func parsePrefixes(decl string, inherited map[string]string) map[string]string {
	out := make(map[string]string, len(inherited)+2)
	for k, v := range inherited {
		out[k] = v
	}
	fields := strings.Fields(decl)
	for i := 0; i+1 < len(fields); i += 2 {
		name, ok := strings.CutSuffix(fields[i], ":")
		if !ok || name == "" {
			continue
		}
		out[strings.ToLower(name)] = fields[i+1]
	}
	return out
}

func attr(n *html.Node, key string) (string, bool) {
	for _, a := range n.Attr {
		if a.Key == key {
			return a.Val, true
		}
	}
	return "", false
}

func attrValue(n *html.Node, key string) string {
	v, _ := attr(n, key)
	return v
}

func textContent(n *html.Node) string {
	var b strings.Builder
	var collect func(*html.Node)
	collect = func(n *html.Node) {
		if n.Type == html.TextNode {
			b.WriteString(n.Data)
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			collect(c)
		}
	}
	collect(n)
	return b.String()
}
