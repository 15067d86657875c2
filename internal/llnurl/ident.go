// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package llnurl resolves Library.Link Network catalog URLs to a stable
// (host, hash) identity and deduplicates URLs that name the same resource.
//
// Catalog systems publish two URL families for the same resource:
//
//	http://link.example.org/resource/9bz8W30aSZY/
//	http://link.example.org/portal/Some-Title/9bz8W30aSZY/
//
// Ident and Simplify map both onto one key; Set uses that key for membership.
package llnurl

import (
	"errors"
	"fmt"
	"net/url"
	"strings"
)

const (
	resourceMarker = "/resource/"
	portalMarker   = "/portal/"
)

// ErrInvalidIdentity is matched by every InvalidIdentityError via errors.Is.
var ErrInvalidIdentity = errors.New("invalid LLN URL")

// InvalidIdentityError reports a URL that is not a recognized catalog URL:
// it matches neither the resource nor the portal shape, or a portal URL is
// missing the hash segment after the title.
type InvalidIdentityError struct {
	URL string
}

func (e *InvalidIdentityError) Error() string {
	return fmt.Sprintf("invalid LLN URL: %q", e.URL)
}

// Is lets errors.Is(err, ErrInvalidIdentity) succeed.
func (e *InvalidIdentityError) Is(target error) bool {
	return target == ErrInvalidIdentity
}

// Shape classifies a catalog URL.
type Shape int

const (
	ShapeUnknown Shape = iota
	ShapeResource
	ShapePortal
)

func (s Shape) String() string {
	switch s {
	case ShapeResource:
		return "resource"
	case ShapePortal:
		return "portal"
	default:
		return "unknown"
	}
}

// Identity is the (host, hash) pair naming one catalog resource.
type Identity struct {
	Host string
	Hash string
}

func (id Identity) String() string {
	return id.Host + " " + id.Hash
}

// parsed holds the pieces of a catalog URL needed by Ident and Simplify.
type parsed struct {
	shape  Shape
	scheme string
	host   string
	title  string // portal shape only
	hash   string
}

// parse splits rawURL and applies the shape rules. A URL whose path starts
// with /resource/ takes the first following segment as its hash. Otherwise,
// if /portal/ appears anywhere in the URL, the path segments after /portal/
// are title then hash.
func parse(rawURL string) (parsed, error) {
	u, err := url.Parse(rawURL)
	if err != nil {
		return parsed{}, &InvalidIdentityError{URL: rawURL}
	}
	p := parsed{scheme: u.Scheme, host: u.Host}
	path := u.EscapedPath()

	switch {
	case strings.HasPrefix(path, resourceMarker):
		rest := strings.TrimPrefix(path, resourceMarker)
		hash, _, _ := strings.Cut(rest, "/")
		if hash == "" {
			return parsed{}, &InvalidIdentityError{URL: rawURL}
		}
		p.shape = ShapeResource
		p.hash = hash
	case strings.Contains(rawURL, portalMarker):
		_, rest, found := strings.Cut(path, portalMarker)
		if !found {
			return parsed{}, &InvalidIdentityError{URL: rawURL}
		}
		segments := strings.Split(rest, "/")
		if len(segments) < 2 || segments[1] == "" {
			return parsed{}, &InvalidIdentityError{URL: rawURL}
		}
		p.shape = ShapePortal
		p.title = segments[0]
		p.hash = segments[1]
	default:
		return parsed{}, &InvalidIdentityError{URL: rawURL}
	}
	return p, nil
}

// Classify reports the shape of rawURL without returning an error.
func Classify(rawURL string) Shape {
	p, err := parse(rawURL)
	if err != nil {
		return ShapeUnknown
	}
	return p.shape
}

// Ident returns the identifying (host, hash) pair of a catalog URL.
// Trailing path segments, the portal title, the query and the fragment do
// not participate in the identity.
func Ident(rawURL string) (Identity, error) {
	p, err := parse(rawURL)
	if err != nil {
		return Identity{}, err
	}
	return Identity{Host: p.host, Hash: p.hash}, nil
}

// Simplify returns the canonical form of a catalog URL: scheme and host
// followed by /resource/<hash>/ or /portal/<title>/<hash>/, with query and
// fragment dropped. Simplify is idempotent.
func Simplify(rawURL string) (string, error) {
	p, err := parse(rawURL)
	if err != nil {
		return "", err
	}

	var path string
	switch p.shape {
	case ShapeResource:
		path = resourceMarker + p.hash + "/"
	case ShapePortal:
		path = portalMarker + p.title + "/" + p.hash + "/"
	}
	// Segments keep their original escaping.
	unescaped, err := url.PathUnescape(path)
	if err != nil {
		return "", &InvalidIdentityError{URL: rawURL}
	}
	u := url.URL{Scheme: p.scheme, Host: p.host, Path: unescaped, RawPath: path}
	return u.String(), nil
}
