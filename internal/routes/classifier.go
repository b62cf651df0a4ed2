// Package routes decides which request paths require a session token.
//
// A [Classifier] is built once from the configured list of public ("allowed")
// path patterns and is read-only afterwards, so a single instance is shared by
// every request goroutine without locking.
//
// Pattern syntax is segment based and case sensitive:
//   - a literal segment matches exactly that segment;
//   - "*" matches any run of characters inside one segment;
//   - "**" as a whole segment matches zero or more segments;
//   - "?", "[class]" and "{a,b}" follow github.com/bmatcuk/doublestar.
//
// Matching is never substring based: the pattern "/users/register" exempts
// exactly that path and nothing below or beside it.
package routes

import (
	"fmt"
	"strings"

	"github.com/bmatcuk/doublestar/v4"
)

const (
	separator     = "/"
	anySubtree    = "/**"
	dotSegment    = "."
	dotDotSegment = ".."
)

// Classifier reports whether a request path is secured.
type Classifier struct {
	allowed []string
}

// NewClassifier compiles the allowed pattern list. Every pattern is normalised
// the same way request paths are (see [Normalize]) and checked for valid glob
// syntax. Any invalid pattern is a configuration error.
//
// An empty list is valid and secures every path.
func NewClassifier(allowed []string) (*Classifier, error) {
	compiled := make([]string, 0, len(allowed))
	for _, raw := range allowed {
		pattern, err := compilePattern(raw)
		if err != nil {
			return nil, err
		}
		compiled = append(compiled, pattern)
	}

	return &Classifier{allowed: compiled}, nil
}

// IsSecured returns false when path matches at least one allowed pattern and
// true otherwise. Paths carrying "." or ".." segments are always secured:
// the upstream may resolve them to a different resource than the one the
// pattern names.
func (c *Classifier) IsSecured(path string) bool {
	_, ok := c.Match(path)
	return !ok
}

// Match returns the first allowed pattern that matches path.
func (c *Classifier) Match(path string) (string, bool) {
	normalized, canonical := Normalize(path)
	if !canonical {
		return "", false
	}

	for _, pattern := range c.allowed {
		if matchPattern(pattern, normalized) {
			return pattern, true
		}
	}

	return "", false
}

// Allowed returns a copy of the compiled allowed patterns.
func (c *Classifier) Allowed() []string {
	out := make([]string, len(c.allowed))
	copy(out, c.allowed)
	return out
}

// Normalize brings path into the canonical form patterns are written in:
// exactly one leading slash, no trailing slash (except for the root) and no
// empty segments. The second result is false when the path contains "." or
// ".." segments.
//
//	Normalize("users/login/")   // "/users/login", true
//	Normalize("//users//login") // "/users/login", true
//	Normalize("/users/../id")   // "/users/id", false
func Normalize(path string) (string, bool) {
	canonical := true
	segments := make([]string, 0, strings.Count(path, separator)+1)
	for _, segment := range strings.Split(path, separator) {
		switch segment {
		case "":
			continue
		case dotSegment, dotDotSegment:
			canonical = false
		}
		segments = append(segments, segment)
	}

	return separator + strings.Join(segments, separator), canonical
}

func compilePattern(raw string) (string, error) {
	if strings.TrimSpace(raw) == "" {
		return "", fmt.Errorf("%w: empty pattern", ErrInvalidPattern)
	}

	pattern, canonical := Normalize(raw)
	if !canonical {
		return "", fmt.Errorf("%w: %q contains dot segments", ErrInvalidPattern, raw)
	}
	if !doublestar.ValidatePattern(pattern) {
		return "", fmt.Errorf("%w: %q is not a valid glob", ErrInvalidPattern, raw)
	}

	return pattern, nil
}

// matchPattern reports whether the normalised path matches pattern. A
// trailing "/**" also matches the bare prefix, so "/users/**" covers
// "/users" itself.
func matchPattern(pattern, path string) bool {
	if ok, err := doublestar.Match(pattern, path); err == nil && ok {
		return true
	}

	if prefix, found := strings.CutSuffix(pattern, anySubtree); found {
		if prefix == "" {
			return true
		}
		ok, err := doublestar.Match(prefix, path)
		return err == nil && ok
	}

	return false
}
