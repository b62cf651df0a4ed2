// Package proxy forwards allowed gateway traffic to the upstream user service.
package proxy

import (
	"fmt"
	"net/http"
	"net/http/httputil"
	"net/url"
	"strings"

	"github.com/MKhiriev/go-user-gateway/internal/logger"
	"github.com/MKhiriev/go-user-gateway/internal/routes"
)

// Upstream is a reverse proxy to a single upstream address.
type Upstream struct {
	target      *url.URL
	stripPrefix string
	proxy       *httputil.ReverseProxy
}

// NewUpstream parses rawURL and builds the proxy. When stripPrefix is not
// empty it is removed from the inbound path before forwarding, so
// "/api/v1/users/login" with prefix "/api/v1" reaches the upstream as
// "/users/login".
func NewUpstream(rawURL, stripPrefix string) (*Upstream, error) {
	target, err := ParseUpstreamURL(rawURL)
	if err != nil {
		return nil, err
	}

	u := &Upstream{
		target:      target,
		stripPrefix: strings.TrimSuffix(stripPrefix, "/"),
	}
	u.proxy = &httputil.ReverseProxy{
		Rewrite:      u.rewrite,
		ErrorHandler: u.handleError,
	}

	return u, nil
}

// ParseUpstreamURL accepts only absolute http and https URLs with a host.
func ParseUpstreamURL(rawURL string) (*url.URL, error) {
	target, err := url.Parse(strings.TrimSpace(rawURL))
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidUpstream, err)
	}
	if (target.Scheme != "http" && target.Scheme != "https") || target.Host == "" {
		return nil, fmt.Errorf("%w: %q must be an absolute http(s) URL", ErrInvalidUpstream, rawURL)
	}

	return target, nil
}

// Target returns the upstream address.
func (u *Upstream) Target() string {
	return u.target.String()
}

func (u *Upstream) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	u.proxy.ServeHTTP(w, r)
}

func (u *Upstream) rewrite(pr *httputil.ProxyRequest) {
	canonicalizePath(pr.Out.URL)
	if u.stripPrefix != "" {
		pr.Out.URL.Path = trimPathPrefix(pr.Out.URL.Path, u.stripPrefix)
		if pr.Out.URL.RawPath != "" {
			pr.Out.URL.RawPath = trimPathPrefix(pr.Out.URL.RawPath, u.stripPrefix)
		}
	}

	pr.SetURL(u.target)
	pr.SetXForwarded()
}

func (u *Upstream) handleError(w http.ResponseWriter, r *http.Request, err error) {
	logger.FromRequest(r).Err(err).
		Str("upstream", u.target.String()).
		Str("path", r.URL.Path).
		Msg("upstream request failed")
	w.WriteHeader(http.StatusBadGateway)
}

// canonicalizePath rewrites the path into the form the route classifier
// decided on, so "/users//login" and "/users/login/" reach the upstream as
// "/users/login". Paths with dot segments are left alone; the classifier
// always treats them as secured.
func canonicalizePath(target *url.URL) {
	canonical, ok := routes.Normalize(target.Path)
	if !ok || canonical == target.Path {
		return
	}

	if target.RawPath != "" {
		target.RawPath, _ = routes.Normalize(target.RawPath)
	}
	target.Path = canonical
}

// trimPathPrefix removes prefix only at a segment boundary.
func trimPathPrefix(p, prefix string) string {
	rest, found := strings.CutPrefix(p, prefix)
	if !found || (rest != "" && !strings.HasPrefix(rest, "/")) {
		return p
	}
	if rest == "" {
		return "/"
	}
	return rest
}
