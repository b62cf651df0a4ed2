package authn

import (
	"errors"
	"net/http"
	"time"

	"github.com/MKhiriev/go-user-gateway/internal/clock"
	"github.com/MKhiriev/go-user-gateway/internal/logger"
	"github.com/MKhiriev/go-user-gateway/internal/token"
)

// Classifier decides whether a path requires a session token.
type Classifier interface {
	IsSecured(path string) bool
}

// Verifier validates a session token at a given instant.
type Verifier interface {
	Verify(tokenString string, now time.Time) token.Outcome
}

// Observer receives every decision together with the time spent reaching it.
type Observer interface {
	ObserveDecision(decision, reason string, elapsed time.Duration)
}

// Filter is shared by all concurrent requests. It holds only immutable
// configuration.
type Filter struct {
	classifier Classifier
	verifier   Verifier
	clock      clock.Clock
	cookieName string
	observer   Observer
}

// Option customises a [Filter].
type Option func(*Filter)

// WithObserver reports every decision to o.
func WithObserver(o Observer) Option {
	return func(f *Filter) {
		f.observer = o
	}
}

// NewFilter wires the classifier, the verifier and the clock used as "now"
// during verification. cookieName names the session cookie.
func NewFilter(classifier Classifier, verifier Verifier, c clock.Clock, cookieName string, opts ...Option) (*Filter, error) {
	switch {
	case classifier == nil:
		return nil, ErrNoClassifier
	case verifier == nil:
		return nil, ErrNoVerifier
	case c == nil:
		return nil, ErrNoClock
	case cookieName == "":
		return nil, ErrNoCookieName
	}

	f := &Filter{
		classifier: classifier,
		verifier:   verifier,
		clock:      c,
		cookieName: cookieName,
	}
	for _, opt := range opts {
		opt(f)
	}

	return f, nil
}

// Evaluate runs the decision stages for path. sessionToken is the value of
// the session cookie; present reports whether the cookie was sent at all.
// A present but empty cookie counts as missing.
func (f *Filter) Evaluate(path, sessionToken string, present bool) Result {
	if !f.classifier.IsSecured(path) {
		return Result{Decision: Allow, Reason: ReasonUnsecured}
	}

	if !present || sessionToken == "" {
		return Result{Decision: Deny, Reason: ReasonMissingToken, Secured: true}
	}

	outcome := f.verifier.Verify(sessionToken, f.clock.Now())
	if !outcome.IsValid() {
		return Result{Decision: Deny, Reason: outcome.Reason.String(), Secured: true}
	}

	return Result{Decision: Allow, Reason: ReasonValid, Secured: true, Subject: outcome.Subject}
}

// Middleware guards next with the filter.
func (f *Filter) Middleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		log := logger.FromRequest(r)

		sessionToken, present := f.extractToken(r)
		result := f.Evaluate(r.URL.Path, sessionToken, present)

		if f.observer != nil {
			f.observer.ObserveDecision(result.Decision.String(), result.Reason, time.Since(start))
		}

		if result.Decision != Allow {
			log.Debug().
				Str("path", r.URL.Path).
				Str("reason", result.Reason).
				Msg("request denied by authentication filter")
			w.WriteHeader(http.StatusUnauthorized)
			return
		}

		next.ServeHTTP(w, r)
	})
}

// extractToken reads the session cookie. Malformed Cookie headers are
// treated the same as an absent cookie.
func (f *Filter) extractToken(r *http.Request) (string, bool) {
	cookie, err := r.Cookie(f.cookieName)
	if err != nil {
		if !errors.Is(err, http.ErrNoCookie) {
			logger.FromRequest(r).Debug().Err(err).Msg("unreadable session cookie")
		}
		return "", false
	}

	return cookie.Value, true
}
