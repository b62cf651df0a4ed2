package authn

import (
	"net/http"
	"net/http/httptest"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/MKhiriev/go-user-gateway/internal/clock"
	"github.com/MKhiriev/go-user-gateway/internal/routes"
	"github.com/MKhiriev/go-user-gateway/internal/token"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const (
	testSecret = "EOwOOG2hds94sChfQqm92yQlahx02KOPPbVEw4SQuLY="
	testCookie = "spring_kube_infra_login_token"
)

var issuedAt = clock.Fixed(time.Unix(0, 0))

// ---- Helpers ----

type fixture struct {
	signer   *token.Signer
	verifier *token.Verifier
}

func newFixture(t *testing.T) fixture {
	t.Helper()
	key, err := token.NewKey(testSecret)
	require.NoError(t, err)

	signer, err := token.NewSigner(key, "", 15*time.Minute, issuedAt)
	require.NoError(t, err)
	verifier, err := token.NewVerifier(key)
	require.NoError(t, err)

	return fixture{signer: signer, verifier: verifier}
}

func (fx fixture) filter(t *testing.T, c clock.Clock, allowed ...string) *Filter {
	t.Helper()
	classifier, err := routes.NewClassifier(allowed)
	require.NoError(t, err)

	f, err := NewFilter(classifier, fx.verifier, c, testCookie)
	require.NoError(t, err)
	return f
}

func (fx fixture) sign(t *testing.T, userID int64) string {
	t.Helper()
	tok, err := fx.signer.Sign(userID)
	require.NoError(t, err)
	return tok.SignedString
}

// serve runs the middleware and reports whether next was reached.
func serve(f *Filter, path string, cookies ...*http.Cookie) (*httptest.ResponseRecorder, bool) {
	var reached bool
	next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		reached = true
		w.WriteHeader(http.StatusTeapot)
	})

	req := httptest.NewRequest(http.MethodGet, path, nil)
	for _, c := range cookies {
		req.AddCookie(c)
	}
	rr := httptest.NewRecorder()
	f.Middleware(next).ServeHTTP(rr, req)
	return rr, reached
}

type countingVerifier struct {
	calls atomic.Int32
	inner Verifier
}

func (v *countingVerifier) Verify(s string, now time.Time) token.Outcome {
	v.calls.Add(1)
	return v.inner.Verify(s, now)
}

type recordingObserver struct {
	mu        sync.Mutex
	decisions []string
	reasons   []string
}

func (o *recordingObserver) ObserveDecision(decision, reason string, _ time.Duration) {
	o.mu.Lock()
	defer o.mu.Unlock()
	o.decisions = append(o.decisions, decision)
	o.reasons = append(o.reasons, reason)
}

// ---- Constructor ----

func TestNewFilter_RequiresDependencies(t *testing.T) {
	fx := newFixture(t)
	classifier, err := routes.NewClassifier(nil)
	require.NoError(t, err)

	tests := []struct {
		name       string
		classifier Classifier
		verifier   Verifier
		clock      clock.Clock
		cookie     string
		wantErr    error
	}{
		{name: "no classifier", verifier: fx.verifier, clock: issuedAt, cookie: testCookie, wantErr: ErrNoClassifier},
		{name: "no verifier", classifier: classifier, clock: issuedAt, cookie: testCookie, wantErr: ErrNoVerifier},
		{name: "no clock", classifier: classifier, verifier: fx.verifier, cookie: testCookie, wantErr: ErrNoClock},
		{name: "no cookie name", classifier: classifier, verifier: fx.verifier, clock: issuedAt, wantErr: ErrNoCookieName},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f, err := NewFilter(tt.classifier, tt.verifier, tt.clock, tt.cookie)
			assert.Nil(t, f)
			assert.ErrorIs(t, err, tt.wantErr)
		})
	}
}

// ---- Scenarios ----

// Scenario A: public route without a cookie is allowed.
func TestMiddleware_PublicRouteWithoutCookie(t *testing.T) {
	f := newFixture(t).filter(t, issuedAt, "/users/login")

	rr, reached := serve(f, "/users/login")
	assert.True(t, reached)
	assert.Equal(t, http.StatusTeapot, rr.Code)
}

// Scenario B: secured route without a cookie is denied with an empty 401.
func TestMiddleware_SecuredRouteWithoutCookie(t *testing.T) {
	f := newFixture(t).filter(t, issuedAt, "/users/login")

	rr, reached := serve(f, "/users/id")
	assert.False(t, reached)
	assert.Equal(t, http.StatusUnauthorized, rr.Code)
	assert.Empty(t, rr.Body.String())
	assert.Empty(t, rr.Header().Get("WWW-Authenticate"))
	assert.Empty(t, rr.Header().Get("Content-Type"))
}

// Scenario C: secured route with a fresh token is allowed.
func TestMiddleware_SecuredRouteWithValidToken(t *testing.T) {
	fx := newFixture(t)
	f := fx.filter(t, issuedAt, "/users/login")
	raw := fx.sign(t, 1)

	rr, reached := serve(f, "/users/id", &http.Cookie{Name: testCookie, Value: raw})
	assert.True(t, reached)
	assert.Equal(t, http.StatusTeapot, rr.Code)

	result := f.Evaluate("/users/id", raw, true)
	assert.Equal(t, Allow, result.Decision)
	assert.Equal(t, ReasonValid, result.Reason)
	assert.True(t, result.Secured)

	id, err := result.Subject.UserID()
	require.NoError(t, err)
	assert.Equal(t, int64(1), id)
}

// Scenario D: the same token sixteen minutes later is denied.
func TestMiddleware_SecuredRouteWithExpiredToken(t *testing.T) {
	fx := newFixture(t)
	raw := fx.sign(t, 1)
	f := fx.filter(t, issuedAt.Add(16*time.Minute), "/users/login")

	rr, reached := serve(f, "/users/id", &http.Cookie{Name: testCookie, Value: raw})
	assert.False(t, reached)
	assert.Equal(t, http.StatusUnauthorized, rr.Code)
	assert.Empty(t, rr.Body.String())

	result := f.Evaluate("/users/id", raw, true)
	assert.Equal(t, Deny, result.Decision)
	assert.Equal(t, token.ReasonExpired.String(), result.Reason)
}

// Scenario E: a path that merely contains an allowed route stays secured.
func TestMiddleware_SubstringOfAllowedRouteIsSecured(t *testing.T) {
	f := newFixture(t).filter(t, issuedAt, "/users/register", "/users/login")

	for _, p := range []string{"/users/registerXYZ", "/api/v1/users/register/extra", "/users/login/../id"} {
		rr, reached := serve(f, p)
		assert.False(t, reached, p)
		assert.Equal(t, http.StatusUnauthorized, rr.Code, p)
	}
}

// ---- Decision table ----

func TestEvaluate_DecisionTable(t *testing.T) {
	fx := newFixture(t)
	valid := fx.sign(t, 99)

	otherKey, err := token.NewKey("another-secret-that-is-long-enough-32b")
	require.NoError(t, err)
	otherSigner, err := token.NewSigner(otherKey, "", time.Hour, issuedAt)
	require.NoError(t, err)
	forged, err := otherSigner.Sign(99)
	require.NoError(t, err)

	f := fx.filter(t, issuedAt.Add(time.Minute), "/public/**")

	tests := []struct {
		name     string
		path     string
		token    string
		present  bool
		decision Decision
		reason   string
	}{
		{name: "public without token", path: "/public/a", decision: Allow, reason: ReasonUnsecured},
		{name: "public with garbage token", path: "/public/a", token: "garbage", present: true, decision: Allow, reason: ReasonUnsecured},
		{name: "secured missing", path: "/users/id", decision: Deny, reason: ReasonMissingToken},
		{name: "secured empty cookie", path: "/users/id", token: "", present: true, decision: Deny, reason: ReasonMissingToken},
		{name: "secured garbage", path: "/users/id", token: "garbage", present: true, decision: Deny, reason: "invalid"},
		{name: "secured forged", path: "/users/id", token: forged.SignedString, present: true, decision: Deny, reason: "invalid"},
		{name: "secured valid", path: "/users/id", token: valid, present: true, decision: Allow, reason: ReasonValid},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := f.Evaluate(tt.path, tt.token, tt.present)
			assert.Equal(t, tt.decision, result.Decision)
			assert.Equal(t, tt.reason, result.Reason)
		})
	}
}

func TestMiddleware_MissingCookieSkipsVerification(t *testing.T) {
	fx := newFixture(t)
	classifier, err := routes.NewClassifier(nil)
	require.NoError(t, err)

	counter := &countingVerifier{inner: fx.verifier}
	f, err := NewFilter(classifier, counter, issuedAt, testCookie)
	require.NoError(t, err)

	rr, _ := serve(f, "/users/id")
	assert.Equal(t, http.StatusUnauthorized, rr.Code)
	assert.Equal(t, int32(0), counter.calls.Load())

	rr, _ = serve(f, "/users/id", &http.Cookie{Name: "other_cookie", Value: fx.sign(t, 1)})
	assert.Equal(t, http.StatusUnauthorized, rr.Code)
	assert.Equal(t, int32(0), counter.calls.Load())

	_, reached := serve(f, "/users/id", &http.Cookie{Name: testCookie, Value: fx.sign(t, 1)})
	assert.True(t, reached)
	assert.Equal(t, int32(1), counter.calls.Load())
}

func TestMiddleware_ForwardsRequestUnchanged(t *testing.T) {
	fx := newFixture(t)
	f := fx.filter(t, issuedAt)
	raw := fx.sign(t, 5)

	var seen *http.Request
	next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		seen = r
	})

	req := httptest.NewRequest(http.MethodPost, "/users/id?x=1", nil)
	req.AddCookie(&http.Cookie{Name: testCookie, Value: raw})
	req.Header.Set("X-Custom", "kept")

	f.Middleware(next).ServeHTTP(httptest.NewRecorder(), req)

	require.NotNil(t, seen)
	assert.Same(t, req, seen)
	assert.Equal(t, "kept", seen.Header.Get("X-Custom"))
	cookie, err := seen.Cookie(testCookie)
	require.NoError(t, err)
	assert.Equal(t, raw, cookie.Value)
}

func TestMiddleware_ReportsToObserver(t *testing.T) {
	fx := newFixture(t)
	classifier, err := routes.NewClassifier([]string{"/users/login"})
	require.NoError(t, err)

	observer := &recordingObserver{}
	f, err := NewFilter(classifier, fx.verifier, issuedAt, testCookie, WithObserver(observer))
	require.NoError(t, err)

	serve(f, "/users/login")
	serve(f, "/users/id")
	serve(f, "/users/id", &http.Cookie{Name: testCookie, Value: fx.sign(t, 1)})

	assert.Equal(t, []string{"allow", "deny", "allow"}, observer.decisions)
	assert.Equal(t, []string{ReasonUnsecured, ReasonMissingToken, ReasonValid}, observer.reasons)
}

func TestMiddleware_ConcurrentRequests(t *testing.T) {
	fx := newFixture(t)
	f := fx.filter(t, issuedAt, "/users/login")
	raw := fx.sign(t, 1)

	var wg sync.WaitGroup
	for i := 0; i < 32; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			switch i % 3 {
			case 0:
				_, reached := serve(f, "/users/login")
				assert.True(t, reached)
			case 1:
				rr, _ := serve(f, "/users/id")
				assert.Equal(t, http.StatusUnauthorized, rr.Code)
			default:
				_, reached := serve(f, "/users/id", &http.Cookie{Name: testCookie, Value: raw})
				assert.True(t, reached)
			}
		}(i)
	}
	wg.Wait()
}

func TestDecision_String(t *testing.T) {
	assert.Equal(t, "allow", Allow.String())
	assert.Equal(t, "deny", Deny.String())
}
