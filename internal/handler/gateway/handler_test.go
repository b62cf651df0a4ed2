package gateway

import (
	"context"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/MKhiriev/go-user-gateway/internal/authn"
	"github.com/MKhiriev/go-user-gateway/internal/clock"
	"github.com/MKhiriev/go-user-gateway/internal/config"
	"github.com/MKhiriev/go-user-gateway/internal/logger"
	"github.com/MKhiriev/go-user-gateway/internal/metrics"
	"github.com/MKhiriev/go-user-gateway/internal/proxy"
	"github.com/MKhiriev/go-user-gateway/internal/routes"
	"github.com/MKhiriev/go-user-gateway/internal/token"
	"github.com/MKhiriev/go-user-gateway/models"
)

const testSecret = "EOwOOG2hds94sChfQqm92yQlahx02KOPPbVEw4SQuLY="

var issuedAt = clock.Fixed(time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC))

type stubReadiness struct {
	err error
}

func (s stubReadiness) Check(context.Context) error {
	return s.err
}

type gatewayFixture struct {
	signer   *token.Signer
	verifier *token.Verifier
	backend  *httptest.Server
}

// newGatewayFixture starts a backend that echoes the path it received and
// answers 299 so tests can tell proxied responses apart.
func newGatewayFixture(t *testing.T) gatewayFixture {
	t.Helper()

	key, err := token.NewKey(testSecret)
	require.NoError(t, err)
	signer, err := token.NewSigner(key, "", 15*time.Minute, issuedAt)
	require.NoError(t, err)
	verifier, err := token.NewVerifier(key)
	require.NoError(t, err)

	backend := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(299)
		_, _ = io.WriteString(w, r.Method+" "+r.URL.Path)
	}))
	t.Cleanup(backend.Close)

	return gatewayFixture{signer: signer, verifier: verifier, backend: backend}
}

// router builds a gateway with its own metrics registry, so it can be called
// more than once per fixture.
func (fx gatewayFixture) router(t *testing.T, now clock.Clock, opts ...Option) http.Handler {
	t.Helper()
	registry := prometheus.NewRegistry()

	classifier, err := routes.NewClassifier(config.DefaultAllowedRoutes())
	require.NoError(t, err)

	filter, err := authn.NewFilter(classifier, fx.verifier, now, config.DefaultCookieName,
		authn.WithObserver(metrics.NewAuthMetrics(registry)))
	require.NoError(t, err)

	upstream, err := proxy.NewUpstream(fx.backend.URL, config.DefaultStripPrefix)
	require.NoError(t, err)

	opts = append(opts, WithMetrics(registry))
	return NewHandler(config.DefaultRoutePrefix, filter, upstream, logger.Nop(), opts...).Init()
}

func (fx gatewayFixture) session(t *testing.T, userID int64) *http.Cookie {
	t.Helper()
	tok, err := fx.signer.Sign(userID)
	require.NoError(t, err)
	return &http.Cookie{Name: config.DefaultCookieName, Value: tok.SignedString}
}

func send(router http.Handler, method, path string, cookies ...*http.Cookie) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, path, nil)
	for _, c := range cookies {
		req.AddCookie(c)
	}
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	return rec
}

func TestGateway_Scenarios(t *testing.T) {
	fx := newGatewayFixture(t)

	tests := []struct {
		name       string
		now        clock.Clock
		method     string
		path       string
		withCookie bool
		wantStatus int
		wantBody   string
	}{
		{
			name:       "public login without cookie is forwarded",
			now:        issuedAt,
			method:     http.MethodPost,
			path:       "/api/v1/users/login",
			wantStatus: 299,
			wantBody:   "POST /users/login",
		},
		{
			name:       "secured lookup without cookie is denied",
			now:        issuedAt,
			method:     http.MethodGet,
			path:       "/api/v1/users/id",
			wantStatus: http.StatusUnauthorized,
		},
		{
			name:       "secured lookup with fresh token is forwarded",
			now:        issuedAt,
			method:     http.MethodGet,
			path:       "/api/v1/users/id",
			withCookie: true,
			wantStatus: 299,
			wantBody:   "GET /users/id",
		},
		{
			name:       "token presented sixteen minutes after issuance is denied",
			now:        issuedAt.Add(16 * time.Minute),
			method:     http.MethodGet,
			path:       "/api/v1/users/id",
			withCookie: true,
			wantStatus: http.StatusUnauthorized,
		},
		{
			name:       "suffix of a public path is still secured",
			now:        issuedAt,
			method:     http.MethodPost,
			path:       "/api/v1/users/registerXYZ",
			wantStatus: http.StatusUnauthorized,
		},
		{
			name:       "doubled slash reaches upstream in canonical form",
			now:        issuedAt,
			method:     http.MethodPost,
			path:       "/api/v1/users//login",
			wantStatus: 299,
			wantBody:   "POST /users/login",
		},
		{
			name:       "trailing slash reaches upstream in canonical form",
			now:        issuedAt,
			method:     http.MethodPost,
			path:       "/api/v1/users/login/",
			wantStatus: 299,
			wantBody:   "POST /users/login",
		},
		{
			name:       "doubled slash does not unlock a secured path",
			now:        issuedAt,
			method:     http.MethodGet,
			path:       "/api/v1/users//id",
			wantStatus: http.StatusUnauthorized,
		},
		{
			name:       "dot segments are secured",
			now:        issuedAt,
			method:     http.MethodGet,
			path:       "/api/v1/users/login/../id",
			wantStatus: http.StatusUnauthorized,
		},
		{
			name:       "group root is secured",
			now:        issuedAt,
			method:     http.MethodGet,
			path:       "/api/v1/users",
			wantStatus: http.StatusUnauthorized,
		},
		{
			name:       "group root with token is forwarded",
			now:        issuedAt,
			method:     http.MethodGet,
			path:       "/api/v1/users",
			withCookie: true,
			wantStatus: 299,
			wantBody:   "GET /users",
		},
		{
			name:       "delete with token is forwarded",
			now:        issuedAt,
			method:     http.MethodDelete,
			path:       "/api/v1/users/5",
			withCookie: true,
			wantStatus: 299,
			wantBody:   "DELETE /users/5",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			router := fx.router(t, tt.now)

			var cookies []*http.Cookie
			if tt.withCookie {
				cookies = append(cookies, fx.session(t, 9007199254740993))
			}
			rec := send(router, tt.method, tt.path, cookies...)

			assert.Equal(t, tt.wantStatus, rec.Code)
			if tt.wantStatus == http.StatusUnauthorized {
				assert.Empty(t, rec.Body.String())
				assert.Empty(t, rec.Header().Get("WWW-Authenticate"))
				return
			}
			assert.Equal(t, tt.wantBody, rec.Body.String())
		})
	}
}

func TestGateway_PathsOutsideGroup(t *testing.T) {
	fx := newGatewayFixture(t)
	router := fx.router(t, issuedAt)

	rec := send(router, http.MethodGet, "/api/v1/orders", fx.session(t, 1))

	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestGateway_UpstreamDown(t *testing.T) {
	fx := newGatewayFixture(t)
	router := fx.router(t, issuedAt)
	fx.backend.Close()

	rec := send(router, http.MethodPost, "/api/v1/users/login")

	assert.Equal(t, http.StatusBadGateway, rec.Code)
}

func TestGateway_Health(t *testing.T) {
	fx := newGatewayFixture(t)

	rec := send(fx.router(t, issuedAt), http.MethodGet, "/health")

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"status":"ok"}`, rec.Body.String())
}

func TestGateway_Ready(t *testing.T) {
	t.Run("not registered without checker", func(t *testing.T) {
		fx := newGatewayFixture(t)

		rec := send(fx.router(t, issuedAt), http.MethodGet, "/ready")

		assert.Equal(t, http.StatusNotFound, rec.Code)
	})

	t.Run("upstream healthy", func(t *testing.T) {
		fx := newGatewayFixture(t)

		rec := send(fx.router(t, issuedAt, WithReadiness(stubReadiness{})), http.MethodGet, "/ready")

		assert.Equal(t, http.StatusOK, rec.Code)
	})

	t.Run("upstream unhealthy", func(t *testing.T) {
		fx := newGatewayFixture(t)
		checker := stubReadiness{err: errors.New("connection refused")}

		rec := send(fx.router(t, issuedAt, WithReadiness(checker)), http.MethodGet, "/ready")

		assert.Equal(t, http.StatusServiceUnavailable, rec.Code)
		assert.JSONEq(t, `{"status":"unavailable","detail":"upstream"}`, rec.Body.String())
	})

	t.Run("real probe against backend", func(t *testing.T) {
		fx := newGatewayFixture(t)
		checker := proxy.NewHealthChecker(fx.backend.URL, "/health", time.Second)

		rec := send(fx.router(t, issuedAt, WithReadiness(checker)), http.MethodGet, "/ready")

		assert.Equal(t, http.StatusOK, rec.Code)
	})
}

func TestGateway_Version(t *testing.T) {
	fx := newGatewayFixture(t)
	router := fx.router(t, issuedAt, WithBuildInfo(models.NewAppBuildInfo("v0.3.0", "2026-10-19", "deadbeef")))

	rec := send(router, http.MethodGet, "/version")

	require.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"version":"v0.3.0","date":"2026-10-19","commit":"deadbeef"}`, rec.Body.String())
}

func TestGateway_MetricsCountDecisions(t *testing.T) {
	fx := newGatewayFixture(t)
	router := fx.router(t, issuedAt)

	send(router, http.MethodGet, "/api/v1/users/id")
	send(router, http.MethodPost, "/api/v1/users/register")

	rec := send(router, http.MethodGet, "/metrics")

	require.Equal(t, http.StatusOK, rec.Code)
	body := rec.Body.String()
	assert.Contains(t, body, `gateway_auth_decisions_total{decision="deny",reason="missing_token"} 1`)
	assert.Contains(t, body, `gateway_auth_decisions_total{decision="allow",reason="unsecured"} 1`)
	assert.Contains(t, body, "gateway_auth_filter_duration_seconds_count 2")
}

func TestGateway_OperationalEndpointsBypassFilter(t *testing.T) {
	fx := newGatewayFixture(t)
	router := fx.router(t, issuedAt)

	for _, path := range []string{"/health", "/version", "/metrics"} {
		rec := send(router, http.MethodGet, path)
		assert.Equal(t, http.StatusOK, rec.Code, path)
	}
}
