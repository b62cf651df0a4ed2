package token

import (
	"crypto/subtle"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// Verifier validates session tokens. It holds only immutable state and is
// safe for unsynchronised concurrent use.
type Verifier struct {
	key    Key
	issuer string
	leeway time.Duration
	parser *jwt.Parser
}

// VerifierOption customises a [Verifier].
type VerifierOption func(*Verifier)

// WithIssuer requires the "iss" claim to equal issuer. An empty issuer
// disables the check.
func WithIssuer(issuer string) VerifierOption {
	return func(v *Verifier) {
		v.issuer = issuer
	}
}

// WithLeeway tolerates clock skew between the issuer and the verifier: a
// token is still accepted until exp+leeway and already accepted from
// nbf-leeway. Negative values are treated as zero.
func WithLeeway(leeway time.Duration) VerifierOption {
	return func(v *Verifier) {
		v.leeway = max(leeway, 0)
	}
}

// NewVerifier constructs a Verifier for key. Only HS256 tokens are accepted.
func NewVerifier(key Key, opts ...VerifierOption) (*Verifier, error) {
	if len(key.bytes()) == 0 {
		return nil, ErrEmptyKey
	}

	v := &Verifier{
		key: key,
		// Time based claims are checked in Verify against the caller's clock,
		// so the library validator is switched off.
		parser: jwt.NewParser(
			jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
			jwt.WithStrictDecoding(),
			jwt.WithoutClaimsValidation(),
		),
	}
	for _, opt := range opts {
		opt(v)
	}

	return v, nil
}

// Verify checks the signature, structure and time window of tokenString at
// instant now. It never panics and never returns an error: every failure is
// reported as an invalid [Outcome].
//
// A token is expired when exp <= now-leeway, i.e. it is valid strictly before
// its expiry instant.
func (v *Verifier) Verify(tokenString string, now time.Time) (outcome Outcome) {
	defer func() {
		if recover() != nil {
			outcome = invalid(ReasonInvalid)
		}
	}()

	if tokenString == "" {
		return invalid(ReasonInvalid)
	}

	claims := new(Claims)
	parsed, err := v.parser.ParseWithClaims(tokenString, claims, v.keyFunc)
	if err != nil || parsed == nil || !parsed.Valid {
		return invalid(ReasonInvalid)
	}

	if claims.Subject == "" || claims.ExpiresAt == nil || !claims.consistent() {
		return invalid(ReasonInvalid)
	}

	if v.issuer != "" && subtle.ConstantTimeCompare([]byte(claims.Issuer), []byte(v.issuer)) != 1 {
		return invalid(ReasonInvalid)
	}

	if claims.NotBefore != nil && now.Add(v.leeway).Before(claims.NotBefore.Time) {
		return invalid(ReasonNotYetValid)
	}

	expiresAt := claims.ExpiresAt.Time
	if !now.Before(expiresAt.Add(v.leeway)) {
		return invalid(ReasonExpired)
	}

	return valid(Subject(claims.Subject), expiresAt)
}

func (v *Verifier) keyFunc(*jwt.Token) (any, error) {
	return v.key.bytes(), nil
}
