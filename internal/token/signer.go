package token

import (
	"fmt"
	"time"

	"github.com/MKhiriev/go-user-gateway/internal/clock"
	"github.com/golang-jwt/jwt/v5"
)

// Token is a freshly issued session token.
type Token struct {
	// SignedString is the compact JWS form (header.payload.signature) that is
	// placed in the session cookie.
	SignedString string
	Subject      Subject
	IssuedAt     time.Time
	ExpiresAt    time.Time
}

// String returns the compact serialisation.
func (t Token) String() string {
	return t.SignedString
}

// Signer issues HS256 session tokens. It is used by the user service at login
// time and is safe for concurrent use.
type Signer struct {
	key      Key
	issuer   string
	duration time.Duration
	clock    clock.Clock
}

// NewSigner constructs a Signer issuing tokens valid for duration, stamped
// with issuer ("iss" is omitted when empty) and timed by c.
func NewSigner(key Key, issuer string, duration time.Duration, c clock.Clock) (*Signer, error) {
	if len(key.bytes()) == 0 {
		return nil, ErrEmptyKey
	}
	if duration <= 0 {
		return nil, ErrInvalidDuration
	}
	if c == nil {
		c = clock.Real()
	}

	return &Signer{
		key:      key,
		issuer:   issuer,
		duration: duration,
		clock:    c,
	}, nil
}

// Duration returns the configured token lifetime.
func (s *Signer) Duration() time.Duration {
	return s.duration
}

// Sign issues a token for userID. The subject is the decimal user id and the
// same id is repeated as the numeric "id" claim.
func (s *Signer) Sign(userID int64) (Token, error) {
	now := s.clock.Now()
	expiresAt := now.Add(s.duration)
	subject := SubjectFromUserID(userID)

	claims := &Claims{
		UserID: &userID,
		RegisteredClaims: jwt.RegisteredClaims{
			Issuer:    s.issuer,
			Subject:   subject.String(),
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(expiresAt),
		},
	}

	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(s.key.bytes())
	if err != nil {
		return Token{}, fmt.Errorf("%w: %w", ErrSigningFailed, err)
	}

	return Token{
		SignedString: signed,
		Subject:      subject,
		IssuedAt:     claims.IssuedAt.Time,
		ExpiresAt:    claims.ExpiresAt.Time,
	}, nil
}
