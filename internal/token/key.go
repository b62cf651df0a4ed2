package token

import "fmt"

// MinKeyLength is the minimum HS256 secret length in bytes (256 bits).
const MinKeyLength = 32

const redacted = "[REDACTED]"

// Key is the shared HMAC secret used by both the issuing user service and the
// verifying gateway. The secret bytes are the raw bytes of the configured
// string; they are not base64-decoded.
//
// Key never prints its secret: String, GoString and MarshalJSON all return a
// redacted placeholder so that a key accidentally passed to a logger stays
// private.
type Key struct {
	secret []byte
}

// NewKey validates and copies secret.
func NewKey(secret string) (Key, error) {
	if secret == "" {
		return Key{}, ErrEmptyKey
	}
	if len(secret) < MinKeyLength {
		return Key{}, fmt.Errorf("%w: got %d bytes, need at least %d", ErrKeyTooShort, len(secret), MinKeyLength)
	}

	return Key{secret: []byte(secret)}, nil
}

func (k Key) String() string {
	return redacted
}

func (k Key) GoString() string {
	return redacted
}

func (k Key) MarshalJSON() ([]byte, error) {
	return []byte(`"` + redacted + `"`), nil
}

func (k Key) bytes() []byte {
	return k.secret
}
