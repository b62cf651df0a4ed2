package token

import (
	"fmt"
	"strconv"

	"github.com/golang-jwt/jwt/v5"
)

// Claims is the payload of a session token.
//
// The principal is carried twice: as the decimal string "sub" and as the JSON
// integer "id". UserID is decoded straight into an int64 so identifiers above
// 2^53 survive the round trip; decoding through float64 would silently round
// them.
type Claims struct {
	// UserID mirrors the subject as a JSON number. Optional on input; when
	// present it must agree with the subject.
	UserID *int64 `json:"id,omitempty"`

	jwt.RegisteredClaims
}

// Subject is the principal identifier decoded from a valid token.
type Subject string

// SubjectFromUserID formats a numeric user id as a subject.
func SubjectFromUserID(userID int64) Subject {
	return Subject(strconv.FormatInt(userID, 10))
}

// UserID parses the subject as a base-10 int64.
func (s Subject) UserID() (int64, error) {
	id, err := strconv.ParseInt(string(s), 10, 64)
	if err != nil {
		return 0, fmt.Errorf("subject %q is not a numeric user id: %w", string(s), err)
	}
	return id, nil
}

func (s Subject) String() string {
	return string(s)
}

// consistent reports whether the optional numeric id agrees with the subject.
func (c *Claims) consistent() bool {
	if c.UserID == nil {
		return true
	}
	id, err := Subject(c.Subject).UserID()
	return err == nil && id == *c.UserID
}
