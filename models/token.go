package models

import "time"

// Session describes the token handed to a user after a successful login.
// SignedString is the compact JWT written into the session cookie.
type Session struct {
	UserID       int64
	SignedString string
	ExpiresAt    time.Time
}
