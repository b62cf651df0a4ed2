package models

import "time"

// User represents an account of the user service.
// PasswordHash is a bcrypt hash and is never exposed via JSON.
type User struct {
	// UserID is the unique identifier assigned by the database. It is also
	// the subject of every session token issued for this user.
	UserID int64 `json:"id"`

	// Username is the unique login name.
	Username string `json:"username"`

	// PasswordHash is the bcrypt hash of the user's password.
	PasswordHash string `json:"-"`

	// CreatedAt is the timestamp when the account was created.
	CreatedAt time.Time `json:"created_at"`
}
