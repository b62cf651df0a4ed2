package models

// RegisterRequest is the body of POST /users/register.
type RegisterRequest struct {
	Username string `json:"username"`
	Password string `json:"password"` // plaintext
}

// LoginRequest is the body of POST /users/login.
type LoginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"` // plaintext
}

// UserByIDRequest is the body of GET /users/id.
type UserByIDRequest struct {
	ID int64 `json:"id"`
}
