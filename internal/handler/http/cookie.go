package http

import (
	"net/http"

	"github.com/MKhiriev/go-user-gateway/models"
)

// sessionCookie builds the cookie carrying a freshly issued session token.
// Max-Age follows the token lifetime so the browser drops the cookie when the
// token expires.
func (h *Handler) sessionCookie(session models.Session) *http.Cookie {
	return &http.Cookie{
		Name:     h.cookie.name,
		Value:    session.SignedString,
		Path:     "/",
		MaxAge:   int(h.cookie.maxAge.Seconds()),
		HttpOnly: true,
		Secure:   h.cookie.secure,
		SameSite: http.SameSiteLaxMode,
	}
}

// expiredCookie instructs the browser to delete the session cookie.
func (h *Handler) expiredCookie() *http.Cookie {
	return &http.Cookie{
		Name:     h.cookie.name,
		Value:    "",
		Path:     "/",
		MaxAge:   -1,
		HttpOnly: true,
		Secure:   h.cookie.secure,
		SameSite: http.SameSiteLaxMode,
	}
}
