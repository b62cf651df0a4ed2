package http

import (
	"errors"
	"net/http"

	"github.com/MKhiriev/go-user-gateway/internal/service"
	"github.com/MKhiriev/go-user-gateway/internal/store"
)

var errorStatusMap = map[error]int{
	service.ErrInvalidDataProvided:   http.StatusBadRequest,
	service.ErrInvalidPage:           http.StatusBadRequest,
	service.ErrPageSizeLimitExceeded: http.StatusBadRequest,
	service.ErrWrongPassword:         http.StatusUnauthorized,
	service.ErrTokenCreationFailed:   http.StatusInternalServerError,

	store.ErrLoginAlreadyExists: http.StatusConflict,
	store.ErrNoUserWasFound:     http.StatusNotFound,

	store.ErrBuildingSQLQuery: http.StatusInternalServerError,
	store.ErrExecutingQuery:   http.StatusInternalServerError,
	store.ErrScanningRows:     http.StatusInternalServerError,
}

var errorMessageMap = map[int]string{
	http.StatusBadRequest:   "invalid data provided",
	http.StatusUnauthorized: "invalid username/password",
	http.StatusNotFound:     "user not found",
	http.StatusConflict:     "username already exists",
}

func statusFromError(err error) int {
	for target, status := range errorStatusMap {
		if errors.Is(err, target) {
			return status
		}
	}
	return http.StatusInternalServerError
}

// messageFromStatus returns the client facing message for status. Internal
// error details are never exposed.
func messageFromStatus(status int) string {
	if msg, ok := errorMessageMap[status]; ok {
		return msg
	}
	return http.StatusText(status)
}
