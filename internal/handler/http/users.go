package http

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/MKhiriev/go-user-gateway/internal/logger"
	"github.com/MKhiriev/go-user-gateway/internal/utils"
	"github.com/MKhiriev/go-user-gateway/models"
)

var errBadRequest = errors.New("bad request")

func (h *Handler) register(w http.ResponseWriter, r *http.Request) {
	log := logger.FromRequest(r)

	var request models.RegisterRequest
	if err := json.NewDecoder(r.Body).Decode(&request); err != nil {
		log.Err(err).Msg("invalid register request body")
		h.writeStatus(w, r, http.StatusBadRequest)
		return
	}

	user, err := h.services.UserService.Register(r.Context(), request.Username, request.Password)
	if err != nil {
		log.Err(err).Str("username", request.Username).Msg("registration failed")
		h.writeError(w, r, err)
		return
	}

	log.Info().Int64("user_id", user.UserID).Msg("user registered")
	h.writeJSON(w, r, user, http.StatusOK)
}

func (h *Handler) login(w http.ResponseWriter, r *http.Request) {
	log := logger.FromRequest(r)

	var request models.LoginRequest
	if err := json.NewDecoder(r.Body).Decode(&request); err != nil {
		log.Err(err).Msg("invalid login request body")
		h.writeStatus(w, r, http.StatusBadRequest)
		return
	}

	session, err := h.services.UserService.Login(r.Context(), request.Username, request.Password)
	if err != nil {
		log.Err(err).Str("username", request.Username).Msg("login failed")
		h.writeError(w, r, err)
		return
	}

	http.SetCookie(w, h.sessionCookie(session))
	log.Info().Int64("user_id", session.UserID).Msg("user logged in")
	w.WriteHeader(http.StatusOK)
}

func (h *Handler) logout(w http.ResponseWriter, r *http.Request) {
	http.SetCookie(w, h.expiredCookie())
	w.WriteHeader(http.StatusOK)
}

func (h *Handler) listUsers(w http.ResponseWriter, r *http.Request) {
	log := logger.FromRequest(r)

	page, err := pageFromQuery(r)
	if err != nil {
		log.Err(err).Msg("invalid paging parameters")
		h.writeStatus(w, r, http.StatusBadRequest)
		return
	}

	users, err := h.services.UserService.ListUsers(r.Context(), page)
	if err != nil {
		log.Err(err).Msg("error listing users")
		h.writeError(w, r, err)
		return
	}

	if users == nil {
		users = []models.User{}
	}
	h.writeJSON(w, r, users, http.StatusOK)
}

// getUserByBody serves GET /users/id, which takes the id in a JSON body.
func (h *Handler) getUserByBody(w http.ResponseWriter, r *http.Request) {
	var request models.UserByIDRequest
	if err := json.NewDecoder(r.Body).Decode(&request); err != nil {
		logger.FromRequest(r).Err(err).Msg("invalid user lookup body")
		h.writeStatus(w, r, http.StatusBadRequest)
		return
	}

	h.writeUser(w, r, request.ID)
}

func (h *Handler) getUserByID(w http.ResponseWriter, r *http.Request) {
	userID, err := userIDFromPath(r)
	if err != nil {
		logger.FromRequest(r).Err(err).Msg("invalid user id")
		h.writeStatus(w, r, http.StatusBadRequest)
		return
	}

	h.writeUser(w, r, userID)
}

func (h *Handler) deleteUser(w http.ResponseWriter, r *http.Request) {
	log := logger.FromRequest(r)

	userID, err := userIDFromPath(r)
	if err != nil {
		log.Err(err).Msg("invalid user id")
		h.writeStatus(w, r, http.StatusBadRequest)
		return
	}

	if err = h.services.UserService.DeleteUser(r.Context(), userID); err != nil {
		log.Err(err).Int64("user_id", userID).Msg("error deleting user")
		h.writeError(w, r, err)
		return
	}

	log.Info().Int64("user_id", userID).Msg("user deleted")
	w.WriteHeader(http.StatusNoContent)
}

func (h *Handler) writeUser(w http.ResponseWriter, r *http.Request, userID int64) {
	user, err := h.services.UserService.GetUserByID(r.Context(), userID)
	if err != nil {
		logger.FromRequest(r).Err(err).Int64("user_id", userID).Msg("error getting user")
		h.writeError(w, r, err)
		return
	}

	h.writeJSON(w, r, user, http.StatusOK)
}

func (h *Handler) writeError(w http.ResponseWriter, r *http.Request, err error) {
	h.writeStatus(w, r, statusFromError(err))
}

func (h *Handler) writeStatus(w http.ResponseWriter, r *http.Request, status int) {
	h.writeJSON(w, r, models.ErrorResponse{Error: messageFromStatus(status)}, status)
}

func (h *Handler) writeJSON(w http.ResponseWriter, r *http.Request, data any, status int) {
	if _, err := utils.WriteJSON(w, data, status); err != nil {
		logger.FromRequest(r).Err(err).Msg("error writing response")
	}
}

func userIDFromPath(r *http.Request) (int64, error) {
	raw := chi.URLParam(r, "id")
	userID, err := strconv.ParseInt(raw, 10, 64)
	if err != nil {
		return 0, fmt.Errorf("%w: user id %q: %w", errBadRequest, raw, err)
	}
	return userID, nil
}

// pageFromQuery reads ?page= and ?size=. Missing values fall back to the
// defaults; range checks are left to the service.
func pageFromQuery(r *http.Request) (models.Page, error) {
	page := models.Page{Number: models.DefaultPageNumber, Size: models.DefaultPageSize}
	query := r.URL.Query()

	if raw := query.Get("page"); raw != "" {
		number, err := strconv.Atoi(raw)
		if err != nil {
			return models.Page{}, fmt.Errorf("%w: page %q: %w", errBadRequest, raw, err)
		}
		page.Number = number
	}

	if raw := query.Get("size"); raw != "" {
		size, err := strconv.Atoi(raw)
		if err != nil {
			return models.Page{}, fmt.Errorf("%w: size %q: %w", errBadRequest, raw, err)
		}
		page.Size = size
	}

	return page, nil
}
