package service

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"golang.org/x/crypto/bcrypt"

	"github.com/MKhiriev/go-user-gateway/internal/clock"
	"github.com/MKhiriev/go-user-gateway/internal/config"
	"github.com/MKhiriev/go-user-gateway/internal/logger"
	"github.com/MKhiriev/go-user-gateway/internal/store"
	"github.com/MKhiriev/go-user-gateway/models"
)

// userService is the concrete implementation of UserService.
// Passwords are stored as bcrypt hashes; session tokens come from a
// TokenIssuer.
type userService struct {
	userRepository store.UserRepository
	issuer         TokenIssuer

	// passwordCost is the bcrypt cost used on registration.
	passwordCost int

	// pageSizeLimit caps the size accepted by ListUsers.
	pageSizeLimit int

	clock  clock.Clock
	logger *logger.Logger
}

// NewUserService constructs a UserService. The returned service is safe for
// concurrent use; all state is read-only after construction.
func NewUserService(userRepository store.UserRepository, issuer TokenIssuer, cfg config.App, c clock.Clock, logger *logger.Logger) UserService {
	if c == nil {
		c = clock.Real()
	}
	cost := cfg.PasswordCost
	if cost == 0 {
		cost = bcrypt.DefaultCost
	}

	return &userService{
		userRepository: userRepository,
		issuer:         issuer,
		passwordCost:   cost,
		pageSizeLimit:  cfg.PageSizeLimit,
		clock:          c,
		logger:         logger,
	}
}

// Register creates a new account.
//
// Returns the persisted user (with a database assigned UserID) or:
//   - ErrInvalidDataProvided if username or password is empty, or the
//     password cannot be hashed (bcrypt rejects more than 72 bytes).
//   - A wrapped store.ErrLoginAlreadyExists if the username is taken.
func (s *userService) Register(ctx context.Context, username, password string) (models.User, error) {
	log := logger.FromContext(ctx)

	username = strings.TrimSpace(username)
	if username == "" || password == "" {
		log.Debug().Msg("empty username or password")
		return models.User{}, ErrInvalidDataProvided
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), s.passwordCost)
	if err != nil {
		log.Debug().Err(err).Msg("password cannot be hashed")
		return models.User{}, fmt.Errorf("%w: %w", ErrInvalidDataProvided, err)
	}

	user, err := s.userRepository.CreateUser(ctx, models.User{
		Username:     username,
		PasswordHash: string(hash),
		CreatedAt:    s.clock.Now(),
	})
	if err != nil {
		log.Err(err).Str("username", username).Msg("user creation ended with error")
		return models.User{}, fmt.Errorf("user creation ended with error: %w", err)
	}

	log.Info().Int64("user_id", user.UserID).Msg("user registered")
	return user, nil
}

// Login checks the credentials and issues a session token.
//
// Returns the session or:
//   - ErrInvalidDataProvided if username or password is empty.
//   - A wrapped store.ErrNoUserWasFound for an unknown username.
//   - ErrWrongPassword if the password does not match.
//   - ErrTokenCreationFailed if signing fails.
func (s *userService) Login(ctx context.Context, username, password string) (models.Session, error) {
	log := logger.FromContext(ctx)

	username = strings.TrimSpace(username)
	if username == "" || password == "" {
		return models.Session{}, ErrInvalidDataProvided
	}

	user, err := s.userRepository.FindUserByUsername(ctx, username)
	if err != nil {
		log.Debug().Err(err).Str("username", username).Msg("user search by username failed")
		return models.Session{}, fmt.Errorf("user search by username failed: %w", err)
	}

	if err = bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)); err != nil {
		if !errors.Is(err, bcrypt.ErrMismatchedHashAndPassword) {
			log.Err(err).Int64("user_id", user.UserID).Msg("stored password hash is unusable")
		}
		return models.Session{}, ErrWrongPassword
	}

	tok, err := s.issuer.Sign(user.UserID)
	if err != nil {
		log.Err(err).Int64("user_id", user.UserID).Msg("creation of token failed")
		return models.Session{}, fmt.Errorf("%w: %w", ErrTokenCreationFailed, err)
	}

	log.Debug().Int64("user_id", user.UserID).Msg("user successfully logged in")
	return models.Session{
		UserID:       user.UserID,
		SignedString: tok.SignedString,
		ExpiresAt:    tok.ExpiresAt,
	}, nil
}

// GetUserByID returns the user or a wrapped store.ErrNoUserWasFound.
func (s *userService) GetUserByID(ctx context.Context, userID int64) (models.User, error) {
	user, err := s.userRepository.FindUserByID(ctx, userID)
	if err != nil {
		return models.User{}, fmt.Errorf("user search by id failed: %w", err)
	}
	return user, nil
}

// ListUsers returns one page of users.
//
// Returns ErrInvalidPage for a negative page number, a number above
// models.MaxPageNumber or a non-positive size,
// and ErrPageSizeLimitExceeded when size is above the configured limit.
func (s *userService) ListUsers(ctx context.Context, page models.Page) ([]models.User, error) {
	if page.Number < 0 || page.Size <= 0 {
		return nil, ErrInvalidPage
	}
	if page.Number > models.MaxPageNumber {
		return nil, fmt.Errorf("%w: page %d > %d", ErrInvalidPage, page.Number, models.MaxPageNumber)
	}
	if s.pageSizeLimit > 0 && page.Size > s.pageSizeLimit {
		return nil, fmt.Errorf("%w: %d > %d", ErrPageSizeLimitExceeded, page.Size, s.pageSizeLimit)
	}

	users, err := s.userRepository.ListUsers(ctx, page)
	if err != nil {
		return nil, fmt.Errorf("listing users failed: %w", err)
	}
	return users, nil
}

// DeleteUser removes the user or returns a wrapped store.ErrNoUserWasFound.
func (s *userService) DeleteUser(ctx context.Context, userID int64) error {
	log := logger.FromContext(ctx)

	if err := s.userRepository.DeleteUser(ctx, userID); err != nil {
		return fmt.Errorf("user deletion failed: %w", err)
	}

	log.Info().Int64("user_id", userID).Msg("user deleted")
	return nil
}
