// Package service provides the business logic for authentication, notes and
// AI assistance, delegating persistence to repository interfaces.
package service

import (
	"context"
	"database/sql"
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"github.com/notesia/notesia/internal/models"
)

// tokenTTL is how long an issued bearer token stays valid.
const tokenTTL = 30 * time.Minute

var (
	// ErrEmailTaken is returned when registering an already known email.
	ErrEmailTaken = errors.New("email already registered")
	// ErrInvalidCredentials is returned when email or password do not match.
	ErrInvalidCredentials = errors.New("invalid email or password")
	// ErrTokenInvalid is returned for unknown or expired bearer tokens.
	ErrTokenInvalid = errors.New("token is invalid or expired")
)

// AuthRepository defines the persistence operations required by the
// authentication service.
type AuthRepository interface {
	// EmailExists returns true if a user with the given email exists.
	EmailExists(ctx context.Context, email string) (bool, error)
	// CreateUser stores a new user with its password hash.
	CreateUser(ctx context.Context, u models.User, passwordHash string) error
	// GetUserByEmail returns the user and password hash for an email.
	GetUserByEmail(ctx context.Context, email string) (*models.User, string, error)
	// GetUserByID returns the user with the given id.
	GetUserByID(ctx context.Context, id string) (*models.User, error)
	// SaveToken stores an issued token with its expiry.
	SaveToken(ctx context.Context, token, userID string, expiresAt time.Time) error
	// GetUserIDByToken resolves a non-expired token to its user id.
	GetUserIDByToken(ctx context.Context, token string) (string, error)
	// DeleteToken revokes a token.
	DeleteToken(ctx context.Context, token string) error
}

// AuthService implements registration, login and token lifecycle by
// delegating to an AuthRepository.
type AuthService struct {
	repo AuthRepository
}

// NewAuthService constructs a new AuthService using the provided repository.
func NewAuthService(repo AuthRepository) *AuthService {
	return &AuthService{repo: repo}
}

// Register creates a new account. An empty username is derived from the
// email local part. Returns ErrEmailTaken when the email is registered.
func (s *AuthService) Register(ctx context.Context, email, password, fullName, username string) (string, error) {
	exists, err := s.repo.EmailExists(ctx, email)
	if err != nil {
		return "", err
	}
	if exists {
		return "", ErrEmailTaken
	}

	if username == "" {
		username = email
		if at := strings.Index(email, "@"); at >= 0 {
			username = email[:at]
		}
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return "", err
	}

	u := models.User{
		ID:        uuid.NewString(),
		Email:     email,
		Username:  username,
		FullName:  fullName,
		IsActive:  true,
		CreatedAt: time.Now().UTC(),
	}
	if err := s.repo.CreateUser(ctx, u, string(hash)); err != nil {
		return "", err
	}
	return u.ID, nil
}

// Login verifies the credentials and issues a fresh bearer token.
// Returns ErrInvalidCredentials when the email or password do not match.
func (s *AuthService) Login(ctx context.Context, email, password string) (*models.Token, error) {
	u, hash, err := s.repo.GetUserByEmail(ctx, email)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrInvalidCredentials
	}
	if err != nil {
		return nil, err
	}

	if err := bcrypt.CompareHashAndPassword([]byte(hash), []byte(password)); err != nil {
		return nil, ErrInvalidCredentials
	}

	token := uuid.NewString()
	if err := s.repo.SaveToken(ctx, token, u.ID, time.Now().UTC().Add(tokenTTL)); err != nil {
		return nil, err
	}
	return &models.Token{
		AccessToken: token,
		TokenType:   "bearer",
		ExpiresIn:   int64(tokenTTL.Seconds()),
	}, nil
}

// Authenticate resolves a bearer token to the owning user id.
// Returns ErrTokenInvalid for unknown or expired tokens.
func (s *AuthService) Authenticate(ctx context.Context, token string) (string, error) {
	userID, err := s.repo.GetUserIDByToken(ctx, token)
	if errors.Is(err, sql.ErrNoRows) {
		return "", ErrTokenInvalid
	}
	if err != nil {
		return "", err
	}
	return userID, nil
}

// Profile returns the account data of the given user.
func (s *AuthService) Profile(ctx context.Context, userID string) (*models.User, error) {
	return s.repo.GetUserByID(ctx, userID)
}

// Logout revokes the given token.
func (s *AuthService) Logout(ctx context.Context, token string) error {
	return s.repo.DeleteToken(ctx, token)
}
