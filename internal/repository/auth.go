// Package repository provides PostgreSQL persistence for users, tokens
// and notes.
package repository

import (
	"context"
	"database/sql"
	"time"

	"github.com/notesia/notesia/internal/models"
)

// PostgresAuthRepository implements user and token persistence against a
// PostgreSQL database.
type PostgresAuthRepository struct {
	// DB is the database handle for executing queries.
	DB *sql.DB
}

// NewPostgresAuthRepository creates a new PostgresAuthRepository with the given
// database connection. db must be a valid *sql.DB connected to a PostgreSQL instance.
func NewPostgresAuthRepository(db *sql.DB) *PostgresAuthRepository {
	return &PostgresAuthRepository{DB: db}
}

// EmailExists checks whether a user with the specified email is registered.
func (s *PostgresAuthRepository) EmailExists(ctx context.Context, email string) (bool, error) {
	var exists bool
	err := s.DB.QueryRowContext(
		ctx,
		`SELECT EXISTS(SELECT 1 FROM users WHERE email = $1)`,
		email,
	).Scan(&exists)
	return exists, err
}

// CreateUser inserts a new user record with its bcrypt password hash.
func (s *PostgresAuthRepository) CreateUser(ctx context.Context, u models.User, passwordHash string) error {
	_, err := s.DB.ExecContext(
		ctx,
		`INSERT INTO users (id, email, username, full_name, password_hash, is_active, created_at)
		 VALUES ($1, $2, $3, $4, $5, $6, $7)`,
		u.ID, u.Email, u.Username, u.FullName, passwordHash, u.IsActive, u.CreatedAt,
	)
	return err
}

// GetUserByEmail fetches the user with the given email along with the stored
// password hash. Returns sql.ErrNoRows when no such user exists.
func (s *PostgresAuthRepository) GetUserByEmail(ctx context.Context, email string) (*models.User, string, error) {
	var u models.User
	var hash string
	err := s.DB.QueryRowContext(
		ctx,
		`SELECT id, email, username, full_name, password_hash, is_active, created_at
		   FROM users WHERE email = $1`,
		email,
	).Scan(&u.ID, &u.Email, &u.Username, &u.FullName, &hash, &u.IsActive, &u.CreatedAt)
	if err != nil {
		return nil, "", err
	}
	return &u, hash, nil
}

// GetUserByID fetches a user by its id. Returns sql.ErrNoRows when absent.
func (s *PostgresAuthRepository) GetUserByID(ctx context.Context, id string) (*models.User, error) {
	var u models.User
	err := s.DB.QueryRowContext(
		ctx,
		`SELECT id, email, username, full_name, is_active, created_at
		   FROM users WHERE id = $1`,
		id,
	).Scan(&u.ID, &u.Email, &u.Username, &u.FullName, &u.IsActive, &u.CreatedAt)
	if err != nil {
		return nil, err
	}
	return &u, nil
}

// SaveToken stores an issued bearer token with its expiry.
func (s *PostgresAuthRepository) SaveToken(ctx context.Context, token, userID string, expiresAt time.Time) error {
	_, err := s.DB.ExecContext(
		ctx,
		`INSERT INTO tokens (token, user_id, expires_at) VALUES ($1, $2, $3)`,
		token, userID, expiresAt,
	)
	return err
}

// GetUserIDByToken resolves a non-expired token to the owning user id.
// Returns sql.ErrNoRows for unknown or expired tokens.
func (s *PostgresAuthRepository) GetUserIDByToken(ctx context.Context, token string) (string, error) {
	var userID string
	err := s.DB.QueryRowContext(
		ctx,
		`SELECT user_id FROM tokens WHERE token = $1 AND expires_at > now()`,
		token,
	).Scan(&userID)
	return userID, err
}

// DeleteToken revokes a token. Deleting a token that does not exist is not
// an error.
func (s *PostgresAuthRepository) DeleteToken(ctx context.Context, token string) error {
	_, err := s.DB.ExecContext(
		ctx,
		`DELETE FROM tokens WHERE token = $1`,
		token,
	)
	return err
}
