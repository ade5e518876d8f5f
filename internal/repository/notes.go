package repository

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/lib/pq"

	"github.com/notesia/notesia/internal/models"
)

// PostgresNotesRepository implements note persistence against a PostgreSQL
// database. Tags are stored as a native text array.
type PostgresNotesRepository struct {
	// DB is the database handle for executing queries.
	DB *sql.DB
}

// NewPostgresNotesRepository creates a new PostgresNotesRepository using the
// provided *sql.DB. db must be a valid connection to a PostgreSQL instance.
func NewPostgresNotesRepository(db *sql.DB) *PostgresNotesRepository {
	return &PostgresNotesRepository{DB: db}
}

// ListByUser fetches all notes of the given user, newest-updated first.
// statusFilter narrows to one lifecycle state when non-empty; search matches
// title and content case-insensitively when non-empty.
func (s *PostgresNotesRepository) ListByUser(ctx context.Context, userID, statusFilter, search string) ([]models.Note, error) {
	query := `
		SELECT id, user_id, title, content, status, tags, created_at, updated_at
		  FROM notes WHERE user_id = $1`
	args := []any{userID}

	if statusFilter != "" {
		args = append(args, statusFilter)
		query += fmt.Sprintf(" AND status = $%d", len(args))
	}
	if search != "" {
		args = append(args, "%"+search+"%")
		query += fmt.Sprintf(" AND (title ILIKE $%d OR content ILIKE $%d)", len(args), len(args))
	}
	query += " ORDER BY updated_at DESC"

	rows, err := s.DB.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("ListByUser: %w", err)
	}
	defer rows.Close()

	notes := []models.Note{}
	for rows.Next() {
		var n models.Note
		if err := rows.Scan(&n.ID, &n.UserID, &n.Title, &n.Content, &n.Status,
			pq.Array(&n.Tags), &n.CreatedAt, &n.UpdatedAt); err != nil {
			return nil, fmt.Errorf("scan: %w", err)
		}
		notes = append(notes, n)
	}
	return notes, rows.Err()
}

// GetByID fetches a single note owned by the user. Returns sql.ErrNoRows
// when the note does not exist or belongs to someone else.
func (s *PostgresNotesRepository) GetByID(ctx context.Context, userID, id string) (*models.Note, error) {
	var n models.Note
	err := s.DB.QueryRowContext(ctx, `
		SELECT id, user_id, title, content, status, tags, created_at, updated_at
		  FROM notes WHERE id = $1 AND user_id = $2
	`, id, userID).Scan(&n.ID, &n.UserID, &n.Title, &n.Content, &n.Status,
		pq.Array(&n.Tags), &n.CreatedAt, &n.UpdatedAt)
	if err != nil {
		return nil, err
	}
	return &n, nil
}

// Create inserts a new note row.
func (s *PostgresNotesRepository) Create(ctx context.Context, n models.Note) error {
	_, err := s.DB.ExecContext(ctx, `
		INSERT INTO notes (id, user_id, title, content, status, tags, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
	`, n.ID, n.UserID, n.Title, n.Content, n.Status, pq.Array(n.Tags), n.CreatedAt, n.UpdatedAt)
	if err != nil {
		return fmt.Errorf("Create: %w", err)
	}
	return nil
}

// Update fully replaces the note's mutable fields. Returns false when no
// row matched the id and owner.
func (s *PostgresNotesRepository) Update(ctx context.Context, n models.Note) (bool, error) {
	res, err := s.DB.ExecContext(ctx, `
		UPDATE notes
		   SET title = $1, content = $2, status = $3, tags = $4, updated_at = $5
		 WHERE id = $6 AND user_id = $7
	`, n.Title, n.Content, n.Status, pq.Array(n.Tags), n.UpdatedAt, n.ID, n.UserID)
	if err != nil {
		return false, fmt.Errorf("Update: %w", err)
	}
	rows, err := res.RowsAffected()
	if err != nil {
		return false, err
	}
	return rows > 0, nil
}

// Delete removes the note. Returns false when no row matched.
func (s *PostgresNotesRepository) Delete(ctx context.Context, userID, id string) (bool, error) {
	res, err := s.DB.ExecContext(ctx, `
		DELETE FROM notes WHERE id = $1 AND user_id = $2
	`, id, userID)
	if err != nil {
		return false, fmt.Errorf("Delete: %w", err)
	}
	rows, err := res.RowsAffected()
	if err != nil {
		return false, err
	}
	return rows > 0, nil
}

// TagsByUser returns the sorted set of distinct tags across the user's notes.
func (s *PostgresNotesRepository) TagsByUser(ctx context.Context, userID string) ([]string, error) {
	rows, err := s.DB.QueryContext(ctx, `
		SELECT DISTINCT unnest(tags) AS tag FROM notes WHERE user_id = $1 ORDER BY tag
	`, userID)
	if err != nil {
		return nil, fmt.Errorf("TagsByUser: %w", err)
	}
	defer rows.Close()

	tags := []string{}
	for rows.Next() {
		var t string
		if err := rows.Scan(&t); err != nil {
			return nil, fmt.Errorf("scan: %w", err)
		}
		tags = append(tags, t)
	}
	return tags, rows.Err()
}
