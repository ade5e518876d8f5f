package service

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/google/uuid"

	"github.com/notesia/notesia/internal/models"
)

// ErrNoteNotFound is returned when a note does not exist or is owned by
// another user.
var ErrNoteNotFound = errors.New("note not found")

// ErrInvalidStatus is returned when a payload carries a status outside the
// persisted vocabulary. The client normalizes before sending, so seeing
// this means a caller bypassed the normalizer.
var ErrInvalidStatus = errors.New("invalid status")

// NotesRepository defines the persistence operations needed by the NotesService.
type NotesRepository interface {
	// ListByUser retrieves the user's notes, optionally filtered.
	ListByUser(ctx context.Context, userID, statusFilter, search string) ([]models.Note, error)
	// GetByID fetches a single owned note.
	GetByID(ctx context.Context, userID, id string) (*models.Note, error)
	// Create inserts a new note.
	Create(ctx context.Context, n models.Note) error
	// Update fully replaces a note's mutable fields.
	Update(ctx context.Context, n models.Note) (bool, error)
	// Delete removes a note, reporting whether a row matched.
	Delete(ctx context.Context, userID, id string) (bool, error)
	// TagsByUser returns the distinct tags across the user's notes.
	TagsByUser(ctx context.Context, userID string) ([]string, error)
}

// NotesService implements note CRUD business logic.
type NotesService struct {
	repo NotesRepository
}

// NewNotesService constructs a NotesService with the provided repository.
func NewNotesService(repo NotesRepository) *NotesService {
	return &NotesService{repo: repo}
}

// validStatus reports membership in the persisted vocabulary.
func validStatus(s models.NoteStatus) bool {
	switch s {
	case models.StatusDraft, models.StatusPublished, models.StatusArchived:
		return true
	}
	return false
}

// List returns the user's notes, newest-updated first.
func (s *NotesService) List(ctx context.Context, userID, statusFilter, search string) ([]models.Note, error) {
	return s.repo.ListByUser(ctx, userID, statusFilter, search)
}

// Get returns a single owned note, or ErrNoteNotFound.
func (s *NotesService) Get(ctx context.Context, userID, id string) (*models.Note, error) {
	n, err := s.repo.GetByID(ctx, userID, id)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNoteNotFound
	}
	if err != nil {
		return nil, err
	}
	return n, nil
}

// Create stores a new note built from the draft. An empty status defaults
// to draft; nil tags default to an empty list.
func (s *NotesService) Create(ctx context.Context, userID string, d models.NoteDraft) (*models.Note, error) {
	st := models.NoteStatus(d.Status)
	if st == "" {
		st = models.StatusDraft
	}
	if !validStatus(st) {
		return nil, ErrInvalidStatus
	}

	tags := d.Tags
	if tags == nil {
		tags = []string{}
	}

	now := time.Now().UTC()
	n := models.Note{
		ID:        uuid.NewString(),
		UserID:    userID,
		Title:     d.Title,
		Content:   d.Content,
		Status:    st,
		Tags:      tags,
		CreatedAt: now,
		UpdatedAt: now,
	}
	if err := s.repo.Create(ctx, n); err != nil {
		return nil, err
	}
	return &n, nil
}

// Update fully replaces the note with the given id, PUT semantics.
// Returns ErrNoteNotFound when the note is absent or foreign.
func (s *NotesService) Update(ctx context.Context, userID, id string, d models.NoteDraft) (*models.Note, error) {
	st := models.NoteStatus(d.Status)
	if st == "" {
		st = models.StatusDraft
	}
	if !validStatus(st) {
		return nil, ErrInvalidStatus
	}

	existing, err := s.Get(ctx, userID, id)
	if err != nil {
		return nil, err
	}

	tags := d.Tags
	if tags == nil {
		tags = []string{}
	}

	n := models.Note{
		ID:        id,
		UserID:    userID,
		Title:     d.Title,
		Content:   d.Content,
		Status:    st,
		Tags:      tags,
		CreatedAt: existing.CreatedAt,
		UpdatedAt: time.Now().UTC(),
	}
	ok, err := s.repo.Update(ctx, n)
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, ErrNoteNotFound
	}
	return &n, nil
}

// Delete removes the note, or returns ErrNoteNotFound.
func (s *NotesService) Delete(ctx context.Context, userID, id string) error {
	ok, err := s.repo.Delete(ctx, userID, id)
	if err != nil {
		return err
	}
	if !ok {
		return ErrNoteNotFound
	}
	return nil
}

// Tags returns the sorted distinct tags across the user's notes.
func (s *NotesService) Tags(ctx context.Context, userID string) ([]string, error) {
	return s.repo.TagsByUser(ctx, userID)
}
