package http

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/notesia/notesia/internal/middleware"
	"github.com/notesia/notesia/internal/models"
	"github.com/notesia/notesia/internal/service"
)

// NotesService defines the interface for note operations required by the
// NotesHandler.
type NotesService interface {
	// List retrieves the user's notes, optionally filtered by status and search.
	List(ctx context.Context, userID, statusFilter, search string) ([]models.Note, error)
	// Get fetches a single owned note.
	Get(ctx context.Context, userID, id string) (*models.Note, error)
	// Create stores a new note built from the draft.
	Create(ctx context.Context, userID string, d models.NoteDraft) (*models.Note, error)
	// Update fully replaces an owned note.
	Update(ctx context.Context, userID, id string, d models.NoteDraft) (*models.Note, error)
	// Delete removes an owned note.
	Delete(ctx context.Context, userID, id string) error
	// Tags returns the distinct tags across the user's notes.
	Tags(ctx context.Context, userID string) ([]string, error)
}

// NotesHandler handles HTTP requests for note CRUD and tag listing.
type NotesHandler struct {
	NotesService NotesService
}

// List handles GET /notes with optional status and search query parameters.
func (h *NotesHandler) List(w http.ResponseWriter, r *http.Request) {
	userID := middleware.GetUserIDFromContext(r.Context())

	notes, err := h.NotesService.List(r.Context(),
		userID,
		r.URL.Query().Get("status"),
		r.URL.Query().Get("search"),
	)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "internal error")
		return
	}

	writeJSON(w, http.StatusOK, notes)
}

// Get handles GET /notes/{id}.
func (h *NotesHandler) Get(w http.ResponseWriter, r *http.Request) {
	userID := middleware.GetUserIDFromContext(r.Context())

	note, err := h.NotesService.Get(r.Context(), userID, chi.URLParam(r, "id"))
	if errors.Is(err, service.ErrNoteNotFound) {
		writeError(w, http.StatusNotFound, "note not found")
		return
	}
	if err != nil {
		writeError(w, http.StatusInternalServerError, "internal error")
		return
	}

	writeJSON(w, http.StatusOK, note)
}

// Create handles POST /notes/.
func (h *NotesHandler) Create(w http.ResponseWriter, r *http.Request) {
	userID := middleware.GetUserIDFromContext(r.Context())

	var draft models.NoteDraft
	if err := json.NewDecoder(r.Body).Decode(&draft); err != nil {
		writeError(w, http.StatusBadRequest, "invalid body")
		return
	}

	note, err := h.NotesService.Create(r.Context(), userID, draft)
	if errors.Is(err, service.ErrInvalidStatus) {
		writeError(w, http.StatusBadRequest, "invalid status")
		return
	}
	if err != nil {
		writeError(w, http.StatusInternalServerError, "internal error")
		return
	}

	writeJSON(w, http.StatusCreated, note)
}

// Update handles PUT /notes/{id} with full-replace semantics.
func (h *NotesHandler) Update(w http.ResponseWriter, r *http.Request) {
	userID := middleware.GetUserIDFromContext(r.Context())

	var draft models.NoteDraft
	if err := json.NewDecoder(r.Body).Decode(&draft); err != nil {
		writeError(w, http.StatusBadRequest, "invalid body")
		return
	}

	note, err := h.NotesService.Update(r.Context(), userID, chi.URLParam(r, "id"), draft)
	if errors.Is(err, service.ErrNoteNotFound) {
		writeError(w, http.StatusNotFound, "note not found")
		return
	}
	if errors.Is(err, service.ErrInvalidStatus) {
		writeError(w, http.StatusBadRequest, "invalid status")
		return
	}
	if err != nil {
		writeError(w, http.StatusInternalServerError, "internal error")
		return
	}

	writeJSON(w, http.StatusOK, note)
}

// Delete handles DELETE /notes/{id}, answering 204 with no body.
func (h *NotesHandler) Delete(w http.ResponseWriter, r *http.Request) {
	userID := middleware.GetUserIDFromContext(r.Context())

	err := h.NotesService.Delete(r.Context(), userID, chi.URLParam(r, "id"))
	if errors.Is(err, service.ErrNoteNotFound) {
		writeError(w, http.StatusNotFound, "note not found")
		return
	}
	if err != nil {
		writeError(w, http.StatusInternalServerError, "internal error")
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

// Tags handles GET /notes/tags/list.
func (h *NotesHandler) Tags(w http.ResponseWriter, r *http.Request) {
	userID := middleware.GetUserIDFromContext(r.Context())

	tags, err := h.NotesService.Tags(r.Context(), userID)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "internal error")
		return
	}

	writeJSON(w, http.StatusOK, map[string][]string{"tags": tags})
}
