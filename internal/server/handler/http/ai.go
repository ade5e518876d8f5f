package http

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"

	"github.com/notesia/notesia/internal/middleware"
	"github.com/notesia/notesia/internal/models"
	"github.com/notesia/notesia/internal/service"
)

// AIService defines the AI-assisted operations required by the AIHandler.
type AIService interface {
	Chat(ctx context.Context, prompt, noteContext string) (string, error)
	Summarize(ctx context.Context, userID, noteID string) (*models.Note, string, error)
	Enhance(ctx context.Context, userID, noteID, mode string) (*models.Note, string, error)
	GenerateNote(ctx context.Context, prompt, title string) (string, string, error)
	Analyze(ctx context.Context, userID string) (int, string, string, error)
}

// AIHandler handles the /ai endpoints. Responses pass the generated text
// through; the handler does not interpret it.
type AIHandler struct {
	AIService AIService
}

// noteWithAI extends a note with AI-produced fields for the response body.
type noteWithAI struct {
	models.Note
	AISummary         string `json:"ai_summary,omitempty"`
	AIEnhancedContent string `json:"ai_enhanced_content,omitempty"`
}

// Chat handles POST /ai/chat.
func (h *AIHandler) Chat(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Prompt  string `json:"prompt"`
		Context string `json:"context"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil || req.Prompt == "" {
		writeError(w, http.StatusBadRequest, "prompt is required")
		return
	}

	answer, err := h.AIService.Chat(r.Context(), req.Prompt, req.Context)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "AI request failed")
		return
	}

	writeJSON(w, http.StatusOK, map[string]string{
		"response": answer,
		"prompt":   req.Prompt,
	})
}

// Summarize handles POST /ai/summarize.
func (h *AIHandler) Summarize(w http.ResponseWriter, r *http.Request) {
	userID := middleware.GetUserIDFromContext(r.Context())

	var req struct {
		NoteID string `json:"note_id"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil || req.NoteID == "" {
		writeError(w, http.StatusBadRequest, "note_id is required")
		return
	}

	note, summary, err := h.AIService.Summarize(r.Context(), userID, req.NoteID)
	if errors.Is(err, service.ErrNoteNotFound) {
		writeError(w, http.StatusNotFound, "note not found")
		return
	}
	if err != nil {
		writeError(w, http.StatusInternalServerError, "AI request failed")
		return
	}

	writeJSON(w, http.StatusOK, noteWithAI{Note: *note, AISummary: summary})
}

// Enhance handles POST /ai/enhance.
func (h *AIHandler) Enhance(w http.ResponseWriter, r *http.Request) {
	userID := middleware.GetUserIDFromContext(r.Context())

	var req struct {
		NoteID          string `json:"note_id"`
		EnhancementType string `json:"enhancement_type"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil || req.NoteID == "" {
		writeError(w, http.StatusBadRequest, "note_id is required")
		return
	}

	note, enhanced, err := h.AIService.Enhance(r.Context(), userID, req.NoteID, req.EnhancementType)
	if errors.Is(err, service.ErrNoteNotFound) {
		writeError(w, http.StatusNotFound, "note not found")
		return
	}
	if err != nil {
		writeError(w, http.StatusInternalServerError, "AI request failed")
		return
	}

	writeJSON(w, http.StatusOK, noteWithAI{Note: *note, AIEnhancedContent: enhanced})
}

// Generate handles POST /ai/generate.
func (h *AIHandler) Generate(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Prompt string `json:"prompt"`
		Title  string `json:"title"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil || req.Prompt == "" {
		writeError(w, http.StatusBadRequest, "prompt is required")
		return
	}

	title, content, err := h.AIService.GenerateNote(r.Context(), req.Prompt, req.Title)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "AI request failed")
		return
	}

	writeJSON(w, http.StatusOK, map[string]string{
		"title":                 title,
		"content":               content,
		"generated_from_prompt": req.Prompt,
	})
}

// Analyze handles POST /ai/analyze-notes.
func (h *AIHandler) Analyze(w http.ResponseWriter, r *http.Request) {
	userID := middleware.GetUserIDFromContext(r.Context())

	total, insights, date, err := h.AIService.Analyze(r.Context(), userID)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "AI request failed")
		return
	}

	writeJSON(w, http.StatusOK, map[string]any{
		"total_notes_analyzed": total,
		"insights":             insights,
		"analysis_date":        date,
	})
}
