package api

import (
	"context"
	"net/http"

	"github.com/notesia/notesia/internal/models"
)

// ChatResponse is the reply to an AI chat prompt.
type ChatResponse struct {
	Response string `json:"response"`
	Prompt   string `json:"prompt"`
}

// NoteWithAI is a note enriched with AI-produced fields.
type NoteWithAI struct {
	models.Note
	AISummary         string   `json:"ai_summary,omitempty"`
	AIEnhancedContent string   `json:"ai_enhanced_content,omitempty"`
	AISuggestions     []string `json:"ai_suggestions,omitempty"`
}

// GeneratedNote is content produced from a free-form prompt, ready to be
// saved as a new note.
type GeneratedNote struct {
	Title               string `json:"title"`
	Content             string `json:"content"`
	GeneratedFromPrompt string `json:"generated_from_prompt"`
}

// NotesAnalysis is the result of analyzing all of the user's notes.
type NotesAnalysis struct {
	TotalNotesAnalyzed int    `json:"total_notes_analyzed"`
	Insights           string `json:"insights"`
	AnalysisDate       string `json:"analysis_date"`
}

// Chat sends a free-form prompt to the note assistant. The optional
// noteContext is prepended server-side; the response is passed through
// without client-side interpretation.
func (c *Client) Chat(ctx context.Context, prompt, noteContext string) (*ChatResponse, error) {
	raw, err := c.do(ctx, request{
		method: http.MethodPost,
		path:   "/ai/chat",
		auth:   true,
		body: map[string]string{
			"prompt":  prompt,
			"context": noteContext,
		},
	})
	if err != nil {
		return nil, err
	}

	var res ChatResponse
	if err := decode(raw, &res); err != nil {
		return nil, err
	}
	return &res, nil
}

// Summarize asks for a short summary of the given note.
func (c *Client) Summarize(ctx context.Context, noteID string) (*NoteWithAI, error) {
	raw, err := c.do(ctx, request{
		method: http.MethodPost,
		path:   "/ai/summarize",
		auth:   true,
		body:   map[string]string{"note_id": noteID},
	})
	if err != nil {
		return nil, err
	}

	var res NoteWithAI
	if err := decode(raw, &res); err != nil {
		return nil, err
	}
	return &res, nil
}

// Enhance rewrites the note's content. Mode is one of "improve", "expand"
// or "simplify"; empty means improve.
func (c *Client) Enhance(ctx context.Context, noteID, mode string) (*NoteWithAI, error) {
	if mode == "" {
		mode = "improve"
	}
	raw, err := c.do(ctx, request{
		method: http.MethodPost,
		path:   "/ai/enhance",
		auth:   true,
		body: map[string]string{
			"note_id":          noteID,
			"enhancement_type": mode,
		},
	})
	if err != nil {
		return nil, err
	}

	var res NoteWithAI
	if err := decode(raw, &res); err != nil {
		return nil, err
	}
	return &res, nil
}

// Generate produces note content from a prompt. The title is optional;
// when absent the server suggests one.
func (c *Client) Generate(ctx context.Context, prompt, title string) (*GeneratedNote, error) {
	raw, err := c.do(ctx, request{
		method: http.MethodPost,
		path:   "/ai/generate",
		auth:   true,
		body: map[string]string{
			"prompt": prompt,
			"title":  title,
		},
	})
	if err != nil {
		return nil, err
	}

	var res GeneratedNote
	if err := decode(raw, &res); err != nil {
		return nil, err
	}
	return &res, nil
}

// AnalyzeNotes asks for insights across all of the user's notes.
func (c *Client) AnalyzeNotes(ctx context.Context) (*NotesAnalysis, error) {
	raw, err := c.do(ctx, request{
		method: http.MethodPost,
		path:   "/ai/analyze-notes",
		auth:   true,
	})
	if err != nil {
		return nil, err
	}

	var res NotesAnalysis
	if err := decode(raw, &res); err != nil {
		return nil, err
	}
	return &res, nil
}
