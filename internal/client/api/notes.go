package api

import (
	"context"
	"net/http"
	"net/url"

	"github.com/notesia/notesia/internal/models"
	"github.com/notesia/notesia/internal/status"
)

// notePayload is the wire form of an outbound note. Status is always a
// member of the persisted vocabulary by the time it is marshaled.
type notePayload struct {
	Title   string            `json:"title"`
	Content string            `json:"content"`
	Status  models.NoteStatus `json:"status"`
	Tags    []string          `json:"tags"`
}

// normalizeDraft rewrites a draft into its wire form: the status is mapped
// into the backend vocabulary and absent fields get their defaults. Every
// outbound note passes through here, never around it.
func normalizeDraft(d models.NoteDraft) notePayload {
	tags := d.Tags
	if tags == nil {
		tags = []string{}
	}
	return notePayload{
		Title:   d.Title,
		Content: d.Content,
		Status:  status.ToBackend(d.Status),
		Tags:    tags,
	}
}

// ListOptions filters a notes listing. Zero values mean no filter.
type ListOptions struct {
	// Status restricts the listing to one lifecycle state.
	Status string
	// Search matches against title and content.
	Search string
}

// ListNotes returns the user's notes, newest-updated first.
func (c *Client) ListNotes(ctx context.Context, opts ListOptions) ([]models.Note, error) {
	path := "/notes"
	q := url.Values{}
	if opts.Status != "" {
		q.Set("status", string(status.ToBackend(opts.Status)))
	}
	if opts.Search != "" {
		q.Set("search", opts.Search)
	}
	if len(q) > 0 {
		path += "?" + q.Encode()
	}

	raw, err := c.do(ctx, request{method: http.MethodGet, path: path, auth: true})
	if err != nil {
		return nil, err
	}
	if raw == nil {
		return []models.Note{}, nil
	}

	var notes []models.Note
	if err := decode(raw, &notes); err != nil {
		return nil, err
	}
	return notes, nil
}

// GetNote fetches a single note by id.
func (c *Client) GetNote(ctx context.Context, id string) (*models.Note, error) {
	raw, err := c.do(ctx, request{method: http.MethodGet, path: "/notes/" + id, auth: true})
	if err != nil {
		return nil, err
	}

	var note models.Note
	if err := decode(raw, &note); err != nil {
		return nil, err
	}
	return &note, nil
}

// CreateNote posts a new note built from the draft.
func (c *Client) CreateNote(ctx context.Context, d models.NoteDraft) (*models.Note, error) {
	raw, err := c.do(ctx, request{
		method: http.MethodPost,
		path:   "/notes/",
		auth:   true,
		body:   normalizeDraft(d),
	})
	if err != nil {
		return nil, err
	}

	var note models.Note
	if err := decode(raw, &note); err != nil {
		return nil, err
	}
	return &note, nil
}

// UpdateNote fully replaces the note with the given id.
func (c *Client) UpdateNote(ctx context.Context, id string, d models.NoteDraft) (*models.Note, error) {
	raw, err := c.do(ctx, request{
		method: http.MethodPut,
		path:   "/notes/" + id,
		auth:   true,
		body:   normalizeDraft(d),
	})
	if err != nil {
		return nil, err
	}

	var note models.Note
	if err := decode(raw, &note); err != nil {
		return nil, err
	}
	return &note, nil
}

// DeleteNote removes the note with the given id. The server may answer
// 204 with no body; that is a valid success, not a decode failure.
func (c *Client) DeleteNote(ctx context.Context, id string) error {
	_, err := c.do(ctx, request{method: http.MethodDelete, path: "/notes/" + id, auth: true})
	return err
}

// Tags returns the sorted set of tags used across the user's notes.
func (c *Client) Tags(ctx context.Context) ([]string, error) {
	raw, err := c.do(ctx, request{method: http.MethodGet, path: "/notes/tags/list", auth: true})
	if err != nil {
		return nil, err
	}

	var res struct {
		Tags []string `json:"tags"`
	}
	if err := decode(raw, &res); err != nil {
		return nil, err
	}
	return res.Tags, nil
}
