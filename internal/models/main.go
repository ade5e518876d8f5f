// Package models defines the core data structures shared by the Notesia
// client and server: users, notes and authentication tokens.
package models

import "time"

// User represents an application user account.
type User struct {
	// ID is the unique identifier for the user.
	ID string `json:"id"`
	// Email is the address the user registered and logs in with.
	Email string `json:"email"`
	// Username is the short handle; derived from the email local part
	// when not supplied at registration.
	Username string `json:"username"`
	// FullName is the display name of the user.
	FullName string `json:"full_name"`
	// CreatedAt is when the account was created.
	CreatedAt time.Time `json:"created_at"`
	// IsActive reports whether the account is enabled.
	IsActive bool `json:"is_active"`
}

// NoteStatus identifies where a note is in its lifecycle.
type NoteStatus string

const (
	// StatusDraft is the default state of a newly created note.
	StatusDraft NoteStatus = "draft"
	// StatusPublished marks a note as finished and visible.
	StatusPublished NoteStatus = "published"
	// StatusArchived marks a note as put away. Archived is a plain status
	// value, not a tombstone; deleting a note removes it entirely.
	StatusArchived NoteStatus = "archived"
)

// Note is a single user-owned note.
type Note struct {
	// ID is the unique identifier for the note.
	ID string `json:"id"`
	// UserID identifies the owning user.
	UserID string `json:"user_id"`
	// Title is the note heading, at most 200 characters.
	Title string `json:"title"`
	// Content is the note body, at most 10000 characters.
	Content string `json:"content"`
	// Status is one of draft, published or archived.
	Status NoteStatus `json:"status"`
	// Tags is an ordered list of unique lowercase labels, at most 10.
	Tags []string `json:"tags"`
	// CreatedAt is when the note was created.
	CreatedAt time.Time `json:"created_at"`
	// UpdatedAt is when the note was last modified.
	UpdatedAt time.Time `json:"updated_at"`
}

// NoteDraft is client-constructed note data prior to normalization.
// Its Status may still hold out-of-vocabulary values such as "active"
// or "deleted".
type NoteDraft struct {
	Title   string   `json:"title"`
	Content string   `json:"content"`
	Status  string   `json:"status"`
	Tags    []string `json:"tags"`
}

// Token is the response body of a successful login.
type Token struct {
	// AccessToken is the opaque bearer credential.
	AccessToken string `json:"access_token"`
	// TokenType is always "bearer".
	TokenType string `json:"token_type"`
	// ExpiresIn is the token lifetime in seconds.
	ExpiresIn int64 `json:"expires_in"`
}
