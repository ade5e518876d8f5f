// Package status maps note lifecycle labels between the vocabulary the UI
// historically used and the closed set the backend persists.
package status

import (
	"strings"

	"github.com/notesia/notesia/internal/models"
)

// ToBackend rewrites a UI-facing status into the persisted vocabulary.
// The UI offers "active" and "deleted", neither of which exists server-side:
// active maps to published, deleted maps to archived. Values already in the
// closed set pass through. Anything unrecognized falls back to draft.
func ToBackend(s string) models.NoteStatus {
	switch strings.TrimSpace(strings.ToLower(s)) {
	case "active", "published":
		return models.StatusPublished
	case "deleted", "archived":
		return models.StatusArchived
	case "draft":
		return models.StatusDraft
	default:
		return models.StatusDraft
	}
}

// FromBackend maps a persisted status for display. Backend values are
// already UI-displayable, so this is the identity.
func FromBackend(s models.NoteStatus) models.NoteStatus {
	return s
}
