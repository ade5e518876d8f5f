// Package validate enforces the note form constraints locally, before a
// draft is ever sent to the server.
package validate

import (
	"errors"
	"fmt"
	"strings"

	"github.com/notesia/notesia/internal/models"
)

const (
	// MaxTitleLen is the longest accepted title.
	MaxTitleLen = 200
	// MaxContentLen is the longest accepted content body.
	MaxContentLen = 10000
	// MaxTags is the most tags a note may carry.
	MaxTags = 10
)

var (
	// ErrTagEmpty is returned when the tag is blank after trimming.
	ErrTagEmpty = errors.New("tag is empty")
	// ErrTagDuplicate is returned when the tag is already present.
	ErrTagDuplicate = errors.New("tag already added")
	// ErrTooManyTags is returned once the tag cap is reached.
	ErrTooManyTags = errors.New("no more than 10 tags allowed")
)

// Draft checks a note draft against the form constraints. It returns a map
// from field name to error message; an empty map means the draft is valid.
func Draft(d models.NoteDraft) map[string]string {
	errs := make(map[string]string)

	if strings.TrimSpace(d.Title) == "" {
		errs["title"] = "title is required"
	} else if len(d.Title) > MaxTitleLen {
		errs["title"] = fmt.Sprintf("title must not exceed %d characters", MaxTitleLen)
	}

	if strings.TrimSpace(d.Content) == "" {
		errs["content"] = "content is required"
	} else if len(d.Content) > MaxContentLen {
		errs["content"] = fmt.Sprintf("content must not exceed %d characters", MaxContentLen)
	}

	if len(d.Tags) > MaxTags {
		errs["tags"] = fmt.Sprintf("no more than %d tags allowed", MaxTags)
	}

	return errs
}

// AddTag normalizes raw to a lowercase trimmed tag and appends it to tags.
// It rejects empty and duplicate tags and enforces the tag cap, so the
// constraint holds at input time rather than only at submit time.
func AddTag(tags []string, raw string) ([]string, error) {
	tag := strings.ToLower(strings.TrimSpace(raw))
	if tag == "" {
		return tags, ErrTagEmpty
	}
	if len(tags) >= MaxTags {
		return tags, ErrTooManyTags
	}
	for _, t := range tags {
		if t == tag {
			return tags, ErrTagDuplicate
		}
	}
	return append(tags, tag), nil
}
