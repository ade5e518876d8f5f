package service

import (
	"context"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/notesia/notesia/internal/models"
)

// fakeGenerator implements Generator, recording every prompt it sees and
// replaying canned answers in order.
type fakeGenerator struct {
	answers []string
	err     error
	prompts []string
}

func (f *fakeGenerator) Generate(ctx context.Context, prompt string) (string, error) {
	f.prompts = append(f.prompts, prompt)
	if f.err != nil {
		return "", f.err
	}
	i := len(f.prompts) - 1
	if i >= len(f.answers) {
		return "answer", nil
	}
	return f.answers[i], nil
}

func TestAIChat_BuildsPrompt(t *testing.T) {
	gen := &fakeGenerator{answers: []string{"try a weekly review"}}
	svc := NewAIService(gen, NewNotesService(newFakeNotesRepo()))

	answer, err := svc.Chat(context.Background(), "how do I organize?", "work notes")
	require.NoError(t, err)
	assert.Equal(t, "try a weekly review", answer)

	require.Len(t, gen.prompts, 1)
	assert.Contains(t, gen.prompts[0], "Context: work notes")
	assert.Contains(t, gen.prompts[0], "User question: how do I organize?")
}

func TestAISummarize(t *testing.T) {
	notes := NewNotesService(newFakeNotesRepo())
	created, err := notes.Create(context.Background(), "u1", models.NoteDraft{
		Title: "standup", Content: "we shipped the parser",
	})
	require.NoError(t, err)

	gen := &fakeGenerator{answers: []string{"parser shipped"}}
	svc := NewAIService(gen, notes)

	note, summary, err := svc.Summarize(context.Background(), "u1", created.ID)
	require.NoError(t, err)
	assert.Equal(t, created.ID, note.ID)
	assert.Equal(t, "parser shipped", summary)
	assert.Contains(t, gen.prompts[0], "we shipped the parser")
}

func TestAISummarize_NoteNotFound(t *testing.T) {
	svc := NewAIService(&fakeGenerator{}, NewNotesService(newFakeNotesRepo()))

	_, _, err := svc.Summarize(context.Background(), "u1", "missing")
	assert.ErrorIs(t, err, ErrNoteNotFound)
}

func TestAIEnhance_ModeSelectsInstruction(t *testing.T) {
	notes := NewNotesService(newFakeNotesRepo())
	created, err := notes.Create(context.Background(), "u1", models.NoteDraft{Title: "t", Content: "c"})
	require.NoError(t, err)

	tests := []struct {
		mode string
		want string
	}{
		{"expand", "Expand the content"},
		{"simplify", "Simplify the content"},
		{"", "Improve the clarity"},
		{"bogus", "Improve the clarity"},
	}

	for _, tt := range tests {
		gen := &fakeGenerator{answers: []string{"rewritten"}}
		svc := NewAIService(gen, notes)

		_, enhanced, err := svc.Enhance(context.Background(), "u1", created.ID, tt.mode)
		require.NoError(t, err, tt.mode)
		assert.Equal(t, "rewritten", enhanced)
		assert.Contains(t, gen.prompts[0], tt.want, "mode %q", tt.mode)
	}
}

func TestAIGenerateNote_SuggestsTitleWhenMissing(t *testing.T) {
	gen := &fakeGenerator{answers: []string{"generated body", `"A Fitting Title"`}}
	svc := NewAIService(gen, NewNotesService(newFakeNotesRepo()))

	title, content, err := svc.GenerateNote(context.Background(), "plan a trip", "")
	require.NoError(t, err)
	assert.Equal(t, "generated body", content)
	// Quotes stripped from the suggested title
	assert.Equal(t, "A Fitting Title", title)
	require.Len(t, gen.prompts, 2)
}

func TestAIGenerateNote_KeepsGivenTitle(t *testing.T) {
	gen := &fakeGenerator{answers: []string{"generated body"}}
	svc := NewAIService(gen, NewNotesService(newFakeNotesRepo()))

	title, _, err := svc.GenerateNote(context.Background(), "plan a trip", "My Trip")
	require.NoError(t, err)
	assert.Equal(t, "My Trip", title)
	// No second call for a title
	require.Len(t, gen.prompts, 1)
}

func TestAIAnalyze(t *testing.T) {
	notes := NewNotesService(newFakeNotesRepo())
	for i := 0; i < 12; i++ {
		_, err := notes.Create(context.Background(), "u1", models.NoteDraft{
			Title: "note", Content: strings.Repeat("x", 10),
		})
		require.NoError(t, err)
	}

	gen := &fakeGenerator{answers: []string{"mostly work notes"}}
	svc := NewAIService(gen, notes)

	total, insights, date, err := svc.Analyze(context.Background(), "u1")
	require.NoError(t, err)
	assert.Equal(t, 12, total)
	assert.Equal(t, "mostly work notes", insights)
	assert.NotEmpty(t, date)
	// Only ten notes make it into the prompt
	assert.Equal(t, 10, strings.Count(gen.prompts[0], "Title: note"))
}

func TestAIAnalyze_NoNotes(t *testing.T) {
	gen := &fakeGenerator{}
	svc := NewAIService(gen, NewNotesService(newFakeNotesRepo()))

	total, insights, _, err := svc.Analyze(context.Background(), "u1")
	require.NoError(t, err)
	assert.Zero(t, total)
	assert.Equal(t, "No notes to analyze yet.", insights)
	// The generator is never consulted
	assert.Empty(t, gen.prompts)
}
