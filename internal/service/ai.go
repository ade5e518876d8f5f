package service

import (
	"context"
	"fmt"
	"strings"
	"time"

	"google.golang.org/genai"

	"github.com/notesia/notesia/internal/models"
)

// systemPrompt frames every chat exchange around note taking.
const systemPrompt = `You are an assistant specialized in note taking and organizing information. Your main job is to help users:

1. Summarize long texts into key points and main concepts
2. Generate ideas and structure information clearly
3. Extract the important and relevant parts of a text
4. Organize and structure notes efficiently
5. Think through related ideas and concepts

Always answer clearly, well structured and focused on productivity. Use markdown formatting where it improves readability.`

// Generator produces text from a prompt. Satisfied by GeminiGenerator;
// handler tests substitute a fake.
type Generator interface {
	Generate(ctx context.Context, prompt string) (string, error)
}

// GeminiGenerator generates text using the Google Gemini API.
type GeminiGenerator struct {
	client *genai.Client
	model  string
}

// NewGeminiGenerator creates a generator for the given API key and model.
// An empty model falls back to gemini-1.5-flash.
func NewGeminiGenerator(ctx context.Context, apiKey, model string) (*GeminiGenerator, error) {
	if apiKey == "" {
		return nil, fmt.Errorf("Gemini API key is required")
	}
	if model == "" {
		model = "gemini-1.5-flash"
	}

	client, err := genai.NewClient(ctx, &genai.ClientConfig{APIKey: apiKey})
	if err != nil {
		return nil, fmt.Errorf("failed to create Gemini client: %w", err)
	}
	return &GeminiGenerator{client: client, model: model}, nil
}

// Generate runs one prompt through the configured model.
func (g *GeminiGenerator) Generate(ctx context.Context, prompt string) (string, error) {
	resp, err := g.client.Models.GenerateContent(ctx, g.model, genai.Text(prompt), nil)
	if err != nil {
		return "", fmt.Errorf("Gemini generate failed: %w", err)
	}
	text := resp.Text()
	if text == "" {
		return "", fmt.Errorf("no content returned")
	}
	return text, nil
}

// noteSource is the slice of NotesService the AI operations need.
type noteSource interface {
	Get(ctx context.Context, userID, id string) (*models.Note, error)
	List(ctx context.Context, userID, statusFilter, search string) ([]models.Note, error)
}

// AIService implements the AI-assisted operations over the user's notes.
type AIService struct {
	gen   Generator
	notes noteSource
}

// NewAIService constructs an AIService from a text generator and a note source.
func NewAIService(gen Generator, notes noteSource) *AIService {
	return &AIService{gen: gen, notes: notes}
}

// Chat answers a free-form prompt, optionally grounded in caller-supplied
// context text.
func (s *AIService) Chat(ctx context.Context, prompt, noteContext string) (string, error) {
	full := systemPrompt + "\n\n"
	if noteContext != "" {
		full += "Context: " + noteContext + "\n\n"
	}
	full += "User question: " + prompt
	return s.gen.Generate(ctx, full)
}

// Summarize produces a short summary of the given note.
func (s *AIService) Summarize(ctx context.Context, userID, noteID string) (*models.Note, string, error) {
	note, err := s.notes.Get(ctx, userID, noteID)
	if err != nil {
		return nil, "", err
	}

	prompt := fmt.Sprintf(`Write a concise, useful summary of the following content:

Title: %s
Content: %s

The summary must:
- Capture the main points
- Be clear and concise
- Keep the most important information
- Be at most 3-4 sentences`, note.Title, note.Content)

	summary, err := s.gen.Generate(ctx, prompt)
	if err != nil {
		return nil, "", err
	}
	return note, summary, nil
}

// Enhance rewrites the note's content according to mode: improve, expand
// or simplify. An empty or unknown mode means improve.
func (s *AIService) Enhance(ctx context.Context, userID, noteID, mode string) (*models.Note, string, error) {
	note, err := s.notes.Get(ctx, userID, noteID)
	if err != nil {
		return nil, "", err
	}

	var instruction string
	switch mode {
	case "expand":
		instruction = "Expand the content with relevant details, examples and context."
	case "simplify":
		instruction = "Simplify the content so it is shorter and easier to read."
	default:
		instruction = "Improve the clarity, structure and wording of the content."
	}

	prompt := fmt.Sprintf(`%s Keep the original meaning and return only the rewritten content.

Title: %s
Content: %s`, instruction, note.Title, note.Content)

	enhanced, err := s.gen.Generate(ctx, prompt)
	if err != nil {
		return nil, "", err
	}
	return note, enhanced, nil
}

// GenerateNote produces note content from a prompt. When no title is given
// a second generation suggests one.
func (s *AIService) GenerateNote(ctx context.Context, prompt, title string) (string, string, error) {
	content, err := s.gen.Generate(ctx, fmt.Sprintf(`Generate content for a note based on the following request:

%s

The content must be well structured, informative and appropriate for a note-taking application. Include the main points and relevant details.`, prompt))
	if err != nil {
		return "", "", err
	}

	if title == "" {
		head := content
		if len(head) > 200 {
			head = head[:200]
		}
		t, err := s.gen.Generate(ctx, "Generate a concise, descriptive title for the following content:\n\n"+head)
		if err != nil {
			return "", "", err
		}
		title = strings.TrimSpace(strings.ReplaceAll(t, `"`, ""))
	}
	return title, content, nil
}

// Analyze reviews up to ten of the user's notes and returns insights plus
// the total number of notes considered.
func (s *AIService) Analyze(ctx context.Context, userID string) (int, string, string, error) {
	notes, err := s.notes.List(ctx, userID, "", "")
	if err != nil {
		return 0, "", "", err
	}
	date := time.Now().UTC().Format("2006-01-02")
	if len(notes) == 0 {
		return 0, "No notes to analyze yet.", date, nil
	}

	sample := notes
	if len(sample) > 10 {
		sample = sample[:10]
	}
	var b strings.Builder
	for i, n := range sample {
		if i > 0 {
			b.WriteString("\n\n")
		}
		content := n.Content
		if len(content) > 200 {
			content = content[:200] + "..."
		}
		fmt.Fprintf(&b, "Title: %s\nContent: %s", n.Title, content)
	}

	prompt := fmt.Sprintf(`Analyze the following notes of a user and provide useful insights:

%s

Provide:
1. Main topics identified
2. Patterns in the content
3. Suggestions for organization
4. Areas of interest
5. Recommendations to improve productivity

Keep the analysis concise and actionable.`, b.String())

	insights, err := s.gen.Generate(ctx, prompt)
	if err != nil {
		return 0, "", "", err
	}
	return len(notes), insights, date, nil
}
