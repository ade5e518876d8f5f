package http

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"go.uber.org/zap"

	"github.com/notesia/notesia/internal/models"
	"github.com/notesia/notesia/internal/service"
)

// fakeTokenAuth implements middleware.TokenAuthenticator, accepting only
// the token "good".
type fakeTokenAuth struct{}

func (fakeTokenAuth) Authenticate(ctx context.Context, token string) (string, error) {
	if token != "good" {
		return "", service.ErrTokenInvalid
	}
	return "user-1", nil
}

// fakeNotesService implements NotesService for testing. It records the
// arguments of the last call.
type fakeNotesService struct {
	notes []models.Note
	note  *models.Note
	tags  []string
	err   error

	gotUserID string
	gotID     string
	gotStatus string
	gotSearch string
	gotDraft  models.NoteDraft
}

func (f *fakeNotesService) List(ctx context.Context, userID, statusFilter, search string) ([]models.Note, error) {
	f.gotUserID, f.gotStatus, f.gotSearch = userID, statusFilter, search
	return f.notes, f.err
}

func (f *fakeNotesService) Get(ctx context.Context, userID, id string) (*models.Note, error) {
	f.gotUserID, f.gotID = userID, id
	return f.note, f.err
}

func (f *fakeNotesService) Create(ctx context.Context, userID string, d models.NoteDraft) (*models.Note, error) {
	f.gotUserID, f.gotDraft = userID, d
	return f.note, f.err
}

func (f *fakeNotesService) Update(ctx context.Context, userID, id string, d models.NoteDraft) (*models.Note, error) {
	f.gotUserID, f.gotID, f.gotDraft = userID, id, d
	return f.note, f.err
}

func (f *fakeNotesService) Delete(ctx context.Context, userID, id string) error {
	f.gotUserID, f.gotID = userID, id
	return f.err
}

func (f *fakeNotesService) Tags(ctx context.Context, userID string) ([]string, error) {
	f.gotUserID = userID
	return f.tags, f.err
}

// newTestRouter mounts the full router around the given notes service so
// chi URL parameters and the auth middleware behave as in production.
func newTestRouter(notes NotesService) http.Handler {
	return NewRouter(
		&AuthHandler{AuthService: &fakeAuthService{}},
		&NotesHandler{NotesService: notes},
		&AIHandler{AIService: &fakeAIService{}},
		fakeTokenAuth{},
		zap.NewNop(),
	)
}

func doJSON(t *testing.T, h http.Handler, method, target, token, body string) *http.Response {
	t.Helper()
	var rd io.Reader
	if body != "" {
		rd = bytes.NewBufferString(body)
	}
	req := httptest.NewRequest(method, target, rd)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	return rec.Result()
}

func TestNotes_RequiresToken(t *testing.T) {
	h := newTestRouter(&fakeNotesService{})

	for _, token := range []string{"", "stale"} {
		res := doJSON(t, h, "GET", "/notes", token, "")
		if res.StatusCode != http.StatusUnauthorized {
			t.Fatalf("token %q: expected 401, got %d", token, res.StatusCode)
		}
		body, _ := io.ReadAll(res.Body)
		res.Body.Close()
		if !bytes.Contains(body, []byte("token is invalid or expired")) {
			t.Errorf("expected expiry detail, got %q", body)
		}
	}
}

func TestNotesHandler_List(t *testing.T) {
	svc := &fakeNotesService{notes: []models.Note{{ID: "n1", Title: "one"}}}
	h := newTestRouter(svc)

	res := doJSON(t, h, "GET", "/notes?status=published&search=plan", "good", "")
	defer res.Body.Close()

	if res.StatusCode != http.StatusOK {
		t.Fatalf("expected 200, got %d", res.StatusCode)
	}
	if svc.gotUserID != "user-1" || svc.gotStatus != "published" || svc.gotSearch != "plan" {
		t.Errorf("unexpected call: user=%q status=%q search=%q", svc.gotUserID, svc.gotStatus, svc.gotSearch)
	}

	var notes []models.Note
	if err := json.NewDecoder(res.Body).Decode(&notes); err != nil {
		t.Fatalf("failed to decode JSON: %v", err)
	}
	if len(notes) != 1 || notes[0].ID != "n1" {
		t.Errorf("unexpected notes: %+v", notes)
	}
}

func TestNotesHandler_Get(t *testing.T) {
	tests := []struct {
		name         string
		service      *fakeNotesService
		expectedCode int
	}{
		{
			name:         "found",
			service:      &fakeNotesService{note: &models.Note{ID: "n1"}},
			expectedCode: http.StatusOK,
		},
		{
			name:         "not found",
			service:      &fakeNotesService{err: service.ErrNoteNotFound},
			expectedCode: http.StatusNotFound,
		},
		{
			name:         "service error",
			service:      &fakeNotesService{err: errors.New("db fail")},
			expectedCode: http.StatusInternalServerError,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			h := newTestRouter(tt.service)
			res := doJSON(t, h, "GET", "/notes/n1", "good", "")
			defer res.Body.Close()

			if res.StatusCode != tt.expectedCode {
				t.Fatalf("expected %d, got %d", tt.expectedCode, res.StatusCode)
			}
			if tt.service.gotID != "n1" {
				t.Errorf("expected id n1, got %q", tt.service.gotID)
			}
		})
	}
}

func TestNotesHandler_Create(t *testing.T) {
	tests := []struct {
		name         string
		body         string
		service      *fakeNotesService
		expectedCode int
	}{
		{
			name:         "invalid body",
			body:         `not json`,
			service:      &fakeNotesService{},
			expectedCode: http.StatusBadRequest,
		},
		{
			name:         "invalid status",
			body:         `{"title":"t","status":"pending"}`,
			service:      &fakeNotesService{err: service.ErrInvalidStatus},
			expectedCode: http.StatusBadRequest,
		},
		{
			name:         "created",
			body:         `{"title":"t","content":"c","status":"draft","tags":["a"]}`,
			service:      &fakeNotesService{note: &models.Note{ID: "n1", Title: "t"}},
			expectedCode: http.StatusCreated,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			h := newTestRouter(tt.service)
			res := doJSON(t, h, "POST", "/notes/", "good", tt.body)
			defer res.Body.Close()

			if res.StatusCode != tt.expectedCode {
				t.Fatalf("expected %d, got %d", tt.expectedCode, res.StatusCode)
			}
		})
	}
}

func TestNotesHandler_Update(t *testing.T) {
	svc := &fakeNotesService{note: &models.Note{ID: "n1", Title: "v2"}}
	h := newTestRouter(svc)

	res := doJSON(t, h, "PUT", "/notes/n1", "good", `{"title":"v2","content":"c","status":"published"}`)
	defer res.Body.Close()

	if res.StatusCode != http.StatusOK {
		t.Fatalf("expected 200, got %d", res.StatusCode)
	}
	if svc.gotID != "n1" || svc.gotDraft.Title != "v2" || svc.gotDraft.Status != "published" {
		t.Errorf("unexpected call: id=%q draft=%+v", svc.gotID, svc.gotDraft)
	}
}

func TestNotesHandler_Delete(t *testing.T) {
	svc := &fakeNotesService{}
	h := newTestRouter(svc)

	res := doJSON(t, h, "DELETE", "/notes/n1", "good", "")
	defer res.Body.Close()

	if res.StatusCode != http.StatusNoContent {
		t.Fatalf("expected 204, got %d", res.StatusCode)
	}
	body, _ := io.ReadAll(res.Body)
	if len(body) != 0 {
		t.Errorf("expected empty body, got %q", body)
	}
	if svc.gotID != "n1" {
		t.Errorf("expected id n1, got %q", svc.gotID)
	}
}

func TestNotesHandler_Delete_NotFound(t *testing.T) {
	h := newTestRouter(&fakeNotesService{err: service.ErrNoteNotFound})

	res := doJSON(t, h, "DELETE", "/notes/missing", "good", "")
	defer res.Body.Close()

	if res.StatusCode != http.StatusNotFound {
		t.Fatalf("expected 404, got %d", res.StatusCode)
	}
}

func TestNotesHandler_Tags(t *testing.T) {
	svc := &fakeNotesService{tags: []string{"go", "work"}}
	h := newTestRouter(svc)

	res := doJSON(t, h, "GET", "/notes/tags/list", "good", "")
	defer res.Body.Close()

	if res.StatusCode != http.StatusOK {
		t.Fatalf("expected 200, got %d", res.StatusCode)
	}

	var payload map[string][]string
	if err := json.NewDecoder(res.Body).Decode(&payload); err != nil {
		t.Fatalf("failed to decode JSON: %v", err)
	}
	if len(payload["tags"]) != 2 || payload["tags"][0] != "go" {
		t.Errorf("unexpected tags: %+v", payload)
	}
}
