package api

import (
	"context"
	"encoding/json"
	"net/http"
	"path/filepath"
	"testing"

	"github.com/notesia/notesia/internal/client/session"
)

func TestRegister_DerivesUsername(t *testing.T) {
	var got registerRequest
	c, _, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		_ = json.NewDecoder(r.Body).Decode(&got)
		w.WriteHeader(http.StatusCreated)
		_, _ = w.Write([]byte(`{"message":"user registered successfully","user_id":"u1"}`))
	})

	res, err := c.Register(context.Background(), RegisterParams{
		Email:     "jane@x.com",
		Password:  "secret",
		FirstName: "Jane",
		LastName:  "Doe",
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got.Username != "jane" {
		t.Errorf("expected derived username jane, got %q", got.Username)
	}
	if got.FullName != "Jane Doe" {
		t.Errorf("expected full name 'Jane Doe', got %q", got.FullName)
	}
	if res.UserID != "u1" {
		t.Errorf("unexpected user id: %q", res.UserID)
	}
}

func TestRegister_ExplicitFieldsWin(t *testing.T) {
	var got registerRequest
	c, _, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		_ = json.NewDecoder(r.Body).Decode(&got)
		_, _ = w.Write([]byte(`{"message":"ok","user_id":"u2"}`))
	})

	_, err := c.Register(context.Background(), RegisterParams{
		Email:    "jane@x.com",
		Password: "secret",
		Username: "janedoe42",
		FullName: "Jane Q. Doe",
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got.Username != "janedoe42" || got.FullName != "Jane Q. Doe" {
		t.Errorf("explicit fields were overridden: %+v", got)
	}
}

func TestLogin_PersistsSession(t *testing.T) {
	srvToken := "issued-token-1"
	c, store, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"access_token":"` + srvToken + `","token_type":"bearer","expires_in":1800}`))
	})
	// Start unauthenticated
	if err := store.Clear(); err != nil {
		t.Fatalf("clear: %v", err)
	}

	tok, err := c.Login(context.Background(), "jane@x.com", "secret")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if tok.AccessToken != srvToken {
		t.Errorf("unexpected token: %q", tok.AccessToken)
	}

	cur := store.Current()
	if cur == nil || cur.Token != srvToken || cur.Email != "jane@x.com" {
		t.Errorf("session not established: %+v", cur)
	}
}

func TestLogin_ThenListSendsBearer(t *testing.T) {
	var gotAuth string
	mux := http.NewServeMux()
	mux.HandleFunc("/auth/login", func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"access_token":"tok-9","token_type":"bearer","expires_in":1800}`))
	})
	mux.HandleFunc("/notes", func(w http.ResponseWriter, r *http.Request) {
		gotAuth = r.Header.Get("Authorization")
		_, _ = w.Write([]byte(`[]`))
	})

	c, store, _ := newTestClient(t, mux.ServeHTTP)
	if err := store.Clear(); err != nil {
		t.Fatalf("clear: %v", err)
	}

	if _, err := c.Login(context.Background(), "jane@x.com", "secret"); err != nil {
		t.Fatalf("login: %v", err)
	}
	if _, err := c.ListNotes(context.Background(), ListOptions{}); err != nil {
		t.Fatalf("list: %v", err)
	}
	if gotAuth != "Bearer tok-9" {
		t.Errorf("expected freshly issued bearer on list, got %q", gotAuth)
	}
}

func TestLogout_ClearsSessionEvenWhenServerFails(t *testing.T) {
	c, store, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusInternalServerError)
		_, _ = w.Write([]byte(`{"detail":"boom"}`))
	})

	if err := c.Logout(context.Background()); err != nil {
		t.Fatalf("logout must clear locally despite server failure, got %v", err)
	}
	if store.Current() != nil {
		t.Error("session should be cleared after logout")
	}
}

func TestProfile(t *testing.T) {
	c, _, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/auth/me" {
			t.Errorf("unexpected path %s", r.URL.Path)
		}
		_, _ = w.Write([]byte(`{"id":"u1","email":"jane@x.com","username":"jane","full_name":"Jane Doe","is_active":true}`))
	})

	u, err := c.Profile(context.Background())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if u.Username != "jane" || u.Email != "jane@x.com" {
		t.Errorf("unexpected profile: %+v", u)
	}
}

func TestRegister_NoSessionNeeded(t *testing.T) {
	var gotAuth string
	srvHandler := func(w http.ResponseWriter, r *http.Request) {
		gotAuth = r.Header.Get("Authorization")
		_, _ = w.Write([]byte(`{"message":"ok","user_id":"u3"}`))
	}
	store := session.NewStore(filepath.Join(t.TempDir(), "session.json"))
	c, _, _ := newTestClient(t, srvHandler)
	c.session = store // unauthenticated store

	if _, err := c.Register(context.Background(), RegisterParams{Email: "a@b.c", Password: "p"}); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if gotAuth != "" {
		t.Errorf("register must not send Authorization, got %q", gotAuth)
	}
}
