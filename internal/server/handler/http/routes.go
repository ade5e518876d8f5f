package http

import (
	"net/http"

	"go.uber.org/zap"

	"github.com/go-chi/chi/v5"
	chiMiddleware "github.com/go-chi/chi/v5/middleware"

	"github.com/notesia/notesia/internal/middleware"
)

// NewRouter constructs and returns an HTTP handler that serves the Notesia
// API. It applies JSON content-type enforcement and request logging, and
// mounts the auth, notes and AI endpoints.
//
// Routes:
//
//	POST /auth/register        → authHandler.Register (public)
//	POST /auth/login           → authHandler.Login (public)
//	GET  /auth/me              → authHandler.Me
//	POST /auth/logout          → authHandler.Logout
//	GET  /notes                → notesHandler.List
//	POST /notes/               → notesHandler.Create
//	GET  /notes/tags/list      → notesHandler.Tags
//	GET  /notes/{id}           → notesHandler.Get
//	PUT  /notes/{id}           → notesHandler.Update
//	DELETE /notes/{id}         → notesHandler.Delete
//	POST /ai/chat|summarize|enhance|generate|analyze-notes → aiHandler.*
//
// Everything except register and login is protected by BearerAuth backed
// by the given authenticator.
func NewRouter(
	authHandler *AuthHandler,
	notesHandler *NotesHandler,
	aiHandler *AIHandler,
	auth middleware.TokenAuthenticator,
	logger *zap.Logger,
) http.Handler {
	r := chi.NewRouter()

	// Only allow requests with Content-Type: application/json
	r.Use(chiMiddleware.AllowContentType("application/json"))

	// Log each request and its metadata
	r.Use(middleware.WithRequestLogging(logger))

	r.Route("/auth", func(r chi.Router) {
		// Public endpoints
		r.Post("/register", authHandler.Register)
		r.Post("/login", authHandler.Login)

		// Protected group: requires a valid bearer token
		r.Group(func(r chi.Router) {
			r.Use(middleware.BearerAuth(auth))
			r.Get("/me", authHandler.Me)
			r.Post("/logout", authHandler.Logout)
		})
	})

	r.Route("/notes", func(r chi.Router) {
		r.Use(middleware.BearerAuth(auth))
		r.Get("/", notesHandler.List)
		r.Post("/", notesHandler.Create)
		r.Get("/tags/list", notesHandler.Tags)
		r.Get("/{id}", notesHandler.Get)
		r.Put("/{id}", notesHandler.Update)
		r.Delete("/{id}", notesHandler.Delete)
	})

	r.Route("/ai", func(r chi.Router) {
		r.Use(middleware.BearerAuth(auth))
		r.Post("/chat", aiHandler.Chat)
		r.Post("/summarize", aiHandler.Summarize)
		r.Post("/enhance", aiHandler.Enhance)
		r.Post("/generate", aiHandler.Generate)
		r.Post("/analyze-notes", aiHandler.Analyze)
	})

	return r
}
