// Package main initializes and starts the Notesia HTTP server, setting up
// configuration, logging, database connections, repositories, services and
// handlers.
package main

import (
	"cmp"
	"context"
	"fmt"
	"time"

	nethttp "net/http"

	"go.uber.org/zap"

	"github.com/notesia/notesia/internal/config"
	"github.com/notesia/notesia/internal/db"
	"github.com/notesia/notesia/internal/logger"
	"github.com/notesia/notesia/internal/repository"
	"github.com/notesia/notesia/internal/server/handler/http"
	"github.com/notesia/notesia/internal/service"
)

var (
	// version holds the build version set via ldflags.
	version string
	// buildDate holds the build timestamp set via ldflags.
	buildDate string
)

func main() {
	// Parse command-line and environment configuration.
	options := config.Parse()

	// Print build metadata (or "N/A" if unset).
	fmt.Printf("Build version: %s\n", cmp.Or(version, "N/A"))
	fmt.Printf("Build date: %s\n", cmp.Or(buildDate, "N/A"))

	// Initialize structured logging.
	log := logger.New()
	defer func() { _ = log.Log.Sync() }()
	if err := log.Init("info"); err != nil {
		log.Log.Fatal("failed to init logger", zap.Error(err))
	}
	zapLogger := log.Log

	// Initialize PostgreSQL connection and schema.
	postgresDB, err := db.InitPostgres(options.DatabaseDSN)
	if err != nil {
		zapLogger.Fatal("cannot init database", zap.Error(err))
	}

	// Periodically remove expired bearer tokens.
	db.StartExpiredTokenCleaner(context.Background(), postgresDB,
		time.Hour,
		zapLogger,
	)

	// Initialize repositories for authentication and notes.
	authRepo := repository.NewPostgresAuthRepository(postgresDB)
	notesRepo := repository.NewPostgresNotesRepository(postgresDB)

	// Initialize business-logic services.
	authService := service.NewAuthService(authRepo)
	notesService := service.NewNotesService(notesRepo)

	gen, err := service.NewGeminiGenerator(context.Background(), options.GeminiAPIKey, options.GeminiModel)
	if err != nil {
		zapLogger.Fatal("cannot init Gemini client", zap.Error(err))
	}
	aiService := service.NewAIService(gen, notesService)

	// Create HTTP handlers for auth, notes and AI endpoints.
	authHandler := &http.AuthHandler{AuthService: authService}
	notesHandler := &http.NotesHandler{NotesService: notesService}
	aiHandler := &http.AIHandler{AIService: aiService}

	// Build the router with middleware and routes.
	router := http.NewRouter(authHandler, notesHandler, aiHandler, authService, zapLogger)

	server := &nethttp.Server{
		Addr:    options.Addr,
		Handler: router,
	}

	zapLogger.Info("starting HTTP server", zap.String("addr", options.Addr))
	if err := server.ListenAndServe(); err != nil {
		zapLogger.Fatal("failed to start HTTP server", zap.Error(err))
	}
}
