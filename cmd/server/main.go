// Package main implements the entry point for the MindMend API server,
// which guides users through identifying cognitive distortions in automatic
// thoughts and reframing them, with LLM assistance when configured.
package main

import (
	"context"
	"errors"
	"fmt"
	"log"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"

	"github.com/curiouscoder-cmd/mindmend-api/internal/api"
	"github.com/curiouscoder-cmd/mindmend-api/internal/classify"
	"github.com/curiouscoder-cmd/mindmend-api/internal/config"
	"github.com/curiouscoder-cmd/mindmend-api/internal/generation"
	"github.com/curiouscoder-cmd/mindmend-api/internal/platform/gemini"
	"github.com/curiouscoder-cmd/mindmend-api/internal/platform/logger"
	"github.com/curiouscoder-cmd/mindmend-api/internal/platform/sqlite"
	"github.com/curiouscoder-cmd/mindmend-api/internal/service"
	"github.com/curiouscoder-cmd/mindmend-api/internal/store"
)

func main() {
	if err := run(); err != nil {
		log.Fatalf("server failed: %v", err)
	}
}

// run wires the application and blocks until shutdown. Split from main so
// deferred cleanup runs before the process exits.
func run() error {
	// Missing .env is fine; real deployments configure via environment.
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("failed to load configuration: %w", err)
	}

	appLogger := logger.Setup(cfg.Server)
	appLogger.Info("configuration loaded",
		"port", cfg.Server.Port,
		"log_level", cfg.Server.LogLevel,
		"store_path", cfg.Store.Path,
		"remote_llm_configured", cfg.LLM.GeminiAPIKey != "")

	sessionStore, cleanup, err := openStore(cfg.Store, appLogger)
	if err != nil {
		return fmt.Errorf("failed to open session store: %w", err)
	}
	defer cleanup()

	manager, err := buildSessionManager(cfg, sessionStore, appLogger)
	if err != nil {
		return fmt.Errorf("failed to build session manager: %w", err)
	}

	router := api.NewRouter(
		api.NewSessionHandler(manager),
		api.NewHistoryHandler(sessionStore),
	)

	return serve(cfg.Server, router, appLogger)
}

// openStore selects the SQLite store when a path is configured and the
// in-memory store otherwise. The returned cleanup is safe to call once.
func openStore(cfg config.StoreConfig, appLogger *slog.Logger) (store.SessionStore, func(), error) {
	if cfg.Path == "" {
		appLogger.Info("no store path configured, sessions will not survive restarts")
		return store.NewMemoryStore(cfg.MaxSessions), func() {}, nil
	}

	s, err := sqlite.Open(cfg.Path, cfg.MaxSessions)
	if err != nil {
		return nil, nil, err
	}
	cleanup := func() {
		if err := s.Close(); err != nil {
			appLogger.Error("failed to close session store", "error", err)
		}
	}
	return s, cleanup, nil
}

// buildSessionManager assembles the classification and generation pipeline.
// Without an API key every stage runs on the deterministic local fallbacks.
func buildSessionManager(cfg *config.Config, sessionStore store.SessionStore, appLogger *slog.Logger) (*service.SessionManager, error) {
	var (
		remoteClassifier  classify.Classifier
		remoteQuestions   generation.QuestionGenerator
		remoteSynthesizer generation.Synthesizer
		remoteEvaluator   generation.Evaluator
	)

	if cfg.LLM.GeminiAPIKey != "" {
		client, err := gemini.NewClient(context.Background(), appLogger, cfg.LLM)
		if err != nil {
			return nil, fmt.Errorf("failed to create LLM client: %w", err)
		}
		remoteClassifier = gemini.NewClassifier(client)
		remoteQuestions = gemini.NewQuestionGenerator(client)
		remoteSynthesizer = gemini.NewSynthesizer(client)
		remoteEvaluator = gemini.NewEvaluator(client)
		appLogger.Info("remote LLM pipeline enabled", "model", cfg.LLM.ModelName)
	} else {
		appLogger.Warn("no Gemini API key configured, running fully on local fallbacks")
	}

	return service.NewSessionManager(service.ManagerConfig{
		Classifier:  classify.NewCompositeClassifier(remoteClassifier, nil, appLogger),
		Questions:   generation.NewFallbackQuestionGenerator(remoteQuestions, appLogger),
		Synthesizer: generation.NewFallbackSynthesizer(remoteSynthesizer, appLogger),
		Evaluator:   generation.NewFallbackEvaluator(remoteEvaluator, appLogger),
		Store:       sessionStore,
		Logger:      appLogger,
	})
}

// serve runs the HTTP server until SIGINT/SIGTERM, then shuts down
// gracefully within the configured timeout.
func serve(cfg config.ServerConfig, handler http.Handler, appLogger *slog.Logger) error {
	server := &http.Server{
		Addr:    fmt.Sprintf(":%d", cfg.Port),
		Handler: handler,
	}

	errCh := make(chan error, 1)
	go func() {
		appLogger.Info("starting server", "addr", server.Addr)
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
	}()

	shutdownCh := make(chan os.Signal, 1)
	signal.Notify(shutdownCh, syscall.SIGINT, syscall.SIGTERM)

	select {
	case err := <-errCh:
		return fmt.Errorf("server failed: %w", err)
	case sig := <-shutdownCh:
		appLogger.Info("shutting down", "signal", sig.String())
	}

	shutdownCtx, cancel := context.WithTimeout(
		context.Background(),
		time.Duration(cfg.ShutdownTimeoutSeconds)*time.Second,
	)
	defer cancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("server shutdown failed: %w", err)
	}

	appLogger.Info("server shutdown completed")
	return nil
}
