// Package main provides the entry point for the PairForge server
package main

import (
	"context"
	"os"
	"os/signal"
	"strconv"
	"syscall"

	"github.com/Caia-Tech/pairforge/internal/api"
	"github.com/Caia-Tech/pairforge/internal/presentation"
	"github.com/Caia-Tech/pairforge/internal/storage"
	"github.com/Caia-Tech/pairforge/pkg/logging"
	"github.com/rs/zerolog/log"
)

func main() {
	logConfig := logging.DefaultLogConfig()
	logConfig.Level = getEnv("LOG_LEVEL", logConfig.Level)
	if err := logging.SetupLogger(logConfig); err != nil {
		log.Fatal().Err(err).Msg("Failed to set up logging")
	}

	metricsCollector := storage.NewSimpleMetricsCollector()

	// Backend selection: git persists the dataset with full history,
	// memory is for development and testing.
	var (
		store storage.Store
		err   error
	)
	backend := getEnv("PAIRFORGE_BACKEND", "git")
	switch backend {
	case "git":
		repoPath := getEnv("PAIRFORGE_REPO_PATH", "./data/repo")
		store, err = storage.NewGitStore(repoPath, metricsCollector)
		if err != nil {
			log.Fatal().Err(err).Str("repo_path", repoPath).Msg("Failed to initialize git store")
		}
	case "memory":
		store = storage.NewMemoryStore(metricsCollector)
	default:
		log.Fatal().Str("backend", backend).Msg("Unknown storage backend (expected git or memory)")
	}

	if getEnv("PAIRFORGE_SEED", "false") == "true" {
		seeded, err := storage.SeedSampleData(context.Background(), store)
		if err != nil {
			log.Fatal().Err(err).Msg("Failed to seed sample data")
		}
		if seeded > 0 {
			log.Info().Int("pairs", seeded).Msg("Seeded sample dataset")
		}
	}

	app := api.NewApp(getEnv("CORS_ORIGINS", "*"))
	api.SetupRoutes(app, api.NewHandlers(store), api.NewMetricsHandler(metricsCollector))

	// Optional read-only reporting API on a separate port.
	if getEnv("PAIRFORGE_REPORT_API", "false") == "true" {
		reportConfig := presentation.DefaultAPIConfig()
		if port, err := strconv.Atoi(getEnv("PAIRFORGE_REPORT_PORT", "")); err == nil {
			reportConfig.Port = port
		}
		reportAPI := presentation.NewAPI(presentation.NewRenderer(nil), store, reportConfig)
		go func() {
			if err := reportAPI.Start(); err != nil {
				log.Error().Err(err).Msg("Presentation API stopped")
			}
		}()
	}

	// Graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	go func() {
		<-quit
		log.Info().Msg("Shutting down server...")
		if err := app.Shutdown(); err != nil {
			log.Error().Err(err).Msg("Server shutdown error")
		}
	}()

	port := getEnv("PORT", "8080")
	log.Info().Str("port", port).Str("backend", backend).Msg("Starting PairForge server")
	if err := app.Listen(":" + port); err != nil {
		log.Fatal().Err(err).Msg("Failed to start server")
	}
}

// getEnv retrieves an environment variable with a default value
func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}
