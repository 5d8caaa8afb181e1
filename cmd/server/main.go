package main

import (
	"context"
	"database/sql"
	"log/slog"
	"maps"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"

	_ "github.com/jackc/pgx/v5/stdlib"

	"github.com/nmodha/docvani/internal/api"
	"github.com/nmodha/docvani/internal/config"
	"github.com/nmodha/docvani/internal/doctree"
	"github.com/nmodha/docvani/internal/pipeline"
	"github.com/nmodha/docvani/internal/speech"
	"github.com/nmodha/docvani/internal/store"
	"github.com/nmodha/docvani/internal/translate"
	"github.com/nmodha/docvani/migrations"
)

func main() {
	_ = godotenv.Load()

	log := slog.New(slog.NewJSONHandler(os.Stdout, nil))

	cfg := config.Load()
	if err := cfg.Validate(); err != nil {
		log.Error("invalid configuration", "error", err)
		os.Exit(1)
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// File records database.
	db, err := sql.Open("pgx", cfg.DatabaseURL)
	if err != nil {
		log.Error("failed to open database", "error", err)
		os.Exit(1)
	}
	pingCtx, pingCancel := context.WithTimeout(ctx, 5*time.Second)
	err = db.PingContext(pingCtx)
	pingCancel()
	if err != nil {
		log.Error("database unreachable", "error", err)
		os.Exit(1)
	}
	if err := store.RunMigrations(ctx, db, migrations.Files); err != nil {
		log.Error("failed to run migrations", "error", err)
		os.Exit(1)
	}

	// Audio blob storage.
	s3Ctx, s3Cancel := context.WithTimeout(ctx, 10*time.Second)
	blob, err := store.NewS3Blob(s3Ctx, store.S3Options{
		Endpoint:  cfg.S3Endpoint,
		AccessKey: cfg.S3AccessKey,
		SecretKey: cfg.S3SecretKey,
		Bucket:    cfg.S3Bucket,
		Region:    cfg.S3Region,
		UseSSL:    cfg.S3UseSSL,
	})
	s3Cancel()
	if err != nil {
		log.Error("failed to init blob storage", "error", err)
		os.Exit(1)
	}
	artifacts := store.NewClient(blob, store.NewFileRepository(db), cfg.AudioPrefix, log)

	// External service clients.
	groq := translate.NewGroqClient(translate.GroqOptions{
		APIKey:  cfg.GroqAPIKey,
		BaseURL: cfg.GroqBaseURL,
		Model:   cfg.GroqModel,
		Logger:  log,
	})
	azure := speech.NewAzureClient(log, cfg.SpeechKey, cfg.SpeechRegion, &speech.AzureOptions{
		Voices: configuredVoices(cfg),
	})

	// Pipeline stages and the job queue around them.
	runner := pipeline.NewRunner(
		translate.NewAnnotator(groq, log),
		speech.NewAnnotator(azure, artifacts, log),
		artifacts,
		cfg.OutputDir,
		log,
	)
	orch := pipeline.NewOrchestrator(cfg, runner, log)
	orch.Start(ctx)

	// HTTP server.
	srv := api.NewServer(runner, orch, groq, artifacts, log, cfg)

	httpServer := &http.Server{
		Addr:         ":" + cfg.Port,
		Handler:      srv,
		ReadTimeout:  30 * time.Second,
		WriteTimeout: 120 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	// Graceful shutdown.
	go func() {
		sigCh := make(chan os.Signal, 1)
		signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
		<-sigCh
		log.Info("shutting down...")

		orch.Stop()

		shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer shutdownCancel()
		httpServer.Shutdown(shutdownCtx)

		db.Close()
	}()

	log.Info("starting docvani", "port", cfg.Port)
	if err := httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		log.Error("server error", "error", err)
		os.Exit(1)
	}
}

// configuredVoices applies per-language voice overrides from the
// environment on top of the defaults.
func configuredVoices(cfg config.Config) map[doctree.Language]string {
	voices := maps.Clone(speech.DefaultVoices)
	if cfg.VoiceEN != "" {
		voices[doctree.English] = cfg.VoiceEN
	}
	if cfg.VoiceHI != "" {
		voices[doctree.Hindi] = cfg.VoiceHI
	}
	if cfg.VoiceGU != "" {
		voices[doctree.Gujarati] = cfg.VoiceGU
	}
	return voices
}
