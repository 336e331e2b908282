package main

import (
	"context"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/catalogkit/lcsh-assistant/internal/api"
	"github.com/catalogkit/lcsh-assistant/internal/config"
	"github.com/catalogkit/lcsh-assistant/internal/gemini"
	"github.com/catalogkit/lcsh-assistant/internal/lcsh"
	"github.com/catalogkit/lcsh-assistant/internal/pipeline"
)

func main() {
	log := slog.New(slog.NewJSONHandler(os.Stdout, nil))

	cfg := config.Load()
	if err := cfg.Validate(); err != nil {
		log.Error("invalid configuration", "error", err)
		os.Exit(1)
	}

	// Initialize clients.
	authority := lcsh.NewClient(cfg.LCSHBaseURL)
	generator := gemini.NewGenerator(cfg.GeminiModel)

	// Initialize pipeline.
	p := pipeline.New(generator, authority, log, cfg.GeminiAPIKey, cfg.PDFFallbackPdftotext)

	// Initialize HTTP server.
	srv := api.NewServer(p, generator, log, cfg)

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

		shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer shutdownCancel()
		httpServer.Shutdown(shutdownCtx)

		authority.Close()
	}()

	log.Info("starting lcsh-assistant", "port", cfg.Port, "model", generator.Model())
	if err := httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		log.Error("server error", "error", err)
		os.Exit(1)
	}
}
