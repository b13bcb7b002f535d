package main

import (
	"context"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/vaanilabs/docvani/internal/analyze"
	"github.com/vaanilabs/docvani/internal/api"
	"github.com/vaanilabs/docvani/internal/config"
	"github.com/vaanilabs/docvani/internal/intent"
	"github.com/vaanilabs/docvani/internal/pipeline"
	"github.com/vaanilabs/docvani/internal/score"
)

func main() {
	log := slog.New(slog.NewJSONHandler(os.Stdout, nil))

	cfg, err := config.Load()
	if err != nil {
		log.Error("failed to load configuration", "error", err)
		os.Exit(1)
	}
	if err := cfg.Validate(); err != nil {
		log.Error("invalid configuration", "error", err)
		os.Exit(1)
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// Build the intent lexicon: embedded defaults, or an external
	// table when one is configured.
	lexicon := intent.DefaultLexicon()
	if cfg.LexiconPath != "" {
		lexicon, err = intent.LoadLexicon(cfg.LexiconPath)
		if err != nil {
			log.Error("failed to load lexicon", "path", cfg.LexiconPath, "error", err)
			os.Exit(1)
		}
		log.Info("loaded lexicon override", "path", cfg.LexiconPath)
	}
	classifier, err := intent.NewClassifier(lexicon)
	if err != nil {
		log.Error("failed to build classifier", "error", err)
		os.Exit(1)
	}

	// Initialize pipeline.
	analysis := analyze.New(classifier, score.DefaultWeights())
	orch := pipeline.NewOrchestrator(cfg, analysis, log)
	orch.Start(ctx)

	// Initialize HTTP server.
	srv := api.NewServer(orch, analysis, log, cfg)

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
	}()

	log.Info("starting docvani", "port", cfg.Port)
	if err := httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		log.Error("server error", "error", err)
		os.Exit(1)
	}
}
