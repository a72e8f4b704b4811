package main

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/joho/godotenv"

	"github.com/flavorfolio/recipe-extractor/internal/common"
	"github.com/flavorfolio/recipe-extractor/internal/export"
	"github.com/flavorfolio/recipe-extractor/internal/extract"
	"github.com/flavorfolio/recipe-extractor/internal/history"
	"github.com/flavorfolio/recipe-extractor/internal/llm/openai"
	"github.com/flavorfolio/recipe-extractor/internal/media"
	"github.com/flavorfolio/recipe-extractor/internal/server"
)

func main() {
	// .env is optional; real deployments set the environment directly
	_ = godotenv.Load()

	logger := slog.New(slog.NewJSONHandler(os.Stdout, nil))
	slog.SetDefault(logger)

	cfg := common.LoadConfig()
	if err := cfg.Validate(); err != nil {
		logger.Error("config invalid", "error", err)
		os.Exit(1)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	ai := openai.NewClient(openai.Config{
		APIKey:            cfg.LLM.APIKey,
		BaseURL:           cfg.LLM.BaseURL,
		VisionModel:       cfg.LLM.VisionModel,
		TextModel:         cfg.LLM.TextModel,
		TranscribeModel:   cfg.Transcribe.Model,
		Temperature:       cfg.LLM.Temperature,
		MaxTokens:         cfg.LLM.MaxTokens,
		Timeout:           cfg.LLM.Timeout,
		TranscribeTimeout: cfg.Transcribe.Timeout,
	}, logger)

	// Optional extraction-history store
	var (
		store    *history.Store
		exporter *export.Service
		recorder extract.Recorder
	)
	if cfg.Database.DSN != "" {
		var err error
		store, err = history.Open(ctx, cfg.Database, logger)
		if err != nil {
			logger.Error("history store unavailable", "error", err)
			os.Exit(1)
		}
		defer store.Close()
		if err := store.HealthCheck(ctx, cfg.Database.HealthTimeout); err != nil {
			logger.Error("history store health failed", "error", err)
			os.Exit(1)
		}
		exporter = export.NewService(store, logger)
		recorder = store
	}

	pipeline := extract.NewPipeline(
		media.NewResolver(cfg.Media.ResolveTimeout, logger),
		media.NewDescriber(cfg.Media.OEmbedTimeout, logger),
		media.NewBrowser(cfg.Media.RenderTimeout, logger),
		media.NewDownloader(cfg.Media.DownloadTimeout, cfg.Media.MaxDownloadBytes, logger),
		ai,
		ai,
		recorder,
		logger,
	)

	router := server.NewRouter(&server.Handlers{
		Pipeline: pipeline,
		History:  store,
		Exporter: exporter,
		Logger:   logger,
	})

	srv := &http.Server{
		Addr:    cfg.Server.HTTPAddr,
		Handler: router,
	}

	go func() {
		logger.Info("http serving", "addr", cfg.Server.HTTPAddr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Error("http serve failed", "error", err)
			stop()
		}
	}()

	<-ctx.Done()
	logger.Info("shutting down...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Error("shutdown error", "error", err)
	}
	logger.Info("stopped")
}
