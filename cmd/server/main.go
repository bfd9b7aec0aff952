package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"imovel-searcher/internal/config"
	"imovel-searcher/internal/handler"
	"imovel-searcher/internal/observability"
	"imovel-searcher/internal/repository"
	"imovel-searcher/internal/service"
)

var (
	Version   = "dev"
	BuildTime = "unknown"
	GitCommit = "unknown"
)

const shutdownTimeout = 10 * time.Second

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "fatal: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("loading config: %w", err)
	}

	logger, err := observability.NewLogger(cfg.Logging.Level, cfg.Logging.Format)
	if err != nil {
		return fmt.Errorf("creating logger: %w", err)
	}
	defer logger.Sync()

	logger.Info("starting imovel searcher",
		zap.String("version", Version),
		zap.String("build_time", BuildTime),
		zap.String("git_commit", GitCommit),
	)

	// Set Gin mode
	gin.SetMode(cfg.Server.GinMode)

	repo := repository.NewListingRepository(cfg.Listings, logger)
	logger.Info("listings repository initialized",
		zap.String("base_url", cfg.Listings.BaseURL),
		zap.Float64("rate_limit", cfg.Listings.RateLimit),
	)

	aiClient := service.NewCompletionClient(&cfg.OpenAI)
	if aiClient != nil {
		logger.Info("OpenAI client initialized",
			zap.String("api_base", cfg.OpenAI.APIBase),
			zap.String("chat_model", cfg.OpenAI.ChatModel),
			zap.Float64("chat_temperature", cfg.OpenAI.ChatTemperature),
		)
	} else {
		logger.Warn("OpenAI is disabled, criteria will be extracted heuristically (set OPENAI_API_KEY to enable)")
	}

	// Initialize services
	extractor := service.NewCriteriaExtractor(aiClient, logger)
	searchService := service.NewSearchService(repo, extractor, service.SearchOptions{
		MaxPages:    cfg.Search.MaxPages,
		PerPage:     cfg.Search.PerPage,
		ResultLimit: cfg.Search.ResultLimit,
	}, logger)

	router := handler.NewRouter(
		handler.NewSearchHandler(searchService, logger),
		handler.NewListingsHandler(repo, logger),
		cfg.Server.AllowedOrigins,
		handler.BuildInfo{Version: Version, BuildTime: BuildTime, GitCommit: GitCommit},
		logger,
	)

	addr := cfg.Addr()
	server := &http.Server{
		Addr:              addr,
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
		IdleTimeout:       120 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		logger.Info("http server starting", zap.String("addr", addr))
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- fmt.Errorf("http server: %w", err)
		}
	}()

	// Wait for interrupt signal
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	select {
	case sig := <-quit:
		logger.Info("shutdown signal received", zap.String("signal", sig.String()))
	case err := <-errCh:
		return err
	}

	ctx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := server.Shutdown(ctx); err != nil {
		logger.Error("http server shutdown error", zap.Error(err))
	}

	logger.Info("server stopped")
	return nil
}
