// Package main boots the ZetaZen API server and wires application dependencies.
package main

import (
	"context"
	"errors"
	"log"
	"log/slog"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/easeaico/zetazen/internal/auth"
	"github.com/easeaico/zetazen/internal/cache"
	"github.com/easeaico/zetazen/internal/chat"
	"github.com/easeaico/zetazen/internal/config"
	"github.com/easeaico/zetazen/internal/http/handlers"
	httpmiddleware "github.com/easeaico/zetazen/internal/http/middleware"
	"github.com/easeaico/zetazen/internal/http/router"
	"github.com/easeaico/zetazen/internal/models"
	"github.com/easeaico/zetazen/internal/mood"
	"github.com/easeaico/zetazen/internal/observability/metrics"
	"github.com/easeaico/zetazen/internal/prompt"
	"github.com/easeaico/zetazen/internal/session"
	"github.com/easeaico/zetazen/internal/storage"
	"github.com/easeaico/zetazen/pkg/logging"
)

func main() {
	_ = godotenv.Load()

	cfg := config.Load()
	if err := cfg.Validate(); err != nil {
		log.Fatalf("invalid configuration: %v", err)
	}

	logger := logging.New(cfg.LogLevel)
	slog.SetDefault(logger.Logger)
	slog.Info("configuration loaded", "env", cfg.Env, "llm_provider", cfg.LLMProvider, "llm_model", cfg.LLMModel)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	store, err := storage.NewStore(ctx, cfg.DatabaseURL)
	if err != nil {
		log.Fatalf("failed to connect to database: %v", err)
	}
	defer store.Close()

	var sessionCache session.Cache
	if client := cache.NewRedisClient(ctx, cfg.RedisAddr, cfg.RedisPassword); client != nil {
		defer func() { _ = client.Close() }()
		sessionCache = cache.NewSessionCache(client, cfg.SessionCacheTTL)
		slog.Info("session cache enabled", "addr", cfg.RedisAddr)
	}

	llm, err := models.New(ctx, models.Options{
		Provider:         cfg.LLMProvider,
		Model:            cfg.LLMModel,
		GoogleAPIKey:     cfg.GoogleAPIKey,
		OpenRouterAPIKey: cfg.OpenRouterAPIKey,
		XAIAPIKey:        cfg.XAIAPIKey,
	})
	if err != nil {
		log.Fatalf("failed to initialize model: %v", err)
	}

	chatMetrics := metrics.NewChatMetrics(nil)
	sessionService := session.NewService(store.Sessions, sessionCache)
	moodService := mood.NewService(store.MoodLogs)
	authService := auth.NewService(store.Users, cfg.JWTSecret, cfg.TokenTTL)
	chatService := chat.NewService(chat.Deps{
		LLM:          llm,
		Builder:      prompt.NewBuilder(cfg.HistoryLimit),
		Classifier:   mood.NewDefaultClassifier(),
		Messages:     store.Messages,
		Moods:        moodService,
		Metrics:      chatMetrics,
		HistoryLimit: cfg.HistoryLimit,
	})

	limiter := httpmiddleware.NewRateLimiter(cfg.RateLimitRPS, cfg.RateLimitBurst)
	go limiter.Run(ctx)

	handler := router.New(&router.Config{
		Logger:             logger,
		Sessions:           handlers.NewSessionHandler(sessionService, logger),
		Messages:           handlers.NewMessageHandler(chatService, logger),
		Moods:              handlers.NewMoodHandler(moodService, logger),
		Chat:               handlers.NewChatHandler(chatService, logger),
		Auth:               handlers.NewAuthHandler(authService, logger),
		SessionResolver:    sessionService,
		TokenParser:        authService,
		DB:                 store,
		MetricsHandler:     promhttp.Handler(),
		RateLimiter:        limiter,
		CORSAllowedOrigins: cfg.CORSAllowedOrigins,
	})

	srv := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           handler,
		ReadHeaderTimeout: 10 * time.Second,
		ReadTimeout:       30 * time.Second,
		WriteTimeout:      60 * time.Second,
		IdleTimeout:       120 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		slog.Info("http server starting", "addr", srv.Addr)
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatalf("http server failed: %v", err)
		}
	case <-ctx.Done():
		slog.Info("shutting down")
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		slog.Error("graceful shutdown failed", "error", err.Error())
	}
	slog.Info("server shutdown complete")
}
