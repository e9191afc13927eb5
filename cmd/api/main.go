package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"log/slog"

	"bookreview/internal/auth"
	"bookreview/internal/books"
	"bookreview/internal/cache"
	"bookreview/internal/config"
	"bookreview/internal/favorites"
	transporthttp "bookreview/internal/http"
	"bookreview/internal/lookup"
	"bookreview/internal/metrics"
	"bookreview/internal/moderation"
	"bookreview/internal/platform/database"
	"bookreview/internal/platform/logging"
	"bookreview/internal/platform/migrate"
	"bookreview/internal/reviews"
	"bookreview/internal/summary"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	cfg, err := config.Load()
	if err != nil {
		panic(err)
	}

	logger := logging.New(cfg.LogLevel, cfg.Environment)

	userRepo, bookRepo, reviewRepo, favoriteRepo, cleanup, err := buildRepositories(ctx, cfg, logger)
	if err != nil {
		logger.Error("failed to initialize repository", "error", err)
		os.Exit(1)
	}
	if cleanup != nil {
		defer cleanup()
	}

	var google *auth.GoogleAuthenticator
	if cfg.GoogleEnabled() {
		google, err = auth.NewGoogleAuthenticator(ctx, cfg.GoogleClientID, cfg.GoogleClientSecret, cfg.GoogleRedirectURL)
		if err != nil {
			logger.Error("failed to initialize google authentication", "error", err)
			os.Exit(1)
		}
		logger.Info("google login enabled")
	} else {
		logger.Warn("google login disabled; set GOOGLE_CLIENT_ID and GOOGLE_CLIENT_SECRET to enable it")
	}

	hasher := auth.NewPasswordHasher(cfg.BcryptCost)
	tokens := auth.NewTokenManager(cfg.SecretKey, cfg.TokenTTL)

	var external auth.ExternalValidator
	if google != nil {
		external = google
	}
	authSvc := auth.NewService(userRepo, hasher, tokens, external)

	bookSvc := books.NewService(bookRepo)
	reviewSvc := reviews.NewService(reviewRepo, bookSvc, moderation.NewFilter(nil))
	favoriteSvc := favorites.NewService(favoriteRepo, bookSvc)

	lookupClient := &http.Client{Timeout: 12 * time.Second}
	lookupSvc := lookup.NewService(lookupClient, lookup.WithAPIKey(cfg.GoogleBooksAPIKey))

	responseCache := cache.New()
	defer responseCache.Close()

	deps := transporthttp.Deps{
		Config:     cfg,
		Logger:     logger,
		Auth:       authSvc,
		Books:      bookSvc,
		Reviews:    reviewSvc,
		Favorites:  favoriteSvc,
		Lookup:     lookupSvc,
		Summarizer: summary.New(3),
		Cache:      responseCache,
		Metrics:    metrics.NewCollector(),
	}
	if google != nil {
		deps.Google = google
	}
	router := transporthttp.NewRouter(deps)

	srv := &http.Server{
		Addr:              cfg.HTTPAddress(),
		Handler:           router,
		ReadHeaderTimeout: 5 * time.Second,
		ReadTimeout:       15 * time.Second,
		WriteTimeout:      15 * time.Second,
		IdleTimeout:       60 * time.Second,
		MaxHeaderBytes:    http.DefaultMaxHeaderBytes,
	}

	go func() {
		logger.Info("BookReview API listening", "addr", srv.Addr, "store", cfg.DataStore)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Error("http server error", "error", err)
		}
	}()

	<-ctx.Done()
	logger.Info("shutdown signal received")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Error("graceful shutdown failed", "error", err)
	}
}

func buildRepositories(ctx context.Context, cfg config.Config, logger *slog.Logger) (auth.Repository, books.Repository, reviews.Repository, favorites.Repository, func(), error) {
	if cfg.UseInMemoryStore() {
		logger.Info("using in-memory repositories")
		bookRepo := books.NewInMemoryRepository(nil)
		return auth.NewInMemoryRepository(),
			bookRepo,
			reviews.NewInMemoryRepository(),
			favorites.NewInMemoryRepository(bookRepo),
			nil, nil
	}

	db, err := database.NewPostgres(ctx, cfg.DatabaseURL)
	if err != nil {
		return nil, nil, nil, nil, nil, err
	}

	cleanup := func() {
		_ = db.Close()
	}

	if err := migrate.Apply(ctx, db, logger); err != nil {
		cleanup()
		return nil, nil, nil, nil, nil, err
	}

	logger.Info("connected to postgres")
	return auth.NewPostgresRepository(db),
		books.NewPostgresRepository(db),
		reviews.NewPostgresRepository(db),
		favorites.NewPostgresRepository(db),
		cleanup, nil
}
