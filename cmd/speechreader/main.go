package main

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gitachi143/speechReader/internal/config"
	"github.com/gitachi143/speechReader/internal/handler"
	"github.com/gitachi143/speechReader/internal/httpapi"
	"github.com/gitachi143/speechReader/internal/matcher"
	"github.com/gitachi143/speechReader/internal/repository"
	"github.com/gitachi143/speechReader/internal/repository/memory"
	"github.com/gitachi143/speechReader/internal/repository/postgres"
	"github.com/gitachi143/speechReader/internal/service"

	"github.com/golang-migrate/migrate/v4"
	postgresdb "github.com/golang-migrate/migrate/v4/database/postgres"
	_ "github.com/golang-migrate/migrate/v4/source/file"
	_ "github.com/lib/pq"
	"go.uber.org/zap"
	tele "gopkg.in/telebot.v3"
)

func main() {
	// Initialize logger
	logger, err := zap.NewProduction()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to initialize logger: %v\n", err)
		os.Exit(1)
	}
	defer logger.Sync()

	logger.Info("Starting Speech Reader")

	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		logger.Fatal("Failed to load config", zap.Error(err))
	}

	logger.Info("Configuration loaded successfully", zap.String("store", cfg.Store))

	// Initialize repositories
	var (
		sessionRepo  repository.SessionRepository
		progressRepo repository.ProgressRepository
		userRepo     repository.UserRepository
	)

	switch cfg.Store {
	case config.StoreMemory:
		store := memory.NewStore()
		sessionRepo = store
		progressRepo = store
		userRepo = store

	default:
		db, err := connectDatabase(cfg.DSN(), logger)
		if err != nil {
			logger.Fatal("Failed to connect to database", zap.Error(err))
		}
		defer db.Close()

		logger.Info("Database connection established")

		if err := runMigrations(db, logger); err != nil {
			logger.Fatal("Failed to run migrations", zap.Error(err))
		}

		logger.Info("Database migrations completed")

		sessionRepo = postgres.NewSessionRepo(db)
		progressRepo = postgres.NewProgressRepo(db)
		userRepo = postgres.NewUserRepo(db)
	}

	// Initialize services
	m := matcher.New(
		matcher.WithAcceptThreshold(cfg.Matcher.AcceptThreshold),
		matcher.WithUncertainThreshold(cfg.Matcher.UncertainThreshold),
		matcher.WithConfidenceFloor(cfg.Matcher.ConfidenceFloor),
	)
	sessionService := service.NewSessionService(sessionRepo, progressRepo, m, logger)
	statsService := service.NewStatsService(sessionRepo, progressRepo, logger)

	// Initialize HTTP API
	api := httpapi.NewServer(sessionService, statsService, logger)
	srv := &http.Server{
		Addr:         cfg.HTTPAddr,
		Handler:      api.Routes(),
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 10 * time.Second,
	}

	go func() {
		logger.Info("HTTP server listening", zap.String("addr", cfg.HTTPAddr))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Fatal("HTTP server failed", zap.Error(err))
		}
	}()

	// Initialize Telegram bot (optional front-end)
	var bot *tele.Bot
	if cfg.BotEnabled() {
		bot, err = tele.NewBot(tele.Settings{
			Token:  cfg.BotToken,
			Poller: &tele.LongPoller{Timeout: 10 * time.Second},
		})
		if err != nil {
			logger.Fatal("Failed to create bot", zap.Error(err))
		}

		authService := service.NewAuthService(userRepo, cfg.BotPassword)
		h := handler.NewHandler(bot, authService, sessionService, statsService, logger)
		h.RegisterHandlers()

		go func() {
			logger.Info("Telegram bot started")
			bot.Start()
		}()
	}

	// Wait for interrupt signal
	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)

	<-sigChan

	logger.Info("Shutdown signal received, stopping...")

	// Graceful shutdown
	if bot != nil {
		bot.Stop()
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		logger.Error("HTTP server shutdown failed", zap.Error(err))
	}

	logger.Info("Stopped gracefully")
}

// connectDatabase connects to PostgreSQL with retries
func connectDatabase(dsn string, logger *zap.Logger) (*sql.DB, error) {
	var db *sql.DB
	var err error

	maxRetries := 30
	retryDelay := 2 * time.Second

	for i := 0; i < maxRetries; i++ {
		db, err = sql.Open("postgres", dsn)
		if err != nil {
			logger.Warn("Failed to open database connection",
				zap.Int("attempt", i+1),
				zap.Error(err),
			)
			time.Sleep(retryDelay)
			continue
		}

		// Test connection
		if err = db.Ping(); err != nil {
			logger.Warn("Failed to ping database",
				zap.Int("attempt", i+1),
				zap.Error(err),
			)
			db.Close()
			time.Sleep(retryDelay)
			continue
		}

		// Connection successful
		db.SetMaxOpenConns(25)
		db.SetMaxIdleConns(5)
		db.SetConnMaxLifetime(5 * time.Minute)

		return db, nil
	}

	return nil, fmt.Errorf("failed to connect to database after %d attempts: %w", maxRetries, err)
}

// runMigrations runs database migrations
func runMigrations(db *sql.DB, logger *zap.Logger) error {
	driver, err := postgresdb.WithInstance(db, &postgresdb.Config{})
	if err != nil {
		return fmt.Errorf("failed to create migration driver: %w", err)
	}

	m, err := migrate.NewWithDatabaseInstance(
		"file://migrations",
		"postgres",
		driver,
	)
	if err != nil {
		return fmt.Errorf("failed to create migration instance: %w", err)
	}

	if err := m.Up(); err != nil {
		if errors.Is(err, migrate.ErrNoChange) {
			logger.Info("No new migrations to apply")
			return nil
		}
		return fmt.Errorf("failed to run migrations: %w", err)
	}

	logger.Info("Migrations applied successfully")
	return nil
}
