// Package main implements the entry point for the lexitrack daemon, which
// tracks personal vocabulary and schedules spaced repetition reviews.
package main

import (
	"context"
	"fmt"
	"io"
	"log"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/joho/godotenv"
	"github.com/spf13/pflag"

	"github.com/lexitrack/lexitrack/internal/config"
	"github.com/lexitrack/lexitrack/internal/domain/schedule"
	"github.com/lexitrack/lexitrack/internal/events"
	"github.com/lexitrack/lexitrack/internal/history"
	"github.com/lexitrack/lexitrack/internal/platform/azuretranslator"
	"github.com/lexitrack/lexitrack/internal/platform/gemini"
	"github.com/lexitrack/lexitrack/internal/platform/logger"
	"github.com/lexitrack/lexitrack/internal/platform/sqlite"
	"github.com/lexitrack/lexitrack/internal/repository"
	"github.com/lexitrack/lexitrack/internal/service"
	"github.com/lexitrack/lexitrack/internal/story"
	"github.com/lexitrack/lexitrack/internal/translation"
)

func main() {
	configPath := pflag.String("config", "", "path to config file (default: lexitrack.yaml in the working directory)")
	dbPath := pflag.String("db", "", "override the database file path")
	pflag.Parse()

	// A local .env is a convenience for development; its absence is fine.
	_ = godotenv.Load()

	if err := run(*configPath, *dbPath); err != nil {
		log.Fatalf("lexitrack: %v", err)
	}
}

func run(configPath, dbPath string) error {
	cfg, err := config.Load(configPath)
	if err != nil {
		return fmt.Errorf("failed to load configuration: %w", err)
	}
	if dbPath != "" {
		cfg.Database.Path = dbPath
	}

	appLogger, err := logger.Setup(cfg.Logging)
	if err != nil {
		return fmt.Errorf("failed to set up logger: %w", err)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()
	ctx = logger.WithLogger(ctx, appLogger)

	db, err := sqlite.Open(cfg.Database.Path, appLogger)
	if err != nil {
		return fmt.Errorf("failed to open database: %w", err)
	}
	defer func() {
		if err := db.Close(); err != nil {
			appLogger.Error("failed to close database", "error", err)
		}
	}()

	hist := history.New(db, appLogger)
	if err := hist.Load(ctx); err != nil {
		return fmt.Errorf("failed to load study history: %w", err)
	}

	repo := repository.NewItemRepository(db, appLogger)
	if err := repo.Refresh(ctx); err != nil {
		return fmt.Errorf("failed to prime item repository: %w", err)
	}

	coalescer := events.NewCoalescer(db.Changes(), cfg.Repository.DebounceWindow(), func() {
		if err := repo.Refresh(context.Background()); err != nil {
			appLogger.Warn("repository refresh failed", "error", err)
		}
	}, appLogger)
	coalescer.Start()
	defer coalescer.Stop()

	itemService := service.NewItemService(
		db,
		repo,
		schedule.NewEngine(),
		hist,
		cfg.Repository.DeleteGrace(),
		appLogger,
	)

	translator := azuretranslator.New(cfg.Translation, appLogger)

	var storyGenerator story.Generator
	if cfg.Story.GeminiAPIKey != "" {
		storyGenerator, err = gemini.NewStoryGenerator(ctx, cfg.Story, appLogger)
		if err != nil {
			return fmt.Errorf("failed to set up story generator: %w", err)
		}
	} else {
		appLogger.Info("story generation disabled: no Gemini API key configured")
	}

	storyService := service.NewStoryService(db, repo, storyGenerator, appLogger)

	app := &application{
		logger:     appLogger,
		items:      itemService,
		repo:       repo,
		history:    hist,
		translator: translator,
		stories:    storyService,
		out:        os.Stdout,
	}

	stats, err := app.items.Stats(ctx)
	if err != nil {
		return fmt.Errorf("failed to compute startup stats: %w", err)
	}
	appLogger.Info("lexitrack started",
		"database", cfg.Database.Path,
		"items", stats.TotalItems,
		"due", stats.DueItems,
		"streak", stats.CurrentStreak,
		"debounce", cfg.Repository.DebounceWindow(),
	)

	err = app.repl(ctx, os.Stdin)
	appLogger.Info("shutting down")
	return err
}

// application bundles the wired services for the interactive loop.
type application struct {
	logger     *slog.Logger
	items      *service.ItemService
	repo       *repository.ItemRepository
	history    *history.History
	translator translation.Translator
	stories    *service.StoryService
	out        io.Writer
}
