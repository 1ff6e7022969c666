package main

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"

	"github.com/bookshelfhq/bookshelf/internal/api"
	"github.com/bookshelfhq/bookshelf/internal/config"
	"github.com/bookshelfhq/bookshelf/internal/importer"
	"github.com/bookshelfhq/bookshelf/internal/platform/postgres"
	"github.com/bookshelfhq/bookshelf/internal/report"
	"github.com/bookshelfhq/bookshelf/internal/report/fonts"
	"github.com/bookshelfhq/bookshelf/internal/service"
	"github.com/bookshelfhq/bookshelf/internal/service/auth"
	"github.com/bookshelfhq/bookshelf/internal/store"
)

// application holds all the shared application dependencies to simplify
// management and ensure proper cleanup on shutdown.
type application struct {
	config *config.Config
	logger *slog.Logger
	db     *sql.DB

	bookStore store.BookStore

	jwtService  auth.JWTService
	bookService *service.BookService
	importer    *importer.SpreadsheetImporter
	generator   *report.Generator

	bookHandler *api.BookHandler
}

// newApplication creates a new application instance with all dependencies
// initialized. It accepts core dependencies like configuration, logger, and
// database connection that must be established before application
// initialization.
func newApplication(cfg *config.Config, logger *slog.Logger, db *sql.DB) (*application, error) {
	app := &application{
		config: cfg,
		logger: logger,
		db:     db,
	}

	var err error
	app.jwtService, err = auth.NewJWTService(cfg.Auth)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize JWT service: %w", err)
	}
	logger.Info("JWT authentication service initialized",
		"token_lifetime_minutes", cfg.Auth.TokenLifetimeMinutes)

	app.bookStore = postgres.NewPostgresBookStore(db, logger)
	app.bookService = service.NewBookService(app.bookStore, logger)
	app.importer = importer.NewSpreadsheetImporter(
		app.bookService, cfg.Storage.UploadDir, logger)
	app.generator = report.NewGenerator(
		reportResolver(cfg.Report), cfg.Report.FontFamily, logger)
	app.bookHandler = api.NewBookHandler(
		app.bookService, app.importer, app.generator, logger)

	logger.Info("Application initialized successfully")
	return app, nil
}

// reportResolver picks the typeface source for PDF reports. A configured
// font directory means TTF files on disk; otherwise the renderer's built-in
// faces are used.
func reportResolver(cfg config.ReportConfig) fonts.Resolver {
	if cfg.FontDir != "" {
		return fonts.NewDirResolver(cfg.FontDir)
	}
	return fonts.NewCoreResolver()
}

// Run starts the application server, handling lifecycle and cleanup.
func (app *application) Run(ctx context.Context) error {
	router := app.setupRouter()

	if err := app.startHTTPServer(ctx, router); err != nil {
		return fmt.Errorf("server error: %w", err)
	}

	return nil
}

// cleanup handles graceful shutdown of application resources.
func (app *application) cleanup() {
	if app.db != nil {
		if err := app.db.Close(); err != nil {
			app.logger.Error("Error closing database connection", "error", err)
		}
	}

	app.logger.Info("Application shutdown completed")
}
