package main

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"

	apimiddleware "github.com/bookshelfhq/bookshelf/internal/api/middleware"
	"github.com/bookshelfhq/bookshelf/internal/service/auth"
)

// setupRouter creates and configures the application router with all routes
// and middleware.
func (app *application) setupRouter() http.Handler {
	r := chi.NewRouter()

	r.Use(chimiddleware.RequestID)
	r.Use(chimiddleware.RealIP)
	r.Use(chimiddleware.Recoverer)
	r.Use(apimiddleware.TraceMiddleware)

	authMiddleware := apimiddleware.NewAuthMiddleware(app.jwtService)

	r.Route("/books", func(r chi.Router) {
		r.Use(authMiddleware.Authenticate)

		r.Get("/", app.bookHandler.ListBooks)
		r.Post("/", app.bookHandler.CreateBook)
		r.Get("/{id}", app.bookHandler.GetBook)
		r.Put("/{id}", app.bookHandler.UpdateBook)

		// Deleting books is restricted to administrators.
		r.With(authMiddleware.RequireRole(auth.RoleAdmin)).
			Delete("/{id}", app.bookHandler.DeleteBook)

		r.Post("/upload-excel", app.bookHandler.UploadSpreadsheet)
		r.Post("/generate-pdf", app.bookHandler.GeneratePDF)
	})

	// Health check endpoint (public)
	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		if _, err := w.Write([]byte("OK")); err != nil {
			app.logger.Error("Failed to write health check response", "error", err)
		}
	})

	return r
}
