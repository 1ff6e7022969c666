// Package api provides HTTP handlers for the API.
package api

import (
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/bookshelfhq/bookshelf/internal/api/shared"
	"github.com/bookshelfhq/bookshelf/internal/domain"
	"github.com/bookshelfhq/bookshelf/internal/importer"
	"github.com/bookshelfhq/bookshelf/internal/platform/logger"
	"github.com/bookshelfhq/bookshelf/internal/report"
	"github.com/bookshelfhq/bookshelf/internal/service"
)

// maxUploadBytes bounds the multipart form held in memory during an
// spreadsheet upload.
const maxUploadBytes = 32 << 20

// BookHandler handles book-related HTTP requests.
type BookHandler struct {
	bookService *service.BookService
	importer    *importer.SpreadsheetImporter
	generator   *report.Generator
	logger      *slog.Logger
}

// NewBookHandler creates a new BookHandler.
func NewBookHandler(
	bookService *service.BookService,
	imp *importer.SpreadsheetImporter,
	generator *report.Generator,
	log *slog.Logger,
) *BookHandler {
	if bookService == nil {
		// ALLOW-PANIC: Constructor enforcing required dependency
		panic("bookService cannot be nil for BookHandler")
	}
	if imp == nil {
		// ALLOW-PANIC: Constructor enforcing required dependency
		panic("imp cannot be nil for BookHandler")
	}
	if generator == nil {
		// ALLOW-PANIC: Constructor enforcing required dependency
		panic("generator cannot be nil for BookHandler")
	}
	if log == nil {
		log = slog.Default()
	}

	return &BookHandler{
		bookService: bookService,
		importer:    imp,
		generator:   generator,
		logger:      log.With(slog.String("component", "book_handler")),
	}
}

// ListBooks handles GET /books requests.
func (h *BookHandler) ListBooks(w http.ResponseWriter, r *http.Request) {
	books, err := h.bookService.List(r.Context())
	if err != nil {
		shared.RespondWithErrorAndLog(w, r,
			MapErrorToStatusCode(err), GetSafeErrorMessage(err), err)
		return
	}

	shared.RespondWithJSON(w, r, http.StatusOK, booksToResponse(books))
}

// GetBook handles GET /books/{id} requests.
func (h *BookHandler) GetBook(w http.ResponseWriter, r *http.Request) {
	id, ok := h.pathID(w, r)
	if !ok {
		return
	}

	book, err := h.bookService.Get(r.Context(), id)
	if err != nil {
		shared.RespondWithErrorAndLog(w, r,
			MapErrorToStatusCode(err), GetSafeErrorMessage(err), err)
		return
	}

	shared.RespondWithJSON(w, r, http.StatusOK, bookToResponse(book))
}

// CreateBook handles POST /books requests. On success it responds with 201
// and a Location header pointing at the created resource.
func (h *BookHandler) CreateBook(w http.ResponseWriter, r *http.Request) {
	log := logger.FromContextOrDefault(r.Context(), h.logger)

	var req BookRequest
	if err := shared.DecodeJSON(r, &req); err != nil {
		shared.RespondWithError(w, r, http.StatusBadRequest, "Invalid request body")
		return
	}

	if err := shared.ValidateRequest(req); err != nil {
		shared.RespondWithError(w, r, http.StatusBadRequest, "Name and author are required")
		return
	}

	book, err := h.bookService.Create(r.Context(), req.Name, req.Author)
	if err != nil {
		shared.RespondWithErrorAndLog(w, r,
			MapErrorToStatusCode(err), GetSafeErrorMessage(err), err)
		return
	}

	log.Debug("book created", slog.String("book_id", book.ID.String()))

	w.Header().Set("Location", fmt.Sprintf("/books/%s", book.ID))
	shared.RespondWithJSON(w, r, http.StatusCreated, bookToResponse(book))
}

// UpdateBook handles PUT /books/{id} requests. There is no implicit
// creation: an unknown ID yields 404.
func (h *BookHandler) UpdateBook(w http.ResponseWriter, r *http.Request) {
	id, ok := h.pathID(w, r)
	if !ok {
		return
	}

	var req BookRequest
	if err := shared.DecodeJSON(r, &req); err != nil {
		shared.RespondWithError(w, r, http.StatusBadRequest, "Invalid request body")
		return
	}

	if err := shared.ValidateRequest(req); err != nil {
		shared.RespondWithError(w, r, http.StatusBadRequest, "Name and author are required")
		return
	}

	book, err := h.bookService.Update(r.Context(), id, req.Name, req.Author)
	if err != nil {
		shared.RespondWithErrorAndLog(w, r,
			MapErrorToStatusCode(err), GetSafeErrorMessage(err), err)
		return
	}

	shared.RespondWithJSON(w, r, http.StatusOK, bookToResponse(book))
}

// DeleteBook handles DELETE /books/{id} requests.
func (h *BookHandler) DeleteBook(w http.ResponseWriter, r *http.Request) {
	id, ok := h.pathID(w, r)
	if !ok {
		return
	}

	if err := h.bookService.Delete(r.Context(), id); err != nil {
		shared.RespondWithErrorAndLog(w, r,
			MapErrorToStatusCode(err), GetSafeErrorMessage(err), err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

// UploadSpreadsheet handles POST /books/upload-excel requests. The request
// carries a multipart "file" field holding an .xlsx spreadsheet.
func (h *BookHandler) UploadSpreadsheet(w http.ResponseWriter, r *http.Request) {
	log := logger.FromContextOrDefault(r.Context(), h.logger)

	if err := r.ParseMultipartForm(maxUploadBytes); err != nil {
		shared.RespondWithError(w, r, http.StatusBadRequest, "Invalid multipart form")
		return
	}

	file, header, err := r.FormFile("file")
	if err != nil {
		shared.RespondWithError(w, r, http.StatusBadRequest, "Missing spreadsheet file")
		return
	}
	defer func() {
		if cerr := file.Close(); cerr != nil {
			log.Warn("failed to close uploaded file", slog.String("error", cerr.Error()))
		}
	}()

	summary, err := h.importer.Import(r.Context(), header.Filename, header.Size, file)
	if err != nil {
		status := MapErrorToStatusCode(err)
		message := GetSafeErrorMessage(err)
		// Unexpected parse failures surface the underlying message so the
		// caller can see what went wrong with the file.
		if status == http.StatusInternalServerError &&
			!errors.Is(err, importer.ErrStorageNotConfigured) {
			message = fmt.Sprintf("Error importing spreadsheet: %v", err)
		}
		shared.RespondWithErrorAndLog(w, r, status, message, err)
		return
	}

	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	w.WriteHeader(http.StatusOK)
	if _, err := w.Write([]byte(summary.String())); err != nil {
		log.Error("failed to write import summary", slog.String("error", err.Error()))
	}
}

// GeneratePDF handles POST /books/generate-pdf requests. It renders the
// submitted book list as a PDF document.
func (h *BookHandler) GeneratePDF(w http.ResponseWriter, r *http.Request) {
	log := logger.FromContextOrDefault(r.Context(), h.logger)

	var req GeneratePDFRequest
	if err := shared.DecodeJSON(r, &req); err != nil {
		shared.RespondWithError(w, r, http.StatusBadRequest, "Invalid request body")
		return
	}

	if len(req.Books) == 0 {
		shared.RespondWithError(w, r, http.StatusBadRequest,
			"No books provided in the request body")
		return
	}

	if err := shared.ValidateRequest(req); err != nil {
		shared.RespondWithError(w, r, http.StatusBadRequest,
			"Every book needs a name and an author")
		return
	}

	books := make([]domain.Book, 0, len(req.Books))
	for _, b := range req.Books {
		books = append(books, domain.Book{ID: b.ID, Name: b.Name, Author: b.Author})
	}

	data, err := h.generator.Render(r.Context(), books)
	if err != nil {
		shared.RespondWithErrorAndLog(w, r,
			MapErrorToStatusCode(err), GetSafeErrorMessage(err), err)
		return
	}

	w.Header().Set("Content-Type", report.ContentType)
	w.Header().Set("Content-Disposition",
		fmt.Sprintf("attachment; filename=%q", report.Filename))
	w.Header().Set("Content-Length", strconv.Itoa(len(data)))
	w.WriteHeader(http.StatusOK)
	if _, err := w.Write(data); err != nil {
		log.Error("failed to write PDF response", slog.String("error", err.Error()))
	}
}

// pathID extracts and parses the {id} path parameter, writing a 400
// response when it is missing or malformed.
func (h *BookHandler) pathID(w http.ResponseWriter, r *http.Request) (uuid.UUID, bool) {
	pathParam := chi.URLParam(r, "id")
	if pathParam == "" {
		shared.RespondWithError(w, r, http.StatusBadRequest, "Book ID is required")
		return uuid.Nil, false
	}

	id, err := uuid.Parse(pathParam)
	if err != nil {
		shared.RespondWithError(w, r, http.StatusBadRequest, "Book ID has invalid format")
		return uuid.Nil, false
	}

	return id, true
}
