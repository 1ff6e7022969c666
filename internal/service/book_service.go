// Package service hosts the business rules sitting between the HTTP layer
// and the persistence layer.
package service

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/google/uuid"

	"github.com/bookshelfhq/bookshelf/internal/domain"
	"github.com/bookshelfhq/bookshelf/internal/platform/logger"
	"github.com/bookshelfhq/bookshelf/internal/store"
)

// BookService hosts the CRUD business rules for books. It maps between
// API-facing values and persisted entities and delegates storage to a
// BookStore.
type BookService struct {
	bookStore store.BookStore
	logger    *slog.Logger
}

// NewBookService creates a new BookService.
func NewBookService(bookStore store.BookStore, log *slog.Logger) *BookService {
	if bookStore == nil {
		// ALLOW-PANIC: Constructor enforcing required dependency
		panic("bookStore cannot be nil for BookService")
	}

	if log == nil {
		log = slog.Default()
	}

	return &BookService{
		bookStore: bookStore,
		logger:    log.With(slog.String("component", "book_service")),
	}
}

// List returns all books. The result is an empty slice when no books exist.
func (s *BookService) List(ctx context.Context) ([]domain.Book, error) {
	books, err := s.bookStore.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list books: %w", err)
	}
	return books, nil
}

// Get returns the book with the given ID.
// Returns store.ErrBookNotFound if no such book exists.
func (s *BookService) Get(ctx context.Context, id uuid.UUID) (*domain.Book, error) {
	book, err := s.bookStore.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	return book, nil
}

// Create assigns a new unique ID to a book with the given name and author,
// persists it, and returns the stored representation.
func (s *BookService) Create(ctx context.Context, name, author string) (*domain.Book, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	book, err := domain.NewBook(name, author)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", store.ErrInvalidEntity, err)
	}

	if err := s.bookStore.Create(ctx, book); err != nil {
		return nil, err
	}

	log.Debug("book created",
		slog.String("book_id", book.ID.String()),
		slog.String("name", book.Name))
	return book, nil
}

// Update overwrites the name and author of the book with the given ID and
// returns the updated representation. There is no implicit creation:
// updating an unknown ID returns store.ErrBookNotFound.
func (s *BookService) Update(ctx context.Context, id uuid.UUID, name, author string) (*domain.Book, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	book, err := s.bookStore.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if err := book.Rename(name, author); err != nil {
		return nil, fmt.Errorf("%w: %v", store.ErrInvalidEntity, err)
	}

	if err := s.bookStore.Update(ctx, book); err != nil {
		return nil, err
	}

	log.Debug("book updated", slog.String("book_id", book.ID.String()))
	return book, nil
}

// Delete removes the book with the given ID.
// Returns store.ErrBookNotFound if no such book exists.
func (s *BookService) Delete(ctx context.Context, id uuid.UUID) error {
	log := logger.FromContextOrDefault(ctx, s.logger)

	if err := s.bookStore.Delete(ctx, id); err != nil {
		return err
	}

	log.Debug("book deleted", slog.String("book_id", id.String()))
	return nil
}

// Exists reports whether a book with the given name and author is stored.
func (s *BookService) Exists(ctx context.Context, name, author string) (bool, error) {
	return s.bookStore.ExistsByNameAuthor(ctx, name, author)
}
