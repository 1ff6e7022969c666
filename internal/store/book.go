package store

import (
	"context"
	"database/sql"

	"github.com/google/uuid"

	"github.com/bookshelfhq/bookshelf/internal/domain"
)

// BookStore defines the interface for book data persistence.
type BookStore interface {
	// List retrieves all books in the store. Returns an empty slice when
	// the store holds no books.
	List(ctx context.Context) ([]domain.Book, error)

	// GetByID retrieves a book by its unique ID.
	// Returns ErrBookNotFound if the book does not exist.
	GetByID(ctx context.Context, id uuid.UUID) (*domain.Book, error)

	// Create saves a new book to the store.
	// Returns validation errors from the domain Book if data is invalid.
	// Returns ErrBookExists if a book with the same name and author exists.
	Create(ctx context.Context, book *domain.Book) error

	// Update overwrites an existing book's name and author. The ID is
	// immutable and never updated.
	// Returns ErrBookNotFound if the book does not exist.
	Update(ctx context.Context, book *domain.Book) error

	// Delete removes a book from the store by its ID.
	// Returns ErrBookNotFound if the book does not exist.
	Delete(ctx context.Context, id uuid.UUID) error

	// ExistsByNameAuthor reports whether a book with the given name and
	// author is already stored. Used by the spreadsheet importer to skip
	// duplicate rows.
	ExistsByNameAuthor(ctx context.Context, name, author string) (bool, error)

	// WithTx returns a new BookStore instance that uses the provided
	// transaction. The transaction is created and managed by the caller.
	WithTx(tx *sql.Tx) BookStore
}
