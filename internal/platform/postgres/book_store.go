package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgconn"

	"github.com/bookshelfhq/bookshelf/internal/domain"
	"github.com/bookshelfhq/bookshelf/internal/platform/logger"
	"github.com/bookshelfhq/bookshelf/internal/store"
)

// PostgreSQL error codes
const pgUniqueViolationCode = "23505"

// isUniqueViolation checks if the given error is a PostgreSQL unique
// constraint violation, such as a duplicate (name, author) pair.
func isUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == pgUniqueViolationCode
}

// PostgresBookStore implements the store.BookStore interface
// using a PostgreSQL database as the storage backend.
type PostgresBookStore struct {
	db     store.DBTX
	logger *slog.Logger
}

// NewPostgresBookStore creates a new PostgreSQL implementation of the BookStore interface.
// It accepts a database connection or transaction that should be initialized and managed by the caller.
// If logger is nil, a default logger will be used.
func NewPostgresBookStore(db store.DBTX, log *slog.Logger) *PostgresBookStore {
	if db == nil {
		panic("db cannot be nil")
	}

	if log == nil {
		log = slog.Default()
	}

	return &PostgresBookStore{
		db:     db,
		logger: log.With(slog.String("component", "book_store")),
	}
}

// Ensure PostgresBookStore implements store.BookStore interface
var _ store.BookStore = (*PostgresBookStore)(nil)

// List implements store.BookStore.List
// It retrieves all books ordered by creation time.
func (s *PostgresBookStore) List(ctx context.Context) ([]domain.Book, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	query := `
		SELECT id, name, author, created_at, updated_at
		FROM books
		ORDER BY created_at
	`

	rows, err := s.db.QueryContext(ctx, query)
	if err != nil {
		log.Error("failed to list books", slog.String("error", err.Error()))
		return nil, err
	}
	defer func() {
		if cerr := rows.Close(); cerr != nil {
			log.Warn("failed to close rows", slog.String("error", cerr.Error()))
		}
	}()

	books := make([]domain.Book, 0)
	for rows.Next() {
		var book domain.Book
		if err := rows.Scan(&book.ID, &book.Name, &book.Author, &book.CreatedAt, &book.UpdatedAt); err != nil {
			log.Error("failed to scan book row", slog.String("error", err.Error()))
			return nil, err
		}
		books = append(books, book)
	}

	if err := rows.Err(); err != nil {
		log.Error("failed while iterating book rows", slog.String("error", err.Error()))
		return nil, err
	}

	log.Debug("books listed successfully", slog.Int("count", len(books)))
	return books, nil
}

// GetByID implements store.BookStore.GetByID
// It retrieves a book by its unique ID.
// Returns store.ErrBookNotFound if the book does not exist.
func (s *PostgresBookStore) GetByID(ctx context.Context, id uuid.UUID) (*domain.Book, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	query := `
		SELECT id, name, author, created_at, updated_at
		FROM books
		WHERE id = $1
	`

	var book domain.Book
	err := s.db.QueryRowContext(ctx, query, id).Scan(
		&book.ID,
		&book.Name,
		&book.Author,
		&book.CreatedAt,
		&book.UpdatedAt,
	)

	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			log.Debug("book not found", slog.String("book_id", id.String()))
			return nil, store.ErrBookNotFound
		}
		log.Error("failed to get book by ID",
			slog.String("error", err.Error()),
			slog.String("book_id", id.String()))
		return nil, err
	}

	return &book, nil
}

// Create implements store.BookStore.Create
// It saves a new book to the database, handling domain validation.
// Returns store.ErrBookExists if the (name, author) pair is already stored.
func (s *PostgresBookStore) Create(ctx context.Context, book *domain.Book) error {
	log := logger.FromContextOrDefault(ctx, s.logger)

	if err := book.Validate(); err != nil {
		log.Warn("book validation failed during create",
			slog.String("error", err.Error()),
			slog.String("book_id", book.ID.String()))
		return fmt.Errorf("%w: %v", store.ErrInvalidEntity, err)
	}

	query := `
		INSERT INTO books (id, name, author, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5)
	`

	_, err := s.db.ExecContext(
		ctx,
		query,
		book.ID,
		book.Name,
		book.Author,
		book.CreatedAt,
		book.UpdatedAt,
	)

	if err != nil {
		if isUniqueViolation(err) {
			log.Warn("unique violation during book creation",
				slog.String("book_id", book.ID.String()),
				slog.String("name", book.Name))
			return store.ErrBookExists
		}

		log.Error("failed to create book",
			slog.String("error", err.Error()),
			slog.String("book_id", book.ID.String()))
		return err
	}

	log.Info("book created successfully",
		slog.String("book_id", book.ID.String()),
		slog.String("name", book.Name),
		slog.String("author", book.Author))
	return nil
}

// Update implements store.BookStore.Update
// It overwrites the name and author of an existing book.
// Returns store.ErrBookNotFound if the book does not exist.
func (s *PostgresBookStore) Update(ctx context.Context, book *domain.Book) error {
	log := logger.FromContextOrDefault(ctx, s.logger)

	if err := book.Validate(); err != nil {
		log.Warn("book validation failed during update",
			slog.String("error", err.Error()),
			slog.String("book_id", book.ID.String()))
		return fmt.Errorf("%w: %v", store.ErrInvalidEntity, err)
	}

	updatedAt := time.Now().UTC()

	query := `
		UPDATE books
		SET name = $1, author = $2, updated_at = $3
		WHERE id = $4
	`

	result, err := s.db.ExecContext(ctx, query, book.Name, book.Author, updatedAt, book.ID)
	if err != nil {
		if isUniqueViolation(err) {
			return store.ErrBookExists
		}
		log.Error("failed to update book",
			slog.String("error", err.Error()),
			slog.String("book_id", book.ID.String()))
		return err
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		log.Error("failed to get rows affected after update",
			slog.String("error", err.Error()),
			slog.String("book_id", book.ID.String()))
		return err
	}

	if rowsAffected == 0 {
		log.Debug("book not found during update", slog.String("book_id", book.ID.String()))
		return store.ErrBookNotFound
	}

	book.UpdatedAt = updatedAt

	log.Info("book updated successfully", slog.String("book_id", book.ID.String()))
	return nil
}

// Delete implements store.BookStore.Delete
// It removes a book from the store by its ID.
// Returns store.ErrBookNotFound if the book does not exist.
func (s *PostgresBookStore) Delete(ctx context.Context, id uuid.UUID) error {
	log := logger.FromContextOrDefault(ctx, s.logger)

	query := `
		DELETE FROM books
		WHERE id = $1
	`

	result, err := s.db.ExecContext(ctx, query, id)
	if err != nil {
		log.Error("failed to delete book",
			slog.String("error", err.Error()),
			slog.String("book_id", id.String()))
		return err
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		log.Error("failed to get rows affected after delete",
			slog.String("error", err.Error()),
			slog.String("book_id", id.String()))
		return err
	}

	if rowsAffected == 0 {
		log.Debug("book not found during delete", slog.String("book_id", id.String()))
		return store.ErrBookNotFound
	}

	log.Info("book deleted successfully", slog.String("book_id", id.String()))
	return nil
}

// ExistsByNameAuthor implements store.BookStore.ExistsByNameAuthor
// It reports whether a book with the given name and author is already stored.
func (s *PostgresBookStore) ExistsByNameAuthor(ctx context.Context, name, author string) (bool, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	query := `
		SELECT EXISTS (
			SELECT 1 FROM books WHERE name = $1 AND author = $2
		)
	`

	var exists bool
	if err := s.db.QueryRowContext(ctx, query, name, author).Scan(&exists); err != nil {
		log.Error("failed to check book existence",
			slog.String("error", err.Error()),
			slog.String("name", name),
			slog.String("author", author))
		return false, err
	}

	return exists, nil
}

// WithTx implements store.BookStore.WithTx
// It returns a new BookStore that runs all operations on the given transaction.
func (s *PostgresBookStore) WithTx(tx *sql.Tx) store.BookStore {
	return &PostgresBookStore{
		db:     tx,
		logger: s.logger,
	}
}
