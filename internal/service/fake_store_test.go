package service

import (
	"context"
	"database/sql"
	"sync"

	"github.com/google/uuid"

	"github.com/bookshelfhq/bookshelf/internal/domain"
	"github.com/bookshelfhq/bookshelf/internal/store"
)

// fakeBookStore is an in-memory BookStore used by service and handler tests.
type fakeBookStore struct {
	mu    sync.Mutex
	books map[uuid.UUID]domain.Book

	// forcedErr, when set, is returned by every operation. Used to
	// exercise storage-failure paths.
	forcedErr error
}

func newFakeBookStore() *fakeBookStore {
	return &fakeBookStore{books: make(map[uuid.UUID]domain.Book)}
}

var _ store.BookStore = (*fakeBookStore)(nil)

func (f *fakeBookStore) List(ctx context.Context) ([]domain.Book, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	if f.forcedErr != nil {
		return nil, f.forcedErr
	}

	books := make([]domain.Book, 0, len(f.books))
	for _, b := range f.books {
		books = append(books, b)
	}
	return books, nil
}

func (f *fakeBookStore) GetByID(ctx context.Context, id uuid.UUID) (*domain.Book, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	if f.forcedErr != nil {
		return nil, f.forcedErr
	}

	book, ok := f.books[id]
	if !ok {
		return nil, store.ErrBookNotFound
	}
	return &book, nil
}

func (f *fakeBookStore) Create(ctx context.Context, book *domain.Book) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	if f.forcedErr != nil {
		return f.forcedErr
	}

	for _, b := range f.books {
		if b.Name == book.Name && b.Author == book.Author {
			return store.ErrBookExists
		}
	}
	f.books[book.ID] = *book
	return nil
}

func (f *fakeBookStore) Update(ctx context.Context, book *domain.Book) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	if f.forcedErr != nil {
		return f.forcedErr
	}

	if _, ok := f.books[book.ID]; !ok {
		return store.ErrBookNotFound
	}
	f.books[book.ID] = *book
	return nil
}

func (f *fakeBookStore) Delete(ctx context.Context, id uuid.UUID) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	if f.forcedErr != nil {
		return f.forcedErr
	}

	if _, ok := f.books[id]; !ok {
		return store.ErrBookNotFound
	}
	delete(f.books, id)
	return nil
}

func (f *fakeBookStore) ExistsByNameAuthor(ctx context.Context, name, author string) (bool, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	if f.forcedErr != nil {
		return false, f.forcedErr
	}

	for _, b := range f.books {
		if b.Name == name && b.Author == author {
			return true, nil
		}
	}
	return false, nil
}

func (f *fakeBookStore) WithTx(tx *sql.Tx) store.BookStore {
	return f
}
