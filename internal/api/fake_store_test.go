package api

import (
	"context"
	"database/sql"
	"sync"

	"github.com/google/uuid"

	"github.com/bookshelfhq/bookshelf/internal/domain"
	"github.com/bookshelfhq/bookshelf/internal/store"
)

// fakeBookStore is an in-memory store.BookStore used to exercise the
// handlers without a database.
type fakeBookStore struct {
	mu        sync.Mutex
	books     map[uuid.UUID]domain.Book
	forcedErr error
}

func newFakeBookStore() *fakeBookStore {
	return &fakeBookStore{books: make(map[uuid.UUID]domain.Book)}
}

func (f *fakeBookStore) List(_ context.Context) ([]domain.Book, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.forcedErr != nil {
		return nil, f.forcedErr
	}
	out := make([]domain.Book, 0, len(f.books))
	for _, b := range f.books {
		out = append(out, b)
	}
	return out, nil
}

func (f *fakeBookStore) GetByID(_ context.Context, id uuid.UUID) (*domain.Book, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.forcedErr != nil {
		return nil, f.forcedErr
	}
	b, ok := f.books[id]
	if !ok {
		return nil, store.ErrBookNotFound
	}
	return &b, nil
}

func (f *fakeBookStore) Create(_ context.Context, book *domain.Book) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.forcedErr != nil {
		return f.forcedErr
	}
	for _, existing := range f.books {
		if existing.Name == book.Name && existing.Author == book.Author {
			return store.ErrBookExists
		}
	}
	f.books[book.ID] = *book
	return nil
}

func (f *fakeBookStore) Update(_ context.Context, book *domain.Book) error {
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

func (f *fakeBookStore) Delete(_ context.Context, id uuid.UUID) error {
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

func (f *fakeBookStore) ExistsByNameAuthor(_ context.Context, name, author string) (bool, error) {
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

func (f *fakeBookStore) WithTx(_ *sql.Tx) store.BookStore {
	return f
}
