package domain

import (
	"errors"
	"time"

	"github.com/google/uuid"
)

// Common validation errors for Book
var (
	ErrEmptyBookID     = errors.New("book ID cannot be empty")
	ErrEmptyBookName   = errors.New("book name cannot be empty")
	ErrEmptyBookAuthor = errors.New("book author cannot be empty")
)

// Book represents a single book record in the catalog. The ID is assigned
// server-side on creation and never changes afterwards.
type Book struct {
	ID        uuid.UUID `json:"id"`
	Name      string    `json:"name"`
	Author    string    `json:"author"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// NewBook creates a new Book with the given name and author.
// It generates a new UUID for the book ID and sets the creation/update
// timestamps. Returns an error if validation fails.
func NewBook(name, author string) (*Book, error) {
	book := &Book{
		ID:        uuid.New(),
		Name:      name,
		Author:    author,
		CreatedAt: time.Now().UTC(),
		UpdatedAt: time.Now().UTC(),
	}

	if err := book.Validate(); err != nil {
		return nil, err
	}

	return book, nil
}

// Validate checks if the Book has valid data.
// Returns an error if any field fails validation.
func (b *Book) Validate() error {
	if b.ID == uuid.Nil {
		return ErrEmptyBookID
	}

	if b.Name == "" {
		return ErrEmptyBookName
	}

	if b.Author == "" {
		return ErrEmptyBookAuthor
	}

	return nil
}

// Rename overwrites the book's name and author and bumps the UpdatedAt
// timestamp. The ID is never touched. Returns an error if the new values
// fail validation.
func (b *Book) Rename(name, author string) error {
	if name == "" {
		return ErrEmptyBookName
	}

	if author == "" {
		return ErrEmptyBookAuthor
	}

	b.Name = name
	b.Author = author
	b.UpdatedAt = time.Now().UTC()
	return nil
}
