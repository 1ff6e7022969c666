package domain_test

import (
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bookshelfhq/bookshelf/internal/domain"
)

func TestNewBook(t *testing.T) {
	t.Parallel()

	book, err := domain.NewBook("The Go Programming Language", "Alan A. A. Donovan")
	require.NoError(t, err)

	assert.NotEqual(t, uuid.Nil, book.ID, "new book should get a generated ID")
	assert.Equal(t, "The Go Programming Language", book.Name)
	assert.Equal(t, "Alan A. A. Donovan", book.Author)
	assert.False(t, book.CreatedAt.IsZero())
	assert.False(t, book.UpdatedAt.IsZero())
}

func TestNewBookValidation(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name      string
		bookName  string
		author    string
		wantError error
	}{
		{
			name:      "empty name",
			bookName:  "",
			author:    "Some Author",
			wantError: domain.ErrEmptyBookName,
		},
		{
			name:      "empty author",
			bookName:  "Some Book",
			author:    "",
			wantError: domain.ErrEmptyBookAuthor,
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()

			book, err := domain.NewBook(tc.bookName, tc.author)
			assert.Nil(t, book)
			assert.ErrorIs(t, err, tc.wantError)
		})
	}
}

func TestBookRename(t *testing.T) {
	t.Parallel()

	book, err := domain.NewBook("Original Name", "Original Author")
	require.NoError(t, err)

	originalID := book.ID
	originalUpdatedAt := book.UpdatedAt

	require.NoError(t, book.Rename("New Name", "New Author"))

	assert.Equal(t, originalID, book.ID, "rename must not change the ID")
	assert.Equal(t, "New Name", book.Name)
	assert.Equal(t, "New Author", book.Author)
	assert.True(t, !book.UpdatedAt.Before(originalUpdatedAt))
}

func TestBookRenameValidation(t *testing.T) {
	t.Parallel()

	book, err := domain.NewBook("Original Name", "Original Author")
	require.NoError(t, err)

	assert.ErrorIs(t, book.Rename("", "Author"), domain.ErrEmptyBookName)
	assert.ErrorIs(t, book.Rename("Name", ""), domain.ErrEmptyBookAuthor)

	// Failed rename must leave the book untouched.
	assert.Equal(t, "Original Name", book.Name)
	assert.Equal(t, "Original Author", book.Author)
}
