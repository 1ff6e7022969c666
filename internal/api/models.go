package api

import (
	"github.com/google/uuid"

	"github.com/bookshelfhq/bookshelf/internal/domain"
)

// Common request/response structures

// BookRequest defines the payload for the create and update book endpoints.
type BookRequest struct {
	Name   string `json:"name"   validate:"required"`
	Author string `json:"author" validate:"required"`
}

// BookResponse represents the API-facing shape of a book. It is decoupled
// from the persisted entity so the two can evolve independently.
type BookResponse struct {
	ID     uuid.UUID `json:"id"`
	Name   string    `json:"name"`
	Author string    `json:"author"`
}

// BookPayload is a single book row in a PDF report request. The ID is
// optional; rows need not reference persisted books.
type BookPayload struct {
	ID     uuid.UUID `json:"id,omitempty"`
	Name   string    `json:"name"   validate:"required"`
	Author string    `json:"author" validate:"required"`
}

// GeneratePDFRequest defines the payload for the PDF report endpoint.
// The book list must contain at least one entry.
type GeneratePDFRequest struct {
	Books []BookPayload `json:"books" validate:"required,min=1,dive"`
}

// bookToResponse transforms a domain book into its API representation.
func bookToResponse(book *domain.Book) BookResponse {
	return BookResponse{
		ID:     book.ID,
		Name:   book.Name,
		Author: book.Author,
	}
}

// booksToResponse transforms a slice of domain books into API representations.
func booksToResponse(books []domain.Book) []BookResponse {
	responses := make([]BookResponse, 0, len(books))
	for i := range books {
		responses = append(responses, bookToResponse(&books[i]))
	}
	return responses
}
