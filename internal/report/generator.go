// Package report renders the book listing PDF.
package report

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/jung-kurt/gofpdf"

	"github.com/bookshelfhq/bookshelf/internal/domain"
	"github.com/bookshelfhq/bookshelf/internal/platform/logger"
	"github.com/bookshelfhq/bookshelf/internal/report/fonts"
)

// ErrNoBooks indicates the report was requested with an empty book list.
var ErrNoBooks = errors.New("no books provided for the report")

// Filename is the suggested filename for the generated document.
const Filename = "books.pdf"

// ContentType is the MIME type of the generated document.
const ContentType = "application/pdf"

// Fixed page layout, in points. Rows advance by rowStep per book; rows
// beyond the page height are drawn off-page by design of the format.
const (
	titleY     = 36.0
	headerY    = 82.0
	firstRowY  = 102.0
	rowStep    = 20.0
	nameX      = 20.0
	authorX    = 320.0
	titleSize  = 16.0
	bodySize   = 12.0
	headerSize = 12.0
)

// Generator renders a single-page tabular PDF listing of books. The font
// resolver is injected at construction time and held as an immutable
// dependency for the generator's lifetime.
type Generator struct {
	resolver   fonts.Resolver
	fontFamily string
	logger     *slog.Logger
}

// NewGenerator creates a new Generator using the given font resolver and
// requested font family.
func NewGenerator(resolver fonts.Resolver, fontFamily string, log *slog.Logger) *Generator {
	if resolver == nil {
		// ALLOW-PANIC: Constructor enforcing required dependency
		panic("resolver cannot be nil for Generator")
	}

	if fontFamily == "" {
		fontFamily = "Helvetica"
	}

	if log == nil {
		log = slog.Default()
	}

	return &Generator{
		resolver:   resolver,
		fontFamily: fontFamily,
		logger:     log.With(slog.String("component", "report_generator")),
	}
}

// Render produces the raw bytes of a single PDF document listing the given
// books: a title line, a two-column header, then one row per book.
// Returns ErrNoBooks when the list is empty. If the font resolver cannot
// produce data for the configured family the render fails; no substitute
// face is ever used.
func (g *Generator) Render(ctx context.Context, books []domain.Book) ([]byte, error) {
	log := logger.FromContextOrDefault(ctx, g.logger)

	if len(books) == 0 {
		return nil, ErrNoBooks
	}

	regular, err := g.resolver.ResolveTypeface(g.fontFamily, false, false)
	if err != nil {
		return nil, fmt.Errorf("failed to resolve regular face for %q: %w", g.fontFamily, err)
	}

	bold, err := g.resolver.ResolveTypeface(g.fontFamily, true, false)
	if err != nil {
		return nil, fmt.Errorf("failed to resolve bold face for %q: %w", g.fontFamily, err)
	}

	pdf := gofpdf.New("P", "pt", "A4", "")

	// Faces with raw TTF data must be registered before use; built-in
	// faces need no registration.
	if regular.Bytes != nil {
		pdf.AddUTF8FontFromBytes(regular.Family, regular.Style, regular.Bytes)
	}
	if bold.Bytes != nil {
		pdf.AddUTF8FontFromBytes(bold.Family, bold.Style, bold.Bytes)
	}

	pdf.AddPage()

	pdf.SetFont(bold.Family, bold.Style, titleSize)
	pdf.Text(nameX, titleY, "My Library Books")

	pdf.SetFont(bold.Family, bold.Style, headerSize)
	pdf.Text(nameX, headerY, "Title")
	pdf.Text(authorX, headerY, "Author")

	pdf.SetFont(regular.Family, regular.Style, bodySize)
	y := firstRowY
	for _, book := range books {
		pdf.Text(nameX, y, book.Name)
		pdf.Text(authorX, y, book.Author)
		y += rowStep
	}

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		log.Error("failed to render PDF", slog.String("error", err.Error()))
		return nil, fmt.Errorf("failed to render PDF: %w", err)
	}

	log.Debug("PDF rendered",
		slog.Int("books", len(books)),
		slog.Int("bytes", buf.Len()))
	return buf.Bytes(), nil
}
