// Package importer implements bulk book import from uploaded spreadsheets.
package importer

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/google/uuid"
	"github.com/xuri/excelize/v2"

	"github.com/bookshelfhq/bookshelf/internal/platform/logger"
	"github.com/bookshelfhq/bookshelf/internal/service"
)

// Importer errors surfaced to the HTTP layer.
var (
	// ErrInvalidFile indicates the upload is empty or not an .xlsx file.
	ErrInvalidFile = errors.New("invalid spreadsheet file")

	// ErrNoDataRows indicates the first sheet has no rows beyond the header.
	ErrNoDataRows = errors.New("spreadsheet is empty or lacks data rows")

	// ErrHeaderMismatch indicates the first row is not exactly "Name","Author".
	ErrHeaderMismatch = errors.New("spreadsheet must have 'Name' and 'Author' headers in the first row")

	// ErrStorageNotConfigured indicates the upload directory is not configured.
	ErrStorageNotConfigured = errors.New("upload directory is not configured")
)

// spreadsheetExt is the only accepted upload extension.
const spreadsheetExt = ".xlsx"

// Summary reports the outcome of a spreadsheet import.
type Summary struct {
	Added             int
	DuplicatesSkipped int
}

// String renders the summary as the human-readable text returned to callers.
func (s Summary) String() string {
	return fmt.Sprintf(
		"Spreadsheet processed successfully. %d books added, %d duplicates skipped.",
		s.Added, s.DuplicatesSkipped)
}

// SpreadsheetImporter parses an uploaded spreadsheet and creates one book
// per valid data row. The payload is persisted to a uniquely named file in
// the configured upload directory for the duration of a single request and
// removed on every exit path.
type SpreadsheetImporter struct {
	books     *service.BookService
	uploadDir string
	logger    *slog.Logger
}

// NewSpreadsheetImporter creates a new SpreadsheetImporter.
// uploadDir may be empty; in that case Import fails with ErrStorageNotConfigured.
func NewSpreadsheetImporter(books *service.BookService, uploadDir string, log *slog.Logger) *SpreadsheetImporter {
	if books == nil {
		// ALLOW-PANIC: Constructor enforcing required dependency
		panic("books cannot be nil for SpreadsheetImporter")
	}

	if log == nil {
		log = slog.Default()
	}

	return &SpreadsheetImporter{
		books:     books,
		uploadDir: uploadDir,
		logger:    log.With(slog.String("component", "spreadsheet_importer")),
	}
}

// Import validates and parses the uploaded spreadsheet and creates a book
// per valid data row.
//
// The first sheet must carry exactly "Name" and "Author" in row 1, columns
// 1 and 2. Rows where either trimmed cell is empty are skipped silently.
// Rows whose (name, author) pair is already stored count as duplicates and
// are skipped. Nothing is retried; the first storage error aborts the
// import and is returned as-is.
func (i *SpreadsheetImporter) Import(
	ctx context.Context,
	filename string,
	size int64,
	payload io.Reader,
) (*Summary, error) {
	log := logger.FromContextOrDefault(ctx, i.logger)

	if size == 0 || !strings.HasSuffix(strings.ToLower(filename), spreadsheetExt) {
		return nil, ErrInvalidFile
	}

	if i.uploadDir == "" {
		return nil, ErrStorageNotConfigured
	}

	if err := os.MkdirAll(i.uploadDir, 0o750); err != nil {
		return nil, fmt.Errorf("failed to create upload directory: %w", err)
	}

	// Unique filename per request to avoid cross-request collisions.
	// The cleanup is registered before the save so a partially written
	// file is removed even when the save itself fails.
	tempPath := filepath.Join(i.uploadDir, uuid.New().String()+spreadsheetExt)
	defer func() {
		if err := os.Remove(tempPath); err != nil && !os.IsNotExist(err) {
			log.Warn("failed to remove temporary upload",
				slog.String("path", tempPath),
				slog.String("error", err.Error()))
		}
	}()

	if err := i.saveUpload(tempPath, payload); err != nil {
		return nil, err
	}

	summary, err := i.importFile(ctx, tempPath)
	if err != nil {
		return nil, err
	}

	log.Info("spreadsheet import completed",
		slog.Int("added", summary.Added),
		slog.Int("duplicates_skipped", summary.DuplicatesSkipped))
	return summary, nil
}

// saveUpload copies the payload to the given path.
func (i *SpreadsheetImporter) saveUpload(path string, payload io.Reader) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to save upload: %w", err)
	}

	if _, err := io.Copy(f, payload); err != nil {
		_ = f.Close()
		return fmt.Errorf("failed to save upload: %w", err)
	}

	if err := f.Close(); err != nil {
		return fmt.Errorf("failed to save upload: %w", err)
	}
	return nil
}

// importFile opens the saved spreadsheet and walks its first sheet.
func (i *SpreadsheetImporter) importFile(ctx context.Context, path string) (*Summary, error) {
	log := logger.FromContextOrDefault(ctx, i.logger)

	wb, err := excelize.OpenFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open spreadsheet: %w", err)
	}
	defer func() {
		if cerr := wb.Close(); cerr != nil {
			log.Warn("failed to close spreadsheet", slog.String("error", cerr.Error()))
		}
	}()

	sheets := wb.GetSheetList()
	if len(sheets) == 0 {
		return nil, ErrNoDataRows
	}

	rows, err := wb.GetRows(sheets[0])
	if err != nil {
		return nil, fmt.Errorf("failed to read spreadsheet rows: %w", err)
	}

	if len(rows) < 2 {
		return nil, ErrNoDataRows
	}

	// Header check is exact and case-sensitive.
	if cellAt(rows[0], 0) != "Name" || cellAt(rows[0], 1) != "Author" {
		return nil, ErrHeaderMismatch
	}

	summary := &Summary{}
	for _, row := range rows[1:] {
		name := strings.TrimSpace(cellAt(row, 0))
		author := strings.TrimSpace(cellAt(row, 1))

		// Rows without both a name and an author are skipped silently.
		if name == "" || author == "" {
			continue
		}

		exists, err := i.books.Exists(ctx, name, author)
		if err != nil {
			return nil, err
		}
		if exists {
			summary.DuplicatesSkipped++
			continue
		}

		if _, err := i.books.Create(ctx, name, author); err != nil {
			return nil, err
		}
		summary.Added++
	}

	return summary, nil
}

// cellAt returns the cell at the given index, or "" when the row is shorter.
// excelize trims trailing empty cells from rows.
func cellAt(row []string, idx int) string {
	if idx >= len(row) {
		return ""
	}
	return row[idx]
}
