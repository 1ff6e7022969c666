package api

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"

	"github.com/bookshelfhq/bookshelf/internal/importer"
	"github.com/bookshelfhq/bookshelf/internal/report"
	"github.com/bookshelfhq/bookshelf/internal/report/fonts"
	"github.com/bookshelfhq/bookshelf/internal/service"
)

// newTestRouter wires a BookHandler backed by in-memory fakes behind the
// same routes the server exposes, minus authentication.
func newTestRouter(t *testing.T, bookStore *fakeBookStore) chi.Router {
	t.Helper()

	log := slog.New(slog.NewTextHandler(io.Discard, nil))
	bookService := service.NewBookService(bookStore, log)
	imp := importer.NewSpreadsheetImporter(bookService, t.TempDir(), log)
	generator := report.NewGenerator(fonts.NewCoreResolver(), "Helvetica", log)
	handler := NewBookHandler(bookService, imp, generator, log)

	r := chi.NewRouter()
	r.Route("/books", func(r chi.Router) {
		r.Get("/", handler.ListBooks)
		r.Post("/", handler.CreateBook)
		r.Get("/{id}", handler.GetBook)
		r.Put("/{id}", handler.UpdateBook)
		r.Delete("/{id}", handler.DeleteBook)
		r.Post("/upload-excel", handler.UploadSpreadsheet)
		r.Post("/generate-pdf", handler.GeneratePDF)
	})
	return r
}

func doJSON(t *testing.T, router chi.Router, method, target string, body interface{}) *httptest.ResponseRecorder {
	t.Helper()

	var reader io.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(payload)
	}

	req := httptest.NewRequest(method, target, reader)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	return rec
}

func decodeBook(t *testing.T, rec *httptest.ResponseRecorder) BookResponse {
	t.Helper()

	var resp BookResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	return resp
}

func TestNewBookHandlerRequiresDependencies(t *testing.T) {
	t.Parallel()

	log := slog.New(slog.NewTextHandler(io.Discard, nil))
	bookService := service.NewBookService(newFakeBookStore(), log)
	imp := importer.NewSpreadsheetImporter(bookService, t.TempDir(), log)
	generator := report.NewGenerator(fonts.NewCoreResolver(), "Helvetica", log)

	assert.Panics(t, func() { NewBookHandler(nil, imp, generator, log) })
	assert.Panics(t, func() { NewBookHandler(bookService, nil, generator, log) })
	assert.Panics(t, func() { NewBookHandler(bookService, imp, nil, log) })
	assert.NotPanics(t, func() { NewBookHandler(bookService, imp, generator, log) })
}

func TestListBooks_Empty(t *testing.T) {
	t.Parallel()

	router := newTestRouter(t, newFakeBookStore())

	rec := doJSON(t, router, http.MethodGet, "/books", nil)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, "[]", rec.Body.String())
}

func TestCreateBook(t *testing.T) {
	t.Parallel()

	router := newTestRouter(t, newFakeBookStore())

	rec := doJSON(t, router, http.MethodPost, "/books",
		BookRequest{Name: "The Go Programming Language", Author: "Donovan & Kernighan"})

	require.Equal(t, http.StatusCreated, rec.Code)
	created := decodeBook(t, rec)
	assert.NotEqual(t, uuid.Nil, created.ID)
	assert.Equal(t, "The Go Programming Language", created.Name)
	assert.Equal(t, "Donovan & Kernighan", created.Author)
	assert.Equal(t, fmt.Sprintf("/books/%s", created.ID), rec.Header().Get("Location"))

	// The created book is retrievable at the Location it was assigned.
	rec = doJSON(t, router, http.MethodGet, "/books/"+created.ID.String(), nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, created, decodeBook(t, rec))
}

func TestCreateBook_Invalid(t *testing.T) {
	t.Parallel()

	router := newTestRouter(t, newFakeBookStore())

	testCases := []struct {
		name string
		body interface{}
		raw  string
	}{
		{name: "missing name", body: BookRequest{Author: "Someone"}},
		{name: "missing author", body: BookRequest{Name: "Something"}},
		{name: "empty body", raw: ""},
		{name: "malformed json", raw: "{not json"},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			var rec *httptest.ResponseRecorder
			if tc.body != nil {
				rec = doJSON(t, router, http.MethodPost, "/books", tc.body)
			} else {
				req := httptest.NewRequest(http.MethodPost, "/books", strings.NewReader(tc.raw))
				req.Header.Set("Content-Type", "application/json")
				rec = httptest.NewRecorder()
				router.ServeHTTP(rec, req)
			}
			assert.Equal(t, http.StatusBadRequest, rec.Code)
		})
	}
}

func TestCreateBook_Duplicate(t *testing.T) {
	t.Parallel()

	router := newTestRouter(t, newFakeBookStore())
	body := BookRequest{Name: "Dune", Author: "Frank Herbert"}

	rec := doJSON(t, router, http.MethodPost, "/books", body)
	require.Equal(t, http.StatusCreated, rec.Code)

	rec = doJSON(t, router, http.MethodPost, "/books", body)
	assert.Equal(t, http.StatusConflict, rec.Code)
}

func TestGetBook_NotFound(t *testing.T) {
	t.Parallel()

	router := newTestRouter(t, newFakeBookStore())

	rec := doJSON(t, router, http.MethodGet, "/books/"+uuid.NewString(), nil)
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestGetBook_MalformedID(t *testing.T) {
	t.Parallel()

	router := newTestRouter(t, newFakeBookStore())

	rec := doJSON(t, router, http.MethodGet, "/books/not-a-uuid", nil)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestUpdateBook(t *testing.T) {
	t.Parallel()

	router := newTestRouter(t, newFakeBookStore())

	rec := doJSON(t, router, http.MethodPost, "/books",
		BookRequest{Name: "Original", Author: "Author"})
	require.Equal(t, http.StatusCreated, rec.Code)
	created := decodeBook(t, rec)

	rec = doJSON(t, router, http.MethodPut, "/books/"+created.ID.String(),
		BookRequest{Name: "Updated", Author: "New Author"})
	require.Equal(t, http.StatusOK, rec.Code)

	updated := decodeBook(t, rec)
	assert.Equal(t, created.ID, updated.ID, "the book ID is immutable")
	assert.Equal(t, "Updated", updated.Name)
	assert.Equal(t, "New Author", updated.Author)
}

func TestUpdateBook_UnknownIDDoesNotCreate(t *testing.T) {
	t.Parallel()

	bookStore := newFakeBookStore()
	router := newTestRouter(t, bookStore)

	rec := doJSON(t, router, http.MethodPut, "/books/"+uuid.NewString(),
		BookRequest{Name: "Ghost", Author: "Nobody"})
	assert.Equal(t, http.StatusNotFound, rec.Code)

	rec = doJSON(t, router, http.MethodGet, "/books", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, "[]", rec.Body.String())
}

func TestDeleteBook(t *testing.T) {
	t.Parallel()

	router := newTestRouter(t, newFakeBookStore())

	rec := doJSON(t, router, http.MethodPost, "/books",
		BookRequest{Name: "Ephemeral", Author: "Author"})
	require.Equal(t, http.StatusCreated, rec.Code)
	created := decodeBook(t, rec)

	rec = doJSON(t, router, http.MethodDelete, "/books/"+created.ID.String(), nil)
	assert.Equal(t, http.StatusNoContent, rec.Code)
	assert.Empty(t, rec.Body.String())

	// Deleting again reports not found.
	rec = doJSON(t, router, http.MethodDelete, "/books/"+created.ID.String(), nil)
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func buildUploadRequest(t *testing.T, rows [][]string) *http.Request {
	t.Helper()

	f := excelize.NewFile()
	sheet := f.GetSheetName(0)
	for rowIdx, row := range rows {
		for colIdx, value := range row {
			cell, err := excelize.CoordinatesToCellName(colIdx+1, rowIdx+1)
			require.NoError(t, err)
			require.NoError(t, f.SetCellValue(sheet, cell, value))
		}
	}

	var spreadsheet bytes.Buffer
	require.NoError(t, f.Write(&spreadsheet))

	var body bytes.Buffer
	writer := multipart.NewWriter(&body)
	part, err := writer.CreateFormFile("file", "books.xlsx")
	require.NoError(t, err)
	_, err = part.Write(spreadsheet.Bytes())
	require.NoError(t, err)
	require.NoError(t, writer.Close())

	req := httptest.NewRequest(http.MethodPost, "/books/upload-excel", &body)
	req.Header.Set("Content-Type", writer.FormDataContentType())
	return req
}

func TestUploadSpreadsheet(t *testing.T) {
	t.Parallel()

	router := newTestRouter(t, newFakeBookStore())

	req := buildUploadRequest(t, [][]string{
		{"Name", "Author"},
		{"Dune", "Frank Herbert"},
		{"Hyperion", "Dan Simmons"},
		{"Dune", "Frank Herbert"},
	})
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t,
		"Spreadsheet processed successfully. 2 books added, 1 duplicates skipped.",
		rec.Body.String())

	rec = doJSON(t, router, http.MethodGet, "/books", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	var books []BookResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &books))
	assert.Len(t, books, 2)
}

func TestUploadSpreadsheet_HeaderMismatch(t *testing.T) {
	t.Parallel()

	router := newTestRouter(t, newFakeBookStore())

	req := buildUploadRequest(t, [][]string{
		{"Title", "Writer"},
		{"Dune", "Frank Herbert"},
	})
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestUploadSpreadsheet_MissingFile(t *testing.T) {
	t.Parallel()

	router := newTestRouter(t, newFakeBookStore())

	var body bytes.Buffer
	writer := multipart.NewWriter(&body)
	require.NoError(t, writer.WriteField("note", "no file here"))
	require.NoError(t, writer.Close())

	req := httptest.NewRequest(http.MethodPost, "/books/upload-excel", &body)
	req.Header.Set("Content-Type", writer.FormDataContentType())
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestGeneratePDF(t *testing.T) {
	t.Parallel()

	router := newTestRouter(t, newFakeBookStore())

	rec := doJSON(t, router, http.MethodPost, "/books/generate-pdf", GeneratePDFRequest{
		Books: []BookPayload{
			{Name: "Dune", Author: "Frank Herbert"},
			{Name: "Hyperion", Author: "Dan Simmons"},
		},
	})

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, report.ContentType, rec.Header().Get("Content-Type"))
	assert.Contains(t, rec.Header().Get("Content-Disposition"), report.Filename)
	assert.True(t, bytes.HasPrefix(rec.Body.Bytes(), []byte("%PDF-")),
		"response body should be a PDF document")
}

func TestGeneratePDF_EmptyList(t *testing.T) {
	t.Parallel()

	router := newTestRouter(t, newFakeBookStore())

	rec := doJSON(t, router, http.MethodPost, "/books/generate-pdf",
		GeneratePDFRequest{Books: []BookPayload{}})
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestGeneratePDF_InvalidRow(t *testing.T) {
	t.Parallel()

	router := newTestRouter(t, newFakeBookStore())

	rec := doJSON(t, router, http.MethodPost, "/books/generate-pdf", GeneratePDFRequest{
		Books: []BookPayload{{Name: "", Author: "Anonymous"}},
	})
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestStoreFailureYieldsServerError(t *testing.T) {
	t.Parallel()

	bookStore := newFakeBookStore()
	bookStore.forcedErr = fmt.Errorf("connection refused")
	router := newTestRouter(t, bookStore)

	rec := doJSON(t, router, http.MethodGet, "/books", nil)
	assert.Equal(t, http.StatusInternalServerError, rec.Code)
	assert.NotContains(t, rec.Body.String(), "connection refused",
		"internal error details must not leak to clients")
}
