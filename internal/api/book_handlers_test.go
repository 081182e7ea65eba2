package api

import (
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/shelfmark/shelfmark-server/internal/search"
)

func TestCreateBook(t *testing.T) {
	ts := setupTestServer(t)
	authorID := ts.createTestAuthor(t, "Ursula K. Le Guin")

	resp := ts.api.Post("/api/v1/books", map[string]any{
		"author_id":   authorID,
		"title":       "The Dispossessed",
		"total_pages": 387,
	})
	require.Equal(t, http.StatusCreated, resp.Code, resp.Body.String())

	book := decodeBody[BookResponse](t, resp.Body.Bytes())
	assert.Equal(t, "The Dispossessed", book.Title)
	// Status defaults when omitted.
	assert.Equal(t, "not_reading", book.Status)
}

func TestCreateBook_UnknownAuthor(t *testing.T) {
	ts := setupTestServer(t)

	resp := ts.api.Post("/api/v1/books", map[string]any{
		"author_id":   "author_missing",
		"title":       "Orphan",
		"total_pages": 100,
	})
	assert.Equal(t, http.StatusNotFound, resp.Code, resp.Body.String())
}

func TestCreateBook_InvalidStatus(t *testing.T) {
	ts := setupTestServer(t)
	authorID := ts.createTestAuthor(t, "Author")

	resp := ts.api.Post("/api/v1/books", map[string]any{
		"author_id":   authorID,
		"title":       "Book",
		"total_pages": 100,
		"status":      "devoured",
	})
	assert.Equal(t, http.StatusBadRequest, resp.Code, resp.Body.String())
}

func TestListBooks_FilterByStatus(t *testing.T) {
	ts := setupTestServer(t)
	authorID := ts.createTestAuthor(t, "Author")
	ts.createTestBook(t, authorID, "Reading Now", 100)

	resp := ts.api.Post("/api/v1/books", map[string]any{
		"author_id":   authorID,
		"title":       "Someday",
		"total_pages": 200,
		"status":      "planning",
	})
	require.Equal(t, http.StatusCreated, resp.Code)

	listing := decodeBody[struct {
		Books []BookResponse `json:"books"`
	}](t, ts.api.Get("/api/v1/books?status=currently_reading").Body.Bytes())
	require.Len(t, listing.Books, 1)
	assert.Equal(t, "Reading Now", listing.Books[0].Title)
}

func TestUpdateBook_Status(t *testing.T) {
	ts := setupTestServer(t)
	authorID := ts.createTestAuthor(t, "Author")
	bookID := ts.createTestBook(t, authorID, "Book", 300)

	resp := ts.api.Patch("/api/v1/books/"+bookID, map[string]any{
		"status":         "completed",
		"completed_date": "2025-06-01T00:00:00Z",
	})
	require.Equal(t, http.StatusOK, resp.Code, resp.Body.String())

	book := decodeBody[BookResponse](t, resp.Body.Bytes())
	assert.Equal(t, "completed", book.Status)
	require.NotNil(t, book.CompletedDate)
}

func TestDeleteBook_CascadesToSessions(t *testing.T) {
	ts := setupTestServer(t)
	authorID := ts.createTestAuthor(t, "Author")
	bookID := ts.createTestBook(t, authorID, "Book", 300)

	session := decodeBody[SessionResponse](t, ts.api.Post("/api/v1/readingsessions", map[string]any{
		"book_id": bookID, "date": "2025-05-01T00:00:00Z", "pages_read": 10,
	}).Body.Bytes())

	require.Equal(t, http.StatusNoContent, ts.api.Delete("/api/v1/books/"+bookID).Code)

	assert.Equal(t, http.StatusNotFound, ts.api.Get("/api/v1/books/"+bookID).Code)
	assert.Equal(t, http.StatusNotFound, ts.api.Get("/api/v1/readingsessions/"+session.ID).Code)
}

func TestSearch(t *testing.T) {
	ts := setupTestServer(t)
	authorID := ts.createTestAuthor(t, "Ursula K. Le Guin")
	ts.createTestBook(t, authorID, "A Wizard of Earthsea", 205)

	resp := ts.api.Get("/api/v1/search?q=earthsea")
	require.Equal(t, http.StatusOK, resp.Code, resp.Body.String())

	result := decodeBody[search.Result](t, resp.Body.Bytes())
	require.NotEmpty(t, result.Hits)
	assert.Equal(t, "A Wizard of Earthsea", result.Hits[0].Name)
}
