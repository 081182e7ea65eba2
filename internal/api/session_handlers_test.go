package api

import (
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCreateSession(t *testing.T) {
	ts := setupTestServer(t)
	authorID := ts.createTestAuthor(t, "Author")
	bookID := ts.createTestBook(t, authorID, "Book", 300)

	resp := ts.api.Post("/api/v1/readingsessions", map[string]any{
		"book_id":    bookID,
		"date":       "2025-05-01T00:00:00Z",
		"pages_read": 40,
		"summary":    "good chapter",
	})
	require.Equal(t, http.StatusCreated, resp.Code, resp.Body.String())

	session := decodeBody[SessionResponse](t, resp.Body.Bytes())
	assert.NotEmpty(t, session.ID)
	assert.Equal(t, 40, session.PagesRead)
}

func TestCreateSession_SameDayMerges(t *testing.T) {
	ts := setupTestServer(t)
	authorID := ts.createTestAuthor(t, "Author")
	bookID := ts.createTestBook(t, authorID, "Book", 300)

	first := decodeBody[SessionResponse](t, ts.api.Post("/api/v1/readingsessions", map[string]any{
		"book_id":    bookID,
		"date":       "2025-05-01T08:00:00Z",
		"pages_read": 30,
	}).Body.Bytes())

	resp := ts.api.Post("/api/v1/readingsessions", map[string]any{
		"book_id":    bookID,
		"date":       "2025-05-01T21:00:00Z",
		"pages_read": 25,
		"summary":    "evening",
	})
	require.Equal(t, http.StatusCreated, resp.Code, resp.Body.String())

	merged := decodeBody[SessionResponse](t, resp.Body.Bytes())
	assert.Equal(t, first.ID, merged.ID)
	assert.Equal(t, 55, merged.PagesRead)
	assert.Equal(t, "evening", merged.Summary)
}

func TestCreateSession_UnknownBook(t *testing.T) {
	ts := setupTestServer(t)

	resp := ts.api.Post("/api/v1/readingsessions", map[string]any{
		"book_id":    "book_missing",
		"date":       "2025-05-01T00:00:00Z",
		"pages_read": 10,
	})
	assert.Equal(t, http.StatusNotFound, resp.Code, resp.Body.String())
}

func TestUpdateSession_OccupiedDayConflicts(t *testing.T) {
	ts := setupTestServer(t)
	authorID := ts.createTestAuthor(t, "Author")
	bookID := ts.createTestBook(t, authorID, "Book", 300)

	ts.api.Post("/api/v1/readingsessions", map[string]any{
		"book_id":    bookID,
		"date":       "2025-05-01T00:00:00Z",
		"pages_read": 40,
	})
	movable := decodeBody[SessionResponse](t, ts.api.Post("/api/v1/readingsessions", map[string]any{
		"book_id":    bookID,
		"date":       "2025-05-02T00:00:00Z",
		"pages_read": 20,
	}).Body.Bytes())

	resp := ts.api.Patch("/api/v1/readingsessions/"+movable.ID, map[string]any{
		"date": "2025-05-01T00:00:00Z",
	})
	assert.Equal(t, http.StatusConflict, resp.Code, resp.Body.String())
}

func TestListSessions_ByBook(t *testing.T) {
	ts := setupTestServer(t)
	authorID := ts.createTestAuthor(t, "Author")
	bookA := ts.createTestBook(t, authorID, "Book A", 300)
	bookB := ts.createTestBook(t, authorID, "Book B", 200)

	ts.api.Post("/api/v1/readingsessions", map[string]any{
		"book_id": bookA, "date": "2025-05-01T00:00:00Z", "pages_read": 10,
	})
	ts.api.Post("/api/v1/readingsessions", map[string]any{
		"book_id": bookB, "date": "2025-05-01T00:00:00Z", "pages_read": 20,
	})

	resp := ts.api.Get("/api/v1/readingsessions?book_id=" + bookA)
	require.Equal(t, http.StatusOK, resp.Code)

	listing := decodeBody[struct {
		Sessions []SessionResponse `json:"sessions"`
	}](t, resp.Body.Bytes())
	require.Len(t, listing.Sessions, 1)
	assert.Equal(t, bookA, listing.Sessions[0].BookID)
}

func TestDeleteSession(t *testing.T) {
	ts := setupTestServer(t)
	authorID := ts.createTestAuthor(t, "Author")
	bookID := ts.createTestBook(t, authorID, "Book", 300)

	session := decodeBody[SessionResponse](t, ts.api.Post("/api/v1/readingsessions", map[string]any{
		"book_id": bookID, "date": "2025-05-01T00:00:00Z", "pages_read": 10,
	}).Body.Bytes())

	resp := ts.api.Delete("/api/v1/readingsessions/" + session.ID)
	require.Equal(t, http.StatusNoContent, resp.Code)

	resp = ts.api.Get("/api/v1/readingsessions/" + session.ID)
	assert.Equal(t, http.StatusNotFound, resp.Code)
}
