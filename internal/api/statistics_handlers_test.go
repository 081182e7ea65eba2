package api

import (
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/shelfmark/shelfmark-server/internal/domain"
)

func TestGetStreak_Empty(t *testing.T) {
	ts := setupTestServer(t)

	resp := ts.api.Get("/api/v1/streak")
	require.Equal(t, http.StatusOK, resp.Code)

	streak := decodeBody[domain.Streak](t, resp.Body.Bytes())
	assert.Zero(t, streak.CurrentStreak)
	assert.Zero(t, streak.LongestStreak)
}

func TestGetHeatmap(t *testing.T) {
	ts := setupTestServer(t)
	authorID := ts.createTestAuthor(t, "Author")
	bookID := ts.createTestBook(t, authorID, "Book", 300)

	ts.api.Post("/api/v1/readingsessions", map[string]any{
		"book_id": bookID, "date": "2025-05-01T00:00:00Z", "pages_read": 40,
	})
	ts.api.Post("/api/v1/readingsessions", map[string]any{
		"book_id": bookID, "date": "2025-05-03T00:00:00Z", "pages_read": 25,
	})

	resp := ts.api.Get("/api/v1/heatmap/2025")
	require.Equal(t, http.StatusOK, resp.Code)

	heatmap := decodeBody[domain.Heatmap](t, resp.Body.Bytes())
	assert.Equal(t, 2025, heatmap.Year)
	require.Len(t, heatmap.Days, 2)
	assert.Equal(t, "2025-05-01", heatmap.Days[0].Date)
	assert.Equal(t, 40, heatmap.Days[0].Pages)
}

func TestGetHeatmap_InvalidYear(t *testing.T) {
	ts := setupTestServer(t)

	resp := ts.api.Get("/api/v1/heatmap/0")
	assert.Equal(t, http.StatusBadRequest, resp.Code)
}

func TestGoalStatistics(t *testing.T) {
	ts := setupTestServer(t)
	authorID := ts.createTestAuthor(t, "Author")
	bookID := ts.createTestBook(t, authorID, "Book", 300)

	resp := ts.api.Post("/api/v1/readinggoals", map[string]any{
		"book_id":     bookID,
		"low_goal":    100,
		"medium_goal": 200,
		"high_goal":   300,
	})
	require.Equal(t, http.StatusCreated, resp.Code, resp.Body.String())

	for _, s := range []struct {
		date  string
		pages int
	}{
		{"2025-01-02T00:00:00Z", 50},
		{"2025-01-05T00:00:00Z", 75},
		{"2025-01-10T00:00:00Z", 25},
	} {
		r := ts.api.Post("/api/v1/readingsessions", map[string]any{
			"book_id": bookID, "date": s.date, "pages_read": s.pages,
		})
		require.Equal(t, http.StatusCreated, r.Code)
	}

	resp = ts.api.Get("/api/v1/statistics/goals")
	require.Equal(t, http.StatusOK, resp.Code)

	goals := decodeBody[domain.GoalPerformance](t, resp.Body.Bytes())
	require.Len(t, goals.Progress, 1)
	assert.Equal(t, 150, goals.Progress[0].PagesRead)
	assert.Equal(t, 150.0, goals.Progress[0].LowProgress)
	assert.Equal(t, 75.0, goals.Progress[0].MediumProgress)
	assert.Equal(t, 50.0, goals.Progress[0].HighProgress)
}

func TestCreateGoal_DuplicateConflicts(t *testing.T) {
	ts := setupTestServer(t)
	authorID := ts.createTestAuthor(t, "Author")
	bookID := ts.createTestBook(t, authorID, "Book", 300)

	body := map[string]any{
		"book_id": bookID, "low_goal": 100, "medium_goal": 200, "high_goal": 300,
	}
	require.Equal(t, http.StatusCreated, ts.api.Post("/api/v1/readinggoals", body).Code)
	assert.Equal(t, http.StatusConflict, ts.api.Post("/api/v1/readinggoals", body).Code)
}

func TestCompleteStatistics(t *testing.T) {
	ts := setupTestServer(t)
	authorID := ts.createTestAuthor(t, "Author")
	bookID := ts.createTestBook(t, authorID, "Book", 300)

	ts.api.Post("/api/v1/readingsessions", map[string]any{
		"book_id": bookID, "date": "2025-05-01T00:00:00Z", "pages_read": 150,
	})

	resp := ts.api.Get("/api/v1/statistics/complete")
	require.Equal(t, http.StatusOK, resp.Code)

	stats := decodeBody[domain.CompleteStats](t, resp.Body.Bytes())
	assert.Equal(t, 150, stats.Overview.TotalPagesRead)
	assert.Equal(t, 1, stats.Overview.BooksCurrentlyReading)
	assert.Equal(t, 1, stats.Records.TotalReadingDays)
}

func TestListReadingStatuses(t *testing.T) {
	ts := setupTestServer(t)

	resp := ts.api.Get("/api/v1/readingstatus")
	require.Equal(t, http.StatusOK, resp.Code)

	listing := decodeBody[struct {
		Statuses []domain.StatusInfo `json:"statuses"`
	}](t, resp.Body.Bytes())
	require.Len(t, listing.Statuses, 5)
	assert.Equal(t, domain.StatusNotReading, listing.Statuses[0].Value)
	assert.Equal(t, "Currently Reading", listing.Statuses[2].DisplayName)
}
