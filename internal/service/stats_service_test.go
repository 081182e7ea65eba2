package service

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/shelfmark/shelfmark-server/internal/config"
)

func testCacheConfig() config.CacheConfig {
	return config.CacheConfig{
		ListTTL:    time.Minute,
		StatsTTL:   time.Minute,
		StreakTTL:  time.Minute,
		HeatmapTTL: time.Minute,
	}
}

func TestStatsService_Heatmap(t *testing.T) {
	h := newHarness(t)
	sessions := NewSessionService(h.store, h.cache, h.logger)
	stats := NewStatsService(h.store, h.cache, testCacheConfig(), h.logger)
	ctx := context.Background()
	book := h.createBook(t, 300)

	_, err := sessions.Create(ctx, CreateSessionParams{
		BookID: book.ID, Date: day("2025-05-01"), PagesRead: 40,
	})
	require.NoError(t, err)
	_, err = sessions.Create(ctx, CreateSessionParams{
		BookID: book.ID, Date: day("2025-05-03"), PagesRead: 25,
	})
	require.NoError(t, err)

	hm, err := stats.Heatmap(ctx, 2025)
	require.NoError(t, err)
	assert.Equal(t, 2025, hm.Year)
	require.Len(t, hm.Days, 2)
	assert.Equal(t, "2025-05-01", hm.Days[0].Date)
	assert.Equal(t, 40, hm.Days[0].Pages)

	// Other years stay empty.
	empty, err := stats.Heatmap(ctx, 2024)
	require.NoError(t, err)
	assert.Empty(t, empty.Days)
}

func TestStatsService_HeatmapRefreshesAfterNewSession(t *testing.T) {
	h := newHarness(t)
	sessions := NewSessionService(h.store, h.cache, h.logger)
	stats := NewStatsService(h.store, h.cache, testCacheConfig(), h.logger)
	ctx := context.Background()
	book := h.createBook(t, 300)

	_, err := sessions.Create(ctx, CreateSessionParams{
		BookID: book.ID, Date: day("2025-05-01"), PagesRead: 40,
	})
	require.NoError(t, err)

	hm, err := stats.Heatmap(ctx, 2025)
	require.NoError(t, err)
	require.Len(t, hm.Days, 1)

	// The create invalidates the cached year, so the next read sees the
	// second session rather than a stale entry.
	_, err = sessions.Create(ctx, CreateSessionParams{
		BookID: book.ID, Date: day("2025-05-02"), PagesRead: 10,
	})
	require.NoError(t, err)

	hm, err = stats.Heatmap(ctx, 2025)
	require.NoError(t, err)
	assert.Len(t, hm.Days, 2)
}

func TestStatsService_Complete(t *testing.T) {
	h := newHarness(t)
	sessions := NewSessionService(h.store, h.cache, h.logger)
	goals := NewGoalService(h.store, h.cache, h.logger)
	stats := NewStatsService(h.store, h.cache, testCacheConfig(), h.logger)
	ctx := context.Background()
	book := h.createBook(t, 300)

	_, err := goals.Create(ctx, CreateGoalParams{
		BookID: book.ID, LowGoal: 100, MediumGoal: 200, HighGoal: 300,
	})
	require.NoError(t, err)
	_, err = sessions.Create(ctx, CreateSessionParams{
		BookID: book.ID, Date: day("2025-05-01"), PagesRead: 150,
	})
	require.NoError(t, err)

	out, err := stats.Complete(ctx)
	require.NoError(t, err)

	assert.Equal(t, 150, out.Overview.TotalPagesRead)
	assert.Equal(t, 1, out.Overview.BooksCurrentlyReading)
	assert.Equal(t, map[string]int{"currently_reading": 1}, out.Books.BooksByStatus)
	require.Len(t, out.Goals.Progress, 1)
	assert.Equal(t, 150.0, out.Goals.Progress[0].LowProgress)
	assert.Equal(t, 75.0, out.Goals.Progress[0].MediumProgress)
	assert.Equal(t, 50.0, out.Goals.Progress[0].HighProgress)
	assert.Equal(t, 1, out.Records.TotalReadingDays)
}
