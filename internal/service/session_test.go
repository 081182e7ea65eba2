package service

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	apperrors "github.com/shelfmark/shelfmark-server/internal/errors"
)

func TestSessionService_Create(t *testing.T) {
	h := newHarness(t)
	svc := NewSessionService(h.store, h.cache, h.logger)
	ctx := context.Background()
	book := h.createBook(t, 300)

	created, err := svc.Create(ctx, CreateSessionParams{
		BookID:    book.ID,
		Date:      day("2025-04-01"),
		PagesRead: 40,
		Summary:   "chapter one",
	})
	require.NoError(t, err)
	assert.NotEmpty(t, created.ID)
	assert.Equal(t, 40, created.PagesRead)

	got, err := svc.Get(ctx, created.ID)
	require.NoError(t, err)
	assert.Equal(t, "chapter one", got.Summary)
}

func TestSessionService_Create_MergesSameDay(t *testing.T) {
	h := newHarness(t)
	svc := NewSessionService(h.store, h.cache, h.logger)
	ctx := context.Background()
	book := h.createBook(t, 300)

	first, err := svc.Create(ctx, CreateSessionParams{
		BookID:    book.ID,
		Date:      day("2025-04-01").Add(9 * time.Hour),
		PagesRead: 30,
		Summary:   "morning",
	})
	require.NoError(t, err)

	// Same calendar day at a different time of day folds into the
	// existing session. Pages add up, the summary is replaced.
	second, err := svc.Create(ctx, CreateSessionParams{
		BookID:    book.ID,
		Date:      day("2025-04-01").Add(21 * time.Hour),
		PagesRead: 25,
		Summary:   "evening",
	})
	require.NoError(t, err)
	assert.Equal(t, first.ID, second.ID)
	assert.Equal(t, 55, second.PagesRead)
	assert.Equal(t, "evening", second.Summary)

	all, err := svc.List(ctx)
	require.NoError(t, err)
	assert.Len(t, all, 1)
}

func TestSessionService_Create_MergeKeepsSummaryWhenEmpty(t *testing.T) {
	h := newHarness(t)
	svc := NewSessionService(h.store, h.cache, h.logger)
	ctx := context.Background()
	book := h.createBook(t, 300)

	_, err := svc.Create(ctx, CreateSessionParams{
		BookID: book.ID, Date: day("2025-04-01"), PagesRead: 30, Summary: "kept",
	})
	require.NoError(t, err)

	merged, err := svc.Create(ctx, CreateSessionParams{
		BookID: book.ID, Date: day("2025-04-01"), PagesRead: 10,
	})
	require.NoError(t, err)
	assert.Equal(t, "kept", merged.Summary)
}

func TestSessionService_Create_BookNotFound(t *testing.T) {
	h := newHarness(t)
	svc := NewSessionService(h.store, h.cache, h.logger)

	_, err := svc.Create(context.Background(), CreateSessionParams{
		BookID: "book_missing", Date: day("2025-04-01"), PagesRead: 10,
	})
	assert.ErrorIs(t, err, apperrors.ErrNotFound)
}

func TestSessionService_Create_RejectsFutureDate(t *testing.T) {
	h := newHarness(t)
	svc := NewSessionService(h.store, h.cache, h.logger)
	ctx := context.Background()
	book := h.createBook(t, 300)

	_, err := svc.Create(ctx, CreateSessionParams{
		BookID: book.ID, Date: time.Now().AddDate(0, 0, 7), PagesRead: 10,
	})
	assert.ErrorIs(t, err, apperrors.ErrValidation)

	// Nothing was persisted.
	all, err := svc.List(ctx)
	require.NoError(t, err)
	assert.Empty(t, all)

	// Today itself is fine, regardless of time of day.
	_, err = svc.Create(ctx, CreateSessionParams{
		BookID: book.ID, Date: time.Now(), PagesRead: 10,
	})
	assert.NoError(t, err)
}

func TestSessionService_Update_RejectsFutureDate(t *testing.T) {
	h := newHarness(t)
	svc := NewSessionService(h.store, h.cache, h.logger)
	ctx := context.Background()
	book := h.createBook(t, 300)

	created, err := svc.Create(ctx, CreateSessionParams{
		BookID: book.ID, Date: day("2025-04-01"), PagesRead: 10,
	})
	require.NoError(t, err)

	future := time.Now().AddDate(0, 0, 7)
	_, err = svc.Update(ctx, created.ID, UpdateSessionParams{Date: &future})
	assert.ErrorIs(t, err, apperrors.ErrValidation)

	got, err := svc.Get(ctx, created.ID)
	require.NoError(t, err)
	assert.Equal(t, day("2025-04-01"), got.Date.UTC())
}

func TestSessionService_Update(t *testing.T) {
	h := newHarness(t)
	svc := NewSessionService(h.store, h.cache, h.logger)
	ctx := context.Background()
	book := h.createBook(t, 300)

	created, err := svc.Create(ctx, CreateSessionParams{
		BookID: book.ID, Date: day("2025-04-01"), PagesRead: 40,
	})
	require.NoError(t, err)

	pages := 55
	newDate := day("2025-04-02")
	updated, err := svc.Update(ctx, created.ID, UpdateSessionParams{
		Date:      &newDate,
		PagesRead: &pages,
	})
	require.NoError(t, err)
	assert.Equal(t, 55, updated.PagesRead)
	assert.Equal(t, newDate, updated.Date)
}

func TestSessionService_Update_ConflictOnOccupiedDay(t *testing.T) {
	h := newHarness(t)
	svc := NewSessionService(h.store, h.cache, h.logger)
	ctx := context.Background()
	book := h.createBook(t, 300)

	_, err := svc.Create(ctx, CreateSessionParams{
		BookID: book.ID, Date: day("2025-04-01"), PagesRead: 40,
	})
	require.NoError(t, err)

	movable, err := svc.Create(ctx, CreateSessionParams{
		BookID: book.ID, Date: day("2025-04-02"), PagesRead: 20,
	})
	require.NoError(t, err)

	// Update never merges. Moving onto an occupied day is refused.
	occupied := day("2025-04-01")
	_, err = svc.Update(ctx, movable.ID, UpdateSessionParams{Date: &occupied})
	assert.ErrorIs(t, err, apperrors.ErrConflict)
}

func TestSessionService_Update_SameDayNoConflictWithItself(t *testing.T) {
	h := newHarness(t)
	svc := NewSessionService(h.store, h.cache, h.logger)
	ctx := context.Background()
	book := h.createBook(t, 300)

	created, err := svc.Create(ctx, CreateSessionParams{
		BookID: book.ID, Date: day("2025-04-01"), PagesRead: 40,
	})
	require.NoError(t, err)

	pages := 45
	updated, err := svc.Update(ctx, created.ID, UpdateSessionParams{PagesRead: &pages})
	require.NoError(t, err)
	assert.Equal(t, 45, updated.PagesRead)
}

func TestSessionService_Delete(t *testing.T) {
	h := newHarness(t)
	svc := NewSessionService(h.store, h.cache, h.logger)
	ctx := context.Background()
	book := h.createBook(t, 300)

	created, err := svc.Create(ctx, CreateSessionParams{
		BookID: book.ID, Date: day("2025-04-01"), PagesRead: 40,
	})
	require.NoError(t, err)

	require.NoError(t, svc.Delete(ctx, created.ID))

	_, err = svc.Get(ctx, created.ID)
	assert.ErrorIs(t, err, apperrors.ErrNotFound)

	err = svc.Delete(ctx, created.ID)
	assert.ErrorIs(t, err, apperrors.ErrNotFound)
}
