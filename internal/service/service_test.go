package service

import (
	"context"
	"io"
	"log/slog"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/shelfmark/shelfmark-server/internal/cache"
	"github.com/shelfmark/shelfmark-server/internal/domain"
	"github.com/shelfmark/shelfmark-server/internal/id"
	"github.com/shelfmark/shelfmark-server/internal/store"
	"github.com/shelfmark/shelfmark-server/internal/store/sqlite"
)

// harness wires a real sqlite store and cache for service tests, skipping
// the search index.
type harness struct {
	store  store.Store
	cache  *cache.Cache
	logger *slog.Logger
}

func newHarness(t *testing.T) *harness {
	t.Helper()

	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	st, err := sqlite.Open(filepath.Join(t.TempDir(), "test.db"), logger)
	require.NoError(t, err)

	c := cache.New(logger)

	t.Cleanup(func() {
		c.Close()
		st.Close()
	})

	return &harness{store: st, cache: c, logger: logger}
}

func (h *harness) createBook(t *testing.T, totalPages int) *domain.Book {
	t.Helper()
	ctx := context.Background()

	author := &domain.Author{ID: id.MustGenerate("author"), Name: "Test Author"}
	author.InitTimestamps()
	require.NoError(t, h.store.CreateAuthor(ctx, author))

	book := &domain.Book{
		ID:         id.MustGenerate("book"),
		AuthorID:   author.ID,
		Title:      "Test Book",
		TotalPages: totalPages,
		Status:     domain.StatusCurrentlyReading,
	}
	book.InitTimestamps()
	require.NoError(t, h.store.CreateBook(ctx, book))
	return book
}
