package service

import (
	"context"
	"log/slog"

	"github.com/shelfmark/shelfmark-server/internal/domain"
	"github.com/shelfmark/shelfmark-server/internal/search"
	"github.com/shelfmark/shelfmark-server/internal/store"
)

// SearchService keeps the Bleve index in sync with the store and serves
// queries. Index maintenance is best effort: a failed write is logged but
// never fails the originating operation, since the store remains the source
// of truth and a reindex repairs the gap.
type SearchService struct {
	store  store.Store
	index  *search.Index
	logger *slog.Logger
}

// NewSearchService creates a new search service.
func NewSearchService(st store.Store, idx *search.Index, logger *slog.Logger) *SearchService {
	return &SearchService{
		store:  st,
		index:  idx,
		logger: logger,
	}
}

// Search runs a query against the index.
func (s *SearchService) Search(ctx context.Context, params search.Params) (*search.Result, error) {
	return s.index.Search(ctx, params)
}

// DocumentCount returns the number of indexed documents.
func (s *SearchService) DocumentCount() (uint64, error) {
	return s.index.DocumentCount()
}

// IndexBook adds or refreshes a book document.
func (s *SearchService) IndexBook(book *domain.Book, authorName string) {
	if err := s.index.IndexDocument(search.BookDocument(book, authorName)); err != nil {
		s.logger.Warn("index book failed", "book_id", book.ID, "error", err)
	}
}

// IndexAuthor adds or refreshes an author document.
func (s *SearchService) IndexAuthor(author *domain.Author) {
	if err := s.index.IndexDocument(search.AuthorDocument(author)); err != nil {
		s.logger.Warn("index author failed", "author_id", author.ID, "error", err)
	}
}

// IndexTag adds or refreshes a tag document.
func (s *SearchService) IndexTag(tag *domain.Tag) {
	if err := s.index.IndexDocument(search.TagDocument(tag)); err != nil {
		s.logger.Warn("index tag failed", "tag_id", tag.ID, "error", err)
	}
}

// RemoveDocument drops one document from the index.
func (s *SearchService) RemoveDocument(id string) {
	if err := s.index.DeleteDocument(id); err != nil {
		s.logger.Warn("remove search document failed", "id", id, "error", err)
	}
}

// ReindexBooksForAuthor refreshes the book documents of one author, picking
// up a renamed author on the denormalized field.
func (s *SearchService) ReindexBooksForAuthor(ctx context.Context, authorID string) {
	author, err := s.store.GetAuthor(ctx, authorID)
	if err != nil {
		s.logger.Warn("reindex author books: load author failed", "author_id", authorID, "error", err)
		return
	}
	books, err := s.store.ListBooks(ctx, store.BookFilter{AuthorID: authorID})
	if err != nil {
		s.logger.Warn("reindex author books: list failed", "author_id", authorID, "error", err)
		return
	}
	for _, b := range books {
		s.IndexBook(b, author.Name)
	}
}

// ReindexAll rebuilds the whole index from the store. Called at startup so
// the index always reflects the database, whatever happened to the files
// on disk.
func (s *SearchService) ReindexAll(ctx context.Context) error {
	authors, err := s.store.ListAuthors(ctx)
	if err != nil {
		return err
	}
	authorNames := make(map[string]string, len(authors))

	var docs []*search.Document
	for _, a := range authors {
		authorNames[a.ID] = a.Name
		docs = append(docs, search.AuthorDocument(a))
	}

	books, err := s.store.ListBooks(ctx, store.BookFilter{})
	if err != nil {
		return err
	}
	for _, b := range books {
		docs = append(docs, search.BookDocument(b, authorNames[b.AuthorID]))
	}

	tags, err := s.store.ListTags(ctx)
	if err != nil {
		return err
	}
	for _, t := range tags {
		docs = append(docs, search.TagDocument(t))
	}

	if err := s.index.IndexDocuments(docs); err != nil {
		return err
	}

	s.logger.Info("search reindex complete",
		"authors", len(authors),
		"books", len(books),
		"tags", len(tags),
	)
	return nil
}
