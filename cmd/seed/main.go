// Package main provides a tool to seed the database with demo reading data.
//
// This creates a small library of authors, books, and tags, then generates
// reading sessions over the past two weeks to exercise streaks, heatmaps,
// and the statistics reports.
//
// Usage:
//
//	DATA_PATH=~/Shelfmark/data go run ./cmd/seed
//	DATA_PATH=~/Shelfmark/data go run ./cmd/seed --wipe-sessions  # Regenerate sessions
package main

import (
	"context"
	"flag"
	"fmt"
	"log/slog"
	"math/rand"
	"os"
	"path/filepath"
	"time"

	"github.com/shelfmark/shelfmark-server/internal/domain"
	"github.com/shelfmark/shelfmark-server/internal/id"
	"github.com/shelfmark/shelfmark-server/internal/store/sqlite"
)

var wipeSessions = flag.Bool("wipe-sessions", false, "Delete existing reading sessions before seeding new ones")

// seedBook describes one book to create, with its author and tags by name.
type seedBook struct {
	title      string
	author     string
	pages      int
	status     domain.ReadingStatus
	tags       []string
	daysToRead int // span between started and completed, for finished books
}

var seedAuthors = map[string]string{
	"Ursula K. Le Guin": "American author of speculative fiction.",
	"Octavia E. Butler": "Pioneering science fiction writer.",
	"Italo Calvino":     "Italian journalist and writer of fantastical fiction.",
	"N.K. Jemisin":      "Author of the Broken Earth trilogy.",
}

var seedBooks = []seedBook{
	{"A Wizard of Earthsea", "Ursula K. Le Guin", 183, domain.StatusCompleted, []string{"fantasy", "classic"}, 6},
	{"The Dispossessed", "Ursula K. Le Guin", 387, domain.StatusSummarized, []string{"science fiction", "classic"}, 14},
	{"Kindred", "Octavia E. Butler", 264, domain.StatusCompleted, []string{"science fiction"}, 9},
	{"Parable of the Sower", "Octavia E. Butler", 345, domain.StatusCurrentlyReading, []string{"science fiction"}, 0},
	{"Invisible Cities", "Italo Calvino", 165, domain.StatusPlanning, []string{"classic"}, 0},
	{"The Fifth Season", "N.K. Jemisin", 468, domain.StatusNotReading, []string{"fantasy"}, 0},
}

func main() {
	flag.Parse()

	dataPath := os.Getenv("DATA_PATH")
	if dataPath == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			fmt.Fprintf(os.Stderr, "Failed to resolve home directory: %v\n", err)
			os.Exit(1)
		}
		dataPath = filepath.Join(home, "Shelfmark", "data")
	}

	if err := os.MkdirAll(dataPath, 0o755); err != nil {
		fmt.Fprintf(os.Stderr, "Failed to create data directory: %v\n", err)
		os.Exit(1)
	}

	dbPath := filepath.Join(dataPath, "shelfmark.db")
	fmt.Printf("Opening database at: %s\n", dbPath)

	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelWarn}))
	s, err := sqlite.Open(dbPath, logger)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to open store: %v\n", err)
		os.Exit(1)
	}
	defer s.Close()

	ctx := context.Background()

	if *wipeSessions {
		wipeExistingSessions(ctx, s)
	}

	authorIDs := seedAuthorsAndTags(ctx, s)
	books := seedLibrary(ctx, s, authorIDs)
	seedSessions(ctx, s, books)
	seedGoal(ctx, s, books)

	fmt.Println("\nSeeding complete!")
}

// wipeExistingSessions removes every reading session so the generator can
// produce a fresh two-week history.
func wipeExistingSessions(ctx context.Context, s *sqlite.Store) {
	sessions, err := s.ListReadingSessions(ctx)
	if err != nil {
		fmt.Printf("Failed to list sessions: %v\n", err)
		return
	}
	for _, sess := range sessions {
		if err := s.DeleteReadingSession(ctx, sess.ID); err != nil {
			fmt.Printf("Failed to delete session %s: %v\n", sess.ID, err)
		}
	}
	fmt.Printf("Wiped %d existing sessions\n", len(sessions))
}

// seedAuthorsAndTags creates the demo authors and tags, skipping any that
// already exist. Returns author IDs keyed by name.
func seedAuthorsAndTags(ctx context.Context, s *sqlite.Store) map[string]string {
	authorIDs := make(map[string]string)

	existing, err := s.ListAuthors(ctx)
	if err != nil {
		fmt.Printf("Failed to list authors: %v\n", err)
		os.Exit(1)
	}
	for _, a := range existing {
		authorIDs[a.Name] = a.ID
	}

	for name, bio := range seedAuthors {
		if _, ok := authorIDs[name]; ok {
			fmt.Printf("Author %q already exists, skipping\n", name)
			continue
		}
		author := &domain.Author{
			ID:   id.MustGenerate("author"),
			Name: name,
			Bio:  bio,
		}
		author.InitTimestamps()
		if err := s.CreateAuthor(ctx, author); err != nil {
			fmt.Printf("Failed to create author %q: %v\n", name, err)
			continue
		}
		authorIDs[name] = author.ID
		fmt.Printf("Created author: %s\n", name)
	}

	tagNames := map[string]bool{}
	for _, b := range seedBooks {
		for _, tag := range b.tags {
			tagNames[tag] = true
		}
	}
	for name := range tagNames {
		if _, err := s.GetTagByName(ctx, name); err == nil {
			continue
		}
		tag := &domain.Tag{ID: id.MustGenerate("tag"), Name: name}
		tag.InitTimestamps()
		if err := s.CreateTag(ctx, tag); err != nil {
			fmt.Printf("Failed to create tag %q: %v\n", name, err)
		}
	}

	return authorIDs
}

// seedLibrary creates the demo books and links their tags. Books whose title
// is already in the database are skipped, so the tool is safe to re-run.
func seedLibrary(ctx context.Context, s *sqlite.Store, authorIDs map[string]string) []*domain.Book {
	now := time.Now().UTC()
	var books []*domain.Book

	for _, sb := range seedBooks {
		// Title lookup goes through the LIKE fallback rather than the
		// search index; the index may not exist when seeding a fresh
		// database.
		if found, err := s.SearchBooks(ctx, sb.title); err == nil && len(found) > 0 {
			fmt.Printf("Book %q already exists, skipping\n", sb.title)
			books = append(books, found[0])
			continue
		}

		authorID, ok := authorIDs[sb.author]
		if !ok {
			fmt.Printf("No author for book %q, skipping\n", sb.title)
			continue
		}

		book := &domain.Book{
			ID:         id.MustGenerate("book"),
			AuthorID:   authorID,
			Title:      sb.title,
			TotalPages: sb.pages,
			Status:     sb.status,
		}
		switch {
		case sb.status.Finished():
			completed := now.AddDate(0, 0, -rand.Intn(60))
			started := completed.AddDate(0, 0, -sb.daysToRead)
			book.StartedReadingDate = &started
			book.CompletedDate = &completed
		case sb.status == domain.StatusCurrentlyReading:
			started := now.AddDate(0, 0, -7)
			book.StartedReadingDate = &started
		}
		book.InitTimestamps()

		if err := s.CreateBook(ctx, book); err != nil {
			fmt.Printf("Failed to create book %q: %v\n", sb.title, err)
			continue
		}
		fmt.Printf("Created book: %s (%s)\n", sb.title, sb.status)

		for _, tagName := range sb.tags {
			tag, err := s.GetTagByName(ctx, tagName)
			if err != nil {
				continue
			}
			if err := s.AddTagToBook(ctx, book.ID, tag.ID); err != nil {
				fmt.Printf("Failed to tag %q with %q: %v\n", sb.title, tagName, err)
			}
		}

		books = append(books, book)
	}

	return books
}

// seedSessions generates reading sessions over the past 14 days. Today and
// yesterday always get a session so the streak is active; older days read
// with 80% probability. One session per book per day.
func seedSessions(ctx context.Context, s *sqlite.Store, books []*domain.Book) {
	if len(books) == 0 {
		return
	}

	rng := rand.New(rand.NewSource(time.Now().UnixNano()))
	now := time.Now().UTC()
	created := 0

	for day := 13; day >= 0; day-- {
		if day > 1 && rng.Float32() > 0.8 {
			continue
		}

		date := time.Date(now.Year(), now.Month(), now.Day()-day, 0, 0, 0, 0, time.UTC)

		// Read 1-2 different books on this day.
		booksToday := 1 + rng.Intn(2)
		order := rng.Perm(len(books))

		for n := 0; n < booksToday && n < len(order); n++ {
			book := books[order[n]]

			if existing, err := s.GetReadingSessionForBookDate(ctx, book.ID, date); err == nil && existing != nil {
				continue
			}

			session := &domain.ReadingSession{
				ID:        id.MustGenerate("rs"),
				BookID:    book.ID,
				Date:      date,
				PagesRead: 10 + rng.Intn(50),
			}
			session.InitTimestamps()

			if err := s.CreateReadingSession(ctx, session); err != nil {
				fmt.Printf("Failed to create session: %v\n", err)
				continue
			}
			created++
		}
	}

	fmt.Printf("Created %d reading sessions across %d books\n", created, len(books))
}

// seedGoal attaches a tiered goal to the first currently-reading book.
func seedGoal(ctx context.Context, s *sqlite.Store, books []*domain.Book) {
	for _, book := range books {
		if book.Status != domain.StatusCurrentlyReading {
			continue
		}
		if existing, err := s.GetReadingGoalForBook(ctx, book.ID); err == nil && existing != nil {
			fmt.Printf("Goal already exists for %q, skipping\n", book.Title)
			return
		}

		goal := &domain.ReadingGoal{
			ID:         id.MustGenerate("goal"),
			BookID:     book.ID,
			LowGoal:    book.TotalPages / 4,
			MediumGoal: book.TotalPages / 2,
			HighGoal:   book.TotalPages,
		}
		goal.InitTimestamps()

		if err := s.CreateReadingGoal(ctx, goal); err != nil {
			fmt.Printf("Failed to create goal for %q: %v\n", book.Title, err)
			return
		}
		fmt.Printf("Created goal for: %s (%d/%d/%d pages)\n",
			book.Title, goal.LowGoal, goal.MediumGoal, goal.HighGoal)
		return
	}
}
