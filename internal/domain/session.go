package domain

import "time"

// ReadingSession records pages read in a single book on a single calendar day.
// Invariant: at most one session exists per (BookID, calendar day). The store
// enforces this with a unique index; the service layer merges same-day
// creates instead of surfacing the constraint violation.
type ReadingSession struct {
	ID        string    `json:"id"`
	BookID    string    `json:"book_id"`
	Date      time.Time `json:"date"`
	PagesRead int       `json:"pages_read"`
	Summary   string    `json:"summary,omitempty"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// InitTimestamps sets creation and update timestamps to now.
func (s *ReadingSession) InitTimestamps() {
	now := time.Now().UTC()
	s.CreatedAt = now
	s.UpdatedAt = now
}

// Touch updates the UpdatedAt timestamp.
func (s *ReadingSession) Touch() {
	s.UpdatedAt = time.Now().UTC()
}

// MergePages folds another same-day reading into this session: page counts
// accumulate, the summary is replaced (last writer wins).
func (s *ReadingSession) MergePages(pages int, summary string) {
	s.PagesRead += pages
	if summary != "" {
		s.Summary = summary
	}
	s.Touch()
}

// DayOf truncates a time to its UTC calendar day. Time-of-day on session
// dates carries no meaning; all per-day comparisons go through this.
func DayOf(t time.Time) time.Time {
	year, month, day := t.UTC().Date()
	return time.Date(year, month, day, 0, 0, 0, 0, time.UTC)
}

// SameDay reports whether two times fall on the same UTC calendar day.
func SameDay(a, b time.Time) bool {
	return DayOf(a).Equal(DayOf(b))
}
