package domain

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestMergePages_AccumulatesAndReplacesSummary(t *testing.T) {
	s := ReadingSession{PagesRead: 50, Summary: "first fifty"}
	s.MergePages(75, "great chapter")

	assert.Equal(t, 125, s.PagesRead)
	assert.Equal(t, "great chapter", s.Summary)
}

func TestMergePages_EmptySummaryKeepsExisting(t *testing.T) {
	s := ReadingSession{PagesRead: 10, Summary: "notes"}
	s.MergePages(5, "")

	assert.Equal(t, 15, s.PagesRead)
	assert.Equal(t, "notes", s.Summary)
}

func TestDayOf_TruncatesToUTCDate(t *testing.T) {
	loc := time.FixedZone("UTC+5", 5*3600)
	in := time.Date(2025, 6, 10, 2, 30, 0, 0, loc) // 2025-06-09 21:30 UTC

	got := DayOf(in)
	assert.Equal(t, time.Date(2025, 6, 9, 0, 0, 0, 0, time.UTC), got)
}

func TestSameDay(t *testing.T) {
	a := time.Date(2025, 6, 10, 0, 5, 0, 0, time.UTC)
	b := time.Date(2025, 6, 10, 23, 59, 0, 0, time.UTC)
	c := time.Date(2025, 6, 11, 0, 0, 0, 0, time.UTC)

	assert.True(t, SameDay(a, b))
	assert.False(t, SameDay(b, c))
}
