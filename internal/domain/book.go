package domain

import "time"

// Book represents a tracked book owned by an author.
type Book struct {
	ID                 string        `json:"id"`
	AuthorID           string        `json:"author_id"`
	Title              string        `json:"title"`
	TotalPages         int           `json:"total_pages"`
	Status             ReadingStatus `json:"status"`
	StartedReadingDate *time.Time    `json:"started_reading_date,omitempty"`
	CompletedDate      *time.Time    `json:"completed_date,omitempty"`
	Summary            string        `json:"summary,omitempty"`
	CreatedAt          time.Time     `json:"created_at"`
	UpdatedAt          time.Time     `json:"updated_at"`
}

// InitTimestamps sets creation and update timestamps to now.
func (b *Book) InitTimestamps() {
	now := time.Now().UTC()
	b.CreatedAt = now
	b.UpdatedAt = now
}

// Touch updates the UpdatedAt timestamp.
func (b *Book) Touch() {
	b.UpdatedAt = time.Now().UTC()
}

// DaysToComplete returns the elapsed days between the started and completed
// dates. The second return is false when either date is missing.
func (b *Book) DaysToComplete() (int, bool) {
	if b.StartedReadingDate == nil || b.CompletedDate == nil {
		return 0, false
	}
	days := int(DayOf(*b.CompletedDate).Sub(DayOf(*b.StartedReadingDate)).Hours() / 24)
	if days < 0 {
		return 0, false
	}
	return days, true
}
