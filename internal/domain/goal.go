package domain

import (
	"fmt"
	"time"
)

// ReadingGoal attaches three ascending page thresholds to a book.
// One goal per book.
type ReadingGoal struct {
	ID         string    `json:"id"`
	BookID     string    `json:"book_id"`
	LowGoal    int       `json:"low_goal"`
	MediumGoal int       `json:"medium_goal"`
	HighGoal   int       `json:"high_goal"`
	CreatedAt  time.Time `json:"created_at"`
	UpdatedAt  time.Time `json:"updated_at"`
}

// InitTimestamps sets creation and update timestamps to now.
func (g *ReadingGoal) InitTimestamps() {
	now := time.Now().UTC()
	g.CreatedAt = now
	g.UpdatedAt = now
}

// Touch updates the UpdatedAt timestamp.
func (g *ReadingGoal) Touch() {
	g.UpdatedAt = time.Now().UTC()
}

// Validate checks the threshold ordering invariant: 0 < low < medium < high.
func (g *ReadingGoal) Validate() error {
	if g.LowGoal <= 0 {
		return fmt.Errorf("low goal must be positive, got %d", g.LowGoal)
	}
	if g.MediumGoal <= g.LowGoal {
		return fmt.Errorf("medium goal (%d) must exceed low goal (%d)", g.MediumGoal, g.LowGoal)
	}
	if g.HighGoal <= g.MediumGoal {
		return fmt.Errorf("high goal (%d) must exceed medium goal (%d)", g.HighGoal, g.MediumGoal)
	}
	return nil
}

// TierProgress returns the percentage progress of pagesRead against each of
// the three thresholds, rounded to 2 decimals. A zero threshold yields 0.
func (g *ReadingGoal) TierProgress(pagesRead int) (low, medium, high float64) {
	return tierPct(pagesRead, g.LowGoal), tierPct(pagesRead, g.MediumGoal), tierPct(pagesRead, g.HighGoal)
}

func tierPct(pages, threshold int) float64 {
	if threshold == 0 {
		return 0
	}
	return Round2(float64(pages) / float64(threshold) * 100)
}
