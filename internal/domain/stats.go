package domain

import (
	"math"
	"time"
)

// Round2 rounds to two decimal places, halves away from zero.
func Round2(x float64) float64 {
	return math.Round(x*100) / 100
}

// OverviewStats is the high-level reading summary.
type OverviewStats struct {
	TotalBooksRead        int     `json:"total_books_read"`
	TotalPagesRead        int     `json:"total_pages_read"`
	AveragePagesPerDay    float64 `json:"average_pages_per_day"`
	CurrentStreak         int     `json:"current_streak"`
	LongestStreak         int     `json:"longest_streak"`
	BooksCurrentlyReading int     `json:"books_currently_reading"`
	BooksWantToRead       int     `json:"books_want_to_read"`
}

// AuthorBookCount ranks an author by number of finished books.
type AuthorBookCount struct {
	AuthorID  string `json:"author_id"`
	Name      string `json:"name"`
	BookCount int    `json:"book_count"`
}

// AuthorPageCount ranks an author by pages read across their books.
type AuthorPageCount struct {
	AuthorID   string `json:"author_id"`
	Name       string `json:"name"`
	TotalPages int    `json:"total_pages"`
}

// AuthorStats aggregates finished books by author.
type AuthorStats struct {
	UniqueAuthors  int               `json:"unique_authors"`
	BooksPerAuthor []AuthorBookCount `json:"books_per_author"`
	PagesPerAuthor []AuthorPageCount `json:"pages_per_author"`
	MostReadAuthor string            `json:"most_read_author"`
	DiversityScore float64           `json:"diversity_score"`
}

// TagBookCount ranks a tag by number of distinct finished books carrying it.
type TagBookCount struct {
	TagID     string `json:"tag_id"`
	Name      string `json:"name"`
	BookCount int    `json:"book_count"`
}

// TagPageCount ranks a tag by pages read across its books.
type TagPageCount struct {
	TagID      string `json:"tag_id"`
	Name       string `json:"name"`
	TotalPages int    `json:"total_pages"`
}

// TagStats aggregates finished books by tag.
type TagStats struct {
	UniqueTags     int            `json:"unique_tags"`
	BooksPerTag    []TagBookCount `json:"books_per_tag"`
	PagesPerTag    []TagPageCount `json:"pages_per_tag"`
	MostReadTag    string         `json:"most_read_tag"`
	DiversityScore float64        `json:"diversity_score"`
}

// MonthlyPages is a single month bucket, keyed "YYYY-MM".
type MonthlyPages struct {
	Month string `json:"month"`
	Pages int    `json:"pages"`
}

// WeekdayPages is a single day-of-week bucket.
type WeekdayPages struct {
	Weekday string `json:"weekday"`
	Pages   int    `json:"pages"`
}

// YearlyPages is a single calendar-year bucket.
type YearlyPages struct {
	Year  int `json:"year"`
	Pages int `json:"pages"`
}

// TimeStats aggregates pages read across calendar buckets. MonthlyPattern
// covers the trailing twelve months only; the weekly and yearly patterns
// span all sessions.
type TimeStats struct {
	MonthlyPattern []MonthlyPages `json:"monthly_pattern"`
	WeeklyPattern  []WeekdayPages `json:"weekly_pattern"`
	YearOverYear   []YearlyPages  `json:"year_over_year"`
	BestMonth      string         `json:"best_month"`
	BestWeekday    string         `json:"best_weekday"`
}

// GoalProgress reports one book's cumulative pages against its goal tiers.
type GoalProgress struct {
	BookID         string  `json:"book_id"`
	Title          string  `json:"title"`
	PagesRead      int     `json:"pages_read"`
	LowProgress    float64 `json:"low_progress"`
	MediumProgress float64 `json:"medium_progress"`
	HighProgress   float64 `json:"high_progress"`
}

// GoalPerformance aggregates reading goals. The per-tier success counters
// and on-time/overdue counters are not computed yet and always report 0.
type GoalPerformance struct {
	CompletionRate        float64        `json:"completion_rate"`
	AverageDaysToComplete float64        `json:"average_days_to_complete"`
	Progress              []GoalProgress `json:"progress"`
	LowGoalSuccesses      int            `json:"low_goal_successes"`
	MediumGoalSuccesses   int            `json:"medium_goal_successes"`
	HighGoalSuccesses     int            `json:"high_goal_successes"`
	OnTimeCompletions     int            `json:"on_time_completions"`
	OverdueCompletions    int            `json:"overdue_completions"`
}

// BookRef identifies a book inside a statistics report.
type BookRef struct {
	ID         string `json:"id"`
	Title      string `json:"title"`
	TotalPages int    `json:"total_pages"`
}

// BookStats aggregates the library itself rather than reading activity.
type BookStats struct {
	AveragePageCount       float64        `json:"average_page_count"`
	ShortestBook           *BookRef       `json:"shortest_book,omitempty"`
	LongestBook            *BookRef       `json:"longest_book,omitempty"`
	AveragePagesPerSession float64        `json:"average_pages_per_session"`
	CompletionRate         float64        `json:"completion_rate"`
	BooksByStatus          map[string]int `json:"books_by_status"`
}

// DayRecord is the single calendar day with the most pages read.
type DayRecord struct {
	Date  string `json:"date"`
	Pages int    `json:"pages"`
}

// WeekRecord is the single ISO week with the most pages read. WeekStart is
// the Monday that opens the week, so the record stays anchored to a real
// date rather than a bare week number.
type WeekRecord struct {
	Year      int       `json:"year"`
	Week      int       `json:"week"`
	WeekStart time.Time `json:"week_start"`
	Pages     int       `json:"pages"`
}

// MonthRecord is the single calendar month with the most pages read.
type MonthRecord struct {
	Month string `json:"month"`
	Pages int    `json:"pages"`
}

// CompletionRecord is the fastest start-to-finish read.
type CompletionRecord struct {
	BookID string `json:"book_id"`
	Title  string `json:"title"`
	Days   int    `json:"days"`
}

// Records holds the personal bests.
type Records struct {
	BestDay           *DayRecord        `json:"best_day,omitempty"`
	BestWeek          *WeekRecord       `json:"best_week,omitempty"`
	BestMonth         *MonthRecord      `json:"best_month,omitempty"`
	FastestCompletion *CompletionRecord `json:"fastest_completion,omitempty"`
	TotalReadingDays  int               `json:"total_reading_days"`
}

// CompleteStats is the union of all seven reports.
type CompleteStats struct {
	Overview OverviewStats   `json:"overview"`
	Authors  AuthorStats     `json:"authors"`
	Tags     TagStats        `json:"tags"`
	Time     TimeStats       `json:"time_based"`
	Goals    GoalPerformance `json:"goals"`
	Books    BookStats       `json:"books"`
	Records  Records         `json:"records"`
}
