package service

import (
	"context"
	"fmt"
	"log/slog"
	"slices"
	"sort"
	"time"

	"github.com/shelfmark/shelfmark-server/internal/cache"
	"github.com/shelfmark/shelfmark-server/internal/config"
	"github.com/shelfmark/shelfmark-server/internal/domain"
	"github.com/shelfmark/shelfmark-server/internal/store"
)

// StatsService computes the aggregate reading reports, the streak, and the
// heatmap. Every report is derived from fully-loaded collections and cached
// under its own key; session and book mutations invalidate the cache.
type StatsService struct {
	store      store.Store
	cache      *cache.Cache
	statsTTL   time.Duration
	streakTTL  time.Duration
	heatmapTTL time.Duration
	logger     *slog.Logger
}

// NewStatsService creates a new stats service.
func NewStatsService(st store.Store, c *cache.Cache, cfg config.CacheConfig, logger *slog.Logger) *StatsService {
	return &StatsService{
		store:      st,
		cache:      c,
		statsTTL:   cfg.StatsTTL,
		streakTTL:  cfg.StreakTTL,
		heatmapTTL: cfg.HeatmapTTL,
		logger:     logger,
	}
}

// Streak returns the current and longest consecutive-day reading streaks.
func (s *StatsService) Streak(ctx context.Context) (domain.Streak, error) {
	return cache.GetOrCompute(ctx, s.cache, cache.KeyStreak, s.streakTTL,
		func(ctx context.Context) (domain.Streak, error) {
			sessions, err := s.store.ListReadingSessions(ctx)
			if err != nil {
				return domain.Streak{}, err
			}
			dates := make([]time.Time, len(sessions))
			for i, rs := range sessions {
				dates[i] = rs.Date
			}
			return domain.ComputeStreak(dates, time.Now().UTC()), nil
		})
}

// Heatmap returns per-day pages read for one calendar year.
func (s *StatsService) Heatmap(ctx context.Context, year int) (domain.Heatmap, error) {
	return cache.GetOrCompute(ctx, s.cache, cache.KeyHeatmap(year), s.heatmapTTL,
		func(ctx context.Context) (domain.Heatmap, error) {
			sessions, err := s.store.ListReadingSessionsForYear(ctx, year)
			if err != nil {
				return domain.Heatmap{}, err
			}
			return domain.BuildHeatmap(year, deref(sessions)), nil
		})
}

// Overview returns the high-level reading summary.
func (s *StatsService) Overview(ctx context.Context) (domain.OverviewStats, error) {
	return cache.GetOrCompute(ctx, s.cache, cache.KeyStats("overview"), s.statsTTL,
		func(ctx context.Context) (domain.OverviewStats, error) {
			books, sessions, err := s.loadBooksAndSessions(ctx)
			if err != nil {
				return domain.OverviewStats{}, err
			}
			return computeOverview(books, sessions, time.Now().UTC()), nil
		})
}

// AuthorStats returns per-author aggregates over finished books.
func (s *StatsService) AuthorStats(ctx context.Context) (domain.AuthorStats, error) {
	return cache.GetOrCompute(ctx, s.cache, cache.KeyStats("authors"), s.statsTTL,
		func(ctx context.Context) (domain.AuthorStats, error) {
			authors, err := s.store.ListAuthors(ctx)
			if err != nil {
				return domain.AuthorStats{}, err
			}
			books, sessions, err := s.loadBooksAndSessions(ctx)
			if err != nil {
				return domain.AuthorStats{}, err
			}
			return computeAuthorStats(authors, books, sessions), nil
		})
}

// TagStats returns per-tag aggregates over finished books.
func (s *StatsService) TagStats(ctx context.Context) (domain.TagStats, error) {
	return cache.GetOrCompute(ctx, s.cache, cache.KeyStats("tags"), s.statsTTL,
		func(ctx context.Context) (domain.TagStats, error) {
			tags, err := s.store.ListTags(ctx)
			if err != nil {
				return domain.TagStats{}, err
			}
			links, err := s.store.ListTagAssignments(ctx)
			if err != nil {
				return domain.TagStats{}, err
			}
			books, sessions, err := s.loadBooksAndSessions(ctx)
			if err != nil {
				return domain.TagStats{}, err
			}
			return computeTagStats(tags, links, books, sessions), nil
		})
}

// TimeStats returns pages read bucketed by month, weekday, and year.
func (s *StatsService) TimeStats(ctx context.Context) (domain.TimeStats, error) {
	return cache.GetOrCompute(ctx, s.cache, cache.KeyStats("time"), s.statsTTL,
		func(ctx context.Context) (domain.TimeStats, error) {
			sessions, err := s.store.ListReadingSessions(ctx)
			if err != nil {
				return domain.TimeStats{}, err
			}
			return computeTimeStats(deref(sessions), time.Now().UTC()), nil
		})
}

// GoalPerformance returns goal completion and per-book tier progress.
func (s *StatsService) GoalPerformance(ctx context.Context) (domain.GoalPerformance, error) {
	return cache.GetOrCompute(ctx, s.cache, cache.KeyStats("goals"), s.statsTTL,
		func(ctx context.Context) (domain.GoalPerformance, error) {
			goals, err := s.store.ListReadingGoals(ctx)
			if err != nil {
				return domain.GoalPerformance{}, err
			}
			books, sessions, err := s.loadBooksAndSessions(ctx)
			if err != nil {
				return domain.GoalPerformance{}, err
			}
			return computeGoalPerformance(deref(goals), books, sessions), nil
		})
}

// BookStats returns library-level aggregates.
func (s *StatsService) BookStats(ctx context.Context) (domain.BookStats, error) {
	return cache.GetOrCompute(ctx, s.cache, cache.KeyStats("books"), s.statsTTL,
		func(ctx context.Context) (domain.BookStats, error) {
			books, sessions, err := s.loadBooksAndSessions(ctx)
			if err != nil {
				return domain.BookStats{}, err
			}
			return computeBookStats(books, sessions), nil
		})
}

// Records returns the personal bests.
func (s *StatsService) Records(ctx context.Context) (domain.Records, error) {
	return cache.GetOrCompute(ctx, s.cache, cache.KeyStats("records"), s.statsTTL,
		func(ctx context.Context) (domain.Records, error) {
			books, sessions, err := s.loadBooksAndSessions(ctx)
			if err != nil {
				return domain.Records{}, err
			}
			return computeRecords(books, sessions), nil
		})
}

// Complete returns the union of all seven reports. Each sub-report goes
// through its own cached entry point, so a warm cache serves the whole
// thing without recomputation.
func (s *StatsService) Complete(ctx context.Context) (domain.CompleteStats, error) {
	var (
		out domain.CompleteStats
		err error
	)
	if out.Overview, err = s.Overview(ctx); err != nil {
		return out, err
	}
	if out.Authors, err = s.AuthorStats(ctx); err != nil {
		return out, err
	}
	if out.Tags, err = s.TagStats(ctx); err != nil {
		return out, err
	}
	if out.Time, err = s.TimeStats(ctx); err != nil {
		return out, err
	}
	if out.Goals, err = s.GoalPerformance(ctx); err != nil {
		return out, err
	}
	if out.Books, err = s.BookStats(ctx); err != nil {
		return out, err
	}
	if out.Records, err = s.Records(ctx); err != nil {
		return out, err
	}
	return out, nil
}

func (s *StatsService) loadBooksAndSessions(ctx context.Context) ([]domain.Book, []domain.ReadingSession, error) {
	books, err := s.store.ListBooks(ctx, store.BookFilter{})
	if err != nil {
		return nil, nil, err
	}
	sessions, err := s.store.ListReadingSessions(ctx)
	if err != nil {
		return nil, nil, err
	}
	return deref(books), deref(sessions), nil
}

func deref[T any](in []*T) []T {
	out := make([]T, len(in))
	for i, p := range in {
		out[i] = *p
	}
	return out
}

// ---- pure computations ----

func computeOverview(books []domain.Book, sessions []domain.ReadingSession, now time.Time) domain.OverviewStats {
	var out domain.OverviewStats

	for _, b := range books {
		switch {
		case b.Status.Finished():
			out.TotalBooksRead++
		case b.Status == domain.StatusCurrentlyReading:
			out.BooksCurrentlyReading++
		case b.Status == domain.StatusPlanning || b.Status == domain.StatusNotReading:
			out.BooksWantToRead++
		}
	}

	dates := make([]time.Time, len(sessions))
	for i, rs := range sessions {
		out.TotalPagesRead += rs.PagesRead
		dates[i] = rs.Date
	}

	if len(sessions) > 0 {
		earliest := domain.DayOf(sessions[0].Date)
		for _, rs := range sessions[1:] {
			if d := domain.DayOf(rs.Date); d.Before(earliest) {
				earliest = d
			}
		}
		days := int(domain.DayOf(now).Sub(earliest).Hours()/24) + 1
		if days < 1 {
			days = 1
		}
		out.AveragePagesPerDay = domain.Round2(float64(out.TotalPagesRead) / float64(days))
	}

	streak := domain.ComputeStreak(dates, now)
	out.CurrentStreak = streak.CurrentStreak
	out.LongestStreak = streak.LongestStreak

	return out
}

func computeAuthorStats(authors []*domain.Author, books []domain.Book, sessions []domain.ReadingSession) domain.AuthorStats {
	names := make(map[string]string, len(authors))
	for _, a := range authors {
		names[a.ID] = a.Name
	}

	// Only finished books count, for both book and page attribution.
	finishedAuthor := make(map[string]string) // bookID -> authorID
	bookCounts := make(map[string]int)
	for _, b := range books {
		if !b.Status.Finished() {
			continue
		}
		finishedAuthor[b.ID] = b.AuthorID
		bookCounts[b.AuthorID]++
	}

	pageCounts := make(map[string]int)
	for _, rs := range sessions {
		if authorID, ok := finishedAuthor[rs.BookID]; ok {
			pageCounts[authorID] += rs.PagesRead
		}
	}

	out := domain.AuthorStats{
		UniqueAuthors:  len(bookCounts),
		BooksPerAuthor: []domain.AuthorBookCount{},
		PagesPerAuthor: []domain.AuthorPageCount{},
	}

	// Iterate authors in store order (sorted by name) so ties rank
	// deterministically.
	for _, a := range authors {
		if c, ok := bookCounts[a.ID]; ok {
			out.BooksPerAuthor = append(out.BooksPerAuthor, domain.AuthorBookCount{
				AuthorID: a.ID, Name: a.Name, BookCount: c,
			})
		}
		if p, ok := pageCounts[a.ID]; ok {
			out.PagesPerAuthor = append(out.PagesPerAuthor, domain.AuthorPageCount{
				AuthorID: a.ID, Name: a.Name, TotalPages: p,
			})
		}
	}
	slices.SortStableFunc(out.BooksPerAuthor, func(a, b domain.AuthorBookCount) int {
		return b.BookCount - a.BookCount
	})
	slices.SortStableFunc(out.PagesPerAuthor, func(a, b domain.AuthorPageCount) int {
		return b.TotalPages - a.TotalPages
	})
	out.BooksPerAuthor = truncate(out.BooksPerAuthor, 10)
	out.PagesPerAuthor = truncate(out.PagesPerAuthor, 10)

	if len(out.BooksPerAuthor) > 0 {
		out.MostReadAuthor = out.BooksPerAuthor[0].Name
	}
	if totalFinished := len(finishedAuthor); totalFinished > 0 {
		out.DiversityScore = domain.Round2(float64(out.UniqueAuthors) / float64(totalFinished))
	}

	return out
}

func computeTagStats(tags []*domain.Tag, links []store.TagAssignment, books []domain.Book, sessions []domain.ReadingSession) domain.TagStats {
	finished := make(map[string]bool, len(books))
	for _, b := range books {
		if b.Status.Finished() {
			finished[b.ID] = true
		}
	}

	// Distinct finished books per tag. The link table already guarantees a
	// book carries a tag at most once.
	tagBooks := make(map[string]map[string]bool)
	for _, l := range links {
		if !finished[l.BookID] {
			continue
		}
		if tagBooks[l.TagID] == nil {
			tagBooks[l.TagID] = make(map[string]bool)
		}
		tagBooks[l.TagID][l.BookID] = true
	}

	pagesByBook := make(map[string]int)
	for _, rs := range sessions {
		if finished[rs.BookID] {
			pagesByBook[rs.BookID] += rs.PagesRead
		}
	}

	out := domain.TagStats{
		UniqueTags:  len(tagBooks),
		BooksPerTag: []domain.TagBookCount{},
		PagesPerTag: []domain.TagPageCount{},
	}

	for _, t := range tags {
		bookSet, ok := tagBooks[t.ID]
		if !ok {
			continue
		}
		pages := 0
		for bookID := range bookSet {
			pages += pagesByBook[bookID]
		}
		out.BooksPerTag = append(out.BooksPerTag, domain.TagBookCount{
			TagID: t.ID, Name: t.Name, BookCount: len(bookSet),
		})
		out.PagesPerTag = append(out.PagesPerTag, domain.TagPageCount{
			TagID: t.ID, Name: t.Name, TotalPages: pages,
		})
	}
	slices.SortStableFunc(out.BooksPerTag, func(a, b domain.TagBookCount) int {
		return b.BookCount - a.BookCount
	})
	slices.SortStableFunc(out.PagesPerTag, func(a, b domain.TagPageCount) int {
		return b.TotalPages - a.TotalPages
	})
	out.BooksPerTag = truncate(out.BooksPerTag, 10)
	out.PagesPerTag = truncate(out.PagesPerTag, 10)

	if len(out.BooksPerTag) > 0 {
		out.MostReadTag = out.BooksPerTag[0].Name
	}
	if totalFinished := countTrue(finished); totalFinished > 0 {
		out.DiversityScore = domain.Round2(float64(out.UniqueTags) / float64(totalFinished))
	}

	return out
}

func computeTimeStats(sessions []domain.ReadingSession, now time.Time) domain.TimeStats {
	out := domain.TimeStats{
		MonthlyPattern: []domain.MonthlyPages{},
		WeeklyPattern:  []domain.WeekdayPages{},
		YearOverYear:   []domain.YearlyPages{},
	}

	monthly := make(map[string]int)  // trailing 12 months only
	allMonths := make(map[string]int)
	weekdays := make(map[time.Weekday]int)
	years := make(map[int]int)

	cutoff := now.AddDate(-1, 0, 0)
	for _, rs := range sessions {
		day := domain.DayOf(rs.Date)
		monthKey := day.Format("2006-01")

		if day.After(cutoff) {
			monthly[monthKey] += rs.PagesRead
		}
		allMonths[monthKey] += rs.PagesRead
		weekdays[day.Weekday()] += rs.PagesRead
		years[day.Year()] += rs.PagesRead
	}

	monthKeys := sortedKeys(monthly)
	for _, k := range monthKeys {
		out.MonthlyPattern = append(out.MonthlyPattern, domain.MonthlyPages{Month: k, Pages: monthly[k]})
	}

	bestWeekdayPages := 0
	for d := time.Sunday; d <= time.Saturday; d++ {
		pages, ok := weekdays[d]
		if !ok {
			continue
		}
		out.WeeklyPattern = append(out.WeeklyPattern, domain.WeekdayPages{Weekday: d.String(), Pages: pages})
		if pages > bestWeekdayPages {
			bestWeekdayPages = pages
			out.BestWeekday = d.String()
		}
	}

	yearKeys := make([]int, 0, len(years))
	for y := range years {
		yearKeys = append(yearKeys, y)
	}
	sort.Ints(yearKeys)
	for _, y := range yearKeys {
		out.YearOverYear = append(out.YearOverYear, domain.YearlyPages{Year: y, Pages: years[y]})
	}

	bestMonthPages := 0
	for _, k := range sortedKeys(allMonths) {
		if allMonths[k] > bestMonthPages {
			bestMonthPages = allMonths[k]
			if t, err := time.Parse("2006-01", k); err == nil {
				out.BestMonth = fmt.Sprintf("%s %d", t.Month(), t.Year())
			}
		}
	}

	return out
}

func computeGoalPerformance(goals []domain.ReadingGoal, books []domain.Book, sessions []domain.ReadingSession) domain.GoalPerformance {
	out := domain.GoalPerformance{Progress: []domain.GoalProgress{}}

	booksByID := make(map[string]domain.Book, len(books))
	for _, b := range books {
		booksByID[b.ID] = b
	}
	pagesByBook := make(map[string]int)
	for _, rs := range sessions {
		pagesByBook[rs.BookID] += rs.PagesRead
	}

	if len(goals) > 0 {
		completed := 0
		for _, g := range goals {
			if b, ok := booksByID[g.BookID]; ok && b.Status.Finished() {
				completed++
			}
		}
		out.CompletionRate = domain.Round2(float64(completed) / float64(len(goals)) * 100)
	}

	daysSum, daysCount := 0, 0
	for _, b := range books {
		if !b.Status.Finished() {
			continue
		}
		if d, ok := b.DaysToComplete(); ok {
			daysSum += d
			daysCount++
		}
	}
	if daysCount > 0 {
		out.AverageDaysToComplete = domain.Round2(float64(daysSum) / float64(daysCount))
	}

	for _, g := range goals {
		b, ok := booksByID[g.BookID]
		if !ok {
			continue
		}
		if b.Status != domain.StatusCurrentlyReading && !b.Status.Finished() {
			continue
		}
		pages := pagesByBook[b.ID]
		low, medium, high := g.TierProgress(pages)
		out.Progress = append(out.Progress, domain.GoalProgress{
			BookID:         b.ID,
			Title:          b.Title,
			PagesRead:      pages,
			LowProgress:    low,
			MediumProgress: medium,
			HighProgress:   high,
		})
	}

	// Tier success and on-time counters are not wired to any data source
	// yet; they stay zero until the goal model carries deadlines.
	return out
}

func computeBookStats(books []domain.Book, sessions []domain.ReadingSession) domain.BookStats {
	out := domain.BookStats{BooksByStatus: make(map[string]int)}

	pageSum := 0
	finishedCount := 0
	for i := range books {
		b := &books[i]
		out.BooksByStatus[string(b.Status)]++
		if !b.Status.Finished() {
			continue
		}
		finishedCount++
		pageSum += b.TotalPages
		// Strict comparisons keep the first-encountered book on ties.
		if out.ShortestBook == nil || b.TotalPages < out.ShortestBook.TotalPages {
			out.ShortestBook = &domain.BookRef{ID: b.ID, Title: b.Title, TotalPages: b.TotalPages}
		}
		if out.LongestBook == nil || b.TotalPages > out.LongestBook.TotalPages {
			out.LongestBook = &domain.BookRef{ID: b.ID, Title: b.Title, TotalPages: b.TotalPages}
		}
	}

	if finishedCount > 0 {
		out.AveragePageCount = domain.Round2(float64(pageSum) / float64(finishedCount))
	}
	if len(books) > 0 {
		out.CompletionRate = domain.Round2(float64(finishedCount) / float64(len(books)) * 100)
	}
	if len(sessions) > 0 {
		total := 0
		for _, rs := range sessions {
			total += rs.PagesRead
		}
		out.AveragePagesPerSession = domain.Round2(float64(total) / float64(len(sessions)))
	}

	return out
}

func computeRecords(books []domain.Book, sessions []domain.ReadingSession) domain.Records {
	var out domain.Records

	type weekTotal struct {
		start time.Time
		pages int
	}

	days := make(map[string]int)
	weeks := make(map[string]weekTotal)
	months := make(map[string]int)

	for _, rs := range sessions {
		day := domain.DayOf(rs.Date)
		days[day.Format(time.DateOnly)] += rs.PagesRead
		months[day.Format("2006-01")] += rs.PagesRead

		start := isoWeekStart(day)
		key := start.Format(time.DateOnly)
		wt := weeks[key]
		wt.start = start
		wt.pages += rs.PagesRead
		weeks[key] = wt
	}

	out.TotalReadingDays = len(days)

	for _, k := range sortedKeys(days) {
		if out.BestDay == nil || days[k] > out.BestDay.Pages {
			out.BestDay = &domain.DayRecord{Date: k, Pages: days[k]}
		}
	}

	for _, k := range sortedKeys(weeks) {
		wt := weeks[k]
		if out.BestWeek == nil || wt.pages > out.BestWeek.Pages {
			year, week := wt.start.ISOWeek()
			out.BestWeek = &domain.WeekRecord{
				Year:      year,
				Week:      week,
				WeekStart: wt.start,
				Pages:     wt.pages,
			}
		}
	}

	for _, k := range sortedKeys(months) {
		if out.BestMonth == nil || months[k] > out.BestMonth.Pages {
			label := k
			if t, err := time.Parse("2006-01", k); err == nil {
				label = fmt.Sprintf("%s %d", t.Month(), t.Year())
			}
			out.BestMonth = &domain.MonthRecord{Month: label, Pages: months[k]}
		}
	}

	for _, b := range books {
		if !b.Status.Finished() {
			continue
		}
		d, ok := b.DaysToComplete()
		if !ok {
			continue
		}
		// Strict less-than keeps the first-encountered book on ties.
		if out.FastestCompletion == nil || d < out.FastestCompletion.Days {
			out.FastestCompletion = &domain.CompletionRecord{BookID: b.ID, Title: b.Title, Days: d}
		}
	}

	return out
}

// isoWeekStart returns the Monday opening the ISO week containing day.
func isoWeekStart(day time.Time) time.Time {
	offset := (int(day.Weekday()) + 6) % 7
	return day.AddDate(0, 0, -offset)
}

func truncate[T any](in []T, n int) []T {
	if len(in) > n {
		return in[:n]
	}
	return in
}

func sortedKeys[V any](m map[string]V) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

func countTrue(m map[string]bool) int {
	n := 0
	for _, v := range m {
		if v {
			n++
		}
	}
	return n
}
