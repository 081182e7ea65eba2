package cache

import "fmt"

// Cache key layout. Prefixes group keys for bulk invalidation; keep them
// distinct so RemoveByPrefix cannot cross categories.
const (
	KeyAuthors    = "authors:all"
	KeyTags       = "tags:all"
	KeyStreak     = "streak"
	statsPrefix   = "stats:"
	heatmapPrefix = "heatmap:"
	authorPrefix  = "authors:one:"
	tagPrefix     = "tags:one:"
	bookPrefix    = "books:list:"
)

// KeyAuthor is the cache key for a single author.
func KeyAuthor(id string) string { return authorPrefix + id }

// KeyTag is the cache key for a single tag.
func KeyTag(id string) string { return tagPrefix + id }

// KeyStats is the cache key for one statistics report.
func KeyStats(report string) string { return statsPrefix + report }

// KeyHeatmap is the cache key for one heatmap year.
func KeyHeatmap(year int) string { return fmt.Sprintf("%s%d", heatmapPrefix, year) }

// KeyBookList is the cache key for one filtered book list. Empty filter
// fields are part of the key, so each filter combination caches separately.
func KeyBookList(authorID, status string) string {
	return fmt.Sprintf("%sauthor=%s:status=%s", bookPrefix, authorID, status)
}

// InvalidateBooks evicts every cached book list.
func (c *Cache) InvalidateBooks() {
	c.RemoveByPrefix(bookPrefix)
}

// InvalidateAuthors evicts the author list and every cached author.
func (c *Cache) InvalidateAuthors() {
	c.Remove(KeyAuthors)
	c.RemoveByPrefix(authorPrefix)
}

// InvalidateAuthor evicts one author plus the author list.
func (c *Cache) InvalidateAuthor(id string) {
	c.Remove(KeyAuthor(id))
	c.Remove(KeyAuthors)
}

// InvalidateTags evicts the tag list and every cached tag.
func (c *Cache) InvalidateTags() {
	c.Remove(KeyTags)
	c.RemoveByPrefix(tagPrefix)
}

// InvalidateTag evicts one tag plus the tag list.
func (c *Cache) InvalidateTag(id string) {
	c.Remove(KeyTag(id))
	c.Remove(KeyTags)
}

// InvalidateStatistics evicts every statistics report.
func (c *Cache) InvalidateStatistics() {
	c.RemoveByPrefix(statsPrefix)
}

// InvalidateHeatmapYear evicts one heatmap year.
func (c *Cache) InvalidateHeatmapYear(year int) {
	c.Remove(KeyHeatmap(year))
}

// InvalidateHeatmaps evicts every cached heatmap year.
func (c *Cache) InvalidateHeatmaps() {
	c.RemoveByPrefix(heatmapPrefix)
}

// InvalidateStreak evicts the streak.
func (c *Cache) InvalidateStreak() {
	c.Remove(KeyStreak)
}

// InvalidateReadingData evicts everything derived from reading sessions:
// statistics, heatmaps, and the streak.
func (c *Cache) InvalidateReadingData() {
	c.InvalidateStatistics()
	c.InvalidateHeatmaps()
	c.InvalidateStreak()
}
