package domain

import "time"

// HeatmapDay is one calendar day's total pages read.
type HeatmapDay struct {
	Date  string `json:"date"`
	Pages int    `json:"pages"`
}

// Heatmap is the per-day reading activity for one calendar year, suitable
// for a calendar-grid visualization. Days with no reading are omitted.
type Heatmap struct {
	Year int          `json:"year"`
	Days []HeatmapDay `json:"days"`
}

// BuildHeatmap sums session pages by calendar day for the given year.
// Days are emitted in ascending date order.
func BuildHeatmap(year int, sessions []ReadingSession) Heatmap {
	totals := make(map[string]int)
	for _, s := range sessions {
		day := DayOf(s.Date)
		if day.Year() != year {
			continue
		}
		totals[day.Format(time.DateOnly)] += s.PagesRead
	}

	hm := Heatmap{Year: year, Days: make([]HeatmapDay, 0, len(totals))}
	start := time.Date(year, time.January, 1, 0, 0, 0, 0, time.UTC)
	for d := start; d.Year() == year; d = d.AddDate(0, 0, 1) {
		key := d.Format(time.DateOnly)
		if pages, ok := totals[key]; ok {
			hm.Days = append(hm.Days, HeatmapDay{Date: key, Pages: pages})
		}
	}
	return hm
}
