package domain

import (
	"slices"
	"time"
)

// Streak holds the consecutive-reading-day counters.
type Streak struct {
	CurrentStreak int `json:"current_streak"`
	LongestStreak int `json:"longest_streak"`
}

// ComputeStreak calculates the current and longest consecutive-day reading
// streaks from session dates. Multiple sessions on one calendar day count as
// a single reading day. The current streak reports 0 when the most recent
// reading day is more than one calendar day before now (UTC, date-only);
// the streak is broken by absence even though the longest stands.
//
// Empty input yields {0, 0}.
func ComputeStreak(sessionDates []time.Time, now time.Time) Streak {
	if len(sessionDates) == 0 {
		return Streak{}
	}

	// Dedupe to distinct calendar days.
	seen := make(map[time.Time]struct{}, len(sessionDates))
	days := make([]time.Time, 0, len(sessionDates))
	for _, d := range sessionDates {
		day := DayOf(d)
		if _, ok := seen[day]; ok {
			continue
		}
		seen[day] = struct{}{}
		days = append(days, day)
	}
	slices.SortFunc(days, func(a, b time.Time) int { return a.Compare(b) })

	longest := 1
	run := 1
	for i := 1; i < len(days); i++ {
		switch days[i].Sub(days[i-1]) {
		case 24 * time.Hour:
			run++
		default:
			run = 1
		}
		if run > longest {
			longest = run
		}
	}

	// The final run is the current streak, unless it ended before yesterday.
	current := run
	lastDay := days[len(days)-1]
	if DayOf(now).Sub(lastDay) > 24*time.Hour {
		current = 0
	}

	return Streak{CurrentStreak: current, LongestStreak: longest}
}
