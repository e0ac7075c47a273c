package stats

import (
	"slices"
	"time"
)

// Streak holds consecutive-day run lengths.
type Streak struct {
	Current int `json:"current"`
	Longest int `json:"longest"`
}

// CalculateStreak computes the current and longest runs of consecutive days
// in dates, a set of YYYY-MM-DD keys. A run is current only when its newest
// day is today or yesterday relative to now. Keys that do not parse are
// ignored.
func CalculateStreak(dates []string, now time.Time) Streak {
	days := make([]time.Time, 0, len(dates))
	seen := make(map[string]struct{}, len(dates))
	for _, d := range dates {
		if _, dup := seen[d]; dup {
			continue
		}
		t, err := ParseDateKey(d)
		if err != nil {
			continue
		}
		seen[d] = struct{}{}
		days = append(days, t)
	}
	if len(days) == 0 {
		return Streak{}
	}

	slices.SortFunc(days, func(a, b time.Time) int { return b.Compare(a) })

	today := FormatDateKey(now)
	yesterday := FormatDateKey(now.Add(-day))
	newest := FormatDateKey(days[0])
	isCurrent := newest == today || newest == yesterday

	var s Streak
	run := 1
	for i := 1; i < len(days); i++ {
		if DaysBetween(days[i-1], days[i]) == 1 {
			run++
			continue
		}
		if isCurrent && s.Current == 0 {
			s.Current = run
		}
		s.Longest = max(s.Longest, run)
		run = 1
	}
	s.Longest = max(s.Longest, run)
	if isCurrent && s.Current == 0 {
		s.Current = run
	}
	return s
}
