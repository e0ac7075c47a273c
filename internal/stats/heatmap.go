package stats

import (
	"time"

	"github.com/starford/vaultstats/internal/models"
)

// Heatmap month bounds.
const (
	MinHeatmapMonths     = 3
	MaxHeatmapMonths     = 24
	DefaultHeatmapMonths = 12
)

// ClampMonths limits months to the supported heatmap range; non-positive
// values select the default.
func ClampMonths(months int) int {
	if months <= 0 {
		return DefaultHeatmapMonths
	}
	return min(max(months, MinHeatmapMonths), MaxHeatmapMonths)
}

// BuildHeatmap lays out series as a Sunday-first calendar grid covering the
// last months calendar months up to now. Levels, totals and streaks are
// computed over the whole series, not only the visible range.
func BuildHeatmap(name string, series []models.DateCount, months int, now time.Time) models.HeatmapData {
	months = ClampMonths(months)

	counts := make(map[string]int, len(series))
	var maxCount, total int
	active := make([]string, 0, len(series))
	for _, dc := range series {
		counts[dc.Date] += dc.Count
		total += dc.Count
		if dc.Count > 0 {
			active = append(active, dc.Date)
		}
	}
	for _, c := range counts {
		maxCount = max(maxCount, c)
	}

	end := now.UTC().Truncate(day)
	start := end.AddDate(0, -months, 0)
	start = start.AddDate(0, 0, -int(start.Weekday()))

	var cells []models.ActivityCell
	var weeks [][]models.ActivityCell
	for d := start; !d.After(end); d = d.Add(day) {
		key := FormatDateKey(d)
		c := counts[key]
		cell := models.ActivityCell{Date: key, Count: c, Level: ActivityLevel(c, maxCount)}
		cells = append(cells, cell)
		if d.Weekday() == time.Sunday {
			weeks = append(weeks, nil)
		}
		weeks[len(weeks)-1] = append(weeks[len(weeks)-1], cell)
	}

	streak := CalculateStreak(active, now)
	return models.HeatmapData{
		Series:        name,
		Months:        months,
		From:          FormatDateKey(start),
		To:            FormatDateKey(end),
		Cells:         cells,
		Weeks:         weeks,
		MaxCount:      maxCount,
		Total:         total,
		CurrentStreak: streak.Current,
		LongestStreak: streak.Longest,
	}
}
