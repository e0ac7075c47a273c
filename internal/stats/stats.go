// Package stats holds the pure numeric and calendar helpers used by the
// analyzer and the renderers.
package stats

import (
	"math"
	"slices"
)

// Median returns the median of numbers, or 0 when numbers is empty.
// The input slice is not modified.
func Median(numbers []int) float64 {
	if len(numbers) == 0 {
		return 0
	}
	sorted := slices.Clone(numbers)
	slices.Sort(sorted)
	mid := len(sorted) / 2
	if len(sorted)%2 != 0 {
		return float64(sorted[mid])
	}
	return float64(sorted[mid-1]+sorted[mid]) / 2
}

// Round rounds x to the given number of decimal places, halves away from zero.
func Round(x float64, places int) float64 {
	p := math.Pow(10, float64(places))
	return math.Round(x*p) / p
}

// Percentage returns part/whole*100 rounded to one decimal, or 0 when whole is 0.
func Percentage(part, whole int) float64 {
	if whole == 0 {
		return 0
	}
	return Round(float64(part)/float64(whole)*100, 1)
}

// ActivityLevel buckets count relative to max into 0..4.
// Level 0 means no activity; 1..4 cover up to 25%, 50%, 75% and above 75%.
func ActivityLevel(count, max int) int {
	if count == 0 || max == 0 {
		return 0
	}
	ratio := float64(count) / float64(max)
	switch {
	case ratio <= 0.25:
		return 1
	case ratio <= 0.5:
		return 2
	case ratio <= 0.75:
		return 3
	default:
		return 4
	}
}
