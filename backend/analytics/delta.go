package analytics

import "math"

// PercentChange returns the rounded percent change from previous to current,
// rounding half away from zero. A previous value of 0 yields 100 when current
// is positive (from nothing to something) and 0 otherwise, so period
// comparisons never divide by zero.
func PercentChange(current, previous float64) int {
	if previous == 0 {
		if current > 0 {
			return 100
		}
		return 0
	}
	return int(math.Round((current - previous) / previous * 100))
}

// round2 rounds to two decimal places, used for hour and rate figures.
func round2(v float64) float64 {
	return math.Round(v*100) / 100
}

// sharePercent returns count's share of total as a percentage rounded to one
// decimal place, or nil when total is zero.
func sharePercent(count, total int64) *float64 {
	if total == 0 {
		return nil
	}
	p := math.Round(float64(count)/float64(total)*1000) / 10
	return &p
}
