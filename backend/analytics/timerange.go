package analytics

import "time"

var rangeDurations = map[string]time.Duration{
	"24h":  24 * time.Hour,
	"7d":   7 * 24 * time.Hour,
	"30d":  30 * 24 * time.Hour,
	"90d":  90 * 24 * time.Hour,
	"365d": 365 * 24 * time.Hour,
}

const defaultRange = "30d"

// RangeBounds maps a range token to [start, end) epoch-ms bounds ending at
// now. Unrecognized tokens fall back to 30d rather than fail.
func RangeBounds(token string, now time.Time) (startMs, endMs int64) {
	d, ok := rangeDurations[token]
	if !ok {
		d = rangeDurations[defaultRange]
	}
	endMs = now.UnixMilli()
	return endMs - d.Milliseconds(), endMs
}
