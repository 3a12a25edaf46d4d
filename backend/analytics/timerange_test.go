package analytics

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestRangeBounds(t *testing.T) {
	now := time.UnixMilli(1_000_000_000_000)

	start, end := RangeBounds("7d", now)
	assert.Equal(t, int64(1_000_000_000_000), end)
	assert.Equal(t, int64(1_000_000_000_000-604_800_000), start)

	tests := []struct {
		token    string
		duration int64
	}{
		{"24h", 24 * 60 * 60 * 1000},
		{"7d", 7 * 24 * 60 * 60 * 1000},
		{"30d", 30 * 24 * 60 * 60 * 1000},
		{"90d", 90 * 24 * 60 * 60 * 1000},
		{"365d", 365 * 24 * 60 * 60 * 1000},
	}
	for _, tt := range tests {
		t.Run(tt.token, func(t *testing.T) {
			start, end := RangeBounds(tt.token, now)
			assert.Equal(t, now.UnixMilli(), end)
			assert.Equal(t, tt.duration, end-start)
		})
	}
}

func TestRangeBoundsUnknownTokenDefaultsTo30d(t *testing.T) {
	now := time.Now()
	wantStart, wantEnd := RangeBounds("30d", now)

	for _, token := range []string{"", "bogus", "1y", "7D"} {
		start, end := RangeBounds(token, now)
		assert.Equal(t, wantStart, start, "token %q", token)
		assert.Equal(t, wantEnd, end, "token %q", token)
	}
}
