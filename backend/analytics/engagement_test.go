package analytics

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/tishamal/righttoread/backend/models"
)

func seedEngagement(t *testing.T, s *Service) {
	t.Helper()
	require.NoError(t, s.DB.Create(&models.BookUsage{Model: gorm.Model{ID: 1}, SchoolID: 1, BookID: 7, BookTitle: "Rivers"}).Error)
	require.NoError(t, s.DB.Create(&models.BookUsage{Model: gorm.Model{ID: 2}, SchoolID: 1, BookID: 8, BookTitle: "Mountains"}).Error)

	sessions := []models.PageSession{
		{BookRecordID: 1, BookID: 7, PageNumber: 2, SessionStartTime: msAgo(2 * time.Hour), ActiveTimeMs: 100},
		{BookRecordID: 1, BookID: 7, PageNumber: 2, SessionStartTime: msAgo(3 * time.Hour), ActiveTimeMs: 201},
		{BookRecordID: 1, BookID: 7, PageNumber: 1, SessionStartTime: msAgo(4 * time.Hour), ActiveTimeMs: 500},
		{BookRecordID: 2, BookID: 8, PageNumber: 1, SessionStartTime: msAgo(5 * time.Hour), ActiveTimeMs: 900},
	}
	for i := range sessions {
		require.NoError(t, s.DB.Create(&sessions[i]).Error)
	}
}

func TestPageEngagementForBook(t *testing.T) {
	s := newTestService(t)
	seedEngagement(t, s)

	engagement, err := s.PageEngagement(7)
	require.NoError(t, err)
	require.Len(t, engagement, 2)

	// Ordered by page number for a single book.
	assert.Equal(t, 1, engagement[0].PageNumber)
	assert.Equal(t, int64(1), engagement[0].TotalSessions)
	assert.Equal(t, int64(500), engagement[0].TotalActiveTimeMs)

	assert.Equal(t, 2, engagement[1].PageNumber)
	assert.Equal(t, "Rivers", engagement[1].BookTitle)
	assert.Equal(t, int64(2), engagement[1].TotalSessions)
	assert.Equal(t, int64(301), engagement[1].TotalActiveTimeMs)
	// (100+201)/2 = 150.5, rounded.
	assert.Equal(t, int64(151), engagement[1].AvgActiveTimeMs)
}

func TestPageEngagementFleetWide(t *testing.T) {
	s := newTestService(t)
	seedEngagement(t, s)

	engagement, err := s.PageEngagement(0)
	require.NoError(t, err)
	require.Len(t, engagement, 3)

	// Ordered by total active time descending across all books.
	assert.Equal(t, 8, engagement[0].BookID)
	assert.Equal(t, int64(900), engagement[0].TotalActiveTimeMs)
	assert.Equal(t, 7, engagement[1].BookID)
	assert.Equal(t, int64(500), engagement[1].TotalActiveTimeMs)
}

func TestReadingPatterns(t *testing.T) {
	s := newTestService(t)
	first := time.Now().Add(-26 * time.Hour)
	second := time.Now().Add(-2 * time.Hour)
	sessions := []models.PageSession{
		{BookRecordID: 1, BookID: 7, PageNumber: 1, SessionStartTime: first.UnixMilli(), ActiveTimeMs: 100},
		{BookRecordID: 1, BookID: 7, PageNumber: 2, SessionStartTime: first.UnixMilli(), ActiveTimeMs: 300},
		{BookRecordID: 1, BookID: 7, PageNumber: 3, SessionStartTime: second.UnixMilli(), ActiveTimeMs: 700},
		// Outside the trailing 30 days.
		{BookRecordID: 1, BookID: 7, PageNumber: 4, SessionStartTime: msAgo(31 * 24 * time.Hour), ActiveTimeMs: 900},
	}
	for i := range sessions {
		require.NoError(t, s.DB.Create(&sessions[i]).Error)
	}

	patterns, err := s.ReadingPatterns()
	require.NoError(t, err)
	require.Len(t, patterns, 2)

	bySlot := make(map[[2]int]ReadingPattern)
	for _, p := range patterns {
		bySlot[[2]int{p.DayOfWeek, p.Hour}] = p
	}

	f := first.UTC()
	got, ok := bySlot[[2]int{int(f.Weekday()), f.Hour()}]
	require.True(t, ok)
	assert.Equal(t, int64(2), got.TotalSessions)
	assert.Equal(t, int64(200), got.AvgSessionTimeMs)

	sec := second.UTC()
	got, ok = bySlot[[2]int{int(sec.Weekday()), sec.Hour()}]
	require.True(t, ok)
	assert.Equal(t, int64(1), got.TotalSessions)
	assert.Equal(t, int64(700), got.AvgSessionTimeMs)
}
