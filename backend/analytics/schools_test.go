package analytics

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/tishamal/righttoread/backend/models"
)

func seedSchools(t *testing.T, s *Service) {
	t.Helper()
	schools := []models.School{
		{Model: gorm.Model{ID: 1}, SchoolName: "Delta", TotalReadingTimeMs: 5000, TotalRecords: 10, IsActive: true},
		{Model: gorm.Model{ID: 2}, SchoolName: "Alpha", TotalReadingTimeMs: 3000, TotalRecords: 50, IsActive: true},
		{Model: gorm.Model{ID: 3}, SchoolName: "Echo", TotalReadingTimeMs: 5000, TotalRecords: 30, IsActive: true},
		{Model: gorm.Model{ID: 4}, SchoolName: "Bravo", TotalReadingTimeMs: 1000, TotalRecords: 20, IsActive: false},
		{Model: gorm.Model{ID: 5}, SchoolName: "Charlie", TotalReadingTimeMs: 4000, TotalRecords: 40, IsActive: true},
	}
	for i := range schools {
		require.NoError(t, s.DB.Create(&schools[i]).Error)
	}
}

func schoolIDs(stats []SchoolStats) []uint {
	ids := make([]uint, 0, len(stats))
	for _, s := range stats {
		ids = append(ids, s.ID)
	}
	return ids
}

func TestSchoolStatsDefaultSort(t *testing.T) {
	s := newTestService(t)
	seedSchools(t, s)

	stats, err := s.SchoolStats(0, 0, "totalReadingTime")
	require.NoError(t, err)
	// Ties on reading time (ids 1 and 3) break by id ascending.
	assert.Equal(t, []uint{1, 3, 5, 2, 4}, schoolIDs(stats))
}

func TestSchoolStatsSortKeys(t *testing.T) {
	s := newTestService(t)
	seedSchools(t, s)

	byName, err := s.SchoolStats(0, 0, "schoolName")
	require.NoError(t, err)
	assert.Equal(t, []uint{2, 4, 5, 1, 3}, schoolIDs(byName))

	byRecords, err := s.SchoolStats(0, 0, "totalRecords")
	require.NoError(t, err)
	assert.Equal(t, []uint{2, 5, 3, 4, 1}, schoolIDs(byRecords))
}

func TestSchoolStatsUnknownSortKeyFallsBack(t *testing.T) {
	s := newTestService(t)
	seedSchools(t, s)

	want, err := s.SchoolStats(0, 0, "totalReadingTime")
	require.NoError(t, err)
	got, err := s.SchoolStats(0, 0, "DROP TABLE schools")
	require.NoError(t, err)
	assert.Equal(t, want, got)
}

func TestSchoolStatsPaginationIsStable(t *testing.T) {
	s := newTestService(t)
	seedSchools(t, s)

	page1, err := s.SchoolStats(2, 0, "totalReadingTime")
	require.NoError(t, err)
	page2, err := s.SchoolStats(2, 2, "totalReadingTime")
	require.NoError(t, err)
	both, err := s.SchoolStats(4, 0, "totalReadingTime")
	require.NoError(t, err)

	assert.Equal(t, both, append(page1, page2...))
}

func TestSchoolStatsInvalidInput(t *testing.T) {
	s := newTestService(t)

	_, err := s.SchoolStats(-1, 0, "totalReadingTime")
	assert.ErrorIs(t, err, ErrInvalidInput)

	_, err = s.SchoolStats(501, 0, "totalReadingTime")
	assert.ErrorIs(t, err, ErrInvalidInput)

	_, err = s.SchoolStats(10, -5, "totalReadingTime")
	assert.ErrorIs(t, err, ErrInvalidInput)
}

func TestSchoolStatsEmptyStoreIsNotAnError(t *testing.T) {
	s := newTestService(t)

	stats, err := s.SchoolStats(0, 0, "totalReadingTime")
	require.NoError(t, err)
	assert.Empty(t, stats)
}

func TestSchoolStatsReadingTimeHours(t *testing.T) {
	s := newTestService(t)
	require.NoError(t, s.DB.Create(&models.School{
		Model:              gorm.Model{ID: 1},
		SchoolName:         "A",
		TotalReadingTimeMs: 5_400_000, // 1.5h
		IsActive:           true,
	}).Error)

	stats, err := s.SchoolStats(0, 0, "totalReadingTime")
	require.NoError(t, err)
	require.Len(t, stats, 1)
	assert.Equal(t, 1.5, stats[0].TotalReadingTimeHours)
}
