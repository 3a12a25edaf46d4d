package analytics

import (
	"fmt"
	"time"

	"github.com/tishamal/righttoread/backend/models"
)

type PercentageChange struct {
	Schools     int `json:"schools"`
	ReadingTime int `json:"readingTime"`
	Records     int `json:"records"`
}

type OverviewStats struct {
	TotalActiveSchools      int64            `json:"totalActiveSchools"`
	TotalBooks              int64            `json:"totalBooks"`
	TotalReadingTimeMs      int64            `json:"totalReadingTimeMs"`
	TotalReadingTimeHours   float64          `json:"totalReadingTimeHours"`
	TotalRecords            int64            `json:"totalRecords"`
	ActiveSchoolsLast7Days  int64            `json:"activeSchoolsLast7Days"`
	ActiveSchoolsLast30Days int64            `json:"activeSchoolsLast30Days"`
	PercentageChange        PercentageChange `json:"percentageChange"`
}

// Overview computes the fleet-wide snapshot plus period-over-period deltas.
// The prior window is the disjoint [now-60d, now-30d) band so deltas do not
// re-count current activity.
func (s *Service) Overview() (*OverviewStats, error) {
	now := time.Now()
	sevenDaysAgo := now.Add(-7 * 24 * time.Hour).UnixMilli()
	thirtyDaysAgo := now.Add(-30 * 24 * time.Hour).UnixMilli()
	sixtyDaysAgo := now.Add(-60 * 24 * time.Hour).UnixMilli()

	stats := &OverviewStats{}

	if err := s.DB.Model(&models.School{}).
		Where("is_active = ?", true).
		Count(&stats.TotalActiveSchools).Error; err != nil {
		return nil, fmt.Errorf("overview: active schools: %w", err)
	}

	if err := s.DB.Model(&models.BookUsage{}).
		Distinct("book_id").
		Count(&stats.TotalBooks).Error; err != nil {
		return nil, fmt.Errorf("overview: book count: %w", err)
	}

	var totals struct {
		ReadingTime int64
		Records     int64
	}
	if err := s.DB.Model(&models.School{}).
		Select("COALESCE(SUM(total_reading_time_ms), 0) AS reading_time, COALESCE(SUM(total_records), 0) AS records").
		Scan(&totals).Error; err != nil {
		return nil, fmt.Errorf("overview: fleet totals: %w", err)
	}
	stats.TotalReadingTimeMs = totals.ReadingTime
	stats.TotalReadingTimeHours = round2(float64(totals.ReadingTime) / float64(time.Hour.Milliseconds()))
	stats.TotalRecords = totals.Records

	if err := s.DB.Model(&models.School{}).
		Where("last_sync_time >= ?", sevenDaysAgo).
		Count(&stats.ActiveSchoolsLast7Days).Error; err != nil {
		return nil, fmt.Errorf("overview: 7d sync count: %w", err)
	}
	if err := s.DB.Model(&models.School{}).
		Where("last_sync_time >= ?", thirtyDaysAgo).
		Count(&stats.ActiveSchoolsLast30Days).Error; err != nil {
		return nil, fmt.Errorf("overview: 30d sync count: %w", err)
	}

	var prevSchools int64
	if err := s.DB.Model(&models.School{}).
		Where("last_sync_time >= ? AND last_sync_time < ?", sixtyDaysAgo, thirtyDaysAgo).
		Count(&prevSchools).Error; err != nil {
		return nil, fmt.Errorf("overview: prior window schools: %w", err)
	}

	var prev struct {
		ReadingTime int64
		Records     int64
	}
	if err := s.DB.Model(&models.School{}).
		Select("COALESCE(SUM(total_reading_time_ms), 0) AS reading_time, COALESCE(SUM(total_records), 0) AS records").
		Where("last_sync_time < ?", thirtyDaysAgo).
		Scan(&prev).Error; err != nil {
		return nil, fmt.Errorf("overview: prior window totals: %w", err)
	}

	stats.PercentageChange = PercentageChange{
		Schools:     PercentChange(float64(stats.ActiveSchoolsLast30Days), float64(prevSchools)),
		ReadingTime: PercentChange(float64(stats.TotalReadingTimeMs), float64(prev.ReadingTime)),
		Records:     PercentChange(float64(stats.TotalRecords), float64(prev.Records)),
	}

	return stats, nil
}
