package analytics

import (
	"fmt"

	"github.com/tishamal/righttoread/backend/models"
)

// Grade levels covered by the program. Usage rows outside this band are
// legacy/test data and excluded from the breakdown.
const (
	minGrade = 3
	maxGrade = 10
)

type GradeStats struct {
	Grade              int      `json:"grade"`
	Count              int64    `json:"count"`
	TotalReadingTimeMs int64    `json:"totalReadingTimeMs"`
	Percentage         *float64 `json:"percentage"`
}

type DeviceStats struct {
	Platform   string   `json:"platform"`
	Count      int64    `json:"count"`
	Percentage *float64 `json:"percentage"`
	AppVersion string   `json:"appVersion"`
	LastSeenAt int64    `json:"lastSeenAt"`
}

// BooksByGrade partitions usage rows by grade with each grade's share of the
// total row count, ascending by grade.
func (s *Service) BooksByGrade() ([]GradeStats, error) {
	var grades []GradeStats
	if err := s.DB.Model(&models.BookUsage{}).
		Select("grade, COUNT(*) AS count, COALESCE(SUM(total_active_time_ms), 0) AS total_reading_time_ms").
		Where("grade BETWEEN ? AND ?", minGrade, maxGrade).
		Group("grade").
		Order("grade ASC").
		Scan(&grades).Error; err != nil {
		return nil, fmt.Errorf("books by grade: %w", err)
	}

	var total int64
	for _, g := range grades {
		total += g.Count
	}
	for i := range grades {
		grades[i].Percentage = sharePercent(grades[i].Count, total)
	}
	if grades == nil {
		grades = []GradeStats{}
	}
	return grades, nil
}

// DeviceStats partitions devices by platform with each platform's share of
// the device count, descending by count.
func (s *Service) DeviceStats() ([]DeviceStats, error) {
	var devices []DeviceStats
	if err := s.DB.Model(&models.DeviceInfo{}).
		Select("platform, COUNT(*) AS count, MAX(app_version) AS app_version, MAX(last_seen_at) AS last_seen_at").
		Group("platform").
		Order("count DESC").
		Scan(&devices).Error; err != nil {
		return nil, fmt.Errorf("device stats: %w", err)
	}

	var total int64
	for _, d := range devices {
		total += d.Count
	}
	for i := range devices {
		devices[i].Percentage = sharePercent(devices[i].Count, total)
	}
	if devices == nil {
		devices = []DeviceStats{}
	}
	return devices, nil
}
