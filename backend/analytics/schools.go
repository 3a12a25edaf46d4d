package analytics

import (
	"fmt"
	"time"

	"github.com/tishamal/righttoread/backend/models"
)

type SchoolStats struct {
	ID                    uint    `json:"id"`
	SchoolName            string  `json:"schoolName"`
	SerialNumber          string  `json:"serialNumber"`
	TotalReadingTimeMs    int64   `json:"totalReadingTimeMs"`
	TotalReadingTimeHours float64 `json:"totalReadingTimeHours"`
	TotalBooksAccessed    int     `json:"totalBooksAccessed"`
	TotalRecords          int64   `json:"totalRecords"`
	LastSyncTime          int64   `json:"lastSyncTime"`
	IsActive              bool    `json:"isActive"`
}

// schoolOrderings is the closed set of accepted sort keys. Every ordering has
// a secondary id sort so pagination stays stable across calls on ties.
var schoolOrderings = map[string]string{
	"totalReadingTime": "total_reading_time_ms DESC, id ASC",
	"schoolName":       "school_name ASC, id ASC",
	"totalRecords":     "total_records DESC, id ASC",
}

// SchoolStats returns the ranked school list sliced to [offset, offset+limit).
// Unknown sort keys fall back to totalReadingTime.
func (s *Service) SchoolStats(limit, offset int, sortBy string) ([]SchoolStats, error) {
	limit, err := checkLimit(limit, DefaultSchoolLimit)
	if err != nil {
		return nil, err
	}
	if err := checkOffset(offset); err != nil {
		return nil, err
	}

	order, ok := schoolOrderings[sortBy]
	if !ok {
		order = schoolOrderings["totalReadingTime"]
	}

	var schools []models.School
	if err := s.DB.Order(order).Limit(limit).Offset(offset).Find(&schools).Error; err != nil {
		return nil, fmt.Errorf("school stats: %w", err)
	}

	stats := make([]SchoolStats, 0, len(schools))
	for _, school := range schools {
		stats = append(stats, SchoolStats{
			ID:                    school.ID,
			SchoolName:            school.SchoolName,
			SerialNumber:          school.SerialNumber,
			TotalReadingTimeMs:    school.TotalReadingTimeMs,
			TotalReadingTimeHours: round2(float64(school.TotalReadingTimeMs) / float64(time.Hour.Milliseconds())),
			TotalBooksAccessed:    school.TotalBooksAccessed,
			TotalRecords:          school.TotalRecords,
			LastSyncTime:          school.LastSyncTime,
			IsActive:              school.IsActive,
		})
	}
	return stats, nil
}
