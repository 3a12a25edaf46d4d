package analytics

import (
	"fmt"
	"time"

	"github.com/tishamal/righttoread/backend/models"
)

type SyncLogEntry struct {
	ID               uint      `json:"id"`
	SchoolID         uint      `json:"schoolId"`
	SchoolName       string    `json:"schoolName"`
	SyncTimestamp    int64     `json:"syncTimestamp"`
	RecordsProcessed int64     `json:"recordsProcessed"`
	Success          bool      `json:"success"`
	ErrorMessage     string    `json:"errorMessage"`
	CreatedAt        time.Time `json:"createdAt"`
}

type SyncError struct {
	SchoolID     uint   `json:"schoolId"`
	SchoolName   string `json:"schoolName"`
	ErrorMessage string `json:"errorMessage"`
	Timestamp    int64  `json:"timestamp"`
}

type SyncStatus struct {
	TotalSyncs         int64       `json:"totalSyncs"`
	SuccessfulSyncs    int64       `json:"successfulSyncs"`
	FailedSyncs        int64       `json:"failedSyncs"`
	SuccessRate        float64     `json:"successRate"`
	LastSyncTime       int64       `json:"lastSyncTime"`
	SchoolsPendingSync int64       `json:"schoolsPendingSync"`
	AverageSyncTimeMs  *int64      `json:"averageSyncTimeMs"`
	RecentErrors       []SyncError `json:"recentErrors"`
}

// SyncLogs returns the most recent sync attempts with the school name joined
// in, newest first.
func (s *Service) SyncLogs(limit int) ([]SyncLogEntry, error) {
	limit, err := checkLimit(limit, DefaultLogLimit)
	if err != nil {
		return nil, err
	}

	var logs []SyncLogEntry
	if err := s.DB.Model(&models.SyncLog{}).
		Select("sync_logs.id, sync_logs.school_id, schools.school_name, sync_logs.sync_timestamp, " +
			"sync_logs.records_processed, sync_logs.success, sync_logs.error_message, sync_logs.created_at").
		Joins("LEFT JOIN schools ON schools.id = sync_logs.school_id").
		Order("sync_logs.created_at DESC").
		Limit(limit).
		Scan(&logs).Error; err != nil {
		return nil, fmt.Errorf("sync logs: %w", err)
	}
	if logs == nil {
		logs = []SyncLogEntry{}
	}
	return logs, nil
}

// SyncStatus summarizes sync health across the fleet. AverageSyncTimeMs stays
// null until the sync pipeline records attempt durations; there is nothing in
// the store to derive it from.
func (s *Service) SyncStatus() (*SyncStatus, error) {
	status := &SyncStatus{RecentErrors: []SyncError{}}

	if err := s.DB.Model(&models.SyncLog{}).Count(&status.TotalSyncs).Error; err != nil {
		return nil, fmt.Errorf("sync status: total: %w", err)
	}
	if err := s.DB.Model(&models.SyncLog{}).
		Where("success = ?", true).
		Count(&status.SuccessfulSyncs).Error; err != nil {
		return nil, fmt.Errorf("sync status: successes: %w", err)
	}
	status.FailedSyncs = status.TotalSyncs - status.SuccessfulSyncs
	if status.TotalSyncs > 0 {
		status.SuccessRate = round2(float64(status.SuccessfulSyncs) / float64(status.TotalSyncs) * 100)
	}

	var lastSync struct{ Last int64 }
	if err := s.DB.Model(&models.SyncLog{}).
		Select("COALESCE(MAX(sync_timestamp), 0) AS last").
		Scan(&lastSync).Error; err != nil {
		return nil, fmt.Errorf("sync status: last sync: %w", err)
	}
	status.LastSyncTime = lastSync.Last

	dayAgo := time.Now().Add(-24 * time.Hour).UnixMilli()
	if err := s.DB.Model(&models.School{}).
		Where("last_sync_time < ?", dayAgo).
		Count(&status.SchoolsPendingSync).Error; err != nil {
		return nil, fmt.Errorf("sync status: pending: %w", err)
	}

	if err := s.DB.Model(&models.SyncLog{}).
		Select("sync_logs.school_id, schools.school_name, sync_logs.error_message, sync_logs.sync_timestamp AS timestamp").
		Joins("JOIN schools ON schools.id = sync_logs.school_id").
		Where("sync_logs.success = ?", false).
		Order("sync_logs.sync_timestamp DESC").
		Limit(5).
		Scan(&status.RecentErrors).Error; err != nil {
		return nil, fmt.Errorf("sync status: errors: %w", err)
	}

	return status, nil
}
