package models

import "gorm.io/gorm"

// School is one deployed school device fleet. Rows are written by the sync
// pipeline; the analytics engine only reads them. Cumulative counters never
// decrease over a school's lifetime.
type School struct {
	gorm.Model
	SchoolName         string `gorm:"not null"`
	SerialNumber       string `gorm:"unique"`
	TotalReadingTimeMs int64  `gorm:"default:0"`
	TotalRecords       int64  `gorm:"default:0"`
	TotalBooksAccessed int    `gorm:"default:0"`
	LastSyncTime       int64  // epoch ms, 0 = never synced
	IsActive           bool   `gorm:"default:true"`
}

// SyncLog is one sync attempt from a school. Append-only.
type SyncLog struct {
	gorm.Model
	SchoolID         uint
	SyncTimestamp    int64 // epoch ms
	RecordsProcessed int64 `gorm:"default:0"`
	Success          bool
	ErrorMessage     string
}
