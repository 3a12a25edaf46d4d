package models

import "gorm.io/gorm"

// DeviceInfo is one reader device as last reported by the sync pipeline.
type DeviceInfo struct {
	gorm.Model
	Platform   string // "android", "windows", ...
	AppVersion string
	LastSeenAt int64 // epoch ms
}

func (DeviceInfo) TableName() string { return "device_info" }
