package models

import (
	"database/sql/driver"
	"encoding/json"
	"fmt"

	"gorm.io/gorm"
)

// PageList stores a set of accessed page numbers as a JSON array so the same
// column works on both postgres and sqlite.
type PageList []int

func (p PageList) Value() (driver.Value, error) {
	if p == nil {
		return "[]", nil
	}
	b, err := json.Marshal(p)
	return string(b), err
}

func (p *PageList) Scan(value interface{}) error {
	switch v := value.(type) {
	case nil:
		*p = nil
		return nil
	case []byte:
		return json.Unmarshal(v, p)
	case string:
		return json.Unmarshal([]byte(v), p)
	default:
		return fmt.Errorf("cannot scan %T into PageList", value)
	}
}

// BookUsage is the per (school, book) usage aggregate maintained by the sync
// pipeline. BookID is the logical book identifier; the same BookID appears in
// one row per school that accessed the book.
type BookUsage struct {
	gorm.Model
	SchoolID          uint
	BookID            int `gorm:"index"`
	BookTitle         string
	Grade             int
	TotalActiveTimeMs int64    `gorm:"default:0"`
	PagesAccessed     PageList `gorm:"type:text"`
	TotalPages        int
	FirstAccessTime   int64 // epoch ms
	LastAccessTime    int64 // epoch ms
}

func (BookUsage) TableName() string { return "books" }

// PageSession is a single page-visit reading session. Immutable once recorded.
// BookRecordID points at the BookUsage row, not the logical book id, since a
// book id can have independent usage rows per school.
type PageSession struct {
	gorm.Model
	BookRecordID     uint `gorm:"index"`
	BookID           int
	PageNumber       int
	SessionStartTime int64 `gorm:"index"` // epoch ms
	ActiveTimeMs     int64 `gorm:"default:0"`
}
