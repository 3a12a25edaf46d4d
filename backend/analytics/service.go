// Package analytics computes usage rollups, rankings, time series and
// distribution breakdowns from the reading records the sync pipeline writes.
// Everything here is a stateless read-only query over the store; HTTP routing
// and serialization live in the controllers.
package analytics

import "gorm.io/gorm"

// Default result sizes applied when the caller does not pass a limit.
const (
	DefaultSchoolLimit = 50
	DefaultBookLimit   = 10
	DefaultLogLimit    = 50
)

type Service struct {
	DB *gorm.DB
}

func New(db *gorm.DB) *Service {
	return &Service{DB: db}
}
