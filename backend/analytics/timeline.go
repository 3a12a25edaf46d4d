package analytics

import (
	"fmt"
	"sort"
	"time"

	"github.com/tishamal/righttoread/backend/models"
)

type TimelineBucket struct {
	Timestamp         int64  `json:"timestamp"`
	Date              string `json:"date"`
	TotalSessions     int64  `json:"totalSessions"`
	TotalActiveTimeMs int64  `json:"totalActiveTimeMs"`
	UniqueBooks       int    `json:"uniqueBooks"`
	UniqueSchools     int    `json:"uniqueSchools,omitempty"`
}

type sessionRow struct {
	SessionStartTime int64
	ActiveTimeMs     int64
	BookID           int
	SchoolID         uint
}

// Timeline buckets every page session in the resolved window into UTC
// calendar days, fleet-wide.
func (s *Service) Timeline(token string) ([]TimelineBucket, error) {
	rows, err := s.sessionsInWindow(token, 0)
	if err != nil {
		return nil, err
	}
	return bucketByDay(rows, true), nil
}

// SchoolTimeline is the same series restricted to sessions on one school's
// usage rows. The per-bucket school count is omitted since it is always 1.
func (s *Service) SchoolTimeline(schoolID uint, token string) ([]TimelineBucket, error) {
	rows, err := s.sessionsInWindow(token, schoolID)
	if err != nil {
		return nil, err
	}
	return bucketByDay(rows, false), nil
}

// sessionsInWindow fetches session rows with start times in [start, end),
// joined to usage rows for the owning school. schoolID 0 means fleet-wide.
func (s *Service) sessionsInWindow(token string, schoolID uint) ([]sessionRow, error) {
	start, end := RangeBounds(token, time.Now())

	q := s.DB.Model(&models.PageSession{}).
		Select("page_sessions.session_start_time, page_sessions.active_time_ms, page_sessions.book_id, books.school_id").
		Joins("JOIN books ON books.id = page_sessions.book_record_id").
		Where("page_sessions.session_start_time >= ? AND page_sessions.session_start_time < ?", start, end)
	if schoolID != 0 {
		q = q.Where("books.school_id = ?", schoolID)
	}

	var rows []sessionRow
	if err := q.Scan(&rows).Error; err != nil {
		return nil, fmt.Errorf("timeline: %w", err)
	}
	return rows, nil
}

// bucketByDay groups session rows into UTC day buckets. Days with no sessions
// produce no bucket; output is ascending by bucket timestamp.
func bucketByDay(rows []sessionRow, withSchools bool) []TimelineBucket {
	type acc struct {
		sessions int64
		activeMs int64
		books    map[int]struct{}
		schools  map[uint]struct{}
	}
	days := make(map[int64]*acc)

	for _, r := range rows {
		day := time.UnixMilli(r.SessionStartTime).UTC().Truncate(24 * time.Hour)
		key := day.UnixMilli()
		a := days[key]
		if a == nil {
			a = &acc{books: make(map[int]struct{}), schools: make(map[uint]struct{})}
			days[key] = a
		}
		a.sessions++
		a.activeMs += r.ActiveTimeMs
		a.books[r.BookID] = struct{}{}
		a.schools[r.SchoolID] = struct{}{}
	}

	keys := make([]int64, 0, len(days))
	for k := range days {
		keys = append(keys, k)
	}
	sort.Slice(keys, func(i, j int) bool { return keys[i] < keys[j] })

	buckets := make([]TimelineBucket, 0, len(keys))
	for _, k := range keys {
		a := days[k]
		b := TimelineBucket{
			Timestamp:         k,
			Date:              time.UnixMilli(k).UTC().Format("2006-01-02"),
			TotalSessions:     a.sessions,
			TotalActiveTimeMs: a.activeMs,
			UniqueBooks:       len(a.books),
		}
		if withSchools {
			b.UniqueSchools = len(a.schools)
		}
		buckets = append(buckets, b)
	}
	return buckets
}
