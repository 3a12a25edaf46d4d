package analytics

import (
	"fmt"
	"math"
	"sort"
	"time"

	"github.com/tishamal/righttoread/backend/models"
)

type PageEngagement struct {
	BookID            int    `json:"bookId"`
	BookTitle         string `json:"bookTitle"`
	PageNumber        int    `json:"pageNumber"`
	TotalSessions     int64  `json:"totalSessions"`
	AvgActiveTimeMs   int64  `json:"avgActiveTimeMs"`
	TotalActiveTimeMs int64  `json:"totalActiveTimeMs"`
}

type ReadingPattern struct {
	Hour             int   `json:"hour"`
	DayOfWeek        int   `json:"dayOfWeek"`
	TotalSessions    int64 `json:"totalSessions"`
	AvgSessionTimeMs int64 `json:"avgSessionTimeMs"`
}

// PageEngagement groups sessions by (book, page). With a book id the result
// covers that book ordered by page; with bookID 0 it is the fleet-wide top 50
// pages by total active time.
func (s *Service) PageEngagement(bookID int) ([]PageEngagement, error) {
	q := s.DB.Model(&models.PageSession{}).
		Select("page_sessions.book_id, books.book_title, page_sessions.page_number, " +
			"COUNT(*) AS total_sessions, AVG(page_sessions.active_time_ms) AS avg_time, " +
			"SUM(page_sessions.active_time_ms) AS total_active_time_ms").
		Joins("JOIN books ON books.id = page_sessions.book_record_id").
		Group("page_sessions.book_id, books.book_title, page_sessions.page_number")
	if bookID != 0 {
		q = q.Where("page_sessions.book_id = ?", bookID).Order("page_sessions.page_number ASC")
	} else {
		q = q.Order("total_active_time_ms DESC").Limit(50)
	}

	var rows []struct {
		BookID            int
		BookTitle         string
		PageNumber        int
		TotalSessions     int64
		AvgTime           float64
		TotalActiveTimeMs int64
	}
	if err := q.Scan(&rows).Error; err != nil {
		return nil, fmt.Errorf("page engagement: %w", err)
	}

	engagement := make([]PageEngagement, 0, len(rows))
	for _, r := range rows {
		engagement = append(engagement, PageEngagement{
			BookID:            r.BookID,
			BookTitle:         r.BookTitle,
			PageNumber:        r.PageNumber,
			TotalSessions:     r.TotalSessions,
			AvgActiveTimeMs:   int64(math.Round(r.AvgTime)),
			TotalActiveTimeMs: r.TotalActiveTimeMs,
		})
	}
	return engagement, nil
}

// ReadingPatterns buckets the trailing 30 days of sessions by UTC hour and
// weekday (0 = Sunday), ordered by weekday then hour.
func (s *Service) ReadingPatterns() ([]ReadingPattern, error) {
	start, end := RangeBounds(defaultRange, time.Now())

	var rows []struct {
		SessionStartTime int64
		ActiveTimeMs     int64
	}
	if err := s.DB.Model(&models.PageSession{}).
		Select("session_start_time, active_time_ms").
		Where("session_start_time >= ? AND session_start_time < ?", start, end).
		Scan(&rows).Error; err != nil {
		return nil, fmt.Errorf("reading patterns: %w", err)
	}

	type slot struct{ dow, hour int }
	type acc struct {
		sessions int64
		totalMs  int64
	}
	slots := make(map[slot]*acc)
	for _, r := range rows {
		t := time.UnixMilli(r.SessionStartTime).UTC()
		k := slot{dow: int(t.Weekday()), hour: t.Hour()}
		a := slots[k]
		if a == nil {
			a = &acc{}
			slots[k] = a
		}
		a.sessions++
		a.totalMs += r.ActiveTimeMs
	}

	keys := make([]slot, 0, len(slots))
	for k := range slots {
		keys = append(keys, k)
	}
	sort.Slice(keys, func(i, j int) bool {
		if keys[i].dow != keys[j].dow {
			return keys[i].dow < keys[j].dow
		}
		return keys[i].hour < keys[j].hour
	})

	patterns := make([]ReadingPattern, 0, len(keys))
	for _, k := range keys {
		a := slots[k]
		patterns = append(patterns, ReadingPattern{
			Hour:             k.hour,
			DayOfWeek:        k.dow,
			TotalSessions:    a.sessions,
			AvgSessionTimeMs: int64(math.Round(float64(a.totalMs) / float64(a.sessions))),
		})
	}
	return patterns, nil
}
