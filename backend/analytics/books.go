package analytics

import (
	"fmt"
	"math"
	"sort"

	"github.com/samber/lo"

	"github.com/tishamal/righttoread/backend/models"
)

type PopularBook struct {
	BookID            int    `json:"bookId"`
	BookTitle         string `json:"bookTitle"`
	Grade             int    `json:"grade"`
	TotalActiveTimeMs int64  `json:"totalActiveTimeMs"`
	TotalAccessCount  int    `json:"totalAccessCount"`
	UniqueSchools     int64  `json:"uniqueSchools"`
	AvgSessionTimeMs  int64  `json:"avgSessionTimeMs"`
	PagesAccessed     []int  `json:"pagesAccessed"`
}

// PopularBooks ranks logical books by total active time across all schools.
// Page unions are computed in a separate pass keyed only by book id; folding
// them into the grouped aggregate would double-count pages shared between
// schools.
func (s *Service) PopularBooks(limit int) ([]PopularBook, error) {
	limit, err := checkLimit(limit, DefaultBookLimit)
	if err != nil {
		return nil, err
	}

	var rows []struct {
		BookID            int
		BookTitle         string
		Grade             int
		TotalActiveTimeMs int64
		UniqueSchools     int64
	}
	if err := s.DB.Model(&models.BookUsage{}).
		Select("book_id, MAX(book_title) AS book_title, MAX(grade) AS grade, " +
			"SUM(total_active_time_ms) AS total_active_time_ms, COUNT(DISTINCT school_id) AS unique_schools").
		Group("book_id").
		Order("total_active_time_ms DESC").
		Limit(limit).
		Scan(&rows).Error; err != nil {
		return nil, fmt.Errorf("popular books: %w", err)
	}
	if len(rows) == 0 {
		return []PopularBook{}, nil
	}

	bookIDs := make([]int, 0, len(rows))
	for _, r := range rows {
		bookIDs = append(bookIDs, r.BookID)
	}

	avgTimes, err := s.avgSessionTimes(bookIDs)
	if err != nil {
		return nil, err
	}
	pages, counts, err := s.pageUnions(bookIDs)
	if err != nil {
		return nil, err
	}

	books := make([]PopularBook, 0, len(rows))
	for _, r := range rows {
		books = append(books, PopularBook{
			BookID:            r.BookID,
			BookTitle:         r.BookTitle,
			Grade:             r.Grade,
			TotalActiveTimeMs: r.TotalActiveTimeMs,
			TotalAccessCount:  counts[r.BookID],
			UniqueSchools:     r.UniqueSchools,
			AvgSessionTimeMs:  avgTimes[r.BookID],
			PagesAccessed:     pages[r.BookID],
		})
	}
	return books, nil
}

// avgSessionTimes returns the rounded average session active time per logical
// book, for the given ids only.
func (s *Service) avgSessionTimes(bookIDs []int) (map[int]int64, error) {
	var rows []struct {
		BookID  int
		AvgTime float64
	}
	if err := s.DB.Model(&models.PageSession{}).
		Select("book_id, AVG(active_time_ms) AS avg_time").
		Where("book_id IN ?", bookIDs).
		Group("book_id").
		Scan(&rows).Error; err != nil {
		return nil, fmt.Errorf("avg session times: %w", err)
	}
	avgs := make(map[int]int64, len(rows))
	for _, r := range rows {
		avgs[r.BookID] = int64(math.Round(r.AvgTime))
	}
	return avgs, nil
}

// pageUnions computes, per logical book, the distinct union of accessed pages
// across all schools' usage rows and the total access entry count. Bounded by
// the already-limited id set.
func (s *Service) pageUnions(bookIDs []int) (map[int][]int, map[int]int, error) {
	var usages []models.BookUsage
	if err := s.DB.Select("book_id, pages_accessed").
		Where("book_id IN ?", bookIDs).
		Find(&usages).Error; err != nil {
		return nil, nil, fmt.Errorf("page unions: %w", err)
	}

	pages := make(map[int][]int, len(bookIDs))
	counts := make(map[int]int, len(bookIDs))
	for _, u := range usages {
		pages[u.BookID] = append(pages[u.BookID], u.PagesAccessed...)
		counts[u.BookID] += len(u.PagesAccessed)
	}
	for id := range pages {
		union := lo.Uniq(pages[id])
		sort.Ints(union)
		pages[id] = union
	}
	for _, id := range bookIDs {
		if pages[id] == nil {
			pages[id] = []int{}
		}
	}
	return pages, counts, nil
}
