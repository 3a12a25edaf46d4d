package analytics

import (
	"fmt"
	"math"
	"sort"

	"github.com/samber/lo"

	"github.com/tishamal/righttoread/backend/models"
)

type BookSchoolUsage struct {
	SchoolID    uint   `json:"schoolId"`
	SchoolName  string `json:"schoolName"`
	TotalTime   int64  `json:"totalTime"`
	AccessCount int    `json:"accessCount"`
}

type BookDetails struct {
	BookID            int               `json:"bookId"`
	BookTitle         string            `json:"bookTitle"`
	Grade             int               `json:"grade"`
	TotalActiveTimeMs int64             `json:"totalActiveTimeMs"`
	TotalAccessCount  int64             `json:"totalAccessCount"`
	UniqueSchools     int               `json:"uniqueSchools"`
	AvgSessionTimeMs  int64             `json:"avgSessionTimeMs"`
	FirstAccessTime   int64             `json:"firstAccessTime"`
	LastAccessTime    int64             `json:"lastAccessTime"`
	TotalPages        int               `json:"totalPages"`
	PagesAccessed     []int             `json:"pagesAccessed"`
	SchoolsUsing      []BookSchoolUsage `json:"schoolsUsing"`
}

// BookDetails assembles the full drill-down for one logical book across every
// school's usage rows. Returns ErrNotFound when no usage row carries the id.
func (s *Service) BookDetails(bookID int) (*BookDetails, error) {
	var usages []models.BookUsage
	if err := s.DB.Where("book_id = ?", bookID).Find(&usages).Error; err != nil {
		return nil, fmt.Errorf("book details: %w", err)
	}
	if len(usages) == 0 {
		return nil, fmt.Errorf("book %d: %w", bookID, ErrNotFound)
	}

	details := &BookDetails{
		BookID:          bookID,
		BookTitle:       usages[0].BookTitle,
		Grade:           usages[0].Grade,
		FirstAccessTime: usages[0].FirstAccessTime,
		LastAccessTime:  usages[0].LastAccessTime,
	}

	schoolIDs := make(map[uint]struct{}, len(usages))
	var allPages []int
	for _, u := range usages {
		details.TotalActiveTimeMs += u.TotalActiveTimeMs
		schoolIDs[u.SchoolID] = struct{}{}
		allPages = append(allPages, u.PagesAccessed...)
		if u.FirstAccessTime < details.FirstAccessTime {
			details.FirstAccessTime = u.FirstAccessTime
		}
		if u.LastAccessTime > details.LastAccessTime {
			details.LastAccessTime = u.LastAccessTime
		}
		if u.TotalPages > details.TotalPages {
			details.TotalPages = u.TotalPages
		}
	}
	details.UniqueSchools = len(schoolIDs)

	union := lo.Uniq(allPages)
	sort.Ints(union)
	details.PagesAccessed = union
	if details.PagesAccessed == nil {
		details.PagesAccessed = []int{}
	}

	usageIDs := make([]uint, 0, len(usages))
	for _, u := range usages {
		usageIDs = append(usageIDs, u.ID)
	}
	var sessions struct {
		Count   int64
		AvgTime float64
	}
	if err := s.DB.Model(&models.PageSession{}).
		Select("COUNT(*) AS count, COALESCE(AVG(active_time_ms), 0) AS avg_time").
		Where("book_record_id IN ?", usageIDs).
		Scan(&sessions).Error; err != nil {
		return nil, fmt.Errorf("book details: sessions: %w", err)
	}
	details.TotalAccessCount = sessions.Count
	details.AvgSessionTimeMs = int64(math.Round(sessions.AvgTime))

	schools, err := s.topSchoolsForBook(usages)
	if err != nil {
		return nil, err
	}
	details.SchoolsUsing = schools

	return details, nil
}

// topSchoolsForBook returns the ten schools with the most active time on the
// book, each with its own time and page-access count.
func (s *Service) topSchoolsForBook(usages []models.BookUsage) ([]BookSchoolUsage, error) {
	sorted := make([]models.BookUsage, len(usages))
	copy(sorted, usages)
	sort.Slice(sorted, func(i, j int) bool {
		if sorted[i].TotalActiveTimeMs != sorted[j].TotalActiveTimeMs {
			return sorted[i].TotalActiveTimeMs > sorted[j].TotalActiveTimeMs
		}
		return sorted[i].SchoolID < sorted[j].SchoolID
	})
	if len(sorted) > 10 {
		sorted = sorted[:10]
	}

	ids := make([]uint, 0, len(sorted))
	for _, u := range sorted {
		ids = append(ids, u.SchoolID)
	}
	var schools []models.School
	if err := s.DB.Where("id IN ?", ids).Find(&schools).Error; err != nil {
		return nil, fmt.Errorf("book details: schools: %w", err)
	}
	names := make(map[uint]string, len(schools))
	for _, school := range schools {
		names[school.ID] = school.SchoolName
	}

	result := make([]BookSchoolUsage, 0, len(sorted))
	for _, u := range sorted {
		result = append(result, BookSchoolUsage{
			SchoolID:    u.SchoolID,
			SchoolName:  names[u.SchoolID],
			TotalTime:   u.TotalActiveTimeMs,
			AccessCount: len(u.PagesAccessed),
		})
	}
	return result, nil
}
