package service

import (
	"context"
	"sort"
	"time"

	"go.uber.org/zap"

	"github.com/coursedesk/coursedesk-api/internal/dto"
	"github.com/coursedesk/coursedesk-api/internal/livingapps"
	"github.com/coursedesk/coursedesk-api/internal/models"
	"github.com/coursedesk/coursedesk-api/pkg/config"
)

const overviewCacheKey = "overview:summary:v1"

type overviewCourseLister interface {
	List(ctx context.Context) ([]models.Course, error)
}

type overviewRegistrationLister interface {
	List(ctx context.Context) ([]models.Registration, error)
}

// OverviewService aggregates courses and registrations into the dashboard
// summary. Results are optionally served from cache.
type OverviewService struct {
	courses       overviewCourseLister
	registrations overviewRegistrationLister
	cache         *CacheService
	cfg           config.OverviewConfig
	logger        *zap.Logger
	now           func() time.Time
}

// NewOverviewService constructs an OverviewService.
func NewOverviewService(
	courses overviewCourseLister,
	registrations overviewRegistrationLister,
	cache *CacheService,
	cfg config.OverviewConfig,
	logger *zap.Logger,
) *OverviewService {
	if cfg.UpcomingLimit <= 0 {
		cfg.UpcomingLimit = 5
	}
	if cfg.RecentLimit <= 0 {
		cfg.RecentLimit = 5
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &OverviewService{
		courses:       courses,
		registrations: registrations,
		cache:         cache,
		cfg:           cfg,
		logger:        logger,
		now:           time.Now,
	}
}

// Summary computes the overview payload. The second return value reports
// whether the response was served from cache.
func (s *OverviewService) Summary(ctx context.Context) (*dto.OverviewResponse, bool, error) {
	if s.cache.Enabled() {
		var cached dto.OverviewResponse
		hit, err := s.cache.Get(ctx, overviewCacheKey, &cached)
		if err != nil {
			s.logger.Warn("overview cache lookup failed", zap.Error(err))
		}
		if hit {
			return &cached, true, nil
		}
	}

	courses, err := s.courses.List(ctx)
	if err != nil {
		return nil, false, err
	}
	registrations, err := s.registrations.List(ctx)
	if err != nil {
		return nil, false, err
	}

	response := s.aggregate(courses, registrations)

	if s.cache.Enabled() {
		if err := s.cache.Set(ctx, overviewCacheKey, response, s.cfg.CacheTTL); err != nil {
			s.logger.Warn("overview cache store failed", zap.Error(err))
		}
	}

	return response, false, nil
}

// InvalidateCache drops the cached summary, typically after a mutation.
func (s *OverviewService) InvalidateCache(ctx context.Context) {
	if !s.cache.Enabled() {
		return
	}
	if err := s.cache.Invalidate(ctx, overviewCacheKey); err != nil {
		s.logger.Warn("overview cache invalidation failed", zap.Error(err))
	}
}

func (s *OverviewService) aggregate(courses []models.Course, registrations []models.Registration) *dto.OverviewResponse {
	response := &dto.OverviewResponse{
		Totals: dto.OverviewTotals{
			Courses:       len(courses),
			Registrations: len(registrations),
		},
		StatusHistogram:     []dto.StatusBucket{},
		UpcomingCourses:     []dto.UpcomingCourse{},
		RecentRegistrations: []dto.RecentRegistration{},
	}

	// Paid registrations indexed by referenced course id. Registrations
	// with dangling or malformed course references still count towards
	// the paid total but contribute no revenue.
	paidByCourse := make(map[string]int)
	for _, registration := range registrations {
		if !registration.Paid {
			continue
		}
		response.Totals.PaidRegistrations++
		if id := livingapps.ExtractRecordIDPtr(registration.CourseRef); id != "" {
			paidByCourse[id]++
		}
	}

	statusCounts := make(map[models.CourseStatus]int)
	for _, course := range courses {
		statusCounts[course.Status]++
		if course.Status == models.CourseStatusActive {
			response.Totals.ActiveCourses++
		}
		if course.Price != nil {
			response.Totals.Revenue += *course.Price * float64(paidByCourse[course.ID])
		}
	}

	for _, status := range models.CourseStatuses {
		if count := statusCounts[status]; count > 0 {
			response.StatusHistogram = append(response.StatusHistogram, dto.StatusBucket{Status: status, Count: count})
		}
	}

	response.UpcomingCourses = s.upcoming(courses)
	response.RecentRegistrations = s.recent(registrations)

	return response
}

// upcoming selects courses starting today or later, soonest first. Dates
// are ISO strings so lexicographic order is chronological order.
func (s *OverviewService) upcoming(courses []models.Course) []dto.UpcomingCourse {
	today := s.now().Format("2006-01-02")

	selected := make([]dto.UpcomingCourse, 0, len(courses))
	for _, course := range courses {
		if course.StartDate >= today {
			selected = append(selected, dto.UpcomingCourse{
				ID:        course.ID,
				Title:     course.Title,
				StartDate: course.StartDate,
				Status:    course.Status,
			})
		}
	}

	sort.SliceStable(selected, func(i, j int) bool {
		return selected[i].StartDate < selected[j].StartDate
	})

	if len(selected) > s.cfg.UpcomingLimit {
		selected = selected[:s.cfg.UpcomingLimit]
	}
	return selected
}

// recent takes the last entries of the registration list, newest first.
func (s *OverviewService) recent(registrations []models.Registration) []dto.RecentRegistration {
	limit := s.cfg.RecentLimit
	start := len(registrations) - limit
	if start < 0 {
		start = 0
	}

	tail := registrations[start:]
	recent := make([]dto.RecentRegistration, 0, len(tail))
	for i := len(tail) - 1; i >= 0; i-- {
		recent = append(recent, dto.RecentRegistration{
			ID:           tail[i].ID,
			RegisteredAt: tail[i].RegisteredAt,
			Paid:         tail[i].Paid,
		})
	}
	return recent
}
