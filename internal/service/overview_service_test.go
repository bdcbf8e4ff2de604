package service

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/coursedesk/coursedesk-api/internal/dto"
	"github.com/coursedesk/coursedesk-api/internal/livingapps"
	"github.com/coursedesk/coursedesk-api/internal/models"
	"github.com/coursedesk/coursedesk-api/pkg/config"
)

func floatPtr(v float64) *float64 { return &v }

func courseRef(id string) *string {
	ref := livingapps.RecordURL("course-app", id)
	return &ref
}

func newOverviewService(courses []models.Course, registrations []models.Registration, now time.Time) *OverviewService {
	svc := NewOverviewService(
		&fakeCourseLister{courses: courses},
		&fakeRegistrationLister{registrations: registrations},
		nil,
		config.OverviewConfig{UpcomingLimit: 5, RecentLimit: 5},
		nil,
	)
	svc.now = func() time.Time { return now }
	return svc
}

type fakeRegistrationLister struct {
	registrations []models.Registration
	err           error
}

func (f *fakeRegistrationLister) List(context.Context) ([]models.Registration, error) {
	return f.registrations, f.err
}

func TestOverviewRevenueCountsPaidPerCourse(t *testing.T) {
	courses := []models.Course{
		{ID: "crs-1", Title: "Watercolor", StartDate: "2026-01-10", Status: models.CourseStatusActive, Price: floatPtr(50)},
		{ID: "crs-2", Title: "Pottery", StartDate: "2026-01-20", Status: models.CourseStatusActive, Price: floatPtr(25)},
		{ID: "crs-3", Title: "Free Intro", StartDate: "2026-01-25", Status: models.CourseStatusPlanned},
	}
	registrations := []models.Registration{
		{ID: "reg-1", CourseRef: courseRef("crs-1"), Paid: true},
		{ID: "reg-2", CourseRef: courseRef("crs-1"), Paid: true},
		{ID: "reg-3", CourseRef: courseRef("crs-1"), Paid: false},
		{ID: "reg-4", CourseRef: courseRef("crs-2"), Paid: true},
		{ID: "reg-5", CourseRef: courseRef("crs-3"), Paid: true},
		{ID: "reg-6", Paid: true},
	}
	svc := newOverviewService(courses, registrations, time.Date(2026, 6, 1, 12, 0, 0, 0, time.UTC))

	summary, cacheHit, err := svc.Summary(context.Background())
	require.NoError(t, err)
	assert.False(t, cacheHit)

	// 2 paid at 50 plus 1 paid at 25; unpriced and unlinked contribute nothing
	assert.Equal(t, 125.0, summary.Totals.Revenue)
	assert.Equal(t, 3, summary.Totals.Courses)
	assert.Equal(t, 2, summary.Totals.ActiveCourses)
	assert.Equal(t, 6, summary.Totals.Registrations)
	assert.Equal(t, 5, summary.Totals.PaidRegistrations)
}

func TestOverviewHistogramOmitsEmptyBuckets(t *testing.T) {
	courses := []models.Course{
		{ID: "crs-1", StartDate: "2026-01-10", Status: models.CourseStatusActive},
		{ID: "crs-2", StartDate: "2026-01-20", Status: models.CourseStatusActive},
		{ID: "crs-3", StartDate: "2026-01-25", Status: models.CourseStatusCancelled},
	}
	svc := newOverviewService(courses, nil, time.Date(2026, 6, 1, 0, 0, 0, 0, time.UTC))

	summary, _, err := svc.Summary(context.Background())
	require.NoError(t, err)

	require.Len(t, summary.StatusHistogram, 2)
	assert.Equal(t, dto.StatusBucket{Status: models.CourseStatusActive, Count: 2}, summary.StatusHistogram[0])
	assert.Equal(t, dto.StatusBucket{Status: models.CourseStatusCancelled, Count: 1}, summary.StatusHistogram[1])
}

func TestOverviewHistogramAllActiveSingleBucket(t *testing.T) {
	courses := []models.Course{
		{ID: "crs-1", StartDate: "2026-01-10", Status: models.CourseStatusActive},
		{ID: "crs-2", StartDate: "2026-01-20", Status: models.CourseStatusActive},
	}
	svc := newOverviewService(courses, nil, time.Date(2026, 6, 1, 0, 0, 0, 0, time.UTC))

	summary, _, err := svc.Summary(context.Background())
	require.NoError(t, err)
	require.Len(t, summary.StatusHistogram, 1)
	assert.Equal(t, dto.StatusBucket{Status: models.CourseStatusActive, Count: 2}, summary.StatusHistogram[0])
}

func TestOverviewRevenueFixture(t *testing.T) {
	courses := []models.Course{
		{ID: "c1", StartDate: "2026-01-10", Status: models.CourseStatusActive, Price: floatPtr(100)},
		{ID: "c2", StartDate: "2026-01-20", Status: models.CourseStatusActive, Price: floatPtr(50)},
	}
	registrations := []models.Registration{
		{ID: "r1", CourseRef: courseRef("c1"), Paid: true},
		{ID: "r2", CourseRef: courseRef("c1"), Paid: false},
		{ID: "r3", CourseRef: courseRef("c2"), Paid: true},
	}
	svc := newOverviewService(courses, registrations, time.Date(2026, 6, 1, 0, 0, 0, 0, time.UTC))

	summary, _, err := svc.Summary(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 150.0, summary.Totals.Revenue)
}

func TestOverviewUpcomingSortedAndLimited(t *testing.T) {
	courses := []models.Course{
		{ID: "past", Title: "Past", StartDate: "2025-12-31", Status: models.CourseStatusCompleted},
		{ID: "c", Title: "March", StartDate: "2026-03-01", Status: models.CourseStatusPlanned},
		{ID: "a", Title: "January", StartDate: "2026-01-15", Status: models.CourseStatusPlanned},
		{ID: "b", Title: "February", StartDate: "2026-02-10", Status: models.CourseStatusPlanned},
	}
	svc := newOverviewService(courses, nil, time.Date(2026, 1, 15, 9, 0, 0, 0, time.UTC))

	summary, _, err := svc.Summary(context.Background())
	require.NoError(t, err)

	require.Len(t, summary.UpcomingCourses, 3)
	assert.Equal(t, "a", summary.UpcomingCourses[0].ID)
	assert.Equal(t, "b", summary.UpcomingCourses[1].ID)
	assert.Equal(t, "c", summary.UpcomingCourses[2].ID)
}

func TestOverviewUpcomingIncludesToday(t *testing.T) {
	courses := []models.Course{
		{ID: "today", StartDate: "2026-01-15", Status: models.CourseStatusPlanned},
	}
	svc := newOverviewService(courses, nil, time.Date(2026, 1, 15, 23, 59, 0, 0, time.UTC))

	summary, _, err := svc.Summary(context.Background())
	require.NoError(t, err)
	require.Len(t, summary.UpcomingCourses, 1)
	assert.Equal(t, "today", summary.UpcomingCourses[0].ID)
}

func TestOverviewUpcomingRespectsLimit(t *testing.T) {
	courses := make([]models.Course, 0, 8)
	for i := 0; i < 8; i++ {
		courses = append(courses, models.Course{
			ID:        string(rune('a' + i)),
			StartDate: "2026-07-0" + string(rune('1'+i)),
			Status:    models.CourseStatusPlanned,
		})
	}
	svc := newOverviewService(courses, nil, time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC))

	summary, _, err := svc.Summary(context.Background())
	require.NoError(t, err)
	assert.Len(t, summary.UpcomingCourses, 5)
}

func TestOverviewRecentTakesTailReversed(t *testing.T) {
	registrations := []models.Registration{
		{ID: "reg-1", RegisteredAt: "2026-01-01"},
		{ID: "reg-2", RegisteredAt: "2026-01-02"},
		{ID: "reg-3", RegisteredAt: "2026-01-03"},
		{ID: "reg-4", RegisteredAt: "2026-01-04"},
		{ID: "reg-5", RegisteredAt: "2026-01-05"},
		{ID: "reg-6", RegisteredAt: "2026-01-06"},
		{ID: "reg-7", RegisteredAt: "2026-01-07"},
	}
	svc := newOverviewService(nil, registrations, time.Date(2026, 6, 1, 0, 0, 0, 0, time.UTC))

	summary, _, err := svc.Summary(context.Background())
	require.NoError(t, err)

	require.Len(t, summary.RecentRegistrations, 5)
	assert.Equal(t, "reg-7", summary.RecentRegistrations[0].ID)
	assert.Equal(t, "reg-3", summary.RecentRegistrations[4].ID)
}

func TestOverviewEmptyState(t *testing.T) {
	svc := newOverviewService(nil, nil, time.Date(2026, 6, 1, 0, 0, 0, 0, time.UTC))

	summary, cacheHit, err := svc.Summary(context.Background())
	require.NoError(t, err)
	assert.False(t, cacheHit)
	assert.Zero(t, summary.Totals.Courses)
	assert.Zero(t, summary.Totals.Revenue)
	assert.Empty(t, summary.StatusHistogram)
	assert.Empty(t, summary.UpcomingCourses)
	assert.Empty(t, summary.RecentRegistrations)
}

func TestOverviewCacheRoundTrip(t *testing.T) {
	cacheSvc := NewCacheService(newMemoryCacheRepo(), nil, time.Minute, nil, true)
	courses := &fakeCourseLister{courses: []models.Course{
		{ID: "crs-1", StartDate: "2026-01-10", Status: models.CourseStatusActive, Price: floatPtr(10)},
	}}
	svc := NewOverviewService(courses, &fakeRegistrationLister{}, cacheSvc, config.OverviewConfig{CacheEnabled: true, CacheTTL: time.Minute}, nil)

	first, hit, err := svc.Summary(context.Background())
	require.NoError(t, err)
	assert.False(t, hit)

	// mutate the source; cached payload must win until invalidated
	courses.courses = nil

	second, hit, err := svc.Summary(context.Background())
	require.NoError(t, err)
	assert.True(t, hit)
	assert.Equal(t, first.Totals, second.Totals)

	svc.InvalidateCache(context.Background())

	third, hit, err := svc.Summary(context.Background())
	require.NoError(t, err)
	assert.False(t, hit)
	assert.Zero(t, third.Totals.Courses)
}

func TestOverviewSurfacesListError(t *testing.T) {
	svc := NewOverviewService(
		&fakeCourseLister{err: assert.AnError},
		&fakeRegistrationLister{},
		nil,
		config.OverviewConfig{},
		nil,
	)

	_, _, err := svc.Summary(context.Background())
	require.Error(t, err)
	assert.ErrorIs(t, err, assert.AnError)
}
