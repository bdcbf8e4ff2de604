package dto

import "github.com/coursedesk/coursedesk-api/internal/models"

// OverviewResponse is the aggregated summary payload.
type OverviewResponse struct {
	Totals              OverviewTotals       `json:"totals"`
	StatusHistogram     []StatusBucket       `json:"status_histogram"`
	UpcomingCourses     []UpcomingCourse     `json:"upcoming_courses"`
	RecentRegistrations []RecentRegistration `json:"recent_registrations"`
}

// OverviewTotals carries the headline counters.
type OverviewTotals struct {
	Courses           int     `json:"courses"`
	ActiveCourses     int     `json:"active_courses"`
	Registrations     int     `json:"registrations"`
	PaidRegistrations int     `json:"paid_registrations"`
	Revenue           float64 `json:"revenue"`
}

// StatusBucket is one non-empty bucket of the course status histogram.
type StatusBucket struct {
	Status models.CourseStatus `json:"status"`
	Count  int                 `json:"count"`
}

// UpcomingCourse is a course starting today or later.
type UpcomingCourse struct {
	ID        string              `json:"id"`
	Title     string              `json:"title"`
	StartDate string              `json:"start_date"`
	Status    models.CourseStatus `json:"status"`
}

// RecentRegistration is one of the most recently fetched registrations.
// Order reflects list position only; the service defines no true recency.
type RecentRegistration struct {
	ID           string `json:"id"`
	RegisteredAt string `json:"registered_at"`
	Paid         bool   `json:"paid"`
}
