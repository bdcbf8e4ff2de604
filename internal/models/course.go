package models

import "time"

// CourseStatus enumerates the lifecycle states of a course.
type CourseStatus string

const (
	CourseStatusPlanned   CourseStatus = "planned"
	CourseStatusActive    CourseStatus = "active"
	CourseStatusCompleted CourseStatus = "completed"
	CourseStatusCancelled CourseStatus = "cancelled"
)

// CourseStatuses lists all statuses in display order.
var CourseStatuses = []CourseStatus{
	CourseStatusPlanned,
	CourseStatusActive,
	CourseStatusCompleted,
	CourseStatusCancelled,
}

// Valid reports whether the status is one of the known values.
func (s CourseStatus) Valid() bool {
	switch s {
	case CourseStatusPlanned, CourseStatusActive, CourseStatusCompleted, CourseStatusCancelled:
		return true
	}
	return false
}

// Course represents a course record. InstructorRef and RoomRef hold the
// encoded record references as stored by the record service.
type Course struct {
	ID              string       `json:"id"`
	Title           string       `json:"title"`
	Description     *string      `json:"description,omitempty"`
	StartDate       string       `json:"start_date"` // YYYY-MM-DD
	EndDate         *string      `json:"end_date,omitempty"`
	MaxParticipants *int         `json:"max_participants,omitempty"`
	Price           *float64     `json:"price,omitempty"`
	InstructorRef   *string      `json:"instructor_ref,omitempty"`
	RoomRef         *string      `json:"room_ref,omitempty"`
	Status          CourseStatus `json:"status"`
	CreatedAt       time.Time    `json:"created_at"`
	UpdatedAt       *time.Time   `json:"updated_at,omitempty"`
}

// CourseFields is the mutable field set persisted for a course. Reference
// fields carry fully encoded record URLs, or are omitted when unlinked.
type CourseFields struct {
	Title           string       `json:"title"`
	Description     *string      `json:"description,omitempty"`
	StartDate       string       `json:"start_date"`
	EndDate         *string      `json:"end_date,omitempty"`
	MaxParticipants *int         `json:"max_participants,omitempty"`
	Price           *float64     `json:"price,omitempty"`
	Instructor      *string      `json:"instructor,omitempty"`
	Room            *string      `json:"room,omitempty"`
	Status          CourseStatus `json:"status,omitempty"`
}
