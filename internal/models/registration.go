package models

import "time"

// Registration represents a participant's registration for a course.
// ParticipantRef and CourseRef hold encoded record references.
type Registration struct {
	ID             string     `json:"id"`
	ParticipantRef *string    `json:"participant_ref,omitempty"`
	CourseRef      *string    `json:"course_ref,omitempty"`
	RegisteredAt   string     `json:"registered_at"` // YYYY-MM-DD
	Paid           bool       `json:"paid"`
	CreatedAt      time.Time  `json:"created_at"`
	UpdatedAt      *time.Time `json:"updated_at,omitempty"`
}

// RegistrationFields is the mutable field set persisted for a registration.
type RegistrationFields struct {
	Participant  *string `json:"participant,omitempty"`
	Course       *string `json:"course,omitempty"`
	RegisteredAt string  `json:"registered_at"`
	Paid         bool    `json:"paid"`
}
