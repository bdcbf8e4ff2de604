package dto

import "github.com/coursedesk/coursedesk-api/internal/models"

// CourseView enriches a course with decoded reference ids and resolved
// display labels. Labels stay nil for unlinked or dangling references.
type CourseView struct {
	models.Course
	InstructorID   *string `json:"instructor_id,omitempty"`
	InstructorName *string `json:"instructor_name,omitempty"`
	RoomID         *string `json:"room_id,omitempty"`
	RoomName       *string `json:"room_name,omitempty"`
}

// RegistrationView enriches a registration with decoded reference ids and
// resolved display labels.
type RegistrationView struct {
	models.Registration
	ParticipantID   *string `json:"participant_id,omitempty"`
	ParticipantName *string `json:"participant_name,omitempty"`
	CourseID        *string `json:"course_id,omitempty"`
	CourseTitle     *string `json:"course_title,omitempty"`
}
