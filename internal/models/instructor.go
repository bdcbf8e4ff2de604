package models

import "time"

// Instructor represents a course instructor record.
type Instructor struct {
	ID        string     `json:"id"`
	Name      string     `json:"name"`
	Email     *string    `json:"email,omitempty"`
	Phone     *string    `json:"phone,omitempty"`
	Subject   *string    `json:"subject,omitempty"`
	CreatedAt time.Time  `json:"created_at"`
	UpdatedAt *time.Time `json:"updated_at,omitempty"`
}

// InstructorFields is the mutable field set persisted for an instructor.
// Optional fields are omitted from the payload when empty.
type InstructorFields struct {
	Name    string  `json:"name"`
	Email   *string `json:"email,omitempty"`
	Phone   *string `json:"phone,omitempty"`
	Subject *string `json:"subject,omitempty"`
}
