package models

import "time"

// Room represents a training room record.
type Room struct {
	ID        string     `json:"id"`
	Name      string     `json:"name"`
	Building  *string    `json:"building,omitempty"`
	Capacity  *int       `json:"capacity,omitempty"`
	CreatedAt time.Time  `json:"created_at"`
	UpdatedAt *time.Time `json:"updated_at,omitempty"`
}

// RoomFields is the mutable field set persisted for a room.
type RoomFields struct {
	Name     string  `json:"name"`
	Building *string `json:"building,omitempty"`
	Capacity *int    `json:"capacity,omitempty"`
}
