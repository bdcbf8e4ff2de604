package repository

import (
	"context"
	"encoding/json"

	"github.com/coursedesk/coursedesk-api/internal/livingapps"
	"github.com/coursedesk/coursedesk-api/internal/models"
	appErrors "github.com/coursedesk/coursedesk-api/pkg/errors"
)

// CourseRepository adapts the record service to typed course models.
type CourseRepository struct {
	client *livingapps.Client
	appID  string
}

// NewCourseRepository constructs the repository for the course collection.
func NewCourseRepository(client *livingapps.Client, appID string) *CourseRepository {
	return &CourseRepository{client: client, appID: appID}
}

// List returns all courses in service order.
func (r *CourseRepository) List(ctx context.Context) ([]models.Course, error) {
	records, err := r.client.ListRecords(ctx, r.appID)
	if err != nil {
		return nil, err
	}
	courses := make([]models.Course, 0, len(records))
	for _, record := range records {
		course, err := courseFromRecord(record)
		if err != nil {
			return nil, err
		}
		courses = append(courses, *course)
	}
	return courses, nil
}

// Get returns a single course by record id.
func (r *CourseRepository) Get(ctx context.Context, id string) (*models.Course, error) {
	record, err := r.client.GetRecord(ctx, r.appID, id)
	if err != nil {
		return nil, err
	}
	return courseFromRecord(*record)
}

// Create persists a new course and returns the stored record.
func (r *CourseRepository) Create(ctx context.Context, fields models.CourseFields) (*models.Course, error) {
	record, err := r.client.CreateRecord(ctx, r.appID, fields)
	if err != nil {
		return nil, err
	}
	return courseFromRecord(*record)
}

// Update replaces the field set of an existing course.
func (r *CourseRepository) Update(ctx context.Context, id string, fields models.CourseFields) (*models.Course, error) {
	record, err := r.client.UpdateRecord(ctx, r.appID, id, fields)
	if err != nil {
		return nil, err
	}
	return courseFromRecord(*record)
}

// Delete removes a course by record id.
func (r *CourseRepository) Delete(ctx context.Context, id string) error {
	return r.client.DeleteRecord(ctx, r.appID, id)
}

func courseFromRecord(record livingapps.Record) (*models.Course, error) {
	var fields models.CourseFields
	if len(record.Fields) > 0 {
		if err := json.Unmarshal(record.Fields, &fields); err != nil {
			return nil, appErrors.Wrap(err, appErrors.ErrUpstream.Code, appErrors.ErrUpstream.Status, "decode course record")
		}
	}
	return &models.Course{
		ID:              record.RecordID,
		Title:           fields.Title,
		Description:     fields.Description,
		StartDate:       fields.StartDate,
		EndDate:         fields.EndDate,
		MaxParticipants: fields.MaxParticipants,
		Price:           fields.Price,
		InstructorRef:   fields.Instructor,
		RoomRef:         fields.Room,
		Status:          fields.Status,
		CreatedAt:       record.CreatedAt,
		UpdatedAt:       record.UpdatedAt,
	}, nil
}
