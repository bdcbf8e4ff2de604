package repository

import (
	"context"
	"encoding/json"

	"github.com/coursedesk/coursedesk-api/internal/livingapps"
	"github.com/coursedesk/coursedesk-api/internal/models"
	appErrors "github.com/coursedesk/coursedesk-api/pkg/errors"
)

// InstructorRepository adapts the record service to typed instructor models.
type InstructorRepository struct {
	client *livingapps.Client
	appID  string
}

// NewInstructorRepository constructs the repository for the instructor collection.
func NewInstructorRepository(client *livingapps.Client, appID string) *InstructorRepository {
	return &InstructorRepository{client: client, appID: appID}
}

// List returns all instructors in service order.
func (r *InstructorRepository) List(ctx context.Context) ([]models.Instructor, error) {
	records, err := r.client.ListRecords(ctx, r.appID)
	if err != nil {
		return nil, err
	}
	instructors := make([]models.Instructor, 0, len(records))
	for _, record := range records {
		instructor, err := instructorFromRecord(record)
		if err != nil {
			return nil, err
		}
		instructors = append(instructors, *instructor)
	}
	return instructors, nil
}

// Get returns a single instructor by record id.
func (r *InstructorRepository) Get(ctx context.Context, id string) (*models.Instructor, error) {
	record, err := r.client.GetRecord(ctx, r.appID, id)
	if err != nil {
		return nil, err
	}
	return instructorFromRecord(*record)
}

// Create persists a new instructor and returns the stored record.
func (r *InstructorRepository) Create(ctx context.Context, fields models.InstructorFields) (*models.Instructor, error) {
	record, err := r.client.CreateRecord(ctx, r.appID, fields)
	if err != nil {
		return nil, err
	}
	return instructorFromRecord(*record)
}

// Update replaces the field set of an existing instructor.
func (r *InstructorRepository) Update(ctx context.Context, id string, fields models.InstructorFields) (*models.Instructor, error) {
	record, err := r.client.UpdateRecord(ctx, r.appID, id, fields)
	if err != nil {
		return nil, err
	}
	return instructorFromRecord(*record)
}

// Delete removes an instructor by record id.
func (r *InstructorRepository) Delete(ctx context.Context, id string) error {
	return r.client.DeleteRecord(ctx, r.appID, id)
}

func instructorFromRecord(record livingapps.Record) (*models.Instructor, error) {
	var fields models.InstructorFields
	if len(record.Fields) > 0 {
		if err := json.Unmarshal(record.Fields, &fields); err != nil {
			return nil, appErrors.Wrap(err, appErrors.ErrUpstream.Code, appErrors.ErrUpstream.Status, "decode instructor record")
		}
	}
	return &models.Instructor{
		ID:        record.RecordID,
		Name:      fields.Name,
		Email:     fields.Email,
		Phone:     fields.Phone,
		Subject:   fields.Subject,
		CreatedAt: record.CreatedAt,
		UpdatedAt: record.UpdatedAt,
	}, nil
}
