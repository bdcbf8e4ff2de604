package repository

import (
	"context"
	"encoding/json"

	"github.com/coursedesk/coursedesk-api/internal/livingapps"
	"github.com/coursedesk/coursedesk-api/internal/models"
	appErrors "github.com/coursedesk/coursedesk-api/pkg/errors"
)

// RegistrationRepository adapts the record service to typed registration models.
type RegistrationRepository struct {
	client *livingapps.Client
	appID  string
}

// NewRegistrationRepository constructs the repository for the registration collection.
func NewRegistrationRepository(client *livingapps.Client, appID string) *RegistrationRepository {
	return &RegistrationRepository{client: client, appID: appID}
}

// List returns all registrations in service order.
func (r *RegistrationRepository) List(ctx context.Context) ([]models.Registration, error) {
	records, err := r.client.ListRecords(ctx, r.appID)
	if err != nil {
		return nil, err
	}
	registrations := make([]models.Registration, 0, len(records))
	for _, record := range records {
		registration, err := registrationFromRecord(record)
		if err != nil {
			return nil, err
		}
		registrations = append(registrations, *registration)
	}
	return registrations, nil
}

// Get returns a single registration by record id.
func (r *RegistrationRepository) Get(ctx context.Context, id string) (*models.Registration, error) {
	record, err := r.client.GetRecord(ctx, r.appID, id)
	if err != nil {
		return nil, err
	}
	return registrationFromRecord(*record)
}

// Create persists a new registration and returns the stored record.
func (r *RegistrationRepository) Create(ctx context.Context, fields models.RegistrationFields) (*models.Registration, error) {
	record, err := r.client.CreateRecord(ctx, r.appID, fields)
	if err != nil {
		return nil, err
	}
	return registrationFromRecord(*record)
}

// Update replaces the field set of an existing registration.
func (r *RegistrationRepository) Update(ctx context.Context, id string, fields models.RegistrationFields) (*models.Registration, error) {
	record, err := r.client.UpdateRecord(ctx, r.appID, id, fields)
	if err != nil {
		return nil, err
	}
	return registrationFromRecord(*record)
}

// Delete removes a registration by record id.
func (r *RegistrationRepository) Delete(ctx context.Context, id string) error {
	return r.client.DeleteRecord(ctx, r.appID, id)
}

func registrationFromRecord(record livingapps.Record) (*models.Registration, error) {
	var fields models.RegistrationFields
	if len(record.Fields) > 0 {
		if err := json.Unmarshal(record.Fields, &fields); err != nil {
			return nil, appErrors.Wrap(err, appErrors.ErrUpstream.Code, appErrors.ErrUpstream.Status, "decode registration record")
		}
	}
	return &models.Registration{
		ID:             record.RecordID,
		ParticipantRef: fields.Participant,
		CourseRef:      fields.Course,
		RegisteredAt:   fields.RegisteredAt,
		Paid:           fields.Paid,
		CreatedAt:      record.CreatedAt,
		UpdatedAt:      record.UpdatedAt,
	}, nil
}
