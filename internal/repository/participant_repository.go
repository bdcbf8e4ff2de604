package repository

import (
	"context"
	"encoding/json"

	"github.com/coursedesk/coursedesk-api/internal/livingapps"
	"github.com/coursedesk/coursedesk-api/internal/models"
	appErrors "github.com/coursedesk/coursedesk-api/pkg/errors"
)

// ParticipantRepository adapts the record service to typed participant models.
type ParticipantRepository struct {
	client *livingapps.Client
	appID  string
}

// NewParticipantRepository constructs the repository for the participant collection.
func NewParticipantRepository(client *livingapps.Client, appID string) *ParticipantRepository {
	return &ParticipantRepository{client: client, appID: appID}
}

// List returns all participants in service order.
func (r *ParticipantRepository) List(ctx context.Context) ([]models.Participant, error) {
	records, err := r.client.ListRecords(ctx, r.appID)
	if err != nil {
		return nil, err
	}
	participants := make([]models.Participant, 0, len(records))
	for _, record := range records {
		participant, err := participantFromRecord(record)
		if err != nil {
			return nil, err
		}
		participants = append(participants, *participant)
	}
	return participants, nil
}

// Get returns a single participant by record id.
func (r *ParticipantRepository) Get(ctx context.Context, id string) (*models.Participant, error) {
	record, err := r.client.GetRecord(ctx, r.appID, id)
	if err != nil {
		return nil, err
	}
	return participantFromRecord(*record)
}

// Create persists a new participant and returns the stored record.
func (r *ParticipantRepository) Create(ctx context.Context, fields models.ParticipantFields) (*models.Participant, error) {
	record, err := r.client.CreateRecord(ctx, r.appID, fields)
	if err != nil {
		return nil, err
	}
	return participantFromRecord(*record)
}

// Update replaces the field set of an existing participant.
func (r *ParticipantRepository) Update(ctx context.Context, id string, fields models.ParticipantFields) (*models.Participant, error) {
	record, err := r.client.UpdateRecord(ctx, r.appID, id, fields)
	if err != nil {
		return nil, err
	}
	return participantFromRecord(*record)
}

// Delete removes a participant by record id.
func (r *ParticipantRepository) Delete(ctx context.Context, id string) error {
	return r.client.DeleteRecord(ctx, r.appID, id)
}

func participantFromRecord(record livingapps.Record) (*models.Participant, error) {
	var fields models.ParticipantFields
	if len(record.Fields) > 0 {
		if err := json.Unmarshal(record.Fields, &fields); err != nil {
			return nil, appErrors.Wrap(err, appErrors.ErrUpstream.Code, appErrors.ErrUpstream.Status, "decode participant record")
		}
	}
	return &models.Participant{
		ID:        record.RecordID,
		Name:      fields.Name,
		Email:     fields.Email,
		Phone:     fields.Phone,
		BirthDate: fields.BirthDate,
		CreatedAt: record.CreatedAt,
		UpdatedAt: record.UpdatedAt,
	}, nil
}
