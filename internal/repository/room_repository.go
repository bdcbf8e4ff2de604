package repository

import (
	"context"
	"encoding/json"

	"github.com/coursedesk/coursedesk-api/internal/livingapps"
	"github.com/coursedesk/coursedesk-api/internal/models"
	appErrors "github.com/coursedesk/coursedesk-api/pkg/errors"
)

// RoomRepository adapts the record service to typed room models.
type RoomRepository struct {
	client *livingapps.Client
	appID  string
}

// NewRoomRepository constructs the repository for the room collection.
func NewRoomRepository(client *livingapps.Client, appID string) *RoomRepository {
	return &RoomRepository{client: client, appID: appID}
}

// List returns all rooms in service order.
func (r *RoomRepository) List(ctx context.Context) ([]models.Room, error) {
	records, err := r.client.ListRecords(ctx, r.appID)
	if err != nil {
		return nil, err
	}
	rooms := make([]models.Room, 0, len(records))
	for _, record := range records {
		room, err := roomFromRecord(record)
		if err != nil {
			return nil, err
		}
		rooms = append(rooms, *room)
	}
	return rooms, nil
}

// Get returns a single room by record id.
func (r *RoomRepository) Get(ctx context.Context, id string) (*models.Room, error) {
	record, err := r.client.GetRecord(ctx, r.appID, id)
	if err != nil {
		return nil, err
	}
	return roomFromRecord(*record)
}

// Create persists a new room and returns the stored record.
func (r *RoomRepository) Create(ctx context.Context, fields models.RoomFields) (*models.Room, error) {
	record, err := r.client.CreateRecord(ctx, r.appID, fields)
	if err != nil {
		return nil, err
	}
	return roomFromRecord(*record)
}

// Update replaces the field set of an existing room.
func (r *RoomRepository) Update(ctx context.Context, id string, fields models.RoomFields) (*models.Room, error) {
	record, err := r.client.UpdateRecord(ctx, r.appID, id, fields)
	if err != nil {
		return nil, err
	}
	return roomFromRecord(*record)
}

// Delete removes a room by record id.
func (r *RoomRepository) Delete(ctx context.Context, id string) error {
	return r.client.DeleteRecord(ctx, r.appID, id)
}

func roomFromRecord(record livingapps.Record) (*models.Room, error) {
	var fields models.RoomFields
	if len(record.Fields) > 0 {
		if err := json.Unmarshal(record.Fields, &fields); err != nil {
			return nil, appErrors.Wrap(err, appErrors.ErrUpstream.Code, appErrors.ErrUpstream.Status, "decode room record")
		}
	}
	return &models.Room{
		ID:        record.RecordID,
		Name:      fields.Name,
		Building:  fields.Building,
		Capacity:  fields.Capacity,
		CreatedAt: record.CreatedAt,
		UpdatedAt: record.UpdatedAt,
	}, nil
}
