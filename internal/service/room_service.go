package service

import (
	"context"
	"strings"

	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"

	"github.com/coursedesk/coursedesk-api/internal/models"
	appErrors "github.com/coursedesk/coursedesk-api/pkg/errors"
)

type roomRepository interface {
	List(ctx context.Context) ([]models.Room, error)
	Get(ctx context.Context, id string) (*models.Room, error)
	Create(ctx context.Context, fields models.RoomFields) (*models.Room, error)
	Update(ctx context.Context, id string, fields models.RoomFields) (*models.Room, error)
	Delete(ctx context.Context, id string) error
}

// RoomRequest is the payload for creating or updating a room.
type RoomRequest struct {
	Name     string  `json:"name" validate:"required"`
	Building *string `json:"building" validate:"omitempty,max=200"`
	Capacity *int    `json:"capacity" validate:"omitempty,min=0"`
}

// RoomService orchestrates room operations.
type RoomService struct {
	repo      roomRepository
	validator *validator.Validate
	logger    *zap.Logger
}

// NewRoomService constructs a RoomService.
func NewRoomService(repo roomRepository, validate *validator.Validate, logger *zap.Logger) *RoomService {
	if validate == nil {
		validate = validator.New()
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &RoomService{repo: repo, validator: validate, logger: logger}
}

// List returns all rooms.
func (s *RoomService) List(ctx context.Context) ([]models.Room, error) {
	return s.repo.List(ctx)
}

// Get returns a room by id.
func (s *RoomService) Get(ctx context.Context, id string) (*models.Room, error) {
	return s.repo.Get(ctx, id)
}

// Create registers a new room record.
func (s *RoomService) Create(ctx context.Context, req RoomRequest) (*models.Room, error) {
	fields, err := s.fields(req)
	if err != nil {
		return nil, err
	}
	return s.repo.Create(ctx, *fields)
}

// Update replaces an existing room's fields.
func (s *RoomService) Update(ctx context.Context, id string, req RoomRequest) (*models.Room, error) {
	fields, err := s.fields(req)
	if err != nil {
		return nil, err
	}
	return s.repo.Update(ctx, id, *fields)
}

// Delete removes a room by id.
func (s *RoomService) Delete(ctx context.Context, id string) error {
	return s.repo.Delete(ctx, id)
}

func (s *RoomService) fields(req RoomRequest) (*models.RoomFields, error) {
	if err := s.validator.Struct(req); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "invalid room payload")
	}
	return &models.RoomFields{
		Name:     strings.TrimSpace(req.Name),
		Building: normalizeOptional(req.Building),
		Capacity: req.Capacity,
	}, nil
}
