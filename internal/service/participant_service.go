package service

import (
	"context"
	"strings"

	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"

	"github.com/coursedesk/coursedesk-api/internal/models"
	appErrors "github.com/coursedesk/coursedesk-api/pkg/errors"
)

type participantRepository interface {
	List(ctx context.Context) ([]models.Participant, error)
	Get(ctx context.Context, id string) (*models.Participant, error)
	Create(ctx context.Context, fields models.ParticipantFields) (*models.Participant, error)
	Update(ctx context.Context, id string, fields models.ParticipantFields) (*models.Participant, error)
	Delete(ctx context.Context, id string) error
}

// ParticipantRequest is the payload for creating or updating a participant.
type ParticipantRequest struct {
	Name      string  `json:"name" validate:"required"`
	Email     *string `json:"email" validate:"omitempty,email"`
	Phone     *string `json:"phone" validate:"omitempty,max=50"`
	BirthDate *string `json:"birth_date" validate:"omitempty,datetime=2006-01-02"`
}

// ParticipantService orchestrates participant operations.
type ParticipantService struct {
	repo      participantRepository
	validator *validator.Validate
	logger    *zap.Logger
}

// NewParticipantService constructs a ParticipantService.
func NewParticipantService(repo participantRepository, validate *validator.Validate, logger *zap.Logger) *ParticipantService {
	if validate == nil {
		validate = validator.New()
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &ParticipantService{repo: repo, validator: validate, logger: logger}
}

// List returns all participants.
func (s *ParticipantService) List(ctx context.Context) ([]models.Participant, error) {
	return s.repo.List(ctx)
}

// Get returns a participant by id.
func (s *ParticipantService) Get(ctx context.Context, id string) (*models.Participant, error) {
	return s.repo.Get(ctx, id)
}

// Create registers a new participant record.
func (s *ParticipantService) Create(ctx context.Context, req ParticipantRequest) (*models.Participant, error) {
	fields, err := s.fields(req)
	if err != nil {
		return nil, err
	}
	return s.repo.Create(ctx, *fields)
}

// Update replaces an existing participant's fields.
func (s *ParticipantService) Update(ctx context.Context, id string, req ParticipantRequest) (*models.Participant, error) {
	fields, err := s.fields(req)
	if err != nil {
		return nil, err
	}
	return s.repo.Update(ctx, id, *fields)
}

// Delete removes a participant by id.
func (s *ParticipantService) Delete(ctx context.Context, id string) error {
	return s.repo.Delete(ctx, id)
}

func (s *ParticipantService) fields(req ParticipantRequest) (*models.ParticipantFields, error) {
	if err := s.validator.Struct(req); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "invalid participant payload")
	}
	return &models.ParticipantFields{
		Name:      strings.TrimSpace(req.Name),
		Email:     normalizeOptional(req.Email),
		Phone:     normalizeOptional(req.Phone),
		BirthDate: normalizeOptional(req.BirthDate),
	}, nil
}
