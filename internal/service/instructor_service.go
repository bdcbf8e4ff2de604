package service

import (
	"context"
	"strings"

	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"

	"github.com/coursedesk/coursedesk-api/internal/models"
	appErrors "github.com/coursedesk/coursedesk-api/pkg/errors"
)

type instructorRepository interface {
	List(ctx context.Context) ([]models.Instructor, error)
	Get(ctx context.Context, id string) (*models.Instructor, error)
	Create(ctx context.Context, fields models.InstructorFields) (*models.Instructor, error)
	Update(ctx context.Context, id string, fields models.InstructorFields) (*models.Instructor, error)
	Delete(ctx context.Context, id string) error
}

// InstructorRequest is the payload for creating or updating an instructor.
type InstructorRequest struct {
	Name    string  `json:"name" validate:"required"`
	Email   *string `json:"email" validate:"omitempty,email"`
	Phone   *string `json:"phone" validate:"omitempty,max=50"`
	Subject *string `json:"subject" validate:"omitempty,max=200"`
}

// InstructorService orchestrates instructor operations.
type InstructorService struct {
	repo      instructorRepository
	validator *validator.Validate
	logger    *zap.Logger
}

// NewInstructorService constructs an InstructorService.
func NewInstructorService(repo instructorRepository, validate *validator.Validate, logger *zap.Logger) *InstructorService {
	if validate == nil {
		validate = validator.New()
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &InstructorService{repo: repo, validator: validate, logger: logger}
}

// List returns all instructors.
func (s *InstructorService) List(ctx context.Context) ([]models.Instructor, error) {
	return s.repo.List(ctx)
}

// Get returns an instructor by id.
func (s *InstructorService) Get(ctx context.Context, id string) (*models.Instructor, error) {
	return s.repo.Get(ctx, id)
}

// Create registers a new instructor record.
func (s *InstructorService) Create(ctx context.Context, req InstructorRequest) (*models.Instructor, error) {
	fields, err := s.fields(req)
	if err != nil {
		return nil, err
	}
	return s.repo.Create(ctx, *fields)
}

// Update replaces an existing instructor's fields.
func (s *InstructorService) Update(ctx context.Context, id string, req InstructorRequest) (*models.Instructor, error) {
	fields, err := s.fields(req)
	if err != nil {
		return nil, err
	}
	return s.repo.Update(ctx, id, *fields)
}

// Delete removes an instructor by id.
func (s *InstructorService) Delete(ctx context.Context, id string) error {
	return s.repo.Delete(ctx, id)
}

func (s *InstructorService) fields(req InstructorRequest) (*models.InstructorFields, error) {
	if err := s.validator.Struct(req); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "invalid instructor payload")
	}
	return &models.InstructorFields{
		Name:    strings.TrimSpace(req.Name),
		Email:   normalizeOptional(req.Email),
		Phone:   normalizeOptional(req.Phone),
		Subject: normalizeOptional(req.Subject),
	}, nil
}
