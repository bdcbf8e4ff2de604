package service

import (
	"context"

	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"

	"github.com/coursedesk/coursedesk-api/internal/dto"
	"github.com/coursedesk/coursedesk-api/internal/livingapps"
	"github.com/coursedesk/coursedesk-api/internal/models"
	"github.com/coursedesk/coursedesk-api/pkg/config"
	appErrors "github.com/coursedesk/coursedesk-api/pkg/errors"
)

type registrationRepository interface {
	List(ctx context.Context) ([]models.Registration, error)
	Get(ctx context.Context, id string) (*models.Registration, error)
	Create(ctx context.Context, fields models.RegistrationFields) (*models.Registration, error)
	Update(ctx context.Context, id string, fields models.RegistrationFields) (*models.Registration, error)
	Delete(ctx context.Context, id string) error
}

type registrationParticipantLister interface {
	List(ctx context.Context) ([]models.Participant, error)
}

type registrationCourseLister interface {
	List(ctx context.Context) ([]models.Course, error)
}

// RegistrationRequest is the payload for creating or updating a registration.
// Both reference ids are required; a registration without its participant or
// course is meaningless.
type RegistrationRequest struct {
	ParticipantID string `json:"participant_id" validate:"required"`
	CourseID      string `json:"course_id" validate:"required"`
	RegisteredAt  string `json:"registered_at" validate:"required,datetime=2006-01-02"`
	Paid          bool   `json:"paid"`
}

// RegistrationService orchestrates registration operations.
type RegistrationService struct {
	repo         registrationRepository
	participants registrationParticipantLister
	courses      registrationCourseLister
	apps         config.AppIDs
	validator    *validator.Validate
	logger       *zap.Logger
}

// NewRegistrationService constructs a RegistrationService.
func NewRegistrationService(
	repo registrationRepository,
	participants registrationParticipantLister,
	courses registrationCourseLister,
	apps config.AppIDs,
	validate *validator.Validate,
	logger *zap.Logger,
) *RegistrationService {
	if validate == nil {
		validate = validator.New()
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &RegistrationService{
		repo:         repo,
		participants: participants,
		courses:      courses,
		apps:         apps,
		validator:    validate,
		logger:       logger,
	}
}

// List returns all registrations with decoded reference ids and resolved
// labels. Dangling references yield nil labels rather than an error.
func (s *RegistrationService) List(ctx context.Context) ([]dto.RegistrationView, error) {
	registrations, err := s.repo.List(ctx)
	if err != nil {
		return nil, err
	}

	participantNames, err := s.participantNames(ctx)
	if err != nil {
		return nil, err
	}
	courseTitles, err := s.courseTitles(ctx)
	if err != nil {
		return nil, err
	}

	views := make([]dto.RegistrationView, 0, len(registrations))
	for _, registration := range registrations {
		views = append(views, s.view(registration, participantNames, courseTitles))
	}
	return views, nil
}

// Get returns a single registration with resolved labels.
func (s *RegistrationService) Get(ctx context.Context, id string) (*dto.RegistrationView, error) {
	registration, err := s.repo.Get(ctx, id)
	if err != nil {
		return nil, err
	}

	participantNames, err := s.participantNames(ctx)
	if err != nil {
		return nil, err
	}
	courseTitles, err := s.courseTitles(ctx)
	if err != nil {
		return nil, err
	}

	view := s.view(*registration, participantNames, courseTitles)
	return &view, nil
}

// Create persists a new registration with encoded references.
func (s *RegistrationService) Create(ctx context.Context, req RegistrationRequest) (*models.Registration, error) {
	fields, err := s.fields(req)
	if err != nil {
		return nil, err
	}
	return s.repo.Create(ctx, *fields)
}

// Update replaces an existing registration's fields.
func (s *RegistrationService) Update(ctx context.Context, id string, req RegistrationRequest) (*models.Registration, error) {
	fields, err := s.fields(req)
	if err != nil {
		return nil, err
	}
	return s.repo.Update(ctx, id, *fields)
}

// Delete removes a registration by id.
func (s *RegistrationService) Delete(ctx context.Context, id string) error {
	return s.repo.Delete(ctx, id)
}

func (s *RegistrationService) fields(req RegistrationRequest) (*models.RegistrationFields, error) {
	if err := s.validator.Struct(req); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "invalid registration payload")
	}

	return &models.RegistrationFields{
		Participant:  strPtr(livingapps.RecordURL(s.apps.Participants, req.ParticipantID)),
		Course:       strPtr(livingapps.RecordURL(s.apps.Courses, req.CourseID)),
		RegisteredAt: req.RegisteredAt,
		Paid:         req.Paid,
	}, nil
}

func (s *RegistrationService) view(registration models.Registration, participantNames, courseTitles map[string]string) dto.RegistrationView {
	view := dto.RegistrationView{Registration: registration}

	if id := livingapps.ExtractRecordIDPtr(registration.ParticipantRef); id != "" {
		view.ParticipantID = strPtr(id)
		if name, ok := participantNames[id]; ok {
			view.ParticipantName = strPtr(name)
		}
	}
	if id := livingapps.ExtractRecordIDPtr(registration.CourseRef); id != "" {
		view.CourseID = strPtr(id)
		if title, ok := courseTitles[id]; ok {
			view.CourseTitle = strPtr(title)
		}
	}

	return view
}

func (s *RegistrationService) participantNames(ctx context.Context) (map[string]string, error) {
	participants, err := s.participants.List(ctx)
	if err != nil {
		return nil, err
	}
	names := make(map[string]string, len(participants))
	for _, participant := range participants {
		names[participant.ID] = participant.Name
	}
	return names, nil
}

func (s *RegistrationService) courseTitles(ctx context.Context) (map[string]string, error) {
	courses, err := s.courses.List(ctx)
	if err != nil {
		return nil, err
	}
	titles := make(map[string]string, len(courses))
	for _, course := range courses {
		titles[course.ID] = course.Title
	}
	return titles, nil
}
