package service

import (
	"context"
	"strings"

	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"

	"github.com/coursedesk/coursedesk-api/internal/dto"
	"github.com/coursedesk/coursedesk-api/internal/livingapps"
	"github.com/coursedesk/coursedesk-api/internal/models"
	"github.com/coursedesk/coursedesk-api/pkg/config"
	appErrors "github.com/coursedesk/coursedesk-api/pkg/errors"
)

type courseRepository interface {
	List(ctx context.Context) ([]models.Course, error)
	Get(ctx context.Context, id string) (*models.Course, error)
	Create(ctx context.Context, fields models.CourseFields) (*models.Course, error)
	Update(ctx context.Context, id string, fields models.CourseFields) (*models.Course, error)
	Delete(ctx context.Context, id string) error
}

type courseInstructorLister interface {
	List(ctx context.Context) ([]models.Instructor, error)
}

type courseRoomLister interface {
	List(ctx context.Context) ([]models.Room, error)
}

// CourseRequest is the payload for creating or updating a course.
// InstructorID and RoomID are plain record ids; the service encodes them
// into full record references before persisting.
type CourseRequest struct {
	Title           string   `json:"title" validate:"required"`
	Description     *string  `json:"description"`
	StartDate       string   `json:"start_date" validate:"required,datetime=2006-01-02"`
	EndDate         *string  `json:"end_date" validate:"omitempty,datetime=2006-01-02"`
	MaxParticipants *int     `json:"max_participants" validate:"omitempty,min=0"`
	Price           *float64 `json:"price" validate:"omitempty,min=0"`
	InstructorID    *string  `json:"instructor_id"`
	RoomID          *string  `json:"room_id"`
	Status          string   `json:"status" validate:"omitempty,oneof=planned active completed cancelled"`
}

// CourseService orchestrates course operations, including reference
// encoding on writes and label resolution on reads.
type CourseService struct {
	repo        courseRepository
	instructors courseInstructorLister
	rooms       courseRoomLister
	apps        config.AppIDs
	validator   *validator.Validate
	logger      *zap.Logger
}

// NewCourseService constructs a CourseService.
func NewCourseService(
	repo courseRepository,
	instructors courseInstructorLister,
	rooms courseRoomLister,
	apps config.AppIDs,
	validate *validator.Validate,
	logger *zap.Logger,
) *CourseService {
	if validate == nil {
		validate = validator.New()
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &CourseService{
		repo:        repo,
		instructors: instructors,
		rooms:       rooms,
		apps:        apps,
		validator:   validate,
		logger:      logger,
	}
}

// List returns all courses with decoded reference ids and resolved labels.
// Dangling or malformed references yield nil labels rather than an error.
func (s *CourseService) List(ctx context.Context) ([]dto.CourseView, error) {
	courses, err := s.repo.List(ctx)
	if err != nil {
		return nil, err
	}

	instructorNames, err := s.instructorNames(ctx)
	if err != nil {
		return nil, err
	}
	roomNames, err := s.roomNames(ctx)
	if err != nil {
		return nil, err
	}

	views := make([]dto.CourseView, 0, len(courses))
	for _, course := range courses {
		views = append(views, s.view(course, instructorNames, roomNames))
	}
	return views, nil
}

// Get returns a single course with resolved labels.
func (s *CourseService) Get(ctx context.Context, id string) (*dto.CourseView, error) {
	course, err := s.repo.Get(ctx, id)
	if err != nil {
		return nil, err
	}

	instructorNames, err := s.instructorNames(ctx)
	if err != nil {
		return nil, err
	}
	roomNames, err := s.roomNames(ctx)
	if err != nil {
		return nil, err
	}

	view := s.view(*course, instructorNames, roomNames)
	return &view, nil
}

// Create persists a new course. A missing status defaults to planned.
func (s *CourseService) Create(ctx context.Context, req CourseRequest) (*models.Course, error) {
	fields, err := s.fields(req)
	if err != nil {
		return nil, err
	}
	return s.repo.Create(ctx, *fields)
}

// Update replaces an existing course's fields.
func (s *CourseService) Update(ctx context.Context, id string, req CourseRequest) (*models.Course, error) {
	fields, err := s.fields(req)
	if err != nil {
		return nil, err
	}
	return s.repo.Update(ctx, id, *fields)
}

// Delete removes a course by id. Registrations referencing it are left
// untouched and resolve as dangling afterwards.
func (s *CourseService) Delete(ctx context.Context, id string) error {
	return s.repo.Delete(ctx, id)
}

func (s *CourseService) fields(req CourseRequest) (*models.CourseFields, error) {
	if err := s.validator.Struct(req); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "invalid course payload")
	}

	status := models.CourseStatus(req.Status)
	if status == "" {
		status = models.CourseStatusPlanned
	}

	fields := &models.CourseFields{
		Title:           strings.TrimSpace(req.Title),
		Description:     normalizeOptional(req.Description),
		StartDate:       req.StartDate,
		EndDate:         normalizeOptional(req.EndDate),
		MaxParticipants: req.MaxParticipants,
		Price:           req.Price,
		Status:          status,
	}

	if id := normalizeOptional(req.InstructorID); id != nil {
		fields.Instructor = strPtr(livingapps.RecordURL(s.apps.Instructors, *id))
	}
	if id := normalizeOptional(req.RoomID); id != nil {
		fields.Room = strPtr(livingapps.RecordURL(s.apps.Rooms, *id))
	}

	return fields, nil
}

func (s *CourseService) view(course models.Course, instructorNames, roomNames map[string]string) dto.CourseView {
	view := dto.CourseView{Course: course}

	if id := livingapps.ExtractRecordIDPtr(course.InstructorRef); id != "" {
		view.InstructorID = strPtr(id)
		if name, ok := instructorNames[id]; ok {
			view.InstructorName = strPtr(name)
		}
	}
	if id := livingapps.ExtractRecordIDPtr(course.RoomRef); id != "" {
		view.RoomID = strPtr(id)
		if name, ok := roomNames[id]; ok {
			view.RoomName = strPtr(name)
		}
	}

	return view
}

func (s *CourseService) instructorNames(ctx context.Context) (map[string]string, error) {
	instructors, err := s.instructors.List(ctx)
	if err != nil {
		return nil, err
	}
	names := make(map[string]string, len(instructors))
	for _, instructor := range instructors {
		names[instructor.ID] = instructor.Name
	}
	return names, nil
}

func (s *CourseService) roomNames(ctx context.Context) (map[string]string, error) {
	rooms, err := s.rooms.List(ctx)
	if err != nil {
		return nil, err
	}
	names := make(map[string]string, len(rooms))
	for _, room := range rooms {
		names[room.ID] = room.Name
	}
	return names, nil
}
