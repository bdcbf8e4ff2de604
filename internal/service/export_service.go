package service

import (
	"context"
	"fmt"
	"strconv"

	"go.uber.org/zap"

	"github.com/coursedesk/coursedesk-api/internal/dto"
	"github.com/coursedesk/coursedesk-api/internal/models"
	"github.com/coursedesk/coursedesk-api/pkg/export"
)

const exportPlaceholder = "-"

type exportCourseLister interface {
	List(ctx context.Context) ([]dto.CourseView, error)
}

type exportParticipantLister interface {
	List(ctx context.Context) ([]models.Participant, error)
}

type exportRegistrationLister interface {
	List(ctx context.Context) ([]dto.RegistrationView, error)
}

// ExportService renders entity lists into CSV and PDF documents.
type ExportService struct {
	courses       exportCourseLister
	participants  exportParticipantLister
	registrations exportRegistrationLister
	csv           *export.CSVExporter
	pdf           *export.PDFExporter
	logger        *zap.Logger
}

// NewExportService constructs an ExportService.
func NewExportService(
	courses exportCourseLister,
	participants exportParticipantLister,
	registrations exportRegistrationLister,
	logger *zap.Logger,
) *ExportService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &ExportService{
		courses:       courses,
		participants:  participants,
		registrations: registrations,
		csv:           export.NewCSVExporter(),
		pdf:           export.NewPDFExporter(),
		logger:        logger,
	}
}

// CoursesCSV renders the course list as CSV.
func (s *ExportService) CoursesCSV(ctx context.Context) ([]byte, error) {
	table, err := s.courseTable(ctx)
	if err != nil {
		return nil, err
	}
	return s.csv.Render(*table)
}

// CoursesPDF renders the course list as a tabular PDF summary.
func (s *ExportService) CoursesPDF(ctx context.Context) ([]byte, error) {
	table, err := s.courseTable(ctx)
	if err != nil {
		return nil, err
	}
	return s.pdf.Render(*table, "Course Summary")
}

// ParticipantsCSV renders the participant list as CSV.
func (s *ExportService) ParticipantsCSV(ctx context.Context) ([]byte, error) {
	participants, err := s.participants.List(ctx)
	if err != nil {
		return nil, err
	}

	table := export.Table{
		Headers: []string{"ID", "Name", "Email", "Phone", "Birth Date"},
	}
	for _, participant := range participants {
		table.Rows = append(table.Rows, []string{
			participant.ID,
			participant.Name,
			orPlaceholder(participant.Email),
			orPlaceholder(participant.Phone),
			orPlaceholder(participant.BirthDate),
		})
	}
	return s.csv.Render(table)
}

// RegistrationsCSV renders the registration list as CSV with resolved labels.
func (s *ExportService) RegistrationsCSV(ctx context.Context) ([]byte, error) {
	registrations, err := s.registrations.List(ctx)
	if err != nil {
		return nil, err
	}

	table := export.Table{
		Headers: []string{"ID", "Participant", "Course", "Registered At", "Paid"},
	}
	for _, registration := range registrations {
		table.Rows = append(table.Rows, []string{
			registration.ID,
			orPlaceholder(registration.ParticipantName),
			orPlaceholder(registration.CourseTitle),
			registration.RegisteredAt,
			strconv.FormatBool(registration.Paid),
		})
	}
	return s.csv.Render(table)
}

func (s *ExportService) courseTable(ctx context.Context) (*export.Table, error) {
	courses, err := s.courses.List(ctx)
	if err != nil {
		return nil, err
	}

	table := &export.Table{
		Headers: []string{"ID", "Title", "Start Date", "End Date", "Status", "Instructor", "Room", "Price"},
	}
	for _, course := range courses {
		price := exportPlaceholder
		if course.Price != nil {
			price = fmt.Sprintf("%.2f EUR", *course.Price)
		}
		table.Rows = append(table.Rows, []string{
			course.ID,
			course.Title,
			course.StartDate,
			orPlaceholder(course.EndDate),
			string(course.Status),
			orPlaceholder(course.InstructorName),
			orPlaceholder(course.RoomName),
			price,
		})
	}
	return table, nil
}

func orPlaceholder(value *string) string {
	if value == nil || *value == "" {
		return exportPlaceholder
	}
	return *value
}
