package service

import (
	"bytes"
	"context"
	"encoding/csv"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/coursedesk/coursedesk-api/internal/dto"
	"github.com/coursedesk/coursedesk-api/internal/models"
)

type fakeCourseViewLister struct {
	views []dto.CourseView
	err   error
}

func (f *fakeCourseViewLister) List(context.Context) ([]dto.CourseView, error) {
	return f.views, f.err
}

type fakeRegistrationViewLister struct {
	views []dto.RegistrationView
	err   error
}

func (f *fakeRegistrationViewLister) List(context.Context) ([]dto.RegistrationView, error) {
	return f.views, f.err
}

func parseCSV(t *testing.T, payload []byte) [][]string {
	t.Helper()
	rows, err := csv.NewReader(bytes.NewReader(payload)).ReadAll()
	require.NoError(t, err)
	return rows
}

func TestExportServiceCoursesCSV(t *testing.T) {
	name := "Alice"
	views := []dto.CourseView{
		{
			Course: models.Course{
				ID:        "crs-1",
				Title:     "Watercolor",
				StartDate: "2026-03-01",
				Status:    models.CourseStatusPlanned,
				Price:     floatPtr(120.5),
			},
			InstructorName: &name,
		},
		{
			Course: models.Course{
				ID:        "crs-2",
				Title:     "Pottery",
				StartDate: "2026-04-01",
				Status:    models.CourseStatusActive,
			},
		},
	}
	svc := NewExportService(&fakeCourseViewLister{views: views}, &fakeParticipantLister{}, &fakeRegistrationViewLister{}, nil)

	payload, err := svc.CoursesCSV(context.Background())
	require.NoError(t, err)

	rows := parseCSV(t, payload)
	require.Len(t, rows, 3)
	assert.Equal(t, []string{"ID", "Title", "Start Date", "End Date", "Status", "Instructor", "Room", "Price"}, rows[0])
	assert.Equal(t, []string{"crs-1", "Watercolor", "2026-03-01", "-", "planned", "Alice", "-", "120.50 EUR"}, rows[1])
	assert.Equal(t, []string{"crs-2", "Pottery", "2026-04-01", "-", "active", "-", "-", "-"}, rows[2])
}

func TestExportServiceCoursesPDF(t *testing.T) {
	svc := NewExportService(&fakeCourseViewLister{views: []dto.CourseView{
		{Course: models.Course{ID: "crs-1", Title: "Watercolor", StartDate: "2026-03-01", Status: models.CourseStatusPlanned}},
	}}, &fakeParticipantLister{}, &fakeRegistrationViewLister{}, nil)

	payload, err := svc.CoursesPDF(context.Background())
	require.NoError(t, err)
	assert.True(t, bytes.HasPrefix(payload, []byte("%PDF")))
}

func TestExportServiceParticipantsCSV(t *testing.T) {
	email := "dana@example.com"
	svc := NewExportService(&fakeCourseViewLister{}, &fakeParticipantLister{participants: []models.Participant{
		{ID: "par-1", Name: "Dana", Email: &email},
	}}, &fakeRegistrationViewLister{}, nil)

	payload, err := svc.ParticipantsCSV(context.Background())
	require.NoError(t, err)

	rows := parseCSV(t, payload)
	require.Len(t, rows, 2)
	assert.Equal(t, []string{"par-1", "Dana", "dana@example.com", "-", "-"}, rows[1])
}

func TestExportServiceRegistrationsCSV(t *testing.T) {
	participant := "Dana"
	course := "Watercolor"
	svc := NewExportService(&fakeCourseViewLister{}, &fakeParticipantLister{}, &fakeRegistrationViewLister{views: []dto.RegistrationView{
		{
			Registration:    models.Registration{ID: "reg-1", RegisteredAt: "2026-02-14", Paid: true},
			ParticipantName: &participant,
			CourseTitle:     &course,
		},
		{
			Registration: models.Registration{ID: "reg-2", RegisteredAt: "2026-02-15"},
		},
	}}, nil)

	payload, err := svc.RegistrationsCSV(context.Background())
	require.NoError(t, err)

	rows := parseCSV(t, payload)
	require.Len(t, rows, 3)
	assert.Equal(t, []string{"reg-1", "Dana", "Watercolor", "2026-02-14", "true"}, rows[1])
	assert.Equal(t, []string{"reg-2", "-", "-", "2026-02-15", "false"}, rows[2])
}

func TestExportServiceSurfacesListError(t *testing.T) {
	svc := NewExportService(&fakeCourseViewLister{err: assert.AnError}, &fakeParticipantLister{}, &fakeRegistrationViewLister{}, nil)

	_, err := svc.CoursesCSV(context.Background())
	require.Error(t, err)
	assert.ErrorIs(t, err, assert.AnError)
}
