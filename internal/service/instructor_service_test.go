package service

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/coursedesk/coursedesk-api/internal/models"
	appErrors "github.com/coursedesk/coursedesk-api/pkg/errors"
)

type fakeInstructorRepo struct {
	instructors []models.Instructor
	created     []models.InstructorFields
}

func (f *fakeInstructorRepo) List(context.Context) ([]models.Instructor, error) {
	return f.instructors, nil
}

func (f *fakeInstructorRepo) Get(_ context.Context, id string) (*models.Instructor, error) {
	for _, instructor := range f.instructors {
		if instructor.ID == id {
			return &instructor, nil
		}
	}
	return nil, appErrors.ErrNotFound
}

func (f *fakeInstructorRepo) Create(_ context.Context, fields models.InstructorFields) (*models.Instructor, error) {
	f.created = append(f.created, fields)
	return &models.Instructor{ID: "ins-new", Name: fields.Name}, nil
}

func (f *fakeInstructorRepo) Update(_ context.Context, id string, fields models.InstructorFields) (*models.Instructor, error) {
	return &models.Instructor{ID: id, Name: fields.Name}, nil
}

func (f *fakeInstructorRepo) Delete(context.Context, string) error {
	return nil
}

func TestInstructorServiceCreateTrimsOptionals(t *testing.T) {
	repo := &fakeInstructorRepo{}
	svc := NewInstructorService(repo, nil, nil)

	phone := " 0170 1234567 "
	blank := "  "
	_, err := svc.Create(context.Background(), InstructorRequest{
		Name:    "  Alice  ",
		Phone:   &phone,
		Subject: &blank,
	})
	require.NoError(t, err)
	require.Len(t, repo.created, 1)

	fields := repo.created[0]
	assert.Equal(t, "Alice", fields.Name)
	require.NotNil(t, fields.Phone)
	assert.Equal(t, "0170 1234567", *fields.Phone)
	assert.Nil(t, fields.Subject)
}

func TestInstructorServiceCreateRequiresName(t *testing.T) {
	repo := &fakeInstructorRepo{}
	svc := NewInstructorService(repo, nil, nil)

	_, err := svc.Create(context.Background(), InstructorRequest{})
	require.Error(t, err)

	var appErr *appErrors.Error
	require.True(t, errors.As(err, &appErr))
	assert.Equal(t, appErrors.ErrValidation.Code, appErr.Code)
}

func TestInstructorServiceCreateRejectsBadEmail(t *testing.T) {
	repo := &fakeInstructorRepo{}
	svc := NewInstructorService(repo, nil, nil)

	email := "not-an-email"
	_, err := svc.Create(context.Background(), InstructorRequest{Name: "Alice", Email: &email})
	require.Error(t, err)
	assert.Empty(t, repo.created)
}

func TestInstructorServiceGetMissing(t *testing.T) {
	svc := NewInstructorService(&fakeInstructorRepo{}, nil, nil)

	_, err := svc.Get(context.Background(), "ins-missing")
	require.Error(t, err)
	appErr := appErrors.FromError(err)
	assert.Equal(t, appErrors.ErrNotFound.Code, appErr.Code)
}
