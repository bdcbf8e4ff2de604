package repository

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/coursedesk/coursedesk-api/internal/livingapps"
	"github.com/coursedesk/coursedesk-api/internal/models"
	"github.com/coursedesk/coursedesk-api/pkg/config"
)

func newCourseRepo(t *testing.T, handler http.HandlerFunc) *CourseRepository {
	t.Helper()
	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)
	client := livingapps.NewClient(config.LivingAppsConfig{
		BaseURL: server.URL,
		Timeout: 5 * time.Second,
	}, nil, nil)
	return NewCourseRepository(client, "course-app")
}

func TestCourseRepositoryList(t *testing.T) {
	repo := newCourseRepo(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/course-app/records", r.URL.Path)
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`[
			{
				"record_id": "crs-1",
				"createdat": "2026-01-10T08:00:00Z",
				"updatedat": null,
				"fields": {
					"title": "Watercolor Basics",
					"start_date": "2026-03-01",
					"price": 120.5,
					"status": "planned",
					"instructor": "https://my.living-apps.de/gateway/apps/instr-app/ins-1"
				}
			}
		]`))
	})

	courses, err := repo.List(context.Background())
	require.NoError(t, err)
	require.Len(t, courses, 1)

	course := courses[0]
	assert.Equal(t, "crs-1", course.ID)
	assert.Equal(t, "Watercolor Basics", course.Title)
	assert.Equal(t, "2026-03-01", course.StartDate)
	assert.Equal(t, models.CourseStatusPlanned, course.Status)
	require.NotNil(t, course.Price)
	assert.Equal(t, 120.5, *course.Price)
	require.NotNil(t, course.InstructorRef)
	assert.Equal(t, "https://my.living-apps.de/gateway/apps/instr-app/ins-1", *course.InstructorRef)
	assert.Nil(t, course.RoomRef)
	assert.Nil(t, course.UpdatedAt)
}

func TestCourseRepositoryListToleratesEmptyFields(t *testing.T) {
	repo := newCourseRepo(t, func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`[{"record_id":"crs-2","createdat":"2026-01-11T08:00:00Z","updatedat":null,"fields":{}}]`))
	})

	courses, err := repo.List(context.Background())
	require.NoError(t, err)
	require.Len(t, courses, 1)
	assert.Equal(t, "crs-2", courses[0].ID)
	assert.Empty(t, courses[0].Title)
}

func TestCourseRepositoryCreate(t *testing.T) {
	repo := newCourseRepo(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		w.WriteHeader(http.StatusCreated)
		_, _ = w.Write([]byte(`{
			"record_id": "crs-3",
			"createdat": "2026-01-12T08:00:00Z",
			"updatedat": null,
			"fields": {"title": "Pottery", "start_date": "2026-04-01", "status": "active"}
		}`))
	})

	course, err := repo.Create(context.Background(), models.CourseFields{
		Title:     "Pottery",
		StartDate: "2026-04-01",
		Status:    models.CourseStatusActive,
	})
	require.NoError(t, err)
	assert.Equal(t, "crs-3", course.ID)
	assert.Equal(t, models.CourseStatusActive, course.Status)
}
