package handler

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/coursedesk/coursedesk-api/internal/service"
	appErrors "github.com/coursedesk/coursedesk-api/pkg/errors"
	"github.com/coursedesk/coursedesk-api/pkg/response"
)

// ExportHandler serves CSV and PDF downloads.
type ExportHandler struct {
	service *service.ExportService
}

// NewExportHandler constructs an export handler.
func NewExportHandler(svc *service.ExportService) *ExportHandler {
	return &ExportHandler{service: svc}
}

// CoursesCSV godoc
// @Summary Export courses as CSV
// @Tags Exports
// @Produce text/csv
// @Success 200 {file} binary
// @Router /exports/courses.csv [get]
func (h *ExportHandler) CoursesCSV(c *gin.Context) {
	h.serve(c, "courses", "csv", h.service.CoursesCSV)
}

// CoursesPDF godoc
// @Summary Export course summary as PDF
// @Tags Exports
// @Produce application/pdf
// @Success 200 {file} binary
// @Router /exports/courses.pdf [get]
func (h *ExportHandler) CoursesPDF(c *gin.Context) {
	h.serve(c, "courses", "pdf", h.service.CoursesPDF)
}

// ParticipantsCSV godoc
// @Summary Export participants as CSV
// @Tags Exports
// @Produce text/csv
// @Success 200 {file} binary
// @Router /exports/participants.csv [get]
func (h *ExportHandler) ParticipantsCSV(c *gin.Context) {
	h.serve(c, "participants", "csv", h.service.ParticipantsCSV)
}

// RegistrationsCSV godoc
// @Summary Export registrations as CSV
// @Tags Exports
// @Produce text/csv
// @Success 200 {file} binary
// @Router /exports/registrations.csv [get]
func (h *ExportHandler) RegistrationsCSV(c *gin.Context) {
	h.serve(c, "registrations", "csv", h.service.RegistrationsCSV)
}

func (h *ExportHandler) serve(c *gin.Context, name, format string, render func(ctx context.Context) ([]byte, error)) {
	if h.service == nil {
		response.Error(c, appErrors.Clone(appErrors.ErrInternal, "export service not configured"))
		return
	}
	payload, err := render(c.Request.Context())
	if err != nil {
		response.Error(c, err)
		return
	}

	contentType := "text/csv"
	if format == "pdf" {
		contentType = "application/pdf"
	}
	filename := fmt.Sprintf("%s-%s.%s", name, time.Now().UTC().Format("20060102"), format)
	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=\"%s\"", filename))
	c.Header("Cache-Control", "no-store")
	c.Data(http.StatusOK, contentType, payload)
}
