package handlers

import (
	"net/http"
	"time"

	"github.com/anonto42/synapse-forum/backend/internal/apperr"
	"github.com/anonto42/synapse-forum/backend/internal/middleware"
	"github.com/anonto42/synapse-forum/backend/internal/models"
	"github.com/anonto42/synapse-forum/backend/internal/repositories"
	"github.com/labstack/echo/v4"
)

// ReportHandler handles comment reports
type ReportHandler struct {
	reportRepository repositories.ReportRepository
	guards           Guards
}

// NewReportHandler creates a new ReportHandler
func NewReportHandler(reportRepo repositories.ReportRepository, guards Guards) *ReportHandler {
	return &ReportHandler{
		reportRepository: reportRepo,
		guards:           guards,
	}
}

// RegisterReportRoutes registers report-related routes
func (h *ReportHandler) RegisterReportRoutes(g *echo.Group) {
	g.POST("/reports", h.CreateReport, h.guards.Authenticate)
	g.GET("/reports", h.GetReports, h.guards.admin()...)
	g.PATCH("/reports/:id/resolve", h.ResolveReport, h.guards.admin()...)
	g.DELETE("/reports/:id", h.DeleteReport, h.guards.admin()...)
}

// CreateReport files a report against a comment on behalf of the caller
func (h *ReportHandler) CreateReport(c echo.Context) error {
	identity := middleware.IdentityFrom(c)
	if identity == nil {
		return apperr.Unauthenticated()
	}

	var req models.CreateReportRequest
	if err := bindAndValidate(c, &req); err != nil {
		return err
	}

	report := &models.Report{
		CommentID:  req.CommentID,
		Comment:    req.Comment,
		Reason:     req.Reason,
		ReportedBy: identity.Email,
		ReportedAt: time.Now().UTC(),
		Resolved:   false,
	}
	ack, err := h.reportRepository.CreateReport(c.Request().Context(), report)
	if err != nil {
		return storeError(err, "failed to create report")
	}
	return c.JSON(http.StatusOK, ack)
}

func (h *ReportHandler) GetReports(c echo.Context) error {
	reports, err := h.reportRepository.GetReports(c.Request().Context())
	if err != nil {
		return storeError(err, "failed to fetch reports")
	}
	return c.JSON(http.StatusOK, reports)
}

func (h *ReportHandler) ResolveReport(c echo.Context) error {
	if _, err := h.reportRepository.ResolveReport(c.Request().Context(), c.Param("id")); err != nil {
		return storeError(err, "failed to resolve report")
	}
	return c.JSON(http.StatusOK, echo.Map{"message": "report resolved"})
}

func (h *ReportHandler) DeleteReport(c echo.Context) error {
	if _, err := h.reportRepository.DeleteReport(c.Request().Context(), c.Param("id")); err != nil {
		return storeError(err, "failed to delete report")
	}
	return c.JSON(http.StatusOK, echo.Map{"message": "report deleted"})
}
