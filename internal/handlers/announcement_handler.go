package handlers

import (
	"net/http"

	"github.com/anonto42/synapse-forum/backend/internal/models"
	"github.com/anonto42/synapse-forum/backend/internal/repositories"
	"github.com/labstack/echo/v4"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// AnnouncementHandler handles HTTP requests related to announcements
type AnnouncementHandler struct {
	announcementRepository repositories.AnnouncementRepository
}

// NewAnnouncementHandler creates a new AnnouncementHandler
func NewAnnouncementHandler(announcementRepo repositories.AnnouncementRepository) *AnnouncementHandler {
	return &AnnouncementHandler{announcementRepository: announcementRepo}
}

// RegisterAnnouncementRoutes registers announcement-related routes
func (h *AnnouncementHandler) RegisterAnnouncementRoutes(g *echo.Group) {
	g.GET("/announcements", h.GetAnnouncements)
	g.GET("/announcements/count", h.CountAnnouncements)
	g.POST("/announcements", h.CreateAnnouncement)
}

// GetAnnouncements lists announcements, newest first
func (h *AnnouncementHandler) GetAnnouncements(c echo.Context) error {
	announcements, err := h.announcementRepository.GetAnnouncements(c.Request().Context())
	if err != nil {
		return storeError(err, "failed to fetch announcements")
	}
	return c.JSON(http.StatusOK, announcements)
}

func (h *AnnouncementHandler) CountAnnouncements(c echo.Context) error {
	count, err := h.announcementRepository.CountAnnouncements(c.Request().Context())
	if err != nil {
		return storeError(err, "failed to count announcements")
	}
	return c.JSON(http.StatusOK, echo.Map{"count": count})
}

// CreateAnnouncement stores an announcement; postedAt is stamped when the client omits it
func (h *AnnouncementHandler) CreateAnnouncement(c echo.Context) error {
	var announcement models.Announcement
	if err := bindAndValidate(c, &announcement); err != nil {
		return err
	}
	announcement.ID = primitive.NilObjectID

	ack, err := h.announcementRepository.CreateAnnouncement(c.Request().Context(), &announcement)
	if err != nil {
		return storeError(err, "failed to create announcement")
	}
	return c.JSON(http.StatusOK, ack)
}
