package handlers

import (
	"net/http"

	"github.com/anonto42/synapse-forum/backend/internal/models"
	"github.com/anonto42/synapse-forum/backend/internal/repositories"
	"github.com/labstack/echo/v4"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

type TagHandler struct {
	tagRepository repositories.TagRepository
}

func NewTagHandler(tagRepo repositories.TagRepository) *TagHandler {
	return &TagHandler{tagRepository: tagRepo}
}

func (h *TagHandler) RegisterTagRoutes(g *echo.Group) {
	g.GET("/tags", h.GetTags)
	g.POST("/tags", h.CreateTag)
}

func (h *TagHandler) GetTags(c echo.Context) error {
	tags, err := h.tagRepository.GetTags(c.Request().Context())
	if err != nil {
		return storeError(err, "failed to fetch tags")
	}
	return c.JSON(http.StatusOK, tags)
}

func (h *TagHandler) CreateTag(c echo.Context) error {
	var tag models.Tag
	if err := bindAndValidate(c, &tag); err != nil {
		return err
	}
	tag.ID = primitive.NilObjectID

	ack, err := h.tagRepository.CreateTag(c.Request().Context(), &tag)
	if err != nil {
		return storeError(err, "failed to create tag")
	}
	return c.JSON(http.StatusOK, ack)
}
