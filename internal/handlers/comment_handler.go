package handlers

import (
	"net/http"

	"github.com/anonto42/synapse-forum/backend/internal/middleware"
	"github.com/anonto42/synapse-forum/backend/internal/models"
	"github.com/anonto42/synapse-forum/backend/internal/repositories"
	"github.com/labstack/echo/v4"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// CommentHandler handles HTTP requests related to comments
type CommentHandler struct {
	commentRepository repositories.CommentRepository
}

// NewCommentHandler creates a new CommentHandler
func NewCommentHandler(commentRepo repositories.CommentRepository) *CommentHandler {
	return &CommentHandler{commentRepository: commentRepo}
}

// RegisterCommentRoutes registers comment-related routes
func (h *CommentHandler) RegisterCommentRoutes(g *echo.Group) {
	g.GET("/comments/:postId", h.GetCommentsByPostID)
	g.GET("/comments/title/:title", h.GetCommentsByPostTitle)
	g.POST("/comments", h.CreateComment)
}

// CreateComment stores a comment as sent by the client
func (h *CommentHandler) CreateComment(c echo.Context) error {
	var comment models.Comment
	if err := bindAndValidate(c, &comment); err != nil {
		return err
	}
	comment.ID = primitive.NilObjectID

	ack, err := h.commentRepository.CreateComment(c.Request().Context(), &comment)
	if err != nil {
		return storeError(err, "failed to create comment")
	}
	return c.JSON(http.StatusOK, ack)
}

func (h *CommentHandler) GetCommentsByPostID(c echo.Context) error {
	comments, err := h.commentRepository.GetCommentsByPostID(c.Request().Context(), c.Param("postId"))
	if err != nil {
		return storeError(err, "failed to fetch comments")
	}
	return c.JSON(http.StatusOK, comments)
}

func (h *CommentHandler) GetCommentsByPostTitle(c echo.Context) error {
	title, err := middleware.PathParam(c, "title")
	if err != nil {
		return err
	}
	comments, err := h.commentRepository.GetCommentsByPostTitle(c.Request().Context(), title)
	if err != nil {
		return storeError(err, "failed to fetch comments")
	}
	return c.JSON(http.StatusOK, comments)
}
