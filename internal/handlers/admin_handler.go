package handlers

import (
	"net/http"

	"github.com/anonto42/synapse-forum/backend/internal/repositories"
	"github.com/labstack/echo/v4"
	"go.mongodb.org/mongo-driver/bson"
)

// AdminStats is the body of GET /admin-stats
type AdminStats struct {
	Posts    int64 `json:"posts"`
	Comments int64 `json:"comments"`
	Users    int64 `json:"users"`
}

// AdminHandler serves the admin dashboard
type AdminHandler struct {
	postRepository    repositories.PostRepository
	commentRepository repositories.CommentRepository
	userRepository    repositories.UserRepository
	guards            Guards
}

// NewAdminHandler creates a new AdminHandler
func NewAdminHandler(postRepo repositories.PostRepository, commentRepo repositories.CommentRepository, userRepo repositories.UserRepository, guards Guards) *AdminHandler {
	return &AdminHandler{
		postRepository:    postRepo,
		commentRepository: commentRepo,
		userRepository:    userRepo,
		guards:            guards,
	}
}

// RegisterAdminRoutes registers admin-only routes
func (h *AdminHandler) RegisterAdminRoutes(g *echo.Group) {
	g.GET("/admin-stats", h.GetStats, h.guards.admin()...)
}

// GetStats counts posts, comments and users
func (h *AdminHandler) GetStats(c echo.Context) error {
	ctx := c.Request().Context()

	var stats AdminStats
	var err error
	if stats.Posts, err = h.postRepository.CountPosts(ctx, bson.M{}); err != nil {
		return storeError(err, "failed to fetch stats")
	}
	if stats.Comments, err = h.commentRepository.CountComments(ctx); err != nil {
		return storeError(err, "failed to fetch stats")
	}
	if stats.Users, err = h.userRepository.CountUsers(ctx); err != nil {
		return storeError(err, "failed to fetch stats")
	}
	return c.JSON(http.StatusOK, stats)
}
