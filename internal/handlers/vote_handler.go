package handlers

import (
	"net/http"

	"github.com/anonto42/synapse-forum/backend/internal/models"
	"github.com/anonto42/synapse-forum/backend/internal/repositories"
	"github.com/labstack/echo/v4"
)

// VoteHandler handles the vote counters of posts
type VoteHandler struct {
	postRepository repositories.PostRepository
}

// NewVoteHandler creates a new VoteHandler
func NewVoteHandler(postRepo repositories.PostRepository) *VoteHandler {
	return &VoteHandler{postRepository: postRepo}
}

// RegisterVoteRoutes registers vote-related routes
func (h *VoteHandler) RegisterVoteRoutes(g *echo.Group) {
	g.PATCH("/posts/:id/upvote", h.vote(models.VoteFieldUp, 1))
	g.PATCH("/posts/:id/downvote", h.vote(models.VoteFieldDown, 1))
	g.PATCH("/posts/:id/remove-upvote", h.vote(models.VoteFieldUp, -1))
	g.PATCH("/posts/:id/remove-downvote", h.vote(models.VoteFieldDown, -1))
}

// vote applies delta to one counter. The store increments atomically; votes are not
// tracked per user, so repeated or unmatched removals go through unchecked.
func (h *VoteHandler) vote(field models.VoteField, delta int) echo.HandlerFunc {
	return func(c echo.Context) error {
		ack, err := h.postRepository.IncrementVote(c.Request().Context(), c.Param("id"), field, delta)
		if err != nil {
			return storeError(err, "failed to update vote")
		}
		return c.JSON(http.StatusOK, ack)
	}
}
