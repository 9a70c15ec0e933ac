package handlers

import (
	"context"
	"net/http"
	"time"

	"github.com/anonto42/synapse-forum/backend/internal/apperr"
	"github.com/anonto42/synapse-forum/backend/internal/middleware"
	"github.com/anonto42/synapse-forum/backend/internal/models"
	"github.com/anonto42/synapse-forum/backend/internal/pagination"
	"github.com/anonto42/synapse-forum/backend/internal/repositories"
	"github.com/labstack/echo/v4"
)

// PostHandler handles HTTP requests related to posts
type PostHandler struct {
	postRepository repositories.PostRepository
	guards         Guards
}

// NewPostHandler creates a new PostHandler
func NewPostHandler(postRepo repositories.PostRepository, guards Guards) *PostHandler {
	return &PostHandler{
		postRepository: postRepo,
		guards:         guards,
	}
}

// RegisterPostRoutes registers post-related routes
func (h *PostHandler) RegisterPostRoutes(g *echo.Group) {
	g.GET("/posts", h.GetPosts)
	g.GET("/posts/popular", h.GetPopularPosts)
	g.GET("/posts/:id", h.GetPost)
	g.POST("/posts", h.CreatePost)
	g.DELETE("/posts/:id", h.DeletePost)
	g.GET("/my-posts/:email", h.GetMyPosts, h.guards.self()...)
}

// GetPosts returns one page of posts, newest first, optionally restricted to a tag
func (h *PostHandler) GetPosts(c echo.Context) error {
	return h.listPage(c, h.postRepository.ListPosts)
}

// GetPopularPosts returns one page of posts ordered by upvote minus downvote
func (h *PostHandler) GetPopularPosts(c echo.Context) error {
	return h.listPage(c, h.postRepository.ListPopularPosts)
}

type pageLister func(ctx context.Context, page pagination.Page) ([]models.Post, error)

func (h *PostHandler) listPage(c echo.Context, list pageLister) error {
	ctx := c.Request().Context()
	page := pagination.Build(c.QueryParam("page"), c.QueryParam("limit"), pagination.TagFilter(c.QueryParam("tag")))

	total, err := h.postRepository.CountPosts(ctx, page.Filter)
	if err != nil {
		return storeError(err, "failed to fetch posts")
	}
	posts, err := list(ctx, page)
	if err != nil {
		return storeError(err, "failed to fetch posts")
	}

	return c.JSON(http.StatusOK, models.PostPage{
		TotalPosts:  total,
		TotalPages:  pagination.TotalPages(total, page.Limit),
		CurrentPage: page.Page,
		Posts:       posts,
	})
}

// GetPost retrieves a post by ID. A missing post is answered with null.
func (h *PostHandler) GetPost(c echo.Context) error {
	post, err := h.postRepository.GetPostByID(c.Request().Context(), c.Param("id"))
	if err != nil {
		if apperr.IsKind(err, apperr.KindNotFound) {
			return c.JSON(http.StatusOK, nil)
		}
		return storeError(err, "failed to fetch post")
	}
	return c.JSON(http.StatusOK, post)
}

// CreatePost creates a new post with zeroed vote counters
func (h *PostHandler) CreatePost(c echo.Context) error {
	var req models.CreatePostRequest
	if err := bindAndValidate(c, &req); err != nil {
		return err
	}

	post := &models.Post{
		AuthorEmail: req.AuthorEmail,
		AuthorName:  req.AuthorName,
		AuthorImage: req.AuthorImage,
		Title:       req.Title,
		Body:        req.Body,
		Tags:        req.Tags,
		Upvote:      0,
		Downvote:    0,
		PostedTime:  time.Now().UTC(),
	}

	ack, err := h.postRepository.CreatePost(c.Request().Context(), post)
	if err != nil {
		return storeError(err, "failed to create post")
	}
	return c.JSON(http.StatusOK, ack)
}

// DeletePost deletes a post. Comments and reports referencing it are kept.
func (h *PostHandler) DeletePost(c echo.Context) error {
	ack, err := h.postRepository.DeletePost(c.Request().Context(), c.Param("id"))
	if err != nil {
		return storeError(err, "failed to delete post")
	}
	return c.JSON(http.StatusOK, ack)
}

// GetMyPosts lists the caller's own posts
func (h *PostHandler) GetMyPosts(c echo.Context) error {
	email, err := middleware.PathParam(c, "email")
	if err != nil {
		return err
	}
	posts, err := h.postRepository.ListPostsByAuthor(c.Request().Context(), email)
	if err != nil {
		return storeError(err, "failed to fetch posts")
	}
	return c.JSON(http.StatusOK, posts)
}
