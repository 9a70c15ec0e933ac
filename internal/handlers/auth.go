package handlers

import (
	"net/http"

	"github.com/anonto42/synapse-forum/backend/internal/apperr"
	"github.com/anonto42/synapse-forum/backend/internal/auth"
	"github.com/anonto42/synapse-forum/backend/internal/models"
	"github.com/labstack/echo/v4"
)

// TokenIssuer signs tokens for an identity
type TokenIssuer interface {
	Issue(identity auth.Identity) (string, error)
}

// AuthHandler handles token issuance
type AuthHandler struct {
	tokens TokenIssuer
}

// NewAuthHandler creates a new AuthHandler
func NewAuthHandler(tokens TokenIssuer) *AuthHandler {
	return &AuthHandler{tokens: tokens}
}

// RegisterAuthRoutes registers authentication-related routes
func (h *AuthHandler) RegisterAuthRoutes(g *echo.Group) {
	g.POST("/jwt", h.IssueToken)
}

// IssueToken signs a bearer token for the caller-supplied identity. The client sends it
// back as "Authorization: Bearer <token>".
func (h *AuthHandler) IssueToken(c echo.Context) error {
	var req models.TokenRequest
	if err := bindAndValidate(c, &req); err != nil {
		return err
	}

	token, err := h.tokens.Issue(auth.Identity{Email: req.Email, Role: req.Role})
	if err != nil {
		return apperr.Upstream("Failed to generate token", err)
	}
	return c.JSON(http.StatusOK, echo.Map{"token": token})
}
