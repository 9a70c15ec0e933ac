package handlers

import (
	"net/http"

	"github.com/anonto42/synapse-forum/backend/internal/apperr"
	"github.com/anonto42/synapse-forum/backend/internal/middleware"
	"github.com/anonto42/synapse-forum/backend/internal/models"
	"github.com/anonto42/synapse-forum/backend/internal/repositories"
	"github.com/labstack/echo/v4"
)

// UserHandler handles HTTP requests related to users
type UserHandler struct {
	userRepository repositories.UserRepository
	admins         middleware.AdminChecker
	guards         Guards
}

// NewUserHandler creates a new UserHandler
func NewUserHandler(userRepo repositories.UserRepository, admins middleware.AdminChecker, guards Guards) *UserHandler {
	return &UserHandler{
		userRepository: userRepo,
		admins:         admins,
		guards:         guards,
	}
}

// RegisterUserRoutes registers user-related routes. make-admin and membership are left
// unguarded on purpose; existing clients call them without a token.
func (h *UserHandler) RegisterUserRoutes(g *echo.Group) {
	g.POST("/users", h.CreateUser)
	g.GET("/users", h.GetUsers, h.guards.admin()...)
	g.GET("/users/:email", h.GetUser)
	g.GET("/users/admin/:email", h.CheckAdmin, h.guards.self()...)
	g.PATCH("/users/make-admin/:email", h.MakeAdmin)
	g.PATCH("/users/membership/:email", h.GrantMembership)
}

// CreateUser registers an account. Registering an existing email is reported as success
// with a null insertedId so social sign-in can call it on every login.
func (h *UserHandler) CreateUser(c echo.Context) error {
	var req models.CreateUserRequest
	if err := bindAndValidate(c, &req); err != nil {
		return err
	}

	user := &models.User{
		Name:  req.Name,
		Email: req.Email,
		Photo: req.Photo,
	}
	ack, err := h.userRepository.CreateUser(c.Request().Context(), user)
	if err != nil {
		if apperr.IsKind(err, apperr.KindDuplicate) {
			return c.JSON(http.StatusOK, models.CreateUserResponse{Message: "user already exists", InsertedID: nil})
		}
		return storeError(err, "failed to create user")
	}
	return c.JSON(http.StatusOK, models.CreateUserResponse{Message: "user created", InsertedID: ack.InsertedID})
}

func (h *UserHandler) GetUsers(c echo.Context) error {
	users, err := h.userRepository.GetUsers(c.Request().Context())
	if err != nil {
		return storeError(err, "failed to fetch users")
	}
	return c.JSON(http.StatusOK, users)
}

func (h *UserHandler) GetUser(c echo.Context) error {
	email, err := middleware.PathParam(c, "email")
	if err != nil {
		return err
	}
	user, err := h.userRepository.GetUserByEmail(c.Request().Context(), email)
	if err != nil {
		return storeError(err, "failed to fetch user")
	}
	return c.JSON(http.StatusOK, user)
}

// CheckAdmin reports whether the caller holds the admin role
func (h *UserHandler) CheckAdmin(c echo.Context) error {
	isAdmin, err := h.admins.AuthorizeAdmin(c.Request().Context(), middleware.IdentityFrom(c))
	if err != nil {
		return storeError(err, "failed to fetch user")
	}
	return c.JSON(http.StatusOK, echo.Map{"admin": isAdmin})
}

func (h *UserHandler) MakeAdmin(c echo.Context) error {
	email, err := middleware.PathParam(c, "email")
	if err != nil {
		return err
	}
	ack, err := h.userRepository.SetRole(c.Request().Context(), email, models.RoleAdmin)
	if err != nil {
		return storeError(err, "failed to update role")
	}
	return c.JSON(http.StatusOK, ack)
}

func (h *UserHandler) GrantMembership(c echo.Context) error {
	email, err := middleware.PathParam(c, "email")
	if err != nil {
		return err
	}
	ack, err := h.userRepository.SetMembership(c.Request().Context(), email, models.MembershipGold)
	if err != nil {
		return storeError(err, "failed to update membership")
	}
	return c.JSON(http.StatusOK, ack)
}
