package router

import (
	"log/slog"

	"github.com/anonto42/synapse-forum/backend/internal/apperr"
	"github.com/anonto42/synapse-forum/backend/internal/auth"
	"github.com/anonto42/synapse-forum/backend/internal/handlers"
	"github.com/anonto42/synapse-forum/backend/internal/middleware"
	"github.com/anonto42/synapse-forum/backend/internal/repositories"
	"github.com/anonto42/synapse-forum/backend/pkg/payments"
	"github.com/anonto42/synapse-forum/backend/validators"
	"github.com/labstack/echo/v4"
)

// Dependencies is everything the route table needs. The handles are built once in main.
type Dependencies struct {
	Posts         repositories.PostRepository
	Comments      repositories.CommentRepository
	Tags          repositories.TagRepository
	Announcements repositories.AnnouncementRepository
	Reports       repositories.ReportRepository
	Users         repositories.UserRepository
	Payments      repositories.PaymentRepository

	Tokens    *auth.TokenManager
	Processor payments.IntentCreator
	Health    handlers.Pinger
}

// New returns an echo instance with error rendering, validation and every route installed.
// Global middleware is added separately by config.SetupMiddleware.
func New(logger *slog.Logger, deps Dependencies) *echo.Echo {
	e := echo.New()
	e.HideBanner = true
	e.HTTPErrorHandler = apperr.HTTPErrorHandler(logger)
	e.Validator = validators.NewValidator()
	SetupRoutes(e, deps)
	return e
}

// SetupRoutes configures all application routes and injects dependencies
func SetupRoutes(e *echo.Echo, deps Dependencies) {
	e.GET("/", handlers.Root)
	e.GET("/health", handlers.HealthCheck(deps.Health))

	admins := auth.NewAdminAuthorizer(deps.Users)
	guards := handlers.Guards{
		Authenticate: middleware.Authenticate(deps.Tokens),
		Admin:        middleware.RequireAdmin(admins),
	}

	api := e.Group("")

	handlers.NewAuthHandler(deps.Tokens).RegisterAuthRoutes(api)
	handlers.NewPostHandler(deps.Posts, guards).RegisterPostRoutes(api)
	handlers.NewVoteHandler(deps.Posts).RegisterVoteRoutes(api)
	handlers.NewCommentHandler(deps.Comments).RegisterCommentRoutes(api)
	handlers.NewTagHandler(deps.Tags).RegisterTagRoutes(api)
	handlers.NewAnnouncementHandler(deps.Announcements).RegisterAnnouncementRoutes(api)
	handlers.NewUserHandler(deps.Users, admins, guards).RegisterUserRoutes(api)
	handlers.NewReportHandler(deps.Reports, guards).RegisterReportRoutes(api)
	handlers.NewPaymentHandler(deps.Payments, deps.Processor, guards).RegisterPaymentRoutes(api)
	handlers.NewAdminHandler(deps.Posts, deps.Comments, deps.Users, guards).RegisterAdminRoutes(api)

	slog.Debug("routes configured", "count", len(e.Routes()))
}
