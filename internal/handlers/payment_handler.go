package handlers

import (
	"net/http"
	"time"

	"github.com/anonto42/synapse-forum/backend/internal/apperr"
	"github.com/anonto42/synapse-forum/backend/internal/middleware"
	"github.com/anonto42/synapse-forum/backend/internal/models"
	"github.com/anonto42/synapse-forum/backend/internal/repositories"
	"github.com/anonto42/synapse-forum/backend/pkg/payments"
	"github.com/labstack/echo/v4"
)

// PaymentHandler handles membership payments
type PaymentHandler struct {
	paymentRepository repositories.PaymentRepository
	processor         payments.IntentCreator
	guards            Guards
}

// NewPaymentHandler creates a new PaymentHandler
func NewPaymentHandler(paymentRepo repositories.PaymentRepository, processor payments.IntentCreator, guards Guards) *PaymentHandler {
	return &PaymentHandler{
		paymentRepository: paymentRepo,
		processor:         processor,
		guards:            guards,
	}
}

// RegisterPaymentRoutes registers payment-related routes
func (h *PaymentHandler) RegisterPaymentRoutes(g *echo.Group) {
	g.POST("/payments", h.CreatePayment)
	g.GET("/payments/:email", h.GetPayments, h.guards.self()...)
	g.POST("/create-payment-intent", h.CreatePaymentIntent)
}

// CreatePayment records a completed payment and upgrades the payer to gold membership
func (h *PaymentHandler) CreatePayment(c echo.Context) error {
	var req models.CreatePaymentRequest
	if err := bindAndValidate(c, &req); err != nil {
		return err
	}

	payment := &models.Payment{
		Email:         req.Email,
		Price:         req.Price,
		TransactionID: req.TransactionID,
		Timestamp:     time.Now().UTC(),
	}
	result, err := h.paymentRepository.CreatePayment(c.Request().Context(), payment)
	if err != nil {
		return storeError(err, "failed to record payment")
	}
	return c.JSON(http.StatusOK, result)
}

func (h *PaymentHandler) GetPayments(c echo.Context) error {
	email, err := middleware.PathParam(c, "email")
	if err != nil {
		return err
	}
	history, err := h.paymentRepository.GetPaymentsByEmail(c.Request().Context(), email)
	if err != nil {
		return storeError(err, "failed to fetch payments")
	}
	return c.JSON(http.StatusOK, history)
}

// CreatePaymentIntent starts a card payment for price dollars and hands the client secret
// to the browser
func (h *PaymentHandler) CreatePaymentIntent(c echo.Context) error {
	var req models.PaymentIntentRequest
	if err := bindAndValidate(c, &req); err != nil {
		return err
	}

	secret, err := h.processor.CreateIntent(c.Request().Context(), payments.ToMinorUnits(req.Price), payments.CurrencyUSD)
	if err != nil {
		return apperr.Upstream("failed to create payment intent", err)
	}
	return c.JSON(http.StatusOK, echo.Map{"clientSecret": secret})
}
