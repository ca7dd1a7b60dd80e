package handler

import (
	"errors"
	"net/http"

	"worktrack/internal/model"
	"worktrack/internal/service"

	"github.com/gin-gonic/gin"
)

// PaymentHandler handles payment intent and payment record requests
type PaymentHandler struct {
	paymentService *service.PaymentService
}

// NewPaymentHandler creates a new payment handler
func NewPaymentHandler(paymentService *service.PaymentService) *PaymentHandler {
	return &PaymentHandler{paymentService: paymentService}
}

// CreateIntent handles POST /create-payment-intent
func (h *PaymentHandler) CreateIntent(c *gin.Context) {
	var req model.PaymentIntentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, model.NewErrorResponse("Invalid price"))
		return
	}

	secret, err := h.paymentService.CreateIntent(c.Request.Context(), req.Price)
	if err != nil {
		if errors.Is(err, service.ErrInvalidInput) {
			c.JSON(http.StatusBadRequest, model.NewErrorResponse("Invalid price"))
			return
		}
		c.JSON(http.StatusInternalServerError, model.NewErrorResponse("Failed to create payment intent"))
		return
	}
	c.JSON(http.StatusOK, model.PaymentIntentResponse{ClientSecret: secret})
}

// Record handles POST /payments
func (h *PaymentHandler) Record(c *gin.Context) {
	var payment model.Document
	if err := c.ShouldBindJSON(&payment); err != nil {
		c.JSON(http.StatusBadRequest, model.NewErrorResponse("Invalid request body"))
		return
	}

	res, err := h.paymentService.Record(c.Request.Context(), payment)
	if err != nil {
		var partial *service.PartialPaymentError
		switch {
		case errors.As(err, &partial):
			c.JSON(http.StatusInternalServerError, model.PartialPaymentResponse{
				Error:  "Payment recorded but employee status update failed",
				Result: partial.Result,
			})
		case errors.Is(err, service.ErrInvalidInput):
			c.JSON(http.StatusBadRequest, model.NewErrorResponse("Invalid employee id"))
		default:
			c.JSON(http.StatusInternalServerError, model.NewErrorResponse("Failed to record payment"))
		}
		return
	}
	c.JSON(http.StatusOK, res)
}

// ListByEmail handles GET /payment/:email
func (h *PaymentHandler) ListByEmail(c *gin.Context) {
	payments, err := h.paymentService.ListByEmail(c.Request.Context(), c.Param("email"))
	if err != nil {
		c.JSON(http.StatusInternalServerError, model.NewErrorResponse("Failed to fetch payments"))
		return
	}
	c.JSON(http.StatusOK, payments)
}
