package handlers

import (
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"

	"github.com/KAVIN131005/Florist-Backend/internal/middleware"
	"github.com/KAVIN131005/Florist-Backend/internal/services"
)

// PaymentHandler manages gateway checkout and payment confirmation.
type PaymentHandler struct {
	payments *services.PaymentService
}

// NewPaymentHandler constructs PaymentHandler.
func NewPaymentHandler(payments *services.PaymentService) *PaymentHandler {
	return &PaymentHandler{payments: payments}
}

type createGatewayOrderRequest struct {
	OrderID string `json:"order_id"`
}

// CreateGatewayOrder opens a gateway order for checkout.
func (h *PaymentHandler) CreateGatewayOrder(c *fiber.Ctx) error {
	identity, ok := middleware.CurrentIdentity(c)
	if !ok {
		return fiber.NewError(fiber.StatusUnauthorized, "unauthorized")
	}

	var req createGatewayOrderRequest
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "invalid request body")
	}

	orderID, err := uuid.Parse(req.OrderID)
	if err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "invalid order_id")
	}

	checkout, err := h.payments.CreateGatewayOrder(c.Context(), orderID, identity.UserID)
	if err != nil {
		return err
	}

	return c.JSON(fiber.Map{"success": true, "data": checkout})
}

type confirmPaymentRequest struct {
	OrderID          string `json:"order_id"`
	GatewayOrderID   string `json:"gateway_order_id"`
	GatewayPaymentID string `json:"gateway_payment_id"`
	Signature        string `json:"signature"`
}

// ConfirmPayment verifies a gateway confirmation and settles the order.
// Redelivered confirmations succeed without crediting wallets twice.
func (h *PaymentHandler) ConfirmPayment(c *fiber.Ctx) error {
	var req confirmPaymentRequest
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "invalid request body")
	}

	orderID, err := uuid.Parse(req.OrderID)
	if err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "invalid order_id")
	}
	if req.GatewayOrderID == "" || req.GatewayPaymentID == "" || req.Signature == "" {
		return fiber.NewError(fiber.StatusBadRequest, "missing gateway confirmation fields")
	}

	result, err := h.payments.VerifyAndConfirm(c.Context(),
		orderID, req.GatewayOrderID, req.GatewayPaymentID, req.Signature)
	if err != nil {
		return err
	}

	message := "payment recorded and split applied"
	if result.AlreadySettled {
		message = "payment already settled"
	}

	return c.JSON(fiber.Map{
		"success": true,
		"message": message,
		"data": fiber.Map{
			"status":        result.Payment.Status,
			"paid_at":       result.Payment.PaidAt,
			"florist_share": result.Payment.FloristShare,
			"admin_share":   result.Payment.AdminShare,
		},
	})
}
