package handlers

import (
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"

	"github.com/KAVIN131005/Florist-Backend/internal/apperr"
	"github.com/KAVIN131005/Florist-Backend/internal/middleware"
	"github.com/KAVIN131005/Florist-Backend/internal/models"
	"github.com/KAVIN131005/Florist-Backend/internal/services"
)

// OrderHandler manages order endpoints.
type OrderHandler struct {
	orders   *services.OrderService
	payments *services.PaymentService
}

// NewOrderHandler constructs OrderHandler.
func NewOrderHandler(orders *services.OrderService, payments *services.PaymentService) *OrderHandler {
	return &OrderHandler{orders: orders, payments: payments}
}

type createOrderRequest struct {
	Address string `json:"address"`
}

// CreateOrder converts the caller's cart into an order.
func (h *OrderHandler) CreateOrder(c *fiber.Ctx) error {
	identity, ok := middleware.CurrentIdentity(c)
	if !ok {
		return fiber.NewError(fiber.StatusUnauthorized, "unauthorized")
	}

	var req createOrderRequest
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "invalid request body")
	}

	order, err := h.orders.CreateFromCart(c.Context(), identity.UserID, req.Address)
	if err != nil {
		return err
	}

	return c.Status(fiber.StatusCreated).JSON(fiber.Map{"success": true, "data": order})
}

// ListOrders returns the caller's orders, newest first.
func (h *OrderHandler) ListOrders(c *fiber.Ctx) error {
	identity, ok := middleware.CurrentIdentity(c)
	if !ok {
		return fiber.NewError(fiber.StatusUnauthorized, "unauthorized")
	}

	orders, err := h.orders.ListForUser(c.Context(), identity.UserID)
	if err != nil {
		return err
	}

	return c.JSON(fiber.Map{"success": true, "data": orders})
}

// GetOrder returns one order with its payment state, for the owner or an
// admin.
func (h *OrderHandler) GetOrder(c *fiber.Ctx) error {
	identity, ok := middleware.CurrentIdentity(c)
	if !ok {
		return fiber.NewError(fiber.StatusUnauthorized, "unauthorized")
	}

	orderID, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "invalid id")
	}

	order, err := h.orders.GetOrder(c.Context(), orderID, identity.UserID, identity.Roles)
	if err != nil {
		return err
	}

	data := orderResponse{Order: order}

	payment, err := h.payments.GetByOrder(c.Context(), orderID)
	switch {
	case err == nil:
		data.Payment = fiber.Map{
			"status":             payment.Status,
			"paid_at":            payment.PaidAt,
			"florist_share":      payment.FloristShare,
			"admin_share":        payment.AdminShare,
			"gateway_payment_id": payment.GatewayPaymentID,
		}
	case apperr.IsKind(err, apperr.KindNotFound):
		// No payment yet; omit the block.
	default:
		return err
	}

	return c.JSON(fiber.Map{"success": true, "data": data})
}

// orderResponse inlines the order fields and nests the payment state inside
// the order payload.
type orderResponse struct {
	*models.Order
	Payment fiber.Map `json:"payment,omitempty"`
}

type updateOrderStatusRequest struct {
	Status models.OrderStatus `json:"status"`
}

// UpdateStatus moves an order along its lifecycle. Admin only.
func (h *OrderHandler) UpdateStatus(c *fiber.Ctx) error {
	orderID, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "invalid id")
	}

	var req updateOrderStatusRequest
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "invalid request body")
	}

	order, err := h.orders.UpdateStatus(c.Context(), orderID, req.Status)
	if err != nil {
		return err
	}

	return c.JSON(fiber.Map{"success": true, "data": order})
}
