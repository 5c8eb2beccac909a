package handlers

import (
	"strings"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"

	"github.com/KAVIN131005/Florist-Backend/internal/middleware"
	"github.com/KAVIN131005/Florist-Backend/internal/services"
)

// FloristHandler exposes seller application endpoints.
type FloristHandler struct {
	florists *services.FloristService
}

// NewFloristHandler constructs FloristHandler.
func NewFloristHandler(florists *services.FloristService) *FloristHandler {
	return &FloristHandler{florists: florists}
}

type applyRequest struct {
	ShopName    string `json:"shop_name"`
	Description string `json:"description"`
	GSTNumber   string `json:"gst_number"`
}

// Apply files a seller application for the calling user.
func (h *FloristHandler) Apply(c *fiber.Ctx) error {
	identity, ok := middleware.CurrentIdentity(c)
	if !ok {
		return fiber.NewError(fiber.StatusUnauthorized, "unauthorized")
	}

	var req applyRequest
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "invalid request body")
	}

	app, err := h.florists.Apply(c.Context(), identity.UserID,
		strings.TrimSpace(req.ShopName), req.Description, req.GSTNumber)
	if err != nil {
		return err
	}

	return c.Status(fiber.StatusCreated).JSON(fiber.Map{"success": true, "data": app})
}

// ListPending returns applications awaiting a decision. Admin only.
func (h *FloristHandler) ListPending(c *fiber.Ctx) error {
	apps, err := h.florists.Pending(c.Context())
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"success": true, "data": apps})
}

// ListAll returns every application. Admin only.
func (h *FloristHandler) ListAll(c *fiber.Ctx) error {
	apps, err := h.florists.All(c.Context())
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"success": true, "data": apps})
}

// Approve grants the application and the FLORIST role. Admin only.
func (h *FloristHandler) Approve(c *fiber.Ctx) error {
	return h.decide(c, true)
}

// Reject declines the application. Admin only.
func (h *FloristHandler) Reject(c *fiber.Ctx) error {
	return h.decide(c, false)
}

func (h *FloristHandler) decide(c *fiber.Ctx, approve bool) error {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "invalid id")
	}

	if err := h.florists.Decide(c.Context(), id, approve); err != nil {
		return err
	}

	message := "application rejected"
	if approve {
		message = "application approved"
	}
	return c.JSON(fiber.Map{"success": true, "message": message})
}
