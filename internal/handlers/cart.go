package handlers

import (
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"

	"github.com/KAVIN131005/Florist-Backend/internal/middleware"
	"github.com/KAVIN131005/Florist-Backend/internal/services"
)

// CartHandler manages cart endpoints.
type CartHandler struct {
	carts *services.CartService
}

// NewCartHandler constructs CartHandler.
func NewCartHandler(carts *services.CartService) *CartHandler {
	return &CartHandler{carts: carts}
}

type addCartItemRequest struct {
	ProductID string `json:"product_id"`
	// Either grams (multiples of 100) or quantity (100g units) may be given.
	Grams    int `json:"grams"`
	Quantity int `json:"quantity"`
}

func (r addCartItemRequest) grams() (int, error) {
	switch {
	case r.Grams > 0 && r.Quantity > 0:
		return 0, fiber.NewError(fiber.StatusBadRequest, "provide either grams or quantity, not both")
	case r.Grams > 0:
		return r.Grams, nil
	case r.Quantity > 0:
		return r.Quantity * 100, nil
	default:
		return 0, fiber.NewError(fiber.StatusBadRequest, "grams or quantity is required")
	}
}

// GetCart returns the caller's cart, creating it on first use.
func (h *CartHandler) GetCart(c *fiber.Ctx) error {
	identity, ok := middleware.CurrentIdentity(c)
	if !ok {
		return fiber.NewError(fiber.StatusUnauthorized, "unauthorized")
	}

	cart, err := h.carts.GetOrCreate(c.Context(), identity.UserID)
	if err != nil {
		return err
	}

	return c.JSON(fiber.Map{"success": true, "data": cart})
}

// AddItem adds a product to the caller's cart.
func (h *CartHandler) AddItem(c *fiber.Ctx) error {
	identity, ok := middleware.CurrentIdentity(c)
	if !ok {
		return fiber.NewError(fiber.StatusUnauthorized, "unauthorized")
	}

	var req addCartItemRequest
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "invalid request body")
	}

	productID, err := uuid.Parse(req.ProductID)
	if err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "invalid product_id")
	}

	grams, err := req.grams()
	if err != nil {
		return err
	}

	cart, err := h.carts.AddItem(c.Context(), identity.UserID, productID, grams)
	if err != nil {
		return err
	}

	return c.Status(fiber.StatusCreated).JSON(fiber.Map{"success": true, "data": cart})
}

// UpdateItem changes the weight of a cart line.
func (h *CartHandler) UpdateItem(c *fiber.Ctx) error {
	identity, ok := middleware.CurrentIdentity(c)
	if !ok {
		return fiber.NewError(fiber.StatusUnauthorized, "unauthorized")
	}

	itemID, err := uuid.Parse(c.Params("itemId"))
	if err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "invalid item id")
	}

	grams := c.QueryInt("grams")

	cart, err := h.carts.UpdateItem(c.Context(), identity.UserID, itemID, grams)
	if err != nil {
		return err
	}

	return c.JSON(fiber.Map{"success": true, "data": cart})
}

// RemoveItem deletes a cart line.
func (h *CartHandler) RemoveItem(c *fiber.Ctx) error {
	identity, ok := middleware.CurrentIdentity(c)
	if !ok {
		return fiber.NewError(fiber.StatusUnauthorized, "unauthorized")
	}

	itemID, err := uuid.Parse(c.Params("itemId"))
	if err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "invalid item id")
	}

	cart, err := h.carts.RemoveItem(c.Context(), identity.UserID, itemID)
	if err != nil {
		return err
	}

	return c.JSON(fiber.Map{"success": true, "data": cart})
}

// ClearCart empties the caller's cart.
func (h *CartHandler) ClearCart(c *fiber.Ctx) error {
	identity, ok := middleware.CurrentIdentity(c)
	if !ok {
		return fiber.NewError(fiber.StatusUnauthorized, "unauthorized")
	}

	if err := h.carts.Clear(c.Context(), identity.UserID); err != nil {
		return err
	}

	return c.JSON(fiber.Map{"success": true, "message": "cart cleared"})
}
