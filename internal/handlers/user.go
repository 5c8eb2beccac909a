package handlers

import (
	"errors"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"github.com/KAVIN131005/Florist-Backend/internal/middleware"
	"github.com/KAVIN131005/Florist-Backend/internal/models"
	"github.com/KAVIN131005/Florist-Backend/internal/services"
)

// UserHandler exposes the calling user's own profile and wallet.
type UserHandler struct {
	db      *gorm.DB
	wallets *services.WalletService
}

// NewUserHandler constructs UserHandler.
func NewUserHandler(db *gorm.DB, wallets *services.WalletService) *UserHandler {
	return &UserHandler{db: db, wallets: wallets}
}

// Me returns the authenticated user's profile.
func (h *UserHandler) Me(c *fiber.Ctx) error {
	identity, ok := middleware.CurrentIdentity(c)
	if !ok {
		return fiber.NewError(fiber.StatusUnauthorized, "unauthorized")
	}

	var user models.User
	if err := h.db.First(&user, "id = ?", identity.UserID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return fiber.NewError(fiber.StatusNotFound, "user not found")
		}
		return err
	}

	return c.JSON(fiber.Map{"success": true, "data": user})
}

// Wallet returns the authenticated user's wallet balance. Florist and admin
// wallets are created at grant time, plain buyers get one at registration.
func (h *UserHandler) Wallet(c *fiber.Ctx) error {
	identity, ok := middleware.CurrentIdentity(c)
	if !ok {
		return fiber.NewError(fiber.StatusUnauthorized, "unauthorized")
	}

	balance, err := h.wallets.Balance(c.Context(), identity.UserID)
	if err != nil {
		return err
	}

	return c.JSON(fiber.Map{"success": true, "data": fiber.Map{"balance": balance}})
}
