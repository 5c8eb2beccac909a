package handlers

import (
	"errors"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"github.com/KAVIN131005/Florist-Backend/internal/models"
	"github.com/KAVIN131005/Florist-Backend/internal/services"
	"github.com/KAVIN131005/Florist-Backend/internal/utils"
)

// AdminHandler exposes platform management endpoints. Every route backed by
// this handler sits behind the ADMIN role guard.
type AdminHandler struct {
	db     *gorm.DB
	orders *services.OrderService
}

// NewAdminHandler constructs AdminHandler.
func NewAdminHandler(db *gorm.DB, orders *services.OrderService) *AdminHandler {
	return &AdminHandler{db: db, orders: orders}
}

// ListUsers returns all registered users, newest first.
func (h *AdminHandler) ListUsers(c *fiber.Ctx) error {
	pg := utils.ParsePagination(c)

	var total int64
	if err := h.db.Model(&models.User{}).Count(&total).Error; err != nil {
		return err
	}

	var users []models.User
	if err := h.db.Order("created_at desc").
		Limit(pg.Limit).Offset(pg.Offset).
		Find(&users).Error; err != nil {
		return err
	}

	return c.JSON(fiber.Map{
		"success": true,
		"data":    users,
		"pagination": fiber.Map{
			"current_page":   pg.Page,
			"items_per_page": pg.Limit,
			"total_items":    total,
		},
	})
}

// DeleteUser removes a user account.
func (h *AdminHandler) DeleteUser(c *fiber.Ctx) error {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "invalid id")
	}

	var user models.User
	if err := h.db.First(&user, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return fiber.NewError(fiber.StatusNotFound, "user not found")
		}
		return err
	}
	if user.HasRole(models.RoleAdmin) {
		return fiber.NewError(fiber.StatusForbidden, "admin accounts cannot be deleted")
	}

	if err := h.db.Delete(&models.User{}, "id = ?", id).Error; err != nil {
		return err
	}

	return c.JSON(fiber.Map{"success": true, "message": "user deleted"})
}

// ListAllOrders returns every order on the platform, newest first.
func (h *AdminHandler) ListAllOrders(c *fiber.Ctx) error {
	orders, err := h.orders.ListAll(c.Context())
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"success": true, "data": orders})
}

// PlatformStats returns headline counts and revenue totals.
func (h *AdminHandler) PlatformStats(c *fiber.Ctx) error {
	var userCount, floristCount, orderCount, productCount int64
	if err := h.db.Model(&models.User{}).Count(&userCount).Error; err != nil {
		return err
	}
	if err := h.db.Model(&models.User{}).
		Where("? = ANY(roles)", models.RoleFlorist).
		Count(&floristCount).Error; err != nil {
		return err
	}
	if err := h.db.Model(&models.Order{}).Count(&orderCount).Error; err != nil {
		return err
	}
	if err := h.db.Model(&models.Product{}).Count(&productCount).Error; err != nil {
		return err
	}

	var totals struct {
		Revenue    decimal.Decimal
		AdminShare decimal.Decimal
	}
	if err := h.db.Model(&models.Payment{}).
		Where("status = ?", models.PaymentStatusSuccess).
		Select("COALESCE(SUM(amount), 0) AS revenue, COALESCE(SUM(admin_share), 0) AS admin_share").
		Scan(&totals).Error; err != nil {
		return err
	}

	return c.JSON(fiber.Map{
		"success": true,
		"data": fiber.Map{
			"users":            userCount,
			"florists":         floristCount,
			"orders":           orderCount,
			"products":         productCount,
			"settled_revenue":  totals.Revenue,
			"platform_revenue": totals.AdminShare,
		},
	})
}
