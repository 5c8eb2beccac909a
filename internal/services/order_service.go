package services

import (
	"context"
	"errors"
	"slices"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/KAVIN131005/Florist-Backend/internal/apperr"
	"github.com/KAVIN131005/Florist-Backend/internal/models"
)

// OrderService owns the order aggregate: checkout, lookup with authorization,
// and status transitions.
type OrderService struct {
	db *gorm.DB
}

func NewOrderService(db *gorm.DB) *OrderService {
	return &OrderService{db: db}
}

// CreateFromCart converts the user's cart into an immutable order. Item
// subtotals are computed from the prices snapshotted when the items were
// added; the order, its items and the cart wipe commit atomically.
func (s *OrderService) CreateFromCart(ctx context.Context, userID uuid.UUID, address string) (*models.Order, error) {
	var order *models.Order

	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var cart models.Cart
		if err := tx.Preload("Items").Preload("Items.Product").
			Where("user_id = ?", userID).
			First(&cart).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return apperr.NewValidation("cart is empty")
			}
			return err
		}
		if len(cart.Items) == 0 {
			return apperr.NewValidation("cart is empty")
		}

		o := models.Order{
			UserID:          userID,
			Status:          models.OrderStatusCreated,
			DeliveryAddress: address,
			PlacedAt:        time.Now(),
		}

		for _, ci := range cart.Items {
			if ci.Product == nil {
				return apperr.NewNotFound("product %s no longer exists", ci.ProductID)
			}
			productID := ci.ProductID
			item := models.OrderItem{
				ProductID:    &productID,
				ProductName:  ci.Product.Name,
				FloristID:    ci.Product.FloristID,
				Grams:        ci.Grams,
				PricePer100g: ci.PricePer100gAtAdd,
				Subtotal:     ci.Subtotal(),
			}
			o.TotalAmount = o.TotalAmount.Add(item.Subtotal)
			o.Items = append(o.Items, item)
		}

		if err := tx.Create(&o).Error; err != nil {
			return err
		}

		if err := clearCartItems(tx, cart.ID); err != nil {
			return err
		}

		order = &o
		return nil
	})
	if err != nil {
		return nil, err
	}

	return order, nil
}

// GetOrder returns the order when the requester owns it or holds the admin
// role. The requester is always passed in explicitly; nothing here consults
// ambient authentication state.
func (s *OrderService) GetOrder(ctx context.Context, orderID, requesterID uuid.UUID, requesterRoles []string) (*models.Order, error) {
	var order models.Order
	if err := s.db.WithContext(ctx).Preload("Items").
		First(&order, "id = ?", orderID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperr.NewNotFound("order %s not found", orderID)
		}
		return nil, err
	}

	if order.UserID != requesterID && !slices.Contains(requesterRoles, models.RoleAdmin) {
		return nil, apperr.NewAccessDenied("order belongs to another user")
	}

	return &order, nil
}

// UpdateStatus moves an order along its transition table.
func (s *OrderService) UpdateStatus(ctx context.Context, orderID uuid.UUID, next models.OrderStatus) (*models.Order, error) {
	var order models.Order

	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.First(&order, "id = ?", orderID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return apperr.NewNotFound("order %s not found", orderID)
			}
			return err
		}

		if err := order.TransitionTo(next); err != nil {
			return err
		}

		return tx.Model(&models.Order{}).
			Where("id = ?", order.ID).
			Update("status", next).Error
	})
	if err != nil {
		return nil, err
	}

	return &order, nil
}

// ListForUser returns the user's orders, newest first.
func (s *OrderService) ListForUser(ctx context.Context, userID uuid.UUID) ([]models.Order, error) {
	var orders []models.Order
	if err := s.db.WithContext(ctx).Preload("Items").
		Where("user_id = ?", userID).
		Order("placed_at desc").
		Find(&orders).Error; err != nil {
		return nil, err
	}
	return orders, nil
}

// ListAll returns every order, newest first. Admin only; the handler guards.
func (s *OrderService) ListAll(ctx context.Context) ([]models.Order, error) {
	var orders []models.Order
	if err := s.db.WithContext(ctx).Preload("Items").
		Order("placed_at desc").
		Find(&orders).Error; err != nil {
		return nil, err
	}
	return orders, nil
}
