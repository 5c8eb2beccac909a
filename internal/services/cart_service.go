package services

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/KAVIN131005/Florist-Backend/internal/apperr"
	"github.com/KAVIN131005/Florist-Backend/internal/models"
)

// CartService manages the pre-order cart. Prices are snapshotted when an item
// is added, not re-resolved at checkout.
type CartService struct {
	db *gorm.DB
}

func NewCartService(db *gorm.DB) *CartService {
	return &CartService{db: db}
}

// GetOrCreate returns the user's cart, creating an empty one on first use.
func (s *CartService) GetOrCreate(ctx context.Context, userID uuid.UUID) (*models.Cart, error) {
	var cart models.Cart
	err := s.db.WithContext(ctx).
		Where(models.Cart{UserID: userID}).
		FirstOrCreate(&cart).Error
	if err != nil {
		return nil, err
	}

	if err := s.db.WithContext(ctx).
		Preload("Product").
		Where("cart_id = ?", cart.ID).
		Order("created_at asc").
		Find(&cart.Items).Error; err != nil {
		return nil, err
	}

	return &cart, nil
}

// AddItem appends a product to the cart with the current per-100g price
// snapshotted onto the line.
func (s *CartService) AddItem(ctx context.Context, userID, productID uuid.UUID, grams int) (*models.Cart, error) {
	if err := validateGrams(grams); err != nil {
		return nil, err
	}

	var product models.Product
	if err := s.db.WithContext(ctx).First(&product, "id = ?", productID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperr.NewNotFound("product %s not found", productID)
		}
		return nil, err
	}

	cart, err := s.GetOrCreate(ctx, userID)
	if err != nil {
		return nil, err
	}

	item := models.CartItem{
		CartID:            cart.ID,
		ProductID:         product.ID,
		Grams:             grams,
		PricePer100gAtAdd: product.PricePer100g,
	}
	if err := s.db.WithContext(ctx).Create(&item).Error; err != nil {
		return nil, err
	}

	return s.GetOrCreate(ctx, userID)
}

// UpdateItem changes the weight of an existing cart line.
func (s *CartService) UpdateItem(ctx context.Context, userID, itemID uuid.UUID, grams int) (*models.Cart, error) {
	if err := validateGrams(grams); err != nil {
		return nil, err
	}

	item, err := s.findOwnedItem(ctx, userID, itemID)
	if err != nil {
		return nil, err
	}

	if err := s.db.WithContext(ctx).Model(&models.CartItem{}).
		Where("id = ?", item.ID).
		Update("grams", grams).Error; err != nil {
		return nil, err
	}

	return s.GetOrCreate(ctx, userID)
}

// RemoveItem deletes a cart line.
func (s *CartService) RemoveItem(ctx context.Context, userID, itemID uuid.UUID) (*models.Cart, error) {
	item, err := s.findOwnedItem(ctx, userID, itemID)
	if err != nil {
		return nil, err
	}

	if err := s.db.WithContext(ctx).Delete(&models.CartItem{}, "id = ?", item.ID).Error; err != nil {
		return nil, err
	}

	return s.GetOrCreate(ctx, userID)
}

// Clear empties the user's cart.
func (s *CartService) Clear(ctx context.Context, userID uuid.UUID) error {
	var cart models.Cart
	err := s.db.WithContext(ctx).Where("user_id = ?", userID).First(&cart).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil
		}
		return err
	}
	return clearCartItems(s.db.WithContext(ctx), cart.ID)
}

func (s *CartService) findOwnedItem(ctx context.Context, userID, itemID uuid.UUID) (*models.CartItem, error) {
	var cart models.Cart
	if err := s.db.WithContext(ctx).Where("user_id = ?", userID).First(&cart).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperr.NewNotFound("cart is empty")
		}
		return nil, err
	}

	var item models.CartItem
	if err := s.db.WithContext(ctx).
		Where("id = ? AND cart_id = ?", itemID, cart.ID).
		First(&item).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperr.NewNotFound("cart item %s not found", itemID)
		}
		return nil, err
	}
	return &item, nil
}

func clearCartItems(tx *gorm.DB, cartID uuid.UUID) error {
	return tx.Delete(&models.CartItem{}, "cart_id = ?", cartID).Error
}

func validateGrams(grams int) error {
	if grams <= 0 {
		return apperr.NewValidation("grams must be positive")
	}
	if grams%100 != 0 {
		return apperr.NewValidation("grams must be in 100g steps")
	}
	return nil
}
