package handlers

import (
	"errors"
	"strings"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"github.com/KAVIN131005/Florist-Backend/internal/middleware"
	"github.com/KAVIN131005/Florist-Backend/internal/models"
	"github.com/KAVIN131005/Florist-Backend/internal/utils"
)

// ProductHandler manages the product catalog.
type ProductHandler struct {
	db *gorm.DB
}

// NewProductHandler constructs ProductHandler.
func NewProductHandler(db *gorm.DB) *ProductHandler {
	return &ProductHandler{db: db}
}

type productRequest struct {
	Name            string          `json:"name"`
	Description     string          `json:"description"`
	ImageURL        string          `json:"image_url"`
	PricePer100g    decimal.Decimal `json:"price_per_100g"`
	StockGrams      int             `json:"stock_grams"`
	CategoryID      string          `json:"category_id"`
	NewCategoryName string          `json:"new_category_name"`
	Featured        bool            `json:"featured"`
}

// ListProducts returns active products with optional filters.
func (h *ProductHandler) ListProducts(c *fiber.Ctx) error {
	pg := utils.ParsePagination(c)
	query := h.db.Model(&models.Product{}).Where("active = ?", true)

	if q := strings.TrimSpace(c.Query("q")); q != "" {
		query = query.Where("LOWER(name) LIKE ?", "%"+strings.ToLower(q)+"%")
	}
	if category := strings.TrimSpace(c.Query("category")); category != "" {
		query = query.Joins("JOIN categories ON categories.id = products.category_id").
			Where("LOWER(categories.name) = ?", strings.ToLower(category))
	}
	if minPrice := c.Query("min_price"); minPrice != "" {
		if parsed, err := decimal.NewFromString(minPrice); err == nil {
			query = query.Where("price_per_100g >= ?", parsed)
		}
	}
	if maxPrice := c.Query("max_price"); maxPrice != "" {
		if parsed, err := decimal.NewFromString(maxPrice); err == nil {
			query = query.Where("price_per_100g <= ?", parsed)
		}
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return err
	}

	var products []models.Product
	if err := query.Preload("Category").
		Order("created_at desc").
		Limit(pg.Limit).Offset(pg.Offset).
		Find(&products).Error; err != nil {
		return err
	}

	return c.JSON(fiber.Map{
		"success": true,
		"data":    products,
		"pagination": fiber.Map{
			"current_page":   pg.Page,
			"items_per_page": pg.Limit,
			"total_items":    total,
		},
	})
}

// GetFeatured returns active featured products, newest first.
func (h *ProductHandler) GetFeatured(c *fiber.Ctx) error {
	limit := c.QueryInt("limit", 8)
	if limit <= 0 {
		limit = 8
	}

	var products []models.Product
	if err := h.db.Preload("Category").
		Where("active = ? AND featured = ?", true, true).
		Order("created_at desc").
		Limit(limit).
		Find(&products).Error; err != nil {
		return err
	}

	return c.JSON(fiber.Map{"success": true, "data": products})
}

// GetProduct returns one product with its review aggregates.
func (h *ProductHandler) GetProduct(c *fiber.Ctx) error {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "invalid id")
	}

	var product models.Product
	if err := h.db.Preload("Category").First(&product, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return fiber.NewError(fiber.StatusNotFound, "product not found")
		}
		return err
	}

	rating, count, err := h.reviewStats(product.ID)
	if err != nil {
		return err
	}

	return c.JSON(fiber.Map{
		"success": true,
		"data":    product,
		"reviews": fiber.Map{"average_rating": rating, "count": count},
	})
}

// ListMine returns the calling florist's products, including inactive ones.
func (h *ProductHandler) ListMine(c *fiber.Ctx) error {
	identity, ok := middleware.CurrentIdentity(c)
	if !ok {
		return fiber.NewError(fiber.StatusUnauthorized, "unauthorized")
	}

	var products []models.Product
	if err := h.db.Preload("Category").
		Where("florist_id = ?", identity.UserID).
		Order("created_at desc").
		Find(&products).Error; err != nil {
		return err
	}

	return c.JSON(fiber.Map{"success": true, "data": products})
}

// CreateProduct adds a catalog entry owned by the calling florist.
func (h *ProductHandler) CreateProduct(c *fiber.Ctx) error {
	identity, ok := middleware.CurrentIdentity(c)
	if !ok {
		return fiber.NewError(fiber.StatusUnauthorized, "unauthorized")
	}

	var req productRequest
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "invalid request body")
	}
	if strings.TrimSpace(req.Name) == "" {
		return fiber.NewError(fiber.StatusBadRequest, "product name must not be blank")
	}
	if req.PricePer100g.LessThanOrEqual(decimal.Zero) {
		return fiber.NewError(fiber.StatusBadRequest, "price_per_100g must be positive")
	}

	category, err := h.resolveCategory(req)
	if err != nil {
		return err
	}

	product := models.Product{
		Name:         strings.TrimSpace(req.Name),
		Description:  req.Description,
		ImageURL:     req.ImageURL,
		PricePer100g: req.PricePer100g,
		StockGrams:   req.StockGrams,
		CategoryID:   category.ID,
		FloristID:    identity.UserID,
		Active:       true,
		Featured:     req.Featured,
	}

	if err := h.db.Create(&product).Error; err != nil {
		return err
	}

	return c.Status(fiber.StatusCreated).JSON(fiber.Map{"success": true, "data": product})
}

// UpdateProduct modifies a product owned by the calling florist.
func (h *ProductHandler) UpdateProduct(c *fiber.Ctx) error {
	_, product, err := h.ownedProduct(c)
	if err != nil {
		return err
	}

	var req productRequest
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "invalid request body")
	}
	if strings.TrimSpace(req.Name) == "" {
		return fiber.NewError(fiber.StatusBadRequest, "product name must not be blank")
	}

	category, err := h.resolveCategory(req)
	if err != nil {
		return err
	}

	updates := map[string]any{
		"name":           strings.TrimSpace(req.Name),
		"description":    req.Description,
		"image_url":      req.ImageURL,
		"price_per_100g": req.PricePer100g,
		"stock_grams":    req.StockGrams,
		"category_id":    category.ID,
		"featured":       req.Featured,
	}
	if err := h.db.Model(&models.Product{}).Where("id = ?", product.ID).Updates(updates).Error; err != nil {
		return err
	}

	return c.JSON(fiber.Map{"success": true, "message": "product updated"})
}

type stockUpdateRequest struct {
	PricePer100g decimal.Decimal `json:"price_per_100g"`
	StockGrams   int             `json:"stock_grams"`
}

// UpdatePriceAndStock partially updates price and stock only.
func (h *ProductHandler) UpdatePriceAndStock(c *fiber.Ctx) error {
	_, product, err := h.ownedProduct(c)
	if err != nil {
		return err
	}

	var req stockUpdateRequest
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "invalid request body")
	}
	if req.PricePer100g.LessThanOrEqual(decimal.Zero) {
		return fiber.NewError(fiber.StatusBadRequest, "price_per_100g must be positive")
	}

	if err := h.db.Model(&models.Product{}).
		Where("id = ?", product.ID).
		Updates(map[string]any{
			"price_per_100g": req.PricePer100g,
			"stock_grams":    req.StockGrams,
		}).Error; err != nil {
		return err
	}

	return c.JSON(fiber.Map{"success": true, "message": "product updated"})
}

// DeleteProduct removes a product owned by the calling florist.
func (h *ProductHandler) DeleteProduct(c *fiber.Ctx) error {
	_, product, err := h.ownedProduct(c)
	if err != nil {
		return err
	}

	if err := h.db.Delete(&models.Product{}, "id = ?", product.ID).Error; err != nil {
		return err
	}

	return c.JSON(fiber.Map{"success": true, "message": "product deleted"})
}

func (h *ProductHandler) ownedProduct(c *fiber.Ctx) (middleware.Identity, *models.Product, error) {
	identity, ok := middleware.CurrentIdentity(c)
	if !ok {
		return identity, nil, fiber.NewError(fiber.StatusUnauthorized, "unauthorized")
	}

	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return identity, nil, fiber.NewError(fiber.StatusBadRequest, "invalid id")
	}

	var product models.Product
	if err := h.db.First(&product, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return identity, nil, fiber.NewError(fiber.StatusNotFound, "product not found")
		}
		return identity, nil, err
	}

	if product.FloristID != identity.UserID {
		return identity, nil, fiber.NewError(fiber.StatusForbidden, "not the product owner")
	}

	return identity, &product, nil
}

func (h *ProductHandler) resolveCategory(req productRequest) (*models.Category, error) {
	if name := strings.TrimSpace(req.NewCategoryName); name != "" {
		var category models.Category
		err := h.db.Where("LOWER(name) = ?", strings.ToLower(name)).
			Attrs(models.Category{Name: name}).
			FirstOrCreate(&category).Error
		if err != nil {
			return nil, err
		}
		return &category, nil
	}

	id, err := uuid.Parse(req.CategoryID)
	if err != nil {
		return nil, fiber.NewError(fiber.StatusBadRequest, "category_id or new_category_name must be provided")
	}

	var category models.Category
	if err := h.db.First(&category, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fiber.NewError(fiber.StatusNotFound, "category not found")
		}
		return nil, err
	}
	return &category, nil
}

func (h *ProductHandler) reviewStats(productID uuid.UUID) (float64, int64, error) {
	var count int64
	if err := h.db.Model(&models.Review{}).
		Where("product_id = ?", productID).
		Count(&count).Error; err != nil {
		return 0, 0, err
	}
	if count == 0 {
		return 0, 0, nil
	}

	var rating float64
	if err := h.db.Model(&models.Review{}).
		Where("product_id = ?", productID).
		Select("COALESCE(AVG(rating), 0)").
		Scan(&rating).Error; err != nil {
		return 0, 0, err
	}
	return rating, count, nil
}
