package services

import (
	"context"
	"errors"

	"github.com/lib/pq"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"github.com/KAVIN131005/Florist-Backend/internal/config"
	"github.com/KAVIN131005/Florist-Backend/internal/models"
	"github.com/KAVIN131005/Florist-Backend/internal/utils"
)

// EnsureAdmin seeds the single platform admin account and its wallet on
// startup if they do not already exist. Settlement requires exactly one
// admin; this is where that invariant is established.
func EnsureAdmin(ctx context.Context, db *gorm.DB, cfg *config.Config) error {
	var existing models.User
	err := db.WithContext(ctx).Where("email = ?", cfg.AdminEmail).First(&existing).Error
	if err == nil {
		return nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return err
	}

	passwordHash, err := utils.HashPassword(cfg.AdminPassword)
	if err != nil {
		return err
	}

	return db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		admin := models.User{
			Name:         cfg.AdminName,
			Email:        cfg.AdminEmail,
			PasswordHash: passwordHash,
			Roles:        pq.StringArray{models.RoleAdmin},
		}
		if err := tx.Create(&admin).Error; err != nil {
			return err
		}

		wallet := models.Wallet{OwnerID: admin.ID, Balance: decimal.Zero}
		return tx.Create(&wallet).Error
	})
}
