package services

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"github.com/KAVIN131005/Florist-Backend/internal/apperr"
	"github.com/KAVIN131005/Florist-Backend/internal/models"
)

// WalletService manages credit-only balances. Wallets are provisioned at
// registration and florist approval; settlement assumes they exist.
type WalletService struct {
	db *gorm.DB
}

func NewWalletService(db *gorm.DB) *WalletService {
	return &WalletService{db: db}
}

// Ensure creates a zero-balance wallet for the user if none exists.
func (s *WalletService) Ensure(ctx context.Context, userID uuid.UUID) error {
	wallet := models.Wallet{OwnerID: userID, Balance: decimal.Zero}
	return s.db.WithContext(ctx).
		Where(models.Wallet{OwnerID: userID}).
		FirstOrCreate(&wallet).Error
}

// Credit adds amount to the user's wallet balance.
func (s *WalletService) Credit(ctx context.Context, userID uuid.UUID, amount decimal.Decimal) error {
	return creditWallet(s.db.WithContext(ctx), userID, amount)
}

// Balance returns the user's current wallet balance.
func (s *WalletService) Balance(ctx context.Context, userID uuid.UUID) (decimal.Decimal, error) {
	var wallet models.Wallet
	if err := s.db.WithContext(ctx).Where("owner_id = ?", userID).First(&wallet).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return decimal.Zero, apperr.NewNotFound("wallet not found for user %s", userID)
		}
		return decimal.Zero, err
	}
	return wallet.Balance, nil
}

// creditWallet increments a wallet balance in place. It runs against whatever
// handle it is given, so settlement can call it inside its own transaction.
func creditWallet(tx *gorm.DB, userID uuid.UUID, amount decimal.Decimal) error {
	if amount.LessThanOrEqual(decimal.Zero) {
		return apperr.NewValidation("credit amount must be positive, got %s", amount)
	}

	res := tx.Model(&models.Wallet{}).
		Where("owner_id = ?", userID).
		Update("balance", gorm.Expr("balance + ?", amount))
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return apperr.NewNotFound("wallet not found for user %s", userID)
	}
	return nil
}
