package services

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/KAVIN131005/Florist-Backend/internal/apperr"
	"github.com/KAVIN131005/Florist-Backend/internal/config"
	"github.com/KAVIN131005/Florist-Backend/internal/gateway"
	"github.com/KAVIN131005/Florist-Backend/internal/models"
)

// PaymentService reconciles orders against the external payment gateway and
// settles proceeds into wallets.
type PaymentService struct {
	db      *gorm.DB
	gateway gateway.Client
	cfg     *config.Config
}

func NewPaymentService(db *gorm.DB, gw gateway.Client, cfg *config.Config) *PaymentService {
	return &PaymentService{db: db, gateway: gw, cfg: cfg}
}

// CheckoutOrder is what a client needs to open the gateway's checkout.
type CheckoutOrder struct {
	GatewayOrderID string `json:"gateway_order_id"`
	KeyID          string `json:"key_id"`
	AmountMinor    int64  `json:"amount"`
	Currency       string `json:"currency"`
}

// SettlementResult reports the payment state after a confirmation attempt.
// AlreadySettled is set when a previous confirmation won; the caller treats
// both outcomes as success.
type SettlementResult struct {
	Payment        *models.Payment
	AlreadySettled bool
}

// CreateGatewayOrder opens a remote gateway order for the order's total and
// records it on an idempotently-upserted payment row. Retrying after a
// gateway failure reuses the same payment record rather than duplicating it.
// Only the order's owner may start a checkout.
func (s *PaymentService) CreateGatewayOrder(ctx context.Context, orderID, requesterID uuid.UUID) (*CheckoutOrder, error) {
	var order models.Order
	if err := s.db.WithContext(ctx).First(&order, "id = ?", orderID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperr.NewNotFound("order %s not found", orderID)
		}
		return nil, err
	}
	if order.UserID != requesterID {
		return nil, apperr.NewAccessDenied("order belongs to another user")
	}

	amountMinor := gateway.MinorUnits(order.TotalAmount)

	remote, err := s.gateway.CreateOrder(ctx, gateway.CreateOrderRequest{
		AmountMinor: amountMinor,
		Currency:    "INR",
		Receipt:     fmt.Sprintf("order_rcpt_%s", orderID),
	})
	if err != nil {
		return nil, err
	}

	err = s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var payment models.Payment
		err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).
			Where("order_id = ?", order.ID).
			First(&payment).Error
		switch {
		case err == nil:
			if payment.Status == models.PaymentStatusSuccess {
				return apperr.NewAlreadySettled("payment for order %s already settled", orderID)
			}
			return tx.Model(&models.Payment{}).
				Where("id = ?", payment.ID).
				Update("gateway_order_id", remote.OrderID).Error
		case errors.Is(err, gorm.ErrRecordNotFound):
			payment = models.Payment{
				OrderID:        order.ID,
				GatewayOrderID: remote.OrderID,
				Amount:         order.TotalAmount,
				Status:         models.PaymentStatusCreated,
			}
			return tx.Create(&payment).Error
		default:
			return err
		}
	})
	if err != nil {
		return nil, err
	}

	return &CheckoutOrder{
		GatewayOrderID: remote.OrderID,
		KeyID:          s.gateway.KeyID(),
		AmountMinor:    amountMinor,
		Currency:       "INR",
	}, nil
}

// VerifyAndConfirm is the settlement entry point. It authenticates the
// gateway confirmation, then inside one transaction, serialized per order by
// a row lock on the payment, marks the payment SUCCESS exactly once, moves
// the order to PAID and credits florist and admin wallets. A confirmation for
// an already-settled payment is a no-op returning the stored result, never a
// second credit.
func (s *PaymentService) VerifyAndConfirm(ctx context.Context, orderID uuid.UUID, gatewayOrderID, gatewayPaymentID, signature string) (*SettlementResult, error) {
	if !gateway.VerifySignature(s.cfg.RazorpayKeySecret, gatewayOrderID, gatewayPaymentID, signature) {
		return nil, apperr.NewSignature("gateway signature verification failed")
	}

	var result SettlementResult

	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var payment models.Payment
		if err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).
			Where("order_id = ?", orderID).
			First(&payment).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return apperr.NewNotFound("no payment record for order %s", orderID)
			}
			return err
		}

		if payment.Status == models.PaymentStatusSuccess {
			result = SettlementResult{Payment: &payment, AlreadySettled: true}
			return nil
		}

		if payment.GatewayOrderID != gatewayOrderID {
			return apperr.NewValidation("gateway order id does not match order %s", orderID)
		}

		var order models.Order
		if err := tx.Preload("Items").First(&order, "id = ?", orderID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return apperr.NewNotFound("order %s not found", orderID)
			}
			return err
		}

		admin, err := resolveAdmin(tx)
		if err != nil {
			return err
		}

		split := ComputeSplit(order.Items, order.TotalAmount, s.cfg.SplitRatio)

		// Compare-and-set on status: only one concurrent confirmation can
		// move CREATED to SUCCESS. The row lock above already serializes
		// writers, so zero rows affected means a racer beat us to it.
		now := time.Now()
		res := tx.Model(&models.Payment{}).
			Where("id = ? AND status = ?", payment.ID, models.PaymentStatusCreated).
			Updates(map[string]any{
				"status":             models.PaymentStatusSuccess,
				"gateway_payment_id": gatewayPaymentID,
				"gateway_signature":  signature,
				"paid_at":            &now,
				"florist_share":      split.FloristTotal,
				"admin_share":        split.AdminShare,
			})
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			if err := tx.First(&payment, "id = ?", payment.ID).Error; err != nil {
				return err
			}
			result = SettlementResult{Payment: &payment, AlreadySettled: true}
			return nil
		}

		if err := order.TransitionTo(models.OrderStatusPaid); err != nil {
			return err
		}
		if err := tx.Model(&models.Order{}).
			Where("id = ?", order.ID).
			Update("status", models.OrderStatusPaid).Error; err != nil {
			return err
		}

		for floristID, share := range split.PerFlorist {
			if err := creditWallet(tx, floristID, share); err != nil {
				return err
			}
		}
		if split.AdminShare.GreaterThan(decimal.Zero) {
			if err := creditWallet(tx, admin.ID, split.AdminShare); err != nil {
				return err
			}
		}

		if err := tx.First(&payment, "id = ?", payment.ID).Error; err != nil {
			return err
		}
		result = SettlementResult{Payment: &payment}
		return nil
	})
	if err != nil {
		return nil, err
	}

	return &result, nil
}

// GetByOrder returns the payment row for an order, if any.
func (s *PaymentService) GetByOrder(ctx context.Context, orderID uuid.UUID) (*models.Payment, error) {
	var payment models.Payment
	if err := s.db.WithContext(ctx).Where("order_id = ?", orderID).First(&payment).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperr.NewNotFound("no payment record for order %s", orderID)
		}
		return nil, err
	}
	return &payment, nil
}

// resolveAdmin finds the single platform admin account. Zero or multiple
// admins is a deployment defect that aborts settlement.
func resolveAdmin(tx *gorm.DB) (*models.User, error) {
	var admins []models.User
	if err := tx.Where("? = ANY(roles)", models.RoleAdmin).Limit(2).Find(&admins).Error; err != nil {
		return nil, err
	}
	switch len(admins) {
	case 1:
		return &admins[0], nil
	case 0:
		return nil, apperr.NewConfiguration("no platform admin account exists")
	default:
		return nil, apperr.NewConfiguration("multiple platform admin accounts exist")
	}
}
