package services

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/KAVIN131005/Florist-Backend/internal/apperr"
	"github.com/KAVIN131005/Florist-Backend/internal/models"
)

// FloristService handles seller applications. Approval grants the FLORIST
// role and provisions the applicant's wallet so later settlements can credit
// it unconditionally.
type FloristService struct {
	db      *gorm.DB
	wallets *WalletService
}

func NewFloristService(db *gorm.DB, wallets *WalletService) *FloristService {
	return &FloristService{db: db, wallets: wallets}
}

// Apply files a new application for the given user.
func (s *FloristService) Apply(ctx context.Context, applicantID uuid.UUID, shopName, description, gstNumber string) (*models.FloristApplication, error) {
	if shopName == "" {
		return nil, apperr.NewValidation("shop name is required")
	}

	app := models.FloristApplication{
		ApplicantID: applicantID,
		ShopName:    shopName,
		Description: description,
		GSTNumber:   gstNumber,
		Status:      models.ApplicationStatusPending,
	}
	if err := s.db.WithContext(ctx).Create(&app).Error; err != nil {
		return nil, err
	}
	return &app, nil
}

// Pending lists applications awaiting a decision.
func (s *FloristService) Pending(ctx context.Context) ([]models.FloristApplication, error) {
	return s.listByStatus(ctx, models.ApplicationStatusPending)
}

// All lists every application regardless of state.
func (s *FloristService) All(ctx context.Context) ([]models.FloristApplication, error) {
	var apps []models.FloristApplication
	if err := s.db.WithContext(ctx).Preload("Applicant").
		Order("created_at desc").
		Find(&apps).Error; err != nil {
		return nil, err
	}
	return apps, nil
}

// Decide approves or rejects an application. Approval grants the applicant
// the FLORIST role and ensures their wallet exists, in one transaction.
func (s *FloristService) Decide(ctx context.Context, applicationID uuid.UUID, approve bool) error {
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var app models.FloristApplication
		if err := tx.Preload("Applicant").
			First(&app, "id = ?", applicationID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return apperr.NewNotFound("florist application %s not found", applicationID)
			}
			return err
		}
		if app.Status != models.ApplicationStatusPending {
			return apperr.NewValidation("application already decided")
		}

		status := models.ApplicationStatusRejected
		if approve {
			status = models.ApplicationStatusApproved
		}

		now := time.Now()
		if err := tx.Model(&models.FloristApplication{}).
			Where("id = ?", app.ID).
			Updates(map[string]any{"status": status, "decided_at": &now}).Error; err != nil {
			return err
		}

		if !approve {
			return nil
		}

		granted := app.Applicant.GrantRole(models.RoleFlorist)
		if err := tx.Model(&models.User{}).
			Where("id = ?", app.ApplicantID).
			Update("roles", granted).Error; err != nil {
			return err
		}

		wallet := models.Wallet{OwnerID: app.ApplicantID}
		return tx.Where(models.Wallet{OwnerID: app.ApplicantID}).
			FirstOrCreate(&wallet).Error
	})
}

func (s *FloristService) listByStatus(ctx context.Context, status models.ApplicationStatus) ([]models.FloristApplication, error) {
	var apps []models.FloristApplication
	if err := s.db.WithContext(ctx).Preload("Applicant").
		Where("status = ?", status).
		Order("created_at desc").
		Find(&apps).Error; err != nil {
		return nil, err
	}
	return apps, nil
}
