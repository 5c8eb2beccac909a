package services

import (
	"context"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"

	"github.com/KAVIN131005/Florist-Backend/internal/apperr"
	"github.com/KAVIN131005/Florist-Backend/internal/config"
	"github.com/KAVIN131005/Florist-Backend/internal/gateway"
)

func newMockDB(t *testing.T) (*gorm.DB, sqlmock.Sqlmock) {
	t.Helper()

	sqlDB, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { sqlDB.Close() })

	db, err := gorm.Open(postgres.New(postgres.Config{
		Conn: sqlDB,
	}), &gorm.Config{
		DisableAutomaticPing:   true,
		SkipDefaultTransaction: true,
	})
	require.NoError(t, err)
	return db, mock
}

func newPaymentService(db *gorm.DB) *PaymentService {
	cfg := &config.Config{
		RazorpayKeySecret: "gw-secret",
		SplitRatio:        dec("0.80"),
	}
	return NewPaymentService(db, nil, cfg)
}

func paymentColumns() []string {
	return []string{
		"id", "order_id", "gateway_order_id", "gateway_payment_id",
		"amount", "florist_share", "admin_share", "status",
	}
}

func TestVerifyAndConfirmRejectsBadSignature(t *testing.T) {
	db, mock := newMockDB(t)
	svc := newPaymentService(db)

	_, err := svc.VerifyAndConfirm(context.Background(),
		uuid.New(), "order_gw_1", "pay_gw_1", "forged")
	require.Error(t, err)
	assert.True(t, apperr.IsKind(err, apperr.KindSignature))
	assert.NoError(t, mock.ExpectationsWereMet(), "no database access before signature check passes")
}

func TestVerifyAndConfirmAlreadySettledIsNoOp(t *testing.T) {
	db, mock := newMockDB(t)
	svc := newPaymentService(db)

	orderID := uuid.New()
	sig := gateway.SignPayload("gw-secret", "order_gw_1", "pay_gw_1")

	mock.ExpectBegin()
	mock.ExpectQuery(`SELECT (.+) FROM "payments" WHERE order_id = \$1(.+)FOR UPDATE`).
		WillReturnRows(sqlmock.NewRows(paymentColumns()).
			AddRow(uuid.New().String(), orderID.String(), "order_gw_1", "pay_gw_1",
				"150.00", "120.00", "30.00", "SUCCESS"))
	mock.ExpectCommit()

	result, err := svc.VerifyAndConfirm(context.Background(),
		orderID, "order_gw_1", "pay_gw_1", sig)
	require.NoError(t, err)
	assert.True(t, result.AlreadySettled)
	assert.True(t, result.Payment.FloristShare.Equal(dec("120.00")))
	assert.True(t, result.Payment.AdminShare.Equal(dec("30.00")))

	// The transaction committed without a single UPDATE: redelivered
	// confirmations never credit wallets again.
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestVerifyAndConfirmMissingPaymentRow(t *testing.T) {
	db, mock := newMockDB(t)
	svc := newPaymentService(db)

	orderID := uuid.New()
	sig := gateway.SignPayload("gw-secret", "order_gw_1", "pay_gw_1")

	mock.ExpectBegin()
	mock.ExpectQuery(`SELECT (.+) FROM "payments" WHERE order_id = \$1(.+)FOR UPDATE`).
		WillReturnRows(sqlmock.NewRows(paymentColumns()))
	mock.ExpectRollback()

	_, err := svc.VerifyAndConfirm(context.Background(),
		orderID, "order_gw_1", "pay_gw_1", sig)
	require.Error(t, err)
	assert.True(t, apperr.IsKind(err, apperr.KindNotFound))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestVerifyAndConfirmRejectsMismatchedGatewayOrder(t *testing.T) {
	db, mock := newMockDB(t)
	svc := newPaymentService(db)

	orderID := uuid.New()
	sig := gateway.SignPayload("gw-secret", "order_gw_other", "pay_gw_1")

	mock.ExpectBegin()
	mock.ExpectQuery(`SELECT (.+) FROM "payments" WHERE order_id = \$1(.+)FOR UPDATE`).
		WillReturnRows(sqlmock.NewRows(paymentColumns()).
			AddRow(uuid.New().String(), orderID.String(), "order_gw_1", "",
				"150.00", "0", "0", "CREATED"))
	mock.ExpectRollback()

	_, err := svc.VerifyAndConfirm(context.Background(),
		orderID, "order_gw_other", "pay_gw_1", sig)
	require.Error(t, err)
	assert.True(t, apperr.IsKind(err, apperr.KindValidation))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestVerifyAndConfirmSettlesOnce(t *testing.T) {
	db, mock := newMockDB(t)
	svc := newPaymentService(db)

	orderID := uuid.New()
	paymentID := uuid.New()
	floristID := uuid.New()
	adminID := uuid.New()
	sig := gateway.SignPayload("gw-secret", "order_gw_1", "pay_gw_1")

	mock.ExpectBegin()
	mock.ExpectQuery(`SELECT (.+) FROM "payments" WHERE order_id = \$1(.+)FOR UPDATE`).
		WillReturnRows(sqlmock.NewRows(paymentColumns()).
			AddRow(paymentID.String(), orderID.String(), "order_gw_1", "",
				"150.00", "0", "0", "CREATED"))
	mock.ExpectQuery(`SELECT (.+) FROM "orders" WHERE id = \$1`).
		WillReturnRows(sqlmock.NewRows([]string{"id", "user_id", "status", "total_amount"}).
			AddRow(orderID.String(), uuid.New().String(), "CREATED", "150.00"))
	mock.ExpectQuery(`SELECT (.+) FROM "order_items"`).
		WillReturnRows(sqlmock.NewRows([]string{"id", "order_id", "florist_id", "grams", "subtotal"}).
			AddRow(uuid.New().String(), orderID.String(), floristID.String(), 300, "150.00"))
	mock.ExpectQuery(`SELECT (.+) FROM "users" WHERE \$1 = ANY\(roles\)`).
		WillReturnRows(sqlmock.NewRows([]string{"id", "email", "roles"}).
			AddRow(adminID.String(), "admin@florist.local", "{ADMIN}"))
	mock.ExpectExec(`UPDATE "payments" SET`).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectExec(`UPDATE "orders" SET`).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectExec(`UPDATE "wallets" SET`).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectExec(`UPDATE "wallets" SET`).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectQuery(`SELECT (.+) FROM "payments" WHERE id = \$1`).
		WillReturnRows(sqlmock.NewRows(paymentColumns()).
			AddRow(paymentID.String(), orderID.String(), "order_gw_1", "pay_gw_1",
				"150.00", "120.00", "30.00", "SUCCESS"))
	mock.ExpectCommit()

	result, err := svc.VerifyAndConfirm(context.Background(),
		orderID, "order_gw_1", "pay_gw_1", sig)
	require.NoError(t, err)
	assert.False(t, result.AlreadySettled)
	assert.True(t, result.Payment.FloristShare.Equal(dec("120.00")))
	assert.True(t, result.Payment.AdminShare.Equal(dec("30.00")))

	// Exactly one florist credit and one admin credit were issued.
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestVerifyAndConfirmLosingRacerReturnsStoredResult(t *testing.T) {
	db, mock := newMockDB(t)
	svc := newPaymentService(db)

	orderID := uuid.New()
	paymentID := uuid.New()
	sig := gateway.SignPayload("gw-secret", "order_gw_1", "pay_gw_1")

	mock.ExpectBegin()
	mock.ExpectQuery(`SELECT (.+) FROM "payments" WHERE order_id = \$1(.+)FOR UPDATE`).
		WillReturnRows(sqlmock.NewRows(paymentColumns()).
			AddRow(paymentID.String(), orderID.String(), "order_gw_1", "",
				"150.00", "0", "0", "CREATED"))
	mock.ExpectQuery(`SELECT (.+) FROM "orders" WHERE id = \$1`).
		WillReturnRows(sqlmock.NewRows([]string{"id", "user_id", "status", "total_amount"}).
			AddRow(orderID.String(), uuid.New().String(), "CREATED", "150.00"))
	mock.ExpectQuery(`SELECT (.+) FROM "order_items"`).
		WillReturnRows(sqlmock.NewRows([]string{"id", "order_id", "florist_id", "grams", "subtotal"}).
			AddRow(uuid.New().String(), orderID.String(), uuid.New().String(), 300, "150.00"))
	mock.ExpectQuery(`SELECT (.+) FROM "users" WHERE \$1 = ANY\(roles\)`).
		WillReturnRows(sqlmock.NewRows([]string{"id", "email", "roles"}).
			AddRow(uuid.New().String(), "admin@florist.local", "{ADMIN}"))
	// A concurrent confirmation won the compare-and-set: zero rows move.
	mock.ExpectExec(`UPDATE "payments" SET`).
		WillReturnResult(sqlmock.NewResult(0, 0))
	mock.ExpectQuery(`SELECT (.+) FROM "payments" WHERE id = \$1`).
		WillReturnRows(sqlmock.NewRows(paymentColumns()).
			AddRow(paymentID.String(), orderID.String(), "order_gw_1", "pay_gw_1",
				"150.00", "120.00", "30.00", "SUCCESS"))
	mock.ExpectCommit()

	result, err := svc.VerifyAndConfirm(context.Background(),
		orderID, "order_gw_1", "pay_gw_1", sig)
	require.NoError(t, err)
	assert.True(t, result.AlreadySettled)
	assert.True(t, result.Payment.FloristShare.Equal(dec("120.00")))

	// The loser committed without touching orders or wallets.
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestVerifyAndConfirmNoAdminAborts(t *testing.T) {
	db, mock := newMockDB(t)
	svc := newPaymentService(db)

	orderID := uuid.New()
	sig := gateway.SignPayload("gw-secret", "order_gw_1", "pay_gw_1")

	mock.ExpectBegin()
	mock.ExpectQuery(`SELECT (.+) FROM "payments" WHERE order_id = \$1(.+)FOR UPDATE`).
		WillReturnRows(sqlmock.NewRows(paymentColumns()).
			AddRow(uuid.New().String(), orderID.String(), "order_gw_1", "",
				"150.00", "0", "0", "CREATED"))
	mock.ExpectQuery(`SELECT (.+) FROM "orders" WHERE id = \$1`).
		WillReturnRows(sqlmock.NewRows([]string{"id", "user_id", "status", "total_amount"}).
			AddRow(orderID.String(), uuid.New().String(), "CREATED", "150.00"))
	mock.ExpectQuery(`SELECT (.+) FROM "order_items"`).
		WillReturnRows(sqlmock.NewRows([]string{"id", "order_id", "florist_id", "grams", "subtotal"}))
	mock.ExpectQuery(`SELECT (.+) FROM "users" WHERE \$1 = ANY\(roles\)`).
		WillReturnRows(sqlmock.NewRows([]string{"id", "email", "roles"}))
	mock.ExpectRollback()

	_, err := svc.VerifyAndConfirm(context.Background(),
		orderID, "order_gw_1", "pay_gw_1", sig)
	require.Error(t, err)
	assert.True(t, apperr.IsKind(err, apperr.KindConfiguration))
	assert.NoError(t, mock.ExpectationsWereMet())
}
