package services

import (
	"context"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/KAVIN131005/Florist-Backend/internal/apperr"
)

func TestCreateFromCartNoCart(t *testing.T) {
	db, mock := newMockDB(t)
	svc := NewOrderService(db)

	mock.ExpectBegin()
	mock.ExpectQuery(`SELECT (.+) FROM "carts" WHERE user_id = \$1`).
		WillReturnRows(sqlmock.NewRows([]string{"id", "user_id"}))
	mock.ExpectRollback()

	_, err := svc.CreateFromCart(context.Background(), uuid.New(), "12 Rose Street")
	require.Error(t, err)
	assert.True(t, apperr.IsKind(err, apperr.KindValidation))

	// Rolled back with no INSERT: an empty cart never produces an order row.
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestCreateFromCartNoItems(t *testing.T) {
	db, mock := newMockDB(t)
	svc := NewOrderService(db)

	userID := uuid.New()
	cartID := uuid.New()

	mock.ExpectBegin()
	mock.ExpectQuery(`SELECT (.+) FROM "carts" WHERE user_id = \$1`).
		WillReturnRows(sqlmock.NewRows([]string{"id", "user_id"}).
			AddRow(cartID.String(), userID.String()))
	mock.ExpectQuery(`SELECT (.+) FROM "cart_items"`).
		WillReturnRows(sqlmock.NewRows([]string{"id", "cart_id", "product_id", "grams"}))
	mock.ExpectRollback()

	_, err := svc.CreateFromCart(context.Background(), userID, "12 Rose Street")
	require.Error(t, err)
	assert.True(t, apperr.IsKind(err, apperr.KindValidation))
	assert.NoError(t, mock.ExpectationsWereMet())
}
