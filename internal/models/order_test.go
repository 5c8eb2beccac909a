package models

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/KAVIN131005/Florist-Backend/internal/apperr"
)

func TestCanTransition(t *testing.T) {
	allowed := map[OrderStatus][]OrderStatus{
		OrderStatusCreated: {OrderStatusPaid, OrderStatusCancelled},
		OrderStatusPaid:    {OrderStatusShipped, OrderStatusCancelled},
		OrderStatusShipped: {OrderStatusDelivered},
	}

	all := []OrderStatus{
		OrderStatusCreated, OrderStatusPaid, OrderStatusShipped,
		OrderStatusDelivered, OrderStatusCancelled,
	}

	for _, from := range all {
		for _, to := range all {
			want := false
			for _, next := range allowed[from] {
				if next == to {
					want = true
				}
			}
			assert.Equal(t, want, CanTransition(from, to), "%s -> %s", from, to)
		}
	}
}

func TestTerminalStatesHaveNoExits(t *testing.T) {
	all := []OrderStatus{
		OrderStatusCreated, OrderStatusPaid, OrderStatusShipped,
		OrderStatusDelivered, OrderStatusCancelled,
	}
	for _, to := range all {
		assert.False(t, CanTransition(OrderStatusDelivered, to), "DELIVERED -> %s", to)
		assert.False(t, CanTransition(OrderStatusCancelled, to), "CANCELLED -> %s", to)
	}
}

func TestTransitionTo(t *testing.T) {
	order := &Order{Status: OrderStatusCreated}

	require.NoError(t, order.TransitionTo(OrderStatusPaid))
	assert.Equal(t, OrderStatusPaid, order.Status)

	require.NoError(t, order.TransitionTo(OrderStatusShipped))
	require.NoError(t, order.TransitionTo(OrderStatusDelivered))
	assert.Equal(t, OrderStatusDelivered, order.Status)
}

func TestTransitionToRejectsIllegalMove(t *testing.T) {
	order := &Order{Status: OrderStatusCreated}

	err := order.TransitionTo(OrderStatusDelivered)
	require.Error(t, err)
	assert.True(t, apperr.IsKind(err, apperr.KindValidation))
	assert.Equal(t, OrderStatusCreated, order.Status, "status must not change on rejection")
}

func TestTransitionToRejectsUnknownStatus(t *testing.T) {
	order := &Order{Status: OrderStatusCreated}

	err := order.TransitionTo(OrderStatus("REFUNDED"))
	require.Error(t, err)
	assert.True(t, apperr.IsKind(err, apperr.KindValidation))
}

func TestValidOrderStatus(t *testing.T) {
	assert.True(t, ValidOrderStatus(OrderStatusCreated))
	assert.True(t, ValidOrderStatus(OrderStatusCancelled))
	assert.False(t, ValidOrderStatus(OrderStatus("REFUNDED")))
	assert.False(t, ValidOrderStatus(OrderStatus("")))
}

func TestSumSubtotals(t *testing.T) {
	order := &Order{
		TotalAmount: decimal.RequireFromString("175.49"),
		Items: []OrderItem{
			{Subtotal: decimal.RequireFromString("100.00")},
			{Subtotal: decimal.RequireFromString("50.50")},
			{Subtotal: decimal.RequireFromString("24.99")},
		},
	}

	assert.True(t, order.SumSubtotals().Equal(order.TotalAmount))
}
