package model

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestOrderStatus_CanTransitionTo(t *testing.T) {
	tests := []struct {
		from     OrderStatus
		to       OrderStatus
		expected bool
	}{
		{OrderStatusPending, OrderStatusConfirmed, true},
		{OrderStatusPending, OrderStatusCancelled, true},
		{OrderStatusPending, OrderStatusPreparing, false},
		{OrderStatusConfirmed, OrderStatusPreparing, true},
		{OrderStatusConfirmed, OrderStatusCancelled, true},
		{OrderStatusPreparing, OrderStatusReady, true},
		{OrderStatusPreparing, OrderStatusCancelled, false},
		{OrderStatusReady, OrderStatusDelivered, true},
		{OrderStatusReady, OrderStatusPending, false},
		{OrderStatusDelivered, OrderStatusCancelled, false},
		{OrderStatusCancelled, OrderStatusPending, false},
	}

	for _, tt := range tests {
		t.Run(string(tt.from)+"->"+string(tt.to), func(t *testing.T) {
			assert.Equal(t, tt.expected, tt.from.CanTransitionTo(tt.to))
		})
	}
}

func TestOrderStatus_TerminalAndCancellable(t *testing.T) {
	for _, s := range []OrderStatus{OrderStatusDelivered, OrderStatusCancelled} {
		assert.True(t, s.Terminal(), s)
		assert.False(t, s.Cancellable(), s)
	}
	for _, s := range []OrderStatus{OrderStatusPending, OrderStatusConfirmed} {
		assert.False(t, s.Terminal(), s)
		assert.True(t, s.Cancellable(), s)
	}
	assert.False(t, OrderStatusPreparing.Cancellable())
	assert.False(t, OrderStatus("shipped").Valid())
}

func TestRole_Valid(t *testing.T) {
	assert.True(t, RoleCustomer.Valid())
	assert.True(t, RoleRestaurantOwner.Valid())
	assert.True(t, RoleAdmin.Valid())
	assert.False(t, Role("chef").Valid())
	assert.False(t, Role("").Valid())
}
