package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCanTransitionToAllowsLifecycleEdges(t *testing.T) {
	allowed := []struct {
		from OrderStatus
		to   OrderStatus
	}{
		{OrderStatusPending, OrderStatusPreparing},
		{OrderStatusPending, OrderStatusCancelled},
		{OrderStatusPreparing, OrderStatusReady},
		{OrderStatusPreparing, OrderStatusCancelled},
		{OrderStatusReady, OrderStatusServed},
		{OrderStatusReady, OrderStatusCancelled},
		{OrderStatusServed, OrderStatusCompleted},
		{OrderStatusServed, OrderStatusCancelled},
		{OrderStatusCompleted, OrderStatusCancelled},
	}
	for _, tc := range allowed {
		assert.True(t, tc.from.CanTransitionTo(tc.to), "%s -> %s should be allowed", tc.from, tc.to)
	}
}

func TestCanTransitionToRejectsSkipsAndReversals(t *testing.T) {
	rejected := []struct {
		from OrderStatus
		to   OrderStatus
	}{
		{OrderStatusPending, OrderStatusReady},
		{OrderStatusPending, OrderStatusServed},
		{OrderStatusPending, OrderStatusCompleted},
		{OrderStatusPreparing, OrderStatusPending},
		{OrderStatusPreparing, OrderStatusServed},
		{OrderStatusReady, OrderStatusPreparing},
		{OrderStatusReady, OrderStatusCompleted},
		{OrderStatusServed, OrderStatusReady},
		{OrderStatusCompleted, OrderStatusPending},
		{OrderStatusCompleted, OrderStatusCompleted},
		{OrderStatusCancelled, OrderStatusPending},
		{OrderStatusCancelled, OrderStatusCancelled},
	}
	for _, tc := range rejected {
		assert.False(t, tc.from.CanTransitionTo(tc.to), "%s -> %s should be rejected", tc.from, tc.to)
	}
}

func TestCancelledIsTerminal(t *testing.T) {
	for _, target := range []OrderStatus{
		OrderStatusPending, OrderStatusPreparing, OrderStatusReady,
		OrderStatusServed, OrderStatusCompleted, OrderStatusCancelled,
	} {
		assert.False(t, OrderStatusCancelled.CanTransitionTo(target))
	}
}

func TestValidOrderStatus(t *testing.T) {
	assert.True(t, ValidOrderStatus(OrderStatusPending))
	assert.True(t, ValidOrderStatus(OrderStatusCancelled))
	assert.False(t, ValidOrderStatus("DRAFT"))
	assert.False(t, ValidOrderStatus(""))
}

func TestValidOrderType(t *testing.T) {
	assert.True(t, ValidOrderType(OrderTypeDineIn))
	assert.True(t, ValidOrderType(OrderTypeTakeaway))
	assert.True(t, ValidOrderType(OrderTypeDelivery))
	assert.False(t, ValidOrderType("dine_in"))
	assert.False(t, ValidOrderType(""))
}

func TestSessionTypeLabel(t *testing.T) {
	assert.Equal(t, "Dine In", (&DiningSession{Type: SessionTypeTable}).TypeLabel())
	assert.Equal(t, "Takeaway", (&DiningSession{Type: SessionTypeTakeaway}).TypeLabel())
	assert.Equal(t, "Delivery", (&DiningSession{Type: SessionTypeDelivery}).TypeLabel())
}
