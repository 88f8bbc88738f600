package statemachine

import (
	"testing"

	"food-ordering-api/models"

	"github.com/stretchr/testify/assert"
)

func TestNextStatus(t *testing.T) {
	tests := []struct {
		name    string
		current string
		want    models.OrderStatus
		ok      bool
	}{
		{"pending advances to accepted", "pending", models.StatusAccepted, true},
		{"accepted advances to preparing", "accepted", models.StatusPreparing, true},
		{"confirmed synonym advances to preparing", "confirmed", models.StatusPreparing, true},
		{"preparing advances to ready", "preparing", models.StatusReady, true},
		{"ready advances to out_for_delivery", "ready", models.StatusOutForDelivery, true},
		{"ready_for_pickup synonym advances to out_for_delivery", "ready_for_pickup", models.StatusOutForDelivery, true},
		{"out_for_delivery advances to delivered", "out_for_delivery", models.StatusDelivered, true},
		{"delivered is terminal", "delivered", "", false},
		{"cancelled is terminal", "cancelled", "", false},
		{"unknown value has no transition", "unknown_value", "", false},
		{"uppercase input is accepted", "PENDING", models.StatusAccepted, true},
		{"uppercase synonym is accepted", "READY_FOR_PICKUP", models.StatusOutForDelivery, true},
		{"placed synonym maps to pending", "PLACED", models.StatusAccepted, true},
		{"surrounding whitespace is tolerated", "  pending ", models.StatusAccepted, true},
		{"empty string has no transition", "", "", false},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			got, ok := NextStatus(tc.current)
			assert.Equal(t, tc.ok, ok)
			assert.Equal(t, tc.want, got)
		})
	}
}

func TestNormalize(t *testing.T) {
	tests := []struct {
		in   string
		want models.OrderStatus
		ok   bool
	}{
		{"confirmed", models.StatusAccepted, true},
		{"CONFIRMED", models.StatusAccepted, true},
		{"ready_for_pickup", models.StatusReady, true},
		{"canceled", models.StatusCancelled, true},
		{"DELIVERED", models.StatusDelivered, true},
		{"bogus", "", false},
	}
	for _, tc := range tests {
		got, ok := Normalize(tc.in)
		assert.Equal(t, tc.ok, ok, tc.in)
		assert.Equal(t, tc.want, got, tc.in)
	}
}

func TestCanTransition(t *testing.T) {
	// The forward spine belongs to the right actors
	assert.NoError(t, CanTransition(models.StatusPending, models.StatusAccepted, "restaurant"))
	assert.NoError(t, CanTransition(models.StatusReady, models.StatusOutForDelivery, "driver"))
	assert.NoError(t, CanTransition(models.StatusOutForDelivery, models.StatusDelivered, "driver"))

	// Wrong actor for a valid edge
	assert.Error(t, CanTransition(models.StatusPending, models.StatusAccepted, "driver"))
	assert.Error(t, CanTransition(models.StatusReady, models.StatusOutForDelivery, "restaurant"))

	// Customer cancellation window closes once the kitchen starts
	assert.NoError(t, CanTransition(models.StatusPending, models.StatusCancelled, "customer"))
	assert.NoError(t, CanTransition(models.StatusAccepted, models.StatusCancelled, "customer"))
	assert.Error(t, CanTransition(models.StatusPreparing, models.StatusCancelled, "customer"))

	// Restaurant may cancel any non-terminal state
	for _, from := range []models.OrderStatus{
		models.StatusPending, models.StatusAccepted, models.StatusPreparing,
		models.StatusReady, models.StatusOutForDelivery,
	} {
		assert.NoError(t, CanTransition(from, models.StatusCancelled, "restaurant"), string(from))
	}

	// Nothing leaves a terminal state
	assert.Error(t, CanTransition(models.StatusDelivered, models.StatusCancelled, "restaurant"))
	assert.Error(t, CanTransition(models.StatusCancelled, models.StatusPending, "restaurant"))

	// No skipping steps
	assert.Error(t, CanTransition(models.StatusPending, models.StatusReady, "restaurant"))
}

func TestIsTerminal(t *testing.T) {
	assert.True(t, IsTerminal(models.StatusDelivered))
	assert.True(t, IsTerminal(models.StatusCancelled))
	assert.False(t, IsTerminal(models.StatusPending))
	assert.False(t, IsTerminal(models.StatusOutForDelivery))
}

func TestValidTransitionsFrom(t *testing.T) {
	nexts := ValidTransitionsFrom(models.StatusPending)
	assert.ElementsMatch(t, []models.OrderStatus{models.StatusAccepted, models.StatusCancelled}, nexts)
	assert.Empty(t, ValidTransitionsFrom(models.StatusDelivered))
}

func TestDeliveryStateMachine(t *testing.T) {
	next, ok := NextDeliveryStatus(models.DeliveryAssigned)
	assert.True(t, ok)
	assert.Equal(t, models.DeliveryPickedUp, next)

	next, ok = NextDeliveryStatus(models.DeliveryInTransit)
	assert.True(t, ok)
	assert.Equal(t, models.DeliveryDelivered, next)

	_, ok = NextDeliveryStatus(models.DeliveryDelivered)
	assert.False(t, ok)

	assert.NoError(t, CanAdvanceDelivery(models.DeliveryAssigned, models.DeliveryPickedUp))
	assert.Error(t, CanAdvanceDelivery(models.DeliveryAssigned, models.DeliveryInTransit))
	assert.Error(t, CanAdvanceDelivery(models.DeliveryDelivered, models.DeliveryPickedUp))
	assert.Error(t, CanAdvanceDelivery(models.DeliveryCancelled, models.DeliveryPickedUp))
}
