package statemachine

import (
	"errors"

	"food-ordering-api/models"
)

// deliveryAdvance is the courier assignment lifecycle. Strictly linear and
// driver-driven; there is no courier-side cancel edge. Cancellation arrives
// from the order: an unclaimed assignment is removed, a claimed one is
// marked CANCELLED.
var deliveryAdvance = map[models.DeliveryStatus]models.DeliveryStatus{
	models.DeliveryAssigned:  models.DeliveryPickedUp,
	models.DeliveryPickedUp:  models.DeliveryInTransit,
	models.DeliveryInTransit: models.DeliveryDelivered,
}

// NextDeliveryStatus returns the single allowed advance for a delivery
func NextDeliveryStatus(current models.DeliveryStatus) (models.DeliveryStatus, bool) {
	next, ok := deliveryAdvance[current]
	return next, ok
}

// CanAdvanceDelivery validates a requested delivery transition
func CanAdvanceDelivery(from, to models.DeliveryStatus) error {
	if next, ok := deliveryAdvance[from]; ok && next == to {
		return nil
	}
	if from == models.DeliveryDelivered {
		return errors.New("delivery already completed")
	}
	if from == models.DeliveryCancelled {
		return errors.New("delivery was cancelled")
	}
	return errors.New("invalid delivery transition: " + string(from) + " -> " + string(to))
}
