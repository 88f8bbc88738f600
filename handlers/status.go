package handlers

import (
	"time"

	"food-ordering-api/config"
	"food-ordering-api/events"
	"food-ordering-api/models"

	"github.com/gin-gonic/gin"
)

// applyStatusChange performs the bookkeeping every order transition shares:
// persist the new status, append the audit row, publish the event, and spin
// up the delivery record once the kitchen marks the order ready.
func applyStatusChange(c *gin.Context, order *models.Order, to models.OrderStatus, changedBy uint, note string) {
	from := order.Status
	config.DB.Model(order).Update("status", to)
	order.Status = to

	history := models.OrderStatusHistory{
		OrderID:    order.ID,
		FromStatus: from,
		ToStatus:   to,
		ChangedBy:  changedBy,
		Note:       note,
	}
	config.DB.Create(&history)

	events.Orders.PublishStatusChange(c.Request.Context(), events.OrderEvent{
		OrderID:    order.ID,
		FromStatus: from,
		ToStatus:   to,
		ChangedBy:  changedBy,
		At:         time.Now(),
	})

	if to == models.StatusReady {
		createDeliveryForOrder(order)
	}
	if to == models.StatusCancelled {
		cancelDeliveryForOrder(order)
	}
}

// createDeliveryForOrder opens the courier assignment once an order is ready.
// Idempotent: a second call for the same order is a no-op.
func createDeliveryForOrder(order *models.Order) {
	var existing models.Delivery
	if err := config.DB.Where("order_id = ?", order.ID).First(&existing).Error; err == nil {
		return
	}

	var restaurant models.Restaurant
	config.DB.First(&restaurant, order.RestaurantID)
	var customer models.User
	config.DB.First(&customer, order.CustomerID)

	delivery := models.Delivery{
		OrderID:           order.ID,
		Status:            models.DeliveryAssigned,
		PickupAddress:     restaurant.Address,
		PickupLat:         restaurant.Lat,
		PickupLng:         restaurant.Lng,
		DeliveryAddress:   order.DeliveryAddress,
		DeliveryLat:       order.DeliveryLat,
		DeliveryLng:       order.DeliveryLng,
		RestaurantContact: restaurant.Phone,
		CustomerContact:   customer.Phone,
	}
	config.DB.Create(&delivery)
}

// cancelDeliveryForOrder tears down the order's courier assignment when the
// order is cancelled. An unclaimed delivery is removed outright; one a driver
// has already claimed is kept for their records but marked CANCELLED so it
// drops out of the active list and accepts no further transitions.
func cancelDeliveryForOrder(order *models.Order) {
	var delivery models.Delivery
	if err := config.DB.Where("order_id = ?", order.ID).First(&delivery).Error; err != nil {
		return
	}
	if delivery.Status == models.DeliveryDelivered {
		return
	}
	if delivery.DriverID == nil {
		config.DB.Delete(&delivery)
		return
	}
	config.DB.Model(&delivery).Update("status", models.DeliveryCancelled)
}
