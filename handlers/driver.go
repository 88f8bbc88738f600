package handlers

import (
	"net/http"
	"time"

	"food-ordering-api/config"
	"food-ordering-api/location"
	"food-ordering-api/middleware"
	"food-ordering-api/models"
	"food-ordering-api/statemachine"

	"github.com/gin-gonic/gin"
)

// GetAvailableDeliveries shows open assignments no courier has claimed yet
func GetAvailableDeliveries(c *gin.Context) {
	var deliveries []models.Delivery
	config.DB.Preload("Order.Restaurant").
		Where("driver_id IS NULL AND status = ?", models.DeliveryAssigned).
		Order("created_at asc").
		Find(&deliveries)
	c.JSON(http.StatusOK, gin.H{"count": len(deliveries), "deliveries": deliveries})
}

// GetActiveDeliveries returns the courier's in-flight assignments
func GetActiveDeliveries(c *gin.Context) {
	driverID := middleware.GetUserID(c)
	var deliveries []models.Delivery
	config.DB.Preload("Order.Items").Preload("Order.Restaurant").
		Where("driver_id = ? AND status NOT IN ?", driverID,
			[]models.DeliveryStatus{models.DeliveryDelivered, models.DeliveryCancelled}).
		Order("updated_at desc").
		Find(&deliveries)
	c.JSON(http.StatusOK, gin.H{"count": len(deliveries), "deliveries": deliveries})
}

// GetDeliveryHistory returns the courier's completed assignments
func GetDeliveryHistory(c *gin.Context) {
	driverID := middleware.GetUserID(c)
	var deliveries []models.Delivery
	config.DB.Preload("Order.Restaurant").
		Where("driver_id = ? AND status = ?", driverID, models.DeliveryDelivered).
		Order("delivered_at desc").
		Find(&deliveries)
	c.JSON(http.StatusOK, gin.H{"count": len(deliveries), "deliveries": deliveries})
}

// AssignDelivery claims an open assignment for the calling courier.
// First driver wins; a second claim conflicts.
func AssignDelivery(c *gin.Context) {
	driverID := middleware.GetUserID(c)

	var delivery models.Delivery
	if err := config.DB.First(&delivery, c.Param("id")).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Delivery not found"})
		return
	}
	if delivery.DriverID != nil {
		c.JSON(http.StatusConflict, gin.H{"error": "Delivery has already been claimed by another driver"})
		return
	}

	now := time.Now()
	// Guarded update so two racing claims cannot both win
	res := config.DB.Model(&models.Delivery{}).
		Where("id = ? AND driver_id IS NULL", delivery.ID).
		Updates(map[string]interface{}{"driver_id": driverID, "assigned_at": now})
	if res.Error != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to claim delivery"})
		return
	}
	if res.RowsAffected == 0 {
		c.JSON(http.StatusConflict, gin.H{"error": "Delivery has already been claimed by another driver"})
		return
	}

	config.DB.First(&delivery, delivery.ID)
	c.JSON(http.StatusOK, gin.H{"message": "Delivery assigned", "delivery": delivery})
}

type LocationUpdateRequest struct {
	Lat *float64 `json:"lat"`
	Lng *float64 `json:"lng"`
}

// UpdateDeliveryLocation appends a breadcrumb of the courier's position.
// A report without coordinates (positioning denied or unavailable on the
// courier's device) falls back to a placeholder near the pickup point.
func UpdateDeliveryLocation(c *gin.Context) {
	driverID := middleware.GetUserID(c)

	var delivery models.Delivery
	if err := config.DB.First(&delivery, c.Param("id")).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Delivery not found"})
		return
	}
	if delivery.DriverID == nil || *delivery.DriverID != driverID {
		c.JSON(http.StatusForbidden, gin.H{"error": "You are not the assigned driver for this delivery"})
		return
	}

	var req LocationUpdateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	var pt location.Point
	fallback := false
	if req.Lat != nil && req.Lng != nil {
		pt = location.Point{Lat: *req.Lat, Lng: *req.Lng}
	} else {
		fallback = true
		if delivery.PickupLat != 0 || delivery.PickupLng != 0 {
			pickup := location.Point{Lat: delivery.PickupLat, Lng: delivery.PickupLng}
			pt = location.Fallback(&pickup)
		} else {
			pt = location.Fallback(nil)
		}
	}

	crumb := models.DeliveryLocation{
		DeliveryID: delivery.ID,
		Lat:        pt.Lat,
		Lng:        pt.Lng,
		RecordedAt: time.Now(),
	}
	if err := config.DB.Create(&crumb).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to record location"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Location recorded", "location": crumb, "fallback": fallback})
}

type DeliveryStatusRequest struct {
	Status models.DeliveryStatus `json:"status" binding:"required"`
}

// UpdateDeliveryStatus walks the delivery lifecycle. Pickup and completion
// also advance the underlying order; completing a cash order settles it.
func UpdateDeliveryStatus(c *gin.Context) {
	driverID := middleware.GetUserID(c)

	var delivery models.Delivery
	if err := config.DB.First(&delivery, c.Param("id")).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Delivery not found"})
		return
	}
	if delivery.DriverID == nil || *delivery.DriverID != driverID {
		c.JSON(http.StatusForbidden, gin.H{"error": "You are not the assigned driver for this delivery"})
		return
	}

	var req DeliveryStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	if err := statemachine.CanAdvanceDelivery(delivery.Status, req.Status); err != nil {
		c.JSON(http.StatusUnprocessableEntity, gin.H{
			"error":          "Invalid delivery transition",
			"current_status": delivery.Status,
			"requested":      req.Status,
			"reason":         err.Error(),
		})
		return
	}

	var order models.Order
	if err := config.DB.First(&order, delivery.OrderID).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Order for this delivery not found"})
		return
	}

	now := time.Now()
	update := map[string]interface{}{"status": req.Status}
	switch req.Status {
	case models.DeliveryPickedUp:
		update["picked_up_at"] = now
	case models.DeliveryDelivered:
		update["delivered_at"] = now
	}
	config.DB.Model(&delivery).Updates(update)
	delivery.Status = req.Status

	// Pickup puts the order on the road; completion closes it out
	switch req.Status {
	case models.DeliveryPickedUp:
		if err := statemachine.CanTransition(order.Status, models.StatusOutForDelivery, "driver"); err == nil {
			applyStatusChange(c, &order, models.StatusOutForDelivery, driverID, "Driver picked up the order")
		}
	case models.DeliveryDelivered:
		if err := statemachine.CanTransition(order.Status, models.StatusDelivered, "driver"); err == nil {
			applyStatusChange(c, &order, models.StatusDelivered, driverID, "Order delivered to customer")
		}
		if order.PaymentMethod == models.PayByCash && order.PaymentStatus != models.PaymentPaid {
			config.DB.Model(&order).Update("payment_status", models.PaymentPaid)
		}
	}

	c.JSON(http.StatusOK, gin.H{
		"message":      "Delivery status updated",
		"delivery_id":  delivery.ID,
		"status":       delivery.Status,
		"order_status": order.Status,
	})
}

// TrackDelivery returns the last reported courier position, or the fallback
// placeholder before the first breadcrumb arrives. Customers track their own
// orders; drivers and admins see anything.
func TrackDelivery(c *gin.Context) {
	var delivery models.Delivery
	if err := config.DB.Preload("Order").First(&delivery, c.Param("id")).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Delivery not found"})
		return
	}

	role := middleware.GetRole(c)
	if role == models.RoleCustomer && delivery.Order.CustomerID != middleware.GetUserID(c) {
		c.JSON(http.StatusForbidden, gin.H{"error": "This delivery does not belong to you"})
		return
	}

	var last models.DeliveryLocation
	err := config.DB.Where("delivery_id = ?", delivery.ID).
		Order("recorded_at desc").First(&last).Error

	var pt location.Point
	estimated := false
	if err == nil {
		pt = location.Point{Lat: last.Lat, Lng: last.Lng}
	} else {
		estimated = true
		if delivery.PickupLat != 0 || delivery.PickupLng != 0 {
			pickup := location.Point{Lat: delivery.PickupLat, Lng: delivery.PickupLng}
			pt = location.Fallback(&pickup)
		} else {
			pt = location.Fallback(nil)
		}
	}

	c.JSON(http.StatusOK, gin.H{
		"delivery_id": delivery.ID,
		"status":      delivery.Status,
		"position":    pt,
		"estimated":   estimated,
	})
}
