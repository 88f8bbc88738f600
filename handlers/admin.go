package handlers

import (
	"io"
	"net/http"
	"strconv"

	"food-ordering-api/config"
	"food-ordering-api/middleware"
	"food-ordering-api/models"
	"food-ordering-api/normalize"
	"food-ordering-api/statemachine"

	"github.com/gin-gonic/gin"
)

// AdminGetAllOrders returns all orders with full detail — admin only
func AdminGetAllOrders(c *gin.Context) {
	var orders []models.Order
	query := config.DB.Preload("Items.MenuItem").
		Preload("Customer").Preload("Restaurant").Preload("StatusHistory")

	if status := c.Query("status"); status != "" {
		if canon, ok := statemachine.Normalize(status); ok {
			query = query.Where("status = ?", canon)
		}
	}
	if customerID := c.Query("customer_id"); customerID != "" {
		query = query.Where("customer_id = ?", customerID)
	}
	if restaurantID := c.Query("restaurant_id"); restaurantID != "" {
		query = query.Where("restaurant_id = ?", restaurantID)
	}

	query.Order("created_at desc").Find(&orders)

	summary := map[string]int{}
	var totalRevenue float64
	for _, o := range orders {
		summary[string(o.Status)]++
		if o.Status == models.StatusDelivered {
			totalRevenue += o.TotalPrice
		}
	}

	c.JSON(http.StatusOK, gin.H{
		"order_summary": summary,
		"total_revenue": totalRevenue,
		"count":         len(orders),
		"orders":        orders,
	})
}

// AdminGetAllUsers returns all users — admin only
func AdminGetAllUsers(c *gin.Context) {
	var users []models.User
	query := config.DB
	if role := c.Query("role"); role != "" {
		query = query.Where("role = ?", role)
	}
	query.Find(&users)
	c.JSON(http.StatusOK, gin.H{"count": len(users), "users": users})
}

// AdminGetAllRestaurants returns all restaurants — admin only
func AdminGetAllRestaurants(c *gin.Context) {
	var restaurants []models.Restaurant
	query := config.DB.Preload("Owner")
	if verified := c.Query("verified"); verified != "" {
		query = query.Where("is_verified = ?", verified == "true")
	}
	query.Find(&restaurants)
	c.JSON(http.StatusOK, gin.H{"count": len(restaurants), "restaurants": restaurants})
}

// AdminVerifyRestaurant toggles a restaurant's verified flag, putting it on
// (or pulling it off) the public list
func AdminVerifyRestaurant(c *gin.Context) {
	var restaurant models.Restaurant
	if err := config.DB.First(&restaurant, c.Param("id")).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Restaurant not found"})
		return
	}
	var req struct {
		Verified *bool `json:"verified" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	config.DB.Model(&restaurant).Update("is_verified", *req.Verified)
	c.JSON(http.StatusOK, gin.H{
		"message":     "Restaurant verification updated",
		"restaurant":  restaurant.Name,
		"is_verified": *req.Verified,
	})
}

// AdminForceOrderStatus lets admin override any order state (emergency use).
// Bypasses the transition guard on purpose, but still normalizes and records
// the change.
func AdminForceOrderStatus(c *gin.Context) {
	adminID := middleware.GetUserID(c)
	orderID := c.Param("id")
	var req struct {
		Status string `json:"status" binding:"required"`
		Reason string `json:"reason"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	canon, ok := statemachine.Normalize(req.Status)
	if !ok {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Unknown status: " + req.Status})
		return
	}
	var order models.Order
	if err := config.DB.First(&order, orderID).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Order not found"})
		return
	}
	prevStatus := order.Status
	applyStatusChange(c, &order, canon, adminID, "[ADMIN OVERRIDE] "+req.Reason)

	c.JSON(http.StatusOK, gin.H{
		"message":         "Order status force-updated by admin",
		"order_id":        order.ID,
		"previous_status": prevStatus,
		"new_status":      canon,
	})
}

// AdminImportOrder ingests an order payload produced by one of the older
// services, in either wire shape, normalizing it at this one boundary
func AdminImportOrder(c *gin.Context) {
	adminID := middleware.GetUserID(c)

	raw, err := io.ReadAll(c.Request.Body)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Failed to read body"})
		return
	}

	canon, err := normalize.DecodeOrder(raw)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	if canon.ExternalID != "" {
		var existing models.Order
		if err := config.DB.Where("external_ref = ?", canon.ExternalID).First(&existing).Error; err == nil {
			c.JSON(http.StatusConflict, gin.H{"error": "Order already imported", "order_id": existing.ID})
			return
		}
	}

	restaurantID, err := strconv.ParseUint(canon.RestaurantID, 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Unparseable restaurant id in payload: " + canon.RestaurantID})
		return
	}
	customerID, err := strconv.ParseUint(canon.CustomerID, 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Unparseable customer id in payload: " + canon.CustomerID})
		return
	}

	order := models.Order{
		CustomerID:      uint(customerID),
		RestaurantID:    uint(restaurantID),
		Status:          canon.Status,
		TotalPrice:      canon.Total,
		PaymentMethod:   canon.PaymentMethod,
		PaymentStatus:   canon.PaymentStatus,
		DeliveryAddress: canon.DeliveryAddress,
		Notes:           canon.Notes,
		ExternalRef:     canon.ExternalID,
		Items:           canon.Items,
	}
	if err := config.DB.Create(&order).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to import order"})
		return
	}

	history := models.OrderStatusHistory{
		OrderID:   order.ID,
		ToStatus:  canon.Status,
		ChangedBy: adminID,
		Note:      "Imported from " + canon.Shape.String() + " service payload",
	}
	config.DB.Create(&history)

	c.JSON(http.StatusCreated, gin.H{
		"message":  "Order imported",
		"order_id": order.ID,
		"shape":    canon.Shape.String(),
		"status":   order.Status,
	})
}
