package handlers

import (
	"net/http"

	"food-ordering-api/config"
	"food-ordering-api/middleware"
	"food-ordering-api/models"
	"food-ordering-api/statemachine"

	"github.com/gin-gonic/gin"
)

// GetRestaurantOrders returns all orders for the restaurant owner
func GetRestaurantOrders(c *gin.Context) {
	ownerID := middleware.GetUserID(c)

	var restaurant models.Restaurant
	if err := config.DB.Where("owner_id = ?", ownerID).First(&restaurant).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "No restaurant found for your account"})
		return
	}

	var orders []models.Order
	query := config.DB.Preload("Items.MenuItem").Preload("Customer").
		Where("restaurant_id = ?", restaurant.ID)

	if status := c.Query("status"); status != "" {
		if canon, ok := statemachine.Normalize(status); ok {
			query = query.Where("status = ?", canon)
		} else {
			// Unknown status filter matches nothing rather than erroring
			query = query.Where("1 = 0")
		}
	}

	query.Order("created_at desc").Find(&orders)

	// Dashboard summary grouped by status
	summary := map[string]int{}
	for _, o := range orders {
		summary[string(o.Status)]++
	}

	c.JSON(http.StatusOK, gin.H{
		"restaurant":    restaurant.Name,
		"order_summary": summary,
		"count":         len(orders),
		"orders":        orders,
	})
}

type UpdateOrderStatusRequest struct {
	// Status accepts any spelling the older services used; it is normalized
	// before validation. Empty means "advance to the next status".
	Status string `json:"status"`
	Note   string `json:"note"`
}

// UpdateOrderStatus handles the restaurant's state transitions. With no
// explicit status in the body the order advances one step along the
// forward-only table.
func UpdateOrderStatus(c *gin.Context) {
	ownerID := middleware.GetUserID(c)
	orderID := c.Param("id")

	var restaurant models.Restaurant
	if err := config.DB.Where("owner_id = ?", ownerID).First(&restaurant).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "No restaurant found for your account"})
		return
	}

	var order models.Order
	if err := config.DB.First(&order, orderID).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Order not found"})
		return
	}
	if order.RestaurantID != restaurant.ID {
		c.JSON(http.StatusForbidden, gin.H{"error": "This order does not belong to your restaurant"})
		return
	}

	var req UpdateOrderStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	var target models.OrderStatus
	if req.Status == "" {
		next, ok := statemachine.NextStatus(string(order.Status))
		if !ok {
			c.JSON(http.StatusUnprocessableEntity, gin.H{
				"error":          "Order has no next status",
				"current_status": order.Status,
			})
			return
		}
		target = next
	} else {
		canon, ok := statemachine.Normalize(req.Status)
		if !ok {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Unknown status: " + req.Status})
			return
		}
		target = canon
	}

	if err := statemachine.CanTransition(order.Status, target, "restaurant"); err != nil {
		c.JSON(http.StatusUnprocessableEntity, gin.H{
			"error":             "Invalid state transition",
			"current_status":    order.Status,
			"requested":         target,
			"reason":            err.Error(),
			"valid_next_states": statemachine.ValidTransitionsFrom(order.Status),
		})
		return
	}

	prevStatus := order.Status
	note := req.Note
	if note == "" {
		note = "Status updated by restaurant"
	}
	applyStatusChange(c, &order, target, ownerID, note)

	// Kitchen start resets the ETA
	if target == models.StatusPreparing {
		config.DB.Model(&order).Update("estimated_time", 20)
	}

	c.JSON(http.StatusOK, gin.H{
		"message":         "Order status updated",
		"order_id":        order.ID,
		"previous_status": string(prevStatus),
		"current_status":  string(target),
	})
}
