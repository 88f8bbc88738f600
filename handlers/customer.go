package handlers

import (
	"fmt"
	"net/http"
	"time"

	"food-ordering-api/config"
	"food-ordering-api/middleware"
	"food-ordering-api/models"
	"food-ordering-api/pricing"
	"food-ordering-api/statemachine"

	"github.com/gin-gonic/gin"
	qrcode "github.com/skip2/go-qrcode"
)

type PlaceOrderRequest struct {
	RestaurantID    uint                 `json:"restaurant_id" binding:"required"`
	DeliveryAddress string               `json:"delivery_address" binding:"required"`
	DeliveryLat     *float64             `json:"delivery_lat"`
	DeliveryLng     *float64             `json:"delivery_lng"`
	PaymentMethod   models.PaymentMethod `json:"payment_method" binding:"required,oneof=card cash"`
	ExtraNotes      string               `json:"extra_notes"`
	Items           []struct {
		MenuItemID uint `json:"menu_item_id" binding:"required"`
		Quantity   int  `json:"quantity" binding:"required,min=1"`
	} `json:"items" binding:"required,min=1"`
}

// PlaceOrder creates a new order directly from an item list, bypassing the
// cart. Totals are always derived server-side from snapshot prices.
func PlaceOrder(c *gin.Context) {
	customerID := middleware.GetUserID(c)

	var req PlaceOrderRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	var restaurant models.Restaurant
	if err := config.DB.First(&restaurant, req.RestaurantID).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Restaurant not found"})
		return
	}
	if !restaurant.IsOpen {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Restaurant is currently closed"})
		return
	}

	var orderItems []models.OrderItem
	var lines []pricing.Line
	for _, reqItem := range req.Items {
		var menuItem models.MenuItem
		if err := config.DB.First(&menuItem, reqItem.MenuItemID).Error; err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": fmt.Sprintf("Menu item not found: %d", reqItem.MenuItemID)})
			return
		}
		if menuItem.RestaurantID != req.RestaurantID {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Menu item does not belong to this restaurant"})
			return
		}
		if !menuItem.IsAvailable {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Menu item '" + menuItem.Name + "' is not available"})
			return
		}
		orderItems = append(orderItems, models.OrderItem{
			MenuItemID: menuItem.ID,
			Quantity:   reqItem.Quantity,
			Price:      menuItem.Price,
			Name:       menuItem.Name,
		})
		lines = append(lines, pricing.Line{Price: menuItem.Price, Quantity: reqItem.Quantity})
	}
	totals := pricing.ComputeTotals(lines).Rounded()

	estimatedTime := 30 + 5*len(req.Items)

	order := models.Order{
		CustomerID:      customerID,
		RestaurantID:    req.RestaurantID,
		Status:          models.StatusPending,
		Subtotal:        totals.Subtotal,
		DeliveryFee:     totals.DeliveryFee,
		Tax:             totals.Tax,
		TotalPrice:      totals.Total,
		PaymentMethod:   req.PaymentMethod,
		PaymentStatus:   models.PaymentPending,
		DeliveryAddress: req.DeliveryAddress,
		DeliveryLat:     req.DeliveryLat,
		DeliveryLng:     req.DeliveryLng,
		Notes:           req.ExtraNotes,
		EstimatedTime:   estimatedTime,
		Items:           orderItems,
	}

	if err := config.DB.Create(&order).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to place order"})
		return
	}

	history := models.OrderStatusHistory{
		OrderID:   order.ID,
		ToStatus:  models.StatusPending,
		ChangedBy: customerID,
		Note:      "Order placed by customer",
	}
	config.DB.Create(&history)

	config.DB.Preload("Items.MenuItem").Preload("Restaurant").First(&order, order.ID)

	c.JSON(http.StatusCreated, gin.H{
		"message":        "Order placed successfully",
		"order":          order,
		"totals":         totals,
		"estimated_time": estimatedTime,
	})
}

// GetMyOrders returns all orders for the logged-in customer
func GetMyOrders(c *gin.Context) {
	customerID := middleware.GetUserID(c)
	var orders []models.Order
	query := config.DB.Preload("Items.MenuItem").Preload("Restaurant").
		Where("customer_id = ?", customerID)
	if status := c.Query("status"); status != "" {
		if canon, ok := statemachine.Normalize(status); ok {
			query = query.Where("status = ?", canon)
		} else {
			// Unknown status names match nothing rather than everything
			query = query.Where("1 = 0")
		}
	}
	query.Order("created_at desc").Find(&orders)
	c.JSON(http.StatusOK, gin.H{"count": len(orders), "orders": orders})
}

// GetOrderDetail returns a single order's full detail with history. The
// response includes the allowed next status so clients render the advance
// action from one source of truth instead of their own tables.
func GetOrderDetail(c *gin.Context) {
	customerID := middleware.GetUserID(c)
	orderID := c.Param("id")

	var order models.Order
	if err := config.DB.
		Preload("Items.MenuItem").
		Preload("Restaurant").
		Preload("StatusHistory").
		First(&order, orderID).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Order not found"})
		return
	}
	if order.CustomerID != customerID {
		c.JSON(http.StatusForbidden, gin.H{"error": "This order does not belong to you"})
		return
	}

	elapsed := time.Since(order.CreatedAt).Minutes()
	resp := gin.H{
		"order":           order,
		"minutes_elapsed": int(elapsed),
	}
	if next, ok := statemachine.NextStatus(string(order.Status)); ok {
		resp["next_status"] = next
	}
	c.JSON(http.StatusOK, resp)
}

// CancelOrder cancels an order (customer may cancel pending or accepted)
func CancelOrder(c *gin.Context) {
	customerID := middleware.GetUserID(c)
	orderID := c.Param("id")

	var order models.Order
	if err := config.DB.First(&order, orderID).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Order not found"})
		return
	}
	if order.CustomerID != customerID {
		c.JSON(http.StatusForbidden, gin.H{"error": "This order does not belong to you"})
		return
	}

	if err := statemachine.CanTransition(order.Status, models.StatusCancelled, "customer"); err != nil {
		c.JSON(http.StatusUnprocessableEntity, gin.H{
			"error":         "Cannot cancel order",
			"reason":        err.Error(),
			"current_state": order.Status,
		})
		return
	}

	applyStatusChange(c, &order, models.StatusCancelled, customerID, "Order cancelled by customer")

	c.JSON(http.StatusOK, gin.H{"message": "Order cancelled successfully", "order_id": order.ID})
}

// GetOrderQR returns a PNG QR code identifying the order for the handoff
// scan at pickup and delivery
func GetOrderQR(c *gin.Context) {
	customerID := middleware.GetUserID(c)
	orderID := c.Param("id")

	var order models.Order
	if err := config.DB.First(&order, orderID).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Order not found"})
		return
	}
	if order.CustomerID != customerID {
		c.JSON(http.StatusForbidden, gin.H{"error": "This order does not belong to you"})
		return
	}

	png, err := qrcode.Encode(fmt.Sprintf("order:%d:customer:%d", order.ID, order.CustomerID), qrcode.Medium, 256)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to generate QR code"})
		return
	}
	c.Data(http.StatusOK, "image/png", png)
}
