package handlers

import (
	"net/http"

	"food-ordering-api/config"
	"food-ordering-api/middleware"
	"food-ordering-api/models"
	"food-ordering-api/pricing"

	"github.com/gin-gonic/gin"
)

// getOrCreateCart loads the customer's cart, creating an empty one on first use
func getOrCreateCart(customerID uint) (*models.Cart, error) {
	var cart models.Cart
	err := config.DB.Preload("Items").Where("customer_id = ?", customerID).First(&cart).Error
	if err == nil {
		return &cart, nil
	}
	cart = models.Cart{CustomerID: customerID}
	if err := config.DB.Create(&cart).Error; err != nil {
		return nil, err
	}
	return &cart, nil
}

func cartTotals(cart *models.Cart) pricing.Totals {
	lines := make([]pricing.Line, 0, len(cart.Items))
	for _, it := range cart.Items {
		lines = append(lines, pricing.Line{Price: it.Price, Quantity: it.Quantity})
	}
	return pricing.ComputeTotals(lines).Rounded()
}

// GetCart returns the customer's cart with computed totals
func GetCart(c *gin.Context) {
	customerID := middleware.GetUserID(c)
	cart, err := getOrCreateCart(customerID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to load cart"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"cart": cart, "totals": cartTotals(cart)})
}

type AddCartItemRequest struct {
	MenuItemID uint `json:"menu_item_id" binding:"required"`
	Quantity   int  `json:"quantity" binding:"required,min=1"`
}

// AddCartItem adds a menu item to the cart. The cart stays locked to one
// restaurant; adding from a second restaurant is rejected until it is cleared.
func AddCartItem(c *gin.Context) {
	customerID := middleware.GetUserID(c)
	var req AddCartItemRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	var item models.MenuItem
	if err := config.DB.First(&item, req.MenuItemID).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Menu item not found"})
		return
	}
	if !item.IsAvailable {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Menu item '" + item.Name + "' is not available"})
		return
	}

	cart, err := getOrCreateCart(customerID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to load cart"})
		return
	}

	if len(cart.Items) > 0 && cart.RestaurantID != item.RestaurantID {
		c.JSON(http.StatusConflict, gin.H{"error": "Cart already holds items from another restaurant. Clear it first."})
		return
	}
	if cart.RestaurantID != item.RestaurantID {
		config.DB.Model(&models.Cart{}).Where("id = ?", cart.ID).Update("restaurant_id", item.RestaurantID)
		cart.RestaurantID = item.RestaurantID
	}

	// Merge into an existing line rather than duplicating it
	var line models.CartItem
	if err := config.DB.Where("cart_id = ? AND menu_item_id = ?", cart.ID, item.ID).First(&line).Error; err == nil {
		config.DB.Model(&line).Update("quantity", line.Quantity+req.Quantity)
	} else {
		line = models.CartItem{
			CartID:     cart.ID,
			MenuItemID: item.ID,
			Name:       item.Name,
			Price:      item.Price,
			Quantity:   req.Quantity,
		}
		config.DB.Create(&line)
	}

	config.DB.Preload("Items").First(cart, cart.ID)
	c.JSON(http.StatusOK, gin.H{"message": "Item added to cart", "cart": cart, "totals": cartTotals(cart)})
}

type UpdateCartItemRequest struct {
	Quantity *int `json:"quantity" binding:"required"`
}

// UpdateCartItem sets a line's quantity. Quantity zero or below removes the
// line entirely — no zero-quantity lines are ever kept.
func UpdateCartItem(c *gin.Context) {
	customerID := middleware.GetUserID(c)
	var req UpdateCartItemRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	cart, err := getOrCreateCart(customerID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to load cart"})
		return
	}

	var line models.CartItem
	if err := config.DB.Where("id = ? AND cart_id = ?", c.Param("itemId"), cart.ID).First(&line).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Cart item not found"})
		return
	}

	if *req.Quantity <= 0 {
		config.DB.Delete(&line)
	} else {
		config.DB.Model(&line).Update("quantity", *req.Quantity)
	}

	config.DB.Preload("Items").First(cart, cart.ID)
	if len(cart.Items) == 0 {
		config.DB.Model(&models.Cart{}).Where("id = ?", cart.ID).Update("restaurant_id", 0)
		cart.RestaurantID = 0
	}
	c.JSON(http.StatusOK, gin.H{"message": "Cart updated", "cart": cart, "totals": cartTotals(cart)})
}

// RemoveCartItem deletes one line from the cart
func RemoveCartItem(c *gin.Context) {
	customerID := middleware.GetUserID(c)
	cart, err := getOrCreateCart(customerID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to load cart"})
		return
	}
	var line models.CartItem
	if err := config.DB.Where("id = ? AND cart_id = ?", c.Param("itemId"), cart.ID).First(&line).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Cart item not found"})
		return
	}
	config.DB.Delete(&line)
	config.DB.Preload("Items").First(cart, cart.ID)
	if len(cart.Items) == 0 {
		config.DB.Model(&models.Cart{}).Where("id = ?", cart.ID).Update("restaurant_id", 0)
		cart.RestaurantID = 0
	}
	c.JSON(http.StatusOK, gin.H{"message": "Item removed", "cart": cart, "totals": cartTotals(cart)})
}

// ClearCart empties the cart and releases its restaurant lock
func ClearCart(c *gin.Context) {
	customerID := middleware.GetUserID(c)
	cart, err := getOrCreateCart(customerID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to load cart"})
		return
	}
	config.DB.Where("cart_id = ?", cart.ID).Delete(&models.CartItem{})
	// Update via a fresh model: running it on cart while its Items association
	// is still loaded would upsert the just-deleted rows right back
	config.DB.Model(&models.Cart{}).Where("id = ?", cart.ID).Update("restaurant_id", 0)
	c.JSON(http.StatusOK, gin.H{"message": "Cart cleared"})
}

type CheckoutRequest struct {
	DeliveryAddress string               `json:"delivery_address" binding:"required"`
	DeliveryLat     *float64             `json:"delivery_lat"`
	DeliveryLng     *float64             `json:"delivery_lng"`
	PaymentMethod   models.PaymentMethod `json:"payment_method" binding:"required,oneof=card cash"`
	Notes           string               `json:"notes"`
}

// Checkout converts the cart into an order and empties it. Checkout is
// blocked outright on an empty cart.
func Checkout(c *gin.Context) {
	customerID := middleware.GetUserID(c)
	var req CheckoutRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	cart, err := getOrCreateCart(customerID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to load cart"})
		return
	}
	if len(cart.Items) == 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Cart is empty"})
		return
	}

	var restaurant models.Restaurant
	if err := config.DB.First(&restaurant, cart.RestaurantID).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Restaurant not found"})
		return
	}
	if !restaurant.IsOpen {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Restaurant is currently closed"})
		return
	}

	var orderItems []models.OrderItem
	var lines []pricing.Line
	for _, it := range cart.Items {
		orderItems = append(orderItems, models.OrderItem{
			MenuItemID: it.MenuItemID,
			Quantity:   it.Quantity,
			Price:      it.Price,
			Name:       it.Name,
		})
		lines = append(lines, pricing.Line{Price: it.Price, Quantity: it.Quantity})
	}
	totals := pricing.ComputeTotals(lines).Rounded()

	// Base 30 min plus 5 per distinct line
	estimatedTime := 30 + 5*len(cart.Items)

	order := models.Order{
		CustomerID:      customerID,
		RestaurantID:    cart.RestaurantID,
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
		Notes:           req.Notes,
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
		Note:      "Order placed from cart",
	}
	config.DB.Create(&history)

	// Successful placement destroys the cart contents. The reset must not go
	// through cart itself while its Items association is loaded, or the
	// deleted lines get upserted back
	config.DB.Where("cart_id = ?", cart.ID).Delete(&models.CartItem{})
	config.DB.Model(&models.Cart{}).Where("id = ?", cart.ID).Update("restaurant_id", 0)

	config.DB.Preload("Items").Preload("Restaurant").First(&order, order.ID)
	c.JSON(http.StatusCreated, gin.H{
		"message": "Order placed successfully",
		"order":   order,
		"totals":  totals,
	})
}
