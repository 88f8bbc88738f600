package handlers

import (
	"net/http"
	"strings"
	"time"

	"food-ordering-api/config"
	"food-ordering-api/middleware"
	"food-ordering-api/models"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

type CreatePaymentIntentRequest struct {
	Amount   float64 `json:"amount" binding:"required,gt=0"`
	Metadata struct {
		OrderID uint `json:"orderId" binding:"required"`
	} `json:"metadata" binding:"required"`
}

// CreatePaymentIntent issues a payment intent for a card order. Card
// collection happens entirely in the embedded payment element on the client;
// this endpoint only hands back the client secret to drive it.
func CreatePaymentIntent(c *gin.Context) {
	customerID := middleware.GetUserID(c)

	var req CreatePaymentIntentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	var order models.Order
	if err := config.DB.First(&order, req.Metadata.OrderID).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Order not found"})
		return
	}
	if order.CustomerID != customerID {
		c.JSON(http.StatusForbidden, gin.H{"error": "This order does not belong to you"})
		return
	}
	if order.PaymentMethod != models.PayByCard {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Order is not a card payment"})
		return
	}
	if order.PaymentStatus == models.PaymentPaid {
		c.JSON(http.StatusConflict, gin.H{"error": "Order is already paid"})
		return
	}

	// Reuse a still-pending intent instead of stacking duplicates
	var existing models.Payment
	if err := config.DB.Where("order_id = ? AND status = ?", order.ID, models.PaymentPending).
		First(&existing).Error; err == nil {
		c.JSON(http.StatusOK, gin.H{"clientSecret": existing.ClientSecret})
		return
	}

	intentID := "pi_" + strings.ReplaceAll(uuid.NewString(), "-", "")
	clientSecret := intentID + "_secret_" + strings.ReplaceAll(uuid.NewString(), "-", "")

	payment := models.Payment{
		OrderID:      order.ID,
		IntentID:     intentID,
		ClientSecret: clientSecret,
		Amount:       req.Amount,
		Status:       models.PaymentPending,
	}
	if err := config.DB.Create(&payment).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create payment intent"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"clientSecret": clientSecret})
}

type ConfirmPaymentRequest struct {
	OrderID         uint   `json:"orderId" binding:"required"`
	PaymentIntentID string `json:"paymentIntentId" binding:"required"`
}

// ConfirmPayment marks an intent succeeded after the client-side confirmation
// and settles the order
func ConfirmPayment(c *gin.Context) {
	customerID := middleware.GetUserID(c)

	var req ConfirmPaymentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	var order models.Order
	if err := config.DB.First(&order, req.OrderID).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Order not found"})
		return
	}
	if order.CustomerID != customerID {
		c.JSON(http.StatusForbidden, gin.H{"error": "This order does not belong to you"})
		return
	}

	var payment models.Payment
	if err := config.DB.Where("intent_id = ? AND order_id = ?", req.PaymentIntentID, order.ID).
		First(&payment).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Payment intent not found for this order"})
		return
	}
	if payment.Status == models.PaymentPaid {
		c.JSON(http.StatusOK, gin.H{"message": "Payment already confirmed", "payment": payment})
		return
	}

	now := time.Now()
	config.DB.Model(&payment).Updates(map[string]interface{}{
		"status":       models.PaymentPaid,
		"confirmed_at": now,
	})
	config.DB.Model(&order).Update("payment_status", models.PaymentPaid)

	payment.Status = models.PaymentPaid
	payment.ConfirmedAt = &now
	c.JSON(http.StatusOK, gin.H{
		"message": "Payment confirmed",
		"payment": payment,
	})
}
