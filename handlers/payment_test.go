package handlers_test

import (
	"net/http"
	"strings"
	"testing"

	"food-ordering-api/config"
	"food-ordering-api/models"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPaymentIntentFlow(t *testing.T) {
	r := setupTest(t)
	_, items := seedRestaurant(t, r, "Spice Garden")
	customer := registerUser(t, r, "alice", models.RoleCustomer)
	orderID := placeOrder(t, r, customer, items[0], "card")

	w := doJSON(t, r, http.MethodPost, "/api/payments/create-payment-intent", customer, gin.H{
		"amount":   24.59,
		"metadata": gin.H{"orderId": orderID},
	})
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	secret := decodeBody(t, w)["clientSecret"].(string)
	assert.True(t, strings.HasPrefix(secret, "pi_"))
	assert.Contains(t, secret, "_secret_")

	// A second create while pending reuses the same intent
	w = doJSON(t, r, http.MethodPost, "/api/payments/create-payment-intent", customer, gin.H{
		"amount":   24.59,
		"metadata": gin.H{"orderId": orderID},
	})
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, secret, decodeBody(t, w)["clientSecret"].(string))

	var payment models.Payment
	require.NoError(t, config.DB.Where("order_id = ?", orderID).First(&payment).Error)

	w = doJSON(t, r, http.MethodPost, "/api/payments/confirm-payment", customer, gin.H{
		"orderId":         orderID,
		"paymentIntentId": payment.IntentID,
	})
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	var order models.Order
	require.NoError(t, config.DB.First(&order, orderID).Error)
	assert.Equal(t, models.PaymentPaid, order.PaymentStatus)

	// Confirming twice is a harmless no-op
	w = doJSON(t, r, http.MethodPost, "/api/payments/confirm-payment", customer, gin.H{
		"orderId":         orderID,
		"paymentIntentId": payment.IntentID,
	})
	assert.Equal(t, http.StatusOK, w.Code)
}

func TestPaymentIntentGuards(t *testing.T) {
	r := setupTest(t)
	_, items := seedRestaurant(t, r, "Spice Garden")
	customer := registerUser(t, r, "alice", models.RoleCustomer)
	other := registerUser(t, r, "bob", models.RoleCustomer)

	cardOrder := placeOrder(t, r, customer, items[0], "card")
	cashOrder := placeOrder(t, r, customer, items[0], "cash")

	// Someone else's order
	w := doJSON(t, r, http.MethodPost, "/api/payments/create-payment-intent", other, gin.H{
		"amount":   24.59,
		"metadata": gin.H{"orderId": cardOrder},
	})
	assert.Equal(t, http.StatusForbidden, w.Code)

	// Cash orders never get intents
	w = doJSON(t, r, http.MethodPost, "/api/payments/create-payment-intent", customer, gin.H{
		"amount":   24.59,
		"metadata": gin.H{"orderId": cashOrder},
	})
	assert.Equal(t, http.StatusBadRequest, w.Code)

	// Unknown intent on confirm
	w = doJSON(t, r, http.MethodPost, "/api/payments/confirm-payment", customer, gin.H{
		"orderId":         cardOrder,
		"paymentIntentId": "pi_doesnotexist",
	})
	assert.Equal(t, http.StatusNotFound, w.Code)
}
