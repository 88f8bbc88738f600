package handlers_test

import (
	"net/http"
	"testing"

	"food-ordering-api/config"
	"food-ordering-api/models"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// readyOrder walks a fresh order to ready and returns its delivery ID
func readyOrder(t *testing.T, r *gin.Engine, owner, customer string, itemID uint, method string) (orderID, deliveryID uint) {
	t.Helper()
	orderID = placeOrder(t, r, customer, itemID, method)
	path := "/api/restaurant/orders/" + itoa(orderID) + "/status"
	for _, status := range []string{"accepted", "preparing", "ready"} {
		w := doJSON(t, r, http.MethodPut, path, owner, gin.H{"status": status})
		require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	}
	var delivery models.Delivery
	require.NoError(t, config.DB.Where("order_id = ?", orderID).First(&delivery).Error)
	return orderID, delivery.ID
}

func TestDeliveryAssignFirstDriverWins(t *testing.T) {
	r := setupTest(t)
	owner, items := seedRestaurant(t, r, "Spice Garden")
	customer := registerUser(t, r, "alice", models.RoleCustomer)
	driver1 := registerUser(t, r, "dilan", models.RoleDriver)
	driver2 := registerUser(t, r, "nimal", models.RoleDriver)

	_, deliveryID := readyOrder(t, r, owner, customer, items[0], "cash")

	// Shows up as available
	w := doJSON(t, r, http.MethodGet, "/api/deliveries/available", driver1, nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.EqualValues(t, 1, decodeBody(t, w)["count"].(float64))

	w = doJSON(t, r, http.MethodPut, "/api/deliveries/"+itoa(deliveryID)+"/assign", driver1, nil)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	// Second claim conflicts
	w = doJSON(t, r, http.MethodPut, "/api/deliveries/"+itoa(deliveryID)+"/assign", driver2, nil)
	assert.Equal(t, http.StatusConflict, w.Code)

	// Claimed delivery leaves the available list and shows as active
	w = doJSON(t, r, http.MethodGet, "/api/deliveries/available", driver2, nil)
	assert.EqualValues(t, 0, decodeBody(t, w)["count"].(float64))
	w = doJSON(t, r, http.MethodGet, "/api/deliveries/active", driver1, nil)
	assert.EqualValues(t, 1, decodeBody(t, w)["count"].(float64))
}

func TestDeliveryLocationFallback(t *testing.T) {
	r := setupTest(t)
	owner, items := seedRestaurant(t, r, "Spice Garden")
	customer := registerUser(t, r, "alice", models.RoleCustomer)
	driver := registerUser(t, r, "dilan", models.RoleDriver)

	_, deliveryID := readyOrder(t, r, owner, customer, items[0], "cash")
	doJSON(t, r, http.MethodPut, "/api/deliveries/"+itoa(deliveryID)+"/assign", driver, nil)

	// Report without coordinates: placeholder near the pickup point
	w := doJSON(t, r, http.MethodPost, "/api/deliveries/"+itoa(deliveryID)+"/location", driver, gin.H{})
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	body := decodeBody(t, w)
	assert.True(t, body["fallback"].(bool))
	loc := body["location"].(map[string]interface{})
	assert.InDelta(t, 6.91, loc["lat"].(float64), 0.0001)
	assert.InDelta(t, 79.86, loc["lng"].(float64), 0.0001)

	// Real coordinates pass straight through
	w = doJSON(t, r, http.MethodPost, "/api/deliveries/"+itoa(deliveryID)+"/location", driver, gin.H{
		"lat": 6.95, "lng": 79.87,
	})
	require.Equal(t, http.StatusOK, w.Code)
	body = decodeBody(t, w)
	assert.False(t, body["fallback"].(bool))

	// Tracking reports the latest breadcrumb
	w = doJSON(t, r, http.MethodGet, "/api/deliveries/"+itoa(deliveryID)+"/track", customer, nil)
	require.Equal(t, http.StatusOK, w.Code)
	body = decodeBody(t, w)
	assert.False(t, body["estimated"].(bool))
	pos := body["position"].(map[string]interface{})
	assert.InDelta(t, 6.95, pos["lat"].(float64), 0.0001)
}

func TestTrackBeforeFirstBreadcrumbIsEstimated(t *testing.T) {
	r := setupTest(t)
	owner, items := seedRestaurant(t, r, "Spice Garden")
	customer := registerUser(t, r, "alice", models.RoleCustomer)

	_, deliveryID := readyOrder(t, r, owner, customer, items[0], "cash")

	w := doJSON(t, r, http.MethodGet, "/api/deliveries/"+itoa(deliveryID)+"/track", customer, nil)
	require.Equal(t, http.StatusOK, w.Code)
	body := decodeBody(t, w)
	assert.True(t, body["estimated"].(bool))
	pos := body["position"].(map[string]interface{})
	assert.InDelta(t, 6.91, pos["lat"].(float64), 0.0001)

	// Another customer cannot track it
	other := registerUser(t, r, "bob", models.RoleCustomer)
	w = doJSON(t, r, http.MethodGet, "/api/deliveries/"+itoa(deliveryID)+"/track", other, nil)
	assert.Equal(t, http.StatusForbidden, w.Code)
}

func TestDeliveryLifecycleDrivesOrder(t *testing.T) {
	r := setupTest(t)
	owner, items := seedRestaurant(t, r, "Spice Garden")
	customer := registerUser(t, r, "alice", models.RoleCustomer)
	driver := registerUser(t, r, "dilan", models.RoleDriver)

	orderID, deliveryID := readyOrder(t, r, owner, customer, items[0], "cash")
	statusPath := "/api/deliveries/" + itoa(deliveryID) + "/status"
	doJSON(t, r, http.MethodPut, "/api/deliveries/"+itoa(deliveryID)+"/assign", driver, nil)

	// Skipping a step is rejected
	w := doJSON(t, r, http.MethodPut, statusPath, driver, gin.H{"status": "IN_TRANSIT"})
	assert.Equal(t, http.StatusUnprocessableEntity, w.Code)

	// Pickup puts the order on the road
	w = doJSON(t, r, http.MethodPut, statusPath, driver, gin.H{"status": "PICKED_UP"})
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	var order models.Order
	require.NoError(t, config.DB.First(&order, orderID).Error)
	assert.Equal(t, models.StatusOutForDelivery, order.Status)

	w = doJSON(t, r, http.MethodPut, statusPath, driver, gin.H{"status": "IN_TRANSIT"})
	require.Equal(t, http.StatusOK, w.Code)

	// Completion closes the order and settles the cash payment
	w = doJSON(t, r, http.MethodPut, statusPath, driver, gin.H{"status": "DELIVERED"})
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	require.NoError(t, config.DB.First(&order, orderID).Error)
	assert.Equal(t, models.StatusDelivered, order.Status)
	assert.Equal(t, models.PaymentPaid, order.PaymentStatus)

	// Completed delivery moves from active to history
	w = doJSON(t, r, http.MethodGet, "/api/deliveries/history", driver, nil)
	assert.EqualValues(t, 1, decodeBody(t, w)["count"].(float64))

	// A stranger driver cannot touch someone else's delivery
	stranger := registerUser(t, r, "kasun", models.RoleDriver)
	w = doJSON(t, r, http.MethodPost, "/api/deliveries/"+itoa(deliveryID)+"/location", stranger, gin.H{})
	assert.Equal(t, http.StatusForbidden, w.Code)
}

func TestCancelRemovesUnclaimedDelivery(t *testing.T) {
	r := setupTest(t)
	owner, items := seedRestaurant(t, r, "Spice Garden")
	customer := registerUser(t, r, "alice", models.RoleCustomer)
	driver := registerUser(t, r, "dilan", models.RoleDriver)

	orderID, deliveryID := readyOrder(t, r, owner, customer, items[0], "cash")

	w := doJSON(t, r, http.MethodPut, "/api/restaurant/orders/"+itoa(orderID)+"/status", owner, gin.H{"status": "cancelled"})
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	// The open assignment is gone, not claimable
	w = doJSON(t, r, http.MethodGet, "/api/deliveries/available", driver, nil)
	assert.EqualValues(t, 0, decodeBody(t, w)["count"].(float64))
	w = doJSON(t, r, http.MethodPut, "/api/deliveries/"+itoa(deliveryID)+"/assign", driver, nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestCancelVoidsClaimedDelivery(t *testing.T) {
	r := setupTest(t)
	owner, items := seedRestaurant(t, r, "Spice Garden")
	customer := registerUser(t, r, "alice", models.RoleCustomer)
	driver := registerUser(t, r, "dilan", models.RoleDriver)

	orderID, deliveryID := readyOrder(t, r, owner, customer, items[0], "cash")
	w := doJSON(t, r, http.MethodPut, "/api/deliveries/"+itoa(deliveryID)+"/assign", driver, nil)
	require.Equal(t, http.StatusOK, w.Code)

	w = doJSON(t, r, http.MethodPut, "/api/restaurant/orders/"+itoa(orderID)+"/status", owner, gin.H{"status": "cancelled"})
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	// The claimed delivery is kept for the driver's records but voided
	var delivery models.Delivery
	require.NoError(t, config.DB.First(&delivery, deliveryID).Error)
	assert.Equal(t, models.DeliveryCancelled, delivery.Status)

	// It drops out of the active list and accepts no further transitions
	w = doJSON(t, r, http.MethodGet, "/api/deliveries/active", driver, nil)
	assert.EqualValues(t, 0, decodeBody(t, w)["count"].(float64))
	w = doJSON(t, r, http.MethodPut, "/api/deliveries/"+itoa(deliveryID)+"/status", driver, gin.H{"status": "PICKED_UP"})
	assert.Equal(t, http.StatusUnprocessableEntity, w.Code)
}
