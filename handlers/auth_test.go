package handlers_test

import (
	"net/http"
	"testing"

	"food-ordering-api/models"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoginRejectsBadCredentials(t *testing.T) {
	r := setupTest(t)
	registerUser(t, r, "alice", models.RoleCustomer)

	w := doJSON(t, r, http.MethodPost, "/api/auth/login", "", gin.H{
		"email":    "alice@example.com",
		"password": "wrongpass",
	})
	assert.Equal(t, http.StatusUnauthorized, w.Code)

	w = doJSON(t, r, http.MethodPost, "/api/auth/login", "", gin.H{
		"email":    "alice@example.com",
		"password": "secret123",
	})
	assert.Equal(t, http.StatusOK, w.Code)
}

func TestDuplicateEmailConflicts(t *testing.T) {
	r := setupTest(t)
	registerUser(t, r, "alice", models.RoleCustomer)
	w := doJSON(t, r, http.MethodPost, "/api/auth/register", "", gin.H{
		"name":     "alice again",
		"email":    "alice@example.com",
		"password": "secret123",
		"role":     "customer",
	})
	assert.Equal(t, http.StatusConflict, w.Code)
}

func TestLogoutRevokesToken(t *testing.T) {
	r := setupTest(t)
	token := registerUser(t, r, "alice", models.RoleCustomer)

	w := doJSON(t, r, http.MethodGet, "/api/profile", token, nil)
	require.Equal(t, http.StatusOK, w.Code)

	w = doJSON(t, r, http.MethodPost, "/api/auth/logout", token, nil)
	require.Equal(t, http.StatusOK, w.Code)

	// The same token is dead from here on
	w = doJSON(t, r, http.MethodGet, "/api/profile", token, nil)
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestRoleGates(t *testing.T) {
	r := setupTest(t)
	customer := registerUser(t, r, "alice", models.RoleCustomer)
	driver := registerUser(t, r, "dilan", models.RoleDriver)

	// Customer cannot reach driver routes, and vice versa
	w := doJSON(t, r, http.MethodGet, "/api/deliveries/available", customer, nil)
	assert.Equal(t, http.StatusForbidden, w.Code)
	w = doJSON(t, r, http.MethodGet, "/api/cart", driver, nil)
	assert.Equal(t, http.StatusForbidden, w.Code)

	// No token at all
	w = doJSON(t, r, http.MethodGet, "/api/cart", "", nil)
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}
