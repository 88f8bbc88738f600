package handlers_test

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strconv"
	"strings"
	"testing"

	"food-ordering-api/config"
	"food-ordering-api/middleware"
	"food-ordering-api/models"
	"food-ordering-api/routes"

	"github.com/gin-gonic/gin"
	"github.com/glebarez/sqlite"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// setupTest gives each test its own in-memory database and router
func setupTest(t *testing.T) *gin.Engine {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)
	sqlDB, err := db.DB()
	require.NoError(t, err)
	// One in-memory sqlite connection; a second one would see an empty database
	sqlDB.SetMaxOpenConns(1)
	require.NoError(t, config.Migrate(db))
	config.DB = db

	middleware.Tokens = middleware.NewMemoryDenylist()

	gin.SetMode(gin.TestMode)
	r := gin.New()
	routes.SetupRoutes(r)
	return r
}

func doJSON(t *testing.T, r *gin.Engine, method, path, token string, body interface{}) *httptest.ResponseRecorder {
	t.Helper()
	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func decodeBody(t *testing.T, w *httptest.ResponseRecorder) map[string]interface{} {
	t.Helper()
	var out map[string]interface{}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &out))
	return out
}

// registerUser creates an account through the API and returns its token
func registerUser(t *testing.T, r *gin.Engine, name string, role models.UserRole) string {
	t.Helper()
	// Display names may contain spaces; the email local part must not
	local := strings.ToLower(strings.ReplaceAll(name, " ", "."))
	w := doJSON(t, r, http.MethodPost, "/api/auth/register", "", gin.H{
		"name":     name,
		"email":    local + "@example.com",
		"password": "secret123",
		"role":     role,
		"phone":    "0771234567",
	})
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	return decodeBody(t, w)["token"].(string)
}

// seedRestaurant creates an owner with a verified, open restaurant and two
// menu items; returns the owner token and the menu item IDs.
func seedRestaurant(t *testing.T, r *gin.Engine, name string) (ownerToken string, itemIDs []uint) {
	t.Helper()
	ownerToken = registerUser(t, r, name+"-owner", models.RoleRestaurant)

	w := doJSON(t, r, http.MethodPost, "/api/restaurant/", ownerToken, gin.H{
		"name":    name,
		"cuisine": "Sri Lankan",
		"address": "12 Galle Rd",
		"phone":   "0112345678",
		"lat":     6.90,
		"lng":     79.85,
	})
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())

	config.DB.Model(&models.Restaurant{}).Where("name = ?", name).Update("is_verified", true)

	for _, item := range []gin.H{
		{"name": "Kottu", "price": 10.0, "category": "mains"},
		{"name": "Hoppers", "price": 5.0, "category": "mains", "is_veg": true},
	} {
		w = doJSON(t, r, http.MethodPost, "/api/restaurant/menu", ownerToken, item)
		require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
		body := decodeBody(t, w)
		itemIDs = append(itemIDs, uint(body["item"].(map[string]interface{})["id"].(float64)))
	}
	return ownerToken, itemIDs
}

func itoa(v uint) string {
	return strconv.FormatUint(uint64(v), 10)
}
