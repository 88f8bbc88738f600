package handlers

import (
	"net/http"

	"food-ordering-api/cache"
	"food-ordering-api/config"
	"food-ordering-api/models"
	"food-ordering-api/statemachine"

	"github.com/gin-gonic/gin"
)

// ListRestaurants returns verified restaurants (public). Pass all=true to
// include unverified ones.
func ListRestaurants(c *gin.Context) {
	var restaurants []models.Restaurant
	query := config.DB

	if c.Query("all") != "true" {
		query = query.Where("is_verified = ?", true)
	}
	if cuisine := c.Query("cuisine"); cuisine != "" {
		query = query.Where("cuisine LIKE ?", "%"+cuisine+"%")
	}
	if search := c.Query("search"); search != "" {
		query = query.Where("name LIKE ?", "%"+search+"%")
	}
	if open := c.Query("open"); open == "true" {
		query = query.Where("is_open = ?", true)
	}

	query.Find(&restaurants)
	c.JSON(http.StatusOK, gin.H{
		"count":       len(restaurants),
		"restaurants": restaurants,
	})
}

// GetRestaurant returns a single restaurant with its menu
func GetRestaurant(c *gin.Context) {
	var restaurant models.Restaurant
	if err := config.DB.Preload("MenuItems").First(&restaurant, c.Param("id")).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Restaurant not found"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"restaurant": restaurant})
}

// GetRestaurantMenu returns the menu for a restaurant (public). Reads go
// through the Redis cache when one is configured; filters apply after the
// cache so a cached menu serves every filter combination.
func GetRestaurantMenu(c *gin.Context) {
	restaurantID := c.Param("id")
	var restaurant models.Restaurant
	if err := config.DB.First(&restaurant, restaurantID).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Restaurant not found"})
		return
	}

	items, hit := cache.Menu.Get(c.Request.Context(), restaurant.ID)
	if !hit {
		config.DB.Where("restaurant_id = ?", restaurant.ID).Find(&items)
		cache.Menu.Set(c.Request.Context(), restaurant.ID, items)
	}

	filtered := items[:0:0]
	category := c.Query("category")
	availableOnly := c.Query("available") == "true"
	vegOnly := c.Query("is_veg") == "true"
	for _, it := range items {
		if category != "" && it.Category != category {
			continue
		}
		if availableOnly && !it.IsAvailable {
			continue
		}
		if vegOnly && !it.IsVeg {
			continue
		}
		filtered = append(filtered, it)
	}

	c.JSON(http.StatusOK, gin.H{
		"restaurant": restaurant.Name,
		"count":      len(filtered),
		"menu":       filtered,
		"cached":     hit,
	})
}

// GetMenuItem returns a single menu item (public)
func GetMenuItem(c *gin.Context) {
	var item models.MenuItem
	if err := config.DB.First(&item, c.Param("id")).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Menu item not found"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"item": item})
}

// GetStateMachineInfo returns the full order state machine for informational purposes
func GetStateMachineInfo(c *gin.Context) {
	var info []gin.H
	for _, t := range statemachine.GetAllTransitions() {
		info = append(info, gin.H{"from": t.From, "to": t.To, "actor": t.Actor})
	}
	c.JSON(http.StatusOK, gin.H{
		"state_machine":   info,
		"terminal_states": []models.OrderStatus{models.StatusDelivered, models.StatusCancelled},
		"description":     "Food ordering lifecycle state machine",
	})
}
