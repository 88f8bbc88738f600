package routes

import (
	"food-ordering-api/handlers"
	"food-ordering-api/middleware"
	"food-ordering-api/models"

	"github.com/gin-gonic/gin"
)

func SetupRoutes(r *gin.Engine) {
	// ── Public routes ──────────────────────────────────────────────
	public := r.Group("/api")
	{
		// Auth
		public.POST("/auth/register", handlers.Register)
		public.POST("/auth/login", handlers.Login)

		// Restaurants & menus (no auth needed)
		public.GET("/restaurants", handlers.ListRestaurants)
		public.GET("/restaurants/:id", handlers.GetRestaurant)
		public.GET("/menu-items/restaurant/:id", handlers.GetRestaurantMenu)
		public.GET("/menu-items/:id", handlers.GetMenuItem)

		// State machine info (docs/Postman)
		public.GET("/state-machine", handlers.GetStateMachineInfo)
	}

	// ── Authenticated routes ───────────────────────────────────────
	auth := r.Group("/api")
	auth.Use(middleware.AuthRequired())
	{
		auth.GET("/profile", handlers.GetProfile)
		auth.POST("/auth/logout", handlers.Logout)
		auth.GET("/deliveries/:id/track", handlers.TrackDelivery)
	}

	// ── Customer routes ────────────────────────────────────────────
	customer := r.Group("/api")
	customer.Use(middleware.AuthRequired(), middleware.RoleRequired(models.RoleCustomer))
	{
		// Cart
		customer.GET("/cart", handlers.GetCart)
		customer.POST("/cart/items", handlers.AddCartItem)
		customer.PUT("/cart/items/:itemId", handlers.UpdateCartItem)
		customer.DELETE("/cart/items/:itemId", handlers.RemoveCartItem)
		customer.DELETE("/cart", handlers.ClearCart)
		customer.POST("/cart/checkout", handlers.Checkout)

		// Orders
		customer.POST("/orders", handlers.PlaceOrder)
		customer.GET("/orders", handlers.GetMyOrders)
		customer.GET("/orders/:id", handlers.GetOrderDetail)
		customer.PUT("/orders/:id/cancel", handlers.CancelOrder)
		customer.GET("/orders/:id/qr", handlers.GetOrderQR)

		// Payments
		customer.POST("/payments/create-payment-intent", handlers.CreatePaymentIntent)
		customer.POST("/payments/confirm-payment", handlers.ConfirmPayment)
	}

	// ── Restaurant owner routes ────────────────────────────────────
	restaurant := r.Group("/api/restaurant")
	restaurant.Use(middleware.AuthRequired(), middleware.RoleRequired(models.RoleRestaurant))
	{
		// Restaurant management
		restaurant.POST("/", handlers.CreateRestaurant)
		restaurant.GET("/", handlers.GetMyRestaurant)
		restaurant.PUT("/", handlers.UpdateRestaurant)

		// Menu management
		restaurant.POST("/menu", handlers.AddMenuItem)
		restaurant.PUT("/menu/:itemId", handlers.UpdateMenuItem)
		restaurant.DELETE("/menu/:itemId", handlers.DeleteMenuItem)

		// Order management
		restaurant.GET("/orders", handlers.GetRestaurantOrders)
		restaurant.PUT("/orders/:id/status", handlers.UpdateOrderStatus)
	}

	// ── Driver routes ──────────────────────────────────────────────
	driver := r.Group("/api/deliveries")
	driver.Use(middleware.AuthRequired(), middleware.RoleRequired(models.RoleDriver))
	{
		driver.GET("/available", handlers.GetAvailableDeliveries)
		driver.GET("/active", handlers.GetActiveDeliveries)
		driver.GET("/history", handlers.GetDeliveryHistory)
		driver.PUT("/:id/assign", handlers.AssignDelivery)
		driver.POST("/:id/location", handlers.UpdateDeliveryLocation)
		driver.PUT("/:id/status", handlers.UpdateDeliveryStatus)
	}

	// ── Admin routes ───────────────────────────────────────────────
	admin := r.Group("/api/admin")
	admin.Use(middleware.AuthRequired(), middleware.RoleRequired(models.RoleAdmin))
	{
		admin.GET("/orders", handlers.AdminGetAllOrders)
		admin.PUT("/orders/:id/status", handlers.AdminForceOrderStatus)
		admin.POST("/orders/import", handlers.AdminImportOrder)
		admin.GET("/users", handlers.AdminGetAllUsers)
		admin.GET("/restaurants", handlers.AdminGetAllRestaurants)
		admin.PUT("/restaurants/:id/verify", handlers.AdminVerifyRestaurant)
	}
}
