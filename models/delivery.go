package models

import "time"

// DeliveryStatus is the courier-facing lifecycle, distinct from OrderStatus.
// These stay uppercase — the delivery service has always used this vocabulary.
type DeliveryStatus string

const (
	DeliveryAssigned  DeliveryStatus = "ASSIGNED"
	DeliveryPickedUp  DeliveryStatus = "PICKED_UP"
	DeliveryInTransit DeliveryStatus = "IN_TRANSIT"
	DeliveryDelivered DeliveryStatus = "DELIVERED"
	DeliveryCancelled DeliveryStatus = "CANCELLED"
)

// Delivery is a courier assignment record referencing, but distinct from, an order.
type Delivery struct {
	ID                uint               `json:"id" gorm:"primaryKey"`
	OrderID           uint               `json:"order_id" gorm:"uniqueIndex;not null"`
	Order             Order              `json:"order,omitempty" gorm:"foreignKey:OrderID"`
	DriverID          *uint              `json:"driver_id"`
	Driver            *User              `json:"driver,omitempty" gorm:"foreignKey:DriverID"`
	Status            DeliveryStatus     `json:"status" gorm:"not null;default:'ASSIGNED'"`
	PickupAddress     string             `json:"pickup_address"`
	PickupLat         float64            `json:"pickup_lat"`
	PickupLng         float64            `json:"pickup_lng"`
	DeliveryAddress   string             `json:"delivery_address"`
	DeliveryLat       *float64           `json:"delivery_lat,omitempty"`
	DeliveryLng       *float64           `json:"delivery_lng,omitempty"`
	RestaurantContact string             `json:"restaurant_contact"`
	CustomerContact   string             `json:"customer_contact"`
	AssignedAt        *time.Time         `json:"assigned_at,omitempty"`
	PickedUpAt        *time.Time         `json:"picked_up_at,omitempty"`
	DeliveredAt       *time.Time         `json:"delivered_at,omitempty"`
	Locations         []DeliveryLocation `json:"locations,omitempty" gorm:"foreignKey:DeliveryID"`
	CreatedAt         time.Time          `json:"created_at"`
	UpdatedAt         time.Time          `json:"updated_at"`
}

// DeliveryLocation is one breadcrumb of the courier's reported position.
type DeliveryLocation struct {
	ID         uint      `json:"id" gorm:"primaryKey"`
	DeliveryID uint      `json:"delivery_id" gorm:"not null;index"`
	Lat        float64   `json:"lat"`
	Lng        float64   `json:"lng"`
	RecordedAt time.Time `json:"recorded_at"`
}
