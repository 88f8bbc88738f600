package models

import "time"

// OrderStatus is the canonical (lowercase) order lifecycle vocabulary.
// Synonyms used by older services (CONFIRMED, READY_FOR_PICKUP, PLACED, any
// uppercase form) are mapped onto these at every boundary — see statemachine.
type OrderStatus string

const (
	StatusPending        OrderStatus = "pending"
	StatusAccepted       OrderStatus = "accepted"
	StatusPreparing      OrderStatus = "preparing"
	StatusReady          OrderStatus = "ready"
	StatusOutForDelivery OrderStatus = "out_for_delivery"
	StatusDelivered      OrderStatus = "delivered"
	StatusCancelled      OrderStatus = "cancelled"
)

// PaymentMethod is how the customer pays at checkout
type PaymentMethod string

const (
	PayByCard PaymentMethod = "card"
	PayByCash PaymentMethod = "cash"
)

// PaymentStatus tracks settlement, separate from the order lifecycle
type PaymentStatus string

const (
	PaymentPending PaymentStatus = "pending"
	PaymentPaid    PaymentStatus = "paid"
	PaymentFailed  PaymentStatus = "failed"
)

type Order struct {
	ID              uint          `json:"id" gorm:"primaryKey"`
	CustomerID      uint          `json:"customer_id" gorm:"not null"`
	Customer        User          `json:"customer,omitempty" gorm:"foreignKey:CustomerID"`
	RestaurantID    uint          `json:"restaurant_id" gorm:"not null"`
	Restaurant      Restaurant    `json:"restaurant,omitempty" gorm:"foreignKey:RestaurantID"`
	Status          OrderStatus   `json:"status" gorm:"not null;default:'pending'"`
	Subtotal        float64       `json:"subtotal"`
	DeliveryFee     float64       `json:"delivery_fee"`
	Tax             float64       `json:"tax"`
	TotalPrice      float64       `json:"total_price"`
	PaymentMethod   PaymentMethod `json:"payment_method" gorm:"not null;default:'cash'"`
	PaymentStatus   PaymentStatus `json:"payment_status" gorm:"not null;default:'pending'"`
	DeliveryAddress string        `json:"delivery_address" gorm:"not null"`
	DeliveryLat     *float64      `json:"delivery_lat,omitempty"`
	DeliveryLng     *float64      `json:"delivery_lng,omitempty"`
	Notes           string        `json:"notes"`
	EstimatedTime   int           `json:"estimated_time_minutes"` // ETA in minutes
	ExternalRef     string        `json:"external_ref,omitempty" gorm:"index"`
	Items           []OrderItem   `json:"items,omitempty" gorm:"foreignKey:OrderID"`
	StatusHistory   []OrderStatusHistory `json:"status_history,omitempty" gorm:"foreignKey:OrderID"`
	CreatedAt       time.Time     `json:"created_at"`
	UpdatedAt       time.Time     `json:"updated_at"`
}

type OrderItem struct {
	ID         uint     `json:"id" gorm:"primaryKey"`
	OrderID    uint     `json:"order_id" gorm:"not null"`
	MenuItemID uint     `json:"menu_item_id"`
	MenuItem   MenuItem `json:"menu_item,omitempty" gorm:"foreignKey:MenuItemID"`
	Quantity   int      `json:"quantity" gorm:"not null"`
	Price      float64  `json:"price" gorm:"not null"` // snapshot price at time of order
	Name       string   `json:"name"`                  // snapshot name
}

// OrderStatusHistory tracks every status change for the audit trail
type OrderStatusHistory struct {
	ID         uint        `json:"id" gorm:"primaryKey"`
	OrderID    uint        `json:"order_id" gorm:"not null"`
	FromStatus OrderStatus `json:"from_status"`
	ToStatus   OrderStatus `json:"to_status" gorm:"not null"`
	ChangedBy  uint        `json:"changed_by"` // user ID who triggered the transition
	Note       string      `json:"note"`
	CreatedAt  time.Time   `json:"created_at"`
}
