package models

import "time"

// Cart is the customer's not-yet-submitted selection. One cart per customer,
// locked to a single restaurant until cleared or checked out.
type Cart struct {
	ID           uint       `json:"id" gorm:"primaryKey"`
	CustomerID   uint       `json:"customer_id" gorm:"uniqueIndex;not null"`
	RestaurantID uint       `json:"restaurant_id"`
	Restaurant   Restaurant `json:"restaurant,omitempty" gorm:"foreignKey:RestaurantID"`
	Items        []CartItem `json:"items,omitempty" gorm:"foreignKey:CartID;constraint:OnDelete:CASCADE"`
	CreatedAt    time.Time  `json:"created_at"`
	UpdatedAt    time.Time  `json:"updated_at"`
}

type CartItem struct {
	ID         uint     `json:"id" gorm:"primaryKey"`
	CartID     uint     `json:"cart_id" gorm:"not null;index"`
	MenuItemID uint     `json:"menu_item_id" gorm:"not null"`
	MenuItem   MenuItem `json:"menu_item,omitempty" gorm:"foreignKey:MenuItemID"`
	Name       string   `json:"name"`  // snapshot name
	Price      float64  `json:"price"` // snapshot price
	Quantity   int      `json:"quantity" gorm:"not null"`
}
