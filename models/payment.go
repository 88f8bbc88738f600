package models

import "time"

// Payment records a card payment intent for an order. Card collection itself
// is delegated to the embedded payment element on the client; this service
// only issues intents and records confirmation — raw card data never lands here.
type Payment struct {
	ID           uint          `json:"id" gorm:"primaryKey"`
	OrderID      uint          `json:"order_id" gorm:"not null;index"`
	Order        Order         `json:"order,omitempty" gorm:"foreignKey:OrderID"`
	IntentID     string        `json:"intent_id" gorm:"uniqueIndex;not null"`
	ClientSecret string        `json:"-" gorm:"not null"`
	Amount       float64       `json:"amount" gorm:"not null"`
	Status       PaymentStatus `json:"status" gorm:"not null;default:'pending'"`
	ConfirmedAt  *time.Time    `json:"confirmed_at,omitempty"`
	CreatedAt    time.Time     `json:"created_at"`
	UpdatedAt    time.Time     `json:"updated_at"`
}
