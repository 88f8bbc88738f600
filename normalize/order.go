// Package normalize decodes the two order wire shapes still produced by the
// older services into the canonical Order model. The legacy restaurant-service
// shape uses snake_case money/status fields and userId; the newer
// order-service shape uses camelCase money fields and customer_id. Detection
// and conversion happen once here, at the boundary, instead of per consumer.
package normalize

import (
	"encoding/json"
	"errors"
	"fmt"

	"food-ordering-api/models"
	"food-ordering-api/statemachine"
)

// Shape tags which wire format an order payload arrived in
type Shape int

const (
	ShapeUnknown Shape = iota
	ShapeLegacy        // restaurant-service: restaurant_id, total_price, order_status, userId
	ShapeModern        // order-service: restaurantId, totalAmount, status, customer_id
)

func (s Shape) String() string {
	switch s {
	case ShapeLegacy:
		return "legacy"
	case ShapeModern:
		return "modern"
	}
	return "unknown"
}

// ErrUnknownShape means the payload matched neither known wire format
var ErrUnknownShape = errors.New("order payload matches no known wire shape")

type wireItem struct {
	Name     string  `json:"name"`
	Price    float64 `json:"price"`
	Quantity int     `json:"quantity"`
}

// legacyOrder is the restaurant-service shape
type legacyOrder struct {
	ID              string     `json:"_id"`
	RestaurantID    string     `json:"restaurant_id"`
	UserID          string     `json:"userId"`
	Items           []wireItem `json:"items"`
	TotalPrice      float64    `json:"total_price"`
	OrderStatus     string     `json:"order_status"`
	PaymentStatus   string     `json:"payment_status"`
	PaymentMethod   string     `json:"payment_method"`
	DeliveryAddress string     `json:"delivery_address"`
	ExtraNotes      string     `json:"extra_notes"`
}

// modernOrder is the order-service shape
type modernOrder struct {
	ID              string     `json:"_id"`
	RestaurantID    string     `json:"restaurantId"`
	CustomerID      string     `json:"customer_id"`
	Items           []wireItem `json:"items"`
	TotalAmount     float64    `json:"totalAmount"`
	Status          string     `json:"status"`
	PaymentStatus   string     `json:"paymentStatus"`
	PaymentMethod   string     `json:"paymentMethod"`
	DeliveryAddress string     `json:"deliveryAddress"`
	Notes           string     `json:"notes"`
}

// Canonical is the normalized view every consumer works with
type Canonical struct {
	ExternalID      string
	RestaurantID    string
	CustomerID      string
	Items           []models.OrderItem
	Total           float64
	Status          models.OrderStatus
	PaymentStatus   models.PaymentStatus
	PaymentMethod   models.PaymentMethod
	DeliveryAddress string
	Notes           string
	Shape           Shape
}

// Detect probes a raw payload for its wire shape without fully decoding it
func Detect(raw []byte) Shape {
	var probe map[string]json.RawMessage
	if err := json.Unmarshal(raw, &probe); err != nil {
		return ShapeUnknown
	}
	if _, ok := probe["customer_id"]; ok {
		return ShapeModern
	}
	if _, ok := probe["totalAmount"]; ok {
		return ShapeModern
	}
	if _, ok := probe["total_price"]; ok {
		return ShapeLegacy
	}
	if _, ok := probe["order_status"]; ok {
		return ShapeLegacy
	}
	return ShapeUnknown
}

// DecodeOrder turns a raw payload in either wire shape into the canonical view
func DecodeOrder(raw []byte) (Canonical, error) {
	shape := Detect(raw)
	switch shape {
	case ShapeLegacy:
		var lo legacyOrder
		if err := json.Unmarshal(raw, &lo); err != nil {
			return Canonical{}, fmt.Errorf("decode legacy order: %w", err)
		}
		return Canonical{
			ExternalID:      lo.ID,
			RestaurantID:    lo.RestaurantID,
			CustomerID:      lo.UserID,
			Items:           toItems(lo.Items),
			Total:           lo.TotalPrice,
			Status:          normStatus(lo.OrderStatus),
			PaymentStatus:   normPaymentStatus(lo.PaymentStatus),
			PaymentMethod:   normPaymentMethod(lo.PaymentMethod),
			DeliveryAddress: lo.DeliveryAddress,
			Notes:           lo.ExtraNotes,
			Shape:           shape,
		}, nil
	case ShapeModern:
		var mo modernOrder
		if err := json.Unmarshal(raw, &mo); err != nil {
			return Canonical{}, fmt.Errorf("decode modern order: %w", err)
		}
		return Canonical{
			ExternalID:      mo.ID,
			RestaurantID:    mo.RestaurantID,
			CustomerID:      mo.CustomerID,
			Items:           toItems(mo.Items),
			Total:           mo.TotalAmount,
			Status:          normStatus(mo.Status),
			PaymentStatus:   normPaymentStatus(mo.PaymentStatus),
			PaymentMethod:   normPaymentMethod(mo.PaymentMethod),
			DeliveryAddress: mo.DeliveryAddress,
			Notes:           mo.Notes,
			Shape:           shape,
		}, nil
	}
	return Canonical{}, ErrUnknownShape
}

func toItems(in []wireItem) []models.OrderItem {
	out := make([]models.OrderItem, 0, len(in))
	for _, it := range in {
		out = append(out, models.OrderItem{Name: it.Name, Price: it.Price, Quantity: it.Quantity})
	}
	return out
}

func normStatus(s string) models.OrderStatus {
	if canon, ok := statemachine.Normalize(s); ok {
		return canon
	}
	// Unknown statuses stay pending; the import endpoint reports them
	return models.StatusPending
}

func normPaymentStatus(s string) models.PaymentStatus {
	switch s {
	case "paid", "PAID", "succeeded":
		return models.PaymentPaid
	case "failed", "FAILED":
		return models.PaymentFailed
	}
	return models.PaymentPending
}

func normPaymentMethod(s string) models.PaymentMethod {
	switch s {
	case "card", "CARD", "stripe":
		return models.PayByCard
	}
	return models.PayByCash
}
