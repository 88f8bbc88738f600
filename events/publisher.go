// Package events publishes order lifecycle changes to Kafka for downstream
// consumers (notifications, analytics). Publishing is best-effort and
// optional — with no broker configured every publish is a no-op.
package events

import (
	"context"
	"encoding/json"
	"log"
	"os"
	"strconv"
	"time"

	"food-ordering-api/models"

	"github.com/segmentio/kafka-go"
)

// Orders is the process-wide order event publisher; nil-safe when unconfigured
var Orders = &Publisher{}

type Publisher struct {
	Writer *kafka.Writer
}

// OrderEvent is the wire format of an order status change
type OrderEvent struct {
	OrderID    uint               `json:"order_id"`
	FromStatus models.OrderStatus `json:"from_status"`
	ToStatus   models.OrderStatus `json:"to_status"`
	ChangedBy  uint               `json:"changed_by"`
	At         time.Time          `json:"at"`
}

// Init wires the publisher to KAFKA_BROKER/KAFKA_TOPIC when set
func Init() {
	broker := os.Getenv("KAFKA_BROKER")
	if broker == "" {
		log.Println("KAFKA_BROKER not set — order events disabled")
		return
	}
	topic := os.Getenv("KAFKA_TOPIC")
	if topic == "" {
		topic = "order-events"
	}
	Orders.Writer = &kafka.Writer{
		Addr:     kafka.TCP(broker),
		Topic:    topic,
		Balancer: &kafka.LeastBytes{},
	}
	log.Printf("Order events publishing to %s topic %s", broker, topic)
}

// PublishStatusChange emits one order status transition. Failures are logged,
// never surfaced to the request path.
func (p *Publisher) PublishStatusChange(ctx context.Context, ev OrderEvent) {
	if p == nil || p.Writer == nil {
		return
	}
	payload, _ := json.Marshal(ev)
	err := p.Writer.WriteMessages(ctx, kafka.Message{
		Key:   []byte(strconv.FormatUint(uint64(ev.OrderID), 10)),
		Value: payload,
	})
	if err != nil {
		log.Printf("publish order event for order %d: %v", ev.OrderID, err)
	}
}

// Close flushes the writer on shutdown
func (p *Publisher) Close() {
	if p != nil && p.Writer != nil {
		_ = p.Writer.Close()
	}
}
