// Package queue defines message payloads exchanged over the message broker
// and the background consumer that records them.
package queue

import "time"

// OrderQueueName is the durable queue order events are published to.
const OrderQueueName = "order.placed"

// OrderPlacedEvent is published once an order has been persisted.  It
// carries enough for downstream consumers to log or notify without reading
// the primary store.
type OrderPlacedEvent struct {
    OrderID      string    `json:"order_id"`
    Email        string    `json:"email"`
    CustomerName string    `json:"customer_name"`
    ItemCount    int       `json:"item_count"`
    Subtotal     float64   `json:"subtotal"`
    Fee          float64   `json:"fee"`
    Total        float64   `json:"total"`
    PlacedAt     time.Time `json:"placed_at"`
}
