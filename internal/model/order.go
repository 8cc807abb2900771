package model

import (
	"math"
	"strings"
	"time"
)

// DeliveryFee is the flat surcharge added to every order.
const DeliveryFee = 3.00

// Order is an immutable record of a completed checkout, stored in the
// `orders` table with its lines in `order_items`.
//
// Fields:
//  ID           – generated UUID.
//  Email        – purchaser's session email.
//  CustomerName – name typed at checkout.
//  Address      – delivery address typed at checkout.
//  Items        – snapshot of the sanitized cart.
//  Subtotal     – Σ price × qty, rounded to cents.
//  Fee          – DeliveryFee.
//  Total        – Subtotal + Fee, rounded to cents.
//  CreatedAt    – placement time (UTC).
type Order struct {
	ID           string      `json:"id"`
	Email        string      `json:"email"`
	CustomerName string      `json:"customer_name"`
	Address      string      `json:"address"`
	Items        []OrderItem `json:"items"`
	Subtotal     float64     `json:"subtotal"`
	Fee          float64     `json:"fee"`
	Total        float64     `json:"total"`
	CreatedAt    time.Time   `json:"created_at"`
}

// OrderItem is one sanitized cart line frozen into an order.
type OrderItem struct {
	ItemID string  `json:"id"`
	Name   string  `json:"name"`
	Price  float64 `json:"price"`
	Qty    float64 `json:"qty"`
}

// SanitizeItems keeps the entries that can be charged for: a non-empty
// name, a positive price and a positive quantity.
func SanitizeItems(entries []CartEntry) []OrderItem {
	out := make([]OrderItem, 0, len(entries))
	for _, e := range entries {
		if strings.TrimSpace(e.Name) == "" || !(e.Price > 0) || e.Qty <= 0 {
			continue
		}
		out = append(out, OrderItem{ItemID: e.ID, Name: e.Name, Price: e.Price, Qty: e.Qty})
	}
	return out
}

// Totals computes subtotal, fee and total for the given lines, each
// rounded to two decimals.  Total is derived from the rounded subtotal so
// that total == subtotal + fee holds for the stored values.
func Totals(items []OrderItem) (subtotal, fee, total float64) {
	var sum float64
	for _, it := range items {
		sum += it.Price * it.Qty
	}
	subtotal = RoundCents(sum)
	fee = RoundCents(DeliveryFee)
	total = RoundCents(subtotal + fee)
	return subtotal, fee, total
}

// RoundCents rounds v to two decimal places, half away from zero.
func RoundCents(v float64) float64 {
	return math.Round(v*100) / 100
}
