package model

import (
	"bytes"
	"encoding/json"
	"math"
	"strconv"
	"strings"
)

// CartEntry is one line of a customer's cart.  Price and quantity arrive
// from the browser and are coerced leniently: numeric strings are accepted,
// anything unparseable becomes zero and is dropped when an order is placed.
type CartEntry struct {
	ID    string  `json:"id"`
	Name  string  `json:"name"`
	Price float64 `json:"price"`
	Qty   float64 `json:"qty"`
	Img   string  `json:"img,omitempty"`
}

// MaxLineQty caps the quantity a single cart line can reach through Add.
const MaxLineQty = 999

type rawCartEntry struct {
	ID    json.RawMessage `json:"id"`
	Name  json.RawMessage `json:"name"`
	Price json.RawMessage `json:"price"`
	Qty   json.RawMessage `json:"qty"`
	Img   json.RawMessage `json:"img"`
}

// UnmarshalJSON accepts ids and names of any scalar type and numbers
// encoded as strings.
func (e *CartEntry) UnmarshalJSON(b []byte) error {
	var raw rawCartEntry
	if err := json.Unmarshal(b, &raw); err != nil {
		return err
	}
	e.ID = scalarString(raw.ID)
	e.Name = scalarString(raw.Name)
	e.Price = scalarNumber(raw.Price)
	e.Img = scalarString(raw.Img)
	e.Qty = scalarNumber(raw.Qty)
	return nil
}

// ParseCart decodes a request body into cart entries.  Anything that is not
// a JSON array yields an empty cart, and elements that are not objects are
// skipped.
func ParseCart(body []byte) []CartEntry {
	body = bytes.TrimSpace(body)
	if len(body) == 0 || body[0] != '[' {
		return []CartEntry{}
	}
	var elems []json.RawMessage
	if err := json.Unmarshal(body, &elems); err != nil {
		return []CartEntry{}
	}
	out := make([]CartEntry, 0, len(elems))
	for _, el := range elems {
		var e CartEntry
		if err := json.Unmarshal(el, &e); err != nil {
			continue
		}
		out = append(out, e)
	}
	return out
}

// Cart is an ordered list of entries with the quantity helpers the
// storefront uses.
type Cart []CartEntry

// Add appends e, or raises the quantity of the entry with the same id.
// Quantities below one are treated as one and the result never exceeds
// MaxLineQty.
func (c Cart) Add(e CartEntry) Cart {
	if e.Qty < 1 {
		e.Qty = 1
	}
	for i := range c {
		if c[i].ID == e.ID {
			c[i].Qty = math.Min(c[i].Qty+e.Qty, MaxLineQty)
			return c
		}
	}
	e.Qty = math.Min(e.Qty, MaxLineQty)
	return append(c, e)
}

// Decrement lowers the quantity of the entry with the given id by one and
// removes it once it would drop below one.  Unknown ids are ignored.
func (c Cart) Decrement(id string) Cart {
	for i := range c {
		if c[i].ID != id {
			continue
		}
		if c[i].Qty-1 < 1 {
			return append(c[:i:i], c[i+1:]...)
		}
		c[i].Qty--
		return c
	}
	return c
}

func scalarString(raw json.RawMessage) string {
	raw = bytes.TrimSpace(raw)
	if len(raw) == 0 || string(raw) == "null" {
		return ""
	}
	var s string
	if err := json.Unmarshal(raw, &s); err == nil {
		return s
	}
	switch raw[0] {
	case '{', '[':
		return ""
	}
	return string(raw)
}

func scalarNumber(raw json.RawMessage) float64 {
	raw = bytes.TrimSpace(raw)
	if len(raw) == 0 || string(raw) == "null" {
		return 0
	}
	var f float64
	if err := json.Unmarshal(raw, &f); err == nil {
		return f
	}
	var s string
	if err := json.Unmarshal(raw, &s); err != nil {
		return 0
	}
	f, err := strconv.ParseFloat(strings.TrimSpace(s), 64)
	if err != nil || math.IsNaN(f) || math.IsInf(f, 0) {
		return 0
	}
	return f
}
