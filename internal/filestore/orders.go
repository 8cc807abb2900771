package filestore

import (
	"context"
	"sort"

	"github.com/iliyamo/geobites/internal/model"
)

// Orders is orders.json, appended in placement order.
type Orders struct {
	file *jsonFile[[]model.Order]
}

// Create appends o in a single write of the document.
func (s *Orders) Create(_ context.Context, o model.Order) error {
	return s.file.update(func(orders []model.Order) ([]model.Order, error) {
		return append(orders, o), nil
	})
}

// ListAll returns every order, newest first.
func (s *Orders) ListAll(_ context.Context) ([]model.Order, error) {
	orders, err := s.file.read()
	if err != nil {
		return nil, err
	}
	out := make([]model.Order, len(orders))
	for i := range orders {
		out[len(orders)-1-i] = orders[i]
		if out[len(orders)-1-i].Items == nil {
			out[len(orders)-1-i].Items = []model.OrderItem{}
		}
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].CreatedAt.After(out[j].CreatedAt) })
	return out, nil
}
