package filestore

import (
	"context"
	"encoding/json"

	"github.com/pkg/errors"

	"github.com/iliyamo/geobites/internal/model"
)

// Carts is carts.json: an object keyed by email.  Values are kept raw so
// one corrupt cart never hides the others.
type Carts struct {
	file *jsonFile[map[string]json.RawMessage]
}

func (s *Carts) Get(_ context.Context, email string) ([]model.CartEntry, error) {
	all, err := s.file.read()
	if errors.Is(err, errCorrupt) {
		return []model.CartEntry{}, nil
	}
	if err != nil {
		return nil, err
	}
	raw, ok := all[email]
	if !ok {
		return []model.CartEntry{}, nil
	}
	return model.ParseCart(raw), nil
}

func (s *Carts) Put(_ context.Context, email string, items []model.CartEntry) error {
	if items == nil {
		items = []model.CartEntry{}
	}
	doc, err := json.Marshal(items)
	if err != nil {
		return err
	}
	return s.file.update(func(all map[string]json.RawMessage) (map[string]json.RawMessage, error) {
		if all == nil {
			all = map[string]json.RawMessage{}
		}
		all[email] = doc
		return all, nil
	})
}
