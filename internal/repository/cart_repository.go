package repository

import (
	"context"
	"database/sql"
	"encoding/json"

	"github.com/pkg/errors"

	"github.com/iliyamo/geobites/internal/model"
)

// CartRepo stores each cart as a JSON document keyed by email in the
// `carts` table.
type CartRepo struct{ DB *sql.DB }

func NewCartRepo(db *sql.DB) *CartRepo { return &CartRepo{DB: db} }

// Get returns the stored cart, or an empty cart when none exists or the
// stored document is not a JSON array.
func (r *CartRepo) Get(ctx context.Context, email string) ([]model.CartEntry, error) {
	var doc []byte
	err := r.DB.QueryRowContext(ctx,
		"SELECT cart_json FROM carts WHERE email = ? LIMIT 1", email).Scan(&doc)
	if errors.Is(err, sql.ErrNoRows) {
		return []model.CartEntry{}, nil
	}
	if err != nil {
		return nil, errors.Wrap(err, "select cart")
	}
	return model.ParseCart(doc), nil
}

// Put replaces the cart for email.
func (r *CartRepo) Put(ctx context.Context, email string, items []model.CartEntry) error {
	if items == nil {
		items = []model.CartEntry{}
	}
	doc, err := json.Marshal(items)
	if err != nil {
		return errors.Wrap(err, "encode cart")
	}
	_, err = r.DB.ExecContext(ctx,
		`INSERT INTO carts (email, cart_json) VALUES (?, ?)
		 ON DUPLICATE KEY UPDATE cart_json = VALUES(cart_json), updated_at = CURRENT_TIMESTAMP`,
		email, doc)
	return errors.Wrap(err, "upsert cart")
}
