package repository

import (
	"context"
	"database/sql"
	"strings"

	"github.com/pkg/errors"

	"github.com/iliyamo/geobites/internal/model"
)

// OrderRepo persists orders in `orders` and their lines in `order_items`
// (FK to orders.id with ON DELETE CASCADE).
type OrderRepo struct {
	db *sql.DB
}

// NewOrderRepo returns a new OrderRepo bound to the given database.
func NewOrderRepo(db *sql.DB) *OrderRepo { return &OrderRepo{db: db} }

// Create inserts the order header and all of its lines inside one
// transaction, so a failure never leaves a header without items.
func (r *OrderRepo) Create(ctx context.Context, o model.Order) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return errors.Wrap(err, "begin order tx")
	}
	committed := false
	defer func() {
		if !committed {
			_ = tx.Rollback()
		}
	}()

	const q = `INSERT INTO orders (id, email, customer_name, address, subtotal, fee, total, created_at)
	           VALUES (?, ?, ?, ?, ?, ?, ?, ?)`
	if _, err := tx.ExecContext(ctx, q, o.ID, o.Email, o.CustomerName, o.Address,
		o.Subtotal, o.Fee, o.Total, o.CreatedAt); err != nil {
		return errors.Wrap(err, "insert order")
	}
	if err := r.createItemsBulkTx(ctx, tx, o.ID, o.Items); err != nil {
		return errors.Wrap(err, "insert order items")
	}
	if err := tx.Commit(); err != nil {
		return errors.Wrap(err, "commit order")
	}
	committed = true
	return nil
}

// createItemsBulkTx inserts every line in a single statement.  An empty
// slice is a no-op.
func (r *OrderRepo) createItemsBulkTx(ctx context.Context, tx *sql.Tx, orderID string, items []model.OrderItem) error {
	if len(items) == 0 {
		return nil
	}
	var b strings.Builder
	b.WriteString("INSERT INTO order_items (order_id, item_id, name, price, qty) VALUES ")
	args := make([]interface{}, 0, len(items)*5)
	for i, it := range items {
		if i > 0 {
			b.WriteString(",")
		}
		b.WriteString("(?, ?, ?, ?, ?)")
		args = append(args, orderID, it.ItemID, it.Name, it.Price, it.Qty)
	}
	_, err := tx.ExecContext(ctx, b.String(), args...)
	return err
}

// ListAll returns every order, newest first, with its lines in the order
// they were placed.
func (r *OrderRepo) ListAll(ctx context.Context) ([]model.Order, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT id, email, customer_name, address, subtotal, fee, total, created_at
		 FROM orders ORDER BY created_at DESC, id`)
	if err != nil {
		return nil, errors.Wrap(err, "select orders")
	}
	defer rows.Close()

	orders := []model.Order{}
	index := map[string]int{}
	for rows.Next() {
		var o model.Order
		if err := rows.Scan(&o.ID, &o.Email, &o.CustomerName, &o.Address,
			&o.Subtotal, &o.Fee, &o.Total, &o.CreatedAt); err != nil {
			return nil, errors.Wrap(err, "scan order")
		}
		o.Items = []model.OrderItem{}
		index[o.ID] = len(orders)
		orders = append(orders, o)
	}
	if err := rows.Err(); err != nil {
		return nil, errors.Wrap(err, "iterate orders")
	}
	if len(orders) == 0 {
		return orders, nil
	}

	itemRows, err := r.db.QueryContext(ctx,
		"SELECT order_id, item_id, name, price, qty FROM order_items ORDER BY id")
	if err != nil {
		return nil, errors.Wrap(err, "select order items")
	}
	defer itemRows.Close()
	for itemRows.Next() {
		var orderID string
		var it model.OrderItem
		if err := itemRows.Scan(&orderID, &it.ItemID, &it.Name, &it.Price, &it.Qty); err != nil {
			return nil, errors.Wrap(err, "scan order item")
		}
		if i, ok := index[orderID]; ok {
			orders[i].Items = append(orders[i].Items, it)
		}
	}
	return orders, errors.Wrap(itemRows.Err(), "iterate order items")
}
