package repository

import (
	"context"
	"database/sql"

	"github.com/pkg/errors"
)

// DBHealth pings MySQL with SELECT 1.
type DBHealth struct{ DB *sql.DB }

func (h DBHealth) Ping(ctx context.Context) error {
	var one int
	if err := h.DB.QueryRowContext(ctx, "SELECT 1").Scan(&one); err != nil {
		return errors.Wrap(err, "ping database")
	}
	return nil
}

// NewMySQLStores wires every MySQL repository onto db.
func NewMySQLStores(db *sql.DB) Stores {
	return Stores{
		Users:    NewUserRepo(db),
		Carts:    NewCartRepo(db),
		Orders:   NewOrderRepo(db),
		Contacts: NewContactRepo(db),
		Health:   DBHealth{DB: db},
	}
}
