package repository

import (
	"context"

	"github.com/iliyamo/geobites/internal/model"
)

// UserStore is the credential store.
type UserStore interface {
	GetByEmail(ctx context.Context, email string) (model.User, error)
	Create(ctx context.Context, u model.User) (model.User, error)
}

// CartStore keeps exactly one cart per email.  Put replaces the cart.
type CartStore interface {
	Get(ctx context.Context, email string) ([]model.CartEntry, error)
	Put(ctx context.Context, email string, items []model.CartEntry) error
}

// OrderStore is the append-only order ledger.  Create persists the header
// and all lines or nothing.
type OrderStore interface {
	Create(ctx context.Context, o model.Order) error
	ListAll(ctx context.Context) ([]model.Order, error)
}

// ContactStore is the contact mailbox.
type ContactStore interface {
	Create(ctx context.Context, m model.ContactMessage) error
	ListAll(ctx context.Context) ([]model.ContactMessage, error)
	Delete(ctx context.Context, id string) error
}

// Pinger reports whether the backing storage is reachable.
type Pinger interface {
	Ping(ctx context.Context) error
}

// Stores bundles one implementation of every store.
type Stores struct {
	Users    UserStore
	Carts    CartStore
	Orders   OrderStore
	Contacts ContactStore
	Health   Pinger
}
