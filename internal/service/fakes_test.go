package service

import (
	"context"
	"errors"
	"sync"

	"github.com/iliyamo/geobites/internal/model"
	"github.com/iliyamo/geobites/internal/queue"
	"github.com/iliyamo/geobites/internal/repository"
)

type fakeCarts struct {
	mu     sync.Mutex
	carts  map[string][]model.CartEntry
	puts   int
	putErr error
}

func newFakeCarts() *fakeCarts { return &fakeCarts{carts: map[string][]model.CartEntry{}} }

func (f *fakeCarts) Get(_ context.Context, email string) ([]model.CartEntry, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	c, ok := f.carts[email]
	if !ok {
		return []model.CartEntry{}, nil
	}
	return append([]model.CartEntry{}, c...), nil
}

func (f *fakeCarts) Put(_ context.Context, email string, items []model.CartEntry) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.puts++
	if f.putErr != nil {
		return f.putErr
	}
	f.carts[email] = append([]model.CartEntry{}, items...)
	return nil
}

type fakeOrders struct {
	orders    []model.Order
	createErr error
}

func (f *fakeOrders) Create(_ context.Context, o model.Order) error {
	if f.createErr != nil {
		return f.createErr
	}
	f.orders = append(f.orders, o)
	return nil
}

func (f *fakeOrders) ListAll(context.Context) ([]model.Order, error) {
	out := make([]model.Order, 0, len(f.orders))
	for i := len(f.orders) - 1; i >= 0; i-- {
		out = append(out, f.orders[i])
	}
	return out, nil
}

type fakePublisher struct {
	events []queue.OrderPlacedEvent
	err    error
}

func (f *fakePublisher) PublishOrderPlaced(_ context.Context, ev queue.OrderPlacedEvent) error {
	f.events = append(f.events, ev)
	return f.err
}

type fakeContacts struct {
	msgs []model.ContactMessage
}

func (f *fakeContacts) Create(_ context.Context, m model.ContactMessage) error {
	f.msgs = append(f.msgs, m)
	return nil
}

func (f *fakeContacts) ListAll(context.Context) ([]model.ContactMessage, error) {
	return f.msgs, nil
}

func (f *fakeContacts) Delete(_ context.Context, id string) error {
	for i, m := range f.msgs {
		if m.ID == id {
			f.msgs = append(f.msgs[:i], f.msgs[i+1:]...)
			return nil
		}
	}
	return repository.ErrNotFound
}

type fakeUsers struct {
	users map[string]model.User
}

func (f *fakeUsers) GetByEmail(_ context.Context, email string) (model.User, error) {
	u, ok := f.users[email]
	if !ok {
		return model.User{}, repository.ErrNotFound
	}
	return u, nil
}

func (f *fakeUsers) Create(_ context.Context, u model.User) (model.User, error) {
	if f.users == nil {
		f.users = map[string]model.User{}
	}
	if _, ok := f.users[u.Email]; ok {
		return model.User{}, repository.ErrEmailExists
	}
	f.users[u.Email] = u
	return u, nil
}

var errBoom = errors.New("boom")
