package service

import (
	"context"
	"log/slog"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/pkg/errors"

	"github.com/iliyamo/geobites/internal/model"
	"github.com/iliyamo/geobites/internal/queue"
	"github.com/iliyamo/geobites/internal/repository"
)

// publishTimeout bounds the best-effort event publish after checkout.
const publishTimeout = 3 * time.Second

// OrderService turns a stored cart into an immutable order.
type OrderService struct {
	carts  repository.CartStore
	orders repository.OrderStore
	events EventPublisher
	log    *slog.Logger

	now   func() time.Time
	newID func() string
}

func NewOrderService(carts repository.CartStore, orders repository.OrderStore, events EventPublisher, log *slog.Logger) *OrderService {
	if events == nil {
		events = NopPublisher{}
	}
	if log == nil {
		log = slog.Default()
	}
	return &OrderService{
		carts:  carts,
		orders: orders,
		events: events,
		log:    log,
		now:    func() time.Time { return time.Now().UTC() },
		newID:  uuid.NewString,
	}
}

// Place checks out the caller's stored cart.  Prices come only from the
// stored cart; the request supplies nothing but name and address.  Nothing
// is written when validation fails.
func (s *OrderService) Place(ctx context.Context, who model.Identity, name, address string) (string, error) {
	name = strings.TrimSpace(name)
	address = strings.TrimSpace(address)
	if name == "" || address == "" {
		return "", ErrMissingFields
	}

	email := who.Email()
	cart, err := s.carts.Get(ctx, email)
	if err != nil {
		return "", errors.Wrap(err, "load cart")
	}
	if len(cart) == 0 {
		return "", ErrEmptyCart
	}

	items := model.SanitizeItems(cart)
	if len(items) == 0 {
		return "", ErrInvalidItems
	}
	subtotal, fee, total := model.Totals(items)

	o := model.Order{
		ID:           s.newID(),
		Email:        email,
		CustomerName: name,
		Address:      address,
		Items:        items,
		Subtotal:     subtotal,
		Fee:          fee,
		Total:        total,
		CreatedAt:    s.now(),
	}
	if err := s.orders.Create(ctx, o); err != nil {
		return "", errors.Wrap(err, "save order")
	}

	// The order stands even when the cart cannot be cleared.
	if err := s.carts.Put(ctx, email, []model.CartEntry{}); err != nil {
		s.log.Warn("order placed but cart not cleared", "order_id", o.ID, "err", err)
	}

	pubCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), publishTimeout)
	defer cancel()
	if err := s.events.PublishOrderPlaced(pubCtx, queue.OrderPlacedEvent{
		OrderID:      o.ID,
		Email:        o.Email,
		CustomerName: o.CustomerName,
		ItemCount:    len(o.Items),
		Subtotal:     o.Subtotal,
		Fee:          o.Fee,
		Total:        o.Total,
		PlacedAt:     o.CreatedAt,
	}); err != nil {
		s.log.Warn("order event not published", "order_id", o.ID, "err", err)
	}
	return o.ID, nil
}

// ListAll returns every order, newest first.
func (s *OrderService) ListAll(ctx context.Context) ([]model.Order, error) {
	return s.orders.ListAll(ctx)
}
