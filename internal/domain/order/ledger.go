package order

import (
	"strings"
	"time"

	"github.com/go-faster/errors"
	"github.com/google/uuid"

	"github.com/psingh05395/swadhyatra/internal/domain/cart"
)

// Sentinel errors for order placement.
var (
	ErrEmptyCart      = errors.New("cart has no items")
	ErrMissingAddress = errors.New("delivery address required")
)

// estimatedDeliveryWindow is added to the placement time to produce the
// estimated delivery timestamp.
const estimatedDeliveryWindow = 45 * time.Minute

// Ledger owns all orders placed during the session, most recent first.
// Orders are read-only to callers except through AdvanceStatus.
// Not safe for concurrent use; state is single-owner.
type Ledger struct {
	orders []*Order
	byID   map[string]*Order

	now   func() time.Time
	newID func() string
}

// NewLedger returns an empty ledger.
func NewLedger() *Ledger {
	return &Ledger{
		byID:  make(map[string]*Order),
		now:   time.Now,
		newID: func() string { return uuid.New().String() },
	}
}

// PlaceOrder snapshots a non-empty cart into a new order and clears the cart.
// The order starts in StatusConfirmed: the storefront confirms orders at
// placement time and never surfaces the pending state. The new order is
// prepended so Orders() lists the most recent first.
func (l *Ledger) PlaceOrder(c *cart.Cart, address, paymentMethod string) (*Order, error) {
	if c.IsEmpty() {
		return nil, ErrEmptyCart
	}
	if strings.TrimSpace(address) == "" {
		return nil, ErrMissingAddress
	}

	now := l.now()
	o := &Order{
		ID:                l.newID(),
		Lines:             c.Lines(),
		Total:             c.Total(),
		Status:            StatusConfirmed,
		DeliveryAddress:   address,
		PaymentMethod:     paymentMethod,
		CreatedAt:         now,
		EstimatedDelivery: now.Add(estimatedDeliveryWindow),
	}

	l.orders = append([]*Order{o}, l.orders...)
	l.byID[o.ID] = o
	c.Clear()

	return o.clone(), nil
}

// AdvanceStatus moves the order to the given status when the lifecycle graph
// permits it.
func (l *Ledger) AdvanceStatus(orderID string, next Status) error {
	o, ok := l.byID[orderID]
	if !ok {
		return &UnknownOrderError{OrderID: orderID}
	}
	if !next.Valid() || !o.Status.CanTransition(next) {
		return &InvalidTransitionError{OrderID: orderID, From: o.Status, To: next}
	}
	o.Status = next
	return nil
}

// Get returns a copy of the order with the given identifier.
func (l *Ledger) Get(orderID string) (*Order, error) {
	o, ok := l.byID[orderID]
	if !ok {
		return nil, &UnknownOrderError{OrderID: orderID}
	}
	return o.clone(), nil
}

// Orders returns copies of all orders, most recent first.
func (l *Ledger) Orders() []Order {
	out := make([]Order, len(l.orders))
	for i, o := range l.orders {
		out[i] = *o.clone()
	}
	return out
}

// Len returns the number of orders in the ledger.
func (l *Ledger) Len() int {
	return len(l.orders)
}
