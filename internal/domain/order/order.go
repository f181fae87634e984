// Package order converts a checked-out cart into an immutable order record
// and tracks its delivery status through a fixed lifecycle.
package order

import (
	"fmt"
	"time"

	"github.com/shopspring/decimal"

	"github.com/psingh05395/swadhyatra/internal/domain/cart"
)

// Status is the delivery lifecycle state of an order.
type Status string

const (
	StatusPending        Status = "pending"
	StatusConfirmed      Status = "confirmed"
	StatusPreparing      Status = "preparing"
	StatusOutForDelivery Status = "out-for-delivery"
	StatusDelivered      Status = "delivered"
	StatusCancelled      Status = "cancelled"
)

// transitions maps each status to the statuses reachable from it. Delivered
// and cancelled are terminal; cancellation is only possible before the
// kitchen starts preparing.
var transitions = map[Status][]Status{
	StatusPending:        {StatusConfirmed, StatusCancelled},
	StatusConfirmed:      {StatusPreparing, StatusCancelled},
	StatusPreparing:      {StatusOutForDelivery},
	StatusOutForDelivery: {StatusDelivered},
	StatusDelivered:      nil,
	StatusCancelled:      nil,
}

// Valid reports whether s is a member of the status set.
func (s Status) Valid() bool {
	_, ok := transitions[s]
	return ok
}

// Terminal reports whether no further transitions are possible from s.
func (s Status) Terminal() bool {
	return len(transitions[s]) == 0
}

// CanTransition reports whether next is reachable from s.
func (s Status) CanTransition(next Status) bool {
	for _, allowed := range transitions[s] {
		if allowed == next {
			return true
		}
	}
	return false
}

// Order is an immutable snapshot of a placed cart. Only the status field
// changes after creation, and only through Ledger.AdvanceStatus.
type Order struct {
	ID                string
	Lines             []cart.Line
	Total             decimal.Decimal
	Status            Status
	DeliveryAddress   string
	PaymentMethod     string
	CreatedAt         time.Time
	EstimatedDelivery time.Time
}

// clone returns a copy whose Lines slice does not share backing storage with
// the receiver, so callers cannot reach ledger state through a returned order.
func (o *Order) clone() *Order {
	snapshot := *o
	snapshot.Lines = make([]cart.Line, len(o.Lines))
	copy(snapshot.Lines, o.Lines)
	return &snapshot
}

// UnknownOrderError indicates a requested order does not exist in the ledger.
type UnknownOrderError struct {
	OrderID string
}

func (e *UnknownOrderError) Error() string {
	return fmt.Sprintf("order %s not found", e.OrderID)
}

// InvalidTransitionError indicates a status change not permitted by the
// lifecycle graph.
type InvalidTransitionError struct {
	OrderID string
	From    Status
	To      Status
}

func (e *InvalidTransitionError) Error() string {
	return fmt.Sprintf("order %s: cannot transition from %s to %s", e.OrderID, e.From, e.To)
}
