package types

import (
	"fmt"

	"code.openvenue.io/engine/libs/num"
)

// Order is a plain limit order, either incoming or resting on a book.
// An order is owned by the book that holds it: the price level and
// the order-ID index reference the same entity, so fill progress
// written through one view is visible through the other.
type Order struct {
	// ID is assigned by the engine when the order is accepted and is
	// immutable from then on. IDs are strictly increasing process-wide.
	ID         uint64
	Instrument string
	Price      num.Decimal
	Side       Side
	// Size is the original quantity, Remaining the unfilled part of it.
	// Remaining == 0 means the order is terminal (fully filled or
	// cancelled) and must not rest in any price level.
	Size      uint64
	Remaining uint64
}

// Filled returns the cumulative filled quantity.
func (o *Order) Filled() uint64 {
	return o.Size - o.Remaining
}

func (o *Order) Clone() *Order {
	cpy := *o
	return &cpy
}

func (o *Order) String() string {
	return fmt.Sprintf("id(%d) instrument(%s) side(%s) price(%s) size(%d) remaining(%d)",
		o.ID, o.Instrument, o.Side, o.Price, o.Size, o.Remaining)
}

// Trade is a single execution leg. A match between two orders produces
// two Trade records, one per participant, sharing price and quantity but
// carrying distinct trade and order IDs. Trades are immutable once emitted.
type Trade struct {
	ID         uint64
	OrderID    uint64
	Instrument string
	// Price is always the resting order's price, price improvement
	// goes to the aggressor.
	Price num.Decimal
	Size  uint64
	// Side of the order this leg belongs to.
	Side Side
}

func (t *Trade) String() string {
	return fmt.Sprintf("id(%d) order(%d) instrument(%s) side(%s) price(%s) size(%d)",
		t.ID, t.OrderID, t.Instrument, t.Side, t.Price, t.Size)
}

// OrderConfirmation is returned on a successful order submission. Order is
// the incoming order with its final fill state, Trades the execution legs in
// the order they were created, and PassiveOrdersAffected the resting orders
// touched by the uncrossing.
type OrderConfirmation struct {
	Order                 *Order
	PassiveOrdersAffected []*Order
	Trades                []*Trade
}

// OrderCancellationConfirmation is returned on a successful cancellation,
// holding the cancelled order with Remaining zeroed.
type OrderCancellationConfirmation struct {
	Order *Order
}
