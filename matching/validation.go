package matching

import (
	"code.openvenue.io/engine/logging"
	"code.openvenue.io/engine/types"
)

// validateOrder re-checks at the book boundary what the engine has already
// validated, no mutation may take place on a malformed order.
func (b *OrderBook) validateOrder(order *types.Order) error {
	if order.Instrument != b.instrument {
		b.log.Error("Instrument mismatch",
			logging.String("instrument", order.Instrument),
			logging.String("order-book", b.instrument),
			logging.Order(order))
		return types.ErrInvalidInstrument
	}
	if !order.Side.IsValid() {
		return types.ErrInvalidSide
	}
	if order.Size == 0 || order.Remaining == 0 || order.Remaining > order.Size {
		return types.ErrInvalidQuantity
	}
	if order.Price.IsNegative() {
		return types.ErrInvalidPrice
	}
	return nil
}
