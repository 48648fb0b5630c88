package matching

import (
	"code.openvenue.io/engine/libs/num"
	"code.openvenue.io/engine/logging"
	"code.openvenue.io/engine/types"
)

// OrderBook holds the resting liquidity of one instrument: a buy side, a
// sell side, and an index of every resting order by identifier. An order
// identifier is in the index if and only if the order sits in exactly one
// price level, and both views reference the same Order entity.
//
// Books are not safe for concurrent use, the caller serializes all
// mutating operations per instrument.
type OrderBook struct {
	log *logging.Logger

	instrument string
	buy        *OrderBookSide
	sell       *OrderBookSide
	ordersByID map[uint64]*types.Order
	ids        *IDSequence

	LogPriceLevelsDebug   bool
	LogRemovedOrdersDebug bool
}

// NewOrderBook creates an order book for the given instrument. The id
// sequence is shared with the engine so trade identifiers stay globally
// unique across books.
func NewOrderBook(log *logging.Logger, config Config, instrument string, ids *IDSequence) *OrderBook {
	return &OrderBook{
		log:                   log,
		instrument:            instrument,
		buy:                   &OrderBookSide{log: log, side: types.SideBuy},
		sell:                  &OrderBookSide{log: log, side: types.SideSell},
		ordersByID:            map[uint64]*types.Order{},
		ids:                   ids,
		LogPriceLevelsDebug:   bool(config.LogPriceLevelsDebug),
		LogRemovedOrdersDebug: bool(config.LogRemovedOrdersDebug),
	}
}

// SubmitOrder matches the incoming order against the opposite side under
// price-time priority, then rests whatever quantity is left at its limit
// price. The confirmation carries the incoming order with its final fill
// state and every trade leg generated, in creation order.
func (b *OrderBook) SubmitOrder(order *types.Order) (*types.OrderConfirmation, error) {
	if err := b.validateOrder(order); err != nil {
		return nil, err
	}

	trades, impactedOrders, err := b.oppositeSide(order.Side).uncross(order, b.ids)
	if err != nil {
		// the book state no longer upholds the level invariants, this is
		// an engine bug and not a problem with the submitted order
		b.log.Error("Book integrity check failed during uncross",
			logging.String("order-book", b.instrument),
			logging.Order(order),
			logging.Error(err))
		return nil, err
	}

	// scrub fully filled passive orders from the index
	for _, impacted := range impactedOrders {
		if impacted.Remaining == 0 {
			delete(b.ordersByID, impacted.ID)
		}
	}

	if order.Remaining > 0 {
		b.sideFor(order.Side).addOrder(order)
		b.ordersByID[order.ID] = order
	}

	if b.LogPriceLevelsDebug {
		b.printState("After order submitted to the book")
	}

	return &types.OrderConfirmation{
		Order:                 order,
		PassiveOrdersAffected: impactedOrders,
		Trades:                trades,
	}, nil
}

// CancelOrder removes a resting order from its price level and from the
// index. Cancelling an identifier that is not currently resting, including
// one already cancelled or fully filled, is an error rather than a no-op.
func (b *OrderBook) CancelOrder(orderID uint64) (*types.OrderCancellationConfirmation, error) {
	order, ok := b.ordersByID[orderID]
	if !ok {
		return nil, types.ErrInvalidOrderID
	}

	if _, err := b.sideFor(order.Side).RemoveOrder(order); err != nil {
		// the index and the price levels disagree, this cannot happen
		// while the book invariants hold
		b.log.Error("Order in the index but not in its price level",
			logging.String("order-book", b.instrument),
			logging.Order(order),
			logging.Error(err))
		return nil, types.ErrOrderNotFound
	}

	delete(b.ordersByID, orderID)
	// mark the order terminal, a stale reference held by the caller must
	// not look like a live resting order
	order.Remaining = 0

	if b.LogRemovedOrdersDebug {
		b.log.Debug("Order cancelled",
			logging.String("order-book", b.instrument),
			logging.Order(order))
	}
	if b.LogPriceLevelsDebug {
		b.printState("After order cancelled")
	}

	return &types.OrderCancellationConfirmation{Order: order}, nil
}

// GetOrderByID returns the resting order for the given identifier.
func (b *OrderBook) GetOrderByID(orderID uint64) (*types.Order, error) {
	order, ok := b.ordersByID[orderID]
	if !ok {
		return nil, types.ErrInvalidOrderID
	}
	return order, nil
}

// BestBidPriceAndVolume returns the highest bid price and the volume
// resting at it, or an error if there are no bids.
func (b *OrderBook) BestBidPriceAndVolume() (num.Decimal, uint64, error) {
	return b.buy.BestPriceAndVolume()
}

// BestAskPriceAndVolume returns the lowest ask price and the volume
// resting at it, or an error if there are no asks.
func (b *OrderBook) BestAskPriceAndVolume() (num.Decimal, uint64, error) {
	return b.sell.BestPriceAndVolume()
}

// GetVolumeAtPrice returns the resting volume at the given price level.
func (b *OrderBook) GetVolumeAtPrice(price num.Decimal, side types.Side) (uint64, error) {
	return b.sideFor(side).GetVolume(price)
}

// GetTotalNumberOfOrders returns the number of orders resting on either side.
func (b *OrderBook) GetTotalNumberOfOrders() int64 {
	return b.buy.getOrderCount() + b.sell.getOrderCount()
}

// GetTotalVolume returns the resting volume across both sides.
func (b *OrderBook) GetTotalVolume() int64 {
	return b.buy.getTotalVolume() + b.sell.getTotalVolume()
}

func (b *OrderBook) sideFor(side types.Side) *OrderBookSide {
	if side == types.SideBuy {
		return b.buy
	}
	return b.sell
}

func (b *OrderBook) oppositeSide(side types.Side) *OrderBookSide {
	if side == types.SideBuy {
		return b.sell
	}
	return b.buy
}

// printState prints the book state to the debug log, one line per price
// level, sells first so the output reads like a ladder.
func (b *OrderBook) printState(msg string) {
	if b.log.GetLevel() != logging.DebugLevel {
		return
	}
	b.log.Debug(msg, logging.String("order-book", b.instrument))
	levels := b.sell.getLevels()
	for i := len(levels) - 1; i >= 0; i-- {
		b.log.Debug("sell",
			logging.Decimal("price", levels[i].price),
			logging.Uint64("volume", levels[i].volume),
			logging.Int("orders", len(levels[i].orders)))
	}
	levels = b.buy.getLevels()
	for i := len(levels) - 1; i >= 0; i-- {
		b.log.Debug("buy",
			logging.Decimal("price", levels[i].price),
			logging.Uint64("volume", levels[i].volume),
			logging.Int("orders", len(levels[i].orders)))
	}
}
