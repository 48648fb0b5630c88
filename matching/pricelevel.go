package matching

import (
	"code.openvenue.io/engine/libs/num"
	"code.openvenue.io/engine/types"
)

// PriceLevel holds the resting orders sharing one price on one side of a
// book. Orders are kept in strict arrival order: appended at the tail when
// they rest, consumed from the head when they match. Every order held here
// has Remaining > 0, and volume caches the sum of those remainings.
type PriceLevel struct {
	price  num.Decimal
	orders []*types.Order
	volume uint64
}

func NewPriceLevel(price num.Decimal) *PriceLevel {
	return &PriceLevel{
		price:  price,
		orders: []*types.Order{},
	}
}

func (l *PriceLevel) addOrder(o *types.Order) {
	l.orders = append(l.orders, o)
	l.volume += o.Remaining
}

func (l *PriceLevel) removeOrder(index int) {
	copy(l.orders[index:], l.orders[index+1:])
	l.orders[len(l.orders)-1] = nil
	l.orders = l.orders[:len(l.orders)-1]
}

func (l *PriceLevel) reduceVolume(reduceBy uint64) {
	l.volume -= reduceBy
}

// uncross matches the aggressive order against the head of the level until
// either is exhausted. Every fill emits two trade legs, one for the
// aggressor and one for the passive order, each with its own fresh trade
// identifier. Fully filled passive orders are removed from the level,
// keeping the remaining orders in arrival order.
//
// The zero-size check cannot trip while the level invariants hold, its only
// purpose is to stop a corrupted book from emitting empty fills.
func (l *PriceLevel) uncross(agg *types.Order, ids *IDSequence) (bool, []*types.Trade, []*types.Order, error) {
	var (
		trades         []*types.Trade
		impactedOrders []*types.Order
	)

	for agg.Remaining > 0 && len(l.orders) > 0 {
		pass := l.orders[0]
		size := num.MinV(agg.Remaining, pass.Remaining)
		if size == 0 {
			return false, trades, impactedOrders, types.ErrInvalidQuantity
		}

		trades = append(trades,
			&types.Trade{
				ID:         ids.NextTradeID(),
				OrderID:    agg.ID,
				Instrument: agg.Instrument,
				Price:      l.price,
				Size:       size,
				Side:       agg.Side,
			},
			&types.Trade{
				ID:         ids.NextTradeID(),
				OrderID:    pass.ID,
				Instrument: pass.Instrument,
				Price:      l.price,
				Size:       size,
				Side:       pass.Side,
			},
		)

		agg.Remaining -= size
		pass.Remaining -= size
		l.reduceVolume(size)

		impactedOrders = append(impactedOrders, pass)
		if pass.Remaining == 0 {
			l.removeOrder(0)
		}
	}

	return agg.Remaining == 0, trades, impactedOrders, nil
}
