package matching

import (
	"sort"

	"github.com/pkg/errors"

	"code.openvenue.io/engine/libs/num"
	"code.openvenue.io/engine/logging"
	"code.openvenue.io/engine/types"
)

var (
	// ErrPriceNotFound signals that a price was not found on the book side.
	ErrPriceNotFound = errors.New("price-volume pair not found")
	// ErrNoOrdersOnSide signals the side holds no resting orders at all.
	ErrNoOrdersOnSide = errors.New("no orders on the book side")
)

// OrderBookSide represents a side of the book, either Sell or Buy.
// Levels are kept sorted with the best price at the end of the slice:
// ascending for buys, descending for sells. Uncrossing then walks, and
// trims, the slice from the back.
type OrderBookSide struct {
	side   types.Side
	log    *logging.Logger
	levels []*PriceLevel
}

func (s *OrderBookSide) addOrder(o *types.Order) {
	s.getPriceLevel(o.Price).addOrder(o)
}

// BestPriceAndVolume returns the top of book price and volume,
// returns an error if the book side is empty.
func (s *OrderBookSide) BestPriceAndVolume() (num.Decimal, uint64, error) {
	if len(s.levels) <= 0 {
		return num.DecimalZero(), 0, ErrNoOrdersOnSide
	}
	last := len(s.levels) - 1
	return s.levels[last].price, s.levels[last].volume, nil
}

// RemoveOrder removes an order from the book side, preserving the arrival
// order of the level it sat in, and drops the level once emptied.
func (s *OrderBookSide) RemoveOrder(o *types.Order) (*types.Order, error) {
	// first we try to find the price level the order rests in
	var i int
	if o.Side == types.SideBuy {
		i = sort.Search(len(s.levels), func(i int) bool { return s.levels[i].price.GreaterThanOrEqual(o.Price) })
	} else {
		// sell side levels are ordered descending
		i = sort.Search(len(s.levels), func(i int) bool { return s.levels[i].price.LessThanOrEqual(o.Price) })
	}
	// we did not find the level, so the order cannot be on this side
	if i >= len(s.levels) || !s.levels[i].price.Equal(o.Price) {
		return nil, types.ErrOrderNotFound
	}

	finaloidx := -1
	for index, order := range s.levels[i].orders {
		if order.ID == o.ID {
			finaloidx = index
			break
		}
	}
	if finaloidx == -1 {
		return nil, types.ErrOrderNotFound
	}

	order := s.levels[i].orders[finaloidx]
	s.levels[i].reduceVolume(order.Remaining)
	s.levels[i].removeOrder(finaloidx)

	if len(s.levels[i].orders) <= 0 {
		s.levels = s.levels[:i+copy(s.levels[i:], s.levels[i+1:])]
	}

	return order, nil
}

func (s *OrderBookSide) getPriceLevelIfExists(price num.Decimal) *PriceLevel {
	var i int
	if s.side == types.SideBuy {
		// buy side levels are ordered ascending
		i = sort.Search(len(s.levels), func(i int) bool { return s.levels[i].price.GreaterThanOrEqual(price) })
	} else {
		// sell side levels are ordered descending
		i = sort.Search(len(s.levels), func(i int) bool { return s.levels[i].price.LessThanOrEqual(price) })
	}

	if i < len(s.levels) && s.levels[i].price.Equal(price) {
		return s.levels[i]
	}
	return nil
}

func (s *OrderBookSide) getPriceLevel(price num.Decimal) *PriceLevel {
	var i int
	if s.side == types.SideBuy {
		// buy side levels are ordered ascending
		i = sort.Search(len(s.levels), func(i int) bool { return s.levels[i].price.GreaterThanOrEqual(price) })
	} else {
		// sell side levels are ordered descending
		i = sort.Search(len(s.levels), func(i int) bool { return s.levels[i].price.LessThanOrEqual(price) })
	}

	// we found the level, just return it
	if i < len(s.levels) && s.levels[i].price.Equal(price) {
		return s.levels[i]
	}

	// append a new element first to make sure we have enough room,
	// then shift the tail up by one and insert in place
	level := NewPriceLevel(price)
	s.levels = append(s.levels, nil)
	copy(s.levels[i+1:], s.levels[i:])
	s.levels[i] = level
	return level
}

// GetVolume returns the volume at the given price level.
func (s *OrderBookSide) GetVolume(price num.Decimal) (uint64, error) {
	priceLevel := s.getPriceLevelIfExists(price)
	if priceLevel == nil {
		return 0, ErrPriceNotFound
	}
	return priceLevel.volume, nil
}

// uncross matches the aggressive order against this side, walking the
// levels from the best price for as long as they cross and the order has
// remaining quantity. Emptied levels are trimmed off the end of the slice
// once the walk is done.
func (s *OrderBookSide) uncross(agg *types.Order, ids *IDSequence) ([]*types.Trade, []*types.Order, error) {
	var (
		trades         []*types.Trade
		impactedOrders []*types.Order
		checkPrice     func(num.Decimal) bool
	)

	if agg.Side == types.SideSell {
		// selling into the buy side, trade while the level bids enough
		checkPrice = func(levelPrice num.Decimal) bool { return levelPrice.GreaterThanOrEqual(agg.Price) }
	} else {
		checkPrice = func(levelPrice num.Decimal) bool { return levelPrice.LessThanOrEqual(agg.Price) }
	}

	var (
		idx    = len(s.levels) - 1
		filled bool
		err    error
	)

	// in here we iterate from the end, as it's easier to remove the
	// price levels from the back of the slice instead of from the front
	for !filled && err == nil && idx >= 0 && checkPrice(s.levels[idx].price) {
		var (
			ntrades []*types.Trade
			nimpact []*types.Order
		)
		filled, ntrades, nimpact, err = s.levels[idx].uncross(agg, ids)
		trades = append(trades, ntrades...)
		impactedOrders = append(impactedOrders, nimpact...)
		if len(s.levels[idx].orders) <= 0 {
			idx--
		}
	}

	// now nil out the emptied price levels and resize the slice
	if idx < 0 || len(s.levels[idx].orders) > 0 {
		// do not remove this one as it's not emptied
		idx++
	}
	if idx < len(s.levels) {
		for i := idx; i < len(s.levels); i++ {
			s.levels[i] = nil
		}
		s.levels = s.levels[:idx]
	}

	return trades, impactedOrders, err
}

func (s *OrderBookSide) getLevels() []*PriceLevel {
	return s.levels
}

func (s *OrderBookSide) getOrderCount() int64 {
	var orderCount int64
	for _, level := range s.levels {
		orderCount = orderCount + int64(len(level.orders))
	}
	return orderCount
}

func (s *OrderBookSide) getTotalVolume() int64 {
	var volume int64
	for _, level := range s.levels {
		volume = volume + int64(level.volume)
	}
	return volume
}
