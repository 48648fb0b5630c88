package matching

import (
	"testing"

	"code.openvenue.io/engine/libs/num"
	"code.openvenue.io/engine/logging"
	"code.openvenue.io/engine/types"
)

type tstOB struct {
	*OrderBook
	log *logging.Logger
}

func (t *tstOB) Finish() {
	t.log.Sync()
}

func getTestOrderBook(_ *testing.T, instrument string) *tstOB {
	tob := tstOB{
		log: logging.NewTestLogger(),
	}
	tob.OrderBook = NewOrderBook(tob.log, NewDefaultConfig(), instrument, NewIDSequence(0, 0))

	// Turn on all the debug levels so we can cover more lines of code
	tob.OrderBook.LogPriceLevelsDebug = true
	tob.OrderBook.LogRemovedOrdersDebug = true
	return &tob
}

// buildOrder hands out book-local order IDs the way the engine would.
func (b *OrderBook) buildOrder(side types.Side, price string, size uint64) *types.Order {
	return &types.Order{
		ID:         b.ids.NextOrderID(),
		Instrument: b.instrument,
		Side:       side,
		Price:      num.MustDecimalFromString(price),
		Size:       size,
		Remaining:  size,
	}
}

func (b *OrderBook) getNumberOfBuyLevels() int {
	return len(b.buy.getLevels())
}

func (b *OrderBook) getNumberOfSellLevels() int {
	return len(b.sell.getLevels())
}

func (b *OrderBook) getTotalBuyVolume() uint64 {
	var volume uint64
	for _, pl := range b.buy.getLevels() {
		volume += pl.volume
	}
	return volume
}

func (b *OrderBook) getTotalSellVolume() uint64 {
	var volume uint64
	for _, pl := range b.sell.getLevels() {
		volume += pl.volume
	}
	return volume
}

func (b *OrderBook) getVolumeAtLevel(price string, side types.Side) uint64 {
	pl := b.sideFor(side).getPriceLevelIfExists(num.MustDecimalFromString(price))
	if pl == nil {
		return 0
	}
	return pl.volume
}

// crossedBook reports whether the best bid meets or crosses the best ask,
// which must never be observable after a submit returns.
func (b *OrderBook) crossedBook() bool {
	bid, _, err := b.BestBidPriceAndVolume()
	if err != nil {
		return false
	}
	ask, _, err := b.BestAskPriceAndVolume()
	if err != nil {
		return false
	}
	return bid.GreaterThanOrEqual(ask)
}

// emptyLevels reports whether any side holds a level with no orders.
func (b *OrderBook) emptyLevels() bool {
	for _, pl := range b.buy.getLevels() {
		if len(pl.orders) == 0 {
			return true
		}
	}
	for _, pl := range b.sell.getLevels() {
		if len(pl.orders) == 0 {
			return true
		}
	}
	return false
}
