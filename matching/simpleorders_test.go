package matching

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"code.openvenue.io/engine/types"
)

func TestOrderBookSimple_simpleLimitBuy(t *testing.T) {
	instrument := "AUDUSD"
	book := getTestOrderBook(t, instrument)
	defer book.Finish()

	confirm, err := book.SubmitOrder(book.buildOrder(types.SideBuy, "100", 1))
	assert.NoError(t, err)
	assert.Equal(t, 0, len(confirm.Trades))

	price, volume, err := book.BestBidPriceAndVolume()
	require.NoError(t, err)
	assert.Equal(t, "100", price.String())
	assert.Equal(t, uint64(1), volume)
	assert.Equal(t, 1, book.getNumberOfBuyLevels())
	assert.Equal(t, 0, book.getNumberOfSellLevels())
	assert.Equal(t, 1, len(book.ordersByID))
}

func TestOrderBookSimple_simpleLimitSell(t *testing.T) {
	instrument := "AUDUSD"
	book := getTestOrderBook(t, instrument)
	defer book.Finish()

	confirm, err := book.SubmitOrder(book.buildOrder(types.SideSell, "100", 1))
	assert.NoError(t, err)
	assert.Equal(t, 0, len(confirm.Trades))

	price, volume, err := book.BestAskPriceAndVolume()
	require.NoError(t, err)
	assert.Equal(t, "100", price.String())
	assert.Equal(t, uint64(1), volume)
	assert.Equal(t, 0, book.getNumberOfBuyLevels())
	assert.Equal(t, 1, book.getNumberOfSellLevels())
	assert.Equal(t, 1, len(book.ordersByID))
}

// Both orders at the same price and size, the book ends up empty on both sides.
func TestOrderBookSimple_fullMatch(t *testing.T) {
	instrument := "AUDUSD"
	book := getTestOrderBook(t, instrument)
	defer book.Finish()

	confirm, err := book.SubmitOrder(book.buildOrder(types.SideBuy, "23.4", 5))
	require.NoError(t, err)
	assert.Equal(t, 0, len(confirm.Trades))

	confirm, err = book.SubmitOrder(book.buildOrder(types.SideSell, "23.4", 5))
	require.NoError(t, err)
	require.Equal(t, 2, len(confirm.Trades))
	for _, trade := range confirm.Trades {
		assert.Equal(t, "23.4", trade.Price.String())
		assert.Equal(t, uint64(5), trade.Size)
	}
	assert.Equal(t, uint64(0), confirm.Order.Remaining)
	assert.Equal(t, uint64(5), confirm.Order.Filled())

	assert.Equal(t, 0, book.getNumberOfBuyLevels())
	assert.Equal(t, 0, book.getNumberOfSellLevels())
	assert.Equal(t, 0, len(book.ordersByID))
}

// The aggressor is smaller than the resting order, the remainder keeps resting.
func TestOrderBookSimple_partialFillRestingOrder(t *testing.T) {
	instrument := "AUDUSD"
	book := getTestOrderBook(t, instrument)
	defer book.Finish()

	confirm, err := book.SubmitOrder(book.buildOrder(types.SideBuy, "230.4", 5))
	require.NoError(t, err)
	resting := confirm.Order

	confirm, err = book.SubmitOrder(book.buildOrder(types.SideSell, "230.4", 2))
	require.NoError(t, err)
	require.Equal(t, 2, len(confirm.Trades))
	for _, trade := range confirm.Trades {
		assert.Equal(t, uint64(2), trade.Size)
	}
	assert.Equal(t, uint64(0), confirm.Order.Remaining)

	assert.Equal(t, uint64(3), resting.Remaining)
	assert.Equal(t, uint64(2), resting.Filled())
	assert.Equal(t, uint64(3), book.getVolumeAtLevel("230.4", types.SideBuy))
	_, ok := book.ordersByID[resting.ID]
	assert.True(t, ok)
}

// The aggressor is bigger than all crossing liquidity, its remainder rests
// on its own side, not the side it swept.
func TestOrderBookSimple_partialFillAggressiveOrder(t *testing.T) {
	instrument := "AUDUSD"
	book := getTestOrderBook(t, instrument)
	defer book.Finish()

	confirm, err := book.SubmitOrder(book.buildOrder(types.SideBuy, "23.4", 2))
	require.NoError(t, err)
	buyID := confirm.Order.ID

	confirm, err = book.SubmitOrder(book.buildOrder(types.SideSell, "23.4", 5))
	require.NoError(t, err)
	require.Equal(t, 2, len(confirm.Trades))
	for _, trade := range confirm.Trades {
		assert.Equal(t, uint64(2), trade.Size)
	}

	assert.Equal(t, uint64(3), confirm.Order.Remaining)
	assert.Equal(t, 0, book.getNumberOfBuyLevels())
	assert.Equal(t, 1, book.getNumberOfSellLevels())
	assert.Equal(t, uint64(3), book.getVolumeAtLevel("23.4", types.SideSell))

	_, ok := book.ordersByID[buyID]
	assert.False(t, ok)
	_, ok = book.ordersByID[confirm.Order.ID]
	assert.True(t, ok)
}

// Both legs always trade at the resting order's price.
func TestOrderBookSimple_makerPriceImprovement(t *testing.T) {
	instrument := "AUDUSD"
	book := getTestOrderBook(t, instrument)
	defer book.Finish()

	_, err := book.SubmitOrder(book.buildOrder(types.SideSell, "100", 1))
	require.NoError(t, err)

	confirm, err := book.SubmitOrder(book.buildOrder(types.SideBuy, "105", 1))
	require.NoError(t, err)
	require.Equal(t, 2, len(confirm.Trades))
	assert.Equal(t, "100", confirm.Trades[0].Price.String())
	assert.Equal(t, "100", confirm.Trades[1].Price.String())
}

// Zero is a valid limit price and is matched literally.
func TestOrderBookSimple_zeroPriceIsALiteralLimit(t *testing.T) {
	instrument := "AUDUSD"
	book := getTestOrderBook(t, instrument)
	defer book.Finish()

	confirm, err := book.SubmitOrder(book.buildOrder(types.SideSell, "0", 1))
	require.NoError(t, err)
	assert.Equal(t, 0, len(confirm.Trades))
	assert.Equal(t, 1, book.getNumberOfSellLevels())

	// a zero-priced buy does not reach a positive ask
	_, err = book.SubmitOrder(book.buildOrder(types.SideSell, "10", 1))
	require.NoError(t, err)
	confirm, err = book.SubmitOrder(book.buildOrder(types.SideBuy, "0", 2))
	require.NoError(t, err)
	require.Equal(t, 2, len(confirm.Trades))
	assert.Equal(t, "0", confirm.Trades[0].Price.String())
	assert.Equal(t, uint64(1), confirm.Order.Remaining)
	assert.Equal(t, uint64(1), book.getVolumeAtLevel("0", types.SideBuy))
}

// Orders at the same price match in strict arrival order.
func TestOrderBookSimple_fifoWithinLevel(t *testing.T) {
	instrument := "AUDUSD"
	book := getTestOrderBook(t, instrument)
	defer book.Finish()

	first, err := book.SubmitOrder(book.buildOrder(types.SideBuy, "100", 2))
	require.NoError(t, err)
	second, err := book.SubmitOrder(book.buildOrder(types.SideBuy, "100", 2))
	require.NoError(t, err)

	confirm, err := book.SubmitOrder(book.buildOrder(types.SideSell, "100", 3))
	require.NoError(t, err)
	require.Equal(t, 4, len(confirm.Trades))

	// passive legs: the older order fully, then the newer one partially
	assert.Equal(t, first.Order.ID, confirm.Trades[1].OrderID)
	assert.Equal(t, uint64(2), confirm.Trades[1].Size)
	assert.Equal(t, second.Order.ID, confirm.Trades[3].OrderID)
	assert.Equal(t, uint64(1), confirm.Trades[3].Size)

	assert.Equal(t, uint64(0), first.Order.Remaining)
	assert.Equal(t, uint64(1), second.Order.Remaining)
}

// After any submit returns the book must be uncrossed and hold no empty
// price levels.
func TestOrderBookSimple_neverCrossedNoEmptyLevels(t *testing.T) {
	instrument := "AUDUSD"
	book := getTestOrderBook(t, instrument)
	defer book.Finish()

	flow := []struct {
		side  types.Side
		price string
		size  uint64
	}{
		{types.SideBuy, "100", 5},
		{types.SideSell, "103", 5},
		{types.SideSell, "100", 3},
		{types.SideBuy, "103", 7},
		{types.SideSell, "99", 10},
		{types.SideBuy, "104", 1},
	}
	for _, f := range flow {
		_, err := book.SubmitOrder(book.buildOrder(f.side, f.price, f.size))
		require.NoError(t, err)
		assert.False(t, book.crossedBook())
		assert.False(t, book.emptyLevels())
	}
}

// A better-priced late order still matches before an older worse-priced one.
func TestOrderBookSimple_priceBeforeTime(t *testing.T) {
	instrument := "AUDUSD"
	book := getTestOrderBook(t, instrument)
	defer book.Finish()

	older, err := book.SubmitOrder(book.buildOrder(types.SideSell, "101", 1))
	require.NoError(t, err)
	better, err := book.SubmitOrder(book.buildOrder(types.SideSell, "100", 1))
	require.NoError(t, err)

	confirm, err := book.SubmitOrder(book.buildOrder(types.SideBuy, "101", 1))
	require.NoError(t, err)
	require.Equal(t, 2, len(confirm.Trades))
	assert.Equal(t, better.Order.ID, confirm.Trades[1].OrderID)
	assert.Equal(t, uint64(1), older.Order.Remaining)
}
