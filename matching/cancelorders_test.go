package matching

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"code.openvenue.io/engine/types"
)

func TestOrderBookCancel_simpleCancel(t *testing.T) {
	instrument := "AUDUSD"
	book := getTestOrderBook(t, instrument)
	defer book.Finish()

	confirm, err := book.SubmitOrder(book.buildOrder(types.SideBuy, "100", 10))
	require.NoError(t, err)

	cancel, err := book.CancelOrder(confirm.Order.ID)
	require.NoError(t, err)
	assert.Equal(t, confirm.Order.ID, cancel.Order.ID)
	assert.Equal(t, uint64(0), cancel.Order.Remaining)

	assert.Equal(t, 0, book.getNumberOfBuyLevels())
	assert.Equal(t, uint64(0), book.getTotalBuyVolume())
	assert.Equal(t, 0, len(book.ordersByID))
}

// A cancelled order no longer matches incoming flow.
func TestOrderBookCancel_cancelledOrderDoesNotTrade(t *testing.T) {
	instrument := "AUDUSD"
	book := getTestOrderBook(t, instrument)
	defer book.Finish()

	confirm, err := book.SubmitOrder(book.buildOrder(types.SideSell, "100", 5))
	require.NoError(t, err)
	_, err = book.CancelOrder(confirm.Order.ID)
	require.NoError(t, err)

	confirm, err = book.SubmitOrder(book.buildOrder(types.SideBuy, "100", 5))
	require.NoError(t, err)
	assert.Equal(t, 0, len(confirm.Trades))
	assert.Equal(t, uint64(5), confirm.Order.Remaining)
}

func TestOrderBookCancel_cancelTwice(t *testing.T) {
	instrument := "AUDUSD"
	book := getTestOrderBook(t, instrument)
	defer book.Finish()

	confirm, err := book.SubmitOrder(book.buildOrder(types.SideBuy, "100", 10))
	require.NoError(t, err)

	_, err = book.CancelOrder(confirm.Order.ID)
	require.NoError(t, err)

	cancel, err := book.CancelOrder(confirm.Order.ID)
	assert.ErrorIs(t, err, types.ErrInvalidOrderID)
	assert.Nil(t, cancel)
}

func TestOrderBookCancel_unknownOrderID(t *testing.T) {
	instrument := "AUDUSD"
	book := getTestOrderBook(t, instrument)
	defer book.Finish()

	cancel, err := book.CancelOrder(12345)
	assert.ErrorIs(t, err, types.ErrInvalidOrderID)
	assert.Nil(t, cancel)
}

func TestOrderBookCancel_fullyFilledOrderCannotBeCancelled(t *testing.T) {
	instrument := "AUDUSD"
	book := getTestOrderBook(t, instrument)
	defer book.Finish()

	confirm, err := book.SubmitOrder(book.buildOrder(types.SideBuy, "100", 5))
	require.NoError(t, err)
	_, err = book.SubmitOrder(book.buildOrder(types.SideSell, "100", 5))
	require.NoError(t, err)

	cancel, err := book.CancelOrder(confirm.Order.ID)
	assert.ErrorIs(t, err, types.ErrInvalidOrderID)
	assert.Nil(t, cancel)
}

// Cancel after a partial fill releases only the unfilled remainder.
func TestOrderBookCancel_cancelAfterPartialFill(t *testing.T) {
	instrument := "AUDUSD"
	book := getTestOrderBook(t, instrument)
	defer book.Finish()

	confirm, err := book.SubmitOrder(book.buildOrder(types.SideBuy, "100", 10))
	require.NoError(t, err)
	_, err = book.SubmitOrder(book.buildOrder(types.SideSell, "100", 4))
	require.NoError(t, err)

	cancel, err := book.CancelOrder(confirm.Order.ID)
	require.NoError(t, err)
	assert.Equal(t, uint64(4), cancel.Order.Filled())
	assert.Equal(t, uint64(0), cancel.Order.Remaining)
	assert.Equal(t, uint64(0), book.getTotalBuyVolume())
}

// Cancelling one order in the middle of a level leaves its neighbours intact
// and in arrival order.
func TestOrderBookCancel_middleOfLevelKeepsFIFO(t *testing.T) {
	instrument := "AUDUSD"
	book := getTestOrderBook(t, instrument)
	defer book.Finish()

	first, err := book.SubmitOrder(book.buildOrder(types.SideSell, "100", 1))
	require.NoError(t, err)
	second, err := book.SubmitOrder(book.buildOrder(types.SideSell, "100", 1))
	require.NoError(t, err)
	third, err := book.SubmitOrder(book.buildOrder(types.SideSell, "100", 1))
	require.NoError(t, err)

	_, err = book.CancelOrder(second.Order.ID)
	require.NoError(t, err)
	assert.Equal(t, uint64(2), book.getVolumeAtLevel("100", types.SideSell))

	confirm, err := book.SubmitOrder(book.buildOrder(types.SideBuy, "100", 2))
	require.NoError(t, err)
	require.Equal(t, 4, len(confirm.Trades))
	assert.Equal(t, first.Order.ID, confirm.Trades[1].OrderID)
	assert.Equal(t, third.Order.ID, confirm.Trades[3].OrderID)
}
