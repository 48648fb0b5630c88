package matching

import "sync/atomic"

// IDSequence hands out the order and trade identifiers. Both counters are
// strictly increasing, never reused, and shared process-wide across every
// order book, so identifiers stay globally unique even when books are
// sharded behind independent serialization points.
type IDSequence struct {
	orderID uint64
	tradeID uint64
}

// NewIDSequence returns a sequence starting right after the given seeds,
// the first identifiers handed out are orderSeed+1 and tradeSeed+1. Seeding
// lets tests pin the identifier space deterministically.
func NewIDSequence(orderSeed, tradeSeed uint64) *IDSequence {
	return &IDSequence{
		orderID: orderSeed,
		tradeID: tradeSeed,
	}
}

func (s *IDSequence) NextOrderID() uint64 {
	return atomic.AddUint64(&s.orderID, 1)
}

func (s *IDSequence) NextTradeID() uint64 {
	return atomic.AddUint64(&s.tradeID, 1)
}

// CurrentOrderID returns the last order identifier handed out.
func (s *IDSequence) CurrentOrderID() uint64 {
	return atomic.LoadUint64(&s.orderID)
}

// CurrentTradeID returns the last trade identifier handed out.
func (s *IDSequence) CurrentTradeID() uint64 {
	return atomic.LoadUint64(&s.tradeID)
}
