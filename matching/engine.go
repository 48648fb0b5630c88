package matching

import (
	"code.openvenue.io/engine/libs/num"
	"code.openvenue.io/engine/logging"
	"code.openvenue.io/engine/metrics"
	"code.openvenue.io/engine/types"
)

// Engine is the top level matching facade: it owns one order book per
// instrument, creating books lazily on the first order for a symbol and
// keeping them for its whole lifetime, and it hands out the process-wide
// order and trade identifiers.
//
// The engine performs no I/O and never blocks, every call is a bounded
// synchronous computation. Operations against one instrument must be
// serialized by the caller, operations against distinct instruments only
// share the identifier sequence, which is atomic.
type Engine struct {
	Config
	log *logging.Logger

	books map[string]*OrderBook
	ids   *IDSequence
}

// NewEngine returns a matching engine with no books. A nil id sequence gets
// replaced with a fresh one starting at zero, tests inject a seeded sequence
// to pin the identifier space.
func NewEngine(log *logging.Logger, config Config, ids *IDSequence) *Engine {
	log = log.Named(namedLogger)
	log.SetLevel(config.Level.Get())
	if ids == nil {
		ids = NewIDSequence(0, 0)
	}
	return &Engine{
		Config: config,
		log:    log,
		books:  map[string]*OrderBook{},
		ids:    ids,
	}
}

// ReloadConf updates the engine configuration, the log level and the debug
// toggles of every existing book are updated in place.
func (e *Engine) ReloadConf(cfg Config) {
	e.log.Info("reloading configuration")
	if e.log.GetLevel() != cfg.Level.Get() {
		e.log.Info("updating log level",
			logging.String("old", e.log.GetLevelString()),
			logging.String("new", cfg.Level.String()))
		e.log.SetLevel(cfg.Level.Get())
	}
	e.Config = cfg
	for _, book := range e.books {
		book.LogPriceLevelsDebug = bool(cfg.LogPriceLevelsDebug)
		book.LogRemovedOrdersDebug = bool(cfg.LogRemovedOrdersDebug)
	}
}

// SubmitOrder accepts a limit order for the given instrument, matches it
// against the opposite side of that instrument's book, and rests any
// remainder. Validation happens before the order identifier is assigned and
// before any book state is touched, a rejected order leaves no trace.
func (e *Engine) SubmitOrder(instrument string, price num.Decimal, size uint64, side types.Side) (*types.OrderConfirmation, error) {
	timer := metrics.NewTimeCounter(instrument, "matching", "SubmitOrder")
	defer timer.EngineTimeCounterAdd()

	if !side.IsValid() {
		metrics.OrderCounterInc(instrument, "false")
		return nil, types.ErrInvalidSide
	}
	if size == 0 {
		metrics.OrderCounterInc(instrument, "false")
		return nil, types.ErrInvalidQuantity
	}
	// zero is a valid limit price and is matched literally, only a
	// negative price is rejected
	if price.IsNegative() {
		metrics.OrderCounterInc(instrument, "false")
		return nil, types.ErrInvalidPrice
	}

	book := e.bookFor(instrument)
	order := &types.Order{
		ID:         e.ids.NextOrderID(),
		Instrument: instrument,
		Price:      price,
		Side:       side,
		Size:       size,
		Remaining:  size,
	}

	confirmation, err := book.SubmitOrder(order)
	if err != nil {
		metrics.OrderCounterInc(instrument, "false")
		return nil, err
	}

	metrics.OrderCounterInc(instrument, "true")
	metrics.TradeCounterAdd(len(confirmation.Trades), instrument)

	restingDelta := 0
	if order.Remaining > 0 {
		restingDelta++
	}
	for _, passive := range confirmation.PassiveOrdersAffected {
		if passive.Remaining == 0 {
			restingDelta--
		}
	}
	metrics.OrderGaugeAdd(restingDelta, instrument)

	if e.log.GetLevel() == logging.DebugLevel {
		e.log.Debug("order submitted",
			logging.Order(order),
			logging.Int("trades", len(confirmation.Trades)))
	}

	return confirmation, nil
}

// CancelOrder removes a resting order from the given instrument's book.
// An instrument that never had a book is rejected with ErrInvalidInstrument,
// an identifier that is not currently resting with ErrInvalidOrderID.
func (e *Engine) CancelOrder(orderID uint64, instrument string) (*types.OrderCancellationConfirmation, error) {
	timer := metrics.NewTimeCounter(instrument, "matching", "CancelOrder")
	defer timer.EngineTimeCounterAdd()

	book, ok := e.books[instrument]
	if !ok {
		return nil, types.ErrInvalidInstrument
	}

	confirmation, err := book.CancelOrder(orderID)
	if err != nil {
		return nil, err
	}
	metrics.OrderGaugeAdd(-1, instrument)

	if e.log.GetLevel() == logging.DebugLevel {
		e.log.Debug("order cancelled", logging.Order(confirmation.Order))
	}

	return confirmation, nil
}

// GetOrderBook returns the book for an instrument, or ErrInvalidInstrument
// if no order was ever submitted for it.
func (e *Engine) GetOrderBook(instrument string) (*OrderBook, error) {
	book, ok := e.books[instrument]
	if !ok {
		return nil, types.ErrInvalidInstrument
	}
	return book, nil
}

func (e *Engine) bookFor(instrument string) *OrderBook {
	book, ok := e.books[instrument]
	if !ok {
		book = NewOrderBook(e.log, e.Config, instrument, e.ids)
		e.books[instrument] = book
		if e.log.GetLevel() == logging.DebugLevel {
			e.log.Debug("created order book", logging.String("instrument", instrument))
		}
	}
	return book
}
