package types

import "github.com/pkg/errors"

var (
	// ErrInvalidSide is returned when an order side is neither buy nor sell.
	ErrInvalidSide = errors.New("invalid order side")
	// ErrInvalidQuantity is returned for a zero quantity on submission, and
	// for the defensive zero-fill check during uncrossing. The latter can
	// only be the result of a corrupted book and is logged as such.
	ErrInvalidQuantity = errors.New("invalid order quantity")
	// ErrInvalidPrice is returned for a negative limit price. Zero is a
	// valid limit price and is matched literally.
	ErrInvalidPrice = errors.New("invalid order price")
	// ErrInvalidInstrument is returned by cancellation when the instrument
	// has never had a book created, and by a book receiving an order for
	// another instrument.
	ErrInvalidInstrument = errors.New("invalid instrument")
	// ErrInvalidOrderID is returned by cancellation when the id is not
	// currently resting: it never existed, was fully filled, or was
	// already cancelled. A second cancel of the same id is an error,
	// not a no-op.
	ErrInvalidOrderID = errors.New("invalid order id")
	// ErrOrderNotFound signals an id present in the order index whose
	// price level does not contain it. Given the book invariants this
	// cannot happen, its occurrence is a bug in the engine.
	ErrOrderNotFound = errors.New("order not found in the price level")
)
