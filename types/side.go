package types

// Side of the book an order belongs to.
type Side int8

const (
	// SideUnspecified is the zero value, it is never valid on an order.
	SideUnspecified Side = iota
	SideBuy
	SideSell
)

func (s Side) String() string {
	switch s {
	case SideBuy:
		return "buy"
	case SideSell:
		return "sell"
	default:
		return "unspecified"
	}
}

// Opposite returns the side an order on s would trade against.
func (s Side) Opposite() Side {
	switch s {
	case SideBuy:
		return SideSell
	case SideSell:
		return SideBuy
	default:
		return SideUnspecified
	}
}

// IsValid reports whether the side is one of the two tradable sides.
func (s Side) IsValid() bool {
	return s == SideBuy || s == SideSell
}
