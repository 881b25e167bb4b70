package domain

import "time"

type Side string
type OrderType string

const (
	Buy  Side = "BUY"
	Sell Side = "SELL"

	Limit  OrderType = "LIMIT"
	Market OrderType = "MARKET"
)

// Valid reports whether the side is one of the two recognized values.
// Anything else is rejected at the boundary, never stored.
func (s Side) Valid() bool {
	return s == Buy || s == Sell
}

// Opposite returns the side an incoming order matches against.
func (s Side) Opposite() Side {
	if s == Buy {
		return Sell
	}
	return Buy
}

// OrderID is assigned by the book at acceptance: a monotonically
// increasing sequence number, which doubles as the time-priority tiebreak.
type OrderID uint64

// Order is a resting or in-flight order. Remaining decreases on every
// fill; the book removes the order the moment it reaches zero.
type Order struct {
	ID        OrderID
	Side      Side
	Type      OrderType
	Price     Price
	Quantity  Quantity
	Remaining Quantity
	CreatedAt time.Time
}
