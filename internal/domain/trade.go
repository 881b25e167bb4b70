package domain

import "time"

// TradeID is assigned by the book, monotonically increasing per book so a
// replay of the same order flow yields the same trade identities.
type TradeID uint64

// Trade records one completed match. It is a value: once returned from the
// book it has no relationship to the orders that produced it.
//
// Price is always the resting order's price. The resting order set the
// quote; the aggressor takes it.
type Trade struct {
	ID        TradeID
	Symbol    string
	BuyOrder  OrderID
	SellOrder OrderID
	Price     Price
	Quantity  Quantity
	Aggressor Side
	Timestamp time.Time
}

// TakerOrder returns the id of the incoming order.
func (t Trade) TakerOrder() OrderID {
	if t.Aggressor == Buy {
		return t.BuyOrder
	}
	return t.SellOrder
}

// MakerOrder returns the id of the resting order.
func (t Trade) MakerOrder() OrderID {
	if t.Aggressor == Buy {
		return t.SellOrder
	}
	return t.BuyOrder
}
