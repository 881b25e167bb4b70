package core

import (
	"github.com/mlabib2/OrderBookEngine/internal/domain"
)

// PriceLevel is the FIFO queue of resting orders sharing one exact price.
// The front order is the oldest and always matches first.
type PriceLevel struct {
	price    domain.Price
	orders   []*domain.Order
	totalQty domain.Quantity
}

func NewPriceLevel(price domain.Price) *PriceLevel {
	return &PriceLevel{price: price}
}

func (l *PriceLevel) Price() domain.Price { return l.price }

// TotalQuantity is the sum of member orders' remaining quantity. It is
// maintained incrementally on append and fill, never recomputed.
func (l *PriceLevel) TotalQuantity() domain.Quantity { return l.totalQty }

func (l *PriceLevel) Len() int    { return len(l.orders) }
func (l *PriceLevel) Empty() bool { return len(l.orders) == 0 }

// Append adds an order to the tail, preserving arrival order.
func (l *PriceLevel) Append(o *domain.Order) {
	l.orders = append(l.orders, o)
	l.totalQty += o.Remaining
}

// Front returns the oldest order without removing it, or nil when empty.
func (l *PriceLevel) Front() *domain.Order {
	if len(l.orders) == 0 {
		return nil
	}
	return l.orders[0]
}

// Reduce records qty executed against the front order.
func (l *PriceLevel) Reduce(qty domain.Quantity) {
	l.totalQty -= qty
	if l.totalQty < 0 {
		panic("price level aggregate below zero")
	}
}

// PopFront removes the front order once its remaining quantity is zero.
func (l *PriceLevel) PopFront() {
	front := l.Front()
	if front == nil {
		panic("pop on empty price level")
	}
	if front.Remaining != 0 {
		panic("pop of unfilled front order")
	}
	l.orders[0] = nil
	l.orders = l.orders[1:]
}
