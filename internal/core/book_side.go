package core

import (
	rbt "github.com/emirpasic/gods/trees/redblacktree"

	"github.com/mlabib2/OrderBookEngine/internal/domain"
)

// bookSide holds the price levels for one side of the book, ordered
// best-first: the tree's leftmost key is the best price, so bids use a
// descending comparator and asks an ascending one.
type bookSide struct {
	levels *rbt.Tree // domain.Price -> *PriceLevel
}

func newBidSide() *bookSide {
	return &bookSide{levels: rbt.NewWith(bidComparator)}
}

func newAskSide() *bookSide {
	return &bookSide{levels: rbt.NewWith(askComparator)}
}

func bidComparator(a, b interface{}) int {
	pa := a.(domain.Price)
	pb := b.(domain.Price)
	switch {
	case pa > pb:
		return -1
	case pa < pb:
		return 1
	default:
		return 0
	}
}

func askComparator(a, b interface{}) int {
	pa := a.(domain.Price)
	pb := b.(domain.Price)
	switch {
	case pa < pb:
		return -1
	case pa > pb:
		return 1
	default:
		return 0
	}
}

func (s *bookSide) empty() bool { return s.levels.Empty() }

func (s *bookSide) levelCount() int { return s.levels.Size() }

// bestPrice returns the first key in iteration order; ok is false when the
// side is empty. An empty side is a normal state, not an error.
func (s *bookSide) bestPrice() (domain.Price, bool) {
	node := s.levels.Left()
	if node == nil {
		return 0, false
	}
	return node.Key.(domain.Price), true
}

func (s *bookSide) bestLevel() *PriceLevel {
	node := s.levels.Left()
	if node == nil {
		return nil
	}
	return node.Value.(*PriceLevel)
}

// levelFor returns the level at exactly price, creating it if absent.
func (s *bookSide) levelFor(price domain.Price) *PriceLevel {
	if v, ok := s.levels.Get(price); ok {
		return v.(*PriceLevel)
	}
	level := NewPriceLevel(price)
	s.levels.Put(price, level)
	return level
}

func (s *bookSide) volumeAt(price domain.Price) domain.Quantity {
	v, ok := s.levels.Get(price)
	if !ok {
		return 0
	}
	return v.(*PriceLevel).TotalQuantity()
}

// removeLevel drops the level at price. Levels are removed the moment
// their last order fills; an empty level never persists in the tree.
func (s *bookSide) removeLevel(price domain.Price) {
	s.levels.Remove(price)
}

// walk visits levels best-first until fn returns false.
func (s *bookSide) walk(fn func(*PriceLevel) bool) {
	it := s.levels.Iterator()
	for it.Next() {
		if !fn(it.Value().(*PriceLevel)) {
			return
		}
	}
}
