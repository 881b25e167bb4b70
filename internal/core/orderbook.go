package core

import (
	"sync"
	"time"

	"github.com/mlabib2/OrderBookEngine/internal/domain"
)

// OrderBook matches orders for a single symbol under price-time priority.
//
// Every public method takes the book mutex for its whole duration, so a
// concurrent host never observes a partial match; two books for different
// symbols share no state and run fully in parallel.
type OrderBook struct {
	mu     sync.Mutex
	symbol string
	bids   *bookSide
	asks   *bookSide

	seq     uint64 // order sequence, the time-priority tiebreak
	tradeID uint64
	resting int

	now func() time.Time
}

func NewOrderBook(symbol string) *OrderBook {
	return &OrderBook{
		symbol: symbol,
		bids:   newBidSide(),
		asks:   newAskSide(),
		now:    time.Now,
	}
}

func (b *OrderBook) Symbol() string { return b.symbol }

// AddOrder submits a limit order. It matches against the opposite side as
// far as the limit allows, then rests any remainder on its own side.
// Returned trades are in execution order, oldest resting match first.
func (b *OrderBook) AddOrder(side domain.Side, price domain.Price, qty domain.Quantity) ([]domain.Trade, error) {
	if !side.Valid() {
		return nil, invalidOrder("side", "must be BUY or SELL")
	}
	if price <= 0 {
		return nil, invalidOrder("price", "must be positive")
	}
	if qty <= 0 {
		return nil, invalidOrder("quantity", "must be positive")
	}
	return b.submit(side, domain.Limit, price, qty), nil
}

// AddMarketOrder submits an order that crosses at any price. Leftover
// quantity is discarded, never rested.
func (b *OrderBook) AddMarketOrder(side domain.Side, qty domain.Quantity) ([]domain.Trade, error) {
	if !side.Valid() {
		return nil, invalidOrder("side", "must be BUY or SELL")
	}
	if qty <= 0 {
		return nil, invalidOrder("quantity", "must be positive")
	}
	return b.submit(side, domain.Market, 0, qty), nil
}

func (b *OrderBook) submit(side domain.Side, typ domain.OrderType, price domain.Price, qty domain.Quantity) []domain.Trade {
	b.mu.Lock()
	defer b.mu.Unlock()

	b.seq++
	o := &domain.Order{
		ID:        domain.OrderID(b.seq),
		Side:      side,
		Type:      typ,
		Price:     price,
		Quantity:  qty,
		Remaining: qty,
		CreatedAt: b.now(),
	}

	trades := b.match(o)

	if o.Remaining > 0 && o.Type == domain.Limit {
		own := b.bids
		if o.Side == domain.Sell {
			own = b.asks
		}
		own.levelFor(o.Price).Append(o)
		b.resting++
	}
	return trades
}

// match sweeps the opposite side while the incoming order has quantity
// left and the best resting price satisfies its limit. The comparison is
// inclusive: a marketable limit at the touch still executes.
func (b *OrderBook) match(o *domain.Order) []domain.Trade {
	opposite := b.asks
	if o.Side == domain.Sell {
		opposite = b.bids
	}

	var trades []domain.Trade
	for o.Remaining > 0 {
		level := opposite.bestLevel()
		if level == nil {
			break
		}
		if o.Type == domain.Limit && !crosses(o, level.Price()) {
			break
		}

		for o.Remaining > 0 && !level.Empty() {
			resting := level.Front()
			qty := o.Remaining
			if resting.Remaining < qty {
				qty = resting.Remaining
			}

			o.Remaining -= qty
			resting.Remaining -= qty
			level.Reduce(qty)

			trades = append(trades, b.newTrade(o, resting, level.Price(), qty))

			if resting.Remaining == 0 {
				level.PopFront()
				b.resting--
			}
		}

		if level.Empty() {
			opposite.removeLevel(level.Price())
		}
	}
	return trades
}

// crosses reports whether the incoming limit order is willing to trade at
// the resting price.
func crosses(o *domain.Order, restingPrice domain.Price) bool {
	if o.Side == domain.Buy {
		return restingPrice <= o.Price
	}
	return restingPrice >= o.Price
}

// newTrade builds the record for one fill. The executed price is the
// resting order's price: the maker set the quote, the taker takes it.
func (b *OrderBook) newTrade(incoming, resting *domain.Order, price domain.Price, qty domain.Quantity) domain.Trade {
	b.tradeID++
	buyOrder, sellOrder := incoming.ID, resting.ID
	if incoming.Side == domain.Sell {
		buyOrder, sellOrder = resting.ID, incoming.ID
	}
	return domain.Trade{
		ID:        domain.TradeID(b.tradeID),
		Symbol:    b.symbol,
		BuyOrder:  buyOrder,
		SellOrder: sellOrder,
		Price:     price,
		Quantity:  qty,
		Aggressor: incoming.Side,
		Timestamp: b.now(),
	}
}

// BestBid returns the highest resting bid price. ok is false when the bid
// side is empty; zero is never reported as a price.
func (b *OrderBook) BestBid() (domain.Price, bool) {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.bids.bestPrice()
}

// BestAsk returns the lowest resting ask price.
func (b *OrderBook) BestAsk() (domain.Price, bool) {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.asks.bestPrice()
}

// Spread returns best ask minus best bid, defined only when both sides
// have resting orders.
func (b *OrderBook) Spread() (domain.Price, bool) {
	b.mu.Lock()
	defer b.mu.Unlock()
	bid, ok := b.bids.bestPrice()
	if !ok {
		return 0, false
	}
	ask, ok := b.asks.bestPrice()
	if !ok {
		return 0, false
	}
	return ask - bid, true
}

// Mid returns the midpoint of the best bid and ask in ticks, rounded down,
// defined only when both sides have resting orders.
func (b *OrderBook) Mid() (domain.Price, bool) {
	b.mu.Lock()
	defer b.mu.Unlock()
	bid, ok := b.bids.bestPrice()
	if !ok {
		return 0, false
	}
	ask, ok := b.asks.bestPrice()
	if !ok {
		return 0, false
	}
	return (bid + ask) / 2, true
}

// VolumeAtPrice returns the aggregate resting quantity at exactly price on
// the given side, zero when no such level exists.
func (b *OrderBook) VolumeAtPrice(side domain.Side, price domain.Price) domain.Quantity {
	b.mu.Lock()
	defer b.mu.Unlock()
	if side == domain.Buy {
		return b.bids.volumeAt(price)
	}
	return b.asks.volumeAt(price)
}

func (b *OrderBook) OrderCount() int {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.resting
}

func (b *OrderBook) Empty() bool {
	return b.OrderCount() == 0
}

func (b *OrderBook) BidLevels() int {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.bids.levelCount()
}

func (b *OrderBook) AskLevels() int {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.asks.levelCount()
}

// LevelView is one aggregated price level in a snapshot.
type LevelView struct {
	Price    domain.Price
	Quantity domain.Quantity
	Orders   int
}

// BookView is a point-in-time copy of the top depth levels of both sides.
type BookView struct {
	Symbol    string
	Bids      []LevelView
	Asks      []LevelView
	Timestamp time.Time
}

// Snapshot copies up to depth levels per side, best-first. depth <= 0
// copies every level.
func (b *OrderBook) Snapshot(depth int) BookView {
	b.mu.Lock()
	defer b.mu.Unlock()

	view := BookView{Symbol: b.symbol, Timestamp: b.now()}
	collect := func(side *bookSide) []LevelView {
		var out []LevelView
		side.walk(func(l *PriceLevel) bool {
			out = append(out, LevelView{Price: l.Price(), Quantity: l.TotalQuantity(), Orders: l.Len()})
			return depth <= 0 || len(out) < depth
		})
		return out
	}
	view.Bids = collect(b.bids)
	view.Asks = collect(b.asks)
	return view
}
