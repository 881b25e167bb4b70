package strategy

import "github.com/mlabib2/OrderBookEngine/internal/domain"

// Action is a market-making decision for one tick.
type Action string

const (
	ActionBuy  Action = "buy"
	ActionSell Action = "sell"
	ActionHold Action = "hold"
)

// MarketMaker quotes around the book's mid price and collects the spread
// when both quotes fill, skewing away from its heavy side when inventory
// grows too large. It only consumes the book's query surface; the book
// never calls it.
type MarketMaker struct {
	// MaxPosition caps inventory, in base units.
	MaxPosition float64
	// MinCash is the floor below which no more buying happens.
	MinCash float64
	// HalfSpread is the fraction away from mid each quote is posted.
	HalfSpread float64
}

func NewMarketMaker() *MarketMaker {
	return &MarketMaker{
		MaxPosition: 5000,
		MinCash:     1000,
		HalfSpread:  0.001,
	}
}

// OnTick decides on the current top of book. ok reports whether both best
// prices exist; with a one-sided or empty book there is nothing to quote
// against, so the answer is hold.
func (m *MarketMaker) OnTick(bestBid, bestAsk domain.Price, ok bool, inventory, cash float64) Action {
	if !ok {
		return ActionHold
	}

	bid := bestBid.Float64()
	ask := bestAsk.Float64()
	mid := (bid + ask) / 2

	// Inventory skew: too long means only sell.
	if inventory >= m.MaxPosition {
		return ActionSell
	}
	if cash <= m.MinCash {
		return ActionHold
	}

	ourBid := mid * (1 - m.HalfSpread)
	ourAsk := mid * (1 + m.HalfSpread)

	// Someone offers at or below our ask: lift the offer.
	if ask <= ourAsk && cash >= ask {
		return ActionBuy
	}
	// Someone bids at or above our bid: hit the bid.
	if bid >= ourBid && inventory > 0 {
		return ActionSell
	}
	return ActionHold
}
