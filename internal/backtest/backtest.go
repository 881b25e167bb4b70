package backtest

import (
	"errors"
	"math"

	"github.com/shopspring/decimal"

	"github.com/mlabib2/OrderBookEngine/internal/core"
	"github.com/mlabib2/OrderBookEngine/internal/domain"
	"github.com/mlabib2/OrderBookEngine/internal/strategy"
)

// tradingDaysPerYear annualizes the Sharpe ratio from daily returns.
const tradingDaysPerYear = 252

type Config struct {
	Symbol string
	// StartingCash is the opening capital in quote units.
	StartingCash float64
	// StepQuantity is the number of base units traded per decision.
	StepQuantity domain.Quantity
	// SpreadFraction is the simulated bid/ask spread around each close.
	SpreadFraction float64
}

func DefaultConfig(symbol string) Config {
	return Config{
		Symbol:         symbol,
		StartingCash:   100_000,
		StepQuantity:   1,
		SpreadFraction: 0.001,
	}
}

// Result aggregates the performance of one replay.
type Result struct {
	StartValue  float64
	EndValue    float64
	TotalReturn float64
	SharpeRatio float64
	MaxDrawdown float64
	Steps       int
	Inventory   float64
	Cash        float64
}

// Run replays daily candles through a fresh order book. Each step feeds a
// synthetic bid/ask around the close into the book, asks the strategy for
// a decision, and executes it as a marketable limit order. The engine
// contributes trade execution and price queries; cash and inventory are
// tracked here, outside the book.
func Run(candles []domain.Candle, strat *strategy.MarketMaker, cfg Config) (Result, error) {
	if len(candles) == 0 {
		return Result{}, errors.New("backtest: no candles to replay")
	}
	if cfg.StepQuantity <= 0 {
		return Result{}, errors.New("backtest: step quantity must be positive")
	}

	book := core.NewOrderBook(cfg.Symbol)

	cash := cfg.StartingCash
	inventory := 0.0
	qty := cfg.StepQuantity
	qtyF := float64(qty)

	peak := cfg.StartingCash
	maxDrawdown := 0.0
	prevValue := cfg.StartingCash
	var returns []float64
	lastValue := cfg.StartingCash

	for _, c := range candles {
		price := c.Close.InexactFloat64()
		spread := price * cfg.SpreadFraction
		bid := price - spread/2
		ask := price + spread/2

		// Feed the current market into the engine.
		if _, err := book.AddOrder(domain.Buy, toTicks(bid), qty); err != nil {
			return Result{}, err
		}
		if _, err := book.AddOrder(domain.Sell, toTicks(ask), qty); err != nil {
			return Result{}, err
		}

		bestBid, bidOK := book.BestBid()
		bestAsk, askOK := book.BestAsk()
		action := strat.OnTick(bestBid, bestAsk, bidOK && askOK, inventory, cash)

		switch action {
		case strategy.ActionBuy:
			if cash >= ask {
				trades, err := book.AddOrder(domain.Buy, toTicks(ask), qty)
				if err != nil {
					return Result{}, err
				}
				if len(trades) > 0 {
					cash -= ask
					inventory += qtyF
				}
			}
		case strategy.ActionSell:
			if inventory >= qtyF {
				trades, err := book.AddOrder(domain.Sell, toTicks(bid), qty)
				if err != nil {
					return Result{}, err
				}
				if len(trades) > 0 {
					cash += bid
					inventory -= qtyF
				}
			}
		}

		// Mark to market.
		value := cash + inventory*price
		lastValue = value

		if value > peak {
			peak = value
		}
		if dd := (peak - value) / peak; dd > maxDrawdown {
			maxDrawdown = dd
		}

		returns = append(returns, (value-prevValue)/prevValue)
		prevValue = value
	}

	return Result{
		StartValue:  cfg.StartingCash,
		EndValue:    lastValue,
		TotalReturn: (lastValue - cfg.StartingCash) / cfg.StartingCash,
		SharpeRatio: sharpe(returns),
		MaxDrawdown: maxDrawdown,
		Steps:       len(candles),
		Inventory:   inventory,
		Cash:        cash,
	}, nil
}

// sharpe annualizes the mean/stddev ratio of daily returns; zero when the
// return series has no variance.
func sharpe(returns []float64) float64 {
	if len(returns) == 0 {
		return 0
	}
	mean := 0.0
	for _, r := range returns {
		mean += r
	}
	mean /= float64(len(returns))

	variance := 0.0
	for _, r := range returns {
		variance += (r - mean) * (r - mean)
	}
	variance /= float64(len(returns))

	std := math.Sqrt(variance)
	if std == 0 {
		return 0
	}
	return mean / std * math.Sqrt(tradingDaysPerYear)
}

func toTicks(price float64) domain.Price {
	return domain.ToTicks(decimal.NewFromFloat(price))
}
