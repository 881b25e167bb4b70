package port

import (
	"context"
	"time"

	"github.com/mlabib2/OrderBookEngine/internal/domain"
)

// TradeStore journals executed trades. The book itself is never
// persisted; only its output is.
type TradeStore interface {
	SaveTrade(ctx context.Context, t domain.Trade) error
}

// CandleStore holds the historical daily bars the backtester replays.
type CandleStore interface {
	SaveCandles(ctx context.Context, candles []domain.Candle) error
	LoadCandles(ctx context.Context, symbol string, from, to time.Time) ([]domain.Candle, error)
}
