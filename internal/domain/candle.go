package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// Candle is one daily OHLCV bar, the unit the backtester replays.
type Candle struct {
	Symbol string
	Day    time.Time
	Open   decimal.Decimal
	High   decimal.Decimal
	Low    decimal.Decimal
	Close  decimal.Decimal
	Volume decimal.Decimal
}
