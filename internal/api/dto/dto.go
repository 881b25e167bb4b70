package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

type OrderType string

const (
	Limit  OrderType = "LIMIT"
	Market OrderType = "MARKET"
)

type Side string

const (
	Buy  Side = "BUY"
	Sell Side = "SELL"
)

type SubmitOrderRequest struct {
	OrderID  string          `json:"order_id,omitempty"` // for deduplicate
	ClientID string          `json:"client_id" binding:"required"`
	Side     Side            `json:"side" binding:"required"`
	Type     OrderType       `json:"type" binding:"required"`
	Price    decimal.Decimal `json:"price,omitempty"` // for limit orders
	Quantity int64           `json:"quantity" binding:"required"`
}

type Trade struct {
	ID        uint64          `json:"id"`
	Symbol    string          `json:"symbol"`
	BuyOrder  uint64          `json:"buy_order"`
	SellOrder uint64          `json:"sell_order"`
	Price     decimal.Decimal `json:"price"`
	Quantity  int64           `json:"quantity"`
	Aggressor Side            `json:"aggressor"`
	Timestamp time.Time       `json:"timestamp"`
}

type SubmitOrderResponse struct {
	OrderID   string  `json:"order_id"`
	Trades    []Trade `json:"trades"`
	Remaining int64   `json:"remaining"`
	Message   string  `json:"message,omitempty"`
}

type Level struct {
	Price    decimal.Decimal `json:"price"`
	Quantity int64           `json:"quantity"`
	Orders   int             `json:"orders"`
}

type OrderbookResponse struct {
	Symbol    string    `json:"symbol"`
	Bids      []Level   `json:"bids"`
	Asks      []Level   `json:"asks"`
	Timestamp time.Time `json:"timestamp"`
}

// TopOfBookResponse reports best prices as nullable decimals: an empty
// side is null, never zero.
type TopOfBookResponse struct {
	Symbol  string           `json:"symbol"`
	BestBid *decimal.Decimal `json:"best_bid"`
	BestAsk *decimal.Decimal `json:"best_ask"`
	Spread  *decimal.Decimal `json:"spread"`
}

type TradesResponse struct {
	Trades []Trade `json:"trades"`
}
