package port

import (
	"context"

	"github.com/mlabib2/OrderBookEngine/internal/domain"
)

// TradePublisher pushes executed trades to an external channel. The core
// defines no wire format; implementations serialize Trade fields as they
// see fit.
type TradePublisher interface {
	PublishTrade(ctx context.Context, t domain.Trade) error
}
