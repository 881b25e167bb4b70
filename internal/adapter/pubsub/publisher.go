package pubsub

import (
	"context"
	"fmt"

	"github.com/redis/go-redis/v9"

	"github.com/mlabib2/OrderBookEngine/internal/domain"
)

// DefaultChannel is the pub/sub channel subscribers listen on.
const DefaultChannel = "trades"

// Publisher publishes each executed trade to a Redis channel as a single
// opaque text line:
//
//	symbol=BTCUSDT price=101.5 qty=100 buy=1 sell=2
type Publisher struct {
	client  *redis.Client
	channel string
}

func NewPublisher(addr, password string, db int, channel string) *Publisher {
	rdb := redis.NewClient(&redis.Options{
		Addr:     addr,
		Password: password,
		DB:       db,
	})
	if channel == "" {
		channel = DefaultChannel
	}
	return &Publisher{client: rdb, channel: channel}
}

// Ping verifies the connection before the feed starts pumping trades.
func (p *Publisher) Ping(ctx context.Context) error {
	if err := p.client.Ping(ctx).Err(); err != nil {
		return fmt.Errorf("redis: ping: %w", err)
	}
	return nil
}

func (p *Publisher) PublishTrade(ctx context.Context, t domain.Trade) error {
	msg := fmt.Sprintf("symbol=%s price=%s qty=%d buy=%d sell=%d",
		t.Symbol, t.Price, t.Quantity, t.BuyOrder, t.SellOrder)
	return p.client.Publish(ctx, p.channel, msg).Err()
}

// Subscribe returns the raw subscription for consumers such as a trade
// tape listener.
func (p *Publisher) Subscribe(ctx context.Context) *redis.PubSub {
	return p.client.Subscribe(ctx, p.channel)
}

func (p *Publisher) Close() error {
	return p.client.Close()
}
