package pg

import (
	"context"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/mlabib2/OrderBookEngine/internal/domain"
	"github.com/mlabib2/OrderBookEngine/internal/port"
)

var (
	_ port.TradeStore  = (*Store)(nil)
	_ port.CandleStore = (*Store)(nil)
)

// Store is the Postgres-backed trade journal and candle store.
type Store struct {
	pool *pgxpool.Pool
}

// NewStore opens a connection pool. Call Close when finished.
func NewStore(ctx context.Context, dsn string) (*Store, error) {
	pool, err := pgxpool.New(ctx, dsn)
	if err != nil {
		return nil, fmt.Errorf("pg: create pool: %w", err)
	}
	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, fmt.Errorf("pg: ping: %w", err)
	}
	return &Store{pool: pool}, nil
}

func (s *Store) Close() {
	if s.pool != nil {
		s.pool.Close()
	}
}

// SaveTrade appends one executed trade to the journal. Trade IDs are only
// unique per book, so the key includes the symbol.
func (s *Store) SaveTrade(ctx context.Context, t domain.Trade) error {
	_, err := s.pool.Exec(ctx, `
INSERT INTO trades(symbol, trade_id, buy_order, sell_order, price, quantity, aggressor, executed_at)
VALUES($1,$2,$3,$4,$5,$6,$7,$8)
ON CONFLICT (symbol, trade_id) DO NOTHING
`, t.Symbol, int64(t.ID), int64(t.BuyOrder), int64(t.SellOrder), t.Price.Decimal(), int64(t.Quantity), string(t.Aggressor), t.Timestamp)
	if err != nil {
		return fmt.Errorf("pg: save trade: %w", err)
	}
	return nil
}

// SaveCandles upserts daily bars keyed by (symbol, day).
func (s *Store) SaveCandles(ctx context.Context, candles []domain.Candle) error {
	for _, c := range candles {
		_, err := s.pool.Exec(ctx, `
INSERT INTO candles(symbol, day, open, high, low, close, volume)
VALUES($1,$2,$3,$4,$5,$6,$7)
ON CONFLICT (symbol, day) DO UPDATE SET
  open = EXCLUDED.open,
  high = EXCLUDED.high,
  low = EXCLUDED.low,
  close = EXCLUDED.close,
  volume = EXCLUDED.volume
`, c.Symbol, c.Day, c.Open, c.High, c.Low, c.Close, c.Volume)
		if err != nil {
			return fmt.Errorf("pg: save candle %s %s: %w", c.Symbol, c.Day.Format("2006-01-02"), err)
		}
	}
	return nil
}

// LoadCandles returns the bars for symbol in [from, to] ordered by day ASC,
// the order the backtester replays them in.
func (s *Store) LoadCandles(ctx context.Context, symbol string, from, to time.Time) ([]domain.Candle, error) {
	rows, err := s.pool.Query(ctx, `
SELECT symbol, day, open, high, low, close, volume
FROM candles
WHERE symbol = $1 AND day >= $2 AND day <= $3
ORDER BY day ASC
`, symbol, from, to)
	if err != nil {
		return nil, fmt.Errorf("pg: load candles: %w", err)
	}
	defer rows.Close()

	var res []domain.Candle
	for rows.Next() {
		var c domain.Candle
		if err := rows.Scan(&c.Symbol, &c.Day, &c.Open, &c.High, &c.Low, &c.Close, &c.Volume); err != nil {
			return nil, fmt.Errorf("pg: scan candle: %w", err)
		}
		res = append(res, c)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("pg: load candles: %w", err)
	}
	return res, nil
}
