package binance

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"time"

	"github.com/gorilla/websocket"
	"github.com/shopspring/decimal"

	"github.com/mlabib2/OrderBookEngine/internal/core"
	"github.com/mlabib2/OrderBookEngine/internal/domain"
	"github.com/mlabib2/OrderBookEngine/internal/port"
)

// DefaultStreamURL is the BTCUSDT top-10 depth stream, 100ms cadence.
const DefaultStreamURL = "wss://stream.binance.com:9443/ws/btcusdt@depth10@100ms"

// DefaultLotScale converts the stream's fractional base quantities into
// the integer units the book trades: 0.5 BTC -> 500 units.
const DefaultLotScale = 1000

const redialDelay = 2 * time.Second

// depthMessage is the partial-depth payload: each entry is a
// [price, quantity] pair of decimal strings.
type depthMessage struct {
	Bids [][]string `json:"bids"`
	Asks [][]string `json:"asks"`
}

// Feed pumps a Binance depth stream into one order book: every update
// submits the top bid and ask as limit orders, and any trades the crossing
// produces go to the publisher and the journal.
type Feed struct {
	URL      string
	LotScale int64

	book      *core.OrderBook
	publisher port.TradePublisher
	store     port.TradeStore
}

// NewFeed wires a feed to its book. publisher and store may be nil;
// trades are then only logged.
func NewFeed(url string, book *core.OrderBook, publisher port.TradePublisher, store port.TradeStore) *Feed {
	if url == "" {
		url = DefaultStreamURL
	}
	return &Feed{
		URL:       url,
		LotScale:  DefaultLotScale,
		book:      book,
		publisher: publisher,
		store:     store,
	}
}

// Run connects and processes messages until ctx is done, redialing after
// read or dial failures.
func (f *Feed) Run(ctx context.Context) error {
	for {
		conn, _, err := websocket.DefaultDialer.DialContext(ctx, f.URL, nil)
		if err != nil {
			log.Printf("feed: dial %s: %v", f.URL, err)
			select {
			case <-ctx.Done():
				return ctx.Err()
			case <-time.After(redialDelay):
				continue
			}
		}
		log.Printf("feed: connected to %s", f.URL)

		err = f.readLoop(ctx, conn)
		conn.Close()
		if ctx.Err() != nil {
			return ctx.Err()
		}
		log.Printf("feed: connection lost: %v", err)
	}
}

func (f *Feed) readLoop(ctx context.Context, conn *websocket.Conn) error {
	// Unblock ReadMessage when the context ends.
	done := make(chan struct{})
	defer close(done)
	go func() {
		select {
		case <-ctx.Done():
			conn.Close()
		case <-done:
		}
	}()

	for {
		_, raw, err := conn.ReadMessage()
		if err != nil {
			return err
		}
		if err := f.handle(ctx, raw); err != nil {
			log.Printf("feed: %v", err)
		}
	}
}

// handle feeds one depth update into the book: the top bid becomes a buy,
// the top ask a sell.
func (f *Feed) handle(ctx context.Context, raw []byte) error {
	var msg depthMessage
	if err := json.Unmarshal(raw, &msg); err != nil {
		return fmt.Errorf("parse depth message: %w", err)
	}
	if len(msg.Bids) == 0 || len(msg.Asks) == 0 {
		return nil
	}

	bidPrice, bidQty, err := f.parseQuote(msg.Bids[0])
	if err != nil {
		return fmt.Errorf("bid: %w", err)
	}
	askPrice, askQty, err := f.parseQuote(msg.Asks[0])
	if err != nil {
		return fmt.Errorf("ask: %w", err)
	}
	if bidQty == 0 || askQty == 0 {
		return nil
	}

	trades, err := f.book.AddOrder(domain.Buy, bidPrice, bidQty)
	if err != nil {
		return err
	}
	sellTrades, err := f.book.AddOrder(domain.Sell, askPrice, askQty)
	if err != nil {
		return err
	}
	trades = append(trades, sellTrades...)

	for _, t := range trades {
		f.emit(ctx, t)
	}

	if spread, ok := f.book.Spread(); ok {
		log.Printf("BID %s x %d  |  ASK %s x %d  |  spread = %s",
			bidPrice, bidQty, askPrice, askQty, spread)
	}
	return nil
}

// parseQuote converts one [price, quantity] string pair into book units,
// applying the lot scale to the fractional quantity.
func (f *Feed) parseQuote(entry []string) (domain.Price, domain.Quantity, error) {
	if len(entry) < 2 {
		return 0, 0, errors.New("quote entry too short")
	}
	price, err := decimal.NewFromString(entry[0])
	if err != nil {
		return 0, 0, fmt.Errorf("parse price %q: %w", entry[0], err)
	}
	qty, err := decimal.NewFromString(entry[1])
	if err != nil {
		return 0, 0, fmt.Errorf("parse quantity %q: %w", entry[1], err)
	}
	units := qty.Mul(decimal.NewFromInt(f.LotScale)).IntPart()
	return domain.ToTicks(price), domain.Quantity(units), nil
}

func (f *Feed) emit(ctx context.Context, t domain.Trade) {
	if f.publisher != nil {
		if err := f.publisher.PublishTrade(ctx, t); err != nil {
			log.Printf("feed: publish trade %d: %v", t.ID, err)
		}
	}
	if f.store != nil {
		if err := f.store.SaveTrade(ctx, t); err != nil {
			log.Printf("feed: journal trade %d: %v", t.ID, err)
		}
	}
}
