package core

import (
	"errors"
	"testing"
	"time"

	"github.com/mlabib2/OrderBookEngine/internal/domain"
)

func px(f float64) domain.Price {
	return domain.ToTicksFloat(f)
}

func TestFreshBookQueries(t *testing.T) {
	book := NewOrderBook("BTCUSDT")

	if _, ok := book.BestBid(); ok {
		t.Fatal("fresh book should have no best bid")
	}
	if _, ok := book.BestAsk(); ok {
		t.Fatal("fresh book should have no best ask")
	}
	if _, ok := book.Spread(); ok {
		t.Fatal("fresh book should have no spread")
	}
	if !book.Empty() {
		t.Fatal("fresh book should be empty")
	}
}

func TestInvalidOrdersRejectedWithoutStateChange(t *testing.T) {
	book := NewOrderBook("BTCUSDT")

	cases := []struct {
		name  string
		side  domain.Side
		price domain.Price
		qty   domain.Quantity
	}{
		{"bad side", domain.Side("LONG"), px(10), 100},
		{"zero price", domain.Buy, 0, 100},
		{"negative price", domain.Buy, -1, 100},
		{"zero quantity", domain.Sell, px(10), 0},
		{"negative quantity", domain.Sell, px(10), -5},
	}
	for _, tc := range cases {
		trades, err := book.AddOrder(tc.side, tc.price, tc.qty)
		if err == nil {
			t.Fatalf("%s: expected rejection", tc.name)
		}
		var invalid *InvalidOrderError
		if !errors.As(err, &invalid) {
			t.Fatalf("%s: expected InvalidOrderError, got %T", tc.name, err)
		}
		if len(trades) != 0 {
			t.Fatalf("%s: rejection produced trades", tc.name)
		}
	}

	if !book.Empty() {
		t.Fatal("rejections must not mutate the book")
	}
}

func TestNoMatchThenSweep(t *testing.T) {
	book := NewOrderBook("BTCUSDT")

	// sell 100@10 and buy 100@1 do not cross.
	if trades, err := book.AddOrder(domain.Sell, px(10), 100); err != nil || len(trades) != 0 {
		t.Fatalf("expected no trades, got %v err=%v", trades, err)
	}
	if trades, err := book.AddOrder(domain.Buy, px(1), 100); err != nil || len(trades) != 0 {
		t.Fatalf("expected no trades, got %v err=%v", trades, err)
	}
	if got := book.VolumeAtPrice(domain.Buy, px(1)); got != 100 {
		t.Fatalf("expected bid level 1x100, got %d", got)
	}
	if got := book.VolumeAtPrice(domain.Sell, px(10)); got != 100 {
		t.Fatalf("expected ask level 10x100, got %d", got)
	}

	// buy 150@10 fills the resting ask and rests the remainder.
	trades, err := book.AddOrder(domain.Buy, px(10), 150)
	if err != nil {
		t.Fatalf("add order: %v", err)
	}
	if len(trades) != 1 {
		t.Fatalf("expected one trade, got %d", len(trades))
	}
	if trades[0].Price != px(10) || trades[0].Quantity != 100 {
		t.Fatalf("unexpected trade %+v", trades[0])
	}

	bid, ok := book.BestBid()
	if !ok || bid != px(10) {
		t.Fatalf("expected best bid 10, got %s ok=%v", bid, ok)
	}
	if _, ok := book.BestAsk(); ok {
		t.Fatal("ask side should be empty after the sweep")
	}
	if got := book.VolumeAtPrice(domain.Buy, px(10)); got != 50 {
		t.Fatalf("expected 50 resting at 10, got %d", got)
	}
}

func TestPriceTimePriority(t *testing.T) {
	book := NewOrderBook("BTCUSDT")

	// Two buys at the same price: the earlier one must fill first.
	if _, err := book.AddOrder(domain.Buy, px(20), 50); err != nil {
		t.Fatalf("add first bid: %v", err)
	}
	if _, err := book.AddOrder(domain.Buy, px(20), 30); err != nil {
		t.Fatalf("add second bid: %v", err)
	}

	trades, err := book.AddOrder(domain.Sell, px(20), 60)
	if err != nil {
		t.Fatalf("add sell: %v", err)
	}
	if len(trades) != 2 {
		t.Fatalf("expected two trades, got %d", len(trades))
	}
	if trades[0].Quantity != 50 || trades[0].BuyOrder != 1 {
		t.Fatalf("first trade should exhaust order 1 for 50, got %+v", trades[0])
	}
	if trades[1].Quantity != 10 || trades[1].BuyOrder != 2 {
		t.Fatalf("second trade should partially fill order 2 for 10, got %+v", trades[1])
	}
	if got := book.VolumeAtPrice(domain.Buy, px(20)); got != 20 {
		t.Fatalf("later order should still rest with 20, got %d", got)
	}
}

func TestMakerPriceRule(t *testing.T) {
	book := NewOrderBook("BTCUSDT")

	if _, err := book.AddOrder(domain.Sell, px(101), 100); err != nil {
		t.Fatalf("add ask: %v", err)
	}
	// Aggressive buy far through the book still pays the resting price.
	trades, err := book.AddOrder(domain.Buy, px(102), 100)
	if err != nil {
		t.Fatalf("add buy: %v", err)
	}
	if len(trades) != 1 {
		t.Fatalf("expected one trade, got %d", len(trades))
	}
	if trades[0].Price != px(101) {
		t.Fatalf("trade must execute at the resting price 101, got %s", trades[0].Price)
	}
	if trades[0].Aggressor != domain.Buy {
		t.Fatalf("aggressor should be the incoming buy, got %s", trades[0].Aggressor)
	}
}

func TestExactMatchRemovesRestingOrder(t *testing.T) {
	book := NewOrderBook("BTCUSDT")

	if _, err := book.AddOrder(domain.Sell, px(10), 100); err != nil {
		t.Fatalf("add ask: %v", err)
	}
	trades, err := book.AddOrder(domain.Buy, px(10), 100)
	if err != nil {
		t.Fatalf("add buy: %v", err)
	}
	if len(trades) != 1 || trades[0].Quantity != 100 {
		t.Fatalf("expected single full fill, got %v", trades)
	}
	if !book.Empty() {
		t.Fatal("book should be empty after an exact match")
	}
	if book.AskLevels() != 0 {
		t.Fatal("empty level must be removed, never left at zero")
	}
}

func TestTouchPriceStillMatches(t *testing.T) {
	book := NewOrderBook("BTCUSDT")

	if _, err := book.AddOrder(domain.Sell, px(10), 40); err != nil {
		t.Fatalf("add ask: %v", err)
	}
	// Limit exactly at the opposite best: inclusive comparison, must trade.
	trades, err := book.AddOrder(domain.Buy, px(10), 40)
	if err != nil {
		t.Fatalf("add buy: %v", err)
	}
	if len(trades) != 1 {
		t.Fatalf("marketable limit at the touch must execute, got %v", trades)
	}
}

func TestNoStandingCross(t *testing.T) {
	book := NewOrderBook("BTCUSDT")

	submissions := []struct {
		side  domain.Side
		price float64
		qty   domain.Quantity
	}{
		{domain.Sell, 10, 100},
		{domain.Buy, 9, 50},
		{domain.Buy, 12, 30}, // crosses, must fully match
		{domain.Sell, 8, 200}, // crosses the bid
		{domain.Buy, 8.5, 10},
		{domain.Sell, 8.5, 10},
	}
	for _, s := range submissions {
		if _, err := book.AddOrder(s.side, px(s.price), s.qty); err != nil {
			t.Fatalf("add %s %v: %v", s.side, s.price, err)
		}
		bid, bidOK := book.BestBid()
		ask, askOK := book.BestAsk()
		if bidOK && askOK && bid >= ask {
			t.Fatalf("standing cross after %s %v: bid=%s ask=%s", s.side, s.price, bid, ask)
		}
	}
}

func TestQuantityConservation(t *testing.T) {
	book := NewOrderBook("BTCUSDT")

	submissions := []struct {
		side  domain.Side
		price float64
		qty   domain.Quantity
	}{
		{domain.Sell, 10, 100},
		{domain.Sell, 10, 50},
		{domain.Sell, 11, 75},
		{domain.Buy, 9, 60},
		{domain.Buy, 10, 120},
		{domain.Sell, 9, 100},
		{domain.Buy, 11, 200},
	}

	var submitted, executed domain.Quantity
	for _, s := range submissions {
		trades, err := book.AddOrder(s.side, px(s.price), s.qty)
		if err != nil {
			t.Fatalf("add %s %v: %v", s.side, s.price, err)
		}
		submitted += s.qty
		for _, tr := range trades {
			executed += tr.Quantity
		}
	}

	var resting domain.Quantity
	view := book.Snapshot(0)
	for _, l := range append(view.Bids, view.Asks...) {
		resting += l.Quantity
	}

	if submitted != resting+2*executed {
		t.Fatalf("conservation violated: submitted=%d resting=%d executed=%d", submitted, resting, executed)
	}
}

func TestMarketOrderLeftoverDiscarded(t *testing.T) {
	book := NewOrderBook("BTCUSDT")

	if _, err := book.AddOrder(domain.Sell, px(10), 30); err != nil {
		t.Fatalf("add ask: %v", err)
	}
	trades, err := book.AddMarketOrder(domain.Buy, 50)
	if err != nil {
		t.Fatalf("market order: %v", err)
	}
	if len(trades) != 1 || trades[0].Quantity != 30 {
		t.Fatalf("expected one 30-unit fill, got %v", trades)
	}
	// The unfilled 20 units must not rest anywhere.
	if !book.Empty() {
		t.Fatal("market order leftover must be discarded")
	}
}

func TestMarketOrderSweepsLevels(t *testing.T) {
	book := NewOrderBook("BTCUSDT")

	_, _ = book.AddOrder(domain.Sell, px(10), 20)
	_, _ = book.AddOrder(domain.Sell, px(11), 20)

	trades, err := book.AddMarketOrder(domain.Buy, 30)
	if err != nil {
		t.Fatalf("market order: %v", err)
	}
	if len(trades) != 2 {
		t.Fatalf("expected two fills, got %d", len(trades))
	}
	if trades[0].Price != px(10) || trades[1].Price != px(11) {
		t.Fatalf("market order should sweep best-first, got %v", trades)
	}
	if trades[1].Quantity != 10 {
		t.Fatalf("second fill should be 10, got %d", trades[1].Quantity)
	}
}

func TestTradeIdentitiesAndSymbol(t *testing.T) {
	book := NewOrderBook("ETHUSDT")
	book.now = func() time.Time { return time.Unix(42, 0) }

	_, _ = book.AddOrder(domain.Sell, px(100), 10)
	trades, err := book.AddOrder(domain.Buy, px(100), 10)
	if err != nil {
		t.Fatalf("add buy: %v", err)
	}
	tr := trades[0]
	if tr.ID != 1 {
		t.Fatalf("expected first trade id 1, got %d", tr.ID)
	}
	if tr.Symbol != "ETHUSDT" {
		t.Fatalf("expected symbol ETHUSDT, got %s", tr.Symbol)
	}
	if tr.SellOrder != 1 || tr.BuyOrder != 2 {
		t.Fatalf("unexpected order identities %+v", tr)
	}
	if tr.MakerOrder() != 1 || tr.TakerOrder() != 2 {
		t.Fatalf("maker/taker mismatch %+v", tr)
	}
	if !tr.Timestamp.Equal(time.Unix(42, 0)) {
		t.Fatalf("trade timestamp should come from the book clock, got %v", tr.Timestamp)
	}
}

func TestSnapshotDepth(t *testing.T) {
	book := NewOrderBook("BTCUSDT")

	for _, p := range []float64{9, 8, 7} {
		_, _ = book.AddOrder(domain.Buy, px(p), 10)
	}
	for _, p := range []float64{10, 11, 12} {
		_, _ = book.AddOrder(domain.Sell, px(p), 10)
	}

	view := book.Snapshot(2)
	if len(view.Bids) != 2 || len(view.Asks) != 2 {
		t.Fatalf("expected 2 levels per side, got %d/%d", len(view.Bids), len(view.Asks))
	}
	if view.Bids[0].Price != px(9) || view.Asks[0].Price != px(10) {
		t.Fatalf("snapshot should be best-first, got %+v", view)
	}
	if book.BidLevels() != 3 || book.AskLevels() != 3 {
		t.Fatalf("expected 3 levels per side, got %d/%d", book.BidLevels(), book.AskLevels())
	}
}

func TestSpread(t *testing.T) {
	book := NewOrderBook("BTCUSDT")

	_, _ = book.AddOrder(domain.Buy, px(99), 10)
	if _, ok := book.Spread(); ok {
		t.Fatal("spread undefined with an empty ask side")
	}
	_, _ = book.AddOrder(domain.Sell, px(101), 10)

	spread, ok := book.Spread()
	if !ok || spread != px(2) {
		t.Fatalf("expected spread 2, got %s ok=%v", spread, ok)
	}
}

func TestMid(t *testing.T) {
	book := NewOrderBook("BTCUSDT")

	if _, ok := book.Mid(); ok {
		t.Fatal("mid undefined on an empty book")
	}
	_, _ = book.AddOrder(domain.Buy, px(99), 10)
	if _, ok := book.Mid(); ok {
		t.Fatal("mid undefined with an empty ask side")
	}
	_, _ = book.AddOrder(domain.Sell, px(101), 10)

	mid, ok := book.Mid()
	if !ok || mid != px(100) {
		t.Fatalf("expected mid 100, got %s ok=%v", mid, ok)
	}
}
