package strategy

import (
	"testing"

	"github.com/mlabib2/OrderBookEngine/internal/domain"
)

func TestHoldOnOneSidedBook(t *testing.T) {
	mm := NewMarketMaker()
	if got := mm.OnTick(0, 0, false, 0, 100_000); got != ActionHold {
		t.Fatalf("expected hold with no top of book, got %s", got)
	}
}

func TestSellWhenInventoryCapped(t *testing.T) {
	mm := NewMarketMaker()
	bid := domain.ToTicksFloat(100)
	ask := domain.ToTicksFloat(100.1)
	if got := mm.OnTick(bid, ask, true, mm.MaxPosition, 100_000); got != ActionSell {
		t.Fatalf("expected sell at inventory cap, got %s", got)
	}
}

func TestHoldAtCashFloor(t *testing.T) {
	mm := NewMarketMaker()
	bid := domain.ToTicksFloat(100)
	ask := domain.ToTicksFloat(100.1)
	if got := mm.OnTick(bid, ask, true, 0, mm.MinCash); got != ActionHold {
		t.Fatalf("expected hold at cash floor, got %s", got)
	}
}

func TestBuyWhenOfferInsideQuote(t *testing.T) {
	mm := NewMarketMaker()
	// Tight market: the touch sits inside our half-spread quote.
	bid := domain.ToTicksFloat(100)
	ask := domain.ToTicksFloat(100.05)
	if got := mm.OnTick(bid, ask, true, 0, 100_000); got != ActionBuy {
		t.Fatalf("expected buy when the offer crosses our quote, got %s", got)
	}
}

func TestSellWhenCashShortOfAsk(t *testing.T) {
	mm := NewMarketMaker()
	// Cash above the floor but below the ask: buying is impossible, the
	// bid sits at our quote, inventory gets unloaded.
	bid := domain.ToTicksFloat(5000)
	ask := domain.ToTicksFloat(5002)
	if got := mm.OnTick(bid, ask, true, 2, 2000); got != ActionSell {
		t.Fatalf("expected sell when cash cannot cover the ask, got %s", got)
	}
}

func TestHoldInWideMarketWithoutInventory(t *testing.T) {
	mm := NewMarketMaker()
	// Spread far wider than our quotes: neither side crosses.
	bid := domain.ToTicksFloat(100)
	ask := domain.ToTicksFloat(110)
	if got := mm.OnTick(bid, ask, true, 0, 100_000); got != ActionHold {
		t.Fatalf("expected hold in a wide market, got %s", got)
	}
}
