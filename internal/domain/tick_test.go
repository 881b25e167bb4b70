package domain

import (
	"testing"

	"github.com/shopspring/decimal"
)

func TestToTicks(t *testing.T) {
	cases := []struct {
		in   string
		want Price
	}{
		{"100.50", 100_500_000},
		{"0.000001", 1},
		{"101", 101_000_000},
		{"0.1", 100_000},
	}
	for _, tc := range cases {
		d, err := decimal.NewFromString(tc.in)
		if err != nil {
			t.Fatalf("parse %q: %v", tc.in, err)
		}
		if got := ToTicks(d); got != tc.want {
			t.Fatalf("ToTicks(%s) = %d, want %d", tc.in, got, tc.want)
		}
	}
}

func TestToTicksTruncatesBeyondTick(t *testing.T) {
	// Sub-tick noise must not fragment price levels.
	a, _ := decimal.NewFromString("100.00000001")
	b, _ := decimal.NewFromString("100.0")
	if ToTicks(a) != ToTicks(b) {
		t.Fatalf("100.00000001 and 100.0 landed on different ticks: %d vs %d", ToTicks(a), ToTicks(b))
	}
}

func TestPriceRoundTrip(t *testing.T) {
	p := Price(100_500_000)
	if p.String() != "100.5" {
		t.Fatalf("expected 100.5, got %s", p.String())
	}
	if got := ToTicks(p.Decimal()); got != p {
		t.Fatalf("decimal round trip changed the price: %d -> %d", p, got)
	}
}

func TestSideHelpers(t *testing.T) {
	if !Buy.Valid() || !Sell.Valid() {
		t.Fatal("BUY and SELL must be valid sides")
	}
	if Side("LONG").Valid() {
		t.Fatal("unrecognized side must be invalid")
	}
	if Buy.Opposite() != Sell || Sell.Opposite() != Buy {
		t.Fatal("opposite side mismatch")
	}
}
