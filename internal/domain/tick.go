package domain

import "github.com/shopspring/decimal"

// Price is a fixed-point price expressed in integer ticks. One tick is
// 1e-6 of a quote unit, so 100.50 is 100_500_000 ticks. Matching compares
// and keys on ticks only; floating representations stay at the boundary.
type Price int64

// Quantity is a whole number of traded units.
type Quantity int64

// TickScale is the number of decimal places one tick resolves.
const TickScale = 6

var tickFactor = decimal.New(1, TickScale)

// ToTicks converts an external decimal price to ticks, truncating anything
// beyond six decimal places. Truncation is the module-wide conversion
// policy: every boundary (feed, DTO, candle store) converts through here,
// so 100.00000001 and 100.0 always land on the same level.
func ToTicks(d decimal.Decimal) Price {
	return Price(d.Mul(tickFactor).IntPart())
}

// ToTicksFloat converts a float price through the same truncation policy.
func ToTicksFloat(f float64) Price {
	return ToTicks(decimal.NewFromFloat(f))
}

// Decimal returns the exact decimal value of the price.
func (p Price) Decimal() decimal.Decimal {
	return decimal.New(int64(p), -TickScale)
}

// Float64 returns the price as a float for display and statistics only.
func (p Price) Float64() float64 {
	return p.Decimal().InexactFloat64()
}

func (p Price) String() string {
	return p.Decimal().String()
}
