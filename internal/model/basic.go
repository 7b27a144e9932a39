package model

import "github.com/shopspring/decimal"

const (
	// TicksPerPoint is the number of price ticks in one point. Treasury
	// prices quote in 32nds and 8ths of a 32nd, so the smallest increment
	// is 1/256 of a point.
	TicksPerPoint = 256

	// TicksPer32nd is the number of ticks in one 32nd of a point.
	TicksPer32nd = 8
)

// Price is a bond price as a signed count of 1/256 ticks.
type Price int64

// Decimal returns the price in points. The division is exact: any tick
// count has at most eight fractional decimal digits.
func (p Price) Decimal() decimal.Decimal {
	return decimal.New(int64(p), 0).Div(decimal.NewFromInt(TicksPerPoint))
}

func (p Price) String() string {
	return p.Decimal().String()
}

// Quantity is a whole number of units.
type Quantity int64
