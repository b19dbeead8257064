// Package pricing computes cover premiums from a period and a cover type.
//
// The day rate is the configured base rate scaled by a per-type multiplier.
// Days are billed through an ordered list of tiers, each consuming as many
// days as it can hold before the next one starts. All arithmetic is done in
// fixed-point decimal so results are cent-exact and repeatable.
package pricing

import (
	"time"

	"github.com/shopspring/decimal"
)

// DefaultBaseDayRate is used when no base day rate is configured.
var DefaultBaseDayRate = decimal.NewFromInt(1250)

var (
	yachtMultiplier         = decimal.RequireFromString("1.1")
	passengerShipMultiplier = decimal.RequireFromString("1.2")
	tankerMultiplier        = decimal.RequireFromString("1.5")
	defaultMultiplier       = decimal.RequireFromString("1.3")
)

// tier bills up to capacity days at the day rate less discount. A zero
// capacity is unbounded and must be last.
type tier struct {
	capacity int
	discount func(CoverType) decimal.Decimal
}

func flat(d decimal.Decimal) func(CoverType) decimal.Decimal {
	return func(CoverType) decimal.Decimal { return d }
}

func yachtOr(yacht, other string) func(CoverType) decimal.Decimal {
	y, o := decimal.RequireFromString(yacht), decimal.RequireFromString(other)
	return func(c CoverType) decimal.Decimal {
		if c == Yacht {
			return y
		}
		return o
	}
}

var defaultTiers = []tier{
	{capacity: 30, discount: flat(decimal.Zero)},
	{capacity: 150, discount: yachtOr("0.05", "0.02")},
	{capacity: 0, discount: yachtOr("0.08", "0.03")},
}

// Calculator prices covers. It is immutable and safe for concurrent use.
type Calculator struct {
	baseDayRate decimal.Decimal
	tiers       []tier
}

// NewCalculator returns a calculator using baseDayRate, or DefaultBaseDayRate
// when baseDayRate is not positive.
func NewCalculator(baseDayRate decimal.Decimal) *Calculator {
	if !baseDayRate.IsPositive() {
		baseDayRate = DefaultBaseDayRate
	}
	return &Calculator{baseDayRate: baseDayRate, tiers: defaultTiers}
}

// BaseDayRate returns the configured base day rate.
func (c *Calculator) BaseDayRate() decimal.Decimal {
	return c.baseDayRate
}

// ComputePremium returns the premium for [start, end) and coverType. An empty
// or inverted period costs zero.
func (c *Calculator) ComputePremium(start, end time.Time, coverType CoverType) decimal.Decimal {
	return c.PremiumFor(Period{Start: start, End: end}, coverType)
}

// PremiumFor is ComputePremium over a Period.
func (c *Calculator) PremiumFor(p Period, coverType CoverType) decimal.Decimal {
	remaining := p.Days()
	if remaining <= 0 {
		return decimal.Zero
	}

	dayRate := c.baseDayRate.Mul(multiplier(coverType))
	total := decimal.Zero
	one := decimal.NewFromInt(1)
	for _, t := range c.tiers {
		days := remaining
		if t.capacity > 0 && days > t.capacity {
			days = t.capacity
		}
		rate := dayRate.Mul(one.Sub(t.discount(coverType)))
		total = total.Add(rate.Mul(decimal.NewFromInt(int64(days))))
		remaining -= days
		if remaining == 0 {
			break
		}
	}
	return total
}

func multiplier(c CoverType) decimal.Decimal {
	switch c {
	case Yacht:
		return yachtMultiplier
	case PassengerShip:
		return passengerShipMultiplier
	case Tanker:
		return tankerMultiplier
	default:
		return defaultMultiplier
	}
}
