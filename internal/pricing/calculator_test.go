package pricing

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func date(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func dec(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}

func assertDecimal(t *testing.T, expected, actual decimal.Decimal) {
	t.Helper()
	assert.Truef(t, expected.Equal(actual), "expected %s, got %s", expected, actual)
}

func TestComputePremium_SingleDayPerCoverType(t *testing.T) {
	calc := NewCalculator(DefaultBaseDayRate)
	start := date(2025, 1, 1)
	end := start.AddDate(0, 0, 1)

	cases := map[CoverType]string{
		Yacht:         "1375",
		PassengerShip: "1500",
		ContainerShip: "1625",
		BulkCarrier:   "1625",
		Tanker:        "1875",
	}
	for coverType, expected := range cases {
		t.Run(coverType.String(), func(t *testing.T) {
			assertDecimal(t, dec(expected), calc.ComputePremium(start, end, coverType))
		})
	}
}

func TestComputePremium_TierBoundaries(t *testing.T) {
	calc := NewCalculator(DefaultBaseDayRate)
	start := date(2025, 1, 1)
	yachtRate := dec("1375")
	containerRate := dec("1625")

	t.Run("30 days is full rate only", func(t *testing.T) {
		premium := calc.ComputePremium(start, date(2025, 1, 31), Yacht)
		assertDecimal(t, dec("41250.00"), premium)
	})

	t.Run("31st day enters mid tier", func(t *testing.T) {
		premium := calc.ComputePremium(start, start.AddDate(0, 0, 31), Yacht)
		expected := yachtRate.Mul(dec("30")).Add(yachtRate.Mul(dec("0.95")))
		assertDecimal(t, expected, premium)
	})

	t.Run("60 days yacht uses 5 percent mid discount", func(t *testing.T) {
		premium := calc.ComputePremium(start, date(2025, 3, 2), Yacht)
		assertDecimal(t, dec("80437.50"), premium)
	})

	t.Run("60 days container ship uses 2 percent mid discount", func(t *testing.T) {
		premium := calc.ComputePremium(start, start.AddDate(0, 0, 60), ContainerShip)
		expected := containerRate.Mul(dec("30")).Add(containerRate.Mul(dec("30")).Mul(dec("0.98")))
		assertDecimal(t, expected, premium)
		assertDecimal(t, dec("96525"), premium)
	})

	t.Run("180 days stays within mid tier", func(t *testing.T) {
		premium := calc.ComputePremium(start, start.AddDate(0, 0, 180), Yacht)
		expected := yachtRate.Mul(dec("30")).Add(yachtRate.Mul(dec("150")).Mul(dec("0.95")))
		assertDecimal(t, expected, premium)
	})

	t.Run("200 days yacht spills into long tier", func(t *testing.T) {
		premium := calc.ComputePremium(start, date(2025, 7, 20), Yacht)
		expected := yachtRate.Mul(dec("30")).
			Add(yachtRate.Mul(dec("150")).Mul(dec("0.95"))).
			Add(yachtRate.Mul(dec("20")).Mul(dec("0.92")))
		assertDecimal(t, expected, premium)
	})

	t.Run("200 days tanker uses 3 percent long discount", func(t *testing.T) {
		tankerRate := dec("1875")
		premium := calc.ComputePremium(start, start.AddDate(0, 0, 200), Tanker)
		expected := tankerRate.Mul(dec("30")).
			Add(tankerRate.Mul(dec("150")).Mul(dec("0.98"))).
			Add(tankerRate.Mul(dec("20")).Mul(dec("0.97")))
		assertDecimal(t, expected, premium)
	})

	t.Run("full year yacht", func(t *testing.T) {
		premium := calc.ComputePremium(start, start.AddDate(0, 0, 365), Yacht)
		expected := yachtRate.Mul(dec("30")).
			Add(yachtRate.Mul(dec("150")).Mul(dec("0.95"))).
			Add(yachtRate.Mul(dec("185")).Mul(dec("0.92")))
		assertDecimal(t, expected, premium)
	})
}

func TestComputePremium_EmptyAndInvertedPeriods(t *testing.T) {
	calc := NewCalculator(DefaultBaseDayRate)
	d := date(2025, 1, 1)

	for _, coverType := range CoverTypes() {
		assertDecimal(t, decimal.Zero, calc.ComputePremium(d, d, coverType))
		assertDecimal(t, decimal.Zero, calc.ComputePremium(d, d.AddDate(0, 0, -10), coverType))
	}
}

func TestComputePremium_IgnoresTimeOfDay(t *testing.T) {
	calc := NewCalculator(DefaultBaseDayRate)
	start := time.Date(2025, 1, 1, 23, 59, 0, 0, time.UTC)
	end := time.Date(2025, 1, 2, 0, 1, 0, 0, time.UTC)

	assertDecimal(t, dec("1375"), calc.ComputePremium(start, end, Yacht))
}

func TestComputePremium_MonotonicAndDeterministic(t *testing.T) {
	calc := NewCalculator(DefaultBaseDayRate)
	start := date(2025, 1, 1)

	for _, coverType := range CoverTypes() {
		prev := decimal.Zero
		for days := 0; days <= 400; days++ {
			end := start.AddDate(0, 0, days)
			first := calc.ComputePremium(start, end, coverType)
			second := calc.ComputePremium(start, end, coverType)
			require.Truef(t, first.Equal(second), "%s %d days not deterministic", coverType, days)
			require.Truef(t, first.GreaterThanOrEqual(prev), "%s %d days cheaper than %d days", coverType, days, days-1)
			prev = first
		}
	}
}

func TestNewCalculator_BaseDayRate(t *testing.T) {
	t.Run("custom rate scales premium", func(t *testing.T) {
		calc := NewCalculator(dec("1000"))
		start := date(2025, 1, 1)
		assertDecimal(t, dec("1100"), calc.ComputePremium(start, start.AddDate(0, 0, 1), Yacht))
	})

	t.Run("non-positive rate falls back to default", func(t *testing.T) {
		calc := NewCalculator(decimal.Zero)
		assertDecimal(t, DefaultBaseDayRate, calc.BaseDayRate())
	})
}

func TestPeriodDays(t *testing.T) {
	p := Period{Start: date(2024, 2, 28), End: date(2024, 3, 1)}
	assert.Equal(t, 2, p.Days())

	inverted := Period{Start: date(2025, 1, 10), End: date(2025, 1, 1)}
	assert.Equal(t, -9, inverted.Days())

	pre1970 := Period{Start: date(1969, 12, 31), End: date(1970, 1, 2)}
	assert.Equal(t, 2, pre1970.Days())
}
