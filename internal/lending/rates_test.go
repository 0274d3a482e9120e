package lending

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestUtilizationRate(t *testing.T) {
	price := decimal.NewFromInt(1)

	// empty pool
	assert.True(t, UtilizationRate(decimal.Zero, decimal.Zero, price).IsZero())
	// nothing borrowed
	assert.True(t, UtilizationRate(decimal.Zero, decimal.NewFromInt(1000), price).IsZero())

	u := UtilizationRate(decimal.NewFromInt(500), decimal.NewFromInt(1000), price)
	assert.True(t, u.Equal(decimal.NewFromFloat(0.5)), "want 0.5 got %s", u)

	// borrowed above supply value clamps at 1
	u = UtilizationRate(decimal.NewFromInt(2000), decimal.NewFromInt(1000), price)
	assert.True(t, u.Equal(One))

	// price scales the supply side
	u = UtilizationRate(decimal.NewFromInt(500), decimal.NewFromInt(1000), decimal.NewFromInt(2))
	assert.True(t, u.Equal(decimal.NewFromFloat(0.25)))
}

func TestGetBorrowRatePerBlock(t *testing.T) {
	base := decimal.NewFromFloat(0.025)
	multiplier := decimal.NewFromFloat(0.2)
	jump := decimal.NewFromFloat(1.0)
	kink := decimal.NewFromFloat(0.8)

	// at zero utilization only the base rate remains
	rate := GetBorrowRatePerBlock(decimal.Zero, base, multiplier, jump, kink)
	assert.True(t, rate.Equal(GetBaseRatePerBlock(base)))

	// below the kink the slope is multiplier
	below := GetBorrowRatePerBlock(decimal.NewFromFloat(0.4), base, multiplier, jump, kink)
	want := decimal.NewFromFloat(0.4).Mul(GetMultiplierPerBlock(multiplier)).Add(GetBaseRatePerBlock(base)).Truncate(MaxPrecision)
	assert.True(t, below.Equal(want), "want %s got %s", want, below)

	// above the kink the jump slope applies to the excess only
	above := GetBorrowRatePerBlock(decimal.NewFromFloat(0.9), base, multiplier, jump, kink)
	normal := kink.Mul(GetMultiplierPerBlock(multiplier)).Add(GetBaseRatePerBlock(base))
	want = decimal.NewFromFloat(0.1).Mul(GetJumpMultiplierPerBlock(jump)).Add(normal).Truncate(MaxPrecision)
	assert.True(t, above.Equal(want), "want %s got %s", want, above)

	// the curve is monotonically increasing in utilization
	assert.True(t, above.GreaterThan(below))
	at := GetBorrowRatePerBlock(kink, base, multiplier, jump, kink)
	assert.True(t, above.GreaterThan(at))
	assert.True(t, at.GreaterThan(below))
}

func TestGetBorrowRatePerBlockDeterministic(t *testing.T) {
	base := decimal.NewFromFloat(0.025)
	multiplier := decimal.NewFromFloat(0.2)
	jump := decimal.NewFromFloat(1.0)
	kink := decimal.NewFromFloat(0.8)
	u := decimal.NewFromFloat(0.731)

	first := GetBorrowRatePerBlock(u, base, multiplier, jump, kink)
	for i := 0; i < 8; i++ {
		again := GetBorrowRatePerBlock(u, base, multiplier, jump, kink)
		require.True(t, first.Equal(again), "rate must be reproducible bit-for-bit")
	}
}

func TestGetSupplyRatePerBlock(t *testing.T) {
	base := decimal.NewFromFloat(0.025)
	multiplier := decimal.NewFromFloat(0.2)
	jump := decimal.NewFromFloat(1.0)
	kink := decimal.NewFromFloat(0.8)
	reserveFactor := decimal.NewFromFloat(0.1)
	u := decimal.NewFromFloat(0.5)

	borrowRate := GetBorrowRatePerBlock(u, base, multiplier, jump, kink)
	supplyRate := GetSupplyRatePerBlock(u, base, multiplier, jump, kink, reserveFactor)

	want := u.Mul(borrowRate.Mul(One.Sub(reserveFactor))).Truncate(MaxPrecision)
	assert.True(t, supplyRate.Equal(want))
	assert.True(t, supplyRate.LessThan(borrowRate))
}

func TestInterestAccrued(t *testing.T) {
	principal := decimal.NewFromInt(500)
	rate := decimal.NewFromFloat(0.000001)

	assert.True(t, InterestAccrued(principal, rate, 0).IsZero())
	assert.True(t, InterestAccrued(principal, rate, -10).IsZero())
	assert.True(t, InterestAccrued(decimal.Zero, rate, 100).IsZero())

	got := InterestAccrued(principal, rate, 100)
	assert.True(t, got.Equal(decimal.NewFromFloat(0.05)), "got %s", got)
}
