package lending

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

func TestHealthFactor(t *testing.T) {
	price := decimal.NewFromInt(1)
	factor := decimal.NewFromFloat(0.75)

	// zero debt carries no risk
	hf := HealthFactor(decimal.NewFromInt(1000), price, factor, decimal.Zero)
	assert.True(t, hf.Equal(MaxHealthFactor))

	// the origination vector from the contract tests: 1000 collateral,
	// 500 debt, factor 0.75 -> 1.5
	hf = HealthFactor(decimal.NewFromInt(1000), price, factor, decimal.NewFromInt(500))
	assert.True(t, hf.Equal(decimal.NewFromFloat(1.5)), "got %s", hf)

	// 100 collateral over 500 debt is deep underwater
	hf = HealthFactor(decimal.NewFromInt(100), price, factor, decimal.NewFromInt(500))
	assert.True(t, hf.Equal(decimal.NewFromFloat(0.15)), "got %s", hf)
}

func TestHealthFactorMonotonic(t *testing.T) {
	price := decimal.NewFromInt(1)
	factor := decimal.NewFromFloat(0.75)
	collateral := decimal.NewFromInt(1000)

	// decreasing in debt
	prev := MaxHealthFactor
	for debt := int64(100); debt <= 1000; debt += 100 {
		hf := HealthFactor(collateral, price, factor, decimal.NewFromInt(debt))
		assert.True(t, hf.LessThan(prev), "hf must fall as debt grows")
		prev = hf
	}

	// increasing in collateral value
	debt := decimal.NewFromInt(500)
	prev = decimal.Zero
	for c := int64(100); c <= 1000; c += 100 {
		hf := HealthFactor(decimal.NewFromInt(c), price, factor, debt)
		assert.True(t, hf.GreaterThan(prev), "hf must rise with collateral")
		prev = hf
	}
}

func TestHealthFactorSaturates(t *testing.T) {
	price := decimal.NewFromInt(1)
	factor := decimal.NewFromInt(1)
	debt := decimal.NewFromInt(1)

	// ratios past the sentinel clamp to it
	hf := HealthFactor(MaxAmount, price, factor, debt)
	assert.True(t, hf.Equal(MaxHealthFactor))

	hf = HealthFactor(MaxHealthFactor.Mul(decimal.NewFromInt(2)), price, factor, debt)
	assert.True(t, hf.Equal(MaxHealthFactor))
}

func TestSeizeCollateral(t *testing.T) {
	bonus := decimal.NewFromFloat(0.05)

	seized := SeizeCollateral(decimal.NewFromInt(100), decimal.NewFromInt(1), bonus)
	assert.True(t, seized.Equal(decimal.NewFromInt(105)), "got %s", seized)

	// the price converts debt units into collateral units
	seized = SeizeCollateral(decimal.NewFromInt(100), decimal.NewFromInt(2), bonus)
	assert.True(t, seized.Equal(decimal.NewFromFloat(52.5)), "got %s", seized)

	assert.True(t, SeizeCollateral(decimal.NewFromInt(100), decimal.Zero, bonus).IsZero())
}

func TestAmountOutOfRange(t *testing.T) {
	assert.False(t, AmountOutOfRange(decimal.Zero))
	assert.False(t, AmountOutOfRange(MaxAmount))
	assert.True(t, AmountOutOfRange(MaxAmount.Add(One)))
	assert.True(t, AmountOutOfRange(decimal.NewFromInt(-1)))
}
