package lending

import (
	"github.com/shopspring/decimal"
)

// UtilizationRate fraction of lendable collateral value currently borrowed
// utilization = total_borrowed / (total_collateral * price)
// 0 when supply is 0; clamped so it never exceeds 1.
func UtilizationRate(totalBorrowed, totalCollateral, price decimal.Decimal) decimal.Decimal {
	supplyValue := totalCollateral.Mul(price)
	if supplyValue.LessThanOrEqual(decimal.Zero) || totalBorrowed.LessThanOrEqual(decimal.Zero) {
		return decimal.Zero
	}

	rate := totalBorrowed.Div(supplyValue).Truncate(MaxPrecision)
	if rate.GreaterThan(One) {
		return One
	}

	return rate
}

// GetBorrowRatePerBlock borrow rate per block
//
// below the kink: base + multiplier * utilization
// above the kink: base + multiplier * kink + jump * (utilization - kink)
func GetBorrowRatePerBlock(utilizationRate, baseRate, multiplier, jumpMultiplier, kink decimal.Decimal) decimal.Decimal {
	if kink.Equal(decimal.Zero) ||
		utilizationRate.LessThanOrEqual(kink) {
		return utilizationRate.Mul(GetMultiplierPerBlock(multiplier)).Add(GetBaseRatePerBlock(baseRate)).Truncate(MaxPrecision)
	}

	normalRate := kink.Mul(GetMultiplierPerBlock(multiplier)).Add(GetBaseRatePerBlock(baseRate))
	excessUtilRate := utilizationRate.Sub(kink)
	return excessUtilRate.Mul(GetJumpMultiplierPerBlock(jumpMultiplier)).Add(normalRate).Truncate(MaxPrecision)
}

// GetSupplyRatePerBlock supply rate per block
// supply_rate = borrow_rate * utilization * (1 - reserve_factor)
func GetSupplyRatePerBlock(utilizationRate, baseRate, multiplier, jumpMultiplier, kink, reserveFactor decimal.Decimal) decimal.Decimal {
	borrowRate := GetBorrowRatePerBlock(utilizationRate, baseRate, multiplier, jumpMultiplier, kink)
	rateToPool := borrowRate.Mul(One.Sub(reserveFactor))
	return utilizationRate.Mul(rateToPool).Truncate(MaxPrecision)
}

// GetBaseRatePerBlock base rate per block
func GetBaseRatePerBlock(baseRate decimal.Decimal) decimal.Decimal {
	return baseRate.Div(BlocksPerYear).Truncate(MaxPrecision)
}

// GetMultiplierPerBlock multiplier per block
func GetMultiplierPerBlock(multiplier decimal.Decimal) decimal.Decimal {
	return multiplier.Div(BlocksPerYear).Truncate(MaxPrecision)
}

// GetJumpMultiplierPerBlock jump multiplier per block
func GetJumpMultiplierPerBlock(jumpMultiplier decimal.Decimal) decimal.Decimal {
	return jumpMultiplier.Div(BlocksPerYear).Truncate(MaxPrecision)
}

// InterestAccrued simple interest for the elapsed span
// interest = principal * rate_per_block * block_delta
func InterestAccrued(principal, borrowRatePerBlock decimal.Decimal, blockDelta int64) decimal.Decimal {
	if blockDelta <= 0 || principal.LessThanOrEqual(decimal.Zero) {
		return decimal.Zero
	}

	return principal.Mul(borrowRatePerBlock).Mul(decimal.NewFromInt(blockDelta)).Truncate(MaxPrecision)
}
