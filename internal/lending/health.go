package lending

import (
	"github.com/shopspring/decimal"
)

// HealthFactor risk-weighted collateral value over outstanding debt
// health = collateral * price * collateral_factor / debt
// A loan with zero debt carries no liquidation risk and reports the
// MaxHealthFactor sentinel instead of dividing by zero. Ratios above
// the sentinel saturate at it, so reported values are not strictly
// monotonic in collateral beyond that point.
func HealthFactor(collateralAmount, price, collateralFactor, debt decimal.Decimal) decimal.Decimal {
	if debt.LessThanOrEqual(decimal.Zero) {
		return MaxHealthFactor
	}

	collateralValue := collateralAmount.Mul(price).Mul(collateralFactor)
	hf := collateralValue.Div(debt).Truncate(MaxPrecision)
	if hf.GreaterThan(MaxHealthFactor) {
		return MaxHealthFactor
	}

	return hf
}

// SeizeCollateral collateral owed to a liquidator for repaying repayAmount
// of debt, bonus included, before the cap at the loan's balance
// seized = repay_amount / price * (1 + bonus)
func SeizeCollateral(repayAmount, price, liquidationBonus decimal.Decimal) decimal.Decimal {
	if price.LessThanOrEqual(decimal.Zero) {
		return decimal.Zero
	}

	return repayAmount.Div(price).Mul(One.Add(liquidationBonus)).Truncate(MaxPrecision)
}

// AmountOutOfRange whether a quantity fits the engine's fixed-point bounds
func AmountOutOfRange(d decimal.Decimal) bool {
	return d.IsNegative() || d.GreaterThan(MaxAmount)
}
