package ledger

import (
	"sblend/core"
	"sblend/internal/lending"

	"github.com/shopspring/decimal"
)

type repayOutcome struct {
	interestPaid  decimal.Decimal
	principalPaid decimal.Decimal
	refund        decimal.Decimal
	fullyRepaid   bool
}

// applyRepay splits a payment over a loan's debt, interest first, then
// principal, capped so debt can never go negative. The excess comes back
// as a refund.
func applyRepay(accruedInterest, principal, amount decimal.Decimal) repayOutcome {
	interestPaid := decimal.Min(amount, accruedInterest)
	remainder := amount.Sub(interestPaid)
	principalPaid := decimal.Min(remainder, principal)
	refund := remainder.Sub(principalPaid)

	return repayOutcome{
		interestPaid:  interestPaid.Truncate(lending.MaxPrecision),
		principalPaid: principalPaid.Truncate(lending.MaxPrecision),
		refund:        refund.Truncate(lending.MaxPrecision),
		fullyRepaid:   accruedInterest.Add(principal).LessThanOrEqual(amount),
	}
}

// canOriginate whether a new position clears the origination floor,
// which sits above the liquidation threshold
func canOriginate(collateralAmount, price, collateralFactor, borrowAmount, minHealth decimal.Decimal) bool {
	hf := lending.HealthFactor(collateralAmount, price, collateralFactor, borrowAmount)
	return hf.GreaterThanOrEqual(minHealth)
}

func validAmounts(amounts ...decimal.Decimal) error {
	for _, amount := range amounts {
		if amount.LessThanOrEqual(decimal.Zero) {
			return core.ErrInvalidAmount
		}
		if lending.AmountOutOfRange(amount) {
			return core.ErrArithmeticOverflow
		}
	}
	return nil
}
