package liquidation

import (
	"sblend/core"
	"sblend/internal/lending"
	"sblend/pkg/number"

	"github.com/shopspring/decimal"
)

type seizureOutcome struct {
	// DebtPaid portion of debt covered by the liquidator's payment
	DebtPaid      decimal.Decimal
	InterestPaid  decimal.Decimal
	PrincipalPaid decimal.Decimal
	// CollateralSeized total collateral leaving the loan
	CollateralSeized decimal.Decimal
	// LiquidatorShare seized collateral net of the protocol's bonus cut
	LiquidatorShare decimal.Decimal
	// ProtocolFee the protocol's bonus cut, valued in debt units
	ProtocolFee decimal.Decimal
	// CollateralReturned residual collateral back to the borrower when
	// debt hits zero first
	CollateralReturned decimal.Decimal
	// BadDebt debt the exhausted collateral could not cover
	BadDebt decimal.Decimal
	Closed  bool
}

// liquidatable whether an accrued position may be seized. Seizure
// requires the health factor strictly below the threshold; a loan
// sitting exactly at it stays safe.
func liquidatable(healthFactor, threshold decimal.Decimal) bool {
	return healthFactor.LessThan(threshold)
}

// executeSeizure computes the transfer set of a liquidation. The payment
// is capped at total debt; the seized collateral (payment value plus
// bonus) is capped at the loan's balance. Crossing either cap closes the
// loan.
func executeSeizure(loan *core.Loan, price, repayAmount decimal.Decimal, asset core.CollateralAsset) seizureOutcome {
	debt := loan.Debt()

	repay := repayAmount
	if repay.IsZero() || repay.GreaterThan(debt) {
		repay = debt
	}

	seize := lending.SeizeCollateral(repay, price, asset.LiquidationBonus)
	full := seize.GreaterThanOrEqual(loan.CollateralAmount)
	if full {
		seize = loan.CollateralAmount
	}

	interestPaid := decimal.Min(repay, loan.AccruedInterest)
	principalPaid := decimal.Min(repay.Sub(interestPaid), loan.Principal)
	debtPaid := interestPaid.Add(principalPaid)
	remaining := debt.Sub(debtPaid)

	out := seizureOutcome{
		DebtPaid:         debtPaid.Truncate(lending.MaxPrecision),
		InterestPaid:     interestPaid.Truncate(lending.MaxPrecision),
		PrincipalPaid:    principalPaid.Truncate(lending.MaxPrecision),
		CollateralSeized: seize.Truncate(lending.MaxPrecision),
	}

	if full {
		out.Closed = true
		out.BadDebt = remaining.Truncate(lending.MaxPrecision)
	} else if remaining.IsZero() {
		out.Closed = true
		out.CollateralReturned = loan.CollateralAmount.Sub(seize).Truncate(lending.MaxPrecision)
	}

	// split the bonus between liquidator and protocol; a capped seizure
	// can leave no bonus at all. The base leg rounds up so rounding dust
	// never inflates the bonus.
	base := number.Ceil(repay.Div(price), lending.MaxPrecision)
	bonusPortion := seize.Sub(base)
	if bonusPortion.IsNegative() {
		bonusPortion = decimal.Zero
	}

	protocolCut := bonusPortion.Mul(asset.LiquidationFeeShare).Truncate(lending.MaxPrecision)
	out.LiquidatorShare = seize.Sub(protocolCut).Truncate(lending.MaxPrecision)
	out.ProtocolFee = protocolCut.Mul(price).Truncate(lending.MaxPrecision)

	return out
}
