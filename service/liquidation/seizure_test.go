package liquidation

import (
	"testing"

	"sblend/core"
	"sblend/internal/lending"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

func testAsset() core.CollateralAsset {
	return core.CollateralAsset{
		Symbol:               "sBTC",
		CollateralFactor:     decimal.NewFromFloat(0.75),
		LiquidationBonus:     decimal.NewFromFloat(0.05),
		LiquidationThreshold: decimal.NewFromInt(1),
		LiquidationFeeShare:  decimal.NewFromFloat(0.5),
	}
}

func underwaterLoan() *core.Loan {
	// 500 collateral vs 480 debt at price 1 and factor 0.75 -> hf 0.78
	return &core.Loan{
		ID:               1,
		Borrower:         "borrower-1",
		CollateralAmount: decimal.NewFromInt(500),
		Principal:        decimal.NewFromInt(470),
		AccruedInterest:  decimal.NewFromInt(10),
		Status:           core.LoanStatusActive,
	}
}

func TestLiquidatable(t *testing.T) {
	threshold := testAsset().LiquidationThreshold

	assert.True(t, liquidatable(decimal.NewFromFloat(0.99), threshold))
	assert.True(t, liquidatable(decimal.Zero, threshold))

	// exactly at the threshold stays safe
	assert.False(t, liquidatable(decimal.NewFromInt(1), threshold))
	assert.False(t, liquidatable(decimal.NewFromFloat(1.01), threshold))
	assert.False(t, liquidatable(lending.MaxHealthFactor, threshold))
}

func TestLiquidationTraceUniquePerVersion(t *testing.T) {
	loan := underwaterLoan()

	first := operationTrace(loan, "liquidate")
	loan.Version++

	assert.NotEqual(t, first, operationTrace(loan, "liquidate"))
	assert.Equal(t, first, operationTrace(underwaterLoan(), "liquidate"))
}

func TestExecuteSeizurePartial(t *testing.T) {
	loan := underwaterLoan()
	price := decimal.NewFromInt(1)

	out := executeSeizure(loan, price, decimal.NewFromInt(100), testAsset())

	assert.True(t, out.DebtPaid.Equal(decimal.NewFromInt(100)))
	assert.True(t, out.InterestPaid.Equal(decimal.NewFromInt(10)), "interest settles first")
	assert.True(t, out.PrincipalPaid.Equal(decimal.NewFromInt(90)))
	assert.True(t, out.CollateralSeized.Equal(decimal.NewFromInt(105)), "got %s", out.CollateralSeized)
	assert.False(t, out.Closed)
	assert.True(t, out.BadDebt.IsZero())
	assert.True(t, out.CollateralReturned.IsZero())

	// 5 bonus collateral, split half and half
	assert.True(t, out.LiquidatorShare.Equal(decimal.NewFromFloat(102.5)), "got %s", out.LiquidatorShare)
	assert.True(t, out.ProtocolFee.Equal(decimal.NewFromFloat(2.5)), "got %s", out.ProtocolFee)
}

func TestExecuteSeizureFullDebtClosesLoan(t *testing.T) {
	// plenty of collateral, debt fully covered: residual returns to borrower
	loan := underwaterLoan()
	loan.CollateralAmount = decimal.NewFromInt(600)
	price := decimal.NewFromInt(1)

	out := executeSeizure(loan, price, decimal.Zero, testAsset())

	assert.True(t, out.DebtPaid.Equal(decimal.NewFromInt(480)))
	assert.True(t, out.CollateralSeized.Equal(decimal.NewFromInt(504)), "480 * 1.05, got %s", out.CollateralSeized)
	assert.True(t, out.Closed)
	assert.True(t, out.BadDebt.IsZero())
	assert.True(t, out.CollateralReturned.Equal(decimal.NewFromInt(96)), "got %s", out.CollateralReturned)
}

func TestExecuteSeizureCollateralExhausted(t *testing.T) {
	// price gap: collateral is worth less than the debt
	loan := underwaterLoan()
	loan.CollateralAmount = decimal.NewFromInt(400)
	price := decimal.NewFromInt(1)

	out := executeSeizure(loan, price, decimal.Zero, testAsset())

	assert.True(t, out.CollateralSeized.Equal(decimal.NewFromInt(400)), "capped at the balance")
	assert.True(t, out.Closed)
	assert.True(t, out.DebtPaid.Equal(decimal.NewFromInt(480)))
	assert.True(t, out.BadDebt.IsZero(), "payment covered the debt; got %s", out.BadDebt)

	// no bonus left when the cap bites below the base amount
	assert.True(t, out.LiquidatorShare.Equal(decimal.NewFromInt(400)))
	assert.True(t, out.ProtocolFee.IsZero())
}

func TestExecuteSeizurePartialPaymentExhaustsCollateral(t *testing.T) {
	// the liquidator pays less than the debt but the bonus drains the
	// collateral anyway, leaving bad debt behind
	loan := underwaterLoan()
	loan.CollateralAmount = decimal.NewFromInt(100)
	price := decimal.NewFromInt(1)

	out := executeSeizure(loan, price, decimal.NewFromInt(200), testAsset())

	assert.True(t, out.CollateralSeized.Equal(decimal.NewFromInt(100)))
	assert.True(t, out.DebtPaid.Equal(decimal.NewFromInt(200)))
	assert.True(t, out.Closed)
	assert.True(t, out.BadDebt.Equal(decimal.NewFromInt(280)), "remaining debt written off, got %s", out.BadDebt)
}

func TestExecuteSeizurePriceConversion(t *testing.T) {
	loan := underwaterLoan()
	price := decimal.NewFromInt(2)

	out := executeSeizure(loan, price, decimal.NewFromInt(100), testAsset())

	// 100 debt units buy 50 collateral units, bonus on top
	assert.True(t, out.CollateralSeized.Equal(decimal.NewFromFloat(52.5)), "got %s", out.CollateralSeized)
	assert.True(t, out.ProtocolFee.Equal(decimal.NewFromFloat(2.5)), "1.25 collateral cut at price 2, got %s", out.ProtocolFee)
}
