package ledger

import (
	"testing"

	"sblend/core"
	"sblend/internal/lending"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

func TestApplyRepayInterestFirst(t *testing.T) {
	out := applyRepay(decimal.NewFromInt(10), decimal.NewFromInt(500), decimal.NewFromInt(100))

	assert.True(t, out.interestPaid.Equal(decimal.NewFromInt(10)))
	assert.True(t, out.principalPaid.Equal(decimal.NewFromInt(90)))
	assert.True(t, out.refund.IsZero())
	assert.False(t, out.fullyRepaid)
}

func TestApplyRepayPartialInterest(t *testing.T) {
	out := applyRepay(decimal.NewFromInt(10), decimal.NewFromInt(500), decimal.NewFromInt(4))

	assert.True(t, out.interestPaid.Equal(decimal.NewFromInt(4)))
	assert.True(t, out.principalPaid.IsZero())
	assert.True(t, out.refund.IsZero())
	assert.False(t, out.fullyRepaid)
}

func TestApplyRepayExactDebt(t *testing.T) {
	out := applyRepay(decimal.NewFromInt(10), decimal.NewFromInt(500), decimal.NewFromInt(510))

	assert.True(t, out.interestPaid.Equal(decimal.NewFromInt(10)))
	assert.True(t, out.principalPaid.Equal(decimal.NewFromInt(500)))
	assert.True(t, out.refund.IsZero())
	assert.True(t, out.fullyRepaid)
}

func TestApplyRepayCapAndRefund(t *testing.T) {
	out := applyRepay(decimal.NewFromInt(10), decimal.NewFromInt(500), decimal.NewFromInt(600))

	assert.True(t, out.interestPaid.Equal(decimal.NewFromInt(10)))
	assert.True(t, out.principalPaid.Equal(decimal.NewFromInt(500)))
	assert.True(t, out.refund.Equal(decimal.NewFromInt(90)), "got %s", out.refund)
	assert.True(t, out.fullyRepaid)
}

func TestCanOriginate(t *testing.T) {
	price := decimal.NewFromInt(2)
	factor := decimal.NewFromFloat(0.75)
	minHealth := decimal.NewFromFloat(1.5)

	// 100 collateral at price 2 and factor 0.75 backs 150 of value
	collateral := decimal.NewFromInt(100)

	// exactly at the floor passes
	assert.True(t, canOriginate(collateral, price, factor, decimal.NewFromInt(100), minHealth))

	// comfortably above
	assert.True(t, canOriginate(collateral.Mul(decimal.NewFromInt(2)), price, factor, decimal.NewFromInt(100), minHealth))

	// one unit of extra debt drops below the floor
	assert.False(t, canOriginate(collateral, price, factor, decimal.NewFromInt(101), minHealth))

	// thin collateral is rejected outright
	assert.False(t, canOriginate(decimal.NewFromInt(10), price, factor, decimal.NewFromInt(100), minHealth))
}

func TestValidAmounts(t *testing.T) {
	assert.Nil(t, validAmounts(decimal.NewFromInt(1)))
	assert.Equal(t, core.ErrInvalidAmount, validAmounts(decimal.Zero))
	assert.Equal(t, core.ErrInvalidAmount, validAmounts(decimal.NewFromInt(-5)))
	assert.Equal(t, core.ErrArithmeticOverflow, validAmounts(lending.MaxAmount.Add(decimal.NewFromInt(1))))
	assert.Equal(t, core.ErrInvalidAmount, validAmounts(decimal.NewFromInt(1), decimal.Zero))
}
