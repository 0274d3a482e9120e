package accrual

import (
	"context"

	"sblend/core"
	"sblend/internal/lending"

	"github.com/shopspring/decimal"
)

type service struct {
	rate  core.RateModel
	asset core.CollateralAsset
}

// New new accrual service
func New(cfg *core.Config) core.IAccrualService {
	return &service{
		rate:  cfg.Rate,
		asset: cfg.Asset,
	}
}

// Accrue brings the loan's interest state current as of block. The borrow
// rate is taken from the pool-wide utilization at call time, so every loan
// feels a rate change immediately, not at its next interaction. The full
// interest raises TotalBorrowed to keep the totals invariant; the reserve
// factor share of it is recognized as protocol fee revenue.
func (s *service) Accrue(ctx context.Context, state *core.ProtocolState, loan *core.Loan, block int64) (decimal.Decimal, error) {
	interest, err := s.compute(state, loan, block)
	if err != nil {
		return decimal.Zero, err
	}

	if interest.IsPositive() {
		loan.AccruedInterest = loan.AccruedInterest.Add(interest).Truncate(lending.MaxPrecision)
		state.TotalBorrowed = state.TotalBorrowed.Add(interest).Truncate(lending.MaxPrecision)
		state.ProtocolFees = state.ProtocolFees.Add(interest.Mul(s.asset.ReserveFactor)).Truncate(lending.MaxPrecision)
	}
	loan.LastAccrualBlock = block

	return interest, nil
}

// Project dry-run of Accrue; inputs are left untouched
func (s *service) Project(ctx context.Context, state *core.ProtocolState, loan *core.Loan, block int64) (decimal.Decimal, error) {
	return s.compute(state, loan, block)
}

func (s *service) compute(state *core.ProtocolState, loan *core.Loan, block int64) (decimal.Decimal, error) {
	delta := block - loan.LastAccrualBlock
	if delta < 0 {
		return decimal.Zero, core.ErrInvalidTimestamp
	}

	if delta == 0 || !loan.IsActive() {
		return decimal.Zero, nil
	}

	utilization := lending.UtilizationRate(state.TotalBorrowed, state.TotalCollateral, state.CollateralPrice)
	ratePerBlock := lending.GetBorrowRatePerBlock(utilization, s.rate.BaseRate, s.rate.Multiplier, s.rate.JumpMultiplier, s.rate.Kink)

	interest := lending.InterestAccrued(loan.Principal, ratePerBlock, delta)
	if lending.AmountOutOfRange(loan.AccruedInterest.Add(interest)) {
		return decimal.Zero, core.ErrArithmeticOverflow
	}

	return interest, nil
}
