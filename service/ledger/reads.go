package ledger

import (
	"context"

	"sblend/core"
	"sblend/internal/lending"

	"github.com/shopspring/decimal"
)

// CalculateInterest projects the loan's accrued interest as of now
// without persisting the accrual
func (s *service) CalculateInterest(ctx context.Context, loanID uint64) (decimal.Decimal, error) {
	block, err := s.blockSrv.CurrentBlock(ctx)
	if err != nil {
		return decimal.Zero, err
	}

	state, loan, err := s.loadForRead(ctx, loanID)
	if err != nil {
		return decimal.Zero, err
	}

	projected, err := s.accrualSrv.Project(ctx, state, loan, block)
	if err != nil {
		return decimal.Zero, err
	}

	return loan.AccruedInterest.Add(projected).Truncate(lending.MaxPrecision), nil
}

// HealthFactor current risk ratio of the loan, interest brought current
// in projection only
func (s *service) HealthFactor(ctx context.Context, loanID uint64) (decimal.Decimal, error) {
	block, err := s.blockSrv.CurrentBlock(ctx)
	if err != nil {
		return decimal.Zero, err
	}

	state, loan, err := s.loadForRead(ctx, loanID)
	if err != nil {
		return decimal.Zero, err
	}

	projected, err := s.accrualSrv.Project(ctx, state, loan, block)
	if err != nil {
		return decimal.Zero, err
	}

	debt := loan.Debt().Add(projected)
	return lending.HealthFactor(loan.CollateralAmount, state.CollateralPrice, s.asset.CollateralFactor, debt), nil
}

// GenerateLoanReceipt deterministic proof of a loan state snapshot; pure,
// no ledger access beyond the logical clock
func (s *service) GenerateLoanReceipt(ctx context.Context, loanID uint64, amount, collateralAmount decimal.Decimal) (*core.LoanReceipt, error) {
	if amount.IsNegative() || collateralAmount.IsNegative() {
		return nil, core.ErrInvalidAmount
	}

	block, err := s.blockSrv.CurrentBlock(ctx)
	if err != nil {
		return nil, err
	}

	hash, err := lending.ReceiptHash(loanID, amount, collateralAmount, block)
	if err != nil {
		return nil, err
	}

	return &core.LoanReceipt{
		LoanID:           loanID,
		Amount:           amount,
		CollateralAmount: collateralAmount,
		Block:            block,
		Hash:             hash,
	}, nil
}

// Stats read-only rollup straight off the aggregate row
func (s *service) Stats(ctx context.Context) (*core.ProtocolStats, error) {
	block, err := s.blockSrv.CurrentBlock(ctx)
	if err != nil {
		return nil, err
	}

	state, err := s.stateStore.Find(ctx)
	if err != nil {
		return nil, err
	}

	return &core.ProtocolStats{
		TotalCollateral: state.TotalCollateral,
		TotalBorrowed:   state.TotalBorrowed,
		ProtocolFees:    state.ProtocolFees,
		CollateralPrice: state.CollateralPrice,
		PriceUpdatedAt:  state.PriceUpdatedAt,
		Block:           block,
	}, nil
}

// VerifyIntegrity audits the incremental totals against a full scan of
// Active loans. Not a hot-path call.
func (s *service) VerifyIntegrity(ctx context.Context) error {
	state, err := s.stateStore.Find(ctx)
	if err != nil {
		return err
	}

	loans, err := s.loanStore.ListActive(ctx)
	if err != nil {
		return err
	}

	collateral, borrowed := decimal.Zero, decimal.Zero
	for _, loan := range loans {
		collateral = collateral.Add(loan.CollateralAmount)
		borrowed = borrowed.Add(loan.Debt())
	}

	if !collateral.Equal(state.TotalCollateral) || !borrowed.Equal(state.TotalBorrowed) {
		return core.ErrStateMismatch
	}

	return nil
}

func (s *service) loadForRead(ctx context.Context, loanID uint64) (*core.ProtocolState, *core.Loan, error) {
	state, err := s.stateStore.Find(ctx)
	if err != nil {
		return nil, nil, err
	}

	loan, err := s.loanStore.Find(ctx, loanID)
	if err != nil {
		return nil, nil, err
	}
	if loan.ID == 0 {
		return nil, nil, core.ErrLoanNotFound
	}

	return state, loan, nil
}
