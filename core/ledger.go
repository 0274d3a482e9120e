package core

import (
	"context"
	"time"

	"github.com/shopspring/decimal"
)

// IAccrualService advances a loan's owed-interest state. Every ledger
// mutation accrues first, using the then-current global utilization, so a
// rate change takes effect for all loans at once.
type IAccrualService interface {
	// Accrue mutates loan and credits state in place; returns the
	// interest added for the elapsed blocks
	Accrue(ctx context.Context, state *ProtocolState, loan *Loan, block int64) (decimal.Decimal, error)
	// Project dry-run accrual; neither argument is modified
	Project(ctx context.Context, state *ProtocolState, loan *Loan, block int64) (decimal.Decimal, error)
}

// ILedgerService position ledger, the single writer of loans and the
// protocol state. Each operation is atomic.
type ILedgerService interface {
	Borrow(ctx context.Context, borrower string, collateralAmount, borrowAmount decimal.Decimal) (*Loan, error)
	AddCollateral(ctx context.Context, loanID uint64, borrower string, amount decimal.Decimal) (decimal.Decimal, error)
	Repay(ctx context.Context, loanID uint64, borrower string, amount decimal.Decimal) (*RepayResult, error)
	CalculateInterest(ctx context.Context, loanID uint64) (decimal.Decimal, error)
	HealthFactor(ctx context.Context, loanID uint64) (decimal.Decimal, error)
	GenerateLoanReceipt(ctx context.Context, loanID uint64, amount, collateralAmount decimal.Decimal) (*LoanReceipt, error)
	Stats(ctx context.Context) (*ProtocolStats, error)
	UpdatePrice(ctx context.Context, price decimal.Decimal, t time.Time) error
	// VerifyIntegrity audits the incremental totals against a full loan
	// scan; admin/test path only
	VerifyIntegrity(ctx context.Context) error
}

// ILiquidationService detects and closes under-collateralized loans; the
// only caller permitted to force-close a position.
type ILiquidationService interface {
	Liquidate(ctx context.Context, loanID uint64, liquidator string, repayAmount decimal.Decimal) (*LiquidationReceipt, error)
	FindUnderwater(ctx context.Context) ([]*UnderwaterLoan, error)
}

// UnderwaterLoan a liquidatable position surfaced by the monitor
type UnderwaterLoan struct {
	Loan         *Loan           `json:"loan"`
	HealthFactor decimal.Decimal `json:"health_factor"`
	Debt         decimal.Decimal `json:"debt"`
}

// IRiskStore per-block health factor snapshots, so the monitor does not
// recompute a loan's risk twice within one block
type IRiskStore interface {
	SaveHealthFactor(ctx context.Context, loanID uint64, block int64, hf decimal.Decimal) error
	FindHealthFactor(ctx context.Context, loanID uint64, block int64) (decimal.Decimal, bool, error)
}
