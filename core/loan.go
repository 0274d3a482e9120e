package core

import (
	"context"
	"time"

	"github.com/fox-one/pkg/store/db"
	"github.com/shopspring/decimal"
)

// LoanStatus loan lifecycle status
type LoanStatus string

const (
	// LoanStatusActive loan carries outstanding debt
	LoanStatusActive LoanStatus = "Active"
	// LoanStatusRepaid debt reached zero via repayment
	LoanStatusRepaid LoanStatus = "Repaid"
	// LoanStatusLiquidated closed by the liquidation engine
	LoanStatusLiquidated LoanStatus = "Liquidated"
)

// Loan one borrow position. A loan is never deleted; once it leaves
// Active its fields are frozen and only the status tells its ending.
type Loan struct {
	ID               uint64          `sql:"PRIMARY_KEY;AUTO_INCREMENT" json:"id"`
	Borrower         string          `sql:"size:36;index:idx_loans_borrower" json:"borrower"`
	CollateralAmount decimal.Decimal `sql:"type:decimal(32,16)" json:"collateral_amount"`
	Principal        decimal.Decimal `sql:"type:decimal(32,16)" json:"principal"`
	AccruedInterest  decimal.Decimal `sql:"type:decimal(32,16)" json:"accrued_interest"`
	LastAccrualBlock int64           `sql:"default:0" json:"last_accrual_block"`
	Status           LoanStatus      `sql:"size:16;default:'Active';index:idx_loans_status" json:"status"`
	Version          int64           `sql:"default:0" json:"version"`
	CreatedAt        time.Time       `sql:"default:CURRENT_TIMESTAMP" json:"created_at"`
	UpdatedAt        time.Time       `sql:"default:CURRENT_TIMESTAMP" json:"updated_at"`
}

// Debt principal plus interest accrued so far
func (l *Loan) Debt() decimal.Decimal {
	return l.Principal.Add(l.AccruedInterest)
}

// IsActive whether the loan may still be mutated
func (l *Loan) IsActive() bool {
	return l.Status == LoanStatusActive
}

// ILoanStore loan store interface
type ILoanStore interface {
	Create(ctx context.Context, tx *db.DB, loan *Loan) error
	Find(ctx context.Context, id uint64) (*Loan, error)
	FindByBorrower(ctx context.Context, borrower string) ([]*Loan, error)
	ListActive(ctx context.Context) ([]*Loan, error)
	Update(ctx context.Context, tx *db.DB, loan *Loan) error
}
