package core

import (
	"github.com/shopspring/decimal"
)

// LoanReceipt deterministic proof of a loan state snapshot at a block
type LoanReceipt struct {
	LoanID           uint64          `json:"loan_id"`
	Amount           decimal.Decimal `json:"amount"`
	CollateralAmount decimal.Decimal `json:"collateral_amount"`
	Block            int64           `json:"block"`
	Hash             string          `json:"hash"`
}

// LiquidationReceipt result of a liquidation execution
type LiquidationReceipt struct {
	LoanID             uint64          `json:"loan_id"`
	Borrower           string          `json:"borrower"`
	Liquidator         string          `json:"liquidator"`
	DebtPaid           decimal.Decimal `json:"debt_paid"`
	CollateralSeized   decimal.Decimal `json:"collateral_seized"`
	CollateralReturned decimal.Decimal `json:"collateral_returned"`
	BadDebt            decimal.Decimal `json:"bad_debt"`
	HealthFactor       decimal.Decimal `json:"health_factor"`
	Block              int64           `json:"block"`
	Full               bool            `json:"full"`
}

// RepayResult result of a repay; RefundAmount is the excess over total
// debt returned to the caller at the collaborator boundary.
type RepayResult struct {
	LoanID             uint64          `json:"loan_id"`
	InterestPaid       decimal.Decimal `json:"interest_paid"`
	PrincipalPaid      decimal.Decimal `json:"principal_paid"`
	RemainingDebt      decimal.Decimal `json:"remaining_debt"`
	RefundAmount       decimal.Decimal `json:"refund_amount"`
	CollateralReturned decimal.Decimal `json:"collateral_returned"`
	FullyRepaid        bool            `json:"fully_repaid"`
}
