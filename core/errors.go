package core

import "strconv"

// ErrorCode int, stable across the API for caller-side handling.
// The 4xxx values mirror the on-chain contract error family; callers
// already match on 4004 for a failed collateral check.
type ErrorCode int

const (
	// ErrLoanNotFound no loan with that id
	ErrLoanNotFound ErrorCode = 4001
	// ErrLoanNotActive operation on a Repaid/Liquidated loan
	ErrLoanNotActive ErrorCode = 4002
	// ErrInvalidAmount zero, negative or malformed amount
	ErrInvalidAmount ErrorCode = 4003
	// ErrInsufficientCollateral origination or post-mutation health check failed
	ErrInsufficientCollateral ErrorCode = 4004
	// ErrNotLiquidatable health factor at or above the liquidation threshold
	ErrNotLiquidatable ErrorCode = 4005
	// ErrInvalidTimestamp accrual target precedes the loan's last accrual
	ErrInvalidTimestamp ErrorCode = 4006
	// ErrOverRepayment repayment exceeds total debt (reserved; policy is cap-and-refund)
	ErrOverRepayment ErrorCode = 4007
	// ErrArithmeticOverflow amount or result outside fixed-point bounds
	ErrArithmeticOverflow ErrorCode = 4008
	// ErrPriceStale oracle price older than the freshness window
	ErrPriceStale ErrorCode = 4009
	// ErrOperationForbidden caller is neither the borrower nor the liquidation engine
	ErrOperationForbidden ErrorCode = 4010
)

func (e ErrorCode) String() string {
	return strconv.Itoa(int(e))
}

func (e ErrorCode) Error() string {
	return e.String()
}
