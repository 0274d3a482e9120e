package lending

import (
	"crypto/sha256"
	"encoding/hex"

	"github.com/fox-one/msgpack"
	"github.com/shopspring/decimal"
)

type receiptSnapshot struct {
	LoanID           uint64 `msgpack:"loan_id"`
	Amount           string `msgpack:"amount"`
	CollateralAmount string `msgpack:"collateral_amount"`
	Block            int64  `msgpack:"block"`
}

// ReceiptHash deterministic content hash of a loan state snapshot.
// Amounts are hashed in canonical string form so two fixed-point values
// that compare equal always hash equal.
func ReceiptHash(loanID uint64, amount, collateralAmount decimal.Decimal, block int64) (string, error) {
	raw, err := msgpack.Marshal(receiptSnapshot{
		LoanID:           loanID,
		Amount:           amount.Truncate(MaxPrecision).String(),
		CollateralAmount: collateralAmount.Truncate(MaxPrecision).String(),
		Block:            block,
	})
	if err != nil {
		return "", err
	}

	sum := sha256.Sum256(raw)
	return hex.EncodeToString(sum[:]), nil
}
