package core

import (
	"context"
	"errors"
	"time"

	"github.com/fox-one/pkg/store/db"
	"github.com/shopspring/decimal"
)

// ErrStateMismatch incremental totals diverge from the per-loan sums
var ErrStateMismatch = errors.New("protocol totals diverge from loan sums")

// ProtocolState singleton aggregate row, mutated only inside ledger
// transactions. TotalCollateral and TotalBorrowed are running sums over
// Active loans and must match the per-loan sums after every operation.
type ProtocolState struct {
	ID              uint64          `sql:"PRIMARY_KEY" json:"id"`
	TotalCollateral decimal.Decimal `sql:"type:decimal(32,16)" json:"total_collateral"`
	TotalBorrowed   decimal.Decimal `sql:"type:decimal(32,16)" json:"total_borrowed"`
	ProtocolFees    decimal.Decimal `sql:"type:decimal(32,16)" json:"protocol_fees"`
	CollateralPrice decimal.Decimal `sql:"type:decimal(32,16)" json:"collateral_price"`
	PriceBlock      int64           `sql:"default:0" json:"price_block"`
	PriceUpdatedAt  time.Time       `json:"price_updated_at"`
	Version         int64           `sql:"default:0" json:"version"`
	CreatedAt       time.Time       `sql:"default:CURRENT_TIMESTAMP" json:"created_at"`
	UpdatedAt       time.Time       `sql:"default:CURRENT_TIMESTAMP" json:"updated_at"`
}

// ProtocolStats read-only rollup served by the stats endpoint
type ProtocolStats struct {
	TotalCollateral decimal.Decimal `json:"total_collateral"`
	TotalBorrowed   decimal.Decimal `json:"total_borrowed"`
	ProtocolFees    decimal.Decimal `json:"protocol_fees"`
	CollateralPrice decimal.Decimal `json:"collateral_price"`
	PriceUpdatedAt  time.Time       `json:"price_updated_at"`
	Block           int64           `json:"block"`
}

// IStateStore protocol state store interface
type IStateStore interface {
	Find(ctx context.Context) (*ProtocolState, error)
	Update(ctx context.Context, tx *db.DB, state *ProtocolState) error
}
