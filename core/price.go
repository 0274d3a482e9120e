package core

import (
	"context"
	"time"

	"github.com/shopspring/decimal"
)

// PriceTicker one observation from the price oracle
type PriceTicker struct {
	Provider string          `json:"provider,omitempty"`
	Symbol   string          `json:"symbol,omitempty"`
	Price    decimal.Decimal `json:"price,omitempty"`
	Time     time.Time       `json:"time,omitempty"`
}

// IPriceOracleService read-only, possibly stale price source. Swappable
// with a deterministic fake in tests.
type IPriceOracleService interface {
	PullPriceTicker(ctx context.Context, symbol string, t time.Time) (*PriceTicker, error)
}
