package core

import (
	"context"
	"time"
)

// IBlockService logical clock. One block per fixed wall-clock span since
// genesis; all accrual deltas are block counts.
type IBlockService interface {
	CurrentBlock(ctx context.Context) (int64, error)
	GetBlock(ctx context.Context, t time.Time) (int64, error)
}
