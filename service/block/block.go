package block

import (
	"context"
	"time"

	"sblend/core"
	"sblend/internal/lending"
)

type service struct {
	genesis int64
}

// New new block service
func New(cfg *core.Config) core.IBlockService {
	return &service{
		genesis: cfg.App.Genesis,
	}
}

// CurrentBlock current block
func (s *service) CurrentBlock(ctx context.Context) (int64, error) {
	return lending.CurrentBlock(ctx, lending.SecondsPerBlock, s.genesis)
}

// GetBlock get block by time
func (s *service) GetBlock(ctx context.Context, t time.Time) (int64, error) {
	return lending.GetBlockByTime(ctx, lending.SecondsPerBlock, s.genesis, t)
}
