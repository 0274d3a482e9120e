package risk

import (
	"context"
	"fmt"
	"time"

	"sblend/core"

	"github.com/go-redis/redis"
	"github.com/shopspring/decimal"
)

type riskStore struct {
	Redis *redis.Client
}

// New new risk store
func New(redis *redis.Client) core.IRiskStore {
	return &riskStore{
		Redis: redis,
	}
}

func (s *riskStore) SaveHealthFactor(ctx context.Context, loanID uint64, block int64, health decimal.Decimal) error {
	k := s.healthCacheKey(loanID, block)

	if s.Redis.Exists(k).Val() == 0 {
		s.Redis.Set(k, []byte(health.String()), time.Hour)
	}
	return nil
}

func (s *riskStore) FindHealthFactor(ctx context.Context, loanID uint64, curBlock int64) (decimal.Decimal, bool, error) {
	k := s.healthCacheKey(loanID, curBlock)
	bs, e := s.Redis.Get(k).Bytes()
	if e == redis.Nil {
		return decimal.Zero, false, nil
	}
	if e != nil {
		return decimal.Zero, false, e
	}
	health, e := decimal.NewFromString(string(bs))
	if e != nil {
		return decimal.Zero, false, e
	}

	return health, true, nil
}

func (s *riskStore) healthCacheKey(loanID uint64, block int64) string {
	return fmt.Sprintf("sblend:risk:health:%d:%d", loanID, block)
}
