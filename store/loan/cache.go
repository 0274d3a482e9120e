package loan

import (
	"context"
	"fmt"
	"time"

	"sblend/core"

	"github.com/bluele/gcache"
	"github.com/fox-one/pkg/store/db"
	"golang.org/x/sync/singleflight"
)

func Cache(store core.ILoanStore, exp time.Duration) core.ILoanStore {
	return &cacheLoanStore{
		ILoanStore: store,
		cache:      gcache.New(2048).LRU().Build(),
		exp:        exp,
		sf:         &singleflight.Group{},
	}
}

type cacheLoanStore struct {
	core.ILoanStore
	cache gcache.Cache
	exp   time.Duration
	sf    *singleflight.Group
}

func (s *cacheLoanStore) Create(ctx context.Context, tx *db.DB, loan *core.Loan) error {
	if err := s.ILoanStore.Create(ctx, tx, loan); err != nil {
		return err
	}
	s.cacheLoan(loan)
	return nil
}

func (s *cacheLoanStore) Update(ctx context.Context, tx *db.DB, loan *core.Loan) error {
	if err := s.ILoanStore.Update(ctx, tx, loan); err != nil {
		return err
	}
	s.cacheLoan(loan)
	return nil
}

func (s *cacheLoanStore) Find(ctx context.Context, id uint64) (*core.Loan, error) {
	key := s.loanKey(id)
	if v, err := s.cache.Get(key); err == nil {
		if loan, ok := v.(*core.Loan); ok {
			return loan, nil
		}
	}

	v, err, _ := s.sf.Do(key, func() (interface{}, error) {
		loan, err := s.ILoanStore.Find(ctx, id)
		if err != nil {
			return nil, err
		}
		if loan.ID > 0 {
			s.cacheLoan(loan)
		}
		return loan, nil
	})
	if err != nil {
		return nil, err
	}

	return v.(*core.Loan), nil
}

func (s *cacheLoanStore) cacheLoan(loan *core.Loan) {
	_ = s.cache.SetWithExpire(s.loanKey(loan.ID), loan, s.exp)
}

func (s *cacheLoanStore) loanKey(id uint64) string {
	return fmt.Sprintf("loan:id:%d", id)
}
