package cmd

import (
	"time"

	"sblend/core"
	"sblend/pkg/concurrency"
	"sblend/service/accrual"
	"sblend/service/block"
	"sblend/service/ledger"
	"sblend/service/liquidation"
	"sblend/service/oracle"
	"sblend/store/event"
	"sblend/store/loan"
	"sblend/store/risk"
	"sblend/store/state"

	"github.com/fox-one/pkg/property"
	"github.com/fox-one/pkg/store/db"
	propertystore "github.com/fox-one/pkg/store/property"
	"github.com/go-redis/redis"
)

func provideDatabase() *db.DB {
	return db.MustOpen(cfg.DB)
}

func provideRedis() *redis.Client {
	return redis.NewClient(&redis.Options{
		Addr: cfg.Redis.Addr,
		DB:   cfg.Redis.DB,
	})
}

func provideConfig() *core.Config {
	return &cfg
}

// ---------------store-----------------------------------------

func provideLoanStore(db *db.DB) core.ILoanStore {
	return loan.New(db)
}

// provideCachedLoanStore read-side only; writers take the plain store
func provideCachedLoanStore(db *db.DB) core.ILoanStore {
	return loan.Cache(loan.New(db), 5*time.Second)
}

func provideStateStore(db *db.DB) core.IStateStore {
	return state.New(db)
}

func provideEventStore(db *db.DB) core.IEventStore {
	return event.New(db)
}

func provideRiskStore() core.IRiskStore {
	return risk.New(provideRedis())
}

func providePropertyStore(db *db.DB) property.Store {
	return propertystore.New(db)
}

// ------------------service------------------------------------

func provideBlockService() core.IBlockService {
	return block.New(provideConfig())
}

func provideAccrualService() core.IAccrualService {
	return accrual.New(provideConfig())
}

func providePriceService() core.IPriceOracleService {
	return oracle.New(provideConfig())
}

func provideLedgerService(db *db.DB, loanStore core.ILoanStore, stateStore core.IStateStore, eventStore core.IEventStore, locks *concurrency.KeyedLock) core.ILedgerService {
	return ledger.New(db, loanStore, stateStore, eventStore, provideAccrualService(), provideBlockService(), locks, provideConfig())
}

func provideLiquidationService(db *db.DB, loanStore core.ILoanStore, stateStore core.IStateStore, eventStore core.IEventStore, locks *concurrency.KeyedLock) core.ILiquidationService {
	return liquidation.New(db, loanStore, stateStore, eventStore, provideRiskStore(), provideAccrualService(), provideBlockService(), locks, provideConfig())
}
