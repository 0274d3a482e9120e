package priceoracle

import (
	"context"
	"time"

	"sblend/core"
	"sblend/worker"

	"github.com/fox-one/pkg/logger"
	"github.com/fox-one/pkg/property"
	"github.com/shopspring/decimal"
)

const checkpointKey = "price_pull_checkpoint"

// Worker pulls the collateral price from the oracle endpoint and
// feeds it into the ledger, one sample per logical block at most
type Worker struct {
	worker.TickWorker
	symbol    string
	ledgerSrv core.ILedgerService
	priceSrv  core.IPriceOracleService
	blockSrv  core.IBlockService
	property  property.Store
}

// New new price oracle worker
func New(
	cfg *core.Config,
	ledgerSrv core.ILedgerService,
	priceSrv core.IPriceOracleService,
	blockSrv core.IBlockService,
	property property.Store,
) *Worker {
	interval := cfg.Oracle.PullIntervalSeconds
	if interval <= 0 {
		interval = 15
	}

	return &Worker{
		TickWorker: worker.TickWorker{
			Delay:    time.Duration(interval) * time.Second,
			ErrDelay: time.Second,
		},
		symbol:    cfg.Asset.Symbol,
		ledgerSrv: ledgerSrv,
		priceSrv:  priceSrv,
		blockSrv:  blockSrv,
		property:  property,
	}
}

// Run run worker
func (w *Worker) Run(ctx context.Context) error {
	return w.StartTick(ctx, func(ctx context.Context) error {
		return w.onWork(ctx)
	})
}

func (w *Worker) onWork(ctx context.Context) error {
	log := logger.FromContext(ctx).WithField("worker", "priceoracle")

	now := time.Now()

	block, err := w.blockSrv.GetBlock(ctx, now)
	if err != nil {
		log.WithError(err).Errorln("GetBlock")
		return err
	}

	v, err := w.property.Get(ctx, checkpointKey)
	if err != nil {
		log.WithError(err).Errorln("property.Get", checkpointKey)
		return err
	}

	if v.Int64() >= block {
		return nil
	}

	ticker, err := w.priceSrv.PullPriceTicker(ctx, w.symbol, now)
	if err != nil {
		log.WithError(err).Errorln("pull price ticker")
		return err
	}

	if ticker.Price.LessThanOrEqual(decimal.Zero) {
		log.Errorln("invalid ticker price:", ticker.Symbol, ":", ticker.Price)
		return nil
	}

	if err := w.ledgerSrv.UpdatePrice(ctx, ticker.Price, now); err != nil {
		log.WithError(err).Errorln("update price")
		return err
	}

	if err := w.property.Save(ctx, checkpointKey, block); err != nil {
		log.WithError(err).Errorln("property.Save", checkpointKey)
		return err
	}

	log.Debugf("price %s @ block %d", ticker.Price, block)
	return nil
}
