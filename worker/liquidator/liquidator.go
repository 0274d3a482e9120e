package liquidator

import (
	"context"
	"sync"
	"time"

	"sblend/core"
	"sblend/pkg/concurrency"
	"sblend/worker"

	"github.com/fox-one/pkg/logger"
	"github.com/shopspring/decimal"
)

// Worker scans active loans for positions below the liquidation
// threshold. With a liquidator account configured it repays them
// itself, otherwise it only reports.
type Worker struct {
	worker.TickWorker
	liquidator     string
	liquidationSrv core.ILiquidationService
}

// New new liquidator worker
func New(cfg *core.Config, liquidationSrv core.ILiquidationService) *Worker {
	return &Worker{
		TickWorker: worker.TickWorker{
			Delay:    15 * time.Second,
			ErrDelay: time.Second,
		},
		liquidator:     cfg.App.Liquidator,
		liquidationSrv: liquidationSrv,
	}
}

// Run run worker
func (w *Worker) Run(ctx context.Context) error {
	return w.StartTick(ctx, func(ctx context.Context) error {
		return w.onWork(ctx)
	})
}

func (w *Worker) onWork(ctx context.Context) error {
	log := logger.FromContext(ctx).WithField("worker", "liquidator")

	underwater, err := w.liquidationSrv.FindUnderwater(ctx)
	if err != nil {
		log.WithError(err).Errorln("find underwater loans")
		return err
	}

	if len(underwater) == 0 {
		return nil
	}

	for _, u := range underwater {
		log.Infof("loan %d underwater: health %s, debt %s", u.Loan.ID, u.HealthFactor, u.Debt)
	}

	if w.liquidator == "" {
		return nil
	}

	limit := concurrency.NewGoLimit(4)
	wg := sync.WaitGroup{}
	for _, u := range underwater {
		limit.Add()
		wg.Add(1)
		go func(u *core.UnderwaterLoan) {
			defer limit.Done()
			defer wg.Done()
			w.liquidate(ctx, u)
		}(u)
	}
	wg.Wait()

	return nil
}

func (w *Worker) liquidate(ctx context.Context, u *core.UnderwaterLoan) {
	log := logger.FromContext(ctx).WithField("worker", "liquidator")

	// zero repay amount seizes against the full outstanding debt
	receipt, err := w.liquidationSrv.Liquidate(ctx, u.Loan.ID, w.liquidator, decimal.Zero)
	if err != nil {
		if err == core.ErrNotLiquidatable {
			return
		}
		log.WithError(err).Errorf("liquidate loan %d", u.Loan.ID)
		return
	}

	log.Infof("liquidated loan %d: paid %s, seized %s, bad debt %s",
		receipt.LoanID, receipt.DebtPaid, receipt.CollateralSeized, receipt.BadDebt)
}
