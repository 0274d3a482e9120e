package liquidation

import (
	"context"
	"fmt"
	"time"

	"sblend/core"
	"sblend/internal/lending"
	"sblend/pkg/concurrency"
	"sblend/pkg/id"

	"github.com/fox-one/pkg/logger"
	"github.com/fox-one/pkg/store/db"
	foxuuid "github.com/fox-one/pkg/uuid"
	"github.com/shopspring/decimal"
)

type service struct {
	db         *db.DB
	loanStore  core.ILoanStore
	stateStore core.IStateStore
	eventStore core.IEventStore
	riskStore  core.IRiskStore
	accrualSrv core.IAccrualService
	blockSrv   core.IBlockService

	asset      core.CollateralAsset
	genesis    int64
	staleAfter time.Duration

	locks *concurrency.KeyedLock
}

// New new liquidation service. It shares the ledger's keyed lock so a
// liquidation and a borrower operation on the same loan never interleave.
func New(
	database *db.DB,
	loanStore core.ILoanStore,
	stateStore core.IStateStore,
	eventStore core.IEventStore,
	riskStore core.IRiskStore,
	accrualSrv core.IAccrualService,
	blockSrv core.IBlockService,
	locks *concurrency.KeyedLock,
	cfg *core.Config,
) core.ILiquidationService {
	return &service{
		db:         database,
		loanStore:  loanStore,
		stateStore: stateStore,
		eventStore: eventStore,
		riskStore:  riskStore,
		accrualSrv: accrualSrv,
		blockSrv:   blockSrv,
		asset:      cfg.Asset,
		genesis:    cfg.App.Genesis,
		staleAfter: cfg.Oracle.StaleAfter,
		locks:      locks,
	}
}

// Liquidate repays part or all of an under-collateralized loan's debt and
// seizes collateral plus bonus in exchange. A zero repayAmount means the
// full outstanding debt. The loan closes once its collateral or its debt
// reaches zero, whichever happens first; debt left uncovered by collateral
// is written off against the protocol's fee reserve.
func (s *service) Liquidate(ctx context.Context, loanID uint64, liquidator string, repayAmount decimal.Decimal) (*core.LiquidationReceipt, error) {
	log := logger.FromContext(ctx).WithField("op", "liquidate")

	if liquidator == "" {
		return nil, core.ErrOperationForbidden
	}
	if repayAmount.IsNegative() || lending.AmountOutOfRange(repayAmount) {
		return nil, core.ErrInvalidAmount
	}

	block, err := s.blockSrv.CurrentBlock(ctx)
	if err != nil {
		return nil, err
	}

	unlock := lockForMutation(s.locks, loanID)
	defer unlock()

	var receipt *core.LiquidationReceipt
	err = s.db.Tx(func(tx *db.DB) error {
		state, err := s.stateStore.Find(ctx)
		if err != nil {
			return err
		}
		if err := s.checkPrice(state); err != nil {
			return err
		}

		loan, err := s.loanStore.Find(ctx, loanID)
		if err != nil {
			return err
		}
		if loan.ID == 0 {
			return core.ErrLoanNotFound
		}
		if !loan.IsActive() {
			return core.ErrLoanNotActive
		}

		if _, err := s.accrualSrv.Accrue(ctx, state, loan, block); err != nil {
			return err
		}

		price := state.CollateralPrice
		hf := lending.HealthFactor(loan.CollateralAmount, price, s.asset.CollateralFactor, loan.Debt())
		if !liquidatable(hf, s.asset.LiquidationThreshold) {
			return core.ErrNotLiquidatable
		}

		outcome := executeSeizure(loan, price, repayAmount, s.asset)

		loan.AccruedInterest = loan.AccruedInterest.Sub(outcome.InterestPaid)
		loan.Principal = loan.Principal.Sub(outcome.PrincipalPaid)
		loan.CollateralAmount = loan.CollateralAmount.Sub(outcome.CollateralSeized)

		state.TotalBorrowed = state.TotalBorrowed.Sub(outcome.DebtPaid).Truncate(lending.MaxPrecision)
		state.TotalCollateral = state.TotalCollateral.Sub(outcome.CollateralSeized).Truncate(lending.MaxPrecision)
		state.ProtocolFees = state.ProtocolFees.Add(outcome.ProtocolFee).Truncate(lending.MaxPrecision)

		if outcome.BadDebt.IsPositive() {
			// the pool absorbs debt the collateral could not cover
			loan.Principal = decimal.Zero
			loan.AccruedInterest = decimal.Zero
			state.TotalBorrowed = state.TotalBorrowed.Sub(outcome.BadDebt).Truncate(lending.MaxPrecision)
			state.ProtocolFees = state.ProtocolFees.Sub(outcome.BadDebt).Truncate(lending.MaxPrecision)
		}

		if outcome.Closed {
			loan.Status = core.LoanStatusLiquidated
			if outcome.CollateralReturned.IsPositive() {
				state.TotalCollateral = state.TotalCollateral.Sub(outcome.CollateralReturned).Truncate(lending.MaxPrecision)
			}
		}

		if err := s.loanStore.Update(ctx, tx, loan); err != nil {
			return err
		}
		if err := s.stateStore.Update(ctx, tx, state); err != nil {
			return err
		}

		receipt = &core.LiquidationReceipt{
			LoanID:             loan.ID,
			Borrower:           loan.Borrower,
			Liquidator:         liquidator,
			DebtPaid:           outcome.DebtPaid,
			CollateralSeized:   outcome.LiquidatorShare,
			CollateralReturned: outcome.CollateralReturned,
			BadDebt:            outcome.BadDebt,
			HealthFactor:       hf,
			Block:              block,
			Full:               outcome.Closed,
		}

		payload := core.EventPayload{}
		payload.Put("loan-id", loan.ID)
		payload.Put("borrower", loan.Borrower)
		payload.Put("liquidator", liquidator)
		payload.Put("debt-paid", outcome.DebtPaid)
		payload.Put("collateral-received", outcome.LiquidatorShare)
		payload.Put("health-factor", hf)
		payload.Put("timestamp", s.genesis+block*lending.SecondsPerBlock)

		event := core.BuildEvent(operationTrace(loan, "liquidate"), core.EventLoanLiquidated, loan.ID, payload)
		return s.eventStore.Create(ctx, tx, event)
	})
	if err != nil {
		return nil, err
	}

	log.Infof("loan %d liquidated by %s, debt paid %s, seized %s",
		loanID, liquidator, receipt.DebtPaid, receipt.CollateralSeized)
	return receipt, nil
}

// FindUnderwater lists Active loans whose projected health factor sits
// below the liquidation threshold. Per-block results are cached so a
// monitor polling faster than the clock does no redundant math.
func (s *service) FindUnderwater(ctx context.Context) ([]*core.UnderwaterLoan, error) {
	block, err := s.blockSrv.CurrentBlock(ctx)
	if err != nil {
		return nil, err
	}

	state, err := s.stateStore.Find(ctx)
	if err != nil {
		return nil, err
	}

	loans, err := s.loanStore.ListActive(ctx)
	if err != nil {
		return nil, err
	}

	var underwater []*core.UnderwaterLoan
	for _, loan := range loans {
		hf, ok := s.cachedHealthFactor(ctx, loan.ID, block)
		if !ok {
			projected, err := s.accrualSrv.Project(ctx, state, loan, block)
			if err != nil {
				return nil, err
			}

			debt := loan.Debt().Add(projected)
			hf = lending.HealthFactor(loan.CollateralAmount, state.CollateralPrice, s.asset.CollateralFactor, debt)
			s.cacheHealthFactor(ctx, loan.ID, block, hf)
		}

		if liquidatable(hf, s.asset.LiquidationThreshold) {
			underwater = append(underwater, &core.UnderwaterLoan{
				Loan:         loan,
				HealthFactor: hf,
				Debt:         loan.Debt(),
			})
		}
	}

	return underwater, nil
}

func (s *service) cachedHealthFactor(ctx context.Context, loanID uint64, block int64) (decimal.Decimal, bool) {
	if s.riskStore == nil {
		return decimal.Zero, false
	}

	hf, ok, err := s.riskStore.FindHealthFactor(ctx, loanID, block)
	if err != nil || !ok {
		return decimal.Zero, false
	}
	return hf, true
}

func (s *service) cacheHealthFactor(ctx context.Context, loanID uint64, block int64, hf decimal.Decimal) {
	if s.riskStore == nil {
		return
	}

	if err := s.riskStore.SaveHealthFactor(ctx, loanID, block, hf); err != nil {
		logger.FromContext(ctx).WithError(err).Debugln("risk snapshot save failed")
	}
}

func (s *service) checkPrice(state *core.ProtocolState) error {
	if state.CollateralPrice.LessThanOrEqual(decimal.Zero) {
		return core.ErrPriceStale
	}
	if s.staleAfter > 0 && time.Since(state.PriceUpdatedAt) > s.staleAfter {
		return core.ErrPriceStale
	}
	return nil
}

// the keyed lock slot guarding the protocol totals row, shared with the
// ledger service
const aggregateLockKey uint64 = 0

// operationTrace event trace for one committed mutation of a loan. The
// store bumps Version on every write, so repeated liquidations inside
// the same block still produce distinct outbox rows.
func operationTrace(loan *core.Loan, op string) string {
	return foxuuid.Modify(id.TraceIDFrom(fmt.Sprintf("loan-%d", loan.ID)), fmt.Sprintf("%s-%d", op, loan.Version))
}

// lockForMutation takes the loan's lock and then the aggregate slot, in
// the same order the ledger service does
func lockForMutation(locks *concurrency.KeyedLock, loanID uint64) func() {
	locks.Lock(loanID)
	locks.Lock(aggregateLockKey)
	return func() {
		locks.Unlock(aggregateLockKey)
		locks.Unlock(loanID)
	}
}
