package ledger

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

// the keyed lock slot guarding protocol-wide mutations that are not tied
// to an existing loan (origination, price ingest)
const aggregateLockKey uint64 = 0

type service struct {
	db         *db.DB
	loanStore  core.ILoanStore
	stateStore core.IStateStore
	eventStore core.IEventStore
	accrualSrv core.IAccrualService
	blockSrv   core.IBlockService

	asset      core.CollateralAsset
	rate       core.RateModel
	genesis    int64
	staleAfter time.Duration

	locks *concurrency.KeyedLock
}

// New new ledger service
func New(
	database *db.DB,
	loanStore core.ILoanStore,
	stateStore core.IStateStore,
	eventStore core.IEventStore,
	accrualSrv core.IAccrualService,
	blockSrv core.IBlockService,
	locks *concurrency.KeyedLock,
	cfg *core.Config,
) core.ILedgerService {
	return &service{
		db:         database,
		loanStore:  loanStore,
		stateStore: stateStore,
		eventStore: eventStore,
		accrualSrv: accrualSrv,
		blockSrv:   blockSrv,
		asset:      cfg.Asset,
		rate:       cfg.Rate,
		genesis:    cfg.App.Genesis,
		staleAfter: cfg.Oracle.StaleAfter,
		locks:      locks,
	}
}

// Borrow opens a new Active loan against posted collateral. The position
// must originate with a health factor at or above the origination minimum,
// which is stricter than the liquidation threshold.
func (s *service) Borrow(ctx context.Context, borrower string, collateralAmount, borrowAmount decimal.Decimal) (*core.Loan, error) {
	log := logger.FromContext(ctx).WithField("op", "borrow")

	if borrower == "" {
		return nil, core.ErrOperationForbidden
	}
	if err := validAmounts(collateralAmount, borrowAmount); err != nil {
		return nil, err
	}

	block, err := s.blockSrv.CurrentBlock(ctx)
	if err != nil {
		return nil, err
	}

	s.locks.Lock(aggregateLockKey)
	defer s.locks.Unlock(aggregateLockKey)

	var loan *core.Loan
	err = s.db.Tx(func(tx *db.DB) error {
		state, err := s.stateStore.Find(ctx)
		if err != nil {
			return err
		}
		if err := s.checkPrice(state); err != nil {
			return err
		}

		if !canOriginate(collateralAmount, state.CollateralPrice, s.asset.CollateralFactor, borrowAmount, s.asset.MinOriginationHealth) {
			return core.ErrInsufficientCollateral
		}

		if lending.AmountOutOfRange(state.TotalCollateral.Add(collateralAmount)) ||
			lending.AmountOutOfRange(state.TotalBorrowed.Add(borrowAmount)) {
			return core.ErrArithmeticOverflow
		}

		loan = &core.Loan{
			Borrower:         borrower,
			CollateralAmount: collateralAmount,
			Principal:        borrowAmount,
			AccruedInterest:  decimal.Zero,
			LastAccrualBlock: block,
			Status:           core.LoanStatusActive,
		}
		if err := s.loanStore.Create(ctx, tx, loan); err != nil {
			return err
		}

		state.TotalCollateral = state.TotalCollateral.Add(collateralAmount).Truncate(lending.MaxPrecision)
		state.TotalBorrowed = state.TotalBorrowed.Add(borrowAmount).Truncate(lending.MaxPrecision)
		if err := s.stateStore.Update(ctx, tx, state); err != nil {
			return err
		}

		payload := core.EventPayload{}
		payload.Put("loan-id", loan.ID)
		payload.Put("borrower", borrower)
		payload.Put("collateral-amount", collateralAmount)
		payload.Put("borrowed-amount", borrowAmount)
		payload.Put("interest-rate", s.currentBorrowRate(state))
		payload.Put("timestamp", s.blockTime(block))

		event := core.BuildEvent(loanTrace(loan.ID), core.EventLoanCreated, loan.ID, payload)
		return s.eventStore.Create(ctx, tx, event)
	})
	if err != nil {
		return nil, err
	}

	log.Infof("loan %d created for %s", loan.ID, borrower)
	return loan, nil
}

// AddCollateral tops up an Active loan's collateral
func (s *service) AddCollateral(ctx context.Context, loanID uint64, borrower string, amount decimal.Decimal) (decimal.Decimal, error) {
	if err := validAmounts(amount); err != nil {
		return decimal.Zero, err
	}

	block, err := s.blockSrv.CurrentBlock(ctx)
	if err != nil {
		return decimal.Zero, err
	}

	unlock := lockForMutation(s.locks, loanID)
	defer unlock()

	var newTotal decimal.Decimal
	err = s.db.Tx(func(tx *db.DB) error {
		state, loan, err := s.loadForUpdate(ctx, loanID, borrower)
		if err != nil {
			return err
		}

		if _, err := s.accrualSrv.Accrue(ctx, state, loan, block); err != nil {
			return err
		}

		if lending.AmountOutOfRange(loan.CollateralAmount.Add(amount)) {
			return core.ErrArithmeticOverflow
		}

		loan.CollateralAmount = loan.CollateralAmount.Add(amount).Truncate(lending.MaxPrecision)
		state.TotalCollateral = state.TotalCollateral.Add(amount).Truncate(lending.MaxPrecision)
		newTotal = loan.CollateralAmount

		if err := s.loanStore.Update(ctx, tx, loan); err != nil {
			return err
		}
		if err := s.stateStore.Update(ctx, tx, state); err != nil {
			return err
		}

		payload := core.EventPayload{}
		payload.Put("loan-id", loan.ID)
		payload.Put("borrower", loan.Borrower)
		payload.Put("amount", amount)
		payload.Put("new-total-collateral", loan.CollateralAmount)
		payload.Put("timestamp", s.blockTime(block))

		event := core.BuildEvent(operationTrace(loan, "collateral"), core.EventCollateralAdded, loan.ID, payload)
		return s.eventStore.Create(ctx, tx, event)
	})
	if err != nil {
		return decimal.Zero, err
	}

	return newTotal, nil
}

// Repay pays amount against the loan, interest first, then principal.
// A payment above total debt is capped and the excess surfaced as a
// refund; the loan transitions to Repaid exactly when debt reaches zero,
// at which point its collateral leaves the pool.
func (s *service) Repay(ctx context.Context, loanID uint64, borrower string, amount decimal.Decimal) (*core.RepayResult, error) {
	log := logger.FromContext(ctx).WithField("op", "repay")

	if err := validAmounts(amount); err != nil {
		return nil, err
	}

	block, err := s.blockSrv.CurrentBlock(ctx)
	if err != nil {
		return nil, err
	}

	unlock := lockForMutation(s.locks, loanID)
	defer unlock()

	var result *core.RepayResult
	err = s.db.Tx(func(tx *db.DB) error {
		state, loan, err := s.loadForUpdate(ctx, loanID, borrower)
		if err != nil {
			return err
		}

		if _, err := s.accrualSrv.Accrue(ctx, state, loan, block); err != nil {
			return err
		}

		outcome := applyRepay(loan.AccruedInterest, loan.Principal, amount)

		loan.AccruedInterest = loan.AccruedInterest.Sub(outcome.interestPaid)
		loan.Principal = loan.Principal.Sub(outcome.principalPaid)

		applied := outcome.interestPaid.Add(outcome.principalPaid)
		state.TotalBorrowed = state.TotalBorrowed.Sub(applied).Truncate(lending.MaxPrecision)

		result = &core.RepayResult{
			LoanID:        loan.ID,
			InterestPaid:  outcome.interestPaid,
			PrincipalPaid: outcome.principalPaid,
			RemainingDebt: loan.Debt(),
			RefundAmount:  outcome.refund,
			FullyRepaid:   outcome.fullyRepaid,
		}

		if outcome.fullyRepaid {
			loan.Status = core.LoanStatusRepaid
			state.TotalCollateral = state.TotalCollateral.Sub(loan.CollateralAmount).Truncate(lending.MaxPrecision)
			result.CollateralReturned = loan.CollateralAmount
		}

		if err := s.loanStore.Update(ctx, tx, loan); err != nil {
			return err
		}
		if err := s.stateStore.Update(ctx, tx, state); err != nil {
			return err
		}

		payload := core.EventPayload{}
		payload.Put("loan-id", loan.ID)
		payload.Put("borrower", loan.Borrower)
		payload.Put("amount", applied)
		payload.Put("interest-paid", outcome.interestPaid)
		payload.Put("principal-paid", outcome.principalPaid)
		payload.Put("remaining-debt", loan.Debt())
		payload.Put("fully-repaid", outcome.fullyRepaid)
		payload.Put("timestamp", s.blockTime(block))

		event := core.BuildEvent(operationTrace(loan, "repay"), core.EventLoanRepaid, loan.ID, payload)
		return s.eventStore.Create(ctx, tx, event)
	})
	if err != nil {
		return nil, err
	}

	if result.RefundAmount.IsPositive() {
		log.Infof("loan %d overpaid, refunding %s", loanID, result.RefundAmount)
	}

	return result, nil
}

// UpdatePrice ingests a price-updated observation from the oracle
func (s *service) UpdatePrice(ctx context.Context, price decimal.Decimal, t time.Time) error {
	if err := validAmounts(price); err != nil {
		return err
	}

	block, err := s.blockSrv.GetBlock(ctx, t)
	if err != nil {
		return err
	}

	s.locks.Lock(aggregateLockKey)
	defer s.locks.Unlock(aggregateLockKey)

	return s.db.Tx(func(tx *db.DB) error {
		state, err := s.stateStore.Find(ctx)
		if err != nil {
			return err
		}

		if t.Before(state.PriceUpdatedAt) {
			return core.ErrInvalidTimestamp
		}

		oldPrice := state.CollateralPrice
		state.CollateralPrice = price
		state.PriceBlock = block
		state.PriceUpdatedAt = t

		if err := s.stateStore.Update(ctx, tx, state); err != nil {
			return err
		}

		payload := core.EventPayload{}
		payload.Put("old-price", oldPrice)
		payload.Put("new-price", price)
		payload.Put("timestamp", t.Unix())

		event := core.BuildEvent(id.TraceIDFrom(fmt.Sprintf("price-updated-%d", block)), core.EventPriceUpdated, 0, payload)
		return s.eventStore.Create(ctx, tx, event)
	})
}

// loadForUpdate fetches the state row and an Active loan owned by
// borrower; an empty borrower skips the ownership check, which is how the
// read paths and the liquidation engine come through.
func (s *service) loadForUpdate(ctx context.Context, loanID uint64, borrower string) (*core.ProtocolState, *core.Loan, error) {
	state, err := s.stateStore.Find(ctx)
	if err != nil {
		return nil, nil, err
	}
	if err := s.checkPrice(state); err != nil {
		return nil, nil, err
	}

	loan, err := s.loanStore.Find(ctx, loanID)
	if err != nil {
		return nil, nil, err
	}
	if loan.ID == 0 {
		return nil, nil, core.ErrLoanNotFound
	}
	if !loan.IsActive() {
		return nil, nil, core.ErrLoanNotActive
	}
	if borrower != "" && loan.Borrower != borrower {
		return nil, nil, core.ErrOperationForbidden
	}

	return state, loan, nil
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

func (s *service) currentBorrowRate(state *core.ProtocolState) decimal.Decimal {
	u := lending.UtilizationRate(state.TotalBorrowed, state.TotalCollateral, state.CollateralPrice)
	perBlock := lending.GetBorrowRatePerBlock(u, s.rate.BaseRate, s.rate.Multiplier, s.rate.JumpMultiplier, s.rate.Kink)
	return perBlock.Mul(lending.BlocksPerYear).Truncate(lending.MaxPrecision)
}

func (s *service) blockTime(block int64) int64 {
	return s.genesis + block*lending.SecondsPerBlock
}

// loanTrace deterministic base trace of a loan; per-operation event
// traces derive from it
func loanTrace(loanID uint64) string {
	return id.TraceIDFrom(fmt.Sprintf("loan-%d", loanID))
}

// operationTrace event trace for one committed mutation of a loan. The
// store bumps Version on every write, so repeated operations inside the
// same block still produce distinct outbox rows.
func operationTrace(loan *core.Loan, op string) string {
	return foxuuid.Modify(loanTrace(loan.ID), fmt.Sprintf("%s-%d", op, loan.Version))
}

// lockForMutation takes the loan's lock and then the aggregate slot, so
// concurrent operations on unrelated loans do not race on the protocol
// totals row. Loan ids start at 1 and never collide with the slot.
func lockForMutation(locks *concurrency.KeyedLock, loanID uint64) func() {
	locks.Lock(loanID)
	locks.Lock(aggregateLockKey)
	return func() {
		locks.Unlock(aggregateLockKey)
		locks.Unlock(loanID)
	}
}
