package loan

import (
	"context"

	"sblend/core"

	"github.com/fox-one/pkg/store/db"
	"github.com/jinzhu/gorm"
)

type loanStore struct {
	db *db.DB
}

// New new loan store
func New(db *db.DB) core.ILoanStore {
	return &loanStore{
		db: db,
	}
}

func init() {
	db.RegisterMigrate(func(db *db.DB) error {
		tx := db.Update().Model(core.Loan{})
		if err := tx.AutoMigrate(core.Loan{}).Error; err != nil {
			return err
		}

		return nil
	})
}

func (s *loanStore) Create(ctx context.Context, tx *db.DB, loan *core.Loan) error {
	return tx.Update().Create(loan).Error
}

func (s *loanStore) Find(ctx context.Context, id uint64) (*core.Loan, error) {
	var loan core.Loan
	if err := s.db.View().Where("id = ?", id).First(&loan).Error; err != nil {
		if gorm.IsRecordNotFoundError(err) {
			return &core.Loan{}, nil
		}
		return nil, err
	}

	return &loan, nil
}

func (s *loanStore) FindByBorrower(ctx context.Context, borrower string) ([]*core.Loan, error) {
	var loans []*core.Loan
	if err := s.db.View().Where("borrower = ?", borrower).Order("id").Find(&loans).Error; err != nil {
		return nil, err
	}

	return loans, nil
}

func (s *loanStore) ListActive(ctx context.Context) ([]*core.Loan, error) {
	var loans []*core.Loan
	if err := s.db.View().Where("status = ?", core.LoanStatusActive).Order("id").Find(&loans).Error; err != nil {
		return nil, err
	}

	return loans, nil
}

func (s *loanStore) Update(ctx context.Context, tx *db.DB, loan *core.Loan) error {
	version := loan.Version
	loan.Version++

	updates := tx.Update().Model(core.Loan{}).
		Where("id = ? AND version = ?", loan.ID, version).
		Updates(loan)
	if updates.Error != nil {
		return updates.Error
	}
	if updates.RowsAffected == 0 {
		return db.ErrOptimisticLock
	}

	return nil
}
