package state

import (
	"context"

	"sblend/core"

	"github.com/fox-one/pkg/store/db"
	"github.com/shopspring/decimal"
)

type stateStore struct {
	db *db.DB
}

// New new protocol state store
func New(db *db.DB) core.IStateStore {
	return &stateStore{
		db: db,
	}
}

func init() {
	db.RegisterMigrate(func(db *db.DB) error {
		tx := db.Update().Model(core.ProtocolState{})
		if err := tx.AutoMigrate(core.ProtocolState{}).Error; err != nil {
			return err
		}

		// seed the singleton row
		var count int
		if err := db.View().Model(core.ProtocolState{}).Count(&count).Error; err != nil {
			return err
		}

		if count == 0 {
			state := core.ProtocolState{
				ID:              1,
				TotalCollateral: decimal.Zero,
				TotalBorrowed:   decimal.Zero,
				ProtocolFees:    decimal.Zero,
				CollateralPrice: decimal.Zero,
			}
			if err := db.Update().Create(&state).Error; err != nil {
				return err
			}
		}

		return nil
	})
}

func (s *stateStore) Find(ctx context.Context) (*core.ProtocolState, error) {
	var state core.ProtocolState
	if err := s.db.View().Where("id = 1").First(&state).Error; err != nil {
		return nil, err
	}

	return &state, nil
}

func (s *stateStore) Update(ctx context.Context, tx *db.DB, state *core.ProtocolState) error {
	version := state.Version
	state.Version++

	updates := tx.Update().Model(core.ProtocolState{}).
		Where("id = 1 AND version = ?", version).
		Updates(state)
	if updates.Error != nil {
		return updates.Error
	}
	if updates.RowsAffected == 0 {
		return db.ErrOptimisticLock
	}

	return nil
}
