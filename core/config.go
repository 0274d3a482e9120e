package core

import (
	"time"

	"github.com/fox-one/pkg/store/db"
	"github.com/shopspring/decimal"
)

// Config sblend config
type Config struct {
	App    App             `json:"app" valid:"required"`
	DB     db.Config       `json:"db"`
	Redis  Redis           `json:"redis"`
	Asset  CollateralAsset `json:"asset" valid:"required"`
	Rate   RateModel       `json:"rate" valid:"required"`
	Oracle Oracle          `json:"oracle"`
	Events Events          `json:"events"`
}

// App app config
type App struct {
	// Genesis unix seconds of block zero of the logical clock
	Genesis int64 `json:"genesis" valid:"required"`
	Port    int   `json:"port"`
	// Liquidator system account allowed to auto-liquidate from the
	// monitor worker; scanning only when empty
	Liquidator string `json:"liquidator"`
}

// Redis redis config
type Redis struct {
	Addr string `json:"addr"`
	DB   int    `json:"db"`
}

// CollateralAsset immutable per-asset risk parameters, loaded at startup.
// The numeric defaults are configuration, not a hard contract.
type CollateralAsset struct {
	Symbol               string          `json:"symbol" valid:"required"`
	CollateralFactor     decimal.Decimal `json:"collateral_factor"`
	LiquidationBonus     decimal.Decimal `json:"liquidation_bonus"`
	LiquidationThreshold decimal.Decimal `json:"liquidation_threshold"`
	MinOriginationHealth decimal.Decimal `json:"min_origination_health"`
	ReserveFactor        decimal.Decimal `json:"reserve_factor"`
	// LiquidationFeeShare protocol's cut of the liquidation bonus, [0,1]
	LiquidationFeeShare decimal.Decimal `json:"liquidation_fee_share"`
}

// RateModel immutable kinked interest rate parameters, annualized
type RateModel struct {
	BaseRate       decimal.Decimal `json:"base_rate"`
	Multiplier     decimal.Decimal `json:"multiplier"`
	JumpMultiplier decimal.Decimal `json:"jump_multiplier"`
	Kink           decimal.Decimal `json:"kink"`
}

// Oracle price oracle config
type Oracle struct {
	EndPoint string `json:"end_point"`
	// StaleAfter reject mutations when the stored price is older than
	// this window; zero disables the check
	StaleAfter          time.Duration `json:"stale_after"`
	PullIntervalSeconds int64         `json:"pull_interval_seconds"`
}

// Events outbox delivery config
type Events struct {
	WebhookURL string `json:"webhook_url"`
	Batch      int    `json:"batch"`
}
