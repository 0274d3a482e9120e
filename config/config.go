package config

import (
	"fmt"

	"sblend/core"
	"sblend/internal/lending"
	"sblend/pkg/number"

	"github.com/asaskevich/govalidator"
	configUtil "github.com/fox-one/pkg/config"
)

// Load load config file
func Load(configFile string, config *core.Config) error {
	configUtil.AutomaticLoadEnv("SBLEND")
	if err := configUtil.LoadYaml(configFile, config); err != nil {
		return err
	}

	defaultAsset(&config.Asset)
	defaultRate(&config.Rate)

	if _, err := govalidator.ValidateStruct(config); err != nil {
		return err
	}

	return validateAsset(&config.Asset)
}

func defaultAsset(asset *core.CollateralAsset) {
	if asset.CollateralFactor.IsZero() {
		asset.CollateralFactor = number.Decimal("0.75")
	}
	if asset.LiquidationBonus.IsZero() {
		asset.LiquidationBonus = number.Decimal("0.05")
	}
	if asset.LiquidationThreshold.IsZero() {
		asset.LiquidationThreshold = number.Decimal("1")
	}
	if asset.MinOriginationHealth.IsZero() {
		asset.MinOriginationHealth = number.Decimal("1.5")
	}
	if asset.ReserveFactor.IsZero() {
		asset.ReserveFactor = number.Decimal("0.1")
	}
	if asset.LiquidationFeeShare.IsZero() {
		asset.LiquidationFeeShare = number.Decimal("0.5")
	}
}

func defaultRate(rate *core.RateModel) {
	if rate.BaseRate.IsZero() {
		rate.BaseRate = number.Decimal("0.02")
	}
	if rate.Multiplier.IsZero() {
		rate.Multiplier = number.Decimal("0.1")
	}
	if rate.JumpMultiplier.IsZero() {
		rate.JumpMultiplier = number.Decimal("1")
	}
	if rate.Kink.IsZero() {
		rate.Kink = number.Decimal("0.8")
	}
}

func validateAsset(asset *core.CollateralAsset) error {
	if asset.CollateralFactor.IsNegative() || asset.CollateralFactor.GreaterThan(lending.One) {
		return fmt.Errorf("config: collateral_factor %s out of [0,1]", asset.CollateralFactor)
	}
	if asset.LiquidationFeeShare.IsNegative() || asset.LiquidationFeeShare.GreaterThan(lending.One) {
		return fmt.Errorf("config: liquidation_fee_share %s out of [0,1]", asset.LiquidationFeeShare)
	}
	if asset.LiquidationBonus.IsNegative() {
		return fmt.Errorf("config: liquidation_bonus %s negative", asset.LiquidationBonus)
	}
	if !asset.LiquidationThreshold.IsPositive() {
		return fmt.Errorf("config: liquidation_threshold %s not positive", asset.LiquidationThreshold)
	}
	if asset.MinOriginationHealth.LessThan(asset.LiquidationThreshold) {
		return fmt.Errorf("config: min_origination_health %s below liquidation_threshold", asset.MinOriginationHealth)
	}
	return nil
}
