package config

import (
	"testing"

	"sblend/core"
	"sblend/pkg/number"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaultAsset(t *testing.T) {
	asset := core.CollateralAsset{Symbol: "sBTC"}
	defaultAsset(&asset)

	assert.Equal(t, "0.75", asset.CollateralFactor.String())
	assert.Equal(t, "0.05", asset.LiquidationBonus.String())
	assert.Equal(t, "1", asset.LiquidationThreshold.String())
	assert.Equal(t, "1.5", asset.MinOriginationHealth.String())
	assert.Equal(t, "0.1", asset.ReserveFactor.String())
	assert.Equal(t, "0.5", asset.LiquidationFeeShare.String())

	// explicit values survive
	asset = core.CollateralAsset{Symbol: "sBTC", CollateralFactor: number.Decimal("0.6")}
	defaultAsset(&asset)
	assert.Equal(t, "0.6", asset.CollateralFactor.String())
}

func TestDefaultRate(t *testing.T) {
	rate := core.RateModel{}
	defaultRate(&rate)

	assert.Equal(t, "0.02", rate.BaseRate.String())
	assert.Equal(t, "0.1", rate.Multiplier.String())
	assert.Equal(t, "1", rate.JumpMultiplier.String())
	assert.Equal(t, "0.8", rate.Kink.String())
}

func TestValidateAsset(t *testing.T) {
	asset := core.CollateralAsset{Symbol: "sBTC"}
	defaultAsset(&asset)
	require.Nil(t, validateAsset(&asset))

	bad := asset
	bad.CollateralFactor = number.Decimal("1.2")
	assert.NotNil(t, validateAsset(&bad))

	bad = asset
	bad.LiquidationFeeShare = number.Decimal("-0.1")
	assert.NotNil(t, validateAsset(&bad))

	bad = asset
	bad.MinOriginationHealth = number.Decimal("0.9")
	assert.NotNil(t, validateAsset(&bad), "origination floor may not sit below the liquidation threshold")
}
