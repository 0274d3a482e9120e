package lending

import (
	"github.com/shopspring/decimal"
)

var (
	// SecondsPerBlock seconds per block
	SecondsPerBlock int64 = 15
	// BlocksPerYear blocks per year
	BlocksPerYear = decimal.NewFromInt(2102400)
	// CollateralFactorMax max of collateral factor [0, 0.9]
	CollateralFactorMax = decimal.NewFromFloat(0.9)
	// LiquidationBonusMin must be no less than this value
	LiquidationBonusMin = decimal.NewFromFloat(0.01)
	// LiquidationBonusMax must be no greater than this value
	LiquidationBonusMax = decimal.NewFromFloat(0.9)
	// MaxHealthFactor sentinel health factor for a loan with zero debt
	MaxHealthFactor = decimal.NewFromInt(1000000)
	// MaxAmount upper bound of any stored quantity; decimal(32,16)
	// columns hold 16 integral digits
	MaxAmount = decimal.New(1, 16)
	// MaxPrecision max precision
	MaxPrecision int32 = 16
)

// One decimal 1
var One = decimal.NewFromInt(1)
