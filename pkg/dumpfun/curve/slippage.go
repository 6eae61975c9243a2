package curve

import (
	"fmt"
	"math"

	"lukechampine.com/uint128"
)

// slippageDenominator is 100% expressed in tenths of a percent.
const slippageDenominator = 1000

// slippageTenths converts a percent tolerance (1.0 = 1%) into whole tenths of
// a percent, truncating any finer precision.
func slippageTenths(slippagePercent float64) (uint64, error) {
	if math.IsNaN(slippagePercent) || slippagePercent < 0 || slippagePercent > 100 {
		return 0, fmt.Errorf("%v: %w", slippagePercent, ErrInvalidSlippage)
	}
	return uint64(math.Floor(slippagePercent * 10)), nil
}

// MinWithSlippage returns the smallest acceptable output for an expected
// amount: amount - floor(amount * tenths / 1000).
func MinWithSlippage(amount uint64, slippagePercent float64) (uint64, error) {
	tenths, err := slippageTenths(slippagePercent)
	if err != nil {
		return 0, err
	}
	cut := uint128.From64(amount).Mul64(tenths).Div64(slippageDenominator)
	return amount - cut.Lo, nil
}

// MaxWithSlippage returns the largest acceptable input for an expected cost:
// amount + ceil(amount * tenths / 1000).
func MaxWithSlippage(amount uint64, slippagePercent float64) (uint64, error) {
	tenths, err := slippageTenths(slippagePercent)
	if err != nil {
		return 0, err
	}
	bound := ceilDiv(uint128.From64(amount).Mul64(tenths), slippageDenominator).Add64(amount)
	if bound.Hi != 0 {
		return 0, fmt.Errorf("max of %d with %v%% slippage: %w", amount, slippagePercent, ErrOverflow)
	}
	return bound.Lo, nil
}
