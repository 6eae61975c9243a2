package curve

import (
	"fmt"

	"lukechampine.com/uint128"
)

// BasisPointsDenominator is 100% expressed in basis points.
const BasisPointsDenominator = 10_000

// Fee returns ceil(amount * feeBasisPoints / 10000).
//
// Rounding up matches the program's own fee collection. The only error is
// ErrOverflow, which requires a fee above 100% applied to a huge amount.
func Fee(amount, feeBasisPoints uint64) (uint64, error) {
	fee := feeU128(amount, feeBasisPoints)
	if fee.Hi != 0 {
		return 0, fmt.Errorf("fee of %d at %d bps: %w", amount, feeBasisPoints, ErrOverflow)
	}
	return fee.Lo, nil
}

func feeU128(amount, feeBasisPoints uint64) uint128.Uint128 {
	if amount == 0 || feeBasisPoints == 0 {
		return uint128.Zero
	}
	return ceilDiv(uint128.From64(amount).Mul64(feeBasisPoints), BasisPointsDenominator)
}

// ceilDiv computes ceil(a / b) as (a + b - 1) / b.
func ceilDiv(a uint128.Uint128, b uint64) uint128.Uint128 {
	return a.Add64(b - 1).Div64(b)
}
