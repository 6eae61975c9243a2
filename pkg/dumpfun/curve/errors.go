package curve

import "errors"

var (
	// ErrInvalidState is returned when a curve snapshot has reserves that cannot
	// produce a quote, e.g. buying the entire remaining virtual supply.
	ErrInvalidState = errors.New("invalid bonding curve state")

	// ErrOverflow is returned when a result does not fit into a u64 amount.
	ErrOverflow = errors.New("amount overflows u64")

	// ErrInvalidSlippage is returned for a slippage tolerance outside [0, 100] percent.
	ErrInvalidSlippage = errors.New("invalid slippage percent")
)
