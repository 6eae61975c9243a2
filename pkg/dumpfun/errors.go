package dumpfun

import "errors"

var (
	// ErrInvalidAccountData is returned when account bytes cannot be decoded.
	ErrInvalidAccountData = errors.New("invalid account data")

	// ErrCurveNotFound is returned when a trade needs a curve that does not exist.
	ErrCurveNotFound = errors.New("bonding curve account not found")

	// ErrCurveCompleted is returned when building a buy against a migrated curve.
	ErrCurveCompleted = errors.New("bonding curve completed")

	// ErrGlobalNotFound is returned when the program's global account is missing.
	ErrGlobalNotFound = errors.New("global account not found")
)
