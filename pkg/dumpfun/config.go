// =============================
// File: pkg/dumpfun/config.go
// =============================
package dumpfun

import (
	"github.com/gagliardetto/solana-go"
)

// ProgramID is the deployed address of the launch program.
var ProgramID = solana.MustPublicKeyFromBase58("BGPsmYozwhbbamFixASxZkJjxgb4P3nZRfAYy2Ef5P3c")

const (
	// BondingCurveNewSize is the allocated size of a bonding curve account.
	BondingCurveNewSize = 150

	// CanonicalPoolIndex is the pool index used when a curve migrates.
	CanonicalPoolIndex = 0

	// DefaultSlippagePercent is the tolerance CreateAndBuyInstructions applies.
	DefaultSlippagePercent = 1.0
)

// PDA seeds
const (
	globalSeed        = "config"
	bondingCurveSeed  = "bonding_curve"
	poolAuthoritySeed = "pool-authority"
)
