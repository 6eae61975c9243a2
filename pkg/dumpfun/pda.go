package dumpfun

import (
	"fmt"

	"github.com/gagliardetto/solana-go"
)

// GlobalPDA derives the program's global config account.
func GlobalPDA(programID solana.PublicKey) (solana.PublicKey, error) {
	addr, _, err := solana.FindProgramAddress([][]byte{[]byte(globalSeed)}, programID)
	if err != nil {
		return solana.PublicKey{}, fmt.Errorf("failed to derive global account: %w", err)
	}
	return addr, nil
}

// BondingCurvePDA derives the bonding curve account of a mint.
func BondingCurvePDA(programID, mint solana.PublicKey) (solana.PublicKey, error) {
	addr, _, err := solana.FindProgramAddress(
		[][]byte{[]byte(bondingCurveSeed), mint.Bytes()},
		programID,
	)
	if err != nil {
		return solana.PublicKey{}, fmt.Errorf("failed to derive bonding curve for %s: %w", mint, err)
	}
	return addr, nil
}

// PoolAuthorityPDA derives the authority that owns the migrated pool of a mint.
func PoolAuthorityPDA(mint, programID solana.PublicKey) (solana.PublicKey, uint8, error) {
	addr, bump, err := solana.FindProgramAddress(
		[][]byte{[]byte(poolAuthoritySeed), mint.Bytes()},
		programID,
	)
	if err != nil {
		return solana.PublicKey{}, 0, fmt.Errorf("failed to derive pool authority for %s: %w", mint, err)
	}
	return addr, bump, nil
}

// BondingCurveTokenAccount returns the associated token account holding the
// curve's base tokens.
func BondingCurveTokenAccount(bondingCurve, mint solana.PublicKey) (solana.PublicKey, error) {
	ata, _, err := solana.FindAssociatedTokenAddress(bondingCurve, mint)
	if err != nil {
		return solana.PublicKey{}, fmt.Errorf("failed to derive bonding curve token account: %w", err)
	}
	return ata, nil
}

// UserTokenAccount returns the associated token account of user for mint.
func UserTokenAccount(user, mint solana.PublicKey) (solana.PublicKey, error) {
	ata, _, err := solana.FindAssociatedTokenAddress(user, mint)
	if err != nil {
		return solana.PublicKey{}, fmt.Errorf("failed to derive associated token account: %w", err)
	}
	return ata, nil
}
