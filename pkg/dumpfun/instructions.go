// ==============================================
// File: pkg/dumpfun/instructions.go
// ==============================================
package dumpfun

import (
	"bytes"
	"encoding/binary"
	"fmt"

	bin "github.com/gagliardetto/binary"
	"github.com/gagliardetto/solana-go"
)

// SwapDirection selects the side of a swap instruction.
type SwapDirection uint8

const (
	// SwapBuy spends lamports for tokens.
	SwapBuy SwapDirection = 0
	// SwapSell spends tokens for lamports.
	SwapSell SwapDirection = 1
)

func (d SwapDirection) String() string {
	switch d {
	case SwapBuy:
		return "buy"
	case SwapSell:
		return "sell"
	default:
		return fmt.Sprintf("direction(%d)", uint8(d))
	}
}

// createIdempotentInstructionCode is the associated token program's
// CreateIdempotent instruction.
const createIdempotentInstructionCode = 1

// LaunchArgs are the arguments of the launch instruction.
type LaunchArgs struct {
	Name   string
	Symbol string
	URI    string
}

// MarshalWithEncoder writes the discriminator followed by three borsh strings.
func (a LaunchArgs) MarshalWithEncoder(enc *bin.Encoder) error {
	if err := enc.WriteBytes(launchInstructionDiscriminator[:], false); err != nil {
		return err
	}
	for _, s := range []string{a.Name, a.Symbol, a.URI} {
		if err := enc.WriteString(s); err != nil {
			return err
		}
	}
	return nil
}

// SwapArgs are the arguments of the swap instruction. Amount is lamports in
// for a buy and tokens in for a sell; MinimumReceiveAmount bounds the other side.
type SwapArgs struct {
	Amount               uint64
	Direction            SwapDirection
	MinimumReceiveAmount uint64
}

// MarshalWithEncoder writes the discriminator followed by u64, u8, u64.
func (a SwapArgs) MarshalWithEncoder(enc *bin.Encoder) error {
	if err := enc.WriteBytes(swapInstructionDiscriminator[:], false); err != nil {
		return err
	}
	if err := enc.WriteUint64(a.Amount, binary.LittleEndian); err != nil {
		return err
	}
	if err := enc.WriteUint8(uint8(a.Direction)); err != nil {
		return err
	}
	return enc.WriteUint64(a.MinimumReceiveAmount, binary.LittleEndian)
}

func encodeInstructionData(args bin.BinaryMarshaler) ([]byte, error) {
	buf := new(bytes.Buffer)
	if err := args.MarshalWithEncoder(bin.NewBorshEncoder(buf)); err != nil {
		return nil, fmt.Errorf("failed to encode instruction data: %w", err)
	}
	return buf.Bytes(), nil
}

// LaunchAccounts are the accounts the launch instruction touches.
type LaunchAccounts struct {
	Global            solana.PublicKey
	Creator           solana.PublicKey
	Mint              solana.PublicKey
	BondingCurve      solana.PublicKey
	CurveTokenAccount solana.PublicKey
}

// SwapAccounts are the accounts the swap instruction touches.
type SwapAccounts struct {
	Global            solana.PublicKey
	TeamWallet        solana.PublicKey
	BondingCurve      solana.PublicKey
	CurveTokenAccount solana.PublicKey
	Mint              solana.PublicKey
	User              solana.PublicKey
	UserTokenAccount  solana.PublicKey
}

// NewLaunchInstruction builds the instruction that creates a mint and its curve.
// The mint keypair co-signs.
func NewLaunchInstruction(programID solana.PublicKey, accounts LaunchAccounts, args LaunchArgs) (solana.Instruction, error) {
	data, err := encodeInstructionData(args)
	if err != nil {
		return nil, err
	}

	// Account list must be in the exact order expected by the program
	metas := solana.AccountMetaSlice{
		solana.Meta(accounts.Global).WRITE(),
		solana.Meta(accounts.Creator).WRITE().SIGNER(),
		solana.Meta(accounts.Mint).WRITE().SIGNER(),
		solana.Meta(accounts.BondingCurve).WRITE(),
		solana.Meta(accounts.CurveTokenAccount).WRITE(),
		solana.Meta(solana.SystemProgramID),
		solana.Meta(solana.TokenProgramID),
		solana.Meta(solana.SPLAssociatedTokenAccountProgramID),
		solana.Meta(solana.SysVarRentPubkey),
	}

	return solana.NewInstruction(programID, metas, data), nil
}

// NewSwapInstruction builds a buy or sell against a curve.
func NewSwapInstruction(programID solana.PublicKey, accounts SwapAccounts, args SwapArgs) (solana.Instruction, error) {
	data, err := encodeInstructionData(args)
	if err != nil {
		return nil, err
	}

	metas := solana.AccountMetaSlice{
		solana.Meta(accounts.Global).WRITE(),
		solana.Meta(accounts.TeamWallet).WRITE(),
		solana.Meta(accounts.BondingCurve).WRITE(),
		solana.Meta(accounts.CurveTokenAccount).WRITE(),
		solana.Meta(accounts.Mint),
		solana.Meta(accounts.User).WRITE().SIGNER(),
		solana.Meta(accounts.UserTokenAccount).WRITE(),
		solana.Meta(solana.SystemProgramID),
		solana.Meta(solana.TokenProgramID),
		solana.Meta(solana.SPLAssociatedTokenAccountProgramID),
	}

	return solana.NewInstruction(programID, metas, data), nil
}

// NewCreateATAIdempotentInstruction creates owner's associated token account
// for mint, succeeding if it already exists.
func NewCreateATAIdempotentInstruction(payer, owner, mint solana.PublicKey) (solana.Instruction, error) {
	ata, err := UserTokenAccount(owner, mint)
	if err != nil {
		return nil, err
	}

	metas := solana.AccountMetaSlice{
		solana.Meta(payer).WRITE().SIGNER(),
		solana.Meta(ata).WRITE(),
		solana.Meta(owner),
		solana.Meta(mint),
		solana.Meta(solana.SystemProgramID),
		solana.Meta(solana.TokenProgramID),
	}

	return solana.NewInstruction(
		solana.SPLAssociatedTokenAccountProgramID,
		metas,
		[]byte{createIdempotentInstructionCode},
	), nil
}
