package dumpfun

import (
	"encoding/binary"
	"testing"

	"github.com/gagliardetto/solana-go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSwapInstructionData(t *testing.T) {
	accounts := SwapAccounts{
		Global:            solana.NewWallet().PublicKey(),
		TeamWallet:        solana.NewWallet().PublicKey(),
		BondingCurve:      solana.NewWallet().PublicKey(),
		CurveTokenAccount: solana.NewWallet().PublicKey(),
		Mint:              solana.NewWallet().PublicKey(),
		User:              solana.NewWallet().PublicKey(),
		UserTokenAccount:  solana.NewWallet().PublicKey(),
	}

	ix, err := NewSwapInstruction(ProgramID, accounts, SwapArgs{
		Amount:               1_000_000_000,
		Direction:            SwapSell,
		MinimumReceiveAmount: 33_938_338_628_250,
	})
	require.NoError(t, err)
	assert.Equal(t, ProgramID, ix.ProgramID())

	data, err := ix.Data()
	require.NoError(t, err)
	require.Len(t, data, 8+8+1+8)
	assert.Equal(t, swapInstructionDiscriminator[:], data[:8])
	assert.Equal(t, uint64(1_000_000_000), binary.LittleEndian.Uint64(data[8:16]))
	assert.Equal(t, uint8(SwapSell), data[16])
	assert.Equal(t, uint64(33_938_338_628_250), binary.LittleEndian.Uint64(data[17:25]))

	metas := ix.Accounts()
	require.Len(t, metas, 10)
	assert.Equal(t, accounts.TeamWallet, metas[1].PublicKey)
	assert.True(t, metas[1].IsWritable)
	assert.Equal(t, accounts.Mint, metas[4].PublicKey)
	assert.False(t, metas[4].IsWritable)
	assert.Equal(t, accounts.User, metas[5].PublicKey)
	assert.True(t, metas[5].IsSigner)

	signers := 0
	for _, meta := range metas {
		if meta.IsSigner {
			signers++
		}
	}
	assert.Equal(t, 1, signers)
}

func TestLaunchInstructionData(t *testing.T) {
	accounts := LaunchAccounts{
		Global:            solana.NewWallet().PublicKey(),
		Creator:           solana.NewWallet().PublicKey(),
		Mint:              solana.NewWallet().PublicKey(),
		BondingCurve:      solana.NewWallet().PublicKey(),
		CurveTokenAccount: solana.NewWallet().PublicKey(),
	}

	ix, err := NewLaunchInstruction(ProgramID, accounts, LaunchArgs{Name: "Dump", Symbol: "DMP", URI: "ipfs://x"})
	require.NoError(t, err)

	data, err := ix.Data()
	require.NoError(t, err)
	assert.Equal(t, launchInstructionDiscriminator[:], data[:8])

	// borsh strings: u32 length prefix followed by the bytes
	rest := data[8:]
	for _, want := range []string{"Dump", "DMP", "ipfs://x"} {
		require.GreaterOrEqual(t, len(rest), 4)
		n := int(binary.LittleEndian.Uint32(rest[:4]))
		require.GreaterOrEqual(t, len(rest), 4+n)
		assert.Equal(t, want, string(rest[4:4+n]))
		rest = rest[4+n:]
	}
	assert.Empty(t, rest)

	metas := ix.Accounts()
	assert.True(t, metas[1].IsSigner, "creator signs")
	assert.True(t, metas[2].IsSigner, "mint signs")
	assert.Equal(t, accounts.Mint, metas[2].PublicKey)
}

func TestCreateATAIdempotentInstruction(t *testing.T) {
	payer := solana.NewWallet().PublicKey()
	mint := solana.NewWallet().PublicKey()

	ix, err := NewCreateATAIdempotentInstruction(payer, payer, mint)
	require.NoError(t, err)
	assert.Equal(t, solana.SPLAssociatedTokenAccountProgramID, ix.ProgramID())

	data, err := ix.Data()
	require.NoError(t, err)
	assert.Equal(t, []byte{1}, data)

	ata, err := UserTokenAccount(payer, mint)
	require.NoError(t, err)

	metas := ix.Accounts()
	require.Len(t, metas, 6)
	assert.Equal(t, ata, metas[1].PublicKey)
	assert.Equal(t, mint, metas[3].PublicKey)
}

func TestSwapDirectionString(t *testing.T) {
	assert.Equal(t, "buy", SwapBuy.String())
	assert.Equal(t, "sell", SwapSell.String())
	assert.Equal(t, "direction(7)", SwapDirection(7).String())
}
