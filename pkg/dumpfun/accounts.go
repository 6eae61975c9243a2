// =============================
// File: pkg/dumpfun/accounts.go
// =============================
package dumpfun

import (
	"bytes"
	"encoding/binary"
	"fmt"

	bin "github.com/gagliardetto/binary"
	"github.com/gagliardetto/solana-go"

	"github.com/rovshanmuradov/dumpfun-sdk/pkg/dumpfun/curve"
)

// GlobalAccount is the program's singleton config account.
type GlobalAccount struct {
	Authority        solana.PublicKey
	PendingAuthority solana.PublicKey
	TeamWallet       solana.PublicKey

	InitBondingCurve     uint64
	PlatformBuyFee       uint64
	PlatformSellFee      uint64
	PlatformMigrationFee uint64
	CurveLimit           uint64
	SellTimestampLimit   uint64
	SellCurveLimit       uint64
	LamportAmountConfig  uint64
	TokenSupplyConfig    uint64
	TokenDecimalsConfig  uint64
}

// Config returns the pricing view of the global account.
func (g *GlobalAccount) Config() curve.GlobalConfig {
	return curve.GlobalConfig{
		PlatformBuyFeeBps:          g.PlatformBuyFee,
		PlatformSellFeeBps:         g.PlatformSellFee,
		InitialVirtualQuoteReserve: g.LamportAmountConfig,
		InitialVirtualBaseSupply:   g.TokenSupplyConfig,
	}
}

func (g *GlobalAccount) keys() []*solana.PublicKey {
	return []*solana.PublicKey{&g.Authority, &g.PendingAuthority, &g.TeamWallet}
}

func (g *GlobalAccount) values() []*uint64 {
	return []*uint64{
		&g.InitBondingCurve,
		&g.PlatformBuyFee,
		&g.PlatformSellFee,
		&g.PlatformMigrationFee,
		&g.CurveLimit,
		&g.SellTimestampLimit,
		&g.SellCurveLimit,
		&g.LamportAmountConfig,
		&g.TokenSupplyConfig,
		&g.TokenDecimalsConfig,
	}
}

// UnmarshalWithDecoder reads the discriminator and the borsh body.
func (g *GlobalAccount) UnmarshalWithDecoder(dec *bin.Decoder) error {
	if err := readDiscriminator(dec, configAccountDiscriminator); err != nil {
		return err
	}
	for _, key := range g.keys() {
		if err := readPublicKey(dec, key); err != nil {
			return err
		}
	}
	for _, v := range g.values() {
		n, err := dec.ReadUint64(binary.LittleEndian)
		if err != nil {
			return err
		}
		*v = n
	}
	return nil
}

// MarshalWithEncoder writes the account in its on-chain form.
func (g *GlobalAccount) MarshalWithEncoder(enc *bin.Encoder) error {
	if err := enc.WriteBytes(configAccountDiscriminator[:], false); err != nil {
		return err
	}
	for _, key := range g.keys() {
		if err := enc.WriteBytes(key[:], false); err != nil {
			return err
		}
	}
	for _, v := range g.values() {
		if err := enc.WriteUint64(*v, binary.LittleEndian); err != nil {
			return err
		}
	}
	return nil
}

// BondingCurveAccount is the per-mint curve account.
type BondingCurveAccount struct {
	VirtualTokenReserves uint64
	VirtualSolReserves   uint64
	RealTokenReserves    uint64
	RealSolReserves      uint64
	TokenTotalSupply     uint64
	Complete             bool
	Creator              solana.PublicKey
}

// State maps the account onto the pricing model: tokens are the base asset,
// lamports the quote asset.
func (b *BondingCurveAccount) State() curve.CurveState {
	return curve.CurveState{
		VirtualQuoteReserve: b.VirtualSolReserves,
		VirtualBaseReserve:  b.VirtualTokenReserves,
		RealQuoteReserve:    b.RealSolReserves,
		RealBaseReserve:     b.RealTokenReserves,
		TotalBaseSupply:     b.TokenTotalSupply,
		IsCompleted:         b.Complete,
	}
}

func (b *BondingCurveAccount) reserves() []*uint64 {
	return []*uint64{
		&b.VirtualTokenReserves,
		&b.VirtualSolReserves,
		&b.RealTokenReserves,
		&b.RealSolReserves,
		&b.TokenTotalSupply,
	}
}

// UnmarshalWithDecoder reads the discriminator and the borsh body. Trailing
// padding up to BondingCurveNewSize is ignored.
func (b *BondingCurveAccount) UnmarshalWithDecoder(dec *bin.Decoder) error {
	if err := readDiscriminator(dec, bondingCurveAccountDiscriminator); err != nil {
		return err
	}
	for _, v := range b.reserves() {
		n, err := dec.ReadUint64(binary.LittleEndian)
		if err != nil {
			return err
		}
		*v = n
	}
	complete, err := dec.ReadBool()
	if err != nil {
		return err
	}
	b.Complete = complete
	return readPublicKey(dec, &b.Creator)
}

// MarshalWithEncoder writes the account in its on-chain form.
func (b *BondingCurveAccount) MarshalWithEncoder(enc *bin.Encoder) error {
	if err := enc.WriteBytes(bondingCurveAccountDiscriminator[:], false); err != nil {
		return err
	}
	for _, v := range b.reserves() {
		if err := enc.WriteUint64(*v, binary.LittleEndian); err != nil {
			return err
		}
	}
	if err := enc.WriteBool(b.Complete); err != nil {
		return err
	}
	return enc.WriteBytes(b.Creator[:], false)
}

// DecodeGlobal parses raw global account data.
func DecodeGlobal(data []byte) (*GlobalAccount, error) {
	account := &GlobalAccount{}
	if err := account.UnmarshalWithDecoder(bin.NewBorshDecoder(data)); err != nil {
		return nil, fmt.Errorf("%w: global account (%d bytes): %v", ErrInvalidAccountData, len(data), err)
	}
	return account, nil
}

// DecodeBondingCurve parses raw bonding curve account data.
func DecodeBondingCurve(data []byte) (*BondingCurveAccount, error) {
	account := &BondingCurveAccount{}
	if err := account.UnmarshalWithDecoder(bin.NewBorshDecoder(data)); err != nil {
		return nil, fmt.Errorf("%w: bonding curve account (%d bytes): %v", ErrInvalidAccountData, len(data), err)
	}
	return account, nil
}

// EncodeAccount serializes an account with its discriminator.
func EncodeAccount(account bin.BinaryMarshaler) ([]byte, error) {
	buf := new(bytes.Buffer)
	if err := account.MarshalWithEncoder(bin.NewBorshEncoder(buf)); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func readDiscriminator(dec *bin.Decoder, want Discriminator) error {
	got, err := dec.ReadNBytes(len(want))
	if err != nil {
		return err
	}
	if !bytes.Equal(got, want[:]) {
		return fmt.Errorf("discriminator mismatch: expected %x, got %x", want[:], got)
	}
	return nil
}

func readPublicKey(dec *bin.Decoder, dst *solana.PublicKey) error {
	raw, err := dec.ReadNBytes(solana.PublicKeyLength)
	if err != nil {
		return err
	}
	*dst = solana.PublicKeyFromBytes(raw)
	return nil
}
