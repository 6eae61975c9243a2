// =============================
// File: pkg/dumpfun/trade.go
// =============================
package dumpfun

import (
	"fmt"

	"github.com/gagliardetto/solana-go"

	"github.com/rovshanmuradov/dumpfun-sdk/pkg/dumpfun/curve"
)

// CreateParams describe a new token.
type CreateParams struct {
	Mint    solana.PublicKey
	Creator solana.PublicKey
	Name    string
	Symbol  string
	URI     string
}

// BuyParams describe a buy of QuoteAmount lamports worth of tokens.
type BuyParams struct {
	Global *GlobalAccount
	Curve  curve.Snapshot
	// UserTokenAccountExists skips the idempotent account creation.
	UserTokenAccountExists bool

	Mint            solana.PublicKey
	User            solana.PublicKey
	QuoteAmount     uint64
	SlippagePercent float64
}

// SellParams describe a sell of BaseAmount tokens expected to return
// QuoteAmount lamports.
type SellParams struct {
	Global *GlobalAccount

	Mint            solana.PublicKey
	User            solana.PublicKey
	BaseAmount      uint64
	QuoteAmount     uint64
	SlippagePercent float64
}

// CreateAndBuyParams describe a launch followed by the creator's first buy.
type CreateAndBuyParams struct {
	Global *GlobalAccount

	Mint        solana.PublicKey
	Creator     solana.PublicKey
	User        solana.PublicKey
	Name        string
	Symbol      string
	URI         string
	QuoteAmount uint64
}

// CreateInstruction builds the launch instruction for a new mint.
func (c *Client) CreateInstruction(p CreateParams) (solana.Instruction, error) {
	accounts, err := c.launchAccounts(p.Mint, p.Creator)
	if err != nil {
		return nil, err
	}
	return NewLaunchInstruction(c.programID, accounts, LaunchArgs{
		Name:   p.Name,
		Symbol: p.Symbol,
		URI:    p.URI,
	})
}

// BuyInstructions builds a buy. The minimum token output is the quote for
// QuoteAmount reduced by the slippage tolerance. The user's token account is
// created first unless it already exists.
func (c *Client) BuyInstructions(p BuyParams) ([]solana.Instruction, error) {
	if p.Global == nil {
		return nil, fmt.Errorf("global account is required")
	}

	var instructions []solana.Instruction
	if !p.UserTokenAccountExists {
		ataIx, err := NewCreateATAIdempotentInstruction(p.User, p.User, p.Mint)
		if err != nil {
			return nil, err
		}
		instructions = append(instructions, ataIx)
	}

	buyIx, err := c.buyInstruction(p.Global, p.Curve, p.Mint, p.User, p.QuoteAmount, p.SlippagePercent)
	if err != nil {
		return nil, err
	}
	return append(instructions, buyIx), nil
}

// SellInstructions builds a sell with the minimum lamport output set to
// QuoteAmount reduced by the slippage tolerance.
func (c *Client) SellInstructions(p SellParams) ([]solana.Instruction, error) {
	if p.Global == nil {
		return nil, fmt.Errorf("global account is required")
	}

	minOut, err := curve.MinWithSlippage(p.QuoteAmount, p.SlippagePercent)
	if err != nil {
		return nil, err
	}

	accounts, err := c.swapAccounts(p.Global, p.Mint, p.User)
	if err != nil {
		return nil, err
	}

	sellIx, err := NewSwapInstruction(c.programID, accounts, SwapArgs{
		Amount:               p.BaseAmount,
		Direction:            SwapSell,
		MinimumReceiveAmount: minOut,
	})
	if err != nil {
		return nil, err
	}
	return []solana.Instruction{sellIx}, nil
}

// CreateAndBuyInstructions launches a mint and buys into it in the same
// transaction. The curve is priced as freshly created with
// DefaultSlippagePercent tolerance.
func (c *Client) CreateAndBuyInstructions(p CreateAndBuyParams) ([]solana.Instruction, error) {
	if p.Global == nil {
		return nil, fmt.Errorf("global account is required")
	}

	createIx, err := c.CreateInstruction(CreateParams{
		Mint:    p.Mint,
		Creator: p.Creator,
		Name:    p.Name,
		Symbol:  p.Symbol,
		URI:     p.URI,
	})
	if err != nil {
		return nil, err
	}

	ataIx, err := NewCreateATAIdempotentInstruction(p.User, p.User, p.Mint)
	if err != nil {
		return nil, err
	}

	buyIx, err := c.buyInstruction(p.Global, curve.Absent(), p.Mint, p.User, p.QuoteAmount, DefaultSlippagePercent)
	if err != nil {
		return nil, err
	}

	return []solana.Instruction{createIx, ataIx, buyIx}, nil
}

func (c *Client) buyInstruction(
	global *GlobalAccount,
	snap curve.Snapshot,
	mint, user solana.PublicKey,
	quoteAmount uint64,
	slippagePercent float64,
) (solana.Instruction, error) {
	if snap.Phase() == curve.PhaseCompleted {
		return nil, fmt.Errorf("%w: mint %s", ErrCurveCompleted, mint)
	}

	amountOut := curve.QuoteToBase(global.Config(), snap, quoteAmount)
	minOut, err := curve.MinWithSlippage(amountOut, slippagePercent)
	if err != nil {
		return nil, err
	}

	accounts, err := c.swapAccounts(global, mint, user)
	if err != nil {
		return nil, err
	}

	return NewSwapInstruction(c.programID, accounts, SwapArgs{
		Amount:               quoteAmount,
		Direction:            SwapBuy,
		MinimumReceiveAmount: minOut,
	})
}

func (c *Client) launchAccounts(mint, creator solana.PublicKey) (LaunchAccounts, error) {
	global, bondingCurve, curveATA, err := c.curveAddresses(mint)
	if err != nil {
		return LaunchAccounts{}, err
	}
	return LaunchAccounts{
		Global:            global,
		Creator:           creator,
		Mint:              mint,
		BondingCurve:      bondingCurve,
		CurveTokenAccount: curveATA,
	}, nil
}

func (c *Client) swapAccounts(globalAccount *GlobalAccount, mint, user solana.PublicKey) (SwapAccounts, error) {
	global, bondingCurve, curveATA, err := c.curveAddresses(mint)
	if err != nil {
		return SwapAccounts{}, err
	}
	userATA, err := UserTokenAccount(user, mint)
	if err != nil {
		return SwapAccounts{}, err
	}
	return SwapAccounts{
		Global:            global,
		TeamWallet:        globalAccount.TeamWallet,
		BondingCurve:      bondingCurve,
		CurveTokenAccount: curveATA,
		Mint:              mint,
		User:              user,
		UserTokenAccount:  userATA,
	}, nil
}

func (c *Client) curveAddresses(mint solana.PublicKey) (global, bondingCurve, curveATA solana.PublicKey, err error) {
	if global, err = c.GlobalPDA(); err != nil {
		return
	}
	if bondingCurve, err = c.BondingCurvePDA(mint); err != nil {
		return
	}
	curveATA, err = BondingCurveTokenAccount(bondingCurve, mint)
	return
}
