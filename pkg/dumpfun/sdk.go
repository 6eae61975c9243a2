// =============================
// File: pkg/dumpfun/sdk.go
// =============================
package dumpfun

import (
	"context"
	"errors"
	"fmt"

	"github.com/gagliardetto/solana-go"
	"github.com/gagliardetto/solana-go/rpc"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/rovshanmuradov/dumpfun-sdk/pkg/blockchain/solbc"
	"github.com/rovshanmuradov/dumpfun-sdk/pkg/dumpfun/curve"
)

// AccountReader is the part of the RPC client the SDK reads accounts through.
// GetAccountInfo reports a missing account with solbc.ErrAccountNotFound;
// GetMultipleAccounts returns nil entries for missing accounts.
type AccountReader interface {
	GetAccountInfo(ctx context.Context, pubkey solana.PublicKey) (*rpc.Account, error)
	GetMultipleAccounts(ctx context.Context, pubkeys []solana.PublicKey) ([]*rpc.Account, error)
}

// Client reads program accounts and builds instructions. It is safe for
// concurrent use.
type Client struct {
	rpc       AccountReader
	programID solana.PublicKey
	logger    *zap.Logger
}

// Option configures a Client.
type Option func(*Client)

// WithProgramID points the client at another deployment of the program.
func WithProgramID(programID solana.PublicKey) Option {
	return func(c *Client) {
		c.programID = programID
	}
}

// NewClient creates a client over reader. A nil logger disables logging.
func NewClient(reader AccountReader, logger *zap.Logger, opts ...Option) *Client {
	if logger == nil {
		logger = zap.NewNop()
	}
	c := &Client{
		rpc:       reader,
		programID: ProgramID,
		logger:    logger.Named("dumpfun"),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// ProgramID returns the program the client talks to.
func (c *Client) ProgramID() solana.PublicKey {
	return c.programID
}

// GlobalPDA returns the global config address.
func (c *Client) GlobalPDA() (solana.PublicKey, error) {
	return GlobalPDA(c.programID)
}

// BondingCurvePDA returns the curve address of mint.
func (c *Client) BondingCurvePDA(mint solana.PublicKey) (solana.PublicKey, error) {
	return BondingCurvePDA(c.programID, mint)
}

// PoolAuthorityPDA returns the pool authority of mint and its bump.
func (c *Client) PoolAuthorityPDA(mint solana.PublicKey) (solana.PublicKey, uint8, error) {
	return PoolAuthorityPDA(mint, c.programID)
}

// FetchGlobal reads and decodes the global config account.
func (c *Client) FetchGlobal(ctx context.Context) (*GlobalAccount, error) {
	addr, err := c.GlobalPDA()
	if err != nil {
		return nil, err
	}

	c.logger.Debug("Fetching global account", zap.String("address", addr.String()))

	account, err := c.rpc.GetAccountInfo(ctx, addr)
	if errors.Is(err, solbc.ErrAccountNotFound) {
		return nil, fmt.Errorf("%w: %s", ErrGlobalNotFound, addr)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get global account: %w", err)
	}

	data, err := c.programData(account)
	if err != nil {
		return nil, fmt.Errorf("global account %s: %w", addr, err)
	}

	global, err := DecodeGlobal(data)
	if err != nil {
		return nil, err
	}

	c.logger.Debug("Global account decoded",
		zap.String("team_wallet", global.TeamWallet.String()),
		zap.Uint64("buy_fee_bps", global.PlatformBuyFee),
		zap.Uint64("sell_fee_bps", global.PlatformSellFee))

	return global, nil
}

// FetchBondingCurve reads the curve of mint. A curve that has not been
// launched yet is returned as curve.Absent() without error.
func (c *Client) FetchBondingCurve(ctx context.Context, mint solana.PublicKey) (curve.Snapshot, error) {
	addr, err := c.BondingCurvePDA(mint)
	if err != nil {
		return curve.Absent(), err
	}

	account, err := c.rpc.GetAccountInfo(ctx, addr)
	if errors.Is(err, solbc.ErrAccountNotFound) {
		c.logger.Debug("Bonding curve not created yet", zap.String("mint", mint.String()))
		return curve.Absent(), nil
	}
	if err != nil {
		return curve.Absent(), fmt.Errorf("failed to get bonding curve account: %w", err)
	}

	bc, err := c.decodeCurve(addr, account)
	if err != nil {
		return curve.Absent(), err
	}
	return curve.Active(bc.State()), nil
}

// QuoteState is everything a quote needs.
type QuoteState struct {
	Global *GlobalAccount
	Curve  curve.Snapshot
}

// FetchQuoteState reads the global config and the curve of mint concurrently.
func (c *Client) FetchQuoteState(ctx context.Context, mint solana.PublicKey) (*QuoteState, error) {
	var state QuoteState

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		global, err := c.FetchGlobal(gctx)
		if err != nil {
			return err
		}
		state.Global = global
		return nil
	})
	g.Go(func() error {
		snap, err := c.FetchBondingCurve(gctx, mint)
		if err != nil {
			return err
		}
		state.Curve = snap
		return nil
	})

	if err := g.Wait(); err != nil {
		return nil, err
	}
	return &state, nil
}

// TradeState is the curve and user token account a buy or sell runs against.
type TradeState struct {
	BondingCurve           *BondingCurveAccount
	UserTokenAccount       solana.PublicKey
	UserTokenAccountExists bool
}

// Snapshot wraps the curve for the pricing functions.
func (s *TradeState) Snapshot() curve.Snapshot {
	return curve.Active(s.BondingCurve.State())
}

// FetchBuyState reads the curve and the user's token account in one request.
// The curve must exist.
func (c *Client) FetchBuyState(ctx context.Context, mint, user solana.PublicKey) (*TradeState, error) {
	return c.fetchTradeState(ctx, mint, user)
}

// FetchSellState has the same contract as FetchBuyState.
func (c *Client) FetchSellState(ctx context.Context, mint, user solana.PublicKey) (*TradeState, error) {
	return c.fetchTradeState(ctx, mint, user)
}

func (c *Client) fetchTradeState(ctx context.Context, mint, user solana.PublicKey) (*TradeState, error) {
	curveAddr, err := c.BondingCurvePDA(mint)
	if err != nil {
		return nil, err
	}
	userATA, err := UserTokenAccount(user, mint)
	if err != nil {
		return nil, err
	}

	accounts, err := c.rpc.GetMultipleAccounts(ctx, []solana.PublicKey{curveAddr, userATA})
	if err != nil {
		return nil, fmt.Errorf("failed to get trade accounts: %w", err)
	}
	if len(accounts) != 2 {
		return nil, fmt.Errorf("expected 2 accounts, got %d", len(accounts))
	}
	if accounts[0] == nil {
		return nil, fmt.Errorf("%w for mint: %s", ErrCurveNotFound, mint)
	}

	bc, err := c.decodeCurve(curveAddr, accounts[0])
	if err != nil {
		return nil, err
	}

	c.logger.Debug("Trade state fetched",
		zap.String("mint", mint.String()),
		zap.String("user_ata", userATA.String()),
		zap.Bool("user_ata_exists", accounts[1] != nil))

	return &TradeState{
		BondingCurve:           bc,
		UserTokenAccount:       userATA,
		UserTokenAccountExists: accounts[1] != nil,
	}, nil
}

// QuoteBuy returns the tokens quoteAmount lamports buy on mint's curve.
func (c *Client) QuoteBuy(ctx context.Context, mint solana.PublicKey, quoteAmount uint64) (uint64, error) {
	state, err := c.FetchQuoteState(ctx, mint)
	if err != nil {
		return 0, err
	}
	return curve.QuoteToBase(state.Global.Config(), state.Curve, quoteAmount), nil
}

// QuoteBuyCost returns the lamports, fee included, needed to buy baseAmount tokens.
func (c *Client) QuoteBuyCost(ctx context.Context, mint solana.PublicKey, baseAmount uint64) (uint64, error) {
	state, err := c.FetchQuoteState(ctx, mint)
	if err != nil {
		return 0, err
	}
	return curve.BaseToQuoteForBuy(state.Global.Config(), state.Curve, baseAmount)
}

// QuoteSell returns the lamports received for selling baseAmount tokens. Only
// an existing curve can be sold into.
func (c *Client) QuoteSell(ctx context.Context, mint solana.PublicKey, baseAmount uint64) (uint64, error) {
	state, err := c.FetchQuoteState(ctx, mint)
	if err != nil {
		return 0, err
	}
	cs, ok := state.Curve.State()
	if !ok {
		return 0, fmt.Errorf("%w for mint: %s", ErrCurveNotFound, mint)
	}
	return curve.BaseToQuoteForSell(state.Global.Config(), cs, baseAmount)
}

func (c *Client) decodeCurve(addr solana.PublicKey, account *rpc.Account) (*BondingCurveAccount, error) {
	data, err := c.programData(account)
	if err != nil {
		return nil, fmt.Errorf("bonding curve %s: %w", addr, err)
	}
	bc, err := DecodeBondingCurve(data)
	if err != nil {
		return nil, err
	}

	c.logger.Debug("Bonding curve decoded",
		zap.String("address", addr.String()),
		zap.Uint64("virtual_sol", bc.VirtualSolReserves),
		zap.Uint64("virtual_token", bc.VirtualTokenReserves),
		zap.Bool("complete", bc.Complete))

	return bc, nil
}

// programData returns account data after checking the program owns it.
func (c *Client) programData(account *rpc.Account) ([]byte, error) {
	if !account.Owner.Equals(c.programID) {
		return nil, fmt.Errorf("%w: incorrect owner: expected %s, got %s",
			ErrInvalidAccountData, c.programID, account.Owner)
	}
	if account.Data == nil {
		return nil, fmt.Errorf("%w: no data", ErrInvalidAccountData)
	}
	return account.Data.GetBinary(), nil
}
