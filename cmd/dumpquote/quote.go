package main

import (
	"errors"
	"fmt"
	"io"

	"github.com/gagliardetto/solana-go"
	"github.com/mr-tron/base58"
	"github.com/shopspring/decimal"

	"github.com/rovshanmuradov/dumpfun-sdk/internal/logger"
	"github.com/rovshanmuradov/dumpfun-sdk/pkg/dumpfun"
	"github.com/rovshanmuradov/dumpfun-sdk/pkg/dumpfun/curve"
)

var errUnsupportedQuote = errors.New("unsupported side/by combination")

// maxTokenDecimals bounds the decimals read from the global account.
const maxTokenDecimals = 18

// quoteRequest is a parsed command line.
type quoteRequest struct {
	Mint            solana.PublicKey
	User            solana.PublicKey
	Side            string // buy | sell
	By              string // quote | base
	Amount          string // whole units
	SlippagePercent float64
}

// quoteReport holds raw amounts; formatting happens in print.
type quoteReport struct {
	Request      quoteRequest
	Phase        curve.Phase
	BaseDecimals int32
	InputRaw     uint64
	OutputRaw    uint64
	BoundRaw     uint64
	InputIsQuote bool
	BoundIsMax   bool
	SpotPrice    decimal.Decimal
	MarketCap    decimal.Decimal
	Instructions []solana.Instruction
}

// parseAmount converts whole units into a raw integer amount.
func parseAmount(amount string, decimals int32) (uint64, error) {
	value, err := decimal.NewFromString(amount)
	if err != nil {
		return 0, fmt.Errorf("invalid amount %q: %w", amount, err)
	}
	raw := value.Shift(decimals)
	if raw.IsNegative() || !raw.IsInteger() {
		return 0, fmt.Errorf("amount %q is not a whole number of raw units", amount)
	}
	bigRaw := raw.BigInt()
	if !bigRaw.IsUint64() {
		return 0, fmt.Errorf("amount %q does not fit into u64", amount)
	}
	return bigRaw.Uint64(), nil
}

// buildReport prices the request against state and, when a user is given,
// builds the matching instructions without sending them.
func buildReport(client *dumpfun.Client, state *dumpfun.QuoteState, req quoteRequest) (*quoteReport, error) {
	if state.Global.TokenDecimalsConfig > maxTokenDecimals {
		return nil, fmt.Errorf("token decimals %d exceed %d", state.Global.TokenDecimalsConfig, maxTokenDecimals)
	}
	cfg := state.Global.Config()
	report := &quoteReport{
		Request:      req,
		Phase:        state.Curve.Phase(),
		BaseDecimals: int32(state.Global.TokenDecimalsConfig),
	}
	resolved := state.Curve.Resolve(cfg)
	report.SpotPrice = curve.SpotPrice(resolved, report.BaseDecimals)
	report.MarketCap = curve.MarketCap(resolved, report.BaseDecimals)

	var err error
	switch {
	case req.Side == "buy" && req.By == "quote":
		report.InputIsQuote = true
		if report.InputRaw, err = parseAmount(req.Amount, curve.QuoteDecimals); err != nil {
			return nil, err
		}
		report.OutputRaw = curve.QuoteToBase(cfg, state.Curve, report.InputRaw)
		if report.BoundRaw, err = curve.MinWithSlippage(report.OutputRaw, req.SlippagePercent); err != nil {
			return nil, err
		}

	case req.Side == "buy" && req.By == "base":
		report.BoundIsMax = true
		if report.InputRaw, err = parseAmount(req.Amount, report.BaseDecimals); err != nil {
			return nil, err
		}
		if report.OutputRaw, err = curve.BaseToQuoteForBuy(cfg, state.Curve, report.InputRaw); err != nil {
			return nil, err
		}
		if report.BoundRaw, err = curve.MaxWithSlippage(report.OutputRaw, req.SlippagePercent); err != nil {
			return nil, err
		}

	case req.Side == "sell" && req.By == "base":
		onChain, ok := state.Curve.State()
		if !ok {
			return nil, dumpfun.ErrCurveNotFound
		}
		if report.InputRaw, err = parseAmount(req.Amount, report.BaseDecimals); err != nil {
			return nil, err
		}
		if report.OutputRaw, err = curve.BaseToQuoteForSell(cfg, onChain, report.InputRaw); err != nil {
			return nil, err
		}
		if report.BoundRaw, err = curve.MinWithSlippage(report.OutputRaw, req.SlippagePercent); err != nil {
			return nil, err
		}

	default:
		return nil, fmt.Errorf("%s by %s: %w", req.Side, req.By, errUnsupportedQuote)
	}

	if req.User.IsZero() {
		return report, nil
	}

	switch req.Side {
	case "buy":
		quoteIn := report.InputRaw
		if !report.InputIsQuote {
			quoteIn = report.OutputRaw
		}
		report.Instructions, err = client.BuyInstructions(dumpfun.BuyParams{
			Global:          state.Global,
			Curve:           state.Curve,
			Mint:            req.Mint,
			User:            req.User,
			QuoteAmount:     quoteIn,
			SlippagePercent: req.SlippagePercent,
		})
	case "sell":
		report.Instructions, err = client.SellInstructions(dumpfun.SellParams{
			Global:          state.Global,
			Mint:            req.Mint,
			User:            req.User,
			BaseAmount:      report.InputRaw,
			QuoteAmount:     report.OutputRaw,
			SlippagePercent: req.SlippagePercent,
		})
	}
	if err != nil {
		return nil, err
	}
	return report, nil
}

func printReport(w io.Writer, r *quoteReport) error {
	inDecimals, outDecimals := r.BaseDecimals, int32(curve.QuoteDecimals)
	inUnit, outUnit := "tokens", "SOL"
	if r.InputIsQuote {
		inDecimals, outDecimals = outDecimals, inDecimals
		inUnit, outUnit = outUnit, inUnit
	}
	boundLabel := "minimum out"
	if r.BoundIsMax {
		boundLabel = "maximum in"
	}

	lines := []string{
		fmt.Sprintf("mint:        %s (%s)", r.Request.Mint, r.Phase),
		fmt.Sprintf("side:        %s by %s", r.Request.Side, r.Request.By),
		fmt.Sprintf("input:       %s %s (%d raw)", curve.ToUIAmount(r.InputRaw, inDecimals), inUnit, r.InputRaw),
		fmt.Sprintf("output:      %s %s (%d raw)", curve.ToUIAmount(r.OutputRaw, outDecimals), outUnit, r.OutputRaw),
		fmt.Sprintf("%-12s %s %s (%d raw, %v%% slippage)", boundLabel+":", curve.ToUIAmount(r.BoundRaw, outDecimals), outUnit, r.BoundRaw, r.Request.SlippagePercent),
		fmt.Sprintf("spot price:  %s SOL", r.SpotPrice),
		fmt.Sprintf("market cap:  %s SOL", r.MarketCap),
	}
	for _, line := range lines {
		if _, err := fmt.Fprintln(w, line); err != nil {
			return err
		}
	}

	for i, ix := range r.Instructions {
		data, err := ix.Data()
		if err != nil {
			return err
		}
		if _, err := fmt.Fprintf(w, "ix[%d]:       program=%s accounts=%d data=%s\n",
			i, logger.ShortenAddress(ix.ProgramID().String()), len(ix.Accounts()), base58.Encode(data)); err != nil {
			return err
		}
	}
	return nil
}
