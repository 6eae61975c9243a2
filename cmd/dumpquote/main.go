// ====================================
// File: cmd/dumpquote/main.go
// ====================================
package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/gagliardetto/solana-go"
	"github.com/prometheus/client_golang/prometheus"
	"go.uber.org/zap"

	"github.com/rovshanmuradov/dumpfun-sdk/internal/config"
	"github.com/rovshanmuradov/dumpfun-sdk/internal/logger"
	"github.com/rovshanmuradov/dumpfun-sdk/pkg/blockchain/solbc"
	"github.com/rovshanmuradov/dumpfun-sdk/pkg/dumpfun"
)

func main() {
	var (
		configPath = flag.String("config", "configs/config.json", "Path to config file")
		mint       = flag.String("mint", "", "token mint address")
		side       = flag.String("side", "buy", "buy or sell")
		by         = flag.String("by", "quote", "unit of -amount: quote (SOL) or base (tokens)")
		amount     = flag.String("amount", "", "amount in whole units, e.g. 0.5")
		user       = flag.String("user", "", "wallet to build instructions for (dry run)")
		slippage   = flag.Float64("slippage", -1, "slippage tolerance in percent, defaults to the config value")
	)
	flag.Parse()

	if err := run(*configPath, *mint, *side, *by, *amount, *user, *slippage); err != nil {
		fmt.Fprintln(os.Stderr, "dumpquote:", err)
		os.Exit(1)
	}
}

func run(configPath, mintArg, side, by, amount, userArg string, slippage float64) error {
	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	cfg, err := config.LoadConfig(configPath)
	if err != nil {
		return err
	}

	log, err := logger.New(&cfg.Logging)
	if err != nil {
		return err
	}
	defer func() { _ = log.Sync() }()

	req := quoteRequest{Side: side, By: by, Amount: amount, SlippagePercent: cfg.SlippagePercent}
	if slippage >= 0 {
		req.SlippagePercent = slippage
	}
	if req.Mint, err = solana.PublicKeyFromBase58(mintArg); err != nil {
		return fmt.Errorf("invalid -mint: %w", err)
	}
	if userArg != "" {
		if req.User, err = solana.PublicKeyFromBase58(userArg); err != nil {
			return fmt.Errorf("invalid -user: %w", err)
		}
	}

	metrics, err := solbc.NewMetrics(prometheus.DefaultRegisterer)
	if err != nil {
		return err
	}
	rpcClient, err := solbc.NewClient(cfg.RPCList, log.Logger,
		solbc.WithMetrics(metrics),
		solbc.WithCommitment(cfg.CommitmentType()),
		solbc.WithRateLimit(cfg.RPCRateLimit, cfg.RPCBurst),
		solbc.WithRetries(uint(cfg.Retries)),
		solbc.WithRequestTimeout(cfg.RequestTimeout()),
	)
	if err != nil {
		return err
	}
	client := dumpfun.NewClient(rpcClient, log.Logger, dumpfun.WithProgramID(cfg.Program()))

	done := log.TrackPerformance("dumpquote")
	defer done()

	opLog := log.WithMint(req.Mint.String()).WithOperation("quote")
	state, err := client.FetchQuoteState(ctx, req.Mint)
	if err != nil {
		opLog.Error("Failed to fetch quote state", zap.Error(err))
		return err
	}
	opLog.Debug("Quote state fetched", zap.Stringer("phase", state.Curve.Phase()))

	report, err := buildReport(client, state, req)
	if err != nil {
		return err
	}
	logRPCStats(opLog)
	return printReport(os.Stdout, report)
}

// logRPCStats reports how many RPC attempts the run made.
func logRPCStats(log *zap.Logger) {
	families, err := prometheus.DefaultGatherer.Gather()
	if err != nil {
		log.Debug("Failed to gather RPC metrics", zap.Error(err))
		return
	}
	for _, family := range families {
		if family.GetName() != "dumpfun_rpc_requests_total" {
			continue
		}
		var attempts float64
		for _, metric := range family.GetMetric() {
			attempts += metric.GetCounter().GetValue()
		}
		log.Debug("RPC usage", zap.Float64("attempts", attempts))
	}
}
