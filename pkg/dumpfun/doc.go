// Package dumpfun is a client for the token launch program: tokens are
// created on a constant-product bonding curve, traded against it, and migrate
// to a pool once the curve completes.
//
// This package provides:
//   - PDA derivation for the global config, bonding curve and pool authority accounts.
//   - Decoding of the global and bonding curve accounts.
//   - Builders for launch, buy, sell and create-and-buy instructions.
//   - A Client that fetches account state through any AccountReader.
//
// Pricing lives in the curve subpackage and has no I/O.
//
// Usage example:
//
//	rpcClient, err := solbc.NewClient([]string{rpcURL}, logger)
//	if err != nil {
//	    log.Fatal(err)
//	}
//
//	sdk := dumpfun.NewClient(rpcClient, logger)
//	state, err := sdk.FetchQuoteState(ctx, mint)
//	if err != nil {
//	    log.Fatal(err)
//	}
//
//	ixs, err := sdk.BuyInstructions(dumpfun.BuyParams{
//	    Global:          state.Global,
//	    Curve:           state.Curve,
//	    Mint:            mint,
//	    User:            user,
//	    QuoteAmount:     100_000_000,
//	    SlippagePercent: 1,
//	})
package dumpfun
