package curve

import (
	"fmt"

	"lukechampine.com/uint128"
)

// QuoteToBase returns how many base tokens quoteAmount lamports buy.
//
// The buy fee is charged on top of the net cost, so it is removed from the
// input with floor((amount * 10000) / (10000 + fee)) before the constant
// product step. The output is clamped to the virtual base reserve.
func QuoteToBase(cfg GlobalConfig, snap Snapshot, quoteAmount uint64) uint64 {
	if quoteAmount == 0 {
		return 0
	}

	state := snap.Resolve(cfg)
	if state.Completed() {
		return 0
	}

	feeDenominator := uint128.From64(cfg.PlatformBuyFeeBps).Add64(BasisPointsDenominator)
	netQuoteIn := uint128.From64(quoteAmount).Mul64(BasisPointsDenominator).Div(feeDenominator)

	// netQuoteIn <= quoteAmount, so the product fits into 128 bits.
	baseOut := netQuoteIn.Mul64(state.VirtualBaseReserve).
		Div(uint128.From64(state.VirtualQuoteReserve).Add(netQuoteIn))

	if baseOut.Cmp64(state.VirtualBaseReserve) > 0 {
		return state.VirtualBaseReserve
	}
	return baseOut.Lo
}

// BaseToQuoteForBuy returns the lamports, fee included, needed to buy
// baseAmount tokens. The amount is capped at the real base reserve and the
// raw cost is biased up by one lamport so the buyer is never undercharged.
//
// Buying the whole virtual reserve has no finite price and fails with
// ErrInvalidState.
func BaseToQuoteForBuy(cfg GlobalConfig, snap Snapshot, baseAmount uint64) (uint64, error) {
	if baseAmount == 0 {
		return 0, nil
	}

	state := snap.Resolve(cfg)
	if state.Completed() {
		return 0, nil
	}

	capped := min(baseAmount, state.RealBaseReserve)
	if state.VirtualBaseReserve <= capped {
		return 0, fmt.Errorf("buy %d of virtual base reserve %d: %w",
			capped, state.VirtualBaseReserve, ErrInvalidState)
	}

	rawCost := uint128.From64(capped).Mul64(state.VirtualQuoteReserve).
		Div64(state.VirtualBaseReserve - capped).
		Add64(1)
	if rawCost.Hi != 0 {
		return 0, fmt.Errorf("buy cost for %d base: %w", capped, ErrOverflow)
	}

	total := rawCost.Add(feeU128(rawCost.Lo, cfg.PlatformBuyFeeBps))
	if total.Hi != 0 {
		return 0, fmt.Errorf("buy cost with fee for %d base: %w", capped, ErrOverflow)
	}
	return total.Lo, nil
}

// BaseToQuoteForSell returns the lamports received, after the sell fee, for
// selling baseAmount tokens into an existing curve.
//
// The result is not clamped to RealQuoteReserve; the program rejects a sell
// it cannot pay out.
func BaseToQuoteForSell(cfg GlobalConfig, state CurveState, baseAmount uint64) (uint64, error) {
	if baseAmount == 0 {
		return 0, nil
	}
	if state.Completed() {
		return 0, nil
	}

	// rawProceeds < VirtualQuoteReserve, so it always fits into a u64.
	rawProceeds := uint128.From64(baseAmount).Mul64(state.VirtualQuoteReserve).
		Div(uint128.From64(state.VirtualBaseReserve).Add64(baseAmount))

	fee := feeU128(rawProceeds.Lo, cfg.PlatformSellFeeBps)
	if fee.Cmp(rawProceeds) > 0 {
		return 0, fmt.Errorf("sell fee %s exceeds proceeds %s: %w", fee, rawProceeds, ErrInvalidState)
	}
	return rawProceeds.Sub(fee).Lo, nil
}
