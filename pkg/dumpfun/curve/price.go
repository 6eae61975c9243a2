package curve

import "github.com/shopspring/decimal"

// QuoteDecimals is the number of decimals of the quote asset (SOL).
const QuoteDecimals = 9

// pricePrecision is the number of decimal places kept when dividing reserves.
const pricePrecision = 18

// ToUIAmount converts a raw integer amount into whole units.
func ToUIAmount(raw uint64, decimals int32) decimal.Decimal {
	return decimal.NewFromUint64(raw).Shift(-decimals)
}

// SpotPrice returns the marginal price of one whole base token in whole quote
// units, read off the virtual reserves. It is for display only and is never
// used to build a quote. A completed curve has no price.
func SpotPrice(state CurveState, baseDecimals int32) decimal.Decimal {
	if state.Completed() {
		return decimal.Zero
	}
	quote := ToUIAmount(state.VirtualQuoteReserve, QuoteDecimals)
	base := ToUIAmount(state.VirtualBaseReserve, baseDecimals)
	return quote.DivRound(base, pricePrecision)
}

// MarketCap values the total base supply at the current spot price.
func MarketCap(state CurveState, baseDecimals int32) decimal.Decimal {
	return SpotPrice(state, baseDecimals).Mul(ToUIAmount(state.TotalBaseSupply, baseDecimals))
}
