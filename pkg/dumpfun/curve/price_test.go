package curve

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

func TestToUIAmount(t *testing.T) {
	assert.Equal(t, "1.5", ToUIAmount(1_500_000_000, QuoteDecimals).String())
	assert.Equal(t, "1073000000", ToUIAmount(1_073_000_000_000_000, 6).String())
	assert.Equal(t, "0.000001", ToUIAmount(1, 6).String())
	assert.True(t, ToUIAmount(0, 6).IsZero())
}

func TestSpotPriceAndMarketCap(t *testing.T) {
	state := NewCurveState(testConfig())

	// 30 SOL / 1.073e9 tokens
	price := SpotPrice(state, 6)
	wantPrice := decimal.RequireFromString("0.000000027958993476")
	assert.True(t, wantPrice.Equal(price), "price %s", price)

	marketCap := MarketCap(state, 6)
	wantCap := decimal.RequireFromString("29.999999999748")
	assert.True(t, wantCap.Equal(marketCap), "market cap %s", marketCap)
}

func TestSpotPriceCompleted(t *testing.T) {
	state := NewCurveState(testConfig())
	state.IsCompleted = true

	assert.True(t, SpotPrice(state, 6).IsZero())
	assert.True(t, MarketCap(state, 6).IsZero())
}
