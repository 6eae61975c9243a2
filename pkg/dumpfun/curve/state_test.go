package curve

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func testConfig() GlobalConfig {
	return GlobalConfig{
		PlatformBuyFeeBps:          100,
		PlatformSellFeeBps:         100,
		InitialVirtualQuoteReserve: 30_000_000_000,
		InitialVirtualBaseSupply:   1_073_000_000_000_000,
	}
}

func TestNewCurveState(t *testing.T) {
	cfg := testConfig()
	state := NewCurveState(cfg)

	assert.Equal(t, cfg.InitialVirtualQuoteReserve, state.VirtualQuoteReserve)
	assert.Equal(t, cfg.InitialVirtualBaseSupply, state.VirtualBaseReserve)
	assert.Equal(t, cfg.InitialVirtualBaseSupply, state.RealBaseReserve)
	assert.Equal(t, cfg.InitialVirtualBaseSupply, state.TotalBaseSupply)
	assert.Zero(t, state.RealQuoteReserve)
	assert.False(t, state.IsCompleted)
	assert.False(t, state.Completed())
}

func TestCurveStateCompleted(t *testing.T) {
	base := NewCurveState(testConfig())

	tests := []struct {
		name   string
		mutate func(*CurveState)
		want   bool
	}{
		{name: "fresh", mutate: func(*CurveState) {}, want: false},
		{name: "flag set", mutate: func(s *CurveState) { s.IsCompleted = true }, want: true},
		{name: "base drained", mutate: func(s *CurveState) { s.VirtualBaseReserve = 0 }, want: true},
		{name: "quote drained", mutate: func(s *CurveState) { s.VirtualQuoteReserve = 0 }, want: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			state := base
			tt.mutate(&state)
			assert.Equal(t, tt.want, state.Completed())
		})
	}
}

func TestSnapshot(t *testing.T) {
	cfg := testConfig()

	t.Run("zero value is absent", func(t *testing.T) {
		var snap Snapshot
		assert.True(t, snap.IsAbsent())
		assert.Equal(t, PhaseAbsent, snap.Phase())
		assert.Equal(t, NewCurveState(cfg), snap.Resolve(cfg))

		_, ok := snap.State()
		assert.False(t, ok)
	})

	t.Run("active keeps state", func(t *testing.T) {
		state := CurveState{
			VirtualQuoteReserve: 31_000_000_000,
			VirtualBaseReserve:  1_000_000_000_000_000,
			RealQuoteReserve:    1_000_000_000,
			RealBaseReserve:     900_000_000_000_000,
			TotalBaseSupply:     1_073_000_000_000_000,
		}
		snap := Active(state)

		assert.False(t, snap.IsAbsent())
		assert.Equal(t, PhaseActive, snap.Phase())
		assert.Equal(t, state, snap.Resolve(cfg))

		got, ok := snap.State()
		assert.True(t, ok)
		assert.Equal(t, state, got)
	})

	t.Run("completed", func(t *testing.T) {
		state := NewCurveState(cfg)
		state.IsCompleted = true
		assert.Equal(t, PhaseCompleted, Active(state).Phase())
	})
}

func TestPhaseString(t *testing.T) {
	assert.Equal(t, "absent", PhaseAbsent.String())
	assert.Equal(t, "active", PhaseActive.String())
	assert.Equal(t, "completed", PhaseCompleted.String())
	assert.Equal(t, "unknown", Phase(42).String())
}
