package curve

// GlobalConfig is the part of the program's global account that drives pricing.
// It is read-only for the duration of a quote.
type GlobalConfig struct {
	PlatformBuyFeeBps          uint64
	PlatformSellFeeBps         uint64
	InitialVirtualQuoteReserve uint64
	InitialVirtualBaseSupply   uint64
}

// CurveState is a snapshot of one token's bonding curve account.
// Quote amounts are lamports, base amounts are raw token units.
type CurveState struct {
	VirtualQuoteReserve uint64
	VirtualBaseReserve  uint64
	RealQuoteReserve    uint64
	RealBaseReserve     uint64
	TotalBaseSupply     uint64
	IsCompleted         bool
}

// NewCurveState returns the reserves a curve starts with before its first trade.
// The result is never persisted; it only lets callers price a curve that has
// not been created on chain yet.
func NewCurveState(cfg GlobalConfig) CurveState {
	return CurveState{
		VirtualQuoteReserve: cfg.InitialVirtualQuoteReserve,
		VirtualBaseReserve:  cfg.InitialVirtualBaseSupply,
		RealQuoteReserve:    0,
		RealBaseReserve:     cfg.InitialVirtualBaseSupply,
		TotalBaseSupply:     cfg.InitialVirtualBaseSupply,
		IsCompleted:         false,
	}
}

// Completed reports whether the curve has migrated. The flag and the zero
// reserve sentinel are both checked because a snapshot may be stale.
func (s CurveState) Completed() bool {
	return s.IsCompleted || s.VirtualBaseReserve == 0 || s.VirtualQuoteReserve == 0
}

// Phase is the lifecycle position of a curve as seen by the SDK.
type Phase int

const (
	// PhaseAbsent means no curve account exists yet.
	PhaseAbsent Phase = iota
	// PhaseActive means the curve is trading.
	PhaseActive
	// PhaseCompleted means the curve migrated; every quote is zero.
	PhaseCompleted
)

func (p Phase) String() string {
	switch p {
	case PhaseAbsent:
		return "absent"
	case PhaseActive:
		return "active"
	case PhaseCompleted:
		return "completed"
	default:
		return "unknown"
	}
}

// Snapshot is either Absent (the curve account does not exist yet) or an
// Active curve state. The zero value is Absent.
type Snapshot struct {
	state   CurveState
	present bool
}

// Absent returns a snapshot for a curve that has not been created.
func Absent() Snapshot {
	return Snapshot{}
}

// Active wraps an on-chain curve state.
func Active(state CurveState) Snapshot {
	return Snapshot{state: state, present: true}
}

// IsAbsent reports whether the curve account is missing.
func (s Snapshot) IsAbsent() bool {
	return !s.present
}

// State returns the wrapped state and whether it was present.
func (s Snapshot) State() (CurveState, bool) {
	return s.state, s.present
}

// Resolve returns the wrapped state, synthesizing the initial one for an
// absent curve.
func (s Snapshot) Resolve(cfg GlobalConfig) CurveState {
	if !s.present {
		return NewCurveState(cfg)
	}
	return s.state
}

// Phase reports where the snapshot sits in the Absent -> Active -> Completed lifecycle.
func (s Snapshot) Phase() Phase {
	switch {
	case !s.present:
		return PhaseAbsent
	case s.state.Completed():
		return PhaseCompleted
	default:
		return PhaseActive
	}
}
