package puzzle

// DefaultCooldown is the time, in seconds, between two turns.
const DefaultCooldown = 0.3

// MoveState holds the per-session turn counters.
type MoveState struct {
	MoveCount         int     // Cumulative, never decreases
	ActivePeriod      int     // Gating cadence and per-turn counter increment
	CooldownRemaining float64 // Seconds until the next turn may trigger
}

// NewMoveState returns the state of a fresh session.
func NewMoveState() MoveState {
	return MoveState{ActivePeriod: 1}
}

// Scheduler turns per-tick input samples into gated turns.
type Scheduler struct {
	Cooldown      float64 // Seconds to wait after a turn
	ClampDiagonal bool    // Keep only the dominant input axis
}

// NewScheduler creates a scheduler. A non-positive cooldown falls back to
// DefaultCooldown.
func NewScheduler(cooldown float64, clampDiagonal bool) Scheduler {
	if cooldown <= 0 {
		cooldown = DefaultCooldown
	}
	return Scheduler{Cooldown: cooldown, ClampDiagonal: clampDiagonal}
}

// Tick decays the cooldown by dt and samples the input.
// Returns the quantized direction and whether a turn should run now.
func (sc Scheduler) Tick(st *MoveState, dt float64, in Axis) (Vec, bool) {
	st.CooldownRemaining -= dt
	dir := Quantize(in, sc.ClampDiagonal)
	if dir.IsZero() || st.CooldownRemaining > 0 {
		return dir, false
	}
	return dir, true
}

// Arm restarts the cooldown after a turn.
func (sc Scheduler) Arm(st *MoveState) {
	st.CooldownRemaining = sc.Cooldown
}
