// Package timer implements behavior timers and the ActionState scratch
// memory behaviors borrow while they own an agent's action. ActionState's
// fixed-size registers are addressed positionally by behavior convention
// (see pidctrl's ring buffer for the other instance of this fixed-arity
// addressing style).
package timer

import "tidewatch/vecmath"

// Action names a timed behavior, e.g. "cooldown", "pursuit-giveup".
type Action string

// Timer maps a TimerAction to the sim-time it was last started, if any.
// lastProgressed tracks which action Progress most recently restarted, so a
// switch to a different action forces a restart even if that action already
// has a stale record.
type Timer struct {
	records        map[Action]float64
	lastProgressed Action
	haveLast       bool
}

// New returns an empty Timer.
func New() *Timer {
	return &Timer{records: make(map[Action]float64)}
}

// Start records now as the start time for action.
func (t *Timer) Start(action Action, now float64) {
	t.records[action] = now
}

// Reset clears action's record, returning true iff a value was present.
func (t *Timer) Reset(action Action) bool {
	_, ok := t.records[action]
	if ok {
		delete(t.records, action)
	}
	return ok
}

// TimeOfLast returns the last recorded start time for action, if any.
func (t *Timer) TimeOfLast(action Action) (float64, bool) {
	v, ok := t.records[action]
	return v, ok
}

// Progress restarts the timer for action if the last action progressed was
// different, otherwise leaves the existing start time untouched.
func (t *Timer) Progress(action Action, now float64) {
	sameAsLast := t.haveLast && t.lastProgressed == action
	t.lastProgressed = action
	t.haveLast = true

	if sameAsLast {
		if _, ok := t.records[action]; ok {
			return
		}
	}
	t.Start(action, now)
}

// TimeSinceExceeds reports true if action has no record, or now minus its
// last start exceeds timeout.
func (t *Timer) TimeSinceExceeds(action Action, now, timeout float64) bool {
	last, ok := t.records[action]
	if !ok {
		return true
	}
	return now-last > timeout
}

// TimeoutElapsed returns (didReset, true) when timeout has been exceeded
// (also re-arming via Progress), or (false, false) when still running (and
// also calls Progress).
func (t *Timer) TimeoutElapsed(action Action, now, timeout float64) (didReset bool, elapsed bool) {
	if t.TimeSinceExceeds(action, now, timeout) {
		didReset = t.Reset(action)
		t.Progress(action, now)
		return didReset, true
	}
	t.Progress(action, now)
	return false, false
}

// ActionState is the fixed-size scratch register set a behavior borrows for
// the duration it owns the agent's action. Reset is the owning behavior's
// responsibility on transition.
type ActionState struct {
	Timers      [5]float64
	Counters    [5]float64
	IntCounters [5]uint8
	Conditions  [5]bool
	Positions   [5]*vecmath.Vec3
	Initialized bool
}

// Reset zeroes every register and clears Initialized.
func (s *ActionState) Reset() {
	*s = ActionState{}
}
