// Package tracker pairs modifier presses with their releases.
//
// The tracker watches the raw event stream for "pure taps" of the Win or
// Alt key: a press followed by a release with no other key activity in
// between. Each trigger has its own pending slot, so a Win hold and an
// Alt hold can be in flight at the same time. Any event that is not a
// watched modifier invalidates both holds, because the OS would no
// longer treat the sequence as a standalone modifier tap.
package tracker

import (
	"time"

	"github.com/noriapi/prevent-alt-win-menu/keyevent"
)

// Hold is a matched press/release pair for one trigger.
//
// Press and Release may carry different virtual-key codes: if LAlt goes
// down, then RAlt goes down, then LAlt comes up, the hold pairs the
// release with the first unmatched press rather than requiring the same
// left/right variant.
type Hold struct {
	Press   keyevent.KeyEvent
	Release keyevent.KeyEvent
}

// Duration returns the time between press and release, computed with
// wraparound-safe tick subtraction.
func (h Hold) Duration() time.Duration {
	return h.Release.DurationSince(h.Press)
}

// slot holds at most one unmatched press for a single trigger.
type slot struct {
	press   keyevent.KeyEvent
	pending bool
}

func (s *slot) reset() {
	s.pending = false
}

func (s *slot) update(ev keyevent.KeyEvent) (Hold, bool) {
	switch ev.State() {
	case keyevent.Down:
		// First press in a run is authoritative; repeats while the
		// key is held (or the other side going down) are ignored.
		if !s.pending {
			s.press = ev
			s.pending = true
		}
		return Hold{}, false
	default:
		if !s.pending {
			// Release with no matching press, e.g. the key was
			// already down when tracking started.
			return Hold{}, false
		}
		s.pending = false
		return Hold{Press: s.press, Release: ev}, true
	}
}

// Tracker is the per-trigger hold state machine. It is not safe for
// concurrent use; the processing loop owns it exclusively.
type Tracker struct {
	win slot
	alt slot
}

// New returns a Tracker with both slots empty.
func New() *Tracker {
	return &Tracker{}
}

func (t *Tracker) slotFor(trigger keyevent.Trigger) *slot {
	if trigger == keyevent.Win {
		return &t.win
	}
	return &t.alt
}

// Update advances the state machine by one event. It returns a completed
// Hold (and the trigger it belongs to) exactly when a release matches a
// pending press. A non-trigger event clears the pending state for both
// triggers and never produces a hold.
func (t *Tracker) Update(ev keyevent.KeyEvent) (keyevent.Trigger, Hold, bool) {
	trigger, ok := keyevent.Classify(ev)
	if !ok {
		t.win.reset()
		t.alt.reset()
		return 0, Hold{}, false
	}

	hold, done := t.slotFor(trigger).update(ev)
	return trigger, hold, done
}
