// Package suppress decides what happens when a watched modifier key is
// pressed and released in isolation. Each completed hold is handed to a
// configurable callback; when the callback names a dummy key, a
// synthetic release of that key is injected so Windows treats the
// modifier as part of a hotkey and keeps the Start menu or the window
// menu bar closed.
package suppress

import (
	"log/slog"
	"time"

	"github.com/noriapi/prevent-alt-win-menu/keyevent"
	"github.com/noriapi/prevent-alt-win-menu/tracker"
)

// OnReleasedFunc is invoked once per completed hold. Returning a
// virtual key (and true) injects a synthetic release of that key;
// returning false leaves the OS default menu behavior alone.
type OnReleasedFunc func(hold tracker.Hold) (keyevent.VirtualKey, bool)

// AlwaysSuppress returns a callback that suppresses every hold using
// the reserved no-op key. This is the default policy.
func AlwaysSuppress() OnReleasedFunc {
	return func(tracker.Hold) (keyevent.VirtualKey, bool) {
		return keyevent.VKNone, true
	}
}

// Threshold returns a callback that only suppresses holds longer than
// min. Short taps keep their normal menu behavior.
func Threshold(min time.Duration) OnReleasedFunc {
	return func(hold tracker.Hold) (keyevent.VirtualKey, bool) {
		if hold.Duration() > min {
			return keyevent.VKNone, true
		}
		return 0, false
	}
}

// Decision records the outcome for one completed hold. It is what
// observers (logging, storage, the dashboard feed) see.
type Decision struct {
	Trigger    keyevent.Trigger
	Hold       tracker.Hold
	Suppressed bool
	Err        error // non-nil when suppression was wanted but injection failed
}

// Duration returns the hold's press-to-release duration.
func (d Decision) Duration() time.Duration {
	return d.Hold.Duration()
}

// Injector sends synthetic keyboard input. platform.KeyInjector is the
// production implementation; tests substitute fakes.
type Injector interface {
	SendKeyUp(vk keyevent.VirtualKey) error
}

// Config controls the engine's behavior.
type Config struct {
	// OnReleased decides per hold whether to suppress and with which
	// dummy key. Nil means AlwaysSuppress().
	OnReleased OnReleasedFunc

	// OnDecision, when set, observes every completed hold after the
	// suppression attempt. It runs on the processing goroutine and
	// should return quickly.
	OnDecision func(Decision)
}

// Engine runs the hold tracker and the suppression decision for a
// single ordered event stream. It owns its tracker exclusively; all
// methods must be called from one goroutine.
type Engine struct {
	onReleased OnReleasedFunc
	onDecision func(Decision)
	tracker    *tracker.Tracker
	injector   Injector
}

// NewEngine builds an engine with the given policy and injector.
func NewEngine(cfg Config, injector Injector) *Engine {
	onReleased := cfg.OnReleased
	if onReleased == nil {
		onReleased = AlwaysSuppress()
	}
	return &Engine{
		onReleased: onReleased,
		onDecision: cfg.OnDecision,
		tracker:    tracker.New(),
		injector:   injector,
	}
}

// HandleEvent advances the tracker by one event and, when that
// completes a hold, runs the suppression decision synchronously.
func (e *Engine) HandleEvent(ev keyevent.KeyEvent) {
	trigger, hold, done := e.tracker.Update(ev)
	if !done {
		return
	}

	decision := Decision{Trigger: trigger, Hold: hold}

	if vk, ok := e.onReleased(hold); ok {
		// Tracker state is already cleared, so a failed injection
		// never corrupts the pairing of later holds. Report and
		// move on; there is no retry.
		if err := e.injector.SendKeyUp(vk); err != nil {
			decision.Err = err
			slog.Error("Failed to prevent menu", "trigger", trigger.String(), "error", err)
		} else {
			decision.Suppressed = true
			slog.Info("Prevented menu", "trigger", trigger.String(), "duration", hold.Duration())
		}
	} else {
		slog.Info("Key released without suppression", "trigger", trigger.String(), "duration", hold.Duration())
	}

	if e.onDecision != nil {
		e.onDecision(decision)
	}
}

// Run consumes events in arrival order until the channel is closed.
// Each event is fully processed, including any injection, before the
// next one is taken.
func (e *Engine) Run(events <-chan keyevent.KeyEvent) {
	for ev := range events {
		e.HandleEvent(ev)
	}
}
