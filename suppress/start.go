package suppress

import (
	"fmt"

	"github.com/noriapi/prevent-alt-win-menu/keyevent"
	"github.com/noriapi/prevent-alt-win-menu/platform"
)

// Start installs the global keyboard hook and begins suppressing menu
// activation in the background. It is the whole library in one call:
// events flow from the hook thread, through the hold tracker, into the
// configured decision callback.
//
// Start returns platform.ErrAlreadyStarted if the hook is already
// installed by this process, and a registration error if the OS refuses
// the hook; in both cases nothing keeps running. There is no stop: the
// hook and both background threads live until process exit.
func Start(cfg Config) error {
	events, err := platform.StartHook()
	if err != nil {
		return fmt.Errorf("start keyboard hook: %w", err)
	}

	StartHandler(events, cfg)
	return nil
}

// StartHandler runs the suppression engine against an arbitrary event
// source on a new goroutine. Integrators that already observe keyboard
// events through other means can feed them here instead of installing
// the hook via Start. The goroutine exits when events is closed.
func StartHandler(events <-chan keyevent.KeyEvent, cfg Config) {
	engine := NewEngine(cfg, platform.NewInjector())
	go engine.Run(events)
}
