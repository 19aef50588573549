// Package platform wraps the Windows pieces the suppressor needs: the
// system-wide low-level keyboard hook that produces events and the
// SendInput call that injects the synthetic key-up. Raw hook parameters
// are decoded into keyevent values here, once, before they reach any
// other package.
package platform

import (
	"errors"
	"sync/atomic"

	"github.com/noriapi/prevent-alt-win-menu/keyevent"
)

var (
	// ErrAlreadyStarted is returned when the global keyboard hook has
	// already been installed by this process.
	ErrAlreadyStarted = errors.New("keyboard hook already started")

	// ErrHookThread is returned when the hook thread terminated before
	// confirming that registration succeeded.
	ErrHookThread = errors.New("keyboard hook thread terminated unexpectedly")

	// ErrUnsupported is returned on platforms without a global
	// keyboard hook implementation.
	ErrUnsupported = errors.New("global keyboard hook is only supported on windows")
)

// hookGuard is the single registration point for the process. The hook
// binds a package-level sender for the OS callback, so a second
// installation must fail loudly instead of silently replacing the first.
var hookGuard guard

type guard struct {
	active atomic.Bool
}

func (g *guard) tryAcquire() bool {
	return g.active.CompareAndSwap(false, true)
}

func (g *guard) release() {
	g.active.Store(false)
}

// StartHook installs the global keyboard hook on a dedicated OS thread
// and returns the channel its events arrive on. The channel preserves
// arrival order and is never closed; the hook stays installed until the
// process exits.
//
// StartHook returns ErrAlreadyStarted if a hook from this process is
// already active, and a registration error if the OS rejects the hook.
// A registration failure leaves no threads running.
func StartHook() (<-chan keyevent.KeyEvent, error) {
	if !hookGuard.tryAcquire() {
		return nil, ErrAlreadyStarted
	}

	events, err := startHook()
	if err != nil {
		hookGuard.release()
		return nil, err
	}
	return events, nil
}

// KeyInjector injects synthetic keyboard input through the OS.
type KeyInjector struct{}

// NewInjector returns the process-wide key injector.
func NewInjector() KeyInjector {
	return KeyInjector{}
}

// SendKeyUp emits a single synthetic key-release for vk. It returns an
// error if the OS consumed fewer input events than were submitted.
func (KeyInjector) SendKeyUp(vk keyevent.VirtualKey) error {
	return sendKeyUp(vk)
}
