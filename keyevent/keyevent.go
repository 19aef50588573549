// Package keyevent defines the keyboard event model shared by the hook,
// the hold tracker, and the suppression engine. Events are plain values
// decoded once at the OS boundary; nothing in this package touches the OS.
package keyevent

import (
	"fmt"
	"time"
)

// VirtualKey is a Windows virtual-key code.
type VirtualKey uint16

// Virtual-key codes this package cares about.
const (
	VKMenu  VirtualKey = 0x12 // Alt (generic)
	VKLWin  VirtualKey = 0x5B
	VKRWin  VirtualKey = 0x5C
	VKLMenu VirtualKey = 0xA4 // Left Alt
	VKRMenu VirtualKey = 0xA5 // Right Alt
	VKNone  VirtualKey = 0xFF // reserved no-op key, safe to inject
)

// Message is the raw keystroke message kind delivered to a low-level
// keyboard hook. Only the four keystroke messages are valid.
type Message uint32

const (
	MessageKeyDown    Message = 0x0100 // WM_KEYDOWN
	MessageKeyUp      Message = 0x0101 // WM_KEYUP
	MessageSysKeyDown Message = 0x0104 // WM_SYSKEYDOWN
	MessageSysKeyUp   Message = 0x0105 // WM_SYSKEYUP
)

// MessageFromWParam converts a hook wParam to a Message. The second
// return value is false when the value is not one of the four keystroke
// messages.
func MessageFromWParam(wParam uintptr) (Message, bool) {
	switch m := Message(wParam); m {
	case MessageKeyDown, MessageKeyUp, MessageSysKeyDown, MessageSysKeyUp:
		return m, true
	}
	return 0, false
}

// KeyState collapses the four keystroke messages down to press/release.
type KeyState int

const (
	Down KeyState = iota
	Up
)

func (s KeyState) String() string {
	if s == Down {
		return "down"
	}
	return "up"
}

// KeyState maps the message to Down or Up. It panics on a Message value
// outside the four keystroke kinds: silently defaulting would leave the
// key state unverifiable, so an unknown kind is treated as a broken
// OS contract rather than tolerated.
func (m Message) KeyState() KeyState {
	switch m {
	case MessageKeyDown, MessageSysKeyDown:
		return Down
	case MessageKeyUp, MessageSysKeyUp:
		return Up
	}
	panic(fmt.Sprintf("keyevent: unknown keyboard message 0x%04X", uint32(m)))
}

// Trigger identifies which menu-activating modifier a key belongs to.
// Left and right variants map to the same trigger.
type Trigger int

const (
	Win Trigger = iota
	Alt
)

func (t Trigger) String() string {
	if t == Win {
		return "win"
	}
	return "alt"
}

// KeyEvent is a single key transition observed by the global hook.
// Time is the event's millisecond tick; it wraps at 2^32 and must only
// be compared with wraparound-safe subtraction (see DurationSince).
type KeyEvent struct {
	VkCode   uint32
	ScanCode uint32
	Flags    uint32
	Time     uint32
	Message  Message
}

// VirtualKey returns the event's virtual-key code.
func (e KeyEvent) VirtualKey() VirtualKey {
	return VirtualKey(e.VkCode)
}

// State reports whether the event is a press or a release.
func (e KeyEvent) State() KeyState {
	return e.Message.KeyState()
}

// DurationSince returns the time elapsed from earlier to e. The
// subtraction is performed in uint32 so a tick counter that wrapped
// between the two events still yields the correct small difference.
func (e KeyEvent) DurationSince(earlier KeyEvent) time.Duration {
	millis := e.Time - earlier.Time
	return time.Duration(millis) * time.Millisecond
}

// Classify maps the event's key to a Trigger. The second return value
// is false for keys that are not a watched modifier.
func Classify(e KeyEvent) (Trigger, bool) {
	switch e.VirtualKey() {
	case VKLWin, VKRWin:
		return Win, true
	case VKMenu, VKLMenu, VKRMenu:
		return Alt, true
	}
	return 0, false
}
