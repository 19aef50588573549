//go:build windows

package platform

import (
	"fmt"
	"runtime"
	"unsafe"

	"golang.org/x/sys/windows"

	"github.com/noriapi/prevent-alt-win-menu/keyevent"
)

var (
	user32           = windows.NewLazySystemDLL("user32.dll")
	setWindowsHookEx = user32.NewProc("SetWindowsHookExW")
	callNextHookEx   = user32.NewProc("CallNextHookEx")
	getMessage       = user32.NewProc("GetMessageW")
	translateMessage = user32.NewProc("TranslateMessage")
	dispatchMessage  = user32.NewProc("DispatchMessageW")
)

const (
	whKeyboardLL = 13
	hcAction     = 0
)

type kbdllhookstruct struct {
	vkCode      uint32
	scanCode    uint32
	flags       uint32
	time        uint32
	dwExtraInfo uintptr
}

type msg struct {
	hwnd    uintptr
	message uint32
	wParam  uintptr
	lParam  uintptr
	time    uint32
	pt      struct{ x, y int32 }
}

// hookQueue carries events from the hook proc to the consumer. It is
// written exactly once, by the hook thread, before registration; the
// hookGuard in StartHook guarantees no second writer exists.
var hookQueue *eventQueue

// startHook spawns the hook thread, waits for the registration
// handshake, and hands back the event channel.
func startHook() (<-chan keyevent.KeyEvent, error) {
	queue := newEventQueue()

	errCh := make(chan error, 1)
	go runHookThread(queue, errCh)

	err, ok := <-errCh
	if !ok {
		queue.closeIn()
		return nil, ErrHookThread
	}
	if err != nil {
		queue.closeIn()
		return nil, err
	}
	return queue.events(), nil
}

// runHookThread registers the low-level keyboard hook and pumps the
// blocking message loop until process exit. The hook proc is invoked by
// the OS on this same thread, inside getMessage.
func runHookThread(queue *eventQueue, errCh chan<- error) {
	defer close(errCh)

	runtime.LockOSThread()

	hookQueue = queue

	hook, _, err := setWindowsHookEx.Call(
		whKeyboardLL,
		windows.NewCallback(lowLevelKeyboardProc),
		0,
		0,
	)
	if hook == 0 {
		errCh <- fmt.Errorf("SetWindowsHookEx failed: %w", err)
		return
	}
	errCh <- nil

	var m msg
	for {
		ret, _, _ := getMessage.Call(uintptr(unsafe.Pointer(&m)), 0, 0, 0)
		if ret == 0 {
			return
		}
		translateMessage.Call(uintptr(unsafe.Pointer(&m)))
		dispatchMessage.Call(uintptr(unsafe.Pointer(&m)))
	}
}

// lowLevelKeyboardProc decodes each hook invocation into a KeyEvent and
// enqueues it. It must not block: a slow hook proc stalls keyboard
// delivery for every application on the system.
func lowLevelKeyboardProc(nCode int32, wParam uintptr, lParam uintptr) uintptr {
	if nCode == hcAction {
		kb := (*kbdllhookstruct)(unsafe.Pointer(lParam))

		message, ok := keyevent.MessageFromWParam(wParam)
		if !ok {
			// The hook contract only delivers the four keystroke
			// messages; anything else means our decoding no longer
			// matches the OS.
			panic(fmt.Sprintf("platform: unexpected keyboard hook message 0x%04X", wParam))
		}

		hookQueue.push(keyevent.KeyEvent{
			VkCode:   kb.vkCode,
			ScanCode: kb.scanCode,
			Flags:    kb.flags,
			Time:     kb.time,
			Message:  message,
		})
	}

	ret, _, _ := callNextHookEx.Call(0, uintptr(nCode), wParam, lParam)
	return ret
}
