//go:build windows

package platform

import (
	"fmt"
	"unsafe"

	"github.com/noriapi/prevent-alt-win-menu/keyevent"
)

var sendInput = user32.NewProc("SendInput")

const (
	inputKeyboard  = 1
	keyeventfKeyup = 0x0002
)

type keyboardInput struct {
	wVk         uint16
	wScan       uint16
	dwFlags     uint32
	time        uint32
	dwExtraInfo uintptr
}

type input struct {
	inputType uint32
	ki        keyboardInput
	padding   [8]byte // Padding to match C struct size
}

// sendKeyUp emits a single KEYEVENTF_KEYUP for vk via SendInput. The
// release is what makes Windows attribute the preceding modifier to a
// hotkey instead of a menu-activation gesture.
func sendKeyUp(vk keyevent.VirtualKey) error {
	inputs := []input{
		{
			inputType: inputKeyboard,
			ki: keyboardInput{
				wVk:     uint16(vk),
				dwFlags: keyeventfKeyup,
			},
		},
	}

	ret, _, err := sendInput.Call(
		uintptr(len(inputs)),
		uintptr(unsafe.Pointer(&inputs[0])),
		unsafe.Sizeof(inputs[0]),
	)
	if int(ret) != len(inputs) {
		return fmt.Errorf("SendInput consumed %d of %d events: %w", ret, len(inputs), err)
	}
	return nil
}
