//go:build !windows

package platform

import "github.com/noriapi/prevent-alt-win-menu/keyevent"

func startHook() (<-chan keyevent.KeyEvent, error) {
	return nil, ErrUnsupported
}

func sendKeyUp(vk keyevent.VirtualKey) error {
	return ErrUnsupported
}
