package platform

import (
	"fmt"
	"strings"

	"github.com/noriapi/prevent-alt-win-menu/keyevent"
)

// vkNames maps configuration key names to virtual-key codes usable as a
// dummy key. Only keys with no visible effect belong here: the reserved
// no-op key and the extended function keys absent from real keyboards.
var vkNames = map[string]keyevent.VirtualKey{
	"none": keyevent.VKNone,
	"f13":  0x7C,
	"f14":  0x7D,
	"f15":  0x7E,
	"f16":  0x7F,
	"f17":  0x80,
	"f18":  0x81,
	"f19":  0x82,
	"f20":  0x83,
	"f21":  0x84,
	"f22":  0x85,
	"f23":  0x86,
	"f24":  0x87,
}

// VKFromName resolves a dummy-key name from the configuration file to
// its virtual-key code.
func VKFromName(name string) (keyevent.VirtualKey, error) {
	vk, ok := vkNames[strings.ToLower(strings.TrimSpace(name))]
	if !ok {
		return 0, fmt.Errorf("unknown dummy key: %s", name)
	}
	return vk, nil
}
