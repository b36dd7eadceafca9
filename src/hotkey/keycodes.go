package hotkey

import (
	"strings"

	gohook "github.com/robotn/gohook"
)

// hookKeycodeOverrides holds names gohook.Keycode lacks or spells with a
// different libuiohook virtual code. Modifiers list both sides.
var hookKeycodeOverrides = map[string][]uint16{
	"ctrl":  {0x001D, 0x0E1D},
	"shift": {0x002A, 0x0036},
	"alt":   {0x0038, 0x0E38},
	"cmd":   {0x0E5B, 0x0E5C},

	"f11": {0x0057},
	"f12": {0x0058},
	"f13": {0x005B}, "f14": {0x005C}, "f15": {0x005D}, "f16": {0x0063},
	"f17": {0x0064}, "f18": {0x0065}, "f19": {0x0066}, "f20": {0x0067},
	"f21": {0x0068}, "f22": {0x0069}, "f23": {0x006A}, "f24": {0x006B},

	"return":    {0x001C},
	"escape":    {0x0001},
	"backspace": {0x000E},
	"delete":    {0x0E53},
	"del":       {0x0E53},
	"insert":    {0x0E52},
	"ins":       {0x0E52},
	"home":      {0x0E47},
	"end":       {0x0E4F},
	"pageup":    {0x0E49},
	"pgup":      {0x0E49},
	"pagedown":  {0x0E51},
	"pgdn":      {0x0E51},
}

// hookKeycodes maps a key name to the keycodes gohook reports in Event.Keycode
// on every platform.
func hookKeycodes(keyName string) []uint16 {
	keyName = strings.ToLower(strings.TrimSpace(keyName))
	if codes, ok := hookKeycodeOverrides[keyName]; ok {
		return codes
	}
	if code, ok := gohook.Keycode[keyName]; ok {
		return []uint16{code}
	}
	return nil
}
