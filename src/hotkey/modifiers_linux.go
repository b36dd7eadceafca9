//go:build linux

package hotkey

import hk "golang.design/x/hotkey"

// X11 conventionally maps Alt to Mod1 and Super to Mod4.
var modCodes = map[string]hk.Modifier{
	"ctrl":  hk.ModCtrl,
	"shift": hk.ModShift,
	"alt":   hk.Mod1,
	"cmd":   hk.Mod4,
}
