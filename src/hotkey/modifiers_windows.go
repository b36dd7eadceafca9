//go:build windows

package hotkey

import hk "golang.design/x/hotkey"

var modCodes = map[string]hk.Modifier{
	"ctrl":  hk.ModCtrl,
	"shift": hk.ModShift,
	"alt":   hk.ModAlt,
	"cmd":   hk.ModWin,
}
