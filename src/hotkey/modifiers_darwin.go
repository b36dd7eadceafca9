//go:build darwin

package hotkey

import hk "golang.design/x/hotkey"

var modCodes = map[string]hk.Modifier{
	"ctrl":  hk.ModCtrl,
	"shift": hk.ModShift,
	"alt":   hk.ModOption,
	"cmd":   hk.ModCmd,
}
