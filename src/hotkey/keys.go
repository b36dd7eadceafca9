package hotkey

import hk "golang.design/x/hotkey"

// keyCodes maps main key names to the register backend's key codes. The
// constants differ per platform, so the table is keyed by name.
var keyCodes = map[string]hk.Key{
	"a": hk.KeyA, "b": hk.KeyB, "c": hk.KeyC, "d": hk.KeyD, "e": hk.KeyE,
	"f": hk.KeyF, "g": hk.KeyG, "h": hk.KeyH, "i": hk.KeyI, "j": hk.KeyJ,
	"k": hk.KeyK, "l": hk.KeyL, "m": hk.KeyM, "n": hk.KeyN, "o": hk.KeyO,
	"p": hk.KeyP, "q": hk.KeyQ, "r": hk.KeyR, "s": hk.KeyS, "t": hk.KeyT,
	"u": hk.KeyU, "v": hk.KeyV, "w": hk.KeyW, "x": hk.KeyX, "y": hk.KeyY,
	"z": hk.KeyZ,

	"0": hk.Key0, "1": hk.Key1, "2": hk.Key2, "3": hk.Key3, "4": hk.Key4,
	"5": hk.Key5, "6": hk.Key6, "7": hk.Key7, "8": hk.Key8, "9": hk.Key9,

	"f1": hk.KeyF1, "f2": hk.KeyF2, "f3": hk.KeyF3, "f4": hk.KeyF4,
	"f5": hk.KeyF5, "f6": hk.KeyF6, "f7": hk.KeyF7, "f8": hk.KeyF8,
	"f9": hk.KeyF9, "f10": hk.KeyF10, "f11": hk.KeyF11, "f12": hk.KeyF12,

	"space":  hk.KeySpace,
	"enter":  hk.KeyReturn,
	"return": hk.KeyReturn,
	"esc":    hk.KeyEscape,
	"escape": hk.KeyEscape,
	"tab":    hk.KeyTab,
	"delete": hk.KeyDelete,
	"del":    hk.KeyDelete,
	"left":   hk.KeyLeft,
	"right":  hk.KeyRight,
	"up":     hk.KeyUp,
	"down":   hk.KeyDown,
}
