package messages

// Events exchanged between the desktop adapters (tray, hotkey) and the event
// loop. This package has no platform dependencies so the loop can be built and
// tested without a desktop.

// HotkeyPressed is one activation of the registered combo.
type HotkeyPressed struct {
	Combo string // e.g., "Ctrl+Shift+Q"
}

// MenuEvent is a click on one of the tray menu items.
type MenuEvent int

const (
	MenuEditConfig MenuEvent = iota + 1
	MenuQuit
)

func (e MenuEvent) String() string {
	switch e {
	case MenuEditConfig:
		return "edit-config"
	case MenuQuit:
		return "quit"
	default:
		return "unknown"
	}
}

const (
	AppTitle    = "Translate Tool"
	BusyTooltip = AppTitle + ": translating..."
)

// IdleTooltip is the hover text shown between translations.
func IdleTooltip(hotkey string) string {
	return AppTitle + " - Press " + hotkey + " to translate"
}
