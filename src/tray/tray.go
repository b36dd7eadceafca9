package tray

import (
	"sync"

	"github.com/getlantern/systray"

	"translate-tool/src/messages"
)

// Tray owns the status icon and its two menu items. Clicks are forwarded to
// Events in order; the forwarder blocks while the consumer is busy.
type Tray struct {
	events chan messages.MenuEvent

	mu      sync.Mutex
	tooltip string
}

// Run blocks on the platform UI loop. onReady receives the tray once the icon
// exists and must not block.
func Run(onReady func(*Tray), onExit func()) {
	t := &Tray{events: make(chan messages.MenuEvent, 1)}
	systray.Run(func() {
		t.setup()
		onReady(t)
	}, onExit)
}

func (t *Tray) setup() {
	systray.SetIcon(Icon())
	systray.SetTitle(messages.AppTitle)
	systray.SetTooltip(messages.AppTitle)

	mEdit := systray.AddMenuItem("Edit Config", "Open the configuration file")
	systray.AddSeparator()
	mQuit := systray.AddMenuItem("Quit", "Quit the application")

	go func() {
		for {
			select {
			case <-mEdit.ClickedCh:
				t.send(messages.MenuEditConfig)
			case <-mQuit.ClickedCh:
				t.send(messages.MenuQuit)
			}
		}
	}()
}

func (t *Tray) send(ev messages.MenuEvent) { t.events <- ev }

func (t *Tray) Events() <-chan messages.MenuEvent { return t.events }

// SetTooltip replaces the hover text and remembers it for Tooltip.
func (t *Tray) SetTooltip(text string) {
	t.mu.Lock()
	t.tooltip = text
	t.mu.Unlock()
	systray.SetTooltip(text)
}

func (t *Tray) Tooltip() string {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.tooltip
}

// Quit ends the UI loop; Run returns after onExit.
func (t *Tray) Quit() { systray.Quit() }
