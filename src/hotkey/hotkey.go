package hotkey

import (
	"errors"
	"fmt"
	"runtime"
	"strings"
	"sync"

	gohook "github.com/robotn/gohook"
	hk "golang.design/x/hotkey"
	"go.uber.org/zap"

	"translate-tool/src/logutil"
	"translate-tool/src/messages"
)

const (
	BackendRegister = "register"
	BackendHook     = "hook"

	eventBuffer = 4
)

// Listener delivers hotkey activations until closed. Activations that arrive
// while the buffer is full are coalesced.
type Listener interface {
	Events() <-chan messages.HotkeyPressed
	Close() error
}

// Start registers combo with the chosen backend. A register-backend failure,
// typically another application owning the combo, is returned and is fatal to
// the caller.
func Start(backend, combo string, log *zap.SugaredLogger) (Listener, error) {
	if log == nil {
		log = logutil.Nop()
	}
	c, err := ParseCombo(combo)
	if err != nil {
		return nil, err
	}
	switch strings.ToLower(backend) {
	case "", BackendRegister:
		return startRegister(c, log)
	case BackendHook:
		return startHook(c, log)
	default:
		return nil, fmt.Errorf("unknown hotkey backend %q", backend)
	}
}

type registerListener struct {
	hk     *hk.Hotkey
	events chan messages.HotkeyPressed
	done   chan struct{}
	once   sync.Once
}

func startRegister(c Combo, log *zap.SugaredLogger) (Listener, error) {
	key, ok := keyCodes[c.Key]
	if !ok {
		return nil, fmt.Errorf("key %q cannot be registered; try HOTKEY_BACKEND=hook", c.Key)
	}
	mods := make([]hk.Modifier, 0, len(c.Mods))
	for _, m := range c.Mods {
		code, ok := modCodes[m]
		if !ok {
			return nil, fmt.Errorf("modifier %q is not supported on this platform", m)
		}
		mods = append(mods, code)
	}

	h := hk.New(mods, key)
	if err := h.Register(); err != nil {
		return nil, fmt.Errorf("register hotkey %s: %w", c, err)
	}
	log.Infow("Hotkey registered", "hotkey", c.String(), "backend", BackendRegister)

	l := &registerListener{hk: h, events: make(chan messages.HotkeyPressed, eventBuffer), done: make(chan struct{})}
	go func() {
		for {
			select {
			case <-l.done:
				return
			case _, ok := <-h.Keydown():
				if !ok {
					return
				}
				select {
				case l.events <- messages.HotkeyPressed{Combo: c.String()}:
				default:
					log.Debugw("Hotkey event coalesced", "hotkey", c.String())
				}
			}
		}
	}()
	return l, nil
}

func (l *registerListener) Events() <-chan messages.HotkeyPressed { return l.events }

func (l *registerListener) Close() error {
	var err error
	l.once.Do(func() {
		close(l.done)
		err = l.hk.Unregister()
	})
	return err
}

type keyState struct {
	name     string
	keycodes []uint16
	rawcodes []uint16
	pressed  bool
}

func (k keyState) matches(keycode, rawcode uint16, useRawcodes bool) bool {
	for _, kc := range k.keycodes {
		if kc == keycode {
			return true
		}
	}
	if useRawcodes {
		for _, rc := range k.rawcodes {
			if rc == rawcode {
				return true
			}
		}
	}
	return false
}

// hookListener watches raw key events and fires when every key of the combo is
// down. It cannot detect conflicts with other applications.
//
// Keys are matched by gohook's platform-independent keycode. Windows rawcodes
// are virtual-key codes and are matched as well there; other platforms report
// native codes (X keysyms, macOS key codes) that the rawcode table does not
// describe.
type hookListener struct {
	combo       string
	events      chan messages.HotkeyPressed
	log         *zap.SugaredLogger
	useRawcodes bool

	mu        sync.Mutex
	keyStates []keyState
	once      sync.Once
}

func newHookListener(c Combo, goos string, log *zap.SugaredLogger) (*hookListener, error) {
	l := &hookListener{
		combo:       c.String(),
		events:      make(chan messages.HotkeyPressed, eventBuffer),
		log:         log,
		useRawcodes: goos == "windows",
	}
	for _, keyName := range c.Names() {
		ks := keyState{name: keyName, keycodes: hookKeycodes(keyName)}
		if l.useRawcodes {
			ks.rawcodes = keyNameToRawcodes(keyName)
		}
		if len(ks.keycodes) == 0 && len(ks.rawcodes) == 0 {
			return nil, fmt.Errorf("key %q is not supported by the hook backend on %s", keyName, goos)
		}
		l.keyStates = append(l.keyStates, ks)
	}
	return l, nil
}

func startHook(c Combo, log *zap.SugaredLogger) (Listener, error) {
	l, err := newHookListener(c, runtime.GOOS, log)
	if err != nil {
		return nil, err
	}

	evChan := gohook.Start()
	if evChan == nil {
		return nil, errors.New("keyboard hook could not be started")
	}
	log.Infow("Hotkey hook started", "hotkey", l.combo, "backend", BackendHook)

	go func() {
		defer func() {
			if r := recover(); r != nil {
				log.Errorw("Panic in hotkey hook", "panic", r)
			}
		}()
		for ev := range evChan {
			l.handle(ev.Kind, ev.Keycode, ev.Rawcode)
		}
		log.Infow("Hotkey hook channel closed")
	}()
	return l, nil
}

// handle updates key state and emits an event when the combo completes.
func (l *hookListener) handle(kind uint8, keycode, rawcode uint16) {
	if kind != gohook.KeyDown && kind != gohook.KeyUp {
		return
	}

	l.mu.Lock()
	for i := range l.keyStates {
		if l.keyStates[i].matches(keycode, rawcode, l.useRawcodes) {
			l.keyStates[i].pressed = kind == gohook.KeyDown
		}
	}
	if kind != gohook.KeyDown {
		l.mu.Unlock()
		return
	}
	for i := range l.keyStates {
		if !l.keyStates[i].pressed {
			l.mu.Unlock()
			return
		}
	}
	for i := range l.keyStates {
		l.keyStates[i].pressed = false
	}
	l.mu.Unlock()

	select {
	case l.events <- messages.HotkeyPressed{Combo: l.combo}:
	default:
		l.log.Debugw("Hotkey event coalesced", "hotkey", l.combo)
	}
}

func (l *hookListener) Events() <-chan messages.HotkeyPressed { return l.events }

func (l *hookListener) Close() error {
	l.once.Do(gohook.End)
	return nil
}

// keyNameToRawcodes maps a key name to its Windows virtual key code rawcodes
// Returns a slice of rawcodes (e.g., both left and right variants for modifiers)
func keyNameToRawcodes(keyName string) []uint16 {
	keyName = strings.ToLower(strings.TrimSpace(keyName))

	switch keyName {
	// Modifier keys - return both left and right variants
	case "ctrl":
		return []uint16{162, 163} // VK_LCONTROL, VK_RCONTROL
	case "alt":
		return []uint16{164, 165} // VK_LMENU, VK_RMENU (MENU = Alt)
	case "shift":
		return []uint16{160, 161} // VK_LSHIFT, VK_RSHIFT
	case "win", "cmd", "super":
		return []uint16{91, 92} // VK_LWIN, VK_RWIN (Windows/Super/Cmd key)

	// Letter keys (A-Z) - VK codes 0x41-0x5A (65-90)
	case "a":
		return []uint16{65}
	case "b":
		return []uint16{66}
	case "c":
		return []uint16{67}
	case "d":
		return []uint16{68}
	case "e":
		return []uint16{69}
	case "f":
		return []uint16{70}
	case "g":
		return []uint16{71}
	case "h":
		return []uint16{72}
	case "i":
		return []uint16{73}
	case "j":
		return []uint16{74}
	case "k":
		return []uint16{75}
	case "l":
		return []uint16{76}
	case "m":
		return []uint16{77}
	case "n":
		return []uint16{78}
	case "o":
		return []uint16{79}
	case "p":
		return []uint16{80}
	case "q":
		return []uint16{81}
	case "r":
		return []uint16{82}
	case "s":
		return []uint16{83}
	case "t":
		return []uint16{84}
	case "u":
		return []uint16{85}
	case "v":
		return []uint16{86}
	case "w":
		return []uint16{87}
	case "x":
		return []uint16{88}
	case "y":
		return []uint16{89}
	case "z":
		return []uint16{90}

	// Number keys (0-9) - VK codes 0x30-0x39 (48-57)
	case "0":
		return []uint16{48}
	case "1":
		return []uint16{49}
	case "2":
		return []uint16{50}
	case "3":
		return []uint16{51}
	case "4":
		return []uint16{52}
	case "5":
		return []uint16{53}
	case "6":
		return []uint16{54}
	case "7":
		return []uint16{55}
	case "8":
		return []uint16{56}
	case "9":
		return []uint16{57}

	// Function keys (F1-F24)
	case "f1":
		return []uint16{112} // VK_F1
	case "f2":
		return []uint16{113} // VK_F2
	case "f3":
		return []uint16{114} // VK_F3
	case "f4":
		return []uint16{115} // VK_F4
	case "f5":
		return []uint16{116} // VK_F5
	case "f6":
		return []uint16{117} // VK_F6
	case "f7":
		return []uint16{118} // VK_F7
	case "f8":
		return []uint16{119} // VK_F8
	case "f9":
		return []uint16{120} // VK_F9
	case "f10":
		return []uint16{121} // VK_F10
	case "f11":
		return []uint16{122} // VK_F11
	case "f12":
		return []uint16{123} // VK_F12
	case "f13":
		return []uint16{124} // VK_F13
	case "f14":
		return []uint16{125} // VK_F14
	case "f15":
		return []uint16{126} // VK_F15
	case "f16":
		return []uint16{127} // VK_F16
	case "f17":
		return []uint16{128} // VK_F17
	case "f18":
		return []uint16{129} // VK_F18
	case "f19":
		return []uint16{130} // VK_F19
	case "f20":
		return []uint16{131} // VK_F20
	case "f21":
		return []uint16{132} // VK_F21
	case "f22":
		return []uint16{133} // VK_F22
	case "f23":
		return []uint16{134} // VK_F23
	case "f24":
		return []uint16{135} // VK_F24

	// Common special keys
	case "space":
		return []uint16{32} // VK_SPACE
	case "enter", "return":
		return []uint16{13} // VK_RETURN
	case "esc", "escape":
		return []uint16{27} // VK_ESCAPE
	case "tab":
		return []uint16{9} // VK_TAB
	case "backspace":
		return []uint16{8} // VK_BACK
	case "delete", "del":
		return []uint16{46} // VK_DELETE
	case "insert", "ins":
		return []uint16{45} // VK_INSERT
	case "home":
		return []uint16{36} // VK_HOME
	case "end":
		return []uint16{35} // VK_END
	case "pageup", "pgup":
		return []uint16{33} // VK_PRIOR
	case "pagedown", "pgdn":
		return []uint16{34} // VK_NEXT

	// Arrow keys
	case "left":
		return []uint16{37} // VK_LEFT
	case "up":
		return []uint16{38} // VK_UP
	case "right":
		return []uint16{39} // VK_RIGHT
	case "down":
		return []uint16{40} // VK_DOWN

	default:
		return nil
	}
}
