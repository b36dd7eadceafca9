package input

import (
	"errors"
	"fmt"
	"unicode"
)

var ErrUnknownKey = errors.New("unknown key")

// Key is either a modifier or a single printable character.
type Key struct {
	name string
	char rune
}

var (
	Control = Key{name: "ctrl"}
	Shift   = Key{name: "shift"}
	Alt     = Key{name: "alt"}
	Meta    = Key{name: "cmd"}
)

// Char returns the key for a single printable character.
func Char(r rune) Key { return Key{char: unicode.ToLower(r)} }

func (k Key) IsModifier() bool { return k.name != "" }

// Rune is the character of a non-modifier key, or 0.
func (k Key) Rune() rune { return k.char }

func (k Key) String() string {
	if k.name != "" {
		return k.name
	}
	if k.char == 0 {
		return "<none>"
	}
	return string(k.char)
}

// Keyboard synthesizes key events into whatever application has focus.
type Keyboard interface {
	Press(k Key) error
	Release(k Key) error
	// Click is a press immediately followed by a release.
	Click(k Key) error
}

// Chord presses mod, clicks ch and releases mod, in that order. The first
// failing step aborts the rest; mod may be left logically down in that case.
func Chord(kb Keyboard, mod Key, ch rune) error {
	if err := kb.Press(mod); err != nil {
		return fmt.Errorf("press %s: %w", mod, err)
	}
	if err := kb.Click(Char(ch)); err != nil {
		return fmt.Errorf("click %s+%c: %w", mod, ch, err)
	}
	if err := kb.Release(mod); err != nil {
		return fmt.Errorf("release %s: %w", mod, err)
	}
	return nil
}

// ReleaseModifiers releases Shift, Control and Alt (then any extra keys) so a
// hotkey chord still physically held does not leak into synthesized chords.
func ReleaseModifiers(kb Keyboard, extra ...Key) error {
	keys := append([]Key{Shift, Control, Alt}, extra...)
	for _, k := range keys {
		if err := kb.Release(k); err != nil {
			return fmt.Errorf("release %s: %w", k, err)
		}
	}
	return nil
}

// ChordModifier maps the CHORD_MODIFIER setting to a key.
func ChordModifier(name string) Key {
	if name == "cmd" {
		return Meta
	}
	return Control
}
