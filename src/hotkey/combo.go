package hotkey

import (
	"fmt"
	"strings"
)

// Combo is a parsed hotkey such as "Ctrl+Shift+Q": zero or more modifiers
// (ctrl, alt, shift, cmd) and exactly one main key, all lower-case.
type Combo struct {
	Mods []string
	Key  string
	Raw  string
}

func (c Combo) String() string { return c.Raw }

// ParseCombo validates a hotkey string. Modifiers may appear in any order; the
// main key must be known to at least one backend.
func ParseCombo(s string) (Combo, error) {
	names := parseHotkey(s)
	c := Combo{Raw: strings.TrimSpace(s)}
	seen := map[string]bool{}
	for _, name := range names {
		if name == "" {
			return Combo{}, fmt.Errorf("invalid hotkey %q: empty key name", s)
		}
		if isModifier(name) {
			if !seen[name] {
				c.Mods = append(c.Mods, name)
				seen[name] = true
			}
			continue
		}
		if c.Key != "" {
			return Combo{}, fmt.Errorf("invalid hotkey %q: more than one main key", s)
		}
		if !knownKey(name) {
			return Combo{}, fmt.Errorf("invalid hotkey %q: unknown key %q", s, name)
		}
		c.Key = name
	}
	if c.Key == "" {
		return Combo{}, fmt.Errorf("invalid hotkey %q: no main key", s)
	}
	return c, nil
}

// Names returns modifiers then the main key, the form the hook backend tracks.
func (c Combo) Names() []string {
	return append(append([]string{}, c.Mods...), c.Key)
}

func knownKey(name string) bool {
	if _, ok := keyCodes[name]; ok {
		return true
	}
	return hookKeycodes(name) != nil || keyNameToRawcodes(name) != nil
}

func isModifier(name string) bool {
	switch name {
	case "ctrl", "alt", "shift", "cmd":
		return true
	}
	return false
}

// parseHotkey converts a hotkey string like "Ctrl+Alt+q" to normalized key names
func parseHotkey(hotkeyConfig string) []string {
	parts := strings.Split(strings.ToLower(hotkeyConfig), "+")
	var keys []string

	for _, part := range parts {
		part = strings.TrimSpace(part)
		switch part {
		case "ctrl", "control":
			keys = append(keys, "ctrl")
		case "alt", "option":
			keys = append(keys, "alt")
		case "shift":
			keys = append(keys, "shift")
		case "win", "cmd", "super", "meta":
			keys = append(keys, "cmd")
		default:
			keys = append(keys, part)
		}
	}

	return keys
}
