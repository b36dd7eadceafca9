package robot

import (
	"fmt"

	"github.com/go-vgo/robotgo"

	"translate-tool/src/input"
)

// Keyboard drives the real keyboard through robotgo.
type Keyboard struct{}

var _ input.Keyboard = Keyboard{}

func (Keyboard) Press(k input.Key) error {
	name, err := keyName(k)
	if err != nil {
		return err
	}
	return robotgo.KeyToggle(name, "down")
}

func (Keyboard) Release(k input.Key) error {
	name, err := keyName(k)
	if err != nil {
		return err
	}
	return robotgo.KeyToggle(name, "up")
}

func (Keyboard) Click(k input.Key) error {
	name, err := keyName(k)
	if err != nil {
		return err
	}
	return robotgo.KeyTap(name)
}

// keyName is the robotgo spelling of k: the modifier name, or the character.
func keyName(k input.Key) (string, error) {
	if k.IsModifier() {
		return k.String(), nil
	}
	r := k.Rune()
	if r == 0 || r < 32 || r == 127 {
		return "", fmt.Errorf("%w: %q", input.ErrUnknownKey, r)
	}
	return string(r), nil
}
