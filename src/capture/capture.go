// Package capture works out which text the user wants translated. There is no
// portable "current selection" API, so the only signal is the clipboard before
// and after a synthesized copy.
package capture

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.uber.org/zap"

	"translate-tool/src/clipboard"
	"translate-tool/src/input"
	"translate-tool/src/logutil"
)

// ErrNoText means nothing new reached the clipboard even after select-all.
// It is a legitimate empty result, not a failure.
var ErrNoText = errors.New("no text captured")

type Policy struct {
	Clipboard clipboard.Clipboard
	Keyboard  input.Keyboard
	// Modifier is the chord modifier for copy and select-all (Control, or Meta on macOS).
	Modifier input.Key

	SettleDelay time.Duration
	CopyDelay   time.Duration

	Logger *zap.SugaredLogger
}

// Capture copies the selection and returns it when the clipboard changed to
// something non-empty. Otherwise it selects everything in the focused
// application, copies again and returns that. Any adapter error aborts the
// capture and nothing partial is returned.
//
// A selection identical to the current clipboard content is indistinguishable
// from no selection and takes the select-all branch.
func (p *Policy) Capture(ctx context.Context) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}
	log := p.logger()

	if err := p.releaseModifiers(); err != nil {
		return "", err
	}
	original := p.Clipboard.Read()
	sleep(p.SettleDelay)

	if err := input.Chord(p.Keyboard, p.Modifier, 'c'); err != nil {
		return "", fmt.Errorf("copy selection: %w", err)
	}
	sleep(p.CopyDelay)

	candidate := p.Clipboard.Read()
	if candidate != "" && candidate != original {
		log.Debugw("Captured selection", "chars", len([]rune(candidate)), "text", logutil.Sanitize(candidate))
		return candidate, nil
	}

	log.Debugw("No selection detected, falling back to select-all")
	if err := ctx.Err(); err != nil {
		return "", err
	}
	if err := p.releaseModifiers(); err != nil {
		return "", err
	}
	sleep(p.SettleDelay)

	if err := input.Chord(p.Keyboard, p.Modifier, 'a'); err != nil {
		return "", fmt.Errorf("select all: %w", err)
	}
	sleep(p.CopyDelay)
	if err := input.Chord(p.Keyboard, p.Modifier, 'c'); err != nil {
		return "", fmt.Errorf("copy document: %w", err)
	}
	sleep(p.CopyDelay)

	whole := p.Clipboard.Read()
	if whole == "" || whole == original {
		return "", ErrNoText
	}
	log.Debugw("Captured document", "chars", len([]rune(whole)), "text", logutil.Sanitize(whole))
	return whole, nil
}

func (p *Policy) releaseModifiers() error {
	var extra []input.Key
	if p.Modifier == input.Meta {
		extra = append(extra, input.Meta)
	}
	if err := input.ReleaseModifiers(p.Keyboard, extra...); err != nil {
		return fmt.Errorf("release modifiers: %w", err)
	}
	return nil
}

func (p *Policy) logger() *zap.SugaredLogger {
	if p.Logger == nil {
		return logutil.Nop()
	}
	return p.Logger
}

func sleep(d time.Duration) {
	if d > 0 {
		time.Sleep(d)
	}
}
