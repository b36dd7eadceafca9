package pipeline

import (
	"context"
	"errors"
	"time"

	"go.uber.org/zap"

	"translate-tool/src/capture"
	"translate-tool/src/clipboard"
	"translate-tool/src/input"
	"translate-tool/src/logutil"
)

type Capturer interface {
	Capture(ctx context.Context) (string, error)
}

type Translator interface {
	Translate(ctx context.Context, text string) (string, error)
}

type Outcome int

const (
	// NoText: capture found nothing; the run ends silently.
	NoText Outcome = iota
	CaptureFailed
	TranslationFailed
	DeliveryFailed
	// PasteFailed: the translation is on the clipboard but the paste chord failed.
	PasteFailed
	Pasted
)

func (o Outcome) String() string {
	switch o {
	case NoText:
		return "no text"
	case CaptureFailed:
		return "capture failed"
	case TranslationFailed:
		return "translation failed"
	case DeliveryFailed:
		return "clipboard write failed"
	case PasteFailed:
		return "paste failed"
	case Pasted:
		return "pasted"
	default:
		return "unknown"
	}
}

type Result struct {
	Outcome Outcome
	Source  string
	Text    string
	Err     error
}

// OK reports whether a translation reached the clipboard.
func (r Result) OK() bool { return r.Outcome == Pasted || r.Outcome == PasteFailed }

type Options struct {
	Capture    Capturer
	Translate  Translator
	Clipboard  clipboard.Clipboard
	Keyboard   input.Keyboard
	Modifier   input.Key
	PasteDelay time.Duration
	Logger     *zap.SugaredLogger
}

type Orchestrator struct {
	opts Options
	log  *zap.SugaredLogger
}

func New(opts Options) *Orchestrator {
	log := opts.Logger
	if log == nil {
		log = logutil.Nop()
	}
	return &Orchestrator{opts: opts, log: log}
}

// Run performs one capture, translate and paste sequence. Every failure is
// logged and reported in the Result; nothing is retried. A failed paste leaves
// the translation on the clipboard for a manual paste.
func (o *Orchestrator) Run(ctx context.Context) Result {
	source, err := o.opts.Capture.Capture(ctx)
	if errors.Is(err, capture.ErrNoText) {
		o.log.Infow("No text captured; nothing to translate")
		return Result{Outcome: NoText, Err: err}
	}
	if err != nil {
		o.log.Errorw("Capture failed", "error", err)
		return Result{Outcome: CaptureFailed, Err: err}
	}
	o.log.Infow("Captured text", "chars", len([]rune(source)), "text", logutil.Sanitize(source))

	text, err := o.opts.Translate.Translate(ctx, source)
	if err == nil && text == "" {
		err = errors.New("empty translation")
	}
	if err != nil {
		o.log.Errorw("Translation failed", "error", err)
		return Result{Outcome: TranslationFailed, Source: source, Err: err}
	}

	if err := o.opts.Clipboard.Write(text); err != nil {
		o.log.Errorw("Failed to write translation to clipboard", "error", err)
		return Result{Outcome: DeliveryFailed, Source: source, Text: text, Err: err}
	}

	if o.opts.PasteDelay > 0 {
		time.Sleep(o.opts.PasteDelay)
	}
	if err := input.Chord(o.opts.Keyboard, o.opts.Modifier, 'v'); err != nil {
		o.log.Warnw("Paste failed; translation left on clipboard", "error", err)
		return Result{Outcome: PasteFailed, Source: source, Text: text, Err: err}
	}

	o.log.Infow("Translation pasted", "chars", len([]rune(text)), "text", logutil.Sanitize(text))
	return Result{Outcome: Pasted, Source: source, Text: text}
}
