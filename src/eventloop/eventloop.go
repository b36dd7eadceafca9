package eventloop

import (
	"context"

	"go.uber.org/zap"

	"translate-tool/src/logutil"
	"translate-tool/src/messages"
	"translate-tool/src/pipeline"
	"translate-tool/src/singleinstance"
)

type Pipeline interface {
	Run(ctx context.Context) pipeline.Result
}

// Menu is the tray surface the loop needs.
type Menu interface {
	Events() <-chan messages.MenuEvent
	SetTooltip(text string)
}

type Options struct {
	Pipeline Pipeline
	Menu     Menu
	Hotkeys  <-chan messages.HotkeyPressed
	// Requests carries trigger requests from other processes; nil disables them.
	Requests <-chan singleinstance.Conn
	// EditConfig opens the configuration for editing.
	EditConfig  func() error
	IdleTooltip string
	Logger      *zap.SugaredLogger
}

// Loop is the single-threaded dispatcher. Every dispatch runs to completion on
// the Run goroutine, so two pipeline runs never overlap; events that arrive in
// the meantime wait in their channels.
type Loop struct {
	opts Options
	log  *zap.SugaredLogger
}

func New(opts Options) *Loop {
	log := opts.Logger
	if log == nil {
		log = logutil.Nop()
	}
	if opts.IdleTooltip == "" {
		opts.IdleTooltip = messages.AppTitle
	}
	return &Loop{opts: opts, log: log}
}

// Run blocks until Quit is chosen (returns nil) or ctx is cancelled (returns
// ctx.Err()). Each wake handles at most one menu event and at most one hotkey
// event; a pending hotkey found in the same wake as Quit is discarded.
func (l *Loop) Run(ctx context.Context) error {
	menu := l.opts.Menu.Events()
	hotkeys := l.opts.Hotkeys
	requests := l.opts.Requests

	l.opts.Menu.SetTooltip(l.opts.IdleTooltip)
	l.log.Infow("Event loop started")

	for {
		var (
			menuEv    messages.MenuEvent
			gotMenu   bool
			gotHotkey bool
			conn      singleinstance.Conn
		)

		select {
		case <-ctx.Done():
			return ctx.Err()
		case menuEv = <-menu:
			gotMenu = true
		case _, ok := <-hotkeys:
			if !ok {
				hotkeys = nil
				continue
			}
			gotHotkey = true
		case c, ok := <-requests:
			if !ok {
				requests = nil
				continue
			}
			conn = c
		}

		if !gotMenu {
			select {
			case menuEv = <-menu:
				gotMenu = true
			default:
			}
		}
		if !gotHotkey && hotkeys != nil {
			select {
			case _, ok := <-hotkeys:
				gotHotkey = ok
			default:
			}
		}

		if gotMenu {
			if l.handleMenu(menuEv) {
				if conn != nil {
					_ = conn.RespondError("shutting down")
					_ = conn.Close()
				}
				return nil
			}
		}
		if gotHotkey {
			l.log.Infow("Hotkey pressed")
			l.translate(ctx)
		}
		if conn != nil {
			l.handleConn(ctx, conn)
		}
	}
}

// handleMenu reports whether the loop should stop.
func (l *Loop) handleMenu(ev messages.MenuEvent) bool {
	switch ev {
	case messages.MenuQuit:
		l.log.Infow("Quit requested")
		return true
	case messages.MenuEditConfig:
		if l.opts.EditConfig == nil {
			return false
		}
		if err := l.opts.EditConfig(); err != nil {
			l.log.Errorw("Failed to open config", "error", err)
		}
	default:
		l.log.Warnw("Unknown menu event", "event", int(ev))
	}
	return false
}

func (l *Loop) handleConn(ctx context.Context, conn singleinstance.Conn) {
	defer conn.Close()
	l.log.Infow("Trigger request received")
	res := l.translate(ctx)
	var err error
	if res.OK() {
		err = conn.RespondSuccess(res.Text)
	} else {
		err = conn.RespondError(res.Outcome.String())
	}
	if err != nil {
		l.log.Warnw("Failed to answer trigger request", "error", err)
	}
}

func (l *Loop) translate(ctx context.Context) pipeline.Result {
	l.setBusy(true)
	defer l.setBusy(false)
	res := l.opts.Pipeline.Run(ctx)
	l.log.Infow("Pipeline finished", "outcome", res.Outcome.String())
	return res
}

func (l *Loop) setBusy(b bool) {
	if b {
		l.opts.Menu.SetTooltip(messages.BusyTooltip)
	} else {
		l.opts.Menu.SetTooltip(l.opts.IdleTooltip)
	}
}
