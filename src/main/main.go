package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"runtime"
	"syscall"

	"go.uber.org/zap"

	"translate-tool/src/capture"
	"translate-tool/src/clipboard"
	"translate-tool/src/clipboard/system"
	"translate-tool/src/config"
	"translate-tool/src/editor"
	"translate-tool/src/eventloop"
	"translate-tool/src/hotkey"
	"translate-tool/src/input"
	"translate-tool/src/input/robot"
	"translate-tool/src/messages"
	"translate-tool/src/pipeline"
	"translate-tool/src/runtimeinit"
	"translate-tool/src/singleinstance"
	"translate-tool/src/translator"
	"translate-tool/src/tray"
)

func main() {
	// The tray and hotkey APIs want the main OS thread.
	runtime.LockOSThread()
	os.Exit(run())
}

func run() int {
	rt, err := runtimeinit.Bootstrap(runtimeinit.Options{InitClipboard: system.Init})
	if err != nil {
		fmt.Fprintf(os.Stderr, "Startup failed: %v\n", err)
		return 1
	}
	log := rt.Logger
	defer func() { _ = log.Sync() }()
	enableDPIAwareness(log)

	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	port := rt.Settings.SingleInstancePort
	if singleinstance.NewClient(port).Detect(ctx) {
		log.Errorw("Another instance is already running", "port", port)
		fmt.Printf("one is already running on port %d\n", port)
		return 1
	}
	srv := singleinstance.NewServer(port, log)
	if err := srv.Start(ctx); err != nil {
		log.Errorw("Could not claim single-instance port", "port", port, "error", err)
		return 1
	}
	defer srv.Close()

	clip, err := system.New()
	if err != nil {
		log.Errorw("Clipboard unavailable", "error", err)
		return 1
	}
	orch := newPipeline(rt.Config, rt.Settings, clip, robot.Keyboard{}, log)

	exitCode := 0
	tray.Run(func(t *tray.Tray) {
		listener, err := hotkey.Start(rt.Settings.HotkeyBackend, rt.Settings.Hotkey, log)
		if err != nil {
			log.Errorw("Hotkey registration failed", "hotkey", rt.Settings.Hotkey, "error", err)
			exitCode = 1
			t.Quit()
			return
		}

		loop := eventloop.New(eventloop.Options{
			Pipeline:    orch,
			Menu:        t,
			Hotkeys:     listener.Events(),
			Requests:    srv.Conns(),
			EditConfig:  func() error { return editor.EditConfig(*rt.Config, editor.Open, log) },
			IdleTooltip: messages.IdleTooltip(rt.Settings.Hotkey),
			Logger:      log,
		})
		log.Infow("Translate Tool ready", "hotkey", rt.Settings.Hotkey, "backend", rt.Settings.HotkeyBackend)

		go func() {
			err := loop.Run(ctx)
			if err != nil && !errors.Is(err, context.Canceled) {
				log.Errorw("Event loop stopped", "error", err)
			}
			if err := listener.Close(); err != nil {
				log.Warnw("Failed to unregister hotkey", "error", err)
			}
			t.Quit()
		}()
	}, func() {
		cancel()
		log.Infow("Exiting")
	})
	return exitCode
}

func newPipeline(cfg *config.Config, s *config.Settings, clip clipboard.Clipboard, kb input.Keyboard, log *zap.SugaredLogger) *pipeline.Orchestrator {
	mod := input.ChordModifier(s.ChordModifier)
	return pipeline.New(pipeline.Options{
		Capture: &capture.Policy{
			Clipboard:   clip,
			Keyboard:    kb,
			Modifier:    mod,
			SettleDelay: s.CaptureSettleDelay,
			CopyDelay:   s.CaptureCopyDelay,
			Logger:      log,
		},
		Translate:  translator.New(*cfg, translator.Options{Timeout: s.HTTPTimeout, Logger: log}),
		Clipboard:  clip,
		Keyboard:   kb,
		Modifier:   mod,
		PasteDelay: s.PasteDelay,
		Logger:     log,
	})
}
