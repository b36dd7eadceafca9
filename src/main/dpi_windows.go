//go:build windows

package main

import (
	"syscall"

	"go.uber.org/zap"
)

// enableDPIAwareness asks for per-monitor DPI awareness so the tray icon and
// menu are not bitmap-scaled.
func enableDPIAwareness(log *zap.SugaredLogger) {
	shcore := syscall.NewLazyDLL("Shcore.dll")
	setProcessDpiAwareness := shcore.NewProc("SetProcessDpiAwareness")
	const processPerMonitorDPIAware = 2
	if err := setProcessDpiAwareness.Find(); err == nil {
		ret, _, _ := setProcessDpiAwareness.Call(uintptr(processPerMonitorDPIAware))
		if ret != 0 {
			log.Debugw("SetProcessDpiAwareness failed", "code", ret)
		}
		return
	}

	user32 := syscall.NewLazyDLL("user32.dll")
	setProcessDPIAware := user32.NewProc("SetProcessDPIAware")
	if err := setProcessDPIAware.Find(); err == nil {
		if ret, _, _ := setProcessDPIAware.Call(); ret == 0 {
			log.Debugw("SetProcessDPIAware failed")
		}
	}
}
