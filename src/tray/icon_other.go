//go:build !windows

package tray

func Icon() []byte { return pngIcon() }
