//go:build windows

package tray

// Icon returns the tray image; the Windows shell wants ICO data.
func Icon() []byte { return wrapICO(pngIcon(), iconSize) }
