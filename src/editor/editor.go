// Package editor opens the configuration file in the user's default editor.
package editor

import (
	"fmt"

	"go.uber.org/zap"

	"translate-tool/src/config"
)

// Opener hands a file to the OS.
type Opener func(path string) error

// EditConfig makes sure cfg has a file on disk and opens it. An existing file
// is never rewritten. Edits apply on the next start.
func EditConfig(cfg config.Config, open Opener, log *zap.SugaredLogger) error {
	created, err := cfg.EnsureFile()
	if err != nil {
		return fmt.Errorf("prepare config file: %w", err)
	}
	if created {
		log.Infow("Wrote default config file", "path", cfg.Path)
	}
	if open == nil {
		open = Open
	}
	if err := open(cfg.Path); err != nil {
		return fmt.Errorf("open editor for %s: %w", cfg.Path, err)
	}
	log.Infow("Opened config in editor; changes apply after restart", "path", cfg.Path)
	return nil
}
