//go:build !windows && !darwin

package editor

import "os/exec"

func Open(path string) error {
	cmd := exec.Command("xdg-open", path)
	if err := cmd.Start(); err != nil {
		return err
	}
	// reap in the background; xdg-open usually exits quickly
	go func() { _ = cmd.Wait() }()
	return nil
}
