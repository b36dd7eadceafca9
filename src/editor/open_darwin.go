//go:build darwin

package editor

import "os/exec"

// Open uses -t to force the default text editor.
func Open(path string) error {
	cmd := exec.Command("open", "-t", path)
	if err := cmd.Start(); err != nil {
		return err
	}
	go func() { _ = cmd.Wait() }()
	return nil
}
