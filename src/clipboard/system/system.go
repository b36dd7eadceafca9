package system

import (
	"sync"

	"golang.design/x/clipboard"

	port "translate-tool/src/clipboard"
)

var _ port.Clipboard = System{}

var (
	initOnce sync.Once
	initErr  error
	writeMu  sync.Mutex
)

// Init prepares the platform clipboard. It must succeed before System is used.
func Init() error {
	initOnce.Do(func() {
		initErr = clipboard.Init()
	})
	return initErr
}

// System is the OS clipboard backed by golang.design/x/clipboard.
type System struct{}

func New() (System, error) {
	if err := Init(); err != nil {
		return System{}, err
	}
	return System{}, nil
}

func (System) Read() string {
	return string(clipboard.Read(clipboard.FmtText))
}

// Write performs a mutex-guarded clipboard write to prevent corruption under parallel writes.
func (System) Write(text string) error {
	writeMu.Lock()
	defer writeMu.Unlock()
	// The returned channel only signals a later overwrite; there is no error path.
	clipboard.Write(clipboard.FmtText, []byte(text))
	return nil
}
