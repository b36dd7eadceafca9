package clipboard

// Clipboard is the system clipboard as seen by the pipeline. Read returns ""
// when the clipboard is unavailable or holds no text. The OS-backed
// implementation lives in clipboard/system.
type Clipboard interface {
	Read() string
	Write(text string) error
}
