package singleinstance

// One resident daemon owns a loopback TCP port. Other processes use it to
// detect the resident (PING) and to ask it to translate the current selection
// (TRANSLATE), exactly as if the hotkey had been pressed.

import (
	"context"

	"go.uber.org/zap"

	"translate-tool/src/logutil"
)

const (
	CommandTranslate = "TRANSLATE"
)

// Server owns the TCP endpoint and queues client requests.
type Server interface {
	// Start binds the configured port; an occupied port is an error.
	Start(ctx context.Context) error
	// Port returns the bound TCP port, or 0 if not started.
	Port() int
	// Conns delivers accepted requests in arrival order.
	Conns() <-chan Conn
	// Close releases the port and stops accepting clients.
	Close() error
}

// Conn represents one client connection and exposes request + response API.
type Conn interface {
	Request() Request
	// RespondSuccess sends SUCCESS followed by the translated text.
	RespondSuccess(text string) error
	// RespondError sends an error with human-readable message.
	RespondError(msg string) error
	Close() error
}

// Request represents a single client request.
type Request struct {
	Command string
}

// Client talks to a resident server.
type Client interface {
	// Detect reports whether a resident answers PING.
	Detect(ctx context.Context) bool
	// Trigger asks the resident to run one translation. If no resident is
	// found, returns delegated=false, err=nil.
	Trigger(ctx context.Context) (delegated bool, text string, err error)
}

func NewServer(port int, log *zap.SugaredLogger) Server {
	if log == nil {
		log = logutil.Nop()
	}
	return newTcpServer(port, log)
}

func NewClient(port int) Client { return newTcpClient(port) }
