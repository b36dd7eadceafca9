package eventloop

import (
	"context"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"translate-tool/src/messages"
	"translate-tool/src/pipeline"
	"translate-tool/src/singleinstance"
)

type fakeMenu struct {
	events chan messages.MenuEvent

	mu       sync.Mutex
	tooltips []string
}

func newFakeMenu() *fakeMenu { return &fakeMenu{events: make(chan messages.MenuEvent, 4)} }

func (m *fakeMenu) Events() <-chan messages.MenuEvent { return m.events }

func (m *fakeMenu) SetTooltip(text string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.tooltips = append(m.tooltips, text)
}

func (m *fakeMenu) seen() []string {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]string(nil), m.tooltips...)
}

type fakePipeline struct {
	result   pipeline.Result
	delay    time.Duration
	runs     int32
	inFlight int32
	overlap  int32
}

func (p *fakePipeline) Run(context.Context) pipeline.Result {
	if atomic.AddInt32(&p.inFlight, 1) > 1 {
		atomic.StoreInt32(&p.overlap, 1)
	}
	time.Sleep(p.delay)
	atomic.AddInt32(&p.inFlight, -1)
	atomic.AddInt32(&p.runs, 1)
	return p.result
}

type fakeConn struct {
	reply  chan string
	closed int32
}

func (c *fakeConn) Request() singleinstance.Request {
	return singleinstance.Request{Command: singleinstance.CommandTranslate}
}
func (c *fakeConn) RespondSuccess(text string) error { c.reply <- "SUCCESS " + text; return nil }
func (c *fakeConn) RespondError(msg string) error    { c.reply <- "ERROR " + msg; return nil }
func (c *fakeConn) Close() error                     { atomic.StoreInt32(&c.closed, 1); return nil }

type harness struct {
	menu     *fakeMenu
	pipe     *fakePipeline
	hotkeys  chan messages.HotkeyPressed
	requests chan singleinstance.Conn
	edits    int32
	loop     *Loop
}

func newHarness() *harness {
	h := &harness{
		menu:     newFakeMenu(),
		pipe:     &fakePipeline{result: pipeline.Result{Outcome: pipeline.Pasted, Text: "Hello"}},
		hotkeys:  make(chan messages.HotkeyPressed, 4),
		requests: make(chan singleinstance.Conn, 4),
	}
	h.loop = New(Options{
		Pipeline:    h.pipe,
		Menu:        h.menu,
		Hotkeys:     h.hotkeys,
		Requests:    h.requests,
		EditConfig:  func() error { atomic.AddInt32(&h.edits, 1); return nil },
		IdleTooltip: "idle",
	})
	return h
}

func (h *harness) run(t *testing.T) <-chan error {
	t.Helper()
	done := make(chan error, 1)
	go func() { done <- h.loop.Run(context.Background()) }()
	return done
}

func waitDone(t *testing.T, done <-chan error) error {
	t.Helper()
	select {
	case err := <-done:
		return err
	case <-time.After(2 * time.Second):
		t.Fatal("loop did not stop")
		return nil
	}
}

func TestQuitStopsLoop(t *testing.T) {
	h := newHarness()
	done := h.run(t)
	h.menu.events <- messages.MenuQuit

	assert.NoError(t, waitDone(t, done))
	assert.Zero(t, atomic.LoadInt32(&h.pipe.runs))
}

func TestContextCancelStopsLoop(t *testing.T) {
	h := newHarness()
	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- h.loop.Run(ctx) }()
	cancel()

	assert.ErrorIs(t, waitDone(t, done), context.Canceled)
}

func TestHotkeyRunsPipeline(t *testing.T) {
	h := newHarness()
	done := h.run(t)

	h.hotkeys <- messages.HotkeyPressed{Combo: "Ctrl+Shift+Q"}
	require.Eventually(t, func() bool { return atomic.LoadInt32(&h.pipe.runs) == 1 }, time.Second, 5*time.Millisecond)

	h.menu.events <- messages.MenuQuit
	require.NoError(t, waitDone(t, done))

	assert.Equal(t, []string{"idle", messages.BusyTooltip, "idle"}, h.menu.seen())
}

func TestMenuAndHotkeyInSameWake(t *testing.T) {
	h := newHarness()
	h.menu.events <- messages.MenuEditConfig
	h.hotkeys <- messages.HotkeyPressed{}

	done := h.run(t)
	require.Eventually(t, func() bool {
		return atomic.LoadInt32(&h.pipe.runs) == 1 && atomic.LoadInt32(&h.edits) == 1
	}, time.Second, 5*time.Millisecond)

	h.menu.events <- messages.MenuQuit
	require.NoError(t, waitDone(t, done))
}

func TestQuitDiscardsPendingHotkey(t *testing.T) {
	h := newHarness()
	h.menu.events <- messages.MenuQuit
	h.hotkeys <- messages.HotkeyPressed{}

	require.NoError(t, waitDone(t, h.run(t)))
	assert.Zero(t, atomic.LoadInt32(&h.pipe.runs))
}

func TestHotkeysNeverOverlap(t *testing.T) {
	h := newHarness()
	h.pipe.delay = 20 * time.Millisecond
	done := h.run(t)

	for i := 0; i < 3; i++ {
		h.hotkeys <- messages.HotkeyPressed{}
	}
	require.Eventually(t, func() bool { return atomic.LoadInt32(&h.pipe.runs) == 3 }, 2*time.Second, 5*time.Millisecond)
	assert.Zero(t, atomic.LoadInt32(&h.pipe.overlap), "pipeline runs must be sequential")

	h.menu.events <- messages.MenuQuit
	require.NoError(t, waitDone(t, done))
}

func TestEditConfigErrorKeepsLoopAlive(t *testing.T) {
	h := newHarness()
	h.loop.opts.EditConfig = func() error {
		atomic.AddInt32(&h.edits, 1)
		return assert.AnError
	}
	done := h.run(t)

	h.menu.events <- messages.MenuEditConfig
	h.menu.events <- messages.MenuEditConfig
	require.Eventually(t, func() bool { return atomic.LoadInt32(&h.edits) == 2 }, time.Second, 5*time.Millisecond)

	h.menu.events <- messages.MenuQuit
	require.NoError(t, waitDone(t, done))
}

func TestTriggerRequest(t *testing.T) {
	tests := []struct {
		name   string
		result pipeline.Result
		want   string
	}{
		{"pasted", pipeline.Result{Outcome: pipeline.Pasted, Text: "Hello"}, "SUCCESS Hello"},
		{"paste failed still delivers", pipeline.Result{Outcome: pipeline.PasteFailed, Text: "Hello"}, "SUCCESS Hello"},
		{"no text", pipeline.Result{Outcome: pipeline.NoText}, "ERROR no text"},
		{"translation failed", pipeline.Result{Outcome: pipeline.TranslationFailed}, "ERROR translation failed"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			h := newHarness()
			h.pipe.result = tt.result
			done := h.run(t)

			conn := &fakeConn{reply: make(chan string, 1)}
			h.requests <- conn

			select {
			case got := <-conn.reply:
				assert.Equal(t, tt.want, got)
			case <-time.After(time.Second):
				t.Fatal("no reply")
			}
			require.Eventually(t, func() bool { return atomic.LoadInt32(&conn.closed) == 1 }, time.Second, 5*time.Millisecond)

			h.menu.events <- messages.MenuQuit
			require.NoError(t, waitDone(t, done))
		})
	}
}
