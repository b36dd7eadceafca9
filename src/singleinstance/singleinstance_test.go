package singleinstance

import (
	"context"
	"net"
	"strconv"
	"testing"
	"time"

	"translate-tool/src/logutil"
)

// startTestServer binds an ephemeral port so tests never collide with a
// running resident.
func startTestServer(t *testing.T, ctx context.Context) (*tcpServer, *tcpClient) {
	t.Helper()
	srv := &tcpServer{addr: "127.0.0.1:0", log: logutil.Nop(), incoming: make(chan Conn, 8)}
	if err := srv.Start(ctx); err != nil {
		t.Skipf("loopback TCP unavailable in this environment: %v", err)
	}
	t.Cleanup(func() { _ = srv.Close() })
	client := &tcpClient{addr: net.JoinHostPort(residentHost, strconv.Itoa(srv.Port()))}
	return srv, client
}

func TestDetect(t *testing.T) {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	srv, client := startTestServer(t, ctx)

	if !client.Detect(ctx) {
		t.Error("Expected resident to answer PING")
	}
	_ = srv.Close()
	if client.Detect(ctx) {
		t.Error("Expected no resident after Close")
	}
}

func TestTriggerRoundTrip(t *testing.T) {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	srv, client := startTestServer(t, ctx)

	type result struct {
		delegated bool
		text      string
		err       error
	}
	done := make(chan result, 1)
	go func() {
		delegated, text, err := client.Trigger(ctx)
		done <- result{delegated, text, err}
	}()

	var conn Conn
	select {
	case conn = <-srv.Conns():
	case <-ctx.Done():
		t.Fatal("Timed out waiting for request")
	}
	if conn.Request().Command != CommandTranslate {
		t.Errorf("Expected TRANSLATE, got %q", conn.Request().Command)
	}
	if err := conn.RespondSuccess("Hello\nworld"); err != nil {
		t.Fatalf("respond: %v", err)
	}
	_ = conn.Close()

	r := <-done
	if r.err != nil || !r.delegated {
		t.Fatalf("Expected delegated success, got delegated=%v err=%v", r.delegated, r.err)
	}
	if r.text != "Hello\nworld" {
		t.Errorf("Expected translated text, got %q", r.text)
	}
}

func TestTriggerError(t *testing.T) {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	srv, client := startTestServer(t, ctx)

	go func() {
		conn := <-srv.Conns()
		_ = conn.RespondError("no text")
		_ = conn.Close()
	}()

	delegated, _, err := client.Trigger(ctx)
	if !delegated {
		t.Fatal("Expected delegation")
	}
	if err == nil || err.Error() != "no text" {
		t.Errorf("Expected 'no text' error, got %v", err)
	}
}

func TestTriggerWithoutResident(t *testing.T) {
	lis, err := net.Listen("tcp", "127.0.0.1:0")
	if err != nil {
		t.Skipf("loopback TCP unavailable: %v", err)
	}
	a := lis.Addr().String()
	_ = lis.Close()

	delegated, _, err := (&tcpClient{addr: a}).Trigger(context.Background())
	if delegated || err != nil {
		t.Errorf("Expected delegated=false err=nil, got %v %v", delegated, err)
	}
}

func TestUnknownCommandRejected(t *testing.T) {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	_, client := startTestServer(t, ctx)

	c, err := net.Dial("tcp", client.addr)
	if err != nil {
		t.Fatal(err)
	}
	defer c.Close()
	_, _ = c.Write([]byte("STDOUT\n"))
	buf := make([]byte, 64)
	_ = c.SetReadDeadline(time.Now().Add(2 * time.Second))
	n, _ := c.Read(buf)
	if got := string(buf[:n]); got != "ERROR\nunknown command" {
		t.Errorf("Unexpected reply %q", got)
	}
}

func TestSecondServerFails(t *testing.T) {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	srv, _ := startTestServer(t, ctx)

	other := &tcpServer{addr: net.JoinHostPort(residentHost, strconv.Itoa(srv.Port())), log: logutil.Nop(), incoming: make(chan Conn, 1)}
	if err := other.Start(ctx); err == nil {
		_ = other.Close()
		t.Error("Expected bind failure while the port is owned")
	}
}

func TestAddrClampsPort(t *testing.T) {
	if got := addr(80); got != "127.0.0.1:49600" {
		t.Errorf("addr(80) = %q", got)
	}
	if got := addr(50000); got != "127.0.0.1:50000" {
		t.Errorf("addr(50000) = %q", got)
	}
}
