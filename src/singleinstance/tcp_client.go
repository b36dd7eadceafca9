package singleinstance

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"net"
	"time"
)

type tcpClient struct {
	addr string
}

func newTcpClient(port int) Client { return &tcpClient{addr: addr(port)} }

func (c *tcpClient) Detect(ctx context.Context) bool {
	return ping(c.addr, timeoutFrom(ctx, detectTimeout))
}

// Trigger waits for the whole translation, so it has no deadline of its own
// unless ctx carries one.
func (c *tcpClient) Trigger(ctx context.Context) (bool, string, error) {
	if !ping(c.addr, detectTimeout) {
		return false, "", nil
	}

	var d net.Dialer
	conn, err := d.DialContext(ctx, "tcp", c.addr)
	if err != nil {
		return false, "", nil
	}
	defer conn.Close()
	if dl, ok := ctx.Deadline(); ok {
		_ = conn.SetDeadline(dl)
	}
	stop := context.AfterFunc(ctx, func() { _ = conn.SetDeadline(time.Now()) })
	defer stop()

	w := bufio.NewWriter(conn)
	if _, err := w.WriteString(CommandTranslate + "\n"); err != nil {
		return true, "", err
	}
	if err := w.Flush(); err != nil {
		return true, "", err
	}

	br := bufio.NewReader(conn)
	status, err := br.ReadString('\n')
	if err != nil {
		if ctx.Err() != nil {
			return true, "", ctx.Err()
		}
		return true, "", fmt.Errorf("read status: %w", err)
	}
	body, _ := io.ReadAll(br)
	switch status {
	case successStatus:
		return true, string(body), nil
	case errorStatus:
		return true, "", errors.New(string(body))
	default:
		return true, "", fmt.Errorf("unexpected response %q", status)
	}
}
