package singleinstance

import (
	"bufio"
	"context"
	"net"
	"strings"
	"sync"
	"time"

	"go.uber.org/zap"
)

const (
	pingRequest   = "PING\n"
	pongResponse  = "PONG\n"
	successStatus = "SUCCESS\n"
	errorStatus   = "ERROR\n"
)

// tcpServer implements Server over TCP loopback.
type tcpServer struct {
	addr     string
	log      *zap.SugaredLogger
	lis      net.Listener
	incoming chan Conn
	port     int
	once     sync.Once
}

func newTcpServer(port int, log *zap.SugaredLogger) *tcpServer {
	return &tcpServer{addr: addr(port), log: log, incoming: make(chan Conn, 8)}
}

// Start binds the configured port. If it is occupied, fail.
func (s *tcpServer) Start(ctx context.Context) error {
	if s.lis != nil {
		return nil
	}
	lis, err := net.Listen("tcp", s.addr)
	if err != nil {
		s.log.Errorw("Failed to bind single-instance port", "addr", s.addr, "error", err)
		return err
	}
	s.lis = lis
	s.port = lis.Addr().(*net.TCPAddr).Port
	s.log.Infow("Single-instance server listening", "addr", lis.Addr().String())
	go s.acceptLoop(ctx, lis)
	return nil
}

func (s *tcpServer) Port() int { return s.port }

func (s *tcpServer) Conns() <-chan Conn { return s.incoming }

func (s *tcpServer) acceptLoop(ctx context.Context, lis net.Listener) {
	for {
		c, err := lis.Accept()
		if err != nil {
			return
		}
		remote := c.RemoteAddr().String()
		_ = c.SetDeadline(time.Now().Add(3 * time.Second))
		br := bufio.NewReader(c)
		line, _ := br.ReadString('\n')
		bw := bufio.NewWriter(c)
		if line == pingRequest {
			s.log.Debugw("PING -> PONG", "remote", remote)
			_, _ = bw.WriteString(pongResponse)
			_ = bw.Flush()
			_ = c.Close()
			continue
		}

		cmd := strings.TrimSpace(line)
		tc := &tcpConn{c: c, r: Request{Command: cmd}, w: bw}
		if cmd != CommandTranslate {
			s.log.Warnw("Unknown single-instance request", "remote", remote, "command", cmd)
			_ = tc.RespondError("unknown command")
			_ = tc.Close()
			continue
		}

		// the reply waits for a whole pipeline run
		_ = c.SetDeadline(time.Time{})
		s.log.Infow("Translate request", "remote", remote)
		select {
		case s.incoming <- tc:
		case <-ctx.Done():
			_ = c.Close()
			return
		}
	}
}

func (s *tcpServer) Close() error {
	var err error
	s.once.Do(func() {
		if s.lis != nil {
			err = s.lis.Close()
		}
	})
	return err
}

type tcpConn struct {
	c net.Conn
	r Request
	w *bufio.Writer
}

func (tc *tcpConn) Request() Request { return tc.r }

func (tc *tcpConn) RespondSuccess(text string) error {
	if _, err := tc.w.WriteString(successStatus + text); err != nil {
		return err
	}
	return tc.w.Flush()
}

func (tc *tcpConn) RespondError(msg string) error {
	if _, err := tc.w.WriteString(errorStatus + msg); err != nil {
		return err
	}
	return tc.w.Flush()
}

func (tc *tcpConn) Close() error { return tc.c.Close() }
