// Package session owns the client side of one chat connection: the
// blocking connect, the identity handshake, the disconnect check the
// role loops poll, and the cleanup that runs on every exit path.
//
// A Session is driven by a single goroutine and is never reused: once
// it has stopped and been cleaned up it is discarded.
package session

import (
	"context"
	"fmt"
	"io"
	"net"

	"github.com/google/uuid"

	ncerr "tcpchat/internal/errors"
	"tcpchat/internal/metrics"
	"tcpchat/internal/transport"
	"tcpchat/util"
)

// Options configures a Session.
type Options struct {
	ID         string // generated when empty
	Host       string
	Port       int
	BufferSize int
	Dialer     transport.Dialer
	Detector   Detector
	Logger     *util.Logger
	Metrics    *metrics.Collector
}

// Session is the client side of a single chat connection.
type Session struct {
	id         string
	host       string
	port       int
	bufferSize int

	dialer   transport.Dialer
	detector Detector
	logger   *util.Logger
	metrics  *metrics.Collector

	sock    *Socket // non-nil only between Connect and Cleanup
	running bool
	started bool // running was true at some point
	cause   Cause
	cleaned bool
}

// New returns an unconnected session.  A nil Metrics is valid.
func New(opts Options) *Session {
	id := opts.ID
	if id == "" {
		id = uuid.NewString()
	}
	logger := opts.Logger
	if logger == nil {
		logger = util.NewLogger(0)
	}
	return &Session{
		id:         id,
		host:       opts.Host,
		port:       opts.Port,
		bufferSize: opts.BufferSize,
		dialer:     opts.Dialer,
		detector:   opts.Detector,
		logger:     logger.With("session " + short(id)),
		metrics:    opts.Metrics,
	}
}

// short trims an id to the prefix used in log lines.
func short(id string) string {
	if len(id) > 8 {
		return id[:8]
	}
	return id
}

// ID returns the session's identifier.
func (s *Session) ID() string { return s.id }

// Address returns the configured server address as host:port.
func (s *Session) Address() string { return util.FormatAddr(s.host, s.port) }

// Logger returns the session-scoped logger.
func (s *Session) Logger() *util.Logger { return s.logger }

// Running reports whether the session is accepted and looping.
func (s *Session) Running() bool { return s.running }

// Started reports whether the session ever reached the running state.
func (s *Session) Started() bool { return s.started }

// Cause returns the first termination cause, or CauseNone.
func (s *Session) Cause() Cause { return s.cause }

// Connected reports whether the session currently holds a socket.
func (s *Session) Connected() bool { return s.sock != nil }

// Connect performs the blocking connect and returns the remote
// endpoint.  On failure the session is stopped with CauseConnectFailed
// and the caller must still call Cleanup; it must not handshake.
func (s *Session) Connect(ctx context.Context) (net.Addr, error) {
	if s.sock != nil || s.cleaned || s.cause != CauseNone {
		return nil, fmt.Errorf("session %s cannot be reconnected", short(s.id))
	}

	addr := s.Address()
	s.logger.Verbose("connecting to %s", addr)

	conn, err := s.dialer.Dial(ctx, "tcp", addr)
	if err != nil {
		nerr := ncerr.Wrap("dial", addr, err)
		s.metrics.RecordError(nerr.Error())
		s.Stop(CauseConnectFailed)
		return nil, nerr
	}

	s.sock = newSocket(conn, s.bufferSize)
	s.metrics.ConnectionOpened()
	s.logger.Verbose("connected to %s", conn.RemoteAddr())
	return conn.RemoteAddr(), nil
}

// Stop records cause and leaves the running state.  Only the first
// cause is kept; Stop reports whether this call was that first one.
func (s *Session) Stop(cause Cause) bool {
	if s.cause != CauseNone || cause == CauseNone {
		return false
	}
	s.cause = cause
	s.running = false
	s.metrics.RecordEnd(cause.String())
	s.logger.Verbose("stopped: %s", cause)
	return true
}

// Send writes p to the server as a single write call.
func (s *Session) Send(p []byte) error {
	if s.sock == nil {
		return ncerr.ErrNotConnected
	}
	n, err := s.sock.Write(p)
	if err != nil {
		nerr := ncerr.Wrap("write", s.Address(), err)
		s.metrics.RecordError(nerr.Error())
		return nerr
	}
	s.metrics.FrameSent(n)
	s.logger.Debug("sent %d bytes", n)
	return nil
}

// Available returns the number of bytes that can be read without
// blocking.
func (s *Session) Available() int {
	if s.sock == nil {
		return 0
	}
	return s.sock.Available()
}

// ReadAvailable reads exactly the bytes available right now, in one
// pass, without waiting for more.  It returns nil when nothing is
// pending.  A message that arrived in several segments may come back
// split across calls.
func (s *Session) ReadAvailable() ([]byte, error) {
	n := s.Available()
	if n == 0 {
		return nil, nil
	}
	buf := make([]byte, n)
	if _, err := io.ReadFull(s.sock.stream, buf); err != nil {
		nerr := ncerr.Wrap("read", s.Address(), err)
		s.metrics.RecordError(nerr.Error())
		return nil, nerr
	}
	s.metrics.BytesReceived(n)
	s.logger.Debug("received %d bytes", n)
	return buf, nil
}

// Disconnected runs one disconnect check against the session's socket.
// A session without a socket counts as disconnected.
func (s *Session) Disconnected(ctx context.Context) bool {
	if s.sock == nil {
		return true
	}
	s.metrics.LivenessCheck()
	gone := s.detector.IsDisconnected(ctx, s.sock)
	if gone {
		s.logger.Debug("disconnect check: remote gone")
	}
	return gone
}

// Cleanup drops the stream, closes the socket and releases the dialer.
// It is safe to call any number of times; only the first call acts.
func (s *Session) Cleanup() {
	if s.cleaned {
		return
	}
	s.cleaned = true
	s.running = false

	if s.sock != nil {
		if err := s.sock.close(); err != nil && !ncerr.IsClosed(err) {
			s.logger.Warn("closing socket: %v", err)
		}
		s.sock = nil
		s.metrics.ConnectionClosed()
	}
	if s.dialer != nil {
		if err := s.dialer.Close(); err != nil {
			s.logger.Debug("closing dialer: %v", err)
		}
	}
	s.logger.Debug("cleaned up")
}
