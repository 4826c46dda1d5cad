package session

import (
	"context"
	"errors"
	"os"
	"time"
)

// Detector decides whether the server has gone away.
//
// It waits up to Wait for the socket to become readable.  Readable with
// nothing to read is an orderly close; a socket error while waiting is
// treated the same way, since both end the session identically.  If the
// wait elapses, the connection is alive.  Pending bytes are never
// consumed: readiness is probed by peeking into the socket's stream.
type Detector struct {
	Wait time.Duration
}

// DefaultWait is used when Detector.Wait is zero.
const DefaultWait = 10 * time.Second

func (d Detector) wait() time.Duration {
	if d.Wait > 0 {
		return d.Wait
	}
	return DefaultWait
}

// IsDisconnected reports whether the remote end has closed the
// connection or the connection has failed.  Cancelling ctx ends the
// wait early with a false result; the caller checks its own
// cancellation state next.
func (d Detector) IsDisconnected(ctx context.Context, sock *Socket) bool {
	if sock == nil || sock.stream == nil {
		return true
	}
	if sock.Available() > 0 {
		return false
	}

	if err := sock.conn.SetReadDeadline(time.Now().Add(d.wait())); err != nil {
		return true
	}
	defer sock.conn.SetReadDeadline(time.Time{}) //nolint:errcheck

	stop := context.AfterFunc(ctx, func() {
		sock.conn.SetReadDeadline(time.Now()) //nolint:errcheck
	})
	defer stop()
	if ctx.Err() != nil {
		return false
	}

	_, err := sock.stream.Peek(1)
	switch {
	case err == nil:
		return false
	case errors.Is(err, os.ErrDeadlineExceeded):
		return false
	default:
		// io.EOF for a FIN, anything else for a reset or local failure.
		return true
	}
}
