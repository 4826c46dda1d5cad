package transport

import (
	"context"
	"net"
	"syscall"
)

// TCPDialer establishes plain TCP connections.  When BufferSize is set,
// the socket's send and receive buffers are sized before the connect
// is issued.
type TCPDialer struct {
	BufferSize int
}

// Dial connects to address over TCP, resolving names with the platform
// resolver.
func (d *TCPDialer) Dial(ctx context.Context, network, address string) (net.Conn, error) {
	dialer := net.Dialer{Control: d.control}
	return dialer.DialContext(ctx, network, address)
}

// Close is a no-op for stateless TCP dialers.
func (d *TCPDialer) Close() error { return nil }

// control runs after the socket is created and before connect(2).
func (d *TCPDialer) control(_, _ string, c syscall.RawConn) error {
	if d.BufferSize <= 0 {
		return nil
	}
	var serr error
	if err := c.Control(func(fd uintptr) {
		serr = setBufferSizes(fd, d.BufferSize)
	}); err != nil {
		return err
	}
	return serr
}
