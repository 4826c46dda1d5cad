package tunnel

import (
	"io"
	"net"
)

// forwardedConn is the local end of a net.Pipe pumped to and from an
// SSH channel.  SSH channels reject SetReadDeadline, and the session's
// disconnect check relies on read deadlines; the pipe end supports
// them.  Addresses are reported from the channel, not the pipe.
type forwardedConn struct {
	net.Conn
	channel net.Conn
}

func newForwardedConn(channel net.Conn) net.Conn {
	local, remote := net.Pipe()

	go func() {
		io.Copy(remote, channel) //nolint:errcheck
		remote.Close()           // EOF on the local end
	}()
	go func() {
		io.Copy(channel, remote) //nolint:errcheck
		channel.Close()
	}()

	return &forwardedConn{Conn: local, channel: channel}
}

func (c *forwardedConn) LocalAddr() net.Addr  { return c.channel.LocalAddr() }
func (c *forwardedConn) RemoteAddr() net.Addr { return c.channel.RemoteAddr() }

// Close closes both ends so neither pump goroutine is left blocked.
func (c *forwardedConn) Close() error {
	err := c.Conn.Close()
	c.channel.Close()
	return err
}
