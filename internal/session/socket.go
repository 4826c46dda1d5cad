package session

import (
	"bufio"
	"net"
)

// minStreamSize is bufio's own floor for reader sizes.
const minStreamSize = 16

// Socket pairs a connection with the buffered stream the session reads
// through.  The stream is created once after connect and kept for the
// life of the connection; peeked bytes stay in it until read.
type Socket struct {
	conn   net.Conn
	stream *bufio.Reader
}

func newSocket(conn net.Conn, size int) *Socket {
	if size < minStreamSize {
		size = 4096
	}
	return &Socket{conn: conn, stream: bufio.NewReaderSize(conn, size)}
}

// Available returns the bytes readable without blocking: whatever the
// stream has buffered plus, where the platform can tell, what the
// kernel holds for the socket.
func (s *Socket) Available() int {
	n := s.stream.Buffered()
	if k, err := pendingBytes(s.conn); err == nil {
		n += k
	}
	return n
}

// Write writes p on the connection in a single call.
func (s *Socket) Write(p []byte) (int, error) { return s.conn.Write(p) }

// RemoteAddr returns the server endpoint.
func (s *Socket) RemoteAddr() net.Addr { return s.conn.RemoteAddr() }

// close drops the stream, then closes the connection.
func (s *Socket) close() error {
	s.stream = nil
	return s.conn.Close()
}
