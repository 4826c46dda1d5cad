// Package transport provides abstractions for establishing the chat
// connection.  Transports handle the "how" of reaching the server (a
// plain TCP socket, or a stream forwarded through an SSH gateway)
// independent of what the session does over the connection.
package transport

import (
	"context"
	"net"
)

// Dialer opens the outbound chat connection.
type Dialer interface {
	// Dial establishes a connection to the given network address.  It
	// blocks until the connect completes or fails; there is no connect
	// timeout beyond what ctx imposes.
	Dial(ctx context.Context, network, address string) (net.Conn, error)

	// Close releases any long-lived resources held by the dialer
	// (e.g. an SSH gateway session).  Stateless dialers return nil.
	Close() error
}
