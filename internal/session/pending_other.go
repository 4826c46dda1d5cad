//go:build !(darwin || dragonfly || freebsd || linux || netbsd || openbsd)

package session

import (
	"errors"
	"net"
)

// pendingBytes is unsupported here; Available falls back to what the
// stream has buffered, which the disconnect check keeps filled.
func pendingBytes(net.Conn) (int, error) {
	return 0, errors.New("pending byte count not supported on this platform")
}
