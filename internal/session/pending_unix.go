//go:build darwin || dragonfly || freebsd || linux || netbsd || openbsd

package session

import (
	"errors"
	"net"
	"syscall"

	"golang.org/x/sys/unix"
)

var errNoDescriptor = errors.New("connection has no file descriptor")

// pendingBytes asks the kernel how many bytes are queued for reading.
// It does not consume anything.
func pendingBytes(conn net.Conn) (int, error) {
	sc, ok := conn.(syscall.Conn)
	if !ok {
		return 0, errNoDescriptor
	}
	rc, err := sc.SyscallConn()
	if err != nil {
		return 0, err
	}
	var (
		n    int
		ierr error
	)
	if err := rc.Control(func(fd uintptr) {
		n, ierr = unix.IoctlGetInt(int(fd), pendingRequest)
	}); err != nil {
		return 0, err
	}
	return n, ierr
}
