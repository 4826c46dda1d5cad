//go:build linux

package session

import "golang.org/x/sys/unix"

// pendingRequest is the receive-queue length ioctl.
const pendingRequest = unix.TIOCINQ
