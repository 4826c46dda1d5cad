//go:build windows

package transport

import (
	"fmt"

	"golang.org/x/sys/windows"
)

func setBufferSizes(fd uintptr, size int) error {
	h := windows.Handle(fd)
	if err := windows.SetsockoptInt(h, windows.SOL_SOCKET, windows.SO_SNDBUF, size); err != nil {
		return fmt.Errorf("set SO_SNDBUF: %w", err)
	}
	if err := windows.SetsockoptInt(h, windows.SOL_SOCKET, windows.SO_RCVBUF, size); err != nil {
		return fmt.Errorf("set SO_RCVBUF: %w", err)
	}
	return nil
}
