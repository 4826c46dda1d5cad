//go:build !unix && !windows

package transport

// Platforms without BSD socket options keep their default buffers.
func setBufferSizes(uintptr, int) error { return nil }
