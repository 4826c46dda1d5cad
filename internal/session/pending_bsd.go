//go:build darwin || dragonfly || freebsd || netbsd || openbsd

package session

// pendingRequest is FIONREAD, _IOR('f', 127, int).
const pendingRequest = 0x4004667f
