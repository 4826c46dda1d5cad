package config

import "time"

// ── Default values ───────────────────────────────────────────────────
//
// All tuneable defaults live here so they are easy to audit and reuse
// across CLI flags and environment variable loading.

const (
	// DefaultHost is the chat server contacted when no host is given.
	DefaultHost = "localhost"

	// DefaultPort is the chat server port.
	DefaultPort = 6000

	// DefaultBufferSize is applied to the socket send and receive
	// buffers before connecting, and sizes the session's read buffer.
	// It is not configurable.
	DefaultBufferSize = 2 * 1024

	// DefaultLivenessWait bounds how long a disconnect check waits for
	// the socket to become readable.
	DefaultLivenessWait = 10 * time.Second

	// DefaultPollInterval is the fixed pause between loop iterations.
	// It bounds CPU usage and the latency of a cancellation request.
	DefaultPollInterval = 10 * time.Millisecond

	// DefaultSSHPort is the standard SSH port for gateways.
	DefaultSSHPort = 22

	// DefaultGatewayTimeout bounds the SSH handshake with a gateway.
	// The chat connection itself has no connect timeout.
	DefaultGatewayTimeout = 30 * time.Second

	// ViewerFrame is the literal identity a viewer authenticates with.
	ViewerFrame = "viewer"

	// NameFramePrefix precedes the display name in a messenger's
	// handshake frame.
	NameFramePrefix = "name: "
)
