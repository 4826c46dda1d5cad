// Package core is the orchestration layer.  It composes a transport, a
// session and a role into a complete chat run and provides a builder
// that assembles one from a Config.
//
// Architecture layers (bottom → top):
//
//	transport  →  session  →  role  →  core  →  cmd (CLI)
//
// The builder in this package is the single dispatch point between the
// messenger and viewer roles and between a direct and a gateway
// connection.
package core

import "context"

// Mode represents a complete run of the client.  A mode owns its full
// lifecycle from connection establishment to teardown.
type Mode interface {
	Run(ctx context.Context) error
}
