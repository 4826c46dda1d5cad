// Package role implements the two chat client roles.  A role supplies
// the handshake frame, reacts to the handshake outcome and drives the
// session loop until the session stops.
package role

import (
	"context"
	"strings"
	"time"

	"tcpchat/internal/console"
	"tcpchat/internal/session"
)

// Role is one side of the chat protocol as seen by the client.
type Role interface {
	// Name identifies the role in logs.
	Name() string
	// Frame returns the handshake payload sent right after connect.
	Frame() []byte
	OnAccepted()
	OnRejected()
	// Loop runs while the session is running and returns once it has
	// stopped.  It never cleans the session up.
	Loop(ctx context.Context, s *session.Session)
	// OnDisconnected is called after cleanup of a session that ran.
	OnDisconnected()
}

// DefaultInterval is the pause between loop iterations.
const DefaultInterval = 10 * time.Millisecond

// pause sleeps for d, returning early if ctx ends.
func pause(ctx context.Context, d time.Duration) {
	if d <= 0 {
		d = DefaultInterval
	}
	t := time.NewTimer(d)
	defer t.Stop()
	select {
	case <-t.C:
	case <-ctx.Done():
	}
}

// remoteGone stops s because the server went away and says so.
func remoteGone(s *session.Session, con *console.Console) {
	if s.Stop(session.CauseRemoteDisconnect) {
		con.Alert("Server has disconnected from us.")
	}
}

// decode turns received bytes into printable text, replacing invalid
// UTF-8 sequences.
func decode(p []byte) string {
	return strings.ToValidUTF8(string(p), "\uFFFD")
}
