package role

import (
	"context"
	"time"

	"tcpchat/config"
	"tcpchat/internal/console"
	"tcpchat/internal/interrupt"
	"tcpchat/internal/session"
)

// Viewer prints whatever the server broadcasts until the server goes
// away or a disconnect is requested through Signal.
type Viewer struct {
	Console  *console.Console
	Signal   *interrupt.Signal
	Interval time.Duration
}

func (v *Viewer) Name() string { return "viewer" }

func (v *Viewer) Frame() []byte { return []byte(config.ViewerFrame) }

func (v *Viewer) OnAccepted() {
	v.Console.Notice("Press Ctrl-C to exit the Viewer at any time.")
}

func (v *Viewer) OnRejected() {
	v.Console.Alert("The server didn't recognise us as a Viewer.")
}

func (v *Viewer) OnDisconnected() {
	v.Console.Notice("Disconnected.")
}

// Loop prints each batch of available bytes as one line.  Bytes are
// read in a single pass, so a message that arrives in several segments
// is printed in several pieces.
func (v *Viewer) Loop(ctx context.Context, s *session.Session) {
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()
	if v.Signal != nil {
		stop := context.AfterFunc(v.Signal.Context(), cancel)
		defer stop()
	}

	log := s.Logger()
	for s.Running() {
		data, err := s.ReadAvailable()
		if err != nil {
			log.Verbose("read failed: %v", err)
			remoteGone(s, v.Console)
			return
		}
		if len(data) > 0 {
			v.Console.Message(decode(data))
		}

		pause(ctx, v.Interval)

		if s.Disconnected(ctx) {
			remoteGone(s, v.Console)
		}
		if v.cancelled(ctx) {
			s.Stop(session.CauseCancelled)
		}
	}
}

func (v *Viewer) cancelled(ctx context.Context) bool {
	if v.Signal != nil && v.Signal.Requested() {
		return true
	}
	return ctx.Err() != nil
}
