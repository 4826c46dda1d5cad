package role

import (
	"bufio"
	"context"
	"strings"
	"time"

	"tcpchat/config"
	"tcpchat/internal/console"
	"tcpchat/internal/session"
)

// Messenger reads lines from Input and sends each non-empty one to the
// server.  "quit" or "exit", in any case, ends the session.
type Messenger struct {
	DisplayName string
	Input       *bufio.Reader
	Console     *console.Console
	Interval    time.Duration
}

func (m *Messenger) Name() string { return "messenger" }

func (m *Messenger) Frame() []byte {
	return []byte(config.NameFramePrefix + m.DisplayName)
}

func (m *Messenger) OnAccepted() {}

func (m *Messenger) OnRejected() {
	m.Console.Alert("Connection to the server refused...")
}

func (m *Messenger) OnDisconnected() {
	m.Console.Notice("Disconnected")
}

// Loop blocks on one input line per iteration.  A line read cannot be
// interrupted, so cancellation of ctx is observed between lines.
func (m *Messenger) Loop(ctx context.Context, s *session.Session) {
	log := s.Logger()
	for s.Running() {
		if ctx.Err() != nil {
			s.Stop(session.CauseCancelled)
			return
		}

		m.Console.Prompt(m.DisplayName)
		line, err := console.ReadLine(m.Input)
		if err != nil {
			log.Verbose("input closed: %v", err)
			m.Console.Message("")
			m.quit(s)
			return
		}

		if isQuit(line) {
			m.quit(s)
			return
		}
		if line != "" {
			if err := s.Send([]byte(line)); err != nil {
				log.Verbose("send failed: %v", err)
				remoteGone(s, m.Console)
				return
			}
		}

		pause(ctx, m.Interval)

		if s.Disconnected(ctx) {
			remoteGone(s, m.Console)
		}
	}
}

func (m *Messenger) quit(s *session.Session) {
	m.Console.Notice("Disconnecting...")
	s.Stop(session.CauseLocalQuit)
}

func isQuit(line string) bool {
	return strings.EqualFold(line, "quit") || strings.EqualFold(line, "exit")
}
