package core

import (
	"context"
	"fmt"
	"io"

	"tcpchat/internal/console"
	"tcpchat/internal/metrics"
	"tcpchat/internal/role"
	"tcpchat/internal/session"
	"tcpchat/util"
)

// ChatMode connects, identifies itself, runs the role loop and cleans
// up.  Session failures are reported on the console, not returned.
type ChatMode struct {
	Session *session.Session
	Role    role.Role
	Console *console.Console
	Logger  *util.Logger
	Metrics *metrics.Collector

	// Stats receives the JSON statistics snapshot when non-nil.
	Stats io.Writer
}

// Run drives one session to completion.  It always returns nil once the
// mode is built; cleanup happens on every path.
func (m *ChatMode) Run(ctx context.Context) error {
	defer m.report()

	addr := m.Session.Address()
	m.Logger.Verbose("%s connecting to %s", m.Role.Name(), addr)

	remote, err := m.Session.Connect(ctx)
	if err != nil {
		m.Logger.Verbose("%v", err)
		m.Console.Alert("Wasn't able to connect to the server at %s.", addr)
		m.finish()
		return nil
	}
	m.Console.Notice("Connected to the server at %s.", remote)

	if !m.Session.Negotiate(ctx, m.Role.Frame()) {
		m.Role.OnRejected()
		m.finish()
		return nil
	}
	m.Role.OnAccepted()

	m.Role.Loop(ctx, m.Session)
	m.finish()
	return nil
}

func (m *ChatMode) finish() {
	m.Session.Cleanup()
	if m.Session.Started() {
		m.Role.OnDisconnected()
	}
	m.Logger.Verbose("session ended: %s", m.Session.Cause())
}

func (m *ChatMode) report() {
	if m.Metrics == nil {
		return
	}
	snapshot := m.Metrics.JSON()
	m.Logger.Debug("session stats: %s", snapshot)
	if m.Stats != nil {
		fmt.Fprintln(m.Stats, snapshot)
	}
}
