package core

import (
	"bufio"
	"io"
	"os"

	"github.com/google/uuid"

	"tcpchat/config"
	"tcpchat/internal/console"
	"tcpchat/internal/interrupt"
	"tcpchat/internal/metrics"
	"tcpchat/internal/role"
	"tcpchat/internal/session"
	"tcpchat/internal/transport"
	"tcpchat/tunnel"
	"tcpchat/util"
)

// Env carries the process-level handles a mode runs against.  Nil
// fields fall back to the process's standard streams.
type Env struct {
	Input   *bufio.Reader     // messenger line source
	Console *console.Console  // user-facing output
	Signal  *interrupt.Signal // viewer disconnect request
	Stats   io.Writer         // statistics sink for --stats
}

// Build constructs the chat mode for the given configuration.
func Build(cfg *config.Config, logger *util.Logger, env Env) (Mode, error) {
	if _, err := util.ResolveAddr(cfg.Host, cfg.Port, cfg.NoDNS); err != nil {
		return nil, err
	}
	if env.Console == nil {
		env.Console = console.New(os.Stdout, false)
	}
	if env.Input == nil {
		env.Input = bufio.NewReader(os.Stdin)
	}

	id := uuid.NewString()
	stats := metrics.New(id)
	sess := session.New(session.Options{
		ID:         id,
		Host:       cfg.Host,
		Port:       cfg.Port,
		BufferSize: cfg.BufferSize,
		Dialer:     buildDialer(cfg, logger),
		Detector:   session.Detector{Wait: cfg.LivenessWait},
		Logger:     logger,
		Metrics:    stats,
	})

	mode := &ChatMode{
		Session: sess,
		Role:    buildRole(cfg, env),
		Console: env.Console,
		Logger:  logger,
		Metrics: stats,
	}
	if cfg.Stats {
		mode.Stats = env.Stats
		if mode.Stats == nil {
			mode.Stats = os.Stderr
		}
	}
	return mode, nil
}

// ── shared helpers ───────────────────────────────────────────────────

// buildRole selects the messenger or the viewer.
func buildRole(cfg *config.Config, env Env) role.Role {
	if cfg.Viewer {
		return &role.Viewer{
			Console:  env.Console,
			Signal:   env.Signal,
			Interval: cfg.PollInterval,
		}
	}
	return &role.Messenger{
		DisplayName: cfg.Name,
		Input:       env.Input,
		Console:     env.Console,
		Interval:    cfg.PollInterval,
	}
}

// buildDialer creates the right transport.Dialer for the given config.
func buildDialer(cfg *config.Config, logger *util.Logger) transport.Dialer {
	if cfg.GatewayEnabled {
		return transport.NewGatewayDialer(&tunnel.SSHConfig{
			User:          cfg.GatewayUser,
			Host:          cfg.GatewayHost,
			Port:          cfg.GatewayPort,
			KeyPath:       cfg.SSHKeyPath,
			PromptPass:    cfg.SSHPassword,
			UseAgent:      cfg.UseSSHAgent,
			StrictHostKey: cfg.StrictHostKey,
			KnownHosts:    cfg.KnownHostsPath,
			ConnTimeout:   config.DefaultGatewayTimeout,
		}, logger)
	}
	return &transport.TCPDialer{BufferSize: cfg.BufferSize}
}
