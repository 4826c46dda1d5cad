// Package tunnel reaches chat servers that sit behind an SSH bastion:
// the chat stream is forwarded over the gateway's SSH connection with
// a direct-tcpip channel.
package tunnel

import (
	"context"
	"errors"
	"fmt"
	"net"
	"strings"
	"sync"
	"time"

	"golang.org/x/crypto/ssh"
	"golang.org/x/crypto/ssh/knownhosts"

	ncerr "tcpchat/internal/errors"
	"tcpchat/util"
)

// Tunnel is a gateway the chat connection can be forwarded through.
// Connections it returns must support read deadlines, since the
// session's disconnect check is deadline driven.
type Tunnel interface {
	Connect(ctx context.Context) error
	Dial(ctx context.Context, network, address string) (net.Conn, error)
	// IsAlive reports whether the gateway session is still up; a dead
	// one is reconnected on the next Dial.
	IsAlive() bool
	Close() error
}

// SSHConfig holds everything needed to reach an SSH gateway.
type SSHConfig struct {
	User          string
	Host          string
	Port          int
	KeyPath       string
	PromptPass    bool
	UseAgent      bool
	StrictHostKey bool
	KnownHosts    string
	ConnTimeout   time.Duration

	// ReadSecret reads a password or key passphrase without echo.
	// Defaults to reading from the controlling terminal.
	ReadSecret func(prompt string) ([]byte, error)
}

// SSHTunnel implements [Tunnel] by opening an SSH connection to the
// gateway and forwarding the chat stream with ssh.Client.Dial.
type SSHTunnel struct {
	config *SSHConfig
	client *ssh.Client
	logger *util.Logger
	mu     sync.RWMutex
	alive  bool
}

// NewSSHTunnel creates a tunnel that is ready to [SSHTunnel.Connect].
func NewSSHTunnel(cfg *SSHConfig, logger *util.Logger) *SSHTunnel {
	if cfg.Port == 0 {
		cfg.Port = 22
	}
	if cfg.ConnTimeout == 0 {
		cfg.ConnTimeout = 30 * time.Second
	}
	return &SSHTunnel{config: cfg, logger: logger}
}

// Connect dials the gateway and completes the SSH handshake.
func (t *SSHTunnel) Connect(ctx context.Context) error {
	authMethods, err := BuildAuthMethods(t.config)
	if err != nil {
		return ncerr.WrapSSH("auth", t.config.Host, t.config.Port, err)
	}

	hkCallback, err := hostKeyCallback(t.config)
	if err != nil {
		return ncerr.WrapSSH("hostkey", t.config.Host, t.config.Port, err)
	}

	sshCfg := &ssh.ClientConfig{
		User:            t.config.User,
		Auth:            authMethods,
		HostKeyCallback: hkCallback,
		Timeout:         t.config.ConnTimeout,
	}

	addr := util.FormatAddr(t.config.Host, t.config.Port)
	t.logger.Debug("gateway: dialing %s as %q", addr, t.config.User)

	// Context-aware dial so an interrupt can abort a hanging gateway.
	dialer := net.Dialer{Timeout: t.config.ConnTimeout}
	tcpConn, err := dialer.DialContext(ctx, "tcp", addr)
	if err != nil {
		return ncerr.Wrap("dial", addr, err)
	}

	sshConn, chans, reqs, err := ssh.NewClientConn(tcpConn, addr, sshCfg)
	if err != nil {
		tcpConn.Close()
		return ncerr.WrapSSH("handshake", t.config.Host, t.config.Port, classifyHandshake(err))
	}

	client := ssh.NewClient(sshConn, chans, reqs)

	t.mu.Lock()
	t.client = client
	t.alive = true
	t.mu.Unlock()

	go t.monitor(client)

	return nil
}

// Dial forwards a connection to address through the gateway.
func (t *SSHTunnel) Dial(_ context.Context, network, address string) (net.Conn, error) {
	t.mu.RLock()
	client := t.client
	alive := t.alive
	t.mu.RUnlock()

	if !alive || client == nil {
		return nil, ncerr.ErrNotConnected
	}

	t.logger.Debug("gateway: forwarding %s %s", network, address)
	channel, err := client.Dial(network, address)
	if err != nil {
		return nil, ncerr.WrapSSH("forward", t.config.Host, t.config.Port, err)
	}
	return newForwardedConn(channel), nil
}

// Close shuts down the SSH connection.
func (t *SSHTunnel) Close() error {
	t.mu.Lock()
	defer t.mu.Unlock()

	t.alive = false
	if t.client != nil {
		err := t.client.Close()
		t.client = nil
		return err
	}
	return nil
}

// IsAlive reports whether the gateway is still connected.
func (t *SSHTunnel) IsAlive() bool {
	t.mu.RLock()
	defer t.mu.RUnlock()
	return t.alive
}

// monitor blocks until the SSH connection closes and flips the alive flag.
func (t *SSHTunnel) monitor(client *ssh.Client) {
	err := client.Wait()

	t.mu.Lock()
	if t.client == client {
		t.alive = false
	}
	t.mu.Unlock()

	if err != nil {
		t.logger.Debug("gateway closed: %v", err)
	} else {
		t.logger.Debug("gateway closed")
	}
}

// classifyHandshake tags handshake failures with the matching sentinel
// so callers can test for them with errors.Is.
func classifyHandshake(err error) error {
	var keyErr *knownhosts.KeyError
	switch {
	case errors.As(err, &keyErr):
		return fmt.Errorf("%w: %v", ncerr.ErrHostKeyMismatch, err)
	case strings.Contains(err.Error(), "unable to authenticate"):
		return fmt.Errorf("%w: %v", ncerr.ErrAuthFailed, err)
	}
	return err
}
