package transport

import (
	"context"
	"fmt"
	"net"
	"sync"

	"tcpchat/tunnel"
	"tcpchat/util"
)

// GatewayDialer routes the chat connection through an SSH gateway.
// The gateway is connected lazily on the first Dial call and torn down
// on Close.
type GatewayDialer struct {
	tunnel    tunnel.Tunnel
	config    *tunnel.SSHConfig
	logger    *util.Logger
	mu        sync.Mutex
	connected bool
}

// NewGatewayDialer creates a dialer that forwards connections through
// an SSH gateway.  The gateway is not contacted until the first Dial.
func NewGatewayDialer(cfg *tunnel.SSHConfig, logger *util.Logger) *GatewayDialer {
	return &GatewayDialer{
		tunnel: tunnel.NewSSHTunnel(cfg, logger),
		config: cfg,
		logger: logger,
	}
}

// connect establishes the gateway session if not already connected.
func (d *GatewayDialer) connect(ctx context.Context) error {
	d.mu.Lock()
	defer d.mu.Unlock()

	if d.connected && d.tunnel.IsAlive() {
		return nil
	}

	d.logger.Verbose("opening SSH gateway %s@%s:%d",
		d.config.User, d.config.Host, d.config.Port)

	if err := d.tunnel.Connect(ctx); err != nil {
		return fmt.Errorf("gateway: %w", err)
	}

	d.connected = true
	d.logger.Verbose("SSH gateway established")
	return nil
}

// Dial connects to address through the gateway, lazily establishing the
// gateway session on the first call.
func (d *GatewayDialer) Dial(ctx context.Context, network, address string) (net.Conn, error) {
	if err := d.connect(ctx); err != nil {
		return nil, err
	}
	return d.tunnel.Dial(ctx, network, address)
}

// Close tears down the gateway session.
func (d *GatewayDialer) Close() error {
	d.mu.Lock()
	defer d.mu.Unlock()

	if d.connected {
		d.connected = false
		return d.tunnel.Close()
	}
	return nil
}
