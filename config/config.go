// Package config defines the runtime configuration for tcpchat and
// provides helpers for parsing gateway specifications and ports.
package config

import (
	"fmt"
	"net"
	"regexp"
	"strconv"
	"strings"
	"time"

	ncerr "tcpchat/internal/errors"
)

// Config holds every tuneable for a single chat session.
type Config struct {
	// ── Connection ───────────────────────────────────────────────────
	Host         string
	Port         int
	NoDNS        bool
	BufferSize   int           // fixed at DefaultBufferSize
	LivenessWait time.Duration // disconnect-check wait
	PollInterval time.Duration // fixed at DefaultPollInterval

	// ── Role ─────────────────────────────────────────────────────────
	Name   string // messenger display name
	Viewer bool

	// ── SSH gateway ──────────────────────────────────────────────────
	GatewaySpec    string // raw user@host[:port] from -G
	GatewayEnabled bool
	GatewayUser    string
	GatewayHost    string
	GatewayPort    int
	SSHKeyPath     string
	SSHPassword    bool // true → prompt interactively
	UseSSHAgent    bool
	StrictHostKey  bool
	KnownHostsPath string

	// ── Output ───────────────────────────────────────────────────────
	Verbose int
	NoColor bool
	Stats   bool
}

// Default returns a Config populated with the package defaults.
func Default() *Config {
	return &Config{
		Host:         DefaultHost,
		Port:         DefaultPort,
		BufferSize:   DefaultBufferSize,
		LivenessWait: DefaultLivenessWait,
		PollInterval: DefaultPollInterval,
	}
}

// Role returns "viewer" or "messenger".
func (c *Config) Role() string {
	if c.Viewer {
		return "viewer"
	}
	return "messenger"
}

// HandshakeFrame returns the identity frame sent right after connect.
func (c *Config) HandshakeFrame() string {
	if c.Viewer {
		return ViewerFrame
	}
	return NameFramePrefix + c.Name
}

// ── Port helper ──────────────────────────────────────────────────────

// ParsePort accepts a decimal port number in 1-65535.
func ParsePort(spec string) (int, error) {
	port, err := strconv.Atoi(spec)
	if err != nil {
		return 0, fmt.Errorf("invalid port %q", spec)
	}
	if port < 1 || port > 65535 {
		return 0, fmt.Errorf("port %d out of range 1-65535", port)
	}
	return port, nil
}

// ── Gateway-spec parser ──────────────────────────────────────────────

// gatewayRe matches [user@]host[:port].
var gatewayRe = regexp.MustCompile(`^(?:([^@]+)@)?([^:]+)(?::(\d+))?$`)

// ParseGatewaySpec extracts user, host, and port from a string such as
// "admin@bastion.example.com:2222".  Port defaults to 22.
func ParseGatewaySpec(spec string) (user, host string, port int, err error) {
	m := gatewayRe.FindStringSubmatch(spec)
	if m == nil {
		return "", "", 0, fmt.Errorf("invalid gateway spec %q – expected [user@]host[:port]", spec)
	}
	user = m[1]
	host = m[2]
	port = DefaultSSHPort
	if m[3] != "" {
		port, err = strconv.Atoi(m[3])
		if err != nil || port < 1 || port > 65535 {
			return "", "", 0, fmt.Errorf("invalid gateway port %q", m[3])
		}
	}
	return user, host, port, nil
}

// ── Validation ───────────────────────────────────────────────────────

// Validate checks that the configuration is internally consistent.  The
// messenger name may still be empty here; the CLI prompts for it.
func (c *Config) Validate() error {
	if c.Host == "" {
		return &ncerr.ConfigError{
			Field:   "host",
			Message: "server address is required",
			Hint:    "pass it as the first positional argument or set TCPCHAT_HOST",
		}
	}
	if c.NoDNS && net.ParseIP(c.Host) == nil {
		return &ncerr.ConfigError{
			Field:   "no-dns",
			Value:   c.Host,
			Message: "host is not a numeric IP address",
			Hint:    "drop --no-dns or pass an IP address",
		}
	}
	if c.Port < 1 || c.Port > 65535 {
		return &ncerr.ConfigError{
			Field:   "port",
			Value:   c.Port,
			Message: "out of range 1-65535",
		}
	}
	if c.LivenessWait <= 0 {
		return &ncerr.ConfigError{
			Field:   "liveness-wait",
			Value:   c.LivenessWait,
			Message: "must be positive",
			Hint:    fmt.Sprintf("the default is %s", DefaultLivenessWait),
		}
	}

	if c.Viewer && c.Name != "" {
		return &ncerr.ConfigError{
			Field:   "name",
			Value:   c.Name,
			Message: "a viewer does not have a display name",
			Hint:    "drop --name, or drop --viewer to chat",
		}
	}
	if strings.ContainsAny(c.Name, "\r\n") {
		return &ncerr.ConfigError{
			Field:   "name",
			Message: "must be a single line",
		}
	}

	if c.GatewayEnabled && c.GatewayHost == "" {
		return &ncerr.ConfigError{
			Field:   "gateway",
			Value:   c.GatewaySpec,
			Message: "gateway host is required",
			Hint:    "use -G [user@]host[:port]",
		}
	}
	return nil
}
