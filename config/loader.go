package config

// loader.go - configuration loading from environment variables.
//
// Precedence order (highest wins):
//   1. CLI flags  (handled by cmd/root.go)
//   2. Environment variables  (this file)
//   3. Defaults   (defaults.go)

import (
	"os"
	"strconv"
	"strings"
	"time"
)

// ── Environment variable mapping ─────────────────────────────────────
//
// Every supported env var uses the TCPCHAT_ prefix.  Boolean values
// accept "1", "true", "yes" (case-insensitive).  NO_COLOR is honoured
// as well, following https://no-color.org.

// LoadFromEnv overlays environment variables onto cfg.  Only non-empty
// env vars override the existing value.  This should be called BEFORE
// CLI flag parsing so that flags take precedence.
func LoadFromEnv(cfg *Config) {
	if v := os.Getenv("TCPCHAT_HOST"); v != "" {
		cfg.Host = v
	}
	if v := envInt("TCPCHAT_PORT"); v > 0 {
		cfg.Port = v
	}
	if v := os.Getenv("TCPCHAT_NAME"); v != "" {
		cfg.Name = v
	}
	if envBool("TCPCHAT_VIEWER") {
		cfg.Viewer = true
	}
	if envBool("TCPCHAT_NO_DNS") {
		cfg.NoDNS = true
	}
	if v := envDuration("TCPCHAT_LIVENESS_WAIT"); v > 0 {
		cfg.LivenessWait = v
	}

	// SSH gateway
	if v := os.Getenv("TCPCHAT_GATEWAY"); v != "" {
		cfg.GatewaySpec = v
	}
	if v := os.Getenv("TCPCHAT_SSH_KEY"); v != "" {
		cfg.SSHKeyPath = v
	}
	if envBool("TCPCHAT_SSH_PASSWORD") {
		cfg.SSHPassword = true
	}
	if envBool("TCPCHAT_SSH_AGENT") {
		cfg.UseSSHAgent = true
	}
	if envBool("TCPCHAT_STRICT_HOSTKEY") {
		cfg.StrictHostKey = true
	}
	if v := os.Getenv("TCPCHAT_KNOWN_HOSTS"); v != "" {
		cfg.KnownHostsPath = v
	}

	// Output
	if v := envInt("TCPCHAT_VERBOSE"); v > 0 {
		cfg.Verbose = v
	}
	if envBool("TCPCHAT_NO_COLOR") || os.Getenv("NO_COLOR") != "" {
		cfg.NoColor = true
	}
	if envBool("TCPCHAT_STATS") {
		cfg.Stats = true
	}
}

// ── helpers ──────────────────────────────────────────────────────────

func envInt(key string) int {
	v := os.Getenv(key)
	if v == "" {
		return 0
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return 0
	}
	return n
}

func envBool(key string) bool {
	v := strings.ToLower(os.Getenv(key))
	return v == "1" || v == "true" || v == "yes"
}

// envDuration accepts a Go duration ("250ms", "10s") or a bare number
// of seconds.
func envDuration(key string) time.Duration {
	v := os.Getenv(key)
	if v == "" {
		return 0
	}
	if d, err := time.ParseDuration(v); err == nil {
		return d
	}
	if n, err := strconv.Atoi(v); err == nil {
		return time.Duration(n) * time.Second
	}
	return 0
}
