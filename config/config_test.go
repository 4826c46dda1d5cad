package config

import (
	"testing"
	"time"
)

// ── ParseGatewaySpec ─────────────────────────────────────────────────

func TestParseGatewaySpec(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		wantUser string
		wantHost string
		wantPort int
		wantErr  bool
	}{
		{"full", "admin@bastion.example.com:2222", "admin", "bastion.example.com", 2222, false},
		{"no port", "root@gateway", "root", "gateway", 22, false},
		{"no user", "jump-host:2200", "", "jump-host", 2200, false},
		{"host only", "gateway.local", "", "gateway.local", 22, false},
		{"bad port", "user@host:999999", "", "", 0, true},
		{"zero port", "host:0", "", "", 0, true},
		{"empty", "", "", "", 0, true},
		{"colon only", ":", "", "", 0, true},
		{"no host", ":22", "", "", 0, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			user, host, port, err := ParseGatewaySpec(tt.input)
			if (err != nil) != tt.wantErr {
				t.Fatalf("error = %v, wantErr = %v", err, tt.wantErr)
			}
			if err != nil {
				return
			}
			if user != tt.wantUser || host != tt.wantHost || port != tt.wantPort {
				t.Errorf("got (%q, %q, %d), want (%q, %q, %d)",
					user, host, port, tt.wantUser, tt.wantHost, tt.wantPort)
			}
		})
	}
}

// ── ParsePort ────────────────────────────────────────────────────────

func TestParsePort(t *testing.T) {
	tests := []struct {
		input   string
		want    int
		wantErr bool
	}{
		{"6000", 6000, false},
		{"1", 1, false},
		{"65535", 65535, false},
		{"0", 0, true},
		{"70000", 0, true},
		{"abc", 0, true},
		{"-1", 0, true},
		{"", 0, true},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			got, err := ParsePort(tt.input)
			if (err != nil) != tt.wantErr {
				t.Fatalf("ParsePort(%q) error = %v, wantErr = %v", tt.input, err, tt.wantErr)
			}
			if got != tt.want {
				t.Errorf("ParsePort(%q) = %d, want %d", tt.input, got, tt.want)
			}
		})
	}
}

// ── Defaults and frames ──────────────────────────────────────────────

func TestDefault(t *testing.T) {
	cfg := Default()
	if cfg.Host != "localhost" || cfg.Port != 6000 {
		t.Errorf("default endpoint = %s:%d", cfg.Host, cfg.Port)
	}
	if cfg.BufferSize != 2048 {
		t.Errorf("BufferSize = %d, want 2048", cfg.BufferSize)
	}
	if cfg.PollInterval != 10*time.Millisecond {
		t.Errorf("PollInterval = %v, want 10ms", cfg.PollInterval)
	}
	if cfg.LivenessWait != 10*time.Second {
		t.Errorf("LivenessWait = %v, want 10s", cfg.LivenessWait)
	}
	if err := cfg.Validate(); err != nil {
		t.Errorf("default config should validate: %v", err)
	}
}

func TestHandshakeFrame(t *testing.T) {
	tests := []struct {
		name string
		cfg  Config
		want string
		role string
	}{
		{"messenger", Config{Name: "Alice"}, "name: Alice", "messenger"},
		{"messenger unicode", Config{Name: "Zoë"}, "name: Zoë", "messenger"},
		{"viewer", Config{Viewer: true}, "viewer", "viewer"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.cfg.HandshakeFrame(); got != tt.want {
				t.Errorf("HandshakeFrame() = %q, want %q", got, tt.want)
			}
			if got := tt.cfg.Role(); got != tt.role {
				t.Errorf("Role() = %q, want %q", got, tt.role)
			}
		})
	}
}

// ── Validate ─────────────────────────────────────────────────────────

func TestValidate(t *testing.T) {
	valid := func(mut func(*Config)) *Config {
		c := Default()
		mut(c)
		return c
	}

	tests := []struct {
		name    string
		cfg     *Config
		wantErr bool
	}{
		{"messenger", valid(func(c *Config) { c.Name = "Alice" }), false},
		{"messenger without name yet", valid(func(c *Config) {}), false},
		{"viewer", valid(func(c *Config) { c.Viewer = true }), false},
		{"numeric host with no-dns", valid(func(c *Config) { c.Host = "127.0.0.1"; c.NoDNS = true }), false},
		{"gateway", valid(func(c *Config) { c.GatewayEnabled = true; c.GatewayHost = "gw" }), false},
		{"empty host", valid(func(c *Config) { c.Host = "" }), true},
		{"hostname with no-dns", valid(func(c *Config) { c.NoDNS = true }), true},
		{"port zero", valid(func(c *Config) { c.Port = 0 }), true},
		{"port too high", valid(func(c *Config) { c.Port = 70000 }), true},
		{"zero liveness wait", valid(func(c *Config) { c.LivenessWait = 0 }), true},
		{"viewer with name", valid(func(c *Config) { c.Viewer = true; c.Name = "Alice" }), true},
		{"multi-line name", valid(func(c *Config) { c.Name = "Al\nice" }), true},
		{"gateway without host", valid(func(c *Config) { c.GatewayEnabled = true }), true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.cfg.Validate()
			if (err != nil) != tt.wantErr {
				t.Errorf("Validate() = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}
