package config

import (
	"testing"
	"time"
)

func TestLoadFromEnv_Host(t *testing.T) {
	t.Setenv("TCPCHAT_HOST", "chat.example.com")
	cfg := Default()
	LoadFromEnv(cfg)
	if cfg.Host != "chat.example.com" {
		t.Errorf("Host = %q, want %q", cfg.Host, "chat.example.com")
	}
}

func TestLoadFromEnv_Port(t *testing.T) {
	t.Setenv("TCPCHAT_PORT", "7000")
	cfg := Default()
	LoadFromEnv(cfg)
	if cfg.Port != 7000 {
		t.Errorf("Port = %d, want 7000", cfg.Port)
	}
}

func TestLoadFromEnv_Name(t *testing.T) {
	t.Setenv("TCPCHAT_NAME", "Alice")
	cfg := Default()
	LoadFromEnv(cfg)
	if cfg.Name != "Alice" {
		t.Errorf("Name = %q, want %q", cfg.Name, "Alice")
	}
}

func TestLoadFromEnv_Booleans(t *testing.T) {
	tests := []struct {
		key    string
		values []string
		get    func(*Config) bool
	}{
		{"TCPCHAT_VIEWER", []string{"1", "true", "yes", "TRUE", "Yes"}, func(c *Config) bool { return c.Viewer }},
		{"TCPCHAT_NO_DNS", []string{"1", "true"}, func(c *Config) bool { return c.NoDNS }},
		{"TCPCHAT_SSH_AGENT", []string{"yes"}, func(c *Config) bool { return c.UseSSHAgent }},
		{"TCPCHAT_STRICT_HOSTKEY", []string{"1"}, func(c *Config) bool { return c.StrictHostKey }},
		{"TCPCHAT_NO_COLOR", []string{"true"}, func(c *Config) bool { return c.NoColor }},
		{"TCPCHAT_STATS", []string{"1"}, func(c *Config) bool { return c.Stats }},
	}

	for _, tt := range tests {
		for _, v := range tt.values {
			t.Run(tt.key+"="+v, func(t *testing.T) {
				t.Setenv(tt.key, v)
				cfg := Default()
				LoadFromEnv(cfg)
				if !tt.get(cfg) {
					t.Errorf("%s=%s did not set the field", tt.key, v)
				}
			})
		}
	}
}

func TestLoadFromEnv_FalseValues(t *testing.T) {
	for _, v := range []string{"0", "false", "no", "maybe"} {
		t.Run(v, func(t *testing.T) {
			t.Setenv("TCPCHAT_VIEWER", v)
			cfg := Default()
			LoadFromEnv(cfg)
			if cfg.Viewer {
				t.Errorf("TCPCHAT_VIEWER=%s should not enable the viewer", v)
			}
		})
	}
}

func TestLoadFromEnv_NoColorConvention(t *testing.T) {
	t.Setenv("NO_COLOR", "anything")
	cfg := Default()
	LoadFromEnv(cfg)
	if !cfg.NoColor {
		t.Error("NO_COLOR should disable colour")
	}
}

func TestLoadFromEnv_LivenessWait(t *testing.T) {
	tests := []struct {
		value string
		want  time.Duration
	}{
		{"3", 3 * time.Second},
		{"10ms", 10 * time.Millisecond},
		{"1m", time.Minute},
		{"soon", DefaultLivenessWait},
		{"-5s", DefaultLivenessWait},
	}
	for _, tt := range tests {
		t.Run(tt.value, func(t *testing.T) {
			t.Setenv("TCPCHAT_LIVENESS_WAIT", tt.value)
			cfg := Default()
			LoadFromEnv(cfg)
			if cfg.LivenessWait != tt.want {
				t.Errorf("LivenessWait = %v, want %v", cfg.LivenessWait, tt.want)
			}
		})
	}
}

func TestLoadFromEnv_Gateway(t *testing.T) {
	t.Setenv("TCPCHAT_GATEWAY", "admin@bastion:2222")
	t.Setenv("TCPCHAT_SSH_KEY", "/tmp/id_test")
	t.Setenv("TCPCHAT_KNOWN_HOSTS", "/tmp/known_hosts")
	cfg := Default()
	LoadFromEnv(cfg)
	if cfg.GatewaySpec != "admin@bastion:2222" {
		t.Errorf("GatewaySpec = %q", cfg.GatewaySpec)
	}
	if cfg.SSHKeyPath != "/tmp/id_test" {
		t.Errorf("SSHKeyPath = %q", cfg.SSHKeyPath)
	}
	if cfg.KnownHostsPath != "/tmp/known_hosts" {
		t.Errorf("KnownHostsPath = %q", cfg.KnownHostsPath)
	}
}

func TestLoadFromEnv_InvalidIntIgnored(t *testing.T) {
	t.Setenv("TCPCHAT_PORT", "not-a-number")
	t.Setenv("TCPCHAT_VERBOSE", "abc")
	cfg := Default()
	LoadFromEnv(cfg)
	if cfg.Port != DefaultPort {
		t.Errorf("Port = %d, want default %d", cfg.Port, DefaultPort)
	}
	if cfg.Verbose != 0 {
		t.Errorf("Verbose = %d, want 0", cfg.Verbose)
	}
}

func TestLoadFromEnv_EmptyKeepsDefaults(t *testing.T) {
	t.Setenv("TCPCHAT_HOST", "")
	cfg := Default()
	LoadFromEnv(cfg)
	if cfg.Host != DefaultHost {
		t.Errorf("Host = %q, want %q", cfg.Host, DefaultHost)
	}
}
