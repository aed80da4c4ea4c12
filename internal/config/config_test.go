package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.test.yaml")
	require.NoError(t, os.WriteFile(path, []byte(body), 0o600))
	return path
}

func TestLoadFileMissingUsesDefaults(t *testing.T) {
	cfg, err := LoadFile(filepath.Join(t.TempDir(), "nope.yaml"))
	require.NoError(t, err)

	assert.Equal(t, "release", cfg.Mode)
	assert.Equal(t, 8080, cfg.Port)
	assert.Equal(t, 54*time.Second, cfg.PingPeriod)
	assert.Equal(t, 60*time.Second, cfg.PongWait)
	assert.Equal(t, 64, cfg.SendBuffer)
	assert.Equal(t, []string{"stun:stun.l.google.com:19302"}, cfg.ICEServers)
	assert.Empty(t, cfg.ObserverToken)
}

func TestLoadFileOverrides(t *testing.T) {
	path := writeConfig(t, `
mode: debug
port: 9001
ping_period: 10s
pong_wait: 20s
observer_token: hunter2
ice_servers:
  - stun:stun.example.org:3478
  - turn:turn.example.org:3478
turn_username: u
turn_credential: p
signal_rate: 5
signal_burst: 10
`)
	cfg, err := LoadFile(path)
	require.NoError(t, err)

	assert.Equal(t, "debug", cfg.Mode)
	assert.Equal(t, 9001, cfg.Port)
	assert.Equal(t, 10*time.Second, cfg.PingPeriod)
	assert.Equal(t, 20*time.Second, cfg.PongWait)
	assert.Equal(t, "hunter2", cfg.ObserverToken)
	assert.Len(t, cfg.ICEServers, 2)
	assert.Equal(t, 5.0, cfg.SignalRate)
	assert.Equal(t, 10, cfg.SignalBurst)
	// untouched keys keep defaults
	assert.Equal(t, 36, cfg.MaxNameLen)
}

func TestLoadFileEnvOverride(t *testing.T) {
	t.Setenv("PATCHBAY_PORT", "7070")
	t.Setenv("PATCHBAY_OBSERVER_TOKEN", "from-env")
	cfg, err := LoadFile(filepath.Join(t.TempDir(), "nope.yaml"))
	require.NoError(t, err)
	assert.Equal(t, 7070, cfg.Port)
	assert.Equal(t, "from-env", cfg.ObserverToken)
}

func TestLoadFileRejectsBrokenYAML(t *testing.T) {
	path := writeConfig(t, "port: [oops\n")
	_, err := LoadFile(path)
	assert.Error(t, err)
}

func TestValidate(t *testing.T) {
	base := func() Config {
		return Config{Port: 8080, SendBuffer: 8, PingPeriod: time.Second, PongWait: 2 * time.Second}
	}
	tests := []struct {
		name    string
		mutate  func(*Config)
		wantErr bool
	}{
		{name: "ok", mutate: func(*Config) {}},
		{name: "bad port", mutate: func(c *Config) { c.Port = 0 }, wantErr: true},
		{name: "no buffer", mutate: func(c *Config) { c.SendBuffer = 0 }, wantErr: true},
		{name: "ping not shorter than pong", mutate: func(c *Config) { c.PingPeriod = 2 * time.Second }, wantErr: true},
		{name: "keepalive disabled", mutate: func(c *Config) { c.PongWait = 0; c.PingPeriod = 0 }},
		{name: "negative rate", mutate: func(c *Config) { c.SignalRate = -1 }, wantErr: true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := base()
			tt.mutate(&c)
			err := c.Validate()
			if tt.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}
