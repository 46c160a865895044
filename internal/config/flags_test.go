package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseFlags(t *testing.T) {
	tests := []struct {
		name    string
		args    []string
		check   func(t *testing.T, c *Config)
		wantErr bool
	}{
		{
			name: "all flags",
			args: []string{"-a", "0.0.0.0:7000", "-b", "postgres", "-d", "postgres://db", "-s", "secret",
				"-t", "90", "-r", "4", "-l", "debug", "-m", "/m.json", "-dir", "/var/lib/mk"},
			check: func(t *testing.T, c *Config) {
				assert.Equal(t, "0.0.0.0:7000", c.GRPCAddr)
				assert.Equal(t, BackendPostgres, c.Backend)
				assert.Equal(t, "postgres://db", c.DatabaseDSN)
				assert.Equal(t, "secret", c.SecretKey)
				assert.Equal(t, 90*time.Minute, c.TokenValidity)
				assert.Equal(t, 4.0, c.RateLimit)
				assert.Equal(t, "debug", c.LogLevel)
				assert.Equal(t, "/m.json", c.ClassifierPath)
				assert.Equal(t, "/var/lib/mk", c.DataDir)
			},
		},
		{
			name: "unknown flags are filtered out",
			args: []string{"-x", "1", "-c", "conf.toml", "-a", ":9"},
			check: func(t *testing.T, c *Config) {
				assert.Equal(t, ":9", c.GRPCAddr)
				assert.Equal(t, 30*24*time.Hour, c.TokenValidity)
			},
		},
		{
			name:    "bad number",
			args:    []string{"-t", "soon"},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var c Config
			c.LoadDefaults()

			err := parseFlags(&c, tt.args)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			tt.check(t, &c)
		})
	}
}

func TestLoadConfig_Precedence(t *testing.T) {
	t.Setenv("MOODKEEPER_GRPC_ADDR", "env:1")
	t.Setenv("MOODKEEPER_LOG_LEVEL", "warn")
	path := writeTempTOML(t, "grpc_addr = \"file:2\"\nsecret_key = \"from-file\"\n")

	cfg, err := LoadConfig([]string{"-config", path, "-a", "flag:3"})
	require.NoError(t, err)

	assert.Equal(t, "flag:3", cfg.GRPCAddr)
	assert.Equal(t, "from-file", cfg.SecretKey)
	assert.Equal(t, "warn", cfg.LogLevel)
}

func TestLoadConfig_NoArgs(t *testing.T) {
	cfg, err := LoadConfig(nil)
	require.NoError(t, err)
	assert.Equal(t, BackendFile, cfg.Backend)
}
