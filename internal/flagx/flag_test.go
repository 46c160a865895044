package flagx

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestFilterArgs(t *testing.T) {
	tests := []struct {
		name    string
		args    []string
		allowed []string
		want    []string
	}{
		{
			name:    "short flag with separate value",
			args:    []string{"-c", "moodkeeper.toml", "-a", "localhost"},
			allowed: []string{"-c", "-config"},
			want:    []string{"-c", "moodkeeper.toml"},
		},
		{
			name:    "equals form",
			args:    []string{"-config=alt.toml", "-a", "localhost"},
			allowed: []string{"-c", "-config"},
			want:    []string{"-config=alt.toml"},
		},
		{
			name:    "unknown flags ignored",
			args:    []string{"-x", "1", "--y=2", "positional"},
			allowed: []string{"-c"},
			want:    []string{},
		},
		{
			name:    "flag at end keeps no value",
			args:    []string{"-d"},
			allowed: []string{"-d"},
			want:    []string{"-d"},
		},
		{
			name:    "next dash token is not a value",
			args:    []string{"-c", "-l", "debug"},
			allowed: []string{"-c", "-l"},
			want:    []string{"-c", "-l", "debug"},
		},
		{
			name:    "several allowed flags preserve order",
			args:    []string{"-a", ":50051", "-m", "model.json", "--other", "x", "-t", "30"},
			allowed: []string{"-a", "-m", "-t"},
			want:    []string{"-a", ":50051", "-m", "model.json", "-t", "30"},
		},
		{
			name:    "empty args",
			args:    []string{},
			allowed: []string{"-c"},
			want:    []string{},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, FilterArgs(tt.args, tt.allowed))
		})
	}
}

func TestConfigFileFlag(t *testing.T) {
	assert.Equal(t, "/etc/mk.toml", ConfigFileFlag([]string{"-c", "/etc/mk.toml"}))
	assert.Equal(t, "/etc/long.toml", ConfigFileFlag([]string{"-config", "/etc/long.toml", "-a", ":1"}))
	assert.Equal(t, "/2.toml", ConfigFileFlag([]string{"-c", "/1.toml", "-config=/2.toml"}))
	assert.Empty(t, ConfigFileFlag([]string{"-x", "1"}))
	assert.Empty(t, ConfigFileFlag(nil))
}
