package flagx

import (
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestFilterArgs(t *testing.T) {
	tests := []struct {
		name       string
		args       []string
		valueFlags []string
		boolFlags  []string
		want       []string
	}{
		{
			name:       "short flag with separate value",
			args:       []string{"-c", "conf.json", "-a", "localhost"},
			valueFlags: []string{"-c", "--config"},
			want:       []string{"-c", "conf.json"},
		},
		{
			name:       "long flag with equals",
			args:       []string{"--config=alt.json", "-a", "localhost"},
			valueFlags: []string{"-c", "--config"},
			want:       []string{"--config=alt.json"},
		},
		{
			name:       "unknown flags ignored",
			args:       []string{"-x", "1", "--y=2", "positional"},
			valueFlags: []string{"-c"},
			want:       []string{},
		},
		{
			name:       "flag followed by another flag keeps no value",
			args:       []string{"-c", "-notvalue"},
			valueFlags: []string{"-c"},
			want:       []string{"-c"},
		},
		{
			name:       "flag without value at end",
			args:       []string{"-c"},
			valueFlags: []string{"-c"},
			want:       []string{"-c"},
		},
		{
			name:       "bool flag does not swallow the next argument",
			args:       []string{"-m", "positional", "-a", ":3000"},
			valueFlags: []string{"-a"},
			boolFlags:  []string{"-m"},
			want:       []string{"-m", "-a", ":3000"},
		},
		{
			name:       "bool flag with explicit value",
			args:       []string{"-m=false", "-d", "dsn"},
			valueFlags: []string{"-d"},
			boolFlags:  []string{"-m"},
			want:       []string{"-m=false", "-d", "dsn"},
		},
		{
			name:       "empty args",
			args:       []string{},
			valueFlags: []string{"-c"},
			want:       []string{},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := FilterArgs(tt.args, tt.valueFlags, tt.boolFlags...)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestConfigFileFlag(t *testing.T) {
	orig := os.Args
	t.Cleanup(func() { os.Args = orig })

	tests := []struct {
		name string
		args []string
		want string
	}{
		{"short", []string{"bin", "-c", "a.json", "-a", ":1"}, "a.json"},
		{"long", []string{"bin", "-config", "b.json"}, "b.json"},
		{"inline", []string{"bin", "--config=c.json"}, "c.json"},
		{"absent", []string{"bin", "-a", ":1"}, ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			os.Args = tt.args
			assert.Equal(t, tt.want, ConfigFileFlag())
		})
	}
}
