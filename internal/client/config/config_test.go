package config

import (
	"os"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadDefaults(t *testing.T) {
	var c Config
	c.LoadDefaults()

	assert.Equal(t, "https://www.highlight.url.tw/ai_fortune/php", c.FortuneBaseURL)
	assert.Equal(t, "https://www.highlight.url.tw/api/login_line.php", c.LoginURL)
	assert.Equal(t, "ai_fortune", c.AppID)
	assert.Equal(t, "fortune.db", c.StorageDSN)
	assert.Equal(t, 10*time.Second, c.RequestTimeout)
	assert.Equal(t, 5.0, c.RequestRate)
	assert.Equal(t, 10, c.RequestBurst)
	assert.Equal(t, "info", c.LogLevel)
}

func TestLoadConfig_UsesDefaultsBeforeParsing(t *testing.T) {
	origArgs := os.Args
	t.Cleanup(func() { os.Args = origArgs })
	os.Args = []string{"testbin"}

	cfg := LoadConfig()

	require.NotNil(t, cfg, "LoadConfig must not return nil")
	assert.Equal(t, "ai_fortune", cfg.AppID)
	assert.Equal(t, 10*time.Second, cfg.RequestTimeout)
}

func TestFilterArgs(t *testing.T) {
	tests := []struct {
		name  string
		args  []string
		known []string
		want  []string
	}{
		{
			name:  "separate values",
			args:  []string{"-u", "http://x", "-test.v", "-t", "3"},
			known: []string{"-u", "-t"},
			want:  []string{"-u", "http://x", "-t", "3"},
		},
		{
			name:  "equals form",
			args:  []string{"-config=a.json", "-other=1"},
			known: []string{"-config"},
			want:  []string{"-config=a.json"},
		},
		{
			name:  "flag without value",
			args:  []string{"-v", "-u", "http://x"},
			known: []string{"-v", "-u"},
			want:  []string{"-v", "-u", "http://x"},
		},
		{
			name:  "nothing known",
			args:  []string{"-x", "1"},
			known: []string{"-u"},
			want:  []string{},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, filterArgs(tt.args, tt.known...))
		})
	}
}
