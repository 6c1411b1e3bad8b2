package config

import (
	"flag"
	"os"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseFlags(t *testing.T) {

	tests := []struct {
		expected    *Config
		name        string
		args        []string
		expectPanic bool
	}{
		{name: "Test1 OK", args: []string{"cmd",
			"-a", "127.0.0.1:9090", "-d", "db", "-s", "secret", "-f", "/tmp/key",
			"-t", "30", "-r", "10080", "-o", "http://localhost:3000,https://app.example.com",
		}, expectPanic: false,
			expected: &Config{
				EndpointAddr:                 "127.0.0.1:9090",
				DatabaseDSN:                  "db",
				SecretKey:                    "secret",
				SecretKeyFile:                "/tmp/key",
				AccessTokenValidityDuration:  30 * time.Minute,
				RefreshTokenValidityDuration: 10080 * time.Minute,
				AllowedOrigins:               []string{"http://localhost:3000", "https://app.example.com"},
			}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			flag.CommandLine = flag.NewFlagSet(os.Args[0], flag.PanicOnError)

			os.Args = tt.args

			config := &Config{}

			if !tt.expectPanic {

				require.NotPanics(t, func() { parseFlags(config) })
				assert.Empty(t, cmp.Diff(config, tt.expected))
			} else {
				require.Panics(t, func() { parseFlags(config) })
			}
		})
	}
}

func TestSplitOrigins(t *testing.T) {
	assert.Equal(t, []string{"a", "b"}, splitOrigins("a, b"))
	assert.Equal(t, []string{"a"}, splitOrigins("a,,"))
	assert.Empty(t, splitOrigins(""))
}
