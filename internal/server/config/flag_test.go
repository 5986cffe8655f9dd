package config

import (
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseFlags(t *testing.T) {
	tests := []struct {
		name     string
		args     []string
		initial  Config
		expected Config
		wantErr  bool
	}{
		{
			name: "all flags",
			args: []string{
				"-a", "127.0.0.1:9090", "-g", ":6000", "-d", "db", "-s", "secret",
				"-t", "5", "-r", "redis:6379", "-l", "json",
			},
			expected: Config{
				EndpointAddrHTTP:            "127.0.0.1:9090",
				EndpointAddrGRPC:            ":6000",
				DatabaseDSN:                 "db",
				SecretKey:                   "secret",
				AccessTokenValidityDuration: 5 * time.Minute,
				RedisAddr:                   "redis:6379",
				LogFormat:                   "json",
			},
		},
		{
			name:     "no -t keeps sub-minute ttl",
			args:     []string{"-c", "ignored.json"},
			initial:  Config{AccessTokenValidityDuration: 90 * time.Second},
			expected: Config{AccessTokenValidityDuration: 90 * time.Second},
		},
		{
			name:    "bad ttl",
			args:    []string{"-t", "soon"},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			config := tt.initial
			err := parseFlags(&config, tt.args)
			if tt.wantErr {
				require.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Empty(t, cmp.Diff(tt.expected, config))
		})
	}
}
