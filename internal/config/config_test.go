package config

import (
	"os"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestDefaultPicksUpEnvGate(t *testing.T) {
	os.Unsetenv("FROST_UNSAFE_DEMO_NONCE_FILE")
	require.False(t, Default().UnsafeDemoNonceFile)

	t.Setenv("FROST_UNSAFE_DEMO_NONCE_FILE", "1")
	require.True(t, Default().UnsafeDemoNonceFile)

	t.Setenv("FROST_UNSAFE_DEMO_NONCE_FILE", "0")
	require.False(t, Default().UnsafeDemoNonceFile)
}

func TestTransportConfigReflectsFlags(t *testing.T) {
	c := Default()
	c.TransportLatencyMs = 10
	c.TransportLossRate = 0.5
	c.TransportFragBytes = 16
	c.TransportMaxRetry = 1

	tc := c.TransportConfig()
	require.Equal(t, 10, tc.LatencyPerFragmentMs)
	require.Equal(t, 0.5, tc.LossRate)
	require.Equal(t, 16, tc.FragmentSizeBytes)
	require.Equal(t, 1, tc.MaxRetries)
}
