package main

import (
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"

	"github.com/frostlink/frost/internal/config"
)

func TestSplitRoundTripAcrossInvocations(t *testing.T) {
	dataDir := t.TempDir()
	cfg := config.Default()
	cfg.DataDir = dataDir
	cfg.UnsafeDemoNonceFile = true

	session := uuid.New().String()
	message := "68656c6c6f" // "hello"

	keygen := newKeygenCmd(cfg)
	require.NoError(t, keygen.Flags().Set("threshold", "2"))
	require.NoError(t, keygen.Flags().Set("max-signers", "3"))
	require.NoError(t, keygen.RunE(keygen, nil))

	for _, id := range []string{"1", "2"} {
		r1 := newRound1Cmd(cfg)
		require.NoError(t, r1.Flags().Set("signer-id", id))
		require.NoError(t, r1.Flags().Set("session-id", session))
		require.NoError(t, r1.Flags().Set("message", message))
		require.NoError(t, r1.RunE(r1, nil))
	}

	cp := newCreatePackageCmd(cfg)
	require.NoError(t, cp.Flags().Set("session-id", session))
	require.NoError(t, cp.Flags().Set("message", message))
	require.NoError(t, cp.Flags().Set("signer-ids", "1,2"))
	require.NoError(t, cp.RunE(cp, nil))

	for _, id := range []string{"1", "2"} {
		r2 := newRound2Cmd(cfg)
		require.NoError(t, r2.Flags().Set("signer-id", id))
		require.NoError(t, r2.Flags().Set("session-id", session))
		require.NoError(t, r2.RunE(r2, nil))
	}

	agg := newAggregateCmd(cfg)
	require.NoError(t, agg.Flags().Set("session-id", session))
	require.NoError(t, agg.Flags().Set("signer-ids", "1,2"))
	require.NoError(t, agg.RunE(agg, nil))

	verify := newVerifyCmd(cfg)
	require.NoError(t, verify.RunE(verify, nil))
}

func TestDemoBasicProducesVerifiableSignature(t *testing.T) {
	cfg := config.Default()
	cfg.DataDir = t.TempDir()

	demo := newDemoBasicCmd(cfg)
	require.NoError(t, demo.Flags().Set("threshold", "2"))
	require.NoError(t, demo.Flags().Set("max-signers", "3"))
	require.NoError(t, demo.Flags().Set("message", "68656c6c6f"))
	require.NoError(t, demo.RunE(demo, nil))

	verify := newVerifyCmd(cfg)
	require.NoError(t, verify.RunE(verify, nil))
}
