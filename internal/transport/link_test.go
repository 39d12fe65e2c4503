package transport

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func fastConfig() Config {
	return Config{
		LatencyPerFragmentMs: 1,
		LossRate:             0.10,
		FragmentSizeBytes:    8,
		MaxRetries:           3,
		RetryBackoffMs:       1,
	}
}

func TestSendFragmentsLargePayload(t *testing.T) {
	link := NewSimulatedLink(fastConfig())

	payload := make([]byte, 40) // with fragment size 8, well over one fragment
	for i := range payload {
		payload[i] = byte(i)
	}

	err := link.Send(context.Background(), Metadata{From: "s1", To: "coordinator", MessageType: Round1Commitment}, payload)
	require.NoError(t, err)

	stats := link.Stats()
	require.Equal(t, 1, stats.TotalMessages)
	require.Greater(t, stats.TotalBytes, 0)
	require.Equal(t, 1, stats.ByTypeCounts[Round1Commitment])
	require.NotEmpty(t, stats.RecentEvents)

	foundComplete := false
	for _, ev := range stats.RecentEvents {
		if _, ok := ev.(TransmitComplete); ok {
			foundComplete = true
		}
	}
	require.True(t, foundComplete, "expected a TransmitComplete event among recent events")
}

func TestResetIsIdempotentWithZeroSends(t *testing.T) {
	link := NewSimulatedLink(fastConfig())
	link.Reset()

	stats := link.Stats()
	require.Equal(t, 0, stats.TotalMessages)
	require.Empty(t, stats.ByTypeCounts)
	require.Equal(t, 0, stats.TotalBytes)
	require.Equal(t, 0, stats.TotalRetries)
}

func TestResetAfterSendClearsCounters(t *testing.T) {
	link := NewSimulatedLink(fastConfig())

	err := link.Send(context.Background(), Metadata{From: "a", To: "b", MessageType: Other}, []byte("hello world"))
	require.NoError(t, err)
	require.Equal(t, 1, link.Stats().TotalMessages)

	link.Reset()
	stats := link.Stats()
	require.Equal(t, 0, stats.TotalMessages)
	require.Empty(t, stats.ByTypeCounts)
	require.Empty(t, stats.RecentEvents)
}

func TestSendHonorsContextCancellation(t *testing.T) {
	link := NewSimulatedLink(Config{
		LatencyPerFragmentMs: 50,
		LossRate:             0,
		FragmentSizeBytes:    4,
		MaxRetries:           1,
		RetryBackoffMs:       1,
	})

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Millisecond)
	defer cancel()

	err := link.Send(ctx, Metadata{From: "a", To: "b", MessageType: Other}, make([]byte, 64))
	require.Error(t, err)
}

func TestRSSIStaysWithinBounds(t *testing.T) {
	link := NewSimulatedLink(Config{
		LatencyPerFragmentMs: 0,
		LossRate:             1.0, // force loss on every fragment
		FragmentSizeBytes:    8,
		MaxRetries:           2,
		RetryBackoffMs:       0,
	})

	for i := 0; i < 10; i++ {
		_ = link.Send(context.Background(), Metadata{From: "a", To: "b", MessageType: Other}, make([]byte, 8))
	}

	stats := link.Stats()
	require.GreaterOrEqual(t, stats.RSSI, rssiFloor)
	require.LessOrEqual(t, stats.RSSI, rssiCeiling)
}

func TestSetPhaseRecordsInSnapshot(t *testing.T) {
	link := NewSimulatedLink(fastConfig())
	link.SetPhase(PhaseRound1)
	require.Equal(t, PhaseRound1, link.Stats().CurrentPhase)
}

func TestStatsSnapshotIsIndependentCopy(t *testing.T) {
	link := NewSimulatedLink(fastConfig())
	_ = link.Send(context.Background(), Metadata{From: "a", To: "b", MessageType: Other}, []byte("x"))

	snap := link.Stats()
	snap.ByTypeCounts[Other] = 9999
	snap.RecentEvents = append(snap.RecentEvents, TransmitComplete{})

	fresh := link.Stats()
	require.NotEqual(t, 9999, fresh.ByTypeCounts[Other])
}
