package transport

import (
	"context"
	"fmt"
	"math/rand"
	"sync"
	"time"

	"github.com/fxamacker/cbor/v2"

	"github.com/frostlink/frost/internal/logging"
)

const (
	rssiFloor   = -120
	rssiCeiling = -50
	rssiStart   = -80

	rssiLossPenalty   = -5
	rssiDeliverReward = 2
)

// Config holds the simulated link parameters, with the specified
// defaults. RetryBackoffMs is the short backoff (recommended 200ms) a
// lost fragment's retry delay uses.
type Config struct {
	LatencyPerFragmentMs int
	LossRate             float64
	FragmentSizeBytes    int
	MaxRetries           int
	RetryBackoffMs       int
}

// DefaultConfig returns the recommended simulated link parameters:
// {500, 0.10, 64, 3}, with a 200ms retry backoff.
func DefaultConfig() Config {
	return Config{
		LatencyPerFragmentMs: 500,
		LossRate:             0.10,
		FragmentSizeBytes:    64,
		MaxRetries:           3,
		RetryBackoffMs:       200,
	}
}

// envelope is the CBOR-encoded wire representation of one Send call,
// giving TransmitFragment byte counts a realistic wire size instead of
// the caller's in-memory payload length.
type envelope struct {
	From        string      `cbor:"from"`
	To          string      `cbor:"to"`
	MessageType MessageType `cbor:"message_type"`
	Timestamp   int64       `cbor:"timestamp"`
	Payload     []byte      `cbor:"payload"`
}

// SimulatedLink is a single-process stand-in for a constrained radio link.
// It fragments, delays, and probabilistically drops each outgoing message,
// and records every fragment/retry/completion event onto a snapshot an
// external status endpoint can poll.
// It does not actually deliver bytes anywhere: the "receiver" in a
// single-process demo is the same process, so Send's return value only
// reports what the simulated link observed, not application-level receipt.
type SimulatedLink struct {
	cfg Config
	rng *rand.Rand

	mu    sync.RWMutex
	state TransportState
}

// NewSimulatedLink constructs a link with cfg. A zero-value Config field is
// NOT defaulted individually — callers needing defaults should start from
// DefaultConfig() and override only what they need.
func NewSimulatedLink(cfg Config) *SimulatedLink {
	return &SimulatedLink{
		cfg:   cfg,
		rng:   rand.New(rand.NewSource(1)),
		state: newTransportState(),
	}
}

// SetPhase records the protocol phase the caller believes is now in
// flight, surfaced in the next Stats() snapshot.
func (l *SimulatedLink) SetPhase(phase Phase) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.state.CurrentPhase = phase
	l.appendLogLocked("phase -> " + string(phase))
}

// Send fragments and simulates delivery of payload. It blocks for the
// simulated per-fragment latency and any retry backoff; callers on a
// latency-sensitive path should run it in a goroutine and select on
// ctx.Done().
func (l *SimulatedLink) Send(ctx context.Context, metadata Metadata, payload []byte) error {
	if metadata.Timestamp == 0 {
		metadata.Timestamp = time.Now().UnixNano()
	}

	wire, err := cbor.Marshal(envelope{
		From:        metadata.From,
		To:          metadata.To,
		MessageType: metadata.MessageType,
		Timestamp:   metadata.Timestamp,
		Payload:     payload,
	})
	if err != nil {
		return err
	}

	start := time.Now()
	fragments := fragment(wire, l.cfg.FragmentSizeBytes)
	total := len(fragments)
	totalRetries := 0

	for id, frag := range fragments {
		delivered, retries, err := l.sendFragment(ctx, id, total, frag)
		totalRetries += retries
		if err != nil {
			return err
		}
		if !delivered {
			logging.TransportLog.Debugf("fragment %d/%d abandoned after %d retries", id, total, retries)
		}
	}

	elapsed := time.Since(start).Milliseconds()

	l.mu.Lock()
	l.state.TotalMessages++
	l.state.TotalBytes += len(wire)
	l.state.ByTypeCounts[metadata.MessageType]++
	l.state.TotalRetries += totalRetries
	l.state.Progress = 1.0
	l.state.RecentEvents = appendBounded(l.state.RecentEvents, Event(TransmitComplete{
		TotalTimeMs: elapsed,
		Retries:     totalRetries,
	}), maxRecentEvents)
	l.appendLogLocked(fmt.Sprintf("send complete: %d bytes, %d fragments, %d retries", len(wire), total, totalRetries))
	l.mu.Unlock()

	return nil
}

// sendFragment runs step 2 of the fragmenting send algorithm for a single
// fragment, retrying on simulated loss up to MaxRetries times.
func (l *SimulatedLink) sendFragment(ctx context.Context, id, total int, frag []byte) (delivered bool, retries int, err error) {
	for {
		select {
		case <-ctx.Done():
			return false, retries, ctx.Err()
		case <-time.After(time.Duration(l.cfg.LatencyPerFragmentMs) * time.Millisecond):
		}

		if l.rollLoss() {
			l.recordLoss(id, retries)
			retries++
			if retries >= l.cfg.MaxRetries {
				return false, retries, nil
			}
			select {
			case <-ctx.Done():
				return false, retries, ctx.Err()
			case <-time.After(time.Duration(l.cfg.RetryBackoffMs) * time.Millisecond):
			}
			continue
		}

		l.recordDelivery(id, total, len(frag))
		return true, retries, nil
	}
}

func (l *SimulatedLink) rollLoss() bool {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.rng.Float64() < l.cfg.LossRate
}

func (l *SimulatedLink) recordLoss(fragmentID, retryCount int) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.state.RSSI = clamp(l.state.RSSI+rssiLossPenalty, rssiFloor, rssiCeiling)
	l.state.RecentEvents = appendBounded(l.state.RecentEvents, Event(PacketLost{
		FragmentID: fragmentID,
		RetryCount: retryCount,
	}), maxRecentEvents)
}

func (l *SimulatedLink) recordDelivery(fragmentID, total, bytes int) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.state.RSSI = clamp(l.state.RSSI+rssiDeliverReward, rssiFloor, rssiCeiling)
	l.state.RecentEvents = appendBounded(l.state.RecentEvents, Event(TransmitFragment{
		FragmentID: fragmentID,
		Total:      total,
		Bytes:      bytes,
	}), maxRecentEvents)
}

// appendLogLocked appends to the CLI-facing log. Callers must hold l.mu.
func (l *SimulatedLink) appendLogLocked(line string) {
	l.state.CLILog = appendBounded(l.state.CLILog, line, maxCLILog)
}

// Stats returns a snapshot of the link's observation surface. The returned
// value shares no mutable state with the link.
func (l *SimulatedLink) Stats() TransportState {
	l.mu.RLock()
	defer l.mu.RUnlock()
	return l.state.clone()
}

// Reset clears all counters and history back to the link's initial state,
// per the transport-idempotence-of-statistics property: Reset followed by
// zero sends leaves TotalMessages == 0 and empty per-type counters.
func (l *SimulatedLink) Reset() {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.state = newTransportState()
}

func fragment(payload []byte, size int) [][]byte {
	if size <= 0 {
		size = 1
	}
	var out [][]byte
	for i := 0; i < len(payload); i += size {
		end := i + size
		if end > len(payload) {
			end = len(payload)
		}
		out = append(out, payload[i:end])
	}
	if len(out) == 0 {
		out = append(out, nil)
	}
	return out
}

func clamp(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

var _ Transport = (*SimulatedLink)(nil)
