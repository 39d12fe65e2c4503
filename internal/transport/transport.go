// Package transport carries opaque protocol payloads between named
// endpoints and simulates the behavior of a constrained radio link:
// fragmentation, latency, loss, and retransmission, with an observation
// surface a status dashboard can poll. Nothing here moves bytes over a
// real wire; it reuses the surrounding code's idiom (concurrent value
// objects, btclog logging, a mutex-guarded snapshot) to model a
// fragmenting send algorithm over a lossy link.
package transport

import "context"

// MessageType classifies a payload for the observation surface's
// by-type counters. It does not affect how a payload is carried.
type MessageType string

const (
	Round1Commitment MessageType = "Round1Commitment"
	SigningPackage   MessageType = "SigningPackage"
	Round2Share      MessageType = "Round2Share"
	FinalSignature   MessageType = "FinalSignature"
	Other            MessageType = "Other"
)

// Metadata describes one message crossing the transport.
type Metadata struct {
	From        string
	To          string
	MessageType MessageType
	Timestamp   int64 // unix nanoseconds; zero means "use time.Now() at send time"
}

// Transport carries opaque payloads between endpoints. Implementations may
// deliver the payload logically without gating protocol progress on actual
// delivery — the single-process demo transport records events but the
// receiver is not a physically separate process.
type Transport interface {
	Send(ctx context.Context, metadata Metadata, payload []byte) error
	Stats() TransportState
	Reset()
}
