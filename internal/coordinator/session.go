package coordinator

import (
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/frostlink/frost/internal/frost"
)

// SessionID identifies one end-to-end signing flow as a process-unique
// 128-bit identifier; google/uuid's version-4 UUID satisfies that
// directly, the same way a BIP-340-tagged hash identifies a round in the
// underlying signing scheme.
type SessionID = uuid.UUID

// SessionState is the coordinator-side record for one session: the message
// being signed and the commitments gathered toward the threshold so far.
// Commitments are append-only within a session; the mutex here is what
// makes add_commitment's read-modify-write atomic without taking a lock
// on the whole session map.
type SessionState struct {
	ID        SessionID
	Message   []byte
	CreatedAt time.Time

	mu          sync.Mutex
	commitments []*frost.SigningCommitment
	seen        map[frost.SignerID]struct{}
	sealed      []*frost.SigningCommitment // fixed once a SigningPackage has been issued
}

func newSession(id SessionID, message []byte, now time.Time) *SessionState {
	return &SessionState{
		ID:        id,
		Message:   message,
		CreatedAt: now,
		seen:      make(map[frost.SignerID]struct{}),
	}
}

// commitmentCount returns the number of distinct signers who have committed
// so far.
func (s *SessionState) commitmentCount() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.commitments)
}

// age reports how long ago the session was created, for the sweeper.
func (s *SessionState) age(now time.Time) time.Duration {
	return now.Sub(s.CreatedAt)
}
